package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timalander/cuebox-takehome/internal/reconcile"
)

type stubTagSource struct {
	mappings []reconcile.TagMapping
	err      error
}

func (s stubTagSource) TagMappings(ctx context.Context) ([]reconcile.TagMapping, error) {
	return s.mappings, s.err
}

const (
	constituentCSV = "Patron ID,First Name,Last Name,Date Entered,Email,Company,Salutation,Title,Tags,Gender\n" +
		"1,Ann,Ames,2020-01-01,ann@x.com,,,,Donor,\n"
	donationCSV = "Patron ID,Amount,Date,Payment Method,Campaign,Status\n" +
		"1,$25.00,2021-06-01,Card,Annual Fund,Paid\n"
	emailCSV = "Patron ID,Email\n1,ann@x.com\n"
)

func newTestRouter(source reconcile.TagSource) http.Handler {
	engine := reconcile.NewEngine(source, 1)
	return SetupRoutes(NewHandlers(engine, 0))
}

// multipartBody builds a multipart form with the named file parts plus any
// plain form values.
func multipartBody(t *testing.T, files map[string]string, values map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := mw.CreateFormFile(name, name+".csv")
		require.NoError(t, err)
		_, err = io.WriteString(fw, content)
		require.NoError(t, err)
	}
	for name, value := range values {
		require.NoError(t, mw.WriteField(name, value))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func postReconcile(t *testing.T, router http.Handler, files map[string]string, values map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, files, values)
	req := httptest.NewRequest(http.MethodPost, "/api/reconcile", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func allParts() map[string]string {
	return map[string]string{
		"constituents": constituentCSV,
		"donations":    donationCSV,
		"emails":       emailCSV,
	}
}

func TestHandleHealth(t *testing.T) {
	router := newTestRouter(stubTagSource{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestHandleReconcile(t *testing.T) {
	router := newTestRouter(stubTagSource{})

	rec := postReconcile(t, router, allParts(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		RunID        string `json:"run_id"`
		Constituents string `json:"constituents"`
		Tags         string `json:"tags"`
		Counts       struct {
			Profiles     int `json:"profiles"`
			DistinctTags int `json:"distinct_tags"`
		} `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, 1, resp.Counts.Profiles)
	assert.Equal(t, 1, resp.Counts.DistinctTags)
	assert.Contains(t, resp.Constituents, "1,Person,Ann,Ames")
	assert.Contains(t, resp.Tags, "Donor,1")
}

func TestHandleReconcileDebug(t *testing.T) {
	router := newTestRouter(stubTagSource{})

	rec := postReconcile(t, router, allParts(), map[string]string{"debug": "true"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Contains(t, resp, "profiles")
	require.Contains(t, resp, "tag_summary")

	var profiles []reconcile.ProcessedProfile
	require.NoError(t, json.Unmarshal(resp["profiles"], &profiles))
	require.Len(t, profiles, 1)
	assert.Equal(t, "1", profiles[0].ConstituentID)
	assert.Equal(t, "$25.00", profiles[0].LifetimeAmount)
}

func TestHandleReconcileMissingPart(t *testing.T) {
	router := newTestRouter(stubTagSource{})

	files := allParts()
	delete(files, "donations")

	rec := postReconcile(t, router, files, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "donations file is required")
}

func TestHandleReconcileMalformedTable(t *testing.T) {
	router := newTestRouter(stubTagSource{})

	files := allParts()
	files["constituents"] = ""

	rec := postReconcile(t, router, files, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "constituents")
}

func TestHandleReconcileVocabularyDown(t *testing.T) {
	router := newTestRouter(stubTagSource{err: errors.New("dial tcp: connection refused")})

	rec := postReconcile(t, router, allParts(), nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	// Upstream detail stays in the server log, not the response.
	assert.NotContains(t, rec.Body.String(), "dial tcp")
	assert.Contains(t, rec.Body.String(), "tag vocabulary service unavailable")
}

func TestHandleReconcileNotMultipart(t *testing.T) {
	router := newTestRouter(stubTagSource{})

	req := httptest.NewRequest(http.MethodPost, "/api/reconcile", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
