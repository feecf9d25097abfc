package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/timalander/cuebox-takehome/internal/reconcile"
)

// The three file parts every reconciliation request must carry.
var requiredParts = []string{"constituents", "donations", "emails"}

// Handlers provides the HTTP handlers for the reconciliation API.
type Handlers struct {
	engine         *reconcile.Engine
	maxUploadBytes int64
}

// NewHandlers creates a new handler instance.
func NewHandlers(engine *reconcile.Engine, maxUploadBytes int64) *Handlers {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 50 << 20
	}
	return &Handlers{engine: engine, maxUploadBytes: maxUploadBytes}
}

// HandleReconcile runs one reconciliation pass over three uploaded tables.
// POST /api/reconcile
// Content-Type: multipart/form-data
// Parts:
//   - constituents: primary patron CSV (required)
//   - donations: donation-history CSV (required)
//   - emails: supplemental email CSV (required)
//   - debug: "true" to include the raw profile and tag collections
func (h *Handlers) HandleReconcile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "upload too large or malformed multipart body")
		return
	}

	buffers := make(map[string][]byte, len(requiredParts))
	for _, name := range requiredParts {
		data, err := readFilePart(r, name)
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("%s file is required", name))
			return
		}
		buffers[name] = data
	}

	debug := r.FormValue("debug") == "true"

	res, err := h.engine.Run(r.Context(), reconcile.Input{
		Constituents: buffers["constituents"],
		Donations:    buffers["donations"],
		Emails:       buffers["emails"],
	})
	if err != nil {
		switch {
		case errors.Is(err, reconcile.ErrMalformedTable):
			// Input problem: the message names the offending table, nothing internal.
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, reconcile.ErrVocabularyUnavailable):
			respondSafeError(w, http.StatusBadGateway, err, "tag vocabulary service unavailable")
		default:
			respondSafeError(w, http.StatusInternalServerError, err, "processing failed")
		}
		return
	}

	resp := map[string]interface{}{
		"run_id":       res.RunID,
		"constituents": string(res.ConstituentsCSV),
		"tags":         string(res.TagsCSV),
		"counts": map[string]int{
			"profiles":      len(res.Profiles),
			"distinct_tags": len(res.TagCounts),
		},
		"duration_ms": res.Duration.Milliseconds(),
	}
	if debug {
		resp["profiles"] = res.Profiles
		resp["tag_summary"] = res.TagCounts
	}

	respondJSON(w, http.StatusOK, resp)
}

// readFilePart reads one named file part fully into memory.
func readFilePart(r *http.Request, name string) ([]byte, error) {
	file, _, err := r.FormFile(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
