// Package tagstore is the client for the remote tag vocabulary service, a
// read-only lookup returning {name, mapped_name} pairs. The vocabulary is
// fetched once per reconciliation run; there is no cache and no default
// vocabulary when the service is down.
package tagstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/timalander/cuebox-takehome/internal/reconcile"
)

// HTTPDoer is the interface for executing HTTP requests. Both *http.Client
// and test doubles satisfy it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds tag service connection settings.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// Client fetches the tag vocabulary over HTTP.
type Client struct {
	baseURL    string
	maxRetries int
	httpClient HTTPDoer
}

// NewClient creates a new tag vocabulary client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		maxRetries: retries,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetHTTPClient sets a custom HTTP client (useful for testing).
func (c *Client) SetHTTPClient(client HTTPDoer) {
	c.httpClient = client
}

// tagMappingDTO is the service's wire format for one vocabulary entry.
type tagMappingDTO struct {
	Name       string `json:"name"`
	MappedName string `json:"mapped_name"`
}

// TagMappings retrieves the full vocabulary. Retries transient failures
// (network errors and 5xx/429 responses) with a short linear backoff; client
// errors return immediately.
func (c *Client) TagMappings(ctx context.Context) ([]reconcile.TagMapping, error) {
	url := c.baseURL + "/tags"

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * time.Second
			log.Printf("[tagstore] retry %d/%d for %s (waiting %s)", attempt, c.maxRetries, url, delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		mappings, retryable, err := c.fetch(ctx, url)
		if err == nil {
			return mappings, nil
		}
		lastErr = err
		if !retryable || ctx.Err() != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *Client) fetch(ctx context.Context, url string) ([]reconcile.TagMapping, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retryable, fmt.Errorf("tag service returned status %d: %s", resp.StatusCode, string(body))
	}

	var dtos []tagMappingDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, false, fmt.Errorf("decode vocabulary: %w", err)
	}

	mappings := make([]reconcile.TagMapping, 0, len(dtos))
	for _, d := range dtos {
		mappings = append(mappings, reconcile.TagMapping{
			SourceName: d.Name,
			MappedName: d.MappedName,
		})
	}
	return mappings, false, nil
}
