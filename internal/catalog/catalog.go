// Package catalog fetches the bootstrap template catalog over HTTP.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/starford/ansuz/internal/models"
)

// Client is a read-only client for a remote catalog document shaped
// {"templates": [...]}. It is used once, during the template store's load
// fallback chain; any failure is the caller's cue to move on, never fatal.
type Client struct {
	url        string
	httpClient *http.Client
}

// New creates a catalog client for the given document URL.
func New(url string) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch retrieves and decodes the catalog. Transport errors, non-200
// statuses, and parse failures all surface as errors.
func (c *Client) Fetch(ctx context.Context) ([]models.Template, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: unexpected status %d", resp.StatusCode)
	}

	var doc struct {
		Templates []models.Template `json:"templates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	return doc.Templates, nil
}
