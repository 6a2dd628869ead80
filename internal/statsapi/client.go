// Package statsapi provides a client for the personal statistics backend,
// which persists calendar-bucketed label counts per board for later
// cross-board reporting.
package statsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/h0rv/dayroll/internal/domain"
)

// requestTimeout bounds every backend call; a timed-out save is reported and
// never retried.
const requestTimeout = 15 * time.Second

// Payload is the persisted statistics shape: per-board counts bucketed by
// year, zero-based month, and day.
type Payload struct {
	Name    string             `json:"name"`
	OrgName string             `json:"orgName"`
	Data    domain.NestedStats `json:"data"`
}

// fetchRequest asks the backend for a year of aggregated data across an
// organization's boards.
type fetchRequest struct {
	Method string `json:"method"`
	Year   int    `json:"year"`
	OrgID  string `json:"orgId"`
}

// YearReport is the backend's retrieval response: per-board monthly buckets
// plus per-board yearly totals.
type YearReport struct {
	Data  map[string]map[int]domain.StatBucket `json:"data"`
	Total map[string]domain.StatBucket         `json:"total"`
}

// Client talks to the statistics backend.
type Client struct {
	url  string
	http *http.Client
}

// New creates a client for the backend at url.
func New(url string) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: requestTimeout},
	}
}

// Save persists one board's bucketed statistics.
func (c *Client) Save(ctx context.Context, payload Payload) error {
	return c.post(ctx, payload, nil)
}

// Fetch retrieves the aggregated year report for an organization.
func (c *Client) Fetch(ctx context.Context, year int, orgID string) (*YearReport, error) {
	var report YearReport
	if err := c.post(ctx, fetchRequest{Method: "get", Year: year, OrgID: orgID}, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// post sends a JSON body and decodes the JSON response into out when out is
// non-nil. All failure modes collapse into a single "request did not succeed"
// error.
func (c *Client) post(ctx context.Context, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode stats payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request did not succeed: stats backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("request did not succeed: stats backend returned status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode stats backend response: %w", err)
	}
	return nil
}
