// Package trello provides a REST client for the board service API.
// It implements a deep module interface - simple methods hiding the request
// plumbing, query-string authentication, and wire-to-domain conversion.
package trello

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/h0rv/dayroll/internal/auth"
)

// DefaultBaseURL is the board service API root.
const DefaultBaseURL = "https://api.trello.com/1"

// requestTimeout bounds every API call. A timed-out call surfaces as a plain
// failure; callers decide whether to move on (they never retry here).
const requestTimeout = 15 * time.Second

// Client is a board service REST API client. All calls authenticate with the
// user's key/token pair passed as query parameters.
type Client struct {
	baseURL string
	creds   auth.Credentials
	http    *http.Client
}

// New creates a client against the production API.
func New(creds auth.Credentials) *Client {
	return NewWithBaseURL(DefaultBaseURL, creds)
}

// NewWithBaseURL creates a client against a specific API root. Used by tests
// to point at a local server.
func NewWithBaseURL(baseURL string, creds auth.Credentials) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// do executes one API request and decodes the JSON response into out when out
// is non-nil. Every failure mode - transport error, timeout, non-2xx status -
// collapses into a single "request did not succeed" error; the consuming
// layer does not distinguish them.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, out any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("key", c.creds.Key)
	query.Set("token", c.creds.Token)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request did not succeed: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("request did not succeed: %s %s returned status %d: %s",
			method, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response for %s: %w", path, err)
	}
	return nil
}
