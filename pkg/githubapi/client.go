// Package githubapi is the single chokepoint for outbound GitHub REST calls.
// Every tool handler goes through Client.Do, which folds transport failures
// and non-2xx statuses into one *APIError shape.
package githubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
)

const defaultBaseURL = "https://api.github.com"

const requestTimeout = 10 * time.Second

// APIError is the uniform upstream failure shape. Details prefers GitHub's
// structured error body, then the raw response text, then the transport
// error string.
type APIError struct {
	Message string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// NoContent is returned for HTTP 204 responses.
var NoContent = map[string]any{"success": true}

// Client issues authenticated requests against the GitHub REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client against api.github.com.
func NewClient() *Client {
	return NewClientWithBaseURL(defaultBaseURL)
}

// NewClientWithBaseURL creates a client against an alternate API root.
// Used by tests to point at a local fake.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// Do performs one API call and classifies the outcome.
//
//	204         -> NoContent marker
//	other 2xx   -> decoded JSON body
//	non-2xx     -> *APIError with the upstream error body as details
//	no response -> *APIError with the transport error string as details
func (c *Client) Do(ctx context.Context, method, path, token string, query url.Values, body any) (any, *APIError) {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &APIError{Message: "GitHub API request failed", Details: err.Error()}
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return nil, &APIError{Message: "GitHub API request failed", Details: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/vnd.github+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Message: "GitHub API request failed", Details: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return NoContent, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Message: "GitHub API request failed", Details: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			Message: "GitHub API error: " + resp.Status,
			Details: decodeErrorBody(raw),
		}
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		wrapped := errors.Wrap(err, "decode response body")
		return nil, &APIError{Message: "GitHub API request failed", Details: wrapped.Error()}
	}
	return decoded, nil
}

// decodeErrorBody prefers GitHub's structured error JSON over raw text.
func decodeErrorBody(raw []byte) any {
	var structured any
	if err := json.Unmarshal(raw, &structured); err == nil {
		return structured
	}
	return string(raw)
}
