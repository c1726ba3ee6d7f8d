package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the remote catalog/identity API (dummyjson-compatible).
// It is stateless: every call carries whatever credentials it needs.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func New(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
	}
}

// apiError is the upstream's error body shape.
type apiError struct {
	Message string `json:"message"`
}

// Error reports a non-2xx upstream response. Message holds the
// server-provided message when the body carried one.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream: unexpected status %d", e.StatusCode)
}

func (c *Client) getJSON(ctx context.Context, path, bearer string, result any) error {
	return c.doJSON(ctx, http.MethodGet, path, bearer, nil, result)
}

func (c *Client) postJSON(ctx context.Context, path string, body, result any) error {
	return c.doJSON(ctx, http.MethodPost, path, "", body, result)
}

func (c *Client) doJSON(ctx context.Context, method, path, bearer string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("upstream: marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("upstream: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upstream: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := apiError{}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &Error{StatusCode: resp.StatusCode, Message: apiErr.Message}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("upstream: decode response body: %w", err)
		}
	}
	return nil
}
