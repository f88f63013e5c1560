// Package client implements the HTTP side of the command execution
// endpoint contract: POST /execute with a JSON command payload.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"airemote/internal/widget"
)

// Client talks to a running airemote server.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New creates a client for the given base URL, e.g. "http://phone:7860"
// or "http://host:7860/remote" when the server runs behind a path prefix.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// No timeout: the server resolves the request only once the
		// command finishes executing.
		httpClient: &http.Client{},
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Execute submits one command and waits for its resolution. Any transport
// problem, non-2xx status, or malformed body is reported as an error; the
// caller treats them all as the same failure class.
func (c *Client) Execute(ctx context.Context, command string) (*widget.Result, error) {
	payload, err := json.Marshal(map[string]string{"command": command})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/execute", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var result widget.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("malformed response: %w", err)
	}

	return &result, nil
}

// Version fetches the server build info, mostly as a connectivity probe.
func (c *Client) Version(ctx context.Context) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/version", nil)
	if err != nil {
		return nil, err
	}

	hc := c.httpClient
	if hc.Timeout == 0 {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var info map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return info, nil
}
