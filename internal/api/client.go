// Package api talks to the sandbox service: a small REST client for
// sandbox lifecycle and a multiplexed WebSocket attachment that streams
// terminal output back as events.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-errors/errors"
)

// ErrNotFound is returned when the service reports an unknown sandbox.
var ErrNotFound = errors.New("sandbox not found")

// SandboxSummary is the service's view of a sandbox.
type SandboxSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateSandboxRequest is the payload for creating a sandbox.
type CreateSandboxRequest struct {
	Name string `json:"name,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client is a REST client for the sandbox service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the service at baseURL, e.g.
// "http://127.0.0.1:7777".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// BaseURL returns the service address the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListSandboxes returns all sandboxes known to the service.
func (c *Client) ListSandboxes(ctx context.Context) ([]SandboxSummary, error) {
	var out []SandboxSummary
	if err := c.do(ctx, http.MethodGet, "/sandboxes", nil, &out); err != nil {
		return nil, fmt.Errorf("listing sandboxes: %w", err)
	}
	return out, nil
}

// CreateSandbox asks the service to provision a new sandbox.
func (c *Client) CreateSandbox(ctx context.Context, req CreateSandboxRequest) (SandboxSummary, error) {
	var out SandboxSummary
	if err := c.do(ctx, http.MethodPost, "/sandboxes", req, &out); err != nil {
		return SandboxSummary{}, fmt.Errorf("creating sandbox: %w", err)
	}
	return out, nil
}

// GetSandbox fetches a single sandbox by ID.
func (c *Client) GetSandbox(ctx context.Context, id string) (SandboxSummary, error) {
	var out SandboxSummary
	if err := c.do(ctx, http.MethodGet, "/sandboxes/"+url.PathEscape(id), nil, &out); err != nil {
		return SandboxSummary{}, fmt.Errorf("getting sandbox %s: %w", id, err)
	}
	return out, nil
}

// DeleteSandbox tears down a sandbox.
func (c *Client) DeleteSandbox(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/sandboxes/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("deleting sandbox %s: %w", id, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.errorFrom(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// errorFrom extracts the service error message from a failed response,
// falling back to the HTTP status when the body is not JSON.
func (c *Client) errorFrom(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var er errorResponse
	if json.Unmarshal(data, &er) == nil && er.Error != "" {
		return errors.New(er.Error)
	}
	return fmt.Errorf("unexpected status %s", resp.Status)
}
