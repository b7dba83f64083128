// Package client provides an HTTP client for the comments REST API.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/evcraddock/comments/internal/comment"
)

// DefaultBasePath is the API path the server mounts comments on.
const DefaultBasePath = "/api/comments"

// ErrNotFound matches API errors with status 404.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error: %s", http.StatusText(e.StatusCode))
}

// Is reports 404 responses as ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client is an HTTP client for the comments API.
type Client struct {
	baseURL    string
	basePath   string
	httpClient *http.Client
}

// New creates a new API client for the server at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		basePath:   DefaultBasePath,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// WithBasePath returns a copy of c that talks to a different mount point.
func (c *Client) WithBasePath(p string) *Client {
	cp := *c
	cp.basePath = "/" + strings.Trim(p, "/")
	return &cp
}

// ListComments returns every comment.
func (c *Client) ListComments() ([]*comment.Comment, error) {
	var comments []*comment.Comment
	if err := c.send(http.MethodGet, c.basePath, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment creates a comment.
func (c *Client) AddComment(text, author string) (*comment.Comment, error) {
	var created comment.Comment
	draft := comment.Draft{Text: text, Author: author}
	if err := c.send(http.MethodPost, c.basePath, draft, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteComment removes a comment by ID.
func (c *Client) DeleteComment(id string) error {
	return c.send(http.MethodDelete, c.basePath+"/"+url.PathEscape(id), nil, nil)
}

// Health checks the server's health endpoint.
func (c *Client) Health() error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.send(http.MethodGet, "/health", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "ok" {
		return fmt.Errorf("server status %q", resp.Status)
	}
	return nil
}

// send issues one request. A non-nil body is sent as JSON; a non-nil result
// receives the decoded 2xx response.
func (c *Client) send(method, path string, body, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Warn("closing response body", "error", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp.StatusCode, respBody)
	}

	if result == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// decodeAPIError builds an APIError, taking the message from an
// {"error": ...} body when there is one.
func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	var errResp struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &errResp) == nil {
		apiErr.Message = errResp.Error
	}
	return apiErr
}
