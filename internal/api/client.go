// Package api is the typed client for the back-office REST backend. It owns
// the bearer credential, normalizes backend error bodies, and raises the
// forced-logout hook on authentication failures.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// APIError is the backend's structured error body, unwrapped.
// Shape: {timestamp, status, error, message, path}.
type APIError struct {
	Status    int    `json:"status"`
	ErrText   string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
	Timestamp string `json:"timestamp"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// IsAuthError reports whether err is a 401 from the backend.
func IsAuthError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsForbidden reports whether err is a 403. Forbidden is surfaced to the
// caller (the credential is still valid); it never triggers forced logout.
func IsForbidden(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusForbidden
}

// Client issues authenticated JSON requests against the backend.
type Client struct {
	baseURL  string
	http     *http.Client
	validate *validator.Validate

	mu             sync.RWMutex
	token          string
	onUnauthorized func()
}

// New creates a Client for the given base URL (e.g. "http://host/api").
func New(baseURL string) *Client {
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: 30 * time.Second},
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// SetToken installs the bearer credential attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the credential.
func (c *Client) ClearToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// Token returns the currently attached credential, if any.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// OnUnauthorized registers the hook invoked when an authenticated request
// comes back 401. Public endpoints such as login are exempt. The hook fires
// once per failed response, before the error is returned, so the caller's
// own error handling still runs afterwards.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, true)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, true)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out, true)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, true)
}

// postPublic is the send path for unauthenticated endpoints. A 401 here
// means the submitted credentials were wrong, not that the session expired,
// so the unauthorized hook must not fire: a failed re-login at a logged-in
// terminal must leave the existing session intact.
func (c *Client) postPublic(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, false)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, fireHook bool) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out, fireHook)
}

// doMultipart sends a multipart form with a JSON part named partName and an
// optional binary "image" part. Used by the ingredient/recipe image uploads.
func (c *Client) doMultipart(ctx context.Context, method, path, partName string, payload any, image io.Reader, imageName string, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	jsonPart, err := mw.CreateFormField(partName)
	if err != nil {
		return fmt.Errorf("build multipart: %w", err)
	}
	if err := json.NewEncoder(jsonPart).Encode(payload); err != nil {
		return fmt.Errorf("encode %s part: %w", partName, err)
	}

	if image != nil {
		filePart, err := mw.CreateFormFile("image", imageName)
		if err != nil {
			return fmt.Errorf("build multipart: %w", err)
		}
		if _, err := io.Copy(filePart, image); err != nil {
			return fmt.Errorf("copy image: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("build multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.send(req, out, true)
}

func (c *Client) send(req *http.Request, out any, fireHook bool) error {
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.fail(resp, fireHook)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// fail normalizes an error response. When the backend's structured body is
// absent or unparseable, the HTTP status text stands in for the message.
// fireHook is false on public send paths, where a 401 is a credential
// problem for the caller rather than an expired session.
func (c *Client) fail(resp *http.Response, fireHook bool) error {
	apiErr := &APIError{
		Status:  resp.StatusCode,
		Message: resp.Status,
		Path:    resp.Request.URL.Path,
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(body) > 0 {
		var parsed APIError
		if json.Unmarshal(body, &parsed) == nil && parsed.Message != "" {
			parsed.Status = resp.StatusCode
			apiErr = &parsed
		}
	}

	if fireHook && resp.StatusCode == http.StatusUnauthorized {
		c.mu.RLock()
		hook := c.onUnauthorized
		c.mu.RUnlock()
		if hook != nil {
			hook()
		}
	}
	return apiErr
}
