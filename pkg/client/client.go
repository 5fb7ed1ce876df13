// Package client wraps the health-management HTTP API for front ends.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const htmlResponseMessage = "server returned HTML instead of JSON, check that the backend is running"

// RequestError is the single failure type returned for any non-2xx response
// or unusable body. Requests are never retried automatically.
type RequestError struct {
	Operation  string
	StatusCode int
	Message    string
	// Fields holds per-field validation messages when the server sent them.
	Fields map[string]string
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Operation, e.Message, e.StatusCode)
}

// IsNotFound reports whether the server answered 404.
func (e *RequestError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
	Count   *int            `json:"count"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      func() string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource sets where the bearer token comes from on every request.
func WithTokenSource(token func() string) Option {
	return func(c *Client) { c.token = token }
}

// New returns a client for the API rooted at baseURL, e.g.
// http://localhost:5000/api/v1.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends one request and decodes the envelope's data into out. failure is
// the message used when the server gives none.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}, failure string) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, &RequestError{Operation: failure, Message: err.Error()}
		}
		reader = bytes.NewReader(raw)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, &RequestError{Operation: failure, Message: err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Operation: failure, Message: err.Error()}
	}
	defer resp.Body.Close()

	if isHTML(resp.Header.Get("Content-Type")) {
		return nil, &RequestError{Operation: failure, StatusCode: resp.StatusCode, Message: htmlResponseMessage}
	}

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := &RequestError{Operation: failure, StatusCode: resp.StatusCode, Message: failure}
		if decodeErr == nil {
			if env.Message != "" {
				reqErr.Message = env.Message
			}
			var fields map[string]string
			if len(env.Error) > 0 && json.Unmarshal(env.Error, &fields) == nil {
				reqErr.Fields = fields
			}
		}
		return nil, reqErr
	}

	if decodeErr != nil {
		return nil, &RequestError{Operation: failure, StatusCode: resp.StatusCode, Message: "invalid response body: " + decodeErr.Error()}
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, &RequestError{Operation: failure, StatusCode: resp.StatusCode, Message: "invalid response data: " + err.Error()}
		}
	}
	return &env, nil
}

func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(strings.ToLower(contentType), "text/html")
	}
	return mediaType == "text/html"
}
