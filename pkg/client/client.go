// Package client is a typed Go client for the TuWeb backend API.
package client

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TokenProvider supplies bearer tokens for authenticated calls. Returning
// an error is not fatal: the request proceeds unauthenticated, which is
// fine for the public endpoints.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// APIError is returned for any non-2xx response.
type APIError struct {
	Status    int
	Message   string
	Body      []byte
	RequestID string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d, request-id %s)", e.Message, e.Status, e.RequestID)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
}

type Option func(*Client)

// WithHTTPClient replaces the underlying transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenProvider attaches a bearer token source.
func WithTokenProvider(tp TokenProvider) Option {
	return func(c *Client) { c.tokens = tp }
}

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

// Do performs one request. Byte, string and reader bodies pass through
// untouched with no forced content type; anything else is JSON-marshaled.
// On 2xx the response body is decoded into out when out is non-nil.
// Exactly one network request is made per call.
func (c *Client) Do(ctx context.Context, method, path string, body any, headers http.Header, out any) error {
	reader, contentType, err := encodeBody(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentType)
	}

	requestID := req.Header.Get("X-Request-Id")
	if requestID == "" {
		requestID = newRequestID()
		req.Header.Set("X-Request-Id", requestID)
	}

	if c.tokens != nil && req.Header.Get("Authorization") == "" {
		if tok, err := c.tokens.Token(ctx); err == nil && tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			Status:    resp.StatusCode,
			Message:   errorMessage(respBody, resp.StatusCode),
			Body:      respBody,
			RequestID: requestID,
		}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case []byte:
		return bytes.NewReader(b), "", nil
	case string:
		return strings.NewReader(b), "", nil
	case io.Reader:
		return b, "", nil
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("marshal body: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// errorMessage prefers the payload's message field, then error, then a
// generic status line.
func errorMessage(body []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return fmt.Sprintf("status %d", status)
}

func newRequestID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
