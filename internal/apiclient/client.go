// Package apiclient talks to the remote car-rental REST API. Every list or
// detail endpoint wraps its payload in a JSON envelope ({"users": [...]})
// which the client unwraps.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"rental_admin/internal/metrics"
)

// ErrMalformedResponse is returned when a 2xx body is not the expected envelope.
var ErrMalformedResponse = errors.New("malformed upstream response")

// APIError is a non-2xx answer from the rental API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
	limiter *rate.Limiter
	metrics *metrics.Metrics
}

type Option func(*Client)

// WithRateLimit caps outbound requests per second. rps <= 0 disables the cap.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithToken returns a copy of the client that authenticates as the given
// admin. The copy shares the transport, limiter and metrics.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// FormFile is one file part of a multipart upload.
type FormFile struct {
	Field    string
	Filename string
	Content  io.Reader
}

// Form is a multipart body: plain fields plus file parts.
type Form struct {
	Fields map[string][]string
	Files  []FormFile
}

func (f Form) encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for key, values := range f.Fields {
		for _, v := range values {
			if err := w.WriteField(key, v); err != nil {
				return nil, "", fmt.Errorf("writing field %s: %w", key, err)
			}
		}
	}
	for _, file := range f.Files {
		part, err := w.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("creating file part %s: %w", file.Field, err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, "", fmt.Errorf("copying file %s: %w", file.Filename, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart body: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

// doJSON sends an optional JSON body and returns the raw 2xx response body.
func (c *Client) doJSON(ctx context.Context, op, method, path string, in any) ([]byte, error) {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, op, method, path, body, contentType)
}

func (c *Client) doForm(ctx context.Context, op, method, path string, form Form) ([]byte, error) {
	body, contentType, err := form.encode()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, op, method, path, body, contentType)
}

func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(op, 0, time.Since(start))
		return nil, fmt.Errorf("executing %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.metrics.ObserveUpstream(op, resp.StatusCode, time.Since(start))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: upstreamMessage(data, resp.StatusCode)}
	}
	return data, nil
}

// upstreamMessage extracts {"message": ...} or {"error": ...} from an error body.
func upstreamMessage(data []byte, status int) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return http.StatusText(status)
}

func envelope(data []byte) (map[string]json.RawMessage, error) {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(data, &env); err != nil || env == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformedResponse)
	}
	return env, nil
}

// unwrapList decodes env[key] as a list. An absent or null key is an empty list.
func unwrapList[T any](data []byte, key string) ([]T, error) {
	env, err := envelope(data)
	if err != nil {
		return nil, err
	}
	raw, ok := env[key]
	if !ok || string(raw) == "null" {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: field %q: %v", ErrMalformedResponse, key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// unwrapOne decodes env[key] as a single record; it must be present.
func unwrapOne[T any](data []byte, key string) (T, error) {
	var zero T
	env, err := envelope(data)
	if err != nil {
		return zero, err
	}
	raw, ok := env[key]
	if !ok || string(raw) == "null" {
		return zero, fmt.Errorf("%w: missing field %q", ErrMalformedResponse, key)
	}
	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		return zero, fmt.Errorf("%w: field %q: %v", ErrMalformedResponse, key, err)
	}
	return item, nil
}

func getList[T any](ctx context.Context, c *Client, op, path, key string) ([]T, error) {
	data, err := c.doJSON(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return unwrapList[T](data, key)
}

func getOne[T any](ctx context.Context, c *Client, op, path, key string) (T, error) {
	data, err := c.doJSON(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return unwrapOne[T](data, key)
}
