package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Request is an outbound API call relative to the backend's base path.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Response is what a BackendClient got back. Mocked marks responses
// fabricated in-process; the gateway treats them as successes.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Mocked     bool
}

// BackendClient sends a request to a backend. It returns an error only
// when no response was received.
type BackendClient interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// RealBackend sends requests over HTTP.
type RealBackend struct {
	baseURL    string
	httpClient *http.Client
}

// RealOption configures a RealBackend.
type RealOption func(*RealBackend)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) RealOption {
	return func(b *RealBackend) {
		b.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) RealOption {
	return func(b *RealBackend) {
		b.httpClient = newHTTPClient(d)
	}
}

// newHTTPClient propagates the caller's trace context to the backend.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// NewRealBackend creates a backend rooted at endpoint, which includes the
// base path (e.g. http://localhost:8080/api/v1).
func NewRealBackend(endpoint string, opts ...RealOption) *RealBackend {
	b := &RealBackend{
		baseURL:    strings.TrimRight(endpoint, "/"),
		httpClient: newHTTPClient(DefaultTimeout),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BaseURL returns the endpoint requests are sent to.
func (b *RealBackend) BaseURL() string { return b.baseURL }

// Send implements BackendClient.
func (b *RealBackend) Send(ctx context.Context, r *Request) (*Response, error) {
	u := b.baseURL + r.Path
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Method: r.Method, URL: u, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Method: r.Method, URL: u, Err: fmt.Errorf("reading response body: %w", err)}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}
