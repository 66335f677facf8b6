// Package gateway is the single outbound choke point to the bokdeok API.
// It attaches the bearer token, normalizes every outcome into an Envelope
// and reports session expiry to a handler registered after construction.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/donaldgifford/bokdeok/internal/metrics"
	"github.com/donaldgifford/bokdeok/internal/storage"
	"github.com/donaldgifford/bokdeok/pkg/logger"
)

// DefaultTimeout bounds each request.
const DefaultTimeout = 10 * time.Second

const tracerName = "github.com/donaldgifford/bokdeok/internal/gateway"

// Gateway sends API requests through a BackendClient.
type Gateway struct {
	backend BackendClient
	kv      storage.KV
	log     *slog.Logger
	limiter *rate.Limiter
	header  http.Header
	tracer  trace.Tracer

	mu           sync.RWMutex
	defaultToken string
	onExpired    func(context.Context)
}

// Option configures the Gateway.
type Option func(*Gateway)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) {
		g.log = l
	}
}

// WithRateLimit paces outbound requests. A non-positive perSecond disables
// pacing.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(g *Gateway) {
		if perSecond <= 0 {
			g.limiter = nil
			return
		}
		g.limiter = rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
	}
}

// WithTracerProvider records spans with tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(g *Gateway) {
		g.tracer = tp.Tracer(tracerName)
	}
}

// WithHeader sets a default header sent on every request.
func WithHeader(key, value string) Option {
	return func(g *Gateway) {
		g.header.Set(key, value)
	}
}

// New creates a Gateway. The bearer token is read from kv on every request.
func New(backend BackendClient, kv storage.KV, opts ...Option) *Gateway {
	g := &Gateway{
		backend: backend,
		kv:      kv,
		log:     slog.Default(),
		header:  http.Header{"Content-Type": []string{"application/json"}},
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SetAuthToken sets the token used when none is present in storage.
func (g *Gateway) SetAuthToken(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.defaultToken = token
}

// ClearAuthToken removes the default token.
func (g *Gateway) ClearAuthToken() {
	g.SetAuthToken("")
}

// OnSessionExpired registers fn to run whenever a response has status 401.
// Registration is late-bound so the session layer can depend on the
// gateway without the gateway depending on it.
func (g *Gateway) OnSessionExpired(fn func(context.Context)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onExpired = fn
}

// Get performs a GET request.
func (g *Gateway) Get(ctx context.Context, path string) (*Envelope, error) {
	return g.Do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with a JSON body.
func (g *Gateway) Post(ctx context.Context, path string, body any) (*Envelope, error) {
	return g.Do(ctx, http.MethodPost, path, body)
}

// Delete performs a DELETE request.
func (g *Gateway) Delete(ctx context.Context, path string) (*Envelope, error) {
	return g.Do(ctx, http.MethodDelete, path, nil)
}

// Do sends a request and normalizes the outcome. Successful and mocked
// responses return an Envelope; failure statuses return *HTTPError; when
// no response arrives the backend's error is returned unchanged.
func (g *Gateway) Do(ctx context.Context, method, path string, body any) (*Envelope, error) {
	ctx, span := g.tracer.Start(ctx, "gateway "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("bokdeok.api.path", path),
		),
	)
	defer span.End()

	req := &Request{Method: method, Path: path, Header: g.header.Clone()}

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		req.Body = data
	}

	if token := g.token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	g.log.Debug("api request", "method", method, "path", path, "payload", logger.RedactJSON(req.Body))

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	start := time.Now()
	resp, err := g.backend.Send(ctx, req)
	metrics.GatewayRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(method, metrics.OutcomeNetworkError).Inc()
		g.log.Warn("api request failed", "method", method, "path", path, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "no response")
		return nil, err
	}

	if resp.Mocked || resp.StatusCode < http.StatusBadRequest {
		outcome := metrics.OutcomeSuccess
		if resp.Mocked {
			outcome = metrics.OutcomeMocked
		}
		span.SetAttributes(
			attribute.Int("http.response.status_code", resp.StatusCode),
			attribute.Bool("bokdeok.api.mocked", resp.Mocked),
		)
		metrics.GatewayRequestsTotal.WithLabelValues(method, outcome).Inc()
		return &Envelope{Success: true, Data: rawData(resp.Body)}, nil
	}

	metrics.GatewayRequestsTotal.WithLabelValues(method, metrics.OutcomeHTTPError).Inc()

	httpErr := &HTTPError{
		StatusCode: resp.StatusCode,
		Envelope: Envelope{
			Success: false,
			Message: failureMessage(resp),
			Data:    rawData(resp.Body),
		},
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	span.SetStatus(codes.Error, httpErr.Envelope.Message)
	g.log.Warn("api error",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"message", httpErr.Envelope.Message,
	)

	if resp.StatusCode == http.StatusUnauthorized {
		metrics.SessionExpiredTotal.Inc()
		g.sessionExpired(ctx)
	}

	return nil, httpErr
}

func (g *Gateway) token(ctx context.Context) string {
	if g.kv != nil {
		token, ok, err := g.kv.Get(ctx, storage.KeyAccessToken)
		if err != nil {
			g.log.Warn("reading stored token", "error", err)
		}
		if ok && token != "" {
			return token
		}
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.defaultToken
}

func (g *Gateway) sessionExpired(ctx context.Context) {
	g.mu.RLock()
	fn := g.onExpired
	g.mu.RUnlock()
	if fn != nil {
		// The handler outlives the caller's interest in this request.
		fn(context.WithoutCancel(ctx))
	}
}

func failureMessage(resp *Response) string {
	if p := ParseErrorPayload(resp.Body); p != nil {
		if msg := p.Message(); msg != "" {
			return msg
		}
	}
	return http.StatusText(resp.StatusCode)
}
