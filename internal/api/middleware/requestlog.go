package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// probePaths are polled by orchestrators; only their first success and
// every failure are logged.
var probePaths = []string{"/healthz", "/readyz"}

// RequestLog logs one line per request with a request ID, taken from
// X-Request-ID or generated, echoed in the response header and stored in
// the echo context. 5xx responses log at ERROR and 4xx at WARN. When the
// request carries a span its trace ID is included.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	quiet := make(map[string]*sync.Once, len(probePaths))
	for _, p := range probePaths {
		quiet[p] = &sync.Once{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			c.Set(requestIDKey, reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)

			req := c.Request()
			status := c.Response().Status
			attrs := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				requestIDKey, reqID,
			}
			if sc := trace.SpanContextFromContext(req.Context()); sc.HasTraceID() {
				attrs = append(attrs, "trace_id", sc.TraceID().String())
			}

			switch {
			case status >= 500:
				log.Error("request", attrs...)
			case status >= 400:
				log.Warn("request", attrs...)
			case quiet[req.URL.Path] != nil:
				quiet[req.URL.Path].Do(func() { log.Info("request", attrs...) })
			default:
				log.Info("request", attrs...)
			}
			return err
		}
	}
}
