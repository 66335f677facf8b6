// Package middleware provides Echo middleware for the bokdeok development
// server.
package middleware

import (
	"slices"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/bokdeok/internal/metrics"
)

// Metrics records duration and count per route template, method and
// status. /metrics and the probe endpoints are not counted; /healthz
// drives the healthz_up gauge instead.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			path := routePath(c)
			status := c.Response().Status

			switch {
			case path == "/healthz":
				metrics.HealthzUp.Set(boolGauge(isSuccess(status)))
			case path == "/metrics", slices.Contains(probePaths, path):
			default:
				labels := []string{c.Request().Method, path, strconv.Itoa(status)}
				metrics.HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
				metrics.HTTPRequestsTotal.WithLabelValues(labels...).Inc()
			}
			return err
		}
	}
}

// routePath prefers the route template so listing ids do not explode
// label cardinality.
func routePath(c echo.Context) string {
	if p := c.Path(); p != "" {
		return p
	}
	return c.Request().URL.Path
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func boolGauge(ok bool) float64 {
	if ok {
		return 1
	}
	return 0
}
