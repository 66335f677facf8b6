// Package metrics defines Prometheus metrics for bokdeok.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bokdeok"

// Gateway outcome label values.
const (
	OutcomeSuccess      = "success"
	OutcomeMocked       = "mocked"
	OutcomeHTTPError    = "http_error"
	OutcomeNetworkError = "network_error"
)

// Scrap sync source label values.
const (
	SyncRemote  = "remote"
	SyncCache   = "cache"
	SyncSkipped = "skipped"
)

// Scrap toggle result label values.
const (
	ToggleApplied    = "applied"
	ToggleRolledBack = "rolled_back"
	ToggleRejected   = "rejected"
)

// Gateway metrics.
var (
	GatewayRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_requests_total",
		Help:      "Total outbound API requests by method and outcome.",
	}, []string{"method", "outcome"})

	GatewayRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_request_duration_seconds",
		Help:      "Duration of outbound API requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	MockInterceptionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mock_interceptions_total",
		Help:      "Total requests answered by the in-process mock backend.",
	}, []string{"route"})
)

// Session metrics.
var (
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total login attempts by result.",
	}, []string{"result"})

	SessionExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_expired_responses_total",
		Help:      "Total HTTP 401 responses seen by the gateway.",
	})

	ForcedLogoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forced_logouts_total",
		Help:      "Total logouts forced by session expiry.",
	})
)

// Scrap metrics.
var (
	ScrapSyncTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scrap_sync_total",
		Help:      "Total scrap reconciliations by the source that won.",
	}, []string{"source"})

	ScrapTogglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scrap_toggles_total",
		Help:      "Total scrap toggles by result.",
	}, []string{"result"})

	ResyncRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resync_runs_total",
		Help:      "Total scheduled scrap resync runs.",
	})
)

// Development server HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 when the last /healthz probe succeeded.",
	})
)
