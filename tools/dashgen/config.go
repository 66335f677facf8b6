package main

import "errors"

// KnownMetrics is the set of metric names exported by the bokdeok client and
// development server, plus recording rule names referenced in dashboards and
// alerts.
var KnownMetrics = map[string]bool{
	// Development server HTTP metrics.
	"bokdeok_http_request_duration_seconds": true,
	"bokdeok_http_requests_total":           true,
	"bokdeok_healthz_up":                    true,

	// Gateway metrics.
	"bokdeok_gateway_requests_total":           true,
	"bokdeok_gateway_request_duration_seconds": true,
	"bokdeok_mock_interceptions_total":         true,

	// Session metrics.
	"bokdeok_logins_total":                    true,
	"bokdeok_session_expired_responses_total": true,
	"bokdeok_forced_logouts_total":            true,

	// Scrap metrics.
	"bokdeok_scrap_sync_total":    true,
	"bokdeok_scrap_toggles_total": true,
	"bokdeok_resync_runs_total":   true,

	// Recording rules.
	"bokdeok:http_requests:rate5m":     true,
	"bokdeok:http_errors:rate5m":       true,
	"bokdeok:gateway_requests:rate5m":  true,
	"bokdeok:gateway_failures:rate5m":  true,
	"bokdeok:scrap_rollbacks:rate5m":   true,
	"bokdeok:forced_logouts:rate5m":    true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
