package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// GatewayOutcomes splits outbound client requests by outcome: success,
// mocked, http_error or network_error.
func GatewayOutcomes() *timeseries.PanelBuilder {
	return timeSeries("Gateway Requests by Outcome", "Client API requests per second by outcome").
		WithTarget(rateBy("bokdeok_gateway_requests_total", "outcome")).
		Unit("reqps").
		FillOpacity(20).
		LineWidth(1).
		Legend(meanMaxLegend())
}

// GatewayLatency shows p95 client request latency by method.
func GatewayLatency() *timeseries.PanelBuilder {
	return timeSeries("Gateway Latency (p95)", "95th percentile client API request duration").
		WithTarget(query(0,
			`histogram_quantile(0.95, sum by (le, method) (rate(bokdeok_gateway_request_duration_seconds_bucket[5m])))`,
			"{{method}}",
		)).
		Unit("s").
		Thresholds(warnAt(1, 5))
}

// MockInterceptions shows requests answered from fixtures, by route.
func MockInterceptions() *timeseries.PanelBuilder {
	return timeSeries("Mock Interceptions", "Requests answered from fixtures instead of the network").
		WithTarget(rateBy("bokdeok_mock_interceptions_total", "route")).
		Unit("reqps")
}

// SessionExpiry compares 401 responses with the forced logouts they
// caused. Concurrent 401s collapse into one logout.
func SessionExpiry() *timeseries.PanelBuilder {
	return timeSeries("Session Expiry", "401 responses versus forced logouts").
		WithTarget(query(0, `sum(rate(bokdeok_session_expired_responses_total[5m]))`, "401s")).
		WithTarget(query(1, `bokdeok:forced_logouts:rate5m`, "forced logouts"))
}
