package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RequestRate shows the development server's request rate.
func RequestRate() *timeseries.PanelBuilder {
	return timeSeries("Request Rate", "Development server HTTP requests per second").
		WithTarget(query(0, `bokdeok:http_requests:rate5m`, "req/s")).
		Unit("reqps").
		Legend(meanMaxLegend())
}

// LatencyPercentiles shows p50, p95 and p99 development server latency.
func LatencyPercentiles() *timeseries.PanelBuilder {
	b := timeSeries("Latency Percentiles", "HTTP request duration percentiles").
		Unit("s").
		Legend(meanMaxLegend())

	for i, q := range []string{"0.50", "0.95", "0.99"} {
		b.WithTarget(query(i,
			fmt.Sprintf(
				`histogram_quantile(%s, sum(rate(bokdeok_http_request_duration_seconds_bucket{job=%q}[5m])) by (le))`,
				q, ServerJob,
			),
			"p"+q[2:],
		))
	}
	return b
}

// ErrorRate shows 5xx responses as a percentage of all requests.
func ErrorRate() *timeseries.PanelBuilder {
	return timeSeries("Error Rate %", "HTTP 5xx error rate as percentage of total requests").
		WithTarget(query(0, `bokdeok:http_errors:rate5m / bokdeok:http_requests:rate5m * 100`, "error %")).
		Unit("percent").
		Thresholds(warnAt(1, 5)).
		ColorScheme(colors(dashboard.FieldColorModeIdThresholds))
}
