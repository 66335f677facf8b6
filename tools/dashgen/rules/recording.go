package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return newRule("bokdeok-recording-rules", RuleGroup{
		Name: "bokdeok-recording",
		Rules: []Rule{
			{
				Record: "bokdeok:http_requests:rate5m",
				Expr:   `sum(rate(bokdeok_http_requests_total[5m]))`,
			},
			{
				Record: "bokdeok:http_errors:rate5m",
				Expr:   `sum(rate(bokdeok_http_requests_total{status=~"5.."}[5m]))`,
			},
			{
				Record: "bokdeok:gateway_requests:rate5m",
				Expr:   `sum(rate(bokdeok_gateway_requests_total[5m]))`,
			},
			{
				Record: "bokdeok:gateway_failures:rate5m",
				Expr:   `sum(rate(bokdeok_gateway_requests_total{outcome=~"http_error|network_error"}[5m]))`,
			},
			{
				Record: "bokdeok:scrap_rollbacks:rate5m",
				Expr:   `sum(rate(bokdeok_scrap_toggles_total{result="rolled_back"}[5m]))`,
			},
			{
				Record: "bokdeok:forced_logouts:rate5m",
				Expr:   `sum(rate(bokdeok_forced_logouts_total[5m]))`,
			},
		},
	})
}
