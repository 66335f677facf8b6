package rules

// AlertRules returns a PrometheusRule CR containing alert rules for the
// development server and long-running clients.
func AlertRules() PrometheusRule {
	return newRule("bokdeok-alerts", RuleGroup{
		Name: "bokdeok-alerts",
		Rules: []Rule{
			{
				Alert:  "BokdeokDevServerDown",
				Expr:   `absent(up{job="bokdeok-devserver"})`,
				For:    "2m",
				Labels: map[string]string{"severity": "critical"},
				Annotations: map[string]string{
					"summary":     "bokdeok development server is down",
					"description": "The bokdeok-devserver job has been absent for more than 2 minutes.",
				},
			},
			{
				Alert:  "BokdeokHighErrorRate",
				Expr:   `bokdeok:http_errors:rate5m / bokdeok:http_requests:rate5m > 0.05`,
				For:    "5m",
				Labels: map[string]string{"severity": "warning"},
				Annotations: map[string]string{
					"summary":     "High HTTP error rate on the development server",
					"description": "More than 5% of requests are returning 5xx errors over the last 5 minutes.",
				},
			},
			{
				Alert:  "BokdeokGatewayFailures",
				Expr:   `bokdeok:gateway_failures:rate5m / bokdeok:gateway_requests:rate5m > 0.2`,
				For:    "5m",
				Labels: map[string]string{"severity": "warning"},
				Annotations: map[string]string{
					"summary":     "Client requests are failing",
					"description": "More than 20% of gateway requests ended in an HTTP or network error.",
				},
			},
			{
				Alert:  "BokdeokScrapRollbacks",
				Expr:   `bokdeok:scrap_rollbacks:rate5m > 0`,
				For:    "10m",
				Labels: map[string]string{"severity": "warning"},
				Annotations: map[string]string{
					"summary":     "Scrap toggles are being rolled back",
					"description": "Optimistic scrap updates have been undone for more than 10 minutes.",
				},
			},
			{
				Alert:  "BokdeokForcedLogouts",
				Expr:   `increase(bokdeok_forced_logouts_total[15m]) > 10`,
				For:    "0m",
				Labels: map[string]string{"severity": "info"},
				Annotations: map[string]string{
					"summary":     "Many sessions expired",
					"description": "More than 10 forced logouts in 15 minutes; tokens may be revoked in bulk.",
				},
			},
		},
	})
}
