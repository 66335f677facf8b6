package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

// HealthzStat shows the development server's health (1 ok, 0 failing).
func HealthzStat() *stat.PanelBuilder {
	return statPanel("Healthz", "Health check status (1 = ok, 0 = failing)", `bokdeok_healthz_up`).
		Thresholds(healthyFrom(1)).
		ColorMode(common.BigValueColorModeBackground).
		TextMode(common.BigValueTextModeValue)
}

// LoginSuccessStat shows successful logins as a share of attempts.
func LoginSuccessStat() *stat.PanelBuilder {
	return statPanel("Login Success %", "Successful logins as a share of attempts (1h)",
		`sum(increase(bokdeok_logins_total{result="success"}[1h])) / sum(increase(bokdeok_logins_total[1h])) * 100`,
	).
		Unit("percent").
		Thresholds(healthyFrom(90))
}

// ForcedLogoutsStat counts forced logouts in the last 24 hours.
func ForcedLogoutsStat() *stat.PanelBuilder {
	return statPanel("Forced Logouts (24h)", "Sessions ended because the backend rejected the token",
		`sum(increase(bokdeok_forced_logouts_total[24h]))`,
	).
		Thresholds(warnAt(5, 20)).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// UptimeStat shows time since the development server started.
func UptimeStat() *stat.PanelBuilder {
	return statPanel("Uptime", "Time since process start",
		fmt.Sprintf(`time() - process_start_time_seconds{job=%q}`, ServerJob),
	).
		Unit("s").
		Thresholds(steps(dashboard.Threshold{Color: "green"}))
}
