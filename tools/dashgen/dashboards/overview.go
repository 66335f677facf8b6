// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/bokdeok/tools/dashgen/panels"
)

// BuildOverview constructs the bokdeok overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("bokdeok Overview").
		Uid("bokdeok-overview").
		Tags([]string{"bokdeok"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.LoginSuccessStat()).
		WithPanel(panels.ForcedLogoutsStat()).
		WithPanel(panels.UptimeStat()))

	b.WithRow(dashboard.NewRowBuilder("Development Server").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	b.WithRow(dashboard.NewRowBuilder("Gateway").
		WithPanel(panels.GatewayOutcomes()).
		WithPanel(panels.GatewayLatency()).
		WithPanel(panels.MockInterceptions()).
		WithPanel(panels.SessionExpiry()))

	b.WithRow(dashboard.NewRowBuilder("Scraps").
		WithPanel(panels.ToggleResults()).
		WithPanel(panels.SyncSources()).
		WithPanel(panels.ResyncRuns()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
