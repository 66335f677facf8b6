package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ToggleResults shows scrap toggles by result: applied, rolled_back or
// rejected.
func ToggleResults() *timeseries.PanelBuilder {
	return timeSeries("Scrap Toggles", "Optimistic toggles by result").
		WithTarget(rateBy("bokdeok_scrap_toggles_total", "result")).
		FillOpacity(20).
		LineWidth(1).
		Legend(meanMaxLegend())
}

// SyncSources shows which source won each reconciliation over 24 hours.
func SyncSources() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Scrap Sync Sources (24h)").
		Description("Reconciliations by winning source: remote, cache or skipped").
		Datasource(datasource()).
		Height(tsHeight).
		Span(tsWidth).
		WithTarget(query(0, `sum by (source) (increase(bokdeok_scrap_sync_total[24h]))`, "{{source}}")).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(steps(dashboard.Threshold{Color: "green"})).
		ColorScheme(colors(dashboard.FieldColorModeIdPaletteClassic))
}

// ResyncRuns plots scheduled reconciliations alongside rollbacks.
func ResyncRuns() *timeseries.PanelBuilder {
	return timeSeries("Resync Runs and Rollbacks", "Scheduled reconciliations and rolled-back toggles per second").
		Span(fullWidth).
		WithTarget(query(0, `sum(rate(bokdeok_resync_runs_total[5m]))`, "resync")).
		WithTarget(query(1, `bokdeok:scrap_rollbacks:rate5m`, "rollbacks"))
}
