// Package panels builds the Grafana panels for the bokdeok client and
// development server metrics.
package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/cog"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ServerJob is the scrape job name of the development server.
const ServerJob = "bokdeok-devserver"

// Grid sizes on Grafana's 24-column layout.
const (
	statWidth  = 6
	statHeight = 4
	tsWidth    = 12
	tsHeight   = 8
	fullWidth  = 24
)

func datasource() dashboard.DataSourceRef {
	return dashboard.DataSourceRef{
		Type: cog.ToPtr("prometheus"),
		Uid:  cog.ToPtr("${datasource}"),
	}
}

// query builds target refID (A, B, ...) for position i.
func query(i int, expr, legend string) *prometheus.DataqueryBuilder {
	return prometheus.NewDataqueryBuilder().
		Expr(expr).
		LegendFormat(legend).
		RefId(string(rune('A' + i)))
}

// rateBy sums the 5m rate of metric split by label, legended by label.
func rateBy(metric, label string) *prometheus.DataqueryBuilder {
	return query(0, fmt.Sprintf(`sum by (%s) (rate(%s[5m]))`, label, metric), "{{"+label+"}}")
}

// timeSeries is a half-width line chart showing every series in the
// tooltip. Callers override unit, fill and thresholds as needed.
func timeSeries(title, description string) *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(datasource()).
		Height(tsHeight).
		Span(tsWidth).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(common.NewVizTooltipOptionsBuilder().
			Mode(common.TooltipDisplayModeMulti).
			Sort(common.SortOrderDescending)).
		Thresholds(steps(dashboard.Threshold{Color: "green"})).
		ColorScheme(colors(dashboard.FieldColorModeIdPaletteClassic)).
		DrawStyle(common.GraphDrawStyleLine)
}

// statPanel is a single-value tile coloured by its thresholds.
func statPanel(title, description, expr string) *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(datasource()).
		Height(statHeight).
		Span(statWidth).
		WithTarget(query(0, expr, "")).
		ColorScheme(colors(dashboard.FieldColorModeIdThresholds)).
		GraphMode(common.BigValueGraphModeNone)
}

func meanMaxLegend() *common.VizLegendOptionsBuilder {
	return common.NewVizLegendOptionsBuilder().
		DisplayMode(common.LegendDisplayModeTable).
		Placement(common.LegendPlacementBottom).
		Calcs([]string{"mean", "max"})
}

func steps(s ...dashboard.Threshold) cog.Builder[dashboard.ThresholdsConfig] {
	return dashboard.NewThresholdsConfigBuilder().
		Mode(dashboard.ThresholdsModeAbsolute).
		Steps(s)
}

// healthyFrom is red below v and green from v.
func healthyFrom(v float64) cog.Builder[dashboard.ThresholdsConfig] {
	return steps(
		dashboard.Threshold{Color: "red"},
		dashboard.Threshold{Value: cog.ToPtr(v), Color: "green"},
	)
}

// warnAt is green, then yellow from yellow, then red from red.
func warnAt(yellow, red float64) cog.Builder[dashboard.ThresholdsConfig] {
	return steps(
		dashboard.Threshold{Color: "green"},
		dashboard.Threshold{Value: cog.ToPtr(yellow), Color: "yellow"},
		dashboard.Threshold{Value: cog.ToPtr(red), Color: "red"},
	)
}

func colors(mode dashboard.FieldColorModeId) cog.Builder[dashboard.FieldColor] {
	return dashboard.NewFieldColorBuilder().Mode(mode)
}
