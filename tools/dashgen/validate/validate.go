// Package validate checks generated dashboards and rules: every PromQL
// expression must parse, and every metric it selects must be known.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/bokdeok/tools/dashgen/rules"
)

// Result collects problems found during validation. Errors fail generation;
// warnings do not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Expr parses expr and checks the metric names it selects against known.
// Histogram series suffixes (_bucket, _sum, _count) resolve to their base
// metric.
func Expr(where, expr string, known map[string]bool) Result {
	var res Result

	node, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("%s: parsing %q: %v", where, expr, err))
		return res
	}

	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !known[baseMetric(vs.Name)] {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: unknown metric %q", where, vs.Name))
		}
		return nil
	})

	return res
}

func baseMetric(name string) string {
	for _, suffix := range []string{"_bucket", "_sum", "_count"} {
		if base, ok := strings.CutSuffix(name, suffix); ok {
			return base
		}
	}
	return name
}

// Dashboard validates every Prometheus target in every panel, including
// panels nested in rows. It inspects the JSON model Grafana will load.
func Dashboard(d dashboard.Dashboard, known map[string]bool) Result {
	var res Result

	raw, err := json.Marshal(d)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("encoding dashboard: %v", err))
		return res
	}
	var model struct {
		Panels []jsonPanel `json:"panels"`
	}
	if err := json.Unmarshal(raw, &model); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("decoding dashboard: %v", err))
		return res
	}

	for _, p := range model.Panels {
		if p.Type != "row" {
			res.merge(p.validate(known))
			continue
		}
		if len(p.Panels) == 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("row %q has no panels", p.Title))
		}
		for _, inner := range p.Panels {
			res.merge(inner.validate(known))
		}
	}

	return res
}

type jsonPanel struct {
	Type    string      `json:"type"`
	Title   string      `json:"title"`
	Panels  []jsonPanel `json:"panels"`
	Targets []struct {
		Expr string `json:"expr"`
	} `json:"targets"`
}

func (p jsonPanel) validate(known map[string]bool) Result {
	var res Result

	title := p.Title
	if title == "" {
		title = "untitled panel"
	}
	if len(p.Targets) == 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s: no targets", title))
	}
	for _, t := range p.Targets {
		if t.Expr == "" {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: target without expression", title))
			continue
		}
		res.merge(Expr(title, t.Expr, known))
	}

	return res
}

// Rules validates every rule expression. Metrics defined by recording rules
// in the same resource count as known.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var res Result

	all := make(map[string]bool, len(known))
	for k, v := range known {
		all[k] = v
	}
	for _, g := range cr.Spec.Groups {
		for _, r := range g.Rules {
			if r.Record != "" {
				all[r.Record] = true
			}
		}
	}

	for _, g := range cr.Spec.Groups {
		for _, r := range g.Rules {
			name := r.Record
			if name == "" {
				name = r.Alert
			}
			res.merge(Expr(g.Name+"/"+name, r.Expr, all))
		}
	}

	return res
}
