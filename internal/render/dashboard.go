package render

import (
	"fmt"
	"sort"

	"go-viewer-dashboard/internal/model"
	"go-viewer-dashboard/internal/pipeline"
)

// ErrUnknownChart is returned for chart names outside the dashboard catalogue.
var ErrUnknownChart = fmt.Errorf("%w: unknown chart", model.ErrUnknownField)

type dashboardChart struct {
	kind  Kind
	color string
	table func(*model.Report) model.SummaryTable
	grid  func(*model.Report) (model.Matrix, bool)
}

var dashboardCharts = map[string]dashboardChart{
	"top-countries": {kind: KindBar, color: ColorTop,
		table: func(r *model.Report) model.SummaryTable { return r.TopCountries }},
	"bottom-countries": {kind: KindBar, color: ColorBottom,
		table: func(r *model.Report) model.SummaryTable { return r.BottomCountries }},
	"subscriptions": {kind: KindPie,
		table: func(r *model.Report) model.SummaryTable { return r.Subscriptions }},
	"genres": {kind: KindBar, color: ColorTop,
		table: func(r *model.Report) model.SummaryTable { return r.Genres }},
	"mean-age": {kind: KindBar, color: ColorTop,
		table: func(r *model.Report) model.SummaryTable { return r.MeanAgeByCountry }},
	"mean-watch-time": {kind: KindBar, color: ColorTop,
		table: func(r *model.Report) model.SummaryTable { return r.MeanWatchBySubscription }},
	"watch-time": {kind: KindBar, color: ColorTop,
		table: func(r *model.Report) model.SummaryTable { return r.WatchTimeDistribution.Table }},
	"age-distribution": {kind: KindBar, color: ColorTop,
		table: func(r *model.Report) model.SummaryTable { return r.AgeDistribution.Table }},
	"logins": {kind: KindLine, color: ColorTop,
		table: func(r *model.Report) model.SummaryTable { return r.LoginsByMonth }},
	"age-vs-watch-time": {kind: KindScatter, color: ColorTop,
		table: func(r *model.Report) model.SummaryTable { return r.AgeWatchPairs }},
	"country-subscription": {kind: KindHeatmap, color: ColorTop,
		grid: func(r *model.Report) (model.Matrix, bool) { return r.CountryBySubscription, false }},
	"genre-age": {kind: KindHeatmap, color: ColorTop,
		grid: func(r *model.Report) (model.Matrix, bool) { return r.GenreByAgeRange, false }},
	"correlation": {kind: KindHeatmap, color: ColorTop,
		grid: func(r *model.Report) (model.Matrix, bool) {
			return pipeline.CorrelationHeatmap(r.Correlations), true
		}},
}

// ChartNames lists the dashboard charts in name order.
func ChartNames() []string {
	names := make([]string, 0, len(dashboardCharts))
	for name := range dashboardCharts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ReportChart renders one named dashboard chart from a built report.
func ReportChart(r *model.Report, name string, opts Options) ([]byte, error) {
	dc, ok := dashboardCharts[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownChart, name)
	}
	if opts.Color == "" {
		opts.Color = dc.color
	}
	if dc.grid != nil {
		m, diverging := dc.grid(r)
		return RenderHeatmap(m, HeatmapOptions{Options: opts, Diverging: diverging})
	}
	return Render(dc.kind, dc.table(r), opts)
}
