package render

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"go-viewer-dashboard/internal/model"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Kind selects the chart type drawn for a summary table.
type Kind string

const (
	KindBar     Kind = "bar"
	KindPie     Kind = "pie"
	KindLine    Kind = "line"
	KindScatter Kind = "scatter"
	KindHeatmap Kind = "heatmap"
)

// Default series colors.
const (
	ColorTop    = "4169E1" // royal blue
	ColorBottom = "FA8072" // salmon
)

// Options controls image size and series color.
type Options struct {
	Width  int
	Height int
	Color  string // hex RGB, ColorTop when empty
	Title  string // overrides the table title
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 400
	}
	if o.Color == "" {
		o.Color = ColorTop
	}
	return o
}

func (o Options) title(fallback string) string {
	if o.Title != "" {
		return o.Title
	}
	return fallback
}

// Render draws a summary table as a PNG. Tables with no rows, or no non-zero
// values, produce a placeholder image instead of an error.
func Render(kind Kind, t model.SummaryTable, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	if !hasData(t) {
		return Placeholder(opts.title(t.Title), opts)
	}
	switch kind {
	case KindBar:
		return renderBar(t, opts)
	case KindPie:
		return renderPie(t, opts)
	case KindLine:
		return renderXY(t, opts, false)
	case KindScatter:
		return renderXY(t, opts, true)
	}
	return nil, fmt.Errorf("unknown chart kind %q", kind)
}

func hasData(t model.SummaryTable) bool {
	for _, r := range t.Rows {
		if !r.Undefined && r.Value != 0 {
			return true
		}
	}
	return false
}

func renderBar(t model.SummaryTable, opts Options) ([]byte, error) {
	col := drawing.ColorFromHex(opts.Color)
	bars := make([]chart.Value, 0, len(t.Rows))
	maxV := 0.0
	for _, r := range t.Rows {
		label := r.Key
		if r.Undefined {
			label += " (n/a)"
		}
		bars = append(bars, chart.Value{
			Label: label,
			Value: r.Value,
			Style: chart.Style{FillColor: col, StrokeColor: col, StrokeWidth: 1},
		})
		maxV = math.Max(maxV, r.Value)
	}

	if maxV <= 0 {
		maxV = 1
	}
	barWidth := (opts.Width - 120) / (len(bars) * 2)
	if barWidth < 4 {
		barWidth = 4
	}
	bc := chart.BarChart{
		Title:      opts.title(t.Title),
		Width:      opts.Width,
		Height:     opts.Height,
		BarWidth:   barWidth,
		BarSpacing: barWidth,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		YAxis: chart.YAxis{
			Name:  t.ValueColumn,
			Range: &chart.ContinuousRange{Min: 0, Max: maxV * 1.1},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render bar chart: %w", err)
	}
	return buf.Bytes(), nil
}

func renderPie(t model.SummaryTable, opts Options) ([]byte, error) {
	values := make([]chart.Value, 0, len(t.Rows))
	for _, r := range t.Rows {
		if r.Undefined || r.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{Label: fmt.Sprintf("%s (%d)", r.Key, r.Count), Value: r.Value})
	}

	pc := chart.PieChart{
		Title:  opts.title(t.Title),
		Width:  opts.Width,
		Height: opts.Height,
		Values: values,
	}
	var buf bytes.Buffer
	if err := pc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render pie chart: %w", err)
	}
	return buf.Bytes(), nil
}

// pointStyle renders points only, no connecting line
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    3,
		DotColor:    col,
	}
}

// renderXY draws a line over ordinal keys, or a scatter when the keys are
// numeric x values as produced by Pairs. Tables with fewer than two distinct
// x values fall back to a bar chart.
func renderXY(t model.SummaryTable, opts Options, scatter bool) ([]byte, error) {
	col := drawing.ColorFromHex(opts.Color)
	xs := make([]float64, 0, len(t.Rows))
	ys := make([]float64, 0, len(t.Rows))
	var ticks []chart.Tick
	for i, r := range t.Rows {
		if r.Undefined {
			continue
		}
		x := float64(i)
		if scatter {
			var err error
			if x, err = parseX(r.Key); err != nil {
				return nil, err
			}
		} else {
			ticks = append(ticks, chart.Tick{Value: x, Label: r.Key})
		}
		xs = append(xs, x)
		ys = append(ys, r.Value)
	}

	// go-chart needs a non-zero x range; a single x value is drawn as a bar.
	if distinct(xs) < 2 {
		return renderBar(t, opts)
	}

	st := chart.Style{StrokeColor: col, StrokeWidth: 2, DotWidth: 3, DotColor: col}
	if scatter {
		st = pointStyle(col)
	}
	xAxis := chart.XAxis{Name: t.KeyColumn, Range: paddedRange(xs)}
	if len(ticks) > 0 {
		xAxis.Ticks = thinTicks(ticks, opts.Width/70)
	}

	ch := chart.Chart{
		Title:      opts.title(t.Title),
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      xAxis,
		YAxis:      chart.YAxis{Name: t.ValueColumn, Range: paddedRange(ys)},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: t.ValueColumn, XValues: xs, YValues: ys, Style: st},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		name := "line"
		if scatter {
			name = "scatter"
		}
		return nil, fmt.Errorf("render %s chart: %w", name, err)
	}
	return buf.Bytes(), nil
}

func distinct(vs []float64) int {
	seen := make(map[float64]struct{}, len(vs))
	for _, v := range vs {
		seen[v] = struct{}{}
	}
	return len(seen)
}

func parseX(key string) (float64, error) {
	x, err := strconv.ParseFloat(key, 64)
	if err != nil {
		return 0, fmt.Errorf("scatter key %q is not numeric: %w", key, err)
	}
	return x, nil
}

// paddedRange spans the values with a little headroom; a single value gets a
// unit-wide range so the axis never collapses.
func paddedRange(vs []float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo == 0 {
		return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	pad := (hi - lo) * 0.05
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

// thinTicks keeps at most max evenly spaced ticks.
func thinTicks(ticks []chart.Tick, max int) []chart.Tick {
	if max < 2 || len(ticks) <= max {
		return ticks
	}
	step := int(math.Ceil(float64(len(ticks)) / float64(max)))
	out := make([]chart.Tick, 0, max+1)
	for i := 0; i < len(ticks); i += step {
		out = append(out, ticks[i])
	}
	return out
}
