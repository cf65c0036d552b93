package render

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"strings"
	"testing"

	"go-viewer-dashboard/internal/model"
	"go-viewer-dashboard/internal/pipeline"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

const usersCSV = `User_ID,Name,Age,Country,Subscription_Type,Watch_Time_Hours,Favorite_Genre,Last_Login
1,Ana,25,US,Basic,10.5,Drama,2024-01-15
2,Ben,35,US,Premium,20,Action,2024-02-01
3,Cruz,45,MX,Basic,5,Drama,2024-01-20
4,Dee,17,MX,Standard,31,Comedy,2024-03-05
5,Eve,60,CA,Premium,2.5,Action,2023-12-31
`

func buildReport(t *testing.T, countries []string) *model.Report {
	t.Helper()
	ds, err := pipeline.ReadCSV(context.Background(), strings.NewReader(usersCSV), "fixture.csv")
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	state := pipeline.DefaultState(ds, 3)
	if countries != nil {
		state.Filter.Countries = countries
	}
	report, err := pipeline.BuildReport(context.Background(), ds, state)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	return report
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestReportChartRendersEveryChart(t *testing.T) {
	report := buildReport(t, nil)
	for _, name := range ChartNames() {
		t.Run(name, func(t *testing.T) {
			data, err := ReportChart(report, name, Options{Width: 640, Height: 360})
			if err != nil {
				t.Fatalf("ReportChart: %v", err)
			}
			if w, h := decodeSize(t, data); w != 640 || h != 360 {
				t.Fatalf("size = %dx%d", w, h)
			}
		})
	}
}

func TestReportChartEmptyReportUsesPlaceholder(t *testing.T) {
	report := buildReport(t, []string{})
	for _, name := range ChartNames() {
		data, err := ReportChart(report, name, Options{})
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if w, h := decodeSize(t, data); w != 800 || h != 400 {
			t.Fatalf("%s: size = %dx%d", name, w, h)
		}
	}
}

func TestReportChartOneRowFilter(t *testing.T) {
	ds, err := pipeline.ReadCSV(context.Background(), strings.NewReader(usersCSV), "fixture.csv")
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	state := pipeline.DefaultState(ds, 5)
	state.Filter = model.FilterPredicate{Countries: []string{"US"}, AgeMin: 30, AgeMax: 100}
	report, err := pipeline.BuildReport(context.Background(), ds, state)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if report.RowCount != 1 || len(report.LoginsByMonth.Rows) != 1 {
		t.Fatalf("rows = %d, months = %d", report.RowCount, len(report.LoginsByMonth.Rows))
	}
	for _, name := range ChartNames() {
		data, err := ReportChart(report, name, Options{})
		if err != nil {
			t.Fatalf("chart %s on one-row filter: %v", name, err)
		}
		decodeSize(t, data)
	}
}

func TestRenderXYSingleValue(t *testing.T) {
	table := model.SummaryTable{Rows: []model.SummaryRow{{Key: "35", Value: 20, Count: 1}}}
	for _, kind := range []Kind{KindLine, KindScatter} {
		data, err := Render(kind, table, Options{Width: 300, Height: 200})
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		if w, h := decodeSize(t, data); w != 300 || h != 200 {
			t.Fatalf("%s: size = %dx%d", kind, w, h)
		}
	}
}

func TestReportChartUnknown(t *testing.T) {
	report := buildReport(t, nil)
	_, err := ReportChart(report, "treemap", Options{})
	if !errors.Is(err, ErrUnknownChart) || !errors.Is(err, model.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownChart, got %v", err)
	}
}

func TestRenderUnknownKind(t *testing.T) {
	table := model.SummaryTable{Rows: []model.SummaryRow{{Key: "a", Value: 1, Count: 1}}}
	if _, err := Render(Kind("radar"), table, Options{}); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestRenderScatterRejectsNonNumericKeys(t *testing.T) {
	table := model.SummaryTable{Rows: []model.SummaryRow{{Key: "US", Value: 3, Count: 3}}}
	if _, err := Render(KindScatter, table, Options{}); err == nil {
		t.Fatalf("expected error for non-numeric scatter key")
	}
}

func TestRenderSingleRowAndUndefined(t *testing.T) {
	table := model.SummaryTable{
		Title: "Mean age",
		Rows: []model.SummaryRow{
			{Key: "US", Value: 30, Count: 2},
			{Key: "MX", Undefined: true},
		},
	}
	for _, kind := range []Kind{KindBar, KindPie, KindLine} {
		if _, err := Render(kind, table, Options{}); err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
	}
}

func TestRenderHeatmapTooSmall(t *testing.T) {
	m := model.Matrix{Rows: make([]string, 500), Cols: []string{"a"}, Cells: make([][]float64, 500)}
	for i := range m.Cells {
		m.Cells[i] = []float64{1}
	}
	if _, err := RenderHeatmap(m, HeatmapOptions{Options: Options{Width: 200, Height: 200}}); err == nil {
		t.Fatalf("expected error when cells do not fit")
	}
}

func TestHeatmapColors(t *testing.T) {
	high := toRGBA(drawing.ColorFromHex(ColorTop))
	low := toRGBA(drawing.ColorFromHex(ColorBottom))

	if c := sequentialColor(0, 10, high); c != white {
		t.Fatalf("zero should be white, got %v", c)
	}
	if c := sequentialColor(10, 10, high); c != high {
		t.Fatalf("max should be full color, got %v", c)
	}
	if c := divergingColor(-1, low, high); c != low {
		t.Fatalf("-1 should be low color, got %v", c)
	}
	if c := divergingColor(0, low, high); c != white {
		t.Fatalf("0 should be white, got %v", c)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Documentary", 20, "Documentary"},
		{"Documentary", 5, "Docu~"},
		{"Documentary", 1, "D"},
		{"Documentary", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
