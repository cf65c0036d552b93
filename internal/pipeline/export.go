package pipeline

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go-viewer-dashboard/internal/model"
	"go-viewer-dashboard/internal/store"
	"go-viewer-dashboard/pkg/utils"
)

// ExportManager writes one report to the configured targets
type ExportManager struct {
	ReportID   string
	ExportSpec model.Export
	Results    []model.ExportResult
}

// ExportReport writes a report to every target in spec. With no target set it
// falls back to a timestamped CSV under exports/.
func ExportReport(ctx context.Context, report *model.Report, spec model.Export) []model.ExportResult {
	em := &ExportManager{ReportID: report.ID, ExportSpec: spec}

	if spec.File != "" {
		em.Results = append(em.Results, em.exportToFile(report, spec.File))
	}
	if spec.DB != "" {
		em.Results = append(em.Results, em.exportToDatabase(ctx, report))
	}
	if spec.File == "" && spec.DB == "" {
		em.Results = append(em.Results, em.exportToFile(report, em.defaultFile()))
	}
	return em.Results
}

func (em *ExportManager) defaultFile() string {
	id := em.ReportID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("exports/report_%s_%s.csv", id, time.Now().Format("2006-01-02_15-04-05"))
}

// exportToFile picks CSV or JSON from the extension; anything else is CSV
func (em *ExportManager) exportToFile(report *model.Report, path string) model.ExportResult {
	var (
		n   int
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		n, err = exportToJSON(report, path)
	default:
		n, err = exportToCSV(report, path)
	}

	result := model.ExportResult{
		Type:        "file",
		Path:        path,
		RecordCount: n,
		Success:     err == nil,
		Timestamp:   time.Now(),
	}
	if err != nil {
		result.Error = err.Error()
		slog.Error("export to file failed", "report_id", em.ReportID, "path", path, "error", err)
	} else {
		slog.Info("export to file done", "report_id", em.ReportID, "path", path, "rows", n)
	}
	return result
}

func (em *ExportManager) exportToDatabase(ctx context.Context, report *model.Report) model.ExportResult {
	err := store.SaveReport(ctx, report)
	result := model.ExportResult{
		Type:        "database",
		Path:        em.ExportSpec.DB,
		RecordCount: report.RowCount,
		Success:     err == nil,
		Timestamp:   time.Now(),
	}
	if err != nil {
		result.RecordCount = 0
		result.Error = err.Error()
		slog.Error("export to database failed", "report_id", em.ReportID, "error", err)
	} else {
		slog.Info("export to database done", "report_id", em.ReportID)
	}
	return result
}

func createFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return f, nil
}

// exportToCSV flattens every table of the report into table,key,value,count rows
func exportToCSV(report *model.Report, path string) (int, error) {
	file, err := createFile(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"table", "key", "value", "count"}); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	rows := ReportRows(report)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return 0, fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// ReportRows flattens a report into table,key,value,count string rows.
// Undefined values are written as empty strings.
func ReportRows(report *model.Report) [][]string {
	var out [][]string
	stat := func(table string, s model.Statistic) {
		v := ""
		if f, ok := s.Float(); ok {
			v = utils.FormatFloat(f)
		}
		out = append(out, []string{table, s.Name, v, strconv.Itoa(s.N)})
	}
	summary := func(table string, t model.SummaryTable) {
		for _, r := range t.Rows {
			v := utils.FormatFloat(r.Value)
			if r.Undefined {
				v = ""
			}
			out = append(out, []string{table, r.Key, v, strconv.Itoa(r.Count)})
		}
	}
	matrix := func(table string, m model.Matrix) {
		for i, rk := range m.Rows {
			for j, ck := range m.Cols {
				v := m.Cells[i][j]
				out = append(out, []string{table, rk + " / " + ck, utils.FormatFloat(v), strconv.Itoa(int(v))})
			}
		}
	}

	stat("statistics", report.MeanAge)
	stat("statistics", report.AgeWatchCorrelation)
	for i := range report.Correlations.Values {
		for _, s := range report.Correlations.Values[i] {
			stat("correlations", s)
		}
	}
	for _, fs := range report.Describe {
		for _, s := range []model.Statistic{fs.Mean, fs.Std, fs.Min, fs.P25, fs.P50, fs.P75, fs.Max} {
			stat("describe_"+fs.Field, s)
		}
	}
	summary("top_countries", report.TopCountries)
	summary("bottom_countries", report.BottomCountries)
	summary("subscriptions", report.Subscriptions)
	summary("genres", report.Genres)
	summary("mean_age_by_country", report.MeanAgeByCountry)
	summary("mean_watch_by_subscription", report.MeanWatchBySubscription)
	summary("logins_by_month", report.LoginsByMonth)
	summary("watch_time_distribution", report.WatchTimeDistribution.Table)
	summary("age_distribution", report.AgeDistribution.Table)
	matrix("country_by_subscription", report.CountryBySubscription)
	matrix("genre_by_age_range", report.GenreByAgeRange)
	return out
}

func exportToJSON(report *model.Report, path string) (int, error) {
	file, err := createFile(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	exportData := map[string]interface{}{
		"export_info": map[string]interface{}{
			"report_id":    report.ID,
			"exported_at":  time.Now().UTC(),
			"record_count": report.RowCount,
			"export_type":  "dashboard_report",
		},
		"data": report,
	}
	if err := encoder.Encode(exportData); err != nil {
		return 0, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return report.RowCount, nil
}
