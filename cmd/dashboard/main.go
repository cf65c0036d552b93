package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"go-viewer-dashboard/internal/config"
	"go-viewer-dashboard/internal/model"
	"go-viewer-dashboard/internal/pipeline"
	"go-viewer-dashboard/internal/render"
	"go-viewer-dashboard/internal/store"
	"go-viewer-dashboard/pkg/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		var le *model.LoadError
		if errors.As(err, &le) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

type options struct {
	configPath string
	dataPath   string
	countries  string
	ageMin     int
	ageMax     int
	top        int
	showData   bool
	outDir     string
	export     string
	charts     bool
}

func parseFlags(args []string) (options, map[string]bool, error) {
	var o options
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "config.yaml", "path to config file")
	fs.StringVar(&o.dataPath, "data", "", "CSV dataset (overrides config)")
	fs.StringVar(&o.countries, "countries", "", "comma separated countries (default all)")
	fs.IntVar(&o.ageMin, "age-min", 0, "minimum age, inclusive (default dataset minimum)")
	fs.IntVar(&o.ageMax, "age-max", 0, "maximum age, inclusive (default dataset maximum)")
	fs.IntVar(&o.top, "top", 0, "top/bottom N (default from config)")
	fs.BoolVar(&o.showData, "show-data", false, "print the filtered rows")
	fs.StringVar(&o.outDir, "out", "", "output directory for charts (overrides config)")
	fs.StringVar(&o.export, "export", "", "comma separated export targets: file.csv, file.json or db")
	fs.BoolVar(&o.charts, "charts", true, "write chart PNGs")
	if err := fs.Parse(args); err != nil {
		return o, nil, err
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return o, set, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	o, set, err := parseFlags(args)
	if err != nil {
		return err
	}
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.dataPath != "" {
		cfg.DataPath = o.dataPath
	}
	if o.outDir != "" {
		cfg.OutputDir = o.outDir
	}
	config.NewLogger(cfg)

	ds, err := pipeline.LoadCSV(ctx, cfg.DataPath)
	if err != nil {
		return err
	}

	state := pipeline.DefaultState(ds, cfg.DefaultTopN)
	if set["countries"] {
		state.Filter.Countries = utils.SplitList(o.countries)
		if state.Filter.Countries == nil {
			state.Filter.Countries = []string{}
		}
	}
	if set["age-min"] {
		state.Filter.AgeMin = o.ageMin
	}
	if set["age-max"] {
		state.Filter.AgeMax = o.ageMax
	}
	if set["top"] {
		state.TopN = o.top
	}
	state.ShowFullData = o.showData

	report, err := pipeline.BuildReport(ctx, ds, state)
	if err != nil {
		return err
	}
	printReport(stdout, ds, report)

	om := utils.NewOutputManager(cfg.OutputDir)
	if o.charts {
		dir, err := writeCharts(om, report, render.Options{Width: cfg.ChartWidth, Height: cfg.ChartHeight})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "\n📊 Charts written to %s\n", dir)
	}
	if o.export != "" {
		if err := exportReport(ctx, stdout, om, cfg, report, o.export); err != nil {
			return err
		}
	}
	return nil
}

func writeCharts(om *utils.OutputManager, report *model.Report, opts render.Options) (string, error) {
	var path string
	for _, name := range render.ChartNames() {
		png, err := render.ReportChart(report, name, opts)
		if err != nil {
			return "", fmt.Errorf("chart %s: %w", name, err)
		}
		if path, err = om.ChartPath(report.ID, name); err != nil {
			return "", err
		}
		if err := os.WriteFile(path, png, 0644); err != nil {
			return "", err
		}
	}
	return filepath.Dir(path), nil
}

// exportReport resolves bare file names into the report's output directory.
func exportReport(ctx context.Context, stdout io.Writer, om *utils.OutputManager, cfg config.Config, report *model.Report, targets string) error {
	var spec model.Export
	for _, t := range utils.SplitList(targets) {
		if t == "db" {
			if err := store.InitDB(cfg.DBPath); err != nil {
				return fmt.Errorf("init report store: %w", err)
			}
			defer store.Close()
			spec.DB = cfg.DBPath
			continue
		}
		if ft := om.FileType(t); ft != "csv" && ft != "json" {
			return fmt.Errorf("unsupported export target %q", t)
		}
		path := t
		if filepath.Base(t) == t {
			p, err := om.FilePath(report.ID, t)
			if err != nil {
				return err
			}
			path = p
		}
		if spec.File != "" {
			return fmt.Errorf("only one export file allowed, got %q and %q", spec.File, path)
		}
		spec.File = path
	}

	failed := 0
	for _, res := range pipeline.ExportReport(ctx, report, spec) {
		if res.Success {
			fmt.Fprintf(stdout, "✅ Exported %s to %s (%d records)\n", res.Type, res.Path, res.RecordCount)
		} else {
			failed++
			fmt.Fprintf(stdout, "❌ Export %s to %s failed: %s\n", res.Type, res.Path, res.Error)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d export(s) failed", failed)
	}
	return nil
}

func printReport(w io.Writer, ds *model.Dataset, r *model.Report) {
	fmt.Fprintf(w, "📥 %s: %d rows, %d null cells\n", ds.Profile.Source, ds.Profile.RowCount, ds.Profile.TotalNulls)
	fmt.Fprintf(w, "🔎 countries=%s age=%d-%d top=%d\n",
		strings.Join(r.State.Filter.Countries, ","), r.State.Filter.AgeMin, r.State.Filter.AgeMax, r.State.TopN)
	fmt.Fprintf(w, "👥 %d matching users, mean age %s\n", r.RowCount, formatStat(r.MeanAge))
	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "⚠️  %s\n", warn)
	}
	if r.Empty {
		return
	}

	for _, t := range []model.SummaryTable{
		r.TopCountries, r.BottomCountries, r.Subscriptions, r.Genres,
		r.MeanAgeByCountry, r.MeanWatchBySubscription,
		r.WatchTimeDistribution.Table, r.AgeDistribution.Table, r.LoginsByMonth,
	} {
		printTable(w, t)
	}

	fmt.Fprintf(w, "\n%s: %s\n", "Age vs watch time correlation", formatStat(r.AgeWatchCorrelation))

	fmt.Fprintln(w, "\nDescriptive statistics")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "field\tcount\tmean\tstd\tmin\t25%\t50%\t75%\tmax")
	for _, fs := range r.Describe {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n", fs.Field, fs.Count,
			formatStat(fs.Mean), formatStat(fs.Std), formatStat(fs.Min),
			formatStat(fs.P25), formatStat(fs.P50), formatStat(fs.P75), formatStat(fs.Max))
	}
	tw.Flush()

	if r.State.ShowFullData {
		fmt.Fprintln(w, "\nFiltered rows")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "user_id\tname\tage\tcountry\tsubscription\twatch_hours\tgenre\tlast_login")
		for _, rec := range r.Rows {
			login := ""
			if !rec.IsNull(model.FieldLastLogin) {
				login = rec.LastLogin.Format("2006-01-02")
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n", rec.UserID, rec.Name, rec.Age, rec.Country,
				rec.SubscriptionType, utils.FormatFloat(rec.WatchTimeHours), rec.FavoriteGenre, login)
		}
		tw.Flush()
	}
}

func printTable(w io.Writer, t model.SummaryTable) {
	fmt.Fprintf(w, "\n%s\n", t.Title)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", t.KeyColumn, t.ValueColumn)
	for _, row := range t.Rows {
		v := "n/a"
		if !row.Undefined {
			v = utils.FormatFloat(math.Round(row.Value*100) / 100)
		}
		fmt.Fprintf(tw, "%s\t%s\n", row.Key, v)
	}
	tw.Flush()
}

func formatStat(s model.Statistic) string {
	if err := s.Check(); err != nil {
		return fmt.Sprintf("undefined (n=%d)", s.N)
	}
	v, _ := s.Float()
	return fmt.Sprintf("%.2f", v)
}
