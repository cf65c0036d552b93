package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go-viewer-dashboard/internal/model"

	"github.com/google/uuid"
)

// ------------------- Report Runner -------------------

// BuildReport runs one full dashboard pass: validate the state, filter once,
// then compute every summary table from the filtered records. The dataset is
// only read. Rows are attached only when state.ShowFullData is set.
func BuildReport(ctx context.Context, ds *model.Dataset, state model.DashboardState) (*model.Report, error) {
	if state.TopN < 1 {
		return nil, fmt.Errorf("%w: got %d", model.ErrInvalidTopN, state.TopN)
	}
	if err := ValidatePredicate(state.Filter, ds); err != nil {
		return nil, err
	}

	reportID := uuid.New().String()
	tracker := NewTracker(reportID)
	slog.Info("building report",
		"report_id", reportID,
		"countries", len(state.Filter.Countries),
		"age_min", state.Filter.AgeMin,
		"age_max", state.Filter.AgeMax,
		"top_n", state.TopN,
	)

	// --- FILTER STAGE ---
	tracker.StartStage("filter")
	filtered := Filter(ds.Records, state.Filter)
	tracker.EndStage("filter", len(filtered))

	report := &model.Report{
		ID:        reportID,
		CreatedAt: time.Now().UTC(),
		State:     state,
		RowCount:  len(filtered),
	}
	if len(filtered) == 0 {
		report.Empty = true
		report.Warnings = append(report.Warnings, model.EmptyResultWarning)
	}

	stages := []struct {
		name string
		run  func(*model.Report, []model.Record, model.DashboardState) error
	}{
		{"aggregate", aggregateStage},
		{"bin", binStage},
		{"correlate", correlateStage},
	}
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tracker.StartStage(st.name)
		if err := st.run(report, filtered, state); err != nil {
			tracker.FailStage(st.name, err)
			return nil, fmt.Errorf("%s stage: %w", st.name, err)
		}
		tracker.EndStage(st.name, len(filtered))
	}

	if state.ShowFullData {
		report.Rows = filtered
	}
	report.Metrics = tracker.Metrics(len(ds.Records), len(filtered))

	slog.Info("report built",
		"report_id", reportID,
		"rows", len(filtered),
		"warnings", len(report.Warnings),
		"duration", report.Metrics.ProcessingTime,
	)
	return report, nil
}

// DefaultState is the state the dashboard opens with.
func DefaultState(ds *model.Dataset, topN int) model.DashboardState {
	return model.DashboardState{Filter: DefaultPredicate(ds), TopN: topN}
}

func aggregateStage(r *model.Report, records []model.Record, state model.DashboardState) error {
	var err error
	r.MeanAge, err = Mean(records, model.FieldAge)
	if err != nil {
		return err
	}

	countries, err := CountBy(records, model.FieldCountry)
	if err != nil {
		return err
	}
	if r.TopCountries, err = TopN(countries, state.TopN); err != nil {
		return err
	}
	if r.BottomCountries, err = BottomN(countries, state.TopN); err != nil {
		return err
	}
	if r.Subscriptions, err = CountBy(records, model.FieldSubscriptionType); err != nil {
		return err
	}
	if r.Genres, err = CountBy(records, model.FieldFavoriteGenre); err != nil {
		return err
	}
	if r.MeanAgeByCountry, err = MeanBy(records, model.FieldCountry, model.FieldAge); err != nil {
		return err
	}
	if r.MeanWatchBySubscription, err = MeanBy(records, model.FieldSubscriptionType, model.FieldWatchTimeHours); err != nil {
		return err
	}
	if r.CountryBySubscription, err = CrossTab(records, model.FieldCountry, model.FieldSubscriptionType); err != nil {
		return err
	}
	if r.GenreByAgeRange, err = CrossTab(records, model.FieldFavoriteGenre, model.FieldAgeRange); err != nil {
		return err
	}
	r.LoginsByMonth = CountByMonth(records)
	r.Describe = Describe(records)
	return nil
}

func binStage(r *model.Report, records []model.Record, _ model.DashboardState) error {
	var err error
	if r.WatchTimeDistribution, err = Bin(records, model.FieldWatchTimeHours, WatchTimeBins); err != nil {
		return err
	}
	if r.AgeDistribution, err = Bin(records, model.FieldAge, AgeBins); err != nil {
		return err
	}
	for _, d := range []model.BinnedDistribution{r.WatchTimeDistribution, r.AgeDistribution} {
		if d.Excluded > 0 {
			r.Warnings = append(r.Warnings, fmt.Sprintf("%d %s values fall outside every bin and were excluded", d.Excluded, d.Field))
		}
	}
	return nil
}

func correlateStage(r *model.Report, records []model.Record, _ model.DashboardState) error {
	var err error
	if r.AgeWatchCorrelation, err = Correlation(records, model.FieldAge, model.FieldWatchTimeHours); err != nil {
		return err
	}
	if !r.AgeWatchCorrelation.Defined && !r.Empty {
		r.Warnings = append(r.Warnings, fmt.Sprintf("correlation between age and watch time is undefined (n=%d)", r.AgeWatchCorrelation.N))
	}
	if r.Correlations, err = CorrelationMatrix(records, model.NumericFields); err != nil {
		return err
	}
	r.AgeWatchPairs, err = Pairs(records, model.FieldAge, model.FieldWatchTimeHours)
	return err
}
