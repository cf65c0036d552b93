package model

import (
	"fmt"
	"time"
)

// SummaryRow is one grouping key and its aggregate value
type SummaryRow struct {
	Key       string  `json:"key"`
	Value     float64 `json:"value"`
	Count     int     `json:"count"`
	Undefined bool    `json:"undefined,omitempty"` // no valid observations behind Value
}

// SummaryTable is a derived key -> value table. Bar, pie, line and scatter
// renderers all accept it.
type SummaryTable struct {
	Title       string       `json:"title"`
	KeyColumn   string       `json:"key_column"`
	ValueColumn string       `json:"value_column"`
	Rows        []SummaryRow `json:"rows"`
}

// Keys returns the row keys in table order.
func (t SummaryTable) Keys() []string {
	keys := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		keys[i] = r.Key
	}
	return keys
}

// Total sums the row values.
func (t SummaryTable) Total() float64 {
	var sum float64
	for _, r := range t.Rows {
		sum += r.Value
	}
	return sum
}

// Lookup finds the row for key.
func (t SummaryTable) Lookup(key string) (SummaryRow, bool) {
	for _, r := range t.Rows {
		if r.Key == key {
			return r, true
		}
	}
	return SummaryRow{}, false
}

// Matrix is a zero-filled joint table keyed by (row category, column category)
type Matrix struct {
	Title     string      `json:"title"`
	RowField  string      `json:"row_field"`
	ColField  string      `json:"col_field"`
	Rows      []string    `json:"rows"`
	Cols      []string    `json:"cols"`
	Cells     [][]float64 `json:"cells"`
	RowTotals []float64   `json:"row_totals,omitempty"`
	ColTotals []float64   `json:"col_totals,omitempty"`
}

// Statistic is a scalar that may be undefined. Value is nil when undefined.
type Statistic struct {
	Name    string   `json:"name"`
	Value   *float64 `json:"value"`
	N       int      `json:"n"`
	Defined bool     `json:"defined"`
}

// NewStatistic builds a defined statistic.
func NewStatistic(name string, v float64, n int) Statistic {
	return Statistic{Name: name, Value: &v, N: n, Defined: true}
}

// UndefinedStatistic builds a statistic with no value.
func UndefinedStatistic(name string, n int) Statistic {
	return Statistic{Name: name, N: n}
}

// Float returns the value and whether it is defined.
func (s Statistic) Float() (float64, bool) {
	if !s.Defined || s.Value == nil {
		return 0, false
	}
	return *s.Value, true
}

// Check returns ErrUndefinedStatistic, wrapped with the name and sample size,
// when the statistic has no value.
func (s Statistic) Check() error {
	if _, ok := s.Float(); !ok {
		return fmt.Errorf("%s: %w (n=%d)", s.Name, ErrUndefinedStatistic, s.N)
	}
	return nil
}

// CorrelationMatrix holds pairwise correlations between numeric fields
type CorrelationMatrix struct {
	Fields []string      `json:"fields"`
	Values [][]Statistic `json:"values"`
}

// BinnedDistribution counts a numeric field per labeled bin
type BinnedDistribution struct {
	Field    string       `json:"field"`
	Table    SummaryTable `json:"table"`
	Excluded int          `json:"excluded"` // non-null values outside every bin
	Missing  int          `json:"missing"`  // null values
}

// FieldSummary is the descriptive statistics block of one numeric column
type FieldSummary struct {
	Field string    `json:"field"`
	Count int       `json:"count"`
	Mean  Statistic `json:"mean"`
	Std   Statistic `json:"std"`
	Min   Statistic `json:"min"`
	P25   Statistic `json:"p25"`
	P50   Statistic `json:"p50"`
	P75   Statistic `json:"p75"`
	Max   Statistic `json:"max"`
}

// Report is the output of one full dashboard pass
type Report struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	State     DashboardState `json:"state"`
	RowCount  int            `json:"row_count"`
	Empty     bool           `json:"empty"`
	Warnings  []string       `json:"warnings,omitempty"`

	MeanAge                 Statistic          `json:"mean_age"`
	TopCountries            SummaryTable       `json:"top_countries"`
	BottomCountries         SummaryTable       `json:"bottom_countries"`
	Subscriptions           SummaryTable       `json:"subscriptions"`
	Genres                  SummaryTable       `json:"genres"`
	MeanAgeByCountry        SummaryTable       `json:"mean_age_by_country"`
	MeanWatchBySubscription SummaryTable       `json:"mean_watch_by_subscription"`
	LoginsByMonth           SummaryTable       `json:"logins_by_month"`
	AgeWatchPairs           SummaryTable       `json:"age_watch_pairs"`
	AgeWatchCorrelation     Statistic          `json:"age_watch_correlation"`
	Correlations            CorrelationMatrix  `json:"correlations"`
	CountryBySubscription   Matrix             `json:"country_by_subscription"`
	GenreByAgeRange         Matrix             `json:"genre_by_age_range"`
	WatchTimeDistribution   BinnedDistribution `json:"watch_time_distribution"`
	AgeDistribution         BinnedDistribution `json:"age_distribution"`
	Describe                []FieldSummary     `json:"describe"`
	Rows                    []Record           `json:"rows,omitempty"`
	Metrics                 ReportMetrics      `json:"metrics"`
}

// ExportResult represents the result of an export operation
type ExportResult struct {
	Type        string    `json:"type"` // "database", "csv", "json"
	Path        string    `json:"path"` // file path or table name
	RecordCount int       `json:"record_count"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Export defines export targets
type Export struct {
	DB   string `json:"db"`   // any non-empty value archives into the report store
	File string `json:"file"` // e.g. exports/report.csv or report.json
}
