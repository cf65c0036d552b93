package pipeline

import (
	"fmt"
	"strings"

	"go-viewer-dashboard/internal/model"
)

// Bins partitions a numeric range into labeled intervals. Intervals are
// [lo, hi) unless RightClosed, then (lo, hi].
type Bins struct {
	Edges       []float64 `json:"edges"`
	Labels      []string  `json:"labels"`
	RightClosed bool      `json:"right_closed"`
}

// WatchTimeBins are the weekly watch-time ranges shown on the dashboard.
var WatchTimeBins = Bins{
	Edges:  []float64{0, 5, 10, 15, 20, 25, 30, 50},
	Labels: []string{"0-5", "6-10", "11-15", "16-20", "21-25", "26-30", "30+"},
}

// AgeBins are the age ranges used for the age distribution and age_range key.
var AgeBins = Bins{
	Edges:  []float64{0, 18, 25, 35, 45, 55, 65, 130},
	Labels: []string{"<18", "18-24", "25-34", "35-44", "45-54", "55-64", "65+"},
}

// DefaultBins returns the dashboard bins for a numeric field.
func DefaultBins(field string) (Bins, error) {
	switch field {
	case model.FieldWatchTimeHours:
		return WatchTimeBins, nil
	case model.FieldAge:
		return AgeBins, nil
	}
	return Bins{}, fmt.Errorf("%w: no bins defined for %q", model.ErrUnknownField, field)
}

// Validate checks that edges strictly increase and every bin has a label.
func (b Bins) Validate() error {
	if len(b.Edges) < 2 {
		return fmt.Errorf("%w: need at least two edges", model.ErrInvalidBins)
	}
	if len(b.Labels) != len(b.Edges)-1 {
		return fmt.Errorf("%w: %d edges need %d labels, got %d", model.ErrInvalidBins, len(b.Edges), len(b.Edges)-1, len(b.Labels))
	}
	for i := 1; i < len(b.Edges); i++ {
		if b.Edges[i] <= b.Edges[i-1] {
			return fmt.Errorf("%w: edges must strictly increase (%v after %v)", model.ErrInvalidBins, b.Edges[i], b.Edges[i-1])
		}
	}
	return nil
}

// labelFor finds the bin holding v. ok is false when v lies outside every bin.
func (b Bins) labelFor(v float64) (string, bool) {
	i, ok := b.index(v)
	if !ok {
		return "", false
	}
	return b.Labels[i], true
}

func (b Bins) index(v float64) (int, bool) {
	for i := 0; i+1 < len(b.Edges); i++ {
		lo, hi := b.Edges[i], b.Edges[i+1]
		if b.RightClosed {
			if v > lo && v <= hi {
				return i, true
			}
		} else if v >= lo && v < hi {
			return i, true
		}
	}
	return 0, false
}

// Bin counts a numeric field per bin. Every bin is listed in edge order, empty
// ones with 0. Values outside all bins are not distributed; they are counted in
// Excluded. Nulls are counted in Missing.
func Bin(records []model.Record, field string, bins Bins) (model.BinnedDistribution, error) {
	if !IsNumericField(field) {
		return model.BinnedDistribution{}, fmt.Errorf("%w: %q is not numeric", model.ErrUnknownField, field)
	}
	if err := bins.Validate(); err != nil {
		return model.BinnedDistribution{}, err
	}

	counts := make([]int, len(bins.Labels))
	dist := model.BinnedDistribution{Field: field}
	for _, rec := range records {
		v, ok := rec.Float(field)
		if !ok {
			dist.Missing++
			continue
		}
		i, ok := bins.index(v)
		if !ok {
			dist.Excluded++
			continue
		}
		counts[i]++
	}

	rows := make([]model.SummaryRow, len(bins.Labels))
	for i, label := range bins.Labels {
		rows[i] = model.SummaryRow{Key: label, Value: float64(counts[i]), Count: counts[i]}
	}
	dist.Table = model.SummaryTable{
		Title:       "Users per " + strings.ToLower(FieldLabel(field)) + " range",
		KeyColumn:   FieldLabel(field) + " range",
		ValueColumn: "Users",
		Rows:        rows,
	}
	return dist, nil
}
