package pipeline

import (
	"math"
	"sort"

	"go-viewer-dashboard/internal/model"

	"gonum.org/v1/gonum/stat"
)

// Describe summarizes every numeric field: count, mean, sample standard
// deviation, min, quartiles and max. Statistics without enough observations
// are undefined.
func Describe(records []model.Record) []model.FieldSummary {
	out := make([]model.FieldSummary, 0, len(model.NumericFields))
	for _, field := range model.NumericFields {
		out = append(out, describeField(records, field))
	}
	return out
}

func describeField(records []model.Record, field string) model.FieldSummary {
	vs := numericValues(records, field)
	sort.Float64s(vs)
	n := len(vs)

	fs := model.FieldSummary{Field: field, Count: n}
	stats := []struct {
		dst  *model.Statistic
		name string
		min  int
		calc func() float64
	}{
		{&fs.Mean, "mean", 1, func() float64 { return stat.Mean(vs, nil) }},
		{&fs.Std, "std", 2, func() float64 { return stat.StdDev(vs, nil) }},
		{&fs.Min, "min", 1, func() float64 { return vs[0] }},
		{&fs.P25, "25%", 1, func() float64 { return quantile(vs, 0.25) }},
		{&fs.P50, "50%", 1, func() float64 { return quantile(vs, 0.50) }},
		{&fs.P75, "75%", 1, func() float64 { return quantile(vs, 0.75) }},
		{&fs.Max, "max", 1, func() float64 { return vs[n-1] }},
	}
	for _, s := range stats {
		if n < s.min {
			*s.dst = model.UndefinedStatistic(s.name, n)
			continue
		}
		*s.dst = model.NewStatistic(s.name, s.calc(), n)
	}
	return fs
}

// quantile interpolates linearly between the closest ranks of sorted values.
// This matches the default of common dataframe libraries; gonum's LinInterp
// uses a different plotting position.
func quantile(sorted []float64, p float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}
