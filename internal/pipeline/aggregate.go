package pipeline

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"go-viewer-dashboard/internal/model"
	"go-viewer-dashboard/pkg/utils"

	"gonum.org/v1/gonum/stat"
)

// ------------------- Count by key -------------------

// CountBy groups records by a categorical field and counts each group. Rows
// keep first-encountered order and null keys are counted under
// model.MissingKey, so the counts always sum to len(records).
func CountBy(records []model.Record, field string) (model.SummaryTable, error) {
	if !IsCategoricalField(field) {
		return model.SummaryTable{}, fmt.Errorf("%w: %q is not a grouping key", model.ErrUnknownField, field)
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, rec := range records {
		key := groupKey(rec, field)
		if _, exists := counts[key]; !exists {
			order = append(order, key)
		}
		counts[key]++
	}

	rows := make([]model.SummaryRow, 0, len(order))
	for _, key := range order {
		rows = append(rows, model.SummaryRow{Key: key, Value: float64(counts[key]), Count: counts[key]})
	}
	return model.SummaryTable{
		Title:       "Users by " + strings.ToLower(FieldLabel(field)),
		KeyColumn:   FieldLabel(field),
		ValueColumn: "Users",
		Rows:        rows,
	}, nil
}

func groupKey(rec model.Record, field string) string {
	if key, ok := categoryOf(rec, field); ok {
		return key
	}
	return model.MissingKey
}

// TopN keeps the n rows with the largest values, largest first. Ties keep
// table order. n above the row count is clamped.
func TopN(t model.SummaryTable, n int) (model.SummaryTable, error) {
	if n < 1 {
		return model.SummaryTable{}, model.ErrInvalidTopN
	}
	ranked := rankDescending(t.Rows)
	if n > len(ranked) {
		n = len(ranked)
	}
	out := t
	out.Title = fmt.Sprintf("Top %d: %s", n, t.Title)
	out.Rows = ranked[:n]
	return out, nil
}

// BottomN keeps the n rows with the smallest values, smallest first. It takes
// the tail of the same ranking TopN uses, so the two never overlap while
// 2n <= rows and together cover every row once 2n >= rows.
func BottomN(t model.SummaryTable, n int) (model.SummaryTable, error) {
	if n < 1 {
		return model.SummaryTable{}, model.ErrInvalidTopN
	}
	ranked := rankDescending(t.Rows)
	if n > len(ranked) {
		n = len(ranked)
	}
	tail := make([]model.SummaryRow, n)
	copy(tail, ranked[len(ranked)-n:])
	sort.SliceStable(tail, func(i, j int) bool { return tail[i].Value < tail[j].Value })

	out := t
	out.Title = fmt.Sprintf("Bottom %d: %s", n, t.Title)
	out.Rows = tail
	return out, nil
}

func rankDescending(rows []model.SummaryRow) []model.SummaryRow {
	ranked := make([]model.SummaryRow, len(rows))
	copy(ranked, rows)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Value > ranked[j].Value })
	return ranked
}

// CountByMonth counts logins per calendar month in chronological order.
// Records without a login date are left out.
func CountByMonth(records []model.Record) model.SummaryTable {
	t, _ := CountBy(records, model.FieldLoginMonth)
	rows := make([]model.SummaryRow, 0, len(t.Rows))
	for _, r := range t.Rows {
		if r.Key != model.MissingKey {
			rows = append(rows, r)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	t.Rows = rows
	t.Title = "Last logins per month"
	t.ValueColumn = "Logins"
	return t
}

// ------------------- Means -------------------

// MeanBy averages a numeric field per group of a categorical key. Groups with
// no non-null values are kept and flagged Undefined.
func MeanBy(records []model.Record, key, field string) (model.SummaryTable, error) {
	if !IsCategoricalField(key) {
		return model.SummaryTable{}, fmt.Errorf("%w: %q is not a grouping key", model.ErrUnknownField, key)
	}
	if !IsNumericField(field) {
		return model.SummaryTable{}, fmt.Errorf("%w: %q is not numeric", model.ErrUnknownField, field)
	}

	values := make(map[string][]float64)
	order := make([]string, 0)
	for _, rec := range records {
		k := groupKey(rec, key)
		if _, exists := values[k]; !exists {
			order = append(order, k)
			values[k] = nil
		}
		if v, ok := rec.Float(field); ok {
			values[k] = append(values[k], v)
		}
	}

	rows := make([]model.SummaryRow, 0, len(order))
	for _, k := range order {
		vs := values[k]
		row := model.SummaryRow{Key: k, Count: len(vs)}
		if len(vs) == 0 {
			row.Undefined = true
		} else {
			row.Value = stat.Mean(vs, nil)
		}
		rows = append(rows, row)
	}
	return model.SummaryTable{
		Title:       fmt.Sprintf("Mean %s by %s", strings.ToLower(FieldLabel(field)), strings.ToLower(FieldLabel(key))),
		KeyColumn:   FieldLabel(key),
		ValueColumn: "Mean " + strings.ToLower(FieldLabel(field)),
		Rows:        rows,
	}, nil
}

// Mean averages a numeric field over all non-null values.
func Mean(records []model.Record, field string) (model.Statistic, error) {
	if !IsNumericField(field) {
		return model.Statistic{}, fmt.Errorf("%w: %q is not numeric", model.ErrUnknownField, field)
	}
	vs := numericValues(records, field)
	name := "mean_" + field
	if len(vs) == 0 {
		return model.UndefinedStatistic(name, 0), nil
	}
	return model.NewStatistic(name, stat.Mean(vs, nil), len(vs)), nil
}

func numericValues(records []model.Record, field string) []float64 {
	vs := make([]float64, 0, len(records))
	for _, rec := range records {
		if v, ok := rec.Float(field); ok {
			vs = append(vs, v)
		}
	}
	return vs
}

// ------------------- Correlation -------------------

// Correlation computes the Pearson coefficient between two numeric fields over
// records where both are non-null. It is undefined for fewer than two pairs or
// when either side is constant.
func Correlation(records []model.Record, x, y string) (model.Statistic, error) {
	if !IsNumericField(x) {
		return model.Statistic{}, fmt.Errorf("%w: %q is not numeric", model.ErrUnknownField, x)
	}
	if !IsNumericField(y) {
		return model.Statistic{}, fmt.Errorf("%w: %q is not numeric", model.ErrUnknownField, y)
	}

	xs := make([]float64, 0, len(records))
	ys := make([]float64, 0, len(records))
	for _, rec := range records {
		xv, okX := rec.Float(x)
		yv, okY := rec.Float(y)
		if okX && okY {
			xs = append(xs, xv)
			ys = append(ys, yv)
		}
	}

	name := fmt.Sprintf("corr_%s_%s", x, y)
	if len(xs) < 2 || isConstant(xs) || isConstant(ys) {
		return model.UndefinedStatistic(name, len(xs)), nil
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return model.UndefinedStatistic(name, len(xs)), nil
	}
	return model.NewStatistic(name, r, len(xs)), nil
}

func isConstant(vs []float64) bool {
	for _, v := range vs[1:] {
		if v != vs[0] {
			return false
		}
	}
	return true
}

// CorrelationMatrix correlates every pair of the given numeric fields.
func CorrelationMatrix(records []model.Record, fields []string) (model.CorrelationMatrix, error) {
	m := model.CorrelationMatrix{Fields: fields, Values: make([][]model.Statistic, len(fields))}
	for i, fx := range fields {
		m.Values[i] = make([]model.Statistic, len(fields))
		for j, fy := range fields {
			s, err := Correlation(records, fx, fy)
			if err != nil {
				return model.CorrelationMatrix{}, err
			}
			m.Values[i][j] = s
		}
	}
	return m, nil
}

// CorrelationHeatmap flattens a correlation matrix for the heatmap renderer.
// Undefined cells are rendered as 0.
func CorrelationHeatmap(cm model.CorrelationMatrix) model.Matrix {
	labels := make([]string, len(cm.Fields))
	for i, f := range cm.Fields {
		labels[i] = FieldLabel(f)
	}
	cells := make([][]float64, len(cm.Values))
	for i, row := range cm.Values {
		cells[i] = make([]float64, len(row))
		for j, s := range row {
			if v, ok := s.Float(); ok {
				cells[i][j] = v
			}
		}
	}
	return model.Matrix{
		Title:    "Correlation between numeric fields",
		RowField: "field",
		ColField: "field",
		Rows:     labels,
		Cols:     labels,
		Cells:    cells,
	}
}

// Pairs lists (x, y) for each record where both fields are non-null. The key
// holds the formatted x value so a scatter renderer can read it back.
func Pairs(records []model.Record, x, y string) (model.SummaryTable, error) {
	if !IsNumericField(x) || !IsNumericField(y) {
		return model.SummaryTable{}, fmt.Errorf("%w: pairs need numeric fields, got %q and %q", model.ErrUnknownField, x, y)
	}
	rows := make([]model.SummaryRow, 0, len(records))
	for _, rec := range records {
		xv, okX := rec.Float(x)
		yv, okY := rec.Float(y)
		if okX && okY {
			rows = append(rows, model.SummaryRow{Key: utils.FormatFloat(xv), Value: yv, Count: 1})
		}
	}
	return model.SummaryTable{
		Title:       fmt.Sprintf("%s vs %s", FieldLabel(x), strings.ToLower(FieldLabel(y))),
		KeyColumn:   FieldLabel(x),
		ValueColumn: FieldLabel(y),
		Rows:        rows,
	}, nil
}

// ------------------- Cross tabulation -------------------

// CrossTab counts records per (row key, column key). Categories appear in
// first-encountered order, absent combinations are 0 and nulls are counted
// under model.MissingKey.
func CrossTab(records []model.Record, rowField, colField string) (model.Matrix, error) {
	for _, f := range []string{rowField, colField} {
		if !IsCategoricalField(f) {
			return model.Matrix{}, fmt.Errorf("%w: %q is not a grouping key", model.ErrUnknownField, f)
		}
	}

	rowIdx := make(map[string]int)
	colIdx := make(map[string]int)
	var rows, cols []string
	type cell struct{ r, c int }
	counts := make(map[cell]int)

	for _, rec := range records {
		rk := groupKey(rec, rowField)
		ck := groupKey(rec, colField)
		ri, ok := rowIdx[rk]
		if !ok {
			ri = len(rows)
			rowIdx[rk] = ri
			rows = append(rows, rk)
		}
		ci, ok := colIdx[ck]
		if !ok {
			ci = len(cols)
			colIdx[ck] = ci
			cols = append(cols, ck)
		}
		counts[cell{ri, ci}]++
	}

	m := model.Matrix{
		Title:     fmt.Sprintf("%s by %s", FieldLabel(rowField), strings.ToLower(FieldLabel(colField))),
		RowField:  rowField,
		ColField:  colField,
		Rows:      rows,
		Cols:      cols,
		Cells:     make([][]float64, len(rows)),
		RowTotals: make([]float64, len(rows)),
		ColTotals: make([]float64, len(cols)),
	}
	for i := range rows {
		m.Cells[i] = make([]float64, len(cols))
		for j := range cols {
			n := float64(counts[cell{i, j}])
			m.Cells[i][j] = n
			m.RowTotals[i] += n
			m.ColTotals[j] += n
		}
	}
	return m, nil
}
