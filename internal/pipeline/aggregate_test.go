package pipeline

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"go-viewer-dashboard/internal/model"
)

func countTable(pairs ...interface{}) model.SummaryTable {
	t := model.SummaryTable{Title: "t"}
	for i := 0; i < len(pairs); i += 2 {
		n := pairs[i+1].(int)
		t.Rows = append(t.Rows, model.SummaryRow{Key: pairs[i].(string), Value: float64(n), Count: n})
	}
	return t
}

func TestCountByCountry(t *testing.T) {
	got, err := CountBy(sampleRecords(), model.FieldCountry)
	if err != nil {
		t.Fatalf("CountBy: %v", err)
	}
	if !reflect.DeepEqual(got.Keys(), []string{"US", "MX"}) {
		t.Fatalf("keys = %v", got.Keys())
	}
	if v := rowValues(got); v["US"] != 2 || v["MX"] != 1 {
		t.Fatalf("counts = %v", v)
	}
}

func TestCountBySumsToInputWithNulls(t *testing.T) {
	recs := append(sampleRecords(), model.Record{Age: 50, Nulls: []string{model.FieldCountry}})
	got, err := CountBy(recs, model.FieldCountry)
	if err != nil {
		t.Fatalf("CountBy: %v", err)
	}
	if got.Total() != float64(len(recs)) {
		t.Fatalf("total %v != %d", got.Total(), len(recs))
	}
	if v := rowValues(got); v[model.MissingKey] != 1 {
		t.Fatalf("null country should be counted under %q: %v", model.MissingKey, v)
	}
}

func TestCountByRejectsUnknownKey(t *testing.T) {
	for _, field := range []string{"rating", model.FieldWatchTimeHours} {
		if _, err := CountBy(sampleRecords(), field); !errors.Is(err, model.ErrUnknownField) {
			t.Fatalf("CountBy(%q): expected ErrUnknownField, got %v", field, err)
		}
	}
}

func TestCountByDerivedAgeRange(t *testing.T) {
	got, err := CountBy(sampleRecords(), model.FieldAgeRange)
	if err != nil {
		t.Fatalf("CountBy: %v", err)
	}
	if v := rowValues(got); v["25-34"] != 2 || v["35-44"] != 1 {
		t.Fatalf("age ranges = %v", v)
	}
}

func TestTopAndBottomN(t *testing.T) {
	table := countTable("A", 5, "B", 3, "C", 3, "D", 1)

	top, err := TopN(table, 2)
	if err != nil {
		t.Fatalf("TopN: %v", err)
	}
	if !reflect.DeepEqual(top.Keys(), []string{"A", "B"}) {
		t.Fatalf("top = %v", top.Keys())
	}
	bottom, err := BottomN(table, 2)
	if err != nil {
		t.Fatalf("BottomN: %v", err)
	}
	if !reflect.DeepEqual(bottom.Keys(), []string{"D", "C"}) {
		t.Fatalf("bottom = %v", bottom.Keys())
	}
}

func TestTopBottomDisjointAndCovering(t *testing.T) {
	table := countTable("A", 5, "B", 3, "C", 3, "D", 1, "E", 3)
	keys := len(table.Rows)

	for n := 1; n <= keys+1; n++ {
		top, _ := TopN(table, n)
		bottom, _ := BottomN(table, n)
		seen := make(map[string]int)
		for _, k := range top.Keys() {
			seen[k]++
		}
		for _, k := range bottom.Keys() {
			seen[k]++
		}
		if 2*n <= keys {
			for k, c := range seen {
				if c > 1 {
					t.Fatalf("n=%d: key %s in both top and bottom", n, k)
				}
			}
		}
		if 2*n >= keys && len(seen) != keys {
			t.Fatalf("n=%d: top and bottom cover %d of %d keys", n, len(seen), keys)
		}
	}
}

func TestTopNClampsAndValidates(t *testing.T) {
	table := countTable("A", 1, "B", 2)
	top, err := TopN(table, 10)
	if err != nil {
		t.Fatalf("TopN: %v", err)
	}
	if len(top.Rows) != 2 || top.Rows[0].Key != "B" {
		t.Fatalf("top = %+v", top.Rows)
	}
	if _, err := TopN(table, 0); !errors.Is(err, model.ErrInvalidTopN) {
		t.Fatalf("expected ErrInvalidTopN, got %v", err)
	}
	if _, err := BottomN(table, -1); !errors.Is(err, model.ErrInvalidTopN) {
		t.Fatalf("expected ErrInvalidTopN, got %v", err)
	}
	if table.Rows[0].Key != "A" {
		t.Fatalf("TopN must not reorder its input")
	}
}

func TestMeanByCountry(t *testing.T) {
	got, err := MeanBy(sampleRecords(), model.FieldCountry, model.FieldAge)
	if err != nil {
		t.Fatalf("MeanBy: %v", err)
	}
	if v := rowValues(got); v["US"] != 32.5 || v["MX"] != 30 {
		t.Fatalf("means = %v", v)
	}
}

func TestMeanByFlagsEmptyGroups(t *testing.T) {
	recs := append(sampleRecords(), model.Record{Country: "CA", Nulls: []string{model.FieldAge}})
	got, err := MeanBy(recs, model.FieldCountry, model.FieldAge)
	if err != nil {
		t.Fatalf("MeanBy: %v", err)
	}
	row, ok := got.Lookup("CA")
	if !ok || !row.Undefined || row.Count != 0 {
		t.Fatalf("CA mean should be undefined, got %+v", row)
	}
	if _, err := MeanBy(recs, model.FieldCountry, model.FieldCountry); !errors.Is(err, model.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField for non-numeric field, got %v", err)
	}
}

func TestMean(t *testing.T) {
	s, err := Mean(sampleRecords(), model.FieldAge)
	if err != nil {
		t.Fatalf("Mean: %v", err)
	}
	if v, ok := s.Float(); !ok || math.Abs(v-95.0/3) > 1e-9 || s.N != 3 {
		t.Fatalf("mean = %+v", s)
	}

	empty, err := Mean(nil, model.FieldAge)
	if err != nil {
		t.Fatalf("Mean: %v", err)
	}
	if empty.Defined || empty.Value != nil || empty.N != 0 {
		t.Fatalf("mean of nothing must be undefined, got %+v", empty)
	}
	if !errors.Is(empty.Check(), model.ErrUndefinedStatistic) {
		t.Fatalf("Check should report ErrUndefinedStatistic")
	}
}

func TestCorrelation(t *testing.T) {
	recs := []model.Record{user("US", 20, 2), user("US", 30, 4), user("MX", 40, 6)}
	s, err := Correlation(recs, model.FieldAge, model.FieldWatchTimeHours)
	if err != nil {
		t.Fatalf("Correlation: %v", err)
	}
	if v, ok := s.Float(); !ok || math.Abs(v-1) > 1e-9 {
		t.Fatalf("expected perfect correlation, got %+v", s)
	}

	recs[2].WatchTimeHours = 0
	s, _ = Correlation(recs, model.FieldAge, model.FieldWatchTimeHours)
	if v, ok := s.Float(); !ok || v < -1 || v > 1 {
		t.Fatalf("correlation out of range: %+v", s)
	}
}

func TestCorrelationUndefined(t *testing.T) {
	tests := []struct {
		name string
		recs []model.Record
	}{
		{"no rows", nil},
		{"single row", []model.Record{user("US", 40, 12)}},
		{"constant side", []model.Record{user("US", 40, 1), user("US", 40, 5), user("MX", 40, 9)}},
		{"nulls leave one pair", []model.Record{user("US", 40, 1), {Country: "US", Age: 0, WatchTimeHours: 3, Nulls: []string{model.FieldAge}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Correlation(tt.recs, model.FieldAge, model.FieldWatchTimeHours)
			if err != nil {
				t.Fatalf("Correlation: %v", err)
			}
			if s.Defined || s.Value != nil {
				t.Fatalf("expected undefined, got %+v", s)
			}
		})
	}
	if _, err := Correlation(nil, model.FieldAge, model.FieldCountry); !errors.Is(err, model.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestCorrelationMatrix(t *testing.T) {
	recs := []model.Record{user("US", 20, 9), user("US", 30, 4), user("MX", 40, 6)}
	m, err := CorrelationMatrix(recs, model.NumericFields)
	if err != nil {
		t.Fatalf("CorrelationMatrix: %v", err)
	}
	for i := range m.Fields {
		if v, ok := m.Values[i][i].Float(); !ok || math.Abs(v-1) > 1e-9 {
			t.Fatalf("diagonal %d = %+v", i, m.Values[i][i])
		}
	}
	a, _ := m.Values[0][1].Float()
	b, _ := m.Values[1][0].Float()
	if math.Abs(a-b) > 1e-12 {
		t.Fatalf("matrix not symmetric: %v vs %v", a, b)
	}

	hm := CorrelationHeatmap(m)
	d, _ := m.Values[0][0].Float()
	if len(hm.Rows) != 2 || len(hm.Cells) != 2 || hm.Cells[0][0] != d {
		t.Fatalf("heatmap = %+v", hm)
	}
}

func TestCrossTabMarginsMatchCountBy(t *testing.T) {
	ds := loadFixture(t, usersCSV)
	m, err := CrossTab(ds.Records, model.FieldCountry, model.FieldSubscriptionType)
	if err != nil {
		t.Fatalf("CrossTab: %v", err)
	}
	byCountry, _ := CountBy(ds.Records, model.FieldCountry)
	bySub, _ := CountBy(ds.Records, model.FieldSubscriptionType)

	if !reflect.DeepEqual(m.Rows, byCountry.Keys()) || !reflect.DeepEqual(m.Cols, bySub.Keys()) {
		t.Fatalf("crosstab keys %v x %v", m.Rows, m.Cols)
	}
	for i, row := range byCountry.Rows {
		if m.RowTotals[i] != row.Value {
			t.Fatalf("row total %s = %v, want %v", row.Key, m.RowTotals[i], row.Value)
		}
	}
	for j, col := range bySub.Rows {
		if m.ColTotals[j] != col.Value {
			t.Fatalf("col total %s = %v, want %v", col.Key, m.ColTotals[j], col.Value)
		}
	}
	// CA has only a Premium user
	if m.Cells[2][0] != 0 || m.Cells[2][1] != 1 {
		t.Fatalf("CA row = %v", m.Cells[2])
	}
}

func TestCountByMonth(t *testing.T) {
	day := func(s string) time.Time {
		d, _ := time.Parse("2006-01-02", s)
		return d
	}
	recs := []model.Record{
		{LastLogin: day("2024-02-01")},
		{LastLogin: day("2024-01-15")},
		{Nulls: []string{model.FieldLastLogin}},
		{LastLogin: day("2024-01-20")},
	}
	got := CountByMonth(recs)
	if !reflect.DeepEqual(got.Keys(), []string{"2024-01", "2024-02"}) {
		t.Fatalf("months = %v", got.Keys())
	}
	if v := rowValues(got); v["2024-01"] != 2 || v["2024-02"] != 1 {
		t.Fatalf("counts = %v", v)
	}
	if empty := CountByMonth(nil); empty.Rows == nil || len(empty.Rows) != 0 {
		t.Fatalf("expected empty non-nil rows, got %#v", empty.Rows)
	}
}

func TestPairs(t *testing.T) {
	recs := append(sampleRecords(), model.Record{Country: "US", Age: 50, Nulls: []string{model.FieldWatchTimeHours}})
	got, err := Pairs(recs, model.FieldAge, model.FieldWatchTimeHours)
	if err != nil {
		t.Fatalf("Pairs: %v", err)
	}
	if len(got.Rows) != 3 || got.Rows[1].Key != "40" || got.Rows[1].Value != 12 {
		t.Fatalf("pairs = %+v", got.Rows)
	}
}
