package pipeline

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"go-viewer-dashboard/internal/model"
)

// GenericRecord is one raw source row keyed by canonical column name
type GenericRecord map[string]string

// ------------------- Ingestion -------------------

// LoadCSV opens a delimited file and loads it as a read-only Dataset.
func LoadCSV(ctx context.Context, path string) (*model.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &model.LoadError{Path: path, Err: fmt.Errorf("failed to open CSV file: %w", err)}
	}
	defer file.Close()

	return ReadCSV(ctx, file, path)
}

// ReadCSV reads a CSV with a header row from r. source names the input in
// errors and in the dataset profile.
func ReadCSV(ctx context.Context, r io.Reader, source string) (*model.Dataset, error) {
	start := time.Now()
	slog.Info("starting ingestion", "source", source)

	csvReader := csv.NewReader(r)
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true

	headers, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &model.LoadError{Path: source, Err: errors.New("file is empty")}
	}
	if err != nil {
		return nil, &model.LoadError{Path: source, Err: fmt.Errorf("failed to read CSV header: %w", err)}
	}

	columns := NormalizeHeaders(headers)
	if missing := missingColumns(columns); len(missing) > 0 {
		return nil, &model.LoadError{Path: source, Missing: missing}
	}
	index := columnIndex(columns)

	profile := newProfileBuilder(source, headers, columns)
	records := make([]model.Record, 0, 256)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			loadErr := &model.LoadError{Path: source, Err: fmt.Errorf("CSV read error: %w", err)}
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				loadErr.Line = parseErr.Line
			}
			return nil, loadErr
		}
		line, _ := csvReader.FieldPos(0)

		raw := make(GenericRecord, len(index))
		for field, i := range index {
			if i < len(row) {
				raw[field] = row[i]
			}
		}

		rec, badDate, err := parseRecord(raw)
		if err != nil {
			loadErr := &model.LoadError{Path: source, Line: line, Err: err}
			var fe *fieldError
			if errors.As(err, &fe) {
				loadErr.Column = fe.field
				loadErr.Err = fe.err
			}
			return nil, loadErr
		}

		profile.observe(rec, badDate)
		records = append(records, rec)
	}

	ds := &model.Dataset{Records: records, Profile: profile.build(time.Since(start))}
	slog.Info("ingestion done",
		"source", source,
		"records", len(records),
		"null_cells", ds.Profile.TotalNulls,
		"countries", len(ds.Profile.Countries),
		"duration_ms", ds.Profile.LoadDurationMS,
	)
	return ds, nil
}

// columnIndex maps canonical columns to their first position in the header.
func columnIndex(columns []string) map[string]int {
	index := make(map[string]int, len(model.RequiredFields))
	for i, c := range columns {
		if _, seen := index[c]; !seen && isRequired(c) {
			index[c] = i
		}
	}
	return index
}

func isRequired(column string) bool {
	for _, f := range model.RequiredFields {
		if f == column {
			return true
		}
	}
	return false
}

// profileBuilder accumulates the dataset profile while rows stream in
type profileBuilder struct {
	profile   model.DatasetProfile
	seen      map[string]struct{}
	sawAge    bool
	badLogins int
}

func newProfileBuilder(source string, headers, columns []string) *profileBuilder {
	nulls := make(map[string]int, len(model.RequiredFields))
	for _, f := range model.RequiredFields {
		nulls[f] = 0
	}
	return &profileBuilder{
		profile: model.DatasetProfile{
			Source:        source,
			Columns:       columns,
			SourceColumns: headers,
			NullCounts:    nulls,
			Countries:     []string{},
		},
		seen: make(map[string]struct{}),
	}
}

func (b *profileBuilder) observe(rec model.Record, badDate bool) {
	b.profile.RowCount++
	for _, f := range rec.Nulls {
		b.profile.NullCounts[f]++
		b.profile.TotalNulls++
	}
	if badDate {
		b.badLogins++
	}
	if c, ok := rec.Category(model.FieldCountry); ok {
		if _, dup := b.seen[c]; !dup {
			b.seen[c] = struct{}{}
			b.profile.Countries = append(b.profile.Countries, c)
		}
	}
	if !rec.IsNull(model.FieldAge) {
		if !b.sawAge || rec.Age < b.profile.AgeMin {
			b.profile.AgeMin = rec.Age
		}
		if !b.sawAge || rec.Age > b.profile.AgeMax {
			b.profile.AgeMax = rec.Age
		}
		b.sawAge = true
	}
}

func (b *profileBuilder) build(elapsed time.Duration) model.DatasetProfile {
	p := b.profile
	p.BadLoginDates = b.badLogins
	p.LoadedAt = time.Now().UTC()
	p.LoadDurationMS = elapsed.Milliseconds()
	return p
}
