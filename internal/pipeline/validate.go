package pipeline

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go-viewer-dashboard/internal/model"
)

// loginLayouts are the accepted last_login formats, tried in order
var loginLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// minValues are the lower bounds enforced on numeric columns
var minValues = map[string]float64{
	model.FieldAge:            0,
	model.FieldWatchTimeHours: 0,
}

// fieldError pins a parse failure to a column
type fieldError struct {
	field string
	err   error
}

func (e *fieldError) Error() string { return fmt.Sprintf("field %s: %v", e.field, e.err) }
func (e *fieldError) Unwrap() error { return e.err }

// missingColumns returns the required columns absent from a normalized header.
func missingColumns(columns []string) []string {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	var missing []string
	for _, f := range model.RequiredFields {
		if !present[f] {
			missing = append(missing, f)
		}
	}
	return missing
}

// parseRecord validates a raw row and converts it to a typed Record. Empty
// cells become nulls. badDate is set when last_login was present but
// unparseable; that cell is treated as null.
func parseRecord(raw GenericRecord) (rec model.Record, badDate bool, err error) {
	value := func(field string) (string, bool) {
		v := strings.TrimSpace(raw[field])
		if v == "" {
			rec.Nulls = append(rec.Nulls, field)
			return "", false
		}
		return v, true
	}

	rec.UserID, _ = value(model.FieldUserID)
	rec.Name, _ = value(model.FieldName)

	if v, ok := value(model.FieldAge); ok {
		age, convErr := parseAge(v)
		if convErr != nil {
			return rec, false, &fieldError{field: model.FieldAge, err: convErr}
		}
		if err := checkMin(model.FieldAge, float64(age)); err != nil {
			return rec, false, err
		}
		rec.Age = age
	}

	rec.Country, _ = value(model.FieldCountry)
	rec.SubscriptionType, _ = value(model.FieldSubscriptionType)

	if v, ok := value(model.FieldWatchTimeHours); ok {
		hours, convErr := strconv.ParseFloat(v, 64)
		if convErr != nil || math.IsNaN(hours) || math.IsInf(hours, 0) {
			return rec, false, &fieldError{field: model.FieldWatchTimeHours, err: fmt.Errorf("must be numeric, got %q", v)}
		}
		if err := checkMin(model.FieldWatchTimeHours, hours); err != nil {
			return rec, false, err
		}
		rec.WatchTimeHours = hours
	}

	rec.FavoriteGenre, _ = value(model.FieldFavoriteGenre)

	if v, ok := value(model.FieldLastLogin); ok {
		t, parseErr := parseLogin(v)
		if parseErr != nil {
			rec.Nulls = append(rec.Nulls, model.FieldLastLogin)
			badDate = true
		} else {
			rec.LastLogin = t
		}
	}

	return rec, badDate, nil
}

// parseAge accepts whole numbers, including "31.0" as written by spreadsheet exports.
func parseAge(v string) (int, error) {
	if age, err := strconv.Atoi(v); err == nil {
		return age, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("must be an integer, got %q", v)
	}
	return int(f), nil
}

func parseLogin(v string) (time.Time, error) {
	for _, layout := range loginLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized date format")
}

func checkMin(field string, v float64) error {
	if min, ok := minValues[field]; ok && v < min {
		return &fieldError{field: field, err: fmt.Errorf("below minimum: got %v, want >= %v", v, min)}
	}
	return nil
}
