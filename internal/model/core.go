package model

import (
	"strconv"
	"time"
)

// Canonical column names after header normalization
const (
	FieldUserID           = "user_id"
	FieldName             = "name"
	FieldAge              = "age"
	FieldCountry          = "country"
	FieldSubscriptionType = "subscription_type"
	FieldWatchTimeHours   = "watch_time_hours"
	FieldFavoriteGenre    = "favorite_genre"
	FieldLastLogin        = "last_login"

	// Derived keys, computed from other columns
	FieldAgeRange   = "age_range"
	FieldLoginMonth = "login_month"
)

// MissingKey labels null categorical values in grouped output.
const MissingKey = "(missing)"

// RequiredFields lists every column a dataset must carry, in source order.
var RequiredFields = []string{
	FieldUserID,
	FieldName,
	FieldAge,
	FieldCountry,
	FieldSubscriptionType,
	FieldWatchTimeHours,
	FieldFavoriteGenre,
	FieldLastLogin,
}

// NumericFields are the columns usable for means, correlation and binning.
var NumericFields = []string{FieldAge, FieldWatchTimeHours}

// CategoricalFields are the columns usable as grouping keys.
var CategoricalFields = []string{
	FieldCountry,
	FieldSubscriptionType,
	FieldFavoriteGenre,
	FieldAge,
	FieldAgeRange,
	FieldLoginMonth,
}

// Record represents a single user row. It is never modified after loading.
type Record struct {
	UserID           string    `json:"user_id"`
	Name             string    `json:"name"`
	Age              int       `json:"age"`
	Country          string    `json:"country"`
	SubscriptionType string    `json:"subscription_type"`
	WatchTimeHours   float64   `json:"watch_time_hours"`
	FavoriteGenre    string    `json:"favorite_genre"`
	LastLogin        time.Time `json:"last_login"`
	Nulls            []string  `json:"nulls,omitempty"` // columns that were empty in the source
}

// IsNull reports whether the named column was empty in the source row.
func (r Record) IsNull(field string) bool {
	for _, f := range r.Nulls {
		if f == field {
			return true
		}
	}
	return false
}

// Float returns a numeric column value; ok is false for nulls and non-numeric fields.
func (r Record) Float(field string) (float64, bool) {
	if r.IsNull(field) {
		return 0, false
	}
	switch field {
	case FieldAge:
		return float64(r.Age), true
	case FieldWatchTimeHours:
		return r.WatchTimeHours, true
	}
	return 0, false
}

// Category returns a grouping key for the record; ok is false for nulls.
func (r Record) Category(field string) (string, bool) {
	switch field {
	case FieldCountry:
		return r.stringField(field, r.Country)
	case FieldSubscriptionType:
		return r.stringField(field, r.SubscriptionType)
	case FieldFavoriteGenre:
		return r.stringField(field, r.FavoriteGenre)
	case FieldName:
		return r.stringField(field, r.Name)
	case FieldUserID:
		return r.stringField(field, r.UserID)
	case FieldAge:
		if r.IsNull(FieldAge) {
			return "", false
		}
		return strconv.Itoa(r.Age), true
	case FieldLoginMonth:
		if r.IsNull(FieldLastLogin) {
			return "", false
		}
		return r.LastLogin.Format("2006-01"), true
	}
	return "", false
}

func (r Record) stringField(field, value string) (string, bool) {
	if r.IsNull(field) || value == "" {
		return "", false
	}
	return value, true
}

// FilterPredicate selects records by country membership and inclusive age range
type FilterPredicate struct {
	Countries []string `json:"countries"`
	AgeMin    int      `json:"age_min"`
	AgeMax    int      `json:"age_max"`
}

// CountrySet returns the predicate's countries as a membership set.
func (p FilterPredicate) CountrySet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.Countries))
	for _, c := range p.Countries {
		set[c] = struct{}{}
	}
	return set
}

// DashboardState is everything a single render pass depends on. The caller owns
// it and replaces it per interaction instead of mutating it.
type DashboardState struct {
	Filter       FilterPredicate `json:"filter"`
	TopN         int             `json:"top_n"`
	ShowFullData bool            `json:"show_full_data"`
}

// DatasetProfile describes a loaded dataset
type DatasetProfile struct {
	Source         string         `json:"source"`
	Columns        []string       `json:"columns"`
	SourceColumns  []string       `json:"source_columns"`
	RowCount       int            `json:"row_count"`
	NullCounts     map[string]int `json:"null_counts"`
	TotalNulls     int            `json:"total_nulls"`
	Countries      []string       `json:"countries"`
	AgeMin         int            `json:"age_min"`
	AgeMax         int            `json:"age_max"`
	BadLoginDates  int            `json:"bad_login_dates"`
	LoadedAt       time.Time      `json:"loaded_at"`
	LoadDurationMS int64          `json:"load_duration_ms"`
}

// Dataset is the read-only record set loaded at process start.
type Dataset struct {
	Records []Record       `json:"-"`
	Profile DatasetProfile `json:"profile"`
}

// HasCountry reports whether the country occurs in the dataset.
func (d *Dataset) HasCountry(country string) bool {
	for _, c := range d.Profile.Countries {
		if c == country {
			return true
		}
	}
	return false
}
