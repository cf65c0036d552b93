package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidPredicate   = errors.New("invalid filter predicate")
	ErrInvalidTopN        = errors.New("top n must be at least 1")
	ErrUnknownField       = errors.New("unknown field")
	ErrInvalidBins        = errors.New("invalid bins")
	ErrUndefinedStatistic = errors.New("statistic undefined")
	ErrReportNotFound     = errors.New("report not found")
)

// EmptyResultWarning is attached to reports whose filter matched no rows.
const EmptyResultWarning = "filter matched no records"

// LoadError means the dataset could not be loaded. Line and Column are set
// when a specific cell was at fault.
type LoadError struct {
	Path    string
	Line    int
	Column  string
	Missing []string
	Err     error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "load %s", e.Path)
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, ": missing required columns [%s]", strings.Join(e.Missing, ", "))
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, ": line %d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " column %s", e.Column)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *LoadError) Unwrap() error { return e.Err }
