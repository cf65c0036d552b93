package handler

import (
	"fmt"
	"net/http"

	"go-viewer-dashboard/internal/model"
	"go-viewer-dashboard/internal/pipeline"
	"go-viewer-dashboard/pkg/utils"
)

// Health reports liveness and dataset size
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status": "ok",
		"rows":   h.Dataset.Profile.RowCount,
	})
}

// GetDataset returns the dataset profile
// @Summary Dataset profile
// @Description Columns, row count, null counts, countries and age bounds of the loaded dataset
// @Tags dataset
// @Produce json
// @Success 200 {object} model.DatasetProfile
// @Router /dataset [get]
func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Dataset.Profile)
}

// GetRecords returns the filtered rows
// @Summary Filtered records
// @Description Rows matching the country and age filter, in source order
// @Tags dataset
// @Produce json
// @Param countries query string false "Comma separated countries"
// @Param age_min query int false "Minimum age (inclusive)"
// @Param age_max query int false "Maximum age (inclusive)"
// @Param limit query int false "Maximum rows returned"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {string} string "Invalid filter"
// @Router /records [get]
func (h *Handler) GetRecords(w http.ResponseWriter, r *http.Request) {
	state, records, err := h.filtered(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	total := len(records)
	limit, err := utils.ParseInt(r.URL.Query().Get("limit"), 0)
	if err != nil || limit < 0 {
		writeError(w, r, fmt.Errorf("%w: limit must be a non-negative integer", errBadParam))
		return
	}
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	writeJSON(w, map[string]interface{}{
		"filter":  state.Filter,
		"count":   total,
		"records": records,
	})
}

// CountBy counts users per key
// @Summary Count by key
// @Description Users per group; with top, only the top (or bottom, order=asc) N groups
// @Tags summary
// @Produce json
// @Param by query string false "Grouping key" default(country)
// @Param top query int false "Keep N groups"
// @Param order query string false "desc (top) or asc (bottom)" default(desc)
// @Param countries query string false "Comma separated countries"
// @Param age_min query int false "Minimum age (inclusive)"
// @Param age_max query int false "Maximum age (inclusive)"
// @Success 200 {object} model.SummaryTable
// @Failure 400 {string} string "Invalid parameters"
// @Router /summary/count [get]
func (h *Handler) CountBy(w http.ResponseWriter, r *http.Request) {
	state, records, err := h.filtered(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	by := queryOr(r, "by", model.FieldCountry)

	table, err := pipeline.CountBy(records, by)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if q.Has("top") {
		switch queryOr(r, "order", "desc") {
		case "desc":
			table, err = pipeline.TopN(table, state.TopN)
		case "asc":
			table, err = pipeline.BottomN(table, state.TopN)
		default:
			err = fmt.Errorf("%w: order must be asc or desc", errBadParam)
		}
		if err != nil {
			writeError(w, r, err)
			return
		}
	}
	writeJSON(w, table)
}

// MeanBy averages a numeric field per group
// @Summary Mean by key
// @Tags summary
// @Produce json
// @Param by query string false "Grouping key" default(country)
// @Param field query string false "Numeric field" default(age)
// @Success 200 {object} model.SummaryTable
// @Failure 400 {string} string "Invalid parameters"
// @Router /summary/mean [get]
func (h *Handler) MeanBy(w http.ResponseWriter, r *http.Request) {
	_, records, err := h.filtered(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	table, err := pipeline.MeanBy(records, queryOr(r, "by", model.FieldCountry), queryOr(r, "field", model.FieldAge))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, table)
}

// Correlation computes the Pearson coefficient of two numeric fields
// @Summary Correlation
// @Description Undefined (value null, defined false) with fewer than two pairs or a constant side
// @Tags summary
// @Produce json
// @Param x query string false "Numeric field" default(age)
// @Param y query string false "Numeric field" default(watch_time_hours)
// @Success 200 {object} model.Statistic
// @Failure 400 {string} string "Invalid parameters"
// @Router /summary/correlation [get]
func (h *Handler) Correlation(w http.ResponseWriter, r *http.Request) {
	_, records, err := h.filtered(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s, err := pipeline.Correlation(records, queryOr(r, "x", model.FieldAge), queryOr(r, "y", model.FieldWatchTimeHours))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, s)
}

// CorrelationMatrix correlates every pair of numeric fields
// @Summary Correlation matrix
// @Tags summary
// @Produce json
// @Success 200 {object} model.CorrelationMatrix
// @Router /summary/correlation/matrix [get]
func (h *Handler) CorrelationMatrix(w http.ResponseWriter, r *http.Request) {
	_, records, err := h.filtered(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	m, err := pipeline.CorrelationMatrix(records, model.NumericFields)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, m)
}

// CrossTab counts users per pair of keys
// @Summary Cross tabulation
// @Tags summary
// @Produce json
// @Param rows query string false "Row key" default(country)
// @Param cols query string false "Column key" default(subscription_type)
// @Success 200 {object} model.Matrix
// @Failure 400 {string} string "Invalid parameters"
// @Router /summary/crosstab [get]
func (h *Handler) CrossTab(w http.ResponseWriter, r *http.Request) {
	_, records, err := h.filtered(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	m, err := pipeline.CrossTab(records, queryOr(r, "rows", model.FieldCountry), queryOr(r, "cols", model.FieldSubscriptionType))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, m)
}

// Bins distributes a numeric field over the dashboard ranges
// @Summary Binned distribution
// @Description Values outside every range are reported in excluded, nulls in missing
// @Tags summary
// @Produce json
// @Param field query string false "watch_time_hours or age" default(watch_time_hours)
// @Success 200 {object} model.BinnedDistribution
// @Failure 400 {string} string "Invalid parameters"
// @Router /summary/bins [get]
func (h *Handler) Bins(w http.ResponseWriter, r *http.Request) {
	_, records, err := h.filtered(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	field := queryOr(r, "field", model.FieldWatchTimeHours)
	bins, err := pipeline.DefaultBins(field)
	if err != nil {
		writeError(w, r, err)
		return
	}
	dist, err := pipeline.Bin(records, field, bins)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, dist)
}

// Describe summarizes the numeric fields
// @Summary Descriptive statistics
// @Tags summary
// @Produce json
// @Success 200 {array} model.FieldSummary
// @Router /summary/describe [get]
func (h *Handler) Describe(w http.ResponseWriter, r *http.Request) {
	_, records, err := h.filtered(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, pipeline.Describe(records))
}

func queryOr(r *http.Request, name, fallback string) string {
	if v := r.URL.Query().Get(name); v != "" {
		return v
	}
	return fallback
}
