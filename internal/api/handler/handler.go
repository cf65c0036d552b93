package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go-viewer-dashboard/internal/cache"
	"go-viewer-dashboard/internal/model"
	"go-viewer-dashboard/internal/pipeline"
	"go-viewer-dashboard/internal/render"
	"go-viewer-dashboard/pkg/utils"
)

var errBadParam = errors.New("bad query parameter")

// Handler serves the dashboard over one read-only dataset.
type Handler struct {
	Dataset     *model.Dataset
	Cache       cache.ReportCache // nil disables caching
	DefaultTopN int
	Chart       render.Options
}

// New creates the dashboard handler.
func New(ds *model.Dataset, c cache.ReportCache, defaultTopN int, chart render.Options) *Handler {
	return &Handler{Dataset: ds, Cache: c, DefaultTopN: defaultTopN, Chart: chart}
}

// parseState reads the dashboard state from the query string. Absent
// parameters fall back to the dataset defaults; countries= with no value
// selects no country at all.
func (h *Handler) parseState(r *http.Request) (model.DashboardState, error) {
	q := r.URL.Query()
	state := pipeline.DefaultState(h.Dataset, h.DefaultTopN)

	if q.Has("countries") {
		state.Filter.Countries = utils.SplitList(q.Get("countries"))
		if state.Filter.Countries == nil {
			state.Filter.Countries = []string{}
		}
	}
	var err error
	if state.Filter.AgeMin, err = utils.ParseInt(q.Get("age_min"), state.Filter.AgeMin); err != nil {
		return state, fmt.Errorf("%w: age_min: %v", model.ErrInvalidPredicate, err)
	}
	if state.Filter.AgeMax, err = utils.ParseInt(q.Get("age_max"), state.Filter.AgeMax); err != nil {
		return state, fmt.Errorf("%w: age_max: %v", model.ErrInvalidPredicate, err)
	}
	if state.TopN, err = utils.ParseInt(q.Get("top"), state.TopN); err != nil {
		return state, fmt.Errorf("%w: top: %v", model.ErrInvalidTopN, err)
	}
	if state.TopN < 1 {
		return state, fmt.Errorf("%w: got %d", model.ErrInvalidTopN, state.TopN)
	}
	state.ShowFullData = utils.ParseBool(q.Get("show_data"), false)
	return state, nil
}

// filtered validates the query state and applies its predicate.
func (h *Handler) filtered(r *http.Request) (model.DashboardState, []model.Record, error) {
	state, err := h.parseState(r)
	if err != nil {
		return state, nil, err
	}
	if err := pipeline.ValidatePredicate(state.Filter, h.Dataset); err != nil {
		return state, nil, err
	}
	return state, pipeline.Filter(h.Dataset.Records, state.Filter), nil
}

// report builds the report for a state, going through the cache when one is set.
// Cache failures are logged and bypassed.
func (h *Handler) report(ctx context.Context, state model.DashboardState) (*model.Report, error) {
	key := cache.Key(state)
	if h.Cache != nil {
		rep, ok, err := h.Cache.Get(ctx, key)
		if err != nil {
			slog.Warn("report cache get failed", "error", err)
		} else if ok {
			return rep, nil
		}
	}

	rep, err := pipeline.BuildReport(ctx, h.Dataset, state)
	if err != nil {
		return nil, err
	}
	if h.Cache != nil {
		if err := h.Cache.Set(ctx, key, rep); err != nil {
			slog.Warn("report cache set failed", "report_id", rep.ID, "error", err)
		}
	}
	return rep, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, render.ErrUnknownChart), errors.Is(err, model.ErrReportNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidPredicate),
		errors.Is(err, model.ErrInvalidTopN),
		errors.Is(err, model.ErrUnknownField),
		errors.Is(err, model.ErrInvalidBins),
		errors.Is(err, errBadParam):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeError maps domain errors to status codes; internal errors are logged
// and not echoed to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "path", r.URL.Path, "error", err)
		http.Error(w, "Internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
