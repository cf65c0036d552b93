package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"go-viewer-dashboard/internal/model"
	"go-viewer-dashboard/internal/pipeline"
	"go-viewer-dashboard/internal/render"
	"go-viewer-dashboard/internal/store"
	"go-viewer-dashboard/pkg/router"
	"go-viewer-dashboard/pkg/utils"
)

// reportRequest is the POST body; omitted fields take the dashboard defaults.
type reportRequest struct {
	Countries    *[]string `json:"countries"`
	AgeMin       *int      `json:"age_min"`
	AgeMax       *int      `json:"age_max"`
	TopN         *int      `json:"top_n"`
	ShowFullData bool      `json:"show_full_data"`
}

func (h *Handler) stateFrom(req reportRequest) model.DashboardState {
	state := pipeline.DefaultState(h.Dataset, h.DefaultTopN)
	if req.Countries != nil {
		state.Filter.Countries = *req.Countries
	}
	if req.AgeMin != nil {
		state.Filter.AgeMin = *req.AgeMin
	}
	if req.AgeMax != nil {
		state.Filter.AgeMax = *req.AgeMax
	}
	if req.TopN != nil {
		state.TopN = *req.TopN
	}
	state.ShowFullData = req.ShowFullData
	return state
}

// GetSummary builds the full dashboard for the query state
// @Summary Dashboard report
// @Description Every dashboard table for the filter; rows only with show_data=true
// @Tags reports
// @Produce json
// @Param countries query string false "Comma separated countries"
// @Param age_min query int false "Minimum age (inclusive)"
// @Param age_max query int false "Maximum age (inclusive)"
// @Param top query int false "Top/bottom N" default(5)
// @Param show_data query bool false "Attach filtered rows"
// @Success 200 {object} model.Report
// @Failure 400 {string} string "Invalid state"
// @Router /summary [get]
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	state, err := h.parseState(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rep, err := h.report(r.Context(), state)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, rep)
}

// CreateReport builds and archives a report
// @Summary Create a report
// @Description Build the dashboard for the given state and store it in the archive
// @Tags reports
// @Accept json
// @Produce json
// @Param state body reportRequest false "Dashboard state"
// @Success 201 {object} model.Report
// @Failure 400 {string} string "Invalid state"
// @Failure 500 {string} string "Internal server error"
// @Router /reports [post]
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	rep, err := pipeline.BuildReport(r.Context(), h.Dataset, h.stateFrom(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := store.SaveReport(r.Context(), rep); err != nil {
		if e := store.SaveReportError(r.Context(), rep.ID, err); e != nil {
			slog.Error("record report error", "report_id", rep.ID, "error", e)
		}
		writeError(w, r, fmt.Errorf("save report: %w", err))
		return
	}

	w.Header().Set("Location", "/api/v1/reports/"+rep.ID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(rep); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// ListReports lists archived reports
// @Summary List reports
// @Tags reports
// @Produce json
// @Param limit query int false "Maximum reports returned"
// @Success 200 {array} store.ReportSummary
// @Failure 500 {string} string "Internal server error"
// @Router /reports [get]
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	limit, err := utils.ParseInt(r.URL.Query().Get("limit"), 0)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: limit: %v", errBadParam, err))
		return
	}
	reports, err := store.ListReports(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, reports)
}

// GetReport fetches an archived report
// @Summary Get report
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} model.Report
// @Failure 404 {string} string "Report not found"
// @Router /reports/{id} [get]
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	rep, err := store.GetReport(r.Context(), router.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, rep)
}

// GetReportErrors lists errors recorded while archiving a report
// @Summary Get report errors
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} map[string]interface{}
// @Router /reports/{id}/errors [get]
func (h *Handler) GetReportErrors(w http.ResponseWriter, r *http.Request) {
	id := router.URLParam(r, "id")
	errs, err := store.GetReportErrors(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, map[string]interface{}{
		"report_id": id,
		"errors":    errs,
		"count":     len(errs),
	})
}

// GetChart renders one dashboard chart as PNG
// @Summary Dashboard chart
// @Description One of the dashboard charts for the query state, as PNG
// @Tags charts
// @Produce png
// @Param chart path string true "Chart name"
// @Param countries query string false "Comma separated countries"
// @Param age_min query int false "Minimum age (inclusive)"
// @Param age_max query int false "Maximum age (inclusive)"
// @Param top query int false "Top/bottom N" default(5)
// @Success 200 {file} binary
// @Failure 400 {string} string "Invalid state"
// @Failure 404 {string} string "Unknown chart"
// @Router /charts/{chart} [get]
func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	state, err := h.parseState(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	state.ShowFullData = false
	rep, err := h.report(r.Context(), state)
	if err != nil {
		writeError(w, r, err)
		return
	}
	png, err := render.ReportChart(rep, router.URLParam(r, "chart"), h.Chart)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(png); err != nil {
		slog.Error("write chart", "chart", router.URLParam(r, "chart"), "error", err)
	}
}

// ListCharts names the available charts
// @Summary List charts
// @Tags charts
// @Produce json
// @Success 200 {array} string
// @Router /charts [get]
func (h *Handler) ListCharts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, render.ChartNames())
}
