package api

import (
	"go-viewer-dashboard/internal/api/handler"
	"go-viewer-dashboard/pkg/router"

	_ "go-viewer-dashboard/internal/api/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

func RegisterRoutes(r *router.Router, h *handler.Handler) {
	r.GET("/health", h.Health)

	r.GET("/api/v1/dataset", h.GetDataset)
	r.GET("/api/v1/records", h.GetRecords)

	r.GET("/api/v1/summary", h.GetSummary)
	r.GET("/api/v1/summary/count", h.CountBy)
	r.GET("/api/v1/summary/mean", h.MeanBy)
	r.GET("/api/v1/summary/correlation", h.Correlation)
	r.GET("/api/v1/summary/correlation/matrix", h.CorrelationMatrix)
	r.GET("/api/v1/summary/crosstab", h.CrossTab)
	r.GET("/api/v1/summary/bins", h.Bins)
	r.GET("/api/v1/summary/describe", h.Describe)

	r.GET("/api/v1/charts", h.ListCharts)
	r.GET("/api/v1/charts/{chart}", h.GetChart)

	r.POST("/api/v1/reports", h.CreateReport)
	r.GET("/api/v1/reports", h.ListReports)
	r.GET("/api/v1/reports/{id}", h.GetReport)
	r.GET("/api/v1/reports/{id}/errors", h.GetReportErrors)

	r.Handle("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

// NewRouter wires every dashboard route onto a fresh router.
func NewRouter(h *handler.Handler) *router.Router {
	r := router.New()
	RegisterRoutes(r, h)
	return r
}
