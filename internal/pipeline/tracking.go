package pipeline

import (
	"log/slog"
	"time"

	"go-viewer-dashboard/internal/model"
)

// Tracker records stage timings for one report pass
type Tracker struct {
	ReportID string
	start    time.Time
	stages   map[string]model.StageMetrics
	order    []string
}

// NewTracker starts the clock for a report pass.
func NewTracker(reportID string) *Tracker {
	return &Tracker{
		ReportID: reportID,
		start:    time.Now(),
		stages:   make(map[string]model.StageMetrics),
	}
}

// StartStage marks the beginning of a stage
func (t *Tracker) StartStage(stage string) {
	t.stages[stage] = model.StageMetrics{
		StageName: stage,
		StartTime: time.Now(),
		Status:    "running",
	}
	t.order = append(t.order, stage)
}

// EndStage marks a stage as completed
func (t *Tracker) EndStage(stage string, recordsProcessed int) {
	t.finish(stage, recordsProcessed, "completed")
}

// FailStage marks a stage as failed and logs the cause
func (t *Tracker) FailStage(stage string, err error) {
	t.finish(stage, 0, "failed")
	slog.Error("report stage failed", "report_id", t.ReportID, "stage", stage, "error", err)
}

func (t *Tracker) finish(stage string, records int, status string) {
	sm, ok := t.stages[stage]
	if !ok {
		return
	}
	sm.EndTime = time.Now()
	sm.Duration = sm.EndTime.Sub(sm.StartTime)
	sm.RecordsProcessed = records
	sm.Status = status
	t.stages[stage] = sm
	slog.Debug("report stage finished",
		"report_id", t.ReportID,
		"stage", stage,
		"status", status,
		"records", records,
		"duration", sm.Duration,
	)
}

// Metrics returns the collected stage metrics for the pass
func (t *Tracker) Metrics(inputRecords, filteredRecords int) model.ReportMetrics {
	stages := make(map[string]model.StageMetrics, len(t.stages))
	for k, v := range t.stages {
		stages[k] = v
	}
	return model.ReportMetrics{
		InputRecords:    inputRecords,
		FilteredRecords: filteredRecords,
		ProcessingTime:  time.Since(t.start),
		Stages:          stages,
	}
}

// Stages returns stage names in the order they started
func (t *Tracker) Stages() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}
