package model

import "time"

// ReportMetrics represents timing and volume of one report pass
type ReportMetrics struct {
	InputRecords    int                     `json:"input_records"`
	FilteredRecords int                     `json:"filtered_records"`
	ProcessingTime  time.Duration           `json:"processing_time"`
	Stages          map[string]StageMetrics `json:"stages"`
}

// StageMetrics represents metrics for a specific report stage
type StageMetrics struct {
	StageName        string        `json:"stage_name"`
	StartTime        time.Time     `json:"start_time"`
	EndTime          time.Time     `json:"end_time"`
	Duration         time.Duration `json:"duration"`
	RecordsProcessed int           `json:"records_processed"`
	Status           string        `json:"status"` // "running", "completed", "failed"
}
