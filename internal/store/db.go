package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-viewer-dashboard/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

var db *sql.DB

var errNotInitialized = errors.New("report store not initialized")

// ReportSummary is the listing view of an archived report
type ReportSummary struct {
	ID        string               `json:"id"`
	State     model.DashboardState `json:"state"`
	RowCount  int                  `json:"row_count"`
	Empty     bool                 `json:"empty"`
	CreatedAt time.Time            `json:"created_at"`
}

// ReportError is an error recorded against a report
type ReportError struct {
	ReportID  string    `json:"report_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Initialize DB connection
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	// Create tables if not exists
	reportTable := `
	CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		state TEXT,
		report TEXT,
		row_count INTEGER,
		empty INTEGER,
		created_at DATETIME
	);
	`
	errorTable := `
	CREATE TABLE IF NOT EXISTS report_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		report_id TEXT,
		error_message TEXT,
		created_at DATETIME
	);
	`

	if _, err := db.Exec(reportTable); err != nil {
		return err
	}
	if _, err := db.Exec(errorTable); err != nil {
		return err
	}

	return nil
}

// Close releases the connection
func Close() error {
	if db == nil {
		return nil
	}
	err := db.Close()
	db = nil
	return err
}

// SaveReport archives a built report, replacing any report with the same ID
func SaveReport(ctx context.Context, report *model.Report) error {
	if db == nil {
		return errNotInitialized
	}
	stateJSON, err := json.Marshal(report.State)
	if err != nil {
		return err
	}
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `INSERT OR REPLACE INTO reports (id, state, report, row_count, empty, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		report.ID, string(stateJSON), string(reportJSON), report.RowCount, report.Empty, report.CreatedAt.UTC())
	return err
}

// SaveReportError records an error for a report
func SaveReportError(ctx context.Context, reportID string, err error) error {
	if err == nil {
		return nil
	}
	if db == nil {
		return errNotInitialized
	}
	now := time.Now().UTC()
	_, e := db.ExecContext(ctx, `INSERT INTO report_errors (report_id, error_message, created_at) VALUES (?, ?, ?)`,
		reportID, err.Error(), now)
	return e
}

// ListReports returns the newest archived reports first. limit <= 0 means all.
func ListReports(ctx context.Context, limit int) ([]ReportSummary, error) {
	if db == nil {
		return nil, errNotInitialized
	}
	query := `SELECT id, state, row_count, empty, created_at FROM reports ORDER BY created_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := make([]ReportSummary, 0)
	for rows.Next() {
		var (
			rs        ReportSummary
			stateJSON string
		)
		if err := rows.Scan(&rs.ID, &stateJSON, &rs.RowCount, &rs.Empty, &rs.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(stateJSON), &rs.State); err != nil {
			return nil, fmt.Errorf("report %s: decode state: %w", rs.ID, err)
		}
		reports = append(reports, rs)
	}
	return reports, rows.Err()
}

// GetReport fetches a full archived report
func GetReport(ctx context.Context, reportID string) (*model.Report, error) {
	if db == nil {
		return nil, errNotInitialized
	}
	var reportJSON string
	err := db.QueryRowContext(ctx, `SELECT report FROM reports WHERE id = ?`, reportID).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", model.ErrReportNotFound, reportID)
	}
	if err != nil {
		return nil, err
	}

	var report model.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// GetReportErrors lists errors recorded against a report, oldest first
func GetReportErrors(ctx context.Context, reportID string) ([]ReportError, error) {
	if db == nil {
		return nil, errNotInitialized
	}
	rows, err := db.QueryContext(ctx, `SELECT report_id, error_message, created_at FROM report_errors WHERE report_id = ? ORDER BY id`, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ReportError, 0)
	for rows.Next() {
		var re ReportError
		if err := rows.Scan(&re.ReportID, &re.Message, &re.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, rows.Err()
}
