package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputManager lays out per-report output under one base directory:
// <base>/<report id>/<chart>.png and exported files next to them.
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates a new output manager
func NewOutputManager(baseOutputDir string) *OutputManager {
	return &OutputManager{BaseOutputDir: baseOutputDir}
}

// ReportDir creates and returns the directory of one report
func (om *OutputManager) ReportDir(reportID string) (string, error) {
	dir := filepath.Join(om.BaseOutputDir, filepath.Base(reportID))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report output directory: %w", err)
	}
	return dir, nil
}

// FilePath places fileName inside the report directory. Any directory part
// of fileName is dropped.
func (om *OutputManager) FilePath(reportID, fileName string) (string, error) {
	dir, err := om.ReportDir(reportID)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filepath.Base(fileName)), nil
}

// ChartPath is the PNG path of a named chart of a report
func (om *OutputManager) ChartPath(reportID, chart string) (string, error) {
	return om.FilePath(reportID, chart+".png")
}

// FileType classifies an output file by extension: csv, json, png or unknown
func (om *OutputManager) FileType(fileName string) string {
	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".csv", ".json", ".png":
		return ext[1:]
	default:
		return "unknown"
	}
}
