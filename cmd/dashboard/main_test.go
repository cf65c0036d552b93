package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-viewer-dashboard/internal/model"
)

const usersCSV = `User_ID,Name,Age,Country,Subscription_Type,Watch_Time_Hours,Favorite_Genre,Last_Login
1,Ana,25,US,Basic,10.5,Drama,2024-01-15
2,Ben,35,US,Premium,20,Action,2024-02-01
3,Cruz,45,MX,Basic,5,Drama,2024-01-20
4,Dee,17,MX,Standard,31,Comedy,2024-03-05
5,Eve,60,CA,Premium,2.5,Action,2023-12-31
`

func writeData(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "users.csv")
	if err := os.WriteFile(path, []byte(usersCSV), 0644); err != nil {
		t.Fatalf("write data: %v", err)
	}
	return dir, path
}

func TestRunPrintsDashboardAndWritesCharts(t *testing.T) {
	dir, data := writeData(t)
	out := filepath.Join(dir, "out")

	var stdout bytes.Buffer
	args := []string{"-config", filepath.Join(dir, "none.yaml"), "-data", data, "-out", out, "-countries", "US,MX", "-top", "1", "-show-data"}
	if err := run(context.Background(), args, &stdout); err != nil {
		t.Fatalf("run: %v", err)
	}

	text := stdout.String()
	for _, want := range []string{"4 matching users", "Top 1: Users by country", "Descriptive statistics", "Filtered rows", "Cruz", "Charts written to"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(text, "Eve") {
		t.Errorf("filtered-out row printed")
	}

	pngs, err := filepath.Glob(filepath.Join(out, "*", "*.png"))
	if err != nil || len(pngs) == 0 {
		t.Fatalf("no charts written: %v", err)
	}
}

func TestRunEmptySelection(t *testing.T) {
	dir, data := writeData(t)
	var stdout bytes.Buffer
	args := []string{"-config", filepath.Join(dir, "none.yaml"), "-data", data, "-countries", "", "-charts=false"}
	if err := run(context.Background(), args, &stdout); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stdout.String(), model.EmptyResultWarning) {
		t.Fatalf("missing empty warning:\n%s", stdout.String())
	}
	if !strings.Contains(stdout.String(), "undefined (n=0)") {
		t.Fatalf("mean age should be undefined:\n%s", stdout.String())
	}
}

func TestRunExports(t *testing.T) {
	dir, data := writeData(t)
	t.Setenv("DB_PATH", filepath.Join(dir, "reports.db"))
	jsonPath := filepath.Join(dir, "exports", "report.json")

	var stdout bytes.Buffer
	args := []string{"-config", filepath.Join(dir, "none.yaml"), "-data", data, "-charts=false", "-export", jsonPath + ",db"}
	if err := run(context.Background(), args, &stdout); err != nil {
		t.Fatalf("run: %v\n%s", err, stdout.String())
	}
	if _, err := os.Stat(jsonPath); err != nil {
		t.Fatalf("json export missing: %v", err)
	}
	if strings.Count(stdout.String(), "Exported") != 2 {
		t.Fatalf("expected two exports:\n%s", stdout.String())
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	dir, data := writeData(t)
	cfg := filepath.Join(dir, "none.yaml")

	err := run(context.Background(), []string{"-config", cfg, "-data", filepath.Join(dir, "missing.csv")}, &bytes.Buffer{})
	var le *model.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %v", err)
	}

	err = run(context.Background(), []string{"-config", cfg, "-data", data, "-age-min", "50", "-age-max", "20"}, &bytes.Buffer{})
	if !errors.Is(err, model.ErrInvalidPredicate) {
		t.Fatalf("expected ErrInvalidPredicate, got %v", err)
	}

	for _, target := range []string{"report.txt", "report.png"} {
		err = run(context.Background(), []string{"-config", cfg, "-data", data, "-charts=false", "-export", target}, &bytes.Buffer{})
		if err == nil || !strings.Contains(err.Error(), "unsupported export target") {
			t.Fatalf("%s: expected unsupported export target, got %v", target, err)
		}
	}
}
