package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"  ", nil},
		{"US", []string{"US"}},
		{"US, MX ,,CA", []string{"US", "MX", "CA"}},
	}
	for _, tt := range tests {
		if got := SplitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseHelpers(t *testing.T) {
	if v, err := ParseInt("", 7); err != nil || v != 7 {
		t.Fatalf("ParseInt blank = %d, %v", v, err)
	}
	if v, err := ParseInt(" 42 ", 7); err != nil || v != 42 {
		t.Fatalf("ParseInt = %d, %v", v, err)
	}
	if _, err := ParseInt("4x", 7); err == nil {
		t.Fatalf("expected error for 4x")
	}
	if !ParseBool("yes", false) || ParseBool("off", true) || !ParseBool("maybe", true) {
		t.Fatalf("ParseBool mismatch")
	}
	if ParseDuration("bogus", time.Second) != time.Second || ParseDuration("2m", 0) != 2*time.Minute {
		t.Fatalf("ParseDuration mismatch")
	}
}

func TestFormatFloat(t *testing.T) {
	for in, want := range map[float64]string{32.5: "32.5", 30: "30", 0.125: "0.125", -1: "-1"} {
		if got := FormatFloat(in); got != want {
			t.Errorf("FormatFloat(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestOutputManager(t *testing.T) {
	om := NewOutputManager(t.TempDir())

	path, err := om.FilePath("r1", "../escape/report.csv")
	if err != nil {
		t.Fatalf("FilePath: %v", err)
	}
	if path != filepath.Join(om.BaseOutputDir, "r1", "report.csv") {
		t.Fatalf("path = %s", path)
	}
	if info, err := os.Stat(filepath.Dir(path)); err != nil || !info.IsDir() {
		t.Fatalf("report dir not created: %v", err)
	}

	chart, err := om.ChartPath("r1", "top-countries")
	if err != nil || chart != filepath.Join(om.BaseOutputDir, "r1", "top-countries.png") {
		t.Fatalf("ChartPath = %s, %v", chart, err)
	}

	for name, want := range map[string]string{"a.CSV": "csv", "b.json": "json", "c.png": "png", "d.txt": "unknown", "noext": "unknown"} {
		if got := om.FileType(name); got != want {
			t.Errorf("FileType(%s) = %s, want %s", name, got, want)
		}
	}
}
