package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go-viewer-dashboard/internal/model"
)

func setupDB(t *testing.T) {
	t.Helper()
	if err := InitDB(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { Close() })
}

func testReport(id string, created time.Time, rows int) *model.Report {
	return &model.Report{
		ID:        id,
		CreatedAt: created,
		State: model.DashboardState{
			Filter: model.FilterPredicate{Countries: []string{"US"}, AgeMin: 18, AgeMax: 60},
			TopN:   5,
		},
		RowCount: rows,
		Empty:    rows == 0,
		MeanAge:  model.NewStatistic("mean_age", 33.5, rows),
	}
}

func TestSaveAndGetReport(t *testing.T) {
	setupDB(t)
	ctx := context.Background()
	rep := testReport("r1", time.Now().UTC(), 4)

	if err := SaveReport(ctx, rep); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	got, err := GetReport(ctx, "r1")
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if got.ID != "r1" || got.RowCount != 4 || got.State.TopN != 5 {
		t.Fatalf("got %+v", got)
	}
	if v, ok := got.MeanAge.Float(); !ok || v != 33.5 {
		t.Fatalf("mean age = %v, %v", v, ok)
	}
}

func TestSaveReportReplaces(t *testing.T) {
	setupDB(t)
	ctx := context.Background()
	if err := SaveReport(ctx, testReport("r1", time.Now().UTC(), 4)); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	if err := SaveReport(ctx, testReport("r1", time.Now().UTC(), 0)); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	list, err := ListReports(ctx, 0)
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(list) != 1 || list[0].RowCount != 0 || !list[0].Empty {
		t.Fatalf("list = %+v", list)
	}
}

func TestGetReportNotFound(t *testing.T) {
	setupDB(t)
	_, err := GetReport(context.Background(), "missing")
	if !errors.Is(err, model.ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}

func TestListReportsNewestFirst(t *testing.T) {
	setupDB(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		if err := SaveReport(ctx, testReport(id, base.Add(time.Duration(i)*time.Hour), i+1)); err != nil {
			t.Fatalf("SaveReport: %v", err)
		}
	}

	all, err := ListReports(ctx, 0)
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(all) != 3 || all[0].ID != "new" || all[2].ID != "old" {
		t.Fatalf("order = %+v", all)
	}
	if all[0].State.Filter.Countries[0] != "US" {
		t.Fatalf("state not decoded: %+v", all[0].State)
	}

	limited, err := ListReports(ctx, 2)
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(limited))
	}
}

func TestReportErrors(t *testing.T) {
	setupDB(t)
	ctx := context.Background()

	if err := SaveReportError(ctx, "r1", nil); err != nil {
		t.Fatalf("nil error should be ignored: %v", err)
	}
	if err := SaveReportError(ctx, "r1", errors.New("disk full")); err != nil {
		t.Fatalf("SaveReportError: %v", err)
	}
	if err := SaveReportError(ctx, "r1", errors.New("retry failed")); err != nil {
		t.Fatalf("SaveReportError: %v", err)
	}

	errs, err := GetReportErrors(ctx, "r1")
	if err != nil {
		t.Fatalf("GetReportErrors: %v", err)
	}
	if len(errs) != 2 || errs[0].Message != "disk full" || errs[1].Message != "retry failed" {
		t.Fatalf("errors = %+v", errs)
	}

	none, err := GetReportErrors(ctx, "other")
	if err != nil || len(none) != 0 {
		t.Fatalf("expected no errors, got %v, %v", none, err)
	}
}

func TestStoreNotInitialized(t *testing.T) {
	Close()
	if err := SaveReport(context.Background(), testReport("r1", time.Now(), 1)); !errors.Is(err, errNotInitialized) {
		t.Fatalf("expected errNotInitialized, got %v", err)
	}
	if _, err := ListReports(context.Background(), 0); !errors.Is(err, errNotInitialized) {
		t.Fatalf("expected errNotInitialized, got %v", err)
	}
}
