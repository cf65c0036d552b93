package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"go-viewer-dashboard/internal/model"
)

func state(countries ...string) model.DashboardState {
	return model.DashboardState{
		Filter: model.FilterPredicate{Countries: countries, AgeMin: 18, AgeMax: 65},
		TopN:   5,
	}
}

func TestKeyIgnoresCountryOrderAndRepeats(t *testing.T) {
	a := Key(state("US", "MX", "CA"))
	b := Key(state("CA", "US", "MX", "US"))
	if a != b {
		t.Fatalf("keys differ: %s vs %s", a, b)
	}
	if !strings.HasPrefix(a, "dashboard:report:") {
		t.Fatalf("missing prefix: %s", a)
	}
}

func TestKeyDistinguishesStates(t *testing.T) {
	base := state("US")
	tests := []struct {
		name   string
		mutate func(*model.DashboardState)
	}{
		{"countries", func(s *model.DashboardState) { s.Filter.Countries = []string{"MX"} }},
		{"age min", func(s *model.DashboardState) { s.Filter.AgeMin = 19 }},
		{"age max", func(s *model.DashboardState) { s.Filter.AgeMax = 64 }},
		{"top", func(s *model.DashboardState) { s.TopN = 3 }},
		{"show data", func(s *model.DashboardState) { s.ShowFullData = true }},
		{"empty countries", func(s *model.DashboardState) { s.Filter.Countries = []string{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := state("US")
			tt.mutate(&s)
			if Key(s) == Key(base) {
				t.Fatalf("expected a different key")
			}
		})
	}
}

func TestKeyDoesNotModifyState(t *testing.T) {
	s := state("US", "CA")
	Key(s)
	if s.Filter.Countries[0] != "US" || s.Filter.Countries[1] != "CA" {
		t.Fatalf("countries reordered: %v", s.Filter.Countries)
	}
}

func TestMemoryCacheGetSet(t *testing.T) {
	c := NewMemoryCache(0)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
	rep := &model.Report{ID: "r1"}
	if err := c.Set(ctx, "k", rep); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := c.Get(ctx, "k")
	if err != nil || !ok || got.ID != "r1" {
		t.Fatalf("expected hit, got %v %v %v", got, ok, err)
	}
}

func TestMemoryCacheExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache(time.Minute)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	c.Set(ctx, "k", &model.Report{ID: "r1"})
	now = now.Add(30 * time.Second)
	if _, ok, _ := c.Get(ctx, "k"); !ok {
		t.Fatalf("entry expired too early")
	}
	now = now.Add(time.Minute)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatalf("entry should have expired")
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry not evicted, len=%d", c.Len())
	}
}

func TestConnectUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := Connect(ctx, "127.0.0.1:1"); err == nil {
		t.Fatalf("expected error connecting to a closed port")
	}
	if _, err := Connect(ctx, "redis://:bad url"); err == nil {
		t.Fatalf("expected error for malformed url")
	}
}
