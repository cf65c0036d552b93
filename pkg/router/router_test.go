package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRouterRegistersAndServes(t *testing.T) {
	r := New()
	r.GET("/items/{id}", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("item " + URLParam(req, "id")))
	})
	r.POST("/items", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	if len(r.Routes()) != 2 {
		t.Fatalf("routes = %v", r.Routes())
	}

	tests := []struct {
		method string
		path   string
		code   int
		body   string
	}{
		{http.MethodGet, "/items/42", http.StatusOK, "item 42"},
		{http.MethodPost, "/items", http.StatusCreated, ""},
		{http.MethodDelete, "/items/42", http.StatusMethodNotAllowed, ""},
		{http.MethodGet, "/missing", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
		if rr.Code != tt.code {
			t.Errorf("%s %s: status %d, want %d", tt.method, tt.path, rr.Code, tt.code)
		}
		if tt.body != "" && rr.Body.String() != tt.body {
			t.Errorf("%s %s: body %q, want %q", tt.method, tt.path, rr.Body.String(), tt.body)
		}
	}
}

func TestLoggingResponseWriterCapturesStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	lrw := &loggingResponseWriter{ResponseWriter: rr, statusCode: http.StatusOK}
	lrw.WriteHeader(http.StatusTeapot)
	if lrw.statusCode != http.StatusTeapot || rr.Code != http.StatusTeapot {
		t.Fatalf("status = %d / %d", lrw.statusCode, rr.Code)
	}
}

func TestColors(t *testing.T) {
	if statusColor(204) != colorGreen || statusColor(302) != colorCyan || statusColor(404) != colorYellow || statusColor(503) != colorRed {
		t.Fatalf("status colors mismatch")
	}
	if methodColor(http.MethodPost) != colorBlue || methodColor(http.MethodPatch) != colorCyan {
		t.Fatalf("method colors mismatch")
	}
}

func TestStartStopsOnCancel(t *testing.T) {
	r := New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Start(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not shut down")
	}
}
