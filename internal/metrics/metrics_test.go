package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New()

	m.EventExtracted("agenda")
	m.EventExtracted("agenda")
	m.EventExtracted("mobilizon")
	m.EventDropped("agenda", "unparseable")
	m.EventsDropped("mobilizon", "outside_window", 3)
	m.EventsDropped("mobilizon", "outside_window", 0)

	if got := testutil.ToFloat64(m.extracted.WithLabelValues("agenda")); got != 2 {
		t.Errorf("extracted{agenda} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.extracted.WithLabelValues("mobilizon")); got != 1 {
		t.Errorf("extracted{mobilizon} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.dropped.WithLabelValues("agenda", "unparseable")); got != 1 {
		t.Errorf("dropped{agenda,unparseable} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.dropped.WithLabelValues("mobilizon", "outside_window")); got != 3 {
		t.Errorf("dropped{mobilizon,outside_window} = %v, want 3", got)
	}
}

func TestGauges(t *testing.T) {
	m := New()
	at := time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC)

	m.SetPublished(7)
	m.ObserveRun(1500*time.Millisecond, true, at)

	if got := testutil.ToFloat64(m.published); got != 7 {
		t.Errorf("published = %v, want 7", got)
	}
	if got := testutil.ToFloat64(m.duration); got != 1.5 {
		t.Errorf("duration = %v, want 1.5", got)
	}
	if got := testutil.ToFloat64(m.lastSuccess); got != float64(at.Unix()) {
		t.Errorf("lastSuccess = %v, want %v", got, at.Unix())
	}

	m.ObserveRun(time.Second, false, at.Add(time.Hour))
	if got := testutil.ToFloat64(m.lastSuccess); got != float64(at.Unix()) {
		t.Errorf("failed run should not move lastSuccess, got %v", got)
	}
}

func TestPush(t *testing.T) {
	var method, path, body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	m := New()
	m.EventExtracted("agenda")

	if err := m.Push(context.Background(), server.URL); err != nil {
		t.Fatalf("Push() error = %v", err)
	}

	if method != http.MethodPut {
		t.Errorf("method = %s, want PUT", method)
	}
	if !strings.Contains(path, "/metrics/job/"+JobName) {
		t.Errorf("path = %s, want job %s", path, JobName)
	}
	if body == "" {
		t.Error("push body is empty")
	}
}

func TestPush_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	if err := New().Push(context.Background(), server.URL); err == nil {
		t.Error("Push() expected error for status 500, got nil")
	}
}
