package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/bdxtown/agenda-digest/internal/errs"
	"github.com/bdxtown/agenda-digest/internal/event"
)

func testWindow() event.Window {
	return event.NewWindow(time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC), event.DefaultWindowDays, time.UTC)
}

func TestFetchListings(t *testing.T) {
	tests := []struct {
		name         string
		htmlContent  string
		statusCode   int
		wantError    bool
		wantListings int
	}{
		{
			name:         "successful fetch with listings",
			htmlContent:  loadFixture(t),
			statusCode:   http.StatusOK,
			wantListings: 2,
		},
		{
			name:        "HTTP error",
			htmlContent: "",
			statusCode:  http.StatusNotFound,
			wantError:   true,
		},
		{
			name:         "empty page",
			htmlContent:  `<html><body><p>No events</p></body></html>`,
			statusCode:   http.StatusOK,
			wantListings: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/Agenda" {
					t.Errorf("path = %q, want /Agenda", r.URL.Path)
				}
				if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "agenda-digest") {
					t.Errorf("User-Agent = %q, should contain 'agenda-digest'", ua)
				}

				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.htmlContent))
			}))
			defer server.Close()

			s := New(server.URL, nil)
			listings, err := s.FetchListings(context.Background(), testWindow())

			if tt.wantError {
				if err == nil {
					t.Fatal("FetchListings() expected error, got nil")
				}
				var fe *errs.FetchError
				if !errors.As(err, &fe) {
					t.Errorf("FetchListings() error = %T, want *errs.FetchError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FetchListings() unexpected error: %v", err)
			}
			if got := len(slices.Collect(listings)); got != tt.wantListings {
				t.Errorf("FetchListings() returned %d listings, want %d", got, tt.wantListings)
			}
		})
	}
}

func TestFetchListings_Query(t *testing.T) {
	var query map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	s := New(server.URL+"/", nil)
	if _, err := s.FetchListings(context.Background(), testWindow()); err != nil {
		t.Fatalf("FetchListings() error: %v", err)
	}

	want := map[string]string{
		"periode":    "personnaliser",
		"debut":      "01/01/2024",
		"fin":        "07/01/2024",
		"q":          "",
		"commune":    "",
		"type":       "",
		"thematique": "",
	}
	for key, value := range want {
		got, ok := query[key]
		if !ok {
			t.Errorf("query parameter %q missing", key)
			continue
		}
		if got[0] != value {
			t.Errorf("query[%q] = %q, want %q", key, got[0], value)
		}
	}
}

func TestFetchListings_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	s := New(url, nil)
	_, err := s.FetchListings(context.Background(), testWindow())

	var fe *errs.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("FetchListings() error = %v, want *errs.FetchError", err)
	}
	if fe.Op != "agenda" {
		t.Errorf("FetchError.Op = %q, want agenda", fe.Op)
	}
}

func TestNew(t *testing.T) {
	s := New("", nil)

	if s.client == nil {
		t.Error("scraper client is nil")
	}
	if s.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", s.BaseURL(), DefaultBaseURL)
	}
	if s.endMarker != DefaultEndMarker {
		t.Errorf("endMarker = %q, want %q", s.endMarker, DefaultEndMarker)
	}
}
