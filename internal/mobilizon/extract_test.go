package mobilizon

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/bdxtown/agenda-digest/internal/errs"
)

const sampleResponse = `{
  "data": {
    "searchEvents": {
      "total": 2,
      "elements": [
        {
          "id": "1",
          "uuid": "aaaa-1111",
          "title": "Atelier vélo",
          "beginsOn": "2024-01-03T17:00:00Z",
          "physicalAddress": {"locality": "Bègles", "description": "Cycles & Manivelles"}
        },
        {
          "id": "2",
          "uuid": "bbbb-2222",
          "title": "Apéro en ligne",
          "beginsOn": "2024-01-04T18:30:00+01:00",
          "physicalAddress": null
        }
      ]
    },
    "searchGroups": {"total": 0, "elements": []}
  }
}`

func decode(t *testing.T, body string) *SearchResponse {
	t.Helper()
	var resp SearchResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	return &resp
}

func TestExtract(t *testing.T) {
	seq, err := Extract(decode(t, sampleResponse), "https://mobilizon.fr/events")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	events := slices.Collect(seq)
	if len(events) != 2 {
		t.Fatalf("Extract() returned %d events, want 2", len(events))
	}

	want := []RawEvent{
		{BeginsOn: "2024-01-03T17:00:00Z", Title: "Atelier vélo", Locality: "Bègles", URL: "https://mobilizon.fr/events/aaaa-1111"},
		{BeginsOn: "2024-01-04T18:30:00+01:00", Title: "Apéro en ligne", Locality: "", URL: "https://mobilizon.fr/events/bbbb-2222"},
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("events[%d] = %+v, want %+v", i, events[i], want[i])
		}
	}
}

func TestExtract_EmptyElements(t *testing.T) {
	seq, err := Extract(decode(t, `{"data":{"searchEvents":{"total":0,"elements":[]}}}`), DefaultEventsBaseURL)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if n := len(slices.Collect(seq)); n != 0 {
		t.Errorf("Extract() returned %d events, want 0", n)
	}
}

func TestExtract_Malformed(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMessage string
	}{
		{"missing data", `{}`, "missing data.searchEvents.elements"},
		{"null data", `{"data":null,"errors":[{"message":"Invalid location"}]}`, "Invalid location"},
		{"missing searchEvents", `{"data":{}}`, "missing data.searchEvents.elements"},
		{"missing elements", `{"data":{"searchEvents":{"total":3}}}`, "missing data.searchEvents.elements"},
		{"null elements", `{"data":{"searchEvents":{"elements":null}}}`, "missing data.searchEvents.elements"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(decode(t, tt.body), DefaultEventsBaseURL)

			var me *errs.MalformedResponseError
			if !errors.As(err, &me) {
				t.Fatalf("Extract() error = %v, want *errs.MalformedResponseError", err)
			}
			if !strings.Contains(err.Error(), tt.wantMessage) {
				t.Errorf("error = %q, want to contain %q", err.Error(), tt.wantMessage)
			}
		})
	}
}

func TestExtract_NilResponse(t *testing.T) {
	if _, err := Extract(nil, DefaultEventsBaseURL); err == nil {
		t.Error("Extract(nil) expected error, got nil")
	}
}
