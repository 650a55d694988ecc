package mobilizon

import (
	"iter"
	"strings"

	"github.com/bdxtown/agenda-digest/internal/errs"
)

// SearchResponse is the GraphQL response envelope
type SearchResponse struct {
	Data   *SearchData    `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

// SearchData holds the searchEvents result; searchGroups is ignored
type SearchData struct {
	SearchEvents *EventPage `json:"searchEvents"`
}

// EventPage is one page of search results
type EventPage struct {
	Total    int       `json:"total"`
	Elements []Element `json:"elements"`
}

// Element is a single event as returned by the search
type Element struct {
	ID              string   `json:"id"`
	UUID            string   `json:"uuid"`
	Title           string   `json:"title"`
	BeginsOn        string   `json:"beginsOn"`
	Status          string   `json:"status"`
	PhysicalAddress *Address `json:"physicalAddress"`
}

// Address is the optional location of an event
type Address struct {
	Description string `json:"description"`
	Locality    string `json:"locality"`
	Street      string `json:"street"`
	PostalCode  string `json:"postalCode"`
}

// GraphQLError is an entry of the response's errors list
type GraphQLError struct {
	Message string `json:"message"`
}

// RawEvent is an element reduced to the fields the digest needs
type RawEvent struct {
	BeginsOn string // ISO 8601 timestamp
	Title    string
	Locality string // empty when the event has no address
	URL      string // absolute
}

// Extract returns the events of resp. It fails with a
// MalformedResponseError when data.searchEvents.elements is absent.
func Extract(resp *SearchResponse, eventsBaseURL string) (iter.Seq[RawEvent], error) {
	if resp == nil || resp.Data == nil || resp.Data.SearchEvents == nil || resp.Data.SearchEvents.Elements == nil {
		return nil, &errs.MalformedResponseError{
			Source: "mobilizon",
			Reason: "missing data.searchEvents.elements" + graphQLMessages(resp),
		}
	}

	base := eventsBaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	elements := resp.Data.SearchEvents.Elements
	return func(yield func(RawEvent) bool) {
		for _, el := range elements {
			raw := RawEvent{
				BeginsOn: el.BeginsOn,
				Title:    el.Title,
				URL:      base + el.UUID,
			}
			if el.PhysicalAddress != nil {
				raw.Locality = el.PhysicalAddress.Locality
			}
			if !yield(raw) {
				return
			}
		}
	}, nil
}

func graphQLMessages(resp *SearchResponse) string {
	if resp == nil || len(resp.Errors) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(resp.Errors))
	for _, e := range resp.Errors {
		msgs = append(msgs, e.Message)
	}
	return " (" + strings.Join(msgs, "; ") + ")"
}
