package cli

import (
	"sort"
	"strings"

	"github.com/bdxtown/agenda-digest/internal/event"
)

// SortOrder represents the available sorting options of the report
type SortOrder string

const (
	SortByDate   SortOrder = "date"
	SortBySource SortOrder = "source"
	SortByTitle  SortOrder = "title"
)

// sortEvents sorts a slice of events based on the specified sort order.
// The published digest is always in date order; this only affects the report.
func sortEvents(events []*event.Event, sortOrder SortOrder) {
	switch sortOrder {
	case SortByDate:
		sort.SliceStable(events, func(i, j int) bool {
			return compareByDate(events[i], events[j])
		})
	case SortBySource:
		sort.SliceStable(events, func(i, j int) bool {
			if events[i].Source != events[j].Source {
				return events[i].Source < events[j].Source
			}
			// If sources are equal, sort by date
			return compareByDate(events[i], events[j])
		})
	case SortByTitle:
		sort.SliceStable(events, func(i, j int) bool {
			ti, tj := strings.ToLower(events[i].Title), strings.ToLower(events[j].Title)
			if ti != tj {
				return ti < tj
			}
			// If titles are equal, sort by date
			return compareByDate(events[i], events[j])
		})
	}
}

// compareByDate compares two events by their start
// Returns true if event i should come before event j
func compareByDate(i, j *event.Event) bool {
	return i.StartsAt.Before(j.StartsAt)
}
