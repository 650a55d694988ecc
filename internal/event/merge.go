package event

import "sort"

// Filter returns the events that start inside the window, keeping their order.
func Filter(events []*Event, w Window) []*Event {
	filtered := make([]*Event, 0, len(events))
	for _, evt := range events {
		if w.Contains(evt.StartsAt) {
			filtered = append(filtered, evt)
		}
	}
	return filtered
}

// Merge concatenates both sources and sorts ascending by StartsAt. Events
// starting at the same instant keep their concatenation order.
func Merge(a, b []*Event) []*Event {
	merged := make([]*Event, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].StartsAt.Before(merged[j].StartsAt)
	})
	return merged
}

// Dedupe drops every event whose StableKey was already seen, so the first
// listing of a real-world event wins.
func Dedupe(events []*Event) []*Event {
	seen := make(map[string]bool)
	unique := make([]*Event, 0, len(events))
	for _, evt := range events {
		if !seen[evt.StableKey] {
			seen[evt.StableKey] = true
			unique = append(unique, evt)
		}
	}
	return unique
}
