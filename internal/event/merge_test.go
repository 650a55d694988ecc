package event

import (
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func eventOn(source string, n int, title string) *Event {
	return NewEvent(source, day(n), "", "https://example.com/"+title, title, "")
}

func TestMerge(t *testing.T) {
	a := []*Event{
		eventOn(SourceAgenda, 3, "day3"),
		eventOn(SourceAgenda, 1, "day1"),
		eventOn(SourceAgenda, 2, "day2"),
	}
	b := []*Event{
		eventOn(SourceMobilizon, 5, "day5"),
		eventOn(SourceMobilizon, 0, "day0"),
	}

	merged := Merge(a, b)

	want := []string{"day0", "day1", "day2", "day3", "day5"}
	if len(merged) != len(want) {
		t.Fatalf("Merge() returned %d events, want %d", len(merged), len(want))
	}
	for i, title := range want {
		if merged[i].Title != title {
			t.Errorf("merged[%d] = %s, want %s", i, merged[i].Title, title)
		}
	}
}

func TestMerge_StableTies(t *testing.T) {
	a := []*Event{eventOn(SourceAgenda, 1, "agenda-first"), eventOn(SourceAgenda, 1, "agenda-second")}
	b := []*Event{eventOn(SourceMobilizon, 1, "mobilizon")}

	merged := Merge(a, b)

	want := []string{"agenda-first", "agenda-second", "mobilizon"}
	for i, title := range want {
		if merged[i].Title != title {
			t.Errorf("merged[%d] = %s, want %s", i, merged[i].Title, title)
		}
	}
}

func TestMerge_Empty(t *testing.T) {
	if merged := Merge(nil, nil); len(merged) != 0 {
		t.Errorf("Merge(nil, nil) returned %d events", len(merged))
	}
}

func TestFilter(t *testing.T) {
	w := NewWindow(day(0).Add(9*time.Hour), DefaultWindowDays, time.UTC)
	events := []*Event{
		eventOn(SourceMobilizon, -1, "yesterday"),
		eventOn(SourceMobilizon, 0, "today"),
		eventOn(SourceMobilizon, 6, "last"),
		eventOn(SourceMobilizon, 7, "too-late"),
		eventOn(SourceAgenda, 3, "middle"),
	}

	filtered := Filter(events, w)

	want := []string{"today", "last", "middle"}
	if len(filtered) != len(want) {
		t.Fatalf("Filter() returned %d events, want %d", len(filtered), len(want))
	}
	for i, title := range want {
		if filtered[i].Title != title {
			t.Errorf("filtered[%d] = %s, want %s", i, filtered[i].Title, title)
		}
	}
}

func TestDedupe(t *testing.T) {
	events := []*Event{
		NewEvent(SourceAgenda, day(1), "", "https://a/1", "Concert au Parc", "Bordeaux"),
		NewEvent(SourceMobilizon, day(1).Add(20*time.Hour), "", "https://m/1", "concert au parc", "Bordeaux"),
		NewEvent(SourceMobilizon, day(2), "", "https://m/2", "Concert au Parc", "Bordeaux"),
	}

	unique := Dedupe(events)

	if len(unique) != 2 {
		t.Fatalf("Dedupe() returned %d events, want 2", len(unique))
	}
	if unique[0].Source != SourceAgenda {
		t.Errorf("first listing should win, got source %s", unique[0].Source)
	}
}
