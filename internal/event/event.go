package event

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"
)

// Source names
const (
	SourceAgenda    = "agenda"
	SourceMobilizon = "mobilizon"
)

// Event is a normalized listing. It is built once by NewEvent and never
// modified afterwards.
type Event struct {
	ID          string    `json:"id"`
	StableKey   string    `json:"stable_key"` // normalized title + calendar day
	Source      string    `json:"source"`
	StartsAt    time.Time `json:"starts_at"`
	DisplayDate string    `json:"display_date"`
	Link        string    `json:"link"`
	Title       string    `json:"title"`
	Place       string    `json:"place,omitempty"`
}

// GenerateID creates a deterministic ID for an event based on its source and link
func GenerateID(source, link string) string {
	h := sha1.New()
	h.Write([]byte(source + "|" + link))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// GenerateStableKey identifies the real-world event regardless of which
// source listed it: lowercase trimmed title plus the calendar day.
func GenerateStableKey(title string, startsAt time.Time) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(title)), " ")

	h := sha1.New()
	h.Write([]byte(normalized + "|" + startsAt.Format("2006-01-02")))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// NewEvent creates a new Event with ID and StableKey populated
func NewEvent(source string, startsAt time.Time, displayDate, link, title, place string) *Event {
	return &Event{
		ID:          GenerateID(source, link),
		StableKey:   GenerateStableKey(title, startsAt),
		Source:      source,
		StartsAt:    startsAt,
		DisplayDate: displayDate,
		Link:        link,
		Title:       title,
		Place:       place,
	}
}
