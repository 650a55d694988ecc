// Package calendar exports digest events as an iCalendar feed.
package calendar

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/bdxtown/agenda-digest/internal/event"
)

const (
	productID = "-//bdx.town//agenda-digest//FR"
	uidDomain = "agenda-digest.bdx.town"
)

// GenerateICS builds a calendar with one VEVENT per event. Agenda listings
// only carry a day so they become all-day events; Mobilizon events keep
// their start time. stamp is written as DTSTAMP.
func GenerateICS(events []*event.Event, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, evt := range events {
		ve := cal.AddEvent(fmt.Sprintf("%s@%s", evt.ID, uidDomain))
		ve.SetDtStampTime(stamp.UTC())

		if evt.Source == event.SourceAgenda {
			ve.SetAllDayStartAt(evt.StartsAt)
			ve.SetAllDayEndAt(evt.StartsAt.AddDate(0, 0, 1))
		} else {
			ve.SetStartAt(evt.StartsAt.UTC())
		}

		ve.SetSummary(evt.Title)
		if evt.Place != "" {
			ve.SetLocation(evt.Place)
		}
		ve.SetURL(evt.Link)
		ve.SetDescription(evt.DisplayDate)
	}

	return cal.Serialize()
}

// WriteICS writes the calendar for events to w.
func WriteICS(w io.Writer, events []*event.Event, stamp time.Time) error {
	if _, err := io.WriteString(w, GenerateICS(events, stamp)); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}
