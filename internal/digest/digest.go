// Package digest renders the weekly message posted to the instance.
//
// The message is plain text with Markdown links; the publishing instance
// renders it with content type text/markdown. Titles and places are written
// as they are, so they must already be decoded text.
package digest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bdxtown/agenda-digest/internal/event"
	"github.com/bdxtown/agenda-digest/internal/locale"
)

// DefaultCity is named in the header line
const DefaultCity = "Bordeaux"

// Header returns the first line of the digest for w.
func Header(w event.Window, city string) string {
	if city == "" {
		city = DefaultCity
	}
	return fmt.Sprintf("Today and the coming week (%s - %s) in %s:",
		locale.FormatNumeric(w.Start), locale.FormatNumeric(w.End), city)
}

// Line formats one event as a Markdown list item.
func Line(evt *event.Event) string {
	return fmt.Sprintf("* On %s: [%s (%s)](%s)", evt.DisplayDate, evt.Title, evt.Place, evt.Link)
}

// Render formats the header followed by one line per event, in the given
// order. With no events the message is the header alone.
func Render(w event.Window, events []*event.Event, city string) string {
	var msg strings.Builder

	msg.WriteString(Header(w, city))
	msg.WriteString("\n")

	if len(events) > 0 {
		msg.WriteString("\n")
		for _, evt := range events {
			msg.WriteString(Line(evt))
			msg.WriteString("\n")
		}
	}

	return msg.String()
}

// Summary is a one-line description of the digest for logs and dry runs.
func Summary(events []*event.Event) string {
	if len(events) == 0 {
		return "No events this week"
	}

	bySource := make(map[string]int)
	for _, evt := range events {
		bySource[evt.Source]++
	}

	sources := make([]string, 0, len(bySource))
	for source, count := range bySource {
		sources = append(sources, fmt.Sprintf("%s (%d)", source, count))
	}
	sort.Strings(sources)

	return fmt.Sprintf("%d event%s from %s", len(events), pluralize(len(events)), strings.Join(sources, ", "))
}

func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
