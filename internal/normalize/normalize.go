package normalize

import (
	"fmt"
	"iter"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bdxtown/agenda-digest/internal/event"
	"github.com/bdxtown/agenda-digest/internal/locale"
	"github.com/bdxtown/agenda-digest/internal/logger"
	"github.com/bdxtown/agenda-digest/internal/metrics"
	"github.com/bdxtown/agenda-digest/internal/mobilizon"
	"github.com/bdxtown/agenda-digest/internal/scraper"
)

// Normalizer converts raw listings into events
type Normalizer struct {
	agendaBase *url.URL
	months     locale.MonthLookup
	output     locale.Locale
	loc        *time.Location
	metrics    *metrics.Metrics
}

// New creates a Normalizer. agendaBase resolves relative agenda links,
// source decodes agenda month names, output renders Mobilizon dates and loc
// is the zone dates are built and displayed in.
func New(agendaBase string, source, output locale.Locale, loc *time.Location) (*Normalizer, error) {
	base, err := url.Parse(agendaBase)
	if err != nil {
		return nil, fmt.Errorf("parsing agenda base URL: %w", err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("agenda base URL must be absolute: %s", agendaBase)
	}
	if loc == nil {
		loc = time.Local
	}
	return &Normalizer{
		agendaBase: base,
		months:     locale.NewMonthLookup(source),
		output:     output,
		loc:        loc,
	}, nil
}

// WithMetrics records dropped entries on m.
func (n *Normalizer) WithMetrics(m *metrics.Metrics) *Normalizer {
	n.metrics = m
	return n
}

// FromListing builds an event from an agenda listing.
func (n *Normalizer) FromListing(l scraper.Listing) (*event.Event, error) {
	month, ok := n.months.Month(l.MonthAbbrev)
	if !ok {
		return nil, fmt.Errorf("unknown month abbreviation %q", l.MonthAbbrev)
	}
	day, err := strconv.Atoi(l.Day)
	if err != nil {
		return nil, fmt.Errorf("parsing day %q: %w", l.Day, err)
	}
	year, err := strconv.Atoi(l.Year)
	if err != nil {
		return nil, fmt.Errorf("parsing year %q: %w", l.Year, err)
	}

	startsAt := time.Date(year, month, day, 0, 0, 0, 0, n.loc)
	// time.Date normalizes overflow (Feb 30 -> Mar 1); such dates are invalid.
	if startsAt.Day() != day || startsAt.Month() != month || startsAt.Year() != year {
		return nil, fmt.Errorf("invalid date %s %s %s", l.Day, l.MonthAbbrev, l.Year)
	}

	link, err := n.resolve(l.Href)
	if err != nil {
		return nil, err
	}

	return event.NewEvent(
		event.SourceAgenda,
		startsAt,
		fmt.Sprintf("%s %s %s", l.Day, l.MonthAbbrev, l.Year),
		link,
		clean(l.TitleHTML),
		clean(l.PlaceHTML),
	), nil
}

// FromRawEvent builds an event from a Mobilizon search result.
func (n *Normalizer) FromRawEvent(r mobilizon.RawEvent) (*event.Event, error) {
	startsAt, err := time.Parse(time.RFC3339, r.BeginsOn)
	if err != nil {
		return nil, fmt.Errorf("parsing beginsOn %q: %w", r.BeginsOn, err)
	}

	link, err := url.Parse(r.URL)
	if err != nil || !link.IsAbs() {
		return nil, fmt.Errorf("event link is not absolute: %q", r.URL)
	}

	return event.NewEvent(
		event.SourceMobilizon,
		startsAt,
		locale.FormatShort(n.output, startsAt.In(n.loc)),
		r.URL,
		clean(r.Title),
		clean(r.Locality),
	), nil
}

// Listings normalizes every listing, dropping the ones that fail.
func (n *Normalizer) Listings(seq iter.Seq[scraper.Listing]) []*event.Event {
	events := make([]*event.Event, 0)
	for l := range seq {
		n.extracted(event.SourceAgenda)
		evt, err := n.FromListing(l)
		if err != nil {
			n.dropped(event.SourceAgenda, err, logger.Fields{"href": l.Href})
			continue
		}
		events = append(events, evt)
	}
	return events
}

// RawEvents normalizes every Mobilizon event, dropping the ones that fail.
func (n *Normalizer) RawEvents(seq iter.Seq[mobilizon.RawEvent]) []*event.Event {
	events := make([]*event.Event, 0)
	for r := range seq {
		n.extracted(event.SourceMobilizon)
		evt, err := n.FromRawEvent(r)
		if err != nil {
			n.dropped(event.SourceMobilizon, err, logger.Fields{"url": r.URL})
			continue
		}
		events = append(events, evt)
	}
	return events
}

func (n *Normalizer) resolve(href string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", fmt.Errorf("parsing link %q: %w", href, err)
	}
	return n.agendaBase.ResolveReference(ref).String(), nil
}

func (n *Normalizer) extracted(source string) {
	if n.metrics != nil {
		n.metrics.EventExtracted(source)
	}
}

func (n *Normalizer) dropped(source string, err error, fields logger.Fields) {
	fields["source"] = source
	fields["reason"] = err.Error()
	logger.Warn("Dropping unparseable event", fields)
	if n.metrics != nil {
		n.metrics.EventDropped(source, "unparseable")
	}
}

// clean decodes entities and collapses whitespace, including the
// non-breaking spaces the HTML parser leaves in text.
func clean(s string) string {
	return strings.Join(strings.Fields(DecodeEntities(s)), " ")
}
