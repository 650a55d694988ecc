package pipeline

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/bdxtown/agenda-digest/internal/digest"
	"github.com/bdxtown/agenda-digest/internal/event"
	"github.com/bdxtown/agenda-digest/internal/locale"
	"github.com/bdxtown/agenda-digest/internal/logger"
	"github.com/bdxtown/agenda-digest/internal/metrics"
	"github.com/bdxtown/agenda-digest/internal/mobilizon"
	"github.com/bdxtown/agenda-digest/internal/normalize"
	"github.com/bdxtown/agenda-digest/internal/notifier"
	"github.com/bdxtown/agenda-digest/internal/scraper"
)

// AgendaSource fetches the agenda listings for a window
type AgendaSource interface {
	FetchListings(ctx context.Context, w event.Window) (iter.Seq[scraper.Listing], error)
}

// SearchSource fetches upcoming Mobilizon events
type SearchSource interface {
	FetchEvents(ctx context.Context) (iter.Seq[mobilizon.RawEvent], error)
}

// Options controls a run
type Options struct {
	City       string
	WindowDays int
	Location   *time.Location
	Dedup      bool
}

// Result is the outcome of a successful run
type Result struct {
	RunID   string         `json:"run_id"`
	Window  event.Window   `json:"window"`
	Events  []*event.Event `json:"events"`
	Message string         `json:"message"`
}

// Runner wires the stages of a run together
type Runner struct {
	agenda     AgendaSource
	search     SearchSource
	normalizer *normalize.Normalizer
	publisher  notifier.Publisher
	metrics    *metrics.Metrics
	opts       Options
	now        func() time.Time
	runID      string
}

// New creates a Runner. A nil publisher renders without publishing.
func New(agenda AgendaSource, search SearchSource, norm *normalize.Normalizer, pub notifier.Publisher, opts Options) *Runner {
	if opts.City == "" {
		opts.City = digest.DefaultCity
	}
	if opts.WindowDays <= 0 {
		opts.WindowDays = event.DefaultWindowDays
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Runner{
		agenda:     agenda,
		search:     search,
		normalizer: norm,
		publisher:  pub,
		opts:       opts,
		now:        time.Now,
	}
}

// WithMetrics records run statistics on m.
func (r *Runner) WithMetrics(m *metrics.Metrics) *Runner {
	r.metrics = m
	return r
}

// WithClock replaces the clock the window is computed from.
func (r *Runner) WithClock(now func() time.Time) *Runner {
	r.now = now
	return r
}

// WithRunID tags the result and log lines with id.
func (r *Runner) WithRunID(id string) *Runner {
	r.runID = id
	return r
}

// Run executes one digest.
func (r *Runner) Run(ctx context.Context) (result *Result, err error) {
	started := r.now()
	defer func() {
		if r.metrics != nil {
			finished := r.now()
			r.metrics.ObserveRun(finished.Sub(started), err == nil, finished)
		}
	}()

	w := event.NewWindow(started, r.opts.WindowDays, r.opts.Location)
	logger.Info("Starting run", logger.Fields{
		"run_id":       r.runID,
		"window_start": locale.FormatNumeric(w.Start),
		"window_end":   locale.FormatNumeric(w.End),
	})

	listings, err := r.agenda.FetchListings(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("fetching agenda: %w", err)
	}
	agendaEvents := r.normalizer.Listings(listings)

	raw, err := r.search.FetchEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching mobilizon events: %w", err)
	}
	mobilizonEvents := r.normalizer.RawEvents(raw)

	agendaEvents = r.filter(event.SourceAgenda, agendaEvents, w)
	mobilizonEvents = r.filter(event.SourceMobilizon, mobilizonEvents, w)

	events := event.Merge(agendaEvents, mobilizonEvents)
	if r.opts.Dedup {
		events = r.dedupe(events)
	}

	message := digest.Render(w, events, r.opts.City)
	logger.Debug("Rendered digest", logger.Fields{
		"run_id":  r.runID,
		"summary": digest.Summary(events),
	})

	if r.publisher != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.publisher.Publish(ctx, message); err != nil {
			return nil, fmt.Errorf("publishing digest: %w", err)
		}
		logger.Info("Published digest", logger.Fields{
			"run_id": r.runID,
			"events": len(events),
		})
	}

	if r.metrics != nil {
		r.metrics.SetPublished(len(events))
	}

	return &Result{
		RunID:   r.runID,
		Window:  w,
		Events:  events,
		Message: message,
	}, nil
}

func (r *Runner) filter(source string, events []*event.Event, w event.Window) []*event.Event {
	kept := event.Filter(events, w)
	if dropped := len(events) - len(kept); dropped > 0 {
		logger.Debug("Dropped events outside window", logger.Fields{
			"run_id":  r.runID,
			"source":  source,
			"dropped": dropped,
		})
		if r.metrics != nil {
			r.metrics.EventsDropped(source, "outside_window", dropped)
		}
	}
	return kept
}

func (r *Runner) dedupe(events []*event.Event) []*event.Event {
	kept := event.Dedupe(events)
	if r.metrics != nil && len(kept) < len(events) {
		remaining := countBySource(kept)
		for source, n := range countBySource(events) {
			r.metrics.EventsDropped(source, "duplicate", n-remaining[source])
		}
	}
	return kept
}

func countBySource(events []*event.Event) map[string]int {
	counts := make(map[string]int)
	for _, evt := range events {
		counts[evt.Source]++
	}
	return counts
}
