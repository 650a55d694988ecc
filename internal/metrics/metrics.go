// Package metrics records what a digest run extracted, dropped and published.
//
// A run is a short-lived batch job, so metrics live on a private registry and
// are pushed to a Prometheus Pushgateway at the end of the run when one is
// configured.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// JobName is the Pushgateway job label
const JobName = "agenda_digest"

// Metrics holds the collectors of one run
type Metrics struct {
	registry    *prometheus.Registry
	extracted   *prometheus.CounterVec
	dropped     *prometheus.CounterVec
	published   prometheus.Gauge
	duration    prometheus.Gauge
	lastSuccess prometheus.Gauge
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		extracted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agenda_events_extracted_total",
			Help: "Raw entries extracted from a source, before normalization.",
		}, []string{"source"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agenda_events_dropped_total",
			Help: "Entries dropped, labelled by source and reason.",
		}, []string{"source", "reason"}),
		published: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "agenda_events_published",
			Help: "Events listed in the last rendered digest.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "agenda_run_duration_seconds",
			Help: "Wall-clock duration of the last run.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "agenda_last_success_timestamp_seconds",
			Help: "Unix time of the last successful run.",
		}),
	}
	m.registry.MustRegister(m.extracted, m.dropped, m.published, m.duration, m.lastSuccess)
	return m
}

// Registry exposes the registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// EventExtracted counts one raw entry from source.
func (m *Metrics) EventExtracted(source string) {
	m.extracted.WithLabelValues(source).Inc()
}

// EventDropped counts one entry from source dropped for reason.
func (m *Metrics) EventDropped(source, reason string) {
	m.dropped.WithLabelValues(source, reason).Inc()
}

// EventsDropped counts n entries at once.
func (m *Metrics) EventsDropped(source, reason string, n int) {
	if n > 0 {
		m.dropped.WithLabelValues(source, reason).Add(float64(n))
	}
}

// SetPublished records the number of events in the digest.
func (m *Metrics) SetPublished(n int) {
	m.published.Set(float64(n))
}

// ObserveRun records the run duration and, when ok, the success time.
func (m *Metrics) ObserveRun(d time.Duration, ok bool, at time.Time) {
	m.duration.Set(d.Seconds())
	if ok {
		m.lastSuccess.Set(float64(at.Unix()))
	}
}

// Push sends every collector to the Pushgateway at url, replacing the job's
// previous metrics.
func (m *Metrics) Push(ctx context.Context, url string) error {
	if err := push.New(url, JobName).Gatherer(m.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("pushing metrics: %w", err)
	}
	return nil
}
