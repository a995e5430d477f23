// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/ballot-box/models"
)

// Outcome labels
const (
	OutcomeOK          = "ok"
	OutcomeInvalid     = "invalid"
	OutcomeConflict    = "conflict"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

// Metrics holds the collectors for one server. Each instance has its own
// registry so tests do not share counters.
type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	votes      *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ballot",
			Name:      "operations_total",
			Help:      "Core operations by outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ballot",
			Name:      "operation_duration_seconds",
			Help:      "Time spent in core operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		votes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ballot",
			Name:      "votes_cast_total",
			Help:      "Votes committed, by position.",
		}, []string{"position"}),
	}

	m.registry.MustRegister(
		m.operations,
		m.duration,
		m.votes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe counts one call of op that started at start and ended with err.
func (m *Metrics) Observe(op string, start time.Time, err error) {
	m.operations.WithLabelValues(op, Outcome(err)).Inc()
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// VoteCast counts a committed vote.
func (m *Metrics) VoteCast(position string) {
	m.votes.WithLabelValues(position).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Outcome maps an error onto its outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case models.IsValidation(err):
		return OutcomeInvalid
	case models.IsStateConflict(err):
		return OutcomeConflict
	case errors.Is(err, models.ErrStorageUnavailable):
		return OutcomeUnavailable
	default:
		return OutcomeError
	}
}
