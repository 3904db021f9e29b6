// Package metrics exposes Prometheus collectors for headless sand runs.
package metrics

import (
	"time"

	"mad-sand/internal/sims/sand"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sand"

// Recorder holds the per-run collectors. All methods are safe for concurrent
// use.
type Recorder struct {
	// Ticks counts executed ticks.
	Ticks prometheus.Counter

	// TickSeconds measures wall time spent in one tick.
	TickSeconds prometheus.Histogram

	// Swaps counts deferred position swaps applied at flush.
	Swaps prometheus.Counter

	// Disturbs counts free-fall overrides queued for neighbors.
	Disturbs prometheus.Counter

	// Cells reports the latest census per material.
	// Labels: material
	Cells *prometheus.GaugeVec

	// Settled reports how many movable solids are at rest.
	Settled prometheus.Gauge
}

// New registers the collectors with reg. A nil reg uses the default
// registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Recorder{
		Ticks: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Total number of executed ticks",
		}),
		TickSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time of a single tick in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
		Swaps: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swaps_total",
			Help:      "Total number of position swaps applied",
		}),
		Disturbs: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "disturbs_total",
			Help:      "Total number of neighbor disturbances queued",
		}),
		Cells: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cells",
			Help:      "Number of cells per material at the last census",
		}, []string{"material"}),
		Settled: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "settled_cells",
			Help:      "Number of movable solids at rest at the last census",
		}),
	}
}

// ObserveTick records one executed tick.
func (r *Recorder) ObserveTick(d time.Duration, stats sand.TickStats) {
	r.Ticks.Inc()
	r.TickSeconds.Observe(d.Seconds())
	r.Swaps.Add(float64(stats.Swaps))
	r.Disturbs.Add(float64(stats.Disturbs))
}

// ObserveCensus publishes per-material counts.
func (r *Recorder) ObserveCensus(c sand.Census) {
	for _, m := range sand.Materials() {
		r.Cells.WithLabelValues(m.String()).Set(float64(c.Count(m)))
	}
	r.Settled.Set(float64(c.Settled()))
}
