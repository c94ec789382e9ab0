// Package metrics exposes Prometheus collectors describing poller cycles.
//
// A [Recorder] is fed completed cycles through a cycle callback and never
// sits on the request path.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jpalmerr/testuri"
)

const namespace = "testuri"

// outcome label values
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Recorder holds the poller's collectors.
type Recorder struct {
	cycles        prometheus.Counter
	checks        *prometheus.CounterVec
	checkDuration prometheus.Histogram
	cycleDuration prometheus.Histogram
	lastCycle     prometheus.Gauge
	targets       prometheus.Gauge
}

// NewRecorder creates the collectors and registers them with reg.
//
// Returns an error if any collector is already registered.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Completed polling cycles.",
		}),
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checks_total",
			Help:      "Target checks by outcome; error means no HTTP response was received.",
		}, []string{"outcome"}),
		checkDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "check_duration_seconds",
			Help:      "Latency of individual target checks.",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Wall time of a cycle, excluding the pause after it.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		lastCycle: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_cycle_timestamp_seconds",
			Help:      "Unix time the most recent completed cycle started.",
		}),
		targets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "targets",
			Help:      "Targets checked in the most recent cycle.",
		}),
	}

	collectors := []prometheus.Collector{
		r.cycles, r.checks, r.checkDuration, r.cycleDuration, r.lastCycle, r.targets,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}

	// pre-create both series so they show up at zero
	r.checks.WithLabelValues(OutcomeOK)
	r.checks.WithLabelValues(OutcomeError)

	return r, nil
}

// ObserveCycle records a completed cycle. Its signature matches
// testuri.WithCycleCallback.
func (r *Recorder) ObserveCycle(cycle testuri.CycleReport) {
	r.cycles.Inc()
	r.cycleDuration.Observe(cycle.Duration.Seconds())
	r.lastCycle.Set(float64(cycle.StartedAt.Unix()))
	r.targets.Set(float64(len(cycle.Results)))

	for _, result := range cycle.Results {
		outcome := OutcomeOK
		if result.Err != nil {
			outcome = OutcomeError
		}
		r.checks.WithLabelValues(outcome).Inc()
		r.checkDuration.Observe(result.Latency.Seconds())
	}
}
