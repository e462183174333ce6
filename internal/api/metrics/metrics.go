// Package metrics records simulation runs in Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Recorder counts simulation runs and their latency.
type Recorder struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRecorder registers the simulation metrics on reg. If reg is nil, the
// default registerer is used. Already registered collectors are reused.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flexkit_simulation_runs_total",
		Help: "Total number of strategy simulation runs",
	}, []string{"strategy", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "flexkit_simulation_duration_seconds",
		Help:    "Wall time of one simulation request",
		Buckets: prometheus.DefBuckets,
	}, []string{"strategy"})

	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	return &Recorder{runs: runs, duration: duration}, nil
}

// ObserveRun records one run. A nil Recorder is a no-op.
func (r *Recorder) ObserveRun(strategy, outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(strategy, outcome).Inc()
	r.duration.WithLabelValues(strategy).Observe(d.Seconds())
}
