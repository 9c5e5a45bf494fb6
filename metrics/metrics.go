// Package metrics exposes Prometheus counters for lower cone runs.
//
// Enumeration is a batch job, so a Recorder owns its own registry and the
// usual way to publish it is WriteTextfile, for the node exporter's textfile
// collector.
package metrics

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "chirotope"
	subsystem = "lower_cone"

	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
	OutcomeCanceled  = "canceled"
)

// Recorder collects counters for enumeration runs over one (rank, elements)
// pair. It implements enumerate.Recorder.
type Recorder struct {
	reg      *prometheus.Registry
	checked  prometheus.Counter
	accepted prometheus.Counter
	runs     *prometheus.CounterVec
	duration prometheus.Histogram
}

// New returns a recorder labelled with the run parameters.
func New(rank, elements int, runID string) *Recorder {
	reg := prometheus.NewRegistry()
	labels := prometheus.Labels{
		"rank":     strconv.Itoa(rank),
		"elements": strconv.Itoa(elements),
		"run_id":   runID,
	}
	f := promauto.With(reg)
	return &Recorder{
		reg: reg,
		checked: f.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "candidates_checked_total",
			Help:        "Sign assignments passed to the axiom checker",
			ConstLabels: labels,
		}),
		accepted: f.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "candidates_accepted_total",
			Help:        "Sign assignments accepted as chirotopes",
			ConstLabels: labels,
		}),
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "runs_total",
			Help:        "Lower cone runs by outcome",
			ConstLabels: labels,
		}, []string{"outcome"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "duration_seconds",
			Help:        "Wall time of a lower cone run in seconds",
			Buckets:     prometheus.ExponentialBuckets(0.001, 4, 12), // 1ms to ~70min
			ConstLabels: labels,
		}),
	}
}

// ObserveBatch adds to the checked and accepted counters.
func (r *Recorder) ObserveBatch(checked, accepted uint64) {
	r.checked.Add(float64(checked))
	r.accepted.Add(float64(accepted))
}

// ObserveRun records a finished run and its outcome.
func (r *Recorder) ObserveRun(d time.Duration, err error) {
	r.duration.Observe(d.Seconds())
	r.runs.WithLabelValues(outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSucceeded
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeFailed
	}
}

// Registry returns the registry holding the recorder's collectors.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// WriteTextfile writes the current values in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
