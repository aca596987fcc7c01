// Package schur: optional Prometheus instrumentation.

package schur

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts the work a divide-and-conquer run performs. Wire it in
// with WithMetrics; a nil Metrics disables all counting.
type Metrics struct {
	// SplitAttempts counts randomized sign-divide attempts, including the
	// accepted ones.
	SplitAttempts prometheus.Counter
	// SplitRetries counts attempts rolled back for missing the tolerance.
	SplitRetries prometheus.Counter
	// ToleranceMisses counts splits accepted only because the attempt
	// budget ran out.
	ToleranceMisses prometheus.Counter
	// LeafSolves counts invocations of the direct base-case solver.
	LeafSolves prometheus.Counter
}

// NewMetrics registers the counter set on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SplitAttempts: f.NewCounter(prometheus.CounterOpts{
			Namespace: "spectral", Subsystem: "schur",
			Name: "split_attempts_total",
			Help: "Randomized sign-divide attempts performed.",
		}),
		SplitRetries: f.NewCounter(prometheus.CounterOpts{
			Namespace: "spectral", Subsystem: "schur",
			Name: "split_retries_total",
			Help: "Attempts rolled back for missing the relative tolerance.",
		}),
		ToleranceMisses: f.NewCounter(prometheus.CounterOpts{
			Namespace: "spectral", Subsystem: "schur",
			Name: "split_tolerance_misses_total",
			Help: "Splits accepted with the attempt budget exhausted.",
		}),
		LeafSolves: f.NewCounter(prometheus.CounterOpts{
			Namespace: "spectral", Subsystem: "schur",
			Name: "leaf_solves_total",
			Help: "Direct base-case Schur solves at recursion leaves.",
		}),
	}
}

// The increment helpers tolerate a nil receiver so call sites need no
// wiring checks.

func (m *Metrics) attempt() {
	if m != nil {
		m.SplitAttempts.Inc()
	}
}

func (m *Metrics) retry() {
	if m != nil {
		m.SplitRetries.Inc()
	}
}

func (m *Metrics) miss() {
	if m != nil {
		m.ToleranceMisses.Inc()
	}
}

func (m *Metrics) leafSolve() {
	if m != nil {
		m.LeafSolves.Inc()
	}
}
