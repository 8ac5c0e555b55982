// Package metrics exposes Prometheus counters for monitor runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"strikearr/internal/engine"
)

// Namespace prefixes every strikearr metric.
const Namespace = "strikearr"

type Metrics struct {
	runsTotal        prometheus.Counter
	runDuration      prometheus.Histogram
	fetchFailures    prometheus.Counter
	outcomesTotal    *prometheus.CounterVec
	removalsTotal    prometheus.Counter
	removalFailures  prometheus.Counter
	ledgerEntries    prometheus.Gauge
	prunedEntries    prometheus.Counter
	lastRunTimestamp prometheus.Gauge
}

// New registers the monitor collectors on reg. A nil reg uses the default
// registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		runsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "runs_total",
			Help:      "Total number of monitor runs",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of monitor runs",
			Buckets:   []float64{.05, .1, .5, 1, 5, 10, 30, 60},
		}),
		fetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "fetch_failures_total",
			Help:      "Queue fetches that failed and produced an empty snapshot",
		}),
		outcomesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "outcomes_total",
			Help:      "Evaluated queue items by status",
		}, []string{"status"}),
		removalsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "removals_requested_total",
			Help:      "Queue item removals requested from the platform",
		}),
		removalFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "removal_failures_total",
			Help:      "Queue item removals the platform did not accept",
		}),
		ledgerEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "ledger_entries",
			Help:      "Number of items tracked in the strike ledger",
		}),
		prunedEntries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "ledger_pruned_total",
			Help:      "Ledger entries dropped because the item left the queue",
		}),
		lastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last completed run",
		}),
	}

	reg.MustRegister(
		m.runsTotal,
		m.runDuration,
		m.fetchFailures,
		m.outcomesTotal,
		m.removalsTotal,
		m.removalFailures,
		m.ledgerEntries,
		m.prunedEntries,
		m.lastRunTimestamp,
	)
	return m
}

// RecordRun counts a finished run and its outcomes.
func (m *Metrics) RecordRun(outcomes []engine.Outcome, fetched bool, duration time.Duration) {
	m.runsTotal.Inc()
	m.runDuration.Observe(duration.Seconds())
	m.lastRunTimestamp.SetToCurrentTime()
	if !fetched {
		m.fetchFailures.Inc()
	}
	for _, outcome := range outcomes {
		m.outcomesTotal.WithLabelValues(string(outcome.Status)).Inc()
	}
}

func (m *Metrics) SetLedgerEntries(n int) {
	m.ledgerEntries.Set(float64(n))
}

func (m *Metrics) AddPruned(n int) {
	m.prunedEntries.Add(float64(n))
}

// RemovalRequested implements arr.RemovalObserver.
func (m *Metrics) RemovalRequested() {
	m.removalsTotal.Inc()
}

// RemovalFailed implements arr.RemovalObserver.
func (m *Metrics) RemovalFailed() {
	m.removalFailures.Inc()
}
