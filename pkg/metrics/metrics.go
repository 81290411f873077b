// Package metrics provides Prometheus metrics for the scoring and
// simulation pipelines. The pure scoring functions never record
// metrics themselves; the simulator driver and the CLIs do.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the toolkit.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Scoring metrics
	roundsScored      prometheus.Counter
	submissionsScored prometheus.Counter
	scoringErrors     prometheus.Counter
	scoringDuration   prometheus.Histogram

	// Simulation metrics
	simulatedRounds    prometheus.Counter
	simulationErrors   prometheus.Counter
	simulationDuration prometheus.Histogram
	simulationWorkers  prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "tpg",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.roundsScored = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rounds_scored_total",
		Help:      "Total number of rounds scored.",
	})
	m.submissionsScored = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_scored_total",
		Help:      "Total number of submissions scored across all rounds.",
	})
	m.scoringErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_errors_total",
		Help:      "Total number of scoring failures.",
	})
	m.scoringDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "round_scoring_duration_seconds",
		Help:      "Time spent scoring a single round.",
		Buckets:   m.histogramBuckets,
	})

	m.simulatedRounds = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "simulated_rounds_total",
		Help:      "Total number of synthetic rounds produced by the simulator.",
	})
	m.simulationErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "simulation_errors_total",
		Help:      "Total number of simulation failures.",
	})
	m.simulationDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "simulated_round_duration_seconds",
		Help:      "Time spent simulating and scoring a single round.",
		Buckets:   m.histogramBuckets,
	})
	m.simulationWorkers = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "simulation_workers",
		Help:      "Number of concurrent simulation workers in use.",
	})
}

// Registry returns the registry backing the global manager, for callers
// that want to expose or gather the toolkit's metrics.
func Registry() *prometheus.Registry {
	return customRegistry
}

// Package-level record helpers against the global manager.

// RecordRoundScored increments the scored-round counter.
func RecordRoundScored() { globalManager.roundsScored.Inc() }

// RecordSubmissionsScored adds n to the scored-submission counter.
func RecordSubmissionsScored(n int) { globalManager.submissionsScored.Add(float64(n)) }

// RecordScoringError increments the scoring failure counter.
func RecordScoringError() { globalManager.scoringErrors.Inc() }

// RecordScoringDuration observes the scoring time for one round, in seconds.
func RecordScoringDuration(seconds float64) { globalManager.scoringDuration.Observe(seconds) }

// RecordSimulatedRound increments the simulated-round counter.
func RecordSimulatedRound() { globalManager.simulatedRounds.Inc() }

// RecordSimulationError increments the simulation failure counter.
func RecordSimulationError() { globalManager.simulationErrors.Inc() }

// RecordSimulationDuration observes the simulation time for one round, in seconds.
func RecordSimulationDuration(seconds float64) { globalManager.simulationDuration.Observe(seconds) }

// SetSimulationWorkers records the worker count of the current run.
func SetSimulationWorkers(n int) { globalManager.simulationWorkers.Set(float64(n)) }
