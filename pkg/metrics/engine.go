package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics records recommendation and assignment engine activity.
type EngineMetrics struct {
	scoringDuration *prometheus.HistogramVec
	candidates      *prometheus.CounterVec
	assignments     *prometheus.CounterVec
	cancellations   *prometheus.CounterVec
}

// NewEngineMetrics registers the engine metrics on the provided registerer.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	if reg == nil {
		return &EngineMetrics{}
	}
	scoringDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scoring_pass_duration_seconds",
		Help:    "Duration of supplier scoring passes in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	candidates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scoring_candidates_total",
		Help: "Candidate suppliers evaluated per coverage mode.",
	}, []string{"coverage"})
	assignments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "supplier_assignments_total",
		Help: "Supplier jobs created by the assignment engine.",
	}, []string{"outcome"})
	cancellations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "supplier_cancellations_total",
		Help: "Job cancellations processed, by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(scoringDuration, candidates, assignments, cancellations)
	return &EngineMetrics{
		scoringDuration: scoringDuration,
		candidates:      candidates,
		assignments:     assignments,
		cancellations:   cancellations,
	}
}

// ObserveScoringDuration records how long one scoring pass took.
func (e *EngineMetrics) ObserveScoringDuration(outcome string, duration time.Duration) {
	if e == nil || e.scoringDuration == nil {
		return
	}
	e.scoringDuration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncCandidates counts evaluated candidates for the given coverage mode.
func (e *EngineMetrics) IncCandidates(coverage string, n int) {
	if e == nil || e.candidates == nil || n <= 0 {
		return
	}
	e.candidates.WithLabelValues(normalizeLabel(coverage)).Add(float64(n))
}

// IncAssignments increments the assignment counter for the named outcome.
func (e *EngineMetrics) IncAssignments(outcome string, n int) {
	if e == nil || e.assignments == nil || n <= 0 {
		return
	}
	e.assignments.WithLabelValues(normalizeLabel(outcome)).Add(float64(n))
}

// IncCancellations increments the cancellation counter for the named outcome.
func (e *EngineMetrics) IncCancellations(outcome string) {
	if e == nil || e.cancellations == nil {
		return
	}
	e.cancellations.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
