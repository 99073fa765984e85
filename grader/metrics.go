package grader

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/roadgrade/query"
	"github.com/katalvlaran/roadgrade/verify"
)

// Metrics holds the grading collectors. A nil *Metrics records nothing.
type Metrics struct {
	// verdicts counts checked answers.
	// Labels: type (event type), outcome (pass, structural, data, mismatch)
	verdicts *prometheus.CounterVec

	// processing observes the subject's self-reported processing time.
	// Labels: type
	processing *prometheus.HistogramVec

	// sessions counts finished sessions.
	// Labels: outcome (ok, fatal)
	sessions *prometheus.CounterVec
}

// NewMetrics registers the grading collectors on reg under namespace.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		verdicts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "grader",
			Name:      "verdicts_total",
			Help:      "Checked answers by event type and outcome",
		}, []string{"type", "outcome"}),
		processing: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "grader",
			Name:      "solve_duration_seconds",
			Help:      "Self-reported processing time per answer",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"type"}),
		sessions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "grader",
			Name:      "sessions_total",
			Help:      "Finished grading sessions by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveVerdict counts one verdict.
func (m *Metrics) ObserveVerdict(t query.Type, v verify.Verdict) {
	if m == nil {
		return
	}
	outcome := "pass"
	if !v.Pass {
		outcome = v.Kind.String()
	}
	m.verdicts.WithLabelValues(string(t), outcome).Inc()
}

// ObserveProcessing records a processing time given in milliseconds.
func (m *Metrics) ObserveProcessing(t query.Type, ms float64) {
	if m == nil {
		return
	}
	m.processing.WithLabelValues(string(t)).Observe(ms / 1000)
}

// ObserveSession counts a finished session.
func (m *Metrics) ObserveSession(fatal bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if fatal {
		outcome = "fatal"
	}
	m.sessions.WithLabelValues(outcome).Inc()
}
