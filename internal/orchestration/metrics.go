package orchestration

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/agbru/mathsolve/internal/answer"
)

// ProviderMetrics records per-provider outcomes and latencies.
type ProviderMetrics struct {
	outcomes  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	fallbacks prometheus.Counter
}

// NewProviderMetrics creates the collectors and registers them with reg.
func NewProviderMetrics(reg prometheus.Registerer) *ProviderMetrics {
	m := &ProviderMetrics{
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mathsolve_provider_outcomes_total",
			Help: "Provider invocations by terminal outcome.",
		}, []string{"provider", "outcome"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mathsolve_provider_duration_seconds",
			Help:    "Provider latency until a terminal state.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"provider"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mathsolve_arbiter_fallbacks_total",
			Help: "Queries whose best answer came from the deterministic fallback.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.outcomes, m.durations, m.fallbacks)
	}
	return m
}

func (m *ProviderMetrics) observe(r answer.ProviderResult) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(r.Name, r.Outcome.String()).Inc()
	m.durations.WithLabelValues(r.Name).Observe(r.Duration.Seconds())
}

func (m *ProviderMetrics) fallback() {
	if m == nil {
		return
	}
	m.fallbacks.Inc()
}
