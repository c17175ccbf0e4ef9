package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the prometheus instruments for the swap pipeline.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	EstimationOutcomes *prometheus.CounterVec
	SwapsSubmitted     prometheus.Counter
	BroadcastFailures  *prometheus.CounterVec
	SwapBuildDuration  prometheus.Histogram
}

// NewMetrics registers the pipeline instruments on reg. Registry is required
// for metrics; pass prometheus.DefaultRegisterer in binaries.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EstimationOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swapexec",
			Name:      "estimation_outcomes_total",
			Help:      "Gas estimation outcomes per swap candidate.",
		}, []string{"outcome"}),
		SwapsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swapexec",
			Name:      "swaps_submitted_total",
			Help:      "Signed swap transactions accepted by the node.",
		}),
		BroadcastFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swapexec",
			Name:      "broadcast_failures_total",
			Help:      "Broadcast-time failures by classification.",
		}, []string{"kind"}),
		SwapBuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "swapexec",
			Name:      "swap_build_duration_seconds",
			Help:      "Time from candidate construction to broadcast.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.EstimationOutcomes, m.SwapsSubmitted, m.BroadcastFailures, m.SwapBuildDuration)
	return m
}

// ObserveEstimation records one candidate outcome.
func (m *Metrics) ObserveEstimation(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.EstimationOutcomes.WithLabelValues("success").Inc()
	} else {
		m.EstimationOutcomes.WithLabelValues("failure").Inc()
	}
}

func (m *Metrics) ObserveSubmitted() {
	if m == nil {
		return
	}
	m.SwapsSubmitted.Inc()
}

func (m *Metrics) ObserveBroadcastFailure(kind string) {
	if m == nil {
		return
	}
	m.BroadcastFailures.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveBuildSeconds(s float64) {
	if m == nil {
		return
	}
	m.SwapBuildDuration.Observe(s)
}
