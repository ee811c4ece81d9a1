package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels recorded for each analysis.
const (
	OutcomeSuccess = "success"
)

// Metrics exposes Prometheus collectors that report emotion analysis activity.
type Metrics struct {
	analyses         *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
	dominant         *prometheus.CounterVec
}

// MustNew constructs a Metrics instance registered on reg. Registration errors panic,
// mirroring promauto.
func MustNew(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	analyses := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "emotion_detector",
			Name:      "analyses_total",
			Help:      "Total number of emotion analyses by provider and outcome.",
		},
		[]string{"provider", "outcome"},
	)
	providerDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "emotion_detector",
			Name:      "provider_duration_seconds",
			Help:      "Time spent waiting on the emotion provider.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider"},
	)
	dominant := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "emotion_detector",
			Name:      "dominant_total",
			Help:      "Number of successful analyses by dominant emotion.",
		},
		[]string{"emotion"},
	)

	reg.MustRegister(analyses, providerDuration, dominant)

	return &Metrics{
		analyses:         analyses,
		providerDuration: providerDuration,
		dominant:         dominant,
	}
}

// ObserveAnalysis records the outcome of one analysis. A nil receiver is a no-op.
func (m *Metrics) ObserveAnalysis(provider, outcome string) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(provider, outcome).Inc()
}

// ObserveProviderCall records how long a provider call took.
func (m *Metrics) ObserveProviderCall(provider string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.providerDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// ObserveDominant counts a successful analysis under its dominant emotion.
func (m *Metrics) ObserveDominant(emotion string) {
	if m == nil {
		return
	}
	m.dominant.WithLabelValues(emotion).Inc()
}
