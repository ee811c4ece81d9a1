package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecordObservations(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := MustNew(reg)

	m.ObserveAnalysis("watson", OutcomeSuccess)
	m.ObserveAnalysis("watson", OutcomeSuccess)
	m.ObserveAnalysis("watson", "network_error")
	m.ObserveDominant("joy")
	m.ObserveProviderCall("watson", 150*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.analyses.WithLabelValues("watson", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.analyses.WithLabelValues("watson", "network_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dominant.WithLabelValues("joy")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.providerDuration))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAnalysis("watson", OutcomeSuccess)
		m.ObserveProviderCall("watson", time.Second)
		m.ObserveDominant("joy")
	})
}
