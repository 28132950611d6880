package metrics_test

import (
	"testing"

	"github.com/UnknownOlympus/cellsim/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	m.Simulations.WithLabelValues("success").Inc()
	m.DevicesSimulated.WithLabelValues("eMBB").Add(150)
	m.DeviceSatisfaction.WithLabelValues("eMBB").Observe(0.42)
	m.GeocodingErrors.Inc()

	assert.InDelta(t, 1.0, testutil.ToFloat64(m.Simulations.WithLabelValues("success")), 0)
	assert.InDelta(t, 150.0, testutil.ToFloat64(m.DevicesSimulated.WithLabelValues("eMBB")), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.GeocodingErrors), 0)

	count, err := testutil.GatherAndCount(reg, "cellsim_device_satisfaction")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.Panics(t, func() { metrics.NewMetrics(reg) }, "registering twice must fail")
}
