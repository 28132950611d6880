package simulation_test

import (
	"testing"

	"github.com/UnknownOlympus/cellsim/internal/models"
	"github.com/UnknownOlympus/cellsim/internal/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	t.Run("aggregates per class in order of appearance", func(t *testing.T) {
		results := []models.DeviceResult{
			{Class: models.MassiveIoT, SNRDb: 10, DownlinkMbps: 0.1, UplinkMbps: 0.025, Satisfaction: 1},
			{Class: models.MassiveIoT, SNRDb: -2},
			{Class: models.EnhancedBroadband, SNRDb: 25, DownlinkMbps: 120, UplinkMbps: 30, Satisfaction: 1},
			{Class: models.EnhancedBroadband, SNRDb: 5, DownlinkMbps: 40, UplinkMbps: 10, Satisfaction: 0.4},
		}

		summary := simulation.Summarize(results)

		require.Len(t, summary, 2)
		assert.Equal(t, models.ClassSummary{
			Class:            models.MassiveIoT,
			Devices:          2,
			Connected:        1,
			MeanDownlinkMbps: 0.05,
			MeanUplinkMbps:   0.0125,
			MeanSatisfaction: 0.5,
		}, summary[0])
		assert.Equal(t, models.EnhancedBroadband, summary[1].Class)
		assert.Equal(t, 2, summary[1].Connected)
		assert.InDelta(t, 80.0, summary[1].MeanDownlinkMbps, 1e-9)
		assert.InDelta(t, 20.0, summary[1].MeanUplinkMbps, 1e-9)
		assert.InDelta(t, 0.7, summary[1].MeanSatisfaction, 1e-9)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, simulation.Summarize(nil))
	})
}
