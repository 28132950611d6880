package simulation_test

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/UnknownOlympus/cellsim/internal/models"
	"github.com/UnknownOlympus/cellsim/internal/propagation"
	"github.com/UnknownOlympus/cellsim/internal/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestRun_EquatorTower(t *testing.T) {
	t.Parallel()
	engine := simulation.NewEngine(models.DefaultEnvironment(), 4)
	req := models.SimulationRequest{Tower: models.Coordinates{Latitude: 0, Longitude: 0}, TransmitPowerDbm: 40}

	results, err := engine.Run(t.Context(), req, newRand(1))

	require.NoError(t, err)
	require.Len(t, results, 500)
	for _, r := range results {
		assert.GreaterOrEqual(t, r.DistanceMeters, 50*0.999)
		assert.LessOrEqual(t, r.DistanceMeters, 1000*1.001)
		assert.LessOrEqual(t, r.RSSIDbm, 40.0)
		assert.GreaterOrEqual(t, r.Satisfaction, 0.0)
		assert.LessOrEqual(t, r.Satisfaction, 1.0)
		assert.GreaterOrEqual(t, r.DownlinkMbps, 0.0)
		assert.GreaterOrEqual(t, r.UplinkMbps, 0.0)
		assert.InDelta(t, r.DownlinkMbps/4, r.UplinkMbps, 1e-12)
		if !r.Connected() {
			assert.Zero(t, r.DownlinkMbps)
			assert.Zero(t, r.Satisfaction)
		}
	}
}

func TestRun_IndependentOfWorkerCount(t *testing.T) {
	t.Parallel()
	req := models.SimulationRequest{Tower: models.Coordinates{Latitude: 48.85, Longitude: 2.35}, TransmitPowerDbm: 46}

	single, err := simulation.NewEngine(models.DefaultEnvironment(), 1).Run(t.Context(), req, newRand(99))
	require.NoError(t, err)
	parallel, err := simulation.NewEngine(models.DefaultEnvironment(), 16).Run(t.Context(), req, newRand(99))
	require.NoError(t, err)
	defaulted, err := simulation.NewEngine(models.DefaultEnvironment(), 0).Run(t.Context(), req, newRand(99))
	require.NoError(t, err)

	assert.Equal(t, single, parallel)
	assert.Equal(t, single, defaulted)
}

func TestRun_PreservesClassGrouping(t *testing.T) {
	t.Parallel()
	engine := simulation.NewEngine(models.DefaultEnvironment(), 8)
	req := models.SimulationRequest{TransmitPowerDbm: 40}

	results, err := engine.Run(t.Context(), req, newRand(5))
	require.NoError(t, err)

	assert.Equal(t, models.MassiveIoT, results[0].Class)
	assert.Equal(t, models.MassiveIoT, results[299].Class)
	assert.Equal(t, models.EnhancedBroadband, results[300].Class)
	assert.Equal(t, models.EnhancedBroadband, results[449].Class)
	assert.Equal(t, models.UltraReliableLowLatency, results[450].Class)
	assert.Equal(t, models.UltraReliableLowLatency, results[499].Class)
}

func TestRun_ContextCancelled(t *testing.T) {
	t.Parallel()
	engine := simulation.NewEngine(models.DefaultEnvironment(), 2)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	results, err := engine.Run(ctx, models.SimulationRequest{TransmitPowerDbm: 40}, newRand(1))

	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

func TestEvaluate_DeviceAtTower(t *testing.T) {
	t.Parallel()
	env := models.DefaultEnvironment()
	engine := simulation.NewEngine(env, 1)
	tower := models.Coordinates{Latitude: 10, Longitude: 10}
	req := models.SimulationRequest{Tower: tower, TransmitPowerDbm: 40}

	got := engine.Evaluate(req, models.Device{Position: tower, Class: models.EnhancedBroadband})

	minLoss := propagation.NewModel(env).PathLossDb(propagation.MinDistanceKm)
	assert.Zero(t, got.DistanceMeters)
	assert.InDelta(t, 40-minLoss, got.RSSIDbm, 1e-9)
	assert.InDelta(t, 1.0, got.Satisfaction, 0)
}

func TestEvaluate_WeakerFartherAway(t *testing.T) {
	t.Parallel()
	engine := simulation.NewEngine(models.DefaultEnvironment(), 1)
	req := models.SimulationRequest{TransmitPowerDbm: 40}

	near := engine.Evaluate(req, models.Device{
		Position: models.Coordinates{Latitude: 0.0005},
		Class:    models.UltraReliableLowLatency,
	})
	far := engine.Evaluate(req, models.Device{
		Position: models.Coordinates{Latitude: 0.009},
		Class:    models.UltraReliableLowLatency,
	})

	assert.Greater(t, near.RSSIDbm, far.RSSIDbm)
	assert.GreaterOrEqual(t, near.Satisfaction, far.Satisfaction)
}

func TestEngine_Environment(t *testing.T) {
	t.Parallel()
	env := models.DefaultEnvironment()
	env.DeviceCount = 120
	dist, err := models.ParseDistribution("URLLC:0.5,eMBB:0.5")
	require.NoError(t, err)
	env.ClassDistribution = dist
	require.NoError(t, env.Validate())

	engine := simulation.NewEngine(env, 2)
	results, err := engine.Run(t.Context(), models.SimulationRequest{TransmitPowerDbm: 40}, newRand(3))

	require.NoError(t, err)
	assert.Equal(t, env, engine.Environment())
	require.Len(t, results, 120)
	assert.Equal(t, models.UltraReliableLowLatency, results[0].Class)
	assert.Equal(t, models.EnhancedBroadband, results[len(results)-1].Class)
}
