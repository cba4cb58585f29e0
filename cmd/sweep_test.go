package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stationsim/station-sim/sim"
)

func smallSweepConfig() SweepConfig {
	return SweepConfig{
		Quantums:                 300,
		ClientMessageProbability: 0.25,
		Experiments: []ExperimentConfig{
			{Name: "poisson", Process: "poisson", Start: 0.1, Stop: 0.4, Step: 0.1},
			{Name: "lognormal", Process: "lognormal", Start: 0.5, Stop: 0.7, Step: 0.1},
		},
	}
}

func TestRunSweep_Structure(t *testing.T) {
	results, err := RunSweep(context.Background(), smallSweepConfig(), sim.NewSimulationKey(42), 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	poisson := results[0]
	assert.Equal(t, "poisson", poisson.Name)
	assert.Equal(t, "λ", poisson.ParamLabel)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, poisson.Params)
	require.Len(t, poisson.Series, 2)
	assert.Equal(t, "A", poisson.Series[0].Name)
	assert.False(t, poisson.Series[0].Equality)
	assert.Equal(t, "B", poisson.Series[1].Name)
	assert.True(t, poisson.Series[1].Equality)

	for _, series := range poisson.Series {
		require.Len(t, series.Runs, 3)
		for i, run := range series.Runs {
			assert.Equal(t, poisson.Params[i], run.Param)
			assert.Len(t, run.Result.ClientsTotal, 300)
		}
	}
	assert.Equal(t, "λ = 0.10", poisson.Series[0].Runs[0].Title)
	assert.Equal(t, "σ = 0.60", results[1].Series[1].Runs[1].Title)
}

func TestRunSweep_DeterministicAcrossParallelism(t *testing.T) {
	// GIVEN the same master seed
	key := sim.NewSimulationKey(7)

	// WHEN the sweep runs sequentially and concurrently
	serial, err := RunSweep(context.Background(), smallSweepConfig(), key, 1)
	require.NoError(t, err)
	parallel, err := RunSweep(context.Background(), smallSweepConfig(), key, 8)
	require.NoError(t, err)

	// THEN every run produced the same occupancy history
	assert.Equal(t, serial, parallel)
}

func TestRunSweep_RunsAreSeededIndependently(t *testing.T) {
	cfg := smallSweepConfig()
	cfg.Experiments = []ExperimentConfig{{Name: "flat", Process: "poisson", Start: 0.3, Stop: 0.35, Step: 0.1}}

	results, err := RunSweep(context.Background(), cfg, sim.NewSimulationKey(1), 1)
	require.NoError(t, err)

	// Series A and B share parameters but must not share a random stream.
	a := results[0].Series[0].Runs[0].Result
	b := results[0].Series[1].Runs[0].Result
	assert.NotEqual(t, a.ClientsTotal, b.ClientsTotal)
}

func TestRunSweep_InvalidConfig(t *testing.T) {
	cfg := smallSweepConfig()
	cfg.Quantums = 0
	_, err := RunSweep(context.Background(), cfg, sim.NewSimulationKey(1), 1)
	assert.ErrorIs(t, err, sim.ErrInvalidConfig)
}

func TestRunSweep_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunSweep(ctx, smallSweepConfig(), sim.NewSimulationKey(1), 1)
	assert.ErrorIs(t, err, context.Canceled)
}
