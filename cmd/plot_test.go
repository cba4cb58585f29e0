package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePlots_WritesEveryFigure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plots")

	require.NoError(t, WritePlots(dir, []ExperimentResult{fakeExperiment()}, 4))

	for _, name := range []string{
		"poisson_live_time.png",
		"poisson_count.png",
		"poisson_stability_A.png",
		"poisson_stability_B.png",
	} {
		info, err := os.Stat(filepath.Join(dir, name))
		if assert.NoError(t, err, name) {
			assert.Positive(t, info.Size(), name)
		}
	}
}

func TestWriteStability_OddRunCount(t *testing.T) {
	// Three runs leave the last tile of the second row empty.
	exp := fakeExperiment()
	series := exp.Series[0]
	series.Runs = append(series.Runs, series.Runs[0])

	path := filepath.Join(t.TempDir(), "stability.png")
	require.NoError(t, writeStability(path, series))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}
