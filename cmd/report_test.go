package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stationsim/station-sim/sim"
	"github.com/stationsim/station-sim/sim/trace"
)

func fakeExperiment() ExperimentResult {
	run := func(title string, param, live float64) Run {
		return Run{Title: title, Param: param, Result: sim.Result{
			Quantums:            4,
			MeanClientsNew:      param,
			MeanClientsLiveTime: live,
			MeanClientsCount:    1.5,
			ClientsTotal:        []int{1, 2, 2, 1},
		}}
	}
	return ExperimentResult{
		Name:       "poisson",
		Process:    "poisson",
		ParamLabel: "λ",
		Params:     []float64{0.1, 0.2},
		Series: []Series{
			{Name: "A", Runs: []Run{run("λ = 0.10", 0.1, 1.25), run("λ = 0.20", 0.2, 3)}},
			{Name: "B", Equality: true, Runs: []Run{run("λ = 0.10", 0.1, 1.5), run("λ = 0.20", 0.2, 2.5)}},
		},
	}
}

func TestPrintSweepReport_ContainsEveryRun(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, PrintSweepReport(&buf, fakeExperiment(), 4))
	out := buf.String()

	assert.Contains(t, out, "=== poisson (quantums = 4) ===")
	assert.Equal(t, 2, strings.Count(out, "λ = 0.10"))
	assert.Equal(t, 2, strings.Count(out, "λ = 0.20"))
	assert.Contains(t, out, "1.2500")
	assert.Contains(t, out, "0.5774") // stddev of 1,2,2,1
	// live time 3 exceeds the throttling threshold of 4/2
	assert.Contains(t, out, "yes")
}

func TestPrintRunReport_WithTrace(t *testing.T) {
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelQuantums})
	st.RecordQuantum(trace.QuantumRecord{Quantum: 0, Admitted: 3, Resident: 3})
	st.RecordQuantum(trace.QuantumRecord{Quantum: 1, Departed: 3, Resident: 0})
	run := Run{Title: "λ = 1.50", Param: 1.5, Result: sim.Result{Quantums: 2, ClientsTotal: []int{3, 0}}}

	var buf bytes.Buffer
	require.NoError(t, PrintRunReport(&buf, run, st, 1500*time.Microsecond))
	out := buf.String()

	assert.Contains(t, out, "Simulation Metrics (λ = 1.50)")
	assert.Contains(t, strings.ToLower(out), "batch departures")
	assert.Contains(t, out, "Simulation wall time : 2ms")
}

func TestPrintRunReport_WithoutTrace(t *testing.T) {
	run := Run{Title: "σ = 1.00", Result: sim.Result{ClientsTotal: []int{0}}}

	var buf bytes.Buffer
	require.NoError(t, PrintRunReport(&buf, run, nil, 0))

	assert.NotContains(t, strings.ToLower(buf.String()), "peak resident")
}

func TestOccupancyStdDev(t *testing.T) {
	assert.Equal(t, 0.0, occupancyStdDev(nil))
	assert.Equal(t, 0.0, occupancyStdDev([]int{5}))
	assert.InDelta(t, 0.5774, occupancyStdDev([]int{1, 2, 2, 1}), 1e-4)
}
