package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/stationsim/station-sim/sim"
	"github.com/stationsim/station-sim/sim/workload"
)

// Run is one completed server run with its driver-owned label.
type Run struct {
	Title  string
	Param  float64
	Result sim.Result
}

// Series groups the runs of one departure policy across a grid.
type Series struct {
	Name     string // "A" (independent) or "B" (batch)
	Equality bool
	Runs     []Run
}

// ExperimentResult holds both series of one experiment grid.
type ExperimentResult struct {
	Name       string
	Process    string
	ParamLabel string
	Params     []float64
	Series     []Series
}

// seriesPolicies lists the series every experiment runs, in report order.
var seriesPolicies = []struct {
	name     string
	equality bool
}{
	{"A", false},
	{"B", true},
}

// paramLabel returns the symbol of the parameter swept by a process.
func paramLabel(process string) string {
	switch process {
	case workload.ProcessPoisson:
		return "λ"
	case workload.ProcessLogNormal:
		return "σ"
	default:
		return "n"
	}
}

// runTitle is the display label attached to a run.
func runTitle(process string, v float64) string {
	return fmt.Sprintf("%s = %.2f", paramLabel(process), v)
}

// RunSweep runs every experiment of cfg. Runs are independent and may execute
// concurrently (up to parallelism at a time); each run is seeded from key and
// its position in the sweep, so results do not depend on scheduling.
func RunSweep(ctx context.Context, cfg SweepConfig, key sim.SimulationKey, parallelism int) ([]ExperimentResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if parallelism < 1 {
		parallelism = 1
	}

	results := make([]ExperimentResult, len(cfg.Experiments))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	runIndex := 0
	for ei, exp := range cfg.Experiments {
		grid := exp.Grid()
		results[ei] = ExperimentResult{
			Name:       exp.Name,
			Process:    exp.Process,
			ParamLabel: paramLabel(exp.Process),
			Params:     grid,
			Series:     make([]Series, len(seriesPolicies)),
		}
		for si, policy := range seriesPolicies {
			runs := make([]Run, len(grid))
			results[ei].Series[si] = Series{Name: policy.name, Equality: policy.equality, Runs: runs}
			for pi, v := range grid {
				serverCfg := sim.ServerConfig{
					ClientMessageProbability: cfg.ClientMessageProbability,
					Equality:                 policy.equality,
					Seed:                     int64(key.ForRun(runIndex)),
				}
				spec := exp.Spec(v)
				runIndex++
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					arrivals, err := workload.NewArrivalStrategy(spec)
					if err != nil {
						return err
					}
					server, err := sim.NewServer(serverCfg, arrivals)
					if err != nil {
						return err
					}
					logrus.Infof("%s %s: %s", exp.Name, policy.name, runTitle(exp.Process, v))
					runs[pi] = Run{
						Title:  runTitle(exp.Process, v),
						Param:  v,
						Result: sim.Emulate(server, cfg.Quantums),
					}
					return nil
				})
			}
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
