package cmd

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stationsim/station-sim/sim"
	"github.com/stationsim/station-sim/sim/workload"
)

// DefaultQuantums is the fixed horizon of every run in the original lab.
const DefaultQuantums = 10000

// SweepConfig represents a sweep YAML file.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type SweepConfig struct {
	Quantums                 int                `yaml:"quantums"`
	ClientMessageProbability float64            `yaml:"client_message_probability"`
	Experiments              []ExperimentConfig `yaml:"experiments"`
}

// ExperimentConfig is one parameter grid. Each grid point runs twice: series
// A with independent departures and series B with batch departures.
type ExperimentConfig struct {
	Name    string  `yaml:"name"`
	Process string  `yaml:"process"`
	Start   float64 `yaml:"start"`
	Stop    float64 `yaml:"stop"` // exclusive
	Step    float64 `yaml:"step"`
}

// DefaultSweepConfig reproduces the lab grids: Poisson lambda 0.05..0.45 and
// log-normal sigma 0.5..1.4.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		Quantums:                 DefaultQuantums,
		ClientMessageProbability: sim.DefaultClientMessageProbability,
		Experiments: []ExperimentConfig{
			{Name: "poisson", Process: workload.ProcessPoisson, Start: 0.05, Stop: 0.5, Step: 0.05},
			{Name: "lognormal", Process: workload.ProcessLogNormal, Start: 0.5, Stop: 1.5, Step: 0.1},
		},
	}
}

// LoadSweepConfig parses a sweep YAML file with strict field checking
// (typos must cause errors) and validates it.
func LoadSweepConfig(path string) (SweepConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SweepConfig{}, fmt.Errorf("read sweep config %s: %w", path, err)
	}
	cfg := DefaultSweepConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return SweepConfig{}, fmt.Errorf("parse sweep config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return SweepConfig{}, err
	}
	return cfg, nil
}

// Validate checks the horizon, the departure probability and every grid.
func (c SweepConfig) Validate() error {
	if c.Quantums <= 0 {
		return fmt.Errorf("%w: quantums must be positive, got %d", sim.ErrInvalidConfig, c.Quantums)
	}
	if err := (sim.ServerConfig{ClientMessageProbability: c.ClientMessageProbability}).Validate(); err != nil {
		return err
	}
	if len(c.Experiments) == 0 {
		return fmt.Errorf("%w: at least one experiment is required", sim.ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(c.Experiments))
	for _, e := range c.Experiments {
		if err := e.Validate(); err != nil {
			return err
		}
		if seen[e.Name] {
			return fmt.Errorf("%w: duplicate experiment name %q", sim.ErrInvalidConfig, e.Name)
		}
		seen[e.Name] = true
	}
	return nil
}

// Validate checks that the grid is non-empty and that every point yields a
// valid arrival process.
func (e ExperimentConfig) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("%w: experiment name is required", sim.ErrInvalidConfig)
	}
	if !workload.IsValidProcess(e.Process) {
		return fmt.Errorf("%w: experiment %q: unknown arrival process %q", sim.ErrInvalidConfig, e.Name, e.Process)
	}
	if !(e.Step > 0) || math.IsInf(e.Step, 0) {
		return fmt.Errorf("%w: experiment %q: step must be positive, got %v", sim.ErrInvalidConfig, e.Name, e.Step)
	}
	grid := e.Grid()
	if len(grid) == 0 {
		return fmt.Errorf("%w: experiment %q: empty grid [%v, %v)", sim.ErrInvalidConfig, e.Name, e.Start, e.Stop)
	}
	for _, v := range grid {
		if _, err := workload.NewArrivalStrategy(e.Spec(v)); err != nil {
			return fmt.Errorf("experiment %q: %w", e.Name, err)
		}
	}
	return nil
}

// Grid returns start, start+step, ... strictly below stop. Values are rounded
// to 1e-9 so that 0.1+0.2 style accumulation does not leak into titles.
func (e ExperimentConfig) Grid() []float64 {
	if !(e.Step > 0) || math.IsNaN(e.Start) || math.IsNaN(e.Stop) || math.IsInf(e.Stop-e.Start, 0) {
		return nil
	}
	eps := e.Step * 1e-9
	grid := make([]float64, 0)
	for i := 0; ; i++ {
		v := e.Start + float64(i)*e.Step
		if v >= e.Stop-eps {
			break
		}
		grid = append(grid, math.Round(v*1e9)/1e9)
	}
	return grid
}

// Spec returns the arrival spec of the grid point v.
func (e ExperimentConfig) Spec(v float64) workload.ArrivalSpec {
	return workload.ArrivalSpec{Process: e.Process}.WithParam(v)
}
