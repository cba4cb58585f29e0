// Package workload provides the arrival processes that feed clients into a
// sim.Server.
package workload

import (
	"fmt"

	"github.com/stationsim/station-sim/sim"
)

// Arrival process identifiers accepted by ArrivalSpec.Process.
const (
	ProcessPoisson   = "poisson"
	ProcessLogNormal = "lognormal"
	ProcessConstant  = "constant"
)

// ArrivalSpec describes an arrival process declaratively (CLI flags, YAML).
type ArrivalSpec struct {
	Process string  `yaml:"process"`
	Lambda  float64 `yaml:"lambda,omitempty"` // poisson
	Sigma   float64 `yaml:"sigma,omitempty"`  // lognormal
	Value   int     `yaml:"value,omitempty"`  // constant
}

// Param returns the swept parameter of the process: lambda, sigma or the
// constant value.
func (s ArrivalSpec) Param() float64 {
	switch s.Process {
	case ProcessPoisson:
		return s.Lambda
	case ProcessLogNormal:
		return s.Sigma
	case ProcessConstant:
		return float64(s.Value)
	default:
		return 0
	}
}

// WithParam returns a copy of s whose swept parameter is set to v.
func (s ArrivalSpec) WithParam(v float64) ArrivalSpec {
	switch s.Process {
	case ProcessPoisson:
		s.Lambda = v
	case ProcessLogNormal:
		s.Sigma = v
	case ProcessConstant:
		s.Value = int(v)
	}
	return s
}

// IsValidProcess reports whether name is a known arrival process.
func IsValidProcess(name string) bool {
	switch name {
	case ProcessPoisson, ProcessLogNormal, ProcessConstant:
		return true
	}
	return false
}

// NewArrivalStrategy creates a sim.ArrivalStrategy from a spec, validating
// its parameters.
func NewArrivalStrategy(spec ArrivalSpec) (sim.ArrivalStrategy, error) {
	var (
		strategy sim.ArrivalStrategy
		err      error
	)
	switch spec.Process {
	case ProcessPoisson:
		strategy, err = NewPoissonCount(spec.Lambda)
	case ProcessLogNormal:
		strategy, err = NewLogNormalCount(spec.Sigma)
	case ProcessConstant:
		strategy, err = NewConstantCount(spec.Value)
	default:
		err = fmt.Errorf("%w: unknown arrival process %q", sim.ErrInvalidConfig, spec.Process)
	}
	if err != nil {
		return nil, err
	}
	return strategy, nil
}
