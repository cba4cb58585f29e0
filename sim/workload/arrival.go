package workload

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/stationsim/station-sim/sim"
)

// LogNormalMu is the fixed log-space mean of the log-normal arrival process.
const LogNormalMu = -1.0

// maxCount caps a single quantum's admissions so that extreme heavy-tail
// draws cannot overflow int on conversion.
const maxCount = math.MaxInt32

var (
	_ sim.ArrivalStrategy = (*PoissonCount)(nil)
	_ sim.ArrivalStrategy = (*LogNormalCount)(nil)
	_ sim.ArrivalStrategy = (*ConstantCount)(nil)
)

// PoissonCount admits a Poisson-distributed number of clients per quantum.
type PoissonCount struct {
	lambda float64
}

// NewPoissonCount creates a PoissonCount with rate lambda > 0.
func NewPoissonCount(lambda float64) (*PoissonCount, error) {
	if err := requirePositive("poisson lambda", lambda); err != nil {
		return nil, err
	}
	return &PoissonCount{lambda: lambda}, nil
}

func (a *PoissonCount) NewClients(rng *rand.Rand) int {
	d := distuv.Poisson{Lambda: a.lambda, Src: rng}
	return countFromDraw(d.Rand())
}

// Lambda returns the arrival rate per quantum.
func (a *PoissonCount) Lambda() float64 { return a.lambda }

// LogNormalCount admits floor(X) clients per quantum, X ~ LogNormal(-1, sigma).
// Heavier tailed and less symmetric than PoissonCount.
type LogNormalCount struct {
	sigma float64
}

// NewLogNormalCount creates a LogNormalCount with log-space deviation sigma > 0.
func NewLogNormalCount(sigma float64) (*LogNormalCount, error) {
	if err := requirePositive("lognormal sigma", sigma); err != nil {
		return nil, err
	}
	return &LogNormalCount{sigma: sigma}, nil
}

func (a *LogNormalCount) NewClients(rng *rand.Rand) int {
	d := distuv.LogNormal{Mu: LogNormalMu, Sigma: a.sigma, Src: rng}
	return countFromDraw(d.Rand())
}

// Sigma returns the log-space standard deviation.
func (a *LogNormalCount) Sigma() float64 { return a.sigma }

// ConstantCount always admits the same number of clients.
// Used for deterministic scenarios (zero variance).
type ConstantCount struct {
	value int
}

// NewConstantCount creates a ConstantCount admitting value >= 0 clients.
func NewConstantCount(value int) (*ConstantCount, error) {
	if value < 0 {
		return nil, fmt.Errorf("%w: constant arrivals %d must be non-negative", sim.ErrInvalidConfig, value)
	}
	return &ConstantCount{value: value}, nil
}

func (a *ConstantCount) NewClients(_ *rand.Rand) int {
	return a.value
}

// countFromDraw truncates a continuous draw to a client count. Values below
// one, NaN and infinities all map to zero.
func countFromDraw(x float64) int {
	if math.IsNaN(x) || math.IsInf(x, 0) || x < 1 {
		return 0
	}
	if x >= maxCount {
		logrus.Warnf("arrival draw %.3g exceeds %d clients; capping", x, maxCount)
		return maxCount
	}
	return int(math.Floor(x))
}

func requirePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: %s must be positive and finite, got %v", sim.ErrInvalidConfig, name, v)
	}
	return nil
}
