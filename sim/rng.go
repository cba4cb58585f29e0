package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two servers built with the same SimulationKey and identical configuration
// MUST produce identical ClientsTotal sequences.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// ForRun derives the key of the index-th run of a sweep driven by k.
func (k SimulationKey) ForRun(index int) SimulationKey {
	return SimulationKey(int64(k) ^ fnv1a64(fmt.Sprintf("run_%d", index)))
}

// === Subsystem Constants ===

const (
	// SubsystemArrivals is the RNG subsystem handed to the ArrivalStrategy.
	SubsystemArrivals = "arrivals"

	// SubsystemDepartures is the RNG subsystem used by the DeparturePolicy.
	SubsystemDepartures = "departures"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem,
// so that changing how many draws the arrival process makes never shifts the
// departure sequence (and vice versa).
//
// Derivation: PCG(masterSeed, fnv1a64(subsystemName)).
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewPCG(uint64(p.key), uint64(fnv1a64(name))))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
