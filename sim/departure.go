package sim

import "math/rand/v2"

// DeparturePolicy selects which resident clients leave the station in the
// current quantum.
type DeparturePolicy interface {
	// Decide sets departs[i] to true when the i-th resident departs.
	// Every entry of departs is overwritten.
	Decide(departs []bool, probability float64, rng *rand.Rand)
	// Name returns the policy identifier used in logs and reports.
	Name() string
}

// IndependentDeparture draws one Bernoulli trial per resident client.
type IndependentDeparture struct{}

func (IndependentDeparture) Decide(departs []bool, probability float64, rng *rand.Rand) {
	for i := range departs {
		departs[i] = bernoulli(rng, probability)
	}
}

func (IndependentDeparture) Name() string { return "independent" }

// BatchDeparture draws a single trial per quantum shared by every resident:
// either the whole resident set leaves or nobody does.
type BatchDeparture struct{}

func (BatchDeparture) Decide(departs []bool, probability float64, rng *rand.Rand) {
	if len(departs) == 0 {
		return
	}
	all := bernoulli(rng, probability)
	for i := range departs {
		departs[i] = all
	}
}

func (BatchDeparture) Name() string { return "batch" }

// NewDeparturePolicy maps the equality flag onto a policy.
func NewDeparturePolicy(equality bool) DeparturePolicy {
	if equality {
		return BatchDeparture{}
	}
	return IndependentDeparture{}
}

// bernoulli reports success with the given probability. rng.Float64 is in
// [0, 1), so probability 1 always succeeds and 0 never does.
func bernoulli(rng *rand.Rand, probability float64) bool {
	return rng.Float64() < probability
}
