package sim

import "math/rand/v2"

// ArrivalStrategy decides how many clients enter the station in one quantum.
// Implementations live in sim/workload.
type ArrivalStrategy interface {
	// NewClients returns the number of clients admitted this quantum.
	// Negative results are treated as zero by the Server.
	NewClients(rng *rand.Rand) int
}

// ArrivalFunc adapts an ordinary function to the ArrivalStrategy interface.
type ArrivalFunc func(rng *rand.Rand) int

func (f ArrivalFunc) NewClients(rng *rand.Rand) int {
	return f(rng)
}
