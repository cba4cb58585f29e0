package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/stationsim/station-sim/sim/trace"
)

// DefaultClientMessageProbability is the per-quantum departure probability
// used when none is configured.
const DefaultClientMessageProbability = 0.25

// ErrInvalidConfig is wrapped by every construction-time validation error.
var ErrInvalidConfig = errors.New("invalid configuration")

// ServerConfig groups the construction parameters of a Server.
type ServerConfig struct {
	// ClientMessageProbability is the probability, per quantum, that a
	// resident client is served and departs. Must lie in [0, 1].
	ClientMessageProbability float64 `yaml:"client_message_probability"`
	// Equality selects BatchDeparture (true) over IndependentDeparture (false).
	Equality bool `yaml:"equality"`
	// Seed feeds the server's PartitionedRNG.
	Seed int64 `yaml:"seed"`
	// TraceLevel enables per-quantum trace records when set to "quantums".
	TraceLevel trace.TraceLevel `yaml:"trace_level"`
}

// DefaultServerConfig returns the configuration used by the original lab runs.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		ClientMessageProbability: DefaultClientMessageProbability,
		TraceLevel:               trace.TraceLevelNone,
	}
}

// Validate checks the configuration once, before any quantum runs.
func (c ServerConfig) Validate() error {
	p := c.ClientMessageProbability
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%w: client message probability %v outside [0, 1]", ErrInvalidConfig, p)
	}
	if !trace.IsValidTraceLevel(string(c.TraceLevel)) {
		return fmt.Errorf("%w: unknown trace level %q", ErrInvalidConfig, c.TraceLevel)
	}
	return nil
}
