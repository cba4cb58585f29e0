package sim

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/stationsim/station-sim/sim/trace"
)

// Server is a single-queue service station advanced one quantum at a time.
//
// Each call to Moment admits new clients, ages every resident, lets the
// DeparturePolicy pick who leaves and samples the occupancy. The resident
// count after quantum i is always ClientsTotal()[i].
type Server struct {
	config    ServerConfig
	arrivals  ArrivalStrategy
	departure DeparturePolicy
	rng       *PartitionedRNG

	quantum   int64
	residents []*Client // unordered
	departs   []bool    // scratch buffer reused by the departure step

	clientsTotal []int
	metrics      Metrics
	trace        *trace.SimulationTrace
	finished     bool
}

// ServerOption customizes a Server at construction time.
type ServerOption func(*Server)

// WithDeparturePolicy overrides the policy derived from ServerConfig.Equality.
func WithDeparturePolicy(policy DeparturePolicy) ServerOption {
	return func(s *Server) {
		s.departure = policy
	}
}

// NewServer validates cfg and builds a Server that draws arrivals from the
// given strategy.
func NewServer(cfg ServerConfig, arrivals ArrivalStrategy, opts ...ServerOption) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if arrivals == nil {
		return nil, fmt.Errorf("%w: arrival strategy is required", ErrInvalidConfig)
	}
	s := &Server{
		config:       cfg,
		arrivals:     arrivals,
		departure:    NewDeparturePolicy(cfg.Equality),
		rng:          NewPartitionedRNG(NewSimulationKey(cfg.Seed)),
		residents:    make([]*Client, 0),
		clientsTotal: make([]int, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.departure == nil {
		return nil, fmt.Errorf("%w: departure policy is required", ErrInvalidConfig)
	}
	if cfg.TraceLevel == trace.TraceLevelQuantums {
		s.trace = trace.NewSimulationTrace(trace.TraceConfig{Level: cfg.TraceLevel})
	}
	logrus.Debugf("server created: p=%.3f policy=%s seed=%d",
		cfg.ClientMessageProbability, s.departure.Name(), cfg.Seed)
	return s, nil
}

// Moment advances the simulation by exactly one quantum. When end is true
// the clients still resident are folded into the live-time mean as if they
// had departed, and the server stops accepting further quantums.
func (s *Server) Moment(end bool) {
	if s.finished {
		logrus.Warnf("[quantum %07d] Moment called on a finished server, ignoring", s.quantum)
		return
	}

	admitted := s.admit()
	for _, c := range s.residents {
		c.LiveTime++
	}
	departed := s.depart()

	resident := len(s.residents)
	s.clientsTotal = append(s.clientsTotal, resident)
	s.metrics.ClientsCount.Add(float64(resident))

	if s.trace != nil {
		s.trace.RecordQuantum(trace.QuantumRecord{
			Quantum:  s.quantum,
			Admitted: admitted,
			Departed: departed,
			Resident: resident,
		})
	}
	logrus.Tracef("[quantum %07d] admitted=%d departed=%d resident=%d", s.quantum, admitted, departed, resident)

	if end {
		s.finalize()
	}
	s.quantum++
}

// admit asks the arrival strategy for this quantum's clients and enqueues them.
func (s *Server) admit() int {
	n := s.arrivals.NewClients(s.rng.ForSubsystem(SubsystemArrivals))
	if n < 0 {
		logrus.Debugf("[quantum %07d] arrival strategy returned %d, clamping to 0", s.quantum, n)
		n = 0
	}
	for range n {
		s.residents = append(s.residents, newClient(s.quantum))
	}
	s.metrics.ClientsNew.Add(float64(n))
	return n
}

// depart removes the clients chosen by the departure policy, compacting the
// resident set in place.
func (s *Server) depart() int {
	n := len(s.residents)
	if cap(s.departs) < n {
		s.departs = make([]bool, n)
	}
	s.departs = s.departs[:n]
	s.departure.Decide(s.departs, s.config.ClientMessageProbability, s.rng.ForSubsystem(SubsystemDepartures))

	kept := s.residents[:0]
	for i, c := range s.residents {
		if s.departs[i] {
			s.metrics.ClientsLiveTime.Add(float64(c.LiveTime))
			continue
		}
		kept = append(kept, c)
	}
	clear(s.residents[len(kept):])
	s.residents = kept
	return n - len(kept)
}

// finalize accounts for the clients still resident at the horizon. They stay
// in the resident set so the occupancy history remains consistent.
func (s *Server) finalize() {
	for _, c := range s.residents {
		s.metrics.ClientsLiveTime.Add(float64(c.LiveTime))
	}
	s.finished = true
	logrus.Debugf("[quantum %07d] run finalized with %d clients resident", s.quantum, len(s.residents))
}

// Quantum returns the number of quantums simulated so far.
func (s *Server) Quantum() int64 { return s.quantum }

// Finished reports whether Moment(true) has been called.
func (s *Server) Finished() bool { return s.finished }

// Residents returns the current size of the resident set.
func (s *Server) Residents() int { return len(s.residents) }

// Config returns the configuration the server was built with.
func (s *Server) Config() ServerConfig { return s.config }

// DeparturePolicy returns the policy deciding departures.
func (s *Server) DeparturePolicy() DeparturePolicy { return s.departure }

// Metrics returns a copy of the running statistics.
func (s *Server) Metrics() Metrics { return s.metrics }

// MeanClientsNew is the running mean of admitted clients per quantum.
func (s *Server) MeanClientsNew() float64 { return s.metrics.ClientsNew.Value() }

// MeanClientsLiveTime is the running mean live time of departed clients,
// including the residents folded in at finalization.
func (s *Server) MeanClientsLiveTime() float64 { return s.metrics.ClientsLiveTime.Value() }

// MeanClientsCount is the running mean of the resident count per quantum.
func (s *Server) MeanClientsCount() float64 { return s.metrics.ClientsCount.Value() }

// ClientsTotal returns a copy of the per-quantum resident counts.
func (s *Server) ClientsTotal() []int { return slices.Clone(s.clientsTotal) }

// Trace returns the per-quantum trace, or nil when tracing is disabled.
func (s *Server) Trace() *trace.SimulationTrace { return s.trace }
