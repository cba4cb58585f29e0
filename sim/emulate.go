package sim

import (
	"github.com/sirupsen/logrus"
)

// Result is the read-only outcome of a completed run.
type Result struct {
	Quantums            int64
	MeanClientsNew      float64
	MeanClientsLiveTime float64
	MeanClientsCount    float64
	ClientsTotal        []int
}

// Result snapshots the server's aggregate fields.
func (s *Server) Result() Result {
	return Result{
		Quantums:            s.quantum,
		MeanClientsNew:      s.MeanClientsNew(),
		MeanClientsLiveTime: s.MeanClientsLiveTime(),
		MeanClientsCount:    s.MeanClientsCount(),
		ClientsTotal:        s.ClientsTotal(),
	}
}

// Emulate drives s through the given number of quantums, marking only the
// last call as the end of the run, and returns the resulting statistics.
func Emulate(s *Server, quantums int) Result {
	for i := range quantums {
		s.Moment(i == quantums-1)
	}
	res := s.Result()
	logrus.Infof("mean clients per moment: %v", res.MeanClientsNew)
	logrus.Infof("mean live time: %v", res.MeanClientsLiveTime)
	logrus.Infof("mean count of clients: %v", res.MeanClientsCount)
	return res
}
