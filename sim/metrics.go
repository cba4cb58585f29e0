// Tracks the running statistics of a Server: arrivals per quantum,
// client live time and occupancy.

package sim

// RunningMean is an incrementally updated arithmetic mean.
// The zero value is ready to use and reports a mean of 0 for zero samples.
type RunningMean struct {
	count int64
	mean  float64
}

// Add folds one sample into the mean without rescanning history.
func (m *RunningMean) Add(x float64) {
	m.count++
	m.mean += (x - m.mean) / float64(m.count)
}

// Value returns the current mean, 0 when no samples were added.
func (m RunningMean) Value() float64 {
	return m.mean
}

// Count returns the number of samples folded in so far.
func (m RunningMean) Count() int64 {
	return m.count
}

// Metrics aggregates the statistics of one server run for final reporting.
type Metrics struct {
	ClientsNew      RunningMean // admitted clients per quantum
	ClientsLiveTime RunningMean // live time of departed (and finalized) clients
	ClientsCount    RunningMean // resident clients sampled once per quantum
}
