// Package trace provides per-quantum recording of a station run.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// QuantumRecord captures what happened at the station during one quantum.
type QuantumRecord struct {
	Quantum  int64
	Admitted int
	Departed int
	Resident int // resident count after departures
}
