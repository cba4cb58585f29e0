// Package sim provides the discrete-time engine of a single-queue service
// station.
//
// # Reading Guide
//
//   - server.go: the Server and its per-quantum Moment transition
//     (admission → aging → departure → sampling → finalization)
//   - metrics.go: RunningMean and the Metrics embedded in every Server
//   - departure.go: DeparturePolicy and its independent/batch variants
//   - rng.go: seeded, per-subsystem random sources owned by each Server
//   - emulate.go: the fixed-horizon driver loop and its Result snapshot
//
// # Extension Points
//
//   - ArrivalStrategy: number of clients admitted per quantum; Poisson,
//     log-normal and constant variants live in sim/workload
//   - DeparturePolicy: which residents leave in a quantum; selected by the
//     Equality flag or injected with WithDeparturePolicy
//
// Per-quantum trace records are kept by sim/trace when enabled.
package sim
