package trace

// TraceLevel controls the verbosity of run tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelQuantums captures one QuantumRecord per simulated quantum.
	TraceLevelQuantums TraceLevel = "quantums"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:     true,
	TraceLevelQuantums: true,
	"":                 true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects quantum records during a server run.
type SimulationTrace struct {
	Config   TraceConfig
	Quantums []QuantumRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:   config,
		Quantums: make([]QuantumRecord, 0),
	}
}

// RecordQuantum appends a quantum record.
func (st *SimulationTrace) RecordQuantum(record QuantumRecord) {
	st.Quantums = append(st.Quantums, record)
}
