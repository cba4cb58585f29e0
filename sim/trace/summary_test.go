package trace

import "testing"

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelQuantums})

	// WHEN summarized
	summary := Summarize(st)

	// THEN all counts are zero
	if summary.Quantums != 0 {
		t.Errorf("expected 0 quantums, got %d", summary.Quantums)
	}
	if summary.TotalAdmitted != 0 || summary.TotalDeparted != 0 {
		t.Error("expected 0 admitted and departed")
	}
	if summary.PeakResident != 0 || summary.FinalResident != 0 {
		t.Error("expected 0 resident values")
	}
}

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary == nil {
		t.Fatal("expected non-nil summary for nil trace")
	}
	if summary.Quantums != 0 {
		t.Errorf("expected 0 quantums, got %d", summary.Quantums)
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace where clients pile up and then leave together
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelQuantums})
	st.RecordQuantum(QuantumRecord{Quantum: 0, Admitted: 2, Departed: 0, Resident: 2})
	st.RecordQuantum(QuantumRecord{Quantum: 1, Admitted: 1, Departed: 1, Resident: 2})
	st.RecordQuantum(QuantumRecord{Quantum: 2, Admitted: 0, Departed: 2, Resident: 0})
	st.RecordQuantum(QuantumRecord{Quantum: 3, Admitted: 0, Departed: 0, Resident: 0})
	st.RecordQuantum(QuantumRecord{Quantum: 4, Admitted: 3, Departed: 0, Resident: 3})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts match
	if summary.Quantums != 5 {
		t.Errorf("expected 5 quantums, got %d", summary.Quantums)
	}
	if summary.TotalAdmitted != 6 {
		t.Errorf("expected 6 admitted, got %d", summary.TotalAdmitted)
	}
	if summary.TotalDeparted != 3 {
		t.Errorf("expected 3 departed, got %d", summary.TotalDeparted)
	}
	if summary.PeakResident != 3 {
		t.Errorf("expected peak 3, got %d", summary.PeakResident)
	}
	if summary.FinalResident != 3 {
		t.Errorf("expected final 3, got %d", summary.FinalResident)
	}
	if summary.IdleQuantums != 2 {
		t.Errorf("expected 2 idle quantums, got %d", summary.IdleQuantums)
	}
	if summary.BatchDepartures != 1 {
		t.Errorf("expected 1 batch departure, got %d", summary.BatchDepartures)
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		want  bool
	}{
		{"", true},
		{"none", true},
		{"quantums", true},
		{"decisions", false},
		{"QUANTUMS", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.want {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}
