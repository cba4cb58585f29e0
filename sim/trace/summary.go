package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	Quantums        int
	TotalAdmitted   int
	TotalDeparted   int
	PeakResident    int
	FinalResident   int
	IdleQuantums    int // quantums that ended with an empty station
	BatchDepartures int // quantums in which the whole resident set left at once
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil {
		return summary
	}

	summary.Quantums = len(st.Quantums)
	for _, q := range st.Quantums {
		summary.TotalAdmitted += q.Admitted
		summary.TotalDeparted += q.Departed
		if q.Resident > summary.PeakResident {
			summary.PeakResident = q.Resident
		}
		if q.Resident == 0 {
			summary.IdleQuantums++
			if q.Departed > 0 {
				summary.BatchDepartures++
			}
		}
	}
	if n := len(st.Quantums); n > 0 {
		summary.FinalResident = st.Quantums[n-1].Resident
	}
	return summary
}
