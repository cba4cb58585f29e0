package cmd

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"gonum.org/v1/gonum/stat"

	"github.com/stationsim/station-sim/sim/trace"
)

// throttlingThreshold is the reference occupancy level drawn on plots and
// flagged in reports: half of the run horizon.
func throttlingThreshold(quantums int) float64 {
	return float64(quantums) / 2
}

// occupancyStdDev is the standard deviation of the per-quantum resident count.
func occupancyStdDev(clientsTotal []int) float64 {
	if len(clientsTotal) < 2 {
		return 0
	}
	xs := make([]float64, len(clientsTotal))
	for i, c := range clientsTotal {
		xs[i] = float64(c)
	}
	return stat.StdDev(xs, nil)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func runRow(series string, run Run, quantums int) []string {
	throttled := "no"
	if run.Result.MeanClientsLiveTime > throttlingThreshold(quantums) {
		throttled = "yes"
	}
	return []string{
		series,
		run.Title,
		formatFloat(run.Result.MeanClientsNew),
		formatFloat(run.Result.MeanClientsLiveTime),
		formatFloat(run.Result.MeanClientsCount),
		formatFloat(occupancyStdDev(run.Result.ClientsTotal)),
		throttled,
	}
}

var reportHeader = []any{"Series", "Run", "Mean new", "Mean live time", "Mean count", "Count stddev", "Throttled"}

// PrintSweepReport renders one table per experiment with a row per run.
func PrintSweepReport(w io.Writer, exp ExperimentResult, quantums int) error {
	if _, err := fmt.Fprintf(w, "=== %s (quantums = %d) ===\n", exp.Name, quantums); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header(reportHeader...)
	for _, series := range exp.Series {
		for _, run := range series.Runs {
			if err := table.Append(runRow(series.Name, run, quantums)); err != nil {
				return fmt.Errorf("append row %s/%s: %w", series.Name, run.Title, err)
			}
		}
	}
	return table.Render()
}

// PrintRunReport renders the statistics of a single run, followed by the
// trace summary when tracing was enabled.
func PrintRunReport(w io.Writer, run Run, st *trace.SimulationTrace, elapsed time.Duration) error {
	quantums := len(run.Result.ClientsTotal)
	if _, err := fmt.Fprintf(w, "=== Simulation Metrics (%s) ===\n", run.Title); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header(reportHeader...)
	if err := table.Append(runRow("-", run, quantums)); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if st != nil {
		summary := trace.Summarize(st)
		tt := tablewriter.NewWriter(w)
		tt.Header("Quantums", "Admitted", "Departed", "Peak resident", "Final resident", "Idle quantums", "Batch departures")
		if err := tt.Append([]string{
			strconv.Itoa(summary.Quantums),
			strconv.Itoa(summary.TotalAdmitted),
			strconv.Itoa(summary.TotalDeparted),
			strconv.Itoa(summary.PeakResident),
			strconv.Itoa(summary.FinalResident),
			strconv.Itoa(summary.IdleQuantums),
			strconv.Itoa(summary.BatchDepartures),
		}); err != nil {
			return err
		}
		if err := tt.Render(); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Simulation wall time : %s\n", elapsed.Round(time.Millisecond))
	return err
}
