package cmd

import (
	"os"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/stationsim/station-sim/sim"
	"github.com/stationsim/station-sim/sim/trace"
	"github.com/stationsim/station-sim/sim/workload"
)

var (
	// CLI flags shared by run and sweep
	seed                     int64   // Seed for arrival and departure draws
	logLevel                 string  // Log verbosity level
	quantums                 int     // Number of quantums per run
	clientMessageProbability float64 // Per-quantum departure probability

	// CLI flags for a single run
	arrivalProcess   string  // poisson, lognormal or constant
	poissonLambda    float64 // Poisson arrivals per quantum
	lognormalSigma   float64 // Log-normal sigma (mu fixed at -1)
	constantArrivals int     // Clients admitted per quantum for the constant process
	equality         bool    // Batch (all-or-nothing) departures
	traceLevel       string  // Trace verbosity: none or quantums

	// CLI flags for sweeps
	sweepConfigPath string // Optional YAML sweep definition
	plotDir         string // Directory for PNG plots; empty disables plotting
	parallelism     int    // Concurrent runs during a sweep
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "station-sim",
	Short: "Discrete-time simulator of a single-queue service station",
}

// setupLogging applies the --log flag.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// runCmd simulates one server using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one server for a fixed number of quantums",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if quantums < 0 {
			logrus.Fatalf("quantums must be non-negative, got %d", quantums)
		}
		spec := workload.ArrivalSpec{
			Process: arrivalProcess,
			Lambda:  poissonLambda,
			Sigma:   lognormalSigma,
			Value:   constantArrivals,
		}
		arrivals, err := workload.NewArrivalStrategy(spec)
		if err != nil {
			logrus.Fatalf("Invalid arrival process: %v", err)
		}
		server, err := sim.NewServer(sim.ServerConfig{
			ClientMessageProbability: clientMessageProbability,
			Equality:                 equality,
			Seed:                     seed,
			TraceLevel:               trace.TraceLevel(traceLevel),
		}, arrivals)
		if err != nil {
			logrus.Fatalf("Invalid server configuration: %v", err)
		}

		logrus.Infof("Starting simulation: process=%s param=%v p=%v equality=%v quantums=%d seed=%d",
			spec.Process, spec.Param(), clientMessageProbability, equality, quantums, seed)
		startTime := time.Now()

		run := Run{
			Title:  runTitle(spec.Process, spec.Param()),
			Param:  spec.Param(),
			Result: sim.Emulate(server, quantums),
		}
		if err := PrintRunReport(os.Stdout, run, server.Trace(), time.Since(startTime)); err != nil {
			logrus.Fatalf("Failed to print report: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// sweepCmd runs the experiment grids, both departure policies per grid point
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep arrival parameters and compare independent (A) and batch (B) departures",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg := DefaultSweepConfig()
		if sweepConfigPath != "" {
			loaded, err := LoadSweepConfig(sweepConfigPath)
			if err != nil {
				logrus.Fatalf("Failed to load sweep config: %v", err)
			}
			cfg = loaded
		}
		// Flags override the file only when set explicitly.
		if cmd.Flags().Changed("quantums") {
			cfg.Quantums = quantums
		}
		if cmd.Flags().Changed("departure-prob") {
			cfg.ClientMessageProbability = clientMessageProbability
		}

		startTime := time.Now()
		results, err := RunSweep(cmd.Context(), cfg, sim.NewSimulationKey(seed), parallelism)
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
		for _, exp := range results {
			if err := PrintSweepReport(os.Stdout, exp, cfg.Quantums); err != nil {
				logrus.Fatalf("Failed to print report: %v", err)
			}
		}
		if plotDir != "" {
			if err := WritePlots(plotDir, results, cfg.Quantums); err != nil {
				logrus.Fatalf("Failed to write plots: %v", err)
			}
			logrus.Infof("Plots written to %s", plotDir)
		}
		logrus.Infof("Sweep complete in %s", time.Since(startTime).Round(time.Millisecond))
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "Seed for arrival and departure draws")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().IntVar(&quantums, "quantums", DefaultQuantums, "Number of quantums per run")
	rootCmd.PersistentFlags().Float64Var(&clientMessageProbability, "departure-prob", sim.DefaultClientMessageProbability, "Per-quantum probability that a resident client departs")

	runCmd.Flags().StringVar(&arrivalProcess, "arrival", workload.ProcessPoisson, "Arrival process (poisson, lognormal, constant)")
	runCmd.Flags().Float64Var(&poissonLambda, "lambda", 0.05, "Poisson arrivals per quantum")
	runCmd.Flags().Float64Var(&lognormalSigma, "sigma", 1.0, "Log-normal sigma of the arrival count (mu = -1)")
	runCmd.Flags().IntVar(&constantArrivals, "constant", 1, "Clients admitted per quantum by the constant process")
	runCmd.Flags().BoolVar(&equality, "equality", false, "All residents share one departure trial per quantum")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", string(trace.TraceLevelNone), "Trace verbosity (none, quantums)")

	sweepCmd.Flags().StringVar(&sweepConfigPath, "config", "", "Path to a YAML sweep definition (default: lab grids)")
	sweepCmd.Flags().StringVar(&plotDir, "plot-dir", "", "Directory for PNG plots; plotting is skipped when empty")
	sweepCmd.Flags().IntVar(&parallelism, "parallelism", runtime.GOMAXPROCS(0), "Maximum number of concurrent runs")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
}
