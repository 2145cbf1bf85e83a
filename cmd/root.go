//go:build linux

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hostsim/hostsim/sim"
	"github.com/hostsim/hostsim/sim/cluster"
	"github.com/hostsim/hostsim/sim/trace"
)

var (
	// CLI flags for the run command
	configPath  string // Simulation YAML; empty uses the built-in default
	seed        int64  // Overrides seed from the config
	stopTime    string // Overrides stop_time from the config
	parallelism int    // Overrides parallelism from the config
	logLevel    string // Log verbosity level
	traceFormat string // Overrides trace_format from the config
	outputPath  string // Trace destination; empty skips writing the trace
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "hostsim",
	Short: "Deterministic simulator for hosts observing emulated time",
}

// runCmd executes the simulation using parameters from the config and flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the host simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)

		cfg, raw, err := loadRunConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := runSimulation(ctx, cfg, raw, outputPath, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
	},
}

// setLogLevel configures the package-level logger; it exits on an unknown level.
func setLogLevel(name string) {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", name)
	}
	logrus.SetLevel(level)
}

// loadRunConfig reads --config (or the default) and applies flag overrides.
// Only flags the user actually set override the file.
func loadRunConfig(cmd *cobra.Command) (*sim.Config, []byte, error) {
	var cfg *sim.Config
	var raw []byte
	if configPath != "" {
		var err error
		if cfg, raw, err = sim.LoadConfig(configPath); err != nil {
			return nil, nil, err
		}
	} else {
		cfg = sim.DefaultConfig()
		logrus.Infof("No --config given, using the default two-host config")
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("stop-time") {
		cfg.StopTime = stopTime
	}
	if flags.Changed("parallelism") {
		cfg.Parallelism = parallelism
	}
	if flags.Changed("trace-format") {
		cfg.TraceFormat = traceFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if raw == nil {
		// Overrides change the run, so they are part of its identity.
		var err error
		if raw, err = yaml.Marshal(cfg); err != nil {
			return nil, nil, err
		}
	}
	return cfg, raw, nil
}

// runSimulation runs cfg, writes the trace to outPath (if set) and prints a
// summary to stdout.
func runSimulation(ctx context.Context, cfg *sim.Config, raw []byte, outPath string, stdout io.Writer) error {
	runID := sim.RunID(cfg.Seed, raw)
	c, err := cluster.NewClusterSimulator(cfg, runID)
	if err != nil {
		return err
	}
	if err := c.Run(ctx); err != nil {
		return err
	}
	st := c.Trace()

	if outPath != "" {
		if err := writeTrace(outPath, st, trace.Format(cfg.TraceFormat)); err != nil {
			return err
		}
		logrus.Infof("Trace written to %s", outPath)
	}

	summary := trace.Summarize(st)
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	_, _ = fmt.Fprintf(stdout, "=== Simulation Summary (run %s) ===\n", runID)
	_, _ = fmt.Fprintln(stdout, string(data))
	return nil
}

func writeTrace(path string, st *trace.SimulationTrace, format trace.Format) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trace file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return trace.Write(f, st, format)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to the simulation YAML (default: built-in two-host config)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for per-host random streams")
	runCmd.Flags().StringVar(&stopTime, "stop-time", "10s", "Simulated run length, e.g. 30s")
	runCmd.Flags().IntVar(&parallelism, "parallelism", 0, "Hosts run concurrently per round (0 = one per CPU)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&traceFormat, "trace-format", "json", "Trace encoding: json, yaml or cbor")
	runCmd.Flags().StringVar(&outputPath, "output", "", "Write the syscall trace to this file")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(sysinfoCmd)
}
