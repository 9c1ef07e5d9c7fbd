package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configFile  string
	rows        int
	cols        int
	tickMillis  int
	seed        int64
	pattern     string
	parallel    bool
	workers     int
	memoryPool  bool
	logFile     string
	generations int
	randomize   bool
	watch       bool
	plot        bool
	writePath   string
)

// main runs the CLI: with no subcommand it opens the interactive board.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree and binds every flag to its package variable
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "go-life",
		Short:        "Conway's Game of Life in the terminal",
		SilenceUsage: true,
		RunE:         runInteractive,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file path (yaml)")
	flags.IntVar(&rows, "rows", 0, "grid rows (default 30)")
	flags.IntVar(&cols, "cols", 0, "grid columns (default 30)")
	flags.IntVar(&tickMillis, "tick", 0, "milliseconds between generations (default 100)")
	flags.Int64Var(&seed, "seed", 0, "random seed, 0 seeds from the clock")
	flags.StringVar(&pattern, "pattern", "", "seed pattern drawn at startup, empty string for none")
	flags.BoolVar(&parallel, "parallel", false, "evaluate rows concurrently")
	flags.IntVar(&workers, "workers", 0, "parallel workers, 0 means one per CPU")
	flags.BoolVar(&memoryPool, "pool", false, "recycle grids between generations")

	rootCmd.Flags().StringVar(&logFile, "log", "", "write debug log to this file")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the simulation headless and print the result",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&generations, "generations", 0, "generations to run (default 100)")
	runCmd.Flags().BoolVar(&randomize, "randomize", false, "randomize the board before running")
	runCmd.Flags().BoolVar(&watch, "watch", false, "redraw the board every tick")
	runCmd.Flags().BoolVar(&plot, "plot", true, "plot population over time")

	patternsCmd := &cobra.Command{
		Use:   "patterns",
		Short: "list seed patterns",
		Run:   listPatterns,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as yaml",
		RunE:  dumpConfig,
	}
	configCmd.Flags().StringVar(&writePath, "write", "", "write the configuration to this file instead of stdout")

	rootCmd.AddCommand(runCmd, patternsCmd, configCmd)
	return rootCmd
}
