package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/session"
	"github.com/sheikhrachel/go-life/tui"
	"github.com/sheikhrachel/go-life/utils"
)

// loadConfig reads the config file if given, then applies flags the user set explicitly
func loadConfig(cmd *cobra.Command) (utils.Config, error) {
	config := utils.DefaultConfig()
	if configFile != "" {
		var err error
		if config, err = utils.LoadConfig(configFile); err != nil {
			return config, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("rows") {
		config.Rows = rows
	}
	if flags.Changed("cols") {
		config.Cols = cols
	}
	if flags.Changed("tick") {
		config.TickInterval = time.Duration(tickMillis) * time.Millisecond
	}
	if flags.Changed("seed") {
		config.Seed = seed
	}
	if flags.Changed("pattern") {
		config.SeedPattern = pattern
	}
	if flags.Changed("parallel") {
		config.Parallel = parallel
	}
	if flags.Changed("workers") {
		config.Workers = workers
	}
	if flags.Changed("pool") {
		config.UseMemoryPool = memoryPool
	}
	if flags.Changed("generations") {
		config.Generations = generations
	}

	if err := config.Validate(); err != nil {
		return config, errors.Wrap(err, "[loadConfig] invalid flags")
	}
	return config, nil
}

// runInteractive opens the board in the terminal
func runInteractive(cmd *cobra.Command, _ []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if logFile != "" {
		f, err := tea.LogToFile(logFile, "go-life")
		if err != nil {
			return errors.Wrapf(err, "[runInteractive] failed to open log file: %+v", logFile)
		}
		defer f.Close()
	}

	renderer := session.RenderFunc(func(g *model.Grid) {
		if logFile != "" {
			log.Printf("render: %dx%d, %d alive", g.Rows(), g.Cols(), g.CountLivingCells())
		}
	})
	s, err := session.New(config, renderer, nil)
	if err != nil {
		return err
	}
	return tui.Run(s, config.TickInterval)
}

// runHeadless steps the board without user input and prints a summary
func runHeadless(cmd *cobra.Command, _ []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	terminal := model.NewTerminalRenderer()
	terminal.Out = cmd.OutOrStdout()

	var renderer session.Renderer
	if watch {
		renderer = session.RenderFunc(func(g *model.Grid) {
			if err := terminal.Clear(); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Error clearing terminal:", err)
			}
			if err := terminal.Display(g); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			}
		})
	}

	s, err := session.New(config, renderer, nil)
	if err != nil {
		return err
	}
	if randomize {
		if err = s.Randomize(); err != nil {
			return err
		}
	}

	displayGameInfo(cmd, config, s.Grid())

	var tick <-chan time.Time
	if watch {
		ticker := time.NewTicker(config.TickInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	result, err := s.Run(ctx, config.Generations, tick)
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, session.ErrEmptyGrid) {
			return errors.New("the grid is empty; pick a seed pattern or pass --randomize")
		}
		return err
	}

	if !watch {
		if err := terminal.Display(s.Grid()); err != nil {
			return err
		}
	}
	displayGameStatus(cmd, result, s.Stats())
	return nil
}

// displayGameInfo shows the initial game information
func displayGameInfo(cmd *cobra.Command, config utils.Config, grid *model.Grid) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Features: Parallel: %v, Memory Pool: %v\n", config.Parallel, config.UseMemoryPool)
	fmt.Fprintf(out, "Grid: %dx%d | Initial living cells: %d | Generations: %d\n",
		grid.Rows(), grid.Cols(), grid.CountLivingCells(), config.Generations)
	fmt.Fprintln(out)
}

// displayGameStatus shows the final state of a run
func displayGameStatus(cmd *cobra.Command, result session.RunResult, stats *utils.Stats) {
	out := cmd.OutOrStdout()

	status := "Active"
	switch {
	case result.Population == 0:
		status = "Extinct"
	case result.Settled:
		status = "Settled"
	}

	fmt.Fprintf(out, "\nGen: %d | Living: %d | Status: %s\n", result.Generations, result.Population, status)
	fmt.Fprintf(out, "Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.Runtime().Seconds())

	if plot && len(stats.PopulationHistory) > 1 {
		graph := asciigraph.Plot(stats.PopulationHistory,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("population per generation"),
		)
		fmt.Fprintln(out)
		fmt.Fprintln(out, graph)
	}
}

// listPatterns prints the registered seed patterns
func listPatterns(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	for _, name := range model.PatternNames() {
		p := model.Patterns[name]
		cells := make([]string, len(p))
		for i, c := range p {
			cells[i] = fmt.Sprintf("(%d,%d)", c.Y, c.X)
		}
		fmt.Fprintf(out, "%-8s %s\n", name, strings.Join(cells, " "))
	}
}

// dumpConfig prints the configuration after file and flag overrides, or saves it with --write
func dumpConfig(cmd *cobra.Command, _ []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if writePath != "" {
		if err = utils.SaveConfig(writePath, config); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", writePath)
		return nil
	}
	return utils.WriteConfig(cmd.OutOrStdout(), config)
}
