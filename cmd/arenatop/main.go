package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/joshuapare/scriptarena/arena"
	"github.com/joshuapare/scriptarena/internal/logger"
	"github.com/joshuapare/scriptarena/internal/workload"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type options struct {
	preset    string
	base      int
	tiers     string
	region    string
	mix       string
	seed      int64
	heapLimit int
	batch     int
	interval  time.Duration
	debug     bool
	version   bool
}

func parseFlags(args []string) (*options, error) {
	opts := &options{}
	fs := pflag.NewFlagSet("arenatop", pflag.ContinueOnError)
	fs.StringVar(&opts.preset, "preset", "balanced", "Predefined layout ("+strings.Join(arena.PresetNames(), ", ")+")")
	fs.IntVar(&opts.base, "base", 0, "Block size of bank 0 (overrides the preset)")
	fs.StringVar(&opts.tiers, "tiers", "", "Comma-separated block counts per bank")
	fs.StringVar(&opts.region, "region", "mapped", "Backing region: mapped, heap or delegate")
	fs.StringVar(&opts.mix, "mix", "churn", "Workload mix (churn, strings, tables)")
	fs.Int64Var(&opts.seed, "seed", time.Now().UnixNano(), "Random seed")
	fs.IntVar(&opts.heapLimit, "heap-limit", 0, "Byte limit of the delegate heap (0 = unlimited)")
	fs.IntVar(&opts.batch, "batch", 500, "Workload steps per tick")
	fs.DurationVar(&opts.interval, "interval", 100*time.Millisecond, "Time between ticks")
	fs.BoolVarP(&opts.debug, "debug", "d", false, "Enable debug logging to ~/.scriptarena/logs/")
	fs.BoolVarP(&opts.version, "version", "v", false, "Show version information")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "arenatop - live view of a script arena under a synthetic workload")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "USAGE:")
		fmt.Fprintln(os.Stderr, "  arenatop [options]")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "OPTIONS:")
		fmt.Fprint(os.Stderr, fs.FlagUsages())
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "For non-interactive runs, use 'arenactl simulate' instead.")
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if opts.interval <= 0 {
		return nil, fmt.Errorf("--interval must be positive")
	}
	return opts, nil
}

func (o *options) simOptions() (SimOptions, error) {
	cfg, err := arena.Preset(o.preset)
	if err != nil {
		return SimOptions{}, err
	}
	if o.tiers != "" {
		if cfg.Counts, err = arena.ParseCounts(o.tiers); err != nil {
			return SimOptions{}, err
		}
	}
	if o.base != 0 {
		cfg.Base = o.base
	}
	if cfg.Region, err = arena.ParseRegionKind(o.region); err != nil {
		return SimOptions{}, err
	}
	cfg.Logger = logger.L

	mix, err := workload.Lookup(o.mix)
	if err != nil {
		return SimOptions{}, err
	}
	return SimOptions{Config: &cfg, Mix: mix, Seed: o.seed, HeapLimit: o.heapLimit}, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if opts.version {
		fmt.Printf("arenatop %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		os.Exit(0)
	}

	// Initialize logger (must be before any logging calls)
	if err := logger.Init(logger.Options{
		Enabled: opts.debug,
		Prefix:  "arenatop-",
		Level:   slog.LevelDebug,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}

	simOpts, err := opts.simOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	sim, err := NewSimulation(simOpts)
	if err != nil {
		logger.Error("simulation setup failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("starting arenatop", "mix", simOpts.Mix.Name, "seed", simOpts.Seed, "region", simOpts.Config.Region.String())

	m := NewModel(sim, opts.batch, opts.interval)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		sim.Close()
		os.Exit(1)
	}

	// Clean up resources
	if model, ok := finalModel.(Model); ok {
		if err := model.Close(); err != nil {
			logger.Warn("error closing arena", "error", err)
		}
	}

	logger.Info("arenatop exited normally")
}
