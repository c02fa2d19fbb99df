package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"

	"github.com/joshuapare/scriptarena/arena"
	"github.com/joshuapare/scriptarena/internal/host"
	"github.com/joshuapare/scriptarena/internal/humanize"
	"github.com/joshuapare/scriptarena/internal/logger"
	"github.com/joshuapare/scriptarena/internal/workload"
)

var (
	simMix       string
	simSteps     int
	simSeed      int64
	simRate      float64
	simBurst     int
	simHeapLimit int
	simJaeger    string
)

func init() {
	cmd := newSimulateCmd()
	addConfigFlags(cmd)
	cmd.Flags().StringVar(&simMix, "mix", "churn", "Workload mix (churn, strings, tables)")
	cmd.Flags().IntVar(&simSteps, "steps", 100000, "Number of workload steps")
	cmd.Flags().Int64Var(&simSeed, "seed", 1, "Random seed")
	cmd.Flags().Float64Var(&simRate, "rate", 0, "Steps per second (0 = unthrottled)")
	cmd.Flags().IntVar(&simBurst, "burst", 1, "Step burst when --rate is set")
	cmd.Flags().IntVar(&simHeapLimit, "heap-limit", 0, "Byte limit of the delegate heap (0 = unlimited)")
	cmd.Flags().StringVar(&simJaeger, "jaeger", "", "Jaeger collector endpoint for run traces")
	rootCmd.AddCommand(cmd)
}

func resetSimulateFlags() {
	simMix = "churn"
	simSteps = 100000
	simSeed = 1
	simRate = 0
	simBurst = 1
	simHeapLimit = 0
	simJaeger = ""
}

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a synthetic script workload against an arena",
		Long: `The simulate command installs an arena on a fresh script state, drives
it with a workload mix of strings, closures and tables, and reports how the
hook requests were served. The workload is drained and the arena uninstalled
before the command returns.

Example:
  arenactl simulate
  arenactl simulate --mix tables --steps 50000 --preset small
  arenactl simulate --rate 2000 --jaeger http://localhost:14268/api/traces`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd.Context())
		},
	}
	return cmd
}

type heapReport struct {
	Calls    int `json:"calls"`
	Failures int `json:"failures"`
}

type simulateReport struct {
	Mix         string            `json:"mix"`
	Seed        int64             `json:"seed"`
	Region      string            `json:"region"`
	Elapsed     time.Duration     `json:"elapsedNs"`
	Result      workload.Result   `json:"result"`
	Stats       arena.Stats       `json:"stats"`
	Diagnostics arena.Diagnostics `json:"diagnostics"`
	Heap        heapReport        `json:"heap"`
}

func runSimulate(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if simSteps <= 0 {
		return fmt.Errorf("--steps must be positive, got %d", simSteps)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	mix, err := workload.Lookup(simMix)
	if err != nil {
		return err
	}

	if simJaeger != "" {
		tp, err := tracerProvider(simJaeger,
			attribute.String("mix", mix.Name),
			attribute.Int64("seed", simSeed),
		)
		if err != nil {
			return fmt.Errorf("failed to create tracer provider: %w", err)
		}
		otel.SetTracerProvider(tp)
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(sctx); err != nil {
				printError("flushing traces: %v\n", err)
			}
		}()
	}

	opts := workload.Options{Seed: simSeed}
	if simRate > 0 {
		opts.Limit = rate.Limit(simRate)
		opts.Burst = simBurst
	}

	s := host.NewState(&host.Options{HeapLimit: simHeapLimit, Logger: logger.L})
	a, runner, err := installSimulation(s, cfg, mix, opts)
	if err != nil {
		return err
	}
	printVerbose("Installed arena: %d banks, blocks %d..%d B, region %s\n",
		a.NumBanks(), a.Base(), a.MaxSize(), cfg.Region)

	start := time.Now()
	res, runErr := runner.Run(ctx, simSteps)
	elapsed := time.Since(start)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		runner.Drain()
		s.Close()
		if err := a.Close(); err != nil {
			logger.Warn("arena close after failed run", "error", err)
		}
		return runErr
	}

	report := simulateReport{
		Mix:         mix.Name,
		Seed:        simSeed,
		Region:      cfg.Region.String(),
		Elapsed:     elapsed,
		Result:      res,
		Stats:       a.Stats(),
		Diagnostics: a.Diagnostics(),
	}

	runner.Drain()
	s.Close()
	if err := a.Close(); err != nil {
		return fmt.Errorf("failed to uninstall arena: %w", err)
	}
	report.Heap = heapReport{Calls: s.Heap().Calls(), Failures: s.Heap().Failures()}

	if jsonOut {
		if err := printJSON(report); err != nil {
			return err
		}
		return runErr
	}

	printSimulateReport(report)
	if runErr != nil {
		printInfo("interrupted after %s steps\n", humanize.Number(int64(res.Steps)))
	}
	return runErr
}

// installSimulation installs an arena on s and builds the runner. On error
// s keeps the allocator it had before.
func installSimulation(s *host.State, cfg *arena.Config, mix workload.Mix, opts workload.Options) (*arena.Arena, *workload.Runner, error) {
	a, err := arena.New(s, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to install arena: %w", err)
	}
	runner, err := workload.NewRunner(s, mix, opts)
	if err != nil {
		if cerr := a.Close(); cerr != nil {
			logger.Warn("arena close after setup failure", "error", cerr)
		}
		return nil, nil, err
	}
	return a, runner, nil
}

func printSimulateReport(r simulateReport) {
	printInfo("Simulation: mix %s, %s steps in %s\n",
		r.Mix, humanize.Number(int64(r.Result.Steps)), r.Elapsed.Round(time.Microsecond))
	printInfo("  objects: %s strings, %s closures, %s tables, %s resizes, %s frees, %s live\n",
		humanize.Number(int64(r.Result.Strings)),
		humanize.Number(int64(r.Result.Closures)),
		humanize.Number(int64(r.Result.Tables)),
		humanize.Number(int64(r.Result.Resizes)),
		humanize.Number(int64(r.Result.Frees)),
		humanize.Number(int64(r.Result.Live)),
	)
	if r.Result.Failures > 0 {
		printInfo("  out of memory: %s\n", humanize.Number(int64(r.Result.Failures)))
	}

	st := r.Stats
	printInfo("\nHook calls: %s\n", humanize.Number(int64(st.Calls)))
	printInfo("  new:      %s (%s delegated)\n", humanize.Number(int64(st.New)), humanize.Number(int64(st.NewDelegated)))
	printInfo("  foreign:  %s\n", humanize.Number(int64(st.Foreign)))
	printInfo("  frees:    %s\n", humanize.Number(int64(st.Frees)))
	printInfo("  no-ops:   %s\n", humanize.Number(int64(st.NoOps)))
	printInfo("  grows:    %s (%s failed)\n", humanize.Number(int64(st.Grows)), humanize.Number(int64(st.GrowFailures)))
	printInfo("  shrinks:  %s (%s kept)\n", humanize.Number(int64(st.Shrinks)), humanize.Number(int64(st.ShrinksKept)))

	printInfo("\nOccupancy at end of run:\n%s", humanize.DiagnosticsTable(r.Diagnostics))
	printVerbose("\nDelegate heap: %s calls, %s failures\n",
		humanize.Number(int64(r.Heap.Calls)), humanize.Number(int64(r.Heap.Failures)))
}
