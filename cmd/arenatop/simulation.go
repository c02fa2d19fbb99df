package main

import (
	"context"
	"fmt"
	"time"

	"github.com/joshuapare/scriptarena/arena"
	"github.com/joshuapare/scriptarena/internal/host"
	"github.com/joshuapare/scriptarena/internal/logger"
	"github.com/joshuapare/scriptarena/internal/workload"
)

// SimOptions configures the workload behind the viewer.
type SimOptions struct {
	Config    *arena.Config
	Mix       workload.Mix
	Seed      int64
	HeapLimit int
}

// Simulation owns one script state with an arena installed and a runner
// generating traffic against it.
type Simulation struct {
	state  *host.State
	arena  *arena.Arena
	runner *workload.Runner
	mix    workload.Mix
	region arena.RegionKind
	seed   int64
}

// Snapshot is what the copy key puts on the clipboard.
type Snapshot struct {
	Taken       time.Time         `json:"taken"`
	Mix         string            `json:"mix"`
	Region      string            `json:"region"`
	Seed        int64             `json:"seed"`
	Result      workload.Result   `json:"result"`
	Stats       arena.Stats       `json:"stats"`
	Diagnostics arena.Diagnostics `json:"diagnostics"`
}

// NewSimulation installs an arena on a fresh state.
func NewSimulation(opts SimOptions) (*Simulation, error) {
	s := host.NewState(&host.Options{HeapLimit: opts.HeapLimit, Logger: logger.L})
	a, err := arena.New(s, opts.Config)
	if err != nil {
		return nil, fmt.Errorf("install arena: %w", err)
	}
	r, err := workload.NewRunner(s, opts.Mix, workload.Options{Seed: opts.Seed})
	if err != nil {
		s.Close()
		a.Close()
		return nil, err
	}
	region := arena.DefaultConfig.Region
	if opts.Config != nil {
		region = opts.Config.Region
	}
	return &Simulation{
		state:  s,
		arena:  a,
		runner: r,
		mix:    opts.Mix,
		region: region,
		seed:   opts.Seed,
	}, nil
}

// Step runs n workload steps.
func (s *Simulation) Step(n int) (workload.Result, error) {
	return s.runner.Run(context.Background(), n)
}

// Drain frees every live object.
func (s *Simulation) Drain() {
	s.runner.Drain()
}

// Snapshot captures the current counters and occupancy.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Taken:       time.Now(),
		Mix:         s.mix.Name,
		Region:      s.region.String(),
		Seed:        s.seed,
		Result:      s.runner.Result(),
		Stats:       s.arena.Stats(),
		Diagnostics: s.arena.Diagnostics(),
	}
}

// Close drains the workload and uninstalls the arena.
func (s *Simulation) Close() error {
	s.runner.Drain()
	s.state.Close()
	return s.arena.Close()
}
