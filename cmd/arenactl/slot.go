package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/scriptarena/arena"
	"github.com/joshuapare/scriptarena/internal/host"
)

func init() {
	cmd := newSlotCmd()
	addConfigFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func newSlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slot <size>...",
		Short: "Resolve request sizes to banks",
		Long: `The slot command reports which bank serves a request of each given
size, or that the request is passed to the delegate allocator.

Example:
  arenactl slot 10 20 40
  arenactl slot 24 --base 16 --tiers 4,2
  arenactl slot 700 --preset small --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSlot(args)
		},
	}
	return cmd
}

type slotResult struct {
	Size      int  `json:"size"`
	Slot      int  `json:"slot"`
	BlockSize int  `json:"blockSize,omitempty"`
	Delegated bool `json:"delegated"`
}

func runSlot(args []string) error {
	sizes := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid size %q: must be a positive integer", a)
		}
		sizes[i] = n
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	// The resolution needs a live arena; a heap region keeps it cheap.
	cfg.Region = arena.RegionHeap
	cfg.Name = ""

	s := host.NewState(nil)
	a, err := arena.New(s, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	results := make([]slotResult, len(sizes))
	for i, n := range sizes {
		slot := a.SlotForSize(n)
		r := slotResult{Size: n, Slot: slot}
		if slot >= a.NumBanks() {
			r.Slot = -1
			r.Delegated = true
		} else {
			r.BlockSize = a.Base() << slot
		}
		results[i] = r
	}

	if jsonOut {
		return printJSON(results)
	}

	for _, r := range results {
		if r.Delegated {
			printInfo("%8d  delegate (> %d)\n", r.Size, a.MaxSize())
			continue
		}
		printInfo("%8d  slot %d (%d B blocks)\n", r.Size, r.Slot, r.BlockSize)
	}
	return nil
}
