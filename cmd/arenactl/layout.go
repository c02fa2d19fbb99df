package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/scriptarena/arena"
	"github.com/joshuapare/scriptarena/internal/humanize"
)

func init() {
	cmd := newLayoutCmd()
	addConfigFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show the bank layout of an arena configuration",
		Long: `The layout command prints every bank of a configuration: its block
size, block count and byte range inside the data region. Nothing is allocated.

Example:
  arenactl layout
  arenactl layout --preset small
  arenactl layout --base 16 --tiers 4,2 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout()
		},
	}
	return cmd
}

type layoutReport struct {
	Base     int                `json:"base"`
	Banks    []arena.BankLayout `json:"banks"`
	DataSize int                `json:"dataSize"`
	MaxBlock int                `json:"maxBlock"`
}

func runLayout() error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	layout, err := arena.LayoutOf(cfg)
	if err != nil {
		return err
	}
	last := layout[len(layout)-1]

	if jsonOut {
		return printJSON(layoutReport{
			Base:     cfg.Base,
			Banks:    layout,
			DataSize: last.End,
			MaxBlock: last.BlockSize,
		})
	}

	printVerbose("Preset %s, base %d, %d banks\n", cfgPreset, cfg.Base, len(layout))
	printInfo("%s", humanize.LayoutTable(layout))
	printInfo("largest block: %s; larger requests go to the delegate\n",
		humanize.Bytes(int64(last.BlockSize)))
	return nil
}
