package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/scriptarena/arena"
	"github.com/joshuapare/scriptarena/internal/logger"
)

// Arena layout flags shared by layout, slot and simulate.
var (
	cfgPreset string
	cfgBase   int
	cfgTiers  string
	cfgRegion string
	cfgName   string
)

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&cfgPreset, "preset", "balanced", "Predefined layout ("+strings.Join(arena.PresetNames(), ", ")+")")
	cmd.Flags().IntVar(&cfgBase, "base", 0, "Block size of bank 0 (overrides the preset)")
	cmd.Flags().StringVar(&cfgTiers, "tiers", "", "Comma-separated block counts per bank, e.g. 512,256,128")
	cmd.Flags().StringVar(&cfgRegion, "region", "mapped", "Backing region: mapped, heap or delegate")
	cmd.Flags().StringVar(&cfgName, "name", "", "Name the diagnostics function is published under")
}

func resetConfigFlags() {
	cfgPreset = "balanced"
	cfgBase = 0
	cfgTiers = ""
	cfgRegion = "mapped"
	cfgName = ""
}

// buildConfig resolves the layout flags into a validated config.
func buildConfig() (*arena.Config, error) {
	cfg, err := arena.Preset(cfgPreset)
	if err != nil {
		return nil, err
	}
	if cfgTiers != "" {
		counts, err := arena.ParseCounts(cfgTiers)
		if err != nil {
			return nil, err
		}
		cfg.Counts = counts
	}
	if cfgBase != 0 {
		cfg.Base = cfgBase
	}
	cfg.Region, err = arena.ParseRegionKind(cfgRegion)
	if err != nil {
		return nil, err
	}
	cfg.Name = cfgName
	cfg.Logger = logger.L

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	return &cfg, nil
}
