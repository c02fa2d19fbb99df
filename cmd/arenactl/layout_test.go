package main

import (
	"testing"
)

func TestLayoutCommand(t *testing.T) {
	tests := []struct {
		name           string
		preset         string
		base           int
		tiers          string
		wantJSON       bool
		wantErr        bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:        "two tiers",
			base:        16,
			tiers:       "4,2",
			wantContain: []string{"SLOT", "16 B", "32 B", "data region: 128 B (128 bytes)", "largest block: 32 B"},
		},
		{
			name:        "small preset",
			preset:      "small",
			wantContain: []string{"1,024", "128 B", "data region: 64.0 KB (65,536 bytes)"},
		},
		{
			name:        "json output",
			base:        16,
			tiers:       "4,2",
			wantJSON:    true,
			wantContain: []string{`"dataSize": 128`, `"maxBlock": 32`, `"blockSize": 16`},
		},
		{
			name:    "unknown preset",
			preset:  "huge",
			wantErr: true,
		},
		{
			name:    "zero count tier",
			tiers:   "4,0",
			wantErr: true,
		},
		{
			name:    "base below link size",
			base:    2,
			tiers:   "4",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			if tt.preset != "" {
				cfgPreset = tt.preset
			}
			cfgBase = tt.base
			cfgTiers = tt.tiers
			jsonOut = tt.wantJSON

			output, err := captureOutput(t, runLayout)

			if (err != nil) != tt.wantErr {
				t.Errorf("runLayout() error = %v, wantErr %v\nOutput: %s", err, tt.wantErr, output)
				return
			}

			if tt.wantJSON && !tt.wantErr {
				var report layoutReport
				assertJSON(t, output, &report)
				if len(report.Banks) != 2 {
					t.Errorf("expected 2 banks, got %d", len(report.Banks))
				}
			}

			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}
