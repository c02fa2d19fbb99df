package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCounts(t *testing.T) {
	counts, err := ParseCounts("4,2")
	require.NoError(t, err)
	require.Equal(t, []int{4, 2}, counts)

	counts, err = ParseCounts(" 512, 256 ,128 ")
	require.NoError(t, err)
	require.Equal(t, []int{512, 256, 128}, counts)

	_, err = ParseCounts("")
	require.ErrorIs(t, err, ErrNoTiers)

	_, err = ParseCounts("4,0")
	require.ErrorIs(t, err, ErrEmptyTier)

	_, err = ParseCounts("4,x")
	require.Error(t, err)
}

func TestConfig_DataSize(t *testing.T) {
	cfg := &Config{Base: 16, Counts: []int{4, 2}}
	n, err := cfg.DataSize()
	require.NoError(t, err)
	require.Equal(t, 16*4+32*2, n)
}

func TestConfig_PresetsAreValid(t *testing.T) {
	for _, cfg := range []Config{ConfigSmallScripts, ConfigBalanced, ConfigStringHeavy, DefaultConfig} {
		require.NoError(t, cfg.Validate())
	}
}

func TestPreset(t *testing.T) {
	require.Equal(t, []string{"balanced", "small", "strings"}, PresetNames())

	cfg, err := Preset("Small")
	require.NoError(t, err)
	require.Equal(t, ConfigSmallScripts.Counts, cfg.Counts)

	cfg.Counts[0] = 1
	require.Equal(t, 1024, ConfigSmallScripts.Counts[0], "preset copies are independent")

	_, err = Preset("huge")
	require.ErrorContains(t, err, "balanced, small, strings")
}

func TestRegionKind_RoundTrip(t *testing.T) {
	for _, k := range []RegionKind{RegionMapped, RegionHeap, RegionDelegate} {
		got, err := ParseRegionKind(k.String())
		require.NoError(t, err)
		require.Equal(t, k, got)
	}
	_, err := ParseRegionKind("shm")
	require.Error(t, err)
}
