package humanize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/scriptarena/arena"
)

func TestNumber(t *testing.T) {
	assert.Equal(t, "0", Number(0))
	assert.Equal(t, "999", Number(999))
	assert.Equal(t, "1,000", Number(1000))
	assert.Equal(t, "1,234,567", Number(1234567))
}

func TestBytes(t *testing.T) {
	assert.Equal(t, "16 B", Bytes(16))
	assert.Equal(t, "1.0 KB", Bytes(1024))
	assert.Equal(t, "1.5 KB", Bytes(1536))
	assert.Equal(t, "2.0 MB", Bytes(2<<20))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "50.0%", Percent(0.5))
	assert.Equal(t, "0.0%", Percent(0))
}

func TestDiagnosticsTable(t *testing.T) {
	d := arena.Diagnostics{
		Banks: []arena.BankStats{
			{Slot: 0, Live: 4, BlockSize: 16, Capacity: 4},
			{Slot: 1, Live: 1, BlockSize: 32, Capacity: 2},
		},
		Count: 2,
		Base:  16,
	}
	out := DiagnosticsTable(d)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "SLOT")
	assert.Contains(t, lines[1], "100.0%")
	assert.Contains(t, lines[2], "50.0%")
	assert.Contains(t, lines[3], "2 banks, base 16 B, 96 B of 128 B in use (75.0%)")
}

func TestLayoutTable(t *testing.T) {
	layout, err := arena.LayoutOf(&arena.Config{Base: 16, Counts: []int{4, 2}})
	require.NoError(t, err)

	out := LayoutTable(layout)
	assert.Contains(t, out, "data region: 128 B (128 bytes)")
	assert.Contains(t, out, "32 B")
}
