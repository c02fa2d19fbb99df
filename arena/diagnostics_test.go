package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiagnostics_Fresh(t *testing.T) {
	a, _ := newTestArena(t, 16, 4, 2)

	d := a.Diagnostics()
	require.Equal(t, 2, d.Count)
	require.Equal(t, 16, d.Base)
	require.Equal(t, []BankStats{
		{Slot: 0, Live: 0, BlockSize: 16, Capacity: 4},
		{Slot: 1, Live: 0, BlockSize: 32, Capacity: 2},
	}, d.Banks)
	require.Equal(t, []int{0, 16, 0, 32, 2, 16}, d.Values())
	require.Equal(t, 128, d.Capacity())
	require.Zero(t, d.Utilization())
}

func TestDiagnostics_DoesNotMutate(t *testing.T) {
	a, h := newTestArena(t, 16, 4, 2)
	p := h.call(nil, 0, 20)

	before := a.Stats()
	d1 := a.Diagnostics()
	d2 := a.Diagnostics()
	require.Equal(t, d1, d2)
	require.Equal(t, before, a.Stats())
	require.Equal(t, 1, a.freeCount(1))

	h.call(p, 20, 0)
}

func TestDiagnostics_Totals(t *testing.T) {
	a, h := newTestArena(t, 16, 4, 2)
	h.call(nil, 0, 10)
	h.call(nil, 0, 10)
	h.call(nil, 0, 30)

	d := a.Diagnostics()
	require.Equal(t, 3, d.Live())
	require.Equal(t, 2*16+32, d.LiveBytes())
	require.InDelta(t, 0.5, d.Utilization(), 1e-9)
	require.Equal(t, 2, d.Banks[0].Free())
	require.Equal(t, 1, d.Banks[1].Free())
}

func TestStats_CountsPaths(t *testing.T) {
	a, h := newTestArena(t, 16, 1, 1)

	p := h.call(nil, 0, 8)  // new, bank 0
	p = h.call(p, 8, 12)    // no-op
	p = h.call(p, 8, 30)    // grow to bank 1
	p = h.call(p, 30, 4)    // shrink back to bank 0
	q := h.call(nil, 0, 40) // new, delegated
	h.call(q, 40, 0)        // foreign free
	h.call(p, 4, 0)         // free

	require.Equal(t, Stats{
		Calls:        7,
		New:          2,
		NewDelegated: 1,
		Foreign:      1,
		Frees:        1,
		NoOps:        1,
		Grows:        1,
		Shrinks:      1,
	}, a.Stats())
}
