package arena

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestSlotForSize_SmallestFittingBank(t *testing.T) {
	a, _ := newTestArena(t, 16, 4, 4, 4, 4)
	require.Equal(t, 128, a.MaxSize())

	for size := 1; size <= a.MaxSize(); size++ {
		slot := a.slotForSize(size)
		require.Less(t, slot, a.NumBanks(), "size %d", size)
		require.GreaterOrEqual(t, a.banks[slot].size, size, "size %d", size)
		if slot > 0 {
			require.Less(t, a.banks[slot-1].size, size, "size %d is not the tightest fit", size)
		}
	}
}

func TestSlotForSize_Boundaries(t *testing.T) {
	a, _ := newTestArena(t, 16, 4, 2)

	cases := []struct {
		size int
		slot int
	}{
		{1, 0},
		{5, 0},
		{16, 0},
		{17, 1},
		{20, 1},
		{32, 1},
		{33, 2},
		{1 << 20, 2},
	}
	for _, tc := range cases {
		require.Equal(t, tc.slot, a.SlotForSize(tc.size), "size %d", tc.size)
	}
}

func TestSlotForPointer_BankBoundaries(t *testing.T) {
	a, _ := newTestArena(t, 16, 4, 2, 3)

	layout := a.Layout()
	require.Len(t, layout, 3)
	for _, bl := range layout {
		first := a.pointerAt(bl.Start)
		last := a.pointerAt(bl.End - 1)
		lastBlock := a.pointerAt(bl.End - bl.BlockSize)

		require.Equal(t, bl.Slot, a.slotForPointer(first), "first byte of bank %d", bl.Slot)
		require.Equal(t, bl.Slot, a.slotForPointer(last), "last byte of bank %d", bl.Slot)
		require.Equal(t, bl.Slot, a.slotForPointer(lastBlock), "last block of bank %d", bl.Slot)
	}
}

func TestInDataRegion(t *testing.T) {
	a, h := newTestArena(t, 16, 4, 2)

	require.False(t, a.inDataRegion(nil))
	require.True(t, a.inDataRegion(a.pointerAt(0)))
	require.True(t, a.inDataRegion(a.pointerAt(127)))

	end := unsafe.Add(a.pointerAt(127), 1)
	require.False(t, a.inDataRegion(end), "one past the end is foreign")

	foreign := h.heap.Realloc(nil, 0, 8)
	require.False(t, a.inDataRegion(foreign))
	require.Equal(t, -1, a.SlotOf(foreign))
}

func TestLayout_Contiguous(t *testing.T) {
	a, _ := newTestArena(t, 8, 3, 5, 1, 2)

	prev := 0
	for i, bl := range a.Layout() {
		require.Equal(t, i, bl.Slot)
		require.Equal(t, 8<<i, bl.BlockSize)
		require.Equal(t, prev, bl.Start, "bank %d must start where bank %d ends", i, i-1)
		require.Equal(t, bl.Start+bl.BlockSize*bl.Count, bl.End)
		prev = bl.End
	}
	require.Len(t, a.region, prev)
}

func TestLayoutOf_MatchesArena(t *testing.T) {
	cfg := &Config{Base: 16, Counts: []int{4, 2}, Region: RegionHeap}
	want, err := LayoutOf(cfg)
	require.NoError(t, err)

	a, err := New(newTestHost(), cfg)
	require.NoError(t, err)
	require.Equal(t, want, a.Layout())

	_, err = LayoutOf(&Config{Base: 16})
	require.ErrorIs(t, err, ErrNoTiers)
}
