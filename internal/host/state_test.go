package host

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/scriptarena/arena"
)

func TestState_DefaultHeapAllocator(t *testing.T) {
	s := NewState(nil)

	o, err := s.NewString("hello")
	require.NoError(t, err)
	require.Equal(t, "hello", s.StringValue(o))
	require.Equal(t, KindString, o.Kind())
	require.Equal(t, 1, s.Heap().Blocks())
	require.Equal(t, o.Size(), s.LiveBytes())

	s.Free(o)
	s.Free(o)
	require.Zero(t, s.Heap().Blocks())
	require.Zero(t, s.Live())
}

func TestState_Globals(t *testing.T) {
	s := NewState(nil)

	s.SetGlobal("x", 1)
	v, ok := s.Global("x")
	require.True(t, ok)
	require.Equal(t, 1, v)

	s.SetGlobal("x", nil)
	_, ok = s.Global("x")
	require.False(t, ok)
}

func TestState_TableResize(t *testing.T) {
	s := NewState(nil)

	tbl, err := s.NewTable(0)
	require.NoError(t, err)
	require.Nil(t, tbl.Pointer())

	require.NoError(t, s.ResizeTable(tbl, 4))
	require.Equal(t, 4, tbl.Slots())
	b := s.Bytes(tbl)
	for i := range b {
		b[i] = byte(i)
	}

	require.NoError(t, s.ResizeTable(tbl, 16))
	b = s.Bytes(tbl)
	for i := range 4 * tableSlot {
		require.Equal(t, byte(i), b[i])
	}
	for i := 4 * tableSlot; i < len(b); i++ {
		require.Zero(t, b[i], "new slots are cleared")
	}

	require.NoError(t, s.ResizeTable(tbl, 0))
	require.Zero(t, tbl.Size())
	require.Zero(t, s.Heap().Blocks())

	str, err := s.NewString("x")
	require.NoError(t, err)
	require.ErrorIs(t, s.ResizeTable(str, 2), ErrNotTable)
}

func TestState_OutOfMemory(t *testing.T) {
	s := NewState(&Options{HeapLimit: 64})

	_, err := s.NewString(string(make([]byte, 100)))
	require.ErrorIs(t, err, ErrOutOfMemory)

	tbl, err := s.NewTable(2)
	require.NoError(t, err)
	require.ErrorIs(t, s.ResizeTable(tbl, 8), ErrOutOfMemory)
	require.Equal(t, 2, tbl.Slots(), "failed resize leaves the table alone")
}

func TestState_ImplementsHostWithArena(t *testing.T) {
	s := NewState(nil)
	a, err := arena.New(s, &arena.Config{Base: 16, Counts: []int{8, 4, 2}, Region: arena.RegionHeap, Name: "stats"})
	require.NoError(t, err)

	str, err := s.NewString("short")
	require.NoError(t, err)
	require.True(t, a.Owns(str.Pointer()))

	cl, err := s.NewClosure(1)
	require.NoError(t, err)
	require.True(t, a.Owns(cl.Pointer()))

	big, err := s.NewTable(32)
	require.NoError(t, err)
	require.False(t, a.Owns(big.Pointer()), "512 bytes goes to the heap")

	v, ok := s.Global("stats")
	require.True(t, ok)
	diag := v.(arena.DiagnosticsFunc)()
	require.Equal(t, 2, diag.Live())

	s.Close()
	require.Zero(t, a.Diagnostics().Live())
	require.Zero(t, s.Heap().Blocks())
	require.NoError(t, a.Close())

	_, err = s.NewString("late")
	require.ErrorIs(t, err, ErrClosed)
}

func TestState_FreedObjects(t *testing.T) {
	s := NewState(nil)
	a, err := arena.New(s, &arena.Config{Base: 16, Counts: []int{4, 2}, Region: arena.RegionHeap})
	require.NoError(t, err)

	tbl, err := s.NewTable(1)
	require.NoError(t, err)
	s.Free(tbl)
	require.ErrorIs(t, s.ResizeTable(tbl, 1), ErrFreed)
	require.Zero(t, s.LiveBytes())
	require.Zero(t, a.Diagnostics().Live(), "no untracked block was allocated")

	str, err := s.NewString("gone")
	require.NoError(t, err)
	s.Free(str)
	require.Empty(t, s.StringValue(str))

	s.Close()
	require.NoError(t, a.Close())
}
