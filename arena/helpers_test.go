package arena

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// testHost is a minimal Host that starts out with a heap allocator.
type testHost struct {
	fn      AllocFunc
	ud      any
	heap    *HeapAllocator
	globals map[string]any
}

func newTestHost() *testHost {
	heap := NewHeapAllocator(0)
	return &testHost{
		fn:      HeapAlloc,
		ud:      heap,
		heap:    heap,
		globals: make(map[string]any),
	}
}

func (h *testHost) Allocator() (AllocFunc, any) { return h.fn, h.ud }

func (h *testHost) SetAllocator(fn AllocFunc, ud any) { h.fn, h.ud = fn, ud }

func (h *testHost) SetGlobal(name string, v any) {
	if v == nil {
		delete(h.globals, name)
		return
	}
	h.globals[name] = v
}

// call issues one request through whatever allocator is installed.
func (h *testHost) call(ptr unsafe.Pointer, osize, nsize int) unsafe.Pointer {
	return h.fn(h.ud, ptr, osize, nsize)
}

// newTestArena builds a heap-backed arena so tests do not depend on mmap.
func newTestArena(t testing.TB, base int, counts ...int) (*Arena, *testHost) {
	t.Helper()
	h := newTestHost()
	a, err := New(h, &Config{Base: base, Counts: counts, Region: RegionHeap})
	require.NoError(t, err)
	return a, h
}

// fill writes a recognisable pattern into n bytes at p.
func fill(p unsafe.Pointer, n int, seed byte) {
	b := Bytes(p, n)
	for i := range b {
		b[i] = seed + byte(i)
	}
}

// requirePattern checks a pattern written by fill.
func requirePattern(t testing.TB, p unsafe.Pointer, n int, seed byte) {
	t.Helper()
	b := Bytes(p, n)
	for i := range b {
		require.Equal(t, seed+byte(i), b[i], "byte %d", i)
	}
}

// exhaust acquires every free block of slot.
func exhaust(a *Arena, slot int) []unsafe.Pointer {
	var out []unsafe.Pointer
	for p := a.acquire(slot); p != nil; p = a.acquire(slot) {
		out = append(out, p)
	}
	return out
}
