package arena

import "unsafe"

// HeapAllocator is a realloc-contract allocator over the Go heap. Hosts use
// it as their default allocator, which makes it the arena's usual delegate.
//
// Blocks are plain byte slices kept alive by the pointers the host holds.
// Not thread-safe.
type HeapAllocator struct {
	// Limit caps live bytes; requests that would exceed it fail. Zero means
	// no limit.
	Limit int

	live   int // live bytes
	blocks int // live blocks
	calls  int
	fails  int
}

// NewHeapAllocator returns a heap allocator with the given byte limit.
func NewHeapAllocator(limit int) *HeapAllocator {
	return &HeapAllocator{Limit: limit}
}

// HeapAlloc is the AllocFunc for a *HeapAllocator context.
func HeapAlloc(ud any, ptr unsafe.Pointer, osize, nsize int) unsafe.Pointer {
	return ud.(*HeapAllocator).Realloc(ptr, osize, nsize)
}

// Realloc implements the AllocFunc contract.
func (h *HeapAllocator) Realloc(ptr unsafe.Pointer, osize, nsize int) unsafe.Pointer {
	h.calls++
	if ptr == nil {
		osize = 0
	}

	if nsize == 0 {
		if ptr != nil {
			h.live -= osize
			h.blocks--
		}
		return nil
	}

	if h.Limit > 0 && h.live-osize+nsize > h.Limit {
		h.fails++
		return nil
	}

	buf := make([]byte, nsize)
	if ptr != nil {
		copy(buf, Bytes(ptr, min(osize, nsize)))
	} else {
		h.blocks++
	}
	h.live += nsize - osize
	return unsafe.Pointer(&buf[0])
}

// Live returns the bytes currently allocated.
func (h *HeapAllocator) Live() int { return h.live }

// Blocks returns the number of live blocks.
func (h *HeapAllocator) Blocks() int { return h.blocks }

// Calls returns the number of requests served or refused.
func (h *HeapAllocator) Calls() int { return h.calls }

// Failures returns the number of requests refused by Limit.
func (h *HeapAllocator) Failures() int { return h.fails }
