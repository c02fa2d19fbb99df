package arena

import (
	"log/slog"
	"os"
	"unsafe"
)

// Runtime debug flag for hot-path logging - controlled by ARENA_LOG_ALLOC env var.
var logAlloc = os.Getenv("ARENA_LOG_ALLOC") != ""

// Arena is a bank allocator installed as a host's allocation hook.
type Arena struct {
	host     Host
	delegate Delegate

	base  int    // block size of bank 0
	max   int    // block size of the last bank
	banks []bank // ascending block size

	region     []byte // data region, exactly banks[len-1].end bytes
	freeRegion func() error

	name   string
	log    *slog.Logger
	stats  Stats
	closed bool
}

// Stats counts hook requests by the path they took.
type Stats struct {
	Calls        int // Resize calls
	New          int // new allocations requested
	NewDelegated int // new allocations the arena could not serve
	Foreign      int // requests on memory the arena does not own
	Frees        int // arena blocks released by the host
	NoOps        int // resizes that stayed in the same bank
	Grows        int // resizes to a larger bank or to the delegate
	GrowFailures int // grows that returned nil
	Shrinks      int // resizes to a smaller bank
	ShrinksKept  int // shrinks that kept the block for lack of room
}

// Hook is the AllocFunc installed on the host. ud must be the *Arena.
func Hook(ud any, ptr unsafe.Pointer, osize, nsize int) unsafe.Pointer {
	return ud.(*Arena).Resize(ptr, osize, nsize)
}

// Resize serves one realloc-style request.
func (a *Arena) Resize(ptr unsafe.Pointer, osize, nsize int) unsafe.Pointer {
	a.stats.Calls++
	nslot := a.slotForSize(nsize)

	// New block: try the arena, then the delegate.
	if osize == 0 && nsize != 0 {
		a.stats.New++
		if p := a.acquireRange(nslot, len(a.banks)); p != nil {
			return p
		}
		a.stats.NewDelegated++
		if logAlloc {
			a.log.Debug("arena: delegating new block", "size", nsize, "slot", nslot)
		}
		return a.delegate.Call(nil, 0, nsize)
	}

	// Everything below involves old memory. Memory the arena does not own
	// (nil included) goes to the delegate untouched.
	if !a.inDataRegion(ptr) {
		a.stats.Foreign++
		return a.delegate.Call(ptr, osize, nsize)
	}

	if nsize == 0 {
		a.stats.Frees++
		a.release(ptr)
		return nil
	}

	// Same bank: the block already fits.
	oslot := a.slotForPointer(ptr)
	if nslot == oslot {
		a.stats.NoOps++
		return ptr
	}

	if osize < nsize {
		a.stats.Grows++
		p := a.acquireRange(nslot, len(a.banks))
		if p == nil {
			p = a.delegate.Call(nil, 0, nsize)
		}
		if p == nil {
			a.stats.GrowFailures++
			if logAlloc {
				a.log.Debug("arena: grow failed", "from", osize, "to", nsize)
			}
			return nil
		}
		return a.move(p, ptr, osize)
	}

	// Shrink: only strictly smaller banks are considered; never delegate.
	a.stats.Shrinks++
	if p := a.acquireRange(nslot, oslot); p != nil {
		return a.move(p, ptr, nsize)
	}
	a.stats.ShrinksKept++
	return ptr
}

// move copies n bytes from an arena block into dst and releases the block.
func (a *Arena) move(dst, src unsafe.Pointer, n int) unsafe.Pointer {
	copy(Bytes(dst, n), Bytes(src, n))
	a.release(src)
	return dst
}

// Stats returns a copy of the request counters.
func (a *Arena) Stats() Stats {
	return a.stats
}

// Delegate returns the allocator requests fall back to.
func (a *Arena) Delegate() Delegate {
	return a.delegate
}

// Base returns the block size of bank 0.
func (a *Arena) Base() int { return a.base }

// MaxSize returns the largest request the arena can serve itself.
func (a *Arena) MaxSize() int { return a.max }

// NumBanks returns the number of banks.
func (a *Arena) NumBanks() int { return len(a.banks) }
