// Package arena provides a slab-style allocator that sits behind an embedded
// script runtime's allocation hook.
//
// # Overview
//
// Script runtimes issue a very high volume of small, short-lived allocations
// (strings, closures, small tables). This package pre-carves one contiguous
// region into banks of fixed-size blocks and serves eligible requests from
// per-bank free lists in O(1). Anything the arena cannot serve is passed to
// the allocator the host had installed before the arena (the delegate).
//
// # Allocation Hook
//
// The host talks to the arena through a single realloc-style callback:
//
//	type AllocFunc func(ud any, ptr unsafe.Pointer, osize, nsize int) unsafe.Pointer
//
//   - osize == 0, nsize != 0: new allocation
//   - nsize == 0: free
//   - otherwise: resize, returning the (possibly moved) block or nil on failure
//
// The arena installs Hook with itself as the context value, so every request
// carries the arena handle explicitly.
//
// # Usage Example
//
//	a, err := arena.New(state, &arena.Config{
//	    Base:   16,
//	    Counts: []int{512, 256, 128, 64},
//	    Name:   "arena_stats",
//	})
//	if err != nil {
//	    return err // state keeps its previous allocator
//	}
//	defer a.Close()
//
//	d := a.Diagnostics()
//	for _, b := range d.Banks {
//	    fmt.Printf("%5d B: %d/%d live\n", b.BlockSize, b.Live, b.Capacity)
//	}
//
// # Banks
//
// Bank i holds Counts[i] blocks of Base<<i bytes. Banks are laid out back to
// back in ascending order, so for Base=16 and Counts=[4,2]:
//
//	Bank 0:  16 B x 4  [ 0,  64)
//	Bank 1:  32 B x 2  [64, 128)
//
// A request is resolved to the smallest bank whose block size fits it. If
// that bank is empty, larger banks are tried in ascending order before the
// request is delegated. Requests larger than the biggest block always go to
// the delegate.
//
// # Free Lists
//
// A free block stores the link to the next free block of its bank in its
// first bytes, so Base must be at least the size of a pointer. Live blocks
// carry no header. Reuse is LIFO and freed memory is never coalesced.
//
// # Resize Policy
//
// Resizing within the same bank returns the block unchanged. Growing moves to
// a larger bank or to the delegate; if both fail the hook returns nil and the
// original block stays valid. Shrinking only ever moves to a smaller bank; if
// none has room the original block is kept.
//
// # Thread Safety
//
// An Arena is not thread-safe. Hosts that allocate from several goroutines
// must wrap the hook with Synchronized (or hold their own lock around every
// call).
package arena
