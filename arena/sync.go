package arena

import (
	"sync"
	"unsafe"
)

// Synchronized wraps fn so that at most one call runs at a time. The arena
// itself does no locking; hosts that allocate from several goroutines
// install the wrapped hook instead:
//
//	fn, ud := state.Allocator()
//	state.SetAllocator(arena.Synchronized(fn), ud)
func Synchronized(fn AllocFunc) AllocFunc {
	var mu sync.Mutex
	return func(ud any, ptr unsafe.Pointer, osize, nsize int) unsafe.Pointer {
		mu.Lock()
		defer mu.Unlock()
		return fn(ud, ptr, osize, nsize)
	}
}
