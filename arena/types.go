package arena

import "unsafe"

// AllocFunc is the realloc-style allocation hook shared by hosts, the arena
// and its delegate. ud is the opaque context registered with the function.
//
//   - osize == 0 && nsize != 0: allocate nsize bytes
//   - nsize == 0: free ptr (returns nil)
//   - otherwise: resize ptr from osize to nsize bytes
//
// A nil result for a non-zero nsize means out of memory; the old block, if
// any, is still valid.
type AllocFunc func(ud any, ptr unsafe.Pointer, osize, nsize int) unsafe.Pointer

// Delegate is an allocation hook together with its context value.
type Delegate struct {
	Func AllocFunc
	UD   any
}

// Call forwards one request to the delegate. A missing delegate fails every
// request.
func (d Delegate) Call(ptr unsafe.Pointer, osize, nsize int) unsafe.Pointer {
	if d.Func == nil {
		return nil
	}
	return d.Func(d.UD, ptr, osize, nsize)
}

// Host is the embedding runtime an arena is installed into.
//
// Implementations:
//   - host.State: the in-repo script runtime model
//
// Allocator and SetAllocator mirror the get/set allocator pair of embeddable
// script VMs. SetGlobal publishes a value to the script surface; a nil value
// removes the name.
type Host interface {
	Allocator() (AllocFunc, any)
	SetAllocator(fn AllocFunc, ud any)
	SetGlobal(name string, v any)
}

// DiagnosticsFunc is the value registered with the host when Config.Name is set.
type DiagnosticsFunc func() Diagnostics

// linkSize is the room a free block needs for its in-place link.
const linkSize = int(unsafe.Sizeof(uintptr(0)))

// Bytes returns an n-byte view of the memory at p. p must be a block returned
// by an AllocFunc with a size of at least n.
func Bytes(p unsafe.Pointer, n int) []byte {
	if p == nil || n <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(p), n)
}
