// Package host models an embedded script runtime as far as its allocator is
// concerned: a state with a swappable allocation hook, a table of globals
// and a handful of object kinds whose memory all flows through the hook.
package host

import (
	"errors"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/joshuapare/scriptarena/arena"
)

var (
	// ErrOutOfMemory indicates the allocation hook returned nil.
	ErrOutOfMemory = errors.New("host: not enough memory")

	// ErrClosed indicates use of a closed state.
	ErrClosed = errors.New("host: state closed")

	// ErrNotTable indicates a table operation on another kind of object.
	ErrNotTable = errors.New("host: object is not a table")

	// ErrFreed indicates use of an object after Free.
	ErrFreed = errors.New("host: object already freed")
)

// Kind is the type of a runtime object.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindClosure
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindClosure:
		return "closure"
	case KindTable:
		return "table"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Object sizes, in bytes.
const (
	stringHeader  = 16 // hash, length, flags
	closureHeader = 16 // prototype reference, upvalue count
	upvalueSize   = 8
	tableSlot     = 16 // key/value pair
)

// Object is a runtime value whose storage came from the allocation hook.
type Object struct {
	kind  Kind
	ptr   unsafe.Pointer
	size  int
	slots int // table capacity
	freed bool
}

// Kind returns the object's type.
func (o *Object) Kind() Kind { return o.kind }

// Size returns the bytes the object currently occupies.
func (o *Object) Size() int { return o.size }

// Pointer returns the object's storage.
func (o *Object) Pointer() unsafe.Pointer { return o.ptr }

// Slots returns a table's capacity in key/value pairs.
func (o *Object) Slots() int { return o.slots }

// State is one runtime instance.
//
// Not thread-safe, like the runtimes it stands in for.
type State struct {
	fn arena.AllocFunc
	ud any

	heap    *arena.HeapAllocator
	globals map[string]any
	objects map[*Object]struct{}
	live    int // bytes held by objects
	closed  bool
	log     *slog.Logger
}

// Options configures a new state.
type Options struct {
	// HeapLimit caps the default heap allocator in bytes (0 = unlimited).
	HeapLimit int

	// Logger receives out-of-memory records. Nil discards.
	Logger *slog.Logger
}

// NewState returns a state whose allocator is a fresh arena.HeapAllocator.
func NewState(opts *Options) *State {
	if opts == nil {
		opts = &Options{}
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	heap := arena.NewHeapAllocator(opts.HeapLimit)
	return &State{
		fn:      arena.HeapAlloc,
		ud:      heap,
		heap:    heap,
		globals: make(map[string]any),
		objects: make(map[*Object]struct{}),
		log:     log,
	}
}

// Allocator returns the current allocation hook and its context.
func (s *State) Allocator() (arena.AllocFunc, any) { return s.fn, s.ud }

// SetAllocator replaces the allocation hook.
func (s *State) SetAllocator(fn arena.AllocFunc, ud any) { s.fn, s.ud = fn, ud }

// SetGlobal publishes v under name; nil removes it.
func (s *State) SetGlobal(name string, v any) {
	if v == nil {
		delete(s.globals, name)
		return
	}
	s.globals[name] = v
}

// Global looks up a global.
func (s *State) Global(name string) (any, bool) {
	v, ok := s.globals[name]
	return v, ok
}

// Heap returns the default allocator the state was created with.
func (s *State) Heap() *arena.HeapAllocator { return s.heap }

// Live returns the number of live objects.
func (s *State) Live() int { return len(s.objects) }

// LiveBytes returns the bytes held by live objects.
func (s *State) LiveBytes() int { return s.live }

// Objects returns the live objects in no particular order.
func (s *State) Objects() []*Object {
	out := make([]*Object, 0, len(s.objects))
	for o := range s.objects {
		out = append(out, o)
	}
	return out
}

func (s *State) alloc(ptr unsafe.Pointer, osize, nsize int) unsafe.Pointer {
	return s.fn(s.ud, ptr, osize, nsize)
}

func (s *State) newObject(kind Kind, size int) (*Object, error) {
	if s.closed {
		return nil, ErrClosed
	}
	p := s.alloc(nil, 0, size)
	if p == nil {
		s.log.Warn("allocation failed", "kind", kind.String(), "size", size)
		return nil, fmt.Errorf("%w: %s of %d bytes", ErrOutOfMemory, kind, size)
	}
	o := &Object{kind: kind, ptr: p, size: size}
	s.objects[o] = struct{}{}
	s.live += size
	return o, nil
}

// NewString stores str, NUL-terminated, behind a string header.
func (s *State) NewString(str string) (*Object, error) {
	o, err := s.newObject(KindString, stringHeader+len(str)+1)
	if err != nil {
		return nil, err
	}
	b := s.Bytes(o)
	clear(b[:stringHeader])
	copy(b[stringHeader:], str)
	b[len(b)-1] = 0
	return o, nil
}

// StringValue returns the contents of a string object, or "" for other
// kinds and freed strings.
func (s *State) StringValue(o *Object) string {
	if o.kind != KindString || o.freed {
		return ""
	}
	b := s.Bytes(o)
	if len(b) < stringHeader+1 {
		return ""
	}
	return string(b[stringHeader : len(b)-1])
}

// NewClosure allocates a closure with n upvalues.
func (s *State) NewClosure(upvalues int) (*Object, error) {
	o, err := s.newObject(KindClosure, closureHeader+upvalues*upvalueSize)
	if err != nil {
		return nil, err
	}
	clear(s.Bytes(o))
	return o, nil
}

// NewTable allocates a table with room for slots key/value pairs. An empty
// table has no storage.
func (s *State) NewTable(slots int) (*Object, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if slots == 0 {
		o := &Object{kind: KindTable}
		s.objects[o] = struct{}{}
		return o, nil
	}
	o, err := s.newObject(KindTable, slots*tableSlot)
	if err != nil {
		return nil, err
	}
	o.slots = slots
	clear(s.Bytes(o))
	return o, nil
}

// ResizeTable changes a table's capacity, keeping the leading pairs. On
// failure the table is unchanged.
func (s *State) ResizeTable(o *Object, slots int) error {
	if s.closed {
		return ErrClosed
	}
	if o.freed {
		return ErrFreed
	}
	if o.kind != KindTable {
		return ErrNotTable
	}
	nsize := slots * tableSlot
	p := s.alloc(o.ptr, o.size, nsize)
	if p == nil && nsize != 0 {
		s.log.Warn("table resize failed", "from", o.slots, "to", slots)
		return fmt.Errorf("%w: table of %d slots", ErrOutOfMemory, slots)
	}
	if nsize > o.size {
		clear(arena.Bytes(p, nsize)[o.size:])
	}
	s.live += nsize - o.size
	o.ptr, o.size, o.slots = p, nsize, slots
	return nil
}

// Bytes returns the object's storage.
func (s *State) Bytes(o *Object) []byte {
	return arena.Bytes(o.ptr, o.size)
}

// Free releases an object. Freeing twice is a no-op.
func (s *State) Free(o *Object) {
	if o.freed {
		return
	}
	if o.ptr != nil {
		s.alloc(o.ptr, o.size, 0)
	}
	s.live -= o.size
	o.ptr, o.size, o.slots, o.freed = nil, 0, 0, true
	delete(s.objects, o)
}

// Close frees every live object. The allocator stays installed so that an
// arena can be uninstalled afterwards.
func (s *State) Close() {
	if s.closed {
		return
	}
	for o := range s.objects {
		s.Free(o)
	}
	s.closed = true
}
