package arena

import (
	"fmt"
	"unsafe"
)

// regionAlign is the alignment of the region start. Sources that do not
// guarantee it get one extra unit of padding to align into.
const regionAlign = int(unsafe.Sizeof(float64(0)))

// obtainRegion returns an n-byte data region and the function that gives it back.
func obtainRegion(kind RegionKind, d Delegate, n int) ([]byte, func() error, error) {
	switch kind {
	case RegionMapped:
		return mapRegion(n)
	case RegionHeap:
		return heapRegion(n)
	case RegionDelegate:
		return delegateRegion(d, n)
	}
	return nil, nil, fmt.Errorf("%w: unknown region kind %d", ErrRegion, kind)
}

// heapRegion allocates the region on the Go heap. The collector never scans
// a []byte, so in-place links are invisible to it.
func heapRegion(n int) ([]byte, func() error, error) {
	buf := make([]byte, n+regionAlign)
	off := alignPad(uintptr(unsafe.Pointer(&buf[0])))
	return buf[off : off+n : off+n], func() error { return nil }, nil
}

// delegateRegion takes the region as a single block from the delegate. The
// block is never handed out by the delegate again while the arena holds it.
func delegateRegion(d Delegate, n int) ([]byte, func() error, error) {
	if d.Func == nil {
		return nil, nil, fmt.Errorf("%w: no delegate allocator", ErrRegion)
	}
	total := n + regionAlign
	p := d.Call(nil, 0, total)
	if p == nil {
		return nil, nil, fmt.Errorf("%w: delegate refused %d bytes", ErrRegion, total)
	}
	off := alignPad(uintptr(p))
	buf := unsafe.Slice((*byte)(unsafe.Add(p, off)), n)
	release := func() error {
		d.Call(p, total, 0)
		return nil
	}
	return buf, release, nil
}

// alignPad returns the bytes needed to move addr up to regionAlign.
func alignPad(addr uintptr) int {
	mask := uintptr(regionAlign - 1)
	return int(((addr + mask) &^ mask) - addr)
}
