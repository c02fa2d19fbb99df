package arena

import (
	"encoding/binary"
	"unsafe"
)

// Free blocks hold the offset+1 of the next free block of the same bank in
// their first linkSize bytes. Zero terminates the list.

func (a *Arena) getLink(off int) int {
	b := a.region[off : off+linkSize]
	if linkSize == 8 {
		return int(binary.NativeEndian.Uint64(b))
	}
	return int(binary.NativeEndian.Uint32(b))
}

func (a *Arena) putLink(off, next int) {
	b := a.region[off : off+linkSize]
	if linkSize == 8 {
		binary.NativeEndian.PutUint64(b, uint64(next))
		return
	}
	binary.NativeEndian.PutUint32(b, uint32(next))
}

// acquire pops the head of the bank's free list, or returns nil if the bank is full.
func (a *Arena) acquire(slot int) unsafe.Pointer {
	b := &a.banks[slot]
	if b.free == 0 {
		return nil
	}
	off := b.free - 1
	b.free = a.getLink(off)
	b.live++
	return a.pointerAt(off)
}

// acquireRange tries each bank in [start, end) in ascending order and
// returns the first block obtained.
func (a *Arena) acquireRange(start, end int) unsafe.Pointer {
	for slot := start; slot < end; slot++ {
		if p := a.acquire(slot); p != nil {
			return p
		}
	}
	return nil
}

// release pushes an arena-owned block back onto its bank's free list.
func (a *Arena) release(p unsafe.Pointer) {
	off := a.offsetOf(p)
	b := &a.banks[a.slotForPointer(p)]
	a.putLink(off, b.free)
	b.free = off + 1
	b.live--
}

// format links every block of every bank in address order.
func (a *Arena) format() {
	off := 0
	for i := range a.banks {
		b := &a.banks[i]
		b.live = 0
		b.free = off + 1
		for j := 0; j < b.count; j++ {
			next := off + b.size
			if j == b.count-1 {
				a.putLink(off, 0)
			} else {
				a.putLink(off, next+1)
			}
			off = next
		}
		b.end = off
	}
}

// freeCount walks a bank's free list.
func (a *Arena) freeCount(slot int) int {
	n := 0
	for link := a.banks[slot].free; link != 0; link = a.getLink(link - 1) {
		n++
	}
	return n
}
