package arena

import "unsafe"

// bank is one power-of-two size class.
type bank struct {
	size  int // block size
	count int // blocks in this bank
	live  int // blocks handed out
	free  int // offset+1 of the free-list head, 0 when empty
	end   int // displacement of the bank's end from the region start
}

// start returns the displacement of the bank's first block.
func (b *bank) start() int {
	return b.end - b.size*b.count
}

// BankLayout describes where one bank sits in the data region.
type BankLayout struct {
	Slot      int `json:"slot"`
	BlockSize int `json:"blockSize"`
	Count     int `json:"count"`
	Start     int `json:"start"` // inclusive offset from the region start
	End       int `json:"end"`   // exclusive offset from the region start
}

// regionStart returns the address of the first data byte.
func (a *Arena) regionStart() uintptr {
	if len(a.region) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&a.region[0]))
}

// inDataRegion reports whether p was drawn from the arena. It is the only
// test separating arena memory from delegate memory.
func (a *Arena) inDataRegion(p unsafe.Pointer) bool {
	if p == nil || len(a.banks) == 0 {
		return false
	}
	start := a.regionStart()
	addr := uintptr(p)
	return addr >= start && addr < start+uintptr(a.banks[len(a.banks)-1].end)
}

// slotForSize returns the smallest slot whose blocks hold size bytes, or
// len(a.banks) if no bank is big enough.
func (a *Arena) slotForSize(size int) int {
	if size > a.max {
		return len(a.banks)
	}
	slot := 0
	for limit := a.base; size > limit; limit *= 2 {
		slot++
	}
	return slot
}

// slotForPointer returns the bank p belongs to. p must satisfy inDataRegion.
func (a *Arena) slotForPointer(p unsafe.Pointer) int {
	disp := int(uintptr(p) - a.regionStart())
	slot := 0
	for slot < len(a.banks)-1 && disp >= a.banks[slot].end {
		slot++
	}
	return slot
}

// offsetOf converts an arena-owned pointer into a region offset.
func (a *Arena) offsetOf(p unsafe.Pointer) int {
	return int(uintptr(p) - a.regionStart())
}

// pointerAt converts a region offset into a pointer.
func (a *Arena) pointerAt(off int) unsafe.Pointer {
	return unsafe.Pointer(&a.region[off])
}

// Layout returns the bank layout in ascending slot order.
func (a *Arena) Layout() []BankLayout {
	out := make([]BankLayout, len(a.banks))
	for i := range a.banks {
		b := &a.banks[i]
		out[i] = BankLayout{
			Slot:      i,
			BlockSize: b.size,
			Count:     b.count,
			Start:     b.start(),
			End:       b.end,
		}
	}
	return out
}

// LayoutOf computes the bank layout of cfg without building an arena.
func LayoutOf(cfg *Config) ([]BankLayout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	out := make([]BankLayout, len(cfg.Counts))
	end, size := 0, cfg.Base
	for i, n := range cfg.Counts {
		out[i] = BankLayout{Slot: i, BlockSize: size, Count: n, Start: end, End: end + size*n}
		end += size * n
		size *= 2
	}
	return out, nil
}

// SlotForSize resolves size to a slot, returning the bank count when the
// request is too large for the arena.
func (a *Arena) SlotForSize(size int) int {
	return a.slotForSize(size)
}

// Owns reports whether p lies in the arena's data region.
func (a *Arena) Owns(p unsafe.Pointer) bool {
	return a.inDataRegion(p)
}

// SlotOf returns the bank that p was drawn from, or -1 if p is not arena memory.
func (a *Arena) SlotOf(p unsafe.Pointer) int {
	if !a.inDataRegion(p) {
		return -1
	}
	return a.slotForPointer(p)
}
