package arena

// BankStats is the occupancy of one bank.
type BankStats struct {
	Slot      int `json:"slot"`
	Live      int `json:"live"`
	BlockSize int `json:"blockSize"`
	Capacity  int `json:"capacity"`
}

// Free returns the number of blocks still available in the bank.
func (b BankStats) Free() int { return b.Capacity - b.Live }

// Diagnostics is a point-in-time snapshot of arena occupancy.
type Diagnostics struct {
	Banks []BankStats `json:"banks"`
	Count int         `json:"count"`
	Base  int         `json:"base"`
}

// Values flattens the snapshot the way the script surface receives it:
// live and block size per bank in slot order, then the bank count and base.
func (d Diagnostics) Values() []int {
	out := make([]int, 0, 2*len(d.Banks)+2)
	for _, b := range d.Banks {
		out = append(out, b.Live, b.BlockSize)
	}
	return append(out, d.Count, d.Base)
}

// Live returns the number of live blocks across all banks.
func (d Diagnostics) Live() int {
	n := 0
	for _, b := range d.Banks {
		n += b.Live
	}
	return n
}

// LiveBytes returns the bytes held by live blocks.
func (d Diagnostics) LiveBytes() int {
	n := 0
	for _, b := range d.Banks {
		n += b.Live * b.BlockSize
	}
	return n
}

// Capacity returns the size of the data region in bytes.
func (d Diagnostics) Capacity() int {
	n := 0
	for _, b := range d.Banks {
		n += b.Capacity * b.BlockSize
	}
	return n
}

// Utilization returns LiveBytes/Capacity, or 0 for an empty arena.
func (d Diagnostics) Utilization() float64 {
	c := d.Capacity()
	if c == 0 {
		return 0
	}
	return float64(d.LiveBytes()) / float64(c)
}

// Diagnostics returns the current occupancy. It does not modify the arena.
func (a *Arena) Diagnostics() Diagnostics {
	d := Diagnostics{
		Banks: make([]BankStats, len(a.banks)),
		Count: len(a.banks),
		Base:  a.base,
	}
	for i := range a.banks {
		b := &a.banks[i]
		d.Banks[i] = BankStats{
			Slot:      i,
			Live:      b.live,
			BlockSize: b.size,
			Capacity:  b.count,
		}
	}
	return d
}
