package core

import "math/bits"

// Bitset is a fixed-width set of small non-negative integers.
// Binary operations require operands of equal width.
type Bitset []uint64

// NewBitset returns an empty Bitset able to hold 0..n-1.
func NewBitset(n int) Bitset {
	return make(Bitset, (n+63)>>6)
}

// Set adds i.
func (b Bitset) Set(i int) { b[i>>6] |= 1 << uint(i&63) }

// Clear removes i.
func (b Bitset) Clear(i int) { b[i>>6] &^= 1 << uint(i&63) }

// Count returns the number of members.
func (b Bitset) Count() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}

// Empty reports whether the set has no members.
func (b Bitset) Empty() bool {
	for _, w := range b {
		if w != 0 {
			return false
		}
	}
	return true
}

// And stores b ∩ o into dst and returns dst.
func (b Bitset) And(o, dst Bitset) Bitset {
	for k := range b {
		dst[k] = b[k] & o[k]
	}
	return dst
}

// AndNot stores b \ o into dst and returns dst.
func (b Bitset) AndNot(o, dst Bitset) Bitset {
	for k := range b {
		dst[k] = b[k] &^ o[k]
	}
	return dst
}

// Next returns the smallest member ≥ i, or -1.
func (b Bitset) Next(i int) int {
	if i < 0 {
		i = 0
	}
	k := i >> 6
	if k >= len(b) {
		return -1
	}
	w := b[k] >> uint(i&63)
	if w != 0 {
		return i + bits.TrailingZeros64(w)
	}
	for k++; k < len(b); k++ {
		if b[k] != 0 {
			return k<<6 + bits.TrailingZeros64(b[k])
		}
	}
	return -1
}
