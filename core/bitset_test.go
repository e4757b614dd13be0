package core_test

import (
	"testing"

	"github.com/katalvlaran/primerlib/core"
)

func members(b core.Bitset) []int {
	var out []int
	for i := b.Next(0); i >= 0; i = b.Next(i + 1) {
		out = append(out, i)
	}
	return out
}

func TestBitset(t *testing.T) {
	a := core.NewBitset(130)
	for _, i := range []int{0, 5, 63, 64, 129} {
		a.Set(i)
	}
	if got := a.Count(); got != 5 {
		t.Fatalf("Count = %d; want 5", got)
	}
	if a.Next(64) != 64 || a.Next(65) != 129 {
		t.Errorf("Next mismatch around word boundary")
	}

	b := core.NewBitset(130)
	b.Set(5)
	b.Set(64)
	b.Set(100)

	and := members(a.And(b, core.NewBitset(130)))
	if len(and) != 2 || and[0] != 5 || and[1] != 64 {
		t.Errorf("And = %v; want [5 64]", and)
	}
	diff := members(a.AndNot(b, core.NewBitset(130)))
	if len(diff) != 3 || diff[0] != 0 || diff[1] != 63 || diff[2] != 129 {
		t.Errorf("AndNot = %v; want [0 63 129]", diff)
	}

	// In-place: dst may alias the receiver.
	c := core.NewBitset(130)
	copy(c, a)
	c.And(b, c)
	c.Clear(5)
	if got := c.Next(0); got != 64 {
		t.Errorf("Next(0) = %d; want 64", got)
	}
	if got := c.Next(65); got != -1 {
		t.Errorf("Next(65) = %d; want -1", got)
	}
	if got := c.Next(500); got != -1 {
		t.Errorf("Next(500) = %d; want -1", got)
	}
	if a.Count() != 5 {
		t.Errorf("copy shares storage")
	}
	if !core.NewBitset(10).Empty() || a.Empty() {
		t.Errorf("Empty mismatch")
	}
}
