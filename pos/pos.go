// Package pos defines Pos, a position within the executable's virtual
// address space, along with the arithmetic the MIPS instruction set
// expects from it.
package pos

import "fmt"

// Pos is a 32-bit memory address.
type Pos uint32

// Add returns the position advanced by an unsigned amount, wrapping
// modulo 2^32.
func (p Pos) Add(n uint32) Pos {
	return p + Pos(n)
}

// AddSigned returns the position advanced by a signed amount. Immediate
// operands are 16 bits wide and must be sign-extended before the add, so
// callers pass int32(someInt16).
func (p Pos) AddSigned(n int32) Pos {
	return Pos(uint32(int32(p) + n))
}

// Sub returns the offset between two positions. Both operands are
// sign-extended to 64 bits first so that offsets outside the int32 range
// are still representable.
func (p Pos) Sub(q Pos) int64 {
	return int64(int32(p)) - int64(int32(q))
}

// OffsetFrom returns the non-negative byte offset of p from start,
// suitable for indexing a byte slice. Returns false if p is before start.
func (p Pos) OffsetFrom(start Pos) (int, bool) {
	off := p.Sub(start)
	if off < 0 {
		return 0, false
	}
	return int(off), true
}

// AlignedTo reports whether the address is a multiple of align.
func (p Pos) AlignedTo(align int) bool {
	if align <= 0 || align > 1<<31 {
		return false
	}
	return uint32(p)%uint32(align) == 0
}

// WordAligned reports whether the address is aligned to a 4-byte word.
func (p Pos) WordAligned() bool {
	return p.AlignedTo(4)
}

// HalfWordAligned reports whether the address is aligned to a half-word.
func (p Pos) HalfWordAligned() bool {
	return p.AlignedTo(2)
}

func (p Pos) String() string {
	return fmt.Sprintf("0x%x", uint32(p))
}
