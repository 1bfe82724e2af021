// Package pseudo recognizes multi-instruction idioms in a decoded
// instruction stream and fuses them into single logical
// pseudo-instructions. Every pseudo-instruction re-encodes to the exact
// basic instruction sequence it was recognized from.
package pseudo

import (
	"encoding/binary"

	"github.com/psxtools/exedis/inst"
	"github.com/psxtools/exedis/inst/basic"
)

// Instruction is a pseudo-instruction spanning one or more basic
// instructions. Size is always a multiple of 4.
type Instruction interface {
	inst.Instruction

	// Encode re-emits the basic instruction sequence this
	// pseudo-instruction was recognized from.
	Encode() []basic.Instruction
}

// Window is a restartable lookahead over the basic instructions at the
// head of a byte slice. Words decode lazily and are memoized, so the
// recognizers can probe the same prefix repeatedly without re-decoding.
type Window struct {
	bytes []byte
	insts []basic.Instruction
}

// NewWindow builds a lookahead window over b. The window decodes
// little-endian words starting at b[0].
func NewWindow(b []byte) *Window {
	return &Window{bytes: b}
}

// At returns the i-th basic instruction from the head of the window, or
// nil when the bytes run out or the word does not decode.
func (w *Window) At(i int) basic.Instruction {
	for len(w.insts) <= i {
		off := len(w.insts) * 4
		if off+4 > len(w.bytes) {
			return nil
		}
		w.insts = append(w.insts, basic.Decode(binary.LittleEndian.Uint32(w.bytes[off:])))
	}
	return w.insts[i]
}

// recognizers, in priority order. The windows overlap, so the more
// specific patterns must run first: the bios skeleton starts with an
// `addiu` that the load-immediate recognizer would also accept, and a
// nop is a shift self-assign on $zr.
var recognizers = []func(*Window) Instruction{
	decodeBios,
	decodeLoadImm,
	decodeNop,
	decodeAluAssign,
	decodeShiftAssign,
	decodeLoadArr,
	decodeStoreArr,
	decodeLoad,
	decodeStore,
	decodeMoveReg,
}

// Decode recognizes a pseudo-instruction at the head of the window.
// Returns nil when no recognizer matches; the caller then falls back to
// the single basic instruction.
func Decode(w *Window) Instruction {
	for _, recognize := range recognizers {
		if in := recognize(w); in != nil {
			return in
		}
	}
	return nil
}

// splitAddr splits a target address into the `lui` upper half and the
// sign-extended low offset of the following instruction. When the low
// half is negative the upper half is incremented, wrapping, so that
// hi<<16 plus the sign-extended lo reproduces the address exactly.
func splitAddr(target uint32) (hi uint16, lo int16) {
	lo = int16(target)
	hi = uint16(target >> 16)
	if lo < 0 {
		hi++
	}
	return hi, lo
}

// joinAddr is the inverse of splitAddr.
func joinAddr(hi uint16, lo int16) uint32 {
	return uint32(hi)<<16 + uint32(int32(lo))
}
