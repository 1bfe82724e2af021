// Package basic implements the codec between raw 32-bit words and typed
// basic instructions. Each instruction family has its own decode/encode
// pair; the families match mutually exclusive bit patterns, so the
// top-level Decode simply tries each in turn.
package basic

import "github.com/psxtools/exedis/inst"

// Instruction is a single 4-byte basic instruction. Every constructible
// value has exactly one encoding and Decode(Encode(i)) == i.
type Instruction interface {
	inst.Instruction

	// Encode returns the 32-bit word for this instruction.
	Encode() uint32
}

// decoders, one per instruction family. The bit patterns are disjoint
// by construction, so order only affects lookup cost.
var decoders = []func(uint32) (Instruction, bool){
	decodeAluImm,
	decodeAluReg,
	decodeCond,
	decodeJmpImm,
	decodeJmpReg,
	decodeLoad,
	decodeLui,
	decodeMult,
	decodeShiftImm,
	decodeShiftReg,
	decodeStore,
	decodeSys,
	decodeCo,
}

// Decode decodes a single word into a basic instruction. Returns nil
// when no family matches: the caller falls back to a data directive.
func Decode(raw uint32) Instruction {
	for _, decode := range decoders {
		if in, ok := decode(raw); ok {
			return in
		}
	}
	return nil
}

// reg extracts the 5-bit register field ending at bit shift.
func reg(raw uint32, shift uint) (inst.Register, bool) {
	return inst.NewRegister((raw >> shift) & 0x1F)
}

// imm16 extracts the low 16-bit immediate field.
func imm16(raw uint32) uint16 {
	return uint16(raw & 0xFFFF)
}

// opcode extracts the primary opcode, bits 31-26.
func opcode(raw uint32) uint32 {
	return raw >> 26
}
