package basic

import (
	"github.com/psxtools/exedis/inst"
	"github.com/psxtools/exedis/pos"
)

// JmpImm is an immediate jump, `j` or `jal`. Imm is the 26-bit word
// index within the current 256MiB region.
type JmpImm struct {
	Imm  uint32
	Link bool
}

func decodeJmpImm(raw uint32) (Instruction, bool) {
	switch opcode(raw) {
	case 0x2:
		return JmpImm{Imm: raw & 0x03FFFFFF}, true
	case 0x3:
		return JmpImm{Imm: raw & 0x03FFFFFF, Link: true}, true
	default:
		return nil, false
	}
}

// Encode implements Instruction.
func (i JmpImm) Encode() uint32 {
	p := uint32(0x2)
	if i.Link {
		p = 0x3
	}
	return p<<26 | i.Imm&0x03FFFFFF
}

// JmpImmTarget computes an immediate jump target: the immediate replaces
// the low 28 bits of the instruction's position.
func JmpImmTarget(imm uint32, p pos.Pos) pos.Pos {
	return pos.Pos(uint32(p)&0xF0000000 + imm*4)
}

// TargetAt returns the jump target for an instruction at p.
func (i JmpImm) TargetAt(p pos.Pos) pos.Pos {
	return JmpImmTarget(i.Imm, p)
}

// Size implements inst.Instruction.
func (i JmpImm) Size() int { return 4 }

// Mnemonic implements inst.Instruction.
func (i JmpImm) Mnemonic() string {
	if i.Link {
		return "jal"
	}
	return "j"
}

// Args implements inst.Instruction.
func (i JmpImm) Args() []inst.Arg {
	return []inst.Arg{inst.TargetArg(i.TargetAt(0))}
}

// JmpReg is a register jump, `jr` or `jalr`. LinkReg is only meaningful
// when Link is set.
type JmpReg struct {
	Reg     inst.Register
	Link    bool
	LinkReg inst.Register
}

func decodeJmpReg(raw uint32) (Instruction, bool) {
	if opcode(raw) != 0 {
		return nil, false
	}
	target, ok := reg(raw, 21)
	if !ok {
		return nil, false
	}
	d, ok := reg(raw, 11)
	if !ok {
		return nil, false
	}
	switch raw & 0x3F {
	case 0x8:
		return JmpReg{Reg: target}, true
	case 0x9:
		return JmpReg{Reg: target, Link: true, LinkReg: d}, true
	default:
		return nil, false
	}
}

// Encode implements Instruction.
func (i JmpReg) Encode() uint32 {
	if i.Link {
		return i.Reg.Idx()<<21 | i.LinkReg.Idx()<<11 | 0x9
	}
	return i.Reg.Idx()<<21 | 0x8
}

// IsReturn reports whether this is the function-return idiom `jr $ra`.
func (i JmpReg) IsReturn() bool {
	return !i.Link && i.Reg == inst.Ra
}

// Size implements inst.Instruction.
func (i JmpReg) Size() int { return 4 }

// Mnemonic implements inst.Instruction.
func (i JmpReg) Mnemonic() string {
	if i.Link {
		return "jalr"
	}
	return "jr"
}

// Args implements inst.Instruction. The implicit `$ra` link register of
// `jalr` is omitted from display.
func (i JmpReg) Args() []inst.Arg {
	if i.Link && i.LinkReg != inst.Ra {
		return []inst.Arg{inst.RegArg(i.Reg), inst.RegArg(i.LinkReg)}
	}
	return []inst.Arg{inst.RegArg(i.Reg)}
}
