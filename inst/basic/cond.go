package basic

import (
	"strconv"

	"github.com/psxtools/exedis/inst"
	"github.com/psxtools/exedis/pos"
)

// CondKind selects the branch condition.
type CondKind int

const (
	CondEqual CondKind = iota
	CondNotEqual
	CondLessOrEqualZero
	CondGreaterThanZero
	CondLessThanZero
	CondGreaterOrEqualZero
	CondLessThanZeroLink
	CondGreaterOrEqualZeroLink
)

// Cond is a conditional branch. Cmp is only meaningful for Equal and
// NotEqual; the remaining kinds compare Arg against zero.
type Cond struct {
	Arg    inst.Register
	Cmp    inst.Register
	Offset int16
	Kind   CondKind
}

func decodeCond(raw uint32) (Instruction, bool) {
	arg, ok := reg(raw, 21)
	if !ok {
		return nil, false
	}
	t := (raw >> 16) & 0x1F
	c := Cond{Arg: arg, Offset: int16(imm16(raw))}

	switch opcode(raw) {
	case 0x1: // regimm family, condition in the rt field
		switch t {
		case 0b00000:
			c.Kind = CondLessThanZero
		case 0b00001:
			c.Kind = CondGreaterOrEqualZero
		case 0b10000:
			c.Kind = CondLessThanZeroLink
		case 0b10001:
			c.Kind = CondGreaterOrEqualZeroLink
		default:
			return nil, false
		}
	case 0x4:
		c.Kind = CondEqual
		c.Cmp = inst.Register(t)
	case 0x5:
		c.Kind = CondNotEqual
		c.Cmp = inst.Register(t)
	case 0x6:
		if t != 0 {
			return nil, false
		}
		c.Kind = CondLessOrEqualZero
	case 0x7:
		if t != 0 {
			return nil, false
		}
		c.Kind = CondGreaterThanZero
	default:
		return nil, false
	}
	return c, true
}

// Encode implements Instruction.
func (i Cond) Encode() uint32 {
	var p, t uint32
	switch i.Kind {
	case CondEqual:
		p, t = 0x4, i.Cmp.Idx()
	case CondNotEqual:
		p, t = 0x5, i.Cmp.Idx()
	case CondLessOrEqualZero:
		p, t = 0x6, 0
	case CondGreaterThanZero:
		p, t = 0x7, 0
	case CondLessThanZero:
		p, t = 0x1, 0b00000
	case CondGreaterOrEqualZero:
		p, t = 0x1, 0b00001
	case CondLessThanZeroLink:
		p, t = 0x1, 0b10000
	case CondGreaterOrEqualZeroLink:
		p, t = 0x1, 0b10001
	}
	return p<<26 | i.Arg.Idx()<<21 | t<<16 | uint32(uint16(i.Offset))
}

// CondTarget computes a branch target: the offset is in words, relative
// to the delay slot.
func CondTarget(offset int16, p pos.Pos) pos.Pos {
	return p.AddSigned(4 * (int32(offset) + 1))
}

// TargetAt returns the branch target for an instruction at p.
func (i Cond) TargetAt(p pos.Pos) pos.Pos {
	return CondTarget(i.Offset, p)
}

// Size implements inst.Instruction.
func (i Cond) Size() int { return 4 }

// Mnemonic implements inst.Instruction. Comparisons against $zr use the
// simplified branch forms: `beq $zr, $zr` is `b`, `beq $zr, $r` is
// `beqz` and `bne $zr, $r` is `bnez`.
func (i Cond) Mnemonic() string {
	switch i.Kind {
	case CondEqual:
		if i.Cmp == inst.Zr {
			if i.Arg == inst.Zr {
				return "b"
			}
			return "beqz"
		}
		return "beq"
	case CondNotEqual:
		if i.Cmp == inst.Zr {
			return "bnez"
		}
		return "bne"
	case CondLessOrEqualZero:
		return "blez"
	case CondGreaterThanZero:
		return "bgtz"
	case CondLessThanZero:
		return "bltz"
	case CondGreaterOrEqualZero:
		return "bgez"
	case CondLessThanZeroLink:
		return "bltzal"
	case CondGreaterOrEqualZeroLink:
		return "bgezal"
	default:
		return "b?" + strconv.Itoa(int(i.Kind))
	}
}

// Args implements inst.Instruction. The offset is exposed as a target
// argument relative to position zero; the decode iterator rewrites it
// against the instruction's real position.
func (i Cond) Args() []inst.Arg {
	target := inst.TargetArg(i.TargetAt(0))
	switch i.Kind {
	case CondEqual:
		if i.Cmp == inst.Zr {
			if i.Arg == inst.Zr {
				return []inst.Arg{target}
			}
			return []inst.Arg{inst.RegArg(i.Arg), target}
		}
		return []inst.Arg{inst.RegArg(i.Arg), inst.RegArg(i.Cmp), target}
	case CondNotEqual:
		if i.Cmp == inst.Zr {
			return []inst.Arg{inst.RegArg(i.Arg), target}
		}
		return []inst.Arg{inst.RegArg(i.Arg), inst.RegArg(i.Cmp), target}
	default:
		return []inst.Arg{inst.RegArg(i.Arg), target}
	}
}
