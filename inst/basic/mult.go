package basic

import "github.com/psxtools/exedis/inst"

// MultKind discriminates the multiply unit operations.
type MultKind int

const (
	// MultMult multiplies Lhs by Rhs into hi/lo.
	MultMult MultKind = iota
	// MultDiv divides Lhs by Rhs, quotient in lo, remainder in hi.
	MultDiv
	// MultMoveFrom copies hi or lo into Dst.
	MultMoveFrom
	// MultMoveTo copies Lhs into hi or lo.
	MultMoveTo
)

// HiLo names one of the two multiply unit registers.
type HiLo int

const (
	Hi HiLo = iota
	Lo
)

// String implements fmt.Stringer.
func (r HiLo) String() string {
	if r == Hi {
		return "$hi"
	}
	return "$lo"
}

// Mult is a multiply unit instruction. The fields in use depend on
// Kind: mult/div use Lhs and Rhs, moves use Dst or Lhs plus Reg.
type Mult struct {
	Kind     MultKind
	Unsigned bool
	Reg      HiLo
	Dst      inst.Register
	Lhs      inst.Register
	Rhs      inst.Register
}

func decodeMult(raw uint32) (Instruction, bool) {
	if opcode(raw) != 0 {
		return nil, false
	}
	s, sok := reg(raw, 21)
	t, tok := reg(raw, 16)
	d, dok := reg(raw, 11)
	if !sok || !tok || !dok {
		return nil, false
	}
	switch raw & 0x3F {
	case 0x10:
		return Mult{Kind: MultMoveFrom, Reg: Hi, Dst: d}, true
	case 0x11:
		return Mult{Kind: MultMoveTo, Reg: Hi, Lhs: s}, true
	case 0x12:
		return Mult{Kind: MultMoveFrom, Reg: Lo, Dst: d}, true
	case 0x13:
		return Mult{Kind: MultMoveTo, Reg: Lo, Lhs: s}, true
	case 0x18:
		return Mult{Kind: MultMult, Lhs: s, Rhs: t}, true
	case 0x19:
		return Mult{Kind: MultMult, Unsigned: true, Lhs: s, Rhs: t}, true
	case 0x1A:
		return Mult{Kind: MultDiv, Lhs: s, Rhs: t}, true
	case 0x1B:
		return Mult{Kind: MultDiv, Unsigned: true, Lhs: s, Rhs: t}, true
	default:
		return nil, false
	}
}

// Encode implements Instruction.
func (i Mult) Encode() uint32 {
	switch i.Kind {
	case MultMoveFrom:
		funct := uint32(0x10)
		if i.Reg == Lo {
			funct = 0x12
		}
		return i.Dst.Idx()<<11 | funct
	case MultMoveTo:
		funct := uint32(0x11)
		if i.Reg == Lo {
			funct = 0x13
		}
		return i.Lhs.Idx()<<21 | funct
	default:
		funct := uint32(0x18)
		if i.Kind == MultDiv {
			funct = 0x1A
		}
		if i.Unsigned {
			funct |= 0x1
		}
		return i.Lhs.Idx()<<21 | i.Rhs.Idx()<<16 | funct
	}
}

// Size implements inst.Instruction.
func (i Mult) Size() int { return 4 }

// Mnemonic implements inst.Instruction.
func (i Mult) Mnemonic() string {
	switch i.Kind {
	case MultMoveFrom:
		if i.Reg == Hi {
			return "mfhi"
		}
		return "mflo"
	case MultMoveTo:
		if i.Reg == Hi {
			return "mthi"
		}
		return "mtlo"
	case MultDiv:
		if i.Unsigned {
			return "divu"
		}
		return "div"
	default:
		if i.Unsigned {
			return "multu"
		}
		return "mult"
	}
}

// Args implements inst.Instruction.
func (i Mult) Args() []inst.Arg {
	switch i.Kind {
	case MultMoveFrom:
		return []inst.Arg{inst.RegArg(i.Dst)}
	case MultMoveTo:
		return []inst.Arg{inst.RegArg(i.Lhs)}
	default:
		return []inst.Arg{inst.RegArg(i.Lhs), inst.RegArg(i.Rhs)}
	}
}
