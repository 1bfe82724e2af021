package basic

import "github.com/psxtools/exedis/inst"

// ShiftKind selects the shift direction and mode, shared by the
// immediate and register variants.
type ShiftKind int

const (
	ShiftLeftLogical ShiftKind = iota
	ShiftRightLogical
	ShiftRightArithmetic
)

// shiftFuncts maps ShiftKind to the low 2 bits of the function code.
var shiftFuncts = [...]uint32{
	ShiftLeftLogical:     0x0,
	ShiftRightLogical:    0x2,
	ShiftRightArithmetic: 0x3,
}

func shiftKindFromFunct(f uint32) (ShiftKind, bool) {
	switch f {
	case 0x0:
		return ShiftLeftLogical, true
	case 0x2:
		return ShiftRightLogical, true
	case 0x3:
		return ShiftRightArithmetic, true
	default:
		return 0, false
	}
}

// ShiftImm shifts Lhs by a constant amount into Dst.
type ShiftImm struct {
	Dst    inst.Register
	Lhs    inst.Register
	Amount uint8
	Kind   ShiftKind
}

func decodeShiftImm(raw uint32) (Instruction, bool) {
	if opcode(raw) != 0 || (raw&0x3F)>>2 != 0 {
		return nil, false
	}
	kind, ok := shiftKindFromFunct(raw & 0x3)
	if !ok {
		return nil, false
	}
	dst, ok := reg(raw, 11)
	if !ok {
		return nil, false
	}
	lhs, ok := reg(raw, 16)
	if !ok {
		return nil, false
	}
	return ShiftImm{
		Dst:    dst,
		Lhs:    lhs,
		Amount: uint8((raw >> 6) & 0x1F),
		Kind:   kind,
	}, true
}

// Encode implements Instruction.
func (i ShiftImm) Encode() uint32 {
	return i.Lhs.Idx()<<16 | i.Dst.Idx()<<11 | uint32(i.Amount&0x1F)<<6 | shiftFuncts[i.Kind]
}

// IsNop reports whether this is the canonical no-op, `sll $zr, $zr, 0`
// (the all-zeros word).
func (i ShiftImm) IsNop() bool {
	return i.Kind == ShiftLeftLogical && i.Dst == inst.Zr && i.Lhs == inst.Zr && i.Amount == 0
}

// Size implements inst.Instruction.
func (i ShiftImm) Size() int { return 4 }

// Mnemonic implements inst.Instruction.
func (i ShiftImm) Mnemonic() string {
	switch i.Kind {
	case ShiftLeftLogical:
		return "sll"
	case ShiftRightLogical:
		return "srl"
	default:
		return "sra"
	}
}

// Args implements inst.Instruction.
func (i ShiftImm) Args() []inst.Arg {
	return []inst.Arg{inst.RegArg(i.Dst), inst.RegArg(i.Lhs), inst.LitArg(int64(i.Amount))}
}

// ShiftReg shifts Lhs by the amount in Rhs into Dst.
type ShiftReg struct {
	Dst  inst.Register
	Lhs  inst.Register
	Rhs  inst.Register
	Kind ShiftKind
}

func decodeShiftReg(raw uint32) (Instruction, bool) {
	if opcode(raw) != 0 || (raw&0x3F)>>2 != 0x1 {
		return nil, false
	}
	kind, ok := shiftKindFromFunct(raw & 0x3)
	if !ok {
		return nil, false
	}
	dst, ok := reg(raw, 11)
	if !ok {
		return nil, false
	}
	lhs, ok := reg(raw, 16)
	if !ok {
		return nil, false
	}
	rhs, ok := reg(raw, 21)
	if !ok {
		return nil, false
	}
	return ShiftReg{Dst: dst, Lhs: lhs, Rhs: rhs, Kind: kind}, true
}

// Encode implements Instruction.
func (i ShiftReg) Encode() uint32 {
	return i.Rhs.Idx()<<21 | i.Lhs.Idx()<<16 | i.Dst.Idx()<<11 | 0x4 | shiftFuncts[i.Kind]
}

// Size implements inst.Instruction.
func (i ShiftReg) Size() int { return 4 }

// Mnemonic implements inst.Instruction.
func (i ShiftReg) Mnemonic() string {
	switch i.Kind {
	case ShiftLeftLogical:
		return "sllv"
	case ShiftRightLogical:
		return "srlv"
	default:
		return "srav"
	}
}

// Args implements inst.Instruction.
func (i ShiftReg) Args() []inst.Arg {
	return []inst.Arg{inst.RegArg(i.Dst), inst.RegArg(i.Lhs), inst.RegArg(i.Rhs)}
}
