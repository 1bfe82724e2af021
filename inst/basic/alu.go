package basic

import "github.com/psxtools/exedis/inst"

// AluImmKind selects the ALU immediate operation.
type AluImmKind int

const (
	AluImmAdd AluImmKind = iota
	AluImmAddUnsigned
	AluImmSetLessThan
	AluImmSetLessThanUnsigned
	AluImmAnd
	AluImmOr
	AluImmXor
)

// Mnemonic returns the kind's mnemonic.
func (k AluImmKind) Mnemonic() string {
	switch k {
	case AluImmAdd:
		return "addi"
	case AluImmAddUnsigned:
		return "addiu"
	case AluImmSetLessThan:
		return "slti"
	case AluImmSetLessThanUnsigned:
		return "sltiu"
	case AluImmAnd:
		return "andi"
	case AluImmOr:
		return "ori"
	case AluImmXor:
		return "xori"
	default:
		return "alu?"
	}
}

// SignedImm reports whether the immediate is interpreted sign-extended.
func (k AluImmKind) SignedImm() bool {
	switch k {
	case AluImmAdd, AluImmAddUnsigned, AluImmSetLessThan:
		return true
	default:
		return false
	}
}

// AluImm is an ALU instruction with a 16-bit immediate operand. Imm
// holds the raw low 16 bits; whether they sign-extend depends on Kind.
type AluImm struct {
	Dst  inst.Register
	Lhs  inst.Register
	Imm  uint16
	Kind AluImmKind
}

func decodeAluImm(raw uint32) (Instruction, bool) {
	p := opcode(raw)
	if p < 0x8 || p > 0xE {
		return nil, false
	}
	dst, ok := reg(raw, 16)
	if !ok {
		return nil, false
	}
	lhs, ok := reg(raw, 21)
	if !ok {
		return nil, false
	}
	return AluImm{
		Dst:  dst,
		Lhs:  lhs,
		Imm:  imm16(raw),
		Kind: AluImmKind(p - 0x8),
	}, true
}

// Encode implements Instruction.
func (i AluImm) Encode() uint32 {
	return (0x8+uint32(i.Kind))<<26 | i.Lhs.Idx()<<21 | i.Dst.Idx()<<16 | uint32(i.Imm)
}

// SignedValue returns the immediate sign-extended to 32 bits.
func (i AluImm) SignedValue() int32 {
	return int32(int16(i.Imm))
}

// Size implements inst.Instruction.
func (i AluImm) Size() int { return 4 }

// Mnemonic implements inst.Instruction.
func (i AluImm) Mnemonic() string { return i.Kind.Mnemonic() }

// Args implements inst.Instruction.
func (i AluImm) Args() []inst.Arg {
	var value inst.Arg
	if i.Kind.SignedImm() {
		value = inst.SignedArg(int64(int16(i.Imm)))
	} else {
		value = inst.LitArg(int64(i.Imm))
	}
	return []inst.Arg{inst.RegArg(i.Dst), inst.RegArg(i.Lhs), value}
}

// AluRegKind selects the three-register ALU operation.
type AluRegKind int

const (
	AluRegAdd AluRegKind = iota
	AluRegAddUnsigned
	AluRegSub
	AluRegSubUnsigned
	AluRegAnd
	AluRegOr
	AluRegXor
	AluRegNor
	AluRegSetLessThan
	AluRegSetLessThanUnsigned
)

// aluRegFuncts maps AluRegKind to the `special` function code.
var aluRegFuncts = [...]uint32{
	AluRegAdd:                 0x20,
	AluRegAddUnsigned:         0x21,
	AluRegSub:                 0x22,
	AluRegSubUnsigned:         0x23,
	AluRegAnd:                 0x24,
	AluRegOr:                  0x25,
	AluRegXor:                 0x26,
	AluRegNor:                 0x27,
	AluRegSetLessThan:         0x2A,
	AluRegSetLessThanUnsigned: 0x2B,
}

// Mnemonic returns the kind's mnemonic.
func (k AluRegKind) Mnemonic() string {
	switch k {
	case AluRegAdd:
		return "add"
	case AluRegAddUnsigned:
		return "addu"
	case AluRegSub:
		return "sub"
	case AluRegSubUnsigned:
		return "subu"
	case AluRegAnd:
		return "and"
	case AluRegOr:
		return "or"
	case AluRegXor:
		return "xor"
	case AluRegNor:
		return "nor"
	case AluRegSetLessThan:
		return "slt"
	case AluRegSetLessThanUnsigned:
		return "sltu"
	default:
		return "alu?"
	}
}

// AluReg is a three-register ALU instruction.
type AluReg struct {
	Dst  inst.Register
	Lhs  inst.Register
	Rhs  inst.Register
	Kind AluRegKind
}

func decodeAluReg(raw uint32) (Instruction, bool) {
	if opcode(raw) != 0 {
		return nil, false
	}
	var kind AluRegKind
	switch funct := raw & 0x3F; funct {
	case 0x20, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27:
		kind = AluRegKind(funct - 0x20)
	case 0x2A:
		kind = AluRegSetLessThan
	case 0x2B:
		kind = AluRegSetLessThanUnsigned
	default:
		return nil, false
	}
	dst, ok := reg(raw, 11)
	if !ok {
		return nil, false
	}
	lhs, ok := reg(raw, 21)
	if !ok {
		return nil, false
	}
	rhs, ok := reg(raw, 16)
	if !ok {
		return nil, false
	}
	return AluReg{Dst: dst, Lhs: lhs, Rhs: rhs, Kind: kind}, true
}

// Encode implements Instruction.
func (i AluReg) Encode() uint32 {
	return i.Lhs.Idx()<<21 | i.Rhs.Idx()<<16 | i.Dst.Idx()<<11 | aluRegFuncts[i.Kind]
}

// Size implements inst.Instruction.
func (i AluReg) Size() int { return 4 }

// Mnemonic implements inst.Instruction.
func (i AluReg) Mnemonic() string { return i.Kind.Mnemonic() }

// Args implements inst.Instruction.
func (i AluReg) Args() []inst.Arg {
	return []inst.Arg{inst.RegArg(i.Dst), inst.RegArg(i.Lhs), inst.RegArg(i.Rhs)}
}
