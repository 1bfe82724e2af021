package basic

import "github.com/psxtools/exedis/inst"

// LoadKind selects the memory load width and signedness.
type LoadKind int

const (
	LoadByte LoadKind = iota
	LoadHalfWord
	LoadWordLeft
	LoadWord
	LoadByteUnsigned
	LoadHalfWordUnsigned
	LoadWordRight
)

// Mnemonic returns the kind's mnemonic.
func (k LoadKind) Mnemonic() string {
	switch k {
	case LoadByte:
		return "lb"
	case LoadHalfWord:
		return "lh"
	case LoadWordLeft:
		return "lwl"
	case LoadWord:
		return "lw"
	case LoadByteUnsigned:
		return "lbu"
	case LoadHalfWordUnsigned:
		return "lhu"
	case LoadWordRight:
		return "lwr"
	default:
		return "l?"
	}
}

// AccessSize returns the width in bytes of a single access.
func (k LoadKind) AccessSize() int {
	switch k {
	case LoadByte, LoadByteUnsigned:
		return 1
	case LoadHalfWord, LoadHalfWordUnsigned:
		return 2
	default:
		return 4
	}
}

// Load reads memory at Addr+Offset into Value.
type Load struct {
	Value  inst.Register
	Addr   inst.Register
	Offset int16
	Kind   LoadKind
}

func decodeLoad(raw uint32) (Instruction, bool) {
	p := opcode(raw)
	if p < 0x20 || p > 0x26 {
		return nil, false
	}
	value, ok := reg(raw, 16)
	if !ok {
		return nil, false
	}
	addr, ok := reg(raw, 21)
	if !ok {
		return nil, false
	}
	return Load{
		Value:  value,
		Addr:   addr,
		Offset: int16(imm16(raw)),
		Kind:   LoadKind(p - 0x20),
	}, true
}

// Encode implements Instruction.
func (i Load) Encode() uint32 {
	return (0x20+uint32(i.Kind))<<26 | i.Addr.Idx()<<21 | i.Value.Idx()<<16 | uint32(uint16(i.Offset))
}

// Size implements inst.Instruction.
func (i Load) Size() int { return 4 }

// Mnemonic implements inst.Instruction.
func (i Load) Mnemonic() string { return i.Kind.Mnemonic() }

// Args implements inst.Instruction.
func (i Load) Args() []inst.Arg {
	return []inst.Arg{inst.RegArg(i.Value), inst.RegOffArg(i.Addr, int64(i.Offset))}
}
