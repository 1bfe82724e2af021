package basic

import "github.com/psxtools/exedis/inst"

// StoreKind selects the memory store width.
type StoreKind int

const (
	StoreByte StoreKind = iota
	StoreHalfWord
	StoreWordLeft
	StoreWord
	StoreWordRight
)

// storeSubOps maps StoreKind to the low 3 bits of the opcode.
var storeSubOps = [...]uint32{
	StoreByte:      0x0,
	StoreHalfWord:  0x1,
	StoreWordLeft:  0x2,
	StoreWord:      0x3,
	StoreWordRight: 0x6,
}

// Mnemonic returns the kind's mnemonic.
func (k StoreKind) Mnemonic() string {
	switch k {
	case StoreByte:
		return "sb"
	case StoreHalfWord:
		return "sh"
	case StoreWordLeft:
		return "swl"
	case StoreWord:
		return "sw"
	case StoreWordRight:
		return "swr"
	default:
		return "s?"
	}
}

// AccessSize returns the width in bytes of a single access.
func (k StoreKind) AccessSize() int {
	switch k {
	case StoreByte:
		return 1
	case StoreHalfWord:
		return 2
	default:
		return 4
	}
}

// Store writes Value to memory at Addr+Offset.
type Store struct {
	Value  inst.Register
	Addr   inst.Register
	Offset int16
	Kind   StoreKind
}

func decodeStore(raw uint32) (Instruction, bool) {
	var kind StoreKind
	switch opcode(raw) {
	case 0x28:
		kind = StoreByte
	case 0x29:
		kind = StoreHalfWord
	case 0x2A:
		kind = StoreWordLeft
	case 0x2B:
		kind = StoreWord
	case 0x2E:
		kind = StoreWordRight
	default:
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
	return Store{
		Value:  value,
		Addr:   addr,
		Offset: int16(imm16(raw)),
		Kind:   kind,
	}, true
}

// Encode implements Instruction.
func (i Store) Encode() uint32 {
	return (0x28|storeSubOps[i.Kind])<<26 | i.Addr.Idx()<<21 | i.Value.Idx()<<16 | uint32(uint16(i.Offset))
}

// Size implements inst.Instruction.
func (i Store) Size() int { return 4 }

// Mnemonic implements inst.Instruction.
func (i Store) Mnemonic() string { return i.Kind.Mnemonic() }

// Args implements inst.Instruction.
func (i Store) Args() []inst.Arg {
	return []inst.Arg{inst.RegArg(i.Value), inst.RegOffArg(i.Addr, int64(i.Offset))}
}
