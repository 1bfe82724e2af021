package basic

import "github.com/psxtools/exedis/inst"

// Lui loads a 16-bit immediate into the upper half of Dst, zeroing the
// lower half.
type Lui struct {
	Dst   inst.Register
	Value uint16
}

func decodeLui(raw uint32) (Instruction, bool) {
	if opcode(raw) != 0xF {
		return nil, false
	}
	dst, ok := reg(raw, 16)
	if !ok {
		return nil, false
	}
	return Lui{Dst: dst, Value: imm16(raw)}, true
}

// Encode implements Instruction.
func (i Lui) Encode() uint32 {
	return 0xF<<26 | i.Dst.Idx()<<16 | uint32(i.Value)
}

// Size implements inst.Instruction.
func (i Lui) Size() int { return 4 }

// Mnemonic implements inst.Instruction.
func (i Lui) Mnemonic() string { return "lui" }

// Args implements inst.Instruction.
func (i Lui) Args() []inst.Arg {
	return []inst.Arg{inst.RegArg(i.Dst), inst.LitArg(int64(i.Value))}
}
