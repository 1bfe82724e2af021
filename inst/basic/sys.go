package basic

import "github.com/psxtools/exedis/inst"

// Sys is a syscall or breakpoint instruction carrying a 20-bit comment
// field that the hardware ignores.
type Sys struct {
	Comment uint32
	Break   bool
}

func decodeSys(raw uint32) (Instruction, bool) {
	if opcode(raw) != 0 {
		return nil, false
	}
	switch raw & 0x3F {
	case 0xC:
		return Sys{Comment: (raw >> 6) & 0xFFFFF}, true
	case 0xD:
		return Sys{Comment: (raw >> 6) & 0xFFFFF, Break: true}, true
	default:
		return nil, false
	}
}

// Encode implements Instruction.
func (i Sys) Encode() uint32 {
	funct := uint32(0xC)
	if i.Break {
		funct = 0xD
	}
	return (i.Comment&0xFFFFF)<<6 | funct
}

// Size implements inst.Instruction.
func (i Sys) Size() int { return 4 }

// Mnemonic implements inst.Instruction.
func (i Sys) Mnemonic() string {
	if i.Break {
		return "break"
	}
	return "sys"
}

// Args implements inst.Instruction.
func (i Sys) Args() []inst.Arg {
	return []inst.Arg{inst.LitArg(int64(i.Comment))}
}
