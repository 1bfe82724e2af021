package pseudo

import (
	"github.com/psxtools/exedis/inst"
	"github.com/psxtools/exedis/inst/basic"
)

// MoveReg is a register copy, `addu $dst, $src, $zr`.
type MoveReg struct {
	Dst inst.Register
	Src inst.Register
}

func decodeMoveReg(w *Window) Instruction {
	alu, ok := w.At(0).(basic.AluReg)
	if !ok || alu.Rhs != inst.Zr || alu.Kind != basic.AluRegAddUnsigned {
		return nil
	}
	return MoveReg{Dst: alu.Dst, Src: alu.Lhs}
}

// Encode implements Instruction.
func (i MoveReg) Encode() []basic.Instruction {
	return []basic.Instruction{
		basic.AluReg{Dst: i.Dst, Lhs: i.Src, Rhs: inst.Zr, Kind: basic.AluRegAddUnsigned},
	}
}

// Size implements inst.Instruction.
func (i MoveReg) Size() int { return 4 }

// Mnemonic implements inst.Instruction.
func (i MoveReg) Mnemonic() string { return "move" }

// Args implements inst.Instruction.
func (i MoveReg) Args() []inst.Arg {
	return []inst.Arg{inst.RegArg(i.Dst), inst.RegArg(i.Src)}
}
