package pseudo

import (
	"github.com/psxtools/exedis/inst"
	"github.com/psxtools/exedis/inst/basic"
)

// AluAssignImm is `op $dst, $dst, imm`, displayed without repeating the
// destination register. Purely cosmetic, still one instruction.
type AluAssignImm struct {
	Dst  inst.Register
	Imm  uint16
	Kind basic.AluImmKind
}

// AluAssignReg is `op $dst, $dst, $rhs` in the same display form.
type AluAssignReg struct {
	Dst  inst.Register
	Rhs  inst.Register
	Kind basic.AluRegKind
}

func decodeAluAssign(w *Window) Instruction {
	switch alu := w.At(0).(type) {
	case basic.AluImm:
		if alu.Dst != alu.Lhs {
			return nil
		}
		return AluAssignImm{Dst: alu.Dst, Imm: alu.Imm, Kind: alu.Kind}
	case basic.AluReg:
		if alu.Dst != alu.Lhs {
			return nil
		}
		return AluAssignReg{Dst: alu.Dst, Rhs: alu.Rhs, Kind: alu.Kind}
	default:
		return nil
	}
}

// Encode implements Instruction.
func (i AluAssignImm) Encode() []basic.Instruction {
	return []basic.Instruction{basic.AluImm{Dst: i.Dst, Lhs: i.Dst, Imm: i.Imm, Kind: i.Kind}}
}

// Size implements inst.Instruction.
func (i AluAssignImm) Size() int { return 4 }

// Mnemonic implements inst.Instruction.
func (i AluAssignImm) Mnemonic() string { return i.Kind.Mnemonic() }

// Args implements inst.Instruction.
func (i AluAssignImm) Args() []inst.Arg {
	var value inst.Arg
	if i.Kind.SignedImm() {
		value = inst.SignedArg(int64(int16(i.Imm)))
	} else {
		value = inst.LitArg(int64(i.Imm))
	}
	return []inst.Arg{inst.RegArg(i.Dst), value}
}

// Encode implements Instruction.
func (i AluAssignReg) Encode() []basic.Instruction {
	return []basic.Instruction{basic.AluReg{Dst: i.Dst, Lhs: i.Dst, Rhs: i.Rhs, Kind: i.Kind}}
}

// Size implements inst.Instruction.
func (i AluAssignReg) Size() int { return 4 }

// Mnemonic implements inst.Instruction.
func (i AluAssignReg) Mnemonic() string { return i.Kind.Mnemonic() }

// Args implements inst.Instruction.
func (i AluAssignReg) Args() []inst.Arg {
	return []inst.Arg{inst.RegArg(i.Dst), inst.RegArg(i.Rhs)}
}
