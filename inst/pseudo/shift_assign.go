package pseudo

import (
	"github.com/psxtools/exedis/inst"
	"github.com/psxtools/exedis/inst/basic"
)

// ShiftAssignImm is `shift $dst, $dst, amount` in self-assign display
// form. The nop recognizer runs first, so $zr never reaches here.
type ShiftAssignImm struct {
	Dst    inst.Register
	Amount uint8
	Kind   basic.ShiftKind
}

// ShiftAssignReg is `shift $dst, $dst, $rhs` in the same form.
type ShiftAssignReg struct {
	Dst  inst.Register
	Rhs  inst.Register
	Kind basic.ShiftKind
}

func decodeShiftAssign(w *Window) Instruction {
	switch shift := w.At(0).(type) {
	case basic.ShiftImm:
		if shift.Dst != shift.Lhs {
			return nil
		}
		return ShiftAssignImm{Dst: shift.Dst, Amount: shift.Amount, Kind: shift.Kind}
	case basic.ShiftReg:
		if shift.Dst != shift.Lhs {
			return nil
		}
		return ShiftAssignReg{Dst: shift.Dst, Rhs: shift.Rhs, Kind: shift.Kind}
	default:
		return nil
	}
}

// Encode implements Instruction.
func (i ShiftAssignImm) Encode() []basic.Instruction {
	return []basic.Instruction{basic.ShiftImm{Dst: i.Dst, Lhs: i.Dst, Amount: i.Amount, Kind: i.Kind}}
}

// Size implements inst.Instruction.
func (i ShiftAssignImm) Size() int { return 4 }

// Mnemonic implements inst.Instruction.
func (i ShiftAssignImm) Mnemonic() string {
	return basic.ShiftImm{Kind: i.Kind}.Mnemonic()
}

// Args implements inst.Instruction.
func (i ShiftAssignImm) Args() []inst.Arg {
	return []inst.Arg{inst.RegArg(i.Dst), inst.LitArg(int64(i.Amount))}
}

// Encode implements Instruction.
func (i ShiftAssignReg) Encode() []basic.Instruction {
	return []basic.Instruction{basic.ShiftReg{Dst: i.Dst, Lhs: i.Dst, Rhs: i.Rhs, Kind: i.Kind}}
}

// Size implements inst.Instruction.
func (i ShiftAssignReg) Size() int { return 4 }

// Mnemonic implements inst.Instruction.
func (i ShiftAssignReg) Mnemonic() string {
	return basic.ShiftReg{Kind: i.Kind}.Mnemonic()
}

// Args implements inst.Instruction.
func (i ShiftAssignReg) Args() []inst.Arg {
	return []inst.Arg{inst.RegArg(i.Dst), inst.RegArg(i.Rhs)}
}
