package pseudo

import (
	"github.com/psxtools/exedis/inst"
	"github.com/psxtools/exedis/inst/basic"
)

// Nop is a run of one or more `sll $zr, $zr, 0` instructions, folded
// into a single line.
type Nop struct {
	Len int
}

func decodeNop(w *Window) Instruction {
	n := 0
	for {
		sll, ok := w.At(n).(basic.ShiftImm)
		if !ok || !sll.IsNop() {
			break
		}
		n++
	}
	if n == 0 {
		return nil
	}
	return Nop{Len: n}
}

// Encode implements Instruction.
func (i Nop) Encode() []basic.Instruction {
	insts := make([]basic.Instruction, i.Len)
	for n := range insts {
		insts[n] = basic.ShiftImm{}
	}
	return insts
}

// Size implements inst.Instruction.
func (i Nop) Size() int { return 4 * i.Len }

// Mnemonic implements inst.Instruction.
func (i Nop) Mnemonic() string { return "nop" }

// Args implements inst.Instruction.
func (i Nop) Args() []inst.Arg {
	if i.Len == 1 {
		return nil
	}
	return []inst.Arg{inst.LitArg(int64(i.Len))}
}
