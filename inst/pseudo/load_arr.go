package pseudo

import (
	"github.com/psxtools/exedis/inst"
	"github.com/psxtools/exedis/inst/basic"
)

// LoadArr is a run of two or more same-kind loads off the stack
// pointer at contiguous, stride-sized offsets, folded into one line:
//
//	lw $s0, 0x10($sp)
//	lw $s1, 0x14($sp)   ->   lwarr {$s0, $s1}, 0x10($sp)
//
// The unaligned word kinds never form runs.
type LoadArr struct {
	Offset int16
	Regs   []inst.Register
	Kind   basic.LoadKind
}

func decodeLoadArr(w *Window) Instruction {
	first, ok := w.At(0).(basic.Load)
	if !ok || first.Addr != inst.Sp || !arrLoadKind(first.Kind) {
		return nil
	}

	stride := int16(first.Kind.AccessSize())
	regs := []inst.Register{first.Value}
	offset := first.Offset
	for {
		next, ok := w.At(len(regs)).(basic.Load)
		if !ok || next.Addr != inst.Sp || next.Kind != first.Kind {
			break
		}
		if next.Offset != offset+stride {
			break
		}
		offset += stride
		regs = append(regs, next.Value)
	}

	if len(regs) < 2 {
		return nil
	}
	return LoadArr{Offset: first.Offset, Regs: regs, Kind: first.Kind}
}

func arrLoadKind(k basic.LoadKind) bool {
	return k != basic.LoadWordLeft && k != basic.LoadWordRight
}

// Encode implements Instruction.
func (i LoadArr) Encode() []basic.Instruction {
	stride := int16(i.Kind.AccessSize())
	insts := make([]basic.Instruction, len(i.Regs))
	for n, r := range i.Regs {
		insts[n] = basic.Load{
			Value:  r,
			Addr:   inst.Sp,
			Offset: i.Offset + stride*int16(n),
			Kind:   i.Kind,
		}
	}
	return insts
}

// Size implements inst.Instruction.
func (i LoadArr) Size() int { return 4 * len(i.Regs) }

// Mnemonic implements inst.Instruction.
func (i LoadArr) Mnemonic() string { return i.Kind.Mnemonic() + "arr" }

// Args implements inst.Instruction.
func (i LoadArr) Args() []inst.Arg {
	return []inst.Arg{inst.RegListArg(i.Regs), inst.RegOffArg(inst.Sp, int64(i.Offset))}
}
