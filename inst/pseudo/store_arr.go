package pseudo

import (
	"github.com/psxtools/exedis/inst"
	"github.com/psxtools/exedis/inst/basic"
)

// StoreArr is the store counterpart of LoadArr: a contiguous run of
// same-kind stores off the stack pointer, typically a register save in
// a function prologue.
type StoreArr struct {
	Offset int16
	Regs   []inst.Register
	Kind   basic.StoreKind
}

func decodeStoreArr(w *Window) Instruction {
	first, ok := w.At(0).(basic.Store)
	if !ok || first.Addr != inst.Sp || !arrStoreKind(first.Kind) {
		return nil
	}

	stride := int16(first.Kind.AccessSize())
	regs := []inst.Register{first.Value}
	offset := first.Offset
	for {
		next, ok := w.At(len(regs)).(basic.Store)
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
	return StoreArr{Offset: first.Offset, Regs: regs, Kind: first.Kind}
}

func arrStoreKind(k basic.StoreKind) bool {
	return k != basic.StoreWordLeft && k != basic.StoreWordRight
}

// Encode implements Instruction.
func (i StoreArr) Encode() []basic.Instruction {
	stride := int16(i.Kind.AccessSize())
	insts := make([]basic.Instruction, len(i.Regs))
	for n, r := range i.Regs {
		insts[n] = basic.Store{
			Value:  r,
			Addr:   inst.Sp,
			Offset: i.Offset + stride*int16(n),
			Kind:   i.Kind,
		}
	}
	return insts
}

// Size implements inst.Instruction.
func (i StoreArr) Size() int { return 4 * len(i.Regs) }

// Mnemonic implements inst.Instruction.
func (i StoreArr) Mnemonic() string { return i.Kind.Mnemonic() + "arr" }

// Args implements inst.Instruction.
func (i StoreArr) Args() []inst.Arg {
	return []inst.Arg{inst.RegListArg(i.Regs), inst.RegOffArg(inst.Sp, int64(i.Offset))}
}
