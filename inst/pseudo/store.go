package pseudo

import (
	"github.com/psxtools/exedis/inst"
	"github.com/psxtools/exedis/inst/basic"
	"github.com/psxtools/exedis/pos"
)

// Store is an absolute-address store through the assembler temporary,
//
//	lui $at, hi
//	s*  $value, lo($at)
//
// folded into a single store to Target.
type Store struct {
	Value  inst.Register
	Target pos.Pos
	Kind   basic.StoreKind
}

func decodeStore(w *Window) Instruction {
	lui, ok := w.At(0).(basic.Lui)
	if !ok || lui.Dst != inst.At {
		return nil
	}
	store, ok := w.At(1).(basic.Store)
	if !ok || store.Addr != inst.At {
		return nil
	}
	return Store{
		Value:  store.Value,
		Target: pos.Pos(joinAddr(lui.Value, store.Offset)),
		Kind:   store.Kind,
	}
}

// Encode implements Instruction.
func (i Store) Encode() []basic.Instruction {
	hi, lo := splitAddr(uint32(i.Target))
	return []basic.Instruction{
		basic.Lui{Dst: inst.At, Value: hi},
		basic.Store{Value: i.Value, Addr: inst.At, Offset: lo, Kind: i.Kind},
	}
}

// TargetAt returns the absolute store target.
func (i Store) TargetAt(pos.Pos) pos.Pos { return i.Target }

// Size implements inst.Instruction.
func (i Store) Size() int { return 8 }

// Mnemonic implements inst.Instruction.
func (i Store) Mnemonic() string { return i.Kind.Mnemonic() }

// Args implements inst.Instruction.
func (i Store) Args() []inst.Arg {
	return []inst.Arg{inst.RegArg(i.Value), inst.TargetArg(i.Target)}
}
