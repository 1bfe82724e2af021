package pseudo

import (
	"github.com/psxtools/exedis/inst"
	"github.com/psxtools/exedis/inst/basic"
	"github.com/psxtools/exedis/pos"
)

// Load is an absolute-address load,
//
//	lui $dst, hi
//	l*  $dst, lo($dst)
//
// folded into a single load from Target.
type Load struct {
	Dst    inst.Register
	Target pos.Pos
	Kind   basic.LoadKind
}

func decodeLoad(w *Window) Instruction {
	lui, ok := w.At(0).(basic.Lui)
	if !ok {
		return nil
	}
	load, ok := w.At(1).(basic.Load)
	if !ok || load.Value != lui.Dst || load.Addr != load.Value {
		return nil
	}
	return Load{
		Dst:    lui.Dst,
		Target: pos.Pos(joinAddr(lui.Value, load.Offset)),
		Kind:   load.Kind,
	}
}

// Encode implements Instruction.
func (i Load) Encode() []basic.Instruction {
	hi, lo := splitAddr(uint32(i.Target))
	return []basic.Instruction{
		basic.Lui{Dst: i.Dst, Value: hi},
		basic.Load{Value: i.Dst, Addr: i.Dst, Offset: lo, Kind: i.Kind},
	}
}

// TargetAt returns the absolute load target.
func (i Load) TargetAt(pos.Pos) pos.Pos { return i.Target }

// Size implements inst.Instruction.
func (i Load) Size() int { return 8 }

// Mnemonic implements inst.Instruction.
func (i Load) Mnemonic() string { return i.Kind.Mnemonic() }

// Args implements inst.Instruction.
func (i Load) Args() []inst.Arg {
	return []inst.Arg{inst.RegArg(i.Dst), inst.TargetArg(i.Target)}
}
