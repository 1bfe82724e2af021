package pseudo

import (
	"github.com/psxtools/exedis/inst"
	"github.com/psxtools/exedis/inst/basic"
	"github.com/psxtools/exedis/pos"
)

// LoadImmKind selects the value shape of a load-immediate.
type LoadImmKind int

const (
	// LoadImmAddress is `lui $dst, hi` + `addiu $dst, $dst, lo`,
	// displayed as `la`.
	LoadImmAddress LoadImmKind = iota
	// LoadImmWord is `lui $dst, hi` + `ori $dst, $dst, lo`.
	LoadImmWord
	// LoadImmHalfWordUnsigned is a single `ori $dst, $zr, imm`.
	LoadImmHalfWordUnsigned
	// LoadImmHalfWordSigned is a single `addiu $dst, $zr, imm`.
	LoadImmHalfWordSigned
)

// LoadImm loads a constant into a register. Value holds the full
// 32-bit constant for the address and word kinds, and the raw low
// 16 bits for the half-word kinds.
type LoadImm struct {
	Dst   inst.Register
	Value uint32
	Kind  LoadImmKind
}

func decodeLoadImm(w *Window) Instruction {
	switch first := w.At(0).(type) {
	case basic.Lui:
		alu, ok := w.At(1).(basic.AluImm)
		if !ok || alu.Dst != first.Dst || alu.Lhs != alu.Dst {
			return nil
		}
		switch alu.Kind {
		case basic.AluImmAddUnsigned:
			return LoadImm{
				Dst:   first.Dst,
				Value: joinAddr(first.Value, int16(alu.Imm)),
				Kind:  LoadImmAddress,
			}
		case basic.AluImmOr:
			return LoadImm{
				Dst:   first.Dst,
				Value: uint32(first.Value)<<16 | uint32(alu.Imm),
				Kind:  LoadImmWord,
			}
		default:
			return nil
		}
	case basic.AluImm:
		if first.Lhs != inst.Zr {
			return nil
		}
		switch first.Kind {
		case basic.AluImmAddUnsigned:
			return LoadImm{Dst: first.Dst, Value: uint32(first.Imm), Kind: LoadImmHalfWordSigned}
		case basic.AluImmOr:
			return LoadImm{Dst: first.Dst, Value: uint32(first.Imm), Kind: LoadImmHalfWordUnsigned}
		default:
			return nil
		}
	default:
		return nil
	}
}

// Target returns the loaded address. Only meaningful for the address
// kind.
func (i LoadImm) Target() pos.Pos {
	return pos.Pos(i.Value)
}

// Encode implements Instruction.
func (i LoadImm) Encode() []basic.Instruction {
	switch i.Kind {
	case LoadImmAddress:
		hi, lo := splitAddr(i.Value)
		return []basic.Instruction{
			basic.Lui{Dst: i.Dst, Value: hi},
			basic.AluImm{Dst: i.Dst, Lhs: i.Dst, Imm: uint16(lo), Kind: basic.AluImmAddUnsigned},
		}
	case LoadImmWord:
		return []basic.Instruction{
			basic.Lui{Dst: i.Dst, Value: uint16(i.Value >> 16)},
			basic.AluImm{Dst: i.Dst, Lhs: i.Dst, Imm: uint16(i.Value), Kind: basic.AluImmOr},
		}
	case LoadImmHalfWordSigned:
		return []basic.Instruction{
			basic.AluImm{Dst: i.Dst, Lhs: inst.Zr, Imm: uint16(i.Value), Kind: basic.AluImmAddUnsigned},
		}
	default:
		return []basic.Instruction{
			basic.AluImm{Dst: i.Dst, Lhs: inst.Zr, Imm: uint16(i.Value), Kind: basic.AluImmOr},
		}
	}
}

// Size implements inst.Instruction.
func (i LoadImm) Size() int {
	if i.Kind == LoadImmAddress || i.Kind == LoadImmWord {
		return 8
	}
	return 4
}

// Mnemonic implements inst.Instruction.
func (i LoadImm) Mnemonic() string {
	if i.Kind == LoadImmAddress {
		return "la"
	}
	return "li"
}

// Args implements inst.Instruction.
func (i LoadImm) Args() []inst.Arg {
	dst := inst.RegArg(i.Dst)
	switch i.Kind {
	case LoadImmAddress:
		return []inst.Arg{dst, inst.TargetArg(pos.Pos(i.Value))}
	case LoadImmHalfWordSigned:
		return []inst.Arg{dst, inst.SignedArg(int64(int16(i.Value)))}
	default:
		return []inst.Arg{dst, inst.LitArg(int64(i.Value))}
	}
}
