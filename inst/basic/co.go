package basic

import (
	"fmt"

	"github.com/psxtools/exedis/inst"
	"github.com/psxtools/exedis/pos"
)

// CoKind discriminates the coprocessor instruction forms.
type CoKind int

const (
	// CoExec executes a coprocessor command with a 25-bit immediate.
	CoExec CoKind = iota
	// CoMoveFrom copies a coprocessor register into a cpu register.
	CoMoveFrom
	// CoMoveTo copies a cpu register into a coprocessor register.
	CoMoveTo
	// CoBranch branches on the coprocessor condition flag.
	CoBranch
	// CoLoad loads a word from memory into a coprocessor register.
	CoLoad
	// CoStore stores a coprocessor register word to memory.
	CoStore
)

// Co is any instruction addressed to one of the four coprocessors. The
// fields in use depend on Kind.
type Co struct {
	N    uint8
	Kind CoKind

	// Imm is the 25-bit command immediate for CoExec.
	Imm uint32
	// Ctrl selects the control register bank for moves (cfc/ctc).
	Ctrl bool
	// Reg is the cpu-side register for moves.
	Reg inst.Register
	// CopReg is the coprocessor-side register for moves, loads and
	// stores.
	CopReg uint8
	// Addr and Offset form the memory operand for loads and stores.
	Addr   inst.Register
	Offset int16
	// OnTrue selects bc{n}t over bc{n}f for CoBranch; Offset holds
	// the branch displacement in words, minus one.
	OnTrue bool
}

func decodeCo(raw uint32) (Instruction, bool) {
	op := opcode(raw)
	switch {
	case op >= 0x10 && op <= 0x13:
		c := Co{N: uint8(op & 0x3)}
		if raw&(1<<25) != 0 {
			c.Kind = CoExec
			c.Imm = raw & 0x1FFFFFF
			return c, true
		}
		t, ok := reg(raw, 16)
		if !ok {
			return nil, false
		}
		switch (raw >> 21) & 0x1F {
		case 0x0, 0x2, 0x4, 0x6:
			if raw&0x7FF != 0 {
				return nil, false
			}
			if (raw>>21)&0x4 != 0 {
				c.Kind = CoMoveTo
			} else {
				c.Kind = CoMoveFrom
			}
			c.Ctrl = (raw>>21)&0x2 != 0
			c.Reg = t
			c.CopReg = uint8((raw >> 11) & 0x1F)
			return c, true
		case 0x8:
			if t.Idx() > 1 {
				return nil, false
			}
			c.Kind = CoBranch
			c.OnTrue = t.Idx() == 1
			c.Offset = int16(imm16(raw))
			return c, true
		default:
			return nil, false
		}
	case op >= 0x30 && op <= 0x33:
		addr, ok := reg(raw, 21)
		if !ok {
			return nil, false
		}
		return Co{
			N:      uint8(op & 0x3),
			Kind:   CoLoad,
			CopReg: uint8((raw >> 16) & 0x1F),
			Addr:   addr,
			Offset: int16(imm16(raw)),
		}, true
	case op >= 0x38 && op <= 0x3B:
		addr, ok := reg(raw, 21)
		if !ok {
			return nil, false
		}
		return Co{
			N:      uint8(op & 0x3),
			Kind:   CoStore,
			CopReg: uint8((raw >> 16) & 0x1F),
			Addr:   addr,
			Offset: int16(imm16(raw)),
		}, true
	default:
		return nil, false
	}
}

// Encode implements Instruction.
func (i Co) Encode() uint32 {
	n := uint32(i.N & 0x3)
	switch i.Kind {
	case CoExec:
		return (0x10|n)<<26 | 1<<25 | i.Imm&0x1FFFFFF
	case CoMoveFrom, CoMoveTo:
		rs := uint32(0)
		if i.Kind == CoMoveTo {
			rs |= 0x4
		}
		if i.Ctrl {
			rs |= 0x2
		}
		return (0x10|n)<<26 | rs<<21 | i.Reg.Idx()<<16 | uint32(i.CopReg&0x1F)<<11
	case CoBranch:
		rt := uint32(0)
		if i.OnTrue {
			rt = 1
		}
		return (0x10|n)<<26 | 0x8<<21 | rt<<16 | uint32(uint16(i.Offset))
	case CoLoad:
		return (0x30|n)<<26 | i.Addr.Idx()<<21 | uint32(i.CopReg&0x1F)<<16 | uint32(uint16(i.Offset))
	default:
		return (0x38|n)<<26 | i.Addr.Idx()<<21 | uint32(i.CopReg&0x1F)<<16 | uint32(uint16(i.Offset))
	}
}

// TargetAt returns the branch destination when this instruction sits
// at p. Only meaningful for CoBranch.
func (i Co) TargetAt(p pos.Pos) pos.Pos {
	return p.AddSigned(4 * (int32(i.Offset) + 1))
}

// Size implements inst.Instruction.
func (i Co) Size() int { return 4 }

// Mnemonic implements inst.Instruction.
func (i Co) Mnemonic() string {
	switch i.Kind {
	case CoExec:
		return fmt.Sprintf("cop%d", i.N)
	case CoMoveFrom:
		if i.Ctrl {
			return fmt.Sprintf("cfc%d", i.N)
		}
		return fmt.Sprintf("mfc%d", i.N)
	case CoMoveTo:
		if i.Ctrl {
			return fmt.Sprintf("ctc%d", i.N)
		}
		return fmt.Sprintf("mtc%d", i.N)
	case CoBranch:
		if i.OnTrue {
			return fmt.Sprintf("bc%dt", i.N)
		}
		return fmt.Sprintf("bc%df", i.N)
	case CoLoad:
		return fmt.Sprintf("lwc%d", i.N)
	default:
		return fmt.Sprintf("swc%d", i.N)
	}
}

// Args implements inst.Instruction.
func (i Co) Args() []inst.Arg {
	switch i.Kind {
	case CoExec:
		return []inst.Arg{inst.LitArg(int64(i.Imm))}
	case CoMoveFrom, CoMoveTo:
		return []inst.Arg{inst.RegArg(i.Reg), inst.LitArg(int64(i.CopReg))}
	case CoBranch:
		return []inst.Arg{inst.TargetArg(i.TargetAt(0))}
	default:
		return []inst.Arg{inst.LitArg(int64(i.CopReg)), inst.RegOffArg(i.Addr, int64(i.Offset))}
	}
}
