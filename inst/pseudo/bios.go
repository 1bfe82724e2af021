package pseudo

import (
	"github.com/psxtools/exedis/inst"
	"github.com/psxtools/exedis/inst/basic"
)

// BiosFunc names one of the three BIOS function tables, selected by
// the sentinel call address.
type BiosFunc int

const (
	BiosA BiosFunc = iota // 0xA0
	BiosB                 // 0xB0
	BiosC                 // 0xC0
)

// biosFuncAddrs maps BiosFunc to its sentinel call address.
var biosFuncAddrs = [...]uint16{
	BiosA: 0xA0,
	BiosB: 0xB0,
	BiosC: 0xC0,
}

func biosFuncFromAddr(addr uint16) (BiosFunc, bool) {
	switch addr {
	case 0xA0:
		return BiosA, true
	case 0xB0:
		return BiosB, true
	case 0xC0:
		return BiosC, true
	default:
		return 0, false
	}
}

// Bios is a BIOS call, recognized from one of the two fixed calling
// skeletons:
//
//	addiu $t2, $zr, func    addiu $t1, $zr, num
//	jr    $t2               addiu $t2, $zr, func
//	addiu $t1, $zr, num     jalr  $t2
//	                        nop
//
// The left form jumps, the right form links.
type Bios struct {
	Func BiosFunc
	Num  uint8
	Link bool
}

// addiuFromZr matches `addiu $dst, $zr, imm` and returns dst and imm.
func addiuFromZr(in basic.Instruction) (inst.Register, uint16, bool) {
	alu, ok := in.(basic.AluImm)
	if !ok || alu.Lhs != inst.Zr || alu.Kind != basic.AluImmAddUnsigned {
		return 0, 0, false
	}
	return alu.Dst, alu.Imm, true
}

func decodeBios(w *Window) Instruction {
	var funcAddr, num uint16
	var link bool

	if dst, imm, ok := addiuFromZr(w.At(0)); ok && dst == inst.T2 {
		// Jump form.
		jmp, ok := w.At(1).(basic.JmpReg)
		if !ok || jmp.Link || jmp.Reg != inst.T2 {
			return nil
		}
		dst, imm2, ok := addiuFromZr(w.At(2))
		if !ok || dst != inst.T1 {
			return nil
		}
		funcAddr, num = imm, imm2
	} else if dst, imm, ok := addiuFromZr(w.At(0)); ok && dst == inst.T1 {
		// Jump-and-link form.
		dst, imm2, ok := addiuFromZr(w.At(1))
		if !ok || dst != inst.T2 {
			return nil
		}
		jmp, ok := w.At(2).(basic.JmpReg)
		if !ok || !jmp.Link || jmp.Reg != inst.T2 || jmp.LinkReg != inst.Ra {
			return nil
		}
		sll, ok := w.At(3).(basic.ShiftImm)
		if !ok || !sll.IsNop() {
			return nil
		}
		funcAddr, num = imm2, imm
		link = true
	} else {
		return nil
	}

	fn, ok := biosFuncFromAddr(funcAddr)
	if !ok || num > 0xFF {
		return nil
	}
	return Bios{Func: fn, Num: uint8(num), Link: link}
}

// Encode implements Instruction.
func (i Bios) Encode() []basic.Instruction {
	funcAddr := biosFuncAddrs[i.Func]
	if !i.Link {
		return []basic.Instruction{
			basic.AluImm{Dst: inst.T2, Lhs: inst.Zr, Imm: funcAddr, Kind: basic.AluImmAddUnsigned},
			basic.JmpReg{Reg: inst.T2},
			basic.AluImm{Dst: inst.T1, Lhs: inst.Zr, Imm: uint16(i.Num), Kind: basic.AluImmAddUnsigned},
		}
	}
	return []basic.Instruction{
		basic.AluImm{Dst: inst.T1, Lhs: inst.Zr, Imm: uint16(i.Num), Kind: basic.AluImmAddUnsigned},
		basic.AluImm{Dst: inst.T2, Lhs: inst.Zr, Imm: funcAddr, Kind: basic.AluImmAddUnsigned},
		basic.JmpReg{Reg: inst.T2, Link: true, LinkReg: inst.Ra},
		basic.ShiftImm{},
	}
}

// Size implements inst.Instruction.
func (i Bios) Size() int {
	if i.Link {
		return 16
	}
	return 12
}

// Mnemonic implements inst.Instruction.
func (i Bios) Mnemonic() string {
	var m string
	switch i.Func {
	case BiosA:
		m = "jba"
	case BiosB:
		m = "jbb"
	default:
		m = "jbc"
	}
	if i.Link {
		m = "jal" + m[1:]
	}
	return m
}

// Args implements inst.Instruction.
func (i Bios) Args() []inst.Arg {
	return []inst.Arg{inst.LitArg(int64(i.Num))}
}
