// Package inst defines the common instruction model shared by the basic
// instruction codec, the pseudo-instruction recognizer and directives:
// the register file, the closed set of renderable argument kinds, and
// the Instruction interface all of them implement.
package inst

import (
	"fmt"
	"strconv"

	"github.com/psxtools/exedis/pos"
)

// Instruction is any decoded element of the listing: a basic
// instruction, a pseudo-instruction or a data directive.
type Instruction interface {
	// Size returns the byte size this instruction occupies.
	Size() int

	// Mnemonic returns the display mnemonic.
	Mnemonic() string

	// Args returns the display arguments, in order.
	Args() []Arg
}

// ArgKind discriminates the closed set of argument kinds an instruction
// can expose. Rendering beyond these kinds is the caller's concern.
type ArgKind int

const (
	// ArgRegister is a plain register argument.
	ArgRegister ArgKind = iota

	// ArgRegisterOffset is a register with a byte offset, e.g. `-0x20($sp)`.
	ArgRegisterOffset

	// ArgRegisterList is a list of registers, used by the register-block
	// load/store pseudo-instructions.
	ArgRegisterList

	// ArgLiteral is a plain numeric literal.
	ArgLiteral

	// ArgTarget is a position the caller may resolve to a symbolic label.
	ArgTarget

	// ArgString is a string literal from an ascii directive.
	ArgString
)

// Arg is a single displayable instruction argument.
type Arg struct {
	Kind   ArgKind
	Reg    Register
	Regs   []Register
	Offset int64
	Value  int64
	Target pos.Pos
	Str    string

	// Signed selects signed-hex display for literals.
	Signed bool
}

// RegArg builds a register argument.
func RegArg(r Register) Arg {
	return Arg{Kind: ArgRegister, Reg: r}
}

// RegOffArg builds a register+offset argument.
func RegOffArg(r Register, offset int64) Arg {
	return Arg{Kind: ArgRegisterOffset, Reg: r, Offset: offset}
}

// RegListArg builds a register list argument.
func RegListArg(regs []Register) Arg {
	return Arg{Kind: ArgRegisterList, Regs: regs}
}

// LitArg builds an unsigned literal argument.
func LitArg(v int64) Arg {
	return Arg{Kind: ArgLiteral, Value: v}
}

// SignedArg builds a signed literal argument.
func SignedArg(v int64) Arg {
	return Arg{Kind: ArgLiteral, Value: v, Signed: true}
}

// TargetArg builds a jump/reference target argument.
func TargetArg(p pos.Pos) Arg {
	return Arg{Kind: ArgTarget, Target: p}
}

// StrArg builds a string literal argument.
func StrArg(s string) Arg {
	return Arg{Kind: ArgString, Str: s}
}

// String renders the argument without label resolution. Callers wanting
// symbolic targets should render ArgTarget themselves.
func (a Arg) String() string {
	switch a.Kind {
	case ArgRegister:
		return a.Reg.String()
	case ArgRegisterOffset:
		if a.Offset == 0 {
			return a.Reg.String()
		}
		return fmt.Sprintf("%s(%s)", SignedHex(a.Offset), a.Reg)
	case ArgRegisterList:
		s := "{"
		for i, r := range a.Regs {
			if i > 0 {
				s += ", "
			}
			s += r.String()
		}
		return s + "}"
	case ArgLiteral:
		if a.Signed {
			return SignedHex(a.Value)
		}
		return fmt.Sprintf("%#x", uint64(a.Value))
	case ArgTarget:
		return a.Target.String()
	case ArgString:
		return strconv.Quote(a.Str)
	default:
		return "<unknown>"
	}
}

// SignedHex formats a value as hex with an explicit sign, e.g. -0x20.
func SignedHex(v int64) string {
	if v < 0 {
		return fmt.Sprintf("-%#x", uint64(-v))
	}
	return fmt.Sprintf("%#x", uint64(v))
}
