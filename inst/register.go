package inst

import "fmt"

// Register is one of the 32 architectural CPU registers.
type Register uint8

// Register indexes, in encoding order.
const (
	Zr Register = iota // $zr, always zero
	At                 // $at, assembler temporary
	V0                 // $v0, return value
	V1
	A0 // $a0, argument
	A1
	A2
	A3
	T0 // $t0, temporary
	T1
	T2
	T3
	T4
	T5
	T6
	T7
	S0 // $s0, saved
	S1
	S2
	S3
	S4
	S5
	S6
	S7
	T8
	T9
	K0 // $k0, kernel
	K1
	Gp // $gp, global pointer
	Sp // $sp, stack pointer
	Fp // $fp, frame pointer
	Ra // $ra, return address
)

// NumRegisters is the size of the architectural register file.
const NumRegisters = 32

var registerNames = [NumRegisters]string{
	"$zr", "$at", "$v0", "$v1", "$a0", "$a1", "$a2", "$a3",
	"$t0", "$t1", "$t2", "$t3", "$t4", "$t5", "$t6", "$t7",
	"$s0", "$s1", "$s2", "$s3", "$s4", "$s5", "$s6", "$s7",
	"$t8", "$t9", "$k0", "$k1", "$gp", "$sp", "$fp", "$ra",
}

// NewRegister converts an encoded 5-bit register field into a Register.
// Returns false if idx is out of range.
func NewRegister(idx uint32) (Register, bool) {
	if idx >= NumRegisters {
		return 0, false
	}
	return Register(idx), true
}

// RegisterFromName parses a register name such as "$sp".
func RegisterFromName(name string) (Register, bool) {
	for i, n := range registerNames {
		if n == name {
			return Register(i), true
		}
	}
	return 0, false
}

// Idx returns the encoding index of the register.
func (r Register) Idx() uint32 {
	return uint32(r)
}

func (r Register) String() string {
	if r >= NumRegisters {
		return fmt.Sprintf("$invalid%d", uint8(r))
	}
	return registerNames[r]
}
