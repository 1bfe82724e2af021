package pseudo

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psxtools/exedis/inst"
	"github.com/psxtools/exedis/inst/basic"
	"github.com/psxtools/exedis/pos"
)

// words serializes basic instructions into the little-endian byte
// stream the window decodes from.
func words(insts ...basic.Instruction) []byte {
	b := make([]byte, 0, 4*len(insts))
	for _, in := range insts {
		b = binary.LittleEndian.AppendUint32(b, in.Encode())
	}
	return b
}

func TestLoadAddress(t *testing.T) {
	// lui $a0, 0x8001 / addiu $a0, $a0, -4 loads 0x8000FFFC: the
	// negative low half borrows one from the upper half.
	src := []basic.Instruction{
		basic.Lui{Dst: inst.A0, Value: 0x8001},
		basic.AluImm{Dst: inst.A0, Lhs: inst.A0, Imm: 0xFFFC, Kind: basic.AluImmAddUnsigned},
	}
	in := Decode(NewWindow(words(src...)))
	require.NotNil(t, in)

	la, ok := in.(LoadImm)
	require.True(t, ok)
	assert.Equal(t, LoadImmAddress, la.Kind)
	assert.Equal(t, inst.A0, la.Dst)
	assert.Equal(t, pos.Pos(0x8000FFFC), la.Target())
	assert.Equal(t, "la", la.Mnemonic())
	assert.Equal(t, 8, la.Size())

	assert.Equal(t, src, la.Encode())
}

func TestLoadImmForms(t *testing.T) {
	cases := []struct {
		name string
		src  []basic.Instruction
		want LoadImm
	}{
		{
			name: "word",
			src: []basic.Instruction{
				basic.Lui{Dst: inst.V0, Value: 0x1234},
				basic.AluImm{Dst: inst.V0, Lhs: inst.V0, Imm: 0x5678, Kind: basic.AluImmOr},
			},
			want: LoadImm{Dst: inst.V0, Value: 0x12345678, Kind: LoadImmWord},
		},
		{
			name: "half word signed",
			src: []basic.Instruction{
				basic.AluImm{Dst: inst.T0, Lhs: inst.Zr, Imm: 0xFFFF, Kind: basic.AluImmAddUnsigned},
			},
			want: LoadImm{Dst: inst.T0, Value: 0xFFFF, Kind: LoadImmHalfWordSigned},
		},
		{
			name: "half word unsigned",
			src: []basic.Instruction{
				basic.AluImm{Dst: inst.T0, Lhs: inst.Zr, Imm: 0xBEEF, Kind: basic.AluImmOr},
			},
			want: LoadImm{Dst: inst.T0, Value: 0xBEEF, Kind: LoadImmHalfWordUnsigned},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := Decode(NewWindow(words(c.src...)))
			require.NotNil(t, in)
			assert.Equal(t, c.want, in)
			assert.Equal(t, c.src, in.(Instruction).Encode())
			assert.Equal(t, 4*len(c.src), in.Size())
		})
	}
}

func TestLoadImmNeedsMatchingRegisters(t *testing.T) {
	// lui into $a0 but addiu into $a1 is not a load-immediate.
	w := NewWindow(words(
		basic.Lui{Dst: inst.A0, Value: 0x8001},
		basic.AluImm{Dst: inst.A1, Lhs: inst.A1, Imm: 0x10, Kind: basic.AluImmAddUnsigned},
	))
	_, ok := Decode(w).(LoadImm)
	assert.False(t, ok)
}

func TestAbsoluteLoadStore(t *testing.T) {
	loadSrc := []basic.Instruction{
		basic.Lui{Dst: inst.V0, Value: 0x8002},
		basic.Load{Value: inst.V0, Addr: inst.V0, Offset: 0x40, Kind: basic.LoadWord},
	}
	in := Decode(NewWindow(words(loadSrc...)))
	require.NotNil(t, in)
	load, ok := in.(Load)
	require.True(t, ok)
	assert.Equal(t, pos.Pos(0x80020040), load.Target)
	assert.Equal(t, "lw", load.Mnemonic())
	assert.Equal(t, loadSrc, load.Encode())

	storeSrc := []basic.Instruction{
		basic.Lui{Dst: inst.At, Value: 0x8002},
		basic.Store{Value: inst.S0, Addr: inst.At, Offset: -0x10, Kind: basic.StoreHalfWord},
	}
	in = Decode(NewWindow(words(storeSrc...)))
	require.NotNil(t, in)
	store, ok := in.(Store)
	require.True(t, ok)
	assert.Equal(t, pos.Pos(0x8001FFF0), store.Target)
	assert.Equal(t, "sh", store.Mnemonic())
	assert.Equal(t, storeSrc, store.Encode())
}

func TestStoreArrRun(t *testing.T) {
	src := []basic.Instruction{
		basic.Store{Value: inst.Ra, Addr: inst.Sp, Offset: 0x10, Kind: basic.StoreWord},
		basic.Store{Value: inst.S0, Addr: inst.Sp, Offset: 0x14, Kind: basic.StoreWord},
		basic.Store{Value: inst.S1, Addr: inst.Sp, Offset: 0x18, Kind: basic.StoreWord},
		// Gap: this one must not join the run.
		basic.Store{Value: inst.S2, Addr: inst.Sp, Offset: 0x20, Kind: basic.StoreWord},
	}
	in := Decode(NewWindow(words(src...)))
	require.NotNil(t, in)

	arr, ok := in.(StoreArr)
	require.True(t, ok)
	assert.Equal(t, int16(0x10), arr.Offset)
	assert.Equal(t, []inst.Register{inst.Ra, inst.S0, inst.S1}, arr.Regs)
	assert.Equal(t, 12, arr.Size())
	assert.Equal(t, "swarr", arr.Mnemonic())
	assert.Equal(t, src[:3], arr.Encode())
}

func TestArrNeedsTwo(t *testing.T) {
	// A lone sw off $sp stays a basic instruction.
	w := NewWindow(words(
		basic.Store{Value: inst.Ra, Addr: inst.Sp, Offset: 0x10, Kind: basic.StoreWord},
		basic.AluReg{Dst: inst.V0, Lhs: inst.A0, Rhs: inst.A1, Kind: basic.AluRegAddUnsigned},
	))
	assert.Nil(t, Decode(w))
}

func TestLoadArrStride(t *testing.T) {
	src := []basic.Instruction{
		basic.Load{Value: inst.S0, Addr: inst.Sp, Offset: 0x8, Kind: basic.LoadHalfWord},
		basic.Load{Value: inst.S1, Addr: inst.Sp, Offset: 0xA, Kind: basic.LoadHalfWord},
	}
	in := Decode(NewWindow(words(src...)))
	require.NotNil(t, in)

	arr, ok := in.(LoadArr)
	require.True(t, ok)
	assert.Equal(t, "lharr", arr.Mnemonic())
	assert.Equal(t, src, arr.Encode())
}

func TestBios(t *testing.T) {
	jump := []basic.Instruction{
		basic.AluImm{Dst: inst.T2, Lhs: inst.Zr, Imm: 0xB0, Kind: basic.AluImmAddUnsigned},
		basic.JmpReg{Reg: inst.T2},
		basic.AluImm{Dst: inst.T1, Lhs: inst.Zr, Imm: 0x3D, Kind: basic.AluImmAddUnsigned},
	}
	in := Decode(NewWindow(words(jump...)))
	require.NotNil(t, in)
	bios, ok := in.(Bios)
	require.True(t, ok)
	assert.Equal(t, Bios{Func: BiosB, Num: 0x3D}, bios)
	assert.Equal(t, "jbb", bios.Mnemonic())
	assert.Equal(t, 12, bios.Size())
	assert.Equal(t, jump, bios.Encode())

	link := []basic.Instruction{
		basic.AluImm{Dst: inst.T1, Lhs: inst.Zr, Imm: 0x13, Kind: basic.AluImmAddUnsigned},
		basic.AluImm{Dst: inst.T2, Lhs: inst.Zr, Imm: 0xA0, Kind: basic.AluImmAddUnsigned},
		basic.JmpReg{Reg: inst.T2, Link: true, LinkReg: inst.Ra},
		basic.ShiftImm{},
	}
	in = Decode(NewWindow(words(link...)))
	require.NotNil(t, in)
	bios, ok = in.(Bios)
	require.True(t, ok)
	assert.Equal(t, Bios{Func: BiosA, Num: 0x13, Link: true}, bios)
	assert.Equal(t, "jalba", bios.Mnemonic())
	assert.Equal(t, 16, bios.Size())
	assert.Equal(t, link, bios.Encode())
}

func TestBiosRejectsBadSentinel(t *testing.T) {
	// 0xD0 is not a bios function table.
	w := NewWindow(words(
		basic.AluImm{Dst: inst.T2, Lhs: inst.Zr, Imm: 0xD0, Kind: basic.AluImmAddUnsigned},
		basic.JmpReg{Reg: inst.T2},
		basic.AluImm{Dst: inst.T1, Lhs: inst.Zr, Imm: 0x3D, Kind: basic.AluImmAddUnsigned},
	))
	_, ok := Decode(w).(Bios)
	assert.False(t, ok)
}

func TestNopRun(t *testing.T) {
	w := NewWindow(words(
		basic.ShiftImm{},
		basic.ShiftImm{},
		basic.ShiftImm{},
		basic.AluReg{Dst: inst.V0, Lhs: inst.A0, Rhs: inst.A1, Kind: basic.AluRegAddUnsigned},
	))
	in := Decode(w)
	require.NotNil(t, in)
	nop, ok := in.(Nop)
	require.True(t, ok)
	assert.Equal(t, 3, nop.Len)
	assert.Equal(t, 12, nop.Size())
}

func TestSelfAssignAndMove(t *testing.T) {
	in := Decode(NewWindow(words(
		basic.AluImm{Dst: inst.Sp, Lhs: inst.Sp, Imm: 0xFFE0, Kind: basic.AluImmAddUnsigned},
	)))
	require.NotNil(t, in)
	alu, ok := in.(AluAssignImm)
	require.True(t, ok)
	assert.Equal(t, "addiu", alu.Mnemonic())
	assert.Equal(t, "-0x20", alu.Args()[1].String())

	in = Decode(NewWindow(words(
		basic.ShiftReg{Dst: inst.T0, Lhs: inst.T0, Rhs: inst.T1, Kind: basic.ShiftLeftLogical},
	)))
	require.NotNil(t, in)
	_, ok = in.(ShiftAssignReg)
	assert.True(t, ok)

	in = Decode(NewWindow(words(
		basic.AluReg{Dst: inst.A0, Lhs: inst.V0, Rhs: inst.Zr, Kind: basic.AluRegAddUnsigned},
	)))
	require.NotNil(t, in)
	move, ok := in.(MoveReg)
	require.True(t, ok)
	assert.Equal(t, MoveReg{Dst: inst.A0, Src: inst.V0}, move)
}

func TestTruncatedWindow(t *testing.T) {
	// A lui with nothing after it matches no recognizer.
	w := NewWindow(words(basic.Lui{Dst: inst.A0, Value: 0x8001}))
	assert.Nil(t, Decode(w))
}

func TestSplitAddr(t *testing.T) {
	for _, target := range []uint32{0, 0x8000FFFC, 0x80010000, 0xFFFFFFFF, 0x7FFF8000} {
		hi, lo := splitAddr(target)
		assert.Equalf(t, target, joinAddr(hi, lo), "target %#x", target)
	}
}
