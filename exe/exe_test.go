package exe

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psxtools/exedis/data"
	"github.com/psxtools/exedis/fn"
	"github.com/psxtools/exedis/inst"
	"github.com/psxtools/exedis/inst/basic"
	"github.com/psxtools/exedis/pos"
)

const dest = pos.Pos(0x80010000)

// words serializes basic instructions into the little-endian body
// stream.
func words(insts ...basic.Instruction) []byte {
	b := make([]byte, 0, 4*len(insts))
	for _, in := range insts {
		b = binary.LittleEndian.AppendUint32(b, in.Encode())
	}
	return b
}

// buildExe wraps body in a header and loads it, padding the body with
// zeros up to the header-size multiple the format requires.
func buildExe(t *testing.T, body []byte, opts Options) *Exe {
	t.Helper()

	size := max((len(body)+HeaderSize-1)/HeaderSize*HeaderSize, HeaderSize)
	h := &Header{Pc0: dest, Dest: dest, Size: uint32(size), Marker: "test"}

	raw := append(h.Bytes(), body...)
	raw = append(raw, make([]byte, size-len(body))...)

	e, err := New(bytes.NewReader(raw), opts)
	require.NoError(t, err)
	return e
}

func jalTo(target pos.Pos) basic.JmpImm {
	return basic.JmpImm{Imm: uint32(target) / 4 & 0x03FFFFFF, Link: true}
}

func TestNewRejectsTruncatedBody(t *testing.T) {
	h := &Header{Dest: dest, Size: 0x800}
	raw := append(h.Bytes(), make([]byte, 0x100)...)

	_, err := New(bytes.NewReader(raw), Options{})
	require.Error(t, err)
}

func TestDecodeIterYieldsInstructions(t *testing.T) {
	body := words(
		basic.AluImm{Dst: inst.Sp, Lhs: inst.Sp, Imm: 0xFFE0, Kind: basic.AluImmAddUnsigned},
		basic.JmpReg{Reg: inst.Ra},
	)
	e := buildExe(t, body, Options{})

	it := e.DecodeIterFrom(dest, dest.Add(8))

	p, i, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, dest, p)
	assert.Equal(t, "addiu", i.Mnemonic())

	p, i, ok = it.Next()
	require.True(t, ok)
	assert.Equal(t, dest.Add(4), p)
	assert.Equal(t, "jr", i.Mnemonic())

	_, _, ok = it.Next()
	assert.False(t, ok)
}

func TestDecodeInsideDataRegion(t *testing.T) {
	body := append(words(basic.ShiftImm{}), binary.LittleEndian.AppendUint32(nil, 0x12345678)...)
	e := buildExe(t, body, Options{
		KnownData: []*data.Data{{Name: "value", Pos: dest.Add(4), Ty: data.Word{}}},
	})

	i, err := e.Decode(dest.Add(4), nil)
	require.NoError(t, err)

	d, ok := i.(data.Directive)
	require.True(t, ok)
	assert.Equal(t, data.Dw, d.Kind)
	assert.Equal(t, uint32(0x12345678), d.Value)
}

func TestDecodeIterRecoversFromBadData(t *testing.T) {
	// The claimed string bytes are not ascii, so the typed decode
	// fails and the iterator falls back to a plain directive.
	body := []byte{0x80, 0x80, 0x80, 0x80}
	e := buildExe(t, body, Options{
		KnownData: []*data.Data{{Name: "broken", Pos: dest, Ty: data.AsciiStr{Len: 4}}},
	})

	it := e.DecodeIterFrom(dest, dest.Add(4))
	_, i, ok := it.Next()
	require.True(t, ok)

	d, ok := i.(data.Directive)
	require.True(t, ok)
	assert.Equal(t, data.Dw, d.Kind)
	assert.Equal(t, uint32(0x80808080), d.Value)
}

func TestPseudoSuppressedInDelaySlot(t *testing.T) {
	// The lui/addiu pair after the jump would fuse into `la`, but the
	// first word executes in the delay slot and must stay separate.
	body := words(
		basic.JmpReg{Reg: inst.Ra},
		basic.Lui{Dst: inst.A0, Value: 0x8001},
		basic.AluImm{Dst: inst.A0, Lhs: inst.A0, Imm: 0x10, Kind: basic.AluImmAddUnsigned},
	)
	e := buildExe(t, body, Options{})

	it := e.DecodeIterFrom(dest, dest.Add(12))

	_, i, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, "jr", i.Mnemonic())

	_, i, ok = it.Next()
	require.True(t, ok)
	assert.Equal(t, "lui", i.Mnemonic())
}

func TestPseudoSuppressedAcrossLabel(t *testing.T) {
	body := words(
		basic.ShiftImm{},
		basic.Lui{Dst: inst.A0, Value: 0x8001},
		basic.AluImm{Dst: inst.A0, Lhs: inst.A0, Imm: 0x10, Kind: basic.AluImmAddUnsigned},
		basic.JmpReg{Reg: inst.Ra},
	)
	e := buildExe(t, body, Options{
		KnownFuncs: []*fn.Func{{
			Name:   "main",
			Start:  dest,
			End:    dest.Add(0x10),
			Labels: map[pos.Pos]string{dest.Add(8): "0"},
		}},
	})

	it := e.DecodeIterFrom(dest.Add(4), dest.Add(12))
	_, i, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, "lui", i.Mnemonic())
}

func TestSearchFuncsFromCallTargets(t *testing.T) {
	body := words(
		jalTo(dest.Add(0x10)),
		basic.ShiftImm{},
		basic.JmpReg{Reg: inst.Ra},
		basic.ShiftImm{},
		basic.AluImm{Dst: inst.V0, Lhs: inst.Zr, Imm: 1, Kind: basic.AluImmAddUnsigned},
		basic.JmpReg{Reg: inst.Ra},
		basic.ShiftImm{},
	)
	e := buildExe(t, body, Options{})

	f := e.FuncTable().StartingAt(dest.Add(0x10))
	require.NotNil(t, f)
	assert.Equal(t, "func_0", f.Name)
	assert.Equal(t, fn.Heuristic, f.Kind)
	assert.Equal(t, dest.Add(0x1C), f.End)
}

func TestSearchDataFromLoadAddress(t *testing.T) {
	body := words(
		basic.Lui{Dst: inst.A0, Value: 0x8001},
		basic.AluImm{Dst: inst.A0, Lhs: inst.A0, Imm: 0x10, Kind: basic.AluImmAddUnsigned},
		basic.JmpReg{Reg: inst.Ra},
		basic.ShiftImm{},
	)
	body = append(body, "hello\x00\x00\x00"...)
	e := buildExe(t, body, Options{})

	d := e.DataTable().ByName("string_0")
	require.NotNil(t, d)
	assert.Equal(t, dest.Add(0x10), d.Pos)
	assert.Equal(t, data.AsciiStr{Len: 5}, d.Ty)
	assert.Equal(t, data.Heuristic, d.Kind)
}

func TestSegmentsCoverRegion(t *testing.T) {
	e := buildExe(t, nil, Options{
		KnownData: []*data.Data{{Name: "value", Pos: dest.Add(0x30), Ty: data.Word{}}},
		KnownFuncs: []*fn.Func{{
			Name:  "main",
			Start: dest.Add(0x10),
			End:   dest.Add(0x20),
		}},
	})

	var kinds []SegmentKind
	cur := dest
	iter := e.Segments()
	for seg := iter.Next(); seg != nil; seg = iter.Next() {
		assert.Equal(t, cur, seg.Start)
		assert.Greater(t, seg.End, seg.Start)
		kinds = append(kinds, seg.Kind)
		cur = seg.End
	}

	_, end := e.InstsRange()
	assert.Equal(t, end, cur)
	assert.Equal(t, []SegmentKind{
		SegmentUnknown, SegmentFunc, SegmentUnknown, SegmentData, SegmentUnknown,
	}, kinds)
}

func TestSegmentsEmptyTables(t *testing.T) {
	e := buildExe(t, nil, Options{})

	iter := e.Segments()
	seg := iter.Next()
	require.NotNil(t, seg)

	start, end := e.InstsRange()
	assert.Equal(t, SegmentUnknown, seg.Kind)
	assert.Equal(t, start, seg.Start)
	assert.Equal(t, end, seg.End)
	assert.Nil(t, iter.Next())
}

func TestSegmentsNestedData(t *testing.T) {
	e := buildExe(t, nil, Options{
		KnownData: []*data.Data{
			{Name: "block", Pos: dest, Ty: data.Array{Elem: data.Word{}, Len: 4}},
			{Name: "block_field", Pos: dest.Add(4), Ty: data.Word{}},
		},
	})

	iter := e.Segments()

	seg := iter.Next()
	require.NotNil(t, seg)
	assert.Equal(t, SegmentData, seg.Kind)
	assert.Equal(t, "block", seg.Data.Name)
	assert.Equal(t, dest.Add(4), seg.End)

	seg = iter.Next()
	require.NotNil(t, seg)
	assert.Equal(t, SegmentData, seg.Kind)
	assert.Equal(t, "block_field", seg.Data.Name)
	assert.Equal(t, dest.Add(8), seg.End)

	seg = iter.Next()
	require.NotNil(t, seg)
	assert.Equal(t, SegmentUnknown, seg.Kind)
}

func TestSegmentInstsScoped(t *testing.T) {
	e := buildExe(t, nil, Options{
		KnownFuncs: []*fn.Func{{Name: "main", Start: dest.Add(0x10), End: dest.Add(0x20)}},
	})

	iter := e.Segments()
	iter.Next()
	seg := iter.Next()
	require.NotNil(t, seg)
	require.Equal(t, SegmentFunc, seg.Kind)

	insts := seg.Insts()
	for p, i, ok := insts.Next(); ok; p, i, ok = insts.Next() {
		assert.GreaterOrEqual(t, p, seg.Start)
		assert.LessOrEqual(t, p.Add(uint32(i.Size())), seg.End)
	}
}
