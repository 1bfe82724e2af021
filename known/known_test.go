package known

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psxtools/exedis/data"
	"github.com/psxtools/exedis/fn"
	"github.com/psxtools/exedis/pos"
)

func TestReadData(t *testing.T) {
	src := `
- name: StackTop
  desc: Top of the stack
  pos: 0x801ffff0
  ty: u32
- name: HeaderBuf
  pos: 0x8006dd00
  ty: "Arr<u8, 0x20>"
`
	entries, err := ReadData(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "StackTop", entries[0].Name)
	assert.Equal(t, "Top of the stack", entries[0].Desc)
	assert.Equal(t, pos.Pos(0x801FFFF0), entries[0].Pos)
	assert.Equal(t, data.Word{}, entries[0].Ty)
	assert.Equal(t, data.Known, entries[0].Kind)

	assert.Equal(t, data.Array{Elem: data.Byte{}, Len: 0x20}, entries[1].Ty)
}

func TestReadDataBadType(t *testing.T) {
	src := `
- name: Bad
  pos: 0x80010000
  ty: "u33"
`
	_, err := ReadData(strings.NewReader(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad")
}

func TestReadFuncs(t *testing.T) {
	src := `
- name: InitHeap
  signature: "void InitHeap(void* addr, u32 size)"
  start: 0x80010000
  end: 0x80010020
  labels:
    0x80010008: loop
  inline_comments:
    0x80010004: "save size"
`
	funcs, err := ReadFuncs(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, funcs, 1)

	f := funcs[0]
	assert.Equal(t, "InitHeap", f.Name)
	assert.Equal(t, pos.Pos(0x80010000), f.Start)
	assert.Equal(t, pos.Pos(0x80010020), f.End)
	assert.Equal(t, "loop", f.Labels[0x80010008])
	assert.Equal(t, "save size", f.InlineComments[0x80010004])
	assert.Equal(t, fn.Known, f.Kind)
}

func TestReadFuncsValidates(t *testing.T) {
	src := `
- name: Broken
  start: 0x80010000
  end: 0x80010010
  labels:
    0x90000000: oops
`
	_, err := ReadFuncs(strings.NewReader(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken")
}
