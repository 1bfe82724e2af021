package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddSigned(t *testing.T) {
	// Branch and immediate math sign-extends 16-bit operands.
	p := Pos(0x80010000)
	assert.Equal(t, Pos(0x8000FFE0), p.AddSigned(int32(int16(-0x20))))
	assert.Equal(t, Pos(0x80010020), p.AddSigned(0x20))

	// Wrap around zero.
	assert.Equal(t, Pos(0xFFFFFFFC), Pos(0).AddSigned(-4))
}

func TestAddWraps(t *testing.T) {
	assert.Equal(t, Pos(2), Pos(0xFFFFFFFF).Add(3))
}

func TestSub(t *testing.T) {
	// Offsets larger than int32 range must not overflow.
	assert.Equal(t, int64(0), Pos(0x1000).Sub(0x1000))
	assert.Equal(t, int64(-0x20), Pos(0x8000FFE0).Sub(0x80010000))
	assert.Equal(t, int64(0x10000), Pos(0x80010000).Sub(0x80000000))
}

func TestOffsetFrom(t *testing.T) {
	off, ok := Pos(0x80010010).OffsetFrom(0x80010000)
	assert.True(t, ok)
	assert.Equal(t, 0x10, off)

	_, ok = Pos(0x8000FFF0).OffsetFrom(0x80010000)
	assert.False(t, ok)
}

func TestAlignment(t *testing.T) {
	assert.True(t, Pos(0x80010000).WordAligned())
	assert.False(t, Pos(0x80010002).WordAligned())
	assert.True(t, Pos(0x80010002).HalfWordAligned())
	assert.False(t, Pos(0x80010001).HalfWordAligned())
	assert.True(t, Pos(0x80010001).AlignedTo(1))
	assert.False(t, Pos(0x80010001).AlignedTo(0))
}

func TestString(t *testing.T) {
	assert.Equal(t, "0x80010000", Pos(0x80010000).String())
}
