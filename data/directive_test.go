package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDirectiveAlignmentFirst(t *testing.T) {
	b := []byte{0x11, 0x22, 0x33, 0x44, 0x55}

	// Odd position only ever reads a byte.
	d, ok := DecodeDirective(0x1001, b)
	require.True(t, ok)
	assert.Equal(t, Directive{Kind: Db, Value: 0x11}, d)

	// Half-word aligned but not word aligned reads a half-word.
	d, ok = DecodeDirective(0x1002, b)
	require.True(t, ok)
	assert.Equal(t, Directive{Kind: Dh, Value: 0x2211}, d)

	// Word aligned, no string: a full word, little-endian.
	d, ok = DecodeDirective(0x1000, b)
	require.True(t, ok)
	assert.Equal(t, Directive{Kind: Dw, Value: 0x44332211}, d)
}

func TestDecodeDirectiveShortTail(t *testing.T) {
	d, ok := DecodeDirective(0x1000, []byte{0x11, 0x22})
	require.True(t, ok)
	assert.Equal(t, Directive{Kind: Dh, Value: 0x2211}, d)

	d, ok = DecodeDirective(0x1000, []byte{0x11})
	require.True(t, ok)
	assert.Equal(t, Directive{Kind: Db, Value: 0x11}, d)

	_, ok = DecodeDirective(0x1000, nil)
	assert.False(t, ok)
}

func TestDecodeDirectiveAscii(t *testing.T) {
	// "Hello" plus nulls out to the word boundary.
	b := []byte{'H', 'e', 'l', 'l', 'o', 0, 0, 0}
	d, ok := DecodeDirective(0x1000, b)
	require.True(t, ok)
	assert.Equal(t, Directive{Kind: Ascii, Str: "Hello"}, d)
	assert.Equal(t, 8, d.Size())
	assert.Equal(t, b, d.Bytes())

	// A null followed by non-null bytes in the same word group is
	// not a string terminator.
	d, ok = DecodeDirective(0x1000, []byte{'H', 'i', 0, 'x', 0, 0, 0, 0})
	require.True(t, ok)
	assert.Equal(t, Dw, d.Kind)

	// A string of exactly one word still needs its own null word.
	d, ok = DecodeDirective(0x1000, []byte{'f', 'o', 'u', 'r', 0, 0, 0, 0})
	require.True(t, ok)
	assert.Equal(t, Directive{Kind: Ascii, Str: "four"}, d)

	// All nulls is not a string.
	d, ok = DecodeDirective(0x1000, []byte{0, 0, 0, 0})
	require.True(t, ok)
	assert.Equal(t, Directive{Kind: Dw, Value: 0}, d)

	// Non-ascii bytes abort string detection.
	d, ok = DecodeDirective(0x1000, []byte{'H', 0x80, 0, 0})
	require.True(t, ok)
	assert.Equal(t, Dw, d.Kind)
}

func TestDecodeDirectiveWithType(t *testing.T) {
	b := []byte{0x11, 0x22, 0x33, 0x44}

	d, err := DecodeDirectiveWithType(0x1000, b, Word{}, 0x1000)
	require.NoError(t, err)
	assert.Equal(t, Directive{Kind: Dw, Value: 0x44332211}, d)

	// Non-array data cannot be read at an offset.
	_, err = DecodeDirectiveWithType(0x1002, b[2:], Word{}, 0x1000)
	assert.ErrorIs(t, err, ErrOffsetRead)

	// Misaligned data is rejected outright.
	_, err = DecodeDirectiveWithType(0x1001, b, Word{}, 0x1001)
	assert.ErrorIs(t, err, ErrNotAligned)

	// Not enough bytes left.
	_, err = DecodeDirectiveWithType(0x1000, b[:2], Word{}, 0x1000)
	assert.ErrorIs(t, err, ErrMissingBytes)
}

func TestDecodeDirectiveWithTypeArray(t *testing.T) {
	b := []byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88}
	arr := Array{Elem: HalfWord{}, Len: 4}

	// Element reads index into the array.
	d, err := DecodeDirectiveWithType(0x1004, b[4:], arr, 0x1000)
	require.NoError(t, err)
	assert.Equal(t, Directive{Kind: Dh, Value: 0x6655}, d)

	// A read inside an element, off its start, is still an offset
	// error.
	_, err = DecodeDirectiveWithType(0x1001, b[1:], Array{Elem: Word{}, Len: 2}, 0x1000)
	assert.ErrorIs(t, err, ErrOffsetRead)
}

func TestDecodeDirectiveWithTypeAscii(t *testing.T) {
	ty := AsciiStr{Len: 5}

	d, err := DecodeDirectiveWithType(0x1000, []byte("Hello\x00\x00\x00"), ty, 0x1000)
	require.NoError(t, err)
	assert.Equal(t, Directive{Kind: Ascii, Str: "Hello"}, d)

	_, err = DecodeDirectiveWithType(0x1000, []byte("He\x00lo\x00\x00\x00"), ty, 0x1000)
	assert.ErrorIs(t, err, ErrStrEmbeddedNull)

	_, err = DecodeDirectiveWithType(0x1000, []byte("Hell\xff\x00\x00\x00"), ty, 0x1000)
	assert.ErrorIs(t, err, ErrStrInvalidChars)

	_, err = DecodeDirectiveWithType(0x1000, []byte("Helloxxx"), ty, 0x1000)
	assert.ErrorIs(t, err, ErrStrNoTerminator)

	_, err = DecodeDirectiveWithType(0x1000, []byte("Hel"), ty, 0x1000)
	assert.ErrorIs(t, err, ErrMissingBytes)
}

func TestDecodeDirectiveWithTypeMarker(t *testing.T) {
	// Markers fall back to the plain directive decode.
	d, err := DecodeDirectiveWithType(0x1002, []byte{0x11, 0x22}, Marker{Len: 0x10}, 0x1000)
	require.NoError(t, err)
	assert.Equal(t, Directive{Kind: Dh, Value: 0x2211}, d)

	_, err = DecodeDirectiveWithType(0x1002, nil, Marker{Len: 0x10}, 0x1000)
	assert.ErrorIs(t, err, ErrMissingBytes)
}

func TestDirectiveInstruction(t *testing.T) {
	dw := Directive{Kind: Dw, Value: 0x80010000}
	assert.Equal(t, "dw", dw.Mnemonic())
	assert.Equal(t, 4, dw.Size())
	assert.Equal(t, "0x80010000", dw.Args()[0].String())

	db := Directive{Kind: Db, Value: 0x7F}
	assert.Equal(t, 1, db.Size())
	assert.Equal(t, "0x7f", db.Args()[0].String())
}
