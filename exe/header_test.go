package exe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psxtools/exedis/pos"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := &Header{
		Pc0:          0x80010000,
		Gp0:          0x8006DD80,
		Dest:         0x80010000,
		Size:         0x6800,
		MemfillStart: 0,
		MemfillSize:  0,
		SpBase:       0x801FFF00,
		SpOffset:     0,
		Marker:       "Sony Computer Entertainment Inc. for North America area",
	}

	b := h.Bytes()
	require.Len(t, b, HeaderSize)

	parsed, err := ParseHeader(b)
	require.NoError(t, err)
	assert.Equal(t, h, parsed)
}

func TestHeaderBadMagic(t *testing.T) {
	b := (&Header{Size: 0x800}).Bytes()
	b[0] = 'X'

	_, err := ParseHeader(b)
	var magicErr *BadMagicError
	require.ErrorAs(t, err, &magicErr)
}

func TestHeaderBadSize(t *testing.T) {
	b := (&Header{Size: 0x800}).Bytes()
	b[0x1C] = 0x23
	b[0x1D] = 0x01

	_, err := ParseHeader(b)
	var sizeErr *BadSizeError
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, uint32(0x123), sizeErr.Size)
}

func TestHeaderTooShort(t *testing.T) {
	_, err := ParseHeader(make([]byte, 0x100))
	require.Error(t, err)
}

func TestHeaderMarkerStopsAtNull(t *testing.T) {
	h := &Header{Dest: pos.Pos(0x80010000), Marker: "marker"}
	parsed, err := ParseHeader(h.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "marker", parsed.Marker)
}
