// Package exe reads PS-X EXE executables and drives the disassembly:
// it parses the header, merges known and heuristically discovered data
// and function tables, decodes instructions position by position and
// slices the loaded region into labeled segments.
package exe

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/psxtools/exedis/pos"
)

// HeaderSize is the fixed on-disk size of the executable header.
const HeaderSize = 0x800

// magic identifies the executable format.
var magic = [8]byte{'P', 'S', '-', 'X', ' ', 'E', 'X', 'E'}

// Header is the executable header. All fields are little-endian on
// disk. Dest is the load address of the body that follows the header.
type Header struct {
	// Pc0 is the initial program counter.
	Pc0 pos.Pos
	// Gp0 is the initial global pointer.
	Gp0 uint32
	// Dest is the load address of the executable body.
	Dest pos.Pos
	// Size is the body size in bytes, always a multiple of HeaderSize.
	Size uint32
	// MemfillStart and MemfillSize describe the region zeroed before
	// the body is loaded.
	MemfillStart uint32
	MemfillSize  uint32
	// SpBase and SpOffset form the initial stack pointer.
	SpBase   uint32
	SpOffset uint32
	// Marker is the region marker string at the tail of the header.
	Marker string
}

// Typed header errors.
type (
	// BadMagicError reports a header that does not begin with the
	// PS-X EXE magic.
	BadMagicError struct {
		Magic [8]byte
	}

	// BadSizeError reports a body size that is not a multiple of the
	// header size.
	BadSizeError struct {
		Size uint32
	}
)

func (e *BadMagicError) Error() string {
	return fmt.Sprintf("invalid magic %q", e.Magic[:])
}

func (e *BadSizeError) Error() string {
	return fmt.Sprintf("size %#x is not a multiple of %#x", e.Size, uint32(HeaderSize))
}

// ParseHeader decodes the header from its on-disk form.
func ParseHeader(b []byte) (*Header, error) {
	if len(b) < HeaderSize {
		return nil, fmt.Errorf("header needs %#x bytes, have %#x", HeaderSize, len(b))
	}

	var m [8]byte
	copy(m[:], b)
	if m != magic {
		return nil, &BadMagicError{Magic: m}
	}

	h := &Header{
		Pc0:          pos.Pos(binary.LittleEndian.Uint32(b[0x10:])),
		Gp0:          binary.LittleEndian.Uint32(b[0x14:]),
		Dest:         pos.Pos(binary.LittleEndian.Uint32(b[0x18:])),
		Size:         binary.LittleEndian.Uint32(b[0x1C:]),
		MemfillStart: binary.LittleEndian.Uint32(b[0x28:]),
		MemfillSize:  binary.LittleEndian.Uint32(b[0x2C:]),
		SpBase:       binary.LittleEndian.Uint32(b[0x30:]),
		SpOffset:     binary.LittleEndian.Uint32(b[0x34:]),
	}
	if h.Size%HeaderSize != 0 {
		return nil, &BadSizeError{Size: h.Size}
	}

	marker := b[0x4C:HeaderSize]
	if i := bytes.IndexByte(marker, 0); i >= 0 {
		marker = marker[:i]
	}
	h.Marker = string(marker)

	return h, nil
}

// Bytes returns the header's on-disk form, HeaderSize bytes long.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	copy(b, magic[:])
	binary.LittleEndian.PutUint32(b[0x10:], uint32(h.Pc0))
	binary.LittleEndian.PutUint32(b[0x14:], h.Gp0)
	binary.LittleEndian.PutUint32(b[0x18:], uint32(h.Dest))
	binary.LittleEndian.PutUint32(b[0x1C:], h.Size)
	binary.LittleEndian.PutUint32(b[0x28:], h.MemfillStart)
	binary.LittleEndian.PutUint32(b[0x2C:], h.MemfillSize)
	binary.LittleEndian.PutUint32(b[0x30:], h.SpBase)
	binary.LittleEndian.PutUint32(b[0x34:], h.SpOffset)
	copy(b[0x4C:HeaderSize-1], h.Marker)
	return b
}
