package data

import (
	"encoding/binary"
	"errors"

	"github.com/psxtools/exedis/inst"
	"github.com/psxtools/exedis/pos"
)

// DirectiveKind discriminates the directive forms.
type DirectiveKind int

const (
	// Dw is a literal 32-bit word.
	Dw DirectiveKind = iota
	// Dh is a literal 16-bit half-word.
	Dh
	// Db is a literal byte.
	Db
	// Ascii is a null-terminated string padded to a word boundary.
	Ascii
)

// Directive is a non-instruction literal occupying otherwise-unclaimed
// bytes. Value holds the numeric forms, Str the ascii form.
type Directive struct {
	Kind  DirectiveKind
	Value uint32
	Str   string
}

// Typed errors for decoding directives inside a known data region.
var (
	ErrMissingBytes    = errors.New("missing bytes")
	ErrNotAligned      = errors.New("data is not aligned")
	ErrOffsetRead      = errors.New("cannot read non-array data at an offset")
	ErrStrInvalidChars = errors.New("string has non-ascii characters")
	ErrStrEmbeddedNull = errors.New("string has embedded nulls")
	ErrStrNoTerminator = errors.New("string missing null terminator padding")
)

// DecodeDirective decodes the best-fitting directive at p. Alignment
// decides first: an unaligned position only ever reads the narrower
// forms. At a word-aligned position an ascii string is preferred, then
// the widest numeric form that still fits. Returns false only when b
// is empty.
func DecodeDirective(p pos.Pos, b []byte) (Directive, bool) {
	if len(b) == 0 {
		return Directive{}, false
	}
	if !p.HalfWordAligned() {
		return Directive{Kind: Db, Value: uint32(b[0])}, true
	}
	if !p.WordAligned() {
		if len(b) < 2 {
			return Directive{}, false
		}
		return Directive{Kind: Dh, Value: uint32(binary.LittleEndian.Uint16(b))}, true
	}
	if s, ok := readAsciiUntilNull(b); ok {
		return Directive{Kind: Ascii, Str: s}, true
	}
	if len(b) >= 4 {
		return Directive{Kind: Dw, Value: binary.LittleEndian.Uint32(b)}, true
	}
	if len(b) >= 2 {
		return Directive{Kind: Dh, Value: uint32(binary.LittleEndian.Uint16(b))}, true
	}
	return Directive{Kind: Db, Value: uint32(b[0])}, true
}

// DecodeDirectiveWithType decodes the directive at p knowing it lies
// inside a region of type ty starting at dataPos. Non-array data is
// only readable as a whole from its start; arrays recurse into the
// element the position indexes.
func DecodeDirectiveWithType(p pos.Pos, b []byte, ty Type, dataPos pos.Pos) (Directive, error) {
	if !dataPos.AlignedTo(ty.Align()) {
		return Directive{}, ErrNotAligned
	}
	switch t := ty.(type) {
	case Array:
		if p != dataPos {
			off, ok := p.OffsetFrom(dataPos)
			if !ok {
				return Directive{}, ErrOffsetRead
			}
			dataPos = dataPos.Add(uint32(off / t.Elem.Size() * t.Elem.Size()))
		}
		return DecodeDirectiveWithType(p, b, t.Elem, dataPos)
	case Marker:
		d, ok := DecodeDirective(p, b)
		if !ok {
			return Directive{}, ErrMissingBytes
		}
		return d, nil
	}

	if p != dataPos {
		return Directive{}, ErrOffsetRead
	}

	switch t := ty.(type) {
	case AsciiStr:
		if len(b) < t.Len {
			return Directive{}, ErrMissingBytes
		}
		s := b[:t.Len]
		for _, c := range s {
			if c >= 0x80 {
				return Directive{}, ErrStrInvalidChars
			}
			if c == 0 {
				return Directive{}, ErrStrEmbeddedNull
			}
		}
		nulls := 4 - t.Len%4
		if len(b) < t.Len+nulls {
			return Directive{}, ErrStrNoTerminator
		}
		for _, c := range b[t.Len : t.Len+nulls] {
			if c != 0 {
				return Directive{}, ErrStrNoTerminator
			}
		}
		return Directive{Kind: Ascii, Str: string(s)}, nil
	case Word:
		if len(b) < 4 {
			return Directive{}, ErrMissingBytes
		}
		return Directive{Kind: Dw, Value: binary.LittleEndian.Uint32(b)}, nil
	case HalfWord:
		if len(b) < 2 {
			return Directive{}, ErrMissingBytes
		}
		return Directive{Kind: Dh, Value: uint32(binary.LittleEndian.Uint16(b))}, nil
	default: // Byte
		return Directive{Kind: Db, Value: uint32(b[0])}, nil
	}
}

// readAsciiUntilNull scans word groups for a non-empty ascii string
// terminated by nulls. After the first null every remaining byte of
// that word group must also be null, so the string reads back as one
// word-aligned block.
func readAsciiUntilNull(b []byte) (string, bool) {
	for start := 0; start+4 <= len(b); start += 4 {
		word := b[start : start+4]
		for _, c := range word {
			if c >= 0x80 {
				return "", false
			}
		}
		null := 0
		for null < 4 && word[null] != 0 {
			null++
		}
		if null == 4 {
			continue
		}
		for _, c := range word[null:] {
			if c != 0 {
				return "", false
			}
		}
		n := start + null
		if n == 0 {
			return "", false
		}
		return string(b[:n]), true
	}
	return "", false
}

// Bytes returns the directive's byte encoding, including the null
// padding of ascii strings.
func (d Directive) Bytes() []byte {
	switch d.Kind {
	case Dw:
		return binary.LittleEndian.AppendUint32(nil, d.Value)
	case Dh:
		return binary.LittleEndian.AppendUint16(nil, uint16(d.Value))
	case Db:
		return []byte{byte(d.Value)}
	default:
		b := append([]byte(nil), d.Str...)
		return append(b, make([]byte, 4-len(d.Str)%4)...)
	}
}

// Size implements inst.Instruction.
func (d Directive) Size() int {
	switch d.Kind {
	case Dw:
		return 4
	case Dh:
		return 2
	case Db:
		return 1
	default:
		return len(d.Str) + (4 - len(d.Str)%4)
	}
}

// Mnemonic implements inst.Instruction.
func (d Directive) Mnemonic() string {
	switch d.Kind {
	case Dw:
		return "dw"
	case Dh:
		return "dh"
	case Db:
		return "db"
	default:
		return ".ascii"
	}
}

// Args implements inst.Instruction. Word values render as targets so
// the caller can resolve them to labels.
func (d Directive) Args() []inst.Arg {
	switch d.Kind {
	case Dw:
		return []inst.Arg{inst.TargetArg(pos.Pos(d.Value))}
	case Ascii:
		return []inst.Arg{inst.StrArg(d.Str)}
	default:
		return []inst.Arg{inst.LitArg(int64(d.Value))}
	}
}
