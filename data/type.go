package data

import (
	"fmt"
	"strconv"
	"strings"
)

// Type is the shape of a data location. Size and alignment are
// computed recursively for arrays.
type Type interface {
	// Size returns the byte size of this type.
	Size() int

	// Align returns the required byte alignment of this type.
	Align() int

	// String returns the canonical spelling, e.g. `u32` or
	// `Arr<u16, 10>`. Two types are interchangeable exactly when
	// their spellings match.
	String() string
}

// Byte is a single byte, `u8`.
type Byte struct{}

func (Byte) Size() int      { return 1 }
func (Byte) Align() int     { return 1 }
func (Byte) String() string { return "u8" }

// HalfWord is a 16-bit value, `u16`.
type HalfWord struct{}

func (HalfWord) Size() int      { return 2 }
func (HalfWord) Align() int     { return 2 }
func (HalfWord) String() string { return "u16" }

// Word is a 32-bit value, `u32`.
type Word struct{}

func (Word) Size() int      { return 4 }
func (Word) Align() int     { return 4 }
func (Word) String() string { return "u32" }

// AsciiStr is a null-terminated string of Len non-null bytes, padded
// with nulls to the next word boundary. The padding always includes at
// least one byte, so a string whose length is already a multiple of 4
// still pads a full word.
type AsciiStr struct {
	Len int
}

func (t AsciiStr) Size() int      { return t.Len + (4 - t.Len%4) }
func (AsciiStr) Align() int       { return 4 }
func (t AsciiStr) String() string { return fmt.Sprintf("AsciiStr<%#x>", t.Len) }

// Array is Len consecutive elements of Elem.
type Array struct {
	Elem Type
	Len  int
}

func (t Array) Size() int      { return t.Len * t.Elem.Size() }
func (t Array) Align() int     { return t.Elem.Align() }
func (t Array) String() string { return fmt.Sprintf("Arr<%s, %#x>", t.Elem, t.Len) }

// Marker is an untyped region of Len bytes, used to reserve a range
// without giving it a shape. Known markers accept heuristic children.
type Marker struct {
	Len int
}

func (t Marker) Size() int      { return t.Len }
func (Marker) Align() int       { return 1 }
func (t Marker) String() string { return fmt.Sprintf("Marker<%#x>", t.Len) }

// TypeEqual reports whether two types are the same shape.
func TypeEqual(a, b Type) bool {
	return a.String() == b.String()
}

// ParseType parses a type spelling: `u8`, `u16`, `u32`,
// `AsciiStr<len>`, `Arr<type, len>` or `Marker<len>`. Lengths accept
// decimal or 0x-prefixed hex.
func ParseType(s string) (Type, error) {
	ty, rest, err := parseTypePartial(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(rest) != "" {
		return nil, fmt.Errorf("parsing type %q: leftover tokens %q", s, rest)
	}
	return ty, nil
}

func parseTypePartial(s string) (Type, string, error) {
	idx := strings.IndexFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	})
	name, rest := s, ""
	if idx >= 0 {
		name, rest = s[:idx], s[idx:]
	}
	rest = strings.TrimSpace(rest)
	if name == "" {
		return nil, "", fmt.Errorf("parsing type %q: missing type name", s)
	}

	if generic, ok := strings.CutPrefix(rest, "<"); ok {
		generic = strings.TrimSpace(generic)
		switch name {
		case "AsciiStr":
			n, rest, err := parseTypeLen(generic)
			if err != nil {
				return nil, "", err
			}
			return AsciiStr{Len: n}, rest, nil
		case "Marker":
			n, rest, err := parseTypeLen(generic)
			if err != nil {
				return nil, "", err
			}
			return Marker{Len: n}, rest, nil
		case "Arr":
			elem, rest, err := parseTypePartial(generic)
			if err != nil {
				return nil, "", err
			}
			rest, ok := strings.CutPrefix(strings.TrimSpace(rest), ",")
			if !ok {
				return nil, "", fmt.Errorf("parsing type %q: missing comma in array arguments", s)
			}
			n, rest, err := parseTypeLen(strings.TrimSpace(rest))
			if err != nil {
				return nil, "", err
			}
			return Array{Elem: elem, Len: n}, rest, nil
		default:
			return nil, "", fmt.Errorf("parsing type %q: unknown generic type %q", s, name)
		}
	}

	switch name {
	case "u8":
		return Byte{}, rest, nil
	case "u16":
		return HalfWord{}, rest, nil
	case "u32":
		return Word{}, rest, nil
	default:
		return nil, "", fmt.Errorf("parsing type %q: unknown type %q", s, name)
	}
}

// parseTypeLen parses a length literal followed by the closing `>`.
func parseTypeLen(s string) (int, string, error) {
	end := strings.IndexRune(s, '>')
	if end < 0 {
		return 0, "", fmt.Errorf("parsing type length %q: missing closing `>`", s)
	}
	n, err := strconv.ParseUint(strings.TrimSpace(s[:end]), 0, 32)
	if err != nil {
		return 0, "", fmt.Errorf("parsing type length %q: %w", s, err)
	}
	return int(n), s[end+1:], nil
}
