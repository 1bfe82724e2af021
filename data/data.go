// Package data describes typed data locations inside the executable:
// the Data entry, its recursive Type, the nested-interval Table the
// entries live in, and the directive codec that reads raw bytes back
// out of those locations.
package data

import (
	"fmt"

	"github.com/psxtools/exedis/pos"
)

// Kind records the provenance of a data entry.
type Kind int

const (
	// Known entries come from an authoritative external listing.
	Known Kind = iota
	// Heuristic entries were inferred from cross-references in the
	// decoded instruction stream. Known entries win on conflict.
	Heuristic
)

// Data is a single data location. Entries sort by start position
// ascending; at equal starts the larger entry sorts first, so a big
// region can hold named sub-regions starting at its own address.
type Data struct {
	Name string
	Desc string
	Pos  pos.Pos
	Ty   Type
	Kind Kind
}

// Size returns the byte size of this entry.
func (d *Data) Size() int {
	return d.Ty.Size()
}

// End returns the exclusive end of this entry's byte range. The result
// is 64-bit so entries at the top of the address space do not wrap.
func (d *Data) End() uint64 {
	return uint64(d.Pos) + uint64(d.Size())
}

// ContainsPos reports whether p lies inside this entry's range.
func (d *Data) ContainsPos(p pos.Pos) bool {
	return p >= d.Pos && uint64(p) < d.End()
}

// Contains reports whether other's range lies fully inside this
// entry's range.
func (d *Data) Contains(other *Data) bool {
	return other.Pos >= d.Pos && other.End() <= d.End()
}

// Intersects reports whether the two ranges share any byte.
func (d *Data) Intersects(other *Data) bool {
	return max(uint64(d.Pos), uint64(other.Pos)) < min(d.End(), other.End())
}

// String implements fmt.Stringer.
func (d *Data) String() string {
	return fmt.Sprintf("%s (%s) @ %s", d.Name, d.Ty, d.Pos)
}
