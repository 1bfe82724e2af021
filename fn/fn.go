// Package fn describes the functions of the executable and the flat
// ordered table they live in.
package fn

import (
	"fmt"

	"github.com/psxtools/exedis/pos"
)

// Kind records the provenance of a function entry.
type Kind int

const (
	// Known entries come from an authoritative external listing.
	Known Kind = iota
	// Heuristic entries were inferred from call targets in the
	// decoded instruction stream.
	Heuristic
)

// Func is a function within the executable. End is exclusive.
// Comments, inline comments and labels are keyed by position and must
// all fall inside the function's range.
type Func struct {
	Name           string
	Signature      string
	Desc           string
	Comments       map[pos.Pos]string
	InlineComments map[pos.Pos]string
	Labels         map[pos.Pos]string
	Start          pos.Pos
	End            pos.Pos
	Kind           Kind
}

// ContainsPos reports whether p lies inside the function's range.
func (f *Func) ContainsPos(p pos.Pos) bool {
	return p >= f.Start && p < f.End
}

// Validate checks the range is proper and every comment and label sits
// inside it.
func (f *Func) Validate() error {
	if f.End < f.Start {
		return fmt.Errorf("function %s: end %s is before start %s", f.Name, f.End, f.Start)
	}
	for p := range f.Comments {
		if !f.ContainsPos(p) {
			return fmt.Errorf("function %s: comment at %s is out of bounds", f.Name, p)
		}
	}
	for p := range f.InlineComments {
		if !f.ContainsPos(p) {
			return fmt.Errorf("function %s: inline comment at %s is out of bounds", f.Name, p)
		}
	}
	for p := range f.Labels {
		if !f.ContainsPos(p) {
			return fmt.Errorf("function %s: label at %s is out of bounds", f.Name, p)
		}
	}
	return nil
}

// String implements fmt.Stringer.
func (f *Func) String() string {
	return fmt.Sprintf("%s @ %s", f.Name, f.Start)
}
