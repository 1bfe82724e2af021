package fn

import (
	"fmt"
	"sort"

	"github.com/psxtools/exedis/pos"
)

// Table stores functions sorted by start position, unique and
// non-overlapping.
type Table struct {
	funcs []*Func
}

// NewTable builds an empty function table.
func NewTable() *Table {
	return &Table{}
}

// predecessor returns the index of the rightmost function starting at
// or before p, or -1.
func (t *Table) predecessor(p pos.Pos) int {
	return sort.Search(len(t.funcs), func(i int) bool {
		return t.funcs[i].Start > p
	}) - 1
}

// Insert adds a function. Re-inserting a function with an existing
// start is a no-op: the entry already there wins, so callers insert
// known functions before heuristic ones. Overlapping an existing
// function's range is an error.
func (t *Table) Insert(f *Func) error {
	if err := f.Validate(); err != nil {
		return err
	}
	idx := t.predecessor(f.Start)
	if idx >= 0 {
		prev := t.funcs[idx]
		if prev.Start == f.Start {
			return nil
		}
		if prev.End > f.Start {
			return fmt.Errorf("function %s overlaps %s", f, prev)
		}
	}
	if idx+1 < len(t.funcs) && t.funcs[idx+1].Start < f.End {
		return fmt.Errorf("function %s overlaps %s", f, t.funcs[idx+1])
	}
	t.funcs = append(t.funcs, nil)
	copy(t.funcs[idx+2:], t.funcs[idx+1:])
	t.funcs[idx+1] = f
	return nil
}

// Containing returns the function whose range covers p, or nil.
func (t *Table) Containing(p pos.Pos) *Func {
	if idx := t.predecessor(p); idx >= 0 && t.funcs[idx].ContainsPos(p) {
		return t.funcs[idx]
	}
	return nil
}

// StartingAt returns the function starting exactly at p, or nil.
func (t *Table) StartingAt(p pos.Pos) *Func {
	if f := t.Containing(p); f != nil && f.Start == p {
		return f
	}
	return nil
}

// NextFrom returns the function with the smallest start strictly after
// p, or nil.
func (t *Table) NextFrom(p pos.Pos) *Func {
	idx := t.predecessor(p) + 1
	if idx == len(t.funcs) {
		return nil
	}
	return t.funcs[idx]
}

// Funcs returns the functions in start order. The slice is shared;
// callers must not modify it.
func (t *Table) Funcs() []*Func {
	return t.funcs
}

// Len returns the number of functions.
func (t *Table) Len() int {
	return len(t.funcs)
}

// LabelAt looks up a label at p across all functions.
func (t *Table) LabelAt(p pos.Pos) (string, bool) {
	f := t.Containing(p)
	if f == nil {
		return "", false
	}
	label, ok := f.Labels[p]
	return label, ok
}
