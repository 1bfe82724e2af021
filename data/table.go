package data

import (
	"errors"
	"fmt"
	"sort"

	"github.com/xlab/treeprint"

	"github.com/psxtools/exedis/pos"
)

// NotContainedError reports an entry that does not fit inside the node
// it was inserted into.
type NotContainedError struct {
	Data   *Data
	Parent *Data
}

func (e *NotContainedError) Error() string {
	return fmt.Sprintf("data %s is not contained in %s", e.Data, e.Parent)
}

// IntersectError reports an entry that partially overlaps an existing
// entry: the ranges share bytes but neither contains the other.
type IntersectError struct {
	Data         *Data
	Intersecting *Data
}

func (e *IntersectError) Error() string {
	return fmt.Sprintf("data %s intersects existing %s", e.Data, e.Intersecting)
}

// HeuristicOverKnownError reports a heuristic entry landing inside a
// known entry that is not a marker.
type HeuristicOverKnownError struct {
	Data  *Data
	Known *Data
}

func (e *HeuristicOverKnownError) Error() string {
	return fmt.Sprintf("heuristic data %s lands inside known non-marker %s", e.Data, e.Known)
}

// DuplicateNameError reports two distinct entries sharing a name.
type DuplicateNameError struct {
	Data      *Data
	Duplicate *Data
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("data %s duplicates the name of %s", e.Data, e.Duplicate)
}

// ChildError wraps a failure that occurred while recursing into a
// containing entry.
type ChildError struct {
	Child *Data
	Err   error
}

func (e *ChildError) Error() string {
	return fmt.Sprintf("inserting into %s: %v", e.Child, e.Err)
}

func (e *ChildError) Unwrap() error { return e.Err }

// errDuplicate marks a re-insert of an identical (start, type) pair.
// Table.Insert treats it as a no-op success.
var errDuplicate = errors.New("duplicate data entry")

// node is one level of the interval tree. Children are kept sorted by
// start position; starts are unique within a level because an
// equal-start entry always nests into, or absorbs, its sibling.
type node struct {
	data     *Data
	children []*node
}

// predecessor returns the index of the rightmost child whose start is
// at or before p, or -1.
func (n *node) predecessor(p pos.Pos) int {
	return sort.Search(len(n.children), func(i int) bool {
		return n.children[i].data.Pos > p
	}) - 1
}

func (n *node) insert(d *Data) error {
	if !n.data.Contains(d) {
		return &NotContainedError{Data: d, Parent: n.data}
	}

	idx := n.predecessor(d.Pos)
	if idx >= 0 {
		child := n.children[idx]
		if child.data.Pos == d.Pos && TypeEqual(child.data.Ty, d.Ty) {
			return errDuplicate
		}
		if child.data.Contains(d) {
			if d.Kind == Heuristic && child.data.Kind == Known {
				if _, marker := child.data.Ty.(Marker); !marker {
					return &HeuristicOverKnownError{Data: d, Known: child.data}
				}
			}
			if err := child.insert(d); err != nil {
				if errors.Is(err, errDuplicate) {
					return err
				}
				return &ChildError{Child: child.data, Err: err}
			}
			return nil
		}
		if child.data.Intersects(d) && !d.Contains(child.data) {
			return &IntersectError{Data: d, Intersecting: child.data}
		}
	}

	// Absorb the run of following siblings the new entry fully
	// contains; a sibling it merely overlaps is an error. This is
	// how a larger entry lands at the same start as a smaller one.
	first := idx
	if first < 0 || n.children[first].data.Pos < d.Pos {
		first++
	}
	last := first
	for last < len(n.children) && uint64(n.children[last].data.Pos) < d.End() {
		if !d.Contains(n.children[last].data) {
			return &IntersectError{Data: d, Intersecting: n.children[last].data}
		}
		last++
	}

	fresh := &node{data: d, children: append([]*node(nil), n.children[first:last]...)}
	n.children = append(n.children[:first], append([]*node{fresh}, n.children[last:]...)...)
	return nil
}

// containing returns the child whose range covers p, or nil.
func (n *node) containing(p pos.Pos) *node {
	if idx := n.predecessor(p); idx >= 0 && n.children[idx].data.ContainsPos(p) {
		return n.children[idx]
	}
	return nil
}

// containingDeepest descends to the deepest node covering p.
func (n *node) containingDeepest(p pos.Pos) *node {
	cur := n.containing(p)
	if cur == nil {
		return nil
	}
	for {
		next := cur.containing(p)
		if next == nil {
			return cur
		}
		cur = next
	}
}

// nextFrom returns the first child whose start is strictly after p.
func (n *node) nextFrom(p pos.Pos) *node {
	idx := sort.Search(len(n.children), func(i int) bool {
		return n.children[i].data.Pos > p
	})
	if idx == len(n.children) {
		return nil
	}
	return n.children[idx]
}

func (n *node) addToTree(branch treeprint.Tree) {
	for _, child := range n.children {
		child.addToTree(branch.AddBranch(child.data.String()))
	}
}

// Table holds all data locations as a nested-interval tree: any two
// entries are either disjoint or one fully contains the other, so the
// smallest entry at any position is unambiguous. Lookups cost one
// binary search per tree level, and the tree rarely exceeds depth 5.
type Table struct {
	root   *node
	byName map[string]*Data
}

// NewTable builds an empty table spanning the full address space.
func NewTable() *Table {
	return &Table{
		root: &node{data: &Data{
			Ty: Marker{Len: 1 << 32},
		}},
		byName: make(map[string]*Data),
	}
}

// Insert adds an entry to the table. Re-inserting an identical
// (start, type) pair is a harmless no-op. Overlap without containment,
// a duplicate name, or a heuristic entry landing inside known
// non-marker data are errors; the entry is not inserted.
func (t *Table) Insert(d *Data) error {
	if dup, ok := t.byName[d.Name]; ok && d.Name != "" {
		if dup.Pos == d.Pos && TypeEqual(dup.Ty, d.Ty) {
			return nil
		}
		return &DuplicateNameError{Data: d, Duplicate: dup}
	}
	if err := t.root.insert(d); err != nil {
		if errors.Is(err, errDuplicate) {
			return nil
		}
		return err
	}
	if d.Name != "" {
		t.byName[d.Name] = d
	}
	return nil
}

// Containing returns the smallest entry whose range covers p, or nil.
func (t *Table) Containing(p pos.Pos) *Data {
	if n := t.root.containingDeepest(p); n != nil {
		return n.data
	}
	return nil
}

// StartingAt returns the smallest entry starting exactly at p, or nil.
func (t *Table) StartingAt(p pos.Pos) *Data {
	if d := t.Containing(p); d != nil && d.Pos == p {
		return d
	}
	return nil
}

// OuterStartingAt returns the largest entry starting exactly at p, or
// nil. Where StartingAt resolves to the innermost specialization, this
// resolves to the whole region it specializes, descending past
// containing entries that started earlier.
func (t *Table) OuterStartingAt(p pos.Pos) *Data {
	for n := t.root.containing(p); n != nil; n = n.containing(p) {
		if n.data.Pos == p {
			return n.data
		}
	}
	return nil
}

// NextFrom returns the entry with the smallest start strictly after p,
// or nil when nothing follows. The nearest following start may sit
// arbitrarily deep inside the entry containing p, so the search
// descends through containing nodes before falling back to the next
// sibling at each level.
func (t *Table) NextFrom(p pos.Pos) *Data {
	if n := t.root.nextDescend(p); n != nil {
		return n.data
	}
	return nil
}

func (n *node) nextDescend(p pos.Pos) *node {
	if containing := n.containing(p); containing != nil {
		if deep := containing.nextDescend(p); deep != nil {
			return deep
		}
	}
	next := n.nextFrom(p)
	if next == nil {
		return nil
	}
	// Entries nested at the next node's own start come first in the
	// larger-first ordering; return the deepest of them.
	if at := next.containingDeepest(next.data.Pos); at != nil {
		return at
	}
	return next
}

// ByName returns the entry with the given name, or nil.
func (t *Table) ByName(name string) *Data {
	return t.byName[name]
}

// Walk visits every entry in position order, parents before children.
func (t *Table) Walk(visit func(d *Data, depth int)) {
	var walk func(n *node, depth int)
	walk = func(n *node, depth int) {
		for _, child := range n.children {
			visit(child.data, depth)
			walk(child, depth+1)
		}
	}
	walk(t.root, 0)
}

// String renders the table as a tree, one entry per line.
func (t *Table) String() string {
	tree := treeprint.New()
	t.root.addToTree(tree)
	return tree.String()
}
