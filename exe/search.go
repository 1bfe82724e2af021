package exe

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/psxtools/exedis/data"
	"github.com/psxtools/exedis/fn"
	"github.com/psxtools/exedis/inst"
	"github.com/psxtools/exedis/inst/basic"
	"github.com/psxtools/exedis/inst/pseudo"
	"github.com/psxtools/exedis/pos"
)

// decoded is one item of a full decoding pass, kept in memory so the
// discovery passes can re-walk the stream without re-decoding.
type decoded struct {
	pos  pos.Pos
	inst inst.Instruction
}

func (e *Exe) decodeAll() []decoded {
	start, end := e.InstsRange()
	it := e.DecodeIterFrom(start, end)

	var insts []decoded
	for {
		p, i, ok := it.Next()
		if !ok {
			return insts
		}
		insts = append(insts, decoded{pos: p, inst: i})
	}
}

// SearchData discovers data entries heuristically: it collects every
// operand position that looks like an absolute address into the loaded
// region, then turns each directive whose position is referenced into
// an entry named after its directive kind.
func (e *Exe) SearchData() []*data.Data {
	insts := e.decodeAll()
	start, end := e.InstsRange()

	refs := make(map[pos.Pos]bool)
	addRef := func(p pos.Pos) {
		if start <= p && p < end {
			refs[p] = true
		}
	}
	for _, d := range insts {
		switch i := d.inst.(type) {
		case basic.Load:
			addRef(d.pos.AddSigned(int32(i.Offset)))
		case basic.Store:
			addRef(d.pos.AddSigned(int32(i.Offset)))
		case pseudo.LoadImm:
			if i.Kind == pseudo.LoadImmAddress || i.Kind == pseudo.LoadImmWord {
				addRef(pos.Pos(i.Value))
			}
		case pseudo.Load:
			addRef(i.Target)
		case pseudo.Store:
			addRef(i.Target)
		case data.Directive:
			if i.Kind == data.Dw {
				addRef(pos.Pos(i.Value))
			}
		}
	}

	var found []*data.Data
	for _, d := range insts {
		directive, ok := d.inst.(data.Directive)
		if !ok || !refs[d.pos] {
			continue
		}

		idx := len(found)
		entry := &data.Data{Pos: d.pos, Kind: data.Heuristic}
		switch directive.Kind {
		case data.Ascii:
			entry.Name = fmt.Sprintf("string_%d", idx)
			entry.Ty = data.AsciiStr{Len: len(directive.Str)}
		case data.Dw:
			entry.Name = fmt.Sprintf("data_w%d", idx)
			entry.Ty = data.Word{}
		case data.Dh:
			entry.Name = fmt.Sprintf("data_h%d", idx)
			entry.Ty = data.HalfWord{}
		default:
			entry.Name = fmt.Sprintf("data_b%d", idx)
			entry.Ty = data.Byte{}
		}
		found = append(found, entry)
	}
	return found
}

// SearchFuncs discovers function entries heuristically from `jal`
// targets and word-aligned `dw` values inside the loaded region. Each
// entry ends past the first `jr $ra` at or after it; an entry with no
// return runs open-ended. An intervening entry refines the end to the
// last tail call before it.
func (e *Exe) SearchFuncs() []*fn.Func {
	insts := e.decodeAll()
	start, end := e.InstsRange()
	inRange := func(p pos.Pos) bool { return start <= p && p < end }

	var returns, tailcalls, labels []pos.Pos
	entrySet := make(map[pos.Pos]bool)
	for _, d := range insts {
		switch i := d.inst.(type) {
		case basic.JmpReg:
			if !i.Link {
				tailcalls = append(tailcalls, d.pos)
				if i.IsReturn() {
					returns = append(returns, d.pos)
				}
			}
		case basic.JmpImm:
			target := i.TargetAt(d.pos)
			if i.Link {
				if d.pos.WordAligned() && inRange(target) && e.dataTable.Containing(target) == nil {
					entrySet[target] = true
				}
			} else {
				tailcalls = append(tailcalls, d.pos)
				if inRange(target) {
					labels = append(labels, target)
				}
			}
		case basic.Cond:
			if target := i.TargetAt(d.pos); inRange(target) {
				labels = append(labels, target)
			}
		case data.Directive:
			target := pos.Pos(i.Value)
			if i.Kind == data.Dw && target.WordAligned() && inRange(target) &&
				e.dataTable.Containing(target) == nil {
				entrySet[target] = true
			}
		}
	}

	entries := make([]pos.Pos, 0, len(entrySet))
	for p := range entrySet {
		entries = append(entries, p)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i] < entries[j] })
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

	var funcs []*fn.Func
	for idx, funcPos := range entries {
		funcEnd := pos.Pos(0xFFFFFFFF)
		if r := firstAtOrAfter(returns, funcPos); r != nil {
			funcEnd = r.Add(8)
		}

		// A later entry before our return means we fell through into
		// another function; end at the last tail call before it.
		if next := firstAtOrAfter(entries, funcPos.Add(4)); next != nil && *next < funcEnd {
			funcEnd = funcPos.Add(8)
			if tc := lastBefore(tailcalls, *next); tc != nil && *tc >= funcPos {
				funcEnd = tc.Add(8)
			}
		}

		if overlapsAny(funcs, e.funcTable, funcPos, funcEnd) {
			continue
		}

		funcLabels := make(map[pos.Pos]string)
		n := 0
		for _, l := range labels {
			if funcPos < l && l < funcEnd {
				funcLabels[l] = strconv.Itoa(n)
				n++
			}
		}

		funcs = append(funcs, &fn.Func{
			Name:      fmt.Sprintf("func_%d", idx),
			Signature: "fn()",
			Labels:    funcLabels,
			Start:     funcPos,
			End:       funcEnd,
			Kind:      fn.Heuristic,
		})
	}
	return funcs
}

// firstAtOrAfter returns the smallest position >= p in the sorted
// slice, or nil.
func firstAtOrAfter(sorted []pos.Pos, p pos.Pos) *pos.Pos {
	i := sort.Search(len(sorted), func(i int) bool { return sorted[i] >= p })
	if i == len(sorted) {
		return nil
	}
	return &sorted[i]
}

// lastBefore returns the largest position < p in the sorted slice, or
// nil.
func lastBefore(sorted []pos.Pos, p pos.Pos) *pos.Pos {
	i := sort.Search(len(sorted), func(i int) bool { return sorted[i] >= p })
	if i == 0 {
		return nil
	}
	return &sorted[i-1]
}

// overlapsAny reports whether [start, end) intersects an already
// discovered function or one in the known table.
func overlapsAny(funcs []*fn.Func, table *fn.Table, start, end pos.Pos) bool {
	for _, f := range funcs {
		if f.Start < end && start < f.End {
			return true
		}
	}
	if f := table.Containing(start); f != nil {
		return true
	}
	if f := table.NextFrom(start); f != nil && f.Start < end {
		return true
	}
	return false
}
