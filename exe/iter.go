package exe

import (
	"github.com/psxtools/exedis/data"
	"github.com/psxtools/exedis/fn"
	"github.com/psxtools/exedis/pos"
)

// SegmentKind discriminates what a segment was assigned to.
type SegmentKind int

const (
	// SegmentFunc covers a function's range.
	SegmentFunc SegmentKind = iota
	// SegmentData covers a data entry's range.
	SegmentData
	// SegmentUnknown covers bytes claimed by neither table.
	SegmentUnknown
)

// Segment is a maximal contiguous range assigned to one table entry,
// or to neither. Func and Data are set for their respective kinds.
type Segment struct {
	Kind  SegmentKind
	Start pos.Pos
	End   pos.Pos
	Func  *fn.Func
	Data  *data.Data

	e *Exe
}

// Insts returns a fresh decoding iterator scoped to exactly this
// segment's byte range.
func (s *Segment) Insts() *DecodeIter {
	return s.e.DecodeIterFrom(s.Start, s.End)
}

// Segments walks the loaded region in address order. The yielded
// segments are contiguous and non-overlapping, and together cover
// the region exactly; with empty tables the whole region is one
// Unknown segment.
type Segments struct {
	e   *Exe
	cur pos.Pos
	end pos.Pos
}

// Segments returns a segment iterator over the whole loaded region.
func (e *Exe) Segments() *Segments {
	start, end := e.InstsRange()
	return &Segments{e: e, cur: start, end: end}
}

// Next yields the next segment, or nil when the region is exhausted.
func (s *Segments) Next() *Segment {
	if s.cur >= s.end {
		return nil
	}

	seg := &Segment{Start: s.cur, End: s.end, e: s.e}
	if d := s.e.dataTable.OuterStartingAt(s.cur); d != nil {
		seg.Kind = SegmentData
		seg.Data = d
		// A nested entry starting later splits the region there; the
		// remainder is picked up as its own Data segment.
		if dEnd := d.End(); dEnd < uint64(seg.End) {
			seg.End = pos.Pos(dEnd)
		}
		if next := s.e.dataTable.NextFrom(s.cur); next != nil && next.Pos < seg.End {
			seg.End = next.Pos
		}
	} else if f := s.e.funcTable.StartingAt(s.cur); f != nil {
		seg.Kind = SegmentFunc
		seg.Func = f
		seg.End = min(seg.End, f.End)
	} else {
		seg.Kind = SegmentUnknown
		if next := s.e.dataTable.NextFrom(s.cur); next != nil && next.Pos < seg.End {
			seg.End = next.Pos
		}
		if next := s.e.funcTable.NextFrom(s.cur); next != nil && next.Start < seg.End {
			seg.End = next.Start
		}
	}

	// Zero-sized table entries must not stall the walk.
	if seg.End <= seg.Start {
		seg.End = min(seg.Start.Add(4), s.end)
	}

	s.cur = seg.End
	return seg
}
