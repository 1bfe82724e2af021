package exe

import (
	"encoding/binary"
	"log"

	"github.com/psxtools/exedis/data"
	"github.com/psxtools/exedis/inst"
	"github.com/psxtools/exedis/inst/basic"
	"github.com/psxtools/exedis/inst/pseudo"
	"github.com/psxtools/exedis/pos"
)

// Decode decodes the instruction at p given the previous decoded
// instruction. Positions inside a known data region decode against the
// region's type; a failure there is the error the data table promised
// to surface. Everywhere else the fallback chain always produces an
// instruction while bytes remain.
func (e *Exe) Decode(p pos.Pos, prev inst.Instruction) (inst.Instruction, error) {
	_, end := e.InstsRange()
	b := e.bytesAt(p, end)
	if len(b) == 0 {
		return nil, nil
	}
	return e.decode(p, b, prev)
}

func (e *Exe) decode(p pos.Pos, b []byte, prev inst.Instruction) (inst.Instruction, error) {
	if d := e.dataTable.Containing(p); d != nil {
		directive, err := data.DecodeDirectiveWithType(p, b, d.Ty, d.Pos)
		if err != nil {
			return nil, err
		}
		return directive, nil
	}

	if !p.WordAligned() {
		if d, ok := data.DecodeDirective(p, b); ok {
			return d, nil
		}
		return nil, nil
	}

	if ps := pseudo.Decode(pseudo.NewWindow(b)); ps != nil && e.pseudoFits(p, ps, prev) {
		return ps, nil
	}

	if len(b) >= 4 {
		if i := basic.Decode(binary.LittleEndian.Uint32(b)); i != nil {
			return i, nil
		}
	}

	if d, ok := data.DecodeDirective(p, b); ok {
		return d, nil
	}
	return nil, nil
}

// pseudoFits rejects a multi-word pseudo-instruction that would swallow
// a branch delay slot or cross a function label.
func (e *Exe) pseudoFits(p pos.Pos, ps pseudo.Instruction, prev inst.Instruction) bool {
	size := uint32(ps.Size())
	if size > 4 && expectsBranchDelay(prev) {
		return false
	}
	if f := e.funcTable.NextFrom(p); f != nil && f.Start < p.Add(size) {
		return false
	}
	if f := e.funcTable.Containing(p); f != nil {
		for l := range f.Labels {
			if p < l && l < p.Add(size) {
				return false
			}
		}
	}
	return true
}

// expectsBranchDelay reports whether the next word executes in i's
// branch delay slot.
func expectsBranchDelay(i inst.Instruction) bool {
	switch i.(type) {
	case basic.Cond, basic.JmpImm, basic.JmpReg:
		return true
	default:
		return false
	}
}

// DecodeIter decodes a byte range position by position. Each call to
// Next yields the instruction at the cursor and advances past it.
type DecodeIter struct {
	e    *Exe
	cur  pos.Pos
	end  pos.Pos
	prev inst.Instruction
}

// DecodeIterFrom builds a decoding iterator over [start, end), clamped
// to the loaded region.
func (e *Exe) DecodeIterFrom(start, end pos.Pos) *DecodeIter {
	return &DecodeIter{e: e, cur: start, end: end}
}

// Next yields the next decoded instruction and its position. A typed
// decode failure inside a data region is logged and the bytes re-read
// as a plain directive, so the listing never stops short of the range.
func (it *DecodeIter) Next() (pos.Pos, inst.Instruction, bool) {
	b := it.e.bytesAt(it.cur, it.end)
	if len(b) == 0 {
		return 0, nil, false
	}

	i, err := it.e.decode(it.cur, b, it.prev)
	if err != nil {
		log.Printf("decoding data at %s: %v", it.cur, err)
		if d, ok := data.DecodeDirective(it.cur, b); ok {
			i = d
		}
	}
	if i == nil {
		return 0, nil, false
	}

	p := it.cur
	it.cur = it.cur.Add(uint32(i.Size()))
	it.prev = i
	return p, i, true
}
