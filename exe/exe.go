package exe

import (
	"fmt"
	"io"
	"log"

	"github.com/psxtools/exedis/data"
	"github.com/psxtools/exedis/fn"
	"github.com/psxtools/exedis/pos"
)

// Exe is a loaded executable: the parsed header, the body bytes and the
// merged data and function tables. The tables are built once during
// New and treated as read-only afterwards.
type Exe struct {
	Header *Header

	bytes     []byte
	dataTable *data.Table
	funcTable *fn.Table
}

// Options supplies the authoritative entries merged into the tables
// before heuristic discovery runs.
type Options struct {
	KnownData  []*data.Data
	KnownFuncs []*fn.Func
}

// New reads an executable from r and builds its tables. Known entries
// that fail to insert are configuration errors; heuristic entries that
// conflict are logged and dropped.
func New(r io.Reader, opts Options) (*Exe, error) {
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	h, err := ParseHeader(header)
	if err != nil {
		return nil, fmt.Errorf("parsing header: %w", err)
	}

	body := make([]byte, h.Size)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	e := &Exe{
		Header:    h,
		bytes:     body,
		dataTable: data.NewTable(),
		funcTable: fn.NewTable(),
	}

	for _, d := range opts.KnownData {
		if err := e.dataTable.Insert(d); err != nil {
			return nil, fmt.Errorf("inserting known data %q: %w", d.Name, err)
		}
	}
	for _, f := range opts.KnownFuncs {
		if err := e.funcTable.Insert(f); err != nil {
			return nil, fmt.Errorf("inserting known function %q: %w", f.Name, err)
		}
	}

	// Heuristics run against the known tables, so discovery sees the
	// authoritative entries and never shadows them.
	for _, d := range e.SearchData() {
		if err := e.dataTable.Insert(d); err != nil {
			log.Printf("dropping heuristic data %q: %v", d.Name, err)
		}
	}
	for _, f := range e.SearchFuncs() {
		if err := e.funcTable.Insert(f); err != nil {
			log.Printf("dropping heuristic function %q: %v", f.Name, err)
		}
	}

	return e, nil
}

// InstsRange returns the loaded region [start, end).
func (e *Exe) InstsRange() (start, end pos.Pos) {
	return e.Header.Dest, e.Header.Dest.Add(e.Header.Size)
}

// DataTable returns the merged data table.
func (e *Exe) DataTable() *data.Table { return e.dataTable }

// FuncTable returns the merged function table.
func (e *Exe) FuncTable() *fn.Table { return e.funcTable }

// bytesAt returns the body bytes from p up to end, or nil when p is
// outside the loaded region.
func (e *Exe) bytesAt(p, end pos.Pos) []byte {
	start, regionEnd := e.InstsRange()
	end = min(end, regionEnd)
	off, ok := p.OffsetFrom(start)
	if !ok || end <= p {
		return nil
	}
	n, ok := end.OffsetFrom(start)
	if !ok {
		return nil
	}
	return e.bytes[off:n]
}
