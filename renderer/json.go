package renderer

import (
	"encoding/json"
	"io"

	"github.com/psxtools/exedis/exe"
)

// JSONRenderer renders the disassembly in JSON format.
type JSONRenderer struct{}

func NewJSONRenderer() Renderer {
	return &JSONRenderer{}
}

type jsonInst struct {
	Pos      string `json:"pos"`
	Mnemonic string `json:"mnemonic"`
	Args     string `json:"args,omitempty"`
}

type jsonSegment struct {
	Kind  string     `json:"kind"`
	Name  string     `json:"name,omitempty"`
	Start string     `json:"start"`
	End   string     `json:"end"`
	Insts []jsonInst `json:"insts"`
}

func (r *JSONRenderer) Render(e *exe.Exe, output io.Writer) error {
	var segments []jsonSegment

	iter := e.Segments()
	for seg := iter.Next(); seg != nil; seg = iter.Next() {
		js := jsonSegment{
			Start: seg.Start.String(),
			End:   seg.End.String(),
		}
		switch seg.Kind {
		case exe.SegmentFunc:
			js.Kind = "func"
			js.Name = seg.Func.Name
		case exe.SegmentData:
			js.Kind = "data"
			js.Name = seg.Data.Name
		default:
			js.Kind = "unknown"
		}

		insts := seg.Insts()
		for p, i, ok := insts.Next(); ok; p, i, ok = insts.Next() {
			js.Insts = append(js.Insts, jsonInst{
				Pos:      p.String(),
				Mnemonic: i.Mnemonic(),
				Args:     formatArgs(e, p, i),
			})
		}
		segments = append(segments, js)
	}

	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(segments)
}

func (r *JSONRenderer) Format() string {
	return "json"
}
