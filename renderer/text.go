package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/psxtools/exedis/exe"
)

// TextRenderer formats the disassembly as a plain assembly listing
// with symbolic labels.
type TextRenderer struct{}

// NewTextRenderer creates a new instance of TextRenderer.
func NewTextRenderer() Renderer {
	return &TextRenderer{}
}

// Render writes the whole listing segment by segment.
func (r *TextRenderer) Render(e *exe.Exe, output io.Writer) error {
	var listing strings.Builder

	h := e.Header
	listing.WriteString(fmt.Sprintf("# %s\n", h.Marker))
	listing.WriteString(fmt.Sprintf("# pc: %s  gp: %#x  sp: %#x\n", h.Pc0, h.Gp0, h.SpBase+h.SpOffset))
	start, end := e.InstsRange()
	listing.WriteString(fmt.Sprintf("# loaded at %s..%s\n", start, end))

	iter := e.Segments()
	for seg := iter.Next(); seg != nil; seg = iter.Next() {
		switch seg.Kind {
		case exe.SegmentFunc:
			r.renderFunc(e, seg, &listing)
		case exe.SegmentData:
			r.renderData(e, seg, &listing)
		default:
			listing.WriteString("\n")
			r.renderInsts(e, seg, &listing)
		}
	}

	_, err := io.WriteString(output, listing.String())
	return err
}

func (r *TextRenderer) renderFunc(e *exe.Exe, seg *exe.Segment, listing *strings.Builder) {
	f := seg.Func

	listing.WriteString("\n")
	if f.Signature != "" {
		listing.WriteString(fmt.Sprintf("# %s\n", f.Signature))
	}
	if f.Desc != "" {
		listing.WriteString(fmt.Sprintf("# %s\n", f.Desc))
	}
	listing.WriteString(fmt.Sprintf("%s:\n", f.Name))

	insts := seg.Insts()
	for p, i, ok := insts.Next(); ok; p, i, ok = insts.Next() {
		if label, ok := f.Labels[p]; ok {
			listing.WriteString(fmt.Sprintf("	.%s:\n", label))
		}
		if comment, ok := f.Comments[p]; ok {
			listing.WriteString(fmt.Sprintf("	# %s\n", comment))
		}

		line := fmt.Sprintf("	%s: %s %s", p, i.Mnemonic(), formatArgs(e, p, i))
		if comment, ok := f.InlineComments[p]; ok {
			line += " # " + comment
		}
		listing.WriteString(strings.TrimRight(line, " ") + "\n")
	}
}

func (r *TextRenderer) renderData(e *exe.Exe, seg *exe.Segment, listing *strings.Builder) {
	d := seg.Data

	listing.WriteString("\n")
	if d.Desc != "" {
		listing.WriteString(fmt.Sprintf("# %s\n", d.Desc))
	}
	listing.WriteString(fmt.Sprintf("%s: # %s\n", d.Name, d.Ty))
	r.renderInsts(e, seg, listing)
}

func (r *TextRenderer) renderInsts(e *exe.Exe, seg *exe.Segment, listing *strings.Builder) {
	insts := seg.Insts()
	for p, i, ok := insts.Next(); ok; p, i, ok = insts.Next() {
		line := fmt.Sprintf("	%s: %s %s", p, i.Mnemonic(), formatArgs(e, p, i))
		listing.WriteString(strings.TrimRight(line, " ") + "\n")
	}
}

// Format returns the format type.
func (r *TextRenderer) Format() string {
	return "text"
}
