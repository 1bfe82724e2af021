// Package renderer provides a way to render disassembled executables
// in different formats.
package renderer

import (
	"fmt"
	"io"

	"github.com/psxtools/exedis/exe"
	"github.com/psxtools/exedis/inst"
	"github.com/psxtools/exedis/pos"
)

// Renderer defines the interface for rendering a disassembled
// executable in different formats.
type Renderer interface {
	// Render walks the executable's segments and writes the listing
	// in the desired format to the provided writer.
	Render(e *exe.Exe, output io.Writer) error

	// Format returns the name of the output format (e.g., "json", "text").
	Format() string
}

// resolveTarget renders a reference position symbolically when one of
// the tables names it: a function start by its name, a position inside
// a function by its local label, a data entry by its name, possibly
// with an offset into it.
func resolveTarget(e *exe.Exe, p pos.Pos) string {
	if f := e.FuncTable().StartingAt(p); f != nil {
		return f.Name
	}
	if label, ok := e.FuncTable().LabelAt(p); ok {
		return "." + label
	}
	if d := e.DataTable().StartingAt(p); d != nil {
		return d.Name
	}
	if d := e.DataTable().Containing(p); d != nil {
		off, _ := p.OffsetFrom(d.Pos)
		return fmt.Sprintf("%s+%#x", d.Name, off)
	}
	return p.String()
}

// targeter is implemented by position-dependent instructions whose
// branch or reference target depends on where they sit.
type targeter interface {
	TargetAt(p pos.Pos) pos.Pos
}

// formatArgs renders the arguments of the instruction at p, resolving
// targets against the executable's tables. Branch targets are
// recomputed at p, since the instruction alone cannot know where it
// was decoded.
func formatArgs(e *exe.Exe, p pos.Pos, in inst.Instruction) string {
	args := in.Args()
	if ti, ok := in.(targeter); ok {
		for i := range args {
			if args[i].Kind == inst.ArgTarget {
				args[i].Target = ti.TargetAt(p)
			}
		}
	}

	s := ""
	for i, a := range args {
		if i > 0 {
			s += ", "
		}
		if a.Kind == inst.ArgTarget {
			s += resolveTarget(e, a.Target)
		} else {
			s += a.String()
		}
	}
	return s
}
