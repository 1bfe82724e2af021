// Package known loads externally-authored data and function tables
// from YAML files. Entries loaded here are authoritative: they are
// merged before heuristic discovery and never overwritten by it.
package known

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/psxtools/exedis/data"
	"github.com/psxtools/exedis/fn"
	"github.com/psxtools/exedis/pos"
)

type dataEntry struct {
	Name string  `yaml:"name"`
	Desc string  `yaml:"desc"`
	Pos  pos.Pos `yaml:"pos"`
	Ty   string  `yaml:"ty"`
}

type funcEntry struct {
	Name           string             `yaml:"name"`
	Signature      string             `yaml:"signature"`
	Desc           string             `yaml:"desc"`
	Comments       map[pos.Pos]string `yaml:"comments"`
	InlineComments map[pos.Pos]string `yaml:"inline_comments"`
	Labels         map[pos.Pos]string `yaml:"labels"`
	Start          pos.Pos            `yaml:"start"`
	End            pos.Pos            `yaml:"end"`
}

// ReadData parses a YAML list of data entries. The type field uses the
// same syntax the table renders, e.g. `u32` or `Arr<u16, 0x10>`.
func ReadData(r io.Reader) ([]*data.Data, error) {
	var entries []dataEntry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("parsing data entries: %w", err)
	}

	out := make([]*data.Data, 0, len(entries))
	for _, e := range entries {
		ty, err := data.ParseType(e.Ty)
		if err != nil {
			return nil, fmt.Errorf("data %q: parsing type %q: %w", e.Name, e.Ty, err)
		}
		out = append(out, &data.Data{
			Name: e.Name,
			Desc: e.Desc,
			Pos:  e.Pos,
			Ty:   ty,
			Kind: data.Known,
		})
	}
	return out, nil
}

// LoadData reads a YAML data table from a file.
func LoadData(path string) ([]*data.Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening data table: %w", err)
	}
	defer f.Close()
	return ReadData(f)
}

// ReadFuncs parses a YAML list of function entries. Comment and label
// positions must fall inside the function's range.
func ReadFuncs(r io.Reader) ([]*fn.Func, error) {
	var entries []funcEntry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("parsing function entries: %w", err)
	}

	out := make([]*fn.Func, 0, len(entries))
	for _, e := range entries {
		f := &fn.Func{
			Name:           e.Name,
			Signature:      e.Signature,
			Desc:           e.Desc,
			Comments:       e.Comments,
			InlineComments: e.InlineComments,
			Labels:         e.Labels,
			Start:          e.Start,
			End:            e.End,
			Kind:           fn.Known,
		}
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("function %q: %w", e.Name, err)
		}
		out = append(out, f)
	}
	return out, nil
}

// LoadFuncs reads a YAML function table from a file.
func LoadFuncs(path string) ([]*fn.Func, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening function table: %w", err)
	}
	defer f.Close()
	return ReadFuncs(f)
}
