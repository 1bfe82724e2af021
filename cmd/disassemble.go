package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/psxtools/exedis/data"
	"github.com/psxtools/exedis/exe"
	"github.com/psxtools/exedis/fn"
	"github.com/psxtools/exedis/known"
	"github.com/psxtools/exedis/renderer"
)

var (
	KnownDataFlag = &cli.PathFlag{
		Name:     "known-data",
		Usage:    "Path to the known data table YAML file",
		Required: false,
	}
	KnownFuncsFlag = &cli.PathFlag{
		Name:     "known-funcs",
		Usage:    "Path to the known function table YAML file",
		Required: false,
	}
	FormatFlag = &cli.StringFlag{
		Name:        "format",
		Usage:       "format of the output. Options: json, text",
		Required:    false,
		DefaultText: "text",
	}
	OutputPathFlag = &cli.PathFlag{
		Name:     "output-path",
		Usage:    "output file path for the listing. Default: stdout",
		Required: false,
	}
)

func CreateDisassembleCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "disassemble",
		Usage:       "Disassembles a PS-X EXE executable into a listing",
		Description: "Disassembles a PS-X EXE executable into a listing",
		ArgsUsage:   "<exe-path>",
		Action:      action,
		Flags: []cli.Flag{
			KnownDataFlag,
			KnownFuncsFlag,
			FormatFlag,
			OutputPathFlag,
		},
	}
}

var DisassembleCommand = CreateDisassembleCommand(Disassemble)

func Disassemble(ctx *cli.Context) error {
	source := ctx.Args().First()
	if source == "" {
		return fmt.Errorf("missing executable path")
	}

	knownData, knownFuncs, err := loadKnownTables(
		ctx.Path(KnownDataFlag.Name), ctx.Path(KnownFuncsFlag.Name))
	if err != nil {
		return err
	}

	f, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("error opening executable: %w", err)
	}
	defer f.Close()

	e, err := exe.New(f, exe.Options{KnownData: knownData, KnownFuncs: knownFuncs})
	if err != nil {
		return fmt.Errorf("error loading executable: %w", err)
	}

	return writeListing(e, ctx.String(FormatFlag.Name), ctx.Path(OutputPathFlag.Name))
}

// loadKnownTables reads the optional authoritative tables.
func loadKnownTables(dataPath, funcsPath string) ([]*data.Data, []*fn.Func, error) {
	var knownData []*data.Data
	var knownFuncs []*fn.Func
	var err error

	if dataPath != "" {
		if knownData, err = known.LoadData(dataPath); err != nil {
			return nil, nil, fmt.Errorf("error loading known data: %w", err)
		}
	}
	if funcsPath != "" {
		if knownFuncs, err = known.LoadFuncs(funcsPath); err != nil {
			return nil, nil, fmt.Errorf("error loading known functions: %w", err)
		}
	}
	return knownData, knownFuncs, nil
}

// writeListing renders the listing in the selected format.
func writeListing(e *exe.Exe, format, outputPath string) error {
	var r renderer.Renderer
	switch format {
	case "json":
		r = renderer.NewJSONRenderer()
	case "text", "":
		r = renderer.NewTextRenderer()
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}

	var output io.Writer = os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("error creating output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	return r.Render(e, output)
}
