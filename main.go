package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/psxtools/exedis/cmd"
)

func main() {
	app := cli.NewApp()
	app.Name = os.Args[0]
	app.Usage = "PS-X EXE Disassembler"
	app.Description = "PS-X EXE Disassembler"
	app.Commands = []*cli.Command{
		cmd.DisassembleCommand,
	}
	err := app.RunContext(context.Background(), os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
