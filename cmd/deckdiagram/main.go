// Command deckdiagram writes the built-in course figures as SVG and PNG.
//
//	deckdiagram [-out dir] [-scale 2] [name ...]
//
// Without names every figure is written.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/VantageDataChat/godeck"
	"github.com/VantageDataChat/godeck/diagram"
	"github.com/VantageDataChat/godeck/internal/cli"
	"github.com/VantageDataChat/godeck/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("deckdiagram", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("out", "SVG_ASSETS", "output directory")
	scale := fs.Float64("scale", diagram.DefaultScale, "PNG pixels per SVG unit")
	fontDir := fs.String("fonts", "", "extra font directory used for PNG text")
	list := fs.Bool("list", false, "list the available figures and exit")
	debug := fs.Bool("debug", false, "log rasterisation")
	if err := fs.Parse(args); err != nil {
		return cli.ExitFailure
	}
	if *list {
		fmt.Fprintln(stdout, strings.Join(diagram.Names(), "\n"))
		return cli.ExitOK
	}

	logger := logging.NoOp()
	if *debug {
		l, err := cli.Logger(logging.DiagramModule, true)
		if err != nil {
			return cli.Fail(stderr, "deckdiagram", err)
		}
		logger = l
	}

	names := fs.Args()
	if len(names) == 0 {
		names = diagram.Names()
	}
	diagrams := make([]*diagram.Diagram, 0, len(names))
	for _, name := range names {
		d, err := diagram.Build(name, diagram.WithLogger(logger))
		if err != nil {
			return cli.Fail(stderr, "deckdiagram", err)
		}
		fmt.Fprintf(stdout, "✓ Generating %s...\n", name)
		diagrams = append(diagrams, d)
	}

	var fontDirs []string
	if *fontDir != "" {
		fontDirs = append(fontDirs, *fontDir)
	}
	written, err := diagram.WriteFiles(*out, diagrams, diagram.RasterOptions{
		Scale:     *scale,
		FontCache: godeck.NewFontCache(fontDirs...),
	})
	for _, path := range written {
		fmt.Fprintf(stdout, "  → %s\n", path)
	}
	if err != nil {
		return cli.Fail(stderr, "deckdiagram", err)
	}
	fmt.Fprintf(stdout, "\n✅ Successfully generated %d diagrams\n", len(diagrams))
	return cli.ExitOK
}
