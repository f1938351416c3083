// Command deckanalyze prints per-slide shape counts, density estimates and
// font usage of a reference deck.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/VantageDataChat/godeck/analyze"
	"github.com/VantageDataChat/godeck/internal/cli"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("deckanalyze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	limit := fs.Int("limit", analyze.DefaultLimit, "number of leading slides to analyse (0 for all)")
	debug := fs.Bool("debug", false, "dump the raw report")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: deckanalyze [flags] <pptx_file>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return cli.ExitFailure
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return cli.ExitFailure
	}

	report, err := analyze.Analyze(fs.Arg(0), *limit)
	if err != nil {
		return cli.Fail(stderr, "deckanalyze", err)
	}
	if err := analyze.Write(stdout, report); err != nil {
		return cli.Fail(stderr, "deckanalyze", err)
	}
	if *debug {
		cli.Dump(stderr, "report", report)
	}
	return cli.ExitOK
}
