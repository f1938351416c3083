// Command deckverify checks a lecture deck and prints the quality report.
// It exits 0 when the deck passes and 1 otherwise.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/VantageDataChat/godeck/internal/cli"
	"github.com/VantageDataChat/godeck/internal/logging"
	"github.com/VantageDataChat/godeck/quality"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	defaults := quality.DefaultConfig()
	fs := flag.NewFlagSet("deckverify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	debug := fs.Bool("debug", false, "log diagnostics and dump the raw result")
	governing := fs.Bool("governing", defaults.CheckGoverning, "check for the bold governing message on the first content slides")
	minSlides := fs.Int("min-slides", defaults.MinSlides, "warn below this many slides")
	targetSize := fs.Int("size", defaults.TargetSize, "point size whose share of text runs is measured")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: deckverify [flags] <pptx_file>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return cli.ExitFailure
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return cli.ExitFailure
	}

	logger := logging.NoOp()
	if *debug {
		l, err := cli.Logger(logging.QualityModule, true)
		if err != nil {
			return cli.Fail(stderr, "deckverify", err)
		}
		logger = l
	}

	cfg := defaults.
		WithGoverningCheck(*governing).
		WithMinSlides(*minSlides).
		WithTargetSize(*targetSize, defaults.MinTargetRatio)
	verifier, err := quality.New(quality.WithConfig(cfg), quality.WithLogger(logger))
	if err != nil {
		return cli.Fail(stderr, "deckverify", err)
	}

	result := verifier.Verify(fs.Arg(0))
	if err := quality.Report(stdout, result); err != nil {
		return cli.Fail(stderr, "deckverify", err)
	}
	if *debug {
		cli.Dump(stderr, "result", result)
	}
	if !result.Passed {
		return cli.ExitFailure
	}
	return cli.ExitOK
}
