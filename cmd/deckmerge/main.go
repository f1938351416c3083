// Command deckmerge concatenates decks into one file:
//
//	deckmerge <output-file> <input-file-1> <input-file-2> ...
//	deckmerge <output-file> <input-dir>
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/VantageDataChat/godeck/internal/cli"
	"github.com/VantageDataChat/godeck/internal/logging"
	"github.com/VantageDataChat/godeck/merge"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("deckmerge", flag.ContinueOnError)
	fs.SetOutput(stderr)
	title := fs.String("title", "", "title property of the merged deck")
	debug := fs.Bool("debug", false, "log each input and dump the summary")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: deckmerge [flags] <output-file> <input-file-1> <input-file-2> ...")
		fmt.Fprintln(stderr, "   OR: deckmerge [flags] <output-file> <input-dir>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return cli.ExitFailure
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return cli.ExitFailure
	}
	output := fs.Arg(0)

	inputs, err := merge.CollectInputs(fs.Args()[1:])
	if err != nil {
		fmt.Fprintf(stdout, "❌ Error: %v\n", err)
		return cli.ExitFailure
	}

	logger := logging.NoOp()
	if *debug {
		if logger, err = cli.Logger(logging.MergeModule, true); err != nil {
			return cli.Fail(stderr, "deckmerge", err)
		}
	}

	fmt.Fprintln(stdout, "🔗 PPTX Merger")
	fmt.Fprintf(stdout, "Input files: %d\nOutput: %s\n\n", len(inputs), output)
	for i, in := range inputs {
		fmt.Fprintf(stdout, "  Processing %d/%d: %s\n", i+1, len(inputs), filepath.Base(in))
	}

	summary, err := merge.New(merge.WithTitle(*title), merge.WithLogger(logger)).Merge(output, inputs)
	for _, s := range summary.Skipped {
		fmt.Fprintf(stdout, "    ⚠️  Skipped %s: %v\n", filepath.Base(s.Path), s.Reason)
	}
	if err != nil {
		return cli.Fail(stderr, "deckmerge", err)
	}
	if *debug {
		cli.Dump(stderr, "summary", summary)
	}
	fmt.Fprintf(stdout, "\n✅ Merge complete!\n📊 %s\n", summary)
	return cli.ExitOK
}
