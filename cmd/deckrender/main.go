// Command deckrender saves every slide of a deck as a PNG preview.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/VantageDataChat/godeck"
	"github.com/VantageDataChat/godeck/internal/cli"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("deckrender", flag.ContinueOnError)
	fs.SetOutput(stderr)
	width := fs.Int("width", 1920, "image width in pixels")
	fontDir := fs.String("fonts", "", "extra font directory")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: deckrender [flags] <pptx_file> <out_dir>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return cli.ExitFailure
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return cli.ExitFailure
	}
	src, dst := fs.Arg(0), fs.Arg(1)

	if err := os.MkdirAll(dst, 0o750); err != nil {
		return cli.Fail(stderr, "mkdir", err)
	}
	pres, err := godeck.Open(src)
	if err != nil {
		return cli.Fail(stderr, "read", err)
	}

	opts := godeck.DefaultRenderOptions()
	opts.Width = *width
	if *fontDir != "" {
		opts.FontDirs = []string{*fontDir}
	}
	if err := pres.SaveSlidesAsImages(filepath.Join(dst, "slide%02d.png"), opts); err != nil {
		return cli.Fail(stderr, "render", err)
	}

	fmt.Fprintf(stdout, "Rendered %d slides to %s\n", pres.GetSlideCount(), dst)
	return cli.ExitOK
}
