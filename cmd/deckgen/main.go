// Command deckgen builds a lecture deck from a markdown course document as
// described by a YAML run configuration, then verifies the result.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/VantageDataChat/godeck"
	"github.com/VantageDataChat/godeck/config"
	"github.com/VantageDataChat/godeck/course"
	"github.com/VantageDataChat/godeck/diagram"
	"github.com/VantageDataChat/godeck/internal/cli"
	"github.com/VantageDataChat/godeck/internal/logging"
	"github.com/VantageDataChat/godeck/outline"
	"github.com/VantageDataChat/godeck/quality"
	"github.com/VantageDataChat/godeck/slidespec"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("deckgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "deckgen.yaml", "run configuration file")
	printOutline := fs.Bool("outline", false, "print the planned slides instead of writing the deck")
	debug := fs.Bool("debug", false, "log at debug level and dump the loaded configuration")
	if err := fs.Parse(args); err != nil {
		return cli.ExitFailure
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return cli.Fail(stderr, "deckgen", err)
	}
	provider, err := cli.Provider(cfg.Logging.Level, cfg.Logging.Format, *debug)
	if err != nil {
		return cli.Fail(stderr, "deckgen", err)
	}
	if *debug {
		cli.Dump(stderr, "config", cfg)
	}

	g := &generator{cfg: cfg, provider: provider, stdout: stdout}
	slides, title, err := g.plan()
	if err != nil {
		return cli.Fail(stderr, "deckgen", err)
	}
	if *printOutline {
		if err := (slidespec.TextRenderer{}).Render(stdout, slidespec.DefaultStyle(), slides); err != nil {
			return cli.Fail(stderr, "deckgen", err)
		}
		return cli.ExitOK
	}
	if err := g.write(slides, title); err != nil {
		return cli.Fail(stderr, "deckgen", err)
	}
	if cfg.Verify.Skip {
		return cli.ExitOK
	}
	return g.verify()
}

type generator struct {
	cfg      config.Config
	provider logging.LoggerProvider
	stdout   io.Writer
}

func (g *generator) logger(module string) logging.Logger {
	return logging.ModuleLogger(g.provider, module)
}

// plan parses the course document and lays out its slides.
func (g *generator) plan() ([]slidespec.SlideSpec, string, error) {
	parser := outline.New(outline.WithLogger(g.logger(logging.OutlineModule)))
	doc, err := parser.ParseDocument(g.cfg.Input)
	if err != nil {
		return nil, "", err
	}
	fmt.Fprintf(g.stdout, "📄 %s: %d개 섹션\n", g.cfg.Input, len(doc.Sections))

	images, err := g.diagrams()
	if err != nil {
		return nil, "", err
	}

	opts := course.DefaultOptions()
	opts.TargetSlides = g.cfg.TargetSlides
	opts.Objectives = g.cfg.Objectives
	opts.Dense = g.cfg.Dense()
	opts.Diagrams = images
	opts.Logger = g.logger(logging.CourseModule)
	slides := course.PlanDocument(doc, opts)

	title := g.cfg.Title
	if title == "" {
		title = doc.Meta.Title
	}
	return slides, title, nil
}

// diagrams rasterises the configured figures, keyed by slide number.
func (g *generator) diagrams() (map[int][]byte, error) {
	if len(g.cfg.Diagrams) == 0 {
		return nil, nil
	}
	fonts := godeck.NewFontCache(g.cfg.FontDirs...)
	numbers := make([]int, 0, len(g.cfg.Diagrams))
	for n := range g.cfg.Diagrams {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	images := make(map[int][]byte, len(numbers))
	for _, n := range numbers {
		d, err := diagram.Build(g.cfg.Diagrams[n], diagram.WithLogger(g.logger(logging.DiagramModule)))
		if err != nil {
			return nil, err
		}
		data, err := d.PNG(diagram.RasterOptions{FontCache: fonts})
		if err != nil {
			return nil, err
		}
		images[n] = data
		fmt.Fprintf(g.stdout, "🖼  슬라이드 %d: %s\n", n, d.Name)
	}
	return images, nil
}

func (g *generator) write(slides []slidespec.SlideSpec, title string) error {
	for i, s := range slides {
		fmt.Fprintf(g.stdout, "  ✓ 슬라이드 %d: %s\n", i+1, s.Title)
	}
	renderer := slidespec.NewPPTXRenderer(
		slidespec.WithTitle(title),
		slidespec.WithCreator(g.cfg.Creator),
		slidespec.WithLogger(g.logger(logging.RenderModule)),
	)
	if err := os.MkdirAll(filepath.Dir(g.cfg.Output), 0o755); err != nil {
		return err
	}
	if err := slidespec.RenderFile(renderer, g.cfg.Output, slidespec.DefaultStyle(), slides); err != nil {
		return err
	}
	size := "?"
	if info, err := os.Stat(g.cfg.Output); err == nil {
		size = humanize.Bytes(uint64(info.Size()))
	}
	fmt.Fprintf(g.stdout, "\n✅ 저장 완료: %s (%s장, %s)\n", g.cfg.Output, humanize.Comma(int64(len(slides))), size)
	return nil
}

func (g *generator) verify() int {
	verifier, err := quality.New(
		quality.WithConfig(g.cfg.Quality()),
		quality.WithLogger(g.logger(logging.QualityModule)),
	)
	if err != nil {
		fmt.Fprintf(g.stdout, "deckgen: %v\n", err)
		return cli.ExitFailure
	}
	result := verifier.Verify(g.cfg.Output)
	if err := quality.Report(g.stdout, result); err != nil || !result.Passed {
		return cli.ExitFailure
	}
	return cli.ExitOK
}
