// Package merge concatenates the slides of several decks into one file.
package merge

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/VantageDataChat/godeck"
	"github.com/VantageDataChat/godeck/internal/logging"
)

// Skipped is an input that contributed no slides.
type Skipped struct {
	Path   string
	Reason error
}

// Summary describes a finished merge.
type Summary struct {
	Output  string
	Slides  int
	Merged  []string
	Skipped []Skipped
	Bytes   int64
}

// String renders the summary the way the CLI prints it.
func (s Summary) String() string {
	return fmt.Sprintf("%s: %s slides from %d files (%d skipped), %s",
		s.Output, humanize.Comma(int64(s.Slides)), len(s.Merged), len(s.Skipped), humanize.Bytes(uint64(s.Bytes)))
}

// Merger copies slides between decks.
type Merger struct {
	title   string
	creator string
	logger  logging.Logger
}

// Option configures a Merger.
type Option func(*Merger)

// WithTitle sets the title property of the merged deck.
func WithTitle(title string) Option {
	return func(m *Merger) { m.title = title }
}

// WithCreator sets the creator property of the merged deck.
func WithCreator(creator string) Option {
	return func(m *Merger) { m.creator = creator }
}

// WithLogger sets the logger used for progress and skipped inputs.
func WithLogger(logger logging.Logger) Option {
	return func(m *Merger) { m.logger = logging.Ensure(logger) }
}

// New returns a Merger.
func New(opts ...Option) *Merger {
	m := &Merger{logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Merge writes the slides of inputs, in order, to output with default options.
func Merge(output string, inputs []string) (Summary, error) {
	return New().Merge(output, inputs)
}

// Merge writes the slides of inputs, in order, to output. Missing or
// unreadable inputs are skipped and listed in the summary. The merged deck
// takes the canvas size of the first readable input.
func (m *Merger) Merge(output string, inputs []string) (Summary, error) {
	if len(inputs) == 0 {
		return Summary{}, noInputsError("nothing to merge")
	}

	merged := godeck.NewBlank()
	props := merged.GetDocumentProperties()
	if m.title != "" {
		props.Title = m.title
	}
	if m.creator != "" {
		props.Creator = m.creator
	}

	summary := Summary{Output: output}
	sized := false
	for i, path := range inputs {
		logger := logging.WithFile(m.logger, path, 0)
		logger.Info("merging input", "index", i+1, "total", len(inputs))

		src, err := godeck.Open(path)
		if err != nil {
			logger.Warn("input skipped", "error", err)
			summary.Skipped = append(summary.Skipped, Skipped{Path: path, Reason: err})
			continue
		}
		if !sized {
			layout := *src.GetLayout()
			merged.SetLayout(&layout)
			sized = true
		}
		for _, slide := range src.GetAllSlides() {
			merged.CopySlideFrom(slide)
		}
		summary.Slides += src.GetSlideCount()
		summary.Merged = append(summary.Merged, path)
	}

	if dir := filepath.Dir(output); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return summary, writeError(err)
		}
	}
	if err := merged.Save(output); err != nil {
		return summary, writeError(err)
	}
	if info, err := os.Stat(output); err == nil {
		summary.Bytes = info.Size()
	}
	m.logger.Info("merge complete", "output", output, "slides", summary.Slides, "size", humanize.Bytes(uint64(summary.Bytes)))
	return summary, nil
}

// CollectInputs resolves the input arguments of the merge command. A single
// directory argument expands to its .pptx files in name order, leaving out
// "~" lock files; anything else is returned unchanged.
func CollectInputs(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, noInputsError("no input files given")
	}
	if len(args) > 1 {
		return args, nil
	}
	info, err := os.Stat(args[0])
	if err != nil || !info.IsDir() {
		return args, nil
	}

	entries, err := os.ReadDir(args[0])
	if err != nil {
		return nil, listError(args[0], err)
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".pptx") || strings.HasPrefix(name, "~") {
			continue
		}
		files = append(files, filepath.Join(args[0], name))
	}
	if len(files) == 0 {
		return nil, noInputsError("no PPTX files found in " + args[0])
	}
	sort.Strings(files)
	return files, nil
}
