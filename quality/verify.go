// Package quality checks generated lecture decks against the layout and
// typography conventions of the course: canvas size, slide count, explicit
// font sizes, body text share and shape density.
package quality

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/VantageDataChat/godeck"
	"github.com/VantageDataChat/godeck/internal/logging"
)

// Verifier runs the checks of one Config. It holds no per-run state.
type Verifier struct {
	config Config
	logger logging.Logger
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithConfig replaces the default thresholds.
func WithConfig(cfg Config) Option {
	return func(v *Verifier) {
		v.config = cfg
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger logging.Logger) Option {
	return func(v *Verifier) {
		v.logger = logging.Ensure(logger)
	}
}

// New returns a Verifier, failing when the configured thresholds are invalid.
func New(opts ...Option) (*Verifier, error) {
	v := &Verifier{config: DefaultConfig(), logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	if err := v.config.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// Verify checks the deck at path with the default thresholds.
func Verify(path string) Result {
	v, _ := New()
	return v.Verify(path)
}

// Verify checks the deck at path. A missing or unreadable file yields a
// failing result carrying a single error; Verify never returns an error.
func (v *Verifier) Verify(path string) Result {
	res, err := v.VerifyFile(path)
	if err != nil {
		v.logger.Warn("deck could not be verified", "path", path, "error", err)
		return newResult([]string{failureMessage(path, err)}, nil, Stats{})
	}
	return res
}

// VerifyFile checks the deck at path and returns the categorised error when
// the file is missing or malformed.
func (v *Verifier) VerifyFile(path string) (Result, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, notFoundError(path, err)
		}
		return Result{}, malformedError(path, err)
	}
	pres, err := godeck.Open(path)
	if err != nil {
		return Result{}, malformedError(path, err)
	}
	res := v.VerifyPresentation(pres)
	logging.WithFile(v.logger, path, 0).Debug("deck verified",
		"passed", res.Passed, "errors", len(res.Errors), "warnings", len(res.Warnings))
	return res, nil
}

// VerifyPresentation checks an already loaded deck.
func (v *Verifier) VerifyPresentation(pres *godeck.Presentation) Result {
	cfg := v.config
	var errs, warnings []string

	layout := pres.GetLayout()
	stats := Stats{
		Collected:        true,
		WidthInches:      layout.WidthInches(),
		HeightInches:     layout.HeightInches(),
		SlideCount:       pres.GetSlideCount(),
		SizeDistribution: map[int]int{},
		TargetSize:       cfg.TargetSize,
	}

	if off(stats.WidthInches, cfg.WidthInches, cfg.Tolerance) {
		errs = append(errs, fmt.Sprintf("❌ 슬라이드 너비 오류: %.2f\" (목표: %.2f\")", stats.WidthInches, cfg.WidthInches))
	}
	if off(stats.HeightInches, cfg.HeightInches, cfg.Tolerance) {
		errs = append(errs, fmt.Sprintf("❌ 슬라이드 높이 오류: %.2f\" (목표: %.2f\")", stats.HeightInches, cfg.HeightInches))
	}

	if stats.SlideCount < cfg.MinSlides {
		warnings = append(warnings, fmt.Sprintf("⚠️ 슬라이드 개수 부족: %d장 (목표: %d장)", stats.SlideCount, cfg.TargetSlides))
	}

	topLevel := 0
	var missingGoverning []int
	for i, slide := range pres.GetAllSlides() {
		topLevel += len(slide.GetShapes())
		governing := false
		for _, run := range textRuns(slide) {
			if strings.TrimSpace(run.GetText()) == "" {
				continue
			}
			stats.TotalTextRuns++
			font := run.GetFont()
			if !font.HasSize() {
				stats.UnsizedRuns++
				continue
			}
			stats.SizeDistribution[font.Size]++
			if font.Size == cfg.GoverningSize && font.Bold {
				governing = true
			}
		}
		number := i + 1
		if cfg.CheckGoverning && number >= cfg.GoverningFrom && number <= cfg.GoverningTo && !governing {
			missingGoverning = append(missingGoverning, number)
		}
	}

	if stats.UnsizedRuns > 0 {
		errs = append(errs, fmt.Sprintf("❌ 폰트 크기 누락: %d개 run에 font.size = None!", stats.UnsizedRuns))
	}

	if stats.TotalTextRuns > 0 {
		stats.HasRatio = true
		stats.TargetRatio = float64(stats.SizeDistribution[cfg.TargetSize]) / float64(stats.TotalTextRuns)
		if stats.TargetRatio < cfg.MinTargetRatio {
			warnings = append(warnings, fmt.Sprintf("⚠️ %dpt 폰트 비율 낮음: %.1f%% (목표: %.0f%%+)",
				cfg.TargetSize, stats.TargetRatio*100, cfg.GoalRatio*100))
		}
	}

	if stats.SlideCount > 0 {
		stats.AvgShapesPerSlide = float64(topLevel) / float64(stats.SlideCount)
	}
	if stats.AvgShapesPerSlide < cfg.MinAvgShapes {
		warnings = append(warnings, fmt.Sprintf("⚠️ 평균 Shape 개수 부족: %.1f (목표: %.0f+)", stats.AvgShapesPerSlide, cfg.GoalAvgShapes))
	}

	if len(missingGoverning) > 0 {
		warnings = append(warnings, fmt.Sprintf("⚠️ 거버닝 메시지(%dpt Bold) 누락 의심 슬라이드: %s",
			cfg.GoverningSize, joinInts(missingGoverning)))
	}

	return newResult(errs, warnings, stats)
}

// textRuns collects the authored runs of every text box and auto shape on
// the slide, group members included. Table cells and a:fld fields are not
// counted.
func textRuns(slide *godeck.Slide) []*godeck.TextRun {
	var runs []*godeck.TextRun
	keep := func(all []*godeck.TextRun) {
		for _, tr := range all {
			if !tr.IsField() {
				runs = append(runs, tr)
			}
		}
	}
	slide.WalkShapes(func(sh godeck.Shape) {
		switch s := sh.(type) {
		case *godeck.RichTextShape:
			keep(s.Runs())
		case *godeck.AutoShape:
			keep(s.Runs())
		}
	})
	return runs
}

func off(actual, want, tolerance float64) bool {
	d := actual - want
	if d < 0 {
		d = -d
	}
	return d > tolerance
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

func failureMessage(path string, err error) string {
	if errors.Is(err, ErrNotFound) {
		return "❌ 파일이 없습니다: " + path
	}
	return "❌ 파일을 열 수 없습니다: " + path
}
