// Package course plans lecture decks: it turns the sections of a course
// document into slide specs (cover, objectives, introduction, table of
// contents, one slide per section and filler up to a target count).
package course

import (
	"github.com/VantageDataChat/godeck/internal/logging"
	"github.com/VantageDataChat/godeck/slidespec"
)

const (
	// DefaultTargetSlides is the deck length the verifier expects.
	DefaultTargetSlides = 48
	// DefaultGoverning is used when a section has no aside to summarise it.
	DefaultGoverning = "핵심 내용을 학습합니다."
	// DefaultBullet is used when a section has no bullets.
	DefaultBullet = "내용을 참조하세요."

	maxGoverningRunes = 100
	maxBullets        = 5
	maxObjectives     = 4
	maxTOCEntries     = 8
)

// Options control the planner.
type Options struct {
	Style slidespec.Style
	// TargetSlides caps the deck and pads it with filler slides. Zero
	// disables both.
	TargetSlides int
	// Objectives are listed on the learning objectives slide. When empty
	// the first chapter titles are used.
	Objectives []string
	// Diagrams maps a 1-based slide number to PNG data placed on that
	// content slide.
	Diagrams map[int][]byte
	// Dense adds panels, numbered markers and connectors to content slides.
	Dense  bool
	Logger logging.Logger
}

// DefaultOptions returns the settings for a 48 slide dense deck in the
// default style.
func DefaultOptions() Options {
	return Options{
		Style:        slidespec.DefaultStyle(),
		TargetSlides: DefaultTargetSlides,
		Dense:        true,
	}
}
