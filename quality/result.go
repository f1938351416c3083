package quality

import (
	"fmt"
	"maps"
)

// Result is the outcome of one verification pass.
type Result struct {
	Passed   bool
	Errors   []string
	Warnings []string
	Stats    map[string]any
}

// Stats are the metrics gathered while verifying. A zero Stats with
// Collected false means the deck could not be read.
type Stats struct {
	Collected bool

	WidthInches  float64
	HeightInches float64
	SlideCount   int

	TotalTextRuns int
	UnsizedRuns   int
	// SizeDistribution counts sized runs by whole point size.
	SizeDistribution map[int]int

	TargetSize  int
	TargetRatio float64
	HasRatio    bool

	AvgShapesPerSlide float64
}

// Stats keys as they appear in Result.Stats.
const (
	StatDimensions       = "dimensions"
	StatSlideCount       = "slide_count"
	StatTotalTextRuns    = "total_text_runs"
	StatSizeDistribution = "font_size_distribution"
	StatAvgShapes        = "avg_shapes_per_slide"
)

// RatioKey returns the stats key of the share of the given point size,
// "10pt_ratio" for the default config.
func RatioKey(size int) string {
	return fmt.Sprintf("%dpt_ratio", size)
}

// Map renders the stats under their report keys. An uncollected Stats
// yields an empty map.
func (s Stats) Map() map[string]any {
	out := map[string]any{}
	if !s.Collected {
		return out
	}
	out[StatDimensions] = fmt.Sprintf("%.2f\" × %.2f\"", s.WidthInches, s.HeightInches)
	out[StatSlideCount] = s.SlideCount
	out[StatTotalTextRuns] = s.TotalTextRuns
	dist := make(map[int]int, len(s.SizeDistribution))
	maps.Copy(dist, s.SizeDistribution)
	out[StatSizeDistribution] = dist
	if s.HasRatio {
		out[RatioKey(s.TargetSize)] = fmt.Sprintf("%.1f%%", s.TargetRatio*100)
	}
	out[StatAvgShapes] = fmt.Sprintf("%.1f", s.AvgShapesPerSlide)
	return out
}

func newResult(errs, warnings []string, stats Stats) Result {
	if errs == nil {
		errs = []string{}
	}
	if warnings == nil {
		warnings = []string{}
	}
	return Result{
		Passed:   len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
		Stats:    stats.Map(),
	}
}
