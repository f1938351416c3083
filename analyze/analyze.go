// Package analyze measures the layout of reference decks: shapes per slide
// by kind, covered area and the fonts in use. Its numbers set the density
// targets the generator aims for.
package analyze

import (
	"slices"

	"github.com/VantageDataChat/godeck"
)

// DefaultLimit is the number of leading slides averaged by default.
const DefaultLimit = 15

// HighDensityShapes is the shape count above which a slide is flagged.
const HighDensityShapes = 50

// SlideStats are the counts of one slide's top-level shapes.
type SlideStats struct {
	Number     int
	Shapes     int
	AutoShapes int
	TextBoxes  int
	Groups     int
	Pictures   int
	Tables     int
	Connectors int
	// Density is the rough estimate min(100, shapes*2).
	Density     int
	HighDensity bool
	// Coverage is the summed shape area as a percentage of the slide.
	Coverage float64
}

// Averages are per-slide means over the analysed slides.
type Averages struct {
	Shapes     float64
	AutoShapes float64
	TextBoxes  float64
	Groups     float64
	Coverage   float64
}

// Report is the analysis of one deck.
type Report struct {
	Path         string
	WidthInches  float64
	HeightInches float64
	AspectRatio  float64
	SlideCount   int
	// Slides holds the first Limit slides.
	Slides   []SlideStats
	Averages Averages
	// FontSizes lists every explicit run size in use, ascending.
	FontSizes      []int
	MostCommonSize int
	Fonts          []string
}

// HighDensitySlides returns the numbers of flagged slides.
func (r Report) HighDensitySlides() []int {
	var out []int
	for _, s := range r.Slides {
		if s.HighDensity {
			out = append(out, s.Number)
		}
	}
	return out
}

// Analyze opens the deck at path and analyses its first limit slides.
// A non-positive limit analyses every slide.
func Analyze(path string, limit int) (Report, error) {
	pres, err := godeck.Open(path)
	if err != nil {
		return Report{}, openError(path, err)
	}
	r := AnalyzePresentation(pres, limit)
	r.Path = path
	return r, nil
}

// AnalyzePresentation analyses a loaded deck.
func AnalyzePresentation(pres *godeck.Presentation, limit int) Report {
	layout := pres.GetLayout()
	r := Report{
		WidthInches:  layout.WidthInches(),
		HeightInches: layout.HeightInches(),
		SlideCount:   pres.GetSlideCount(),
	}
	if layout.CY > 0 {
		r.AspectRatio = float64(layout.CX) / float64(layout.CY)
	}
	slideArea := float64(layout.CX) * float64(layout.CY)

	slides := pres.GetAllSlides()
	if limit > 0 && len(slides) > limit {
		slides = slides[:limit]
	}

	sizeCounts := map[int]int{}
	fonts := map[string]bool{}
	for i, slide := range slides {
		st := SlideStats{Number: i + 1, Shapes: len(slide.GetShapes())}
		var area float64
		for _, sh := range slide.GetShapes() {
			area += float64(sh.GetWidth()) * float64(sh.GetHeight())
			switch sh.GetType() {
			case godeck.ShapeTypeAutoShape:
				st.AutoShapes++
			case godeck.ShapeTypeRichText:
				st.TextBoxes++
			case godeck.ShapeTypeGroup:
				st.Groups++
			case godeck.ShapeTypeDrawing:
				st.Pictures++
			case godeck.ShapeTypeTable:
				st.Tables++
			case godeck.ShapeTypeLine:
				st.Connectors++
			}
		}
		st.Density = min(100, st.Shapes*2)
		st.HighDensity = st.Shapes > HighDensityShapes
		if slideArea > 0 {
			st.Coverage = area / slideArea * 100
		}
		r.Slides = append(r.Slides, st)

		slide.WalkShapes(func(sh godeck.Shape) {
			var runs []*godeck.TextRun
			switch s := sh.(type) {
			case *godeck.RichTextShape:
				runs = s.Runs()
			case *godeck.AutoShape:
				runs = s.Runs()
			}
			for _, run := range runs {
				f := run.GetFont()
				if f.HasSize() {
					sizeCounts[f.Size]++
				}
				if f.Name != "" {
					fonts[f.Name] = true
				}
			}
		})
	}

	if n := float64(len(r.Slides)); n > 0 {
		for _, st := range r.Slides {
			r.Averages.Shapes += float64(st.Shapes)
			r.Averages.AutoShapes += float64(st.AutoShapes)
			r.Averages.TextBoxes += float64(st.TextBoxes)
			r.Averages.Groups += float64(st.Groups)
			r.Averages.Coverage += st.Coverage
		}
		r.Averages.Shapes /= n
		r.Averages.AutoShapes /= n
		r.Averages.TextBoxes /= n
		r.Averages.Groups /= n
		r.Averages.Coverage /= n
	}

	for size, count := range sizeCounts {
		r.FontSizes = append(r.FontSizes, size)
		if count > sizeCounts[r.MostCommonSize] || (count == sizeCounts[r.MostCommonSize] && size < r.MostCommonSize) {
			r.MostCommonSize = size
		}
	}
	slices.Sort(r.FontSizes)
	for name := range fonts {
		r.Fonts = append(r.Fonts, name)
	}
	slices.Sort(r.Fonts)
	return r
}
