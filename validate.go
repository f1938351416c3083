package godeck

import (
	"errors"
	"fmt"
)

// ErrMalformed marks a presentation that cannot be written as a valid deck.
var ErrMalformed = errors.New("malformed presentation")

// Problem locates one structural defect. Slide and Shape are 1-based; zero
// means the problem is not tied to a slide or shape.
type Problem struct {
	Slide  int
	Shape  int
	Reason string
}

func (p *Problem) Error() string {
	switch {
	case p.Slide == 0:
		return p.Reason
	case p.Shape == 0:
		return fmt.Sprintf("slide %d: %s", p.Slide, p.Reason)
	}
	return fmt.Sprintf("slide %d shape %d: %s", p.Slide, p.Shape, p.Reason)
}

func (p *Problem) Unwrap() error { return ErrMalformed }

// Validate walks the deck and joins one *Problem per defect, or returns nil.
// Group members are reported against the index of their top-level group.
func (p *Presentation) Validate() error {
	var problems []error
	report := func(slide, shape int, format string, args ...any) {
		problems = append(problems, &Problem{Slide: slide, Shape: shape, Reason: fmt.Sprintf(format, args...)})
	}

	switch {
	case p.properties == nil:
		report(0, 0, "no document properties")
	case p.layout == nil:
		report(0, 0, "no slide layout")
	case p.layout.CX <= 0 || p.layout.CY <= 0:
		report(0, 0, "slide size %dx%d EMU is not positive", p.layout.CX, p.layout.CY)
	}
	if len(p.slides) == 0 {
		report(0, 0, "no slides")
	}

	for si, slide := range p.slides {
		for hi, shape := range slide.shapes {
			for _, reason := range shapeProblems(shape) {
				report(si+1, hi+1, "%s", reason)
			}
		}
	}
	return errors.Join(problems...)
}

func shapeProblems(shape Shape) []string {
	if shape == nil {
		return []string{"nil shape"}
	}
	var out []string
	if shape.GetWidth() < 0 || shape.GetHeight() < 0 {
		out = append(out, "negative extent")
	}
	switch sh := shape.(type) {
	case *RichTextShape:
		if len(sh.paragraphs) == 0 {
			out = append(out, "text box without paragraphs")
		}
		out = append(out, paragraphProblems(sh.paragraphs)...)
	case *AutoShape:
		out = append(out, paragraphProblems(sh.paragraphs)...)
	case *TableShape:
		if sh.numRows <= 0 || sh.numCols <= 0 {
			out = append(out, "empty table")
		} else if len(sh.rows) != sh.numRows {
			out = append(out, fmt.Sprintf("table has %d of %d rows", len(sh.rows), sh.numRows))
		}
	case *DrawingShape:
		if len(sh.data) == 0 && sh.path == "" {
			out = append(out, "picture without image data")
		}
		switch sh.mimeType {
		case "", "image/png", "image/jpeg", "image/gif", "image/svg+xml":
		default:
			out = append(out, "unsupported picture type "+sh.mimeType)
		}
	case *LineShape:
		if !isValidARGB(sh.lineColor.ARGB) {
			out = append(out, "line color "+sh.lineColor.ARGB+" is not ARGB")
		}
	case *GroupShape:
		for _, member := range sh.shapes {
			out = append(out, shapeProblems(member)...)
		}
	}
	return out
}

func paragraphProblems(paragraphs []*Paragraph) []string {
	var out []string
	for i, para := range paragraphs {
		if para == nil {
			out = append(out, fmt.Sprintf("paragraph %d is nil", i+1))
			continue
		}
		for _, elem := range para.elements {
			if tr, ok := elem.(*TextRun); elem == nil || (ok && tr.font == nil) {
				out = append(out, fmt.Sprintf("paragraph %d has a run without font", i+1))
				break
			}
		}
	}
	return out
}
