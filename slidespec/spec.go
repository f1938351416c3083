package slidespec

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Rect is a frame in inches from the top-left corner of the slide.
type Rect struct {
	X, Y, W, H float64
}

// Box is shorthand for Rect{x, y, w, h}.
func Box(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) validate() error {
	if r.W <= 0 || r.H <= 0 {
		return fmt.Errorf("frame %.2fx%.2f must have positive size", r.W, r.H)
	}
	return nil
}

// Point is a position in inches.
type Point struct {
	X, Y float64
}

// Align is the horizontal alignment of paragraphs.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Anchor is the vertical position of text inside its frame.
type Anchor int

const (
	AnchorTop Anchor = iota
	AnchorMiddle
	AnchorBottom
)

// TextStyle describes how the text of one shape is set. Size overrides the
// role's size from the Style when positive. An unset Color falls back to the
// palette's dark gray.
type TextStyle struct {
	Role   Role
	Size   int
	Bold   bool
	Color  Color
	Align  Align
	Anchor Anchor
}

// Text returns a TextStyle for role.
func Text(role Role) TextStyle {
	return TextStyle{Role: role}
}

// Bolded returns a bold copy.
func (t TextStyle) Bolded() TextStyle {
	t.Bold = true
	return t
}

// Colored returns a copy in c.
func (t TextStyle) Colored(c Color) TextStyle {
	t.Color = c
	return t
}

// Aligned returns a copy with the given alignment and anchor.
func (t TextStyle) Aligned(a Align, anchor Anchor) TextStyle {
	t.Align, t.Anchor = a, anchor
	return t
}

// Sized returns a copy with an explicit point size.
func (t TextStyle) Sized(pt int) TextStyle {
	t.Size = pt
	return t
}

// ShapeSpec is one of TextBox, Rectangle, Arrow, Table or Picture.
type ShapeSpec interface {
	// Kind names the variant, for logs and text renderers.
	Kind() string
	validate() error
}

// TextBox is a frameless text shape. Each entry of Lines becomes one
// paragraph; with Bullets set every paragraph gets the style's bullet
// character and line spacing.
type TextBox struct {
	Frame   Rect
	Lines   []string
	Style   TextStyle
	Bullets bool
}

// RectKind is the outline of a Rectangle.
type RectKind int

const (
	RectPlain RectKind = iota
	RectRounded
	RectEllipse
)

// Rectangle is a filled shape that may carry centered text.
type Rectangle struct {
	Frame Rect
	Shape RectKind
	Fill  Color
	Line  Color
	Lines []string
	Style TextStyle
}

// Arrow is a straight connector with an arrow head at To.
type Arrow struct {
	From, To Point
	Color    Color
	WidthPt  float64
}

// Table is a grid of text. The first row is the header when HeaderFill is set.
type Table struct {
	Frame      Rect
	Rows       [][]string
	Style      TextStyle
	HeaderFill Color
}

// Picture is an embedded raster image. Alt becomes the picture's alternative
// text.
type Picture struct {
	Frame    Rect
	Data     []byte
	MimeType string
	Alt      string
}

func (TextBox) Kind() string   { return "text" }
func (Rectangle) Kind() string { return "rect" }
func (Arrow) Kind() string     { return "arrow" }
func (Table) Kind() string     { return "table" }
func (Picture) Kind() string   { return "picture" }

func (t TextBox) validate() error {
	return t.Frame.validate()
}

func (r Rectangle) validate() error {
	if err := r.Frame.validate(); err != nil {
		return err
	}
	return validation.Validate(r.Fill, validation.By(colorRule))
}

func (a Arrow) validate() error {
	if a.From == a.To {
		return errors.New("arrow has zero length")
	}
	return nil
}

func (t Table) validate() error {
	if err := t.Frame.validate(); err != nil {
		return err
	}
	if t.Columns() == 0 {
		return errors.New("table has no cells")
	}
	return nil
}

func (p Picture) validate() error {
	if err := p.Frame.validate(); err != nil {
		return err
	}
	if len(p.Data) == 0 {
		return errors.New("picture has no data")
	}
	return nil
}

// Columns returns the width of the widest row.
func (t Table) Columns() int {
	n := 0
	for _, row := range t.Rows {
		n = max(n, len(row))
	}
	return n
}

// SlideSpec is the content of one slide. Shapes are drawn in order, later
// shapes on top.
type SlideSpec struct {
	Title      string
	Background Color
	Shapes     []ShapeSpec
}

// NewSlide returns an empty SlideSpec named title.
func NewSlide(title string) SlideSpec {
	return SlideSpec{Title: title}
}

// With returns a copy with shapes appended. The receiver is left untouched.
func (s SlideSpec) With(shapes ...ShapeSpec) SlideSpec {
	out := make([]ShapeSpec, 0, len(s.Shapes)+len(shapes))
	out = append(out, s.Shapes...)
	out = append(out, shapes...)
	s.Shapes = out
	return s
}

// Validate checks every shape of the slide.
func (s SlideSpec) Validate() error {
	var problems []string
	for i, sh := range s.Shapes {
		if sh == nil {
			problems = append(problems, fmt.Sprintf("shape %d is nil", i+1))
			continue
		}
		if err := sh.validate(); err != nil {
			problems = append(problems, fmt.Sprintf("shape %d (%s): %v", i+1, sh.Kind(), err))
		}
	}
	if err := validation.Validate(s.Background, validation.By(colorRule)); err != nil {
		problems = append(problems, "background: "+err.Error())
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// TextLines returns the text of every shape in drawing order.
func (s SlideSpec) TextLines() []string {
	var lines []string
	for _, sh := range s.Shapes {
		switch v := sh.(type) {
		case TextBox:
			lines = append(lines, v.Lines...)
		case Rectangle:
			lines = append(lines, v.Lines...)
		case Table:
			for _, row := range v.Rows {
				lines = append(lines, strings.Join(row, " | "))
			}
		}
	}
	return lines
}
