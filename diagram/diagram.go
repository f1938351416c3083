// Package diagram draws the explanatory figures embedded in course decks.
//
// A Diagram is an ordered list of primitives on a pixel canvas. Primitives
// are styled by class, the same class names the SVG output declares in its
// style sheet, so the SVG and the rasterised PNG agree on colors and type.
package diagram

import (
	"strconv"
	"strings"

	"github.com/VantageDataChat/godeck/internal/logging"
	"github.com/VantageDataChat/godeck/slidespec"
)

// Class names a paint style shared by the SVG style sheet and the rasteriser.
type Class string

const (
	ClassBox       Class = "box"
	ClassBoxDark   Class = "box-dark"
	ClassArrow     Class = "arrow"
	ClassLine      Class = "line"
	ClassText      Class = "text"
	ClassTextBold  Class = "text-bold"
	ClassTextSmall Class = "text-small"
	ClassTextWhite Class = "text-white"
	ClassCircle    Class = "circle"
	ClassAccent    Class = "bg-accent"
)

// Anchor is the horizontal text anchor.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
)

const (
	arrowHead     = 10.0
	lineHeight    = 18.0
	textBaseline  = 5.0
	defaultFont   = "맑은 고딕"
	svgFontFamily = "'Malgun Gothic', Arial, sans-serif"
)

// Point is a canvas position in pixels.
type Point struct{ X, Y float64 }

// Element is one drawing primitive.
type Element interface {
	class() Class
}

// Rect is a rectangle with optional rounded corners. Fill and Stroke
// override the class paint when set.
type Rect struct {
	X, Y, W, H float64
	RX         float64
	Class      Class
	Fill       slidespec.Color
	Stroke     slidespec.Color
}

// Line is a straight segment.
type Line struct {
	X1, Y1, X2, Y2 float64
	Class          Class
}

// Polygon is a closed filled outline.
type Polygon struct {
	Points []Point
	Class  Class
}

// Circle is a filled circle.
type Circle struct {
	CX, CY, R float64
	Class     Class
}

// Text is a single line of text positioned at its baseline. Size and Fill
// override the class when non-zero.
type Text struct {
	X, Y    float64
	Content string
	Class   Class
	Anchor  Anchor
	Bold    bool
	Size    float64
	Fill    slidespec.Color
}

func (r Rect) class() Class    { return r.Class }
func (l Line) class() Class    { return l.Class }
func (p Polygon) class() Class { return p.Class }
func (c Circle) class() Class  { return c.Class }
func (t Text) class() Class    { return t.Class }

// Diagram is a named figure of fixed pixel size.
type Diagram struct {
	Name     string
	Width    int
	Height   int
	Elements []Element

	palette  slidespec.Palette
	fontName string
	logger   logging.Logger
}

// Option configures a Diagram.
type Option func(*Diagram)

// WithPalette replaces the default course palette.
func WithPalette(p slidespec.Palette) Option {
	return func(d *Diagram) { d.palette = p }
}

// WithFontName sets the font used when rasterising text.
func WithFontName(name string) Option {
	return func(d *Diagram) {
		if name = strings.TrimSpace(name); name != "" {
			d.fontName = name
		}
	}
}

// WithLogger sets the logger used while rasterising.
func WithLogger(logger logging.Logger) Option {
	return func(d *Diagram) { d.logger = logging.Ensure(logger) }
}

// New returns an empty diagram of width by height pixels.
func New(name string, width, height int, opts ...Option) *Diagram {
	d := &Diagram{
		Name:     name,
		Width:    width,
		Height:   height,
		palette:  slidespec.DefaultStyle().Palette(),
		fontName: defaultFont,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Palette returns the palette the diagram is painted with.
func (d *Diagram) Palette() slidespec.Palette { return d.palette }

// Add appends primitives in drawing order.
func (d *Diagram) Add(elements ...Element) *Diagram {
	d.Elements = append(d.Elements, elements...)
	return d
}

// Box adds a rounded rectangle with an optional label centred inside it.
// Labels containing "\n" are laid out one line per row around the centre.
func (d *Diagram) Box(x, y, w, h, rx float64, class Class, label string, textClass Class) *Diagram {
	d.Add(Rect{X: x, Y: y, W: w, H: h, RX: rx, Class: class})
	if label == "" {
		return d
	}
	lines := strings.Split(label, "\n")
	cx := x + w/2
	top := y + h/2 + textBaseline - lineHeight*float64(len(lines)-1)/2
	for i, line := range lines {
		d.Add(Text{X: cx, Y: top + lineHeight*float64(i), Content: line, Class: textClass, Anchor: AnchorMiddle})
	}
	return d
}

// Label adds a line of text.
func (d *Diagram) Label(x, y float64, content string, class Class, anchor Anchor) *Diagram {
	return d.Add(Text{X: x, Y: y, Content: content, Class: class, Anchor: anchor})
}

// ArrowRight adds a horizontal arrow from x1 to x2 with the head at x2.
func (d *Diagram) ArrowRight(x1, y, x2 float64) *Diagram {
	return d.Add(
		Line{X1: x1, Y1: y, X2: x2 - arrowHead, Y2: y, Class: ClassLine},
		Polygon{Class: ClassArrow, Points: []Point{
			{x2 - arrowHead, y - 5}, {x2, y}, {x2 - arrowHead, y + 5},
		}},
	)
}

// ArrowDown adds a vertical arrow from y1 to y2 with the head at y2.
func (d *Diagram) ArrowDown(x, y1, y2 float64) *Diagram {
	return d.Add(
		Line{X1: x, Y1: y1, X2: x, Y2: y2 - arrowHead, Class: ClassLine},
		Polygon{Class: ClassArrow, Points: []Point{
			{x - 5, y2 - arrowHead}, {x, y2}, {x + 5, y2 - arrowHead},
		}},
	)
}

// Number adds an accent circle with a bold white number in it.
func (d *Diagram) Number(cx, cy, r float64, n int) *Diagram {
	return d.Add(
		Circle{CX: cx, CY: cy, R: r, Class: ClassCircle},
		Text{X: cx, Y: cy + textBaseline, Content: strconv.Itoa(n), Class: ClassTextWhite, Anchor: AnchorMiddle, Bold: true},
	)
}

// Texts returns the text content of the diagram in drawing order.
func (d *Diagram) Texts() []string {
	var out []string
	for _, el := range d.Elements {
		if t, ok := el.(Text); ok {
			out = append(out, t.Content)
		}
	}
	return out
}

// paint is the resolved style of a class.
type paint struct {
	fill        slidespec.Color
	stroke      slidespec.Color
	strokeWidth float64
	fontSize    float64
	bold        bool
}

func (p paint) isText() bool { return p.fontSize > 0 }

// paints maps each class to its paint for the diagram palette.
func (d *Diagram) paints() map[Class]paint {
	p := d.palette
	return map[Class]paint{
		ClassBox:       {fill: p.VeryLightGray, stroke: p.MedGray, strokeWidth: 2},
		ClassBoxDark:   {fill: p.MedGray, stroke: p.DarkGray, strokeWidth: 2},
		ClassArrow:     {fill: p.MedGray},
		ClassLine:      {stroke: p.MedGray, strokeWidth: 2},
		ClassText:      {fill: p.DarkGray, fontSize: 14},
		ClassTextBold:  {fill: p.Black, fontSize: 16, bold: true},
		ClassTextSmall: {fill: p.MedGray, fontSize: 11},
		ClassTextWhite: {fill: p.White, fontSize: 14},
		ClassCircle:    {fill: p.Accent},
		ClassAccent:    {fill: p.Accent},
	}
}

// classOrder fixes the order classes are declared in the style sheet.
var classOrder = []Class{
	ClassBox, ClassBoxDark, ClassArrow, ClassLine, ClassText,
	ClassTextBold, ClassTextSmall, ClassTextWhite, ClassCircle, ClassAccent,
}
