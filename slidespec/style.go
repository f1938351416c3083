// Package slidespec describes slides as plain values and renders them.
//
// A SlideSpec is an ordered list of ShapeSpec values (text boxes,
// rectangles, arrows, tables, pictures) positioned in inches. Specs carry no
// file-format details; a Renderer turns them into an output format, with
// typography resolved from an immutable Style.
package slidespec

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Color is an RRGGBB hex value such as "1A5276". The empty Color means
// "not set".
type Color string

// RGB returns a Color from its components.
func RGB(r, g, b uint8) Color {
	return Color(fmt.Sprintf("%02X%02X%02X", r, g, b))
}

// IsSet reports whether the color carries a value.
func (c Color) IsSet() bool { return c != "" }

var hexColor = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

func colorRule(value any) error {
	c, _ := value.(Color)
	if c == "" || hexColor.MatchString(string(c)) {
		return nil
	}
	return validation.NewError("validation_color", "must be an RRGGBB hex color")
}

// Palette names the colors used by course decks.
type Palette struct {
	Black         Color
	DarkGray      Color
	MedGray       Color
	LightGray     Color
	VeryLightGray Color
	White         Color
	Accent        Color

	// Kraljic quadrant colors, used by matrix diagrams only.
	Bottleneck Color
	Leverage   Color
	Strategic  Color
	Routine    Color
}

// FontSizes is the point size table per text role.
type FontSizes struct {
	Title     int
	Governing int
	Heading   int
	Body      int
	Bullet    int
	Caption   int
}

// Role selects a row of the font size table.
type Role int

const (
	RoleBody Role = iota
	RoleTitle
	RoleGoverning
	RoleHeading
	RoleBullet
	RoleCaption
)

func (r Role) String() string {
	switch r {
	case RoleTitle:
		return "title"
	case RoleGoverning:
		return "governing"
	case RoleHeading:
		return "heading"
	case RoleBullet:
		return "bullet"
	case RoleCaption:
		return "caption"
	default:
		return "body"
	}
}

// Style is the visual configuration handed to a Renderer. It is a value
// type: fields are read through accessors and With* methods return copies.
type Style struct {
	palette     Palette
	sizes       FontSizes
	fontName    string
	width       float64
	height      float64
	lineSpacing float64
	bulletChar  string
}

// DefaultStyle returns the course style: 10.83in x 7.50in canvas, 맑은 고딕,
// body text at 10pt.
func DefaultStyle() Style {
	return Style{
		palette: Palette{
			Black:         RGB(0, 0, 0),
			DarkGray:      RGB(51, 51, 51),
			MedGray:       RGB(102, 102, 102),
			LightGray:     RGB(204, 204, 204),
			VeryLightGray: RGB(230, 230, 230),
			White:         RGB(255, 255, 255),
			Accent:        RGB(26, 82, 118),
			Bottleneck:    RGB(230, 126, 34),
			Leverage:      RGB(39, 174, 96),
			Strategic:     RGB(142, 68, 173),
			Routine:       RGB(149, 165, 166),
		},
		sizes: FontSizes{
			Title:     20,
			Governing: 16,
			Heading:   14,
			Body:      10,
			Bullet:    12,
			Caption:   8,
		},
		fontName:    "맑은 고딕",
		width:       10.83,
		height:      7.50,
		lineSpacing: 1.5,
		bulletChar:  "•",
	}
}

func (s Style) Palette() Palette       { return s.palette }
func (s Style) FontSizes() FontSizes   { return s.sizes }
func (s Style) FontName() string       { return s.fontName }
func (s Style) LineSpacing() float64   { return s.lineSpacing }
func (s Style) BulletChar() string     { return s.bulletChar }
func (s Style) Canvas() (w, h float64) { return s.width, s.height }

// Size returns the point size for a text role.
func (s Style) Size(role Role) int {
	switch role {
	case RoleTitle:
		return s.sizes.Title
	case RoleGoverning:
		return s.sizes.Governing
	case RoleHeading:
		return s.sizes.Heading
	case RoleBullet:
		return s.sizes.Bullet
	case RoleCaption:
		return s.sizes.Caption
	default:
		return s.sizes.Body
	}
}

// WithPalette returns a copy using p.
func (s Style) WithPalette(p Palette) Style {
	s.palette = p
	return s
}

// WithFontSizes returns a copy using the given size table.
func (s Style) WithFontSizes(sizes FontSizes) Style {
	s.sizes = sizes
	return s
}

// WithFontName returns a copy writing runs in the given typeface.
func (s Style) WithFontName(name string) Style {
	s.fontName = name
	return s
}

// WithCanvas returns a copy with another slide size in inches.
func (s Style) WithCanvas(width, height float64) Style {
	s.width, s.height = width, height
	return s
}

// WithLineSpacing returns a copy with another bullet line spacing multiple.
func (s Style) WithLineSpacing(multiple float64) Style {
	s.lineSpacing = multiple
	return s
}

// Validate checks the canvas, the size table and every palette color.
func (s Style) Validate() error {
	sizes := s.sizes
	palette := s.palette
	sizeErr := validation.ValidateStruct(&sizes,
		validation.Field(&sizes.Title, validation.Required, validation.Min(1)),
		validation.Field(&sizes.Governing, validation.Required, validation.Min(1)),
		validation.Field(&sizes.Heading, validation.Required, validation.Min(1)),
		validation.Field(&sizes.Body, validation.Required, validation.Min(1)),
		validation.Field(&sizes.Bullet, validation.Required, validation.Min(1)),
		validation.Field(&sizes.Caption, validation.Required, validation.Min(1)),
	)
	paletteErr := validation.ValidateStruct(&palette,
		validation.Field(&palette.Black, validation.By(colorRule)),
		validation.Field(&palette.DarkGray, validation.By(colorRule)),
		validation.Field(&palette.MedGray, validation.By(colorRule)),
		validation.Field(&palette.LightGray, validation.By(colorRule)),
		validation.Field(&palette.VeryLightGray, validation.By(colorRule)),
		validation.Field(&palette.White, validation.By(colorRule)),
		validation.Field(&palette.Accent, validation.By(colorRule)),
		validation.Field(&palette.Bottleneck, validation.By(colorRule)),
		validation.Field(&palette.Leverage, validation.By(colorRule)),
		validation.Field(&palette.Strategic, validation.By(colorRule)),
		validation.Field(&palette.Routine, validation.By(colorRule)),
	)

	errs := validation.Errors{}
	if sizeErr != nil {
		errs["sizes"] = sizeErr
	}
	if paletteErr != nil {
		errs["palette"] = paletteErr
	}
	if s.fontName == "" {
		errs["font_name"] = validation.NewError("validation_required", "cannot be blank")
	}
	if s.width <= 0 || s.height <= 0 {
		errs["canvas"] = validation.NewError("validation_canvas", "width and height must be positive")
	}
	if s.lineSpacing <= 0 {
		errs["line_spacing"] = validation.NewError("validation_line_spacing", "must be positive")
	}
	if err := errs.Filter(); err != nil {
		return invalidStyleError(err)
	}
	return nil
}
