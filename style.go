package godeck

import (
	"strings"
)

// Color represents an ARGB color.
type Color struct {
	ARGB string // 8-character hex string, e.g., "FF000000" for black
}

// Predefined colors.
var (
	ColorBlack = Color{ARGB: "FF000000"}
	ColorWhite = Color{ARGB: "FFFFFFFF"}
)

// NewColor creates a new Color from an ARGB hex string.
// Accepts 6-char RGB (e.g. "1A5276") or 8-char ARGB (e.g. "FF1A5276").
// A leading "#" is stripped automatically.
func NewColor(argb string) Color {
	argb = strings.TrimPrefix(argb, "#")
	if len(argb) == 6 {
		argb = "FF" + argb
	}
	argb = strings.ToUpper(argb)
	if !isValidARGB(argb) {
		return ColorBlack
	}
	return Color{ARGB: argb}
}

// isValidARGB checks that s is exactly 8 hex characters.
func isValidARGB(s string) bool {
	if len(s) != 8 {
		return false
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

// RGB returns the six-digit hex form without alpha, e.g. "1A5276".
func (c Color) RGB() string {
	return colorRGB(c)
}

// GetRed returns the red component (0-255).
func (c Color) GetRed() uint8 { return parseHexByte(c.ARGB, 2) }

// GetGreen returns the green component (0-255).
func (c Color) GetGreen() uint8 { return parseHexByte(c.ARGB, 4) }

// GetBlue returns the blue component (0-255).
func (c Color) GetBlue() uint8 { return parseHexByte(c.ARGB, 6) }

// GetAlpha returns the alpha component (0-255).
func (c Color) GetAlpha() uint8 { return parseHexByte(c.ARGB, 0) }

func parseHexByte(s string, offset int) uint8 {
	if offset+2 > len(s) {
		return 0
	}
	h := hexVal(s[offset])
	l := hexVal(s[offset+1])
	if h < 0 || l < 0 {
		return 0
	}
	return uint8(h<<4 | l)
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return -1
	}
}

// Font represents run-level text properties.
//
// A Size of zero means the run carries no explicit size and inherits it from
// the master text styles. Such runs are written without the sz attribute.
type Font struct {
	Name   string
	NameEA string // East Asian typeface, written as <a:ea>
	Size   int    // in points, 0 = inherit
	Bold   bool
	Italic bool
	Color  Color
}

// NewFont creates a new Font with no explicit size.
func NewFont() *Font {
	return &Font{
		Color: ColorBlack,
	}
}

// HasSize reports whether the font carries an explicit point size.
func (f *Font) HasSize() bool {
	return f != nil && f.Size > 0
}

// SetBold sets the bold property and returns the font for chaining.
func (f *Font) SetBold(bold bool) *Font {
	f.Bold = bold
	return f
}

// SetItalic sets the italic property.
func (f *Font) SetItalic(italic bool) *Font {
	f.Italic = italic
	return f
}

// SetSize sets the font size in points (clamped to 1–4000).
func (f *Font) SetSize(size int) *Font {
	if size < 1 {
		size = 1
	}
	if size > 4000 {
		size = 4000
	}
	f.Size = size
	return f
}

// SetColor sets the font color.
func (f *Font) SetColor(color Color) *Font {
	f.Color = color
	return f
}

// SetName sets both the Latin and East Asian typeface.
func (f *Font) SetName(name string) *Font {
	f.Name = name
	f.NameEA = name
	return f
}

func (f *Font) clone() *Font {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}

// Alignment represents paragraph alignment.
type Alignment struct {
	Horizontal HorizontalAlignment
	Level      int
}

// HorizontalAlignment represents horizontal text alignment.
type HorizontalAlignment string

const (
	HorizontalLeft    HorizontalAlignment = "l"
	HorizontalCenter  HorizontalAlignment = "ctr"
	HorizontalRight   HorizontalAlignment = "r"
	HorizontalJustify HorizontalAlignment = "just"
)

// NewAlignment creates a left-aligned, level 0 alignment.
func NewAlignment() *Alignment {
	return &Alignment{Horizontal: HorizontalLeft}
}

// SetHorizontal sets horizontal alignment.
func (a *Alignment) SetHorizontal(h HorizontalAlignment) *Alignment {
	a.Horizontal = h
	return a
}

// Fill represents a shape fill.
type Fill struct {
	Type  FillType
	Color Color
}

// FillType represents the type of fill.
type FillType int

const (
	FillNone FillType = iota
	FillSolid
)

// NewFill creates a new Fill with no fill.
func NewFill() *Fill {
	return &Fill{Type: FillNone}
}

// SetSolid sets a solid fill.
func (f *Fill) SetSolid(color Color) *Fill {
	f.Type = FillSolid
	f.Color = color
	return f
}

// Border represents a shape outline.
type Border struct {
	Style BorderStyle
	Width int // in EMU
	Color Color
}

// BorderStyle represents the border line style.
type BorderStyle string

const (
	BorderNone  BorderStyle = "none"
	BorderSolid BorderStyle = "solid"
	BorderDash  BorderStyle = "dash"
	BorderDot   BorderStyle = "dot"
)

// NewBorder creates a new Border with no outline.
func NewBorder() *Border {
	return &Border{Style: BorderNone}
}

// SetSolid sets a solid outline of the given width in points.
func (b *Border) SetSolid(color Color, widthPt float64) *Border {
	b.Style = BorderSolid
	b.Color = color
	b.Width = int(Point(widthPt))
	return b
}

// Bullet describes a paragraph bullet.
type Bullet struct {
	Type      BulletType
	Char      string
	Font      string
	Color     *Color
	Size      int // percent of text size
	NumFormat NumFormat
	StartAt   int
}

// BulletType selects how a bullet is drawn.
type BulletType int

const (
	BulletTypeNone BulletType = iota
	BulletTypeChar
	BulletTypeNumeric
)

// NumFormat is an OOXML auto-numbering scheme.
type NumFormat string

const (
	NumFormatArabicPeriod NumFormat = "arabicPeriod"
	NumFormatArabicParenR NumFormat = "arabicParenR"
	NumFormatCircleNumDb  NumFormat = "circleNumDbPlain"
)

// NewCharBullet returns a character bullet such as "•" or "▪".
func NewCharBullet(char string) *Bullet {
	return &Bullet{Type: BulletTypeChar, Char: char, Size: 100}
}

// NewNumericBullet returns an auto-numbered bullet.
func NewNumericBullet(format NumFormat, startAt int) *Bullet {
	if startAt < 1 {
		startAt = 1
	}
	return &Bullet{Type: BulletTypeNumeric, NumFormat: format, StartAt: startAt, Size: 100}
}

// SetColor sets the bullet color.
func (b *Bullet) SetColor(c Color) *Bullet {
	b.Color = &c
	return b
}
