package diagram

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"strconv"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	godeck "github.com/VantageDataChat/godeck"
	"github.com/VantageDataChat/godeck/slidespec"
)

// DefaultScale renders two pixels per SVG unit.
const DefaultScale = 2.0

// RasterOptions configures Rasterize.
type RasterOptions struct {
	// Scale is the number of output pixels per SVG unit. Default: 2.
	Scale float64
	// FontCache resolves the diagram font. Nil falls back to a fixed
	// bitmap face, which has no Hangul glyphs.
	FontCache *godeck.FontCache
}

// Rasterize draws the diagram on a white background.
func (d *Diagram) Rasterize(opts RasterOptions) *image.RGBA {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	w := int(math.Ceil(float64(d.Width) * scale))
	h := int(math.Ceil(float64(d.Height) * scale))
	c := &canvas{
		img:    image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1))),
		scale:  scale,
		fonts:  opts.FontCache,
		font:   d.fontName,
		paints: d.paints(),
	}
	draw.Draw(c.img, c.img.Bounds(), image.White, image.Point{}, draw.Src)

	for _, el := range d.Elements {
		switch e := el.(type) {
		case Rect:
			c.rect(e)
		case Line:
			p := c.paints[e.Class]
			c.segment(Point{e.X1, e.Y1}, Point{e.X2, e.Y2}, rgba(p.stroke), strokeWidth(p))
		case Polygon:
			c.fill(e.Points, rgba(c.paints[e.Class].fill))
		case Circle:
			c.fill(ellipsePoints(e.CX, e.CY, e.R, 48), rgba(c.paints[e.Class].fill))
		case Text:
			c.text(e)
		}
	}
	d.logger.Debug("diagram rasterised", "diagram", d.Name, "width", w, "height", h)
	return c.img
}

// PNG rasterises the diagram and encodes it as PNG.
func (d *Diagram) PNG(opts RasterOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, d.Rasterize(opts)); err != nil {
		return nil, encodeError(d.Name, err)
	}
	return buf.Bytes(), nil
}

type canvas struct {
	img    *image.RGBA
	scale  float64
	fonts  *godeck.FontCache
	font   string
	paints map[Class]paint
}

func (c *canvas) rect(r Rect) {
	p := c.paints[r.Class]
	fill, stroke := p.fill, p.stroke
	if r.Fill.IsSet() {
		fill = r.Fill
	}
	if r.Stroke.IsSet() {
		stroke = r.Stroke
	}
	sw := strokeWidth(p)
	if stroke.IsSet() {
		c.fill(roundedRectPoints(r.X-sw/2, r.Y-sw/2, r.W+sw, r.H+sw, r.RX+sw/2), rgba(stroke))
		if !fill.IsSet() {
			fill = slidespec.Color("FFFFFF")
		}
		c.fill(roundedRectPoints(r.X+sw/2, r.Y+sw/2, r.W-sw, r.H-sw, math.Max(r.RX-sw/2, 0)), rgba(fill))
		return
	}
	if fill.IsSet() {
		c.fill(roundedRectPoints(r.X, r.Y, r.W, r.H, r.RX), rgba(fill))
	}
}

// fill paints a closed outline given in SVG units.
func (c *canvas) fill(pts []Point, col color.RGBA) {
	if len(pts) < 3 {
		return
	}
	b := c.img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	z.MoveTo(float32(pts[0].X*c.scale), float32(pts[0].Y*c.scale))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X*c.scale), float32(p.Y*c.scale))
	}
	z.ClosePath()
	z.Draw(c.img, b, &image.Uniform{col}, image.Point{})
}

// segment draws a straight line as a filled quad of the given width.
func (c *canvas) segment(a, b Point, col color.RGBA, width float64) {
	length := math.Hypot(b.X-a.X, b.Y-a.Y)
	if length == 0 {
		return
	}
	nx, ny := -(b.Y-a.Y)/length*width/2, (b.X-a.X)/length*width/2
	c.fill([]Point{
		{a.X + nx, a.Y + ny},
		{b.X + nx, b.Y + ny},
		{b.X - nx, b.Y - ny},
		{a.X - nx, a.Y - ny},
	}, col)
}

func (c *canvas) text(t Text) {
	p := c.paints[t.Class]
	size := p.fontSize
	if t.Size > 0 {
		size = t.Size
	}
	if size <= 0 {
		size = 14
	}
	fill := p.fill
	if t.Fill.IsSet() {
		fill = t.Fill
	}
	face := c.face(size*c.scale, p.bold || t.Bold)
	x := t.X * c.scale
	if t.Anchor == AnchorMiddle {
		x -= float64(font.MeasureString(face, t.Content).Ceil()) / 2
	}
	d := &font.Drawer{
		Dst:  c.img,
		Src:  &image.Uniform{rgba(fill)},
		Face: face,
		Dot:  fixed.P(int(math.Round(x)), int(math.Round(t.Y*c.scale))),
	}
	d.DrawString(t.Content)
}

// face resolves the diagram font at a pixel size. Faces are built at 72 DPI,
// so points equal pixels.
func (c *canvas) face(px float64, bold bool) font.Face {
	if c.fonts != nil {
		for _, name := range []string{c.font, "malgun gothic", "nanumgothic", "noto sans cjk kr", "arial", "dejavu sans"} {
			if face := c.fonts.GetFace(name, px, bold, false); face != nil {
				return face
			}
		}
	}
	return basicfont.Face7x13
}

func strokeWidth(p paint) float64 {
	if p.strokeWidth > 0 {
		return p.strokeWidth
	}
	return 1
}

// roundedRectPoints approximates a rounded rectangle outline, clockwise
// from the top-left corner.
func roundedRectPoints(x, y, w, h, r float64) []Point {
	if w <= 0 || h <= 0 {
		return nil
	}
	r = math.Min(r, math.Min(w, h)/2)
	if r <= 0 {
		return []Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	}
	const steps = 8
	corners := []struct {
		cx, cy, from float64
	}{
		{x + w - r, y + r, -math.Pi / 2},
		{x + w - r, y + h - r, 0},
		{x + r, y + h - r, math.Pi / 2},
		{x + r, y + r, math.Pi},
	}
	pts := make([]Point, 0, 4*(steps+1))
	for _, k := range corners {
		for i := 0; i <= steps; i++ {
			a := k.from + (math.Pi/2)*float64(i)/steps
			pts = append(pts, Point{k.cx + r*math.Cos(a), k.cy + r*math.Sin(a)})
		}
	}
	return pts
}

func ellipsePoints(cx, cy, r float64, steps int) []Point {
	pts := make([]Point, steps)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(steps)
		pts[i] = Point{cx + r*math.Cos(a), cy + r*math.Sin(a)}
	}
	return pts
}

// rgba parses an RRGGBB color; unset or malformed values are black.
func rgba(c slidespec.Color) color.RGBA {
	v, err := strconv.ParseUint(string(c), 16, 32)
	if err != nil || len(c) != 6 {
		return color.RGBA{A: 0xFF}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}
}
