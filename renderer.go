package godeck

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// ImageFormat represents the output image format.
type ImageFormat int

const (
	ImageFormatPNG ImageFormat = iota
	ImageFormatJPEG
)

// inheritedFontSize is the point size used for runs without an explicit
// size, matching the body level of the slide master.
const inheritedFontSize = 18

// RenderOptions configures slide-to-image rendering.
type RenderOptions struct {
	// Width is the output image width in pixels. Height follows the slide
	// aspect ratio. Default: 960
	Width int
	// Format is the output image format (PNG or JPEG).
	Format ImageFormat
	// JPEGQuality is the JPEG quality (1-100). Default: 90.
	JPEGQuality int
	// BackgroundColor overrides the slide background. Nil means use slide background or white.
	BackgroundColor *color.RGBA
	// FontDirs specifies additional directories to search for TrueType/OpenType fonts.
	FontDirs []string
	// FontCache allows sharing a FontCache across renders. If nil, a new
	// FontCache is created using FontDirs.
	FontCache *FontCache
}

// DefaultRenderOptions returns default rendering options.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		Width:       960,
		Format:      ImageFormatPNG,
		JPEGQuality: 90,
	}
}

// SlideToImage renders a single slide to an image.
func (p *Presentation) SlideToImage(slideIndex int, opts *RenderOptions) (image.Image, error) {
	if slideIndex < 0 || slideIndex >= len(p.slides) {
		return nil, fmt.Errorf("slide index %d out of range (0-%d)", slideIndex, len(p.slides)-1)
	}
	if p.layout == nil || p.layout.CX <= 0 || p.layout.CY <= 0 {
		return nil, fmt.Errorf("presentation has no slide size")
	}
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	imgW := opts.Width
	if imgW <= 0 {
		imgW = 960
	}

	slide := p.slides[slideIndex]
	slideW := float64(p.layout.CX)
	slideH := float64(p.layout.CY)
	imgH := int(math.Round(float64(imgW) * slideH / slideW))

	img := image.NewRGBA(image.Rect(0, 0, imgW, imgH))

	bg := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if opts.BackgroundColor != nil {
		bg = *opts.BackgroundColor
	} else if slide.background != nil && slide.background.Type == FillSolid {
		bg = argbToRGBA(slide.background.Color)
	}
	draw.Draw(img, img.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)

	r := &renderer{
		img:         img,
		scaleX:      float64(imgW) / slideW,
		scaleY:      float64(imgH) / slideH,
		fontCache:   opts.FontCache,
		defaultFont: p.GetDefaultFont(),
	}
	if r.fontCache == nil {
		r.fontCache = NewFontCache(opts.FontDirs...)
	}

	for _, shape := range slide.shapes {
		r.renderShape(shape)
	}
	return img, nil
}

// SlidesToImages renders all slides to images.
func (p *Presentation) SlidesToImages(opts *RenderOptions) ([]image.Image, error) {
	images := make([]image.Image, len(p.slides))
	for i := range p.slides {
		img, err := p.SlideToImage(i, opts)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i, err)
		}
		images[i] = img
	}
	return images, nil
}

// SaveSlideAsImage renders a slide and saves it to a file.
func (p *Presentation) SaveSlideAsImage(slideIndex int, path string, opts *RenderOptions) error {
	img, err := p.SlideToImage(slideIndex, opts)
	if err != nil {
		return err
	}
	return saveImage(img, path, opts)
}

// SaveSlidesAsImages renders all slides and saves them to files.
// The pattern should contain %d for the slide number (1-based), e.g. "slide_%d.png".
func (p *Presentation) SaveSlidesAsImages(pattern string, opts *RenderOptions) error {
	for i := range p.slides {
		path := fmt.Sprintf(pattern, i+1)
		if err := p.SaveSlideAsImage(i, path, opts); err != nil {
			return fmt.Errorf("slide %d: %w", i+1, err)
		}
	}
	return nil
}

func saveImage(img image.Image, path string, opts *RenderOptions) error {
	if opts == nil {
		opts = DefaultRenderOptions()
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	switch opts.Format {
	case ImageFormatJPEG:
		quality := opts.JPEGQuality
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		return jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	default:
		return png.Encode(f, img)
	}
}

// --- renderer ---

type renderer struct {
	img         *image.RGBA
	scaleX      float64
	scaleY      float64
	fontCache   *FontCache
	defaultFont string
}

// point is a position in image pixels.
type point struct{ x, y float64 }

func (r *renderer) renderShape(shape Shape) {
	switch s := shape.(type) {
	case *RichTextShape:
		r.renderRichText(s)
	case *DrawingShape:
		r.renderDrawing(s)
	case *AutoShape:
		r.renderAutoShape(s)
	case *LineShape:
		r.renderLine(s)
	case *TableShape:
		r.renderTable(s)
	case *GroupShape:
		for _, gs := range s.shapes {
			r.renderShape(gs)
		}
	}
}

func (r *renderer) emuToPixelX(emu int64) int {
	return int(math.Round(float64(emu) * r.scaleX))
}

func (r *renderer) emuToPixelY(emu int64) int {
	return int(math.Round(float64(emu) * r.scaleY))
}

func (r *renderer) bounds(b *BaseShape) image.Rectangle {
	x := r.emuToPixelX(b.offsetX)
	y := r.emuToPixelY(b.offsetY)
	return image.Rect(x, y, x+r.emuToPixelX(b.width), y+r.emuToPixelY(b.height))
}

// strokeWidth converts an outline width in EMU to pixels, at least one.
func (r *renderer) strokeWidth(emu int) float64 {
	if emu <= 0 {
		emu = emuPerPoint
	}
	return math.Max(1, float64(emu)*r.scaleX)
}

func argbToRGBA(c Color) color.RGBA {
	return color.RGBA{
		R: c.GetRed(),
		G: c.GetGreen(),
		B: c.GetBlue(),
		A: c.GetAlpha(),
	}
}

// --- Shape rendering ---

func (r *renderer) renderRichText(s *RichTextShape) {
	rect := r.bounds(&s.BaseShape)
	outline := rectOutline(rect)
	r.paintOutline(outline, s.fill, s.border)
	r.drawParagraphs(s.paragraphs, rect, s.textAnchor, s.wordWrap)
}

func (r *renderer) renderDrawing(s *DrawingShape) {
	rect := r.bounds(&s.BaseShape)
	if len(s.data) == 0 || rect.Empty() {
		return
	}

	src, _, err := image.Decode(bytes.NewReader(s.data))
	if err != nil {
		r.strokePolygon(rectOutline(rect), color.RGBA{R: 200, G: 200, B: 200, A: 255}, 1, true)
		return
	}
	draw.ApproxBiLinear.Scale(r.img, rect, src, src.Bounds(), draw.Over, nil)
}

func (r *renderer) renderAutoShape(s *AutoShape) {
	rect := r.bounds(&s.BaseShape)
	r.paintOutline(autoShapeOutline(s.shapeType, rect), s.fill, s.border)
	r.drawParagraphs(s.paragraphs, rect.Inset(2), s.textAnchor, s.wordWrap)
}

// paintOutline fills and strokes a closed outline.
func (r *renderer) paintOutline(outline []point, fill *Fill, border *Border) {
	if fill != nil && fill.Type == FillSolid {
		r.fillPolygon(outline, argbToRGBA(fill.Color))
	}
	if border != nil && border.Style != BorderNone {
		r.strokePolygon(outline, argbToRGBA(border.Color), r.strokeWidth(border.Width), true)
	}
}

func (r *renderer) renderLine(s *LineShape) {
	if s.lineStyle == BorderNone {
		return
	}
	x1, y1, x2, y2 := s.Endpoints()
	a := point{float64(x1) * r.scaleX, float64(y1) * r.scaleY}
	b := point{float64(x2) * r.scaleX, float64(y2) * r.scaleY}
	c := argbToRGBA(s.lineColor)
	w := r.strokeWidth(s.lineWidth)

	for _, seg := range dashSegments(a, b, w, s.lineStyle) {
		r.strokeSegment(seg[0], seg[1], c, w)
	}
	if s.tailEnd != nil && s.tailEnd.Type != ArrowNone {
		r.fillPolygon(arrowHead(a, b, w, s.tailEnd), c)
	}
	if s.headEnd != nil && s.headEnd.Type != ArrowNone {
		r.fillPolygon(arrowHead(b, a, w, s.headEnd), c)
	}
}

func (r *renderer) renderTable(s *TableShape) {
	rect := r.bounds(&s.BaseShape)
	if s.numRows == 0 || s.numCols == 0 {
		return
	}

	cellW := rect.Dx() / s.numCols
	cellH := rect.Dy() / s.numRows
	black := color.RGBA{A: 255}

	for row := 0; row < s.numRows; row++ {
		for col := 0; col < s.numCols; col++ {
			cx := rect.Min.X + col*cellW
			cy := rect.Min.Y + row*cellH
			cellRect := image.Rect(cx, cy, cx+cellW, cy+cellH)
			cell := s.rows[row][col]

			if cell.fill != nil && cell.fill.Type == FillSolid {
				draw.Draw(r.img, cellRect, &image.Uniform{argbToRGBA(cell.fill.Color)}, image.Point{}, draw.Over)
			}
			r.strokePolygon(rectOutline(cellRect), black, 1, true)
			r.drawParagraphs(cell.paragraphs, cellRect.Inset(2), TextAnchorTop, true)
		}
	}
}

// --- Geometry ---

func rectOutline(rect image.Rectangle) []point {
	x0, y0 := float64(rect.Min.X), float64(rect.Min.Y)
	x1, y1 := float64(rect.Max.X), float64(rect.Max.Y)
	return []point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

// autoShapeOutline flattens a preset geometry into a closed polygon using
// the preset's default adjustments.
func autoShapeOutline(t AutoShapeType, rect image.Rectangle) []point {
	x0, y0 := float64(rect.Min.X), float64(rect.Min.Y)
	x1, y1 := float64(rect.Max.X), float64(rect.Max.Y)
	w, h := x1-x0, y1-y0
	ss := math.Min(w, h)

	switch t {
	case AutoShapeEllipse:
		return arcPoints(point{x0 + w/2, y0 + h/2}, w/2, h/2, 0, 2*math.Pi, 64)
	case AutoShapeRoundedRect:
		rad := ss * 0.16667
		var pts []point
		pts = append(pts, arcPoints(point{x1 - rad, y0 + rad}, rad, rad, -math.Pi/2, 0, 8)...)
		pts = append(pts, arcPoints(point{x1 - rad, y1 - rad}, rad, rad, 0, math.Pi/2, 8)...)
		pts = append(pts, arcPoints(point{x0 + rad, y1 - rad}, rad, rad, math.Pi/2, math.Pi, 8)...)
		pts = append(pts, arcPoints(point{x0 + rad, y0 + rad}, rad, rad, math.Pi, 1.5*math.Pi, 8)...)
		return pts
	case AutoShapeTriangle:
		return []point{{x0 + w/2, y0}, {x1, y1}, {x0, y1}}
	case AutoShapeChevron:
		d := ss * 0.5
		return []point{{x0, y0}, {x1 - d, y0}, {x1, y0 + h/2}, {x1 - d, y1}, {x0, y1}, {x0 + d, y0 + h/2}}
	case AutoShapeHomePlate:
		d := ss * 0.5
		return []point{{x0, y0}, {x1 - d, y0}, {x1, y0 + h/2}, {x1 - d, y1}, {x0, y1}}
	case AutoShapeArrowRight:
		head := ss * 0.5
		t0, t1 := y0+h/4, y1-h/4
		return []point{{x0, t0}, {x1 - head, t0}, {x1 - head, y0}, {x1, y0 + h/2}, {x1 - head, y1}, {x1 - head, t1}, {x0, t1}}
	case AutoShapeArrowDown:
		head := ss * 0.5
		s0, s1 := x0+w/4, x1-w/4
		return []point{{s0, y0}, {s1, y0}, {s1, y1 - head}, {x1, y1 - head}, {x0 + w/2, y1}, {x0, y1 - head}, {s0, y1 - head}}
	default:
		return rectOutline(rect)
	}
}

func arcPoints(c point, rx, ry, from, to float64, steps int) []point {
	pts := make([]point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		a := from + (to-from)*float64(i)/float64(steps)
		pts = append(pts, point{c.x + rx*math.Cos(a), c.y + ry*math.Sin(a)})
	}
	return pts
}

// dashSegments splits a line into the visible pieces of its dash pattern.
func dashSegments(a, b point, width float64, style BorderStyle) [][2]point {
	var on, off float64
	switch style {
	case BorderDash:
		on, off = 4*width, 3*width
	case BorderDot:
		on, off = width, width
	default:
		return [][2]point{{a, b}}
	}
	length := math.Hypot(b.x-a.x, b.y-a.y)
	if length == 0 {
		return nil
	}
	ux, uy := (b.x-a.x)/length, (b.y-a.y)/length
	var segs [][2]point
	for d := 0.0; d < length; d += on + off {
		e := math.Min(d+on, length)
		segs = append(segs, [2]point{{a.x + ux*d, a.y + uy*d}, {a.x + ux*e, a.y + uy*e}})
	}
	return segs
}

// arrowHead returns the triangle drawn at tip for a line coming from tail.
func arrowHead(tail, tip point, width float64, end *LineEnd) []point {
	length := math.Hypot(tip.x-tail.x, tip.y-tail.y)
	if length == 0 {
		return nil
	}
	scale := map[ArrowSize]float64{ArrowSizeSmall: 2, ArrowSizeMedium: 3, ArrowSizeLarge: 5}
	hl := scale[end.Length] * math.Max(width, 2)
	hw := scale[end.Width] * math.Max(width, 2) / 2
	if hl == 0 {
		hl = 3 * math.Max(width, 2)
	}
	if hw == 0 {
		hw = 1.5 * math.Max(width, 2)
	}
	ux, uy := (tip.x-tail.x)/length, (tip.y-tail.y)/length
	bx, by := tip.x-ux*hl, tip.y-uy*hl
	return []point{tip, {bx - uy*hw, by + ux*hw}, {bx + uy*hw, by - ux*hw}}
}

// --- Drawing primitives ---

func (r *renderer) fillPolygon(pts []point, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	b := r.img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	z.MoveTo(float32(pts[0].x), float32(pts[0].y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.x), float32(p.y))
	}
	z.ClosePath()
	z.Draw(r.img, b, &image.Uniform{c}, image.Point{})
}

func (r *renderer) strokePolygon(pts []point, c color.RGBA, width float64, closed bool) {
	for i := 0; i+1 < len(pts); i++ {
		r.strokeSegment(pts[i], pts[i+1], c, width)
	}
	if closed && len(pts) > 2 {
		r.strokeSegment(pts[len(pts)-1], pts[0], c, width)
	}
}

// strokeSegment draws a straight segment as a filled quad of the given width.
func (r *renderer) strokeSegment(a, b point, c color.RGBA, width float64) {
	length := math.Hypot(b.x-a.x, b.y-a.y)
	if length == 0 {
		return
	}
	nx, ny := -(b.y-a.y)/length*width/2, (b.x-a.x)/length*width/2
	r.fillPolygon([]point{
		{a.x + nx, a.y + ny},
		{b.x + nx, b.y + ny},
		{b.x - nx, b.y - ny},
		{a.x - nx, a.y - ny},
	}, c)
}

// --- Text rendering ---

// getFace returns a TrueType font.Face for the given Font, falling back to basicfont.
func (r *renderer) getFace(f *Font) font.Face {
	if f == nil {
		f = NewFont()
	}
	sizePt := float64(f.Size)
	if sizePt <= 0 {
		sizePt = inheritedFontSize
	}
	// Faces are built at 72 DPI, so the size is the pixel height.
	scaledPt := sizePt * float64(emuPerPoint) * r.scaleY

	names := []string{f.NameEA, f.Name, r.defaultFont}
	for _, name := range names {
		if name == "" {
			continue
		}
		if face := r.fontCache.GetFace(name, scaledPt, f.Bold, f.Italic); face != nil {
			return face
		}
	}
	for _, fallback := range []string{"malgun gothic", "nanumgothic", "noto sans cjk kr", "arial", "dejavu sans", "liberation sans"} {
		if face := r.fontCache.GetFace(fallback, scaledPt, f.Bold, f.Italic); face != nil {
			return face
		}
	}
	return basicfont.Face7x13
}

// textRun holds rendering info for a single text run.
type textRun struct {
	text  string
	face  font.Face
	color color.RGBA
}

// textLine holds a wrapped line of text runs.
type textLine struct {
	runs      []textRun
	width     int
	height    int
	alignment HorizontalAlignment
}

func buildTextLine(runs []textRun, align HorizontalAlignment, spacing float64) textLine {
	totalW := 0
	maxH := 0
	for _, r := range runs {
		totalW += font.MeasureString(r.face, r.text).Ceil()
		if h := r.face.Metrics().Height.Ceil(); h > maxH {
			maxH = h
		}
	}
	if maxH <= 0 {
		maxH = 14
	}
	if spacing > 0 {
		maxH = int(math.Round(float64(maxH) * spacing))
	}
	return textLine{runs: runs, width: totalW, height: maxH, alignment: align}
}

// layoutParagraphs converts paragraphs into lines, wrapping at width when
// wrap is set.
func (r *renderer) layoutParagraphs(paragraphs []*Paragraph, width int, wrap bool) []textLine {
	var lines []textLine
	emptyHeight := r.getFace(nil).Metrics().Height.Ceil()

	for _, para := range paragraphs {
		align := HorizontalLeft
		if para.alignment != nil {
			align = para.alignment.Horizontal
		}
		spacing := para.LineSpacingMultiple()

		var runs []textRun
		flush := func() {
			if len(runs) == 0 {
				lines = append(lines, textLine{height: emptyHeight, alignment: align})
				return
			}
			line := buildTextLine(runs, align, spacing)
			if wrap && width > 0 && line.width > width {
				lines = append(lines, wrapRunLine(line, width, spacing)...)
			} else {
				lines = append(lines, line)
			}
			runs = nil
		}
		for _, elem := range para.elements {
			switch e := elem.(type) {
			case *TextRun:
				tc := color.RGBA{A: 255}
				if e.font != nil {
					tc = argbToRGBA(e.font.Color)
				}
				runs = append(runs, textRun{text: e.text, face: r.getFace(e.font), color: tc})
			case *BreakElement:
				flush()
			}
		}
		flush()
	}
	return lines
}

func (r *renderer) drawParagraphs(paragraphs []*Paragraph, rect image.Rectangle, anchor TextAnchorType, wrap bool) {
	if len(paragraphs) == 0 {
		return
	}
	x, w := rect.Min.X, rect.Dx()
	lines := r.layoutParagraphs(paragraphs, w, wrap)

	total := 0
	for _, line := range lines {
		total += line.height
	}
	curY := rect.Min.Y
	switch anchor {
	case TextAnchorMiddle:
		curY += (rect.Dy() - total) / 2
	case TextAnchorBottom:
		curY = rect.Max.Y - total
	}

	for _, line := range lines {
		curY += line.height
		if curY > rect.Max.Y+line.height {
			break
		}

		drawX := x
		switch line.alignment {
		case HorizontalCenter:
			drawX = x + (w-line.width)/2
		case HorizontalRight:
			drawX = x + w - line.width
		}

		for _, run := range line.runs {
			d := &font.Drawer{
				Dst:  r.img,
				Src:  &image.Uniform{run.color},
				Face: run.face,
				Dot:  fixed.P(drawX, curY-run.face.Metrics().Descent.Ceil()),
			}
			d.DrawString(run.text)
			drawX += font.MeasureString(run.face, run.text).Ceil()
		}
	}
}

// wrapRunLine wraps a textLine into multiple lines that fit within maxWidth.
// Korean text breaks at spaces like Latin text.
func wrapRunLine(line textLine, maxWidth int, spacing float64) []textLine {
	type styledWord struct {
		word  string
		face  font.Face
		color color.RGBA
	}

	var words []styledWord
	for _, run := range line.runs {
		for i, w := range strings.Fields(run.text) {
			if i > 0 || (len(words) > 0 && strings.HasPrefix(run.text, " ")) {
				w = " " + w
			}
			words = append(words, styledWord{word: w, face: run.face, color: run.color})
		}
	}
	if len(words) == 0 {
		return []textLine{line}
	}

	var result []textLine
	var curRuns []textRun
	curWidth := 0

	for _, sw := range words {
		ww := font.MeasureString(sw.face, sw.word).Ceil()
		if curWidth+ww > maxWidth && curWidth > 0 {
			result = append(result, buildTextLine(curRuns, line.alignment, spacing))
			curRuns = nil
			curWidth = 0
			sw.word = strings.TrimLeft(sw.word, " ")
			ww = font.MeasureString(sw.face, sw.word).Ceil()
		}
		curRuns = append(curRuns, textRun{text: sw.word, face: sw.face, color: sw.color})
		curWidth += ww
	}
	if len(curRuns) > 0 {
		result = append(result, buildTextLine(curRuns, line.alignment, spacing))
	}
	return result
}
