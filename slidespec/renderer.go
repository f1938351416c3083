package slidespec

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/VantageDataChat/godeck"
	"github.com/VantageDataChat/godeck/internal/logging"
)

// Renderer emits slides in some output format.
type Renderer interface {
	Render(w io.Writer, style Style, slides []SlideSpec) error
}

// RenderFile renders slides into a new file at path.
func RenderFile(r Renderer, path string, style Style, slides []SlideSpec) error {
	f, err := os.Create(path)
	if err != nil {
		return renderError("create output", err)
	}
	if err := r.Render(f, style, slides); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return renderError("close output", err)
	}
	return nil
}

// validateAll checks the style and every slide before anything is emitted.
func validateAll(style Style, slides []SlideSpec) error {
	if err := style.Validate(); err != nil {
		return err
	}
	for i, s := range slides {
		if err := s.Validate(); err != nil {
			return invalidSlideError(i, err)
		}
	}
	return nil
}

// TextRenderer writes a plain text outline of the slides, one block per
// slide. It is handy for reviewing generated content without opening a deck.
type TextRenderer struct{}

// Render writes the outline.
func (TextRenderer) Render(w io.Writer, style Style, slides []SlideSpec) error {
	if err := validateAll(style, slides); err != nil {
		return err
	}
	var b strings.Builder
	for i, s := range slides {
		fmt.Fprintf(&b, "[%d/%d] %s\n", i+1, len(slides), s.Title)
		for _, line := range s.TextLines() {
			if strings.TrimSpace(line) == "" {
				continue
			}
			fmt.Fprintf(&b, "    %s\n", line)
		}
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return renderError("write outline", err)
	}
	return nil
}

// PPTXRenderer writes slides as a PowerPoint deck. Every run it emits
// carries an explicit size and typeface.
type PPTXRenderer struct {
	title   string
	creator string
	logger  logging.Logger
}

// PPTXOption configures a PPTXRenderer.
type PPTXOption func(*PPTXRenderer)

// WithTitle sets the document title property.
func WithTitle(title string) PPTXOption {
	return func(r *PPTXRenderer) {
		r.title = title
	}
}

// WithCreator sets the document creator property.
func WithCreator(creator string) PPTXOption {
	return func(r *PPTXRenderer) {
		r.creator = creator
	}
}

// WithLogger sets the logger that receives one entry per slide.
func WithLogger(logger logging.Logger) PPTXOption {
	return func(r *PPTXRenderer) {
		r.logger = logging.Ensure(logger)
	}
}

// NewPPTXRenderer returns a PPTXRenderer.
func NewPPTXRenderer(opts ...PPTXOption) *PPTXRenderer {
	r := &PPTXRenderer{logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Render writes the deck to w.
func (r *PPTXRenderer) Render(w io.Writer, style Style, slides []SlideSpec) error {
	pres, err := r.Build(style, slides)
	if err != nil {
		return err
	}
	if err := pres.Write(w); err != nil {
		return renderError("write deck", err)
	}
	return nil
}

// Build converts slides into an in-memory presentation.
func (r *PPTXRenderer) Build(style Style, slides []SlideSpec) (*godeck.Presentation, error) {
	if err := validateAll(style, slides); err != nil {
		return nil, err
	}

	pres := godeck.NewBlank()
	width, height := style.Canvas()
	pres.GetLayout().SetCustomLayout(godeck.Inch(width), godeck.Inch(height))
	pres.SetDefaultFont(style.FontName())
	props := pres.GetDocumentProperties()
	if r.title != "" {
		props.Title = r.title
	}
	if r.creator != "" {
		props.Creator = r.creator
		props.LastModifiedBy = r.creator
	}

	for i, spec := range slides {
		slide := pres.CreateSlide()
		slide.SetName(spec.Title)
		if spec.Background.IsSet() {
			slide.SetBackground(toColor(spec.Background))
		}
		for _, sh := range spec.Shapes {
			r.addShape(slide, style, sh)
		}
		r.logger.Debug("slide rendered", "slide", i+1, "title", spec.Title, "shapes", len(spec.Shapes))
	}
	if err := pres.Validate(); err != nil {
		return nil, renderError("assemble deck", err)
	}
	return pres, nil
}

func (r *PPTXRenderer) addShape(slide *godeck.Slide, style Style, sh ShapeSpec) {
	switch v := sh.(type) {
	case TextBox:
		box := slide.CreateRichTextShape()
		box.SetBounds(v.Frame.X, v.Frame.Y, v.Frame.W, v.Frame.H)
		box.SetTextAnchor(anchorOf(v.Style.Anchor))
		setParagraphs(&box.TextFrame, style, v.Style, v.Lines, v.Bullets)

	case Rectangle:
		shape := slide.CreateAutoShape()
		shape.SetAutoShapeType(rectKindOf(v.Shape))
		shape.SetBounds(v.Frame.X, v.Frame.Y, v.Frame.W, v.Frame.H)
		if v.Fill.IsSet() {
			shape.SetSolidFill(toColor(v.Fill))
		}
		if v.Line.IsSet() {
			shape.SetBorder(godeck.NewBorder().SetSolid(toColor(v.Line), 0.75))
		}
		if len(v.Lines) > 0 {
			ts := v.Style
			shape.SetTextAnchor(anchorOf(ts.Anchor))
			setParagraphs(&shape.TextFrame, style, ts, v.Lines, false)
		}

	case Arrow:
		width := v.WidthPt
		if width <= 0 {
			width = 1.5
		}
		color := v.Color
		if !color.IsSet() {
			color = style.Palette().MedGray
		}
		slide.CreateLineShape(godeck.Inch(v.From.X), godeck.Inch(v.From.Y), godeck.Inch(v.To.X), godeck.Inch(v.To.Y)).
			SetLineWidth(width).
			SetLineColor(toColor(color)).
			SetTailEnd(godeck.NewLineEnd(godeck.ArrowTriangle))

	case Table:
		cols := v.Columns()
		tbl := slide.CreateTableShape(len(v.Rows), cols)
		tbl.SetBounds(v.Frame.X, v.Frame.Y, v.Frame.W, v.Frame.H)
		for ri, row := range v.Rows {
			for ci := 0; ci < cols; ci++ {
				cell := tbl.GetCell(ri, ci)
				ts := v.Style
				if ri == 0 && v.HeaderFill.IsSet() {
					cell.SetFill(godeck.NewFill().SetSolid(toColor(v.HeaderFill)))
					ts.Bold = true
				}
				if ci >= len(row) || row[ci] == "" {
					continue
				}
				applyFont(cell.SetText(row[ci]).GetFont(), style, ts)
				cell.GetParagraphs()[0].GetAlignment().SetHorizontal(alignOf(ts.Align))
			}
		}

	case Picture:
		pic := slide.CreateDrawingShape()
		pic.SetImageData(v.Data, v.MimeType)
		pic.SetBounds(v.Frame.X, v.Frame.Y, v.Frame.W, v.Frame.H)
		pic.SetDescription(v.Alt)
	}
}

// setParagraphs writes one paragraph per line; embedded newlines start new
// paragraphs too.
func setParagraphs(frame *godeck.TextFrame, style Style, ts TextStyle, lines []string, bullets bool) {
	first := true
	for _, entry := range lines {
		for _, line := range strings.Split(entry, "\n") {
			var p *godeck.Paragraph
			if first {
				p = frame.GetActiveParagraph()
				first = false
			} else {
				p = frame.CreateParagraph()
			}
			p.GetAlignment().SetHorizontal(alignOf(ts.Align))
			if bullets {
				p.SetBullet(godeck.NewCharBullet(style.BulletChar()))
				p.SetLineSpacingMultiple(style.LineSpacing())
			}
			if line == "" {
				continue
			}
			applyFont(p.CreateTextRun(line).GetFont(), style, ts)
		}
	}
}

func applyFont(f *godeck.Font, style Style, ts TextStyle) {
	size := ts.Size
	if size <= 0 {
		size = style.Size(ts.Role)
	}
	color := ts.Color
	if !color.IsSet() {
		color = style.Palette().DarkGray
	}
	f.SetName(style.FontName()).SetSize(size).SetBold(ts.Bold).SetColor(toColor(color))
}

func toColor(c Color) godeck.Color {
	return godeck.NewColor("FF" + strings.ToUpper(string(c)))
}

func anchorOf(a Anchor) godeck.TextAnchorType {
	switch a {
	case AnchorMiddle:
		return godeck.TextAnchorMiddle
	case AnchorBottom:
		return godeck.TextAnchorBottom
	default:
		return godeck.TextAnchorTop
	}
}

func alignOf(a Align) godeck.HorizontalAlignment {
	switch a {
	case AlignCenter:
		return godeck.HorizontalCenter
	case AlignRight:
		return godeck.HorizontalRight
	default:
		return godeck.HorizontalLeft
	}
}

func rectKindOf(k RectKind) godeck.AutoShapeType {
	switch k {
	case RectRounded:
		return godeck.AutoShapeRoundedRect
	case RectEllipse:
		return godeck.AutoShapeEllipse
	default:
		return godeck.AutoShapeRectangle
	}
}
