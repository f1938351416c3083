package godeck

import (
	"fmt"
	"os"
	"strings"
)

// Shape is the interface that all shapes implement.
type Shape interface {
	GetType() ShapeType
	GetOffsetX() int64
	GetOffsetY() int64
	GetWidth() int64
	GetHeight() int64
	GetName() string
	// base returns the underlying BaseShape (unexported, internal use only).
	base() *BaseShape
}

// ShapeType represents the type of shape.
type ShapeType int

const (
	ShapeTypeRichText ShapeType = iota
	ShapeTypeDrawing
	ShapeTypeTable
	ShapeTypeAutoShape
	ShapeTypeLine
	ShapeTypeGroup
)

// String returns the kind name used in reports.
func (t ShapeType) String() string {
	switch t {
	case ShapeTypeRichText:
		return "text_box"
	case ShapeTypeDrawing:
		return "picture"
	case ShapeTypeTable:
		return "table"
	case ShapeTypeAutoShape:
		return "auto_shape"
	case ShapeTypeLine:
		return "connector"
	case ShapeTypeGroup:
		return "group"
	}
	return "unknown"
}

// BaseShape contains common shape properties.
type BaseShape struct {
	name           string
	description    string
	offsetX        int64 // in EMU
	offsetY        int64 // in EMU
	width          int64 // in EMU
	height         int64 // in EMU
	rotation       int   // in degrees
	flipHorizontal bool
	flipVertical   bool
	fill           *Fill
	border         *Border
}

func (b *BaseShape) GetOffsetX() int64 { return b.offsetX }
func (b *BaseShape) GetOffsetY() int64 { return b.offsetY }
func (b *BaseShape) GetWidth() int64   { return b.width }
func (b *BaseShape) GetHeight() int64  { return b.height }
func (b *BaseShape) GetName() string   { return b.name }
func (b *BaseShape) base() *BaseShape  { return b }

func (b *BaseShape) SetName(n string) *BaseShape { b.name = n; return b }

// SetPosition sets both offset X and Y in EMU.
func (b *BaseShape) SetPosition(x, y int64) *BaseShape {
	b.offsetX = x
	b.offsetY = y
	return b
}

// SetSize sets both width and height in EMU.
func (b *BaseShape) SetSize(w, h int64) *BaseShape {
	b.width = w
	b.height = h
	return b
}

// SetBounds sets position and size in inches.
func (b *BaseShape) SetBounds(x, y, w, h float64) *BaseShape {
	b.offsetX = Inch(x)
	b.offsetY = Inch(y)
	b.width = Inch(w)
	b.height = Inch(h)
	return b
}

// GetFlipHorizontal returns whether the shape is flipped horizontally.
func (b *BaseShape) GetFlipHorizontal() bool { return b.flipHorizontal }

// GetFlipVertical returns whether the shape is flipped vertically.
func (b *BaseShape) GetFlipVertical() bool { return b.flipVertical }

// GetDescription returns the alternative text written to cNvPr/@descr.
func (b *BaseShape) GetDescription() string  { return b.description }
func (b *BaseShape) SetDescription(d string) { b.description = d }

func (b *BaseShape) GetFill() *Fill {
	if b.fill == nil {
		b.fill = NewFill()
	}
	return b.fill
}

func (b *BaseShape) SetFill(f *Fill) { b.fill = f }

func (b *BaseShape) GetBorder() *Border {
	if b.border == nil {
		b.border = NewBorder()
	}
	return b.border
}

func (b *BaseShape) SetBorder(border *Border) { b.border = border }

func (b BaseShape) clone() BaseShape {
	c := b
	if b.fill != nil {
		f := *b.fill
		c.fill = &f
	}
	if b.border != nil {
		bd := *b.border
		c.border = &bd
	}
	return c
}

// TextAnchorType represents the text anchoring type within a shape.
type TextAnchorType string

const (
	TextAnchorTop    TextAnchorType = "t"
	TextAnchorMiddle TextAnchorType = "ctr"
	TextAnchorBottom TextAnchorType = "b"
	TextAnchorNone   TextAnchorType = ""
)

// TextFrame holds the paragraphs of a text-bearing shape. Text boxes and
// auto shapes embed it.
type TextFrame struct {
	paragraphs      []*Paragraph
	activeParagraph int
	wordWrap        bool
	textAnchor      TextAnchorType
}

// GetActiveParagraph returns the active paragraph, creating one if needed.
func (t *TextFrame) GetActiveParagraph() *Paragraph {
	if len(t.paragraphs) == 0 {
		t.paragraphs = append(t.paragraphs, NewParagraph())
		t.activeParagraph = 0
	}
	return t.paragraphs[t.activeParagraph]
}

// CreateParagraph creates a new paragraph and makes it active.
func (t *TextFrame) CreateParagraph() *Paragraph {
	p := NewParagraph()
	t.paragraphs = append(t.paragraphs, p)
	t.activeParagraph = len(t.paragraphs) - 1
	return p
}

// GetParagraphs returns all paragraphs.
func (t *TextFrame) GetParagraphs() []*Paragraph {
	return t.paragraphs
}

// CreateTextRun creates a text run in the active paragraph.
func (t *TextFrame) CreateTextRun(text string) *TextRun {
	return t.GetActiveParagraph().CreateTextRun(text)
}

// CreateBreak creates a line break in the active paragraph.
func (t *TextFrame) CreateBreak() *BreakElement {
	return t.GetActiveParagraph().CreateBreak()
}

// SetWordWrap sets word wrap.
func (t *TextFrame) SetWordWrap(wrap bool) { t.wordWrap = wrap }

// GetWordWrap returns word wrap setting.
func (t *TextFrame) GetWordWrap() bool { return t.wordWrap }

// SetTextAnchor sets the vertical position of text within the shape.
func (t *TextFrame) SetTextAnchor(anchor TextAnchorType) { t.textAnchor = anchor }

// GetTextAnchor returns the text anchoring type.
func (t *TextFrame) GetTextAnchor() TextAnchorType { return t.textAnchor }

// Runs returns every text run of the frame in document order.
func (t *TextFrame) Runs() []*TextRun {
	var runs []*TextRun
	for _, p := range t.paragraphs {
		for _, elem := range p.elements {
			if tr, ok := elem.(*TextRun); ok {
				runs = append(runs, tr)
			}
		}
	}
	return runs
}

func (t TextFrame) clone() TextFrame {
	c := t
	c.paragraphs = cloneParagraphs(t.paragraphs)
	return c
}

// RichTextShape is a text box (<p:sp> with txBox="1").
type RichTextShape struct {
	BaseShape
	TextFrame
}

func (r *RichTextShape) GetType() ShapeType { return ShapeTypeRichText }

// NewRichTextShape creates a new text box with one empty paragraph.
func NewRichTextShape() *RichTextShape {
	return &RichTextShape{
		TextFrame: TextFrame{
			paragraphs: []*Paragraph{NewParagraph()},
			wordWrap:   true,
		},
	}
}

// Paragraph represents a text paragraph.
type Paragraph struct {
	elements    []ParagraphElement
	alignment   *Alignment
	bullet      *Bullet
	lineSpacing int // >0: points*100, <0: percent*1000
	spaceBefore int
	spaceAfter  int
}

// ParagraphElement is the interface for paragraph content.
type ParagraphElement interface {
	GetElementType() string
}

// NewParagraph creates a new paragraph.
func NewParagraph() *Paragraph {
	return &Paragraph{
		elements:  make([]ParagraphElement, 0),
		alignment: NewAlignment(),
	}
}

// GetAlignment returns the paragraph alignment.
func (p *Paragraph) GetAlignment() *Alignment { return p.alignment }

// SetAlignment sets the paragraph alignment.
func (p *Paragraph) SetAlignment(a *Alignment) { p.alignment = a }

// GetBullet returns the paragraph bullet.
func (p *Paragraph) GetBullet() *Bullet { return p.bullet }

// SetBullet sets the paragraph bullet.
func (p *Paragraph) SetBullet(b *Bullet) { p.bullet = b }

// GetLineSpacing returns the raw line spacing value.
func (p *Paragraph) GetLineSpacing() int { return p.lineSpacing }

// SetLineSpacing sets line spacing in hundredths of a point.
func (p *Paragraph) SetLineSpacing(spacing int) { p.lineSpacing = spacing }

// SetLineSpacingMultiple sets proportional spacing, e.g. 1.5 for one and a half lines.
func (p *Paragraph) SetLineSpacingMultiple(m float64) {
	p.lineSpacing = -int(m * 100000)
}

// LineSpacingMultiple returns the proportional spacing, or 0 if unset.
func (p *Paragraph) LineSpacingMultiple() float64 {
	if p.lineSpacing >= 0 {
		return 0
	}
	return float64(-p.lineSpacing) / 100000
}

// GetElements returns all paragraph elements.
func (p *Paragraph) GetElements() []ParagraphElement { return p.elements }

// GetSpaceBefore returns the space before the paragraph.
func (p *Paragraph) GetSpaceBefore() int { return p.spaceBefore }

// SetSpaceBefore sets the space before the paragraph in hundredths of a point.
func (p *Paragraph) SetSpaceBefore(v int) { p.spaceBefore = v }

// GetSpaceAfter returns the space after the paragraph.
func (p *Paragraph) GetSpaceAfter() int { return p.spaceAfter }

// SetSpaceAfter sets the space after the paragraph in hundredths of a point.
func (p *Paragraph) SetSpaceAfter(v int) { p.spaceAfter = v }

// CreateTextRun creates a new text run.
func (p *Paragraph) CreateTextRun(text string) *TextRun {
	tr := &TextRun{
		text: text,
		font: NewFont(),
	}
	p.elements = append(p.elements, tr)
	return tr
}

// CreateBreak creates a line break element.
func (p *Paragraph) CreateBreak() *BreakElement {
	br := &BreakElement{}
	p.elements = append(p.elements, br)
	return br
}

// Text returns the concatenated run text of the paragraph.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case *TextRun:
			sb.WriteString(e.text)
		case *BreakElement:
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func cloneParagraphs(src []*Paragraph) []*Paragraph {
	if src == nil {
		return nil
	}
	out := make([]*Paragraph, len(src))
	for i, p := range src {
		if p == nil {
			continue
		}
		c := *p
		if p.alignment != nil {
			a := *p.alignment
			c.alignment = &a
		}
		if p.bullet != nil {
			b := *p.bullet
			c.bullet = &b
		}
		c.elements = make([]ParagraphElement, 0, len(p.elements))
		for _, elem := range p.elements {
			switch e := elem.(type) {
			case *TextRun:
				c.elements = append(c.elements, &TextRun{text: e.text, font: e.font.clone(), field: e.field})
			case *BreakElement:
				c.elements = append(c.elements, &BreakElement{})
			}
		}
		out[i] = &c
	}
	return out
}

// TextRun represents a run of text with formatting.
type TextRun struct {
	text  string
	font  *Font
	field string // a:fld type; empty for a plain a:r
}

func (tr *TextRun) GetElementType() string { return "textrun" }

// GetText returns the text content.
func (tr *TextRun) GetText() string { return tr.text }

// SetText sets the text content.
func (tr *TextRun) SetText(text string) { tr.text = text }

// GetFont returns the font properties.
func (tr *TextRun) GetFont() *Font { return tr.font }

// SetFont sets the font properties.
func (tr *TextRun) SetFont(f *Font) { tr.font = f }

// IsField reports whether the run is an a:fld placeholder such as a slide
// number or date rather than authored text.
func (tr *TextRun) IsField() bool { return tr.field != "" }

// FieldType returns the a:fld type attribute, e.g. "slidenum".
func (tr *TextRun) FieldType() string { return tr.field }

// SetField turns the run into a field of the given type.
func (tr *TextRun) SetField(fieldType string) *TextRun { tr.field = fieldType; return tr }

// BreakElement represents a line break.
type BreakElement struct{}

func (br *BreakElement) GetElementType() string { return "break" }

// DrawingShape represents a picture.
type DrawingShape struct {
	BaseShape
	path     string // file path
	data     []byte // raw image data
	mimeType string
}

func (d *DrawingShape) GetType() ShapeType { return ShapeTypeDrawing }

// NewDrawingShape creates a new drawing shape.
func NewDrawingShape() *DrawingShape {
	return &DrawingShape{}
}

// SetPath sets the image file path. The file is read when the deck is written.
func (d *DrawingShape) SetPath(path string) *DrawingShape {
	d.path = path
	d.mimeType = guessMimeFromPath(path)
	return d
}

// GetPath returns the image file path.
func (d *DrawingShape) GetPath() string { return d.path }

// SetImageData sets the raw image data.
func (d *DrawingShape) SetImageData(data []byte, mimeType string) *DrawingShape {
	d.data = data
	d.mimeType = mimeType
	return d
}

// GetImageData returns the raw image data.
func (d *DrawingShape) GetImageData() []byte { return d.data }

// GetMimeType returns the image MIME type.
func (d *DrawingShape) GetMimeType() string { return d.mimeType }

// maxImageFileSize is the maximum allowed size for an image file loaded from disk.
const maxImageFileSize = 50 << 20 // 50 MB

// SetImageFromFile loads an image from a file path and sets the data and MIME type.
func (d *DrawingShape) SetImageFromFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.Size() > maxImageFileSize {
		return fmt.Errorf("image file too large: %d bytes (max %d)", info.Size(), maxImageFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read image file: %w", err)
	}
	d.data = data
	d.mimeType = guessMimeFromPath(path)
	return nil
}

func guessMimeFromPath(path string) string {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(lower, ".gif"):
		return "image/gif"
	case strings.HasSuffix(lower, ".svg"):
		return "image/svg+xml"
	default:
		return "image/png"
	}
}

// AutoShape represents a preset geometry (rectangle, rounded rectangle,
// ellipse...) that may carry text.
type AutoShape struct {
	BaseShape
	TextFrame
	shapeType AutoShapeType
}

// AutoShapeType is the prstGeom value of an auto shape.
type AutoShapeType string

const (
	AutoShapeRectangle   AutoShapeType = "rect"
	AutoShapeRoundedRect AutoShapeType = "roundRect"
	AutoShapeEllipse     AutoShapeType = "ellipse"
	AutoShapeTriangle    AutoShapeType = "triangle"
	AutoShapeChevron     AutoShapeType = "chevron"
	AutoShapeHomePlate   AutoShapeType = "homePlate"
	AutoShapeArrowRight  AutoShapeType = "rightArrow"
	AutoShapeArrowDown   AutoShapeType = "downArrow"
)

func (a *AutoShape) GetType() ShapeType { return ShapeTypeAutoShape }

// NewAutoShape creates a new rectangle without text.
func NewAutoShape() *AutoShape {
	return &AutoShape{
		shapeType: AutoShapeRectangle,
		TextFrame: TextFrame{wordWrap: true, textAnchor: TextAnchorMiddle},
	}
}

// SetAutoShapeType sets the preset geometry.
func (a *AutoShape) SetAutoShapeType(t AutoShapeType) *AutoShape {
	a.shapeType = t
	return a
}

// GetAutoShapeType returns the preset geometry.
func (a *AutoShape) GetAutoShapeType() AutoShapeType {
	return a.shapeType
}

// SetSolidFill sets a solid fill on the auto shape.
func (a *AutoShape) SetSolidFill(c Color) *AutoShape {
	a.GetFill().SetSolid(c)
	return a
}

// SetText replaces all text with a single run and returns it for styling.
func (a *AutoShape) SetText(text string) *TextRun {
	a.paragraphs = []*Paragraph{NewParagraph()}
	a.activeParagraph = 0
	return a.paragraphs[0].CreateTextRun(text)
}

// ArrowType is the decoration drawn at a line end.
type ArrowType string

const (
	ArrowNone     ArrowType = "none"
	ArrowTriangle ArrowType = "triangle"
	ArrowStealth  ArrowType = "stealth"
	ArrowOval     ArrowType = "oval"
	ArrowOpen     ArrowType = "arrow"
)

// ArrowSize is the width or length class of a line end.
type ArrowSize string

const (
	ArrowSizeSmall  ArrowSize = "sm"
	ArrowSizeMedium ArrowSize = "med"
	ArrowSizeLarge  ArrowSize = "lg"
)

// LineEnd describes <a:headEnd> or <a:tailEnd>.
type LineEnd struct {
	Type   ArrowType
	Width  ArrowSize
	Length ArrowSize
}

// NewLineEnd returns a medium-sized line end.
func NewLineEnd(t ArrowType) *LineEnd {
	return &LineEnd{Type: t, Width: ArrowSizeMedium, Length: ArrowSizeMedium}
}

// LineShape represents a straight connector.
type LineShape struct {
	BaseShape
	lineStyle BorderStyle
	lineWidth int // in EMU
	lineColor Color
	headEnd   *LineEnd
	tailEnd   *LineEnd
}

func (l *LineShape) GetType() ShapeType { return ShapeTypeLine }

// NewLineShape creates a new 1pt black line.
func NewLineShape() *LineShape {
	return &LineShape{
		lineStyle: BorderSolid,
		lineWidth: emuPerPoint,
		lineColor: ColorBlack,
	}
}

// SetEndpoints places the line from (x1,y1) to (x2,y2), in EMU, setting the
// flip flags so the tail end lands on the second point.
func (l *LineShape) SetEndpoints(x1, y1, x2, y2 int64) *LineShape {
	l.offsetX, l.width, l.flipHorizontal = span(x1, x2)
	l.offsetY, l.height, l.flipVertical = span(y1, y2)
	return l
}

func span(a, b int64) (off, ext int64, flip bool) {
	if b < a {
		return b, a - b, true
	}
	return a, b - a, false
}

// Endpoints returns the start and end points in EMU.
func (l *LineShape) Endpoints() (x1, y1, x2, y2 int64) {
	x1, x2 = l.offsetX, l.offsetX+l.width
	y1, y2 = l.offsetY, l.offsetY+l.height
	if l.flipHorizontal {
		x1, x2 = x2, x1
	}
	if l.flipVertical {
		y1, y2 = y2, y1
	}
	return
}

// SetLineStyle sets the line style.
func (l *LineShape) SetLineStyle(s BorderStyle) *LineShape {
	l.lineStyle = s
	return l
}

// GetLineStyle returns the line style.
func (l *LineShape) GetLineStyle() BorderStyle { return l.lineStyle }

// SetLineWidth sets the line width in points.
func (l *LineShape) SetLineWidth(pt float64) *LineShape {
	l.lineWidth = int(Point(pt))
	return l
}

// GetLineWidth returns the line width in EMU.
func (l *LineShape) GetLineWidth() int { return l.lineWidth }

// SetLineColor sets the line color.
func (l *LineShape) SetLineColor(c Color) *LineShape {
	l.lineColor = c
	return l
}

// GetLineColor returns the line color.
func (l *LineShape) GetLineColor() Color { return l.lineColor }

// SetHeadEnd sets the decoration at the start of the line.
func (l *LineShape) SetHeadEnd(e *LineEnd) *LineShape {
	l.headEnd = e
	return l
}

// GetHeadEnd returns the head end.
func (l *LineShape) GetHeadEnd() *LineEnd { return l.headEnd }

// SetTailEnd sets the decoration at the end of the line.
func (l *LineShape) SetTailEnd(e *LineEnd) *LineShape {
	l.tailEnd = e
	return l
}

// GetTailEnd returns the tail end.
func (l *LineShape) GetTailEnd() *LineEnd { return l.tailEnd }

// TableShape represents a table graphic frame.
type TableShape struct {
	BaseShape
	rows    [][]*TableCell
	numRows int
	numCols int
}

func (t *TableShape) GetType() ShapeType { return ShapeTypeTable }

// NewTableShape creates a new table shape.
func NewTableShape(rows, cols int) *TableShape {
	table := &TableShape{
		numRows: rows,
		numCols: cols,
		rows:    make([][]*TableCell, rows),
	}
	for i := 0; i < rows; i++ {
		table.rows[i] = make([]*TableCell, cols)
		for j := 0; j < cols; j++ {
			table.rows[i][j] = NewTableCell()
		}
	}
	return table
}

// GetCell returns a cell at the given row and column.
func (t *TableShape) GetCell(row, col int) *TableCell {
	if row < 0 || row >= t.numRows || col < 0 || col >= t.numCols {
		return nil
	}
	return t.rows[row][col]
}

// GetRows returns all rows.
func (t *TableShape) GetRows() [][]*TableCell { return t.rows }

// GetNumRows returns the number of rows.
func (t *TableShape) GetNumRows() int { return t.numRows }

// GetNumCols returns the number of columns.
func (t *TableShape) GetNumCols() int { return t.numCols }

// TableCell represents a table cell.
type TableCell struct {
	paragraphs []*Paragraph
	fill       *Fill
}

// NewTableCell creates a new table cell.
func NewTableCell() *TableCell {
	return &TableCell{
		paragraphs: []*Paragraph{NewParagraph()},
		fill:       NewFill(),
	}
}

// SetText appends text to the first paragraph and returns the run.
func (tc *TableCell) SetText(text string) *TextRun {
	if len(tc.paragraphs) == 0 {
		tc.paragraphs = append(tc.paragraphs, NewParagraph())
	}
	return tc.paragraphs[0].CreateTextRun(text)
}

// GetParagraphs returns the cell paragraphs.
func (tc *TableCell) GetParagraphs() []*Paragraph { return tc.paragraphs }

// GetFill returns the cell fill.
func (tc *TableCell) GetFill() *Fill { return tc.fill }

// SetFill sets the cell fill.
func (tc *TableCell) SetFill(f *Fill) { tc.fill = f }
