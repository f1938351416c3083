package godeck

import "strings"

// Slide represents a single slide on the blank layout.
type Slide struct {
	name       string
	shapes     []Shape
	background *Fill
}

func newSlide() *Slide {
	return &Slide{shapes: make([]Shape, 0)}
}

// GetName returns the slide name.
func (s *Slide) GetName() string { return s.name }

// SetName sets the slide name (written as cSld/@name).
func (s *Slide) SetName(name string) { s.name = name }

// GetBackground returns the slide background fill, or nil to inherit the master.
func (s *Slide) GetBackground() *Fill { return s.background }

// SetBackground sets a solid slide background.
func (s *Slide) SetBackground(c Color) {
	s.background = NewFill().SetSolid(c)
}

// GetShapes returns the top-level shapes of the slide.
func (s *Slide) GetShapes() []Shape { return s.shapes }

// AddShape appends a shape.
func (s *Slide) AddShape(shape Shape) {
	s.shapes = append(s.shapes, shape)
}

// RemoveShape removes a top-level shape by index.
func (s *Slide) RemoveShape(index int) error {
	if index < 0 || index >= len(s.shapes) {
		return errOutOfRange
	}
	s.shapes = append(s.shapes[:index], s.shapes[index+1:]...)
	return nil
}

// CreateRichTextShape adds a text box.
func (s *Slide) CreateRichTextShape() *RichTextShape {
	shape := NewRichTextShape()
	s.AddShape(shape)
	return shape
}

// CreateAutoShape adds a rectangle auto shape.
func (s *Slide) CreateAutoShape() *AutoShape {
	shape := NewAutoShape()
	s.AddShape(shape)
	return shape
}

// CreateLineShape adds a connector from (x1,y1) to (x2,y2) in EMU.
func (s *Slide) CreateLineShape(x1, y1, x2, y2 int64) *LineShape {
	shape := NewLineShape().SetEndpoints(x1, y1, x2, y2)
	s.AddShape(shape)
	return shape
}

// CreateTableShape adds a table.
func (s *Slide) CreateTableShape(rows, cols int) *TableShape {
	shape := NewTableShape(rows, cols)
	s.AddShape(shape)
	return shape
}

// CreateDrawingShape adds an empty picture.
func (s *Slide) CreateDrawingShape() *DrawingShape {
	shape := NewDrawingShape()
	s.AddShape(shape)
	return shape
}

// CreateGroupShape adds an empty group.
func (s *Slide) CreateGroupShape() *GroupShape {
	shape := NewGroupShape()
	s.AddShape(shape)
	return shape
}

// ExtractText returns all text on the slide, one paragraph per line.
func (s *Slide) ExtractText() string {
	var lines []string
	walkShapes(s.shapes, func(sh Shape) {
		switch v := sh.(type) {
		case *RichTextShape:
			lines = appendParagraphText(lines, v.paragraphs)
		case *AutoShape:
			lines = appendParagraphText(lines, v.paragraphs)
		case *TableShape:
			for _, row := range v.rows {
				cells := make([]string, 0, len(row))
				for _, c := range row {
					var parts []string
					for _, p := range c.paragraphs {
						parts = append(parts, p.Text())
					}
					cells = append(cells, strings.Join(parts, " "))
				}
				lines = append(lines, strings.Join(cells, "\t"))
			}
		}
	})
	return strings.Join(lines, "\n")
}

func appendParagraphText(lines []string, paragraphs []*Paragraph) []string {
	for _, p := range paragraphs {
		if t := p.Text(); strings.TrimSpace(t) != "" {
			lines = append(lines, t)
		}
	}
	return lines
}

// walkShapes visits shapes depth-first, descending into groups after the
// group itself.
func walkShapes(shapes []Shape, fn func(Shape)) {
	for _, sh := range shapes {
		if sh == nil {
			continue
		}
		fn(sh)
		if g, ok := sh.(*GroupShape); ok {
			walkShapes(g.shapes, fn)
		}
	}
}

// WalkShapes visits every shape on the slide, including group members.
func (s *Slide) WalkShapes(fn func(Shape)) {
	walkShapes(s.shapes, fn)
}

func (s *Slide) clone() *Slide {
	c := &Slide{name: s.name, shapes: make([]Shape, 0, len(s.shapes))}
	if s.background != nil {
		bg := *s.background
		c.background = &bg
	}
	for _, sh := range s.shapes {
		if cs := cloneShape(sh); cs != nil {
			c.shapes = append(c.shapes, cs)
		}
	}
	return c
}

func cloneShape(sh Shape) Shape {
	switch v := sh.(type) {
	case *RichTextShape:
		return &RichTextShape{BaseShape: v.BaseShape.clone(), TextFrame: v.TextFrame.clone()}
	case *AutoShape:
		return &AutoShape{BaseShape: v.BaseShape.clone(), TextFrame: v.TextFrame.clone(), shapeType: v.shapeType}
	case *LineShape:
		c := *v
		c.BaseShape = v.BaseShape.clone()
		if v.headEnd != nil {
			h := *v.headEnd
			c.headEnd = &h
		}
		if v.tailEnd != nil {
			t := *v.tailEnd
			c.tailEnd = &t
		}
		return &c
	case *DrawingShape:
		c := *v
		c.BaseShape = v.BaseShape.clone()
		c.data = append([]byte(nil), v.data...)
		return &c
	case *TableShape:
		c := &TableShape{BaseShape: v.BaseShape.clone(), numRows: v.numRows, numCols: v.numCols}
		c.rows = make([][]*TableCell, len(v.rows))
		for i, row := range v.rows {
			c.rows[i] = make([]*TableCell, len(row))
			for j, cell := range row {
				nc := &TableCell{paragraphs: cloneParagraphs(cell.paragraphs)}
				if cell.fill != nil {
					f := *cell.fill
					nc.fill = &f
				}
				c.rows[i][j] = nc
			}
		}
		return c
	case *GroupShape:
		c := &GroupShape{BaseShape: v.BaseShape.clone()}
		for _, child := range v.shapes {
			if cc := cloneShape(child); cc != nil {
				c.shapes = append(c.shapes, cc)
			}
		}
		return c
	}
	return nil
}
