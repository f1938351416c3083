package godeck

import "errors"

// GroupShape represents a group of shapes. Children use slide coordinates;
// the group's child extents equal its own bounds.
type GroupShape struct {
	BaseShape
	shapes []Shape
}

func (g *GroupShape) GetType() ShapeType { return ShapeTypeGroup }

// NewGroupShape creates a new group shape.
func NewGroupShape() *GroupShape {
	return &GroupShape{
		shapes: make([]Shape, 0),
	}
}

// AddShape adds a shape to the group and grows the group bounds to cover it.
func (g *GroupShape) AddShape(s Shape) *GroupShape {
	g.shapes = append(g.shapes, s)
	g.fitBounds()
	return g
}

// GetShapes returns all shapes in the group.
func (g *GroupShape) GetShapes() []Shape {
	return g.shapes
}

// GetShapeCount returns the number of shapes in the group.
func (g *GroupShape) GetShapeCount() int {
	return len(g.shapes)
}

// RemoveShape removes a shape by index.
func (g *GroupShape) RemoveShape(index int) error {
	if index < 0 || index >= len(g.shapes) {
		return errOutOfRange
	}
	g.shapes = append(g.shapes[:index], g.shapes[index+1:]...)
	g.fitBounds()
	return nil
}

func (g *GroupShape) fitBounds() {
	if len(g.shapes) == 0 {
		return
	}
	first := true
	var minX, minY, maxX, maxY int64
	for _, s := range g.shapes {
		if s == nil {
			continue
		}
		x0, y0 := s.GetOffsetX(), s.GetOffsetY()
		x1, y1 := x0+s.GetWidth(), y0+s.GetHeight()
		if first {
			minX, minY, maxX, maxY = x0, y0, x1, y1
			first = false
			continue
		}
		minX, minY = min(minX, x0), min(minY, y0)
		maxX, maxY = max(maxX, x1), max(maxY, y1)
	}
	g.offsetX, g.offsetY = minX, minY
	g.width, g.height = maxX-minX, maxY-minY
}

var errOutOfRange = errors.New("index out of range")
