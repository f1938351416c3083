package godeck

// DocumentLayout represents the slide dimensions.
type DocumentLayout struct {
	CX   int64 // width in EMU (English Metric Units)
	CY   int64 // height in EMU
	Name string
}

// Standard layout names.
const (
	LayoutScreen4x3   = "screen4x3"
	LayoutScreen16x9  = "screen16x9"
	LayoutScreen16x10 = "screen16x10"
	LayoutA4          = "A4"
	LayoutCourse      = "course"
	LayoutCustom      = "custom"
)

// Course canvas dimensions: 10.83in x 7.5in.
var (
	CourseWidth  = Inch(10.83)
	CourseHeight = Inch(7.5)
)

// NewDocumentLayout creates the default course layout.
func NewDocumentLayout() *DocumentLayout {
	return &DocumentLayout{
		CX:   CourseWidth,
		CY:   CourseHeight,
		Name: LayoutCourse,
	}
}

// SetLayout sets a predefined layout. Unknown names leave the size unchanged.
func (dl *DocumentLayout) SetLayout(name string) {
	switch name {
	case LayoutScreen4x3:
		dl.CX, dl.CY = 9144000, 6858000
	case LayoutScreen16x9:
		dl.CX, dl.CY = 12192000, 6858000
	case LayoutScreen16x10:
		dl.CX, dl.CY = 10972800, 6858000
	case LayoutA4:
		dl.CX, dl.CY = 9906000, 6858000
	case LayoutCourse:
		dl.CX, dl.CY = CourseWidth, CourseHeight
	default:
		return
	}
	dl.Name = name
}

// SetCustomLayout sets custom dimensions in EMU. Non-positive values fall back
// to the course canvas.
func (dl *DocumentLayout) SetCustomLayout(cx, cy int64) {
	if cx <= 0 {
		cx = CourseWidth
	}
	if cy <= 0 {
		cy = CourseHeight
	}
	dl.CX = cx
	dl.CY = cy
	dl.Name = LayoutCustom
}

// WidthInches returns the slide width in inches.
func (dl *DocumentLayout) WidthInches() float64 { return EMUToInch(dl.CX) }

// HeightInches returns the slide height in inches.
func (dl *DocumentLayout) HeightInches() float64 { return EMUToInch(dl.CY) }
