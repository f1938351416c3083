package diagram

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/VantageDataChat/godeck/slidespec"
)

// ProcessFlow draws numbered step boxes left to right, joined by arrows.
func ProcessFlow(name string, steps []string, opts ...Option) (*Diagram, error) {
	if len(steps) == 0 {
		return nil, invalidInputError(name, "process flow needs at least one step")
	}
	const (
		boxW, boxH = 180.0, 100.0
		gap        = 40.0
		startX     = 20.0
		y          = 75.0
	)
	n := float64(len(steps))
	d := New(name, int(2*startX+n*boxW+(n-1)*gap+20), 250, opts...)
	for i, step := range steps {
		x := startX + float64(i)*(boxW+gap)
		d.Box(x, y, boxW, boxH, 10, ClassBox, step, ClassTextBold)
		d.Number(x+20, y+20, 15, i+1)
		if i < len(steps)-1 {
			d.ArrowRight(x+boxW+5, y+boxH/2, x+boxW+gap-5)
		}
	}
	return d, nil
}

// BiddingFlow draws a dark process strip above a column of key points.
func BiddingFlow(name string, steps, points []string, opts ...Option) (*Diagram, error) {
	if len(steps) == 0 {
		return nil, invalidInputError(name, "bidding flow needs at least one step")
	}
	const (
		boxW, boxH = 140.0, 60.0
		gap        = 30.0
		startX     = 50.0
		y          = 50.0
		pointsTop  = 180.0
		pointStep  = 50.0
	)
	n := float64(len(steps))
	width := max(700, int(2*startX+n*boxW+(n-1)*gap))
	height := max(400, int(pointsTop+pointStep*float64(len(points))+20))
	d := New(name, width, height, opts...)
	for i, step := range steps {
		x := startX + float64(i)*(boxW+gap)
		d.Box(x, y, boxW, boxH, 8, ClassBoxDark, step, ClassTextWhite)
		if i < len(steps)-1 {
			d.ArrowRight(x+boxW+3, y+boxH/2, x+boxW+gap-3)
		}
	}
	for i, point := range points {
		py := pointsTop + float64(i)*pointStep
		d.Box(80, py, float64(width)-160, 40, 5, ClassBox, "", "")
		d.Label(100, py+25, "• "+point, ClassText, AnchorStart)
	}
	return d, nil
}

// CostItem is one line of a total cost of ownership breakdown.
type CostItem struct {
	Label  string
	Amount int64
}

// CostColumn is one supplier option in a TCO comparison.
type CostColumn struct {
	Name  string
	Items []CostItem
}

// Total sums the column's cost items.
func (c CostColumn) Total() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Amount
	}
	return total
}

// TCOComparison draws two cost breakdowns side by side with their totals
// and marks the cheaper one.
func TCOComparison(name string, left, right CostColumn, opts ...Option) (*Diagram, error) {
	if left.Name == "" || right.Name == "" {
		return nil, invalidInputError(name, "both TCO columns need a name")
	}
	rows := max(len(left.Items), len(right.Items))
	boxH := max(240.0, 90+30*float64(rows))
	d := New(name, 800, int(80+boxH+30), opts...)

	var formula string
	for i, item := range left.Items {
		if i > 0 {
			formula += " + "
		}
		formula += item.Label
	}
	if formula != "" {
		d.Label(400, 30, "TCO = "+formula, ClassTextBold, AnchorMiddle)
	}

	for i, col := range []CostColumn{left, right} {
		x := 50 + float64(i)*380
		d.Box(x, 80, 320, boxH, 10, ClassBox, "", "")
		d.Label(x+160, 110, col.Name, ClassTextBold, AnchorMiddle)
		y := 140.0
		for _, item := range col.Items {
			d.Label(x+20, y, fmt.Sprintf("%s: %s", item.Label, won(item.Amount)), ClassText, AnchorStart)
			y += 30
		}
		d.Add(Text{
			X: x + 160, Y: y + 10, Content: "총 TCO: " + won(col.Total()),
			Class: ClassTextBold, Anchor: AnchorMiddle, Fill: d.palette.Accent,
		})
	}

	verdict := "← " + left.Name + " 선정 (TCO 우위)"
	if right.Total() < left.Total() {
		verdict = right.Name + " 선정 (TCO 우위) →"
	}
	d.Add(Text{
		X: 400, Y: float64(d.Height) - 10, Content: verdict,
		Class: ClassTextBold, Anchor: AnchorMiddle, Fill: d.palette.Leverage,
	})
	return d, nil
}

func won(amount int64) string {
	return "₩" + humanize.Comma(amount)
}

// Pillar is a labelled group of detail lines.
type Pillar struct {
	Label   string
	Details []string
}

var partnershipSlots = []Point{{100, 50}, {500, 50}, {300, 320}}

// Partnership draws up to three pillars linked to a central box.
func Partnership(name, center string, pillars []Pillar, opts ...Option) (*Diagram, error) {
	if len(pillars) == 0 || len(pillars) > len(partnershipSlots) {
		return nil, invalidInputError(name, "partnership takes 1 to %d pillars, got %d", len(partnershipSlots), len(pillars))
	}
	const cx, cy = 350.0, 200.0
	d := New(name, 700, 400, opts...)
	for i, p := range pillars {
		slot := partnershipSlots[i]
		y1 := slot.Y
		if slot.Y < cy {
			y1 = slot.Y + 60
		}
		d.Add(Line{X1: slot.X + 70, Y1: y1, X2: cx, Y2: cy, Class: ClassLine})
		d.Box(slot.X, slot.Y, 140, 60, 8, ClassBox, p.Label, ClassTextBold)
		for j, detail := range p.Details {
			d.Label(slot.X+70, slot.Y+80+18*float64(j), detail, ClassTextSmall, AnchorMiddle)
		}
	}
	d.Box(cx-100, cy-40, 200, 80, 10, ClassBoxDark, center, ClassTextWhite)
	return d, nil
}

// Layer is one stage of a vertical system flow.
type Layer struct {
	Label  string
	Detail string
}

// LayerFlow stacks layers top to bottom with arrows between them.
func LayerFlow(name string, layers []Layer, opts ...Option) (*Diagram, error) {
	if len(layers) == 0 {
		return nil, invalidInputError(name, "layer flow needs at least one layer")
	}
	const (
		boxW, boxH = 600.0, 60.0
		startX     = 100.0
		top        = 30.0
		step       = 80.0
	)
	d := New(name, 800, int(top+step*float64(len(layers))), opts...)
	for i, layer := range layers {
		y := top + float64(i)*step
		d.Box(startX, y, boxW, boxH, 8, ClassBox, "", "")
		d.Label(startX+30, y+28, layer.Label, ClassTextBold, AnchorStart)
		d.Label(startX+30, y+48, layer.Detail, ClassTextSmall, AnchorStart)
		if i < len(layers)-1 {
			d.ArrowDown(startX+boxW/2, y+boxH+3, y+step-3)
		}
	}
	return d, nil
}

// Pillars draws numbered columns, each a dark title box over item boxes.
func Pillars(name, title string, pillars []Pillar, opts ...Option) (*Diagram, error) {
	if len(pillars) == 0 || len(pillars) > 3 {
		return nil, invalidInputError(name, "pillars takes 1 to 3 pillars, got %d", len(pillars))
	}
	items := 0
	for _, p := range pillars {
		items = max(items, len(p.Details))
	}
	d := New(name, 800, max(400, 220+45*items), opts...)
	if title != "" {
		d.Add(Text{X: 400, Y: 30, Content: title, Class: ClassTextBold, Anchor: AnchorMiddle, Size: 18})
	}
	for i, p := range pillars {
		x := 50 + float64(i)*250
		d.Number(x+100, 80, 25, i+1)
		d.Box(x, 120, 200, 70, 10, ClassBoxDark, p.Label, ClassTextWhite)
		for j, item := range p.Details {
			d.Box(x+10, 220+45*float64(j), 180, 35, 5, ClassBox, item, ClassText)
		}
	}
	return d, nil
}

// MatrixColumn is a colored column header of a strategy matrix.
type MatrixColumn struct {
	Label string
	Color slidespec.Color
}

// MatrixRow is a labelled row of cells, one per column. Cells may hold a
// second line after "\n".
type MatrixRow struct {
	Label string
	Cells []string
}

// Matrix draws a table with colored column headers and shaded row labels.
func Matrix(name, title string, columns []MatrixColumn, rows []MatrixRow, opts ...Option) (*Diagram, error) {
	if len(columns) == 0 {
		return nil, invalidInputError(name, "matrix needs at least one column")
	}
	for _, row := range rows {
		if len(row.Cells) != len(columns) {
			return nil, invalidInputError(name, "row %q has %d cells for %d columns", row.Label, len(row.Cells), len(columns))
		}
	}
	const (
		cellW, cellH = 150.0, 50.0
		left, top    = 50.0, 60.0
	)
	width := int(left + cellW*float64(len(columns)+1))
	d := New(name, width, int(top+cellH*float64(len(rows)+1)+40), opts...)
	p := d.palette
	if title != "" {
		d.Add(Text{X: float64(width) / 2, Y: 30, Content: title, Class: ClassTextBold, Anchor: AnchorMiddle, Size: 20})
	}

	cell := func(x, y float64, fill slidespec.Color, text string, textFill slidespec.Color, size float64, bold bool) {
		d.Add(Rect{X: x, Y: y, W: cellW, H: cellH, Class: ClassBox, Fill: fill, Stroke: p.MedGray})
		d.Add(Text{X: x + cellW/2, Y: y + 30, Content: text, Class: ClassText, Anchor: AnchorMiddle, Bold: bold, Size: size, Fill: textFill})
	}
	cell(left, top, p.VeryLightGray, "구분", p.DarkGray, 12, true)
	for i, col := range columns {
		fill := col.Color
		if !fill.IsSet() {
			fill = p.MedGray
		}
		cell(left+cellW*float64(i+1), top, fill, col.Label, p.White, 12, true)
	}
	for r, row := range rows {
		y := top + cellH*float64(r+1)
		cell(left, y, slidespec.RGB(240, 240, 240), row.Label, p.DarkGray, 11, true)
		for c, text := range row.Cells {
			x := left + cellW*float64(c+1)
			d.Add(Rect{X: x, Y: y, W: cellW, H: cellH, Class: ClassBox, Fill: p.White, Stroke: p.MedGray})
			first, second, split := strings.Cut(text, "\n")
			if !split {
				d.Add(Text{X: x + cellW/2, Y: y + 30, Content: first, Class: ClassText, Anchor: AnchorMiddle, Size: 10, Fill: p.DarkGray})
				continue
			}
			d.Add(
				Text{X: x + cellW/2, Y: y + 25, Content: first, Class: ClassText, Anchor: AnchorMiddle, Size: 10, Fill: p.DarkGray},
				Text{X: x + cellW/2, Y: y + 37, Content: second, Class: ClassText, Anchor: AnchorMiddle, Size: 9, Fill: p.MedGray},
			)
		}
	}
	return d, nil
}
