package diagram

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VantageDataChat/godeck/slidespec"
)

func parseSVG(t *testing.T, d *Diagram) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(d.SVG()))
	require.NoError(t, err)
	return doc
}

func texts(doc *goquery.Document) []string {
	var out []string
	doc.Find("text").Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.Text())
	})
	return out
}

func TestProcessFlowLayout(t *testing.T) {
	d, err := ProcessFlow("flow", []string{"공급선 다변화", "이중 공급 체계", "장기 계약", "관계 강화"})
	require.NoError(t, err)
	assert.Equal(t, 900, d.Width)
	assert.Equal(t, 250, d.Height)

	doc := parseSVG(t, d)
	svg := doc.Find("svg")
	assert.Equal(t, "900", svg.AttrOr("width", ""))
	assert.Equal(t, "250", svg.AttrOr("height", ""))

	boxes := doc.Find("rect.box")
	require.Equal(t, 4, boxes.Length())
	first := boxes.First()
	assert.Equal(t, "20", first.AttrOr("x", ""))
	assert.Equal(t, "75", first.AttrOr("y", ""))
	assert.Equal(t, "180", first.AttrOr("width", ""))
	assert.Equal(t, "10", first.AttrOr("rx", ""))
	assert.Equal(t, "240", boxes.Eq(1).AttrOr("x", ""))

	assert.Equal(t, 4, doc.Find("circle.circle").Length())
	assert.Equal(t, 3, doc.Find("polygon.arrow").Length())
	assert.Equal(t, 3, doc.Find("line.line").Length())

	got := texts(doc)
	assert.Contains(t, got, "이중 공급 체계")
	assert.Contains(t, got, "4")
	assert.Equal(t, "225,120 235,125 225,130", doc.Find("polygon.arrow").First().AttrOr("points", ""))
}

func TestStyleSheet(t *testing.T) {
	d := New("empty", 10, 10)
	svg := string(d.SVG())
	assert.True(t, strings.HasPrefix(svg, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, svg, ".box { fill: #E6E6E6; stroke: #666666; stroke-width: 2; }")
	assert.Contains(t, svg, ".box-dark { fill: #666666; stroke: #333333; stroke-width: 2; }")
	assert.Contains(t, svg, ".line { stroke: #666666; stroke-width: 2; fill: none; }")
	assert.Contains(t, svg, ".text { font-family: 'Malgun Gothic', Arial, sans-serif; font-size: 14px; fill: #333333; }")
	assert.Contains(t, svg, ".text-bold { font-family: 'Malgun Gothic', Arial, sans-serif; font-size: 16px; font-weight: bold; fill: #000000; }")
	assert.Contains(t, svg, ".circle { fill: #1A5276; }")
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
}

func TestCustomPalette(t *testing.T) {
	p := slidespec.DefaultStyle().Palette()
	p.Accent = "AA0000"
	d := New("red", 10, 10, WithPalette(p))
	assert.Contains(t, string(d.SVG()), ".circle { fill: #AA0000; }")
}

func TestTextIsEscaped(t *testing.T) {
	d, err := ProcessFlow("escape", []string{"R&D <core>"})
	require.NoError(t, err)
	assert.Contains(t, string(d.SVG()), "R&amp;D &lt;core&gt;")
	assert.Contains(t, texts(parseSVG(t, d)), "R&D <core>")
}

func TestBoxMultilineLabel(t *testing.T) {
	d := New("multi", 200, 100).Box(0, 0, 200, 100, 10, ClassBoxDark, "상호 신뢰\n파트너십", ClassTextWhite)
	var ys []float64
	for _, el := range d.Elements {
		if txt, ok := el.(Text); ok {
			ys = append(ys, txt.Y)
		}
	}
	require.Len(t, ys, 2)
	assert.InDelta(t, 18, ys[1]-ys[0], 1e-9)
	assert.InDelta(t, 55, (ys[0]+ys[1])/2, 1e-9)
	assert.Equal(t, []string{"상호 신뢰", "파트너십"}, d.Texts())
}

func TestTCOComparisonTotals(t *testing.T) {
	d, err := Build(TCOAnalysis)
	require.NoError(t, err)
	got := texts(parseSVG(t, d))
	assert.Contains(t, got, "총 TCO: ₩112")
	assert.Contains(t, got, "총 TCO: ₩125")
	assert.Contains(t, got, "구매가: ₩100")
	assert.Contains(t, got, "← 국내 공급업체 선정 (TCO 우위)")
	assert.Contains(t, got, "TCO = 구매가 + 물류비 + 관세 + 품질비용 + 재고비용 + 관리비용")

	cheap := CostColumn{Name: "B", Items: []CostItem{{Label: "구매가", Amount: 1_200_000}}}
	dear := CostColumn{Name: "A", Items: []CostItem{{Label: "구매가", Amount: 1_500_000}}}
	d, err = TCOComparison("swap", dear, cheap)
	require.NoError(t, err)
	got = d.Texts()
	assert.Contains(t, got, "B 선정 (TCO 우위) →")
	assert.Contains(t, got, "총 TCO: ₩1,200,000")
}

func TestGeneratorInputErrors(t *testing.T) {
	_, err := ProcessFlow("none", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = BiddingFlow("none", nil, []string{"a"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = TCOComparison("tco", CostColumn{}, CostColumn{Name: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	four := make([]Pillar, 4)
	_, err = Partnership("p", "center", four)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = Pillars("p", "", four)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = LayerFlow("l", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Matrix("m", "", []MatrixColumn{{Label: "a"}}, []MatrixRow{{Label: "r", Cells: []string{"1", "2"}}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Build("no_such_diagram")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCatalogBuildsEveryFigure(t *testing.T) {
	names := Names()
	require.Len(t, names, 7)
	for _, name := range names {
		d, err := Build(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, d.Name)
		assert.NotEmpty(t, d.Elements, name)
		assert.Positive(t, parseSVG(t, d).Find("rect").Length(), name)
	}
}

func TestLayerFlowArrowsBetweenLayers(t *testing.T) {
	d, err := Build(EProcurement)
	require.NoError(t, err)
	assert.Equal(t, 350, d.Height)
	doc := parseSVG(t, d)
	assert.Equal(t, 4, doc.Find("rect.box").Length())
	assert.Equal(t, 3, doc.Find("polygon.arrow").Length())
	assert.Equal(t, "395,97 400,107 405,97", doc.Find("polygon.arrow").First().AttrOr("points", ""))
}

func TestMatrixCells(t *testing.T) {
	d, err := Build(SourcingMatrix)
	require.NoError(t, err)
	assert.Equal(t, 800, d.Width)
	assert.Equal(t, 500, d.Height)

	doc := parseSVG(t, d)
	// Header plus seven rows, five cells each.
	assert.Equal(t, 40, doc.Find("rect").Length())
	assert.Equal(t, "#E67E22", doc.Find("rect").Eq(1).AttrOr("fill", ""))
	got := texts(doc)
	assert.Contains(t, got, "전략적")
	assert.Contains(t, got, "파트너십")
	assert.Contains(t, got, "(6개월~1년)")
}

func TestRasterizePaintsPrimitives(t *testing.T) {
	d, err := ProcessFlow("flow", []string{"가", "나", "다", "라"})
	require.NoError(t, err)
	img := d.Rasterize(RasterOptions{Scale: 1})
	require.Equal(t, 900, img.Bounds().Dx())
	require.Equal(t, 250, img.Bounds().Dy())

	white := color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	assert.Equal(t, white, img.RGBAAt(5, 5))
	assert.Equal(t, color.RGBA{0xE6, 0xE6, 0xE6, 0xFF}, img.RGBAAt(150, 165), "box fill")
	assert.Equal(t, color.RGBA{0x66, 0x66, 0x66, 0xFF}, img.RGBAAt(20, 125), "box stroke")
	assert.Equal(t, color.RGBA{0x1A, 0x52, 0x76, 0xFF}, img.RGBAAt(40, 83), "number circle")
	assert.Equal(t, color.RGBA{0x66, 0x66, 0x66, 0xFF}, img.RGBAAt(220, 125), "arrow shaft")
	assert.Equal(t, color.RGBA{0x66, 0x66, 0x66, 0xFF}, img.RGBAAt(230, 125), "arrow head")
}

func TestPNGUsesScale(t *testing.T) {
	d, err := Build(BottleneckProcess)
	require.NoError(t, err)
	data, err := d.PNG(RasterOptions{})
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1800, img.Bounds().Dx())
	assert.Equal(t, 500, img.Bounds().Dy())
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "svg")
	a, err := Build(BottleneckProcess)
	require.NoError(t, err)
	b, err := Build(ToyotaPillars)
	require.NoError(t, err)

	written, err := WriteFiles(dir, []*Diagram{a, b}, RasterOptions{Scale: 1})
	require.NoError(t, err)
	require.Len(t, written, 4)
	for _, path := range written {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
	assert.Equal(t, filepath.Join(dir, "toyota_pillars.png"), written[3])

	var buf bytes.Buffer
	require.NoError(t, a.WriteSVG(&buf))
	assert.Equal(t, a.SVG(), buf.Bytes())
}
