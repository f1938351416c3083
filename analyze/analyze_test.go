package analyze

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VantageDataChat/godeck"
)

func sampleDeck() *godeck.Presentation {
	p := godeck.NewBlank()

	first := p.CreateSlide()
	title := first.CreateRichTextShape()
	title.SetBounds(0, 0, 10.83, 7.5)
	title.CreateTextRun("제목").GetFont().SetSize(20).SetName("맑은 고딕")
	for i := 0; i < 3; i++ {
		box := first.CreateAutoShape()
		box.SetBounds(1, 1, 1, 1)
		box.SetText("본문").GetFont().SetSize(10)
	}
	first.CreateLineShape(0, 0, godeck.Inch(1), godeck.Inch(1))

	second := p.CreateSlide()
	for i := 0; i < 51; i++ {
		second.CreateAutoShape().SetBounds(0, 0, 0.1, 0.1)
	}
	g := second.CreateGroupShape()
	inner := godeck.NewRichTextShape()
	inner.SetBounds(1, 1, 1, 1)
	inner.CreateTextRun("그룹").GetFont().SetSize(10).SetName("Arial")
	g.AddShape(inner)
	second.CreateTableShape(1, 1).SetBounds(1, 1, 1, 1)

	p.CreateSlide()
	return p
}

func TestAnalyzePresentation(t *testing.T) {
	r := AnalyzePresentation(sampleDeck(), DefaultLimit)

	assert.Equal(t, 3, r.SlideCount)
	require.Len(t, r.Slides, 3)
	assert.InDelta(t, 10.83/7.5, r.AspectRatio, 1e-3)

	first := r.Slides[0]
	assert.Equal(t, 5, first.Shapes)
	assert.Equal(t, 3, first.AutoShapes)
	assert.Equal(t, 1, first.TextBoxes)
	assert.Equal(t, 1, first.Connectors)
	assert.Equal(t, 10, first.Density)
	assert.False(t, first.HighDensity)
	assert.Greater(t, first.Coverage, 100.0)

	second := r.Slides[1]
	assert.Equal(t, 53, second.Shapes)
	assert.Equal(t, 1, second.Groups)
	assert.Equal(t, 1, second.Tables)
	assert.Equal(t, 100, second.Density)
	assert.True(t, second.HighDensity)
	assert.Equal(t, []int{2}, r.HighDensitySlides())

	assert.InDelta(t, 58.0/3, r.Averages.Shapes, 1e-9)
	assert.Equal(t, []int{10, 20}, r.FontSizes)
	assert.Equal(t, 10, r.MostCommonSize)
	assert.Equal(t, []string{"Arial", "맑은 고딕"}, r.Fonts)
}

func TestAnalyzeLimit(t *testing.T) {
	r := AnalyzePresentation(sampleDeck(), 1)
	require.Len(t, r.Slides, 1)
	assert.Equal(t, 3, r.SlideCount)
	assert.InDelta(t, 5.0, r.Averages.Shapes, 1e-9)
	assert.Equal(t, []int{10, 20}, r.FontSizes)
}

func TestAnalyzeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.pptx")
	require.NoError(t, sampleDeck().Save(path))

	r, err := Analyze(path, 0)
	require.NoError(t, err)
	assert.Equal(t, path, r.Path)
	assert.Len(t, r.Slides, 3)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, r))
	out := buf.String()
	assert.Contains(t, out, "Total slides: 3")
	assert.Contains(t, out, "⭐")
	assert.Contains(t, out, "Font sizes: 10pt, 20pt (most common 10pt)")

	_, err = Analyze(filepath.Join(t.TempDir(), "none.pptx"), 0)
	assert.True(t, errors.Is(err, ErrNotFound))
}
