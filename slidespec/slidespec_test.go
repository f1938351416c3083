package slidespec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VantageDataChat/godeck"
)

func samplePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func sampleSlides(t *testing.T) []SlideSpec {
	style := DefaultStyle()
	accent := style.Palette().Accent
	return []SlideSpec{
		NewSlide("학습 목표").With(
			TextBox{Frame: Box(0.5, 0.3, 9.83, 0.6), Lines: []string{"학습 목표"}, Style: Text(RoleTitle).Bolded()},
			TextBox{Frame: Box(0.5, 0.95, 9.83, 0.5), Lines: []string{"핵심 메시지"}, Style: Text(RoleGoverning).Bolded()},
			Rectangle{Frame: Box(1, 2, 0.4, 0.4), Shape: RectEllipse, Fill: accent, Line: accent,
				Lines: []string{"1"}, Style: Text(RoleBody).Sized(18).Bolded().Colored(style.Palette().White).Aligned(AlignCenter, AnchorMiddle)},
			TextBox{Frame: Box(1.8, 2.3, 7, 3.4), Lines: []string{"첫째", "둘째\n셋째"}, Style: Text(RoleBody), Bullets: true},
			Arrow{From: Point{1, 6}, To: Point{3, 6}},
		),
		NewSlide("표").With(
			Table{Frame: Box(1, 2, 8, 2), Rows: [][]string{{"구분", "내용"}, {"A"}}, Style: Text(RoleBody), HeaderFill: style.Palette().VeryLightGray},
			Picture{Frame: Box(1, 4.5, 2, 2), Data: samplePNG(t), MimeType: "image/png", Alt: "도식"},
		),
	}
}

func TestDefaultStyle(t *testing.T) {
	s := DefaultStyle()
	require.NoError(t, s.Validate())

	assert.Equal(t, 20, s.Size(RoleTitle))
	assert.Equal(t, 16, s.Size(RoleGoverning))
	assert.Equal(t, 14, s.Size(RoleHeading))
	assert.Equal(t, 10, s.Size(RoleBody))
	assert.Equal(t, 12, s.Size(RoleBullet))
	assert.Equal(t, 8, s.Size(RoleCaption))
	assert.Equal(t, "맑은 고딕", s.FontName())
	assert.Equal(t, Color("1A5276"), s.Palette().Accent)
	w, h := s.Canvas()
	assert.Equal(t, 10.83, w)
	assert.Equal(t, 7.5, h)
}

func TestStyleWithReturnsCopies(t *testing.T) {
	base := DefaultStyle()
	sizes := base.FontSizes()
	sizes.Body = 11
	changed := base.WithFontSizes(sizes).WithFontName("나눔고딕").WithCanvas(13.33, 7.5)

	assert.Equal(t, 10, base.Size(RoleBody))
	assert.Equal(t, "맑은 고딕", base.FontName())
	assert.Equal(t, 11, changed.Size(RoleBody))
	assert.Equal(t, "나눔고딕", changed.FontName())
}

func TestStyleValidate(t *testing.T) {
	p := DefaultStyle().Palette()
	p.Accent = "blue"
	err := DefaultStyle().WithPalette(p).WithFontName("").WithLineSpacing(0).Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidStyle))
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryValidation))
	assert.Contains(t, err.Error(), "style is invalid")
}

func TestSlideSpecWithDoesNotAlias(t *testing.T) {
	base := NewSlide("a").With(TextBox{Frame: Box(0, 0, 1, 1)})
	one := base.With(Arrow{From: Point{0, 0}, To: Point{1, 1}})
	two := base.With(Picture{Frame: Box(0, 0, 1, 1), Data: []byte{1}})

	assert.Len(t, base.Shapes, 1)
	assert.Equal(t, "arrow", one.Shapes[1].Kind())
	assert.Equal(t, "picture", two.Shapes[1].Kind())
}

func TestSlideSpecValidate(t *testing.T) {
	bad := NewSlide("bad").With(
		TextBox{Frame: Box(0, 0, 0, 1)},
		Arrow{From: Point{1, 1}, To: Point{1, 1}},
		Table{Frame: Box(0, 0, 1, 1)},
		Picture{Frame: Box(0, 0, 1, 1)},
	)
	err := bad.Validate()
	require.Error(t, err)
	for _, want := range []string{"shape 1 (text)", "shape 2 (arrow)", "shape 3 (table)", "shape 4 (picture)"} {
		assert.Contains(t, err.Error(), want)
	}

	_, err = NewPPTXRenderer().Build(DefaultStyle(), []SlideSpec{NewSlide("ok"), bad})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSlide))
	assert.Contains(t, err.Error(), "slide 2")
}

func TestPPTXRendererBuild(t *testing.T) {
	pres, err := NewPPTXRenderer(WithTitle("강의"), WithCreator("course")).Build(DefaultStyle(), sampleSlides(t))
	require.NoError(t, err)

	assert.Equal(t, 2, pres.GetSlideCount())
	assert.InDelta(t, 10.83, pres.GetLayout().WidthInches(), 0.001)
	assert.Equal(t, "강의", pres.GetDocumentProperties().Title)
	assert.Equal(t, "맑은 고딕", pres.GetDefaultFont())

	first, _ := pres.GetSlide(0)
	assert.Equal(t, "학습 목표", first.GetName())
	require.Len(t, first.GetShapes(), 5)

	gov := first.GetShapes()[1].(*godeck.RichTextShape)
	font := gov.Runs()[0].GetFont()
	assert.Equal(t, 16, font.Size)
	assert.True(t, font.Bold)

	circle := first.GetShapes()[2].(*godeck.AutoShape)
	assert.Equal(t, godeck.AutoShapeEllipse, circle.GetAutoShapeType())
	assert.Equal(t, 18, circle.Runs()[0].GetFont().Size)
	assert.Equal(t, "FFFFFFFF", circle.Runs()[0].GetFont().Color.ARGB)

	bullets := first.GetShapes()[3].(*godeck.RichTextShape)
	paras := bullets.GetParagraphs()
	require.Len(t, paras, 3)
	assert.Equal(t, "셋째", paras[2].Text())
	assert.Equal(t, "•", paras[0].GetBullet().Char)
	assert.Equal(t, 1.5, paras[0].LineSpacingMultiple())

	arrow := first.GetShapes()[4].(*godeck.LineShape)
	assert.Equal(t, godeck.ArrowTriangle, arrow.GetTailEnd().Type)

	second, _ := pres.GetSlide(1)
	tbl := second.GetShapes()[0].(*godeck.TableShape)
	assert.Equal(t, 2, tbl.GetNumCols())
	assert.True(t, tbl.GetCell(0, 0).GetParagraphs()[0].GetElements()[0].(*godeck.TextRun).GetFont().Bold)
	assert.Equal(t, godeck.FillSolid, tbl.GetCell(0, 1).GetFill().Type)
	assert.Empty(t, tbl.GetCell(1, 1).GetParagraphs()[0].GetElements())
	assert.Equal(t, "도식", second.GetShapes()[1].(*godeck.DrawingShape).GetDescription())
}

func TestPPTXRendererEverySizedRun(t *testing.T) {
	pres, err := NewPPTXRenderer().Build(DefaultStyle(), sampleSlides(t))
	require.NoError(t, err)
	for _, slide := range pres.GetAllSlides() {
		slide.WalkShapes(func(sh godeck.Shape) {
			var runs []*godeck.TextRun
			switch s := sh.(type) {
			case *godeck.RichTextShape:
				runs = s.Runs()
			case *godeck.AutoShape:
				runs = s.Runs()
			}
			for _, run := range runs {
				assert.True(t, run.GetFont().HasSize(), "run %q has no size", run.GetText())
				assert.Equal(t, "맑은 고딕", run.GetFont().Name)
			}
		})
	}
}

func TestRenderFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pptx")
	require.NoError(t, RenderFile(NewPPTXRenderer(), path, DefaultStyle(), sampleSlides(t)))

	pres, err := godeck.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 2, pres.GetSlideCount())
	assert.Contains(t, pres.ExtractText(), "핵심 메시지")
}

func TestRenderFileRemovesOutputOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pptx")
	err := RenderFile(NewPPTXRenderer(), path, DefaultStyle().WithCanvas(0, 0), nil)
	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TextRenderer{}.Render(&buf, DefaultStyle(), sampleSlides(t)))
	out := buf.String()
	assert.Contains(t, out, "[1/2] 학습 목표\n")
	assert.Contains(t, out, "    둘째\n셋째\n")
	assert.Contains(t, out, "    구분 | 내용\n")
	assert.Contains(t, out, "[2/2] 표\n")
}

func TestRGB(t *testing.T) {
	assert.Equal(t, Color("1A5276"), RGB(26, 82, 118))
	assert.False(t, Color("").IsSet())
}
