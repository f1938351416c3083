package godeck

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// roundTrip writes the presentation to a buffer and reads it back.
func roundTrip(t *testing.T, p *Presentation) *Presentation {
	t.Helper()
	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data := buf.Bytes()
	pres, err := ReadFrom(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("ReadFrom failed: %v", err)
	}
	return pres
}

// zipPart writes the presentation and returns the named part.
func zipPart(t *testing.T, p *Presentation, name string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("zip: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return string(data)
	}
	t.Fatalf("part %s not found", name)
	return ""
}

// testPNG is a minimal 1x1 PNG.
func testPNG() []byte {
	return []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
		0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x02, 0x00, 0x00, 0x00, 0x90, 0x77, 0x53,
		0xDE, 0x00, 0x00, 0x00, 0x0C, 0x49, 0x44, 0x41,
		0x54, 0x08, 0xD7, 0x63, 0xF8, 0xCF, 0xC0, 0x00,
		0x00, 0x00, 0x02, 0x00, 0x01, 0xE2, 0x21, 0xBC,
		0x33, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4E,
		0x44, 0xAE, 0x42, 0x60, 0x82,
	}
}

func TestNewPresentationDefaults(t *testing.T) {
	p := New()
	if p.GetSlideCount() != 1 {
		t.Fatalf("expected 1 slide, got %d", p.GetSlideCount())
	}
	if p.GetLayout().CX != CourseWidth || p.GetLayout().CY != CourseHeight {
		t.Errorf("expected course layout, got %dx%d", p.GetLayout().CX, p.GetLayout().CY)
	}
	if p.GetDefaultFont() != DefaultFontName {
		t.Errorf("default font = %q", p.GetDefaultFont())
	}
	if !p.GetDocumentProperties().IsCustomPropertySet(GenerationIDProperty) {
		t.Error("generation id not set")
	}
	if NewBlank().GetSlideCount() != 0 {
		t.Error("NewBlank should have no slides")
	}
}

func TestRoundTripAllShapes(t *testing.T) {
	p := New()
	slide, _ := p.GetSlide(0)
	slide.SetName("도입")
	slide.SetBackground(NewColor("FFF8F9F9"))

	tb := slide.CreateRichTextShape()
	tb.SetBounds(0.5, 0.3, 9, 0.8)
	tb.SetName("Title")
	run := tb.CreateTextRun("강의 제목")
	run.GetFont().SetSize(28).SetBold(true).SetName("맑은 고딕").SetColor(NewColor("FF1A5276"))
	para := tb.CreateParagraph()
	para.SetLineSpacingMultiple(1.5)
	para.SetBullet(NewCharBullet("•"))
	para.CreateTextRun("둘째 줄")

	box := slide.CreateAutoShape()
	box.SetAutoShapeType(AutoShapeRoundedRect)
	box.SetBounds(1, 2, 3, 1)
	box.SetSolidFill(NewColor("FFEBF5FB"))
	box.GetBorder().SetSolid(NewColor("FF1A5276"), 1.5)
	box.SetText("핵심 개념").GetFont().SetSize(14)

	line := slide.CreateLineShape(Inch(5), Inch(3), Inch(2), Inch(1))
	line.SetLineWidth(2).SetLineStyle(BorderDash).SetTailEnd(NewLineEnd(ArrowTriangle))

	tbl := slide.CreateTableShape(2, 3)
	tbl.SetBounds(1, 4, 6, 1)
	tbl.GetCell(0, 0).SetText("항목")
	tbl.GetCell(1, 2).SetText("값")
	tbl.GetCell(0, 1).SetFill(NewFill().SetSolid(NewColor("FFD6EAF8")))

	pic := slide.CreateDrawingShape()
	pic.SetImageData(testPNG(), "image/png")
	pic.SetBounds(7, 4, 1, 1)

	got := roundTrip(t, p)
	if got.GetSlideCount() != 1 {
		t.Fatalf("expected 1 slide, got %d", got.GetSlideCount())
	}
	rs, _ := got.GetSlide(0)
	if rs.GetName() != "도입" {
		t.Errorf("slide name = %q", rs.GetName())
	}
	if bg := rs.GetBackground(); bg == nil || bg.Color.RGB() != "F8F9F9" {
		t.Errorf("background = %+v", bg)
	}
	shapes := rs.GetShapes()
	if len(shapes) != 5 {
		t.Fatalf("expected 5 shapes, got %d", len(shapes))
	}

	rt, ok := shapes[0].(*RichTextShape)
	if !ok {
		t.Fatalf("shape 0 is %T", shapes[0])
	}
	if rt.GetName() != "Title" || rt.GetOffsetX() != Inch(0.5) || rt.GetWidth() != Inch(9) {
		t.Errorf("text box bounds = %d,%d name %q", rt.GetOffsetX(), rt.GetWidth(), rt.GetName())
	}
	paras := rt.GetParagraphs()
	if len(paras) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(paras))
	}
	f := paras[0].GetElements()[0].(*TextRun).GetFont()
	if f.Size != 28 || !f.Bold || f.Name != "맑은 고딕" || f.NameEA != "맑은 고딕" || f.Color.RGB() != "1A5276" {
		t.Errorf("font = %+v", f)
	}
	if paras[1].LineSpacingMultiple() != 1.5 {
		t.Errorf("line spacing = %v", paras[1].LineSpacingMultiple())
	}
	if b := paras[1].GetBullet(); b == nil || b.Char != "•" {
		t.Errorf("bullet = %+v", b)
	}

	as, ok := shapes[1].(*AutoShape)
	if !ok {
		t.Fatalf("shape 1 is %T", shapes[1])
	}
	if as.GetAutoShapeType() != AutoShapeRoundedRect {
		t.Errorf("auto shape type = %s", as.GetAutoShapeType())
	}
	if as.GetFill().Color.RGB() != "EBF5FB" || as.GetBorder().Width != int(Point(1.5)) {
		t.Errorf("auto shape style = %+v %+v", as.GetFill(), as.GetBorder())
	}
	if len(as.GetParagraphs()) != 1 || as.GetParagraphs()[0].Text() != "핵심 개념" {
		t.Errorf("auto shape text = %v", as.GetParagraphs())
	}

	ls, ok := shapes[2].(*LineShape)
	if !ok {
		t.Fatalf("shape 2 is %T", shapes[2])
	}
	x1, y1, x2, y2 := ls.Endpoints()
	if x1 != Inch(5) || y1 != Inch(3) || x2 != Inch(2) || y2 != Inch(1) {
		t.Errorf("endpoints = %d,%d -> %d,%d", x1, y1, x2, y2)
	}
	if ls.GetLineStyle() != BorderDash || ls.GetLineWidth() != int(Point(2)) {
		t.Errorf("line style = %s width %d", ls.GetLineStyle(), ls.GetLineWidth())
	}
	if ls.GetTailEnd() == nil || ls.GetTailEnd().Type != ArrowTriangle {
		t.Errorf("tail end = %+v", ls.GetTailEnd())
	}

	ts, ok := shapes[3].(*TableShape)
	if !ok {
		t.Fatalf("shape 3 is %T", shapes[3])
	}
	if ts.GetNumRows() != 2 || ts.GetNumCols() != 3 {
		t.Fatalf("table = %dx%d", ts.GetNumRows(), ts.GetNumCols())
	}
	if ts.GetCell(1, 2).GetParagraphs()[0].Text() != "값" {
		t.Error("table cell text lost")
	}
	if fill := ts.GetCell(0, 1).GetFill(); fill == nil || fill.Color.RGB() != "D6EAF8" {
		t.Errorf("cell fill = %+v", fill)
	}

	ds, ok := shapes[4].(*DrawingShape)
	if !ok {
		t.Fatalf("shape 4 is %T", shapes[4])
	}
	if !bytes.Equal(ds.GetImageData(), testPNG()) || ds.GetMimeType() != "image/png" {
		t.Errorf("picture data len %d mime %q", len(ds.GetImageData()), ds.GetMimeType())
	}
}

func TestRunWithoutSizeOmitsSz(t *testing.T) {
	p := New()
	slide, _ := p.GetSlide(0)
	tb := slide.CreateRichTextShape()
	tb.SetBounds(1, 1, 4, 1)
	tb.CreateTextRun("inherit")
	tb.CreateParagraph().CreateTextRun("sized").GetFont().SetSize(12)

	xml := zipPart(t, p, "ppt/slides/slide1.xml")
	if strings.Count(xml, ` sz="`) != 1 || !strings.Contains(xml, `sz="1200"`) {
		t.Errorf("unexpected sz attributes in:\n%s", xml)
	}
	if !strings.Contains(xml, `lang="ko-KR" altLang="en-US"`) {
		t.Error("run language attributes missing")
	}

	got := roundTrip(t, p)
	rs, _ := got.GetSlide(0)
	paras := rs.GetShapes()[0].(*RichTextShape).GetParagraphs()
	if f := paras[0].GetElements()[0].(*TextRun).GetFont(); f.HasSize() {
		t.Errorf("inherited run came back with size %d", f.Size)
	}
	if f := paras[1].GetElements()[0].(*TextRun).GetFont(); f.Size != 12 {
		t.Errorf("sized run came back with size %d", f.Size)
	}
}

func TestFieldRunRoundTrip(t *testing.T) {
	p := New()
	slide, _ := p.GetSlide(0)
	tb := slide.CreateRichTextShape()
	tb.CreateTextRun("쪽 ")
	tb.CreateTextRun("7").SetField("slidenum")

	xml := zipPart(t, p, "ppt/slides/slide1.xml")
	if !strings.Contains(xml, `type="slidenum">`) || strings.Count(xml, "<a:fld ") != 1 {
		t.Errorf("field not written as a:fld:\n%s", xml)
	}

	got := roundTrip(t, p)
	rs, _ := got.GetSlide(0)
	runs := rs.GetShapes()[0].(*RichTextShape).Runs()
	if len(runs) != 2 || runs[0].IsField() || runs[1].FieldType() != "slidenum" {
		t.Fatalf("runs after round trip: %+v", runs)
	}
	if strings.TrimSpace(got.ExtractText()) != "쪽 7" {
		t.Errorf("text = %q", got.ExtractText())
	}
}

func TestGroupRoundTripKeepsSlideCoordinates(t *testing.T) {
	p := New()
	slide, _ := p.GetSlide(0)
	g := slide.CreateGroupShape()
	a := NewAutoShape()
	a.SetBounds(1, 1, 2, 1)
	b := NewAutoShape()
	b.SetBounds(4, 3, 1, 1)
	g.AddShape(a).AddShape(b)

	if g.GetOffsetX() != Inch(1) || g.GetWidth() != Inch(4) || g.GetHeight() != Inch(3) {
		t.Fatalf("group bounds = %d %d %d", g.GetOffsetX(), g.GetWidth(), g.GetHeight())
	}

	got := roundTrip(t, p)
	rs, _ := got.GetSlide(0)
	rg, ok := rs.GetShapes()[0].(*GroupShape)
	if !ok {
		t.Fatalf("shape is %T", rs.GetShapes()[0])
	}
	if rg.GetShapeCount() != 2 {
		t.Fatalf("expected 2 children, got %d", rg.GetShapeCount())
	}
	if c := rg.GetShapes()[1]; c.GetOffsetX() != Inch(4) || c.GetOffsetY() != Inch(3) {
		t.Errorf("child offset = %d,%d", c.GetOffsetX(), c.GetOffsetY())
	}
}

func TestReadMapsForeignGroupChildSpace(t *testing.T) {
	b := &BaseShape{offsetX: 100, offsetY: 100, width: 50, height: 20}
	shape := &AutoShape{BaseShape: *b}
	x := &xmlXfrmForRead{}
	x.Off.X, x.Off.Y = 1000, 2000
	x.Ext.CX, x.Ext.CY = 200, 200
	x.ChOff = &xmlPoint{X: 0, Y: 0}
	x.ChExt = &xmlSize{CX: 400, CY: 400}

	mapChildSpace([]Shape{shape}, x)

	if shape.offsetX != 1050 || shape.offsetY != 2050 {
		t.Errorf("offset = %d,%d", shape.offsetX, shape.offsetY)
	}
	if shape.width != 25 || shape.height != 10 {
		t.Errorf("size = %d,%d", shape.width, shape.height)
	}
}

func TestCustomPropertiesRoundTrip(t *testing.T) {
	p := New()
	props := p.GetDocumentProperties()
	props.Title = "1강"
	props.SetCustomProperty("course", "데이터 분석", PropertyTypeString)
	props.SetCustomProperty("lesson", 3, PropertyTypeInteger)
	props.SetCustomProperty("draft", true, PropertyTypeBoolean)
	props.SetCustomProperty("weight", 0.25, PropertyTypeFloat)
	stamp := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	props.SetCustomProperty("reviewed", stamp, PropertyTypeDate)

	got := roundTrip(t, p).GetDocumentProperties()
	if got.Title != "1강" {
		t.Errorf("title = %q", got.Title)
	}
	if got.GetCustomPropertyValue("course") != "데이터 분석" {
		t.Errorf("course = %v", got.GetCustomPropertyValue("course"))
	}
	if got.GetCustomPropertyValue("lesson") != 3 {
		t.Errorf("lesson = %v", got.GetCustomPropertyValue("lesson"))
	}
	if got.GetCustomPropertyValue("draft") != true {
		t.Errorf("draft = %v", got.GetCustomPropertyValue("draft"))
	}
	if got.GetCustomPropertyValue("weight") != 0.25 {
		t.Errorf("weight = %v", got.GetCustomPropertyValue("weight"))
	}
	if v, ok := got.GetCustomPropertyValue("reviewed").(time.Time); !ok || !v.Equal(stamp) {
		t.Errorf("reviewed = %v", got.GetCustomPropertyValue("reviewed"))
	}
	if got.GetCustomPropertyValue(GenerationIDProperty) != props.GetCustomPropertyValue(GenerationIDProperty) {
		t.Error("generation id changed across round trip")
	}
}

func TestMissingSlideSizeReadsAsZero(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("ppt/presentation.xml")
	io.WriteString(w, `<?xml version="1.0"?><p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"/>`)
	zw.Close()

	p, err := ReadFrom(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if p.GetLayout().CX != 0 || p.GetLayout().CY != 0 {
		t.Errorf("layout = %dx%d", p.GetLayout().CX, p.GetLayout().CY)
	}
	if p.GetSlideCount() != 0 {
		t.Errorf("slides = %d", p.GetSlideCount())
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "none.pptx"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestSaveAndOpen(t *testing.T) {
	p := New()
	slide, _ := p.GetSlide(0)
	slide.CreateRichTextShape().CreateTextRun("hello")
	path := filepath.Join(t.TempDir(), "out", "deck.pptx")
	if err := p.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if strings.TrimSpace(got.ExtractText()) != "hello" {
		t.Errorf("text = %q", got.ExtractText())
	}
}

func TestCopySlideIsDeep(t *testing.T) {
	p := New()
	slide, _ := p.GetSlide(0)
	tb := slide.CreateRichTextShape()
	tb.CreateTextRun("원본")

	cp, err := p.CopySlide(0)
	if err != nil {
		t.Fatalf("CopySlide: %v", err)
	}
	cp.GetShapes()[0].(*RichTextShape).GetParagraphs()[0].GetElements()[0].(*TextRun).SetText("사본")

	if tb.GetParagraphs()[0].Text() != "원본" {
		t.Error("copy shares runs with the source")
	}
	if p.GetSlideCount() != 2 {
		t.Errorf("slides = %d", p.GetSlideCount())
	}
	if _, err := p.CopySlide(5); err == nil {
		t.Error("expected out of range error")
	}
}

func TestCopySlideFromOtherDeckCarriesPictures(t *testing.T) {
	src := New()
	s, _ := src.GetSlide(0)
	s.CreateDrawingShape().SetImageData(testPNG(), "image/png").SetBounds(1, 1, 1, 1)

	dst := NewBlank()
	dst.CopySlideFrom(s)
	dst.CopySlideFrom(s)

	rels := zipPart(t, dst, "ppt/slides/_rels/slide2.xml.rels")
	if !strings.Contains(rels, "../media/image2.png") {
		t.Errorf("second slide should reference its own media part:\n%s", rels)
	}
	got := roundTrip(t, dst)
	if got.GetSlideCount() != 2 {
		t.Fatalf("slides = %d", got.GetSlideCount())
	}
}

func TestMoveAndRemoveSlides(t *testing.T) {
	p := NewBlank()
	for _, name := range []string{"a", "b", "c"} {
		p.CreateSlide().SetName(name)
	}
	if err := p.MoveSlide(2, 0); err != nil {
		t.Fatalf("MoveSlide: %v", err)
	}
	if err := p.RemoveSlideByIndex(1); err != nil {
		t.Fatalf("RemoveSlideByIndex: %v", err)
	}
	var names []string
	for _, s := range p.GetAllSlides() {
		names = append(names, s.GetName())
	}
	if strings.Join(names, ",") != "c,b" {
		t.Errorf("order = %v", names)
	}
	if err := p.RemoveSlideByIndex(9); err == nil {
		t.Error("expected error")
	}
}

func TestValidate(t *testing.T) {
	p := New()
	if err := p.Validate(); err != nil {
		t.Errorf("new presentation invalid: %v", err)
	}
	slide, _ := p.GetSlide(0)
	slide.CreateRichTextShape().CreateTextRun("ok")
	slide.CreateDrawingShape()
	g := slide.CreateGroupShape()
	g.AddShape(NewDrawingShape())

	err := p.Validate()
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	var prob *Problem
	if !errors.As(err, &prob) || prob.Slide != 1 || prob.Shape != 2 {
		t.Errorf("first problem = %+v", prob)
	}
	if !strings.Contains(err.Error(), "slide 1 shape 3: picture without image data") {
		t.Errorf("group member not reported:\n%v", err)
	}

	err = NewBlank().Validate()
	if !errors.As(err, &prob) || prob.Reason != "no slides" {
		t.Errorf("empty presentation: %v", err)
	}
}

func TestPresentationParts(t *testing.T) {
	p := New()
	p.CreateSlide()

	pres := zipPart(t, p, "ppt/presentation.xml")
	for _, want := range []string{
		`<p:sldMasterId id="2147483648" r:id="rId1"/>`,
		`<p:sldId id="256" r:id="rId2"/>`,
		`<p:sldId id="257" r:id="rId3"/>`,
		fmt.Sprintf(`<p:sldSz cx="%d" cy="%d"/>`, CourseWidth, CourseHeight),
	} {
		if !strings.Contains(pres, want) {
			t.Errorf("presentation.xml missing %s", want)
		}
	}

	types := zipPart(t, p, "[Content_Types].xml")
	if !strings.Contains(types, "/docProps/custom.xml") {
		t.Error("content types missing custom properties")
	}
	theme := zipPart(t, p, "ppt/theme/theme1.xml")
	if !strings.Contains(theme, DefaultFontName) {
		t.Error("theme does not carry the default font")
	}
}
