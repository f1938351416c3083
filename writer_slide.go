package godeck

import (
	"archive/zip"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// slideImageRels maps each picture of a slide to its relationship id. rId1
// is the layout; pictures follow in walk order.
func slideImageRels(slide *Slide) map[*DrawingShape]string {
	m := make(map[*DrawingShape]string)
	for i, ds := range collectDrawingShapes(slide.shapes) {
		m[ds] = fmt.Sprintf("rId%d", i+2)
	}
	return m
}

func (w *PPTXWriter) writeSlide(zw *zip.Writer, slide *Slide, slideNum int) error {
	imageRels := slideImageRels(slide)

	var shapesXML strings.Builder
	shapeID := 2 // 1 is reserved for the shape tree
	for _, shape := range slide.shapes {
		shapesXML.WriteString(w.writeShapeXML(shape, &shapeID, imageRels))
	}

	bgXML := ""
	if slide.background != nil && slide.background.Type != FillNone {
		bgXML = "    <p:bg>\n      <p:bgPr>\n"
		bgXML += w.writeFillXML(slide.background)
		bgXML += "        <a:effectLst/>\n      </p:bgPr>\n    </p:bg>\n"
	}

	nameAttr := ""
	if slide.name != "" {
		nameAttr = fmt.Sprintf(` name="%s"`, xmlEscape(slide.name))
	}

	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld%s>
%s    <p:spTree>
      <p:nvGrpSpPr>
        <p:cNvPr id="1" name=""/>
        <p:cNvGrpSpPr/>
        <p:nvPr/>
      </p:nvGrpSpPr>
      <p:grpSpPr>
        <a:xfrm>
          <a:off x="0" y="0"/>
          <a:ext cx="0" cy="0"/>
          <a:chOff x="0" y="0"/>
          <a:chExt cx="0" cy="0"/>
        </a:xfrm>
      </p:grpSpPr>
%s    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:sld>`, nsDrawingML, nsOfficeDocRels, nsPresentationML, nameAttr, bgXML, shapesXML.String())

	return writeRawXMLToZip(zw, fmt.Sprintf("ppt/slides/slide%d.xml", slideNum), content)
}

func (w *PPTXWriter) writeSlideRels(zw *zip.Writer, slide *Slide, slideNum int) error {
	rels := xmlRelationships{Xmlns: nsRelationships}
	rels.add(relTypeSlideLayout, "../slideLayouts/slideLayout1.xml")
	for _, ds := range collectDrawingShapes(slide.shapes) {
		rels.add(relTypeImage, "../media/"+w.mediaName(ds))
	}
	return writeXMLToZip(zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", slideNum), rels)
}

func (w *PPTXWriter) writeShapeXML(shape Shape, shapeID *int, imageRels map[*DrawingShape]string) string {
	switch s := shape.(type) {
	case *RichTextShape:
		return w.writeRichTextShapeXML(s, shapeID)
	case *AutoShape:
		return w.writeAutoShapeXML(s, shapeID)
	case *LineShape:
		return w.writeLineShapeXML(s, shapeID)
	case *TableShape:
		return w.writeTableShapeXML(s, shapeID)
	case *DrawingShape:
		relID, ok := imageRels[s]
		if !ok {
			return "" // no image bytes to embed
		}
		return w.writeDrawingShapeXML(s, shapeID, relID)
	case *GroupShape:
		return w.writeGroupShapeXML(s, shapeID, imageRels)
	}
	return ""
}

// xfrmAttrs builds the attribute string for <a:xfrm> including rotation and flip.
func xfrmAttrs(b *BaseShape) string {
	var sb strings.Builder
	if b.rotation != 0 {
		fmt.Fprintf(&sb, ` rot="%d"`, b.rotation*60000)
	}
	if b.flipHorizontal {
		sb.WriteString(` flipH="1"`)
	}
	if b.flipVertical {
		sb.WriteString(` flipV="1"`)
	}
	return sb.String()
}

func cNvPrXML(id int, name, descr string) string {
	descrAttr := ""
	if descr != "" {
		descrAttr = fmt.Sprintf(` descr="%s"`, xmlEscape(descr))
	}
	return fmt.Sprintf(`<p:cNvPr id="%d" name="%s"%s/>`, id, xmlEscape(name), descrAttr)
}

// --- Text ---

func (w *PPTXWriter) writeRichTextShapeXML(s *RichTextShape, shapeID *int) string {
	id := *shapeID
	*shapeID++

	name := s.name
	if name == "" {
		name = fmt.Sprintf("TextBox %d", id)
	}

	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          %s
          <p:cNvSpPr txBox="1"/>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
          <a:xfrm%s>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="rect">
            <a:avLst/>
          </a:prstGeom>
%s%s        </p:spPr>
%s      </p:sp>
`, cNvPrXML(id, name, s.description), xfrmAttrs(&s.BaseShape),
		s.offsetX, s.offsetY, s.width, s.height,
		w.writeFillXML(s.fill), w.writeBorderXML(s.border),
		w.writeTextBodyXML(&s.TextFrame))
}

func (w *PPTXWriter) writeTextBodyXML(t *TextFrame) string {
	var paragraphsXML strings.Builder
	for _, para := range t.paragraphs {
		paragraphsXML.WriteString(w.writeParagraphXML(para))
	}
	if len(t.paragraphs) == 0 {
		paragraphsXML.WriteString("          <a:p/>\n")
	}
	return fmt.Sprintf(`        <p:txBody>
          <a:bodyPr wrap="%s" rtlCol="0"%s/>
          <a:lstStyle/>
%s        </p:txBody>
`, boolToWrap(t.wordWrap), textAnchorAttr(t.textAnchor), paragraphsXML.String())
}

func boolToWrap(wrap bool) string {
	if wrap {
		return "square"
	}
	return "none"
}

// textAnchorAttr returns the anchor attribute string for <a:bodyPr>.
func textAnchorAttr(anchor TextAnchorType) string {
	if anchor == TextAnchorNone {
		return ""
	}
	return fmt.Sprintf(` anchor="%s"`, string(anchor))
}

func (w *PPTXWriter) writeParagraphXML(para *Paragraph) string {
	algn := ""
	if align := para.alignment; align != nil {
		if align.Horizontal != "" {
			algn = fmt.Sprintf(` algn="%s"`, align.Horizontal)
		}
		if align.Level > 0 {
			algn += fmt.Sprintf(` lvl="%d"`, align.Level)
		}
	}

	var elementsXML strings.Builder
	for _, elem := range para.elements {
		switch e := elem.(type) {
		case *TextRun:
			elementsXML.WriteString(w.writeTextRunXML(e))
		case *BreakElement:
			elementsXML.WriteString("            <a:br/>\n")
		}
	}

	spacing := ""
	if para.lineSpacing < 0 {
		spacing = fmt.Sprintf(`<a:lnSpc><a:spcPct val="%d"/></a:lnSpc>`, -para.lineSpacing)
	} else if para.lineSpacing > 0 {
		spacing = fmt.Sprintf(`<a:lnSpc><a:spcPts val="%d"/></a:lnSpc>`, para.lineSpacing)
	}
	if para.spaceBefore > 0 {
		spacing += fmt.Sprintf(`<a:spcBef><a:spcPts val="%d"/></a:spcBef>`, para.spaceBefore)
	}
	if para.spaceAfter > 0 {
		spacing += fmt.Sprintf(`<a:spcAft><a:spcPts val="%d"/></a:spcAft>`, para.spaceAfter)
	}

	bulletXML := ""
	if para.bullet != nil {
		bulletXML = w.writeBulletXML(para.bullet)
	}

	pPr := fmt.Sprintf(`<a:pPr%s/>`, algn)
	if spacing != "" || bulletXML != "" {
		pPr = fmt.Sprintf(`<a:pPr%s>%s%s</a:pPr>`, algn, spacing, bulletXML)
	}

	return fmt.Sprintf(`          <a:p>
            %s
%s          </a:p>
`, pPr, elementsXML.String())
}

// writeTextRunXML emits one <a:r>. The sz attribute is written only for
// fonts with an explicit size.
func (w *PPTXWriter) writeTextRunXML(tr *TextRun) string {
	font := tr.font
	if font == nil {
		font = NewFont()
	}
	attrs := ` lang="ko-KR" altLang="en-US"`
	if font.HasSize() {
		attrs += fmt.Sprintf(` sz="%d"`, font.Size*100)
	}
	if font.Bold {
		attrs += ` b="1"`
	}
	if font.Italic {
		attrs += ` i="1"`
	}
	attrs += ` dirty="0"`

	var children strings.Builder
	if font.Color.ARGB != "" {
		fmt.Fprintf(&children, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, colorRGB(font.Color))
	}
	if font.Name != "" {
		fmt.Fprintf(&children, `<a:latin typeface="%s"/>`, xmlEscape(font.Name))
	}
	if font.NameEA != "" {
		fmt.Fprintf(&children, `<a:ea typeface="%s"/>`, xmlEscape(font.NameEA))
	}

	open, end := "<a:r>", "</a:r>"
	if tr.IsField() {
		open = fmt.Sprintf(`<a:fld id="{%s}" type="%s">`, strings.ToUpper(uuid.NewString()), xmlEscape(tr.field))
		end = "</a:fld>"
	}
	return fmt.Sprintf(`            %s
              <a:rPr%s>%s</a:rPr>
              <a:t>%s</a:t>
            %s
`, open, attrs, children.String(), xmlEscape(tr.text), end)
}

func (w *PPTXWriter) writeBulletXML(b *Bullet) string {
	if b.Type == BulletTypeNone {
		return "<a:buNone/>"
	}

	var sb strings.Builder
	if b.Color != nil {
		fmt.Fprintf(&sb, `<a:buClr><a:srgbClr val="%s"/></a:buClr>`, colorRGB(*b.Color))
	}
	if b.Size > 0 && b.Size != 100 {
		fmt.Fprintf(&sb, `<a:buSzPct val="%d000"/>`, b.Size)
	}

	switch b.Type {
	case BulletTypeChar:
		if b.Font != "" {
			fmt.Fprintf(&sb, `<a:buFont typeface="%s"/>`, xmlEscape(b.Font))
		}
		fmt.Fprintf(&sb, `<a:buChar char="%s"/>`, xmlEscape(b.Char))
	case BulletTypeNumeric:
		fmt.Fprintf(&sb, `<a:buAutoNum type="%s" startAt="%d"/>`, b.NumFormat, b.StartAt)
	}
	return sb.String()
}

// --- Picture ---

func (w *PPTXWriter) writeDrawingShapeXML(s *DrawingShape, shapeID *int, relID string) string {
	id := *shapeID
	*shapeID++

	name := s.name
	if name == "" {
		name = fmt.Sprintf("Picture %d", id)
	}

	return fmt.Sprintf(`      <p:pic>
        <p:nvPicPr>
          %s
          <p:cNvPicPr>
            <a:picLocks noChangeAspect="1"/>
          </p:cNvPicPr>
          <p:nvPr/>
        </p:nvPicPr>
        <p:blipFill>
          <a:blip r:embed="%s"/>
          <a:stretch>
            <a:fillRect/>
          </a:stretch>
        </p:blipFill>
        <p:spPr>
          <a:xfrm%s>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="rect">
            <a:avLst/>
          </a:prstGeom>
        </p:spPr>
      </p:pic>
`, cNvPrXML(id, name, s.description), relID,
		xfrmAttrs(&s.BaseShape),
		s.offsetX, s.offsetY, s.width, s.height)
}

// --- Auto Shape ---

func (w *PPTXWriter) writeAutoShapeXML(s *AutoShape, shapeID *int) string {
	id := *shapeID
	*shapeID++

	name := s.name
	if name == "" {
		name = fmt.Sprintf("Shape %d", id)
	}

	textXML := ""
	if len(s.paragraphs) > 0 {
		textXML = w.writeTextBodyXML(&s.TextFrame)
	}

	prst := s.shapeType
	if prst == "" {
		prst = AutoShapeRectangle
	}

	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          %s
          <p:cNvSpPr/>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
          <a:xfrm%s>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="%s">
            <a:avLst/>
          </a:prstGeom>
%s%s        </p:spPr>
%s      </p:sp>
`, cNvPrXML(id, name, s.description),
		xfrmAttrs(&s.BaseShape),
		s.offsetX, s.offsetY, s.width, s.height,
		prst,
		w.writeFillXML(s.fill), w.writeBorderXML(s.border), textXML)
}

// --- Connector ---

func lineEndXML(tag string, e *LineEnd) string {
	if e == nil || e.Type == "" || e.Type == ArrowNone {
		return ""
	}
	return fmt.Sprintf(`<a:%s type="%s" w="%s" len="%s"/>`, tag, e.Type, e.Width, e.Length)
}

func dashXML(style BorderStyle) string {
	switch style {
	case BorderDash:
		return `<a:prstDash val="dash"/>`
	case BorderDot:
		return `<a:prstDash val="dot"/>`
	}
	return ""
}

func (w *PPTXWriter) writeLineShapeXML(s *LineShape, shapeID *int) string {
	id := *shapeID
	*shapeID++

	name := s.name
	if name == "" {
		name = fmt.Sprintf("Connector %d", id)
	}

	return fmt.Sprintf(`      <p:cxnSp>
        <p:nvCxnSpPr>
          %s
          <p:cNvCxnSpPr/>
          <p:nvPr/>
        </p:nvCxnSpPr>
        <p:spPr>
          <a:xfrm%s>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="line">
            <a:avLst/>
          </a:prstGeom>
          <a:ln w="%d"><a:solidFill><a:srgbClr val="%s"/></a:solidFill>%s%s%s</a:ln>
        </p:spPr>
      </p:cxnSp>
`, cNvPrXML(id, name, s.description),
		xfrmAttrs(&s.BaseShape),
		s.offsetX, s.offsetY, s.width, s.height,
		s.lineWidth, colorRGB(s.lineColor),
		dashXML(s.lineStyle), lineEndXML("headEnd", s.headEnd), lineEndXML("tailEnd", s.tailEnd))
}

// --- Table ---

func (w *PPTXWriter) writeTableShapeXML(s *TableShape, shapeID *int) string {
	id := *shapeID
	*shapeID++

	name := s.name
	if name == "" {
		name = fmt.Sprintf("Table %d", id)
	}

	colWidth := int64(0)
	if s.numCols > 0 {
		colWidth = s.width / int64(s.numCols)
	}
	rowHeight := int64(0)
	if s.numRows > 0 {
		rowHeight = s.height / int64(s.numRows)
	}

	var gridCols strings.Builder
	for i := 0; i < s.numCols; i++ {
		fmt.Fprintf(&gridCols, "                <a:gridCol w=\"%d\"/>\n", colWidth)
	}

	var rowsXML strings.Builder
	for _, row := range s.rows {
		fmt.Fprintf(&rowsXML, "              <a:tr h=\"%d\">\n", rowHeight)
		for _, cell := range row {
			var cellText strings.Builder
			for _, para := range cell.paragraphs {
				cellText.WriteString(w.writeParagraphXML(para))
			}
			cellFill := ""
			if cell.fill != nil && cell.fill.Type == FillSolid {
				cellFill = fmt.Sprintf(`<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, colorRGB(cell.fill.Color))
			}
			fmt.Fprintf(&rowsXML, `                <a:tc>
                  <a:txBody>
                    <a:bodyPr/>
                    <a:lstStyle/>
%s                  </a:txBody>
                  <a:tcPr>%s</a:tcPr>
                </a:tc>
`, cellText.String(), cellFill)
		}
		rowsXML.WriteString("              </a:tr>\n")
	}

	return fmt.Sprintf(`      <p:graphicFrame>
        <p:nvGraphicFramePr>
          %s
          <p:cNvGraphicFramePr>
            <a:graphicFrameLocks noGrp="1"/>
          </p:cNvGraphicFramePr>
          <p:nvPr/>
        </p:nvGraphicFramePr>
        <p:xfrm>
          <a:off x="%d" y="%d"/>
          <a:ext cx="%d" cy="%d"/>
        </p:xfrm>
        <a:graphic>
          <a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table">
            <a:tbl>
              <a:tblPr firstRow="1" bandRow="1"/>
              <a:tblGrid>
%s              </a:tblGrid>
%s            </a:tbl>
          </a:graphicData>
        </a:graphic>
      </p:graphicFrame>
`, cNvPrXML(id, name, s.description),
		s.offsetX, s.offsetY, s.width, s.height,
		gridCols.String(), rowsXML.String())
}

// --- Group ---

func (w *PPTXWriter) writeGroupShapeXML(g *GroupShape, shapeID *int, imageRels map[*DrawingShape]string) string {
	id := *shapeID
	*shapeID++

	name := g.name
	if name == "" {
		name = fmt.Sprintf("Group %d", id)
	}

	var childXML strings.Builder
	for _, shape := range g.shapes {
		childXML.WriteString(w.writeShapeXML(shape, shapeID, imageRels))
	}

	return fmt.Sprintf(`      <p:grpSp>
        <p:nvGrpSpPr>
          %s
          <p:cNvGrpSpPr/>
          <p:nvPr/>
        </p:nvGrpSpPr>
        <p:grpSpPr>
          <a:xfrm%s>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
            <a:chOff x="%d" y="%d"/>
            <a:chExt cx="%d" cy="%d"/>
          </a:xfrm>
        </p:grpSpPr>
%s      </p:grpSp>
`, cNvPrXML(id, name, g.description),
		xfrmAttrs(&g.BaseShape),
		g.offsetX, g.offsetY, g.width, g.height,
		g.offsetX, g.offsetY, g.width, g.height,
		childXML.String())
}

// --- Fill and Border helpers ---

func (w *PPTXWriter) writeFillXML(f *Fill) string {
	if f == nil {
		return ""
	}
	switch f.Type {
	case FillSolid:
		return fmt.Sprintf("          <a:solidFill><a:srgbClr val=\"%s\"/></a:solidFill>\n", colorRGB(f.Color))
	default:
		return ""
	}
}

func (w *PPTXWriter) writeBorderXML(b *Border) string {
	if b == nil || b.Style == BorderNone || b.Style == "" {
		return ""
	}
	return fmt.Sprintf("          <a:ln w=\"%d\"><a:solidFill><a:srgbClr val=\"%s\"/></a:solidFill>%s</a:ln>\n",
		b.Width, colorRGB(b.Color), dashXML(b.Style))
}
