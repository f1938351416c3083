package godeck

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// --- DrawingML read structures ---
//
// Tags use local names only; the decoder matches them regardless of prefix.

type xmlVal struct {
	Val string `xml:"val,attr"`
}

type xmlSolidFillForRead struct {
	SrgbClr *xmlVal `xml:"srgbClr"`
}

func (f *xmlSolidFillForRead) color() (Color, bool) {
	if f == nil || f.SrgbClr == nil || f.SrgbClr.Val == "" {
		return Color{}, false
	}
	return NewColor(f.SrgbClr.Val), true
}

type xmlPoint struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

type xmlSize struct {
	CX int64 `xml:"cx,attr"`
	CY int64 `xml:"cy,attr"`
}

type xmlXfrmForRead struct {
	Rot   int       `xml:"rot,attr"`
	FlipH string    `xml:"flipH,attr"`
	FlipV string    `xml:"flipV,attr"`
	Off   xmlPoint  `xml:"off"`
	Ext   xmlSize   `xml:"ext"`
	ChOff *xmlPoint `xml:"chOff"`
	ChExt *xmlSize  `xml:"chExt"`
}

type xmlCNvPrForRead struct {
	ID    int    `xml:"id,attr"`
	Name  string `xml:"name,attr"`
	Descr string `xml:"descr,attr"`
}

type xmlLineEndForRead struct {
	Type string `xml:"type,attr"`
	W    string `xml:"w,attr"`
	Len  string `xml:"len,attr"`
}

type xmlLnForRead struct {
	W         int                  `xml:"w,attr"`
	SolidFill *xmlSolidFillForRead `xml:"solidFill"`
	NoFill    *struct{}            `xml:"noFill"`
	PrstDash  *xmlVal              `xml:"prstDash"`
	HeadEnd   *xmlLineEndForRead   `xml:"headEnd"`
	TailEnd   *xmlLineEndForRead   `xml:"tailEnd"`
}

type xmlSpPrForRead struct {
	Xfrm     *xmlXfrmForRead `xml:"xfrm"`
	PrstGeom *struct {
		Prst string `xml:"prst,attr"`
	} `xml:"prstGeom"`
	SolidFill *xmlSolidFillForRead `xml:"solidFill"`
	Ln        *xmlLnForRead        `xml:"ln"`
}

type xmlRPrForRead struct {
	Sz        string               `xml:"sz,attr"`
	B         string               `xml:"b,attr"`
	I         string               `xml:"i,attr"`
	SolidFill *xmlSolidFillForRead `xml:"solidFill"`
	Latin     *struct {
		Typeface string `xml:"typeface,attr"`
	} `xml:"latin"`
	Ea *struct {
		Typeface string `xml:"typeface,attr"`
	} `xml:"ea"`
}

type xmlPPrForRead struct {
	Algn  string `xml:"algn,attr"`
	Lvl   int    `xml:"lvl,attr"`
	LnSpc *struct {
		SpcPct *xmlVal `xml:"spcPct"`
		SpcPts *xmlVal `xml:"spcPts"`
	} `xml:"lnSpc"`
	SpcBef *struct {
		SpcPts *xmlVal `xml:"spcPts"`
	} `xml:"spcBef"`
	SpcAft *struct {
		SpcPts *xmlVal `xml:"spcPts"`
	} `xml:"spcAft"`
	BuNone *struct{} `xml:"buNone"`
	BuChar *struct {
		Char string `xml:"char,attr"`
	} `xml:"buChar"`
	BuAutoNum *struct {
		Type    string `xml:"type,attr"`
		StartAt int    `xml:"startAt,attr"`
	} `xml:"buAutoNum"`
	BuFont *struct {
		Typeface string `xml:"typeface,attr"`
	} `xml:"buFont"`
	BuClr   *xmlSolidFillForRead `xml:"buClr"`
	BuSzPct *xmlVal              `xml:"buSzPct"`
}

// xmlPChildForRead captures runs, fields and breaks in document order.
type xmlPChildForRead struct {
	XMLName xml.Name
	Type    string         `xml:"type,attr"`
	RPr     *xmlRPrForRead `xml:"rPr"`
	T       string         `xml:"t"`
}

type xmlPForRead struct {
	PPr      *xmlPPrForRead     `xml:"pPr"`
	Children []xmlPChildForRead `xml:",any"`
}

type xmlTxBodyForRead struct {
	BodyPr struct {
		Wrap   string `xml:"wrap,attr"`
		Anchor string `xml:"anchor,attr"`
	} `xml:"bodyPr"`
	Paragraphs []xmlPForRead `xml:"p"`
}

type xmlSpForRead struct {
	NvSpPr struct {
		CNvPr   xmlCNvPrForRead `xml:"cNvPr"`
		CNvSpPr struct {
			TxBox string `xml:"txBox,attr"`
		} `xml:"cNvSpPr"`
	} `xml:"nvSpPr"`
	SpPr   xmlSpPrForRead    `xml:"spPr"`
	TxBody *xmlTxBodyForRead `xml:"txBody"`
}

type xmlPicForRead struct {
	NvPicPr struct {
		CNvPr xmlCNvPrForRead `xml:"cNvPr"`
	} `xml:"nvPicPr"`
	BlipFill struct {
		Blip struct {
			Embed string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships embed,attr"`
		} `xml:"blip"`
	} `xml:"blipFill"`
	SpPr xmlSpPrForRead `xml:"spPr"`
}

type xmlCxnSpForRead struct {
	NvCxnSpPr struct {
		CNvPr xmlCNvPrForRead `xml:"cNvPr"`
	} `xml:"nvCxnSpPr"`
	SpPr xmlSpPrForRead `xml:"spPr"`
}

type xmlTcForRead struct {
	TxBody *xmlTxBodyForRead `xml:"txBody"`
	TcPr   struct {
		SolidFill *xmlSolidFillForRead `xml:"solidFill"`
	} `xml:"tcPr"`
}

type xmlGraphicFrameForRead struct {
	NvGraphicFramePr struct {
		CNvPr xmlCNvPrForRead `xml:"cNvPr"`
	} `xml:"nvGraphicFramePr"`
	Xfrm xmlXfrmForRead `xml:"xfrm"`
	Tbl  *struct {
		Rows []struct {
			Cells []xmlTcForRead `xml:"tc"`
		} `xml:"tr"`
	} `xml:"graphic>graphicData>tbl"`
}

type xmlBgForRead struct {
	BgPr *struct {
		SolidFill *xmlSolidFillForRead `xml:"solidFill"`
	} `xml:"bgPr"`
}

// --- slide reading ---

// slideContext carries the relationships needed to resolve pictures.
type slideContext struct {
	dir  string
	rels []xmlRelForRead
}

func (r *PPTXReader) readSlide(path string) (*Slide, error) {
	data, err := r.readFile(path)
	if err != nil {
		return nil, err
	}

	relsPath := strings.Replace(path, "slides/", "slides/_rels/", 1) + ".rels"
	rels, err := r.readRelationships(relsPath)
	if err != nil {
		return nil, err
	}
	ctx := slideContext{
		dir:  strings.TrimSuffix(path, "/"+lastPathComponent(path)),
		rels: rels,
	}

	slide := newSlide()
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "cSld":
			for _, a := range start.Attr {
				if a.Name.Local == "name" {
					slide.name = a.Value
				}
			}
		case "bg":
			var bg xmlBgForRead
			if err := dec.DecodeElement(&bg, &start); err != nil {
				return nil, fmt.Errorf("failed to parse background in %s: %w", path, err)
			}
			if bg.BgPr != nil {
				if c, ok := bg.BgPr.SolidFill.color(); ok {
					slide.SetBackground(c)
				}
			}
		case "spTree":
			shapes, err := r.readShapeTree(dec, ctx, nil)
			if err != nil {
				return nil, fmt.Errorf("failed to parse shapes in %s: %w", path, err)
			}
			slide.shapes = shapes
		}
	}
	return slide, nil
}

// readShapeTree consumes tokens up to the end of the current spTree or grpSp
// element. When group is non-nil its own properties are filled in too.
func (r *PPTXReader) readShapeTree(dec *xml.Decoder, ctx slideContext, group *GroupShape) ([]Shape, error) {
	var shapes []Shape
	var groupXfrm *xmlXfrmForRead
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if group != nil && groupXfrm != nil {
				mapChildSpace(shapes, groupXfrm)
			}
			return shapes, nil
		case xml.StartElement:
			switch t.Name.Local {
			case "sp":
				var x xmlSpForRead
				if err := dec.DecodeElement(&x, &t); err != nil {
					return nil, err
				}
				shapes = append(shapes, x.toShape())
			case "pic":
				var x xmlPicForRead
				if err := dec.DecodeElement(&x, &t); err != nil {
					return nil, err
				}
				shapes = append(shapes, r.pictureShape(&x, ctx))
			case "cxnSp":
				var x xmlCxnSpForRead
				if err := dec.DecodeElement(&x, &t); err != nil {
					return nil, err
				}
				shapes = append(shapes, x.toShape())
			case "graphicFrame":
				var x xmlGraphicFrameForRead
				if err := dec.DecodeElement(&x, &t); err != nil {
					return nil, err
				}
				if ts := x.toShape(); ts != nil {
					shapes = append(shapes, ts)
				}
			case "grpSp":
				g := NewGroupShape()
				children, err := r.readShapeTree(dec, ctx, g)
				if err != nil {
					return nil, err
				}
				g.shapes = children
				shapes = append(shapes, g)
			case "nvGrpSpPr":
				var x struct {
					CNvPr xmlCNvPrForRead `xml:"cNvPr"`
				}
				if err := dec.DecodeElement(&x, &t); err != nil {
					return nil, err
				}
				if group != nil {
					group.name = x.CNvPr.Name
					group.description = x.CNvPr.Descr
				}
			case "grpSpPr":
				var x struct {
					Xfrm *xmlXfrmForRead `xml:"xfrm"`
				}
				if err := dec.DecodeElement(&x, &t); err != nil {
					return nil, err
				}
				if group != nil && x.Xfrm != nil {
					applyXfrm(&group.BaseShape, x.Xfrm)
					groupXfrm = x.Xfrm
				}
			default:
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
		}
	}
}

// mapChildSpace converts shapes placed in a group's child coordinate space
// into slide coordinates, which is how groups are held in memory.
func mapChildSpace(shapes []Shape, x *xmlXfrmForRead) {
	if x.ChOff == nil || x.ChExt == nil {
		return
	}
	if *x.ChOff == x.Off && *x.ChExt == x.Ext {
		return
	}
	sx, sy := 1.0, 1.0
	if x.ChExt.CX != 0 {
		sx = float64(x.Ext.CX) / float64(x.ChExt.CX)
	}
	if x.ChExt.CY != 0 {
		sy = float64(x.Ext.CY) / float64(x.ChExt.CY)
	}
	walkShapes(shapes, func(s Shape) {
		b := s.base()
		b.offsetX = x.Off.X + int64(float64(b.offsetX-x.ChOff.X)*sx)
		b.offsetY = x.Off.Y + int64(float64(b.offsetY-x.ChOff.Y)*sy)
		b.width = int64(float64(b.width) * sx)
		b.height = int64(float64(b.height) * sy)
	})
}

func applyXfrm(b *BaseShape, x *xmlXfrmForRead) {
	if x == nil {
		return
	}
	b.offsetX, b.offsetY = x.Off.X, x.Off.Y
	b.width, b.height = x.Ext.CX, x.Ext.CY
	b.rotation = x.Rot / 60000
	b.flipHorizontal = parseBoolAttr(x.FlipH)
	b.flipVertical = parseBoolAttr(x.FlipV)
}

func applyNvPr(b *BaseShape, c xmlCNvPrForRead) {
	b.name = c.Name
	b.description = c.Descr
}

func applySpPr(b *BaseShape, sp *xmlSpPrForRead) {
	applyXfrm(b, sp.Xfrm)
	if c, ok := sp.SolidFill.color(); ok {
		b.fill = NewFill().SetSolid(c)
	}
	if sp.Ln != nil && sp.Ln.NoFill == nil {
		if c, ok := sp.Ln.SolidFill.color(); ok {
			b.border = &Border{Style: BorderSolid, Width: sp.Ln.W, Color: c}
			if sp.Ln.PrstDash != nil {
				b.border.Style = dashStyle(sp.Ln.PrstDash.Val)
			}
		}
	}
}

func dashStyle(val string) BorderStyle {
	switch {
	case strings.Contains(strings.ToLower(val), "dash"):
		return BorderDash
	case strings.Contains(strings.ToLower(val), "dot"):
		return BorderDot
	}
	return BorderSolid
}

func parseBoolAttr(v string) bool {
	return v == "1" || v == "true"
}

func (x *xmlSpForRead) toShape() Shape {
	var frame TextFrame
	if x.TxBody != nil {
		frame = readTextFrame(x.TxBody)
	}
	if parseBoolAttr(x.NvSpPr.CNvSpPr.TxBox) {
		s := &RichTextShape{TextFrame: frame}
		applyNvPr(&s.BaseShape, x.NvSpPr.CNvPr)
		applySpPr(&s.BaseShape, &x.SpPr)
		return s
	}
	s := &AutoShape{TextFrame: frame, shapeType: AutoShapeRectangle}
	if x.SpPr.PrstGeom != nil && x.SpPr.PrstGeom.Prst != "" {
		s.shapeType = AutoShapeType(x.SpPr.PrstGeom.Prst)
	}
	applyNvPr(&s.BaseShape, x.NvSpPr.CNvPr)
	applySpPr(&s.BaseShape, &x.SpPr)
	return s
}

func (x *xmlCxnSpForRead) toShape() Shape {
	l := NewLineShape()
	applyNvPr(&l.BaseShape, x.NvCxnSpPr.CNvPr)
	applyXfrm(&l.BaseShape, x.SpPr.Xfrm)
	if ln := x.SpPr.Ln; ln != nil {
		if ln.W > 0 {
			l.lineWidth = ln.W
		}
		if c, ok := ln.SolidFill.color(); ok {
			l.lineColor = c
		}
		if ln.PrstDash != nil {
			l.lineStyle = dashStyle(ln.PrstDash.Val)
		}
		l.headEnd = readLineEnd(ln.HeadEnd)
		l.tailEnd = readLineEnd(ln.TailEnd)
	}
	return l
}

func readLineEnd(e *xmlLineEndForRead) *LineEnd {
	if e == nil || e.Type == "" || e.Type == string(ArrowNone) {
		return nil
	}
	le := NewLineEnd(ArrowType(e.Type))
	if e.W != "" {
		le.Width = ArrowSize(e.W)
	}
	if e.Len != "" {
		le.Length = ArrowSize(e.Len)
	}
	return le
}

// toShape returns a table, or nil for graphic frames holding charts,
// diagrams or OLE objects.
func (x *xmlGraphicFrameForRead) toShape() Shape {
	if x.Tbl == nil {
		return nil
	}
	cols := 0
	for _, row := range x.Tbl.Rows {
		cols = max(cols, len(row.Cells))
	}
	t := NewTableShape(len(x.Tbl.Rows), cols)
	applyNvPr(&t.BaseShape, x.NvGraphicFramePr.CNvPr)
	applyXfrm(&t.BaseShape, &x.Xfrm)
	for i, row := range x.Tbl.Rows {
		for j, tc := range row.Cells {
			cell := t.rows[i][j]
			if tc.TxBody != nil {
				cell.paragraphs = readTextFrame(tc.TxBody).paragraphs
			}
			if c, ok := tc.TcPr.SolidFill.color(); ok {
				cell.fill = NewFill().SetSolid(c)
			}
		}
	}
	return t
}

func (r *PPTXReader) pictureShape(x *xmlPicForRead, ctx slideContext) Shape {
	d := NewDrawingShape()
	applyNvPr(&d.BaseShape, x.NvPicPr.CNvPr)
	applyXfrm(&d.BaseShape, x.SpPr.Xfrm)
	embed := x.BlipFill.Blip.Embed
	for _, rel := range ctx.rels {
		if rel.ID != embed || rel.TargetMode == "External" {
			continue
		}
		target := resolveRelativePath(ctx.dir, rel.Target)
		if data, err := r.readFile(target); err == nil {
			d.SetImageData(data, guessMimeFromPath(target))
		}
		break
	}
	return d
}

func readTextFrame(body *xmlTxBodyForRead) TextFrame {
	frame := TextFrame{
		wordWrap:   body.BodyPr.Wrap != "none",
		textAnchor: TextAnchorType(body.BodyPr.Anchor),
	}
	for i := range body.Paragraphs {
		frame.paragraphs = append(frame.paragraphs, readParagraph(&body.Paragraphs[i]))
	}
	return frame
}

func readParagraph(x *xmlPForRead) *Paragraph {
	p := NewParagraph()
	if ppr := x.PPr; ppr != nil {
		if ppr.Algn != "" {
			p.alignment.Horizontal = HorizontalAlignment(ppr.Algn)
		}
		p.alignment.Level = ppr.Lvl
		if ppr.LnSpc != nil {
			if ppr.LnSpc.SpcPct != nil {
				p.lineSpacing = -atoi(ppr.LnSpc.SpcPct.Val)
			} else if ppr.LnSpc.SpcPts != nil {
				p.lineSpacing = atoi(ppr.LnSpc.SpcPts.Val)
			}
		}
		if ppr.SpcBef != nil && ppr.SpcBef.SpcPts != nil {
			p.spaceBefore = atoi(ppr.SpcBef.SpcPts.Val)
		}
		if ppr.SpcAft != nil && ppr.SpcAft.SpcPts != nil {
			p.spaceAfter = atoi(ppr.SpcAft.SpcPts.Val)
		}
		p.bullet = readBullet(ppr)
	}
	for _, child := range x.Children {
		switch child.XMLName.Local {
		case "r":
			p.CreateTextRun(child.T).font = readFont(child.RPr)
		case "fld":
			tr := p.CreateTextRun(child.T)
			tr.font = readFont(child.RPr)
			tr.field = child.Type
			if tr.field == "" {
				tr.field = "field"
			}
		case "br":
			p.CreateBreak()
		}
	}
	return p
}

func readBullet(ppr *xmlPPrForRead) *Bullet {
	var b *Bullet
	switch {
	case ppr.BuNone != nil:
		return &Bullet{Type: BulletTypeNone}
	case ppr.BuChar != nil:
		b = NewCharBullet(ppr.BuChar.Char)
	case ppr.BuAutoNum != nil:
		b = NewNumericBullet(NumFormat(ppr.BuAutoNum.Type), ppr.BuAutoNum.StartAt)
	default:
		return nil
	}
	if ppr.BuFont != nil {
		b.Font = ppr.BuFont.Typeface
	}
	if c, ok := ppr.BuClr.color(); ok {
		b.SetColor(c)
	}
	if ppr.BuSzPct != nil {
		b.Size = atoi(ppr.BuSzPct.Val) / 1000
	}
	return b
}

// readFont maps run properties to a Font. An absent or non-positive sz
// leaves Size at zero; sizes are truncated to whole points.
func readFont(rpr *xmlRPrForRead) *Font {
	f := NewFont()
	if rpr == nil {
		return f
	}
	if n := atoi(rpr.Sz); n > 0 {
		f.Size = n / 100
		if f.Size == 0 {
			f.Size = 1
		}
	}
	f.Bold = parseBoolAttr(rpr.B)
	f.Italic = parseBoolAttr(rpr.I)
	if c, ok := rpr.SolidFill.color(); ok {
		f.Color = c
	}
	if rpr.Latin != nil {
		f.Name = rpr.Latin.Typeface
	}
	if rpr.Ea != nil {
		f.NameEA = rpr.Ea.Typeface
	}
	return f
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
