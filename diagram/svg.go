package diagram

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/VantageDataChat/godeck/slidespec"
)

// SVG returns the diagram as a standalone SVG document.
func (d *Diagram) SVG() []byte {
	var buf bytes.Buffer
	d.writeSVG(&buf)
	return buf.Bytes()
}

// WriteSVG writes the diagram as a standalone SVG document to w.
func (d *Diagram) WriteSVG(w io.Writer) error {
	var buf bytes.Buffer
	d.writeSVG(&buf)
	if _, err := w.Write(buf.Bytes()); err != nil {
		return writeError(d.Name, err)
	}
	return nil
}

func (d *Diagram) writeSVG(buf *bytes.Buffer) {
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(buf, `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`+"\n", d.Width, d.Height)
	buf.WriteString("<defs>\n<style>\n")
	paints := d.paints()
	for _, class := range classOrder {
		fmt.Fprintf(buf, "    .%s { %s }\n", class, cssRules(paints[class]))
	}
	buf.WriteString("</style>\n</defs>\n")

	for _, el := range d.Elements {
		switch e := el.(type) {
		case Rect:
			fmt.Fprintf(buf, `<rect class="%s" x="%s" y="%s" width="%s" height="%s"`, e.Class, num(e.X), num(e.Y), num(e.W), num(e.H))
			if e.RX > 0 {
				fmt.Fprintf(buf, ` rx="%s"`, num(e.RX))
			}
			writeColorAttr(buf, "fill", e.Fill)
			writeColorAttr(buf, "stroke", e.Stroke)
			buf.WriteString("/>\n")
		case Line:
			fmt.Fprintf(buf, `<line class="%s" x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n", e.Class, num(e.X1), num(e.Y1), num(e.X2), num(e.Y2))
		case Polygon:
			pts := make([]string, len(e.Points))
			for i, p := range e.Points {
				pts[i] = num(p.X) + "," + num(p.Y)
			}
			fmt.Fprintf(buf, `<polygon class="%s" points="%s"/>`+"\n", e.Class, strings.Join(pts, " "))
		case Circle:
			fmt.Fprintf(buf, `<circle class="%s" cx="%s" cy="%s" r="%s"/>`+"\n", e.Class, num(e.CX), num(e.CY), num(e.R))
		case Text:
			fmt.Fprintf(buf, `<text class="%s" x="%s" y="%s"`, e.Class, num(e.X), num(e.Y))
			if e.Anchor == AnchorMiddle {
				buf.WriteString(` text-anchor="middle"`)
			}
			if e.Bold {
				buf.WriteString(` font-weight="bold"`)
			}
			if e.Size > 0 {
				fmt.Fprintf(buf, ` font-size="%s"`, num(e.Size))
			}
			writeColorAttr(buf, "fill", e.Fill)
			buf.WriteString(">")
			_ = xml.EscapeText(buf, []byte(e.Content))
			buf.WriteString("</text>\n")
		}
	}
	buf.WriteString("</svg>")
}

func cssRules(p paint) string {
	var rules []string
	if p.isText() {
		rules = append(rules, "font-family: "+svgFontFamily+";", "font-size: "+num(p.fontSize)+"px;")
		if p.bold {
			rules = append(rules, "font-weight: bold;")
		}
	}
	if p.fill.IsSet() {
		rules = append(rules, "fill: #"+string(p.fill)+";")
	}
	if p.stroke.IsSet() {
		rules = append(rules, "stroke: #"+string(p.stroke)+";", "stroke-width: "+num(p.strokeWidth)+";")
		if !p.fill.IsSet() {
			rules = append(rules, "fill: none;")
		}
	}
	return strings.Join(rules, " ")
}

func writeColorAttr(buf *bytes.Buffer, name string, c slidespec.Color) {
	if c.IsSet() {
		fmt.Fprintf(buf, ` %s="#%s"`, name, c)
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
