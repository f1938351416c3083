package outline

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Span is a piece of inline text with its emphasis.
type Span struct {
	Text string
	Bold bool
}

// inlineParser knows paragraphs only, so list markers, heading hashes and
// quote marks inside a title or bullet stay literal text.
var inlineParser = parser.NewParser(
	parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
	parser.WithInlineParsers(append(parser.DefaultInlineParsers(),
		util.Prioritized(extension.NewStrikethroughParser(), 500))...),
	parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
)

// PlainText strips inline markdown (emphasis, code, links) from s.
func PlainText(s string) string {
	var sb strings.Builder
	for _, span := range Spans(s) {
		sb.WriteString(span.Text)
	}
	return sb.String()
}

// Spans splits s into runs of plain and bold text, merging neighbours with
// the same weight.
func Spans(s string) []Span {
	src := []byte(s)
	doc := inlineParser.Parse(text.NewReader(src))

	var spans []Span
	add := func(t string, bold bool) {
		if t == "" {
			return
		}
		if n := len(spans); n > 0 && spans[n-1].Bold == bold {
			spans[n-1].Text += t
			return
		}
		spans = append(spans, Span{Text: t, Bold: bold})
	}

	boldDepth := 0
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Emphasis:
			if node.Level >= 2 {
				if entering {
					boldDepth++
				} else {
					boldDepth--
				}
			}
		case *ast.Text:
			if !entering {
				break
			}
			add(string(node.Segment.Value(src)), boldDepth > 0)
			if node.SoftLineBreak() || node.HardLineBreak() {
				add(" ", boldDepth > 0)
			}
		case *ast.String:
			if entering {
				add(string(node.Value), boldDepth > 0)
			}
		case *ast.AutoLink:
			if entering {
				add(string(node.Label(src)), boldDepth > 0)
			}
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		default:
			if entering && n.Type() == ast.TypeBlock && n.PreviousSibling() != nil {
				add(" ", false)
			}
		}
		return ast.WalkContinue, nil
	})

	if n := len(spans); n > 0 {
		spans[n-1].Text = strings.TrimRight(spans[n-1].Text, " ")
		if spans[n-1].Text == "" {
			spans = spans[:n-1]
		}
	}
	return spans
}
