package outline

import (
	"bytes"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/adrg/frontmatter"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/VantageDataChat/godeck/internal/logging"
)

var (
	headingPattern = regexp.MustCompile(`^(#{2,3})[\s\p{Zs}]+(.+)$`)
	bulletPattern  = regexp.MustCompile(`^[\s\p{Zs}]*[-*][\s\p{Zs}]+`)
)

const (
	asideOpen  = "<aside>"
	asideClose = "</aside>"
)

// decorativeEmoji are the markers authors put on their own line inside asides.
var decorativeEmoji = map[rune]bool{}

func init() {
	for _, r := range "🎯💡📋⚠🔴🟢🟣⚪🔄📜🤝📊📦🔬📡📖📈🚀💻🏪✅" {
		decorativeEmoji[r] = true
	}
}

// Parser turns markdown into sections.
type Parser struct {
	logger logging.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger logging.Logger) Option {
	return func(p *Parser) {
		p.logger = logging.Ensure(logger)
	}
}

// New returns a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Parse reads the markdown file at path and returns its sections in source order.
func Parse(path string) ([]Section, error) {
	return New().Parse(path)
}

// ParseReader applies the same rules as Parse to a stream.
func ParseReader(r io.Reader) ([]Section, error) {
	return New().ParseReader(r)
}

// ParseDocument reads path, strips YAML front matter and scans the rest.
func ParseDocument(path string) (*Document, error) {
	return New().ParseDocument(path)
}

// Parse reads the markdown file at path and returns its sections in source order.
func (p *Parser) Parse(path string) ([]Section, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := p.scanBytes(data, 0)
	if err != nil {
		return nil, err
	}
	p.report(path, doc)
	return doc.Sections, nil
}

// ParseReader applies the same rules as Parse to a stream.
func (p *Parser) ParseReader(r io.Reader) ([]Section, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, readError(err)
	}
	doc, err := p.scanBytes(data, 0)
	if err != nil {
		return nil, err
	}
	return doc.Sections, nil
}

// ParseDocument reads path, strips YAML front matter and scans the rest.
// Section line numbers count from the top of the file, front matter included.
func (p *Parser) ParseDocument(path string) (*Document, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	data, err = decode(data)
	if err != nil {
		return nil, err
	}

	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return nil, malformedError("invalid front matter in "+path, err)
	}
	offset := 0
	if bytes.HasSuffix(data, body) {
		offset = bytes.Count(data[:len(data)-len(body)], []byte("\n"))
	}

	doc, err := p.scanBytes(body, offset)
	if err != nil {
		return nil, err
	}
	doc.Meta = meta
	p.report(path, doc)
	return doc, nil
}

func (p *Parser) report(path string, doc *Document) {
	logger := logging.WithFile(p.logger, path, 0)
	logger.Debug("outline parsed", "sections", len(doc.Sections))
	if doc.Unterminated > 0 {
		logger.Warn("aside never closed; its content is dropped", "line", doc.Unterminated)
	}
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFoundError(path, err)
		}
		return nil, readError(err)
	}
	return data, nil
}

// decode validates UTF-8, drops a leading BOM and normalises to NFC.
func decode(data []byte) ([]byte, error) {
	if !utf8.Valid(data) {
		return nil, malformedError("input is not valid UTF-8", nil)
	}
	out, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), data)
	if err != nil {
		return nil, malformedError("decode input", err)
	}
	return norm.NFC.Bytes(out), nil
}

func (p *Parser) scanBytes(data []byte, lineOffset int) (*Document, error) {
	data, err := decode(data)
	if err != nil {
		return nil, err
	}
	text := string(data)
	if text == "" {
		return &Document{}, nil
	}
	text = strings.TrimSuffix(text, "\n")

	s := &scanner{}
	for i, line := range strings.Split(text, "\n") {
		s.scanLine(lineOffset+i+1, strings.TrimSuffix(line, "\r"))
	}
	return s.finish(), nil
}

// scanState is the aside state of a scan. It spans headings: an aside that
// crosses a heading lands in the section where it closes.
type scanState int

const (
	stateScanning scanState = iota
	stateInsideAside
)

type scanner struct {
	state     scanState
	aside     []string
	asideLine int
	current   *Section
	sections  []Section
}

func (s *scanner) scanLine(num int, line string) {
	if m := headingPattern.FindStringSubmatch(line); m != nil {
		s.flush()
		s.current = &Section{
			Level:     len(m[1]),
			Title:     strings.TrimSpace(m[2]),
			LineStart: num,
			LineEnd:   num,
		}
		return
	}
	// Lines before the first heading are discarded.
	if s.current == nil {
		return
	}

	sec := s.current
	sec.ContentLines = append(sec.ContentLines, line)
	sec.LineEnd = num
	trimmed := strings.TrimSpace(line)

	switch {
	case strings.Contains(line, asideOpen):
		s.state = stateInsideAside
		s.aside = nil
		s.asideLine = num
	case strings.Contains(line, asideClose):
		if s.state == stateInsideAside && len(s.aside) > 0 {
			sec.AsideBlocks = append(sec.AsideBlocks, strings.Join(s.aside, "\n"))
		}
		s.state = stateScanning
		s.aside = nil
	case s.state == stateInsideAside && trimmed != "" && !isDecorativeEmoji(trimmed):
		s.aside = append(s.aside, trimmed)
	}

	if loc := bulletPattern.FindStringIndex(line); loc != nil {
		item := strings.TrimSpace(line[loc[1]:])
		if item != "" && !strings.HasPrefix(item, "**") {
			sec.Bullets = append(sec.Bullets, item)
		}
	}

	if strings.Contains(line, "|") && !strings.Contains(line, "---") {
		if len(sec.Tables) == 0 {
			sec.Tables = append(sec.Tables, nil)
		}
		last := len(sec.Tables) - 1
		sec.Tables[last] = append(sec.Tables[last], trimmed)
	}
}

func (s *scanner) flush() {
	if s.current != nil {
		s.sections = append(s.sections, *s.current)
		s.current = nil
	}
}

func (s *scanner) finish() *Document {
	s.flush()
	doc := &Document{Sections: s.sections}
	if s.state == stateInsideAside {
		doc.Unterminated = s.asideLine
	}
	return doc
}

// isDecorativeEmoji reports whether a non-blank trimmed line is a single
// marker emoji, optionally followed by a variation selector, or nothing but
// variation selectors.
func isDecorativeEmoji(trimmed string) bool {
	trimmed = strings.TrimRight(trimmed, "\uFE0F\uFE0E")
	if trimmed == "" {
		return true
	}
	r, size := utf8.DecodeRuneInString(trimmed)
	return size == len(trimmed) && decorativeEmoji[r]
}
