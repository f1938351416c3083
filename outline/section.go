// Package outline splits course markdown into heading sections and extracts
// the bullets, aside callouts and table rows that drive slide generation.
package outline

// Section is one level-2 or level-3 heading block. Line numbers are 1-based
// and refer to the source file.
type Section struct {
	Level        int
	Title        string
	ContentLines []string
	LineStart    int
	LineEnd      int
	Bullets      []string
	AsideBlocks  []string
	Tables       [][]string
}

// Meta is the optional YAML front matter of a course document.
type Meta struct {
	Title    string   `yaml:"title"`
	Subtitle string   `yaml:"subtitle"`
	Session  string   `yaml:"session"`
	Date     string   `yaml:"date"`
	Tags     []string `yaml:"tags"`
}

// Document is a parsed markdown file with its front matter.
type Document struct {
	Meta     Meta
	Sections []Section
	// Unterminated is the 1-based line of an <aside> still open at end of
	// file, or 0. Its content is not part of any section.
	Unterminated int
}

// Chapters returns the level-2 sections in order.
func (d *Document) Chapters() []Section {
	var out []Section
	for _, s := range d.Sections {
		if s.Level == 2 {
			out = append(out, s)
		}
	}
	return out
}
