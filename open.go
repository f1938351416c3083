package godeck

import (
	"fmt"
	"io"
)

// Open loads the deck at path.
func Open(path string) (*Presentation, error) {
	r, err := NewReader(ReaderPowerPoint2007)
	if err != nil {
		return nil, err
	}
	return r.Read(path)
}

// ReadFrom loads a deck of the given byte size from r.
func ReadFrom(r io.ReaderAt, size int64) (*Presentation, error) {
	reader, err := NewReader(ReaderPowerPoint2007)
	if err != nil {
		return nil, err
	}
	return reader.ReadFromReader(r, size)
}

// Save writes the deck to path, creating parent directories.
func (p *Presentation) Save(path string) error {
	w, err := NewWriter(p, WriterPowerPoint2007)
	if err != nil {
		return err
	}
	return w.Save(path)
}

// Write streams the deck as a PPTX package.
func (p *Presentation) Write(w io.Writer) error {
	pw, err := NewWriter(p, WriterPowerPoint2007)
	if err != nil {
		return err
	}
	return pw.Write(w)
}

// CopySlide appends a deep copy of the slide at index and returns it.
func (p *Presentation) CopySlide(index int) (*Slide, error) {
	if index < 0 || index >= len(p.slides) {
		return nil, fmt.Errorf("copy slide: index %d outside 0..%d", index, len(p.slides)-1)
	}
	return p.CopySlideFrom(p.slides[index]), nil
}
