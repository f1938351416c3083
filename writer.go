package godeck

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Writer is the interface for presentation writers.
type Writer interface {
	Save(path string) error
	Write(w io.Writer) error
}

// WriterType represents the output format.
type WriterType string

const (
	WriterPowerPoint2007 WriterType = "PowerPoint2007"
)

// NewWriter creates a writer for the given format.
func NewWriter(p *Presentation, format WriterType) (Writer, error) {
	switch format {
	case WriterPowerPoint2007:
		return &PPTXWriter{presentation: p}, nil
	default:
		return nil, fmt.Errorf("unsupported writer format: %s", format)
	}
}

// PPTXWriter writes presentations in PPTX format.
type PPTXWriter struct {
	presentation *Presentation
	media        []mediaPart
}

// mediaPart is an image written under ppt/media. Each picture gets its own
// part, numbered in slide order.
type mediaPart struct {
	shape *DrawingShape
	name  string
}

// Save writes the presentation to a file, removing the partial file on failure.
func (w *PPTXWriter) Save(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	writeErr := w.Write(f)
	closeErr := f.Close()

	if writeErr != nil {
		os.Remove(path)
		return writeErr
	}
	return closeErr
}

// Write writes the presentation to a writer.
func (w *PPTXWriter) Write(writer io.Writer) error {
	if w.presentation == nil {
		return fmt.Errorf("presentation is nil")
	}
	if err := w.loadMedia(); err != nil {
		return err
	}

	zw := zip.NewWriter(writer)

	steps := []func(*zip.Writer) error{
		w.writeContentTypes,
		w.writeRootRels,
		w.writeAppProperties,
		w.writeCoreProperties,
		w.writeCustomProperties,
		w.writePresentation,
		w.writePresentationRels,
		w.writePresProps,
		w.writeViewProps,
		w.writeTableStyles,
		w.writeSlideMaster,
		w.writeSlideLayout,
		w.writeTheme,
	}
	for _, step := range steps {
		if err := step(zw); err != nil {
			return err
		}
	}

	for i, slide := range w.presentation.slides {
		if err := w.writeSlide(zw, slide, i+1); err != nil {
			return err
		}
		if err := w.writeSlideRels(zw, slide, i+1); err != nil {
			return err
		}
	}

	if err := w.writeMedia(zw); err != nil {
		return err
	}

	return zw.Close()
}

// loadMedia numbers every picture and reads path-only pictures from disk.
func (w *PPTXWriter) loadMedia() error {
	w.media = w.media[:0]
	for _, slide := range w.presentation.slides {
		for _, ds := range collectDrawingShapes(slide.shapes) {
			if len(ds.data) == 0 && ds.path != "" {
				if err := ds.SetImageFromFile(ds.path); err != nil {
					return err
				}
			}
			w.media = append(w.media, mediaPart{
				shape: ds,
				name:  fmt.Sprintf("image%d.%s", len(w.media)+1, getImageExtension(ds)),
			})
		}
	}
	return nil
}

func (w *PPTXWriter) mediaName(ds *DrawingShape) string {
	for _, m := range w.media {
		if m.shape == ds {
			return m.name
		}
	}
	return ""
}

func (w *PPTXWriter) writeMedia(zw *zip.Writer) error {
	for _, m := range w.media {
		fw, err := zw.Create("ppt/media/" + m.name)
		if err != nil {
			return fmt.Errorf("failed to create media %s: %w", m.name, err)
		}
		if _, err := fw.Write(m.shape.data); err != nil {
			return err
		}
	}
	return nil
}

// collectDrawingShapes returns every picture with image bytes or a source
// path, in slide order, group members included.
func collectDrawingShapes(shapes []Shape) []*DrawingShape {
	var out []*DrawingShape
	walkShapes(shapes, func(s Shape) {
		if ds, ok := s.(*DrawingShape); ok && (len(ds.data) > 0 || ds.path != "") {
			out = append(out, ds)
		}
	})
	return out
}
