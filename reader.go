package godeck

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Reader is the interface for presentation readers.
type Reader interface {
	Read(path string) (*Presentation, error)
	ReadFromReader(r io.ReaderAt, size int64) (*Presentation, error)
}

// ReaderType represents the input format.
type ReaderType string

const (
	ReaderPowerPoint2007 ReaderType = "PowerPoint2007"
)

// NewReader creates a reader for the given format.
func NewReader(format ReaderType) (Reader, error) {
	switch format {
	case ReaderPowerPoint2007:
		return &PPTXReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported reader format: %s", format)
	}
}

// PPTXReader reads PPTX files.
type PPTXReader struct {
	files     map[string]*zip.File
	extracted int64
}

// Read reads a presentation from a file path. A missing file yields an error
// matching fs.ErrNotExist.
func (r *PPTXReader) Read(path string) (*Presentation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return r.ReadFromReader(f, info.Size())
}

// ReadFromReader reads a presentation from an io.ReaderAt.
func (r *PPTXReader) ReadFromReader(reader io.ReaderAt, size int64) (*Presentation, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid reader size: %d", size)
	}
	if size > int64(maxZipTotalSize) {
		return nil, fmt.Errorf("file size %d exceeds maximum allowed (%d bytes)", size, maxZipTotalSize)
	}

	zr, err := zip.NewReader(reader, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}
	if len(zr.File) > maxZipEntries {
		return nil, fmt.Errorf("zip archive contains too many entries (%d > %d)", len(zr.File), maxZipEntries)
	}

	r.files = make(map[string]*zip.File, len(zr.File))
	r.extracted = 0
	for _, f := range zr.File {
		r.files[f.Name] = f
	}

	pres := NewBlank()

	// Missing property parts are acceptable.
	_ = r.readCoreProperties(pres)
	_ = r.readCustomProperties(pres)

	slideRels, err := r.readPresentation(pres)
	if err != nil {
		return nil, err
	}

	presRels, err := r.readRelationships("ppt/_rels/presentation.xml.rels")
	if err != nil {
		return nil, err
	}

	for _, relID := range slideRels {
		target := ""
		for _, rel := range presRels {
			if rel.ID == relID {
				target = rel.Target
				break
			}
		}
		if target == "" {
			continue
		}
		target = resolveRelativePath("ppt", target)

		slide, err := r.readSlide(target)
		if err != nil {
			return nil, fmt.Errorf("failed to read slide %s: %w", target, err)
		}
		pres.slides = append(pres.slides, slide)
	}

	return pres, nil
}

// maxZipEntrySize is the maximum allowed size for a single file extracted from a ZIP.
const maxZipEntrySize = 50 << 20 // 50 MB

// maxZipTotalSize is the cumulative limit for all extracted content from a single ZIP.
const maxZipTotalSize = 200 << 20 // 200 MB

// maxZipEntries is the maximum number of files allowed in a ZIP archive.
const maxZipEntries = 10000

func (r *PPTXReader) readFile(name string) ([]byte, error) {
	f, ok := r.files[name]
	if !ok {
		return nil, fmt.Errorf("file not found in zip: %s", name)
	}
	if f.UncompressedSize64 > maxZipEntrySize {
		return nil, fmt.Errorf("file %s exceeds maximum allowed size (%d bytes)", name, maxZipEntrySize)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s in zip: %w", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, int64(maxZipEntrySize)+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from zip: %w", name, err)
	}
	if int64(len(data)) > int64(maxZipEntrySize) {
		return nil, fmt.Errorf("file %s actual size exceeds maximum allowed size", name)
	}
	r.extracted += int64(len(data))
	if r.extracted > maxZipTotalSize {
		return nil, fmt.Errorf("extracted content exceeds maximum allowed (%d bytes)", maxZipTotalSize)
	}
	return data, nil
}

// --- Relationship reading ---

type xmlRelForRead struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

type xmlRelsForRead struct {
	XMLName       xml.Name        `xml:"Relationships"`
	Relationships []xmlRelForRead `xml:"Relationship"`
}

func (r *PPTXReader) readRelationships(path string) ([]xmlRelForRead, error) {
	data, err := r.readFile(path)
	if err != nil {
		return nil, nil // relationships file may not exist
	}

	var rels xmlRelsForRead
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse relationships %s: %w", path, err)
	}
	return rels.Relationships, nil
}

// --- presentation.xml ---

type xmlPresentationForRead struct {
	XMLName xml.Name `xml:"presentation"`
	SldIDs  []struct {
		ID  string `xml:"id,attr"`
		RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
	SldSz *struct {
		CX int64 `xml:"cx,attr"`
		CY int64 `xml:"cy,attr"`
	} `xml:"sldSz"`
}

// readPresentation reads the slide size and returns slide relationship ids
// in presentation order.
func (r *PPTXReader) readPresentation(pres *Presentation) ([]string, error) {
	data, err := r.readFile("ppt/presentation.xml")
	if err != nil {
		return nil, err
	}
	var doc xmlPresentationForRead
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse presentation.xml: %w", err)
	}
	switch {
	case doc.SldSz == nil:
		// No declared size; report zero rather than a default canvas.
		pres.layout = &DocumentLayout{Name: LayoutCustom}
	case doc.SldSz.CX == CourseWidth && doc.SldSz.CY == CourseHeight:
		pres.layout.SetLayout(LayoutCourse)
	default:
		pres.layout = &DocumentLayout{CX: doc.SldSz.CX, CY: doc.SldSz.CY, Name: LayoutCustom}
	}
	ids := make([]string, 0, len(doc.SldIDs))
	for _, s := range doc.SldIDs {
		ids = append(ids, s.RID)
	}
	return ids, nil
}

// --- docProps ---

type xmlCorePropsForRead struct {
	Creator        string `xml:"creator"`
	LastModifiedBy string `xml:"lastModifiedBy"`
	Title          string `xml:"title"`
	Description    string `xml:"description"`
	Subject        string `xml:"subject"`
	Keywords       string `xml:"keywords"`
	Category       string `xml:"category"`
	Revision       string `xml:"revision"`
	Created        string `xml:"created"`
	Modified       string `xml:"modified"`
}

func (r *PPTXReader) readCoreProperties(pres *Presentation) error {
	data, err := r.readFile("docProps/core.xml")
	if err != nil {
		return err
	}
	var cp xmlCorePropsForRead
	if err := xml.Unmarshal(data, &cp); err != nil {
		return fmt.Errorf("failed to parse core properties: %w", err)
	}
	props := pres.properties
	props.Creator = cp.Creator
	props.LastModifiedBy = cp.LastModifiedBy
	props.Title = cp.Title
	props.Description = cp.Description
	props.Subject = cp.Subject
	props.Keywords = cp.Keywords
	props.Category = cp.Category
	props.Revision = cp.Revision
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(cp.Created)); err == nil {
		props.Created = t
	}
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(cp.Modified)); err == nil {
		props.Modified = t
	}
	return nil
}

type xmlCustomPropsForRead struct {
	Properties []struct {
		Name     string  `xml:"name,attr"`
		Lpwstr   *string `xml:"lpwstr"`
		Bool     *string `xml:"bool"`
		I4       *string `xml:"i4"`
		R8       *string `xml:"r8"`
		Filetime *string `xml:"filetime"`
	} `xml:"property"`
}

// readCustomProperties replaces the fresh generation id with the stored
// custom properties, when the package has any.
func (r *PPTXReader) readCustomProperties(pres *Presentation) error {
	data, err := r.readFile("docProps/custom.xml")
	if err != nil {
		return err
	}
	var doc xmlCustomPropsForRead
	if err := xml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse custom properties: %w", err)
	}
	props := pres.properties
	props.customProps = make(map[string]*CustomProperty, len(doc.Properties))
	for _, p := range doc.Properties {
		switch {
		case p.Bool != nil:
			props.SetCustomProperty(p.Name, *p.Bool == "true" || *p.Bool == "1", PropertyTypeBoolean)
		case p.I4 != nil:
			if v, err := strconv.Atoi(strings.TrimSpace(*p.I4)); err == nil {
				props.SetCustomProperty(p.Name, v, PropertyTypeInteger)
			}
		case p.R8 != nil:
			if v, err := strconv.ParseFloat(strings.TrimSpace(*p.R8), 64); err == nil {
				props.SetCustomProperty(p.Name, v, PropertyTypeFloat)
			}
		case p.Filetime != nil:
			if v, err := time.Parse(time.RFC3339, strings.TrimSpace(*p.Filetime)); err == nil {
				props.SetCustomProperty(p.Name, v, PropertyTypeDate)
			}
		case p.Lpwstr != nil:
			props.SetCustomProperty(p.Name, *p.Lpwstr, PropertyTypeString)
		}
	}
	return nil
}

// --- paths ---

func lastPathComponent(path string) string {
	parts := strings.Split(path, "/")
	return parts[len(parts)-1]
}

// resolveRelativePath resolves a relationship target against the directory
// of its source part. The result never leaves the package root.
func resolveRelativePath(base, rel string) string {
	if strings.HasPrefix(rel, "/") {
		return strings.TrimPrefix(rel, "/")
	}

	baseParts := strings.Split(base, "/")
	relParts := strings.Split(rel, "/")

	result := make([]string, 0, len(baseParts)+len(relParts))
	result = append(result, baseParts...)

	for _, part := range relParts {
		if part == ".." {
			if len(result) > 0 {
				result = result[:len(result)-1]
			}
		} else if part != "." && part != "" {
			result = append(result, part)
		}
	}

	resolved := strings.Join(result, "/")
	if !strings.HasPrefix(resolved, "ppt/") && !strings.HasPrefix(resolved, "docProps/") {
		return "ppt/" + resolved
	}
	return resolved
}
