// Package godeck is a pure Go library for writing, reading, checking and
// previewing PowerPoint decks (.pptx) in the Office Open XML format.
//
// It carries just enough of the presentation model to build lecture decks:
// text boxes, auto shapes, connectors, tables, pictures and groups on a
// single blank layout.
//
// See the Version variable for the current library version.
package godeck

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultFontName is the typeface written into the theme and master styles.
const DefaultFontName = "맑은 고딕"

// Presentation represents an in-memory PowerPoint presentation.
type Presentation struct {
	properties  *DocumentProperties
	slides      []*Slide
	layout      *DocumentLayout
	defaultFont string
}

// New creates a new Presentation with one default blank slide.
func New() *Presentation {
	p := NewBlank()
	p.CreateSlide()
	return p
}

// NewBlank creates a new Presentation without slides.
func NewBlank() *Presentation {
	return &Presentation{
		properties:  NewDocumentProperties(),
		slides:      make([]*Slide, 0),
		layout:      NewDocumentLayout(),
		defaultFont: DefaultFontName,
	}
}

// GetDocumentProperties returns the document properties.
func (p *Presentation) GetDocumentProperties() *DocumentProperties {
	return p.properties
}

// SetDocumentProperties sets the document properties.
func (p *Presentation) SetDocumentProperties(props *DocumentProperties) {
	p.properties = props
}

// GetLayout returns the document layout.
func (p *Presentation) GetLayout() *DocumentLayout {
	return p.layout
}

// SetLayout sets the document layout.
func (p *Presentation) SetLayout(layout *DocumentLayout) {
	p.layout = layout
}

// SetDefaultFont sets the theme typeface used by runs without an explicit name.
func (p *Presentation) SetDefaultFont(name string) {
	if name != "" {
		p.defaultFont = name
	}
}

// GetDefaultFont returns the theme typeface.
func (p *Presentation) GetDefaultFont() string {
	return p.defaultFont
}

// CreateSlide creates a new slide and adds it to the presentation.
func (p *Presentation) CreateSlide() *Slide {
	slide := newSlide()
	p.slides = append(p.slides, slide)
	return slide
}

// AddSlide adds an existing slide to the presentation.
func (p *Presentation) AddSlide(slide *Slide) *Slide {
	p.slides = append(p.slides, slide)
	return slide
}

// CopySlideFrom appends a deep copy of a slide taken from another
// presentation. Pictures keep their bytes.
func (p *Presentation) CopySlideFrom(src *Slide) *Slide {
	return p.AddSlide(src.clone())
}

// GetSlide returns a slide by index.
func (p *Presentation) GetSlide(index int) (*Slide, error) {
	if index < 0 || index >= len(p.slides) {
		return nil, errors.New("slide index out of range")
	}
	return p.slides[index], nil
}

// GetAllSlides returns all slides.
func (p *Presentation) GetAllSlides() []*Slide {
	return p.slides
}

// GetSlideCount returns the number of slides.
func (p *Presentation) GetSlideCount() int {
	return len(p.slides)
}

// RemoveSlideByIndex removes a slide by index.
func (p *Presentation) RemoveSlideByIndex(index int) error {
	if index < 0 || index >= len(p.slides) {
		return errors.New("slide index out of range")
	}
	p.slides = append(p.slides[:index], p.slides[index+1:]...)
	return nil
}

// MoveSlide moves a slide from one index to another.
func (p *Presentation) MoveSlide(fromIndex, toIndex int) error {
	if fromIndex < 0 || fromIndex >= len(p.slides) {
		return errors.New("fromIndex out of range")
	}
	if toIndex < 0 || toIndex >= len(p.slides) {
		return errors.New("toIndex out of range")
	}
	if fromIndex == toIndex {
		return nil
	}
	slide := p.slides[fromIndex]
	p.slides = append(p.slides[:fromIndex], p.slides[fromIndex+1:]...)
	p.slides = append(p.slides, nil)
	copy(p.slides[toIndex+1:], p.slides[toIndex:])
	p.slides[toIndex] = slide
	return nil
}

// ExtractText returns the text of every slide, separated by blank lines.
func (p *Presentation) ExtractText() string {
	parts := make([]string, 0, len(p.slides))
	for _, s := range p.slides {
		parts = append(parts, s.ExtractText())
	}
	return strings.Join(parts, "\n\n")
}

// DocumentProperties holds standard and custom document properties.
type DocumentProperties struct {
	Creator        string
	LastModifiedBy string
	Created        time.Time
	Modified       time.Time
	Title          string
	Description    string
	Subject        string
	Keywords       string
	Category       string
	Company        string
	Revision       string
	customProps    map[string]*CustomProperty
}

// CustomProperty represents a custom document property.
type CustomProperty struct {
	Name  string
	Value any
	Type  PropertyType
}

// PropertyType represents the type of a custom property.
type PropertyType int

const (
	PropertyTypeString PropertyType = iota
	PropertyTypeBoolean
	PropertyTypeInteger
	PropertyTypeFloat
	PropertyTypeDate
	PropertyTypeUnknown
)

// GenerationIDProperty names the custom property stamped on every new deck.
const GenerationIDProperty = "GenerationID"

// NewDocumentProperties creates new document properties with defaults and a
// fresh generation id.
func NewDocumentProperties() *DocumentProperties {
	now := time.Now().UTC().Truncate(time.Second)
	dp := &DocumentProperties{
		Creator:        "GoDeck",
		LastModifiedBy: "GoDeck",
		Created:        now,
		Modified:       now,
		customProps:    make(map[string]*CustomProperty),
	}
	dp.SetCustomProperty(GenerationIDProperty, uuid.NewString(), PropertyTypeString)
	return dp
}

// SetCustomProperty sets a custom property.
func (dp *DocumentProperties) SetCustomProperty(name string, value any, propType PropertyType) {
	if dp.customProps == nil {
		dp.customProps = make(map[string]*CustomProperty)
	}
	dp.customProps[name] = &CustomProperty{
		Name:  name,
		Value: value,
		Type:  propType,
	}
}

// IsCustomPropertySet checks if a custom property exists.
func (dp *DocumentProperties) IsCustomPropertySet(name string) bool {
	_, ok := dp.customProps[name]
	return ok
}

// GetCustomProperties returns all custom property names, sorted.
func (dp *DocumentProperties) GetCustomProperties() []string {
	names := make([]string, 0, len(dp.customProps))
	for name := range dp.customProps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetCustomPropertyValue returns the value of a custom property.
func (dp *DocumentProperties) GetCustomPropertyValue(name string) any {
	if prop, ok := dp.customProps[name]; ok {
		return prop.Value
	}
	return nil
}

// GetCustomPropertyType returns the type of a custom property.
func (dp *DocumentProperties) GetCustomPropertyType(name string) PropertyType {
	if prop, ok := dp.customProps[name]; ok {
		return prop.Type
	}
	return PropertyTypeUnknown
}
