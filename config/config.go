// Package config loads the YAML run configuration consumed by deckgen.
package config

import (
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/VantageDataChat/godeck/course"
	"github.com/VantageDataChat/godeck/diagram"
	"github.com/VantageDataChat/godeck/quality"
)

// Layout names accepted by Config.Layout.
const (
	LayoutDense  = "dense"
	LayoutSparse = "sparse"
)

// Config describes one course deck build.
type Config struct {
	// Input is the markdown course document; Output the deck to write.
	// Relative paths resolve against the directory of the config file.
	Input  string `yaml:"input"`
	Output string `yaml:"output"`

	Title        string         `yaml:"title"`
	Creator      string         `yaml:"creator"`
	TargetSlides int            `yaml:"target_slides"`
	Layout       string         `yaml:"layout"`
	Objectives   []string       `yaml:"objectives"`
	Diagrams     map[int]string `yaml:"diagrams"`
	FontDirs     []string       `yaml:"font_dirs"`

	Verify  VerifyConfig  `yaml:"verify"`
	Logging LoggingConfig `yaml:"logging"`
}

// VerifyConfig controls the check run after the deck is written.
type VerifyConfig struct {
	Skip         bool    `yaml:"skip"`
	MinSlides    int     `yaml:"min_slides"`
	TargetSize   int     `yaml:"target_size"`
	MinRatio     float64 `yaml:"min_ratio"`
	MinAvgShapes float64 `yaml:"min_avg_shapes"`
	Governing    bool    `yaml:"governing"`
}

// LoggingConfig selects the go-logger level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration of a 48 slide dense lecture deck.
func Default() Config {
	q := quality.DefaultConfig()
	return Config{
		Creator:      "godeck",
		TargetSlides: course.DefaultTargetSlides,
		Layout:       LayoutDense,
		Verify: VerifyConfig{
			MinSlides:    q.MinSlides,
			TargetSize:   q.TargetSize,
			MinRatio:     q.MinTargetRatio,
			MinAvgShapes: q.MinAvgShapes,
			Governing:    q.CheckGoverning,
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Load reads path over the defaults, resolves relative paths and validates
// the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, readError(path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	cfg.resolve(filepath.Dir(path))
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates it. Paths are kept as
// written.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, decodeError(err)
	}
	cfg.Layout = strings.ToLower(strings.TrimSpace(cfg.Layout))
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) resolve(base string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	c.Input = abs(c.Input)
	c.Output = abs(c.Output)
	for i, dir := range c.FontDirs {
		c.FontDirs[i] = abs(dir)
	}
}

// Validate reports missing paths and out of range settings.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Input, validation.Required),
		validation.Field(&c.Output, validation.Required, validation.By(pptxPath)),
		validation.Field(&c.TargetSlides, validation.Min(0), validation.Max(500)),
		validation.Field(&c.Layout, validation.In(LayoutDense, LayoutSparse)),
		validation.Field(&c.Diagrams, validation.By(diagramRefs)),
		validation.Field(&c.Logging),
		validation.Field(&c.Verify),
	)
	if err != nil {
		return invalidError(err)
	}
	return nil
}

// Validate implements validation.Validatable.
func (l LoggingConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In("trace", "debug", "info", "warn", "error", "fatal")),
		validation.Field(&l.Format, validation.In("console", "json", "pretty")),
	)
}

// Validate implements validation.Validatable.
func (v VerifyConfig) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.MinSlides, validation.Min(0)),
		validation.Field(&v.TargetSize, validation.Min(1)),
		validation.Field(&v.MinRatio, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&v.MinAvgShapes, validation.Min(0.0)),
	)
}

// Dense reports whether content slides use the dense layout.
func (c Config) Dense() bool { return c.Layout != LayoutSparse }

// Quality returns the verifier thresholds for this run.
func (c Config) Quality() quality.Config {
	return quality.DefaultConfig().
		WithMinSlides(c.Verify.MinSlides).
		WithTargetSize(c.Verify.TargetSize, c.Verify.MinRatio).
		WithMinAvgShapes(c.Verify.MinAvgShapes).
		WithGoverningCheck(c.Verify.Governing)
}

func pptxPath(value any) error {
	p, _ := value.(string)
	if p != "" && !strings.EqualFold(filepath.Ext(p), ".pptx") {
		return validation.NewError("validation_pptx_path", "must end in .pptx")
	}
	return nil
}

func diagramRefs(value any) error {
	refs, _ := value.(map[int]string)
	known := map[string]bool{}
	for _, name := range diagram.Names() {
		known[name] = true
	}
	for slide, name := range refs {
		if slide < 1 {
			return validation.NewError("validation_diagram_slide", "slide numbers start at 1")
		}
		if !known[name] {
			return validation.NewError("validation_diagram_name", "unknown diagram "+name)
		}
	}
	return nil
}
