package quality

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config holds the verifier thresholds. It is a value: the With* methods
// return modified copies and never touch the receiver.
type Config struct {
	// Canvas size in inches and the allowed absolute deviation per axis.
	WidthInches  float64
	HeightInches float64
	Tolerance    float64

	// MinSlides is the warning threshold; TargetSlides is only quoted in the message.
	MinSlides    int
	TargetSlides int

	// TargetSize is the point size whose share is measured.
	TargetSize     int
	MinTargetRatio float64
	GoalRatio      float64

	MinAvgShapes  float64
	GoalAvgShapes float64

	// GoverningSize is the bold size expected on content slides
	// GoverningFrom..GoverningTo (1-based, inclusive).
	CheckGoverning bool
	GoverningSize  int
	GoverningFrom  int
	GoverningTo    int
}

// DefaultConfig returns the thresholds used for lecture decks.
func DefaultConfig() Config {
	return Config{
		WidthInches:    10.83,
		HeightInches:   7.50,
		Tolerance:      0.01,
		MinSlides:      40,
		TargetSlides:   48,
		TargetSize:     10,
		MinTargetRatio: 0.50,
		GoalRatio:      0.60,
		MinAvgShapes:   10,
		GoalAvgShapes:  15,
		CheckGoverning: true,
		GoverningSize:  16,
		GoverningFrom:  2,
		GoverningTo:    6,
	}
}

// WithCanvas returns a copy expecting the given canvas size.
func (c Config) WithCanvas(widthInches, heightInches float64) Config {
	c.WidthInches, c.HeightInches = widthInches, heightInches
	return c
}

// WithMinSlides returns a copy with a different slide count threshold.
func (c Config) WithMinSlides(n int) Config {
	c.MinSlides = n
	return c
}

// WithTargetSize returns a copy measuring the share of another point size.
func (c Config) WithTargetSize(size int, minRatio float64) Config {
	c.TargetSize, c.MinTargetRatio = size, minRatio
	return c
}

// WithMinAvgShapes returns a copy with a different density threshold.
func (c Config) WithMinAvgShapes(avg float64) Config {
	c.MinAvgShapes = avg
	return c
}

// WithGoverningCheck returns a copy with the governing message check on or off.
func (c Config) WithGoverningCheck(enabled bool) Config {
	c.CheckGoverning = enabled
	return c
}

// Validate reports thresholds that make no sense.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.WidthInches, validation.Required, validation.Min(0.1)),
		validation.Field(&c.HeightInches, validation.Required, validation.Min(0.1)),
		validation.Field(&c.Tolerance, validation.Min(0.0)),
		validation.Field(&c.MinSlides, validation.Min(0)),
		validation.Field(&c.TargetSize, validation.Required, validation.Min(1)),
		validation.Field(&c.MinTargetRatio, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.MinAvgShapes, validation.Min(0.0)),
		validation.Field(&c.GoverningSize, validation.When(c.CheckGoverning, validation.Required, validation.Min(1))),
		validation.Field(&c.GoverningFrom, validation.When(c.CheckGoverning, validation.Required, validation.Min(1))),
		validation.Field(&c.GoverningTo, validation.When(c.CheckGoverning, validation.Min(c.GoverningFrom))),
	)
	if err != nil {
		return invalidConfigError(err)
	}
	return nil
}
