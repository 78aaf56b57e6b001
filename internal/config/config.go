// Package config handles lowpoly configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all application settings.
type Config struct {
	Image      ImageConfig      `yaml:"image"`
	Generation GenerationConfig `yaml:"generation"`
	Animation  AnimationConfig  `yaml:"animation"`
	Render     RenderConfig     `yaml:"render"`
	Window     WindowConfig     `yaml:"window"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// IntRange is an integer setting with its allowed bounds.
type IntRange struct {
	Min     int `yaml:"min"`
	Max     int `yaml:"max"`
	Default int `yaml:"default"`
}

func (r IntRange) valid() bool {
	return r.Min <= r.Default && r.Default <= r.Max
}

// Clamp limits v to the range.
func (r IntRange) Clamp(v int) int {
	return min(max(v, r.Min), r.Max)
}

// FloatRange is a float setting with its allowed bounds.
type FloatRange struct {
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Default float64 `yaml:"default"`
}

func (r FloatRange) valid() bool {
	return r.Min <= r.Default && r.Default <= r.Max
}

// Clamp limits v to the range.
func (r FloatRange) Clamp(v float64) float64 {
	return min(max(v, r.Min), r.Max)
}

// Span is an interval random values are drawn from.
type Span struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// ImageConfig holds canvas settings.
type ImageConfig struct {
	Width  IntRange `yaml:"width"`
	Height IntRange `yaml:"height"`
	FPS    IntRange `yaml:"fps"` // animation ticks per second
}

// GenerationConfig holds point generation settings.
type GenerationConfig struct {
	Points            IntRange       `yaml:"points"` // side anchors plus interior points
	MinSpeed          FloatRange     `yaml:"min_speed"`
	MaxSpeed          FloatRange     `yaml:"max_speed"`
	AvoidHoles        bool           `yaml:"avoid_holes"`
	MaxSampleAttempts int            `yaml:"max_sample_attempts"`
	Seed              uint64         `yaml:"seed"` // 0 picks a time based seed
	Holes             [][][2]float64 `yaml:"holes"`
	OrbitRadius       Span           `yaml:"orbit_radius"`
	OrbitSpeed        Span           `yaml:"orbit_speed"` // radians per tick
}

// AnimationConfig holds playback settings.
type AnimationConfig struct {
	Speed FloatRange `yaml:"speed"` // velocity multiplier
}

// HSV is a colour with hue in degrees and saturation and value in percent.
type HSV struct {
	H float64 `yaml:"h"`
	S float64 `yaml:"s"`
	V float64 `yaml:"v"`
}

// RenderConfig holds drawing settings.
type RenderConfig struct {
	Points        bool     `yaml:"points"`
	PointSize     IntRange `yaml:"point_size"`
	Lines         bool     `yaml:"lines"`
	LineWidth     IntRange `yaml:"line_width"`
	Fill          bool     `yaml:"fill"`
	FillVariation IntRange `yaml:"fill_variation"` // brightness spread in percent
	Color         HSV      `yaml:"color"`
	Background    HSV      `yaml:"background"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Image: ImageConfig{
			Width:  IntRange{Min: 100, Max: 3840, Default: 1280},
			Height: IntRange{Min: 100, Max: 2160, Default: 720},
			FPS:    IntRange{Min: 1, Max: 120, Default: 30},
		},
		Generation: GenerationConfig{
			Points:            IntRange{Min: 8, Max: 1000, Default: 60},
			MinSpeed:          FloatRange{Min: 0, Max: 20, Default: 0.5},
			MaxSpeed:          FloatRange{Min: 0, Max: 20, Default: 2},
			AvoidHoles:        true,
			MaxSampleAttempts: 1000,
			OrbitRadius:       Span{Min: 5, Max: 20},
			OrbitSpeed:        Span{Min: 0.005, Max: 0.03},
		},
		Animation: AnimationConfig{
			Speed: FloatRange{Min: 0, Max: 10, Default: 1},
		},
		Render: RenderConfig{
			Points:        true,
			PointSize:     IntRange{Min: 1, Max: 20, Default: 4},
			Lines:         true,
			LineWidth:     IntRange{Min: 1, Max: 10, Default: 1},
			Fill:          true,
			FillVariation: IntRange{Min: 0, Max: 100, Default: 20},
			Color:         HSV{H: 200, S: 60, V: 70},
			Background:    HSV{H: 220, S: 30, V: 10},
		},
		Window: WindowConfig{
			Title:      "lowpoly",
			Fullscreen: false,
			VSync:      true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks every range and returns all problems found.
func (c *Config) Validate() error {
	var errs []error
	ints := []struct {
		name string
		r    IntRange
	}{
		{"image.width", c.Image.Width},
		{"image.height", c.Image.Height},
		{"image.fps", c.Image.FPS},
		{"generation.points", c.Generation.Points},
		{"render.point_size", c.Render.PointSize},
		{"render.line_width", c.Render.LineWidth},
		{"render.fill_variation", c.Render.FillVariation},
	}
	for _, f := range ints {
		if !f.r.valid() {
			errs = append(errs, fmt.Errorf("%s: default %d not in [%d, %d]", f.name, f.r.Default, f.r.Min, f.r.Max))
		}
	}
	floats := []struct {
		name string
		r    FloatRange
	}{
		{"generation.min_speed", c.Generation.MinSpeed},
		{"generation.max_speed", c.Generation.MaxSpeed},
		{"animation.speed", c.Animation.Speed},
	}
	for _, f := range floats {
		if !f.r.valid() {
			errs = append(errs, fmt.Errorf("%s: default %g not in [%g, %g]", f.name, f.r.Default, f.r.Min, f.r.Max))
		}
	}

	if c.Generation.MinSpeed.Default > c.Generation.MaxSpeed.Default {
		errs = append(errs, fmt.Errorf("generation: min_speed %g exceeds max_speed %g",
			c.Generation.MinSpeed.Default, c.Generation.MaxSpeed.Default))
	}
	if c.Image.FPS.Min < 1 {
		errs = append(errs, fmt.Errorf("image.fps: minimum must be positive, got %d", c.Image.FPS.Min))
	}
	if c.Generation.MaxSampleAttempts < 1 {
		errs = append(errs, fmt.Errorf("generation.max_sample_attempts: must be positive, got %d",
			c.Generation.MaxSampleAttempts))
	}
	if s := c.Generation.OrbitRadius; s.Min < 0 || s.Min > s.Max {
		errs = append(errs, fmt.Errorf("generation.orbit_radius: invalid span [%g, %g]", s.Min, s.Max))
	}
	if s := c.Generation.OrbitSpeed; s.Min < 0 || s.Min > s.Max {
		errs = append(errs, fmt.Errorf("generation.orbit_speed: invalid span [%g, %g]", s.Min, s.Max))
	}
	for i, h := range c.Generation.Holes {
		if len(h) < 3 {
			errs = append(errs, fmt.Errorf("generation.holes[%d]: need at least 3 vertices, got %d", i, len(h)))
		}
	}
	return errors.Join(errs...)
}
