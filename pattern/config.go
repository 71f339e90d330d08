// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: pattern/config.go
// Summary: Render configuration for the faulty-terminal background shader.
// Usage: Built once per surface; validated before any frame is produced.

package pattern

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Config holds every knob the background shader understands. A Config is
// immutable once handed to a Generator; fields that change the grid shape
// (Scale, GridMulX, GridMulY) require building a fresh Generator, everything
// else is safe to swap between frames. See RebuildRequired.
type Config struct {
	Scale               float64 // world-space zoom of the whole pattern
	GridMulX            float64 // horizontal grid multiplier (cells = mul * 15)
	GridMulY            float64 // vertical grid multiplier
	DigitSize           float64 // dot radius scale inside the 5x5 digit matrix
	TimeScale           float64 // wall-clock multiplier for shader time
	Pause               bool    // freeze shader time at its last value
	ScanlineIntensity   float64
	GlitchAmount        float64 // scales displacement beyond the base glitch
	FlickerAmount       float64
	NoiseAmp            float64
	ChromaticAberration float64 // horizontal channel offset in pixels, 0 = off
	Dither              float64
	Curvature           float64 // barrel distortion strength, 0 = identity
	Tint                string  // hex color, multiplied per channel
	MouseReact          bool
	MouseStrength       float64
	PageLoadAnimation   bool
	Brightness          float64
}

// DefaultConfig returns the stock faulty-terminal look.
func DefaultConfig() Config {
	return Config{
		Scale:               1,
		GridMulX:            2,
		GridMulY:            1,
		DigitSize:           1.5,
		TimeScale:           0.3,
		Pause:               false,
		ScanlineIntensity:   0.3,
		GlitchAmount:        1,
		FlickerAmount:       1,
		NoiseAmp:            0,
		ChromaticAberration: 0,
		Dither:              0,
		Curvature:           0.2,
		Tint:                "#ffffff",
		MouseReact:          false,
		MouseStrength:       0.2,
		PageLoadAnimation:   true,
		Brightness:          1,
	}
}

// Validate rejects configurations that could poison frame production. Bad
// values are caught here, at construction time, never mid-frame.
func (c Config) Validate() error {
	fields := map[string]float64{
		"scale":               c.Scale,
		"gridMulX":            c.GridMulX,
		"gridMulY":            c.GridMulY,
		"digitSize":           c.DigitSize,
		"timeScale":           c.TimeScale,
		"scanlineIntensity":   c.ScanlineIntensity,
		"glitchAmount":        c.GlitchAmount,
		"flickerAmount":       c.FlickerAmount,
		"noiseAmp":            c.NoiseAmp,
		"chromaticAberration": c.ChromaticAberration,
		"dither":              c.Dither,
		"curvature":           c.Curvature,
		"mouseStrength":       c.MouseStrength,
		"brightness":          c.Brightness,
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("pattern config: %s is not finite", name)
		}
	}
	if c.Scale <= 0 {
		return fmt.Errorf("pattern config: scale must be positive, got %g", c.Scale)
	}
	if c.GridMulX <= 0 || c.GridMulY <= 0 {
		return fmt.Errorf("pattern config: grid multipliers must be positive, got %gx%g", c.GridMulX, c.GridMulY)
	}
	if c.DigitSize <= 0 {
		return fmt.Errorf("pattern config: digitSize must be positive, got %g", c.DigitSize)
	}
	if _, _, _, err := c.TintRGB(); err != nil {
		return err
	}
	return nil
}

// TintRGB parses the tint into per-channel multipliers in [0,1].
func (c Config) TintRGB() (r, g, b float64, err error) {
	col, err := colorful.Hex(c.Tint)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("pattern config: tint %q: %w", c.Tint, err)
	}
	return col.R, col.G, col.B, nil
}

// RebuildRequired reports whether switching from c to next needs a new
// Generator. Grid shape is read once at initialization; the remaining fields
// update in place.
func (c Config) RebuildRequired(next Config) bool {
	return c.Scale != next.Scale ||
		c.GridMulX != next.GridMulX ||
		c.GridMulY != next.GridMulY
}
