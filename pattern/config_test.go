// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package pattern

import (
	"math"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}
}

func TestValidateRejectsNonFinite(t *testing.T) {
	cases := map[string]func(*Config){
		"nan scale":        func(c *Config) { c.Scale = math.NaN() },
		"inf brightness":   func(c *Config) { c.Brightness = math.Inf(1) },
		"nan curvature":    func(c *Config) { c.Curvature = math.NaN() },
		"neg inf glitch":   func(c *Config) { c.GlitchAmount = math.Inf(-1) },
		"nan mouse streng": func(c *Config) { c.MouseStrength = math.NaN() },
	}
	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestValidateRejectsBadShape(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GridMulX = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero grid multiplier accepted")
	}
	cfg = DefaultConfig()
	cfg.Scale = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative scale accepted")
	}
	cfg = DefaultConfig()
	cfg.DigitSize = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero digit size accepted")
	}
}

func TestValidateRejectsBadTint(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tint = "not-a-color"
	if err := cfg.Validate(); err == nil {
		t.Error("malformed tint accepted")
	}
}

func TestTintRGBParsesHex(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tint = "#ff8000"
	r, g, b, err := cfg.TintRGB()
	if err != nil {
		t.Fatalf("TintRGB: %v", err)
	}
	if math.Abs(r-1) > 0.01 || math.Abs(g-0.5) > 0.01 || math.Abs(b) > 0.01 {
		t.Fatalf("unexpected tint components: %g %g %g", r, g, b)
	}
}

func TestRebuildRequiredOnlyForGridShape(t *testing.T) {
	base := DefaultConfig()

	next := base
	next.GridMulX = 3
	if !base.RebuildRequired(next) {
		t.Error("grid multiplier change must force a rebuild")
	}

	next = base
	next.Scale = 2
	if !base.RebuildRequired(next) {
		t.Error("scale change must force a rebuild")
	}

	next = base
	next.Brightness = 0.5
	next.ScanlineIntensity = 0.9
	next.Tint = "#00ff00"
	if base.RebuildRequired(next) {
		t.Error("update-in-place fields must not force a rebuild")
	}
}
