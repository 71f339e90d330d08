// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/render.go
// Summary: Bridge from the "render" section to a pattern.Config.

package config

import "github.com/termfolio/termfolio/pattern"

// RenderConfig materializes the "render" section on top of the pattern
// defaults. The result still needs Validate before use; user-supplied values
// are untrusted.
func (c Config) RenderConfig() pattern.Config {
	p := pattern.DefaultConfig()
	p.Scale = c.GetFloat("render", "scale", p.Scale)
	p.GridMulX = c.GetFloat("render", "grid_mul_x", p.GridMulX)
	p.GridMulY = c.GetFloat("render", "grid_mul_y", p.GridMulY)
	p.DigitSize = c.GetFloat("render", "digit_size", p.DigitSize)
	p.TimeScale = c.GetFloat("render", "time_scale", p.TimeScale)
	p.ScanlineIntensity = c.GetFloat("render", "scanline_intensity", p.ScanlineIntensity)
	p.GlitchAmount = c.GetFloat("render", "glitch_amount", p.GlitchAmount)
	p.FlickerAmount = c.GetFloat("render", "flicker_amount", p.FlickerAmount)
	p.NoiseAmp = c.GetFloat("render", "noise_amp", p.NoiseAmp)
	p.ChromaticAberration = c.GetFloat("render", "chromatic_aberration", p.ChromaticAberration)
	p.Dither = c.GetFloat("render", "dither", p.Dither)
	p.Curvature = c.GetFloat("render", "curvature", p.Curvature)
	p.Tint = c.GetString("render", "tint", p.Tint)
	p.MouseReact = c.GetBool("render", "mouse_react", p.MouseReact)
	p.MouseStrength = c.GetFloat("render", "mouse_strength", p.MouseStrength)
	p.PageLoadAnimation = c.GetBool("render", "page_load_animation", p.PageLoadAnimation)
	p.Brightness = c.GetFloat("render", "brightness", p.Brightness)
	return p
}
