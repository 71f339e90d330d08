// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: pattern/pattern.go
// Summary: Pure per-sample generator for the faulty-terminal background.
// Usage: Surfaces call Shade once per backbuffer pixel with the frame uniforms.
// Notes: No state mutates during shading; a Generator is safe for concurrent reads.

package pattern

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Frame carries the per-frame uniform values the shader consumes. Positions
// are normalized with the origin at the bottom-left.
type Frame struct {
	Time          float64 // elapsed shader time, seconds
	Width, Height int     // backbuffer resolution, pixels
	UScale        float64 // resolution-normalized density factor
	MouseX        float64 // smoothed mouse, [0,1]
	MouseY        float64
	LoadProgress  float64 // page-load fade, [0,1]
	Gather        float64 // zoom transition progress, [0,1]
	TargetX       float64 // zoom target, [0,1]
	TargetY       float64
}

const (
	cellsPerMul = 15  // grid cells per axis per unit of grid multiplier
	digitGrid   = 5   // dot matrix resolution inside one cell
	mouseFalloff = 8.0
	zoomCalmFactor = 60.0 // background time runs this much slower while zoomed out
)

// Generator evaluates the procedural pattern. Grid shape is fixed at
// construction; see Config.RebuildRequired.
type Generator struct {
	cfg   Config
	noise opensimplex.Noise
	gdx   float64 // cells per world unit, horizontal
	gdy   float64
	tintR float64
	tintG float64
	tintB float64
}

// New validates cfg and builds a generator with a fixed noise seed. The same
// seed always yields the same field.
func New(cfg Config, seed int64) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r, g, b, err := cfg.TintRGB()
	if err != nil {
		return nil, err
	}
	return &Generator{
		cfg:   cfg,
		noise: opensimplex.New(seed),
		gdx:   cfg.GridMulX * cellsPerMul,
		gdy:   cfg.GridMulY * cellsPerMul,
		tintR: r,
		tintG: g,
		tintB: b,
	}, nil
}

// Config returns the configuration the generator was built with.
func (g *Generator) Config() Config { return g.cfg }

// SetConfig swaps update-in-place fields. Grid shape fields are ignored; the
// caller is expected to rebuild when RebuildRequired reports true.
func (g *Generator) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	r, gg, b, err := cfg.TintRGB()
	if err != nil {
		return err
	}
	cfg.Scale = g.cfg.Scale
	cfg.GridMulX = g.cfg.GridMulX
	cfg.GridMulY = g.cfg.GridMulY
	g.cfg = cfg
	g.tintR, g.tintG, g.tintB = r, gg, b
	return nil
}

// Shade produces the color for one backbuffer pixel. Coordinates are pixel
// indices; the y axis is flipped internally so the world origin sits at the
// bottom-left.
func (g *Generator) Shade(px, py int, f Frame) (r, gr, b float64) {
	w := float64(f.Width)
	h := float64(f.Height)
	u := (float64(px) + 0.5) / w
	v := 1 - (float64(py)+0.5)/h

	if g.cfg.Curvature != 0 {
		u, v = g.lens(u, v)
	}

	grain := g.grainTime(f)

	// Horizontal tracking error: a windowed sine displacement inside a band
	// that drifts vertically over grain time.
	u += g.glitchShift(v, grain)

	worldScale := g.cfg.Scale * f.UScale
	wx := u * worldScale
	wy := v * worldScale
	mx := f.MouseX * worldScale
	my := f.MouseY * worldScale
	if f.Gather > gatherThreshold {
		tx := f.TargetX * worldScale
		ty := f.TargetY * worldScale
		wx, wy = GatherRemap(wx, wy, tx, ty, f.Gather, g.gdx, g.gdy)
		mx, my = GatherRemap(mx, my, tx, ty, f.Gather, g.gdx, g.gdy)
	}

	// 3x3 soften kernel, one pixel apart in world units. Softening happens
	// before aberration, so the offset channels sample the softened field.
	stepX := worldScale / w
	stepY := worldScale / h
	soften := func(x, y float64) float64 {
		var acc float64
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				acc += g.digitField(x+float64(dx)*stepX, y+float64(dy)*stepY, mx, my, grain, f)
			}
		}
		return acc / 9
	}
	lum := soften(wx, wy)

	r, gr, b = lum, lum, lum
	if g.cfg.ChromaticAberration != 0 {
		off := g.cfg.ChromaticAberration * stepX
		r = soften(wx+off, wy)
		b = soften(wx-off, wy)
	}

	if g.cfg.ScanlineIntensity > 0 {
		band := g.scanline(v, h, grain)
		r *= band
		gr *= band
		b *= band
	}

	r *= g.tintR * g.cfg.Brightness
	gr *= g.tintG * g.cfg.Brightness
	b *= g.tintB * g.cfg.Brightness

	if g.cfg.Dither > 0 {
		d := (hash2(float64(px), float64(py)) - 0.5) * g.cfg.Dither / 32
		r += d
		gr += d
		b += d
	}
	return clamp(r, 0, 1), clamp(gr, 0, 1), clamp(b, 0, 1)
}

// lens applies barrel distortion around the screen center.
func (g *Generator) lens(u, v float64) (float64, float64) {
	cx := u - 0.5
	cy := v - 0.5
	k := 1 + g.cfg.Curvature*(cx*cx+cy*cy)
	return cx*k + 0.5, cy*k + 0.5
}

// grainTime is the time base for background churn and scanline motion. It
// slows sharply once the view is zoomed out so the held pattern calms down.
func (g *Generator) grainTime(f Frame) float64 {
	if f.Gather > 0.5 {
		return f.Time / zoomCalmFactor
	}
	return f.Time
}

func (g *Generator) glitchShift(v, grain float64) float64 {
	band := fract(grain * 0.13)
	dy := v - band
	window := math.Exp(-dy * dy / 0.006)
	base := math.Sin(grain*11+v*40) * 0.004 * window
	extra := base * 1.5 * (g.cfg.GlitchAmount - 1)
	return base + extra
}

func (g *Generator) scanline(v, h, grain float64) float64 {
	on := math.Mod(math.Floor(v*h*0.25+grain*6), 2)
	if on < 1 {
		return 1
	}
	return 1 - g.cfg.ScanlineIntensity
}

// digitField returns the lit brightness of the digit dot under a world
// position, zero when the dot is dark.
func (g *Generator) digitField(x, y, mx, my, grain float64, f Frame) float64 {
	icx := math.Floor(x * g.gdx)
	icy := math.Floor(y * g.gdy)
	lx := x*g.gdx - icx
	ly := y*g.gdy - icy

	intensity := g.fractal(icx*0.35, icy*0.35, grain)

	if g.cfg.FlickerAmount > 0 {
		flick := hash2(icx, icy+math.Floor(grain*8))
		intensity *= 1 + (flick-0.5)*0.3*g.cfg.FlickerAmount
	}
	if g.cfg.NoiseAmp > 0 {
		intensity += (hash2(icx*7.13+grain, icy*3.71) - 0.5) * g.cfg.NoiseAmp
	}
	if g.cfg.MouseReact {
		d := math.Hypot(x-mx, y-my)
		glow := math.Exp(-mouseFalloff*d) * g.cfg.MouseStrength
		ripple := math.Sin(d*24-f.Time*5) * 0.5 * glow
		intensity += glow + ripple
	}
	if g.cfg.PageLoadAnimation {
		delay := hash2(icx*13.7, icy*5.3) * 0.8
		intensity *= clamp((f.LoadProgress-delay)/0.2, 0, 1)
	}

	// 5x5 dot matrix: each subcell holds one dot, lit when the cell intensity
	// clears a threshold that grows radially from the cell center. The result
	// is a rounded blob of dots per active cell.
	sx := math.Floor(lx * digitGrid)
	sy := math.Floor(ly * digitGrid)
	dcx := (sx+0.5)/digitGrid - 0.5
	dcy := (sy+0.5)/digitGrid - 0.5
	threshold := math.Hypot(dcx, dcy) * 2.4 / g.cfg.DigitSize
	if intensity <= threshold {
		return 0
	}

	// Dot shape and a slight shading gradient across the subcell.
	flx := lx*digitGrid - sx
	fly := ly*digitGrid - sy
	dr := math.Hypot(flx-0.5, fly-0.5)
	if dr > 0.45 {
		return 0
	}
	shade := 0.75 + 0.25*clamp(1-dr*1.8, 0, 1)
	return clamp(intensity, 0, 1.3) * shade
}
