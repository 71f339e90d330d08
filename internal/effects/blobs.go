// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/blobs.go
// Summary: Decorative drifting blobs blended into the background.
// Notes: Pure per-element kinematics; blobs bounce off the buffer edges and
// tint nearby cell backgrounds.

package effects

import (
	"math/rand"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/termfolio/termfolio/surface"
	"github.com/termfolio/termfolio/transition"
)

// blobFadeIn is how long freshly added blobs take to reach full strength.
const blobFadeIn = 1500 * time.Millisecond

type blob struct {
	x, y   float64 // cell coordinates
	vx, vy float64 // cells per second
	radius float64
}

type blobsEffect struct {
	mu       sync.Mutex
	blobs    []blob
	tint     colorful.Color
	alpha    float64 // configured full strength
	curAlpha float64 // eased toward alpha after the first Update
	tl       *Timeline
	last     time.Time
	w, h     int // learned from the most recent Apply
}

// NewBlobs builds count drifting blobs tinted with the given color.
func NewBlobs(count int, tint tcell.Color, alpha float64) Effect {
	r, g, b := tint.RGB()
	e := &blobsEffect{
		tint:  colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255},
		alpha: alpha,
		tl:    NewTimeline(0),
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < count; i++ {
		e.blobs = append(e.blobs, blob{
			x:      rng.Float64() * 80,
			y:      rng.Float64() * 24,
			vx:     (rng.Float64() - 0.5) * 6,
			vy:     (rng.Float64() - 0.5) * 3,
			radius: 3 + rng.Float64()*4,
		})
	}
	return e
}

func (e *blobsEffect) ID() string { return "blobs" }

// Blobs drift forever; they are always active.
func (e *blobsEffect) Active() bool { return true }

func (e *blobsEffect) Update(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.last.IsZero() {
		e.last = now
		e.tl.AnimateToEased("alpha", e.alpha, blobFadeIn, transition.EaseInOutCubic, now)
		return
	}
	dt := now.Sub(e.last).Seconds()
	e.last = now
	e.curAlpha = e.tl.Value("alpha", now)
	if dt <= 0 || dt > 1 {
		return
	}
	w := float64(e.w)
	h := float64(e.h)
	if w <= 0 || h <= 0 {
		return
	}
	for i := range e.blobs {
		b := &e.blobs[i]
		b.x += b.vx * dt
		b.y += b.vy * dt
		if b.x < 0 {
			b.x, b.vx = 0, -b.vx
		}
		if b.x > w {
			b.x, b.vx = w, -b.vx
		}
		if b.y < 0 {
			b.y, b.vy = 0, -b.vy
		}
		if b.y > h {
			b.y, b.vy = h, -b.vy
		}
	}
}

func (e *blobsEffect) Apply(buffer surface.Buffer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(buffer) == 0 {
		return
	}
	e.h = len(buffer)
	e.w = len(buffer[0])

	for _, b := range e.blobs {
		// Terminal cells are roughly twice as tall as wide; squash y so the
		// blob reads as a circle.
		minY := int(b.y - b.radius/2)
		maxY := int(b.y + b.radius/2)
		minX := int(b.x - b.radius)
		maxX := int(b.x + b.radius)
		for y := minY; y <= maxY; y++ {
			if y < 0 || y >= e.h {
				continue
			}
			for x := minX; x <= maxX; x++ {
				if x < 0 || x >= e.w {
					continue
				}
				dx := (float64(x) - b.x) / b.radius
				dy := (float64(y) - b.y) / (b.radius / 2)
				d2 := dx*dx + dy*dy
				if d2 > 1 {
					continue
				}
				cell := &buffer[y][x]
				fg, bg, attrs := cell.Style.Decompose()
				blended := e.blend(bg, e.curAlpha*(1-d2))
				cell.Style = tcell.StyleDefault.Foreground(fg).Background(blended).Attributes(attrs)
			}
		}
	}
}

func (e *blobsEffect) blend(bg tcell.Color, t float64) tcell.Color {
	if !bg.Valid() {
		bg = tcell.ColorBlack
	}
	r, g, b := bg.RGB()
	base := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	mixed := base.BlendRgb(e.tint, t)
	return tcell.NewRGBColor(int32(mixed.R*255), int32(mixed.G*255), int32(mixed.B*255))
}

func init() {
	Register("blobs", func(cfg Config) (Effect, error) {
		return NewBlobs(
			int(cfg.float("count", 5)),
			cfg.color("color", tcell.NewRGBColor(80, 40, 160)),
			cfg.float("alpha", 0.35),
		), nil
	})
}
