// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/typewriter.go
// Summary: Typed-out text with a blinking block cursor.

package effects

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/termfolio/termfolio/surface"
	"github.com/termfolio/termfolio/transition"
)

const cursorBlinkPeriod = 500 * time.Millisecond

type typewriterEffect struct {
	mu      sync.Mutex
	text    []rune
	x, y    int
	style   tcell.Style
	perRune time.Duration
	start   time.Time
	typed   int
	tl      *Timeline
	blinkOn bool
}

// NewTypewriter builds a typewriter reveal anchored at (x, y); one rune
// appears every perRune.
func NewTypewriter(text string, x, y int, style tcell.Style, perRune time.Duration) Effect {
	return &typewriterEffect{
		text:    []rune(text),
		x:       x,
		y:       y,
		style:   style,
		perRune: perRune,
		tl:      NewTimeline(0),
	}
}

func (e *typewriterEffect) ID() string { return "typewriter" }

// Start begins typing at the given instant. A linear timeline over the total
// typing span yields exactly one rune per perRune interval.
func (e *typewriterEffect) Start(now time.Time) {
	e.mu.Lock()
	e.start = now
	e.typed = 0
	total := time.Duration(len(e.text)) * e.perRune
	e.tl.AnimateToEased("typed", float64(len(e.text)), total, transition.EaseLinear, now)
	e.mu.Unlock()
}

// Active reports whether typing still runs; the finished line keeps painting
// through Apply.
func (e *typewriterEffect) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.start.IsZero() && e.typed < len(e.text)
}

func (e *typewriterEffect) Update(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.start.IsZero() {
		return
	}
	e.typed = int(e.tl.Value("typed", now))
	if e.typed > len(e.text) {
		e.typed = len(e.text)
	}
	e.blinkOn = (now.UnixMilli()/cursorBlinkPeriod.Milliseconds())%2 == 0
}

func (e *typewriterEffect) Apply(buffer surface.Buffer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.start.IsZero() || e.y < 0 || e.y >= len(buffer) {
		return
	}
	row := buffer[e.y]
	for i := 0; i < e.typed && e.x+i < len(row); i++ {
		if e.x+i < 0 {
			continue
		}
		row[e.x+i] = surface.Cell{Ch: e.text[i], Style: e.style}
	}
	// Cursor sits after the last typed rune while typing is underway.
	if e.typed < len(e.text) && e.blinkOn {
		cx := e.x + e.typed
		if cx >= 0 && cx < len(row) {
			row[cx] = surface.Cell{Ch: '█', Style: e.style}
		}
	}
}

func init() {
	Register("typewriter", func(cfg Config) (Effect, error) {
		return NewTypewriter(
			cfg.str("text", ""),
			int(cfg.float("x", 0)),
			int(cfg.float("y", 0)),
			tcell.StyleDefault.Foreground(cfg.color("color", tcell.ColorGreen)),
			cfg.duration("per_rune_ms", 40),
		), nil
	})
}
