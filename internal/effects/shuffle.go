// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/shuffle.go
// Summary: Character-shuffle reveal for headings.
// Usage: Letters churn through random block characters and lock into place
// left to right over the configured duration.

package effects

import (
	"math/rand"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/termfolio/termfolio/surface"
)

// Braille patterns U+2801..U+28FF (skip U+2800 blank).
const brailleBase = 0x2801
const brailleCount = 0x28FF - brailleBase + 1

type shuffleEffect struct {
	mu       sync.Mutex
	text     []rune
	x, y     int
	style    tcell.Style
	duration time.Duration
	start    time.Time // zero until Start
	revealed int
	tl       *Timeline
	rng      *rand.Rand
}

// NewShuffle builds a shuffle reveal for text anchored at (x, y).
func NewShuffle(text string, x, y int, style tcell.Style, duration time.Duration) Effect {
	return &shuffleEffect{
		text:     []rune(text),
		x:        x,
		y:        y,
		style:    style,
		duration: duration,
		tl:       NewTimeline(0),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (e *shuffleEffect) ID() string { return "shuffle" }

// Start begins (or restarts) the reveal at the given instant.
func (e *shuffleEffect) Start(now time.Time) {
	e.mu.Lock()
	e.start = now
	e.revealed = 0
	e.tl.AnimateTo("reveal", float64(len(e.text)), e.duration, now)
	e.mu.Unlock()
}

// Active reports whether the reveal still animates. The settled text keeps
// painting through Apply either way.
func (e *shuffleEffect) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.start.IsZero() && e.revealed < len(e.text)
}

func (e *shuffleEffect) Update(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.start.IsZero() {
		return
	}
	e.revealed = int(e.tl.Value("reveal", now))
	if e.revealed > len(e.text) {
		e.revealed = len(e.text)
	}
}

func (e *shuffleEffect) Apply(buffer surface.Buffer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.start.IsZero() || e.y < 0 || e.y >= len(buffer) {
		return
	}
	row := buffer[e.y]
	for i, ch := range e.text {
		x := e.x + i
		if x < 0 || x >= len(row) {
			continue
		}
		if i >= e.revealed && ch != ' ' {
			ch = rune(brailleBase + e.rng.Intn(brailleCount))
		}
		row[x] = surface.Cell{Ch: ch, Style: e.style}
	}
}

func init() {
	Register("shuffle", func(cfg Config) (Effect, error) {
		return NewShuffle(
			cfg.str("text", ""),
			int(cfg.float("x", 0)),
			int(cfg.float("y", 0)),
			tcell.StyleDefault.Foreground(cfg.color("color", tcell.ColorWhite)),
			cfg.duration("duration_ms", 900),
		), nil
	})
}
