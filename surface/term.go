// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: surface/term.go
// Summary: Terminal render surface using half-block cells as pixel pairs.
// Usage: Each terminal cell carries two vertically stacked pixels ('▀' with
// independent foreground and background colors).
// Notes: Resize is throttled; pending sizes are applied on the next frame.

package surface

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/termfolio/termfolio/pattern"
	"github.com/termfolio/termfolio/sched"
	"github.com/termfolio/termfolio/transition"
)

// Approximate physical pixels per terminal cell, used only to normalize the
// apparent pattern density against the 1080p reference.
const (
	cellPxX = 8
	cellPxY = 16
)

const halfBlock = '▀'

// TermSurface renders the procedural background into a tcell screen and
// lets an overlay hook composite panels and effects on top.
type TermSurface struct {
	mu        sync.Mutex
	screen    tcell.Screen
	newScreen func() (tcell.Screen, error)
	gen       *pattern.Generator

	cols, rows int
	bufW, bufH int // backbuffer sample resolution
	uScale     float64

	lastResize time.Time
	pendingW   int
	pendingH   int
	hasPending bool

	overlay  func(Buffer)
	now      func() time.Time
	inited   bool
	disposed bool
}

// NewTermSurface builds a surface around the given generator. The screen is
// created lazily in Init.
func NewTermSurface(gen *pattern.Generator) *TermSurface {
	return &TermSurface{
		gen:       gen,
		newScreen: tcell.NewScreen,
		now:       time.Now,
	}
}

// SetOverlay installs a hook that composites on top of the background before
// the frame is shown.
func (t *TermSurface) SetOverlay(fn func(Buffer)) {
	t.mu.Lock()
	t.overlay = fn
	t.mu.Unlock()
}

// Screen exposes the underlying tcell screen for event polling. Valid after
// Init.
func (t *TermSurface) Screen() tcell.Screen {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen
}

// Init acquires and configures the terminal screen.
func (t *TermSurface) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.inited {
		return nil
	}
	screen, err := t.newScreen()
	if err != nil {
		return fmt.Errorf("surface: create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("surface: init screen: %w", err)
	}
	screen.EnableMouse()
	screen.EnableFocus()
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault)
	t.screen = screen
	t.inited = true

	cols, rows := screen.Size()
	t.applyResizeLocked(cols, rows)
	return nil
}

// Resize requests new dimensions in terminal cells. Calls inside the
// throttle window are staged and applied on the next rendered frame.
func (t *TermSurface) Resize(cols, rows int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if cols == t.cols && rows == t.rows {
		t.hasPending = false
		return
	}
	if t.now().Sub(t.lastResize) < ResizeMinInterval {
		t.pendingW, t.pendingH = cols, rows
		t.hasPending = true
		return
	}
	t.applyResizeLocked(cols, rows)
}

func (t *TermSurface) applyResizeLocked(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	t.cols, t.rows = cols, rows
	t.bufW, t.bufH = BackbufferSize(cols, rows*2, 1)
	t.uScale = UniformScale(cols*cellPxX, rows*cellPxY)
	t.lastResize = t.now()
	t.hasPending = false
}

// Uniforms reports the current sizing-derived uniform values.
func (t *TermSurface) Uniforms() (bufW, bufH int, uScale float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bufW, t.bufH, t.uScale
}

// Render draws one frame: background pattern, then the overlay hook.
func (t *TermSurface) Render(fs sched.FrameState, ts transition.Snapshot) {
	t.mu.Lock()
	if !t.inited || t.disposed {
		t.mu.Unlock()
		return
	}
	if t.hasPending && t.now().Sub(t.lastResize) >= ResizeMinInterval {
		t.applyResizeLocked(t.pendingW, t.pendingH)
	}
	screen := t.screen
	gen := t.gen
	cols, rows := t.cols, t.rows
	bufW, bufH := t.bufW, t.bufH
	overlay := t.overlay
	frame := pattern.Frame{
		Time:         fs.Elapsed,
		Width:        bufW,
		Height:       bufH,
		UScale:       t.uScale,
		MouseX:       fs.MouseX,
		MouseY:       fs.MouseY,
		LoadProgress: fs.LoadProgress,
		Gather:       ts.Progress,
		TargetX:      ts.Target.X,
		TargetY:      ts.Target.Y,
	}
	t.mu.Unlock()

	buf := make(Buffer, rows)
	pixelRows := rows * 2
	for cy := 0; cy < rows; cy++ {
		row := make([]Cell, cols)
		for cx := 0; cx < cols; cx++ {
			// Nearest sample in the reduced backbuffer, stretched back to
			// the full cell grid.
			sx := cx * bufW / cols
			syTop := (cy * 2) * bufH / pixelRows
			syBot := (cy*2 + 1) * bufH / pixelRows
			tr, tg, tb := gen.Shade(sx, syTop, frame)
			br, bg, bb := gen.Shade(sx, syBot, frame)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(channel(tr), channel(tg), channel(tb))).
				Background(tcell.NewRGBColor(channel(br), channel(bg), channel(bb)))
			row[cx] = Cell{Ch: halfBlock, Style: style}
		}
		buf[cy] = row
	}

	if overlay != nil {
		overlay(buf)
	}

	for y, row := range buf {
		for x, cell := range row {
			ch := cell.Ch
			if ch == 0 {
				ch = ' '
			}
			screen.SetContent(x, y, ch, nil, cell.Style)
		}
	}
	screen.Show()
}

// Dispose releases the terminal. Safe to call more than once.
func (t *TermSurface) Dispose() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.disposed || !t.inited {
		t.disposed = true
		return
	}
	t.disposed = true
	t.screen.Fini()
}

func channel(v float64) int32 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return int32(v*255 + 0.5)
}
