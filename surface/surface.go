// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: surface/surface.go
// Summary: Render surface contract and the shared cell buffer type.

package surface

import (
	"github.com/gdamore/tcell/v2"

	"github.com/termfolio/termfolio/sched"
	"github.com/termfolio/termfolio/transition"
)

// Surface owns a display context and turns frame state into pixels.
type Surface interface {
	// Init acquires the display context. A failure here is fatal to the
	// visual surface; the host decides whether to retry or degrade.
	Init() error
	// Resize recomputes backbuffer sizing for a new display size. Safe to
	// call repeatedly; implementations throttle internally.
	Resize(width, height int)
	// Render produces one frame from the scheduler and transition state.
	Render(fs sched.FrameState, ts transition.Snapshot)
	// Dispose releases the display context. Idempotent.
	Dispose()
}

// Cell is one terminal cell of composed output.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// Buffer is a row-major cell grid.
type Buffer [][]Cell

// NewBuffer allocates a cleared buffer filled with spaces.
func NewBuffer(width, height int, style tcell.Style) Buffer {
	buf := make(Buffer, height)
	for y := range buf {
		row := make([]Cell, width)
		for x := range row {
			row[x] = Cell{Ch: ' ', Style: style}
		}
		buf[y] = row
	}
	return buf
}
