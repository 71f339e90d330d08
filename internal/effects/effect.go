// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/effect.go
// Summary: Effect contract and configuration helpers for overlay visuals.
// Usage: Effects decorate the composed cell buffer after the background and
// panels have been drawn.

package effects

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/termfolio/termfolio/surface"
)

// Effect is one overlay visual. Update advances animation state; Apply
// mutates the frame's cell buffer in place. Active reports whether the effect
// still animates; a settled effect keeps painting its final state from Apply.
type Effect interface {
	ID() string
	Active() bool
	Update(now time.Time)
	Apply(buffer surface.Buffer)
}

// Config is the loosely-typed per-effect configuration block.
type Config map[string]interface{}

func (c Config) float(key string, def float64) float64 {
	if c == nil {
		return def
	}
	switch v := c[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	}
	return def
}

func (c Config) duration(key string, defMillis int) time.Duration {
	ms := c.float(key, float64(defMillis))
	if ms < 0 {
		ms = 0
	}
	return time.Duration(ms) * time.Millisecond
}

func (c Config) str(key, def string) string {
	if c == nil {
		return def
	}
	if v, ok := c[key].(string); ok && v != "" {
		return v
	}
	return def
}

func (c Config) color(key string, def tcell.Color) tcell.Color {
	name := c.str(key, "")
	if name == "" {
		return def
	}
	col := tcell.GetColor(name)
	if col == tcell.ColorDefault {
		return def
	}
	return col
}
