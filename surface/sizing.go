// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: surface/sizing.go
// Summary: Backbuffer sizing and density normalization math.
// Notes: Pure functions; every surface implementation shares them so sizing
// stays identical across hosts.

package surface

import (
	"math"
	"time"
)

const (
	// RenderFraction renders at a reduced resolution and stretches the
	// result to the full display, trading sharpness for fill-rate.
	RenderFraction = 0.88
	// MaxPixelRatio caps high-DPI backbuffers.
	MaxPixelRatio = 1.5
	// ResizeMinInterval throttles resize churn; window managers deliver a
	// resize per pixel of drag otherwise.
	ResizeMinInterval = 120 * time.Millisecond

	refWidth  = 1920.0
	refHeight = 1080.0
)

// BackbufferSize maps a display size and device pixel ratio to the render
// resolution. The ratio is clamped before it is applied.
func BackbufferSize(width, height int, pixelRatio float64) (int, int) {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	if pixelRatio > MaxPixelRatio {
		pixelRatio = MaxPixelRatio
	}
	w := int(float64(width)*pixelRatio*RenderFraction + 0.5)
	h := int(float64(height)*pixelRatio*RenderFraction + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// UniformScale normalizes the configured scale against a 1920x1080 reference
// so the apparent grid density matches across display sizes. Depends only on
// the target size, never on previous calls.
func UniformScale(width, height int) float64 {
	diag := math.Hypot(float64(width), float64(height))
	ref := math.Hypot(refWidth, refHeight)
	return diag / ref
}
