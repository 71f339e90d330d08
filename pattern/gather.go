// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: pattern/gather.go
// Summary: Zoom-transition remap that converges grid cells toward a target.
// Notes: Cell content stays put inside its cell; only cell positions move.

package pattern

import "math"

// gatherCompression keeps the converge subtle. Zoom-in and zoom-back share
// this constant so the motion is exactly reversible.
const gatherCompression = 0.58

// gatherThreshold is the progress below which the remap is skipped entirely.
const gatherThreshold = 0.001

// GatherRemap moves the grid cell containing p toward the target t as
// progress rises, without warping the content inside the cell. Progress 0 is
// the identity. gd is the grid density (cells per world unit) on each axis.
func GatherRemap(px, py, tx, ty, progress, gdx, gdy float64) (float64, float64) {
	if progress < gatherThreshold {
		return px, py
	}
	sp := clamp(progress, 0, 0.9999) * gatherCompression
	return gatherAxis(px, tx, sp, gdx), gatherAxis(py, ty, sp, gdy)
}

func gatherAxis(p, t, sp, gd float64) float64 {
	s := (p - t*sp) / (1 - sp)
	cell := math.Floor(s*gd) / gd
	shifted := cell + (t-cell)*sp
	center := cell + 0.5/gd
	return center + (p - shifted)
}
