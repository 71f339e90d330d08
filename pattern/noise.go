// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: pattern/noise.go
// Summary: Fractal noise and hash primitives for the digit grid.

package pattern

import "math"

const (
	noiseOctaves   = 3
	noiseLacunarity = 2.2
	noiseGain       = 0.4545
	noiseRotRate    = 0.1 // radians per shader-time second
)

// fractal evaluates three octaves of simplex noise over slowly rotating
// coordinate frames. Successive octaves counter-rotate, so the field churns
// rather than sliding in one direction. Octave weights are normalized, so
// the output stays within [-1,1]; cells with a negative value read as dark.
func (g *Generator) fractal(x, y, t float64) float64 {
	freq := 1.0
	amp := 1.0
	sign := 1.0
	var sum, norm float64
	for i := 0; i < noiseOctaves; i++ {
		theta := t * noiseRotRate * sign
		c, s := math.Cos(theta), math.Sin(theta)
		rx := x*c - y*s
		ry := x*s + y*c
		sum += g.noise.Eval2(rx*freq, ry*freq) * amp
		norm += amp
		freq *= noiseLacunarity
		amp *= noiseGain
		sign = -sign
	}
	return sum / norm
}

// hash2 is a cheap screen/cell hash in [0,1). Not noise quality, just enough
// decorrelation for dithering and per-cell delays.
func hash2(x, y float64) float64 {
	h := math.Sin(x*127.1+y*311.7) * 43758.5453123
	return h - math.Floor(h)
}

func fract(v float64) float64 {
	return v - math.Floor(v)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
