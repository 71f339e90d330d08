// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Safety-net defaults applied after every load.
// Notes: The embedded JSON is the shipped configuration; these cover files a
// user has hand-edited down to a subset of keys.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("ui", Section{
		"heading":        "TERMFOLIO",
		"subtitle":       "terminal-native portfolio",
		"heading_effect": "shuffle",
	})
	cfg.RegisterDefaults("render", Section{
		"scale":                1.0,
		"grid_mul_x":           2.0,
		"grid_mul_y":           1.0,
		"digit_size":           1.5,
		"time_scale":           0.3,
		"scanline_intensity":   0.3,
		"glitch_amount":        1.0,
		"flicker_amount":       1.0,
		"noise_amp":            0.0,
		"chromatic_aberration": 0.0,
		"dither":               0.0,
		"curvature":            0.2,
		"tint":                 "#ffffff",
		"mouse_react":          false,
		"mouse_strength":       0.2,
		"page_load_animation":  true,
		"brightness":           1.0,
	})
	cfg.RegisterDefaults("effects", Section{
		"shuffle_duration_ms":    900,
		"typewriter_per_rune_ms": 40,
		"blobs":                  false,
		"blob_count":             5,
		"blob_alpha":             0.35,
	})
}
