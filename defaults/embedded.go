// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Embedded default configuration file.
// The embedded JSON is the single source of truth for shipped defaults.

package defaults

import "embed"

//go:embed termfolio.json
var fs embed.FS

// SystemConfig returns the embedded default config JSON.
func SystemConfig() ([]byte, error) {
	return fs.ReadFile("termfolio.json")
}
