// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/embedded.go
// Summary: Loads and caches parsed defaults from the embedded JSON file.

package config

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/termfolio/termfolio/defaults"
)

var (
	embeddedOnce sync.Once
	embedded     Config
	embeddedErr  error
)

// defaultSystemConfig returns a fresh copy of the embedded defaults, or nil
// when they cannot be parsed.
func defaultSystemConfig() Config {
	embeddedOnce.Do(func() {
		data, err := defaults.SystemConfig()
		if err != nil {
			embeddedErr = err
			return
		}
		var cfg Config
		if err := json.Unmarshal(data, &cfg); err != nil {
			embeddedErr = err
			return
		}
		embedded = cfg
	})
	if embeddedErr != nil {
		log.Printf("Config: Embedded defaults unavailable: %v", embeddedErr)
		return nil
	}
	return Clone(embedded)
}
