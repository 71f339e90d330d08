// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/manager.go
// Summary: Orchestrates overlay effects for the render loop.
// Notes: The portfolio has a single full-screen surface, so there is one
// effect list rather than per-pane and per-workspace tiers.

package effects

import (
	"fmt"
	"sync"
	"time"

	"github.com/termfolio/termfolio/surface"
)

// Manager owns the active effect set.
type Manager struct {
	mu      sync.RWMutex
	effects []Effect
}

func NewManager() *Manager {
	return &Manager{}
}

// Add registers a constructed effect.
func (m *Manager) Add(effect Effect) {
	m.mu.Lock()
	m.effects = append(m.effects, effect)
	m.mu.Unlock()
}

// AddByID constructs an effect from the registry and adds it.
func (m *Manager) AddByID(id string, cfg Config) (Effect, error) {
	factory, ok := Lookup(id)
	if !ok {
		return nil, fmt.Errorf("effects: unknown effect %q", id)
	}
	eff, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("effects: build %q: %w", id, err)
	}
	m.Add(eff)
	return eff, nil
}

// Update advances every effect to the frame timestamp.
func (m *Manager) Update(now time.Time) {
	if m == nil {
		return
	}
	for _, eff := range m.snapshot() {
		eff.Update(now)
	}
}

// Apply lets every effect decorate the frame buffer, in registration order.
// Settled effects keep painting their final state; effects gate themselves on
// whether they have started.
func (m *Manager) Apply(buffer surface.Buffer) {
	if m == nil {
		return
	}
	for _, eff := range m.snapshot() {
		eff.Apply(buffer)
	}
}

// AnyActive reports whether at least one effect still animates; the render
// loop uses it to keep requesting frames.
func (m *Manager) AnyActive() bool {
	if m == nil {
		return false
	}
	for _, eff := range m.snapshot() {
		if eff.Active() {
			return true
		}
	}
	return false
}

func (m *Manager) snapshot() []Effect {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Effect(nil), m.effects...)
}
