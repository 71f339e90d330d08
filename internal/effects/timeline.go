// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/timeline.go
// Summary: Per-key animation timeline with configurable easing.
// Usage: Effects animate scalar values without tracking start/target/time
// bookkeeping themselves.
// Notes: All methods take an explicit timestamp so tests can drive time.

package effects

import (
	"sync"
	"time"

	"github.com/termfolio/termfolio/transition"
)

type keyState struct {
	current   float64
	start     float64
	target    float64
	startTime time.Time
	duration  time.Duration
	easing    transition.EasingFunc
}

// Timeline provides thread-safe, per-key animation timelines.
type Timeline struct {
	mu             sync.Mutex
	states         map[string]*keyState
	defaultEasing  transition.EasingFunc
	defaultInitial float64
}

// NewTimeline creates a timeline whose uninitialized keys read as
// defaultInitial.
func NewTimeline(defaultInitial float64) *Timeline {
	return &Timeline{
		states:         make(map[string]*keyState),
		defaultEasing:  transition.EaseSmoothstep,
		defaultInitial: defaultInitial,
	}
}

// AnimateTo starts or retargets an animation for the given key, beginning at
// now. Retargeting starts from the value the key holds at that instant.
func (tl *Timeline) AnimateTo(key string, target float64, duration time.Duration, now time.Time) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.animateLocked(key, target, duration, nil, now)
}

// AnimateToEased is AnimateTo with an explicit easing curve for the key.
func (tl *Timeline) AnimateToEased(key string, target float64, duration time.Duration, easing transition.EasingFunc, now time.Time) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.animateLocked(key, target, duration, easing, now)
}

func (tl *Timeline) animateLocked(key string, target float64, duration time.Duration, easing transition.EasingFunc, now time.Time) {
	state := tl.states[key]
	if state == nil {
		state = &keyState{
			current: tl.defaultInitial,
			easing:  tl.defaultEasing,
		}
		tl.states[key] = state
	}
	if easing != nil {
		state.easing = easing
	}

	state.start = tl.valueLocked(state, now)
	state.current = state.start
	state.target = target
	state.startTime = now
	state.duration = duration
	if duration <= 0 {
		state.current = target
		state.start = target
	}
}

// Value returns the animated value for key at the given instant.
func (tl *Timeline) Value(key string, now time.Time) float64 {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	state := tl.states[key]
	if state == nil {
		return tl.defaultInitial
	}
	v := tl.valueLocked(state, now)
	state.current = v
	return v
}

// IsAnimating reports whether key still moves at the given instant.
func (tl *Timeline) IsAnimating(key string, now time.Time) bool {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	state := tl.states[key]
	if state == nil || state.duration <= 0 {
		return false
	}
	return now.Sub(state.startTime) < state.duration && state.current != state.target
}

func (tl *Timeline) valueLocked(state *keyState, now time.Time) float64 {
	if state.duration <= 0 {
		return state.target
	}
	elapsed := now.Sub(state.startTime)
	if elapsed <= 0 {
		return state.start
	}
	if elapsed >= state.duration {
		return state.target
	}
	t := float64(elapsed) / float64(state.duration)
	eased := state.easing(t)
	return state.start + (state.target-state.start)*eased
}
