// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: transition/machine.go
// Summary: Zoom transition state machine driven by navigation requests.
// Usage: The render loop calls Update once per frame; the shader consumes Snapshot.
// Notes: Completion callbacks fire exactly once per transition, outside the lock.

package transition

import (
	"sync"
	"time"
)

// Duration is the fixed length of one animated zoom phase.
const Duration = 1100 * time.Millisecond

// Phase identifies the transition state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseZoomingIn
	PhaseZoomed
	PhaseZoomingBack
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseZoomingIn:
		return "ZoomingIn"
	case PhaseZoomed:
		return "Zoomed"
	case PhaseZoomingBack:
		return "ZoomingBack"
	default:
		return "UnknownPhase"
	}
}

// Point is a normalized viewport position, origin bottom-left.
type Point struct {
	X float64
	Y float64
}

// Snapshot is the per-frame view of the machine the shader needs.
type Snapshot struct {
	Phase    Phase
	Progress float64
	Target   Point
}

// Machine converts two request flags plus a target point into a single
// gather-progress scalar. Requests are level-triggered: the zoom-in request
// is idempotent while it stays raised; dropping it mid-phase aborts the phase
// and a re-raise restarts it from scratch (last request wins).
type Machine struct {
	mu         sync.Mutex
	phase      Phase
	phaseStart time.Time // zero = waiting for the first frame timestamp
	target     Point
	progress   float64
	easing     EasingFunc

	zoomInRequested   bool
	zoomBackRequested bool

	onZoomInDone   func()
	onZoomBackDone func()
}

// NewMachine returns an idle machine using EaseOutCubic.
func NewMachine() *Machine {
	return &Machine{easing: EaseOutCubic}
}

// SetTransitionRequested raises or drops the zoom-in request.
func (m *Machine) SetTransitionRequested(on bool) {
	m.mu.Lock()
	m.zoomInRequested = on
	m.mu.Unlock()
}

// SetTransitionTarget records the zoom target. A nil target resets to the
// viewport center.
func (m *Machine) SetTransitionTarget(p *Point) {
	m.mu.Lock()
	if p == nil {
		m.target = Point{X: 0.5, Y: 0.5}
	} else {
		m.target = *p
	}
	m.mu.Unlock()
}

// SetZoomBackRequested raises or drops the zoom-back request.
func (m *Machine) SetZoomBackRequested(on bool) {
	m.mu.Lock()
	m.zoomBackRequested = on
	m.mu.Unlock()
}

// OnTransitionComplete registers the callback fired once when zoom-in lands.
func (m *Machine) OnTransitionComplete(fn func()) {
	m.mu.Lock()
	m.onZoomInDone = fn
	m.mu.Unlock()
}

// OnZoomBackComplete registers the callback fired once when zoom-back lands.
func (m *Machine) OnZoomBackComplete(fn func()) {
	m.mu.Lock()
	m.onZoomBackDone = fn
	m.mu.Unlock()
}

// Update advances the machine to the frame timestamp now. Any completion
// callback due on this frame is invoked after internal state has settled.
func (m *Machine) Update(now time.Time) {
	m.mu.Lock()
	var done func()

	switch m.phase {
	case PhaseIdle:
		m.progress = 0
		if m.zoomInRequested {
			m.phase = PhaseZoomingIn
			m.phaseStart = now
		}

	case PhaseZoomingIn:
		if !m.zoomInRequested {
			// Request withdrawn mid-phase: forget the start so a later
			// request begins a clean phase instead of resuming a stale one.
			m.phase = PhaseIdle
			m.phaseStart = time.Time{}
			m.progress = 0
			break
		}
		if m.phaseStart.IsZero() {
			m.phaseStart = now
		}
		elapsed := now.Sub(m.phaseStart)
		if elapsed >= Duration {
			m.progress = 1
			m.phase = PhaseZoomed
			done = m.onZoomInDone
		} else {
			m.progress = m.easing(float64(elapsed) / float64(Duration))
		}

	case PhaseZoomed:
		m.progress = 1
		if m.zoomBackRequested {
			m.phase = PhaseZoomingBack
			m.phaseStart = now
		}

	case PhaseZoomingBack:
		if m.phaseStart.IsZero() {
			m.phaseStart = now
		}
		elapsed := now.Sub(m.phaseStart)
		if elapsed >= Duration {
			m.progress = 0
			m.phase = PhaseIdle
			m.phaseStart = time.Time{}
			done = m.onZoomBackDone
		} else {
			m.progress = 1 - m.easing(float64(elapsed)/float64(Duration))
		}
	}
	m.mu.Unlock()

	if done != nil {
		done()
	}
}

// Snapshot returns the current phase, progress, and target.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{Phase: m.phase, Progress: m.progress, Target: m.target}
}

// Progress returns the current gather progress in [0,1].
func (m *Machine) Progress() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.progress
}

// Phase returns the active phase.
func (m *Machine) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}
