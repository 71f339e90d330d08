// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: sched/scheduler.go
// Summary: Dual-cadence frame scheduler and per-frame state bookkeeping.
// Usage: Owns elapsed shader time, mouse smoothing, and page-load progress;
// ticks fast while visible and on a slow timer while hidden.
// Notes: All FrameState mutation happens on the scheduler goroutine; external
// setters only stage inputs for the next tick.

package sched

import (
	"context"
	"sync"
	"time"
)

const (
	// ForegroundInterval approximates a display-matched cadence.
	ForegroundInterval = 16 * time.Millisecond
	// BackgroundInterval keeps animations alive cheaply on a hidden surface.
	BackgroundInterval = 100 * time.Millisecond

	mouseSmoothing = 0.08
	loadDuration   = 2 * time.Second
)

// FrameState is the mutable per-frame state consumed by the renderer.
type FrameState struct {
	Elapsed      float64 // shader time in seconds, frozen while paused
	MouseRawX    float64
	MouseRawY    float64
	MouseX       float64 // smoothed toward the raw position
	MouseY       float64
	LoadProgress float64 // 0→1 over the first two seconds
	Visible      bool
}

// TickFunc is invoked once per scheduled frame with the settled state.
type TickFunc func(state FrameState, now time.Time)

// Scheduler drives the render loop. While the surface is visible it ticks at
// the foreground interval; when the host reports hidden it switches to a slow
// timer so time-dependent state keeps advancing without burning cycles.
type Scheduler struct {
	mu        sync.Mutex
	state     FrameState
	timeScale float64
	paused    bool
	last      time.Time
	loadStart time.Time

	tick      TickFunc
	visibleCh chan bool
	stopOnce  sync.Once
	stopCh    chan struct{}
}

// New builds a scheduler. timeScale multiplies wall-clock deltas before they
// reach the shader time.
func New(timeScale float64, tick TickFunc) *Scheduler {
	return &Scheduler{
		state:     FrameState{Visible: true},
		timeScale: timeScale,
		tick:      tick,
		visibleCh: make(chan bool, 4),
		stopCh:    make(chan struct{}),
	}
}

// Run blocks, scheduling frames until the context is canceled or Stop is
// called. The load-start timestamp is recorded on entry.
func (s *Scheduler) Run(ctx context.Context) {
	s.mu.Lock()
	if s.loadStart.IsZero() {
		s.loadStart = time.Now()
	}
	visible := s.state.Visible
	s.mu.Unlock()

	ticker := time.NewTicker(intervalFor(visible))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case vis := <-s.visibleCh:
			if vis == visible {
				continue
			}
			visible = vis
			// Exactly one cadence is ever active: the old one stops before
			// the replacement starts.
			ticker.Stop()
			ticker = time.NewTicker(intervalFor(visible))
		case now := <-ticker.C:
			state := s.Advance(now)
			if s.tick != nil {
				s.tick(state, now)
			}
		}
	}
}

// Stop terminates Run. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// Advance applies one tick's worth of state updates at the given timestamp
// and returns the settled state. Exposed separately so hosts that own their
// own loop (and tests) can drive it directly.
func (s *Scheduler) Advance(now time.Time) FrameState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last.IsZero() {
		s.last = now
	}
	dt := now.Sub(s.last).Seconds()
	s.last = now

	if !s.paused {
		s.state.Elapsed += dt * s.timeScale
	}

	s.state.MouseX += (s.state.MouseRawX - s.state.MouseX) * mouseSmoothing
	s.state.MouseY += (s.state.MouseRawY - s.state.MouseY) * mouseSmoothing

	if !s.loadStart.IsZero() {
		p := float64(now.Sub(s.loadStart)) / float64(loadDuration)
		if p < 0 {
			p = 0
		}
		if p > 1 {
			p = 1
		}
		s.state.LoadProgress = p
	}
	return s.state
}

// SetVisible switches between the foreground and background cadences.
func (s *Scheduler) SetVisible(visible bool) {
	s.mu.Lock()
	s.state.Visible = visible
	s.mu.Unlock()
	select {
	case s.visibleCh <- visible:
	default:
	}
}

// SetMouse stages a raw pointer position, normalized to [0,1] with the
// origin at the bottom-left.
func (s *Scheduler) SetMouse(x, y float64) {
	s.mu.Lock()
	s.state.MouseRawX = clamp01(x)
	s.state.MouseRawY = clamp01(y)
	s.mu.Unlock()
}

// SetPaused freezes or resumes shader time. Mouse smoothing and load
// progress keep running either way.
func (s *Scheduler) SetPaused(paused bool) {
	s.mu.Lock()
	s.paused = paused
	s.mu.Unlock()
}

// MarkLoadStart records the page-load animation origin explicitly. Run does
// this implicitly on first entry.
func (s *Scheduler) MarkLoadStart(now time.Time) {
	s.mu.Lock()
	s.loadStart = now
	s.mu.Unlock()
}

// State returns a copy of the current frame state.
func (s *Scheduler) State() FrameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func intervalFor(visible bool) time.Duration {
	if visible {
		return ForegroundInterval
	}
	return BackgroundInterval
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
