// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package transition

import (
	"testing"
	"time"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// drive steps the machine in fixed increments until the whole span elapsed.
func drive(m *Machine, from time.Time, span, step time.Duration) time.Time {
	now := from
	for elapsed := time.Duration(0); elapsed <= span; elapsed += step {
		m.Update(now)
		now = now.Add(step)
	}
	return now
}

func TestZoomInProgressMonotonicWithExactEndpoints(t *testing.T) {
	m := NewMachine()
	m.SetTransitionTarget(&Point{X: 0.3, Y: 0.7})
	m.SetTransitionRequested(true)

	m.Update(t0)
	if got := m.Progress(); got != 0 {
		t.Fatalf("progress at phase start = %g, want 0", got)
	}

	prev := 0.0
	for elapsed := 16 * time.Millisecond; elapsed < Duration; elapsed += 16 * time.Millisecond {
		m.Update(t0.Add(elapsed))
		p := m.Progress()
		if p < prev {
			t.Fatalf("progress decreased mid zoom-in: %g after %g", p, prev)
		}
		if p < 0 || p > 1 {
			t.Fatalf("progress out of range: %g", p)
		}
		prev = p
	}

	m.Update(t0.Add(Duration))
	if got := m.Progress(); got != 1 {
		t.Fatalf("progress at completion = %g, want exactly 1", got)
	}
	if got := m.Phase(); got != PhaseZoomed {
		t.Fatalf("phase after completion = %v, want Zoomed", got)
	}
}

func TestZoomRoundTripFiresCallbacksOnceInOrder(t *testing.T) {
	m := NewMachine()
	var order []string
	m.OnTransitionComplete(func() { order = append(order, "in") })
	m.OnZoomBackComplete(func() { order = append(order, "back") })

	m.SetTransitionTarget(&Point{X: 0.5, Y: 0.5})
	m.SetTransitionRequested(true)
	now := drive(m, t0, Duration+50*time.Millisecond, 16*time.Millisecond)

	// Hold zoomed for a few frames; the callback must not repeat.
	now = drive(m, now, 100*time.Millisecond, 16*time.Millisecond)

	m.SetTransitionRequested(false)
	m.SetZoomBackRequested(true)
	drive(m, now, Duration+50*time.Millisecond, 16*time.Millisecond)

	if got := m.Progress(); got != 0 {
		t.Fatalf("progress after round trip = %g, want exactly 0", got)
	}
	if got := m.Phase(); got != PhaseIdle {
		t.Fatalf("phase after round trip = %v, want Idle", got)
	}
	if len(order) != 2 || order[0] != "in" || order[1] != "back" {
		t.Fatalf("callback order = %v, want [in back]", order)
	}
}

func TestZoomBackProgressMonotonicDecreasing(t *testing.T) {
	m := NewMachine()
	m.SetTransitionRequested(true)
	now := drive(m, t0, Duration+32*time.Millisecond, 16*time.Millisecond)
	m.SetZoomBackRequested(true)
	m.Update(now)

	prev := m.Progress()
	for elapsed := 16 * time.Millisecond; elapsed < Duration; elapsed += 16 * time.Millisecond {
		m.Update(now.Add(elapsed))
		p := m.Progress()
		if p > prev {
			t.Fatalf("progress increased mid zoom-back: %g after %g", p, prev)
		}
		prev = p
	}
}

func TestZoomInRequestIdempotentWhileRaised(t *testing.T) {
	m := NewMachine()
	m.SetTransitionRequested(true)
	m.Update(t0)
	m.Update(t0.Add(400 * time.Millisecond))
	mid := m.Progress()

	// Re-raising the already-raised flag must not restart the phase.
	m.SetTransitionRequested(true)
	m.Update(t0.Add(432 * time.Millisecond))
	if p := m.Progress(); p < mid {
		t.Fatalf("re-raised request restarted the phase: progress %g < %g", p, mid)
	}
}

func TestZoomInRequestWithdrawnMidPhaseRestartsCleanly(t *testing.T) {
	m := NewMachine()
	var completions int
	m.OnTransitionComplete(func() { completions++ })

	m.SetTransitionRequested(true)
	m.Update(t0)
	m.Update(t0.Add(600 * time.Millisecond))

	// Withdraw mid-phase: the machine falls back to idle with progress 0.
	m.SetTransitionRequested(false)
	m.Update(t0.Add(650 * time.Millisecond))
	if got := m.Phase(); got != PhaseIdle {
		t.Fatalf("phase after withdrawal = %v, want Idle", got)
	}
	if got := m.Progress(); got != 0 {
		t.Fatalf("progress after withdrawal = %g, want 0", got)
	}
	if completions != 0 {
		t.Fatalf("completion fired for an aborted phase")
	}

	// Re-raise: the phase restarts from its new start time, not the stale one.
	restart := t0.Add(700 * time.Millisecond)
	m.SetTransitionRequested(true)
	m.Update(restart)
	m.Update(restart.Add(100 * time.Millisecond))
	expected := EaseOutCubic(float64(100*time.Millisecond) / float64(Duration))
	if got := m.Progress(); got != expected {
		t.Fatalf("restarted phase progress = %g, want %g", got, expected)
	}
	drive(m, restart, Duration+32*time.Millisecond, 16*time.Millisecond)
	if completions != 1 {
		t.Fatalf("completions after restart = %d, want 1", completions)
	}
}

func TestSnapshotCarriesTarget(t *testing.T) {
	m := NewMachine()
	m.SetTransitionTarget(&Point{X: 0.25, Y: 0.75})
	snap := m.Snapshot()
	if snap.Target.X != 0.25 || snap.Target.Y != 0.75 {
		t.Fatalf("snapshot target = %+v", snap.Target)
	}

	m.SetTransitionTarget(nil)
	snap = m.Snapshot()
	if snap.Target.X != 0.5 || snap.Target.Y != 0.5 {
		t.Fatalf("nil target should reset to center, got %+v", snap.Target)
	}
}

func TestEaseOutCubicEndpoints(t *testing.T) {
	if EaseOutCubic(0) != 0 {
		t.Fatalf("EaseOutCubic(0) = %g", EaseOutCubic(0))
	}
	if EaseOutCubic(1) != 1 {
		t.Fatalf("EaseOutCubic(1) = %g", EaseOutCubic(1))
	}
	prev := -1.0
	for i := 0; i <= 100; i++ {
		v := EaseOutCubic(float64(i) / 100)
		if v < prev {
			t.Fatalf("EaseOutCubic not monotonic at %d", i)
		}
		prev = v
	}
}
