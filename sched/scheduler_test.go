// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package sched

import (
	"context"
	"math"
	"sync/atomic"
	"testing"
	"time"
)

var t0 = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func step(s *Scheduler, from time.Time, ticks int) time.Time {
	now := from
	for i := 0; i < ticks; i++ {
		now = now.Add(ForegroundInterval)
		s.Advance(now)
	}
	return now
}

func TestMouseSmoothingConvergesWithin55Ticks(t *testing.T) {
	s := New(0.3, nil)
	s.Advance(t0)
	s.SetMouse(1, 1)

	// ceil(log(0.01)/log(1-0.08)) ≈ 55 ticks to get within 1%.
	step(s, t0, 55)
	st := s.State()
	if math.Abs(st.MouseX-1) > 0.01 || math.Abs(st.MouseY-1) > 0.01 {
		t.Fatalf("smoothed mouse %g,%g not within 1%% after 55 ticks", st.MouseX, st.MouseY)
	}
}

func TestMouseSmoothingNeverOvershoots(t *testing.T) {
	s := New(0.3, nil)
	s.Advance(t0)
	s.SetMouse(0.8, 0.2)
	now := t0
	for i := 0; i < 200; i++ {
		now = now.Add(ForegroundInterval)
		st := s.Advance(now)
		if st.MouseX > 0.8 || st.MouseY > 0.2 {
			t.Fatalf("tick %d: smoothed position overshot raw: %g,%g", i, st.MouseX, st.MouseY)
		}
	}
}

func TestMouseInputClampedToUnitRange(t *testing.T) {
	s := New(0.3, nil)
	s.SetMouse(-3, 12)
	st := s.State()
	if st.MouseRawX != 0 || st.MouseRawY != 1 {
		t.Fatalf("raw mouse not clamped: %g,%g", st.MouseRawX, st.MouseRawY)
	}
}

func TestElapsedScaledAndFrozenByPause(t *testing.T) {
	s := New(0.5, nil)
	s.Advance(t0)
	s.Advance(t0.Add(time.Second))
	if got := s.State().Elapsed; math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("elapsed = %g, want 0.5 after one scaled second", got)
	}

	s.SetPaused(true)
	s.Advance(t0.Add(3 * time.Second))
	if got := s.State().Elapsed; math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("elapsed advanced while paused: %g", got)
	}

	// Resume: only time after the resume tick counts.
	s.SetPaused(false)
	s.Advance(t0.Add(4 * time.Second))
	if got := s.State().Elapsed; math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("elapsed after resume = %g, want 1.0", got)
	}
}

func TestLoadProgressRampsAndClamps(t *testing.T) {
	s := New(0.3, nil)
	s.MarkLoadStart(t0)

	st := s.Advance(t0.Add(500 * time.Millisecond))
	if math.Abs(st.LoadProgress-0.25) > 1e-9 {
		t.Fatalf("load progress at 500ms = %g, want 0.25", st.LoadProgress)
	}
	st = s.Advance(t0.Add(5 * time.Second))
	if st.LoadProgress != 1 {
		t.Fatalf("load progress past duration = %g, want exactly 1", st.LoadProgress)
	}
}

func TestVisibilityRegimeSwitch(t *testing.T) {
	var ticks atomic.Int64
	s := New(0.3, func(FrameState, time.Time) { ticks.Add(1) })
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)
	defer s.Stop()

	time.Sleep(320 * time.Millisecond)
	foreground := ticks.Load()
	if foreground < 10 {
		t.Fatalf("foreground cadence too slow: %d ticks in 320ms", foreground)
	}

	s.SetVisible(false)
	time.Sleep(50 * time.Millisecond) // let the regime switch land
	ticks.Store(0)
	time.Sleep(320 * time.Millisecond)
	background := ticks.Load()
	if background > 6 {
		t.Fatalf("background cadence too fast: %d ticks in 320ms", background)
	}
	if background == 0 {
		t.Fatal("state updates stopped entirely while hidden")
	}

	s.SetVisible(true)
	time.Sleep(50 * time.Millisecond)
	ticks.Store(0)
	time.Sleep(320 * time.Millisecond)
	resumed := ticks.Load()
	if resumed < 10 {
		t.Fatalf("foreground cadence did not resume: %d ticks in 320ms", resumed)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	s := New(0.3, nil)
	done := make(chan struct{})
	go func() {
		s.Run(context.Background())
		close(done)
	}()
	s.Stop()
	s.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not exit after Stop")
	}
}
