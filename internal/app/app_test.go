// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/termfolio/termfolio/nav"
	"github.com/termfolio/termfolio/sched"
	"github.com/termfolio/termfolio/surface"
	"github.com/termfolio/termfolio/transition"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	a, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func keyRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestQuitKeys(t *testing.T) {
	a := newTestApp(t)
	if !a.handleKey(keyRune('q')) {
		t.Fatal("q did not quit")
	}
	if !a.handleKey(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)) {
		t.Fatal("ctrl-c did not quit")
	}
	if a.handleKey(keyRune('x')) {
		t.Fatal("unbound rune quit")
	}
}

func TestNumberKeyStartsZoom(t *testing.T) {
	a := newTestApp(t)
	now := time.Now()

	a.handleKey(keyRune('1'))
	a.machine.Update(now)
	if got := a.machine.Phase(); got != transition.PhaseZoomingIn {
		t.Fatalf("phase after selecting = %v", got)
	}

	target := a.machine.Snapshot().Target
	want := a.nav.Pages()[0].Target
	if target != want {
		t.Fatalf("target = %+v, want %+v", target, want)
	}
}

func TestEscapeReturnsToMain(t *testing.T) {
	a := newTestApp(t)
	now := time.Now()

	a.handleKey(keyRune('2'))
	a.machine.Update(now)
	a.machine.Update(now.Add(transition.Duration))
	if view, _ := a.nav.Current(); view != nav.ViewPage {
		t.Fatalf("view after zoom-in = %v", view)
	}

	a.handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	a.machine.Update(now.Add(transition.Duration + time.Millisecond))
	a.machine.Update(now.Add(3 * transition.Duration))
	if view, _ := a.nav.Current(); view != nav.ViewMain {
		t.Fatalf("view after zoom-back = %v", view)
	}
	// The whole round trip must be selectable again.
	a.handleKey(keyRune('1'))
	a.machine.Update(now.Add(4 * transition.Duration))
	if got := a.machine.Phase(); got != transition.PhaseZoomingIn {
		t.Fatalf("phase after re-selecting = %v", got)
	}
}

func TestBadgesDrawnOnMainView(t *testing.T) {
	a := newTestApp(t)
	buf := surface.NewBuffer(80, 24, tcell.StyleDefault)
	a.overlay(buf)

	var all strings.Builder
	for _, row := range buf {
		for _, c := range row {
			all.WriteRune(c.Ch)
		}
		all.WriteByte('\n')
	}
	for _, want := range []string{"[1] About", "[2] Projects", "[3] Contact"} {
		if !strings.Contains(all.String(), want) {
			t.Fatalf("badge %q missing", want)
		}
	}
}

func TestOverlayShowsPanelWhenZoomed(t *testing.T) {
	a := newTestApp(t)
	now := time.Now()
	a.nav.Select(0)
	a.machine.Update(now)
	a.machine.Update(now.Add(transition.Duration))

	buf := surface.NewBuffer(80, 24, tcell.StyleDefault)
	a.overlay(buf)

	var all strings.Builder
	for _, row := range buf {
		for _, c := range row {
			all.WriteRune(c.Ch)
		}
		all.WriteByte('\n')
	}
	if !strings.Contains(all.String(), "┌") || !strings.Contains(all.String(), " About ") {
		t.Fatal("panel not rendered on the zoomed view")
	}
	if strings.Contains(all.String(), "[2] Projects") {
		t.Fatal("badges still visible behind an open page")
	}
}

func TestScrollKeysReachOpenPanel(t *testing.T) {
	a := newTestApp(t)
	now := time.Now()
	a.nav.Select(1) // projects carries a snippet, enough rows to scroll
	a.machine.Update(now)
	a.machine.Update(now.Add(transition.Duration))

	// Render once at a small size so the panel learns its viewport.
	buf := surface.NewBuffer(40, 8, tcell.StyleDefault)
	a.overlay(buf)

	p := a.currentPanel()
	if p == nil {
		t.Fatal("no current panel after zoom-in")
	}
	a.handleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	if p.Scroll().Offset != 1 {
		t.Fatalf("offset after KeyDown = %d, want 1", p.Scroll().Offset)
	}
}

func TestHeadingStaysVisibleAfterRevealFinishes(t *testing.T) {
	a := newTestApp(t)
	now := time.Now()
	a.buildEffects(now)

	// Long after every boot effect settled, the texts must still paint.
	a.fx.Update(now.Add(10 * time.Second))
	buf := surface.NewBuffer(80, 24, tcell.StyleDefault)
	a.overlay(buf)

	var all strings.Builder
	for _, row := range buf {
		for _, c := range row {
			all.WriteRune(c.Ch)
		}
		all.WriteByte('\n')
	}
	if !strings.Contains(all.String(), "TERMFOLIO") {
		t.Fatal("heading gone after its reveal completed")
	}
}

func TestTickBeforeInitIsSafe(t *testing.T) {
	a := newTestApp(t)
	a.tick(sched.FrameState{}, time.Now()) // surface not inited; must not panic
}
