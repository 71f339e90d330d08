// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/app/app.go
// Summary: Terminal host wiring: config, pattern, scheduler, transition,
// navigation, panels and effects composed into one event loop.
// Usage: New reads the config store; Run blocks until quit or ctx cancel.

package app

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/termfolio/termfolio/config"
	"github.com/termfolio/termfolio/internal/effects"
	"github.com/termfolio/termfolio/nav"
	"github.com/termfolio/termfolio/panels"
	"github.com/termfolio/termfolio/pattern"
	"github.com/termfolio/termfolio/sched"
	"github.com/termfolio/termfolio/surface"
	"github.com/termfolio/termfolio/transition"
)

// startable is implemented by effects that animate from an explicit instant.
type startable interface {
	Start(now time.Time)
}

// App is the terminal portfolio host.
type App struct {
	cfg       config.Config
	gen       *pattern.Generator
	surf      *surface.TermSurface
	machine   *transition.Machine
	nav       *nav.Controller
	scheduler *sched.Scheduler
	fx        *effects.Manager

	mu         sync.Mutex
	paused     bool
	panelCache map[string]*panels.Panel
}

// New assembles the app from the loaded configuration.
func New() (*App, error) {
	cfg := config.System()
	if err := config.Err(); err != nil {
		log.Printf("App: config load degraded: %v", err)
	}

	pcfg := cfg.RenderConfig()
	if err := pcfg.Validate(); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	gen, err := pattern.New(pcfg, time.Now().UnixNano())
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	machine := transition.NewMachine()
	pages := panels.BuiltinPages()

	a := &App{
		cfg:        cfg,
		gen:        gen,
		surf:       surface.NewTermSurface(gen),
		machine:    machine,
		nav:        nav.NewController(machine, pages),
		fx:         effects.NewManager(),
		panelCache: make(map[string]*panels.Panel),
	}
	a.scheduler = sched.New(pcfg.TimeScale, a.tick)
	a.surf.SetOverlay(a.overlay)
	return a, nil
}

// Run initializes the terminal and blocks until the user quits or the context
// is canceled.
func (a *App) Run(ctx context.Context) error {
	if err := a.surf.Init(); err != nil {
		return err
	}
	defer a.surf.Dispose()

	now := time.Now()
	a.scheduler.MarkLoadStart(now)
	a.buildEffects(now)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.pollEvents(cancel)

	log.Printf("App: running")
	a.scheduler.Run(ctx)
	return nil
}

// buildEffects constructs the configured boot effects. A bad effect config is
// logged and skipped, never fatal.
func (a *App) buildEffects(now time.Time) {
	heading := a.cfg.GetString("ui", "heading", "TERMFOLIO")
	subtitle := a.cfg.GetString("ui", "subtitle", "")

	headingID := a.cfg.GetString("ui", "heading_effect", "shuffle")
	eff, err := a.fx.AddByID(headingID, effects.Config{
		"text":        heading,
		"x":           2,
		"y":           1,
		"duration_ms": a.cfg.GetFloat("effects", "shuffle_duration_ms", 900),
	})
	if err != nil {
		log.Printf("App: heading effect: %v", err)
	} else if s, ok := eff.(startable); ok {
		s.Start(now)
	}

	if subtitle != "" {
		eff, err := a.fx.AddByID("typewriter", effects.Config{
			"text":        subtitle,
			"x":           2,
			"y":           2,
			"per_rune_ms": a.cfg.GetFloat("effects", "typewriter_per_rune_ms", 40),
		})
		if err != nil {
			log.Printf("App: subtitle effect: %v", err)
		} else if s, ok := eff.(startable); ok {
			// Subtitle starts once the heading has mostly settled.
			s.Start(now.Add(600 * time.Millisecond))
		}
	}

	if a.cfg.GetBool("effects", "blobs", false) {
		_, err := a.fx.AddByID("blobs", effects.Config{
			"count": a.cfg.GetFloat("effects", "blob_count", 5),
			"alpha": a.cfg.GetFloat("effects", "blob_alpha", 0.35),
		})
		if err != nil {
			log.Printf("App: blobs effect: %v", err)
		}
	}
}

// tick runs once per scheduled frame on the scheduler goroutine.
func (a *App) tick(state sched.FrameState, now time.Time) {
	a.machine.Update(now)
	a.fx.Update(now)
	a.surf.Render(state, a.machine.Snapshot())
}

// overlay composites badges, the open panel, and effects over the background.
func (a *App) overlay(buf surface.Buffer) {
	if len(buf) == 0 {
		return
	}
	rows := len(buf)
	cols := len(buf[0])

	view, page := a.nav.Current()
	if view == nav.ViewPage && page != nil {
		a.panelFor(page).Render(buf, panels.CenteredRect(cols, rows))
		return
	}

	if a.machine.Phase() == transition.PhaseIdle {
		a.drawBadges(buf, cols, rows)
	}
	a.fx.Apply(buf)
}

// drawBadges paints the numbered page labels at their zoom targets. The
// pattern's cell background is kept so labels sit inside the scene.
func (a *App) drawBadges(buf surface.Buffer, cols, rows int) {
	for i, page := range a.nav.Pages() {
		label := fmt.Sprintf("[%d] %s", i+1, page.Title)
		cx := int(page.Target.X * float64(cols))
		cy := int((1 - page.Target.Y) * float64(rows))
		x := cx - len(label)/2
		if cy < 0 || cy >= rows {
			continue
		}
		for j, ch := range label {
			px := x + j
			if px < 0 || px >= cols {
				continue
			}
			_, bg, _ := buf[cy][px].Style.Decompose()
			buf[cy][px] = surface.Cell{
				Ch:    ch,
				Style: tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(bg).Bold(true),
			}
		}
	}
}

func (a *App) panelFor(page *nav.Page) *panels.Panel {
	a.mu.Lock()
	defer a.mu.Unlock()
	if p, ok := a.panelCache[page.ID]; ok {
		return p
	}
	p := panels.FromPage(*page)
	a.panelCache[page.ID] = p
	return p
}

func (a *App) currentPanel() *panels.Panel {
	view, page := a.nav.Current()
	if view != nav.ViewPage || page == nil {
		return nil
	}
	return a.panelFor(page)
}

// pollEvents translates terminal events into scheduler and navigation calls.
// It exits when the screen is torn down (PollEvent returns nil).
func (a *App) pollEvents(cancel context.CancelFunc) {
	screen := a.surf.Screen()
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if a.handleKey(ev) {
				cancel()
				return
			}
		case *tcell.EventResize:
			cols, rows := ev.Size()
			a.surf.Resize(cols, rows)
			screen.Sync()
		case *tcell.EventMouse:
			a.handleMouse(ev)
		case *tcell.EventFocus:
			a.scheduler.SetVisible(ev.Focused)
		}
	}
}

// handleKey returns true when the app should quit.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyEscape, tcell.KeyBackspace, tcell.KeyBackspace2:
		a.nav.Back()
		return false
	case tcell.KeyPgUp:
		a.scrollPanel(-5)
		return false
	case tcell.KeyPgDn:
		a.scrollPanel(5)
		return false
	case tcell.KeyUp:
		a.scrollPanel(-1)
		return false
	case tcell.KeyDown:
		a.scrollPanel(1)
		return false
	}

	switch r := ev.Rune(); {
	case r == 'q':
		return true
	case r == 'p':
		a.togglePause()
	case r >= '1' && r <= '9':
		a.nav.Select(int(r - '1'))
	}
	return false
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	cols, rows := a.surf.Screen().Size()
	if cols > 0 && rows > 0 {
		x, y := ev.Position()
		a.scheduler.SetMouse(
			(float64(x)+0.5)/float64(cols),
			1-(float64(y)+0.5)/float64(rows),
		)
	}

	switch ev.Buttons() {
	case tcell.WheelUp:
		a.scrollPanel(-3)
	case tcell.WheelDown:
		a.scrollPanel(3)
	}
}

func (a *App) scrollPanel(delta int) {
	if p := a.currentPanel(); p != nil {
		p.ScrollBy(delta)
	}
}

func (a *App) togglePause() {
	a.mu.Lock()
	a.paused = !a.paused
	paused := a.paused
	a.mu.Unlock()
	a.scheduler.SetPaused(paused)
	log.Printf("App: paused=%v", paused)
}
