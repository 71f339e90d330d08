// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/winhost/host.go
// Summary: Windowed host rendering the background pattern with ebiten.
// Usage: The same CPU generator feeds both hosts, so the window and the
// terminal show an identical scene; ebiten owns the frame cadence, the
// scheduler is advanced manually from Update.
// Notes: Click zooms toward the pointer, Escape zooms back, P pauses, Q quits.

package winhost

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/termfolio/termfolio/pattern"
	"github.com/termfolio/termfolio/sched"
	"github.com/termfolio/termfolio/surface"
	"github.com/termfolio/termfolio/transition"
)

const (
	defaultWindowW = 1280
	defaultWindowH = 720
)

// Host implements ebiten.Game around the shared pattern generator.
type Host struct {
	gen       *pattern.Generator
	scheduler *sched.Scheduler
	machine   *transition.Machine

	offscreen  *ebiten.Image
	pix        []byte
	bufW, bufH int
	srcW, srcH int // logical size the backbuffer was built for
	uScale     float64
	lastResize time.Time

	state  sched.FrameState
	snap   transition.Snapshot
	paused bool
}

// New builds a windowed host for the given render configuration.
func New(cfg pattern.Config) (*Host, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("winhost: %w", err)
	}
	gen, err := pattern.New(cfg, time.Now().UnixNano())
	if err != nil {
		return nil, fmt.Errorf("winhost: %w", err)
	}

	h := &Host{
		gen:       gen,
		scheduler: sched.New(cfg.TimeScale, nil),
		machine:   transition.NewMachine(),
	}
	h.machine.OnZoomBackComplete(func() {
		h.machine.SetZoomBackRequested(false)
		h.machine.SetTransitionTarget(nil)
	})
	h.scheduler.MarkLoadStart(time.Now())
	return h, nil
}

// Run opens the window and blocks until the game loop ends.
func (h *Host) Run() error {
	ebiten.SetWindowSize(defaultWindowW, defaultWindowH)
	ebiten.SetWindowTitle("termfolio")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(h); err != nil {
		return fmt.Errorf("winhost: %w", err)
	}
	return nil
}

// Update advances input, scheduler, and transition state for one frame.
func (h *Host) Update() error {
	now := time.Now()

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		h.paused = !h.paused
		h.scheduler.SetPaused(h.paused)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		h.machine.SetTransitionRequested(false)
		h.machine.SetZoomBackRequested(true)
	}

	w, hgt := ebiten.WindowSize()
	if w > 0 && hgt > 0 {
		cx, cy := ebiten.CursorPosition()
		mx := (float64(cx) + 0.5) / float64(w)
		my := 1 - (float64(cy)+0.5)/float64(hgt)
		h.scheduler.SetMouse(mx, my)

		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) &&
			h.machine.Phase() == transition.PhaseIdle {
			target := transition.Point{X: clamp01(mx), Y: clamp01(my)}
			h.machine.SetTransitionTarget(&target)
			h.machine.SetTransitionRequested(true)
		}
	}

	h.scheduler.SetVisible(!ebiten.IsWindowMinimized())

	h.state = h.scheduler.Advance(now)
	h.machine.Update(now)
	h.snap = h.machine.Snapshot()
	return nil
}

// Draw shades the backbuffer on the CPU and stretches it to the window.
func (h *Host) Draw(screen *ebiten.Image) {
	w := screen.Bounds().Dx()
	hgt := screen.Bounds().Dy()
	if w < 1 || hgt < 1 {
		return
	}
	h.ensureBackbuffer(w, hgt)

	frame := pattern.Frame{
		Time:         h.state.Elapsed,
		Width:        h.bufW,
		Height:       h.bufH,
		UScale:       h.uScale,
		MouseX:       h.state.MouseX,
		MouseY:       h.state.MouseY,
		LoadProgress: h.state.LoadProgress,
		Gather:       h.snap.Progress,
		TargetX:      h.snap.Target.X,
		TargetY:      h.snap.Target.Y,
	}

	i := 0
	for py := 0; py < h.bufH; py++ {
		for px := 0; px < h.bufW; px++ {
			r, g, b := h.gen.Shade(px, py, frame)
			h.pix[i] = channel(r)
			h.pix[i+1] = channel(g)
			h.pix[i+2] = channel(b)
			h.pix[i+3] = 0xff
			i += 4
		}
	}
	h.offscreen.WritePixels(h.pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w)/float64(h.bufW), float64(hgt)/float64(h.bufH))
	screen.DrawImage(h.offscreen, op)
}

// Layout keeps logical coordinates equal to window coordinates; the DPR is
// folded into the backbuffer size instead.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (h *Host) ensureBackbuffer(w, hgt int) {
	if w == h.srcW && hgt == h.srcH && h.offscreen != nil {
		return
	}
	// Same throttle the terminal surface applies; window managers deliver a
	// resize per pixel of drag.
	if h.offscreen != nil && time.Since(h.lastResize) < surface.ResizeMinInterval {
		return
	}
	h.srcW, h.srcH = w, hgt

	dpr := ebiten.Monitor().DeviceScaleFactor()
	h.bufW, h.bufH = surface.BackbufferSize(w, hgt, dpr)
	if dpr > surface.MaxPixelRatio {
		dpr = surface.MaxPixelRatio
	}
	h.uScale = surface.UniformScale(int(float64(w)*dpr), int(float64(hgt)*dpr))

	h.offscreen = ebiten.NewImage(h.bufW, h.bufH)
	h.pix = make([]byte, h.bufW*h.bufH*4)
	h.lastResize = time.Now()
}

func channel(v float64) byte {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return byte(v*255 + 0.5)
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
