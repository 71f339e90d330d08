// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: nav/controller.go
// Summary: Page selection and zoom-transition orchestration.
// Usage: The input layer calls Select and Back; the controller drives the
// transition machine and flips the visible view on completion.

package nav

import (
	"log"
	"sync"

	"github.com/termfolio/termfolio/transition"
)

// Page is one navigable portfolio panel.
type Page struct {
	ID      string
	Title   string
	Target  transition.Point // badge position, fraction of viewport, origin bottom-left
	Lines   []string         // body text, pre-wrap
	Snippet string           // optional code block, highlighted when non-empty

	// SnippetFile is a nominal filename guiding snippet language detection.
	SnippetFile string
}

// View identifies what the user is looking at.
type View int

const (
	ViewMain View = iota // background plus page badges
	ViewPage             // a zoomed-in content panel
)

func (v View) String() string {
	switch v {
	case ViewMain:
		return "Main"
	case ViewPage:
		return "Page"
	default:
		return "UnknownView"
	}
}

// Controller owns which page is selected. The transition core stays passive:
// the controller only raises request flags and reacts to completion
// callbacks.
type Controller struct {
	mu       sync.Mutex
	machine  *transition.Machine
	pages    []Page
	selected int
	view     View
}

// NewController wires a controller to the machine's completion callbacks.
func NewController(machine *transition.Machine, pages []Page) *Controller {
	c := &Controller{
		machine:  machine,
		pages:    pages,
		selected: -1,
	}
	machine.OnTransitionComplete(c.handleZoomInDone)
	machine.OnZoomBackComplete(c.handleZoomBackDone)
	return c
}

// Pages returns the page list.
func (c *Controller) Pages() []Page {
	return c.pages
}

// Select starts a zoom toward the page's badge. Ignored while a page is
// already open or a transition is running.
func (c *Controller) Select(index int) {
	c.mu.Lock()
	if index < 0 || index >= len(c.pages) || c.view != ViewMain || c.selected != -1 {
		c.mu.Unlock()
		return
	}
	c.selected = index
	target := c.pages[index].Target
	c.mu.Unlock()

	log.Printf("Nav: zooming toward page %q", c.pages[index].ID)
	c.machine.SetTransitionTarget(&target)
	c.machine.SetTransitionRequested(true)
}

// Back leaves the open page and zooms out.
func (c *Controller) Back() {
	c.mu.Lock()
	if c.view != ViewPage {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.machine.SetTransitionRequested(false)
	c.machine.SetZoomBackRequested(true)
}

// Current reports the visible view and the open page, nil while on main.
func (c *Controller) Current() (View, *Page) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view == ViewPage && c.selected >= 0 {
		page := c.pages[c.selected]
		return c.view, &page
	}
	return c.view, nil
}

// Selected returns the index of the page being zoomed toward or shown, -1
// when none.
func (c *Controller) Selected() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

func (c *Controller) handleZoomInDone() {
	c.mu.Lock()
	c.view = ViewPage
	c.mu.Unlock()
}

func (c *Controller) handleZoomBackDone() {
	c.mu.Lock()
	c.view = ViewMain
	c.selected = -1
	c.mu.Unlock()

	c.machine.SetZoomBackRequested(false)
	c.machine.SetTransitionTarget(nil)
}
