// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: panels/panel.go
// Summary: Bordered, scrollable content panel drawn over the background.
// Usage: Set the body (and optionally a snippet), then Render into a cell
// buffer each frame. Content reflows when the render width changes.

package panels

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/termfolio/termfolio/surface"
)

// Rect is a cell-space rectangle.
type Rect struct {
	X, Y, W, H int
}

// Panel is one content block: a border, a title, word-wrapped body text and
// an optional highlighted code snippet below it.
type Panel struct {
	Title string

	BorderStyle    tcell.Style
	TitleStyle     tcell.Style
	TextStyle      tcell.Style
	IndicatorStyle tcell.Style

	// Render runs on the frame goroutine, scrolling on the input goroutine.
	mu sync.Mutex

	body        []string
	snippetCode string
	snippetFile string

	content   [][]surface.Cell // reflowed rows, rebuilt lazily
	flowWidth int              // width content was flowed for; 0 = dirty
	scroll    ScrollState
}

// NewPanel builds an empty titled panel with the default dark styling.
func NewPanel(title string) *Panel {
	border := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(140, 120, 200)).
		Background(tcell.ColorBlack)
	return &Panel{
		Title:          title,
		BorderStyle:    border,
		TitleStyle:     border.Bold(true),
		TextStyle:      tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
		IndicatorStyle: border,
	}
}

// SetBody replaces the body text. Lines longer than the panel width wrap at
// word boundaries during Render.
func (p *Panel) SetBody(lines []string) {
	p.mu.Lock()
	p.body = append([]string(nil), lines...)
	p.flowWidth = 0
	p.mu.Unlock()
}

// SetSnippet attaches a code block below the body. filename guides language
// detection and may be empty. An empty code string removes the block.
func (p *Panel) SetSnippet(code, filename string) {
	p.mu.Lock()
	p.snippetCode = code
	p.snippetFile = filename
	p.flowWidth = 0
	p.mu.Unlock()
}

// ScrollBy moves the viewport by delta rows (positive scrolls down).
func (p *Panel) ScrollBy(delta int) {
	p.mu.Lock()
	p.scroll = p.scroll.ScrollBy(delta)
	p.mu.Unlock()
}

// ScrollToTop resets the viewport to the first content row.
func (p *Panel) ScrollToTop() {
	p.mu.Lock()
	p.scroll = p.scroll.ScrollToTop()
	p.mu.Unlock()
}

// Scroll exposes the current scroll state.
func (p *Panel) Scroll() ScrollState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scroll
}

// Render draws the panel into buffer at r: border, title, then the visible
// window of the reflowed content.
func (p *Panel) Render(buffer surface.Buffer, r Rect) {
	if r.W < 4 || r.H < 3 || len(buffer) == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	inner := Rect{X: r.X + 2, Y: r.Y + 1, W: r.W - 4, H: r.H - 2}
	p.reflow(inner.W)
	p.scroll = p.scroll.WithContent(len(p.content)).WithViewport(inner.H)

	p.drawBorder(buffer, r)

	for row := 0; row < inner.H; row++ {
		ci := p.scroll.Offset + row
		if ci >= len(p.content) {
			break
		}
		line := p.content[ci]
		for col := 0; col < inner.W && col < len(line); col++ {
			put(buffer, inner.X+col, inner.Y+row, line[col])
		}
	}

	// Overflow indicators sit on the right border edge.
	if p.scroll.CanScrollUp() {
		put(buffer, r.X+r.W-1, inner.Y, surface.Cell{Ch: upGlyph, Style: p.IndicatorStyle})
	}
	if p.scroll.CanScrollDown() {
		put(buffer, r.X+r.W-1, inner.Y+inner.H-1, surface.Cell{Ch: downGlyph, Style: p.IndicatorStyle})
	}
}

func (p *Panel) reflow(width int) {
	if width <= 0 || p.flowWidth == width {
		return
	}
	p.flowWidth = width
	p.content = p.content[:0]

	for _, line := range p.body {
		if line == "" {
			p.content = append(p.content, nil)
			continue
		}
		for _, wrapped := range strings.Split(runewidth.Wrap(line, width), "\n") {
			row := make([]surface.Cell, 0, len(wrapped))
			for _, ch := range wrapped {
				row = append(row, surface.Cell{Ch: ch, Style: p.TextStyle})
			}
			p.content = append(p.content, row)
		}
	}

	if p.snippetCode != "" {
		if len(p.content) > 0 {
			p.content = append(p.content, nil)
		}
		// Snippet lines are clipped, not wrapped; code wrapping mangles
		// indentation.
		p.content = append(p.content, Highlight(p.snippetCode, p.snippetFile, p.TextStyle)...)
	}
}

func (p *Panel) drawBorder(buffer surface.Buffer, r Rect) {
	fill := surface.Cell{Ch: ' ', Style: p.TextStyle}
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			put(buffer, x, y, fill)
		}
	}

	h := surface.Cell{Ch: '─', Style: p.BorderStyle}
	v := surface.Cell{Ch: '│', Style: p.BorderStyle}
	for x := r.X + 1; x < r.X+r.W-1; x++ {
		put(buffer, x, r.Y, h)
		put(buffer, x, r.Y+r.H-1, h)
	}
	for y := r.Y + 1; y < r.Y+r.H-1; y++ {
		put(buffer, r.X, y, v)
		put(buffer, r.X+r.W-1, y, v)
	}
	put(buffer, r.X, r.Y, surface.Cell{Ch: '┌', Style: p.BorderStyle})
	put(buffer, r.X+r.W-1, r.Y, surface.Cell{Ch: '┐', Style: p.BorderStyle})
	put(buffer, r.X, r.Y+r.H-1, surface.Cell{Ch: '└', Style: p.BorderStyle})
	put(buffer, r.X+r.W-1, r.Y+r.H-1, surface.Cell{Ch: '┘', Style: p.BorderStyle})

	if p.Title != "" {
		label := " " + p.Title + " "
		if w := runewidth.StringWidth(label); w > r.W-4 {
			label = runewidth.Truncate(label, r.W-4, "… ")
		}
		x := r.X + 2
		for _, ch := range label {
			put(buffer, x, r.Y, surface.Cell{Ch: ch, Style: p.TitleStyle})
			x += runewidth.RuneWidth(ch)
		}
	}
}

// CenteredRect returns a rect covering roughly the middle of a cols×rows
// screen, leaving a margin for the background to show through.
func CenteredRect(cols, rows int) Rect {
	w := cols * 3 / 4
	h := rows * 3 / 4
	if w < 20 && cols >= 20 {
		w = 20
	}
	if h < 6 && rows >= 6 {
		h = 6
	}
	if w > cols {
		w = cols
	}
	if h > rows {
		h = rows
	}
	return Rect{X: (cols - w) / 2, Y: (rows - h) / 2, W: w, H: h}
}

func put(buffer surface.Buffer, x, y int, c surface.Cell) {
	if y < 0 || y >= len(buffer) {
		return
	}
	row := buffer[y]
	if x < 0 || x >= len(row) {
		return
	}
	row[x] = c
}
