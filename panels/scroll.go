// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: panels/scroll.go
// Summary: Scroll state for content that exceeds the panel viewport.
// Notes: Pure value type; every mutation returns a clamped copy.

package panels

// Default indicator glyphs.
const (
	upGlyph   = '▲'
	downGlyph = '▼'
)

// ScrollState tracks a vertical scroll position over content of a known
// height inside a viewport of a known height.
type ScrollState struct {
	Offset   int // first visible content row
	Content  int // total content rows
	Viewport int // visible rows
}

// NewScrollState builds a state anchored at the top.
func NewScrollState(content, viewport int) ScrollState {
	s := ScrollState{Content: content, Viewport: viewport}
	return s.clamp()
}

func (s ScrollState) maxOffset() int {
	m := s.Content - s.Viewport
	if m < 0 {
		m = 0
	}
	return m
}

func (s ScrollState) clamp() ScrollState {
	if s.Offset < 0 {
		s.Offset = 0
	}
	if m := s.maxOffset(); s.Offset > m {
		s.Offset = m
	}
	return s
}

// WithContent returns a state for a new content height, keeping the offset
// where possible.
func (s ScrollState) WithContent(content int) ScrollState {
	s.Content = content
	return s.clamp()
}

// WithViewport returns a state for a new viewport height.
func (s ScrollState) WithViewport(viewport int) ScrollState {
	s.Viewport = viewport
	return s.clamp()
}

// ScrollBy moves by delta rows (positive scrolls down).
func (s ScrollState) ScrollBy(delta int) ScrollState {
	s.Offset += delta
	return s.clamp()
}

// ScrollToTop and ScrollToBottom jump to the extremes.
func (s ScrollState) ScrollToTop() ScrollState {
	s.Offset = 0
	return s
}

func (s ScrollState) ScrollToBottom() ScrollState {
	s.Offset = s.maxOffset()
	return s
}

// CanScroll reports whether the content overflows the viewport at all.
func (s ScrollState) CanScroll() bool { return s.Content > s.Viewport }

// CanScrollUp reports whether rows are hidden above the viewport.
func (s ScrollState) CanScrollUp() bool { return s.Offset > 0 }

// CanScrollDown reports whether rows are hidden below the viewport.
func (s ScrollState) CanScrollDown() bool { return s.Offset < s.maxOffset() }
