// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: panels/pages.go
// Summary: Built-in portfolio pages and their badge positions.

package panels

import (
	"github.com/termfolio/termfolio/nav"
	"github.com/termfolio/termfolio/transition"
)

// BuiltinPages returns the stock portfolio content. Badge targets are
// viewport fractions with the origin at the bottom left.
func BuiltinPages() []nav.Page {
	return []nav.Page{
		{
			ID:     "about",
			Title:  "About",
			Target: transition.Point{X: 0.22, Y: 0.68},
			Lines: []string{
				"Systems programmer with a soft spot for terminals.",
				"",
				"I build rendering pipelines, network daemons and the",
				"occasional shader that has no business running in a",
				"character grid. Most of my work lives in Go and C.",
			},
		},
		{
			ID:     "projects",
			Title:  "Projects",
			Target: transition.Point{X: 0.5, Y: 0.35},
			Lines: []string{
				"termfolio — this site. A procedural CRT background",
				"rendered one half-block at a time.",
				"",
				"A taste of the pattern core:",
			},
			Snippet: "func fract(v float64) float64 {\n" +
				"\treturn v - math.Floor(v)\n" +
				"}\n" +
				"\n" +
				"func hash2(x, y float64) float64 {\n" +
				"\treturn fract(math.Sin(x*127.1+y*311.7) * 43758.5453)\n" +
				"}\n",
			SnippetFile: "noise.go",
		},
		{
			ID:     "contact",
			Title:  "Contact",
			Target: transition.Point{X: 0.78, Y: 0.68},
			Lines: []string{
				"hello@termfolio.dev",
				"",
				"Or find me wherever people argue about text editors.",
			},
		},
	}
}

// FromPage builds a render-ready panel for a navigation page.
func FromPage(page nav.Page) *Panel {
	p := NewPanel(page.Title)
	p.SetBody(page.Lines)
	if page.Snippet != "" {
		p.SetSnippet(page.Snippet, page.SnippetFile)
	}
	return p
}
