// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: panels/snippet.go
// Summary: Code-snippet highlighting rendered to styled cell rows.
// Notes: Language is detected from filename and content with go-enry; chroma
// does the tokenizing. Tokens whose color matches the style's base text color
// keep the panel's default style.

package panels

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
	"github.com/go-enry/go-enry/v2"

	"github.com/termfolio/termfolio/surface"
)

const defaultChromaStyle = "catppuccin-mocha"

// Highlight tokenizes code and returns one styled cell row per source line.
// filename guides language detection and may be empty; base is the style
// applied where the highlighter has nothing to say.
func Highlight(code, filename string, base tcell.Style) [][]surface.Cell {
	style := styles.Get(defaultChromaStyle)
	lexer := snippetLexer(filename, code)
	lexer = chroma.Coalesce(lexer)

	tokens, err := chroma.Tokenise(lexer, nil, code)
	if err != nil {
		return plainRows(code, base)
	}

	baseColour := style.Get(chroma.Text).Colour

	rows := [][]surface.Cell{nil}
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		tokStyle := tokenStyle(style.Get(tok.Type), baseColour, base)
		for _, r := range tok.Value {
			if r == '\n' {
				rows = append(rows, nil)
				continue
			}
			last := len(rows) - 1
			rows[last] = append(rows[last], surface.Cell{Ch: r, Style: tokStyle})
		}
	}
	// Drop the empty row a trailing newline leaves behind.
	if n := len(rows); n > 1 && len(rows[n-1]) == 0 {
		rows = rows[:n-1]
	}
	return rows
}

// snippetLexer resolves a lexer from the filename or, failing that, from the
// content classifier.
func snippetLexer(filename, code string) chroma.Lexer {
	lang := enry.GetLanguage(filename, []byte(code))
	if lang != "" {
		if l := lexers.Get(strings.ToLower(lang)); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(code); l != nil {
		return l
	}
	return lexers.Fallback
}

func tokenStyle(entry chroma.StyleEntry, baseColour chroma.Colour, base tcell.Style) tcell.Style {
	st := base
	if entry.Colour.IsSet() && entry.Colour != baseColour {
		st = st.Foreground(tcell.NewRGBColor(
			int32(entry.Colour.Red()),
			int32(entry.Colour.Green()),
			int32(entry.Colour.Blue()),
		))
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	return st
}

func plainRows(code string, base tcell.Style) [][]surface.Cell {
	lines := strings.Split(strings.TrimRight(code, "\n"), "\n")
	rows := make([][]surface.Cell, len(lines))
	for i, line := range lines {
		for _, r := range line {
			rows[i] = append(rows[i], surface.Cell{Ch: r, Style: base})
		}
	}
	return rows
}
