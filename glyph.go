// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fontatlas

// Point size and canvas limits. Faces outside [MinPointSize, MaxPointSize]
// are clamped; canvas dimensions stay within [minCanvasSize, maxCanvasSize].
const (
	MinPointSize = 6
	MaxPointSize = 48

	minCanvasSize = 128
	maxCanvasSize = 2048
)

// maxStaticRune is the last code point eligible for eager placement on a
// partial-coverage face. Runes above it go through the dynamic cache.
const maxStaticRune = 0x7F

// Glyph describes one rendered glyph: its pixel rectangle on an atlas
// page and the metrics needed to position it in a text run.
type Glyph struct {
	// Page indexes the face's texture pages.
	Page int

	// X, Y, Width, Height locate the glyph bitmap on the page.
	X, Y          int
	Width, Height int

	// OffsetX, OffsetY translate from the pen position to the top-left
	// of the bitmap. OffsetY is measured from the ascent line.
	OffsetX, OffsetY int

	// Advance is the horizontal pen advance in pixels.
	Advance int
}
