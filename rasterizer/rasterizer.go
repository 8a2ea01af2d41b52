// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rasterizer

import (
	"errors"
	"iter"
)

// Sentinel errors for the rasterizer package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("rasterizer: empty font data")

	// ErrInvalidPointSize is returned for a zero or negative point size.
	ErrInvalidPointSize = errors.New("rasterizer: point size must be positive")

	// ErrNoTable is returned by Face.Table when the font does not carry
	// the requested table.
	ErrNoTable = errors.New("rasterizer: font table not present")

	// ErrNoOutline is returned when a glyph has no renderable outline
	// (for example a bitmap-only or SVG glyph).
	ErrNoOutline = errors.New("rasterizer: glyph has no outline")

	// ErrMissingGlyph is returned for a glyph index the face cannot serve.
	ErrMissingGlyph = errors.New("rasterizer: missing glyph")
)

// GlyphID is an index into a font's glyph table. Index 0 is the missing
// glyph by OpenType convention.
type GlyphID uint32

// Metrics describes one glyph's geometry in device pixels.
type Metrics struct {
	// Width and Height are the coverage bitmap dimensions.
	Width  int
	Height int

	// BearingX is the horizontal distance from the pen position to the
	// bitmap's left edge.
	BearingX int

	// BearingY is the vertical distance from the baseline up to the
	// bitmap's top edge.
	BearingY int

	// Advance is the horizontal pen advance.
	Advance int
}

// Bitmap is one glyph's coverage bitmap.
//
// When Mono is false, Pixels holds Height rows of Width one-byte coverage
// values, Stride bytes apart. When Mono is true, rows are 1-bit packed
// (most significant bit first) and consumers expand set bits to full
// coverage.
type Bitmap struct {
	Pixels []byte
	Width  int
	Height int
	Stride int
	Mono   bool
}

// Engine opens font faces from raw font bytes.
//
// Engines are owned by their creator and passed explicitly to consumers;
// the package keeps no global engine state.
type Engine interface {
	// OpenFace parses font data and prepares a face at the given point
	// size. The returned Face retains the engine's parsed state and must
	// be closed when no longer needed.
	OpenFace(data []byte, pointSize int) (Face, error)
}

// Face is one opened font face at a fixed point size.
//
// A Face is bound to the single thread that drives atlas population; it is
// not safe for concurrent use.
type Face interface {
	// Chars iterates over every character the font defines, yielding the
	// character and its glyph index in cmap order.
	Chars() iter.Seq2[rune, GlyphID]

	// Lookup resolves a single character to its glyph index.
	Lookup(r rune) (GlyphID, bool)

	// Metrics returns the glyph's geometry without rasterizing it.
	Metrics(gid GlyphID) (Metrics, error)

	// Rasterize renders the glyph to a coverage bitmap. The returned
	// metrics describe the bitmap exactly.
	Rasterize(gid GlyphID) (Bitmap, Metrics, error)

	// Ascent is the baseline-to-top distance in pixels.
	Ascent() int

	// RowHeight is the default line height in pixels.
	RowHeight() int

	// HasKerning reports whether the font carries pair-kerning data.
	HasKerning() bool

	// Table returns the raw bytes of a named sfnt table ("kern" et al),
	// or ErrNoTable.
	Table(tag string) ([]byte, error)

	// ScaleFactor is devicePixelsPerEm / unitsPerEm, the factor that
	// converts font-unit values (kerning amounts) to device pixels.
	ScaleFactor() float64

	// Close releases the face.
	Close() error
}
