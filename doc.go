// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package fontatlas converts outline fonts into packed alpha-texture
// atlases and serves glyph geometry and kerning to a text layout consumer.
//
// A Font owns raw font bytes and hands out a FontFace per point size. Face
// construction enumerates the font's characters, packs padded glyph
// rectangles into a growable canvas, rasterizes coverage into it, and
// uploads the result to a texture sink.
//
// When a font's full character set fits the canvas budget, the face is
// fully static: every glyph is rasterized once. When it does not (large
// CJK sets), the printable ASCII range is rasterized eagerly and all
// remaining canvas capacity becomes a fixed grid of cells managed by a
// least-recently-used GlyphCache, which re-rasterizes arbitrary characters
// on demand and patches their cell pixels in place. Memory stays bounded
// no matter how many distinct characters the consumer requests.
//
// The outline engine and the texture sink are capability interfaces
// (rasterizer.Engine, texture.Provider); the defaults are a pure-Go
// go-text/typesetting engine and an in-memory sink, with a GPU sink
// available over gogpu/gpucontext.
//
// The package performs no text shaping, fallback, or subpixel rendering.
//
// Basic usage:
//
//	font, err := fontatlas.NewFont(ttfBytes)
//	if err != nil { ... }
//	face, err := font.Face(14)
//	if err != nil { ... }
//	g, ok := face.Glyph('A')
//	k := face.Kerning('A', 'V')
//
// A Font, its faces, and their caches belong to a single goroutine, the
// one owning the texture upload context. Glyph lookups on a dynamic face
// may rewrite atlas pixels as a side effect of the query.
package fontatlas
