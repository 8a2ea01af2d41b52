// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package rasterizer defines the outline-font engine contract used by the
// atlas pipeline, together with a default pure-Go implementation.
//
// The pipeline never talks to a font library directly: it opens faces,
// enumerates defined characters, fetches per-glyph metrics and coverage
// bitmaps, and reads raw sfnt tables exclusively through the Engine and
// Face interfaces. Any native or pure-Go font backend can be substituted
// behind them.
//
// An Engine is an explicitly constructed, explicitly owned resource. It is
// passed to fontatlas.NewFont rather than living in process-global state,
// so tests and embedders control its lifetime.
//
// The default engine parses fonts with go-text/typesetting and renders
// outline coverage with golang.org/x/image/vector.
package rasterizer
