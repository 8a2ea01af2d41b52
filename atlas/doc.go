// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package atlas provides rectangle packing and pixel canvases for glyph
// texture atlases.
//
// AreaAllocator packs axis-aligned rectangles into a canvas that grows by
// doubling up to a configured maximum. Allocations are permanent: there is
// no free operation, because atlas cells are either written once (static
// glyphs) or reused by overwriting their pixel contents (dynamic glyphs).
//
// Page is an 8-bit coverage canvas that glyph bitmaps are blitted into
// before the finished pixels are handed to a texture sink.
package atlas
