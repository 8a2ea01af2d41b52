// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fontatlas

import (
	"github.com/gogpu/fontatlas/rasterizer"
	"github.com/gogpu/fontatlas/texture"
)

// FontFace is one size-specific rendering of a Font: its glyph atlas
// pages, glyph placements, kerning pairs, and (for partial-coverage
// outline faces) a dynamic glyph cache.
//
// A FontFace is owned by the goroutine that created its Font.
type FontFace struct {
	pointSize int
	rowHeight int
	ascent    int

	// glyphs holds eagerly placed glyphs keyed by code point.
	glyphs map[rune]Glyph

	// kerning holds horizontal pair adjustments in pixels. Nil when the
	// face carries no kerning data.
	kerning map[kernKey]int

	textures []texture.Texture

	// dynamic serves code points above the eager range. Nil on
	// full-coverage and bitmap faces.
	dynamic *GlyphCache

	// engineFace stays open only while the dynamic cache needs it.
	engineFace rasterizer.Face
}

// PointSize returns the face's effective point size after clamping.
// Bitmap faces report 0.
func (f *FontFace) PointSize() int { return f.pointSize }

// RowHeight returns the vertical advance between baselines in pixels.
func (f *FontFace) RowHeight() int { return f.rowHeight }

// Ascent returns the distance from the top of a row to the baseline.
func (f *FontFace) Ascent() int { return f.ascent }

// Glyph returns the placement for r. Eagerly placed glyphs are served
// from the static table; on partial-coverage faces, code points above
// the eager range go through the dynamic cache. The second result is
// false when the face cannot render r.
func (f *FontFace) Glyph(r rune) (Glyph, bool) {
	if g, ok := f.glyphs[r]; ok {
		return g, true
	}
	if f.dynamic != nil && r > maxStaticRune {
		return f.dynamic.Glyph(r)
	}
	return Glyph{}, false
}

// Kerning returns the horizontal adjustment for the ordered pair
// (left, right) in pixels. A newline on either side forces 0, keeping
// line breaks free of cross-line adjustments.
func (f *FontFace) Kerning(left, right rune) int {
	if f.kerning == nil {
		return 0
	}
	if left == '\n' || right == '\n' {
		return 0
	}
	return f.kerning[kernKey{left, right}]
}

// HasKerning reports whether the face carries any kerning pairs.
func (f *FontFace) HasKerning() bool { return len(f.kerning) > 0 }

// PageCount returns the number of texture pages.
func (f *FontFace) PageCount() int { return len(f.textures) }

// Page returns the texture page at index i, or nil when out of range.
func (f *FontFace) Page(i int) texture.Texture {
	if i < 0 || i >= len(f.textures) {
		return nil
	}
	return f.textures[i]
}

// Dynamic returns the face's dynamic glyph cache, or nil when the face
// has full coverage.
func (f *FontFace) Dynamic() *GlyphCache { return f.dynamic }

// IsDataLost reports whether any texture page has lost its contents.
// The owning Font rebuilds such faces on the next request.
func (f *FontFace) IsDataLost() bool {
	for _, t := range f.textures {
		if t.IsDataLost() {
			return true
		}
	}
	return false
}

// TotalTextureSize returns the summed byte size of all page pixel
// stores, assuming the page format's bytes per pixel.
func (f *FontFace) TotalTextureSize() int {
	total := 0
	for _, t := range f.textures {
		bpp := 1
		if t.Format() == texture.FormatRGBA {
			bpp = 4
		}
		total += t.Width() * t.Height() * bpp
	}
	return total
}

// Close releases the rasterizer face held open for dynamic glyphs.
// Texture pages stay valid; their lifetime belongs to the provider.
func (f *FontFace) Close() error {
	if f.engineFace != nil {
		err := f.engineFace.Close()
		f.engineFace = nil
		return err
	}
	return nil
}
