// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fontatlas

import (
	"log/slog"

	"github.com/gogpu/fontatlas/rasterizer"
	"github.com/gogpu/fontatlas/texture"
)

// cacheCell is one fixed slot of the dynamic glyph region.
type cacheCell struct {
	// page, x, y locate the cell on its texture page. The cell never
	// moves; only its pixel contents are rewritten.
	page int
	x, y int

	// char is the code point currently resident, or -1 for an empty cell.
	char rune

	// glyph holds the placement for the resident code point.
	glyph Glyph

	// prev and next for LRU doubly-linked list
	prev *cacheCell
	next *cacheCell
}

// GlyphCache serves code points beyond the eagerly placed range of a
// partial-coverage face. Cells are carved out of the atlas once, at face
// construction, and recycled in LRU order. A recycled cell keeps its
// rectangle; eviction is a pixel overwrite, never an atlas operation.
//
// GlyphCache follows the single-goroutine model of its owning face.
type GlyphCache struct {
	face   rasterizer.Face
	tex    texture.Texture
	ascent int

	// cellW, cellH is the uniform cell size, covering the largest glyph
	// the face can produce.
	cellW, cellH int

	// lookup maps resident code points to their cells.
	lookup map[rune]*cacheCell

	// head is the most recently used cell
	head *cacheCell

	// tail is the least recently used cell
	tail *cacheCell

	cells []*cacheCell

	// scratch is the staging buffer for one cell, reused across misses.
	scratch []byte

	hits, misses uint64
}

// newGlyphCache wires pre-allocated cell rectangles to a rasterizer face.
// positions come from the face's live allocator; all cells share the
// given page index and cell size.
func newGlyphCache(face rasterizer.Face, tex texture.Texture, page int, positions [][2]int, cellW, cellH, ascent int) *GlyphCache {
	c := &GlyphCache{
		face:    face,
		tex:     tex,
		ascent:  ascent,
		cellW:   cellW,
		cellH:   cellH,
		lookup:  make(map[rune]*cacheCell, len(positions)),
		cells:   make([]*cacheCell, 0, len(positions)),
		scratch: make([]byte, cellW*cellH),
	}
	for _, pos := range positions {
		cell := &cacheCell{page: page, x: pos[0], y: pos[1], char: -1}
		c.cells = append(c.cells, cell)
		// Seed the LRU list back to front so the first misses consume
		// cells in allocation order.
		c.addToFront(cell)
	}
	return c
}

// Glyph returns the placement for r, rasterizing into a recycled cell on
// a miss. The second result is false when the face has no usable glyph
// for r.
func (c *GlyphCache) Glyph(r rune) (Glyph, bool) {
	if cell, ok := c.lookup[r]; ok {
		c.hits++
		c.moveToFront(cell)
		return cell.glyph, true
	}
	c.misses++

	gid, ok := c.face.Lookup(r)
	if !ok {
		return Glyph{}, false
	}
	bitmap, metrics, err := c.face.Rasterize(gid)
	if err != nil {
		Logger().Debug("dynamic glyph rasterization failed",
			slog.Int("char", int(r)),
			slog.Any("error", err))
		return Glyph{}, false
	}
	if metrics.Width > c.cellW || metrics.Height > c.cellH {
		// Oversized glyphs cannot fit a cell; refusing is safer than
		// clipping.
		Logger().Warn("glyph exceeds dynamic cell",
			slog.Int("char", int(r)),
			slog.Int("width", metrics.Width),
			slog.Int("height", metrics.Height))
		return Glyph{}, false
	}

	cell := c.tail
	if cell.char >= 0 {
		delete(c.lookup, cell.char)
	}

	c.stage(bitmap)
	if err := c.tex.Upload(cell.x, cell.y, c.cellW, c.cellH, c.scratch); err != nil {
		Logger().Warn("dynamic cell upload failed",
			slog.Int("char", int(r)),
			slog.Any("error", err))
	}

	cell.char = r
	cell.glyph = Glyph{
		Page:    cell.page,
		X:       cell.x,
		Y:       cell.y,
		Width:   metrics.Width,
		Height:  metrics.Height,
		OffsetX: metrics.BearingX,
		OffsetY: c.ascent - metrics.BearingY,
		Advance: metrics.Advance,
	}
	c.lookup[r] = cell
	c.moveToFront(cell)
	return cell.glyph, true
}

// stage clears the scratch buffer and copies the bitmap into its
// top-left corner, expanding monochrome rows to 8-bit coverage.
func (c *GlyphCache) stage(bitmap rasterizer.Bitmap) {
	clear(c.scratch)
	for y := 0; y < bitmap.Height && y < c.cellH; y++ {
		srcRow := bitmap.Pixels[y*bitmap.Stride:]
		dstRow := c.scratch[y*c.cellW:]
		if bitmap.Mono {
			for x := 0; x < bitmap.Width && x < c.cellW; x++ {
				if srcRow[x>>3]&(0x80>>(x&7)) != 0 {
					dstRow[x] = 0xFF
				}
			}
		} else {
			copy(dstRow[:min(bitmap.Width, c.cellW)], srcRow)
		}
	}
}

// Capacity returns the number of cells.
func (c *GlyphCache) Capacity() int {
	return len(c.cells)
}

// Len returns the number of resident code points.
func (c *GlyphCache) Len() int {
	return len(c.lookup)
}

// Stats returns hit and miss counts.
func (c *GlyphCache) Stats() (hits, misses uint64) {
	return c.hits, c.misses
}

// CellSize returns the uniform cell dimensions.
func (c *GlyphCache) CellSize() (w, h int) {
	return c.cellW, c.cellH
}

// addToFront adds a cell to the front of the LRU list.
func (c *GlyphCache) addToFront(cell *cacheCell) {
	cell.prev = nil
	cell.next = c.head

	if c.head != nil {
		c.head.prev = cell
	}
	c.head = cell

	if c.tail == nil {
		c.tail = cell
	}
}

// moveToFront moves a cell to the front of the LRU list.
func (c *GlyphCache) moveToFront(cell *cacheCell) {
	if cell == c.head {
		return
	}

	c.remove(cell)
	c.addToFront(cell)
}

// remove unlinks a cell from the LRU list.
func (c *GlyphCache) remove(cell *cacheCell) {
	if cell.prev != nil {
		cell.prev.next = cell.next
	} else {
		c.head = cell.next
	}

	if cell.next != nil {
		cell.next.prev = cell.prev
	} else {
		c.tail = cell.prev
	}

	cell.prev = nil
	cell.next = nil
}
