// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fontatlas

import (
	"errors"
	"log/slog"

	"github.com/gogpu/fontatlas/atlas"
	"github.com/gogpu/fontatlas/rasterizer"
	"github.com/gogpu/fontatlas/texture"
)

// charEntry pairs a code point with its glyph index and trial placement.
type charEntry struct {
	char rune
	gid  rasterizer.GlyphID
	x, y int
}

// maxCanvasForPointSize returns the canvas ceiling for a face. Small
// point sizes cap the canvas well below the hardware maximum; their
// glyphs could never fill it.
func maxCanvasForPointSize(pointSize int) (maxW, maxH int) {
	maxW, maxH = maxCanvasSize, maxCanvasSize
	if pointSize < 16 {
		maxW /= 2
	}
	if pointSize < 11 {
		maxW /= 2
	}
	if pointSize < 32 {
		maxH /= 2
	}
	if pointSize < 22 {
		maxH /= 2
	}
	if maxW < minCanvasSize {
		maxW = minCanvasSize
	}
	if maxH < minCanvasSize {
		maxH = minCanvasSize
	}
	return maxW, maxH
}

// newOutlineFace builds a size-specific face from outline font data.
// pointSize has already been validated and clamped by the owning Font.
//
// The builder runs a sizing pass over every mapped code point with
// one-pixel-padded trial allocations. When everything fits, the face
// gets full coverage at the trial's final canvas size. Otherwise only
// the low code points are placed eagerly, in uniform cells sized to the
// largest glyph, and the remaining canvas becomes dynamic cache cells.
func newOutlineFace(font *Font, pointSize int) (*FontFace, error) {
	eface, err := font.engine.OpenFace(font.data, pointSize)
	if err != nil {
		return nil, err
	}
	closeEngineFace := true
	defer func() {
		if closeEngineFace {
			eface.Close()
		}
	}()

	maxW, maxH := maxCanvasForPointSize(pointSize)

	// Sizing pass. Trial placements double as final placements for
	// full-coverage faces.
	trial := atlas.NewAreaAllocator(minCanvasSize, minCanvasSize, maxW, maxH)
	var (
		chars        []charEntry
		maxGlyphW    int
		maxGlyphH    int
		fullCoverage = true
	)
	for char, gid := range eface.Chars() {
		m, err := eface.Metrics(gid)
		if err != nil {
			// Unreadable glyphs get a placeholder later; they take no
			// atlas space.
			chars = append(chars, charEntry{char: char, gid: gid, x: -1, y: -1})
			continue
		}
		if m.Width > maxGlyphW {
			maxGlyphW = m.Width
		}
		if m.Height > maxGlyphH {
			maxGlyphH = m.Height
		}
		x, y, ok := trial.Allocate(m.Width+1, m.Height+1)
		if !ok {
			fullCoverage = false
			// Keep scanning for the true glyph maxima; partial mode
			// sizes its cells from them.
			continue
		}
		chars = append(chars, charEntry{char: char, gid: gid, x: x, y: y})
	}

	ascent := eface.Ascent()
	face := &FontFace{
		pointSize: pointSize,
		rowHeight: eface.RowHeight(),
		ascent:    ascent,
		glyphs:    make(map[rune]Glyph, len(chars)),
	}

	var (
		page        *atlas.Page
		glyphToChar = make(map[rasterizer.GlyphID]rune, len(chars))
		dynamicPos  [][2]int
		cellW       int
		cellH       int
	)

	if fullCoverage {
		page = atlas.NewPage(trial.Width(), trial.Height())
		for _, c := range chars {
			glyphToChar[c.gid] = c.char
			face.placeGlyph(page, eface, c, ascent)
		}
	} else {
		cellW, cellH = maxGlyphW+1, maxGlyphH+1
		live := atlas.NewFixedAreaAllocator(maxW, maxH)
		page = atlas.NewPage(maxW, maxH)

		for char, gid := range eface.Chars() {
			glyphToChar[gid] = char
			if char > maxStaticRune {
				continue
			}
			x, y, ok := live.Allocate(cellW, cellH)
			if !ok {
				return nil, ErrAtlasFull
			}
			face.placeGlyph(page, eface, charEntry{char: char, gid: gid, x: x, y: y}, ascent)
		}

		// Everything left becomes dynamic cells.
		for {
			x, y, ok := live.Allocate(cellW, cellH)
			if !ok {
				break
			}
			dynamicPos = append(dynamicPos, [2]int{x, y})
		}
		if len(dynamicPos) == 0 {
			return nil, ErrAtlasFull
		}
	}

	if eface.HasKerning() {
		kernData, err := eface.Table("kern")
		if err == nil && len(kernData) > 0 {
			pairs, err := parseKerningTable(kernData, glyphToChar, eface.ScaleFactor())
			if err != nil {
				return nil, err
			}
			face.kerning = pairs
		}
	}

	tex, err := font.provider.CreateTexture(page.Width(), page.Height(), texture.FormatAlpha)
	if err != nil {
		return nil, err
	}
	if err := tex.Upload(0, 0, page.Width(), page.Height(), page.Pixels()); err != nil {
		return nil, err
	}
	face.textures = []texture.Texture{tex}

	if !fullCoverage {
		face.dynamic = newGlyphCache(eface, tex, 0, dynamicPos, cellW, cellH, ascent)
		face.engineFace = eface
		closeEngineFace = false
	}

	Logger().Debug("font face built",
		slog.Int("pointSize", pointSize),
		slog.Int("glyphs", len(face.glyphs)),
		slog.Int("kernPairs", len(face.kerning)),
		slog.Bool("fullCoverage", fullCoverage),
		slog.Int("dynamicCells", len(dynamicPos)),
		slog.Int("canvasWidth", page.Width()),
		slog.Int("canvasHeight", page.Height()))
	return face, nil
}

// placeGlyph rasterizes one glyph and records its placement. Glyphs that
// fail to rasterize, and glyphs without a trial position, become
// zero-geometry placeholders that keep their pen advance.
func (f *FontFace) placeGlyph(page *atlas.Page, eface rasterizer.Face, c charEntry, ascent int) {
	bitmap, m, err := eface.Rasterize(c.gid)
	if err != nil || c.x < 0 {
		if err != nil && !errors.Is(err, rasterizer.ErrNoOutline) {
			Logger().Debug("glyph rasterization failed",
				slog.Int("char", int(c.char)),
				slog.Any("error", err))
		}
		advance := m.Advance
		if err != nil {
			if fallback, merr := eface.Metrics(c.gid); merr == nil {
				advance = fallback.Advance
			}
		}
		f.glyphs[c.char] = Glyph{Advance: advance}
		return
	}

	if bitmap.Mono {
		page.BlitMono(c.x, c.y, bitmap.Width, bitmap.Height, bitmap.Pixels, bitmap.Stride)
	} else {
		page.Blit(c.x, c.y, bitmap.Width, bitmap.Height, bitmap.Pixels, bitmap.Stride)
	}
	f.glyphs[c.char] = Glyph{
		Page:    0,
		X:       c.x,
		Y:       c.y,
		Width:   m.Width,
		Height:  m.Height,
		OffsetX: m.BearingX,
		OffsetY: ascent - m.BearingY,
		Advance: m.Advance,
	}
}
