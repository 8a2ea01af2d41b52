// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fontatlas

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/fontatlas/texture"
)

// BitmapDescriptor is a pre-parsed bitmap font: page images plus glyph
// and kerning records referencing them. Descriptor file parsing happens
// outside this package; the descriptor carries only resolved data.
type BitmapDescriptor struct {
	// PointSize is the size the pages were rendered at.
	PointSize int

	// RowHeight is the vertical advance between baselines in pixels.
	RowHeight int

	// Ascent is the baseline distance from the row top. When zero,
	// RowHeight is used.
	Ascent int

	Pages    []BitmapPage
	Glyphs   []BitmapGlyph
	Kernings []BitmapKerning
}

// BitmapPage is one pre-rasterized page image in RGBA order, Width*Height*4
// bytes of tightly packed rows.
type BitmapPage struct {
	Width, Height int
	Pixels        []byte
}

// BitmapGlyph is one glyph rectangle on a page.
type BitmapGlyph struct {
	Char             rune
	Page             int
	X, Y             int
	Width, Height    int
	OffsetX, OffsetY int
	Advance          int
}

// BitmapKerning is one horizontal pair adjustment in pixels.
type BitmapKerning struct {
	Left, Right rune
	Amount      int
}

// NewBitmapFace builds a face from a bitmap descriptor. Pages are
// uploaded whole; glyph rectangles are validated against their page.
// Zero kerning amounts are dropped.
func NewBitmapFace(desc *BitmapDescriptor, provider texture.Provider) (*FontFace, error) {
	if desc == nil {
		return nil, ErrNoDescriptor
	}
	if provider == nil {
		return nil, ErrNoTextureProvider
	}
	if len(desc.Pages) == 0 {
		return nil, fmt.Errorf("%w: no pages", ErrBadDescriptor)
	}

	ascent := desc.Ascent
	if ascent == 0 {
		ascent = desc.RowHeight
	}
	face := &FontFace{
		pointSize: desc.PointSize,
		rowHeight: desc.RowHeight,
		ascent:    ascent,
		glyphs:    make(map[rune]Glyph, len(desc.Glyphs)),
		textures:  make([]texture.Texture, 0, len(desc.Pages)),
	}

	for i, page := range desc.Pages {
		if page.Width <= 0 || page.Height <= 0 {
			return nil, fmt.Errorf("%w: page %d has size %dx%d",
				ErrBadDescriptor, i, page.Width, page.Height)
		}
		if len(page.Pixels) < page.Width*page.Height*4 {
			return nil, fmt.Errorf("%w: page %d pixel data too short",
				ErrBadDescriptor, i)
		}
		tex, err := provider.CreateTexture(page.Width, page.Height, texture.FormatRGBA)
		if err != nil {
			return nil, err
		}
		if err := tex.Upload(0, 0, page.Width, page.Height, page.Pixels); err != nil {
			return nil, err
		}
		face.textures = append(face.textures, tex)
	}

	for _, g := range desc.Glyphs {
		if g.Page < 0 || g.Page >= len(desc.Pages) {
			return nil, fmt.Errorf("%w: glyph %#x references page %d of %d",
				ErrBadDescriptor, g.Char, g.Page, len(desc.Pages))
		}
		p := desc.Pages[g.Page]
		if g.X < 0 || g.Y < 0 || g.Width < 0 || g.Height < 0 ||
			g.X+g.Width > p.Width || g.Y+g.Height > p.Height {
			return nil, fmt.Errorf("%w: glyph %#x rectangle outside page %d",
				ErrBadDescriptor, g.Char, g.Page)
		}
		face.glyphs[g.Char] = Glyph{
			Page:    g.Page,
			X:       g.X,
			Y:       g.Y,
			Width:   g.Width,
			Height:  g.Height,
			OffsetX: g.OffsetX,
			OffsetY: g.OffsetY,
			Advance: g.Advance,
		}
	}

	if len(desc.Kernings) > 0 {
		face.kerning = make(map[kernKey]int, len(desc.Kernings))
		for _, k := range desc.Kernings {
			if k.Amount == 0 {
				continue
			}
			face.kerning[kernKey{k.Left, k.Right}] = k.Amount
		}
	}

	Logger().Debug("bitmap face built",
		slog.Int("pages", len(face.textures)),
		slog.Int("glyphs", len(face.glyphs)),
		slog.Int("kernPairs", len(face.kerning)))
	return face, nil
}
