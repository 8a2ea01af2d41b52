// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rasterizer

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"iter"
	"math"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/vector"
)

// fontDPI is the device resolution assumed when converting point sizes to
// pixels per em.
const fontDPI = 96

// GoTextEngine is the default Engine, built on go-text/typesetting for
// font parsing and golang.org/x/image/vector for coverage rasterization.
// It is pure Go and needs no native font library.
type GoTextEngine struct{}

// NewEngine creates the default font engine.
func NewEngine() *GoTextEngine {
	return &GoTextEngine{}
}

// OpenFace implements Engine.
func (e *GoTextEngine) OpenFace(data []byte, pointSize int) (Face, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	if pointSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPointSize, pointSize)
	}

	parsed, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("rasterizer: parse font: %w", err)
	}

	// A second view of the same bytes for raw table access; the educated
	// font.Font does not expose tables it has already digested.
	ld, err := ot.NewLoader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("rasterizer: open font tables: %w", err)
	}

	ppem := float64(pointSize) * fontDPI / 72
	upem := float64(parsed.Upem())
	if upem <= 0 {
		upem = 1000
	}
	scale := ppem / upem

	f := &goTextFace{
		face:  parsed,
		ppem:  ppem,
		scale: scale,
	}

	if ext, ok := parsed.FontHExtents(); ok {
		f.ascent = int(math.Round(float64(ext.Ascender) * scale))
		f.rowHeight = int(math.Round(float64(ext.Ascender-ext.Descender+ext.LineGap) * scale))
	} else {
		// No usable hhea/OS2 metrics; approximate from the em square.
		f.ascent = int(math.Round(ppem * 0.8))
		f.rowHeight = int(math.Round(ppem * 1.2))
	}

	if kern, err := ld.RawTable(ot.NewTag('k', 'e', 'r', 'n')); err == nil && len(kern) > 0 {
		f.kern = kern
	}
	f.loader = ld

	return f, nil
}

// goTextFace implements Face on top of a typesetting font.Face.
type goTextFace struct {
	face   *font.Face
	loader *ot.Loader
	kern   []byte

	ppem      float64
	scale     float64
	ascent    int
	rowHeight int

	ras vector.Rasterizer
}

// Chars implements Face by walking the font's cmap.
func (f *goTextFace) Chars() iter.Seq2[rune, GlyphID] {
	return func(yield func(rune, GlyphID) bool) {
		it := f.face.Cmap.Iter()
		for it.Next() {
			r, gid := it.Char()
			if !yield(r, GlyphID(gid)) {
				return
			}
		}
	}
}

// Lookup implements Face.
func (f *goTextFace) Lookup(r rune) (GlyphID, bool) {
	gid, ok := f.face.Cmap.Lookup(r)
	return GlyphID(gid), ok
}

// Metrics implements Face using the glyph's extents, without rendering.
func (f *goTextFace) Metrics(gid GlyphID) (Metrics, error) {
	ext, ok := f.face.GlyphExtents(font.GID(gid))
	if !ok {
		return Metrics{}, fmt.Errorf("%w: glyph %d", ErrMissingGlyph, gid)
	}

	// Font space is y-up; extents report the top-left bearing corner with
	// a negative height running down.
	minX := float64(ext.XBearing) * f.scale
	maxX := float64(ext.XBearing+ext.Width) * f.scale
	minY := -float64(ext.YBearing) * f.scale
	maxY := -float64(ext.YBearing+ext.Height) * f.scale

	m := Metrics{
		Width:    int(math.Ceil(maxX)) - int(math.Floor(minX)),
		Height:   int(math.Ceil(maxY)) - int(math.Floor(minY)),
		BearingX: int(math.Floor(minX)),
		BearingY: -int(math.Floor(minY)),
		Advance:  f.advance(gid),
	}
	if ext.Width == 0 || ext.Height == 0 {
		m.Width, m.Height = 0, 0
	}
	return m, nil
}

// Rasterize implements Face. The returned metrics are derived from the
// rendered mask so they always describe the bitmap exactly.
func (f *goTextFace) Rasterize(gid GlyphID) (Bitmap, Metrics, error) {
	data := f.face.GlyphData(font.GID(gid))
	outline, ok := data.(font.GlyphOutline)
	if !ok {
		return Bitmap{}, Metrics{}, fmt.Errorf("%w: glyph %d", ErrNoOutline, gid)
	}

	minX, minY, maxX, maxY, any := f.outlineBounds(outline)
	if !any || maxX <= minX || maxY <= minY {
		// Blank glyph (space): no coverage, advance only.
		return Bitmap{}, Metrics{Advance: f.advance(gid)}, nil
	}

	x0 := math.Floor(minX)
	y0 := math.Floor(minY)
	w := int(math.Ceil(maxX)) - int(x0)
	h := int(math.Ceil(maxY)) - int(y0)

	f.ras.Reset(w, h)
	f.ras.DrawOp = draw.Src
	f.fillOutline(outline, x0, y0)

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	f.ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	bm := Bitmap{
		Pixels: mask.Pix,
		Width:  w,
		Height: h,
		Stride: mask.Stride,
	}
	m := Metrics{
		Width:    w,
		Height:   h,
		BearingX: int(x0),
		BearingY: -int(y0),
		Advance:  f.advance(gid),
	}
	return bm, m, nil
}

// outlineBounds computes the pixel-space bounding box of an outline's
// control polygon, which contains the curve itself.
func (f *goTextFace) outlineBounds(outline font.GlyphOutline) (minX, minY, maxX, maxY float64, any bool) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, seg := range outline.Segments {
		for _, p := range segPoints(seg) {
			x := float64(p.X) * f.scale
			y := -float64(p.Y) * f.scale
			minX = math.Min(minX, x)
			minY = math.Min(minY, y)
			maxX = math.Max(maxX, x)
			maxY = math.Max(maxY, y)
			any = true
		}
	}
	return minX, minY, maxX, maxY, any
}

// fillOutline feeds the outline to the rasterizer, translated by (-x0, -y0)
// into the positive quadrant the vector rasterizer expects.
func (f *goTextFace) fillOutline(outline font.GlyphOutline, x0, y0 float64) {
	started := false
	at := func(p font.SegmentPoint) (float32, float32) {
		return float32(float64(p.X)*f.scale - x0), float32(-float64(p.Y)*f.scale - y0)
	}
	for _, seg := range outline.Segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			if started {
				f.ras.ClosePath()
			}
			x, y := at(seg.Args[0])
			f.ras.MoveTo(x, y)
			started = true
		case ot.SegmentOpLineTo:
			x, y := at(seg.Args[0])
			f.ras.LineTo(x, y)
		case ot.SegmentOpQuadTo:
			cx, cy := at(seg.Args[0])
			x, y := at(seg.Args[1])
			f.ras.QuadTo(cx, cy, x, y)
		case ot.SegmentOpCubeTo:
			c1x, c1y := at(seg.Args[0])
			c2x, c2y := at(seg.Args[1])
			x, y := at(seg.Args[2])
			f.ras.CubeTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	if started {
		f.ras.ClosePath()
	}
}

// segPoints returns the segment's used argument points.
func segPoints(seg font.Segment) []font.SegmentPoint {
	switch seg.Op {
	case ot.SegmentOpMoveTo, ot.SegmentOpLineTo:
		return seg.Args[:1]
	case ot.SegmentOpQuadTo:
		return seg.Args[:2]
	default:
		return seg.Args[:]
	}
}

func (f *goTextFace) advance(gid GlyphID) int {
	return int(math.Round(float64(f.face.HorizontalAdvance(font.GID(gid))) * f.scale))
}

// Ascent implements Face.
func (f *goTextFace) Ascent() int { return f.ascent }

// RowHeight implements Face.
func (f *goTextFace) RowHeight() int { return f.rowHeight }

// HasKerning implements Face.
func (f *goTextFace) HasKerning() bool { return f.kern != nil }

// Table implements Face.
func (f *goTextFace) Table(tag string) ([]byte, error) {
	if len(tag) != 4 {
		return nil, fmt.Errorf("%w: bad tag %q", ErrNoTable, tag)
	}
	if tag == "kern" {
		if f.kern == nil {
			return nil, fmt.Errorf("%w: %q", ErrNoTable, tag)
		}
		return f.kern, nil
	}
	data, err := f.loader.RawTable(ot.NewTag(tag[0], tag[1], tag[2], tag[3]))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNoTable, tag)
	}
	return data, nil
}

// ScaleFactor implements Face.
func (f *goTextFace) ScaleFactor() float64 { return f.scale }

// Close implements Face. The backend holds no native resources.
func (f *goTextFace) Close() error {
	f.loader = nil
	f.kern = nil
	return nil
}
