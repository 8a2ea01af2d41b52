// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fontatlas

import (
	"encoding/binary"
	"iter"

	"github.com/gogpu/fontatlas/rasterizer"
)

// fakeChar is one code point in a fakeFace's character map.
type fakeChar struct {
	char       rune
	gid        rasterizer.GlyphID
	w, h       int
	failRaster bool
}

// fakeEngine hands out fakeFaces for testing the face pipeline without a
// real font.
type fakeEngine struct {
	chars     []fakeChar
	ascent    int
	rowHeight int
	kern      []byte
	scale     float64

	// lastFace is the most recently opened face, for inspecting
	// rasterization counts and close state.
	lastFace *fakeFace

	openErr error
}

func (e *fakeEngine) OpenFace(data []byte, pointSize int) (rasterizer.Face, error) {
	if e.openErr != nil {
		return nil, e.openErr
	}
	scale := e.scale
	if scale == 0 {
		scale = 1
	}
	f := &fakeFace{
		chars:       e.chars,
		ascent:      e.ascent,
		rowHeight:   e.rowHeight,
		kern:        e.kern,
		scale:       scale,
		rasterCount: make(map[rune]int),
	}
	e.lastFace = f
	return f, nil
}

type fakeFace struct {
	chars       []fakeChar
	ascent      int
	rowHeight   int
	kern        []byte
	scale       float64
	rasterCount map[rune]int
	closed      bool
}

func (f *fakeFace) find(gid rasterizer.GlyphID) (fakeChar, bool) {
	for _, c := range f.chars {
		if c.gid == gid {
			return c, true
		}
	}
	return fakeChar{}, false
}

func (f *fakeFace) Chars() iter.Seq2[rune, rasterizer.GlyphID] {
	return func(yield func(rune, rasterizer.GlyphID) bool) {
		for _, c := range f.chars {
			if !yield(c.char, c.gid) {
				return
			}
		}
	}
}

func (f *fakeFace) Lookup(r rune) (rasterizer.GlyphID, bool) {
	for _, c := range f.chars {
		if c.char == r {
			return c.gid, true
		}
	}
	return 0, false
}

func (f *fakeFace) Metrics(gid rasterizer.GlyphID) (rasterizer.Metrics, error) {
	c, ok := f.find(gid)
	if !ok {
		return rasterizer.Metrics{}, rasterizer.ErrMissingGlyph
	}
	return rasterizer.Metrics{
		Width:    c.w,
		Height:   c.h,
		BearingX: 1,
		BearingY: c.h,
		Advance:  c.w + 2,
	}, nil
}

func (f *fakeFace) Rasterize(gid rasterizer.GlyphID) (rasterizer.Bitmap, rasterizer.Metrics, error) {
	c, ok := f.find(gid)
	if !ok {
		return rasterizer.Bitmap{}, rasterizer.Metrics{}, rasterizer.ErrMissingGlyph
	}
	f.rasterCount[c.char]++
	if c.failRaster {
		return rasterizer.Bitmap{}, rasterizer.Metrics{}, rasterizer.ErrNoOutline
	}
	pixels := make([]byte, c.w*c.h)
	for i := range pixels {
		pixels[i] = 0xFF
	}
	m, _ := f.Metrics(gid)
	return rasterizer.Bitmap{
		Pixels: pixels,
		Width:  c.w,
		Height: c.h,
		Stride: c.w,
	}, m, nil
}

func (f *fakeFace) Ascent() int    { return f.ascent }
func (f *fakeFace) RowHeight() int { return f.rowHeight }

func (f *fakeFace) HasKerning() bool { return len(f.kern) > 0 }

func (f *fakeFace) Table(tag string) ([]byte, error) {
	if tag == "kern" && len(f.kern) > 0 {
		return f.kern, nil
	}
	return nil, rasterizer.ErrNoTable
}

func (f *fakeFace) ScaleFactor() float64 { return f.scale }

func (f *fakeFace) Close() error {
	f.closed = true
	return nil
}

// kernPair is a raw kerning record for buildKernTable.
type kernPair struct {
	left, right uint16
	value       int16
}

// buildKernTable assembles a version-0 horizontal kerning table with one
// format-0 subtable: version, length, coverage, numPairs, then the pair
// records.
func buildKernTable(pairs []kernPair) []byte {
	var b []byte
	u16 := func(v uint16) {
		b = binary.BigEndian.AppendUint16(b, v)
	}
	u16(0) // version
	u16(1) // numTables

	length := 8 + 6*len(pairs)
	u16(0)              // subtable version
	u16(uint16(length)) // length
	u16(1)              // coverage: horizontal
	u16(uint16(len(pairs)))
	for _, p := range pairs {
		u16(p.left)
		u16(p.right)
		u16(uint16(p.value))
	}
	return b
}

// sfntMagic is valid TrueType header bytes for type sniffing.
var sfntMagic = []byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x00}

// smallChars is an ASCII-only character set that always reaches full
// coverage.
func smallChars() []fakeChar {
	return []fakeChar{
		{char: 'A', gid: 1, w: 10, h: 12},
		{char: 'B', gid: 2, w: 8, h: 12},
		{char: 'C', gid: 3, w: 9, h: 11},
		{char: ' ', gid: 4, w: 0, h: 0},
	}
}

// bigChars returns a character set whose glyphs exceed the sizing pass
// at point size 12 (1024x512 canvas max), forcing partial coverage.
// Eager runes 'A' to 'D' plus 0x7F; count extra code points from 0x80.
func bigChars(extra int) []fakeChar {
	chars := []fakeChar{
		{char: 'A', gid: 1, w: 200, h: 200},
		{char: 'B', gid: 2, w: 200, h: 200},
		{char: 'C', gid: 3, w: 200, h: 200},
		{char: 'D', gid: 4, w: 200, h: 200},
		{char: 0x7F, gid: 5, w: 200, h: 200},
	}
	for i := 0; i < extra; i++ {
		chars = append(chars, fakeChar{
			char: rune(0x80 + i),
			gid:  rasterizer.GlyphID(6 + i),
			w:    200,
			h:    200,
		})
	}
	return chars
}
