// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fontatlas

import (
	"errors"
	"testing"

	"github.com/gogpu/fontatlas/texture"
)

func newTestFont(t *testing.T, engine *fakeEngine) *Font {
	t.Helper()
	font, err := NewFont(sfntMagic, WithEngine(engine))
	if err != nil {
		t.Fatalf("NewFont: %v", err)
	}
	return font
}

func TestFontFace_FullCoverage(t *testing.T) {
	engine := &fakeEngine{chars: smallChars(), ascent: 20, rowHeight: 24}
	font := newTestFont(t, engine)

	face, err := font.Face(16)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	if face.Dynamic() != nil {
		t.Error("small character set should reach full coverage")
	}
	if face.PageCount() != 1 {
		t.Fatalf("PageCount = %d, want 1", face.PageCount())
	}
	if face.RowHeight() != 24 || face.Ascent() != 20 {
		t.Errorf("RowHeight, Ascent = %d, %d, want 24, 20", face.RowHeight(), face.Ascent())
	}

	g, ok := face.Glyph('A')
	if !ok {
		t.Fatal("Glyph('A') not found")
	}
	if g.Width != 10 || g.Height != 12 {
		t.Errorf("glyph size = %dx%d, want 10x12", g.Width, g.Height)
	}
	if g.Advance != 12 {
		t.Errorf("Advance = %d, want 12", g.Advance)
	}
	if g.OffsetX != 1 {
		t.Errorf("OffsetX = %d, want 1", g.OffsetX)
	}
	// OffsetY is ascent minus the top bearing.
	if g.OffsetY != 20-12 {
		t.Errorf("OffsetY = %d, want %d", g.OffsetY, 20-12)
	}

	// The sizing canvas never needed to grow past its initial size.
	page := face.Page(0)
	if page.Width() != 128 || page.Height() != 128 {
		t.Errorf("page size = %dx%d, want 128x128", page.Width(), page.Height())
	}

	// Atlas pixels were uploaded: the 'A' rectangle must be opaque.
	mem := page.(*texture.MemoryTexture)
	pix := mem.Pixels()
	for y := g.Y; y < g.Y+g.Height; y++ {
		for x := g.X; x < g.X+g.Width; x++ {
			if pix[y*page.Width()+x] != 0xFF {
				t.Fatalf("pixel (%d,%d) = %#x, want 0xFF", x, y, pix[y*page.Width()+x])
			}
		}
	}

	if engine.lastFace == nil || !engine.lastFace.closed {
		t.Error("full-coverage face should close its rasterizer face")
	}
}

func TestFontFace_NoGlyphOverlap(t *testing.T) {
	engine := &fakeEngine{chars: smallChars(), ascent: 20, rowHeight: 24}
	font := newTestFont(t, engine)

	face, err := font.Face(16)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	type rect struct{ x, y, w, h int }
	var rects []rect
	for _, c := range smallChars() {
		g, ok := face.Glyph(c.char)
		if !ok {
			t.Fatalf("Glyph(%q) missing", c.char)
		}
		if g.Width == 0 || g.Height == 0 {
			continue
		}
		rects = append(rects, rect{g.X, g.Y, g.Width, g.Height})
	}
	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			a, b := rects[i], rects[j]
			if a.x < b.x+b.w && b.x < a.x+a.w && a.y < b.y+b.h && b.y < a.y+a.h {
				t.Errorf("glyphs %d and %d overlap: %+v vs %+v", i, j, a, b)
			}
		}
	}
}

func TestFontFace_PartialCoverage(t *testing.T) {
	engine := &fakeEngine{chars: bigChars(8), ascent: 180, rowHeight: 220}
	font := newTestFont(t, engine)

	face, err := font.Face(12)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	cache := face.Dynamic()
	if cache == nil {
		t.Fatal("oversized character set should get a dynamic cache")
	}

	// Point size 12 caps the canvas at 1024x512; 201-pixel cells tile
	// 5x2. Five eager glyphs leave five dynamic cells.
	if got := face.PageCount(); got != 1 {
		t.Fatalf("PageCount = %d, want 1", got)
	}
	if w, h := face.Page(0).Width(), face.Page(0).Height(); w != 1024 || h != 512 {
		t.Errorf("page size = %dx%d, want 1024x512", w, h)
	}
	if cache.Capacity() != 5 {
		t.Errorf("dynamic capacity = %d, want 5", cache.Capacity())
	}
	if w, h := cache.CellSize(); w != 201 || h != 201 {
		t.Errorf("cell size = %dx%d, want 201x201", w, h)
	}

	if engine.lastFace.closed {
		t.Error("partial-coverage face must keep its rasterizer face open")
	}
}

func TestFontFace_StaticDynamicBoundary(t *testing.T) {
	engine := &fakeEngine{chars: bigChars(8), ascent: 180, rowHeight: 220}
	font := newTestFont(t, engine)

	face, err := font.Face(12)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}

	// 0x7F is the last eagerly placed code point.
	if _, ok := face.Glyph(0x7F); !ok {
		t.Fatal("Glyph(0x7F) should be eagerly placed")
	}
	if n := engine.lastFace.rasterCount[0x80]; n != 0 {
		t.Fatalf("0x80 rasterized %d times before first request", n)
	}

	// 0x80 is the first dynamic code point.
	g, ok := face.Glyph(0x80)
	if !ok {
		t.Fatal("Glyph(0x80) should be served dynamically")
	}
	if g.Width != 200 || g.Height != 200 {
		t.Errorf("dynamic glyph size = %dx%d, want 200x200", g.Width, g.Height)
	}
	if n := engine.lastFace.rasterCount[0x80]; n != 1 {
		t.Errorf("0x80 rasterized %d times, want 1", n)
	}
}

func TestFontFace_ZeroGeometryPlaceholder(t *testing.T) {
	chars := smallChars()
	chars = append(chars, fakeChar{char: 'X', gid: 9, w: 7, h: 9, failRaster: true})
	engine := &fakeEngine{chars: chars, ascent: 20, rowHeight: 24}
	font := newTestFont(t, engine)

	face, err := font.Face(16)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	g, ok := face.Glyph('X')
	if !ok {
		t.Fatal("failing glyph should still get a placeholder entry")
	}
	if g.Width != 0 || g.Height != 0 {
		t.Errorf("placeholder size = %dx%d, want 0x0", g.Width, g.Height)
	}
	if g.Advance != 9 {
		t.Errorf("placeholder Advance = %d, want 9", g.Advance)
	}
}

func TestFontFace_KerningFromTable(t *testing.T) {
	engine := &fakeEngine{
		chars:     smallChars(),
		ascent:    20,
		rowHeight: 24,
		kern:      buildKernTable([]kernPair{{left: 1, right: 2, value: 5}}),
	}
	font := newTestFont(t, engine)

	face, err := font.Face(16)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	if !face.HasKerning() {
		t.Fatal("face should carry kerning pairs")
	}
	if got := face.Kerning('A', 'B'); got != 5 {
		t.Errorf("Kerning(A, B) = %d, want 5", got)
	}
	if got := face.Kerning('B', 'A'); got != 0 {
		t.Errorf("Kerning(B, A) = %d, want 0", got)
	}
	if got := face.Kerning('A', '\n'); got != 0 {
		t.Errorf("Kerning(A, newline) = %d, want 0", got)
	}
	if got := face.Kerning('\n', 'B'); got != 0 {
		t.Errorf("Kerning(newline, B) = %d, want 0", got)
	}
}

func TestFontFace_MalformedKerningAbortsFace(t *testing.T) {
	table := buildKernTable([]kernPair{{left: 1, right: 2, value: 5}})
	table[1] = 9 // header version
	engine := &fakeEngine{chars: smallChars(), ascent: 20, rowHeight: 24, kern: table}
	font := newTestFont(t, engine)

	_, err := font.Face(16)
	if err == nil {
		t.Fatal("malformed kerning table should abort face construction")
	}
	var kerr *KernFormatError
	if !errors.As(err, &kerr) {
		t.Fatalf("error = %v, want KernFormatError", err)
	}
	if kerr.Field != "version" {
		t.Errorf("Field = %q, want version", kerr.Field)
	}
}
