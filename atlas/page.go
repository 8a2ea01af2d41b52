// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package atlas

// Page is a single atlas canvas: a tightly packed 8-bit coverage buffer.
// A zero byte is fully transparent, 0xFF fully covered.
type Page struct {
	width  int
	height int
	pixels []byte
}

// NewPage creates a cleared width×height page.
func NewPage(width, height int) *Page {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Page{
		width:  width,
		height: height,
		pixels: make([]byte, width*height),
	}
}

// Width returns the page width in pixels.
func (p *Page) Width() int { return p.width }

// Height returns the page height in pixels.
func (p *Page) Height() int { return p.height }

// Pixels returns the backing buffer, one byte per pixel in row-major order.
func (p *Page) Pixels() []byte { return p.pixels }

// Blit copies an 8-bit coverage bitmap into the page at (x, y).
// src holds height rows of width bytes each, stride bytes apart.
// The copy is clipped to the page bounds.
func (p *Page) Blit(x, y, width, height int, src []byte, stride int) {
	if stride <= 0 {
		stride = width
	}
	for row := 0; row < height; row++ {
		dy := y + row
		if dy < 0 || dy >= p.height {
			continue
		}
		srcRow := src[row*stride:]
		dstRow := p.pixels[dy*p.width:]
		for col := 0; col < width; col++ {
			dx := x + col
			if dx < 0 || dx >= p.width || col >= len(srcRow) {
				continue
			}
			dstRow[dx] = srcRow[col]
		}
	}
}

// BlitMono copies a 1-bit bitmap into the page at (x, y), expanding set
// bits to 0xFF and clear bits to 0x00. src holds height rows of stride
// bytes each, most significant bit first within each byte.
func (p *Page) BlitMono(x, y, width, height int, src []byte, stride int) {
	if stride <= 0 {
		stride = (width + 7) / 8
	}
	for row := 0; row < height; row++ {
		dy := y + row
		if dy < 0 || dy >= p.height {
			continue
		}
		srcRow := src[row*stride:]
		dstRow := p.pixels[dy*p.width:]
		for col := 0; col < width; col++ {
			dx := x + col
			if dx < 0 || dx >= p.width || col/8 >= len(srcRow) {
				continue
			}
			if srcRow[col/8]&(0x80>>(col&7)) != 0 {
				dstRow[dx] = 0xFF
			} else {
				dstRow[dx] = 0x00
			}
		}
	}
}
