// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// MemoryProvider creates textures backed by system memory. It serves
// software renderers and tests; a software backing store never loses its
// contents on its own, but tests can force loss with MarkDataLost.
type MemoryProvider struct{}

// NewMemoryProvider creates a memory-backed texture provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{}
}

// CreateTexture implements Provider.
func (p *MemoryProvider) CreateTexture(width, height int, format gputypes.TextureFormat) (Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	bpp := bytesPerPixel(format)
	if bpp == 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	return &MemoryTexture{
		width:  width,
		height: height,
		format: format,
		bpp:    bpp,
		pixels: make([]byte, width*height*bpp),
	}, nil
}

// MemoryTexture is a Texture held in a plain byte slice.
type MemoryTexture struct {
	width    int
	height   int
	format   gputypes.TextureFormat
	bpp      int
	pixels   []byte
	dataLost bool
}

// Width implements Texture.
func (t *MemoryTexture) Width() int { return t.width }

// Height implements Texture.
func (t *MemoryTexture) Height() int { return t.height }

// Format implements Texture.
func (t *MemoryTexture) Format() gputypes.TextureFormat { return t.format }

// Upload implements Texture.
func (t *MemoryTexture) Upload(x, y, width, height int, pixels []byte) error {
	if err := checkRegion(t.width, t.height, x, y, width, height, t.bpp, len(pixels)); err != nil {
		return err
	}
	rowLen := width * t.bpp
	for row := 0; row < height; row++ {
		dst := t.pixels[((y+row)*t.width+x)*t.bpp:]
		copy(dst[:rowLen], pixels[row*rowLen:(row+1)*rowLen])
	}
	return nil
}

// IsDataLost implements Texture.
func (t *MemoryTexture) IsDataLost() bool { return t.dataLost }

// MarkDataLost simulates a device reset: the contents are considered gone
// and the owning face is expected to rebuild.
func (t *MemoryTexture) MarkDataLost() {
	t.dataLost = true
	clear(t.pixels)
}

// Pixels returns the backing buffer, rows of width*bytesPerPixel bytes.
// Software renderers sample glyph coverage directly from it.
func (t *MemoryTexture) Pixels() []byte { return t.pixels }
