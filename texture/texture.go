// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// Sentinel errors for the texture package.
var (
	// ErrInvalidSize is returned for non-positive texture dimensions.
	ErrInvalidSize = errors.New("texture: invalid texture size")

	// ErrUnsupportedFormat is returned for formats the sink cannot hold.
	ErrUnsupportedFormat = errors.New("texture: unsupported format")

	// ErrRegionOutOfBounds is returned when an upload region does not lie
	// within the texture.
	ErrRegionOutOfBounds = errors.New("texture: upload region out of bounds")

	// ErrShortPixelData is returned when an upload's pixel buffer is
	// smaller than the region requires.
	ErrShortPixelData = errors.New("texture: pixel data shorter than region")
)

// Formats used by the atlas pipeline.
const (
	// FormatAlpha is the single-channel coverage format of glyph atlases.
	FormatAlpha = gputypes.TextureFormatR8Unorm

	// FormatRGBA is the format of pre-rasterized bitmap-font pages.
	FormatRGBA = gputypes.TextureFormatRGBA8Unorm
)

// Texture is one atlas page's backing store.
type Texture interface {
	// Width returns the texture width in pixels.
	Width() int

	// Height returns the texture height in pixels.
	Height() int

	// Format returns the pixel format the texture was created with.
	Format() gputypes.TextureFormat

	// Upload replaces the width×height region at (x, y) with pixels,
	// tightly packed rows of width*bytesPerPixel bytes.
	Upload(x, y, width, height int, pixels []byte) error

	// IsDataLost reports whether the backing contents were lost (device
	// reset) and the texture must be repopulated from scratch.
	IsDataLost() bool
}

// Provider creates atlas textures. Implementations decide where pixels
// actually live: system memory, a GPU device, a test double.
type Provider interface {
	CreateTexture(width, height int, format gputypes.TextureFormat) (Texture, error)
}

// bytesPerPixel returns the pixel stride of the formats the atlas pipeline
// uses, or 0 for unsupported formats.
func bytesPerPixel(format gputypes.TextureFormat) int {
	switch format {
	case gputypes.TextureFormatR8Unorm:
		return 1
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
		return 4
	default:
		return 0
	}
}

// checkRegion validates an upload region against a texture size.
func checkRegion(texW, texH, x, y, w, h, bpp, pixelLen int) error {
	if w < 0 || h < 0 || x < 0 || y < 0 || x+w > texW || y+h > texH {
		return fmt.Errorf("%w: (%d,%d %dx%d) in %dx%d",
			ErrRegionOutOfBounds, x, y, w, h, texW, texH)
	}
	if pixelLen < w*h*bpp {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrShortPixelData, pixelLen, w*h*bpp)
	}
	return nil
}
