// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// GPUProvider creates textures on a GPU device through a
// gpucontext.TextureCreator (obtained from a gogpu draw context).
//
// GPU texture APIs want full RGBA uploads, so each GPUTexture keeps a CPU
// shadow buffer: sub-region patches are folded into the shadow and the
// whole image is re-uploaded. Atlas patches are rare (dynamic-cache misses
// only), so the simplicity wins over partial-upload plumbing.
type GPUProvider struct {
	creator gpucontext.TextureCreator
}

// NewGPUProvider wraps a gpucontext texture creator.
func NewGPUProvider(creator gpucontext.TextureCreator) *GPUProvider {
	return &GPUProvider{creator: creator}
}

// CreateTexture implements Provider.
func (p *GPUProvider) CreateTexture(width, height int, format gputypes.TextureFormat) (Texture, error) {
	if p.creator == nil {
		return nil, fmt.Errorf("%w: nil texture creator", ErrUnsupportedFormat)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	bpp := bytesPerPixel(format)
	if bpp == 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}

	shadow := make([]byte, width*height*4)
	tex, err := p.creator.NewTextureFromRGBA(width, height, shadow)
	if err != nil {
		return nil, fmt.Errorf("texture: gpu texture creation failed: %w", err)
	}

	return &GPUTexture{
		creator: p.creator,
		tex:     tex,
		shadow:  shadow,
		width:   width,
		height:  height,
		format:  format,
		bpp:     bpp,
	}, nil
}

// GPUTexture is a Texture living on a GPU device, mirrored by a CPU
// shadow buffer in RGBA order.
type GPUTexture struct {
	creator gpucontext.TextureCreator
	tex     gpucontext.Texture
	shadow  []byte
	width   int
	height  int
	format  gputypes.TextureFormat
	bpp     int
}

// textureDestroyer matches the gogpu texture Destroy signature.
type textureDestroyer interface {
	Destroy()
}

// Width implements Texture.
func (t *GPUTexture) Width() int { return t.width }

// Height implements Texture.
func (t *GPUTexture) Height() int { return t.height }

// Format implements Texture.
func (t *GPUTexture) Format() gputypes.TextureFormat { return t.format }

// Upload implements Texture. Single-channel coverage expands to white
// RGBA with the coverage in every channel, which premultiplied-alpha text
// pipelines consume directly.
func (t *GPUTexture) Upload(x, y, width, height int, pixels []byte) error {
	if err := checkRegion(t.width, t.height, x, y, width, height, t.bpp, len(pixels)); err != nil {
		return err
	}

	for row := 0; row < height; row++ {
		src := pixels[row*width*t.bpp:]
		dst := t.shadow[((y+row)*t.width+x)*4:]
		if t.bpp == 1 {
			for col := 0; col < width; col++ {
				v := src[col]
				dst[col*4+0] = v
				dst[col*4+1] = v
				dst[col*4+2] = v
				dst[col*4+3] = v
			}
		} else {
			copy(dst[:width*4], src[:width*4])
		}
	}

	return t.flush()
}

// flush pushes the shadow buffer to the device, preferring an in-place
// update and falling back to recreating the texture.
func (t *GPUTexture) flush() error {
	if updater, ok := t.tex.(gpucontext.TextureUpdater); ok {
		if err := updater.UpdateData(t.shadow); err != nil {
			return fmt.Errorf("texture: gpu update failed: %w", err)
		}
		return nil
	}

	fresh, err := t.creator.NewTextureFromRGBA(t.width, t.height, t.shadow)
	if err != nil {
		return fmt.Errorf("texture: gpu texture recreation failed: %w", err)
	}
	if destroyer, ok := t.tex.(textureDestroyer); ok {
		destroyer.Destroy()
	}
	t.tex = fresh
	return nil
}

// IsDataLost implements Texture. WebGPU-style backends surface loss as a
// whole-device event handled by the embedding application, which recreates
// its fonts; individual textures never report loss here.
func (t *GPUTexture) IsDataLost() bool { return false }

// GPU returns the underlying device texture for drawing, suitable for
// gpucontext.TextureDrawer.DrawTexture.
func (t *GPUTexture) GPU() gpucontext.Texture { return t.tex }
