// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fontatlas

import (
	"bytes"
	"log/slog"

	"github.com/gogpu/fontatlas/rasterizer"
	"github.com/gogpu/fontatlas/texture"
)

// Type identifies what kind of font data a Font holds.
type Type int

const (
	// TypeUnknown means the data was not recognized.
	TypeUnknown Type = iota

	// TypeOutline is vector font data rendered through a rasterizer
	// engine (TrueType, OpenType).
	TypeOutline

	// TypeBitmap is a pre-rasterized font described by a
	// BitmapDescriptor.
	TypeBitmap
)

// String implements fmt.Stringer.
func (t Type) String() string {
	switch t {
	case TypeOutline:
		return "outline"
	case TypeBitmap:
		return "bitmap"
	default:
		return "unknown"
	}
}

// Option configures a Font.
type Option func(*Font)

// WithEngine sets the rasterizer engine for outline faces.
func WithEngine(engine rasterizer.Engine) Option {
	return func(f *Font) { f.engine = engine }
}

// WithTextureProvider sets the texture sink for atlas pages. Passing nil
// explicitly puts the Font in headless mode: it holds data but serves no
// faces.
func WithTextureProvider(provider texture.Provider) Option {
	return func(f *Font) {
		f.provider = provider
		f.providerSet = true
	}
}

// WithType overrides font type detection.
func WithType(t Type) Option {
	return func(f *Font) { f.fontType = t }
}

// WithBitmapDescriptor supplies pre-parsed bitmap font records and marks
// the Font as bitmap.
func WithBitmapDescriptor(desc *BitmapDescriptor) Option {
	return func(f *Font) {
		f.descriptor = desc
		f.fontType = TypeBitmap
	}
}

// Font owns font data for its whole lifetime and builds size-specific
// faces on demand. Faces are cached per clamped point size and rebuilt
// transparently after texture data loss.
//
// Font and its faces belong to a single goroutine.
type Font struct {
	data     []byte
	fontType Type

	engine      rasterizer.Engine
	provider    texture.Provider
	providerSet bool
	descriptor  *BitmapDescriptor

	faces map[int]*FontFace
}

// sfnt container magics.
var (
	sfntTrueType  = []byte{0x00, 0x01, 0x00, 0x00}
	sfntOpenType  = []byte("OTTO")
	sfntAppleTTF  = []byte("true")
	sfntTrueTypeC = []byte("ttcf")
)

// detectType sniffs the font container from its leading bytes.
func detectType(data []byte) Type {
	if len(data) < 4 {
		return TypeUnknown
	}
	head := data[:4]
	switch {
	case bytes.Equal(head, sfntTrueType),
		bytes.Equal(head, sfntOpenType),
		bytes.Equal(head, sfntAppleTTF),
		bytes.Equal(head, sfntTrueTypeC):
		return TypeOutline
	case head[0] == '<', bytes.Equal(head, []byte("info")):
		// Bitmap descriptor files start with an XML tag or an AngelCode
		// "info" line. The descriptor itself must still be parsed
		// externally and supplied via WithBitmapDescriptor.
		return TypeBitmap
	default:
		return TypeUnknown
	}
}

// NewFont creates a Font from raw data. The bytes are copied; the caller
// may reuse its buffer. Bitmap fonts may pass nil data together with
// WithBitmapDescriptor.
//
// Without options the Font uses the default go-text rasterizer engine
// and an in-memory texture provider.
func NewFont(data []byte, opts ...Option) (*Font, error) {
	f := &Font{
		faces: make(map[int]*FontFace),
	}
	for _, opt := range opts {
		opt(f)
	}

	if len(data) > 0 {
		f.data = make([]byte, len(data))
		copy(f.data, data)
	}

	if f.fontType == TypeUnknown {
		if len(f.data) == 0 {
			return nil, ErrEmptyFontData
		}
		f.fontType = detectType(f.data)
	}
	if f.fontType == TypeUnknown {
		return nil, ErrUnknownFontType
	}
	if f.fontType == TypeOutline && len(f.data) == 0 {
		return nil, ErrEmptyFontData
	}

	if f.engine == nil {
		f.engine = rasterizer.NewEngine()
	}
	if !f.providerSet {
		f.provider = texture.NewMemoryProvider()
	}
	return f, nil
}

// Type returns the font's detected or configured type.
func (f *Font) Type() Type { return f.fontType }

// Face returns the face for pointSize, building it on first use.
// Outline sizes must be positive and are clamped into
// [MinPointSize, MaxPointSize], so nearby requests can share one face.
// Bitmap fonts ignore pointSize entirely, including non-positive values:
// every request resolves to the descriptor's single canonical face.
//
// A cached face whose textures report data loss is discarded and
// rebuilt before being returned.
func (f *Font) Face(pointSize int) (*FontFace, error) {
	if f.provider == nil {
		return nil, ErrNoTextureProvider
	}

	key := 0
	if f.fontType == TypeOutline {
		if pointSize <= 0 {
			return nil, ErrInvalidPointSize
		}
		if pointSize < MinPointSize {
			pointSize = MinPointSize
		}
		if pointSize > MaxPointSize {
			pointSize = MaxPointSize
		}
		key = pointSize
	}

	if face, ok := f.faces[key]; ok {
		if !face.IsDataLost() {
			return face, nil
		}
		Logger().Info("font face lost texture data, rebuilding",
			slog.Int("pointSize", face.pointSize))
		face.Close()
		delete(f.faces, key)
	}

	face, err := f.buildFace(key)
	if err != nil {
		return nil, err
	}
	f.faces[key] = face
	return face, nil
}

func (f *Font) buildFace(pointSize int) (*FontFace, error) {
	switch f.fontType {
	case TypeOutline:
		if f.engine == nil {
			return nil, ErrNoEngine
		}
		return newOutlineFace(f, pointSize)
	case TypeBitmap:
		return NewBitmapFace(f.descriptor, f.provider)
	default:
		return nil, ErrUnknownFontType
	}
}

// MemoryUse returns the approximate resident byte size of the Font: its
// raw data plus all face texture stores.
func (f *Font) MemoryUse() int {
	total := len(f.data)
	for _, face := range f.faces {
		total += face.TotalTextureSize()
	}
	return total
}

// Close releases all faces. The Font can build new faces afterwards; the
// raw data stays resident.
func (f *Font) Close() error {
	var first error
	for key, face := range f.faces {
		if err := face.Close(); err != nil && first == nil {
			first = err
		}
		delete(f.faces, key)
	}
	return first
}
