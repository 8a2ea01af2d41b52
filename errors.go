// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fontatlas

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fontatlas package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("fontatlas: empty font data")

	// ErrInvalidPointSize is returned for a zero or negative point size.
	ErrInvalidPointSize = errors.New("fontatlas: point size must be positive")

	// ErrNoTextureProvider is returned when a Font was configured without
	// a texture sink (headless operation) and a face is requested.
	ErrNoTextureProvider = errors.New("fontatlas: no texture provider")

	// ErrNoEngine is returned when an outline face is requested from a
	// Font configured without a rasterizer engine.
	ErrNoEngine = errors.New("fontatlas: no rasterizer engine")

	// ErrAtlasFull is returned when the atlas canvas maximum is exhausted
	// while populating a face. A half-populated face is not servable, so
	// this aborts face construction.
	ErrAtlasFull = errors.New("fontatlas: atlas canvas exhausted")

	// ErrUnknownFontType is returned when font data is neither a
	// recognized outline font nor covered by a bitmap descriptor.
	ErrUnknownFontType = errors.New("fontatlas: unrecognized font data")

	// ErrNoDescriptor is returned when a bitmap font face is requested
	// but no descriptor was provided.
	ErrNoDescriptor = errors.New("fontatlas: bitmap font without descriptor")

	// ErrBadDescriptor is returned for structurally invalid bitmap
	// descriptor records.
	ErrBadDescriptor = errors.New("fontatlas: malformed bitmap descriptor")
)

// KernFormatError reports a malformed binary kerning table. Kerning is
// all-or-nothing per face: a malformed table aborts face construction.
type KernFormatError struct {
	// Field names the header or subtable field that was rejected.
	Field string

	// Got is the offending value (or available byte count for a
	// truncated table).
	Got int
}

func (e *KernFormatError) Error() string {
	return fmt.Sprintf("fontatlas: malformed kerning table: %s = %d", e.Field, e.Got)
}
