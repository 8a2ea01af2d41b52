// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fontatlas

import (
	"encoding/binary"

	"github.com/gogpu/fontatlas/rasterizer"
)

// kernKey identifies an ordered glyph pair.
type kernKey struct {
	left, right rune
}

// parseKerningTable decodes a binary horizontal kerning table into a
// pair map keyed by code points. Values are scaled from font units to
// pixels and rounded toward zero; pairs that scale to zero are dropped.
// Pairs whose glyph indices are absent from glyphToChar are skipped.
//
// Only table version 0 with format-0 subtables under coverage value 1
// (horizontal kerning) is accepted. Anything else is a KernFormatError.
func parseKerningTable(data []byte, glyphToChar map[rasterizer.GlyphID]rune, scale float64) (map[kernKey]int, error) {
	r := kernReader{data: data}

	version := r.u16()
	numTables := r.u16()
	if r.short {
		return nil, &KernFormatError{Field: "header length", Got: len(data)}
	}
	if version != 0 {
		return nil, &KernFormatError{Field: "version", Got: int(version)}
	}

	pairs := make(map[kernKey]int)
	for t := 0; t < int(numTables); t++ {
		subStart := r.off
		subVersion := r.u16()
		length := r.u16()
		coverage := r.u16()
		if r.short {
			return nil, &KernFormatError{Field: "subtable header length", Got: len(data) - subStart}
		}
		if subVersion != 0 {
			return nil, &KernFormatError{Field: "subtable version", Got: int(subVersion)}
		}
		if coverage != 1 {
			return nil, &KernFormatError{Field: "coverage", Got: int(coverage)}
		}

		// Pair records follow numPairs directly.
		numPairs := r.u16()
		if r.short {
			return nil, &KernFormatError{Field: "subtable header length", Got: len(data) - subStart}
		}
		for p := 0; p < int(numPairs); p++ {
			left := r.u16()
			right := r.u16()
			value := int16(r.u16())
			if r.short {
				return nil, &KernFormatError{Field: "pair data length", Got: len(data) - subStart}
			}
			leftChar, okL := glyphToChar[rasterizer.GlyphID(left)]
			rightChar, okR := glyphToChar[rasterizer.GlyphID(right)]
			if !okL || !okR {
				continue
			}
			amount := int(float64(value) * scale)
			if amount == 0 {
				continue
			}
			pairs[kernKey{leftChar, rightChar}] = amount
		}

		// Subtable length covers its own header. Resync in case the
		// subtable carries trailing data beyond the pair array.
		if int(length) >= 8 && subStart+int(length) <= len(data) && subStart+int(length) > r.off {
			r.off = subStart + int(length)
		}
	}
	return pairs, nil
}

// kernReader walks big-endian table data with sticky truncation state.
type kernReader struct {
	data  []byte
	off   int
	short bool
}

func (r *kernReader) u16() uint16 {
	if r.short || r.off+2 > len(r.data) {
		r.short = true
		return 0
	}
	v := binary.BigEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v
}
