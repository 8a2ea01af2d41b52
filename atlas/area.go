// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package atlas

// AreaAllocator packs axis-aligned rectangles without overlap into a
// growable canvas.
//
// The canvas starts at an initial size and doubles the smaller dimension
// whenever an allocation does not fit, up to a per-dimension maximum.
// Allocate fails only once both maxima are exhausted.
//
// The allocator keeps a list of disjoint free rectangles (guillotine
// packing): each allocation takes the top-left corner of the best-fitting
// free rectangle and splits the remainder into at most two new free
// rectangles. Free rectangles are never merged, so a degree of
// fragmentation is possible; glyph-sized allocations are far smaller than
// the canvas, which keeps the waste negligible in practice.
//
// AreaAllocator is not safe for concurrent use.
type AreaAllocator struct {
	width     int
	height    int
	maxWidth  int
	maxHeight int
	free      []freeRect
}

// freeRect is an unallocated region of the canvas.
type freeRect struct {
	x, y, w, h int
}

// NewAreaAllocator creates an allocator with the given initial and maximum
// canvas sizes. Initial sizes are clamped into [1, max].
func NewAreaAllocator(width, height, maxWidth, maxHeight int) *AreaAllocator {
	if maxWidth < 1 {
		maxWidth = 1
	}
	if maxHeight < 1 {
		maxHeight = 1
	}
	width = clampInt(width, 1, maxWidth)
	height = clampInt(height, 1, maxHeight)

	return &AreaAllocator{
		width:     width,
		height:    height,
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
		free:      []freeRect{{0, 0, width, height}},
	}
}

// NewFixedAreaAllocator creates an allocator whose canvas never grows.
func NewFixedAreaAllocator(width, height int) *AreaAllocator {
	return NewAreaAllocator(width, height, width, height)
}

// Width returns the current canvas width.
func (a *AreaAllocator) Width() int { return a.width }

// Height returns the current canvas height.
func (a *AreaAllocator) Height() int { return a.height }

// MaxWidth returns the maximum canvas width.
func (a *AreaAllocator) MaxWidth() int { return a.maxWidth }

// MaxHeight returns the maximum canvas height.
func (a *AreaAllocator) MaxHeight() int { return a.maxHeight }

// Allocate reserves a width×height rectangle and returns its position.
// The canvas is grown as needed. Returns ok=false when the rectangle
// cannot fit even at the maximum canvas size. Width and height must be
// positive.
func (a *AreaAllocator) Allocate(width, height int) (x, y int, ok bool) {
	if width <= 0 || height <= 0 {
		return 0, 0, false
	}
	if width > a.maxWidth || height > a.maxHeight {
		return 0, 0, false
	}

	for {
		if i := a.findBest(width, height); i >= 0 {
			r := a.free[i]
			a.split(i, width, height)
			return r.x, r.y, true
		}
		if !a.grow() {
			return 0, 0, false
		}
	}
}

// findBest returns the index of the smallest free rectangle that fits a
// width×height allocation, or -1.
func (a *AreaAllocator) findBest(width, height int) int {
	best := -1
	bestArea := int(^uint(0) >> 1)
	for i, r := range a.free {
		if r.w < width || r.h < height {
			continue
		}
		if area := r.w * r.h; area < bestArea {
			best = i
			bestArea = area
		}
	}
	return best
}

// split reserves the top-left width×height corner of free rectangle i and
// replaces it with the remainder pieces. The cut runs along the longer
// leftover axis so the larger remainder stays in one piece.
func (a *AreaAllocator) split(i int, width, height int) {
	r := a.free[i]
	a.free[i] = a.free[len(a.free)-1]
	a.free = a.free[:len(a.free)-1]

	rightW := r.w - width
	bottomH := r.h - height

	var right, bottom freeRect
	if rightW >= bottomH {
		right = freeRect{r.x + width, r.y, rightW, r.h}
		bottom = freeRect{r.x, r.y + height, width, bottomH}
	} else {
		right = freeRect{r.x + width, r.y, rightW, height}
		bottom = freeRect{r.x, r.y + height, r.w, bottomH}
	}
	if right.w > 0 && right.h > 0 {
		a.free = append(a.free, right)
	}
	if bottom.w > 0 && bottom.h > 0 {
		a.free = append(a.free, bottom)
	}
}

// grow doubles the smaller canvas dimension, clamped to the maximum, and
// adds the new strip as a free rectangle. Returns false when both
// dimensions are already at their maximum.
func (a *AreaAllocator) grow() bool {
	growWidth := a.width <= a.height
	if growWidth && a.width >= a.maxWidth {
		growWidth = false
	}
	if !growWidth && a.height >= a.maxHeight {
		if a.width >= a.maxWidth {
			return false
		}
		growWidth = true
	}

	if growWidth {
		old := a.width
		a.width = minInt(a.width*2, a.maxWidth)
		a.free = append(a.free, freeRect{old, 0, a.width - old, a.height})
	} else {
		old := a.height
		a.height = minInt(a.height*2, a.maxHeight)
		a.free = append(a.free, freeRect{0, old, a.width, a.height - old})
	}
	return true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
