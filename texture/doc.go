// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package texture defines the sink that finished atlas pixels are uploaded
// to, with an in-memory implementation and a gogpu/gpucontext adapter.
//
// The atlas pipeline treats textures as opaque: it creates them at a fixed
// size, uploads sub-regions of pixels, and polls for backing-data loss
// (device resets). Everything else — sampling, drawing, lifetime beyond
// the face — belongs to the embedding renderer.
package texture
