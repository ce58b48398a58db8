// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"

	"github.com/gogpu/layer2d"
	"github.com/gogpu/layer2d/glyphcache"
)

// Backend owns the GPU resources a Pass draws with.
//
// A Pass calls a Backend from a single goroutine at a time.
type Backend interface {
	// GlyphTexture returns the texture glyph rasters are written into,
	// creating or resizing it to match desc.
	GlyphTexture(desc TextureDescriptor) (glyphcache.Texture, error)

	// UploadBucket replaces the contents of a bucket's texture array.
	UploadBucket(id int, desc TextureDescriptor, layers []*image.RGBA) error

	// UploadVertices replaces the vertex buffer of a layer.
	UploadVertices(layerID uint64, vertices []layer2d.Vertex) error

	// Draw issues one draw call.
	Draw(call DrawCall) error

	// ReleaseLayer frees the per-layer resources of a forgotten layer.
	ReleaseLayer(layerID uint64)
}

// DrawCall draws Count vertices starting at First from a layer's vertex
// buffer, sampling one bucket's texture array. Count is a multiple of
// layer2d.VerticesPerQuad.
type DrawCall struct {
	LayerID uint64
	Bucket  uint32
	First   int
	Count   int

	View  layer2d.Mat4
	Model layer2d.Mat4
	Color layer2d.Color
	Blend layer2d.BlendMode
	State BlendState
}

// Quads returns the number of quads the call draws.
func (c DrawCall) Quads() int { return c.Count / layer2d.VerticesPerQuad }
