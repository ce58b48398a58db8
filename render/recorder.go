// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"slices"
	"sync"

	"github.com/gogpu/layer2d"
	"github.com/gogpu/layer2d/glyphcache"
)

// RecordedBucket is the last upload of a bucket's texture array.
type RecordedBucket struct {
	Desc   TextureDescriptor
	Layers []*image.RGBA
}

// Recorder is a CPU-side Backend. It keeps the glyph texture as an
// *image.Alpha, the bucket arrays as images, and every draw call issued.
type Recorder struct {
	mu        sync.Mutex
	glyphs    *glyphcache.AlphaTexture
	glyphDesc TextureDescriptor
	buckets   map[int]RecordedBucket
	vertices  map[uint64][]layer2d.Vertex
	calls     []DrawCall
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		buckets:  make(map[int]RecordedBucket),
		vertices: make(map[uint64][]layer2d.Vertex),
	}
}

// GlyphTexture implements Backend. The texture is reallocated when the
// requested size changes.
func (r *Recorder) GlyphTexture(desc TextureDescriptor) (glyphcache.Texture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.glyphs == nil || r.glyphDesc.Width != desc.Width || r.glyphDesc.Height != desc.Height {
		r.glyphs = glyphcache.NewAlphaTexture(int(desc.Width), int(desc.Height))
	}
	r.glyphDesc = desc
	return r.glyphs, nil
}

// UploadBucket implements Backend.
func (r *Recorder) UploadBucket(id int, desc TextureDescriptor, layers []*image.RGBA) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buckets[id] = RecordedBucket{Desc: desc, Layers: slices.Clone(layers)}
	return nil
}

// UploadVertices implements Backend.
func (r *Recorder) UploadVertices(layerID uint64, vertices []layer2d.Vertex) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vertices[layerID] = slices.Clone(vertices)
	return nil
}

// Draw implements Backend.
func (r *Recorder) Draw(call DrawCall) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
	return nil
}

// ReleaseLayer implements Backend.
func (r *Recorder) ReleaseLayer(layerID uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.vertices, layerID)
}

// Glyphs returns the glyph texture image, or nil before the first upload.
func (r *Recorder) Glyphs() *image.Alpha {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.glyphs == nil {
		return nil
	}
	return r.glyphs.Image
}

// GlyphDescriptor returns the descriptor of the last glyph texture request.
func (r *Recorder) GlyphDescriptor() TextureDescriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.glyphDesc
}

// Bucket returns the last upload of bucket id.
func (r *Recorder) Bucket(id int) (RecordedBucket, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.buckets[id]
	return b, ok
}

// Vertices returns the uploaded vertices of a layer.
func (r *Recorder) Vertices(layerID uint64) ([]layer2d.Vertex, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vertices[layerID]
	return v, ok
}

// Calls returns the recorded draw calls.
func (r *Recorder) Calls() []DrawCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

// Reset discards recorded draw calls, keeping uploaded resources.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = r.calls[:0]
}

var _ Backend = (*Recorder)(nil)
