// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/layer2d"
	"github.com/gogpu/layer2d/internal/logx"
)

// ErrNilBackend is returned by DrawLayer when the pass has no backend.
var ErrNilBackend = errors.New("render: nil backend")

// Option configures a Pass.
type Option func(*Pass)

// WithDevice attaches the host GPU device to the pass. Backends may query
// it through Pass.Device.
func WithDevice(d DeviceHandle) Option {
	return func(p *Pass) {
		p.device = d
	}
}

// Stats holds the pass counters.
type Stats struct {
	Layers         int
	GlyphUploads   uint64
	BucketUploads  uint64
	VertexUploads  uint64
	DrawCalls      uint64
	SkippedUploads uint64
}

type batch struct {
	bucket       uint32
	first, count int
}

type layerState struct {
	version uint64
	batches []batch
}

// Pass draws layers of one Context through a Backend.
type Pass struct {
	ctx     *layer2d.Context
	backend Backend
	device  DeviceHandle

	mu     sync.Mutex
	layers map[uint64]*layerState
	stats  Stats
}

// New creates a pass for ctx. The pass is not installed on the context;
// call ctx.SetRenderer(pass) to draw layers through it.
func New(ctx *layer2d.Context, backend Backend, opts ...Option) *Pass {
	p := &Pass{
		ctx:     ctx,
		backend: backend,
		device:  NullDeviceHandle{},
		layers:  make(map[uint64]*layerState),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Device returns the host device handle.
func (p *Pass) Device() DeviceHandle { return p.device }

// Backend returns the backend the pass draws with.
func (p *Pass) Backend() Backend { return p.backend }

// DrawLayer implements layer2d.Renderer.
func (p *Pass) DrawLayer(l *layer2d.Layer) error {
	if p.backend == nil {
		return ErrNilBackend
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.uploadGlyphs(); err != nil {
		return err
	}
	if err := p.uploadBuckets(); err != nil {
		return err
	}

	st, err := p.syncLayer(l)
	if err != nil {
		return err
	}

	view, model := l.ViewMatrix(), l.ModelMatrix()
	mode, color := l.BlendMode(), l.Color()
	state := BlendStateFor(mode)
	for _, b := range st.batches {
		call := DrawCall{
			LayerID: l.ID(),
			Bucket:  b.bucket,
			First:   b.first,
			Count:   b.count,
			View:    view,
			Model:   model,
			Color:   color,
			Blend:   mode,
			State:   state,
		}
		if err := p.backend.Draw(call); err != nil {
			return fmt.Errorf("render: draw layer %d bucket %d: %w", l.ID(), b.bucket, err)
		}
		p.stats.DrawCalls++
	}
	return nil
}

func (p *Pass) uploadGlyphs() error {
	cache := p.ctx.Glyphs()
	if !cache.Dirty() {
		return nil
	}
	tex, err := p.backend.GlyphTexture(GlyphTextureDescriptor(cache))
	if err != nil {
		return fmt.Errorf("render: glyph texture: %w", err)
	}
	before := cache.Stats().Uploads
	err = cache.Update(tex)
	p.stats.GlyphUploads += cache.Stats().Uploads - before
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func (p *Pass) uploadBuckets() error {
	store := p.ctx.Store()
	for _, b := range store.TakeDirty() {
		if err := p.backend.UploadBucket(b.ID, BucketTextureDescriptor(b), b.Layers); err != nil {
			// The dirty set was consumed; re-flag everything so the next
			// frame retries.
			store.MarkAllDirty()
			return fmt.Errorf("render: upload bucket %d: %w", b.ID, err)
		}
		p.stats.BucketUploads++
		logx.Logger().Debug("render: uploaded bucket", "bucket", b.ID, "layers", len(b.Layers))
	}
	return nil
}

// syncLayer re-uploads the layer's vertices if its version changed since
// the last draw. The version is read before the vertices so a concurrent
// mutation is picked up on the next frame.
func (p *Pass) syncLayer(l *layer2d.Layer) (*layerState, error) {
	version := l.Version()
	st, ok := p.layers[l.ID()]
	if ok && st.version == version {
		p.stats.SkippedUploads++
		return st, nil
	}

	vertices := l.Vertices()
	if err := p.backend.UploadVertices(l.ID(), vertices); err != nil {
		return nil, fmt.Errorf("render: upload vertices of layer %d: %w", l.ID(), err)
	}
	p.stats.VertexUploads++

	if !ok {
		st = &layerState{}
		p.layers[l.ID()] = st
	}
	st.version = version
	st.batches = batches(st.batches[:0], vertices)
	return st, nil
}

// batches splits vertices into runs of consecutive quads sharing a bucket.
func batches(dst []batch, vertices []layer2d.Vertex) []batch {
	const n = layer2d.VerticesPerQuad
	for i := 0; i+n <= len(vertices); i += n {
		id := vertices[i].BucketID
		if k := len(dst) - 1; k >= 0 && dst[k].bucket == id {
			dst[k].count += n
			continue
		}
		dst = append(dst, batch{bucket: id, first: i, count: n})
	}
	return dst
}

// Forget drops the cached state of a layer and releases its backend
// resources. The next DrawLayer for that layer uploads from scratch.
func (p *Pass) Forget(layerID uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.layers[layerID]; !ok {
		return
	}
	delete(p.layers, layerID)
	if p.backend != nil {
		p.backend.ReleaseLayer(layerID)
	}
}

// Stats returns the pass counters.
func (p *Pass) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.stats
	s.Layers = len(p.layers)
	return s
}

var _ layer2d.Renderer = (*Pass)(nil)
