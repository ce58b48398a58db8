// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package geombuf implements the append-only vertex buffer behind a layer.
//
// Producers reserve a contiguous run of slots and fill it while holding the
// buffer's shared lock, so concurrent appends never wait on each other. The
// render goroutine reads under the exclusive lock and therefore only ever
// observes fully written runs.
package geombuf

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/layer2d/internal/logx"
)

// Vertex is one corner of a textured quad.
type Vertex struct {
	// Position is the anchor point shared by all four corners.
	Position [2]float32

	// Offset is the corner's scaled, un-rotated distance from Position.
	Offset [2]float32

	// Rotation around Position in radians.
	Rotation float32

	// BucketID selects the texture array.
	BucketID uint32

	// TextureID is the layer index within the texture array.
	TextureID uint32

	// Color is the RGBA multiplier.
	Color [4]float32

	// UV is the texture coordinate.
	UV [2]float32
}

// Buffer is a growable vertex array with lock-free slot reservation.
//
// Buffer is safe for concurrent use.
type Buffer struct {
	// mu is held shared by writers and exclusively by readers, Clear and grow.
	mu    sync.RWMutex
	data  []Vertex
	count atomic.Int64
}

// New creates a buffer with room for capacity vertices before it has to grow.
func New(capacity int) *Buffer {
	if capacity < 4 {
		capacity = 4
	}
	return &Buffer{data: make([]Vertex, capacity)}
}

// Map reserves n consecutive slots and calls fill with them. The slots are
// zeroed before fill runs. Runs reserved by different goroutines never
// interleave.
func (b *Buffer) Map(n int, fill func(v []Vertex)) {
	if n <= 0 {
		return
	}
	for {
		b.mu.RLock()
		start, ok := b.reserve(n)
		if ok {
			run := b.data[start : start+n : start+n]
			clear(run)
			fill(run)
			b.mu.RUnlock()
			return
		}
		b.mu.RUnlock()
		b.grow(n)
	}
}

// Push appends vs as one contiguous run.
func (b *Buffer) Push(vs ...Vertex) {
	b.Map(len(vs), func(dst []Vertex) {
		copy(dst, vs)
	})
}

// reserve claims n slots. Must be called with mu held (shared or exclusive).
func (b *Buffer) reserve(n int) (start int, ok bool) {
	limit := int64(len(b.data))
	for {
		cur := b.count.Load()
		next := cur + int64(n)
		if next > limit {
			return 0, false
		}
		if b.count.CompareAndSwap(cur, next) {
			return int(cur), true
		}
	}
}

// grow doubles the backing array until n more vertices fit.
func (b *Buffer) grow(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	used := int(b.count.Load())
	if used+n <= len(b.data) {
		// Another writer grew it first.
		return
	}
	size := len(b.data) * 2
	for used+n > size {
		size *= 2
	}
	data := make([]Vertex, size)
	copy(data, b.data[:used])
	b.data = data
	logx.Logger().Debug("geombuf: grew vertex buffer", "vertices", used, "capacity", size)
}

// View calls fn with the current contents. fn must not retain the slice or
// call back into the buffer.
func (b *Buffer) View(fn func(v []Vertex)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(b.data[:b.count.Load()])
}

// Snapshot returns a copy of the current contents.
func (b *Buffer) Snapshot() []Vertex {
	var out []Vertex
	b.View(func(v []Vertex) {
		out = make([]Vertex, len(v))
		copy(out, v)
	})
	return out
}

// Len returns the number of reserved vertices, including runs that are
// still being filled.
func (b *Buffer) Len() int {
	return int(b.count.Load())
}

// Cap returns the number of vertices that fit before the next grow.
func (b *Buffer) Cap() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.data)
}

// Clear drops all vertices and keeps the backing array.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.count.Store(0)
}
