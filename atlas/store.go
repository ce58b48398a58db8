package atlas

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/layer2d/bucket"
	"github.com/gogpu/layer2d/internal/logx"
)

// DefaultMaxLayers is the default texture array depth limit per bucket.
const DefaultMaxLayers = 2048

// DirtyBucket is a texture array that changed since the last TakeDirty.
type DirtyBucket struct {
	ID     int
	Size   int
	Layers []*image.RGBA
}

// Store holds the CPU copy of every sprite bucket's texture array.
//
// Store is safe for concurrent use.
type Store struct {
	maxLayers int

	mu      sync.Mutex
	buckets [bucket.Count][]*image.RGBA
	dirty   [bucket.Count]bool
}

// NewStore returns an empty store. maxLayers <= 0 uses DefaultMaxLayers.
func NewStore(maxLayers int) *Store {
	if maxLayers <= 0 {
		maxLayers = DefaultMaxLayers
	}
	return &Store{maxLayers: maxLayers}
}

// Append adds frames to bucket id as one contiguous run of layers and
// returns the index of the first one. Every frame must be the bucket's size.
func (s *Store) Append(id int, frames []*image.RGBA) (base uint32, err error) {
	size := bucket.SizeOf(id)
	if size == 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidBucket, id)
	}
	for i, f := range frames {
		if b := f.Bounds(); b.Dx() != size || b.Dy() != size {
			return 0, fmt.Errorf("atlas: frame %d is %dx%d, bucket %d needs %dx%d", i, b.Dx(), b.Dy(), id, size, size)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.buckets[id])
	if n+len(frames) > s.maxLayers {
		return 0, fmt.Errorf("%w: bucket %d has %d of %d layers, need %d more", ErrBucketFull, id, n, s.maxLayers, len(frames))
	}
	s.buckets[id] = append(s.buckets[id], frames...)
	if len(frames) > 0 {
		s.dirty[id] = true
	}
	logx.Logger().Debug("atlas: frames stored", "bucket", id, "base", n, "count", len(frames))
	return uint32(n), nil
}

// AppendSheet stores every frame of sheet in its bucket.
func (s *Store) AppendSheet(sheet *Sheet) (base uint32, err error) {
	return s.Append(sheet.Bucket.ID, sheet.Frames)
}

// Layers returns the number of layers in bucket id.
func (s *Store) Layers(id int) int {
	if id < 0 || id >= bucket.Count {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets[id])
}

// TakeDirty returns every bucket changed since the previous call and
// clears their dirty flags. The returned slices are copies; the images are
// shared and must not be modified.
func (s *Store) TakeDirty() []DirtyBucket {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []DirtyBucket
	for id := range s.dirty {
		if !s.dirty[id] {
			continue
		}
		s.dirty[id] = false
		out = append(out, DirtyBucket{
			ID:     id,
			Size:   bucket.SizeOf(id),
			Layers: append([]*image.RGBA(nil), s.buckets[id]...),
		})
	}
	return out
}

// MarkAllDirty flags every non-empty bucket for upload, for example after
// the GPU device was recreated.
func (s *Store) MarkAllDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.buckets {
		if len(s.buckets[id]) > 0 {
			s.dirty[id] = true
		}
	}
}
