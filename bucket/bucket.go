// Package bucket maps sprite dimensions to texture-array buckets.
//
// All textures in one bucket share a square, power-of-two size so they can
// live in a single GPU texture array and be drawn in one batch. The mapping is
// a pure function: the sprite loader and the renderer compute it
// independently and always agree.
//
// Bucket 0 is reserved for the glyph cache texture. Sprite buckets start at
// FirstSprite:
//
//	id  size
//	1   16
//	2   32
//	...
//	8   2048
package bucket

import (
	"fmt"
	"math/bits"
)

const (
	// Glyphs is the bucket id of the shared glyph cache texture.
	Glyphs = 0

	// FirstSprite is the id of the smallest sprite bucket.
	FirstSprite = 1

	// MinSize is the edge length of the smallest sprite bucket.
	MinSize = 16

	// MaxSize is the edge length of the largest sprite bucket.
	MaxSize = 2048

	minShift = 4  // log2(MinSize)
	maxShift = 11 // log2(MaxSize)

	// Count is the number of bucket ids, including Glyphs.
	Count = FirstSprite + maxShift - minShift + 1
)

// Info describes the bucket a texture is routed to.
type Info struct {
	// ID selects the texture array.
	ID int

	// Size is the padded edge length of every texture in the array.
	Size int
}

// Lookup returns the bucket for a width x height texture.
// ok is false when either dimension is not positive or exceeds MaxSize.
func Lookup(width, height int) (info Info, ok bool) {
	if width <= 0 || height <= 0 {
		return Info{}, false
	}
	edge := max(width, height, MinSize)
	if edge > MaxSize {
		return Info{}, false
	}
	// Smallest power of two >= edge.
	shift := bits.Len(uint(edge - 1))
	return Info{
		ID:   FirstSprite + shift - minShift,
		Size: 1 << shift,
	}, true
}

// MustLookup is like Lookup but panics for unsupported dimensions.
func MustLookup(width, height int) Info {
	info, ok := Lookup(width, height)
	if !ok {
		panic(&SizeError{Width: width, Height: height})
	}
	return info
}

// SizeOf returns the edge length of a sprite bucket, or 0 for Glyphs and
// unknown ids.
func SizeOf(id int) int {
	if id < FirstSprite || id >= Count {
		return 0
	}
	return 1 << (id - FirstSprite + minShift)
}

// Sizes returns the supported sprite bucket sizes in ascending order.
func Sizes() []int {
	sizes := make([]int, 0, Count-FirstSprite)
	for id := FirstSprite; id < Count; id++ {
		sizes = append(sizes, SizeOf(id))
	}
	return sizes
}

// SizeError reports dimensions that no bucket can hold.
type SizeError struct {
	Width, Height int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("bucket: unsupported texture size %dx%d (max %d)", e.Width, e.Height, MaxSize)
}
