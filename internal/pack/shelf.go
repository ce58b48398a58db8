// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pack implements shelf-based rectangle packing for the glyph atlas.
//
// Rectangles are placed left to right on horizontal shelves. A shelf is as
// tall as its tallest item; when no shelf has room a new one is opened below
// the last. The packer never frees individual rectangles: the glyph cache
// resets it as a whole when the atlas fills up.
package pack

import "image"

// Shelf packs rectangles into a fixed width x height area.
//
// Shelf is NOT safe for concurrent use.
type Shelf struct {
	width   int
	height  int
	padding int
	shelves []shelf

	usedArea int
}

type shelf struct {
	y      int // top edge
	height int // tallest item so far
	x      int // next free column
}

// NewShelf creates a packer for the given area. padding pixels are kept free
// to the right of and below every rectangle.
func NewShelf(width, height, padding int) *Shelf {
	return &Shelf{
		width:   width,
		height:  height,
		padding: max(padding, 0),
		shelves: make([]shelf, 0, 16),
	}
}

// Allocate reserves a w x h rectangle. ok is false when it does not fit.
// Zero-area requests always succeed with an empty rectangle at the origin.
func (s *Shelf) Allocate(w, h int) (r image.Rectangle, ok bool) {
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, true
	}
	pw, ph := w+s.padding, h+s.padding

	for i := range s.shelves {
		sh := &s.shelves[i]
		if sh.x+pw > s.width {
			continue
		}
		if h > sh.height {
			// Only the last shelf may grow taller.
			if i != len(s.shelves)-1 || sh.y+ph > s.height {
				continue
			}
			sh.height = h
		}
		r = image.Rect(sh.x, sh.y, sh.x+w, sh.y+h)
		sh.x += pw
		s.usedArea += w * h
		return r, true
	}

	y := s.nextShelfY()
	if y+ph > s.height || pw > s.width {
		return image.Rectangle{}, false
	}
	s.shelves = append(s.shelves, shelf{y: y, height: h, x: pw})
	s.usedArea += w * h
	return image.Rect(0, y, w, y+h), true
}

// Fits reports whether a w x h rectangle could ever fit in an empty packer.
func (s *Shelf) Fits(w, h int) bool {
	return w+s.padding <= s.width && h+s.padding <= s.height
}

func (s *Shelf) nextShelfY() int {
	if len(s.shelves) == 0 {
		return 0
	}
	last := s.shelves[len(s.shelves)-1]
	return last.y + last.height + s.padding
}

// Reset forgets all allocations.
func (s *Shelf) Reset() {
	s.shelves = s.shelves[:0]
	s.usedArea = 0
}

// Utilization returns the allocated fraction of the area (0.0 to 1.0).
func (s *Shelf) Utilization() float64 {
	if s.width <= 0 || s.height <= 0 {
		return 0
	}
	return float64(s.usedArea) / float64(s.width*s.height)
}

// ShelfCount returns the number of open shelves.
func (s *Shelf) ShelfCount() int {
	return len(s.shelves)
}

// Size returns the packing area.
func (s *Shelf) Size() (width, height int) {
	return s.width, s.height
}
