// Package idgen allocates process-unique, monotonically increasing ids.
//
// Layers and fonts draw their identities from an Allocator held by the
// rendering context instead of package-level counters, so tests can start
// from a known value.
package idgen

import "sync/atomic"

// Allocator hands out ids in increasing order. The zero value starts at 0.
//
// Allocator is safe for concurrent use.
type Allocator struct {
	next atomic.Uint64
}

// New returns an allocator whose first id is start.
func New(start uint64) *Allocator {
	a := &Allocator{}
	a.next.Store(start)
	return a
}

// Next returns a fresh id. Ids are never reused.
func (a *Allocator) Next() uint64 {
	return a.next.Add(1) - 1
}

// Peek returns the id the next call to Next will return.
func (a *Allocator) Peek() uint64 {
	return a.next.Load()
}
