// Package glyphcache packs rasterized glyphs into one shared coverage
// texture and tracks which regions still have to be uploaded.
//
// Producers call Queue from any goroutine with the glyphs they are about to
// draw; the render goroutine calls Update once per frame to copy pending
// bitmaps into the GPU texture. Glyphs are keyed by font, glyph index and a
// quantized size and sub-pixel offset, so nearby sizes and positions share
// one bitmap.
//
// When the texture fills up the cache drops every entry, queues a zero fill
// of the whole texture and packs the current batch again. A batch that does not fit into an empty texture
// fails with ErrCacheTooSmall.
package glyphcache

import (
	"fmt"
	"image"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/layer2d/internal/logx"
	"github.com/gogpu/layer2d/internal/pack"
	"github.com/gogpu/layer2d/text"
)

// Texture receives glyph uploads. The region is in texture pixels and pix
// holds rect.Dx()*rect.Dy() coverage bytes, row-major.
type Texture interface {
	WriteRegion(rect image.Rectangle, pix []byte) error
}

// Upload is one pending texture write.
type Upload struct {
	Rect image.Rectangle
	Pix  []byte
}

// Placement locates a cached glyph.
type Placement struct {
	// UV is the normalized texture rectangle: U0, V0, U1, V1.
	UV [4]float32

	// Screen is the pixel rectangle the bitmap covers at the glyph's
	// position, in layout coordinates.
	Screen image.Rectangle
}

// Width returns the bitmap width in pixels.
func (p Placement) Width() int { return p.Screen.Dx() }

// Height returns the bitmap height in pixels.
func (p Placement) Height() int { return p.Screen.Dy() }

// Stats is a snapshot of cache counters.
type Stats struct {
	Entries   int
	Pending   int
	Uploads   uint64
	Evictions uint64
}

type key struct {
	font  uint64
	glyph text.GlyphIndex
	scale int32
	subX  uint8
	subY  uint8
}

type entry struct {
	rect   image.Rectangle // in the texture
	bounds image.Rectangle // bitmap bounds relative to the integer origin
	blank  bool
}

// Cache is a glyph atlas.
//
// Cache is safe for concurrent use.
type Cache struct {
	cfg   Config
	steps int

	mu      sync.Mutex
	packer  *pack.Shelf
	entries map[key]entry
	pending []Upload

	dirty     atomic.Bool
	uploads   atomic.Uint64
	evictions atomic.Uint64
}

// New creates a cache.
func New(cfg Config) (*Cache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Cache{
		cfg:     cfg,
		steps:   int(math.Round(1 / float64(cfg.PositionTolerance))),
		packer:  pack.NewShelf(cfg.Width, cfg.Height, cfg.Padding),
		entries: make(map[key]entry),
	}, nil
}

// Config returns the configuration the cache was created with.
func (c *Cache) Config() Config {
	return c.cfg
}

// Size returns the texture dimensions.
func (c *Cache) Size() (width, height int) {
	return c.cfg.Width, c.cfg.Height
}

// Format returns the texture format uploads are encoded in.
func (c *Cache) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatR8Unorm
}

// quantize splits a glyph position into an integer origin and a sub-pixel
// step on each axis.
func (c *Cache) quantize(p text.Point) (origin image.Point, sx, sy uint8, sub text.Point) {
	ox, qx := c.quantizeAxis(p.X)
	oy, qy := c.quantizeAxis(p.Y)
	steps := float32(c.steps)
	return image.Pt(ox, oy), uint8(qx), uint8(qy), text.Point{X: float32(qx) / steps, Y: float32(qy) / steps}
}

func (c *Cache) quantizeAxis(v float32) (origin, step int) {
	fl := math.Floor(float64(v))
	step = int(math.Round((float64(v) - fl) * float64(c.steps)))
	origin = int(fl)
	if step >= c.steps {
		step = 0
		origin++
	}
	return origin, step
}

func (c *Cache) keyFor(fontID uint64, g text.PositionedGlyph) (key, image.Point, text.Point) {
	origin, sx, sy, sub := c.quantize(g.Position)
	return key{
		font:  fontID,
		glyph: g.Index,
		scale: int32(math.Round(float64(g.Size / c.cfg.ScaleTolerance))),
		subX:  sx,
		subY:  sy,
	}, origin, sub
}

// Queue makes sure every glyph is cached, rasterizing misses with r and
// queueing their bitmaps for the next Update. Glyphs already cached, or
// queued earlier in the same batch, are not rasterized again. Glyphs
// without an outline are skipped.
func (c *Cache) Queue(fontID uint64, r text.Rasterizer, glyphs []text.PositionedGlyph) error {
	if len(glyphs) == 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.queueLocked(fontID, r, glyphs)
	if err != errFull {
		return err
	}

	c.evictions.Add(1)
	logx.Logger().Warn("glyphcache: texture full, clearing",
		"entries", len(c.entries), "utilization", c.packer.Utilization())
	c.resetLocked()

	if err := c.queueLocked(fontID, r, glyphs); err != nil {
		if err == errFull {
			return fmt.Errorf("%w (%d glyphs, %dx%d texture)", ErrCacheTooSmall, len(glyphs), c.cfg.Width, c.cfg.Height)
		}
		return err
	}
	return nil
}

func (c *Cache) queueLocked(fontID uint64, r text.Rasterizer, glyphs []text.PositionedGlyph) error {
	for _, g := range glyphs {
		if !g.Outline {
			continue
		}
		k, _, sub := c.keyFor(fontID, g)
		if _, ok := c.entries[k]; ok {
			continue
		}

		bm, err := r.Rasterize(g.Index, g.Size, sub)
		if err != nil {
			return fmt.Errorf("glyphcache: rasterize glyph %d: %w", g.Index, err)
		}
		if bm.Empty() {
			c.entries[k] = entry{blank: true}
			continue
		}

		w, h := bm.Bounds.Dx(), bm.Bounds.Dy()
		if !c.packer.Fits(w, h) {
			return fmt.Errorf("%w: glyph %d is %dx%d", ErrCacheTooSmall, g.Index, w, h)
		}
		rect, ok := c.packer.Allocate(w, h)
		if !ok {
			return errFull
		}
		c.entries[k] = entry{rect: rect, bounds: bm.Bounds}
		c.pending = append(c.pending, Upload{Rect: rect, Pix: bm.Pix})
		c.dirty.Store(true)
	}
	return nil
}

// resetLocked empties the texture. Pending uploads point into regions that
// are about to be reused, so they are replaced by one upload zeroing the
// whole texture; glyphs packed afterwards never see old coverage in their
// padding.
func (c *Cache) resetLocked() {
	clear(c.entries)
	c.packer.Reset()
	c.pending = append(c.pending[:0], Upload{
		Rect: image.Rect(0, 0, c.cfg.Width, c.cfg.Height),
		Pix:  make([]byte, c.cfg.Width*c.cfg.Height),
	})
	c.dirty.Store(true)
}

// Clear drops all entries and pending uploads, and queues a zero fill of
// the texture.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.resetLocked()
	c.mu.Unlock()
}

// RectFor returns where g was cached for fontID. ok is false for blank
// glyphs and for glyphs that were never queued or have been evicted.
func (c *Cache) RectFor(fontID uint64, g text.PositionedGlyph) (p Placement, ok bool) {
	k, origin, _ := c.keyFor(fontID, g)

	c.mu.Lock()
	e, found := c.entries[k]
	c.mu.Unlock()
	if !found || e.blank {
		return Placement{}, false
	}

	w, h := float32(c.cfg.Width), float32(c.cfg.Height)
	return Placement{
		UV: [4]float32{
			float32(e.rect.Min.X) / w,
			float32(e.rect.Min.Y) / h,
			float32(e.rect.Max.X) / w,
			float32(e.rect.Max.Y) / h,
		},
		Screen: e.bounds.Add(origin),
	}, true
}

// Dirty reports whether uploads are pending.
func (c *Cache) Dirty() bool {
	return c.dirty.Load()
}

// Pending returns the number of queued uploads.
func (c *Cache) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Update writes every pending upload into tex. Queue may run concurrently;
// uploads queued after the swap are left for the next call. If a write
// fails, it and the uploads after it stay pending.
func (c *Cache) Update(tex Texture) error {
	if !c.dirty.Load() {
		return nil
	}
	if tex == nil {
		return ErrNilTexture
	}

	c.mu.Lock()
	pending := c.pending
	c.pending = nil
	c.dirty.Store(false)
	c.mu.Unlock()

	for i, u := range pending {
		if err := tex.WriteRegion(u.Rect, u.Pix); err != nil {
			c.mu.Lock()
			c.pending = append(pending[i:len(pending):len(pending)], c.pending...)
			c.dirty.Store(true)
			c.mu.Unlock()
			c.uploads.Add(uint64(i))
			return fmt.Errorf("glyphcache: upload %v: %w", u.Rect, err)
		}
	}
	c.uploads.Add(uint64(len(pending)))
	logx.Logger().Debug("glyphcache: uploaded glyphs", "count", len(pending))
	return nil
}

// Stats returns the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Entries:   len(c.entries),
		Pending:   len(c.pending),
		Uploads:   c.uploads.Load(),
		Evictions: c.evictions.Load(),
	}
}
