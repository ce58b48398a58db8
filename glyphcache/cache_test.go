package glyphcache

import (
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/layer2d/text"
)

// fakeRasterizer returns w x h bitmaps filled with the glyph index.
type fakeRasterizer struct {
	w, h  int
	blank text.GlyphIndex
	fail  text.GlyphIndex
	calls atomic.Int64
}

func (f *fakeRasterizer) Rasterize(g text.GlyphIndex, _ float32, _ text.Point) (text.Bitmap, error) {
	f.calls.Add(1)
	if g == f.fail && g != 0 {
		return text.Bitmap{}, errors.New("boom")
	}
	if g == f.blank && g != 0 {
		return text.Bitmap{}, nil
	}
	pix := make([]byte, f.w*f.h)
	for i := range pix {
		pix[i] = byte(g)
	}
	return text.Bitmap{Bounds: image.Rect(0, -f.h, f.w, 0), Pix: pix}, nil
}

func glyph(idx text.GlyphIndex, x, y, size float32) text.PositionedGlyph {
	return text.PositionedGlyph{Index: idx, Size: size, Position: text.Point{X: x, Y: y}, Outline: true}
}

func newCache(t testing.TB, w, h int) *Cache {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width, cfg.Height, cfg.Padding = w, h, 0
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		field string
	}{
		{"default", func(*Config) {}, ""},
		{"zero width", func(c *Config) { c.Width = 0 }, "Width"},
		{"negative height", func(c *Config) { c.Height = -1 }, "Height"},
		{"zero scale tolerance", func(c *Config) { c.ScaleTolerance = 0 }, "ScaleTolerance"},
		{"position tolerance above one", func(c *Config) { c.PositionTolerance = 1.5 }, "PositionTolerance"},
		{"position tolerance too fine", func(c *Config) { c.PositionTolerance = 0.001 }, "PositionTolerance"},
		{"negative padding", func(c *Config) { c.Padding = -1 }, "Padding"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(&cfg)
			err := cfg.Validate()
			if tt.field == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			var ce *ConfigError
			if !errors.As(err, &ce) || ce.Field != tt.field {
				t.Errorf("Validate() error = %v, want ConfigError on %s", err, tt.field)
			}
		})
	}
	if _, err := New(Config{}); err == nil {
		t.Error("New(Config{}) error = nil")
	}
}

func TestFormatAndSize(t *testing.T) {
	c := newCache(t, 256, 128)
	if c.Format() != gputypes.TextureFormatR8Unorm {
		t.Errorf("Format() = %v, want R8Unorm", c.Format())
	}
	if w, h := c.Size(); w != 256 || h != 128 {
		t.Errorf("Size() = %d, %d", w, h)
	}
}

func TestQueueIsIdempotent(t *testing.T) {
	c := newCache(t, 128, 128)
	r := &fakeRasterizer{w: 8, h: 10}

	if err := c.Queue(1, r, []text.PositionedGlyph{glyph(5, 0, 0, 16), glyph(5, 0, 0, 16)}); err != nil {
		t.Fatal(err)
	}
	if err := c.Queue(1, r, []text.PositionedGlyph{glyph(5, 0, 0, 16)}); err != nil {
		t.Fatal(err)
	}
	if got := r.calls.Load(); got != 1 {
		t.Errorf("rasterize calls = %d, want 1", got)
	}
	if got := c.Pending(); got != 1 {
		t.Errorf("Pending() = %d, want 1", got)
	}
	if !c.Dirty() {
		t.Error("Dirty() = false after queueing")
	}
}

func TestQueueKeys(t *testing.T) {
	tests := []struct {
		name    string
		a, b    text.PositionedGlyph
		fontA   uint64
		fontB   uint64
		entries int
	}{
		{"same glyph", glyph(1, 0, 0, 16), glyph(1, 3, 7, 16), 1, 1, 1},
		{"size within tolerance", glyph(1, 0, 0, 16), glyph(1, 0, 0, 16.02), 1, 1, 1},
		{"size outside tolerance", glyph(1, 0, 0, 16), glyph(1, 0, 0, 17), 1, 1, 2},
		{"subpixel within tolerance", glyph(1, 0.5, 0, 16), glyph(1, 4.52, 0, 16), 1, 1, 1},
		{"subpixel outside tolerance", glyph(1, 0, 0, 16), glyph(1, 0.5, 0, 16), 1, 1, 2},
		{"different glyph", glyph(1, 0, 0, 16), glyph(2, 0, 0, 16), 1, 1, 2},
		{"different font", glyph(1, 0, 0, 16), glyph(1, 0, 0, 16), 1, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCache(t, 128, 128)
			r := &fakeRasterizer{w: 4, h: 4}
			if err := c.Queue(tt.fontA, r, []text.PositionedGlyph{tt.a}); err != nil {
				t.Fatal(err)
			}
			if err := c.Queue(tt.fontB, r, []text.PositionedGlyph{tt.b}); err != nil {
				t.Fatal(err)
			}
			if got := c.Stats().Entries; got != tt.entries {
				t.Errorf("Entries = %d, want %d", got, tt.entries)
			}
		})
	}
}

func TestRectFor(t *testing.T) {
	c := newCache(t, 64, 32)
	r := &fakeRasterizer{w: 8, h: 10, blank: 9}

	g := glyph(3, 10, 20, 16)
	blank := glyph(9, 0, 0, 16)
	if err := c.Queue(1, r, []text.PositionedGlyph{g, blank}); err != nil {
		t.Fatal(err)
	}

	p, ok := c.RectFor(1, g)
	if !ok {
		t.Fatal("RectFor() ok = false")
	}
	if want := image.Rect(10, 10, 18, 20); p.Screen != want {
		t.Errorf("Screen = %v, want %v", p.Screen, want)
	}
	if p.Width() != 8 || p.Height() != 10 {
		t.Errorf("size = %dx%d, want 8x10", p.Width(), p.Height())
	}
	if want := [4]float32{0, 0, 8.0 / 64, 10.0 / 32}; p.UV != want {
		t.Errorf("UV = %v, want %v", p.UV, want)
	}

	// Same key at another integer position shares the bitmap.
	moved := glyph(3, 30, 5, 16)
	p2, ok := c.RectFor(1, moved)
	if !ok || p2.UV != p.UV || p2.Screen != image.Rect(30, -5, 38, 5) {
		t.Errorf("RectFor(moved) = %+v, %v", p2, ok)
	}

	if _, ok := c.RectFor(1, blank); ok {
		t.Error("RectFor(blank) ok = true")
	}
	if _, ok := c.RectFor(2, g); ok {
		t.Error("RectFor(other font) ok = true")
	}
	if got := c.Pending(); got != 1 {
		t.Errorf("Pending() = %d, want 1 (blank glyphs are not uploaded)", got)
	}
}

func TestSubpixelRoundsUp(t *testing.T) {
	c := newCache(t, 64, 64)
	r := &fakeRasterizer{w: 4, h: 4}
	g := glyph(1, 2.97, 0, 16)
	if err := c.Queue(1, r, []text.PositionedGlyph{g}); err != nil {
		t.Fatal(err)
	}
	p, ok := c.RectFor(1, g)
	if !ok {
		t.Fatal("RectFor() ok = false")
	}
	if p.Screen.Min.X != 3 {
		t.Errorf("Screen.Min.X = %d, want 3", p.Screen.Min.X)
	}
	// 2.97 quantizes to the same entry as 3.0.
	if err := c.Queue(1, r, []text.PositionedGlyph{glyph(1, 3, 0, 16)}); err != nil {
		t.Fatal(err)
	}
	if got := r.calls.Load(); got != 1 {
		t.Errorf("rasterize calls = %d, want 1", got)
	}
}

func TestUpdate(t *testing.T) {
	c := newCache(t, 64, 64)
	r := &fakeRasterizer{w: 4, h: 4}
	tex := NewAlphaTexture(64, 64)

	a, b := glyph(7, 0, 0, 16), glyph(8, 0, 0, 16)
	if err := c.Queue(1, r, []text.PositionedGlyph{a, b}); err != nil {
		t.Fatal(err)
	}
	if err := c.Update(tex); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if c.Dirty() || c.Pending() != 0 {
		t.Errorf("after Update: Dirty = %v, Pending = %d", c.Dirty(), c.Pending())
	}

	for _, g := range []text.PositionedGlyph{a, b} {
		p, _ := c.RectFor(1, g)
		x := int(p.UV[0] * 64)
		y := int(p.UV[1] * 64)
		if got := tex.Image.AlphaAt(x, y).A; got != byte(g.Index) {
			t.Errorf("texel for glyph %d = %d", g.Index, got)
		}
	}

	if err := c.Update(tex); err != nil {
		t.Fatal(err)
	}
	if got := c.Stats().Uploads; got != 2 {
		t.Errorf("Uploads = %d, want 2", got)
	}
	if err := c.Update(nil); err != nil {
		t.Errorf("Update(nil) with nothing pending = %v", err)
	}
}

func TestUpdateNilTexture(t *testing.T) {
	c := newCache(t, 64, 64)
	if err := c.Queue(1, &fakeRasterizer{w: 2, h: 2}, []text.PositionedGlyph{glyph(1, 0, 0, 8)}); err != nil {
		t.Fatal(err)
	}
	if err := c.Update(nil); !errors.Is(err, ErrNilTexture) {
		t.Errorf("Update(nil) error = %v, want ErrNilTexture", err)
	}
	if c.Pending() != 1 {
		t.Error("pending uploads lost")
	}
}

type failingTexture struct {
	ok     int
	writes int
}

func (f *failingTexture) WriteRegion(image.Rectangle, []byte) error {
	f.writes++
	if f.writes > f.ok {
		return errors.New("device lost")
	}
	return nil
}

func TestUpdateFailureKeepsRemainder(t *testing.T) {
	c := newCache(t, 64, 64)
	r := &fakeRasterizer{w: 4, h: 4}
	if err := c.Queue(1, r, []text.PositionedGlyph{glyph(1, 0, 0, 8), glyph(2, 0, 0, 8), glyph(3, 0, 0, 8)}); err != nil {
		t.Fatal(err)
	}
	if err := c.Update(&failingTexture{ok: 1}); err == nil {
		t.Fatal("Update() error = nil")
	}
	if got := c.Pending(); got != 2 {
		t.Errorf("Pending() = %d, want 2", got)
	}
	if !c.Dirty() {
		t.Error("Dirty() = false after failed update")
	}
	if got := c.Stats().Uploads; got != 1 {
		t.Errorf("Uploads = %d, want 1", got)
	}
}

func TestEviction(t *testing.T) {
	c := newCache(t, 32, 32)
	r := &fakeRasterizer{w: 16, h: 16}

	for i := text.GlyphIndex(1); i <= 4; i++ {
		if err := c.Queue(1, r, []text.PositionedGlyph{glyph(i, 0, 0, 16)}); err != nil {
			t.Fatalf("Queue(%d) error = %v", i, err)
		}
	}
	if err := c.Queue(1, r, []text.PositionedGlyph{glyph(5, 0, 0, 16)}); err != nil {
		t.Fatalf("Queue(5) error = %v", err)
	}

	st := c.Stats()
	if st.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", st.Evictions)
	}
	if st.Entries != 1 || st.Pending != 2 {
		t.Errorf("Entries = %d, Pending = %d, want 1, 2", st.Entries, st.Pending)
	}
	if _, ok := c.RectFor(1, glyph(1, 0, 0, 16)); ok {
		t.Error("evicted glyph still cached")
	}
	if _, ok := c.RectFor(1, glyph(5, 0, 0, 16)); !ok {
		t.Error("new glyph not cached")
	}
}

func TestCacheTooSmall(t *testing.T) {
	c := newCache(t, 32, 32)
	r := &fakeRasterizer{w: 16, h: 16}

	batch := make([]text.PositionedGlyph, 5)
	for i := range batch {
		batch[i] = glyph(text.GlyphIndex(i+1), 0, 0, 16)
	}
	if err := c.Queue(1, r, batch); !errors.Is(err, ErrCacheTooSmall) {
		t.Errorf("Queue(5 glyphs) error = %v, want ErrCacheTooSmall", err)
	}

	huge := newCache(t, 32, 32)
	if err := huge.Queue(1, &fakeRasterizer{w: 40, h: 8}, []text.PositionedGlyph{glyph(1, 0, 0, 64)}); !errors.Is(err, ErrCacheTooSmall) {
		t.Errorf("Queue(oversized) error = %v, want ErrCacheTooSmall", err)
	}
	if got := huge.Stats().Evictions; got != 0 {
		t.Errorf("Evictions = %d, want 0 for an oversized glyph", got)
	}
}

func TestQueueRasterizeError(t *testing.T) {
	c := newCache(t, 64, 64)
	r := &fakeRasterizer{w: 4, h: 4, fail: 2}
	err := c.Queue(1, r, []text.PositionedGlyph{glyph(1, 0, 0, 8), glyph(2, 0, 0, 8)})
	if err == nil {
		t.Fatal("Queue() error = nil")
	}
	if _, ok := c.RectFor(1, glyph(1, 0, 0, 8)); !ok {
		t.Error("glyph before the failure should stay cached")
	}
}

func TestClear(t *testing.T) {
	c := newCache(t, 64, 64)
	if err := c.Queue(1, &fakeRasterizer{w: 4, h: 4}, []text.PositionedGlyph{glyph(1, 0, 0, 8)}); err != nil {
		t.Fatal(err)
	}
	c.Clear()
	if !c.Dirty() || c.Pending() != 1 || c.Stats().Entries != 0 {
		t.Errorf("after Clear: %+v dirty=%v, want only the zero fill pending", c.Stats(), c.Dirty())
	}
}

func TestEvictionZeroesTexture(t *testing.T) {
	c := newCache(t, 32, 32)
	r := &fakeRasterizer{w: 16, h: 16}
	tex := NewAlphaTexture(32, 32)

	for i := text.GlyphIndex(1); i <= 4; i++ {
		if err := c.Queue(1, r, []text.PositionedGlyph{glyph(i, 0, 0, 16)}); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Update(tex); err != nil {
		t.Fatal(err)
	}

	r.w, r.h = 8, 8
	if err := c.Queue(1, r, []text.PositionedGlyph{glyph(9, 0, 0, 12)}); err != nil {
		t.Fatal(err)
	}
	if err := c.Update(tex); err != nil {
		t.Fatal(err)
	}

	p, ok := c.RectFor(1, glyph(9, 0, 0, 12))
	if !ok {
		t.Fatal("new glyph not cached")
	}
	w, h := p.Width(), p.Height()
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			want := uint8(0)
			if x < w && y < h {
				want = 9
			}
			if got := tex.Image.AlphaAt(x, y).A; got != want {
				t.Fatalf("pixel (%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

// recordingTexture counts writes per region.
type recordingTexture struct {
	mu     sync.Mutex
	writes map[image.Rectangle]int
}

func (r *recordingTexture) WriteRegion(rect image.Rectangle, _ []byte) error {
	r.mu.Lock()
	r.writes[rect]++
	r.mu.Unlock()
	return nil
}

func TestConcurrentQueueAndUpdate(t *testing.T) {
	const (
		producers = 8
		perWorker = 50
	)
	c := newCache(t, 1024, 1024)
	r := &fakeRasterizer{w: 4, h: 4}
	tex := &recordingTexture{writes: make(map[image.Rectangle]int)}

	var wg sync.WaitGroup
	done := make(chan struct{})
	var updater sync.WaitGroup
	updater.Add(1)
	go func() {
		defer updater.Done()
		for {
			select {
			case <-done:
				return
			default:
				if err := c.Update(tex); err != nil {
					t.Errorf("Update() error = %v", err)
					return
				}
			}
		}
	}()

	// Two producers per glyph range, so every glyph is queued twice.
	for p := 0; p < producers*2; p++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				g := glyph(text.GlyphIndex(base*perWorker+i+1), 0, 0, 12)
				if err := c.Queue(1, r, []text.PositionedGlyph{g}); err != nil {
					t.Errorf("Queue() error = %v", err)
					return
				}
			}
		}(p % producers)
	}
	wg.Wait()
	close(done)
	updater.Wait()
	if err := c.Update(tex); err != nil {
		t.Fatal(err)
	}

	const total = producers * perWorker
	if got := r.calls.Load(); got != total {
		t.Errorf("rasterize calls = %d, want %d", got, total)
	}
	if len(tex.writes) != total {
		t.Errorf("distinct regions written = %d, want %d", len(tex.writes), total)
	}
	for rect, n := range tex.writes {
		if n != 1 {
			t.Errorf("region %v written %d times", rect, n)
		}
	}
	if st := c.Stats(); st.Uploads != total || st.Pending != 0 {
		t.Errorf("Stats = %+v", st)
	}
}

func TestAlphaTexture(t *testing.T) {
	tex := NewAlphaTexture(8, 8)
	if err := tex.WriteRegion(image.Rect(2, 3, 4, 5), []byte{1, 2, 3, 4}); err != nil {
		t.Fatal(err)
	}
	if got := tex.Image.AlphaAt(3, 4).A; got != 4 {
		t.Errorf("AlphaAt(3,4) = %d, want 4", got)
	}
	if err := tex.WriteRegion(image.Rect(6, 6, 10, 10), make([]byte, 16)); err == nil {
		t.Error("out of bounds write succeeded")
	}
	if err := tex.WriteRegion(image.Rect(0, 0, 2, 2), make([]byte, 3)); err == nil {
		t.Error("short pixel slice accepted")
	}
}
