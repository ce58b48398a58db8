package glyphcache

import (
	"testing"

	"github.com/gogpu/layer2d/text"
)

func BenchmarkQueueHit(b *testing.B) {
	c := newCache(b, 1024, 1024)
	r := &fakeRasterizer{w: 8, h: 10}
	glyphs := make([]text.PositionedGlyph, 64)
	for i := range glyphs {
		glyphs[i] = glyph(text.GlyphIndex(i+1), float32(i*9), 20, 12)
	}
	if err := c.Queue(1, r, glyphs); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		if err := c.Queue(1, r, glyphs); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkQueueUpdate(b *testing.B) {
	r := &fakeRasterizer{w: 8, h: 10}
	glyphs := make([]text.PositionedGlyph, 64)
	for i := range glyphs {
		glyphs[i] = glyph(text.GlyphIndex(i+1), float32(i*9), 20, 12)
	}
	tex := NewAlphaTexture(1024, 1024)

	b.ReportAllocs()
	for b.Loop() {
		c := newCache(b, 1024, 1024)
		if err := c.Queue(1, r, glyphs); err != nil {
			b.Fatal(err)
		}
		if err := c.Update(tex); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRectFor(b *testing.B) {
	c := newCache(b, 1024, 1024)
	g := glyph(7, 3.3, 20, 12)
	if err := c.Queue(1, &fakeRasterizer{w: 8, h: 10}, []text.PositionedGlyph{g}); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for b.Loop() {
		if _, ok := c.RectFor(1, g); !ok {
			b.Fatal("miss")
		}
	}
}
