package layer2d

import "testing"

func BenchmarkLayerSprite(b *testing.B) {
	ctx, err := NewContext(DefaultConfig(), WithSystemFonts(nil))
	if err != nil {
		b.Fatal(err)
	}
	s := &Sprite{width: 32, height: 32, frames: 4, bucket: 2, uMax: 1, vMax: 1, anchorX: 0.5, anchorY: 0.5, loaded: true}
	l := ctx.NewLayer(800, 600)
	b.ReportAllocs()
	for i := 0; b.Loop(); i++ {
		if l.Quads() >= 4096 {
			l.Reset()
		}
		l.Sprite(s, i, 100, 100, White, 0.5, 1, 1)
	}
}

func BenchmarkFontWrite(b *testing.B) {
	ctx, err := NewContext(DefaultConfig(), WithSystemFonts(nil))
	if err != nil {
		b.Fatal(err)
	}
	f := testFont(b, ctx).WithSize(16)
	l := ctx.NewLayer(800, 600)
	b.ReportAllocs()
	for b.Loop() {
		l.Reset()
		if err := f.Write(l, "The quick brown fox jumps over the lazy dog", 10, 10); err != nil {
			b.Fatal(err)
		}
	}
}
