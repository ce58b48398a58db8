package layer2d

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

const defaultTestCapacity = 16

func newTestContext(t *testing.T, opts ...Option) *Context {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Layer.Capacity = defaultTestCapacity
	opts = append([]Option{WithSystemFonts(nil)}, opts...)
	ctx, err := NewContext(cfg, opts...)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	return ctx
}

// writeSheet writes a horizontal sheet of frames w x h frames to a PNG in
// a temporary directory.
func writeSheet(t *testing.T, name string, w, h, frames int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w*frames, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w*frames; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x / w * 50), G: 100, B: 200, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func testSprite(t *testing.T, ctx *Context, name string, w, h, frames int) *Sprite {
	t.Helper()
	s, err := ctx.LoadSprite(writeSheet(t, name, w, h, frames))
	if err != nil {
		t.Fatalf("LoadSprite() error = %v", err)
	}
	return s
}

func testFont(t testing.TB, ctx *Context) *Font {
	t.Helper()
	f, err := ctx.FontFromBytes(goregular.TTF)
	if err != nil {
		t.Fatalf("FontFromBytes() error = %v", err)
	}
	return f
}

// recordingRenderer remembers the layers it was asked to draw.
type recordingRenderer struct {
	layers []*Layer
	err    error
}

func (r *recordingRenderer) DrawLayer(l *Layer) error {
	r.layers = append(r.layers, l)
	return r.err
}

func approx(a, b float32) bool {
	d := a - b
	return d < 1e-3 && d > -1e-3
}
