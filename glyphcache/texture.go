package glyphcache

import (
	"fmt"
	"image"
)

// AlphaTexture is a CPU-side Texture backed by an *image.Alpha.
type AlphaTexture struct {
	Image *image.Alpha
}

// NewAlphaTexture returns a transparent width x height texture.
func NewAlphaTexture(width, height int) *AlphaTexture {
	return &AlphaTexture{Image: image.NewAlpha(image.Rect(0, 0, width, height))}
}

// WriteRegion implements Texture.
func (t *AlphaTexture) WriteRegion(rect image.Rectangle, pix []byte) error {
	if !rect.In(t.Image.Bounds()) {
		return fmt.Errorf("glyphcache: region %v outside texture %v", rect, t.Image.Bounds())
	}
	w := rect.Dx()
	if len(pix) != w*rect.Dy() {
		return fmt.Errorf("glyphcache: region %v needs %d bytes, got %d", rect, w*rect.Dy(), len(pix))
	}
	for y := 0; y < rect.Dy(); y++ {
		off := t.Image.PixOffset(rect.Min.X, rect.Min.Y+y)
		copy(t.Image.Pix[off:off+w], pix[y*w:(y+1)*w])
	}
	return nil
}
