package layer2d

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/gogpu/layer2d/bucket"
	"github.com/gogpu/layer2d/text"
)

// Font draws text into layers through the context's glyph cache.
//
// A Font is immutable. WithSize and WithColor return new fonts that share
// the source and the id; cache entries are keyed by size as well, so
// sizes never collide.
type Font struct {
	ctx    *Context
	id     uint64
	source *text.Source
	size   float32
	color  Color
}

// ID returns the font id the glyph cache namespaces entries by.
func (f *Font) ID() uint64 { return f.id }

// Source returns the shared font data.
func (f *Font) Source() *text.Source { return f.source }

// Size returns the size in pixels per em.
func (f *Font) Size() float32 { return f.size }

// Color returns the text color.
func (f *Font) Color() Color { return f.color }

// WithSize returns a copy of f at size.
func (f *Font) WithSize(size float32) *Font {
	c := *f
	c.size = size
	return &c
}

// WithColor returns a copy of f drawing in color.
func (f *Font) WithColor(color Color) *Font {
	c := *f
	c.color = color
	return &c
}

// Metrics returns the vertical metrics at the font's size.
func (f *Font) Metrics() text.VMetrics {
	return f.source.VMetrics(f.size)
}

// Layout positions s without drawing it. maxWidth <= 0 disables wrapping.
func (f *Font) Layout(s string, maxWidth float32) []text.PositionedGlyph {
	return text.LayoutParagraph(f.source, f.size, maxWidth, s)
}

// Measure returns the size of s laid out with maxWidth.
func (f *Font) Measure(s string, maxWidth float32) (w, h float32) {
	return text.Measure(f.source, f.size, maxWidth, s)
}

// Write draws s with its top-left corner at (x, y). '\r' starts a new line.
func (f *Font) Write(l *Layer, s string, x, y float32) error {
	return f.WriteTransformed(l, s, x, y, 0, 0, 1, 1)
}

// WriteWrapped draws s, wrapping lines that would exceed maxWidth pixels.
func (f *Font) WriteWrapped(l *Layer, s string, x, y, maxWidth float32) error {
	return f.WriteTransformed(l, s, x, y, maxWidth, 0, 1, 1)
}

// WriteTransformed draws s rotated around (x, y) and scaled by (sx, sy).
// Glyphs are rasterized at the font size and scaled as quads.
func (f *Font) WriteTransformed(l *Layer, s string, x, y, maxWidth, rotation, sx, sy float32) error {
	glyphs := f.Layout(s, maxWidth)
	if len(glyphs) == 0 {
		return nil
	}
	cache := f.ctx.glyphs
	if err := cache.Queue(f.id, f.source, glyphs); err != nil {
		return fmt.Errorf("layer2d: write %q: %w", s, err)
	}

	cos, sin := math32.Cos(rotation), math32.Sin(rotation)
	rects := make([]Rect, 0, len(glyphs))
	for _, g := range glyphs {
		p, ok := cache.RectFor(f.id, g)
		if !ok {
			continue
		}
		dx := float32(p.Screen.Min.X) * sx
		dy := float32(p.Screen.Min.Y) * sy
		rects = append(rects, Rect{
			Bucket:   bucket.Glyphs,
			Texture:  0,
			UV:       p.UV,
			X:        x + dx*cos - dy*sin,
			Y:        y + dx*sin + dy*cos,
			Width:    float32(p.Width()),
			Height:   float32(p.Height()),
			Color:    f.color,
			Rotation: rotation,
			ScaleX:   sx,
			ScaleY:   sy,
		})
	}
	l.AddRects(rects...)
	return nil
}
