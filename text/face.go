package text

import (
	"image"
	"math"
)

// GlyphIndex identifies a glyph within a font. Index 0 is the font's
// missing-glyph (.notdef) glyph.
type GlyphIndex uint16

// Point is a position in pixels.
type Point struct {
	X, Y float32
}

// Rect is a glyph extent in pixels relative to its baseline origin.
// Y grows downward, so MinY is negative for glyphs above the baseline.
type Rect struct {
	MinX, MinY, MaxX, MaxY float32
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// VMetrics are the vertical metrics of a font at one size.
// Descent is negative (below the baseline).
type VMetrics struct {
	Ascent  float32
	Descent float32
	LineGap float32
}

// LineHeight returns the baseline-to-baseline distance.
func (m VMetrics) LineHeight() float32 {
	return m.Ascent - m.Descent + m.LineGap
}

// Face is the font query surface needed by LayoutParagraph.
// Implementations must be safe for concurrent use.
type Face interface {
	// VMetrics returns the vertical metrics at size pixels per em.
	VMetrics(size float32) VMetrics

	// GlyphIndex maps a rune to a glyph. ok is false if the font has no
	// glyph for r.
	GlyphIndex(r rune) (g GlyphIndex, ok bool)

	// Kerning returns the horizontal adjustment between a and b.
	Kerning(size float32, a, b GlyphIndex) float32

	// Advance returns the horizontal advance of g.
	Advance(size float32, g GlyphIndex) float32

	// Bounds returns the exact extent of g. ok is false for glyphs without
	// an outline, such as a space.
	Bounds(size float32, g GlyphIndex) (r Rect, ok bool)
}

// Bitmap is an 8-bit coverage image of a single glyph.
// Bounds is in pixels relative to the integer origin the glyph was
// rasterized at; Pix holds Bounds.Dx()*Bounds.Dy() bytes, row-major.
type Bitmap struct {
	Bounds image.Rectangle
	Pix    []byte
}

// Empty reports whether the bitmap has no pixels.
func (b Bitmap) Empty() bool {
	return b.Bounds.Empty()
}

// Rasterizer renders glyph coverage bitmaps.
type Rasterizer interface {
	// Rasterize renders g at size with the fractional offset sub (each
	// component in [0, 1)) applied to the origin.
	Rasterize(g GlyphIndex, size float32, sub Point) (Bitmap, error)
}

// PositionedGlyph is one glyph placed by LayoutParagraph.
type PositionedGlyph struct {
	Rune     rune
	Index    GlyphIndex
	Size     float32
	Position Point // baseline origin
	Advance  float32
	Bounds   Rect // relative to Position
	Outline  bool // false for blank glyphs
}

// PixelBounds returns the integer pixel box covered by the glyph at its
// position. ok is false for blank glyphs.
func (g PositionedGlyph) PixelBounds() (image.Rectangle, bool) {
	if !g.Outline || g.Bounds.Empty() {
		return image.Rectangle{}, false
	}
	return image.Rect(
		int(math.Floor(float64(g.Position.X+g.Bounds.MinX))),
		int(math.Floor(float64(g.Position.Y+g.Bounds.MinY))),
		int(math.Ceil(float64(g.Position.X+g.Bounds.MaxX))),
		int(math.Ceil(float64(g.Position.Y+g.Bounds.MaxY))),
	), true
}
