package text

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Source is a parsed TrueType or OpenType font.
// It implements Face and Rasterizer over golang.org/x/image/font/sfnt.
//
// A Source is immutable after creation and safe for concurrent use; every
// query uses its own sfnt.Buffer.
type Source struct {
	data []byte
	font *sfnt.Font
	name string
}

// NewSource parses font data. The data slice is copied.
func NewSource(data []byte) (*Source, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	f, err := sfnt.Parse(dataCopy)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	return newSource(dataCopy, f), nil
}

// NewSourceIndex parses the font at index within a font collection
// (.ttc/.otc). Plain font files accept index 0.
func NewSourceIndex(data []byte, index int) (*Source, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	c, err := sfnt.ParseCollection(dataCopy)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font collection: %w", err)
	}
	f, err := c.Font(index)
	if err != nil {
		return nil, fmt.Errorf("text: font %d in collection: %w", index, err)
	}
	return newSource(dataCopy, f), nil
}

// NewSourceFromFile loads a Source from a font file path.
func NewSourceFromFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file %q: %w", path, err)
	}
	return NewSource(data)
}

func newSource(data []byte, f *sfnt.Font) *Source {
	s := &Source{data: data, font: f}
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil {
		s.name = name
	}
	return s
}

// Name returns the font family name, or "" if the font has none.
func (s *Source) Name() string {
	return s.name
}

// Data returns the raw font bytes. The slice must not be modified.
func (s *Source) Data() []byte {
	return s.data
}

// NumGlyphs returns the number of glyphs in the font.
func (s *Source) NumGlyphs() int {
	return s.font.NumGlyphs()
}

// VMetrics implements Face.
func (s *Source) VMetrics(size float32) VMetrics {
	var buf sfnt.Buffer
	m, err := s.font.Metrics(&buf, ppem(size), font.HintingNone)
	if err != nil {
		return VMetrics{}
	}
	ascent := fixedToFloat32(m.Ascent)
	descent := fixedToFloat32(m.Descent) // positive below baseline
	gap := fixedToFloat32(m.Height) - ascent - descent
	if gap < 0 {
		gap = 0
	}
	return VMetrics{Ascent: ascent, Descent: -descent, LineGap: gap}
}

// GlyphIndex implements Face.
func (s *Source) GlyphIndex(r rune) (GlyphIndex, bool) {
	var buf sfnt.Buffer
	idx, err := s.font.GlyphIndex(&buf, r)
	if err != nil || idx == 0 {
		return 0, false
	}
	return GlyphIndex(idx), true
}

// Kerning implements Face. Fonts without a kern table report 0.
func (s *Source) Kerning(size float32, a, b GlyphIndex) float32 {
	var buf sfnt.Buffer
	k, err := s.font.Kern(&buf, sfnt.GlyphIndex(a), sfnt.GlyphIndex(b), ppem(size), font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat32(k)
}

// Advance implements Face.
func (s *Source) Advance(size float32, g GlyphIndex) float32 {
	var buf sfnt.Buffer
	adv, err := s.font.GlyphAdvance(&buf, sfnt.GlyphIndex(g), ppem(size), font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat32(adv)
}

// Bounds implements Face.
func (s *Source) Bounds(size float32, g GlyphIndex) (Rect, bool) {
	var buf sfnt.Buffer
	segs, err := s.font.LoadGlyph(&buf, sfnt.GlyphIndex(g), ppem(size), nil)
	if err != nil || len(segs) == 0 {
		return Rect{}, false
	}
	b := segs.Bounds()
	r := Rect{
		MinX: fixedToFloat32(b.Min.X),
		MinY: fixedToFloat32(b.Min.Y),
		MaxX: fixedToFloat32(b.Max.X),
		MaxY: fixedToFloat32(b.Max.Y),
	}
	return r, !r.Empty()
}

// Rasterize implements Rasterizer. Outlines are filled with
// golang.org/x/image/vector; blank glyphs yield an empty Bitmap.
func (s *Source) Rasterize(g GlyphIndex, size float32, sub Point) (Bitmap, error) {
	if !(size > 0) || math.IsInf(float64(size), 0) {
		return Bitmap{}, ErrInvalidSize
	}
	var buf sfnt.Buffer
	segs, err := s.font.LoadGlyph(&buf, sfnt.GlyphIndex(g), ppem(size), nil)
	if err != nil {
		if errors.Is(err, sfnt.ErrNotFound) {
			return Bitmap{}, nil
		}
		return Bitmap{}, fmt.Errorf("text: load glyph %d: %w", g, err)
	}
	if len(segs) == 0 {
		return Bitmap{}, nil
	}

	b := segs.Bounds()
	ox := sub.X
	oy := sub.Y
	minX := int(math.Floor(float64(fixedToFloat32(b.Min.X) + ox)))
	minY := int(math.Floor(float64(fixedToFloat32(b.Min.Y) + oy)))
	maxX := int(math.Ceil(float64(fixedToFloat32(b.Max.X) + ox)))
	maxY := int(math.Ceil(float64(fixedToFloat32(b.Max.Y) + oy)))
	w, h := maxX-minX, maxY-minY
	if w <= 0 || h <= 0 {
		return Bitmap{}, nil
	}

	at := func(p fixed.Point26_6) (float32, float32) {
		return fixedToFloat32(p.X) + ox - float32(minX), fixedToFloat32(p.Y) + oy - float32(minY)
	}

	r := vector.NewRasterizer(w, h)
	r.DrawOp = draw.Src
	open := false
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				r.ClosePath()
			}
			r.MoveTo(at(seg.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			r.LineTo(at(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			x1, y1 := at(seg.Args[0])
			x2, y2 := at(seg.Args[1])
			r.QuadTo(x1, y1, x2, y2)
		case sfnt.SegmentOpCubeTo:
			x1, y1 := at(seg.Args[0])
			x2, y2 := at(seg.Args[1])
			x3, y3 := at(seg.Args[2])
			r.CubeTo(x1, y1, x2, y2, x3, y3)
		}
	}
	if open {
		r.ClosePath()
	}

	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return Bitmap{Bounds: image.Rect(minX, minY, maxX, maxY), Pix: dst.Pix}, nil
}

func ppem(size float32) fixed.Int26_6 {
	return fixed.Int26_6(size * 64)
}

func fixedToFloat32(x fixed.Int26_6) float32 {
	return float32(x) / 64
}

var (
	_ Face       = (*Source)(nil)
	_ Rasterizer = (*Source)(nil)
)
