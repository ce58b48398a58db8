package text

import (
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// LayoutParagraph positions the glyphs of s using face at size.
//
// The input is NFC-normalized first. The caret starts at (0, ascent).
// '\r' moves to the start of the next line; '\n' and other control
// characters are skipped. Runes without a glyph are skipped and do not
// affect kerning. If width > 0, a glyph whose pixel right edge exceeds
// width is moved to the next line and is not kerned against its
// successor.
func LayoutParagraph(face Face, size, width float32, s string) []PositionedGlyph {
	vm := face.VMetrics(size)
	advanceHeight := vm.LineHeight()
	limit := int(width)

	s = norm.NFC.String(s)
	glyphs := make([]PositionedGlyph, 0, len(s))
	caret := Point{X: 0, Y: vm.Ascent}

	var prev GlyphIndex
	hasPrev := false

	for _, r := range s {
		if unicode.IsControl(r) {
			if r == '\r' {
				caret = Point{X: 0, Y: caret.Y + advanceHeight}
			}
			continue
		}

		idx, ok := face.GlyphIndex(r)
		if !ok {
			continue
		}
		if hasPrev {
			caret.X += face.Kerning(size, prev, idx)
		}
		prev, hasPrev = idx, true

		g := PositionedGlyph{
			Rune:     r,
			Index:    idx,
			Size:     size,
			Position: caret,
			Advance:  face.Advance(size, idx),
		}
		g.Bounds, g.Outline = face.Bounds(size, idx)

		if bb, ok := g.PixelBounds(); ok && width > 0 && bb.Max.X > limit {
			caret = Point{X: 0, Y: caret.Y + advanceHeight}
			g.Position = caret
			hasPrev = false
		}

		caret.X += g.Advance
		glyphs = append(glyphs, g)
	}
	return glyphs
}

// Measure returns the width and height of the box enclosing the laid out
// glyphs, measured from the layout origin.
func Measure(face Face, size, width float32, s string) (w, h float32) {
	glyphs := LayoutParagraph(face, size, width, s)
	vm := face.VMetrics(size)
	for _, g := range glyphs {
		if right := g.Position.X + g.Advance; right > w {
			w = right
		}
		if bottom := g.Position.Y - vm.Descent; bottom > h {
			h = bottom
		}
	}
	return w, h
}
