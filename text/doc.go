// Package text turns strings into positioned glyphs and glyph bitmaps.
//
// The package is split along the same lines as the rest of layer2d:
//
//   - Source: shared, parsed font data (TrueType/OpenType, via golang.org/x/image)
//   - Face: the metric queries paragraph layout needs
//   - Rasterizer: produces 8-bit coverage bitmaps for the glyph cache
//   - SystemFonts: enumerates installed fonts (go-text/typesetting/fontscan)
//
// # Layout
//
// LayoutParagraph positions glyphs left to right starting at (0, ascent).
// A carriage return ('\r') starts a new line; a line feed ('\n') is ignored,
// as are all other control characters. When a width is given, a glyph whose
// pixel right edge would pass it is moved to the start of the next line.
//
//	src, err := text.NewSource(goregular.TTF)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	glyphs := text.LayoutParagraph(src, 16, 200, "Hello,\rworld")
//
// Coordinates are in pixels with y pointing down.
package text
