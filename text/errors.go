package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNoFontMatch is returned when no system font matches a FontInfo.
	ErrNoFontMatch = errors.New("text: no matching system font")

	// ErrInvalidSize is returned for non-positive or non-finite font sizes.
	ErrInvalidSize = errors.New("text: invalid font size")
)
