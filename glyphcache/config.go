package glyphcache

// Config configures a Cache.
type Config struct {
	// Width and Height of the cache texture in pixels.
	Width, Height int

	// ScaleTolerance is the size difference, in pixels per em, below which
	// two glyphs share a cache entry.
	ScaleTolerance float32

	// PositionTolerance is the sub-pixel offset difference below which two
	// glyphs share a cache entry. Must be in (0, 1].
	PositionTolerance float32

	// Padding is the empty border kept around each glyph in the texture.
	Padding int
}

// DefaultConfig returns a 1024x1024 cache with 0.1 tolerances and one
// pixel of padding.
func DefaultConfig() Config {
	return Config{
		Width:             1024,
		Height:            1024,
		ScaleTolerance:    0.1,
		PositionTolerance: 0.1,
		Padding:           1,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return &ConfigError{Field: "Width", Reason: "must be positive"}
	case c.Height <= 0:
		return &ConfigError{Field: "Height", Reason: "must be positive"}
	case !(c.ScaleTolerance > 0):
		return &ConfigError{Field: "ScaleTolerance", Reason: "must be positive"}
	case !(c.PositionTolerance > 0) || c.PositionTolerance > 1:
		return &ConfigError{Field: "PositionTolerance", Reason: "must be in (0, 1]"}
	case c.PositionTolerance < 1.0/255:
		return &ConfigError{Field: "PositionTolerance", Reason: "must be at least 1/255"}
	case c.Padding < 0:
		return &ConfigError{Field: "Padding", Reason: "must not be negative"}
	}
	return nil
}
