package glyphcache

import (
	"errors"
	"fmt"
)

var (
	// ErrCacheTooSmall is returned by Queue when a single batch of glyphs
	// does not fit into an empty cache texture.
	ErrCacheTooSmall = errors.New("glyphcache: glyph batch does not fit in cache texture")

	// ErrNilTexture is returned by Update when pending uploads exist but no
	// texture was given.
	ErrNilTexture = errors.New("glyphcache: nil texture")

	// errFull signals that the packer ran out of space mid-batch.
	errFull = errors.New("glyphcache: cache full")
)

// ConfigError reports an invalid Config field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("glyphcache: invalid %s: %s", e.Field, e.Reason)
}
