package layer2d

import (
	"errors"
	"fmt"
)

// Sentinel errors for layer2d package.
var (
	// ErrNoRenderer is returned by Layer.Draw when the context has no renderer.
	ErrNoRenderer = errors.New("layer2d: no renderer configured")

	// ErrNoSystemFonts is returned by font queries when the context was
	// created without system font support.
	ErrNoSystemFonts = errors.New("layer2d: system fonts not available")

	// ErrInvalidColor is returned for unparseable hex colors.
	ErrInvalidColor = errors.New("layer2d: invalid color")
)

// ConfigError reports an invalid Config field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("layer2d: invalid config %s: %s", e.Field, e.Reason)
}
