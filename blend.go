package layer2d

import "fmt"

// BlendMode selects how a layer is composited onto the target.
type BlendMode uint8

const (
	// BlendAlpha is standard source-over blending.
	BlendAlpha BlendMode = iota

	// BlendAdd adds the source, weighted by its alpha.
	BlendAdd

	// BlendMultiply multiplies source and destination.
	BlendMultiply

	// BlendScreen is the inverse of multiply.
	BlendScreen

	// BlendLighten keeps the per-channel maximum.
	BlendLighten

	// BlendDarken keeps the per-channel minimum.
	BlendDarken

	// BlendReplace overwrites the destination.
	BlendReplace
)

var blendNames = [...]string{
	BlendAlpha:    "alpha",
	BlendAdd:      "add",
	BlendMultiply: "multiply",
	BlendScreen:   "screen",
	BlendLighten:  "lighten",
	BlendDarken:   "darken",
	BlendReplace:  "replace",
}

// String returns the blend mode name.
func (b BlendMode) String() string {
	if int(b) < len(blendNames) {
		return blendNames[b]
	}
	return fmt.Sprintf("BlendMode(%d)", uint8(b))
}

// ParseBlendMode returns the mode named s.
func ParseBlendMode(s string) (BlendMode, error) {
	for i, name := range blendNames {
		if name == s {
			return BlendMode(i), nil
		}
	}
	return 0, fmt.Errorf("layer2d: unknown blend mode %q", s)
}
