package layer2d

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/layer2d/atlas"
	"github.com/gogpu/layer2d/glyphcache"
	"github.com/gogpu/layer2d/text"
)

// Config configures a Context. The zero value is not valid; start from
// DefaultConfig or LoadConfig.
//
// Config maps to a TOML file:
//
//	[glyph_cache]
//	width = 1024
//	height = 1024
//	scale_tolerance = 0.1
//	position_tolerance = 0.1
//	padding = 1
//
//	[layer]
//	capacity = 4096
//	color = "#ffffff"
//
//	[font]
//	size = 12
//	color = "#ffffffff"
//	cache_dir = ""
//
//	[sprites]
//	max_layers = 2048
//	workers = 4
type Config struct {
	GlyphCache GlyphCacheConfig `toml:"glyph_cache"`
	Layer      LayerConfig      `toml:"layer"`
	Font       FontConfig       `toml:"font"`
	Sprites    SpriteConfig     `toml:"sprites"`
}

// GlyphCacheConfig sizes the shared glyph texture.
type GlyphCacheConfig struct {
	Width             int     `toml:"width"`
	Height            int     `toml:"height"`
	ScaleTolerance    float32 `toml:"scale_tolerance"`
	PositionTolerance float32 `toml:"position_tolerance"`
	Padding           int     `toml:"padding"`
}

// LayerConfig holds defaults for new layers.
type LayerConfig struct {
	// Capacity is the initial vertex capacity of a layer.
	Capacity int `toml:"capacity"`

	// Color is the default layer color multiplier as a hex string.
	Color string `toml:"color"`
}

// FontConfig holds defaults for new fonts.
type FontConfig struct {
	Size     float32 `toml:"size"`
	Color    string  `toml:"color"`
	CacheDir string  `toml:"cache_dir"` // system font index; "" uses os.UserCacheDir
}

// SpriteConfig limits sprite loading.
type SpriteConfig struct {
	// MaxLayers is the texture array depth limit per bucket.
	MaxLayers int `toml:"max_layers"`

	// Workers bounds concurrent decodes in Context.LoadSprites. 0 means
	// no limit.
	Workers int `toml:"workers"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	gc := glyphcache.DefaultConfig()
	return Config{
		GlyphCache: GlyphCacheConfig{
			Width:             gc.Width,
			Height:            gc.Height,
			ScaleTolerance:    gc.ScaleTolerance,
			PositionTolerance: gc.PositionTolerance,
			Padding:           gc.Padding,
		},
		Layer: LayerConfig{
			Capacity: 4096,
			Color:    "#ffffff",
		},
		Font: FontConfig{
			Size:  text.DefaultFontSize,
			Color: "#ffffffff",
		},
		Sprites: SpriteConfig{
			MaxLayers: atlas.DefaultMaxLayers,
			Workers:   4,
		},
	}
}

// LoadConfig reads a TOML file. Keys missing from the file keep their
// DefaultConfig value.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("layer2d: read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("layer2d: %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig parses TOML data over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := c.glyphCache().Validate(); err != nil {
		var ce *glyphcache.ConfigError
		if errors.As(err, &ce) {
			return &ConfigError{Field: "glyph_cache." + ce.Field, Reason: ce.Reason}
		}
		return err
	}
	if c.Layer.Capacity < 0 {
		return &ConfigError{Field: "layer.capacity", Reason: "must not be negative"}
	}
	if _, err := ParseHex(c.Layer.Color); err != nil {
		return &ConfigError{Field: "layer.color", Reason: err.Error()}
	}
	if !(c.Font.Size > 0) {
		return &ConfigError{Field: "font.size", Reason: "must be positive"}
	}
	if _, err := ParseHex(c.Font.Color); err != nil {
		return &ConfigError{Field: "font.color", Reason: err.Error()}
	}
	if c.Sprites.MaxLayers < 0 {
		return &ConfigError{Field: "sprites.max_layers", Reason: "must not be negative"}
	}
	if c.Sprites.Workers < 0 {
		return &ConfigError{Field: "sprites.workers", Reason: "must not be negative"}
	}
	return nil
}

func (c Config) glyphCache() glyphcache.Config {
	return glyphcache.Config{
		Width:             c.GlyphCache.Width,
		Height:            c.GlyphCache.Height,
		ScaleTolerance:    c.GlyphCache.ScaleTolerance,
		PositionTolerance: c.GlyphCache.PositionTolerance,
		Padding:           c.GlyphCache.Padding,
	}
}
