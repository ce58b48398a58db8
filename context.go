package layer2d

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/layer2d/atlas"
	"github.com/gogpu/layer2d/glyphcache"
	"github.com/gogpu/layer2d/idgen"
	"github.com/gogpu/layer2d/internal/cache"
	"github.com/gogpu/layer2d/text"
)

// sourceCacheSize bounds the parsed font sources kept by a context.
const sourceCacheSize = 32

// sourceKey identifies a parsed font source: a file path, or a system font
// query with Size cleared.
type sourceKey struct {
	path string
	info text.FontInfo
}

// Renderer draws layers. render.Pass is the standard implementation.
type Renderer interface {
	DrawLayer(l *Layer) error
}

// Context holds the resources shared by layers, sprites and fonts.
//
// Context is safe for concurrent use.
type Context struct {
	cfg        Config
	layerColor Color
	fontColor  Color

	layerIDs *idgen.Allocator
	fontIDs  *idgen.Allocator

	decoder     atlas.Decoder
	store       *atlas.Store
	glyphs      *glyphcache.Cache
	systemFonts *text.SystemFonts
	sources     *cache.LRU[sourceKey, *text.Source]

	mu       sync.RWMutex
	renderer Renderer
}

// NewContext creates a context from a validated configuration.
func NewContext(cfg Config, opts ...Option) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	glyphs, err := glyphcache.New(cfg.glyphCache())
	if err != nil {
		return nil, err
	}
	// Validate already checked both colors.
	layerColor, _ := ParseHex(cfg.Layer.Color)
	fontColor, _ := ParseHex(cfg.Font.Color)

	c := &Context{
		cfg:         cfg,
		layerColor:  layerColor,
		fontColor:   fontColor,
		layerIDs:    o.layerIDs,
		fontIDs:     o.fontIDs,
		decoder:     o.decoder,
		store:       atlas.NewStore(cfg.Sprites.MaxLayers),
		glyphs:      glyphs,
		systemFonts: o.systemFonts,
		sources:     cache.New[sourceKey, *text.Source](sourceCacheSize),
		renderer:    o.renderer,
	}
	if c.layerIDs == nil {
		c.layerIDs = idgen.New(0)
	}
	if c.fontIDs == nil {
		c.fontIDs = idgen.New(0)
	}
	if c.decoder == nil {
		c.decoder = atlas.FileDecoder{}
	}
	if c.systemFonts == nil && !o.noSystem {
		c.systemFonts = text.NewSystemFonts(cfg.Font.CacheDir)
	}
	return c, nil
}

// Config returns the configuration the context was created with.
func (c *Context) Config() Config {
	return c.cfg
}

// SetRenderer replaces the renderer used by Layer.Draw.
func (c *Context) SetRenderer(r Renderer) {
	c.mu.Lock()
	c.renderer = r
	c.mu.Unlock()
}

// Renderer returns the current renderer, or nil.
func (c *Context) Renderer() Renderer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.renderer
}

// Store returns the sprite texture store.
func (c *Context) Store() *atlas.Store {
	return c.store
}

// Glyphs returns the glyph cache.
func (c *Context) Glyphs() *glyphcache.Cache {
	return c.glyphs
}

// NewLayer creates a layer for a width x height pixel target.
func (c *Context) NewLayer(width, height float32) *Layer {
	return newLayer(c, c.layerIDs.Next(), width, height)
}

// LoadSprite loads a sprite sheet and stores its frames.
func (c *Context) LoadSprite(path string) (*Sprite, error) {
	sheet, err := atlas.LoadSpritesheet(c.decoder, path)
	if err != nil {
		return nil, err
	}
	return c.CreateSprite(sheet)
}

// LoadSprites decodes several sheets concurrently and stores them in
// argument order, so texture ids do not depend on decode timing. On error
// no sheet is stored.
func (c *Context) LoadSprites(ctx context.Context, paths ...string) ([]*Sprite, error) {
	sheets := make([]*atlas.Sheet, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if c.cfg.Sprites.Workers > 0 {
		g.SetLimit(c.cfg.Sprites.Workers)
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sheet, err := atlas.LoadSpritesheet(c.decoder, path)
			if err != nil {
				return err
			}
			sheets[i] = sheet
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sprites := make([]*Sprite, len(sheets))
	for i, sheet := range sheets {
		s, err := c.CreateSprite(sheet)
		if err != nil {
			return nil, err
		}
		sprites[i] = s
	}
	return sprites, nil
}

// CreateSprite stores the frames of an already sliced sheet.
func (c *Context) CreateSprite(sheet *atlas.Sheet) (*Sprite, error) {
	base, err := c.store.AppendSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("layer2d: sprite %s: %w", sheet.Name, err)
	}
	return &Sprite{
		width:   sheet.Params.Width,
		height:  sheet.Params.Height,
		frames:  len(sheet.Frames),
		bucket:  uint32(sheet.Bucket.ID),
		base:    base,
		uMax:    sheet.UMax(),
		vMax:    sheet.VMax(),
		anchorX: 0.5,
		anchorY: 0.5,
		loaded:  true,
	}, nil
}

// FontFromBytes creates a font from TrueType or OpenType data.
func (c *Context) FontFromBytes(data []byte) (*Font, error) {
	src, err := text.NewSource(data)
	if err != nil {
		return nil, err
	}
	return c.FontFromSource(src), nil
}

// FontFromFile creates a font from a font file. The parsed file is shared
// with earlier fonts loaded from the same path.
func (c *Context) FontFromFile(path string) (*Font, error) {
	src, err := c.sources.GetOrLoad(sourceKey{path: path}, func() (*text.Source, error) {
		src, err := text.NewSourceFromFile(path)
		if err != nil {
			return nil, err
		}
		Logger().Info("layer2d: font loaded", "path", path, "family", src.Name())
		return src, nil
	})
	if err != nil {
		return nil, err
	}
	return c.FontFromSource(src), nil
}

// FontFromInfo creates a font from the best matching system font.
// The font size is info.Size.
func (c *Context) FontFromInfo(info text.FontInfo) (*Font, error) {
	if c.systemFonts == nil {
		return nil, ErrNoSystemFonts
	}
	query := info
	query.Size = 0
	src, err := c.sources.GetOrLoad(sourceKey{info: query}, func() (*text.Source, error) {
		return c.systemFonts.LoadSource(info)
	})
	if err != nil {
		return nil, err
	}
	f := c.FontFromSource(src)
	if info.Size > 0 {
		f.size = info.Size
	}
	return f, nil
}

// FontFromSource creates a font sharing src. Each call allocates a new
// font id, so glyphs are cached separately from other fonts using src.
func (c *Context) FontFromSource(src *text.Source) *Font {
	return &Font{
		ctx:    c,
		id:     c.fontIDs.Next(),
		source: src,
		size:   c.cfg.Font.Size,
		color:  c.fontColor,
	}
}

// QueryAllFonts returns the family names of all installed fonts.
func (c *Context) QueryAllFonts() ([]string, error) {
	if c.systemFonts == nil {
		return nil, ErrNoSystemFonts
	}
	return c.systemFonts.QueryAll()
}

// QuerySpecificFonts returns the family names with a face matching info.
func (c *Context) QuerySpecificFonts(info text.FontInfo) ([]string, error) {
	if c.systemFonts == nil {
		return nil, ErrNoSystemFonts
	}
	return c.systemFonts.QuerySpecific(info)
}
