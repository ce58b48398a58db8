package layer2d

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/layer2d/internal/geombuf"
)

// Vertex is one corner of a textured quad in a layer.
type Vertex = geombuf.Vertex

// VerticesPerQuad is the number of vertices AddRect writes.
const VerticesPerQuad = 4

// Rect describes one textured quad.
type Rect struct {
	// Bucket and Texture select the texture array and its layer.
	Bucket  uint32
	Texture uint32

	// UV is the texture rectangle: U0, V0, U1, V1.
	UV [4]float32

	// X and Y locate the anchor point.
	X, Y float32

	// AnchorX and AnchorY are the anchor as a fraction of the size:
	// (0, 0) is the top-left corner, (0.5, 0.5) the center.
	AnchorX, AnchorY float32

	// Width and Height are the unscaled size in pixels.
	Width, Height float32

	Color    Color
	Rotation float32 // radians, around the anchor

	// ScaleX and ScaleY scale the quad around the anchor.
	ScaleX, ScaleY float32
}

// quad writes the four corners of r: top-left, top-right, bottom-left,
// bottom-right.
func (r *Rect) quad(v []Vertex) {
	x0 := -r.AnchorX * r.Width * r.ScaleX
	x1 := (r.Width - r.AnchorX*r.Width) * r.ScaleX
	y0 := -r.AnchorY * r.Height * r.ScaleY
	y1 := (r.Height - r.AnchorY*r.Height) * r.ScaleY

	corners := [4]struct{ ox, oy, u, v float32 }{
		{x0, y0, r.UV[0], r.UV[1]},
		{x1, y0, r.UV[2], r.UV[1]},
		{x0, y1, r.UV[0], r.UV[3]},
		{x1, y1, r.UV[2], r.UV[3]},
	}
	color := r.Color.Array()
	for i, c := range corners {
		v[i] = Vertex{
			Position:  [2]float32{r.X, r.Y},
			Offset:    [2]float32{c.ox, c.oy},
			Rotation:  r.Rotation,
			BucketID:  r.Bucket,
			TextureID: r.Texture,
			Color:     color,
			UV:        [2]float32{c.u, c.v},
		}
	}
}

// Layer is an ordered list of quads with its own transforms, blend mode
// and color.
//
// Every mutating method bumps the version after the change is complete.
// Layer is safe for concurrent use.
type Layer struct {
	ctx     *Context
	id      uint64
	version atomic.Uint64
	buf     *geombuf.Buffer

	viewMu sync.Mutex
	view   Mat4

	modelMu sync.Mutex
	model   Mat4

	blendMu sync.Mutex
	blend   BlendMode

	colorMu sync.Mutex
	color   Color
}

func newLayer(ctx *Context, id uint64, width, height float32) *Layer {
	return &Layer{
		ctx:   ctx,
		id:    id,
		buf:   geombuf.New(ctx.cfg.Layer.Capacity),
		view:  PixelToClip(width, height),
		model: Identity(),
		blend: BlendAlpha,
		color: ctx.layerColor,
	}
}

// ID returns the layer's process-unique id.
func (l *Layer) ID() uint64 { return l.id }

// Version returns the modification counter.
func (l *Layer) Version() uint64 { return l.version.Load() }

// Context returns the context the layer belongs to.
func (l *Layer) Context() *Context { return l.ctx }

func (l *Layer) touch() { l.version.Add(1) }

// Sprite adds one frame of s at (x, y), rotated around the sprite's anchor
// and scaled by (sx, sy). It panics if s is nil or not loaded.
func (l *Layer) Sprite(s *Sprite, frame int, x, y float32, color Color, rotation, sx, sy float32) {
	if s == nil || !s.loaded {
		panic("layer2d: drawing an unloaded sprite")
	}
	l.AddRect(Rect{
		Bucket:   s.bucket,
		Texture:  s.TextureID(frame),
		UV:       [4]float32{0, 0, s.uMax, s.vMax},
		X:        x,
		Y:        y,
		AnchorX:  s.anchorX,
		AnchorY:  s.anchorY,
		Width:    float32(s.width),
		Height:   float32(s.height),
		Color:    color,
		Rotation: rotation,
		ScaleX:   sx,
		ScaleY:   sy,
	})
}

// AddRect adds a quad.
func (l *Layer) AddRect(r Rect) {
	l.buf.Map(VerticesPerQuad, func(v []Vertex) {
		r.quad(v)
	})
	l.touch()
}

// AddRects adds quads as one contiguous run; quads added concurrently by
// other goroutines never land in between.
func (l *Layer) AddRects(rs ...Rect) {
	if len(rs) == 0 {
		return
	}
	l.buf.Map(len(rs)*VerticesPerQuad, func(v []Vertex) {
		for i := range rs {
			rs[i].quad(v[i*VerticesPerQuad : (i+1)*VerticesPerQuad])
		}
	})
	l.touch()
}

// Reset removes all quads.
func (l *Layer) Reset() {
	l.buf.Clear()
	l.touch()
}

// Len returns the number of vertices.
func (l *Layer) Len() int { return l.buf.Len() }

// Quads returns the number of quads.
func (l *Layer) Quads() int { return l.buf.Len() / VerticesPerQuad }

// View calls fn with the layer's vertices. fn must not retain the slice
// or modify the layer.
func (l *Layer) View(fn func(v []Vertex)) { l.buf.View(fn) }

// Vertices returns a copy of the layer's vertices.
func (l *Layer) Vertices() []Vertex { return l.buf.Snapshot() }

// SetViewMatrix sets the view matrix.
func (l *Layer) SetViewMatrix(m Mat4) {
	l.viewMu.Lock()
	l.view = m
	l.viewMu.Unlock()
	l.touch()
}

// ViewMatrix returns the view matrix.
func (l *Layer) ViewMatrix() Mat4 {
	l.viewMu.Lock()
	defer l.viewMu.Unlock()
	return l.view
}

// SetModelMatrix sets the model matrix.
func (l *Layer) SetModelMatrix(m Mat4) {
	l.modelMu.Lock()
	l.model = m
	l.modelMu.Unlock()
	l.touch()
}

// ModelMatrix returns the model matrix.
func (l *Layer) ModelMatrix() Mat4 {
	l.modelMu.Lock()
	defer l.modelMu.Unlock()
	return l.model
}

// SetBlendMode sets the blend mode.
func (l *Layer) SetBlendMode(b BlendMode) {
	l.blendMu.Lock()
	l.blend = b
	l.blendMu.Unlock()
	l.touch()
}

// BlendMode returns the blend mode.
func (l *Layer) BlendMode() BlendMode {
	l.blendMu.Lock()
	defer l.blendMu.Unlock()
	return l.blend
}

// SetColor sets the color multiplier applied to every quad.
func (l *Layer) SetColor(c Color) {
	l.colorMu.Lock()
	l.color = c
	l.colorMu.Unlock()
	l.touch()
}

// Color returns the color multiplier.
func (l *Layer) Color() Color {
	l.colorMu.Lock()
	defer l.colorMu.Unlock()
	return l.color
}

// Draw hands the layer to the context's renderer.
func (l *Layer) Draw() error {
	r := l.ctx.Renderer()
	if r == nil {
		return ErrNoRenderer
	}
	return r.DrawLayer(l)
}
