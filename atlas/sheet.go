package atlas

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/anthonynsimon/bild/transform"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/layer2d/bucket"
	"github.com/gogpu/layer2d/internal/logx"
)

// Sheet is a sprite sheet cut into frames and padded to its bucket size.
type Sheet struct {
	// Name is the base name of the source file.
	Name string

	// Params are the frame parameters the sheet was cut with.
	Params FrameParameters

	// Bucket is the texture array the frames belong in.
	Bucket bucket.Info

	// Frames hold one Bucket.Size x Bucket.Size image per frame. Pixels
	// outside the frame are transparent.
	Frames []*image.RGBA
}

// UMax returns the horizontal texture coordinate of the frame's right edge.
func (s *Sheet) UMax() float32 {
	return float32(s.Params.Width) / float32(s.Bucket.Size)
}

// VMax returns the vertical texture coordinate of the frame's bottom edge.
func (s *Sheet) VMax() float32 {
	return float32(s.Params.Height) / float32(s.Bucket.Size)
}

// LoadSpritesheet decodes path with dec and cuts it into frames.
// Failures are returned as *LoadError.
func LoadSpritesheet(dec Decoder, path string) (*Sheet, error) {
	if dec == nil {
		dec = FileDecoder{}
	}
	img, err := dec.Decode(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	sheet, err := SliceSheet(path, img)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	logx.Logger().Info("atlas: sprite sheet loaded",
		"path", path,
		"frames", len(sheet.Frames),
		"frame_w", sheet.Params.Width,
		"frame_h", sheet.Params.Height,
		"bucket", sheet.Bucket.ID)
	return sheet, nil
}

// SliceSheet cuts an already decoded image. name is used for the frame
// suffix and error messages.
func SliceSheet(name string, img image.Image) (*Sheet, error) {
	b := img.Bounds()
	p, err := ParseFrameParameters(name, b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	info, ok := bucket.Lookup(p.Width, p.Height)
	if !ok {
		return nil, &bucket.SizeError{Width: p.Width, Height: p.Height}
	}

	frames := make([]*image.RGBA, p.Count)
	for i := range frames {
		x, y := FrameOrigin(b.Dx(), b.Dy(), p, i)
		r := image.Rect(x, y, x+p.Width, y+p.Height).Add(b.Min)
		frames[i] = pad(transform.Crop(img, r), info.Size)
	}
	return &Sheet{
		Name:   filepath.Base(name),
		Params: p,
		Bucket: info,
		Frames: frames,
	}, nil
}

// pad copies src into the top-left corner of a transparent size x size image.
func pad(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	sb := src.Bounds()
	xdraw.Draw(dst, image.Rect(0, 0, sb.Dx(), sb.Dy()), src, sb.Min, xdraw.Src)
	return dst
}

// String describes the sheet for logs and tools.
func (s *Sheet) String() string {
	return fmt.Sprintf("%s: %d frame(s) %dx%d %s, bucket %d (%dpx)",
		s.Name, len(s.Frames), s.Params.Width, s.Params.Height, s.Params.Layout, s.Bucket.ID, s.Bucket.Size)
}
