package atlas

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// Decoder turns a file into an image.
type Decoder interface {
	Decode(path string) (image.Image, error)
}

// DecodeFunc adapts a function to the Decoder interface.
type DecodeFunc func(path string) (image.Image, error)

// Decode implements Decoder.
func (f DecodeFunc) Decode(path string) (image.Image, error) { return f(path) }

// FileDecoder reads images from disk. The format is detected from the
// file content, not its extension.
type FileDecoder struct{}

// decoders maps filetype extensions to image decoders.
var decoders = map[string]func(io.Reader) (image.Image, error){
	"png":  png.Decode,
	"jpg":  jpeg.Decode,
	"gif":  gif.Decode,
	"bmp":  bmp.Decode,
	"tif":  tiff.Decode,
	"webp": webp.Decode,
}

// Decode implements Decoder.
func (FileDecoder) Decode(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(data)
}

// DecodeBytes decodes an in-memory image of any supported format.
func DecodeBytes(data []byte) (image.Image, error) {
	if !filetype.IsImage(data) {
		return nil, ErrNotImage
	}
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, fmt.Errorf("atlas: detect image type: %w", err)
	}
	decode, ok := decoders[kind.Extension]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind.MIME.Value)
	}
	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("atlas: decode %s: %w", kind.Extension, err)
	}
	return img, nil
}
