package ocr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register decoder
	_ "image/jpeg"
	"image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// maxImageSize caps how much image data LoadImage will read.
const maxImageSize = 64 << 20

// LoadImage reads and decodes an image from r. PNG, JPEG and TIFF bytes are
// passed to the engine unchanged; GIF, BMP and WebP are re-encoded as PNG.
// Pixels are never altered.
func LoadImage(r io.Reader, name string) (Input, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxImageSize+1))
	if err != nil {
		return Input{}, fmt.Errorf("reading image %s: %w", name, err)
	}
	if len(data) > maxImageSize {
		return Input{}, fmt.Errorf("image %s exceeds %d bytes", name, maxImageSize)
	}
	return DecodeImage(data, name)
}

// DecodeImage is LoadImage over bytes already in memory.
func DecodeImage(data []byte, name string) (Input, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Input{}, fmt.Errorf("%w: %s: %v", ErrUnsupportedImage, name, err)
	}

	in := Input{
		ID:     name,
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}

	switch format {
	case "png":
		in.Image, in.Format = data, ImageFormatPNG
	case "jpeg":
		in.Image, in.Format = data, ImageFormatJPEG
	case "tiff":
		in.Image, in.Format = data, ImageFormatTIFF
	default:
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return Input{}, fmt.Errorf("re-encoding %s image %s: %w", format, name, err)
		}
		in.Image, in.Format = buf.Bytes(), ImageFormatPNG
	}
	return in, nil
}
