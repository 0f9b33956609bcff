package clipboard

import (
	"errors"
	"fmt"
	"sync"

	xclipboard "golang.design/x/clipboard"
)

// ErrNoImage is returned when the clipboard holds no image.
var ErrNoImage = errors.New("clipboard holds no image")

// ImageReader fetches encoded image bytes (PNG) from a clipboard.
type ImageReader interface {
	ReadImage() ([]byte, error)
}

var (
	initOnce sync.Once
	initErr  error
)

type systemImage struct{}

// SystemImage returns the operating system clipboard for images.
func SystemImage() ImageReader {
	return systemImage{}
}

func (systemImage) ReadImage() ([]byte, error) {
	initOnce.Do(func() { initErr = xclipboard.Init() })
	if initErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, initErr)
	}
	data := xclipboard.Read(xclipboard.FmtImage)
	if len(data) == 0 {
		return nil, ErrNoImage
	}
	return data, nil
}
