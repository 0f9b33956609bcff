// Package clipboard copies text to and reads text and images from the
// system clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard utility is available
// (for example xclip/xsel/wl-copy on Linux).
var ErrUnavailable = errors.New("system clipboard unavailable")

// Writer places text on a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// Reader fetches text from a clipboard.
type Reader interface {
	ReadAll() (string, error)
}

// ReadWriter is a clipboard that supports both directions.
type ReadWriter interface {
	Reader
	Writer
}

type system struct{}

// System returns the operating system clipboard.
func System() ReadWriter {
	return system{}
}

func (system) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}

func (system) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnavailable
	}
	return clipboard.ReadAll()
}

// Memory is an in-process clipboard.
type Memory struct {
	Text   string
	Image  []byte
	Writes int
}

// WriteAll stores text.
func (m *Memory) WriteAll(text string) error {
	m.Text = text
	m.Writes++
	return nil
}

// ReadAll returns the last stored text.
func (m *Memory) ReadAll() (string, error) {
	return m.Text, nil
}

// ReadImage returns the stored image, or ErrNoImage when there is none.
func (m *Memory) ReadImage() ([]byte, error) {
	if len(m.Image) == 0 {
		return nil, ErrNoImage
	}
	return m.Image, nil
}
