// Package ocr recognizes text in images.
//
// Recognition is delegated to an Engine. The Tesseract engine is compiled
// only with the "ocr" build tag because it links libtesseract through cgo:
//
//	go build -tags ocr ./cmd/cli
//
// Without the tag, NewTesseractEngine returns ErrOCRNotEnabled.
package ocr

import (
	"context"
	"errors"
)

// Language is the only recognition language. Multi-language configuration
// is deliberately not offered.
const Language = "eng"

var (
	// ErrNoImage is returned by Session.Extract when no image has been loaded.
	ErrNoImage = errors.New("no image loaded: select or paste an image first")

	// ErrUnsupportedImage is returned when the input is not a decodable image.
	ErrUnsupportedImage = errors.New("unsupported image format")

	// ErrOCRNotEnabled is returned when OCR support was not compiled in.
	ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")
)

// ImageFormat names the encoding of Input.Image.
type ImageFormat string

const (
	ImageFormatPNG  ImageFormat = "png"
	ImageFormatJPEG ImageFormat = "jpeg"
	ImageFormatTIFF ImageFormat = "tiff"
)

// Input is a single image ready for recognition.
type Input struct {
	// ID identifies the input in results (usually the file name).
	ID string

	// Image holds encoded image bytes in Format.
	Image []byte

	// Format is the encoding of Image.
	Format ImageFormat

	// Width and Height are the decoded pixel dimensions.
	Width  int
	Height int
}

// Result is the text recognized in one Input.
type Result struct {
	InputID   string `json:"input_id"`
	PlainText string `json:"text"`
	Language  string `json:"language"`
	Engine    string `json:"engine"`

	// Confidence is the mean word confidence in [0,1]; 0 when unknown.
	Confidence float64 `json:"confidence"`
	Words      int     `json:"words"`
}

// Engine performs OCR.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, in Input) (Result, error)
}

// Status values reported through Progress.
const (
	StatusLoading      = "loading image"
	StatusInitializing = "initializing engine"
	StatusRecognizing  = "recognizing text"
	StatusDone         = "done"
)

// Event reports recognition progress. Progress is in [0,1].
type Event struct {
	Status   string
	Progress float64
}

// Progress receives progress events. It may be nil.
type Progress func(Event)

func (p Progress) report(status string, progress float64) {
	if p != nil {
		p(Event{Status: status, Progress: progress})
	}
}
