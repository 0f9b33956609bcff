//go:build !ocr

package ocr

// Enabled reports whether the Tesseract engine is compiled in.
const Enabled = false

// NewTesseractEngine returns ErrOCRNotEnabled. Rebuild with -tags ocr
// (and libtesseract installed) to get the real engine.
func NewTesseractEngine(opts EngineOptions) (Engine, error) {
	return nil, ErrOCRNotEnabled
}
