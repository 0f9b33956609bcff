package ocr

// EngineOptions tunes the Tesseract engine.
type EngineOptions struct {
	// PageSegMode is the Tesseract page segmentation mode (0-13).
	// Zero keeps the engine default.
	PageSegMode int

	// DPI overrides the resolution Tesseract assumes. Zero keeps the default.
	DPI int
}

// MaxPageSegMode is the highest valid Tesseract page segmentation mode.
const MaxPageSegMode = 13
