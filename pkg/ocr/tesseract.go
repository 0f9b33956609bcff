//go:build ocr

package ocr

import (
	"context"
	"fmt"
	"strconv"

	"github.com/otiai10/gosseract/v2"
)

// Enabled reports whether the Tesseract engine is compiled in.
const Enabled = true

// TesseractEngine implements Engine with gosseract. Each call uses a fresh
// client, so the engine is safe for sequential reuse.
type TesseractEngine struct {
	opts          EngineOptions
	clientFactory func() *gosseract.Client
}

// NewTesseractEngine constructs the Tesseract-backed engine.
func NewTesseractEngine(opts EngineOptions) (Engine, error) {
	return &TesseractEngine{opts: opts, clientFactory: gosseract.NewClient}, nil
}

func (e *TesseractEngine) Name() string { return "tesseract" }

// Recognize performs OCR on a single image. Tesseract itself cannot be
// interrupted; on cancellation the call returns immediately and the client
// is released once recognition finishes in the background.
func (e *TesseractEngine) Recognize(ctx context.Context, in Input) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	type outcome struct {
		res Result
		err error
	}
	done := make(chan outcome, 1)

	go func() {
		c := e.clientFactory()
		defer c.Close()
		res, err := e.recognizeWithClient(c, in)
		done <- outcome{res: res, err: err}
	}()

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case o := <-done:
		return o.res, o.err
	}
}

func (e *TesseractEngine) recognizeWithClient(c *gosseract.Client, in Input) (Result, error) {
	if err := c.SetImageFromBytes(in.Image); err != nil {
		return Result{}, fmt.Errorf("set image: %w", err)
	}
	if err := c.SetLanguage(Language); err != nil {
		return Result{}, fmt.Errorf("set language: %w", err)
	}
	if e.opts.PageSegMode > 0 {
		if err := c.SetPageSegMode(gosseract.PageSegMode(e.opts.PageSegMode)); err != nil {
			return Result{}, fmt.Errorf("set page segmentation mode: %w", err)
		}
	}
	if e.opts.DPI > 0 {
		if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), strconv.Itoa(e.opts.DPI)); err != nil {
			return Result{}, fmt.Errorf("set dpi: %w", err)
		}
	}

	text, err := c.Text()
	if err != nil {
		return Result{}, fmt.Errorf("recognize text: %w", err)
	}

	words, conf := wordConfidence(c)
	return Result{
		InputID:    in.ID,
		PlainText:  text,
		Language:   Language,
		Engine:     e.Name(),
		Confidence: conf,
		Words:      words,
	}, nil
}

// wordConfidence returns the word count and mean word confidence in [0,1].
func wordConfidence(c *gosseract.Client) (int, float64) {
	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0, 0
	}
	var sum float64
	for _, b := range boxes {
		sum += b.Confidence / 100.0
	}
	return len(boxes), sum / float64(len(boxes))
}
