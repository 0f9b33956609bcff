package commands

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/ccollicutt/textgrab/pkg/clipboard"
	"github.com/ccollicutt/textgrab/pkg/ocr"
)

type fakeEngine struct {
	text  string
	err   error
	opts  ocr.EngineOptions
	calls int
}

func (e *fakeEngine) Name() string { return "fake" }

func (e *fakeEngine) Recognize(ctx context.Context, in ocr.Input) (ocr.Result, error) {
	e.calls++
	if e.err != nil {
		return ocr.Result{}, e.err
	}
	return ocr.Result{PlainText: e.text, Language: ocr.Language, Confidence: 0.9}, nil
}

// useFakeEngine replaces the Tesseract engine for the duration of the test.
func useFakeEngine(t *testing.T, engine *fakeEngine) {
	t.Helper()
	old := newEngine
	newEngine = func(opts ocr.EngineOptions) (ocr.Engine, error) {
		engine.opts = opts
		return engine, nil
	}
	t.Cleanup(func() { newEngine = old })
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 4, 2))
	img.Set(1, 1, color.White)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestRunOCR_File(t *testing.T) {
	engine := &fakeEngine{text: "  Widget A 100\nWidget B 250\n\n"}
	useFakeEngine(t, engine)

	path := writeFile(t, t.TempDir(), "scan.png", string(pngBytes(t)))

	out, _, err := execute(t, NewOCRCommand(), "", path)
	if err != nil {
		t.Fatalf("ocr failed: %v", err)
	}
	if out != "Widget A 100\nWidget B 250\n" {
		t.Errorf("output = %q", out)
	}
	if engine.calls != 1 {
		t.Errorf("engine calls = %d, want 1", engine.calls)
	}
}

func TestRunOCR_Stdin(t *testing.T) {
	useFakeEngine(t, &fakeEngine{text: "hello"})

	out, _, err := execute(t, NewOCRCommand(), string(pngBytes(t)), "-", "-q")
	if err != nil {
		t.Fatal(err)
	}
	if out != "textgrab: 5 characters, 1 lines recognized from stdin\n" {
		t.Errorf("output = %q", out)
	}
}

func TestRunOCR_EngineOptions(t *testing.T) {
	engine := &fakeEngine{text: "x"}
	useFakeEngine(t, engine)

	configPath := writeFile(t, t.TempDir(), "textgrab.yaml", "ocr:\n  page_seg_mode: 4\n  dpi: 150\n")
	path := writeFile(t, t.TempDir(), "scan.png", string(pngBytes(t)))

	if _, _, err := execute(t, NewOCRCommand(), "", "--config", configPath, path); err != nil {
		t.Fatal(err)
	}
	if engine.opts.PageSegMode != 4 || engine.opts.DPI != 150 {
		t.Errorf("config options not applied: %+v", engine.opts)
	}

	if _, _, err := execute(t, NewOCRCommand(), "", "--config", configPath, "--psm", "6", "--dpi", "300", path); err != nil {
		t.Fatal(err)
	}
	if engine.opts.PageSegMode != 6 || engine.opts.DPI != 300 {
		t.Errorf("flag overrides not applied: %+v", engine.opts)
	}
}

func TestRunOCR_InvalidPSM(t *testing.T) {
	useFakeEngine(t, &fakeEngine{})

	_, _, err := execute(t, NewOCRCommand(), "", "--psm", "14", "scan.png")
	if err == nil || !strings.Contains(err.Error(), "invalid --psm") {
		t.Errorf("expected invalid --psm error, got %v", err)
	}
}

func TestRunOCR_NotAnImage(t *testing.T) {
	engine := &fakeEngine{text: "x"}
	useFakeEngine(t, engine)

	path := writeFile(t, t.TempDir(), "notes.txt", "just text")

	_, _, err := execute(t, NewOCRCommand(), "", path)
	if err == nil || !strings.Contains(err.Error(), "loading image") {
		t.Errorf("expected loading image error, got %v", err)
	}
	if engine.calls != 0 {
		t.Error("engine should not run for invalid input")
	}
}

func TestRunOCR_MissingFile(t *testing.T) {
	useFakeEngine(t, &fakeEngine{})

	_, _, err := execute(t, NewOCRCommand(), "", "/nonexistent/scan.png")
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestRunOCR_EngineError(t *testing.T) {
	useFakeEngine(t, &fakeEngine{err: context.DeadlineExceeded})

	path := writeFile(t, t.TempDir(), "scan.png", string(pngBytes(t)))

	_, _, err := execute(t, NewOCRCommand(), "", path, "--timeout", time.Second.String())
	if err == nil || !strings.Contains(err.Error(), "ocr failed") {
		t.Errorf("expected ocr failed error, got %v", err)
	}
}

func TestRunOCR_NotEnabled(t *testing.T) {
	old := newEngine
	newEngine = func(ocr.EngineOptions) (ocr.Engine, error) { return nil, ocr.ErrOCRNotEnabled }
	t.Cleanup(func() { newEngine = old })

	_, _, err := execute(t, NewOCRCommand(), "", "scan.png")
	if err == nil || !strings.Contains(err.Error(), "-tags ocr") {
		t.Errorf("expected rebuild hint, got %v", err)
	}
}

func TestRunOCR_Copy(t *testing.T) {
	useFakeEngine(t, &fakeEngine{text: "copied text"})
	mem := useMemoryClipboard(t, "")

	path := writeFile(t, t.TempDir(), "scan.png", string(pngBytes(t)))

	if _, _, err := execute(t, NewOCRCommand(), "", "--copy", path); err != nil {
		t.Fatal(err)
	}
	if mem.Text != "copied text" {
		t.Errorf("clipboard = %q", mem.Text)
	}
}

func TestRunOCR_EmptyTextNotCopied(t *testing.T) {
	useFakeEngine(t, &fakeEngine{text: "   "})
	mem := useMemoryClipboard(t, "previous")

	path := writeFile(t, t.TempDir(), "scan.png", string(pngBytes(t)))

	_, stderr, err := execute(t, NewOCRCommand(), "", "--copy", path)
	if err != nil {
		t.Fatal(err)
	}
	if mem.Writes != 0 || mem.Text != "previous" {
		t.Errorf("clipboard changed: %+v", mem)
	}
	if !strings.Contains(stderr, "no text recognized") {
		t.Errorf("expected warning, got %q", stderr)
	}
}

// useImageClipboard swaps the system image clipboard for an in-memory one.
func useImageClipboard(t *testing.T, data []byte) *clipboard.Memory {
	t.Helper()
	mem := &clipboard.Memory{Image: data}
	old := newImageClipboard
	newImageClipboard = func() clipboard.ImageReader { return mem }
	t.Cleanup(func() { newImageClipboard = old })
	return mem
}

func TestRunOCR_Paste(t *testing.T) {
	engine := &fakeEngine{text: "Widget A 100"}
	useFakeEngine(t, engine)
	useImageClipboard(t, pngBytes(t))

	out, _, err := execute(t, NewOCRCommand(), "", "--paste", "-q")
	if err != nil {
		t.Fatalf("ocr --paste failed: %v", err)
	}
	if out != "textgrab: 12 characters, 1 lines recognized from clipboard\n" {
		t.Errorf("output = %q", out)
	}
	if engine.calls != 1 {
		t.Errorf("engine calls = %d, want 1", engine.calls)
	}
}

func TestRunOCR_PasteEmptyClipboard(t *testing.T) {
	engine := &fakeEngine{text: "x"}
	useFakeEngine(t, engine)
	useImageClipboard(t, nil)

	_, _, err := execute(t, NewOCRCommand(), "", "--paste")
	if !errors.Is(err, clipboard.ErrNoImage) {
		t.Errorf("expected ErrNoImage, got %v", err)
	}
	if engine.calls != 0 {
		t.Error("engine should not run without an image")
	}
}

func TestRunOCR_PasteNotAnImage(t *testing.T) {
	useFakeEngine(t, &fakeEngine{text: "x"})
	useImageClipboard(t, []byte("just text"))

	_, _, err := execute(t, NewOCRCommand(), "", "--paste")
	if !errors.Is(err, ocr.ErrUnsupportedImage) {
		t.Errorf("expected ErrUnsupportedImage, got %v", err)
	}
}

func TestRunOCR_InputArguments(t *testing.T) {
	useFakeEngine(t, &fakeEngine{text: "x"})
	useImageClipboard(t, pngBytes(t))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no input", nil, "--paste is required"},
		{"path and paste", []string{"--paste", "scan.png"}, "cannot be combined with --paste"},
		{"two paths", []string{"a.png", "b.png"}, "accepts at most 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, NewOCRCommand(), "", tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
