package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/textgrab/pkg/clipboard"
	"github.com/ccollicutt/textgrab/pkg/input"
	"github.com/ccollicutt/textgrab/pkg/ocr"
	"github.com/ccollicutt/textgrab/pkg/output"
)

var (
	// newEngine creates the recognition engine used by the ocr command.
	newEngine = ocr.NewTesseractEngine

	newImageClipboard = clipboard.SystemImage
)

// OCROptions holds command-line options for the ocr command.
type OCROptions struct {
	Output      string
	Paste       bool
	Copy        bool
	Verbose     bool
	Quiet       bool
	PageSegMode int
	DPI         int
	Timeout     time.Duration

	Webhook WebhookOptions
}

// NewOCRCommand creates the ocr command.
func NewOCRCommand() *cobra.Command {
	opts := &OCROptions{}

	cmd := &cobra.Command{
		Use:   "ocr [image|-]",
		Short: "Extract text from an image",
		Long: `Recognize English text in an image with Tesseract.

PNG, JPEG, GIF, BMP, TIFF and WebP images are accepted. Use "-" to read
the image from stdin, or --paste to take it from the clipboard.
Recognition requires a binary built with -tags ocr.

Exit codes:
  0 - Text extracted (possibly empty)
  2 - Unreadable image, OCR unavailable, or recognition failed`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOCR(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text|tsv|json), default from config")
	cmd.Flags().BoolVar(&opts.Paste, "paste", false, "Read the image from the clipboard")
	cmd.Flags().BoolVar(&opts.Copy, "copy", false, "Copy the recognized text to the clipboard")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show engine, confidence and timing")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no text")
	cmd.Flags().IntVar(&opts.PageSegMode, "psm", -1, "Tesseract page segmentation mode, default from config")
	cmd.Flags().IntVar(&opts.DPI, "dpi", -1, "Image resolution hint, default from config")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "Recognition timeout, default from config")
	addWebhookFlags(cmd, &opts.Webhook)

	return cmd
}

func runOCR(cmd *cobra.Command, args []string, opts *OCROptions) error {
	start := time.Now()

	env, err := newRunEnv(cmd)
	if err != nil {
		return err
	}

	switch {
	case opts.Paste && len(args) > 0:
		return errors.New("an image argument cannot be combined with --paste")
	case !opts.Paste && len(args) == 0:
		return errors.New("an image path, \"-\" or --paste is required")
	}

	formatter, err := createFormatter(env, opts.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	engineOpts, timeout, err := ocrSettings(env, opts)
	if err != nil {
		return err
	}

	engine, err := newEngine(engineOpts)
	if errors.Is(err, ocr.ErrOCRNotEnabled) {
		return fmt.Errorf("%w (libtesseract and its English data must be installed)", err)
	}
	if err != nil {
		return fmt.Errorf("creating OCR engine: %w", err)
	}

	var img ocr.Input
	if opts.Paste {
		img, err = pasteImage(env)
	} else {
		img, err = readImage(cmd, args[0])
	}
	if err != nil {
		return err
	}

	session := ocr.NewSession(engine,
		ocr.WithTimeout(timeout),
		ocr.WithProgress(func(ev ocr.Event) {
			env.log.Debug("ocr progress", "status", ev.Status, "progress", ev.Progress)
		}),
	)
	session.Load(img)

	res, err := session.Extract(env.ctx)
	if err != nil {
		return fmt.Errorf("ocr failed: %w", err)
	}
	if res.PlainText == "" {
		env.log.Warn("no text recognized", "input", img.ID)
	}

	report := output.NewOCRReport(img, res, output.Metadata{
		ConfigFile:  env.configPath,
		Sources:     []string{img.ID},
		GeneratedAt: start,
		Duration:    time.Since(start),
	})

	if err := formatter.Format(env.ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if opts.Copy && res.PlainText != "" {
		copyText(env, res.PlainText, "recognized text")
	}

	sendWebhooks(env, opts.Webhook, report)

	return nil
}

// ocrSettings merges command-line overrides onto the config file's OCR section.
func ocrSettings(env *runEnv, opts *OCROptions) (ocr.EngineOptions, time.Duration, error) {
	settings := env.cfg.OCR
	if opts.PageSegMode >= 0 {
		if opts.PageSegMode > ocr.MaxPageSegMode {
			return ocr.EngineOptions{}, 0, fmt.Errorf("invalid --psm %d (must be 0-%d)", opts.PageSegMode, ocr.MaxPageSegMode)
		}
		settings.PageSegMode = opts.PageSegMode
	}
	if opts.DPI >= 0 {
		settings.DPI = opts.DPI
	}
	if opts.Timeout < 0 {
		return ocr.EngineOptions{}, 0, fmt.Errorf("invalid --timeout %s", opts.Timeout)
	}
	if opts.Timeout > 0 {
		settings.Timeout = opts.Timeout
	}

	return ocr.EngineOptions{
		PageSegMode: settings.PageSegMode,
		DPI:         settings.DPI,
	}, settings.Timeout, nil
}

func readImage(cmd *cobra.Command, path string) (ocr.Input, error) {
	var r io.Reader
	name := path

	if path == input.Stdin {
		r = cmd.InOrStdin()
		name = "stdin"
	} else {
		f, err := os.Open(path) // #nosec G304 -- user-provided image path is expected
		if err != nil {
			return ocr.Input{}, fmt.Errorf("opening image: %w", err)
		}
		defer f.Close()
		r = f
	}

	img, err := ocr.LoadImage(r, name)
	if err != nil {
		return ocr.Input{}, fmt.Errorf("loading image: %w", err)
	}
	return img, nil
}

func pasteImage(env *runEnv) (ocr.Input, error) {
	data, err := newImageClipboard().ReadImage()
	if err != nil {
		return ocr.Input{}, fmt.Errorf("reading clipboard: %w", err)
	}
	env.log.Debug("read clipboard image", "bytes", len(data))

	img, err := ocr.DecodeImage(data, "clipboard")
	if err != nil {
		return ocr.Input{}, fmt.Errorf("loading image: %w", err)
	}
	return img, nil
}
