package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/textgrab/pkg/config"
	"github.com/ccollicutt/textgrab/pkg/ocr"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a textgrab configuration file without running a command.

Checks:
  - YAML syntax
  - Output format and copy column
  - OCR page segmentation mode, DPI and timeout
  - Webhook URLs and triggers
  - Whether this binary can run OCR (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Output:      %s\n", cfg.Output)
	fmt.Fprintf(out, "  Copy column: %d\n", cfg.CopyColumn)
	fmt.Fprintf(out, "  OCR:         psm=%d dpi=%d timeout=%s language=%s\n",
		cfg.OCR.PageSegMode, cfg.OCR.DPI, cfg.OCR.Timeout, ocr.Language)
	fmt.Fprintf(out, "  Samples:     %d\n", cfg.Inspect.SampleSize)
	fmt.Fprintf(out, "  Webhooks:    %d\n", len(cfg.Webhooks))

	if len(cfg.Webhooks) > 0 {
		fmt.Fprintf(out, "\nWebhooks:\n")
		for i, wh := range cfg.Webhooks {
			fmt.Fprintf(out, "  %d. %s [%s] retries=%d\n", i+1, wh.DisplayName(), wh.Trigger, wh.Retries)
		}
	}

	if !ocr.Enabled {
		fmt.Fprintf(out, "\nWarning: this binary was built without OCR support (rebuild with -tags ocr)\n")
	}

	return nil
}
