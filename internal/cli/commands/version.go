package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/textgrab/pkg/ocr"
)

// Version is set via ldflags at build time.
var Version = "dev"

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print the version of textgrab and whether OCR support is compiled in.",
		Run: func(cmd *cobra.Command, args []string) {
			ocrState := "disabled"
			if ocr.Enabled {
				ocrState = "enabled"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "textgrab %s (ocr %s)\n", Version, ocrState)
		},
	}
}
