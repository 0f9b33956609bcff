// Package cli provides the command-line interface for textgrab.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/textgrab/internal/cli/commands"
	"github.com/ccollicutt/textgrab/internal/cli/plugins"
)

// Execute runs textgrab with the process arguments and returns the exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return Run(ctx, os.Args[1:], plugins.StdStreams())
}

// Run executes textgrab with args, dispatching unknown commands to plugins,
// and returns the exit code.
func Run(ctx context.Context, args []string, streams plugins.Streams) int {
	commands.ExitCode = 0

	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(streams.In)
	rootCmd.SetOut(streams.Out)
	rootCmd.SetErr(streams.Err)

	potentialPlugin := pluginCandidate(rootCmd, args)
	if potentialPlugin != "" {
		if pluginPath, err := plugins.FindPlugin(potentialPlugin); err == nil {
			return plugins.Execute(ctx, pluginPath, args[1:], streams)
		}
		// Not found: Cobra reports the unknown command below.
	}

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if potentialPlugin != "" {
			_, _ = fmt.Fprintln(streams.Err, plugins.FormatNotFoundError(potentialPlugin))
			return 2
		}
		// SilenceErrors prevents Cobra from printing this
		_, _ = fmt.Fprintf(streams.Err, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// pluginCandidate returns the first argument when it names no built-in
// command and so may be a plugin.
func pluginCandidate(rootCmd *cobra.Command, args []string) string {
	if len(args) == 0 {
		return ""
	}
	name := args[0]
	if name == "" || name[0] == '-' || isBuiltinCommand(rootCmd, name) {
		return ""
	}
	return name
}

// isBuiltinCommand checks if a command name is a built-in cobra command.
func isBuiltinCommand(rootCmd *cobra.Command, name string) bool {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return true
		}
	}
	// Also check for special commands like help and completion
	return name == "help" || name == "completion"
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "textgrab",
		Short: "Extract text from images and split column text",
		Long: `textgrab pulls text out of screenshots and scans, and splits pasted
column text into two columns.

Commands:
  ocr      Recognize English text in an image
  split    Split each line into its first and last word
  inspect  Check how column text will split before trusting it

Both ocr and split can copy their result to the clipboard with --copy.

CONFIGURATION:
  Settings are read from --config, or from ./textgrab.yaml when present.
  TEXTGRAB_OUTPUT, TEXTGRAB_OCR_TIMEOUT and TEXTGRAB_OCR_DPI override the file.

PLUGINS:
  Unknown commands run a textgrab-<command> binary found (in order) in
  $TEXTGRAB_PLUGIN_PATH, next to the textgrab binary, in
  ~/.textgrab/plugins/, or anywhere in PATH.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String(commands.FlagConfig, "", "Config file (default ./textgrab.yaml if present)")
	rootCmd.PersistentFlags().String(commands.FlagLogLevel, commands.DefaultLogLevel, "Log level (debug|info|warn|error)")

	// Add subcommands
	rootCmd.AddCommand(commands.NewSplitCommand())
	rootCmd.AddCommand(commands.NewOCRCommand())
	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
