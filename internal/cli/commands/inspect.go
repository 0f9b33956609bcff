package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/textgrab/pkg/inspect"
	"github.com/ccollicutt/textgrab/pkg/output"
)

// InspectOptions holds command-line options for the inspect command.
type InspectOptions struct {
	Text       string
	Paste      bool
	Output     string
	SampleSize int
	Verbose    bool
	Quiet      bool

	Webhook WebhookOptions
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	opts := &InspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect [file...]",
		Short: "Check how column text will split",
		Long: `Inspect column text before splitting it.

Counts rows that split cleanly into two words, rows with a single word
(column 2 left empty), and rows with words in between that split drops,
such as multi-word names. Sample lines are listed for each irregular kind.

Input is read the same way as split.

Exit codes:
  0 - Every row has exactly two words
  1 - Irregular rows found
  2 - Configuration or runtime error`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Text, "text", "", "Inspect this text instead of reading input")
	cmd.Flags().BoolVar(&opts.Paste, "paste", false, "Read input from the clipboard")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text|tsv|json), default from config")
	cmd.Flags().IntVar(&opts.SampleSize, "samples", 0, "Sample lines per irregular kind, default from config")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show sources and timing")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only")
	addWebhookFlags(cmd, &opts.Webhook)

	return cmd
}

func runInspect(cmd *cobra.Command, args []string, opts *InspectOptions) error {
	start := time.Now()

	env, err := newRunEnv(cmd)
	if err != nil {
		return err
	}

	formatter, err := createFormatter(env, opts.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	sampleSize := env.cfg.Inspect.SampleSize
	if opts.SampleSize > 0 {
		sampleSize = opts.SampleSize
	}

	source, sources, err := openTextInput(cmd, env, args, opts.Text, opts.Paste)
	if err != nil {
		return err
	}
	defer source.Close()

	res, err := inspect.New(inspect.WithSampleSize(sampleSize)).InspectSource(env.ctx, source)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	report := output.NewInspectReport(res, output.Metadata{
		ConfigFile:  env.configPath,
		Sources:     sources,
		GeneratedAt: start,
		Duration:    time.Since(start),
	})

	if err := formatter.Format(env.ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	sendWebhooks(env, opts.Webhook, report)

	if report.HasIssues() {
		env.log.Info("irregular rows found", "rows", res.IrregularRows())
		ExitCode = 1
	}

	return nil
}
