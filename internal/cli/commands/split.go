package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/textgrab/pkg/input"
	"github.com/ccollicutt/textgrab/pkg/output"
	"github.com/ccollicutt/textgrab/pkg/splitter"
)

// SplitOptions holds command-line options for the split command.
type SplitOptions struct {
	Text    string
	Paste   bool
	Output  string
	Column  int
	Copy    bool
	Verbose bool
	Quiet   bool

	Webhook WebhookOptions
}

// NewSplitCommand creates the split command.
func NewSplitCommand() *cobra.Command {
	opts := &SplitOptions{}

	cmd := &cobra.Command{
		Use:   "split [file...]",
		Short: "Split column text into first and last fields",
		Long: `Split whitespace-separated column text into two columns.

For every non-blank line, column 1 receives the first word and column 2
receives the last word. Lines with a single word leave column 2 empty and
words in between are dropped. Spaces and tabs are treated the same.

Input is read from --text, from the clipboard with --paste, from the given
files (globs allowed, "-" for stdin), or from stdin when nothing is given.

Examples:
  textgrab split prices.txt
  pbpaste | textgrab split --column 2 --copy
  textgrab split --text "Widget A 100" -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Text, "text", "", "Split this text instead of reading input")
	cmd.Flags().BoolVar(&opts.Paste, "paste", false, "Read input from the clipboard")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text|tsv|json), default from config")
	cmd.Flags().IntVar(&opts.Column, "column", 0, "Print only column 1 or 2")
	cmd.Flags().BoolVar(&opts.Copy, "copy", false, "Copy a column to the clipboard (--column, else copy_column from config)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show row counts and sources")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no columns")
	addWebhookFlags(cmd, &opts.Webhook)

	return cmd
}

func runSplit(cmd *cobra.Command, args []string, opts *SplitOptions) error {
	start := time.Now()

	env, err := newRunEnv(cmd)
	if err != nil {
		return err
	}

	if err := validateColumn(opts.Column); err != nil {
		return err
	}

	formatter, err := createFormatter(env, opts.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
		Column:  opts.Column,
	})
	if err != nil {
		return err
	}

	source, sources, err := openTextInput(cmd, env, args, opts.Text, opts.Paste)
	if err != nil {
		return err
	}
	defer source.Close()

	res, err := splitter.SplitSource(env.ctx, source)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	report := output.NewSplitReport(res, output.Metadata{
		ConfigFile:  env.configPath,
		Sources:     sources,
		GeneratedAt: start,
		Duration:    time.Since(start),
	})

	// Blank input prints nothing, but "always" webhooks still fire.
	if res.Len() == 0 {
		env.log.Info("no text to split", "sources", sources)
		sendWebhooks(env, opts.Webhook, report)
		return nil
	}

	if err := formatter.Format(env.ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if opts.Copy {
		column := opts.Column
		if column == 0 {
			column = env.cfg.CopyColumn
		}
		copyText(env, res.ColumnText(column), fmt.Sprintf("column %d", column))
	}

	sendWebhooks(env, opts.Webhook, report)

	return nil
}

// openTextInput picks the line source for split and inspect: inline text,
// the clipboard, or files and stdin.
func openTextInput(cmd *cobra.Command, env *runEnv, args []string, text string, paste bool) (input.LineSource, []string, error) {
	switch {
	case text != "" && paste:
		return nil, nil, errors.New("--text and --paste cannot be used together")
	case (text != "" || paste) && len(args) > 0:
		return nil, nil, errors.New("file arguments cannot be combined with --text or --paste")
	case text != "":
		return input.NewStringSource(text), []string{"inline"}, nil
	case paste:
		pasted, err := newClipboard().ReadAll()
		if err != nil {
			return nil, nil, fmt.Errorf("reading clipboard: %w", err)
		}
		env.log.Debug("read clipboard", "bytes", len(pasted))
		return input.NewReaderSource(strings.NewReader(pasted), "clipboard"), []string{"clipboard"}, nil
	}

	src, err := input.Open(args, cmd.InOrStdin())
	if err != nil {
		return nil, nil, err
	}
	if len(args) == 0 {
		return src, []string{"stdin"}, nil
	}
	return src, args, nil
}
