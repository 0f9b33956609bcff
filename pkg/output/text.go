package output

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ccollicutt/textgrab/pkg/inspect"
	"github.com/ccollicutt/textgrab/pkg/splitter"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report Report, w io.Writer) error {
	if f.opts.Quiet {
		return formatQuiet(f, report, w)
	}

	switch r := report.(type) {
	case *SplitReport:
		return f.formatSplit(r, w)
	case *OCRReport:
		return f.formatOCR(r, w)
	case *InspectReport:
		return f.formatInspect(r, w)
	default:
		return unsupportedReport(f, report)
	}
}

// formatQuiet is shared by the text and tsv formatters.
func formatQuiet(f Formatter, report Report, w io.Writer) error {
	switch r := report.(type) {
	case *SplitReport:
		fmt.Fprintf(w, "textgrab: %d rows split, %d with empty second column\n",
			r.Summary.Rows, r.Summary.EmptyColumn2)
	case *OCRReport:
		fmt.Fprintf(w, "textgrab: %d characters, %d lines recognized from %s\n",
			r.Summary.Characters, r.Summary.Lines, r.Input)
	case *InspectReport:
		fmt.Fprintf(w, "textgrab: %d rows inspected, %d irregular\n",
			r.Result.Rows, r.Result.IrregularRows())
	default:
		return unsupportedReport(f, report)
	}
	return nil
}

func (f *TextFormatter) formatSplit(r *SplitReport, w io.Writer) error {
	res := r.Result()

	if f.opts.Column != 0 {
		writeColumn(w, res, f.opts.Column)
		return nil
	}

	fmt.Fprintln(w, "=== Column 1 ===")
	writeColumn(w, res, 1)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Column 2 ===")
	writeColumn(w, res, 2)

	if f.opts.Verbose {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "---")
		fmt.Fprintf(w, "Rows: %d (%d with empty second column)\n",
			r.Summary.Rows, r.Summary.EmptyColumn2)
		f.formatMetadata(&r.Metadata, w)
	}
	return nil
}

func (f *TextFormatter) formatOCR(r *OCRReport, w io.Writer) error {
	writeBlock(w, r.Text)

	if f.opts.Verbose {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "---")
		fmt.Fprintf(w, "Input: %s (%dx%d)\n", r.Input, r.Width, r.Height)
		fmt.Fprintf(w, "Engine: %s (%s)\n", r.Engine, r.Language)
		fmt.Fprintf(w, "Confidence: %.1f%%\n", r.Confidence*100)
		fmt.Fprintf(w, "Recognized: %d characters, %d words, %d lines\n",
			r.Summary.Characters, r.Summary.Words, r.Summary.Lines)
		f.formatMetadata(&r.Metadata, w)
	}
	return nil
}

func (f *TextFormatter) formatInspect(r *InspectReport, w io.Writer) error {
	res := r.Result

	fmt.Fprintln(w, "=== Column Split Inspection ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Lines read: %d\n", res.TotalLines)
	fmt.Fprintf(w, "Blank lines skipped: %d\n", res.BlankLines)
	fmt.Fprintf(w, "Rows: %d\n", res.Rows)
	fmt.Fprintf(w, "  two tokens:      %d\n", res.PairRows)
	fmt.Fprintf(w, "  one token:       %d (second column empty)\n", res.SingleRows)
	fmt.Fprintf(w, "  three or more:   %d (middle tokens dropped)\n", res.WideRows)
	fmt.Fprintf(w, "Clean rows: %.1f%%\n", res.PairRatio()*100)
	fmt.Fprintln(w)

	if len(res.TokenCounts) > 0 {
		fmt.Fprintln(w, "Token counts:")
		for _, n := range res.SortedTokenCounts() {
			fmt.Fprintf(w, "  %d token(s): %d row(s)\n", n, res.TokenCounts[n])
		}
		fmt.Fprintln(w)
	}

	if len(res.SingleSamples) > 0 {
		fmt.Fprintln(w, "Rows with one token:")
		for _, s := range res.SingleSamples {
			writeSample(w, s)
		}
		fmt.Fprintln(w)
	}

	if len(res.WideSamples) > 0 {
		fmt.Fprintln(w, "Rows with dropped tokens:")
		for _, s := range res.WideSamples {
			writeSample(w, s)
		}
		fmt.Fprintln(w)
	}

	if res.Regular() {
		fmt.Fprintln(w, "Result: every row splits into exactly two fields.")
	} else {
		fmt.Fprintf(w, "Result: %d irregular row(s). Multi-word fields keep only their first or last word.\n",
			res.IrregularRows())
	}

	if f.opts.Verbose {
		fmt.Fprintln(w, "---")
		f.formatMetadata(&r.Metadata, w)
	}
	return nil
}

func (f *TextFormatter) formatMetadata(m *Metadata, w io.Writer) {
	if m.ConfigFile != "" {
		fmt.Fprintf(w, "Config: %s\n", m.ConfigFile)
	}
	if len(m.Sources) > 0 {
		fmt.Fprintf(w, "Sources: %s\n", strings.Join(m.Sources, ", "))
	}
	fmt.Fprintf(w, "Duration: %s\n", m.Duration.Round(1e6))
}

func writeSample(w io.Writer, s inspect.Sample) {
	fmt.Fprintf(w, "  %s:%d  %s", s.Source, s.LineNum, s.Content)
	if len(s.Dropped) > 0 {
		fmt.Fprintf(w, "  (dropped: %s)", strings.Join(s.Dropped, " "))
	}
	fmt.Fprintln(w)
}

// writeColumn writes one line per row, so empty entries stay aligned with
// the other column.
func writeColumn(w io.Writer, res *splitter.Result, n int) {
	if res.Len() == 0 {
		return
	}
	fmt.Fprintln(w, res.ColumnText(n))
}

// writeBlock writes text followed by a newline, or nothing for empty text.
func writeBlock(w io.Writer, text string) {
	if text == "" {
		return
	}
	fmt.Fprintln(w, text)
}
