package output

import (
	"context"
	"fmt"
	"io"
)

// TSVFormatter writes split rows as tab-separated values, ready to paste
// into a spreadsheet.
type TSVFormatter struct {
	opts FormatOptions
}

// NewTSVFormatter creates a new TSV formatter with the given options.
func NewTSVFormatter(opts FormatOptions) *TSVFormatter {
	return &TSVFormatter{opts: opts}
}

// Name returns the format name.
func (f *TSVFormatter) Name() string {
	return "tsv"
}

// Format renders the report as TSV. OCR text is written as-is and
// inspection reports become a token-count table.
func (f *TSVFormatter) Format(ctx context.Context, report Report, w io.Writer) error {
	if f.opts.Quiet {
		return formatQuiet(f, report, w)
	}

	switch r := report.(type) {
	case *SplitReport:
		res := r.Result()
		if f.opts.Column != 0 {
			writeColumn(w, res, f.opts.Column)
			return nil
		}
		for _, row := range res.Rows() {
			fmt.Fprintf(w, "%s\t%s\n", row.First, row.Last)
		}
	case *OCRReport:
		writeBlock(w, r.Text)
	case *InspectReport:
		fmt.Fprintln(w, "tokens\trows")
		for _, n := range r.Result.SortedTokenCounts() {
			fmt.Fprintf(w, "%d\t%d\n", n, r.Result.TokenCounts[n])
		}
	default:
		return unsupportedReport(f, report)
	}
	return nil
}
