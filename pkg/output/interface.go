package output

import (
	"context"
	"fmt"
	"io"
)

// Formatter renders reports in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report Report, w io.Writer) error

	// Name returns the format name (text, tsv, json).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose adds metadata such as sources and timing.
	Verbose bool

	// Quiet prints a one-line summary only.
	Quiet bool

	// Column limits split output to column 1 or 2. Zero prints both.
	Column int
}

// NewFormatter returns the formatter registered under name.
func NewFormatter(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "text":
		return NewTextFormatter(opts), nil
	case "tsv":
		return NewTSVFormatter(opts), nil
	case "json":
		return NewJSONFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text, tsv, or json)", name)
	}
}

func unsupportedReport(f Formatter, report Report) error {
	return fmt.Errorf("%s formatter: unsupported report kind %q", f.Name(), report.Kind())
}
