package output

import (
	"context"
	"encoding/json"
	"io"
)

// JSONFormatter formats reports as JSON.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format renders the report as indented JSON. Quiet mode emits the
// summary only.
func (f *JSONFormatter) Format(ctx context.Context, report Report, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if !f.opts.Quiet {
		return encoder.Encode(report)
	}

	switch r := report.(type) {
	case *SplitReport:
		return encoder.Encode(r.Summary)
	case *OCRReport:
		return encoder.Encode(r.Summary)
	case *InspectReport:
		return encoder.Encode(quietInspect{
			Rows:          r.Result.Rows,
			IrregularRows: r.Result.IrregularRows(),
			Regular:       r.Result.Regular(),
		})
	default:
		return unsupportedReport(f, report)
	}
}

type quietInspect struct {
	Rows          int  `json:"rows"`
	IrregularRows int  `json:"irregular_rows"`
	Regular       bool `json:"regular"`
}
