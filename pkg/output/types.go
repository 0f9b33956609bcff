// Package output provides formatting for split, OCR and inspection reports.
package output

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ccollicutt/textgrab/pkg/inspect"
	"github.com/ccollicutt/textgrab/pkg/ocr"
	"github.com/ccollicutt/textgrab/pkg/splitter"
)

// Report kinds.
const (
	KindSplit   = "split"
	KindOCR     = "ocr"
	KindInspect = "inspect"
)

// Report is the common surface of every command result.
type Report interface {
	// ReportID is a unique identifier for this report.
	ReportID() string

	// Kind names the producing command.
	Kind() string

	// HasResults reports whether the report carries any content.
	HasResults() bool
}

// Metadata provides context about a run.
type Metadata struct {
	// ConfigFile is the configuration file used, if any.
	ConfigFile string `json:"config_file,omitempty"`

	// Sources lists the inputs that were read.
	Sources []string `json:"sources,omitempty"`

	// GeneratedAt is when the report was produced.
	GeneratedAt time.Time `json:"generated_at"`

	// Duration is how long the command took.
	Duration time.Duration `json:"duration"`
}

// SplitSummary provides aggregate statistics for a split.
type SplitSummary struct {
	Rows         int `json:"rows"`
	EmptyColumn2 int `json:"empty_column2"`
}

// SplitReport is the output of the split command.
type SplitReport struct {
	ID       string       `json:"id"`
	Column1  []string     `json:"column1"`
	Column2  []string     `json:"column2"`
	Summary  SplitSummary `json:"summary"`
	Metadata Metadata     `json:"metadata"`

	result *splitter.Result
}

// NewSplitReport creates a report from a split result.
func NewSplitReport(res *splitter.Result, meta Metadata) *SplitReport {
	empty := 0
	for _, v := range res.Column2 {
		if v == "" {
			empty++
		}
	}
	return &SplitReport{
		ID:      uuid.New().String(),
		Column1: res.Column1,
		Column2: res.Column2,
		Summary: SplitSummary{
			Rows:         res.Len(),
			EmptyColumn2: empty,
		},
		Metadata: meta,
		result:   res,
	}
}

func (r *SplitReport) ReportID() string { return r.ID }
func (r *SplitReport) Kind() string     { return KindSplit }
func (r *SplitReport) HasResults() bool { return r.Summary.Rows > 0 }

// Result returns the underlying split result.
func (r *SplitReport) Result() *splitter.Result {
	if r.result == nil {
		r.result = &splitter.Result{Column1: r.Column1, Column2: r.Column2}
	}
	return r.result
}

// OCRSummary provides aggregate statistics for recognized text.
type OCRSummary struct {
	Characters int `json:"characters"`
	Lines      int `json:"lines"`
	Words      int `json:"words"`
}

// OCRReport is the output of the ocr command.
type OCRReport struct {
	ID         string     `json:"id"`
	Input      string     `json:"input"`
	Width      int        `json:"width,omitempty"`
	Height     int        `json:"height,omitempty"`
	Text       string     `json:"text"`
	Engine     string     `json:"engine"`
	Language   string     `json:"language"`
	Confidence float64    `json:"confidence"`
	Summary    OCRSummary `json:"summary"`
	Metadata   Metadata   `json:"metadata"`
}

// NewOCRReport creates a report from a recognition result.
func NewOCRReport(in ocr.Input, res *ocr.Result, meta Metadata) *OCRReport {
	lines := 0
	if res.PlainText != "" {
		lines = strings.Count(res.PlainText, "\n") + 1
	}
	words := res.Words
	if words == 0 {
		words = len(strings.Fields(res.PlainText))
	}
	return &OCRReport{
		ID:         uuid.New().String(),
		Input:      in.ID,
		Width:      in.Width,
		Height:     in.Height,
		Text:       res.PlainText,
		Engine:     res.Engine,
		Language:   res.Language,
		Confidence: res.Confidence,
		Summary: OCRSummary{
			Characters: len([]rune(res.PlainText)),
			Lines:      lines,
			Words:      words,
		},
		Metadata: meta,
	}
}

func (r *OCRReport) ReportID() string { return r.ID }
func (r *OCRReport) Kind() string     { return KindOCR }
func (r *OCRReport) HasResults() bool { return r.Text != "" }

// InspectReport is the output of the inspect command.
type InspectReport struct {
	ID       string          `json:"id"`
	Result   *inspect.Result `json:"result"`
	Metadata Metadata        `json:"metadata"`
}

// NewInspectReport creates a report from inspection statistics.
func NewInspectReport(res *inspect.Result, meta Metadata) *InspectReport {
	return &InspectReport{
		ID:       uuid.New().String(),
		Result:   res,
		Metadata: meta,
	}
}

func (r *InspectReport) ReportID() string { return r.ID }
func (r *InspectReport) Kind() string     { return KindInspect }
func (r *InspectReport) HasResults() bool { return r.Result != nil && r.Result.Rows > 0 }

// HasIssues returns true if some rows will not split into exactly two fields.
func (r *InspectReport) HasIssues() bool {
	return r.Result != nil && !r.Result.Regular()
}
