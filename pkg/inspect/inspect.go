// Package inspect reports how lines of column text will be split, so rows
// that lose tokens or have no second field can be reviewed before the
// columns are trusted.
package inspect

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/ccollicutt/textgrab/pkg/input"
	"github.com/ccollicutt/textgrab/pkg/splitter"
)

// Shape classifies a non-blank line by its token count.
type Shape string

const (
	// ShapePair is a line with exactly two tokens.
	ShapePair Shape = "pair"
	// ShapeSingle is a line with one token; its second column is empty.
	ShapeSingle Shape = "single"
	// ShapeWide is a line with more than two tokens; middle tokens are dropped.
	ShapeWide Shape = "wide"
)

// Sample is an irregular line kept for reporting.
type Sample struct {
	Source  string `json:"source"`
	LineNum int    `json:"line"`
	Content string `json:"content"`
	Tokens  int    `json:"tokens"`

	// Dropped lists the tokens that will not appear in either column.
	Dropped []string `json:"dropped,omitempty"`
}

// Result holds line shape statistics for one input.
type Result struct {
	TotalLines int `json:"total_lines"`
	BlankLines int `json:"blank_lines"`
	Rows       int `json:"rows"`
	PairRows   int `json:"pair_rows"`
	SingleRows int `json:"single_rows"`
	WideRows   int `json:"wide_rows"`

	// TokenCounts maps a token count to the number of rows with that count.
	TokenCounts map[int]int `json:"token_counts"`

	SingleSamples []Sample `json:"single_samples,omitempty"`
	WideSamples   []Sample `json:"wide_samples,omitempty"`
}

// Regular reports whether every row has exactly two tokens.
func (r *Result) Regular() bool {
	return r.SingleRows == 0 && r.WideRows == 0
}

// IrregularRows returns the number of rows that are not pairs.
func (r *Result) IrregularRows() int {
	return r.SingleRows + r.WideRows
}

// PairRatio is the fraction of rows that split cleanly, in [0,1].
// An input with no rows has ratio 1.
func (r *Result) PairRatio() float64 {
	if r.Rows == 0 {
		return 1
	}
	return float64(r.PairRows) / float64(r.Rows)
}

// SortedTokenCounts returns the token counts present, ascending.
func (r *Result) SortedTokenCounts() []int {
	keys := make([]int, 0, len(r.TokenCounts))
	for k := range r.TokenCounts {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Inspector collects line shape statistics.
type Inspector struct {
	sampleSize int
}

// Option configures the Inspector.
type Option func(*Inspector)

// WithSampleSize sets how many irregular lines of each shape are kept
// (default 5).
func WithSampleSize(n int) Option {
	return func(i *Inspector) {
		if n > 0 {
			i.sampleSize = n
		}
	}
}

// New creates an Inspector.
func New(opts ...Option) *Inspector {
	i := &Inspector{sampleSize: 5}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// ClassifyLine returns the shape of a line and its tokens.
// ok is false for blank lines.
func ClassifyLine(line string) (shape Shape, tokens []string, ok bool) {
	tokens = splitter.Tokens(line)
	switch {
	case len(tokens) == 0:
		return "", nil, false
	case len(tokens) == 1:
		return ShapeSingle, tokens, true
	case len(tokens) == 2:
		return ShapePair, tokens, true
	default:
		return ShapeWide, tokens, true
	}
}

// InspectSource reads src to exhaustion and classifies every line.
func (i *Inspector) InspectSource(ctx context.Context, src input.LineSource) (*Result, error) {
	res := &Result{TokenCounts: make(map[int]int)}
	for {
		line, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		i.add(res, line)
	}
}

// InspectText classifies the lines of raw text.
func (i *Inspector) InspectText(ctx context.Context, raw string) (*Result, error) {
	return i.InspectSource(ctx, input.NewStringSource(raw))
}

func (i *Inspector) add(res *Result, line *input.Line) {
	res.TotalLines++

	shape, tokens, ok := ClassifyLine(line.Content)
	if !ok {
		res.BlankLines++
		return
	}

	res.Rows++
	res.TokenCounts[len(tokens)]++

	sample := Sample{
		Source:  line.Source,
		LineNum: line.LineNum,
		Content: strings.TrimFunc(line.Content, splitter.IsSpace),
		Tokens:  len(tokens),
	}

	switch shape {
	case ShapePair:
		res.PairRows++
	case ShapeSingle:
		res.SingleRows++
		if len(res.SingleSamples) < i.sampleSize {
			res.SingleSamples = append(res.SingleSamples, sample)
		}
	case ShapeWide:
		res.WideRows++
		if len(res.WideSamples) < i.sampleSize {
			sample.Dropped = append([]string(nil), tokens[1:len(tokens)-1]...)
			res.WideSamples = append(res.WideSamples, sample)
		}
	}
}
