package splitter

import (
	"context"
	"errors"
	"io"
	"strings"
	"unicode"

	"github.com/ccollicutt/textgrab/pkg/input"
)

// Split splits raw into two columns. Blank lines are dropped. Each remaining
// line contributes its first token to Column1 and, when it has two or more
// tokens, its last token to Column2 (otherwise ""). Tokens in between are
// discarded, so a multi-word first field keeps only its first word.
//
// Split never fails; empty or whitespace-only input yields two empty columns.
func Split(raw string) *Result {
	res := newResult()
	for _, line := range strings.Split(strings.TrimFunc(raw, IsSpace), "\n") {
		if first, last, ok := SplitLine(line); ok {
			res.add(first, last)
		}
	}
	return res
}

// SplitLine applies the per-line rule. ok is false when the line is blank
// and must not produce a row.
func SplitLine(line string) (first, last string, ok bool) {
	tokens := Tokens(line)
	if len(tokens) == 0 {
		return "", "", false
	}
	first = tokens[0]
	if len(tokens) >= 2 {
		last = tokens[len(tokens)-1]
	}
	return first, last, true
}

// Tokens breaks line on runs of whitespace. A byte order mark counts as
// whitespace so text pasted from a BOM-prefixed file splits cleanly.
func Tokens(line string) []string {
	return strings.FieldsFunc(line, IsSpace)
}

// IsSpace reports whether r separates tokens.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\ufeff'
}

// SplitSource reads src to exhaustion and splits every line. The result is
// identical to calling Split on the concatenated text. Only errors from src
// or ctx are returned.
func SplitSource(ctx context.Context, src input.LineSource) (*Result, error) {
	res := newResult()
	for {
		line, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		if first, last, ok := SplitLine(line.Content); ok {
			res.add(first, last)
		}
	}
}
