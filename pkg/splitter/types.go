// Package splitter turns whitespace-separated multi-column text into two
// aligned columns: the first and the last token of every non-blank line.
package splitter

import "strings"

// Result holds the two columns produced by a split.
// Column1[i] and Column2[i] always come from the same input line.
type Result struct {
	Column1 []string `json:"column1"`
	Column2 []string `json:"column2"`
}

// Row pairs the Column1 and Column2 entries derived from one input line.
type Row struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

func newResult() *Result {
	return &Result{
		Column1: []string{},
		Column2: []string{},
	}
}

func (r *Result) add(first, last string) {
	r.Column1 = append(r.Column1, first)
	r.Column2 = append(r.Column2, last)
}

// Len returns the number of rows.
func (r *Result) Len() int {
	return len(r.Column1)
}

// Rows returns the result as a slice of rows.
func (r *Result) Rows() []Row {
	rows := make([]Row, len(r.Column1))
	for i := range r.Column1 {
		rows[i] = Row{First: r.Column1[i], Last: r.Column2[i]}
	}
	return rows
}

// Column1Text returns Column1 joined with newlines.
func (r *Result) Column1Text() string {
	return strings.Join(r.Column1, "\n")
}

// Column2Text returns Column2 joined with newlines.
func (r *Result) Column2Text() string {
	return strings.Join(r.Column2, "\n")
}

// ColumnText returns the text of column 1 or 2. Any other index yields "".
func (r *Result) ColumnText(n int) string {
	switch n {
	case 1:
		return r.Column1Text()
	case 2:
		return r.Column2Text()
	default:
		return ""
	}
}
