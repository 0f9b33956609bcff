// Package input provides line-oriented readers over files, stdin and inline text.
package input

// Line is a single raw line of input text.
type Line struct {
	// Content is the line text without its trailing newline.
	Content string

	// Source names where the line came from (file path, "stdin", "inline").
	Source string

	// LineNum is the 1-based line number within Source.
	LineNum int
}
