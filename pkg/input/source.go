package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// byteOrderMark is dropped from the start of every source.
const byteOrderMark = "\ufeff"

// FileSource implements LineSource for reading from one or more files in order.
type FileSource struct {
	files []string

	currentFile   *os.File
	currentReader *lineReader
	currentSource string
	currentLine   int
	fileIndex     int
}

// NewFileSource creates a LineSource that reads the given files one after another.
func NewFileSource(files []string) *FileSource {
	return &FileSource{
		files:     files,
		fileIndex: -1,
	}
}

// Next returns the next line across all files.
// Returns io.EOF when all files have been exhausted.
func (s *FileSource) Next(ctx context.Context) (*Line, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if s.currentReader == nil {
			if err := s.openNextFile(); err != nil {
				return nil, err
			}
		}

		content, err := s.currentReader.next()
		if err == nil {
			s.currentLine++
			return &Line{
				Content: content,
				Source:  s.currentSource,
				LineNum: s.currentLine,
			}, nil
		}
		if !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading %s: %w", s.currentSource, err)
		}

		// Current file exhausted, try next
		if err := s.closeCurrentFile(); err != nil {
			return nil, err
		}
	}
}

// Close releases resources.
func (s *FileSource) Close() error {
	return s.closeCurrentFile()
}

func (s *FileSource) openNextFile() error {
	s.fileIndex++
	if s.fileIndex >= len(s.files) {
		return io.EOF
	}

	path := s.files[s.fileIndex]
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("opening input file %s: %w", path, err)
	}

	s.currentFile = f
	s.currentReader = newLineReader(f)
	s.currentSource = path
	s.currentLine = 0

	return nil
}

func (s *FileSource) closeCurrentFile() error {
	if s.currentFile != nil {
		err := s.currentFile.Close()
		s.currentFile = nil
		s.currentReader = nil
		return err
	}
	return nil
}

// ReaderSource implements LineSource over an arbitrary reader such as stdin.
// The reader is not closed by Close.
type ReaderSource struct {
	name   string
	reader *lineReader
	line   int
}

// NewReaderSource creates a LineSource reading from r. name is reported as
// the Source of every line.
func NewReaderSource(r io.Reader, name string) *ReaderSource {
	return &ReaderSource{
		name:   name,
		reader: newLineReader(r),
	}
}

// NewStringSource creates a LineSource over inline text.
func NewStringSource(text string) *ReaderSource {
	return NewReaderSource(strings.NewReader(text), "inline")
}

// Next returns the next line from the reader.
func (s *ReaderSource) Next(ctx context.Context) (*Line, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	content, err := s.reader.next()
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.name, err)
	}
	s.line++
	return &Line{
		Content: content,
		Source:  s.name,
		LineNum: s.line,
	}, nil
}

// Close is a no-op; the caller owns the underlying reader.
func (s *ReaderSource) Close() error {
	return nil
}

// ReadAll drains a source and joins its lines with "\n".
func ReadAll(ctx context.Context, src LineSource) (string, error) {
	var sb strings.Builder
	first := true
	for {
		line, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}
		if !first {
			sb.WriteByte('\n')
		}
		first = false
		sb.WriteString(line.Content)
	}
}

// lineReader splits on "\n" only, so a trailing "\r" stays in the line
// content and is removed by whitespace trimming downstream. Lines have no
// length limit.
type lineReader struct {
	r       *bufio.Reader
	started bool
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

// next returns the next line without its "\n", or io.EOF once the input is
// exhausted. A final line without a newline is still returned.
func (l *lineReader) next() (string, error) {
	line, err := l.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", io.EOF
	}

	line = strings.TrimSuffix(line, "\n")
	if !l.started {
		line = strings.TrimPrefix(line, byteOrderMark)
		l.started = true
	}
	return line, nil
}
