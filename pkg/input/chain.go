package input

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ChainedSource drains several LineSources one after another, preserving
// the order in which they were given.
type ChainedSource struct {
	sources []LineSource
	idx     int
}

// NewChainedSource creates a LineSource that reads each source to exhaustion
// before moving on to the next.
func NewChainedSource(sources ...LineSource) *ChainedSource {
	return &ChainedSource{sources: sources}
}

// Next returns the next line from the current source.
// Returns io.EOF when all sources are exhausted.
func (c *ChainedSource) Next(ctx context.Context) (*Line, error) {
	for c.idx < len(c.sources) {
		line, err := c.sources[c.idx].Next(ctx)
		if errors.Is(err, io.EOF) {
			c.idx++
			continue
		}
		if err != nil {
			return nil, err
		}
		return line, nil
	}
	return nil, io.EOF
}

// Close closes every underlying source.
func (c *ChainedSource) Close() error {
	var errs []error
	for _, s := range c.sources {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Open builds a LineSource over the given paths. Globs are expanded and the
// Stdin placeholder reads from stdin. With no paths, stdin is used.
func Open(paths []string, stdin io.Reader) (LineSource, error) {
	if len(paths) == 0 {
		return NewReaderSource(stdin, "stdin"), nil
	}

	files, err := ExpandGlobs(paths)
	if err != nil {
		return nil, fmt.Errorf("expanding inputs: %w", err)
	}

	var sources []LineSource
	if len(files) > 0 && files[0] == Stdin {
		sources = append(sources, NewReaderSource(stdin, "stdin"))
		files = files[1:]
	}
	if len(files) > 0 {
		sources = append(sources, NewFileSource(files))
	}

	if len(sources) == 1 {
		return sources[0], nil
	}
	return NewChainedSource(sources...), nil
}
