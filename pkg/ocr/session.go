package ocr

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Session holds the image selected for recognition between the load step
// and the extract step. Loading a new image replaces the previous one.
// A Session is not safe for concurrent use.
type Session struct {
	engine   Engine
	progress Progress
	timeout  time.Duration

	current *Input
	last    *Result
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithProgress sets the progress callback.
func WithProgress(p Progress) SessionOption {
	return func(s *Session) {
		s.progress = p
	}
}

// WithTimeout bounds a single Extract call. Zero means no limit.
func WithTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewSession creates a session that recognizes images with engine.
func NewSession(engine Engine, opts ...SessionOption) *Session {
	s := &Session{engine: engine}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load selects in as the current image and clears any previous result.
func (s *Session) Load(in Input) {
	s.progress.report(StatusLoading, 0)
	s.current = &in
	s.last = nil
}

// Loaded reports whether an image is ready for extraction.
func (s *Session) Loaded() bool {
	return s.current != nil
}

// Current returns the loaded image, if any.
func (s *Session) Current() (Input, bool) {
	if s.current == nil {
		return Input{}, false
	}
	return *s.current, true
}

// Extract runs recognition on the current image and returns its text.
func (s *Session) Extract(ctx context.Context) (*Result, error) {
	if s.current == nil {
		return nil, ErrNoImage
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// gosseract exposes no progress monitor, so only the endpoints of
	// recognition are reported.
	s.progress.report(StatusInitializing, 0)
	s.progress.report(StatusRecognizing, 0)

	res, err := s.engine.Recognize(ctx, *s.current)
	if err != nil {
		return nil, fmt.Errorf("recognizing %s: %w", s.current.ID, err)
	}
	res.PlainText = strings.TrimSpace(res.PlainText)
	if res.InputID == "" {
		res.InputID = s.current.ID
	}
	if res.Engine == "" {
		res.Engine = s.engine.Name()
	}

	s.progress.report(StatusRecognizing, 1)
	s.progress.report(StatusDone, 1)

	s.last = &res
	return &res, nil
}

// Last returns the result of the most recent successful Extract since the
// last Load.
func (s *Session) Last() (*Result, bool) {
	return s.last, s.last != nil
}
