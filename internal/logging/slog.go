package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

type SlogLogger struct {
	l *slog.Logger
}

func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

// NewStdoutLogger writes human-readable text when stdout is a terminal and
// JSON lines otherwise.
func NewStdoutLogger(level slog.Level) *SlogLogger {
	return newFileLogger(os.Stdout, level)
}

// NewDiscardLogger drops everything. Useful in tests.
func NewDiscardLogger() *SlogLogger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newFileLogger(f *os.File, level slog.Level) *SlogLogger {
	opts := &slog.HandlerOptions{Level: level}
	if isTerminal(f) {
		return NewSlogLogger(slog.New(slog.NewTextHandler(f, opts)))
	}
	return NewSlogLogger(slog.New(slog.NewJSONHandler(f, opts)))
}

var isTerminal = func(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.l.DebugContext(ctx, msg, args...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.l.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.l.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.l.ErrorContext(ctx, msg, args...)
}

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}
