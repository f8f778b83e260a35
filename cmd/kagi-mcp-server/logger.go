package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/jmylchreest/kagi-mcp-server/middleware"
)

// slogLogger adapts slog to the middleware.Logger interface. It writes to
// stderr because stdout carries the protocol stream.
type slogLogger struct {
	l *slog.Logger
}

func newLogger(level string) *slogLogger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return &slogLogger{
		l: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})),
	}
}

func (s *slogLogger) attrs(fields []middleware.Field) []any {
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		args = append(args, slog.Any(f.Key, f.Value))
	}
	return args
}

func (s *slogLogger) Debug(msg string, fields ...middleware.Field) {
	s.l.Debug(msg, s.attrs(fields)...)
}

func (s *slogLogger) Info(msg string, fields ...middleware.Field) {
	s.l.Info(msg, s.attrs(fields)...)
}

func (s *slogLogger) Warn(msg string, fields ...middleware.Field) {
	s.l.Warn(msg, s.attrs(fields)...)
}

func (s *slogLogger) Error(msg string, fields ...middleware.Field) {
	s.l.Error(msg, s.attrs(fields)...)
}
