package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SlogLogger writes sanitized records through a slog handler
type SlogLogger struct {
	logger    *slog.Logger
	sanitizer *Sanitizer
	writers   []io.WriteCloser // log files, closed on Shutdown
}

// NewSlogLogger builds a logger that writes to the console and, when a path
// is configured, to a rotating file.
func NewSlogLogger(config Config) (*SlogLogger, error) {
	console := config.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{console}

	var owned []io.WriteCloser
	if config.File.Path != "" {
		fw, err := createFileWriter(config.File)
		if err != nil {
			return nil, fmt.Errorf("failed to create file writer: %w", err)
		}
		writers = append(writers, fw)
		owned = append(owned, fw)
	}

	out := io.MultiWriter(writers...)
	opts := &slog.HandlerOptions{Level: config.Level.slogLevel()}

	var handler slog.Handler
	if config.Format == FormatJSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return &SlogLogger{
		logger:    slog.New(handler),
		sanitizer: NewSanitizer(),
		writers:   owned,
	}, nil
}

// createFileWriter opens a lumberjack writer, creating the log directory
func createFileWriter(config FileConfig) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(config.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   config.Path,
		MaxSize:    config.MaxSizeMB,
		MaxAge:     config.MaxAgeDays,
		MaxBackups: config.MaxBackups,
		Compress:   config.Compress,
	}, nil
}

// emit sanitizes and writes one record
func emit(l *slog.Logger, s *Sanitizer, level slog.Level, msg string, args []any) {
	if !l.Enabled(context.Background(), level) {
		return
	}
	l.Log(context.Background(), level, s.Sanitize(msg), s.SanitizeArgs(args)...)
}

func (l *SlogLogger) Debug(msg string, args ...any) {
	emit(l.logger, l.sanitizer, slog.LevelDebug, msg, args)
}

func (l *SlogLogger) Info(msg string, args ...any) {
	emit(l.logger, l.sanitizer, slog.LevelInfo, msg, args)
}

func (l *SlogLogger) Warn(msg string, args ...any) {
	emit(l.logger, l.sanitizer, slog.LevelWarn, msg, args)
}

func (l *SlogLogger) Error(msg string, args ...any) {
	emit(l.logger, l.sanitizer, slog.LevelError, msg, args)
}

// With returns a child logger. Children share the writers but never close them.
func (l *SlogLogger) With(args ...any) Logger {
	return &childLogger{
		logger:    l.logger.With(l.sanitizer.SanitizeArgs(args)...),
		sanitizer: l.sanitizer,
	}
}

// Sync is a no-op; lumberjack writes through
func (l *SlogLogger) Sync() error {
	return nil
}

// Shutdown closes every owned writer and returns the last error
func (l *SlogLogger) Shutdown() error {
	var lastErr error
	for _, w := range l.writers {
		if err := w.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

type childLogger struct {
	logger    *slog.Logger
	sanitizer *Sanitizer
}

func (c *childLogger) Debug(msg string, args ...any) {
	emit(c.logger, c.sanitizer, slog.LevelDebug, msg, args)
}

func (c *childLogger) Info(msg string, args ...any) {
	emit(c.logger, c.sanitizer, slog.LevelInfo, msg, args)
}

func (c *childLogger) Warn(msg string, args ...any) {
	emit(c.logger, c.sanitizer, slog.LevelWarn, msg, args)
}

func (c *childLogger) Error(msg string, args ...any) {
	emit(c.logger, c.sanitizer, slog.LevelError, msg, args)
}

func (c *childLogger) With(args ...any) Logger {
	return &childLogger{
		logger:    c.logger.With(c.sanitizer.SanitizeArgs(args)...),
		sanitizer: c.sanitizer,
	}
}

func (c *childLogger) Sync() error     { return nil }
func (c *childLogger) Shutdown() error { return nil }
