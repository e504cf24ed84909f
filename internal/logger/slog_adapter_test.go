package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSlogLogger_ZeroConfig(t *testing.T) {
	l, err := NewSlogLogger(Config{})
	if err != nil {
		t.Fatalf("NewSlogLogger() error = %v", err)
	}
	if len(l.writers) != 0 {
		t.Errorf("stderr must not be owned, got %d owned writers", len(l.writers))
	}
	if l.logger.Enabled(context.Background(), LevelDebug.slogLevel()) {
		t.Error("zero config should not log debug records")
	}
	if err := l.Shutdown(); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestSlogLogger_Levels(t *testing.T) {
	tests := []struct {
		level Level
		want  []string
	}{
		{LevelDebug, []string{"request", "upload started", "token expired", "upload failed"}},
		{LevelInfo, []string{"upload started", "token expired", "upload failed"}},
		{LevelWarn, []string{"token expired", "upload failed"}},
		{LevelError, []string{"upload failed"}},
		{"", []string{"upload started", "token expired", "upload failed"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			buf := &bytes.Buffer{}
			l, err := NewSlogLogger(Config{Level: tt.level, Console: buf})
			if err != nil {
				t.Fatalf("NewSlogLogger() error = %v", err)
			}
			defer l.Shutdown()

			l.Debug("request")
			l.Info("upload started")
			l.Warn("token expired")
			l.Error("upload failed")

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			if len(lines) != len(tt.want) {
				t.Fatalf("got %d records, want %d:\n%s", len(lines), len(tt.want), buf.String())
			}
			for i, msg := range tt.want {
				if !strings.Contains(lines[i], "msg=\""+msg+"\"") && !strings.Contains(lines[i], "msg="+msg) {
					t.Errorf("record %d = %s, want msg %q", i, lines[i], msg)
				}
			}
		})
	}
}

func TestSlogLogger_JSONRecord(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := NewSlogLogger(Config{Level: LevelDebug, Format: FormatJSON, Console: buf})
	if err != nil {
		t.Fatalf("NewSlogLogger() error = %v", err)
	}
	defer l.Shutdown()

	l.With("component", "auth").Debug("introspect",
		"route", "/auth/tokeninfo?access_token=tok-1234567890",
		"client_secret", "s3cr3t-value")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not one JSON record: %v\n%s", err, buf.String())
	}
	if rec["msg"] != "introspect" || rec["component"] != "auth" {
		t.Errorf("unexpected record: %v", rec)
	}
	if rec["route"] != "/auth/tokeninfo?access_token=***" {
		t.Errorf("route not sanitized: %v", rec["route"])
	}
	if rec["client_secret"] != "s***e" {
		t.Errorf("client_secret not masked: %v", rec["client_secret"])
	}
}

func TestSlogLogger_BearerInMessage(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := NewSlogLogger(Config{Console: buf})
	if err != nil {
		t.Fatalf("NewSlogLogger() error = %v", err)
	}
	defer l.Shutdown()

	l.Warn("retrying with Authorization: Bearer tok-abcdef", "error", errors.New("Bearer tok-abcdef rejected"))

	if strings.Contains(buf.String(), "tok-abcdef") {
		t.Errorf("bearer credential leaked: %s", buf.String())
	}
}

func TestSlogLogger_ChildContext(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := NewSlogLogger(Config{Console: buf})
	if err != nil {
		t.Fatalf("NewSlogLogger() error = %v", err)
	}
	defer l.Shutdown()

	child := l.With("component", "sdk", "access_token", "abcdefghijk")
	child.With("file", "x1").Info("content uploaded")

	out := buf.String()
	for _, want := range []string{"component=sdk", "file=x1", "access_token=a***k"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
	if err := child.Shutdown(); err != nil {
		t.Errorf("child Shutdown() error = %v", err)
	}
}

func TestSlogLogger_File(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "nested", "aerofs.log")

	l, err := NewSlogLogger(Config{
		Console: io.Discard,
		File:    FileConfig{Path: logPath, MaxSizeMB: 1, MaxAgeDays: 7, MaxBackups: 3},
	})
	if err != nil {
		t.Fatalf("NewSlogLogger() error = %v", err)
	}
	if len(l.writers) != 1 {
		t.Fatalf("expected the log file to be owned, got %d writers", len(l.writers))
	}

	l.Info("upload committed", "file", "x1", "bytes", 1048577)
	if err := l.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "upload committed") || !strings.Contains(string(content), "bytes=1048577") {
		t.Errorf("log file missing record: %s", content)
	}
}

func TestSlogLogger_FileAndConsole(t *testing.T) {
	buf := &bytes.Buffer{}
	logPath := filepath.Join(t.TempDir(), "aerofs.log")

	l, err := NewSlogLogger(Config{Console: buf, File: FileConfig{Path: logPath}})
	if err != nil {
		t.Fatalf("NewSlogLogger() error = %v", err)
	}
	l.Info("chunk sent")
	l.Shutdown()

	content, _ := os.ReadFile(logPath)
	if !strings.Contains(buf.String(), "chunk sent") || !strings.Contains(string(content), "chunk sent") {
		t.Errorf("record not written to both sinks: console=%q file=%q", buf.String(), content)
	}
}

func TestSlogLogger_FileDirError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewSlogLogger(Config{File: FileConfig{Path: filepath.Join(blocker, "aerofs.log")}})
	if err == nil {
		t.Error("expected error when the log directory cannot be created")
	}
}
