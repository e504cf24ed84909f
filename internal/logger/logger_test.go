package logger

import (
	"bytes"
	"strings"
	"testing"
)

func bufferConfig(buf *bytes.Buffer, level Level) Config {
	return Config{Level: level, Console: buf}
}

func TestInitAndGet(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Init(bufferConfig(buf, LevelInfo)); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer Shutdown()

	Get().Info("fetched folder", "id", "f1")

	if !strings.Contains(buf.String(), "fetched folder") {
		t.Errorf("log output missing message: %s", buf.String())
	}
}

func TestInitTwice(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Init(bufferConfig(buf, LevelInfo)); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer Shutdown()

	if err := Init(bufferConfig(buf, LevelInfo)); err == nil {
		t.Error("second Init() should fail")
	}
}

func TestGetBeforeInit(t *testing.T) {
	Shutdown()

	l := Get()
	if _, ok := l.(NullLogger); !ok {
		t.Fatalf("expected NullLogger before Init, got %T", l)
	}
	l.Info("dropped")
	l.With("component", "api").Error("dropped")
}

func TestPackageWith(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Init(bufferConfig(buf, LevelDebug)); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer Shutdown()

	With("component", "api").Debug("request", "method", "GET")

	out := buf.String()
	if !strings.Contains(out, "component=api") || !strings.Contains(out, "method=GET") {
		t.Errorf("output missing context: %s", out)
	}
}

func TestShutdownIdempotent(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Init(bufferConfig(buf, LevelInfo)); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := Sync(); err != nil {
		t.Errorf("Sync() error = %v", err)
	}
	if err := Shutdown(); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	if err := Shutdown(); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{" WARN ", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"", LevelInfo, false},
		{"verbose", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, error %v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("JSON"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(JSON) = %v, %v", f, err)
	}
	if f, err := ParseFormat(""); err != nil || f != FormatText {
		t.Errorf("ParseFormat(\"\") = %v, %v", f, err)
	}
	if _, err := ParseFormat("logfmt"); err == nil {
		t.Error("unknown formats should be rejected")
	}
}
