package checksum

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSum(t *testing.T) {
	tests := []struct {
		name  string
		input string
		algo  Algorithm
		want  string
	}{
		{"md5", "hello world", MD5, "md5:5eb63bbbe01eeed093cb22bb8f5acdc3"},
		{"sha256", "hello world", SHA256, "sha256:b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"},
		{"empty md5", "", MD5, "md5:d41d8cd98f00b204e9800998ecf8427e"},
		{"empty sha256", "", SHA256, "sha256:e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sum(context.Background(), strings.NewReader(tt.input), tt.algo)
			if err != nil {
				t.Fatalf("Sum() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Sum() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSum_LargerThanBuffer(t *testing.T) {
	data := strings.Repeat("a", 3*bufferSize+17)

	whole, err := Sum(context.Background(), strings.NewReader(data), SHA256)
	if err != nil {
		t.Fatalf("Sum() error = %v", err)
	}
	other, err := Sum(context.Background(), strings.NewReader(data[:len(data)-1]+"b"), SHA256)
	if err != nil {
		t.Fatalf("Sum() error = %v", err)
	}
	if whole == other {
		t.Error("last byte change not reflected in sum")
	}
}

func TestSum_Unsupported(t *testing.T) {
	if _, err := Sum(context.Background(), strings.NewReader("x"), "crc32"); err == nil {
		t.Error("expected error for unsupported algorithm")
	}
	if IsSupported("crc32") || !IsSupported(SHA256) {
		t.Error("IsSupported() mismatch")
	}
}

func TestSum_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Sum(ctx, strings.NewReader("data"), SHA256)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestSum_ReadError(t *testing.T) {
	if _, err := Sum(context.Background(), failingReader{}, MD5); err == nil {
		t.Error("expected read error")
	}
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	if err := os.WriteFile(path, []byte("hello world"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := File(context.Background(), path, MD5)
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	if got != "md5:5eb63bbbe01eeed093cb22bb8f5acdc3" {
		t.Errorf("File() = %s", got)
	}

	if _, err := File(context.Background(), path+".missing", MD5); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"md5:abc", "md5:abc", true},
		{"md5:ABC", "md5:abc", true},
		{"md5:abc", "sha256:abc", false},
		{"", "", false},
		{"md5:abc", "", false},
	}
	for _, tt := range tests {
		if got := Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("Equal(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
