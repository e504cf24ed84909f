package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Reporter receives progress for a single content transfer
type Reporter interface {
	// Start begins a transfer. totalBytes is negative when the size is not
	// known up front, which is the case for streamed uploads.
	Start(name string, totalBytes int64)
	// Update reports the cumulative number of bytes transferred
	Update(bytesTransferred int64)
	// Complete marks the transfer as finished
	Complete()
	// Error marks the transfer as failed
	Error(err error)
}

// Callback receives progress events
type Callback func(event Event)

// Event is a progress notification
type Event struct {
	Kind           Kind
	Name           string
	Bytes          int64
	Total          int64
	BytesPerSecond float64
	Elapsed        time.Duration
	Err            error
}

// Kind is the type of a progress event
type Kind int

const (
	KindStart Kind = iota
	KindProgress
	KindComplete
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindProgress:
		return "progress"
	case KindComplete:
		return "complete"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// CallbackReporter forwards every event to a callback. It is safe for
// concurrent use; the callback always runs outside the lock.
type CallbackReporter struct {
	callback Callback

	mu        sync.Mutex
	name      string
	total     int64
	bytes     int64
	startTime time.Time
}

// NewCallbackReporter creates a CallbackReporter
func NewCallbackReporter(callback Callback) *CallbackReporter {
	return &CallbackReporter{callback: callback}
}

func (r *CallbackReporter) Start(name string, totalBytes int64) {
	r.mu.Lock()
	r.name = name
	r.total = totalBytes
	r.bytes = 0
	r.startTime = time.Now()
	ev := Event{Kind: KindStart, Name: name, Total: totalBytes}
	r.mu.Unlock()

	r.emit(ev)
}

func (r *CallbackReporter) Update(bytesTransferred int64) {
	r.mu.Lock()
	r.bytes = bytesTransferred
	ev := r.snapshot(KindProgress)
	r.mu.Unlock()

	r.emit(ev)
}

func (r *CallbackReporter) Complete() {
	r.mu.Lock()
	if r.total < 0 {
		r.total = r.bytes
	}
	ev := r.snapshot(KindComplete)
	r.mu.Unlock()

	r.emit(ev)
}

func (r *CallbackReporter) Error(err error) {
	r.mu.Lock()
	ev := r.snapshot(KindError)
	ev.Err = err
	r.mu.Unlock()

	r.emit(ev)
}

// snapshot must be called with mu held
func (r *CallbackReporter) snapshot(kind Kind) Event {
	ev := Event{Kind: kind, Name: r.name, Bytes: r.bytes, Total: r.total}
	if !r.startTime.IsZero() {
		ev.Elapsed = time.Since(r.startTime)
		if secs := ev.Elapsed.Seconds(); secs > 0 {
			ev.BytesPerSecond = float64(r.bytes) / secs
		}
	}
	return ev
}

func (r *CallbackReporter) emit(ev Event) {
	if r.callback != nil {
		r.callback(ev)
	}
}

// NullReporter discards everything
type NullReporter struct{}

func (NullReporter) Start(name string, totalBytes int64) {}
func (NullReporter) Update(bytesTransferred int64)       {}
func (NullReporter) Complete()                           {}
func (NullReporter) Error(err error)                     {}

// OrNull returns r, or a NullReporter when r is nil
func OrNull(r Reporter) Reporter {
	if r == nil {
		return NullReporter{}
	}
	return r
}

// ProgressReader reports bytes as they are read
type ProgressReader struct {
	reader      io.Reader
	reporter    Reporter
	transferred int64
}

func NewProgressReader(r io.Reader, reporter Reporter) *ProgressReader {
	return &ProgressReader{reader: r, reporter: OrNull(reporter)}
}

func (pr *ProgressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	if n > 0 {
		pr.transferred += int64(n)
		pr.reporter.Update(pr.transferred)
	}
	return n, err
}

// Transferred returns the number of bytes read so far
func (pr *ProgressReader) Transferred() int64 {
	return pr.transferred
}

// ProgressWriter reports bytes as they are written
type ProgressWriter struct {
	writer      io.Writer
	reporter    Reporter
	transferred int64
}

func NewProgressWriter(w io.Writer, reporter Reporter) *ProgressWriter {
	return &ProgressWriter{writer: w, reporter: OrNull(reporter)}
}

func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.writer.Write(p)
	if n > 0 {
		pw.transferred += int64(n)
		pw.reporter.Update(pw.transferred)
	}
	return n, err
}

// Transferred returns the number of bytes written so far
func (pw *ProgressWriter) Transferred() int64 {
	return pw.transferred
}

// FormatBytes formats a byte count with binary units
func FormatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

func FormatSpeed(bytesPerSecond float64) string {
	return FormatBytes(int64(bytesPerSecond)) + "/s"
}

// FormatProgress renders a bar of the given width. Without a known total
// only the byte count is shown.
func FormatProgress(current, total int64, width int) string {
	if total <= 0 {
		return FormatBytes(current)
	}

	percent := float64(current) / float64(total)
	if percent > 1 {
		percent = 1
	}
	filled := int(percent * float64(width))

	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < width; i++ {
		switch {
		case i < filled:
			b.WriteByte('=')
		case i == filled:
			b.WriteByte('>')
		default:
			b.WriteByte(' ')
		}
	}
	b.WriteByte(']')

	return fmt.Sprintf("%s %5.1f%%", b.String(), percent*100)
}
