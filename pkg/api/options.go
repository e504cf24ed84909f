package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Ning0612/aerofs-go/internal/progress"
)

// RequestOption adjusts a single request
type RequestOption func(*requestConfig)

type requestConfig struct {
	header     http.Header
	query      url.Values
	respHeader *http.Header
	reporter   progress.Reporter
}

func newRequestConfig(opts []RequestOption) *requestConfig {
	rc := &requestConfig{header: make(http.Header)}
	for _, opt := range opts {
		if opt != nil {
			opt(rc)
		}
	}
	return rc
}

// WithHeader sets an arbitrary request header
func WithHeader(key, value string) RequestOption {
	return func(rc *requestConfig) {
		rc.header.Set(key, value)
	}
}

// IfMatch makes the request conditional on the resource still carrying one
// of etags. An empty list adds no header.
func IfMatch(etags ...string) RequestOption {
	return func(rc *requestConfig) {
		if v := joinETags(etags); v != "" {
			rc.header.Set("If-Match", v)
		}
	}
}

// IfNoneMatch makes a read return 304 when the resource still carries one of etags
func IfNoneMatch(etags ...string) RequestOption {
	return func(rc *requestConfig) {
		if v := joinETags(etags); v != "" {
			rc.header.Set("If-None-Match", v)
		}
	}
}

// IfRange makes a Range request fall back to the full content when etag is stale
func IfRange(etag string) RequestOption {
	return func(rc *requestConfig) {
		if etag != "" {
			rc.header.Set("If-Range", etag)
		}
	}
}

// Range requests bytes start..end inclusive. A negative end means to the end.
func Range(start, end int64) RequestOption {
	return func(rc *requestConfig) {
		if end < 0 {
			rc.header.Set("Range", fmt.Sprintf("bytes=%d-", start))
			return
		}
		rc.header.Set("Range", fmt.Sprintf("bytes=%d-%d", start, end))
	}
}

// WithQuery adds a query parameter
func WithQuery(key, value string) RequestOption {
	return func(rc *requestConfig) {
		if rc.query == nil {
			rc.query = make(url.Values)
		}
		rc.query.Add(key, value)
	}
}

// ResponseHeader stores the response headers in h. Concurrency tokens and
// upload identifiers are only ever carried in headers.
func ResponseHeader(h *http.Header) RequestOption {
	return func(rc *requestConfig) {
		rc.respHeader = h
	}
}

// WithProgress reports content transfer progress to r
func WithProgress(r progress.Reporter) RequestOption {
	return func(rc *requestConfig) {
		rc.reporter = r
	}
}

func joinETags(etags []string) string {
	var parts []string
	for _, e := range etags {
		if e = strings.TrimSpace(e); e != "" {
			parts = append(parts, e)
		}
	}
	return strings.Join(parts, ", ")
}
