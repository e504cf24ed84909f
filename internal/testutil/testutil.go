package testutil

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// APIPrefix is the versioned route prefix served by Server
const APIPrefix = "/api/v1.3"

// Request is a request captured by Server
type Request struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// Server is an httptest server answering from a route table. Every request
// is recorded, including the ones with no matching route (which get a 404).
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []Request
}

// NewServer starts a Server that is closed when the test ends
func NewServer(t *testing.T) *Server {
	t.Helper()

	s := &Server{routes: make(map[string]http.HandlerFunc)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(strings.NewReader(string(body)))

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: r.Method,
		Path:   r.URL.EscapedPath(),
		Query:  r.URL.RawQuery,
		Header: r.Header.Clone(),
		Body:   body,
	})
	h, ok := s.routes[r.Method+" "+r.URL.EscapedPath()]
	s.mu.Unlock()

	if !ok {
		http.Error(w, `{"type":"NOT_FOUND","message":"no route"}`, http.StatusNotFound)
		return
	}
	h(w, r)
}

// Handle registers h for method and an absolute path
func (s *Server) Handle(method, path string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[method+" "+path] = h
}

// Route registers h for method and a path below APIPrefix
func (s *Server) Route(method, route string, h http.HandlerFunc) {
	s.Handle(method, APIPrefix+route, h)
}

// BaseURL is the versioned API root of the server
func (s *Server) BaseURL() string {
	return s.URL + APIPrefix
}

// Requests returns a copy of every recorded request
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns how many requests hit method and route below APIPrefix
func (s *Server) Count(method, route string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == APIPrefix+route {
			n++
		}
	}
	return n
}

// Reset forgets recorded requests but keeps the routes
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

// JSON replies with status and v encoded as JSON. headers are key/value pairs.
func JSON(status int, v any, headers ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setHeaders(w, headers)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if v != nil {
			_ = json.NewEncoder(w).Encode(v)
		}
	}
}

// Raw replies with status and an arbitrary body
func Raw(status int, body []byte, headers ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setHeaders(w, headers)
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}
}

// Status replies with an empty body
func Status(status int, headers ...string) http.HandlerFunc {
	return Raw(status, nil, headers...)
}

func setHeaders(w http.ResponseWriter, kv []string) {
	if len(kv)%2 != 0 {
		panic(fmt.Sprintf("testutil: odd header list %v", kv))
	}
	for i := 0; i < len(kv); i += 2 {
		w.Header().Set(kv[i], kv[i+1])
	}
}

// RandomBytes returns n random bytes
func RandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// CreateTestFile writes content to dir/name and returns the path
func CreateTestFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}
