// Package api is a thin client for the AeroFS REST API. Every method maps to
// exactly one route and performs one round trip, except UploadFileContent
// which runs the chunked upload handshake.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Ning0612/aerofs-go/internal/domain"
	"github.com/Ning0612/aerofs-go/internal/logger"
)

const (
	DefaultAPIVersion = "1.3"
	DefaultTimeout    = 60 * time.Second

	contentTypeJSON   = "application/json"
	contentTypeStream = "application/octet-stream"
)

// Config identifies the appliance and the credential used for every request
type Config struct {
	Hostname    string
	AccessToken string
	// APIVersion defaults to DefaultAPIVersion
	APIVersion string
	// Scheme defaults to https
	Scheme  string
	Timeout time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient overrides the HTTP client. Its Timeout wins over Config.Timeout.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithBaseURL replaces the computed {scheme}://{hostname}/api/v{version} root
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(base, "/")
	}
}

// WithLogger sets the logger used for per-request debug output
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// Client issues authenticated requests. It holds no per-request state and is
// safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	header     http.Header // template, never mutated after NewClient
	log        logger.Logger
}

// NewClient builds a Client from cfg
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.AccessToken) == "" {
		return nil, domain.ErrEmptyAccessToken
	}

	version := cfg.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}
	scheme := cfg.Scheme
	if scheme == "" {
		scheme = "https"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		header: http.Header{
			"Authorization":        {"Bearer " + cfg.AccessToken},
			"Endpoint-Consistency": {"strict"},
		},
		log: logger.With("component", "api"),
	}
	if cfg.Hostname != "" {
		c.baseURL = fmt.Sprintf("%s://%s/api/v%s", scheme, cfg.Hostname, version)
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.baseURL == "" {
		return nil, errors.New("api: hostname is required")
	}
	if _, err := url.Parse(c.baseURL); err != nil {
		return nil, fmt.Errorf("api: invalid base URL: %w", err)
	}
	return c, nil
}

// BaseURL returns the versioned API root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request describes a single call. Route is relative to the versioned root
// and must already be escaped.
type Request struct {
	Method      string
	Route       string
	Query       url.Values
	Header      http.Header
	Body        io.Reader
	ContentType string
}

// Do sends req and decodes a JSON response into out when out is non-nil and
// the body is not empty. Non-2xx responses are returned as *HTTPError.
func (c *Client) Do(ctx context.Context, req *Request, out any, opts ...RequestOption) error {
	resp, err := c.send(ctx, req, opts)
	if err != nil {
		return err
	}
	defer closeBody(resp.Body)

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read response body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", domain.ErrProtocol, req.Method, req.Route, err)
	}
	return nil
}

// send performs the round trip and returns a 2xx response whose body the
// caller must close
func (c *Client) send(ctx context.Context, req *Request, opts []RequestOption) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("api: request is nil")
	}
	if req.Method == "" {
		return nil, errors.New("api: HTTP method is required")
	}

	rc := newRequestConfig(opts)

	fullURL, err := c.buildURL(req.Route, mergeQuery(req.Query, rc.query))
	if err != nil {
		return nil, err
	}

	body := req.Body
	if body == nil {
		body = http.NoBody
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, err
	}

	// fresh header set per request
	httpReq.Header = cloneHeader(c.header)
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}
	for _, h := range []http.Header{req.Header, rc.header} {
		for k, values := range h {
			httpReq.Header.Del(k)
			for _, v := range values {
				httpReq.Header.Add(k, v)
			}
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Debug("request failed", "method", req.Method, "route", req.Route, "error", err)
		return nil, err
	}
	c.log.Debug("request",
		"method", req.Method,
		"route", req.Route,
		"status", resp.StatusCode,
		"elapsed", time.Since(start))

	if rc.respHeader != nil {
		*rc.respHeader = resp.Header.Clone()
	}

	if err := CheckResponse(req.Method, req.Route, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Get issues a GET and decodes the response into out
func (c *Client) Get(ctx context.Context, route string, query url.Values, out any, opts ...RequestOption) error {
	return c.Do(ctx, &Request{Method: http.MethodGet, Route: route, Query: query}, out, opts...)
}

// Post issues a POST with in encoded as JSON (no body when in is nil)
func (c *Client) Post(ctx context.Context, route string, in, out any, opts ...RequestOption) error {
	req, err := jsonRequest(http.MethodPost, route, in)
	if err != nil {
		return err
	}
	return c.Do(ctx, req, out, opts...)
}

// Put issues a PUT with in encoded as JSON
func (c *Client) Put(ctx context.Context, route string, in, out any, opts ...RequestOption) error {
	req, err := jsonRequest(http.MethodPut, route, in)
	if err != nil {
		return err
	}
	return c.Do(ctx, req, out, opts...)
}

// Delete issues a DELETE
func (c *Client) Delete(ctx context.Context, route string, opts ...RequestOption) error {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Route: route}, nil, opts...)
}

func jsonRequest(method, route string, in any) (*Request, error) {
	req := &Request{Method: method, Route: route}
	if in == nil {
		return req, nil
	}
	data, err := jsonMarshal(in)
	if err != nil {
		return nil, fmt.Errorf("api: encode request body: %w", err)
	}
	req.Body = bytes.NewReader(data)
	req.ContentType = contentTypeJSON
	return req, nil
}

func (c *Client) buildURL(route string, q url.Values) (string, error) {
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	u, err := url.Parse(c.baseURL + route)
	if err != nil {
		return "", fmt.Errorf("api: invalid route %q: %w", route, err)
	}
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// route joins escaped path segments
func route(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

func mergeQuery(a, b url.Values) url.Values {
	if len(b) == 0 {
		return a
	}
	out := make(url.Values, len(a)+len(b))
	for k, v := range a {
		out[k] = append([]string(nil), v...)
	}
	for k, v := range b {
		out[k] = append(out[k], v...)
	}
	return out
}

func cloneHeader(src http.Header) http.Header {
	dst := make(http.Header, len(src))
	for k, values := range src {
		dst[k] = append([]string(nil), values...)
	}
	return dst
}

func closeBody(rc io.ReadCloser) {
	if rc != nil {
		_ = rc.Close()
	}
}

func jsonMarshal(v any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
