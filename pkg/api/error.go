package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Ning0612/aerofs-go/internal/domain"
)

// maxErrorBody bounds how much of a failed response is kept
const maxErrorBody = 64 << 10

// HTTPError is a non-2xx response. It matches the domain transport
// sentinels with errors.Is, e.g. errors.Is(err, domain.ErrPreconditionFailed).
type HTTPError struct {
	Method     string
	Route      string
	StatusCode int
	Body       []byte
	Header     http.Header

	// Code and Message come from the JSON error body when present
	Code    string
	Message string
}

// CheckResponse returns nil for a 2xx response. Otherwise it consumes and
// closes the body and returns an *HTTPError.
func CheckResponse(method, route string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}
	return newHTTPError(method, route, resp)
}

func newHTTPError(method, route string, resp *http.Response) *HTTPError {
	defer closeBody(resp.Body)
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	e := &HTTPError{
		Method:     method,
		Route:      route,
		StatusCode: resp.StatusCode,
		Body:       body,
		Header:     resp.Header.Clone(),
	}

	var payload struct {
		Type    string `json:"type"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		e.Code = payload.Type
		if e.Code == "" {
			e.Code = payload.Error
		}
		e.Message = payload.Message
	}
	return e
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %d %s", e.Method, e.Route, e.StatusCode, http.StatusText(e.StatusCode))
	switch {
	case e.Code != "" && e.Message != "":
		fmt.Fprintf(&b, ": %s: %s", e.Code, e.Message)
	case e.Message != "":
		fmt.Fprintf(&b, ": %s", e.Message)
	case e.Code != "":
		fmt.Fprintf(&b, ": %s", e.Code)
	case len(e.Body) > 0:
		fmt.Fprintf(&b, ": %s", strings.TrimSpace(string(e.Body)))
	}
	return b.String()
}

// Is maps the status code to the matching domain sentinel
func (e *HTTPError) Is(target error) bool {
	if e == nil {
		return false
	}
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return target == domain.ErrUnauthorized
	case http.StatusForbidden:
		return target == domain.ErrPermissionDenied
	case http.StatusNotFound:
		return target == domain.ErrNotFound
	case http.StatusConflict:
		return target == domain.ErrAlreadyExists
	case http.StatusPreconditionFailed:
		return target == domain.ErrPreconditionFailed
	case http.StatusTooManyRequests:
		return target == domain.ErrRateLimited
	}
	return false
}
