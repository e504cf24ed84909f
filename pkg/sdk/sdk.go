// Package sdk models AeroFS resources as objects whose fields are fetched
// lazily and pushed on write.
//
// An object is usually built with just its identifier:
//
//	f := sdk.NewFile(client, id)
//	name, err := f.Name(ctx) // one GET /files/{id}, fills every field
//	size, err := f.Size(ctx) // no request
//
// Objects are not safe for concurrent use. Once Delete succeeds every field
// access returns ErrDeleted.
package sdk

import (
	"net/http"

	"github.com/Ning0612/aerofs-go/internal/attr"
	"github.com/Ning0612/aerofs-go/internal/domain"
	"github.com/Ning0612/aerofs-go/pkg/api"
)

// Errors returned by field accessors and operations. Transport failures are
// *api.HTTPError values that match the transport sentinels with errors.Is.
var (
	ErrReadOnly     = domain.ErrReadOnly
	ErrWriteOnly    = domain.ErrWriteOnly
	ErrUnavailable  = domain.ErrUnavailable
	ErrDeleted      = domain.ErrDeleted
	ErrNoRoute      = domain.ErrNoRoute
	ErrNoSyncMethod = domain.ErrNoSyncMethod

	ErrNotFound           = domain.ErrNotFound
	ErrAlreadyExists      = domain.ErrAlreadyExists
	ErrPermissionDenied   = domain.ErrPermissionDenied
	ErrUnauthorized       = domain.ErrUnauthorized
	ErrPreconditionFailed = domain.ErrPreconditionFailed
	ErrRateLimited        = domain.ErrRateLimited
	ErrProtocol           = domain.ErrProtocol
)

// Re-exported value types
type (
	ContentState = domain.ContentState
	Permission   = domain.Permission
	Permissions  = domain.Permissions
	Role         = domain.Role
)

// tracker captures the concurrency token of a response into an object state
type tracker struct {
	state  *attr.State
	header http.Header
}

func track(s *attr.State) *tracker {
	return &tracker{state: s}
}

// option asks the transport for the response headers
func (t *tracker) option() api.RequestOption {
	return api.ResponseHeader(&t.header)
}

// save stores the ETag, if the response carried one
func (t *tracker) save() {
	if t.header == nil {
		return
	}
	t.state.SetETags(t.header.Values("ETag")...)
}
