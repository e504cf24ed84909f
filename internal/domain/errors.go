package domain

import "errors"

// Transport errors - returned (via errors.Is) for non-success HTTP responses
var (
	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrPermissionDenied indicates insufficient permissions
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUnauthorized indicates a missing, expired or revoked access token
	ErrUnauthorized = errors.New("unauthorized")

	// ErrPreconditionFailed indicates an If-Match / If-None-Match mismatch
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrRateLimited indicates the service rejected the request for rate reasons
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrProtocol indicates a response that violates the expected wire protocol
	ErrProtocol = errors.New("protocol violation")

	// ErrNoRoute indicates the API offers no route for the requested operation
	ErrNoRoute = errors.New("no route for operation")
)

// Field access errors - raised by the attribute synchronization layer
var (
	// ErrReadOnly indicates a write to a read-only field
	ErrReadOnly = errors.New("read-only field")

	// ErrWriteOnly indicates a read of a write-only field
	ErrWriteOnly = errors.New("write-only field")

	// ErrUnavailable indicates a field stayed unset after a fetch, usually
	// because the credential lacks the scope that would populate it
	ErrUnavailable = errors.New("field unavailable")

	// ErrDeleted indicates access to an object that was deleted remotely
	ErrDeleted = errors.New("object deleted")
)

// Config errors
var (
	// ErrNoSyncMethod indicates a synced or write-only field without a push callback
	ErrNoSyncMethod = errors.New("no method for syncing")

	// ErrConfigNotFound indicates config file not found
	ErrConfigNotFound = errors.New("config file not found")

	// ErrConfigInvalid indicates config file is malformed
	ErrConfigInvalid = errors.New("invalid config")

	// ErrEmptyAccessToken indicates a client built without a bearer token
	ErrEmptyAccessToken = errors.New("access token is required")
)
