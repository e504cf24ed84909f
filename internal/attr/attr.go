// Package attr declares remote-backed fields whose values are fetched from
// the service on first read and pushed to it on write.
//
// Every field belongs to a State shared by all fields of one object. The
// State carries the object's concurrency token and its deleted flag.
//
// Fields are not safe for concurrent use. An object and its fields must be
// confined to one goroutine at a time; concurrent Set calls on the same object
// race on both the stored value and the remote resource.
package attr

import (
	"context"
	"fmt"

	"github.com/Ning0612/aerofs-go/internal/domain"
)

// Mode is the access mode of a field
type Mode int

const (
	// ModeReadOnly fields are fetched on demand and never pushed
	ModeReadOnly Mode = iota
	// ModeLocal fields are plain accessors over locally-set state
	ModeLocal
	// ModeSynced fields are fetched on read and pushed on write
	ModeSynced
	// ModeWriteOnly fields are pushed on write and never readable
	ModeWriteOnly
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeReadOnly:
		return "read-only"
	case ModeLocal:
		return "local"
	case ModeSynced:
		return "synced"
	case ModeWriteOnly:
		return "write-only"
	default:
		return "unknown"
	}
}

// FetchFunc populates one or more fields of the owning object
type FetchFunc func(ctx context.Context) error

// PushFunc sends a newly written value to the service
type PushFunc[T any] func(ctx context.Context, v T) error

// FieldError describes a failed field access
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Field is a single declared attribute with explicit presence tracking
type Field[T any] struct {
	name  string
	mode  Mode
	state *State
	fetch FetchFunc
	push  PushFunc[T]

	value T
	set   bool
}

// ReadOnly declares a field fetched through fetch and never pushed
func ReadOnly[T any](s *State, name string, fetch FetchFunc) Field[T] {
	return Field[T]{name: name, mode: ModeReadOnly, state: s, fetch: fetch}
}

// Local declares a read-only field that never triggers network activity
func Local[T any](s *State, name string) Field[T] {
	return Field[T]{name: name, mode: ModeLocal, state: s}
}

// Synced declares a read-write field. It panics when push is nil since a
// synced field without a push callback is a programming error.
func Synced[T any](s *State, name string, fetch FetchFunc, push PushFunc[T]) Field[T] {
	if push == nil {
		panic(&FieldError{Field: name, Err: domain.ErrNoSyncMethod})
	}
	return Field[T]{name: name, mode: ModeSynced, state: s, fetch: fetch, push: push}
}

// WriteOnly declares a field that is pushed on write and cleared afterwards.
// It panics when push is nil.
func WriteOnly[T any](s *State, name string, push PushFunc[T]) Field[T] {
	if push == nil {
		panic(&FieldError{Field: name, Err: domain.ErrNoSyncMethod})
	}
	return Field[T]{name: name, mode: ModeWriteOnly, state: s, push: push}
}

// Name returns the declared field name
func (f *Field[T]) Name() string {
	return f.name
}

// Mode returns the declared access mode
func (f *Field[T]) Mode() Mode {
	return f.mode
}

// Get returns the field value, fetching it once if it has not been populated
func (f *Field[T]) Get(ctx context.Context) (T, error) {
	var zero T
	if f.state.Deleted() {
		return zero, &FieldError{Field: f.name, Err: domain.ErrDeleted}
	}

	switch f.mode {
	case ModeWriteOnly:
		return zero, &FieldError{Field: f.name, Err: domain.ErrWriteOnly}
	case ModeLocal:
		return f.value, nil
	}

	if !f.set && f.fetch != nil {
		// transport failures surface unchanged
		if err := f.fetch(ctx); err != nil {
			return zero, err
		}
	}

	if !f.set {
		return zero, &FieldError{Field: f.name, Err: domain.ErrUnavailable}
	}
	return f.value, nil
}

// Set stores v and pushes it to the service
func (f *Field[T]) Set(ctx context.Context, v T) error {
	if f.state.Deleted() {
		return &FieldError{Field: f.name, Err: domain.ErrDeleted}
	}

	switch f.mode {
	case ModeReadOnly, ModeLocal:
		return &FieldError{Field: f.name, Err: domain.ErrReadOnly}
	}
	if f.push == nil {
		return &FieldError{Field: f.name, Err: domain.ErrNoSyncMethod}
	}

	f.value, f.set = v, true
	if f.mode == ModeWriteOnly {
		defer f.Clear()
	}
	return f.push(ctx, v)
}

// Fill populates the field from a decoded response without pushing
func (f *Field[T]) Fill(v T) {
	if f.mode == ModeWriteOnly {
		return
	}
	f.value, f.set = v, true
}

// Clear marks the field unset so the next read fetches again
func (f *Field[T]) Clear() {
	var zero T
	f.value, f.set = zero, false
}

// Stored returns the locally stored value without any network activity.
// Write-only values are only observable while their push is running.
func (f *Field[T]) Stored() (T, bool) {
	return f.value, f.set
}

// Loaded reports whether the field holds a value
func (f *Field[T]) Loaded() bool {
	return f.set
}
