// Package apperrors defines the typed failure signals surfaced by the account
// service. The HTTP layer matches on Kind to pick a status code; nothing in
// this package knows about transport.
package apperrors

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindNotFound means a referenced entity is absent from storage.
	KindNotFound Kind = iota
	// KindBadRequest means caller-supplied state violates a precondition.
	KindBadRequest
	// KindConflict means an optimistic-concurrency race was lost.
	KindConflict
	// KindInternal wraps anything not otherwise classified.
	KindInternal
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports an absent entity, naming the resource and the id looked up.
func NotFound(resource, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found with ID: %s", resource, id)}
}

// BadRequest reports a violated precondition with a caller-facing reason.
func BadRequest(reason string) *Error {
	return &Error{Kind: KindBadRequest, Message: reason}
}

// Conflict reports a lost optimistic-concurrency race on the named resource.
func Conflict(resource, id string) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf("%s was modified concurrently, ID: %s", resource, id)}
}

// Internal wraps an unexpected error without exposing its detail to callers.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "An unexpected error occurred", Err: err}
}

// KindOf extracts the Kind from err. Unclassified errors report KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool { return is(err, KindNotFound) }

func IsBadRequest(err error) bool { return is(err, KindBadRequest) }

func IsConflict(err error) bool { return is(err, KindConflict) }

func is(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
