// Package apperr carries the error taxonomy used across the service: every
// failure a handler can see is one of five kinds, each with a fixed HTTP
// status.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	// Unauthorized: missing or invalid credential.
	Unauthorized Kind = iota
	// Forbidden: authenticated but insufficient privilege.
	Forbidden
	// NotFound: identifier does not resolve to a record.
	NotFound
	// ValidationFailed: missing required field, malformed URL, invalid enum value.
	ValidationFailed
	// StoreError: underlying persistence failure, treated as internal.
	StoreError
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an error of the given kind with a client-facing message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches an underlying cause. The message is still what clients see;
// the cause only reaches logs.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain. Unknown errors count as
// store errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return StoreError
}

// MessageOf returns the client-facing message for an error chain. Unknown
// errors get a generic message so internals never leak.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internt serverfel"
}

// HTTPStatus maps an error chain to its response status.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case ValidationFailed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
