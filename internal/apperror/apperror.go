// Package apperror is the error taxonomy shared by the services. Every kind
// maps to one HTTP status; errors outside the taxonomy are internal.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindExists
	KindConflict
	KindInvalidInput
	KindUnauthorized
	KindAccessDenied
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindExists:
		return "exists"
	case KindConflict:
		return "conflict"
	case KindInvalidInput:
		return "invalid_input"
	case KindUnauthorized:
		return "unauthorized"
	case KindAccessDenied:
		return "access_denied"
	default:
		return "internal"
	}
}

// HTTPStatus is the response code a failure of this kind is reported with.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindExists, KindConflict:
		return http.StatusConflict
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindAccessDenied:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

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

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func NotFound(msg string) *Error     { return New(KindNotFound, msg) }
func Exists(msg string) *Error       { return New(KindExists, msg) }
func Conflict(msg string) *Error     { return New(KindConflict, msg) }
func InvalidInput(msg string) *Error { return New(KindInvalidInput, msg) }
func Unauthorized(msg string) *Error { return New(KindUnauthorized, msg) }
func AccessDenied(msg string) *Error { return New(KindAccessDenied, msg) }

func NotFoundf(format string, args ...any) *Error {
	return NotFound(fmt.Sprintf(format, args...))
}

func InvalidInputf(format string, args ...any) *Error {
	return InvalidInput(fmt.Sprintf(format, args...))
}

// Wrap attaches a cause while keeping the client-facing message.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the client-facing message; internal errors are not exposed.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "An internal error occurred"
}
