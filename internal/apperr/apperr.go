// Package apperr is the service-layer error taxonomy. Storage drivers
// signal their own error kinds; the service translates everything into
// one of these before it reaches a handler, and handlers map kinds to
// HTTP status codes. A raw storage error never crosses into transport.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	// Unexpected is the zero value on purpose: anything not explicitly
	// classified is an internal failure and renders as a generic 500.
	Unexpected Kind = iota
	Unauthenticated
	Forbidden
	NotFound
	Conflict
	InvalidArgument
)

func (k Kind) String() string {
	switch k {
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case InvalidArgument:
		return "invalid_argument"
	default:
		return "unexpected"
	}
}

// HTTPStatus maps a kind to its response status.
func (k Kind) HTTPStatus() int {
	switch k {
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case InvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf classifies any error. Non-apperr errors are Unexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unexpected
}

// Message returns the client-safe message for err. Unexpected errors get
// a generic message so internal detail never leaks into a response body.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Unexpected {
		return e.Msg
	}
	return "internal server error"
}

func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }
