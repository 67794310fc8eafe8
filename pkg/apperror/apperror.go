package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for propagation and retry decisions.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNetwork
	KindServer
	KindPermission
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	case KindPermission:
		return "permission"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is the standard application error carrying a Kind alongside the
// message and an optional wrapped cause.
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

// Is makes errors.Is match on Kind so callers can compare against a
// kind-only sentinel such as apperror.NotFound("").
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func Validation(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

func Permission(format string, args ...any) *Error {
	return New(KindPermission, format, args...)
}

func Network(err error, format string, args ...any) *Error {
	return Wrap(KindNetwork, err, format, args...)
}

func Server(format string, args ...any) *Error {
	return New(KindServer, format, args...)
}

// KindOf walks the wrap chain and returns the first Kind found, or
// KindUnknown when the error carries none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// Retryable reports whether the failure class is worth retrying.
// Transport and 5xx failures are, everything else is not.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindNetwork, KindServer:
		return true
	default:
		return false
	}
}

// HTTPStatus maps a Kind onto the response status the handlers emit.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindPermission:
		return http.StatusForbidden
	case KindNetwork, KindServer:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// FromHTTPStatus is the client-side inverse of HTTPStatus.
func FromHTTPStatus(code int, message string) *Error {
	switch {
	case code == http.StatusNotFound:
		return New(KindNotFound, "%s", message)
	case code == http.StatusForbidden:
		return New(KindPermission, "%s", message)
	case code == http.StatusUnauthorized:
		return New(KindPermission, "%s", message)
	case code == http.StatusBadRequest:
		return New(KindValidation, "%s", message)
	case code >= 500:
		return New(KindServer, "%s", message)
	default:
		return New(KindUnknown, "%s", message)
	}
}
