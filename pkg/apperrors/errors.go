package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an operation failure. The set is closed: handlers map each
// kind to exactly one HTTP status and nothing else is ever returned to the
// caller.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindConflict          Kind = "conflict"
	KindPermissionDenied  Kind = "permission_denied"
	KindNotFound          Kind = "not_found"
	KindInsufficientStock Kind = "insufficient_stock"
	KindInvalidState      Kind = "invalid_state"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) *Error {
	return newError(KindValidation, format, args...)
}

func Conflict(format string, args ...interface{}) *Error {
	return newError(KindConflict, format, args...)
}

func PermissionDenied(format string, args ...interface{}) *Error {
	return newError(KindPermissionDenied, format, args...)
}

func NotFound(format string, args ...interface{}) *Error {
	return newError(KindNotFound, format, args...)
}

func InsufficientStock(format string, args ...interface{}) *Error {
	return newError(KindInsufficientStock, format, args...)
}

func InvalidState(format string, args ...interface{}) *Error {
	return newError(KindInvalidState, format, args...)
}

// KindOf returns the kind of err, or "" for errors raised outside this
// package (treated as internal failures).
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// StatusOf maps an error to the HTTP status the handlers respond with.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return 400
	case KindPermissionDenied:
		return 403
	case KindNotFound:
		return 404
	case KindConflict:
		return 409
	case KindInsufficientStock, KindInvalidState:
		return 422
	default:
		return 500
	}
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
