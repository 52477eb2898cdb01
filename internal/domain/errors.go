package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure categories the services return.
// Transport code maps a kind to a status code; nothing inspects messages.
type ErrorKind string

const (
	KindValidation             ErrorKind = "VALIDATION"
	KindResourceUnavailable    ErrorKind = "RESOURCE_UNAVAILABLE"
	KindInvalidStateTransition ErrorKind = "INVALID_STATE_TRANSITION"
	KindUnauthorized           ErrorKind = "UNAUTHORIZED"
	KindNotFound               ErrorKind = "NOT_FOUND"
	KindStorageFailure         ErrorKind = "STORAGE_FAILURE"
)

// Error is the only error type that crosses a service boundary.
type Error struct {
	Kind     ErrorKind
	Resource string // conflicting or missing resource, when known
	Message  string
	cause    error
}

func (e *Error) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Resource)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func NewValidation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewResourceUnavailable(resource, format string, args ...any) *Error {
	return &Error{Kind: KindResourceUnavailable, Resource: resource, Message: fmt.Sprintf(format, args...)}
}

func NewInvalidTransition(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidStateTransition, Message: fmt.Sprintf(format, args...)}
}

func NewUnauthorized(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func NewNotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Resource: resource, Message: resource + " not found"}
}

func NewStorageFailure(cause error) *Error {
	return &Error{Kind: KindStorageFailure, Message: "storage operation failed", cause: cause}
}

// KindOf returns the kind carried by err, or KindStorageFailure when err is
// not a *Error. Unclassified errors reaching the boundary are by definition
// internal failures.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorageFailure
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
