// Package apperror carries an HTTP status and a user-safe message alongside
// the underlying cause. Handlers render Message only; Err is for logs.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation     Kind = "validation_error"
	KindConflict       Kind = "conflict"
	KindAuthentication Kind = "authentication_error"
	KindNotFound       Kind = "not_found"
	KindUpstream       Kind = "upstream_error"
	KindServer         Kind = "server_error"
)

// Error is the base error type for all domain errors.
type Error struct {
	Status  int
	Kind    Kind
	Message string
	// Err holds the underlying error for logging. Never exposed to the client.
	Err error
}

func New(status int, kind Kind, message string) *Error {
	return &Error{Status: status, Kind: kind, Message: message}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same status, kind and message, so a wrapped
// copy still satisfies errors.Is against its catalogue value.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Status == t.Status && e.Kind == t.Kind && e.Message == t.Message
}

// Wrap returns a copy of base carrying cause.
func Wrap(base *Error, cause error) *Error {
	cp := *base
	cp.Err = cause
	return &cp
}

// Internal wraps an unexpected failure as a 500 with a generic message.
func Internal(cause error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Kind:    KindServer,
		Message: "Something went wrong. Please try again.",
		Err:     cause,
	}
}

// From extracts the *Error in err's chain, or converts err into an internal error.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}
