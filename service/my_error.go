package service

import (
	"errors"
	"fmt"
)

const (
	// ErrInternalServerError means the request failed for a reason that is not the caller's fault.
	ErrInternalServerError = "internal_server_error"
	// ErrEntityNotFound means the addressed lease or service has no UP instance. Clients re-register on it.
	ErrEntityNotFound = "entity_not_found"
	// ErrBadParameter means the payload or a parameter failed validation. Nothing was mutated.
	ErrBadParameter = "bad_parameter"
)

// MyError is the error type shared by the registry core and the HTTP layer.
type MyError struct {
	// Code is a machine-readable code.
	Code string `json:"code,omitempty"`
	// Message is a human-readable message.
	Message string `json:"message"`
	// Inner is a wrapped error that is never shown to API consumers.
	Inner error `json:"-"`
}

// NewMyError creates a new MyError.
func NewMyError(code string, message string, inner error) *MyError {
	return &MyError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

// NewInternalServerError wraps inner unless it already carries a code.
func NewInternalServerError(message string, inner error) *MyError {
	return newOrKeep(ErrInternalServerError, message, inner)
}

// NewEntityNotFoundError wraps inner unless it already carries a code.
func NewEntityNotFoundError(message string, inner error) *MyError {
	return newOrKeep(ErrEntityNotFound, message, inner)
}

// NewBadParameterError wraps inner unless it already carries a code.
func NewBadParameterError(message string, inner error) *MyError {
	return newOrKeep(ErrBadParameter, message, inner)
}

// BadParameterf formats a validation message.
func BadParameterf(format string, args ...any) *MyError {
	return NewMyError(ErrBadParameter, fmt.Sprintf(format, args...), nil)
}

// EntityNotFoundf formats a not-found message.
func EntityNotFoundf(format string, args ...any) *MyError {
	return NewMyError(ErrEntityNotFound, fmt.Sprintf(format, args...), nil)
}

func newOrKeep(code string, message string, inner error) *MyError {
	if myInner := ToMyError(inner); myInner != nil {
		return myInner
	}
	return NewMyError(code, message, inner)
}

func (e MyError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}

	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

// Unwrap the error returning the error's reason.
func (e MyError) Unwrap() error {
	return e.Inner
}

// ToMyError returns the first MyError in the chain of err, or nil.
func ToMyError(err error) *MyError {
	var e *MyError
	if errors.As(err, &e) {
		return e
	}

	return nil
}

// ToMyErrorCode returns the code of the error, if available.
func ToMyErrorCode(err error) string {
	if myErr := ToMyError(err); myErr != nil {
		return myErr.Code
	}
	return ""
}

func IsMyError(err error, code string) bool {
	return ToMyErrorCode(err) == code && code != ""
}

func IsInternalServerError(err error) bool {
	return IsMyError(err, ErrInternalServerError)
}

func IsEntityNotFoundError(err error) bool {
	return IsMyError(err, ErrEntityNotFound)
}

func IsBadParameterError(err error) bool {
	return IsMyError(err, ErrBadParameter)
}
