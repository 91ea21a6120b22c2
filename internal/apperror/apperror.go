// Package apperror defines the typed domain errors surfaced through the
// API error channel.  Each error carries a stable Code that clients can
// switch on, a human message and, for validation failures, the list of
// offending fields.
package apperror

import (
	"errors"
	"fmt"
)

// Code identifies a class of domain error.
type Code string

const (
	CodeUnauthenticated    Code = "UNAUTHENTICATED"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeValidation         Code = "BAD_USER_INPUT"
	CodeConflict           Code = "CONFLICT"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeNotFound           Code = "NOT_FOUND"
	CodeInternal           Code = "INTERNAL_SERVER_ERROR"
)

// FieldError describes a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the application error type.  Err keeps the underlying cause
// for logging and is never shown to clients.
type Error struct {
	Code    Code
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error without a cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap builds an Error around an underlying cause.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func Unauthenticated() *Error { return New(CodeUnauthenticated, "Not authenticated") }

func Unauthorized() *Error { return New(CodeUnauthorized, "Not authorized") }

// InvalidCredentials is returned for both unknown emails and wrong
// passwords so the two cases cannot be told apart.
func InvalidCredentials() *Error { return New(CodeInvalidCredentials, "Invalid credentials") }

func Conflict(message string) *Error { return New(CodeConflict, message) }

func NotFound(message string) *Error { return New(CodeNotFound, message) }

// Validation reports invalid input along with the failing fields.
func Validation(fields ...FieldError) *Error {
	return &Error{Code: CodeValidation, Message: "Invalid input", Fields: fields}
}

// Internal hides err behind a generic message.
func Internal(err error) *Error {
	return Wrap(CodeInternal, "Internal server error", err)
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// From converts any error into an *Error, treating unknown errors as
// internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	if ae, ok := As(err); ok {
		return ae
	}
	return Internal(err)
}

// CodeOf returns the Code of err, or CodeInternal for foreign errors.
func CodeOf(err error) Code {
	if ae, ok := As(err); ok {
		return ae.Code
	}
	return CodeInternal
}
