package errors

import (
	"errors"
	"fmt"
)

// AppError is the error type surfaced by the persistence and accrual layers.
// It carries a registered error code, an optional operation name, and the
// underlying cause for unwrapping.
type AppError struct {
	Code      ErrorCode
	Operation string
	Message   string
	Cause     error
}

// AppErrorOption is a functional option for configuring app errors
type AppErrorOption func(*AppError)

// WithOperation attaches the named operation that produced the error
func WithOperation(operation string) AppErrorOption {
	return func(e *AppError) {
		e.Operation = operation
	}
}

// WithMessage overrides the default message for the error code
func WithMessage(message string) AppErrorOption {
	return func(e *AppError) {
		e.Message = message
	}
}

// WithCause attaches the underlying cause
func WithCause(cause error) AppErrorOption {
	return func(e *AppError) {
		e.Cause = cause
	}
}

// New creates an AppError for the given code with its registered default message
func New(code ErrorCode, opts ...AppErrorOption) *AppError {
	e := &AppError{
		Code:    code,
		Message: GetErrorMessage(code),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *AppError) Error() string {
	switch {
	case e.Operation != "" && e.Cause != nil:
		return fmt.Sprintf("%s: %s (operation %q): %v", e.Code, e.Message, e.Operation, e.Cause)
	case e.Operation != "":
		return fmt.Sprintf("%s: %s (operation %q)", e.Code, e.Message, e.Operation)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is makes errors.Is match on the error code, so callers can compare against
// a bare New(code) sentinel without caring about operation or cause.
func (e *AppError) Is(target error) bool {
	var appErr *AppError
	if !errors.As(target, &appErr) {
		return false
	}
	return e.Code == appErr.Code
}

// CodeOf extracts the error code from err, or SystemInternalError if err is
// not an AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return SystemInternalError
}
