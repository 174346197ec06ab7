// Package domain defines core types, interfaces, and errors for Query Dog.
package domain

import "fmt"

// NotFoundError indicates a resource was not found.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ValidationError indicates invalid input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// RejectedError indicates a statement was refused by the destructive-SQL guard.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string { return e.Message }

// UpstreamError indicates the ClickHouse server failed or was unreachable.
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrRejected creates a RejectedError with a formatted message.
func ErrRejected(format string, args ...interface{}) *RejectedError {
	return &RejectedError{Message: fmt.Sprintf(format, args...)}
}

// ErrUpstream wraps a ClickHouse failure with context.
func ErrUpstream(err error, format string, args ...interface{}) *UpstreamError {
	return &UpstreamError{Message: fmt.Sprintf(format, args...), Err: err}
}
