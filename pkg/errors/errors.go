package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies failures so callers can decide whether to abort
// a date, the whole run, or surface a diagnostic.
type ErrorType string

const (
	ErrorTypeTransport    ErrorType = "transport"
	ErrorTypeInvalidRange ErrorType = "invalid_range"
	ErrorTypeStorage      ErrorType = "storage"
	ErrorTypeParsing      ErrorType = "parsing"
	ErrorTypeUnknown      ErrorType = "unknown"
)

// Error carries the failure class alongside the message. Code holds the
// HTTP status for transport errors and is zero otherwise.
type Error struct {
	Type    ErrorType
	Message string
	Code    int
	Cause   error
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewTransport creates a transport error for a failed upstream request.
func NewTransport(message string, code int, cause error) *Error {
	return &Error{Type: ErrorTypeTransport, Message: message, Code: code, Cause: cause}
}

// NewInvalidRange creates an error for a date range with end before start.
func NewInvalidRange(message string) *Error {
	return &Error{Type: ErrorTypeInvalidRange, Message: message}
}

// NewStorage wraps a persistence-layer failure. Storage errors are
// fatal for the run and are never retried internally.
func NewStorage(message string, cause error) *Error {
	return &Error{Type: ErrorTypeStorage, Message: message, Cause: cause}
}

// NewParsing creates an error for an undecodable upstream payload.
func NewParsing(message string, cause error) *Error {
	return &Error{Type: ErrorTypeParsing, Message: message, Cause: cause}
}

// IsType reports whether err (or anything it wraps) is an *Error of the
// given type.
func IsType(err error, t ErrorType) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool { return IsType(err, ErrorTypeTransport) }

// IsInvalidRange reports whether err is an invalid date range.
func IsInvalidRange(err error) bool { return IsType(err, ErrorTypeInvalidRange) }

// IsStorage reports whether err is a persistence failure.
func IsStorage(err error) bool { return IsType(err, ErrorTypeStorage) }
