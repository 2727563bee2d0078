package domain

import (
	"errors"
	"fmt"
)

// ErrorKind identifies a failure mode the calling agent can react to
// programmatically. Every dispatcher failure maps to exactly one kind.
type ErrorKind string

const (
	ErrUnknownTool         ErrorKind = "unknown_tool"
	ErrAmbiguousEntity     ErrorKind = "ambiguous_entity"
	ErrNotFound            ErrorKind = "not_found"
	ErrMissingFilter       ErrorKind = "missing_filter"
	ErrUnknownFilter       ErrorKind = "unknown_filter"
	ErrInvalidFilter       ErrorKind = "invalid_filter"
	ErrInvalidRange        ErrorKind = "invalid_range"
	ErrMergeConflict       ErrorKind = "merge_conflict"
	ErrUpstreamUnavailable ErrorKind = "upstream_unavailable"
	ErrUpstreamSchema      ErrorKind = "upstream_schema"
)

// StructuredError carries a machine-usable kind and details alongside a
// human-readable message.
type StructuredError struct {
	Kind    ErrorKind      `json:"kind"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`

	cause error
}

func (e *StructuredError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *StructuredError) Unwrap() error {
	return e.cause
}

// NewError constructs a StructuredError with optional details.
func NewError(kind ErrorKind, message string, details map[string]any) *StructuredError {
	return &StructuredError{Kind: kind, Message: message, Details: details}
}

// Errorf constructs a StructuredError with a formatted message.
func Errorf(kind ErrorKind, format string, args ...any) *StructuredError {
	return &StructuredError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError attaches a cause to a new StructuredError so errors.Is/As
// still reach the underlying failure.
func WrapError(kind ErrorKind, message string, cause error) *StructuredError {
	return &StructuredError{Kind: kind, Message: message, cause: cause}
}

// WithDetail returns the error with one detail field set.
func (e *StructuredError) WithDetail(key string, value any) *StructuredError {
	if e.Details == nil {
		e.Details = make(map[string]any, 1)
	}
	e.Details[key] = value
	return e
}

// AsStructured unwraps err into a StructuredError when possible.
func AsStructured(err error) (*StructuredError, bool) {
	var se *StructuredError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsKind reports whether err is a StructuredError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	se, ok := AsStructured(err)
	return ok && se.Kind == kind
}
