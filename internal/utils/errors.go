// Package utils provides low-level helpers shared across the codec:
// buffer pooling, checked little-endian reads, overflow-safe arithmetic,
// and a small structured error type.
package utils

import (
	"errors"
	"fmt"
)

// Sentinel causes for the semantic error kinds of the SIR0/MessageBin codec.
// Callers match against these with errors.Is rather than string comparison.
var (
	ErrBadMagic             = errors.New("bad SIR0 magic")
	ErrTruncatedHeader      = errors.New("truncated SIR0 header")
	ErrTruncatedPayload     = errors.New("truncated string payload")
	ErrBadVarint            = errors.New("malformed varint pointer stream")
	ErrNonMonotonicPointers = errors.New("non-monotonic relative pointers")
	ErrColumnMissing        = errors.New("required column missing")
	ErrIndexNotFound        = errors.New("index not found")
)

// CodecError represents a structured error produced by the codec.
type CodecError struct {
	Context string
	Cause   error
}

// Error implements the error interface.
func (e *CodecError) Error() string {
	return fmt.Sprintf("%s: %v", e.Context, e.Cause)
}

// WrapError creates a contextual error. It returns nil when cause is nil so
// callers can write `return utils.WrapError(ctx, err)` unconditionally.
func WrapError(context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &CodecError{
		Context: context,
		Cause:   cause,
	}
}

// Unwrap provides compatibility with errors.Unwrap() and errors.Is/As.
func (e *CodecError) Unwrap() error {
	return e.Cause
}
