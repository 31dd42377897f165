package utils

import (
	"fmt"
	"math"
)

// CheckMultiplyOverflow checks if multiplying two uint64 values would overflow.
// Returns an error if overflow would occur.
func CheckMultiplyOverflow(a, b uint64) error {
	if a == 0 || b == 0 {
		return nil // No overflow when either is zero
	}

	if a > math.MaxUint64/b {
		return fmt.Errorf("multiplication overflow: %d * %d exceeds uint64 max", a, b)
	}

	return nil
}

// SafeMultiply multiplies two uint64 values and returns the result if no overflow occurs.
// Returns 0 and an error if overflow would occur.
func SafeMultiply(a, b uint64) (uint64, error) {
	if err := CheckMultiplyOverflow(a, b); err != nil {
		return 0, err
	}
	return a * b, nil
}

// ValidateBufferSize validates that a buffer size is within reasonable limits.
// maxSize parameter allows different limits for different use cases.
func ValidateBufferSize(size, maxSize uint64, description string) error {
	if size == 0 {
		return fmt.Errorf("%s: size cannot be zero", description)
	}

	if size > maxSize {
		return fmt.Errorf("%s: size %d exceeds maximum %d", description, size, maxSize)
	}

	return nil
}

// Reasonable upper bounds for the SIR0/MessageBin codec. A malformed or
// adversarial file can claim an absurd string_count or a pointer-stream
// delta large enough to overflow arithmetic further down the pipeline;
// these constants let callers reject such files before doing real work.
const (
	// MaxStringCount bounds string_count so a corrupt directory header
	// cannot force allocation of an unreasonably large info-record slice.
	MaxStringCount = 1_000_000

	// MaxTextBytes is a size limit for a single decoded string payload.
	// The string-slot scan and decoder in internal/core do not check it.
	MaxTextBytes = 1024 * 1024

	// MaxPointerDelta bounds a single varint-decoded offset delta.
	MaxPointerDelta = 1 << 40
)
