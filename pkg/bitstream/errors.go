package bitstream

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
// These can be checked using errors.Is().
var (
	// ErrOutOfBounds indicates a read would consume bits beyond the end of
	// the buffer.
	ErrOutOfBounds = errors.New("bitstream: read out of bounds")

	// ErrUnsupportedEncoding indicates a decode variant that the protocol
	// revision does not implement.
	ErrUnsupportedEncoding = errors.New("bitstream: unsupported encoding")

	// ErrInvalidBitCount indicates a bit width outside the range an
	// operation accepts.
	ErrInvalidBitCount = errors.New("bitstream: invalid bit count")
)

// DecodeError provides detailed context for decoding failures.
// It implements the error interface and supports error unwrapping.
type DecodeError struct {
	// Op is the read operation or field that failed (if known).
	Op string

	// Offset is the bit cursor at which the failing read started.
	Offset int

	// Message describes what went wrong.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error returns a formatted error message.
func (e *DecodeError) Error() string {
	if e.Op != "" {
		if e.Offset >= 0 {
			return fmt.Sprintf("bitstream: %s at bit %d: %s", e.Op, e.Offset, e.Message)
		}
		return fmt.Sprintf("bitstream: %s: %s", e.Op, e.Message)
	}
	if e.Offset >= 0 {
		return fmt.Sprintf("bitstream: decode at bit %d: %s", e.Offset, e.Message)
	}
	return fmt.Sprintf("bitstream: decode: %s", e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Is reports whether the error matches the target.
// This supports errors.Is() for checking the cause.
func (e *DecodeError) Is(target error) bool {
	return e.Cause != nil && errors.Is(e.Cause, target)
}

// NewDecodeError creates a new DecodeError without position information.
func NewDecodeError(op, message string, cause error) *DecodeError {
	return &DecodeError{
		Op:      op,
		Offset:  -1,
		Message: message,
		Cause:   cause,
	}
}

// NewDecodeErrorAt creates a new DecodeError at the given bit offset.
func NewDecodeErrorAt(op string, offset int, message string, cause error) *DecodeError {
	return &DecodeError{
		Op:      op,
		Offset:  offset,
		Message: message,
		Cause:   cause,
	}
}

// IsOutOfBounds reports whether err stems from reading past the buffer.
func IsOutOfBounds(err error) bool {
	return errors.Is(err, ErrOutOfBounds)
}

// IsUnsupported reports whether err stems from an unimplemented encoding.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupportedEncoding)
}

// IsRetryable returns true if the error might succeed on retry.
// Decoding is deterministic, so no bitstream error is retryable; callers
// move on to the next payload instead.
func IsRetryable(_ error) bool {
	return false
}
