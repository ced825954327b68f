package aehobak

import (
	"errors"
	"fmt"
)

// ErrUnexpectedEOF is returned when a read, or a capacity-bounded write, ran
// out of space before the structural contract of the stream was satisfied.
var ErrUnexpectedEOF = errors.New("aehobak: unexpected end of stream")

// ErrInvalidData is returned when a structural or arithmetic invariant of
// the compact stream, the control triples, or the cursor arithmetic derived
// from them was violated.
var ErrInvalidData = errors.New("aehobak: invalid data")

// ErrInputTooLarge is a specialization of ErrInvalidData for §4.7's
// |old| <= 2^31-1 bound.
var ErrInputTooLarge = fmt.Errorf("%w: input exceeds 2^31-1 bytes", ErrInvalidData)

// eof wraps ErrUnexpectedEOF with context, the same wrapping shape as
// reader.go's ErrInvalidBuffer call sites.
func eof(format string, args ...any) error {
	return fmt.Errorf("aehobak: "+format+": %w", append(args, ErrUnexpectedEOF)...)
}

// invalid wraps ErrInvalidData with context.
func invalid(format string, args ...any) error {
	return fmt.Errorf("aehobak: "+format+": %w", append(args, ErrInvalidData)...)
}

// writeErr wraps an underlying io.Writer failure (spec §7's "Other" kind).
// It is never re-typed so errors.Is/errors.Unwrap still reach err.
func writeErr(err error) error {
	return fmt.Errorf("aehobak: write: %w", err)
}

// readErr wraps an underlying io.Reader failure.
func readErr(err error) error {
	return fmt.Errorf("aehobak: read: %w", err)
}
