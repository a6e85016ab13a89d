package abi

import (
	"fmt"
	"math/big"
)

// UnrecognizedTypeError occurs when a schema names a wire type outside the catalog
// or uses a type in the wrong direction.
type UnrecognizedTypeError struct {
	WireType string
	Reason   string
}

func (e *UnrecognizedTypeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unrecognized wire type '%s': %s", e.WireType, e.Reason)
	}
	return fmt.Sprintf("unrecognized wire type '%s'", e.WireType)
}

// TypeMismatchError occurs when a host value does not have the Go type of its kind.
type TypeMismatchError struct {
	Kind  Kind
	Value any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("cannot encode %T as %s (want %s)", e.Value, e.Kind, e.Kind.HostType())
}

// InvalidKindError occurs when the zero Kind or an undeclared base reaches the codec.
type InvalidKindError struct {
	Kind Kind
}

func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid value kind (base %d)", uint8(e.Kind.base))
}

// ShortBufferError occurs when fewer bytes remain than a kind requires.
type ShortBufferError struct {
	Kind   Kind
	Offset int
	Need   int
	Have   int
}

func (e *ShortBufferError) Error() string {
	return fmt.Sprintf("short buffer decoding %s at offset %d: need %d bytes, have %d",
		e.Kind, e.Offset, e.Need, e.Have)
}

// OverrunError occurs when a length prefix claims more data than remains.
type OverrunError struct {
	Kind   Kind
	Offset int
	Length uint32
	Have   int
}

func (e *OverrunError) Error() string {
	return fmt.Sprintf("length prefix %d for %s at offset %d overruns buffer (%d bytes left)",
		e.Length, e.Kind, e.Offset, e.Have)
}

// TrailingBytesError occurs when a buffer has bytes left after every declared value was read.
type TrailingBytesError struct {
	Count int
}

func (e *TrailingBytesError) Error() string {
	return fmt.Sprintf("%d unexpected trailing bytes", e.Count)
}

// TooLargeError occurs when a variable value cannot be framed with a 32-bit length.
type TooLargeError struct {
	Kind   Kind
	Length int
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("%s of length %d exceeds the 32-bit length prefix", e.Kind, e.Length)
}

// FieldRangeError occurs when an integer does not fit a 32-byte field encoding.
type FieldRangeError struct {
	Value *big.Int
}

func (e *FieldRangeError) Error() string {
	return fmt.Sprintf("value %v does not fit a %d-byte field element", e.Value, FieldSize)
}

// ParseError occurs when text cannot be parsed as a value of a kind.
type ParseError struct {
	Kind  Kind
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse '%s' as %s: %v", e.Input, e.Kind, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
