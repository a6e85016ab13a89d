package dispatch

import (
	"fmt"

	"github.com/woxQAQ/cryptobind/pkg/abi"
)

// ExportNotFoundError occurs when the module has no export with the requested name.
type ExportNotFoundError struct {
	Export string
}

func (e *ExportNotFoundError) Error() string {
	return fmt.Sprintf("export '%s' not found in native module", e.Export)
}

// ArgumentError occurs when an input value cannot be encoded as its declared kind,
// or when a declared output kind is invalid.
type ArgumentError struct {
	Export string
	Index  int
	Output bool
	Err    error
}

func (e *ArgumentError) Error() string {
	what := "argument"
	if e.Output {
		what = "output kind"
	}
	return fmt.Sprintf("call to '%s': %s %d: %v", e.Export, what, e.Index, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// NativeCallError occurs when the native export itself fails (trap, missing
// allocator, memory fault). The call is never retried.
type NativeCallError struct {
	Export string
	Err    error
}

func (e *NativeCallError) Error() string {
	return fmt.Sprintf("native call '%s' failed: %v", e.Export, e.Err)
}

func (e *NativeCallError) Unwrap() error {
	return e.Err
}

// MalformedOutputError occurs when the bytes returned by an export do not
// match the declared output kinds. Index is the output being decoded, or the
// number of outputs when unexpected bytes follow the last one.
type MalformedOutputError struct {
	Export string
	Index  int
	Kind   abi.Kind
	Err    error
}

func (e *MalformedOutputError) Error() string {
	if !e.Kind.Valid() {
		return fmt.Sprintf("malformed output from '%s': %v", e.Export, e.Err)
	}
	return fmt.Sprintf("malformed output %d (%s) from '%s': %v", e.Index, e.Kind, e.Export, e.Err)
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Err
}

// ResultError occurs when a decoded result is missing or has an unexpected Go type.
type ResultError struct {
	Index int
	Count int
	Want  string
	Got   any
}

func (e *ResultError) Error() string {
	if e.Index < 0 || e.Index >= e.Count {
		return fmt.Sprintf("result %d requested from %d results", e.Index, e.Count)
	}
	return fmt.Sprintf("result %d is %T, want %s", e.Index, e.Got, e.Want)
}
