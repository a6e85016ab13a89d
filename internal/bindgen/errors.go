package bindgen

import "fmt"

// GenerateError aborts generation. Function and Arg locate the offending
// schema entry; Err is the cause.
type GenerateError struct {
	Function string
	Arg      string
	Err      error
}

func (e *GenerateError) Error() string {
	if e.Arg != "" {
		return fmt.Sprintf("generate '%s' argument '%s': %v", e.Function, e.Arg, e.Err)
	}
	if e.Function != "" {
		return fmt.Sprintf("generate '%s': %v", e.Function, e.Err)
	}
	return fmt.Sprintf("generate: %v", e.Err)
}

func (e *GenerateError) Unwrap() error {
	return e.Err
}
