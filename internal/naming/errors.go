package naming

import "fmt"

// ConversionError occurs when a name cannot be converted without loss.
type ConversionError struct {
	Name   string
	Reason string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert name '%s': %s", e.Name, e.Reason)
}
