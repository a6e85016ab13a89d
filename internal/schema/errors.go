package schema

import "fmt"

// SchemaNotFoundError occurs when the schema file cannot be read.
type SchemaNotFoundError struct {
	Path string
	Err  error
}

func (e *SchemaNotFoundError) Error() string {
	return fmt.Sprintf("schema not found at '%s': %v", e.Path, e.Err)
}

func (e *SchemaNotFoundError) Unwrap() error {
	return e.Err
}

// SchemaParseError occurs when the schema is not valid JSON or YAML.
type SchemaParseError struct {
	Path string
	Err  error
}

func (e *SchemaParseError) Error() string {
	return fmt.Sprintf("failed to parse schema at '%s': %v", e.Path, e.Err)
}

func (e *SchemaParseError) Unwrap() error {
	return e.Err
}

// ValidationError occurs when a schema entry is structurally invalid.
type ValidationError struct {
	Path     string
	Function string
	Field    string
	Message  string
}

func (e *ValidationError) Error() string {
	where := e.Path
	if e.Function != "" {
		where = fmt.Sprintf("%s: %s", e.Path, e.Function)
	}
	if e.Field != "" {
		return fmt.Sprintf("schema validation failed at '%s': %s (field: %s)", where, e.Message, e.Field)
	}
	return fmt.Sprintf("schema validation failed at '%s': %s", where, e.Message)
}
