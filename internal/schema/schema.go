// Package schema holds the declarative description of native exports.
package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/woxQAQ/cryptobind/pkg/abi"
)

// ArgumentSpec is one named, typed argument.
type ArgumentSpec struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

// FunctionSpec declares one native export.
type FunctionSpec struct {
	// FunctionName is the native symbol; it is never transformed.
	FunctionName string         `yaml:"function_name" json:"function_name"`
	InArgs       []ArgumentSpec `yaml:"in_args" json:"in_args"`
	OutArgs      []ArgumentSpec `yaml:"out_args" json:"out_args"`
}

// rawFunctionSpec also accepts the camelCase keys written by the native
// library's own binding dumps.
type rawFunctionSpec struct {
	FunctionName string         `yaml:"function_name"`
	InArgs       []ArgumentSpec `yaml:"in_args"`
	OutArgs      []ArgumentSpec `yaml:"out_args"`

	CamelFunctionName string         `yaml:"functionName"`
	CamelInArgs       []ArgumentSpec `yaml:"inArgs"`
	CamelOutArgs      []ArgumentSpec `yaml:"outArgs"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *FunctionSpec) UnmarshalYAML(value *yaml.Node) error {
	var raw rawFunctionSpec
	if err := value.Decode(&raw); err != nil {
		return err
	}

	f.FunctionName = pick(raw.FunctionName, raw.CamelFunctionName)
	f.InArgs = raw.InArgs
	if f.InArgs == nil {
		f.InArgs = raw.CamelInArgs
	}
	f.OutArgs = raw.OutArgs
	if f.OutArgs == nil {
		f.OutArgs = raw.CamelOutArgs
	}
	return nil
}

func pick(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// InputKinds resolves the declared input types in order.
func (f FunctionSpec) InputKinds() ([]abi.Kind, error) {
	return resolve(f.InArgs, abi.In)
}

// OutputKinds resolves the declared output types in order.
func (f FunctionSpec) OutputKinds() ([]abi.Kind, error) {
	return resolve(f.OutArgs, abi.Out)
}

func resolve(args []ArgumentSpec, dir abi.Direction) ([]abi.Kind, error) {
	kinds := make([]abi.Kind, len(args))
	for i, a := range args {
		k, err := abi.ResolveWireType(a.Type, dir)
		if err != nil {
			return nil, fmt.Errorf("argument '%s': %w", a.Name, err)
		}
		kinds[i] = k
	}
	return kinds, nil
}

// Load reads and validates a schema file. JSON and YAML are both accepted.
func Load(path string) ([]FunctionSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SchemaNotFoundError{Path: path, Err: err}
	}
	return Parse(path, data)
}

// Parse decodes and validates schema data. path is only used in errors.
func Parse(path string, data []byte) ([]FunctionSpec, error) {
	var specs []FunctionSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, &SchemaParseError{Path: path, Err: err}
	}
	if err := Validate(path, specs); err != nil {
		return nil, err
	}
	return specs, nil
}

// Validate checks the structure of specs: names are present, function names
// are unique and argument names are unique within a function. Type strings
// are checked later, against the wire-type catalog.
func Validate(path string, specs []FunctionSpec) error {
	seen := make(map[string]bool, len(specs))
	for i, s := range specs {
		if s.FunctionName == "" {
			return &ValidationError{
				Path:    path,
				Field:   fmt.Sprintf("[%d].function_name", i),
				Message: "function_name is required",
			}
		}
		if seen[s.FunctionName] {
			return &ValidationError{
				Path:     path,
				Function: s.FunctionName,
				Field:    "function_name",
				Message:  "duplicate function",
			}
		}
		seen[s.FunctionName] = true

		if err := validateArgs(path, s.FunctionName, "in_args", s.InArgs); err != nil {
			return err
		}
		if err := validateArgs(path, s.FunctionName, "out_args", s.OutArgs); err != nil {
			return err
		}
	}
	return nil
}

func validateArgs(path, fn, field string, args []ArgumentSpec) error {
	names := make(map[string]bool, len(args))
	for i, a := range args {
		at := fmt.Sprintf("%s[%d]", field, i)
		if a.Name == "" {
			return &ValidationError{Path: path, Function: fn, Field: at + ".name", Message: "argument name is required"}
		}
		if a.Type == "" {
			return &ValidationError{Path: path, Function: fn, Field: at + ".type", Message: "argument type is required"}
		}
		if names[a.Name] {
			return &ValidationError{Path: path, Function: fn, Field: at + ".name", Message: fmt.Sprintf("duplicate argument '%s'", a.Name)}
		}
		names[a.Name] = true
	}
	return nil
}

// Find returns the spec with the given function name.
func Find(specs []FunctionSpec, name string) (FunctionSpec, bool) {
	for _, s := range specs {
		if s.FunctionName == name {
			return s, true
		}
	}
	return FunctionSpec{}, false
}
