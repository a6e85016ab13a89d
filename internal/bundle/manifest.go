package bundle

import (
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the file name every bundle directory must contain.
const ManifestFile = "manifest.yaml"

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Manifest represents the bundle manifest.yaml structure.
type Manifest struct {
	Name        string     `yaml:"name"`
	Version     string     `yaml:"version"`
	Description string     `yaml:"description"`
	Wasm        WasmConfig `yaml:"wasm"`
	Schema      string     `yaml:"schema"`

	// Internal fields
	dir string // Directory containing manifest
}

// WasmConfig holds Wasm module configuration.
type WasmConfig struct {
	File string `yaml:"file"`
}

// ParseManifest reads and parses manifest.yaml from a directory.
func ParseManifest(dir string) (*Manifest, error) {
	manifestPath := filepath.Join(dir, ManifestFile)

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, &ManifestNotFoundError{
			Path: manifestPath,
			Err:  err,
		}
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &ManifestParseError{
			Path: manifestPath,
			Err:  err,
		}
	}

	m.dir = dir

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Validate checks manifest fields and that referenced files exist.
func (m *Manifest) Validate() error {
	required := []struct {
		field, value string
	}{
		{"name", m.Name},
		{"version", m.Version},
		{"wasm.file", m.Wasm.File},
		{"schema", m.Schema},
	}
	for _, r := range required {
		if r.value == "" {
			return &ManifestValidationError{
				Path:    m.Path(),
				Field:   r.field,
				Message: r.field + " is required",
			}
		}
	}

	if !namePattern.MatchString(m.Name) {
		return &ManifestValidationError{
			Path:    m.Path(),
			Field:   "name",
			Message: "name must be lowercase letters, digits, '-' or '_'",
		}
	}

	for _, f := range []struct{ field, path, file string }{
		{"wasm.file", m.WasmPath(), m.Wasm.File},
		{"schema", m.SchemaPath(), m.Schema},
	} {
		if _, err := os.Stat(f.path); os.IsNotExist(err) {
			return &FileNotFoundError{
				ManifestPath: m.Path(),
				Field:        f.field,
				File:         f.file,
			}
		}
	}

	return nil
}

// Path returns the manifest file path.
func (m *Manifest) Path() string {
	return filepath.Join(m.dir, ManifestFile)
}

// WasmPath returns the path to the Wasm file.
func (m *Manifest) WasmPath() string {
	return filepath.Join(m.dir, m.Wasm.File)
}

// SchemaPath returns the path to the export schema.
func (m *Manifest) SchemaPath() string {
	return filepath.Join(m.dir, m.Schema)
}

// Dir returns the directory containing the manifest.
func (m *Manifest) Dir() string {
	return m.dir
}
