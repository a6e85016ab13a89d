package bundle

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestParseManifest_Valid(t *testing.T) {
	manifest, err := ParseManifest(echoDir)
	if err != nil {
		t.Fatalf("ParseManifest() failed: %v", err)
	}

	if manifest.Name != "echo" {
		t.Errorf("expected Name 'echo', got '%s'", manifest.Name)
	}
	if manifest.Version != "0.1.0" {
		t.Errorf("expected Version '0.1.0', got '%s'", manifest.Version)
	}
	if manifest.Wasm.File != "echo.wasm" {
		t.Errorf("expected Wasm.File 'echo.wasm', got '%s'", manifest.Wasm.File)
	}
	if manifest.Schema != "exports.json" {
		t.Errorf("expected Schema 'exports.json', got '%s'", manifest.Schema)
	}
	if manifest.Description == "" {
		t.Error("expected a description")
	}
}

func TestParseManifest_NotFound(t *testing.T) {
	_, err := ParseManifest(filepath.Join("testdata", "nonexistent"))

	var notFound *ManifestNotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("expected ManifestNotFoundError, got %T", err)
	}
}

func TestParseManifest_InvalidYAML(t *testing.T) {
	dir := writeBundle(t, t.TempDir(), "bad", "bad", map[string]string{
		ManifestFile: "name: [unterminated\n",
	})

	_, err := ParseManifest(dir)
	var parseErr *ManifestParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("expected ManifestParseError, got %T", err)
	}
}

func TestParseManifest_Validation(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		field    string
	}{
		{"missing name", "version: 0.1.0\nwasm: {file: echo.wasm}\nschema: exports.json\n", "name"},
		{"missing version", "name: echo\nwasm: {file: echo.wasm}\nschema: exports.json\n", "version"},
		{"missing wasm", "name: echo\nversion: 0.1.0\nschema: exports.json\n", "wasm.file"},
		{"missing schema", "name: echo\nversion: 0.1.0\nwasm: {file: echo.wasm}\n", "schema"},
		{"bad name", "name: Echo Bundle\nversion: 0.1.0\nwasm: {file: echo.wasm}\nschema: exports.json\n", "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeBundle(t, t.TempDir(), "b", "b", map[string]string{ManifestFile: tt.manifest})

			_, err := ParseManifest(dir)
			var valErr *ManifestValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected ManifestValidationError, got %v", err)
			}
			if valErr.Field != tt.field {
				t.Errorf("expected field '%s', got '%s'", tt.field, valErr.Field)
			}
		})
	}
}

func TestParseManifest_FileNotFound(t *testing.T) {
	for file, field := range map[string]string{"echo.wasm": "wasm.file", "exports.json": "schema"} {
		t.Run(field, func(t *testing.T) {
			dir := writeBundle(t, t.TempDir(), "b", "b", map[string]string{file: ""})

			_, err := ParseManifest(dir)
			var notFound *FileNotFoundError
			if !errors.As(err, &notFound) {
				t.Fatalf("expected FileNotFoundError, got %v", err)
			}
			if notFound.Field != field || notFound.File != file {
				t.Errorf("unexpected error fields: %+v", notFound)
			}
		})
	}
}

func TestManifest_Paths(t *testing.T) {
	manifest, err := ParseManifest(echoDir)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := manifest.Path(), filepath.Join(echoDir, "manifest.yaml"); got != want {
		t.Errorf("Path() = %s, want %s", got, want)
	}
	if got, want := manifest.WasmPath(), filepath.Join(echoDir, "echo.wasm"); got != want {
		t.Errorf("WasmPath() = %s, want %s", got, want)
	}
	if got, want := manifest.SchemaPath(), filepath.Join(echoDir, "exports.json"); got != want {
		t.Errorf("SchemaPath() = %s, want %s", got, want)
	}
	if manifest.Dir() != echoDir {
		t.Errorf("Dir() = %s, want %s", manifest.Dir(), echoDir)
	}
}
