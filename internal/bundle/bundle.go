// Package bundle loads native modules packaged on disk together with the
// schema describing their exports.
//
// A bundle directory holds manifest.yaml, the .wasm module and the schema:
//
//	name: barretenberg
//	version: 0.1.0
//	wasm:
//	  file: barretenberg.wasm
//	schema: exports.json
package bundle

import (
	"time"

	"github.com/woxQAQ/cryptobind/internal/schema"
	"github.com/woxQAQ/cryptobind/internal/wasm"
)

// Bundle is a loaded bundle with its compiled module and schema.
type Bundle struct {
	// Manifest is the parsed bundle metadata
	Manifest *Manifest

	// Compiled is the compiled Wasm module
	Compiled *wasm.CompiledModule

	// Schema describes the exports, in file order
	Schema []schema.FunctionSpec

	// Missing lists schema functions the module does not export
	Missing []string

	// LoadedAt is the timestamp when the bundle was loaded
	LoadedAt time.Time
}

// Name returns the bundle name.
func (b *Bundle) Name() string {
	return b.Manifest.Name
}

// Version returns the bundle version.
func (b *Bundle) Version() string {
	return b.Manifest.Version
}

// Exports returns the schema's function names in file order.
func (b *Bundle) Exports() []string {
	names := make([]string, len(b.Schema))
	for i, s := range b.Schema {
		names[i] = s.FunctionName
	}
	return names
}

// Function returns the schema entry for an export.
func (b *Bundle) Function(name string) (schema.FunctionSpec, bool) {
	return schema.Find(b.Schema, name)
}

// Provides reports whether the schema declares name and the module exports it.
func (b *Bundle) Provides(name string) bool {
	if _, ok := b.Function(name); !ok {
		return false
	}
	return b.Compiled.HasExport(name)
}
