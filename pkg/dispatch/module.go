package dispatch

import (
	"context"
	"sort"

	"github.com/woxQAQ/cryptobind/pkg/abi"
)

// CallEnvelope carries one invocation to an export. It is built fresh by
// Invoke for every call and must not be retained by the export.
type CallEnvelope struct {
	// Export is the native symbol, exactly as written in the schema.
	Export string

	// Inputs holds one encoded argument per declared input, in order.
	Inputs [][]byte

	// Outputs lists the declared output kinds, in order. Backends that need
	// to size output slots read them from here.
	Outputs []abi.Kind
}

// InputSize returns the total number of serialized input bytes.
func (e *CallEnvelope) InputSize() int {
	n := 0
	for _, in := range e.Inputs {
		n += len(in)
	}
	return n
}

// Export is one callable entry of a native module's export table.
// Call returns the concatenated encodings of the declared outputs.
type Export interface {
	Call(ctx context.Context, env *CallEnvelope) ([]byte, error)
}

// Module is the native export table a Dispatcher invokes against.
type Module interface {
	Lookup(name string) (Export, bool)
}

// ExportFunc adapts a plain function to Export.
type ExportFunc func(ctx context.Context, env *CallEnvelope) ([]byte, error)

// Call calls f.
func (f ExportFunc) Call(ctx context.Context, env *CallEnvelope) ([]byte, error) {
	return f(ctx, env)
}

// Exports is an in-process Module keyed by export name.
type Exports map[string]Export

// Lookup implements Module.
func (m Exports) Lookup(name string) (Export, bool) {
	e, ok := m[name]
	return e, ok
}

// Names returns the export names, sorted.
func (m Exports) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
