// Package dispatch is the runtime half of the generated bindings.
//
// Every generated wrapper calls Dispatcher.Invoke with the verbatim export
// name, its arguments paired with their kinds, and the kinds of the outputs
// it expects. Invoke serializes the arguments, looks the export up in the
// Module it was built with, performs exactly one native call and decodes the
// returned bytes against the declared outputs.
//
// The Module is owned by the caller. A Dispatcher holds no locks and no state
// between calls; if the Module wraps a single native instance (as the wasm
// backend does), concurrent Invoke calls against it must be serialized by the
// embedder.
package dispatch
