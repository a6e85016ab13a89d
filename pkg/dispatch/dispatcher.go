package dispatch

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/woxQAQ/cryptobind/pkg/abi"
)

// Arg is one input value paired with the kind it is encoded as.
type Arg struct {
	Value any
	Kind  abi.Kind
}

// Dispatcher invokes named exports of a Module.
type Dispatcher struct {
	mod    Module
	logger *zap.Logger
}

// New creates a dispatcher over mod. A nil logger selects the package logger.
func New(mod Module, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = Logger()
	}
	return &Dispatcher{
		mod:    mod,
		logger: logger.With(zap.String("component", "dispatch")),
	}
}

// Module returns the module the dispatcher calls into.
func (d *Dispatcher) Module() Module {
	return d.mod
}

// Invoke calls the export named exportName once.
//
// Arguments are encoded in order; the export must answer with the encodings
// of outputs, in order and with nothing after them. The result holds one
// value per output kind, typed as that kind's host type.
func (d *Dispatcher) Invoke(ctx context.Context, exportName string, args []Arg, outputs []abi.Kind) ([]any, error) {
	env := &CallEnvelope{
		Export:  exportName,
		Inputs:  make([][]byte, len(args)),
		Outputs: outputs,
	}

	for i, arg := range args {
		enc, err := abi.Encode(arg.Kind, arg.Value)
		if err != nil {
			return nil, &ArgumentError{Export: exportName, Index: i, Err: err}
		}
		env.Inputs[i] = enc
	}
	for i, k := range outputs {
		if !k.Valid() {
			return nil, &ArgumentError{Export: exportName, Index: i, Output: true, Err: &abi.InvalidKindError{Kind: k}}
		}
	}

	export, ok := d.mod.Lookup(exportName)
	if !ok {
		return nil, &ExportNotFoundError{Export: exportName}
	}

	d.logger.Debug("Dispatching native call",
		zap.String("export", exportName),
		zap.Int("inputs", len(env.Inputs)),
		zap.Int("input_bytes", env.InputSize()),
		zap.Int("outputs", len(outputs)),
	)

	raw, err := export.Call(ctx, env)
	if err != nil {
		d.logger.Error("Native call failed",
			zap.String("export", exportName),
			zap.Error(err),
		)
		var malformed *MalformedOutputError
		if errors.As(err, &malformed) {
			return nil, malformed
		}
		return nil, &NativeCallError{Export: exportName, Err: err}
	}

	return decodeOutputs(exportName, raw, outputs)
}

func decodeOutputs(exportName string, raw []byte, outputs []abi.Kind) ([]any, error) {
	dec := abi.NewDecoder(raw)
	vals := make([]any, len(outputs))
	for i, k := range outputs {
		v, err := dec.Decode(k)
		if err != nil {
			return nil, &MalformedOutputError{Export: exportName, Index: i, Kind: k, Err: err}
		}
		vals[i] = v
	}
	if err := dec.Finish(); err != nil {
		return nil, &MalformedOutputError{Export: exportName, Index: len(outputs), Err: err}
	}
	return vals, nil
}

// Result returns vals[i] as T. Generated wrappers use it to type the values
// returned by Invoke.
func Result[T any](vals []any, i int) (T, error) {
	var zero T
	if i < 0 || i >= len(vals) {
		return zero, &ResultError{Index: i, Count: len(vals)}
	}
	v, ok := vals[i].(T)
	if !ok {
		return zero, &ResultError{Index: i, Count: len(vals), Want: fmt.Sprintf("%T", zero), Got: vals[i]}
	}
	return v, nil
}
