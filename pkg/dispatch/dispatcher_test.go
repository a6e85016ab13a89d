package dispatch

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/woxQAQ/cryptobind/pkg/abi"
)

// recorder is an export that remembers the envelope it was called with.
type recorder struct {
	calls int
	env   *CallEnvelope
	out   []byte
	err   error
}

func (r *recorder) Call(_ context.Context, env *CallEnvelope) ([]byte, error) {
	r.calls++
	r.env = env
	return r.out, r.err
}

func TestInvokeFixedWidthScenario(t *testing.T) {
	result := abi.FrFromUint64(42)
	rec := &recorder{out: result[:]}
	d := New(Exports{"pedersen__compress_fields": rec}, zaptest.NewLogger(t))

	left, right := abi.FrFromUint64(1), abi.FrFromUint64(2)
	vals, err := d.Invoke(context.Background(), "pedersen__compress_fields",
		[]Arg{{Value: left, Kind: abi.KindField}, {Value: right, Kind: abi.KindField}},
		[]abi.Kind{abi.KindField},
	)
	require.NoError(t, err)

	require.Equal(t, 1, rec.calls)
	assert.Equal(t, "pedersen__compress_fields", rec.env.Export)
	require.Len(t, rec.env.Inputs, 2)
	assert.Equal(t, left[:], rec.env.Inputs[0])
	assert.Equal(t, right[:], rec.env.Inputs[1])
	assert.Equal(t, 64, rec.env.InputSize())
	assert.Equal(t, []abi.Kind{abi.KindField}, rec.env.Outputs)

	require.Len(t, vals, 1)
	got, err := Result[abi.Fr](vals, 0)
	require.NoError(t, err)
	assert.Equal(t, result, got)
}

func TestInvokeEmptyVectorInput(t *testing.T) {
	rec := &recorder{}
	d := New(Exports{"pedersen__hash_multiple": rec}, nil)

	vals, err := d.Invoke(context.Background(), "pedersen__hash_multiple",
		[]Arg{{Value: []abi.Fr{}, Kind: abi.VectorOf(abi.KindField)}}, nil)
	require.NoError(t, err)
	assert.Empty(t, vals)
	assert.Equal(t, [][]byte{{0, 0, 0, 0}}, rec.env.Inputs)
}

func TestInvokeMultipleOutputsInOrder(t *testing.T) {
	var first, second abi.Buffer32
	first[0], second[0] = 0x11, 0x22
	out := append(append([]byte{}, first[:]...), second[:]...)
	out = append(out, 1)

	d := New(Exports{"schnorr__multisig_combine_signatures": &recorder{out: out}}, zaptest.NewLogger(t))
	vals, err := d.Invoke(context.Background(), "schnorr__multisig_combine_signatures", nil,
		[]abi.Kind{abi.KindBuffer32, abi.KindBuffer32, abi.KindBool})
	require.NoError(t, err)

	s, err := Result[abi.Buffer32](vals, 0)
	require.NoError(t, err)
	e, err := Result[abi.Buffer32](vals, 1)
	require.NoError(t, err)
	ok, err := Result[bool](vals, 2)
	require.NoError(t, err)
	assert.Equal(t, first, s)
	assert.Equal(t, second, e)
	assert.True(t, ok)
}

func TestInvokeEmptyBoolOutputIsMalformed(t *testing.T) {
	d := New(Exports{"schnorr__verify_signature": &recorder{out: []byte{}}}, zaptest.NewLogger(t))

	vals, err := d.Invoke(context.Background(), "schnorr__verify_signature", nil, []abi.Kind{abi.KindBool})
	assert.Nil(t, vals)

	var malformed *MalformedOutputError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 0, malformed.Index)
	assert.Equal(t, abi.KindBool, malformed.Kind)

	var short *abi.ShortBufferError
	assert.ErrorAs(t, err, &short)
}

func TestInvokeMalformedOutputs(t *testing.T) {
	tests := []struct {
		name    string
		out     []byte
		outputs []abi.Kind
		index   int
		cause   any
	}{
		{"short second output", make([]byte, 33), []abi.Kind{abi.KindField, abi.KindField}, 1, new(*abi.ShortBufferError)},
		{"bytes prefix overruns", []byte{0, 0, 1, 0, 7}, []abi.Kind{abi.KindBytes}, 0, new(*abi.OverrunError)},
		{"vector count overruns", []byte{0, 0, 0, 3}, []abi.Kind{abi.VectorOf(abi.KindField)}, 0, new(*abi.OverrunError)},
		{"trailing bytes", []byte{1, 9}, []abi.Kind{abi.KindBool}, 1, new(*abi.TrailingBytesError)},
		{"output for no outputs", []byte{0}, nil, 0, new(*abi.TrailingBytesError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(Exports{"f": &recorder{out: tt.out}}, zaptest.NewLogger(t))
			_, err := d.Invoke(context.Background(), "f", nil, tt.outputs)

			var malformed *MalformedOutputError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, "f", malformed.Export)
			assert.Equal(t, tt.index, malformed.Index)
			assert.ErrorAs(t, err, tt.cause)
		})
	}
}

func TestInvokeExportNotFound(t *testing.T) {
	d := New(Exports{}, zaptest.NewLogger(t))
	_, err := d.Invoke(context.Background(), "blake2s", nil, nil)

	var notFound *ExportNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "blake2s", notFound.Export)
}

func TestInvokeNativeFailureIsNotRetried(t *testing.T) {
	boom := errors.New("unreachable executed")
	rec := &recorder{err: boom}
	d := New(Exports{"f": rec}, zaptest.NewLogger(t))

	_, err := d.Invoke(context.Background(), "f", nil, []abi.Kind{abi.KindBool})
	var native *NativeCallError
	require.ErrorAs(t, err, &native)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, rec.calls)
}

func TestInvokeMalformedOutputFromExportIsNotWrapped(t *testing.T) {
	cause := &abi.OverrunError{Kind: abi.KindBytes, Length: 1 << 20, Have: 64}
	rec := &recorder{err: &MalformedOutputError{Export: "f", Index: 0, Kind: abi.KindBytes, Err: cause}}
	d := New(Exports{"f": rec}, zaptest.NewLogger(t))

	_, err := d.Invoke(context.Background(), "f", nil, []abi.Kind{abi.KindBytes})
	var malformed *MalformedOutputError
	require.ErrorAs(t, err, &malformed)
	assert.ErrorIs(t, err, cause)

	var native *NativeCallError
	assert.False(t, errors.As(err, &native))
}

func TestInvokeArgumentMismatch(t *testing.T) {
	rec := &recorder{}
	d := New(Exports{"f": rec}, zaptest.NewLogger(t))

	_, err := d.Invoke(context.Background(), "f",
		[]Arg{{Value: abi.FrFromUint64(1), Kind: abi.KindField}, {Value: 3, Kind: abi.KindUint32}}, nil)

	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, 1, argErr.Index)
	assert.False(t, argErr.Output)
	var mismatch *abi.TypeMismatchError
	assert.ErrorAs(t, err, &mismatch)
	assert.Zero(t, rec.calls, "export must not be called with a bad argument")
}

func TestInvokeInvalidOutputKind(t *testing.T) {
	rec := &recorder{}
	d := New(Exports{"f": rec}, zaptest.NewLogger(t))

	_, err := d.Invoke(context.Background(), "f", nil, []abi.Kind{abi.KindBool, {}})
	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.True(t, argErr.Output)
	assert.Equal(t, 1, argErr.Index)
	assert.Zero(t, rec.calls)
}

func TestInvokeVariableOutputs(t *testing.T) {
	var out []byte
	out, _ = abi.AppendEncode(out, abi.KindBytes, []byte("sig"))
	out, _ = abi.AppendEncode(out, abi.VectorOf(abi.KindField), []abi.Fr{abi.FrFromUint64(5)})

	fn := ExportFunc(func(_ context.Context, env *CallEnvelope) ([]byte, error) {
		if !bytes.Equal(env.Inputs[0], []byte{0, 0, 0, 1, 'm'}) {
			return nil, errors.New("unexpected input")
		}
		return out, nil
	})
	d := New(Exports{"f": fn}, zaptest.NewLogger(t))

	vals, err := d.Invoke(context.Background(), "f",
		[]Arg{{Value: []byte("m"), Kind: abi.KindBytes}},
		[]abi.Kind{abi.KindBytes, abi.VectorOf(abi.KindField)})
	require.NoError(t, err)

	sig, err := Result[[]byte](vals, 0)
	require.NoError(t, err)
	hashes, err := Result[[]abi.Fr](vals, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte("sig"), sig)
	assert.Equal(t, []abi.Fr{abi.FrFromUint64(5)}, hashes)
}

func TestResultErrors(t *testing.T) {
	vals := []any{true}

	_, err := Result[bool](vals, 1)
	var resErr *ResultError
	require.ErrorAs(t, err, &resErr)
	assert.Contains(t, err.Error(), "requested from 1 results")

	_, err = Result[uint32](vals, 0)
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "uint32", resErr.Want)
}

func TestExportsNames(t *testing.T) {
	m := Exports{"b": &recorder{}, "a": &recorder{}}
	assert.Equal(t, []string{"a", "b"}, m.Names())

	_, ok := m.Lookup("c")
	assert.False(t, ok)
}
