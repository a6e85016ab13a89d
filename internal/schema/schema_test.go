package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woxQAQ/cryptobind/pkg/abi"
)

const pedersenJSON = `[
  {
    "function_name": "pedersen__compress_fields",
    "in_args": [
      {"name": "left", "type": "field-in"},
      {"name": "right", "type": "field-in"}
    ],
    "out_args": [
      {"name": "result", "type": "field-out"}
    ]
  },
  {
    "function_name": "pedersen__init",
    "in_args": [],
    "out_args": []
  }
]`

func TestParseJSON(t *testing.T) {
	specs, err := Parse("exports.json", []byte(pedersenJSON))
	require.NoError(t, err)
	require.Len(t, specs, 2)

	assert.Equal(t, "pedersen__compress_fields", specs[0].FunctionName)
	assert.Equal(t, []ArgumentSpec{{Name: "left", Type: "field-in"}, {Name: "right", Type: "field-in"}}, specs[0].InArgs)
	assert.Equal(t, []ArgumentSpec{{Name: "result", Type: "field-out"}}, specs[0].OutArgs)
	assert.Empty(t, specs[1].InArgs)
	assert.Empty(t, specs[1].OutArgs)
}

func TestParseYAMLAndCamelKeys(t *testing.T) {
	data := `
- function_name: blake2s
  in_args:
    - {name: data, type: "const uint8_t *"}
  out_args:
    - {name: r, type: fixed-32-byte-out}
- functionName: schnorr__verify_signature
  inArgs:
    - {name: message, type: byte-buffer-in}
  outArgs:
    - {name: result, type: "bool*"}
`
	specs, err := Parse("exports.yaml", []byte(data))
	require.NoError(t, err)
	require.Len(t, specs, 2)

	assert.Equal(t, "const uint8_t *", specs[0].InArgs[0].Type)
	assert.Equal(t, "schnorr__verify_signature", specs[1].FunctionName)
	assert.Equal(t, "byte-buffer-in", specs[1].InArgs[0].Type)
	assert.Equal(t, "bool*", specs[1].OutArgs[0].Type)

	kinds, err := specs[1].OutputKinds()
	require.NoError(t, err)
	assert.Equal(t, []abi.Kind{abi.KindBool}, kinds)
}

func TestKindsPreserveOrder(t *testing.T) {
	spec := FunctionSpec{
		FunctionName: "schnorr__multisig_construct_signature_round_2",
		InArgs: []ArgumentSpec{
			{Name: "message", Type: "byte-buffer-in"},
			{Name: "private_key", Type: "fq::in_buf"},
			{Name: "signer_round_one_private_buf", Type: "multisig::RoundOnePrivateOutput::in_buf"},
			{Name: "signer_pubkeys", Type: "multisig::MultiSigPublicKey::vec_in_buf"},
			{Name: "round_one_public_buf", Type: "multisig::RoundOnePublicOutput::vec_in_buf"},
		},
		OutArgs: []ArgumentSpec{
			{Name: "round_two", Type: "fq::out_buf"},
			{Name: "success", Type: "bool*"},
		},
	}

	in, err := spec.InputKinds()
	require.NoError(t, err)
	assert.Equal(t, []abi.Kind{
		abi.KindBytes,
		abi.KindField2,
		abi.KindBuffer128,
		abi.VectorOf(abi.KindBuffer128),
		abi.VectorOf(abi.KindBuffer128),
	}, in)

	out, err := spec.OutputKinds()
	require.NoError(t, err)
	assert.Equal(t, []abi.Kind{abi.KindField2, abi.KindBool}, out)
}

func TestKindsRejectUnknownAndWrongDirection(t *testing.T) {
	spec := FunctionSpec{
		FunctionName: "f",
		InArgs:       []ArgumentSpec{{Name: "x", Type: "field-out"}},
		OutArgs:      []ArgumentSpec{{Name: "y", Type: "string-out"}},
	}

	var unknown *abi.UnrecognizedTypeError
	_, err := spec.InputKinds()
	require.ErrorAs(t, err, &unknown)
	assert.Contains(t, err.Error(), "argument 'x'")

	_, err = spec.OutputKinds()
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "string-out", unknown.WireType)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		specs []FunctionSpec
		field string
	}{
		{"missing function name", []FunctionSpec{{}}, "[0].function_name"},
		{"duplicate function", []FunctionSpec{{FunctionName: "a"}, {FunctionName: "a"}}, "function_name"},
		{"missing arg name", []FunctionSpec{{FunctionName: "a", InArgs: []ArgumentSpec{{Type: "field-in"}}}}, "in_args[0].name"},
		{"missing arg type", []FunctionSpec{{FunctionName: "a", OutArgs: []ArgumentSpec{{Name: "r"}}}}, "out_args[0].type"},
		{"duplicate arg", []FunctionSpec{{FunctionName: "a", InArgs: []ArgumentSpec{
			{Name: "x", Type: "field-in"}, {Name: "x", Type: "field-in"},
		}}}, "in_args[1].name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate("schema.json", tt.specs)
			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, tt.field, valErr.Field)
			assert.Equal(t, "schema.json", valErr.Path)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exports.json")
	require.NoError(t, os.WriteFile(path, []byte(pedersenJSON), 0o644))

	specs, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, specs, 2)

	spec, ok := Find(specs, "pedersen__init")
	assert.True(t, ok)
	assert.Equal(t, "pedersen__init", spec.FunctionName)

	_, ok = Find(specs, "pedersen__commit")
	assert.False(t, ok)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	var notFound *SchemaNotFoundError
	require.ErrorAs(t, err, &notFound)

	_, err = Parse("bad.json", []byte(`{"function_name": `))
	var parseErr *SchemaParseError
	require.ErrorAs(t, err, &parseErr)

	_, err = Parse("object.json", []byte(`{"function_name": "a"}`))
	require.ErrorAs(t, err, &parseErr)
}
