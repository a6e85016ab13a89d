package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoName(t *testing.T) {
	tests := []struct {
		schema string
		ident  string
	}{
		{"pedersen__compress_fields", "Pedersen_CompressFields"},
		{"pedersen_plookup_compress_fields", "PedersenPlookupCompressFields"},
		{"pedersen__hash_to_tree", "Pedersen_HashToTree"},
		{"blake2s", "Blake2s"},
		{"blake2s_to_field", "Blake2sToField"},
		{"schnorr__compute_public_key", "Schnorr_ComputePublicKey"},
		{"schnorr__multisig_construct_signature_round_1", "Schnorr_MultisigConstructSignatureRound_1"},
		{"a_1_2", "A_1_2"},
		{"a_1_x", "A_1X"},
		{"a_1__b", "A_1_B"},
		{"x", "X"},
	}

	for _, tt := range tests {
		t.Run(tt.schema, func(t *testing.T) {
			got, err := GoName(tt.schema)
			require.NoError(t, err)
			assert.Equal(t, tt.ident, got)

			back, err := SchemaName(got)
			require.NoError(t, err)
			assert.Equal(t, tt.schema, back)
		})
	}
}

func TestGoNameRejects(t *testing.T) {
	for _, name := range []string{
		"",
		"Pedersen",
		"pedersen-hash",
		"pedersen hash",
		"_init",
		"init_",
		"a___b",
		"a____b",
		"1abc",
		"pedersen__1x",
		"héllo",
	} {
		_, err := GoName(name)
		var convErr *ConversionError
		require.ErrorAs(t, err, &convErr, "name %q", name)
		assert.Equal(t, name, convErr.Name)
	}
}

func TestSchemaNameRejects(t *testing.T) {
	for _, ident := range []string{"", "pedersen", "A__B", "A_", "_A", "A_b"} {
		_, err := SchemaName(ident)
		var convErr *ConversionError
		assert.ErrorAs(t, err, &convErr, "ident %q", ident)
	}
}

func TestParamName(t *testing.T) {
	tests := []struct {
		schema string
		ident  string
	}{
		{"left", "left"},
		{"pub_keys", "pubKeys"},
		{"round_one_public_outputs", "roundOnePublicOutputs"},
		{"index_2", "index_2"},
		{"hash_index", "hashIndex"},
		{"type", "type_"},
		{"range", "range_"},
		{"ctx", "ctx_"},
		{"c", "c_"},
		{"err", "err_"},
		{"vals", "vals_"},
		{"abi", "abi_"},
		{"bool", "bool_"},
	}

	for _, tt := range tests {
		t.Run(tt.schema, func(t *testing.T) {
			got, err := ParamName(tt.schema)
			require.NoError(t, err)
			assert.Equal(t, tt.ident, got)
		})
	}
}

func TestParamNameRejects(t *testing.T) {
	for _, name := range []string{"", "PubKey", "pub__key", "pub-key", "9lives"} {
		_, err := ParamName(name)
		var convErr *ConversionError
		assert.ErrorAs(t, err, &convErr, "name %q", name)
	}
}
