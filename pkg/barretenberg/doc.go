// Package barretenberg is the generated Go client for the barretenberg
// exports listed in exports.json.
//
// A Client wraps a dispatcher over one native module, usually a wasm bundle
// session:
//
//	session, err := manager.Open(ctx, "barretenberg")
//	...
//	bb := barretenberg.NewClient(session.Dispatcher)
//	hash, err := bb.Pedersen_CompressFields(ctx, left, right)
package barretenberg

//go:generate go run ../../cmd/bindgen generate --schema exports.json --output api.go
