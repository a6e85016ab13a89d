package abi

import (
	"sort"
)

// Direction says whether a wire type describes an input or an output argument.
type Direction uint8

const (
	In Direction = iota + 1
	Out
)

func (d Direction) String() string {
	switch d {
	case In:
		return "in"
	case Out:
		return "out"
	default:
		return "unknown"
	}
}

// WireType is a catalog entry: the schema spelling of a type and what it means.
type WireType struct {
	Name      string
	Kind      Kind
	Direction Direction
}

var wireTypes = make(map[string]WireType)

// Short spellings accepted next to each base's descriptive name.
var baseAliases = map[Base][]string{
	BaseField:     {"field", "fr"},
	BaseField2:    {"field2", "fq"},
	BasePoint:     {"point"},
	BaseBytes:     {"buffer"},
	BaseBuffer32:  {"buffer32"},
	BaseBuffer128: {"buffer128"},
	BaseBool:      {"bool"},
	BaseUint32:    {"u32"},
}

// Spellings emitted by the native library's own binding declarations.
var nativeSpellings = []WireType{
	{Name: "fr::in_buf", Kind: KindField, Direction: In},
	{Name: "fr::out_buf", Kind: KindField, Direction: Out},
	{Name: "fr::vec_in_buf", Kind: VectorOf(KindField), Direction: In},
	{Name: "fr::vec_out_buf", Kind: VectorOf(KindField), Direction: Out},
	{Name: "fq::in_buf", Kind: KindField2, Direction: In},
	{Name: "fq::out_buf", Kind: KindField2, Direction: Out},
	{Name: "fq::vec_in_buf", Kind: VectorOf(KindField2), Direction: In},
	{Name: "fq::vec_out_buf", Kind: VectorOf(KindField2), Direction: Out},
	{Name: "affine_element::in_buf", Kind: KindPoint, Direction: In},
	{Name: "affine_element::out_buf", Kind: KindPoint, Direction: Out},
	{Name: "const uint8_t *", Kind: KindBytes, Direction: In},
	{Name: "uint8_t **", Kind: KindBytes, Direction: Out},
	{Name: "const bool*", Kind: KindBool, Direction: In},
	{Name: "bool*", Kind: KindBool, Direction: Out},
	{Name: "const uint32_t*", Kind: KindUint32, Direction: In},
	{Name: "uint32_t*", Kind: KindUint32, Direction: Out},
	{Name: "multisig::MultiSigPublicKey::vec_in_buf", Kind: VectorOf(KindBuffer128), Direction: In},
	{Name: "multisig::MultiSigPublicKey::out_buf", Kind: KindBuffer128, Direction: Out},
	{Name: "multisig::RoundOnePublicOutput::vec_in_buf", Kind: VectorOf(KindBuffer128), Direction: In},
	{Name: "multisig::RoundOnePublicOutput::out_buf", Kind: KindBuffer128, Direction: Out},
	{Name: "multisig::RoundOnePrivateOutput::in_buf", Kind: KindBuffer128, Direction: In},
	{Name: "multisig::RoundOnePrivateOutput::out_buf", Kind: KindBuffer128, Direction: Out},
}

func init() {
	for _, b := range Bases() {
		names := append([]string{b.String()}, baseAliases[b]...)
		for _, name := range names {
			registerWireType(WireType{Name: name + "-in", Kind: KindOf(b), Direction: In})
			registerWireType(WireType{Name: name + "-out", Kind: KindOf(b), Direction: Out})
			registerWireType(WireType{Name: name + "-vector-in", Kind: VectorOf(KindOf(b)), Direction: In})
			registerWireType(WireType{Name: name + "-vector-out", Kind: VectorOf(KindOf(b)), Direction: Out})
		}
	}
	for _, wt := range nativeSpellings {
		registerWireType(wt)
	}
}

func registerWireType(wt WireType) {
	if _, dup := wireTypes[wt.Name]; dup {
		panic("abi: duplicate wire type " + wt.Name)
	}
	wireTypes[wt.Name] = wt
}

// LookupWireType resolves a schema type string. Strings outside the catalog
// fail with *UnrecognizedTypeError; there is no default kind.
func LookupWireType(name string) (WireType, error) {
	wt, ok := wireTypes[name]
	if !ok {
		return WireType{}, &UnrecognizedTypeError{WireType: name}
	}
	return wt, nil
}

// WireTypeNames returns every catalog spelling, sorted.
func WireTypeNames() []string {
	names := make([]string, 0, len(wireTypes))
	for name := range wireTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveWireType looks name up and checks that it is declared for dir.
func ResolveWireType(name string, dir Direction) (Kind, error) {
	wt, err := LookupWireType(name)
	if err != nil {
		return Kind{}, err
	}
	if wt.Direction != dir {
		return Kind{}, &UnrecognizedTypeError{
			WireType: name,
			Reason:   "declared as an " + wt.Direction.String() + "put type, used as an " + dir.String() + "put",
		}
	}
	return wt.Kind, nil
}
