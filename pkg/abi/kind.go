package abi

// Base is one of the scalar value kinds understood by the native ABI.
type Base uint8

const (
	BaseField Base = iota + 1
	BaseField2
	BasePoint
	BaseBytes
	BaseBuffer32
	BaseBuffer128
	BaseBool
	BaseUint32
)

// Layout describes how a kind is framed on the wire.
type Layout uint8

const (
	// LayoutFixed values occupy exactly Width bytes with no prefix.
	LayoutFixed Layout = iota
	// LayoutBuffer values carry a 4-byte big-endian byte count.
	LayoutBuffer
	// LayoutVector values carry a 4-byte big-endian element count.
	LayoutVector
)

func (l Layout) String() string {
	switch l {
	case LayoutFixed:
		return "fixed"
	case LayoutBuffer:
		return "variable-buffer"
	case LayoutVector:
		return "variable-vector"
	default:
		return "unknown"
	}
}

// LengthPrefixSize is the width of the length field in front of variable kinds.
const LengthPrefixSize = 4

type baseInfo struct {
	name    string
	layout  Layout
	width   int
	host    string
	builtin bool
}

// bases is the single table every other part of the package reads from.
// Index zero is the invalid base.
var bases = [...]baseInfo{
	BaseField:     {name: "field-element", layout: LayoutFixed, width: FieldSize, host: "Fr"},
	BaseField2:    {name: "second-field-element", layout: LayoutFixed, width: FieldSize, host: "Fq"},
	BasePoint:     {name: "curve-point", layout: LayoutFixed, width: PointSize, host: "Point"},
	BaseBytes:     {name: "byte-buffer", layout: LayoutBuffer, host: "[]byte", builtin: true},
	BaseBuffer32:  {name: "fixed-32-byte", layout: LayoutFixed, width: 32, host: "Buffer32"},
	BaseBuffer128: {name: "fixed-128-byte", layout: LayoutFixed, width: 128, host: "Buffer128"},
	BaseBool:      {name: "boolean", layout: LayoutFixed, width: 1, host: "bool", builtin: true},
	BaseUint32:    {name: "unsigned-32", layout: LayoutFixed, width: 4, host: "uint32", builtin: true},
}

// Bases returns every valid base in declaration order.
func Bases() []Base {
	out := make([]Base, 0, len(bases)-1)
	for b := BaseField; int(b) < len(bases); b++ {
		out = append(out, b)
	}
	return out
}

// Valid reports whether b is one of the declared bases.
func (b Base) Valid() bool {
	return b > 0 && int(b) < len(bases)
}

func (b Base) String() string {
	if !b.Valid() {
		return "invalid"
	}
	return bases[b].name
}

// Kind is a value kind: a base, optionally wrapped in the vector modifier.
// The zero Kind is invalid.
type Kind struct {
	base   Base
	vector bool
}

var (
	KindField     = Kind{base: BaseField}
	KindField2    = Kind{base: BaseField2}
	KindPoint     = Kind{base: BasePoint}
	KindBytes     = Kind{base: BaseBytes}
	KindBuffer32  = Kind{base: BaseBuffer32}
	KindBuffer128 = Kind{base: BaseBuffer128}
	KindBool      = Kind{base: BaseBool}
	KindUint32    = Kind{base: BaseUint32}
)

// KindOf returns the scalar kind for b.
func KindOf(b Base) Kind {
	return Kind{base: b}
}

// VectorOf wraps a scalar kind in the vector modifier.
// Vectors of vectors are not part of the ABI; VectorOf panics on them.
func VectorOf(k Kind) Kind {
	if k.vector {
		panic("abi: nested vector kinds are not supported")
	}
	return Kind{base: k.base, vector: true}
}

// Base returns the scalar base of k.
func (k Kind) Base() Base { return k.base }

// IsVector reports whether k carries the vector modifier.
func (k Kind) IsVector() bool { return k.vector }

// Elem returns the element kind of a vector, or k itself for scalars.
func (k Kind) Elem() Kind { return Kind{base: k.base} }

// Valid reports whether k refers to a declared base.
func (k Kind) Valid() bool { return k.base.Valid() }

// Layout returns the wire framing of k.
func (k Kind) Layout() Layout {
	if k.vector {
		return LayoutVector
	}
	if !k.Valid() {
		return LayoutFixed
	}
	return bases[k.base].layout
}

// Width returns the exact byte width of a fixed kind and 0 for variable kinds.
func (k Kind) Width() int {
	if k.vector || !k.Valid() {
		return 0
	}
	return bases[k.base].width
}

// minWidth is the smallest number of bytes one value of the base can occupy.
func (b Base) minWidth() int {
	if bases[b].layout == LayoutBuffer {
		return LengthPrefixSize
	}
	return bases[b].width
}

// HostType returns the Go type name used for k, relative to this package
// for abi types ("Fr", "[]Point") and bare for builtins ("bool", "[][]byte").
func (k Kind) HostType() string {
	if !k.Valid() {
		return ""
	}
	if k.vector {
		return "[]" + bases[k.base].host
	}
	return bases[k.base].host
}

// HostBuiltin reports whether the element host type of k is a Go builtin.
func (k Kind) HostBuiltin() bool {
	return k.Valid() && bases[k.base].builtin
}

func (k Kind) String() string {
	if k.vector {
		return "vector<" + k.base.String() + ">"
	}
	return k.base.String()
}
