package bindgen

import (
	"github.com/dave/jennifer/jen"

	"github.com/woxQAQ/cryptobind/pkg/abi"
)

const (
	abiPath      = "github.com/woxQAQ/cryptobind/pkg/abi"
	dispatchPath = "github.com/woxQAQ/cryptobind/pkg/dispatch"
)

// kindIdents names the abi variable for each scalar kind. A test checks it
// against abi.Bases.
var kindIdents = map[abi.Base]string{
	abi.BaseField:     "KindField",
	abi.BaseField2:    "KindField2",
	abi.BasePoint:     "KindPoint",
	abi.BaseBytes:     "KindBytes",
	abi.BaseBuffer32:  "KindBuffer32",
	abi.BaseBuffer128: "KindBuffer128",
	abi.BaseBool:      "KindBool",
	abi.BaseUint32:    "KindUint32",
}

// HostType is the Go type generated code uses for a value.
type HostType struct {
	// Name is the element type name: an abi type ("Fr") or a builtin ("bool").
	Name string
	// Qualified reports whether Name lives in the abi package.
	Qualified bool
	// Slice wraps the element type in a slice.
	Slice bool
}

// String renders the type as it appears in generated source.
func (h HostType) String() string {
	s := h.Name
	if h.Qualified {
		s = "abi." + s
	}
	if h.Slice {
		s = "[]" + s
	}
	return s
}

// Code returns the type expression.
func (h HostType) Code() *jen.Statement {
	var elem *jen.Statement
	if h.Qualified {
		elem = jen.Qual(abiPath, h.Name)
	} else {
		elem = jen.Id(h.Name)
	}
	if h.Slice {
		return jen.Index().Add(elem)
	}
	return elem
}

// Zero returns the zero value expression of the type.
func (h HostType) Zero() *jen.Statement {
	switch {
	case h.Slice || h.Name == "[]byte":
		return jen.Nil()
	case h.Qualified:
		return jen.Qual(abiPath, h.Name).Values()
	case h.Name == "bool":
		return jen.False()
	default:
		return jen.Lit(0)
	}
}

func (h HostType) sliceOf() HostType {
	h.Slice = true
	return h
}

// Descriptor tells the dispatcher how to decode one output.
type Descriptor struct {
	Kind   abi.Kind
	Layout abi.Layout
	Width  int
}

// Code returns the abi.Kind expression for the descriptor.
func (d Descriptor) Code() *jen.Statement {
	base := jen.Qual(abiPath, kindIdents[d.Kind.Base()])
	if d.Kind.IsVector() {
		return jen.Qual(abiPath, "VectorOf").Call(base)
	}
	return base
}

func (d Descriptor) vectorOf() Descriptor {
	return Descriptor{Kind: abi.VectorOf(d.Kind), Layout: abi.LayoutVector}
}

// MapInputType returns the Go parameter type for an input wire type.
func MapInputType(wire string) (HostType, error) {
	host, _, err := mapType(wire, abi.In)
	return host, err
}

// MapOutputType returns the Go result type and decode descriptor for an
// output wire type.
func MapOutputType(wire string) (HostType, Descriptor, error) {
	return mapType(wire, abi.Out)
}

func mapType(wire string, dir abi.Direction) (HostType, Descriptor, error) {
	k, err := abi.ResolveWireType(wire, dir)
	if err != nil {
		return HostType{}, Descriptor{}, err
	}
	return hostTypeOf(k), descriptorOf(k), nil
}

func hostTypeOf(k abi.Kind) HostType {
	if k.IsVector() {
		return hostTypeOf(k.Elem()).sliceOf()
	}
	return HostType{Name: k.HostType(), Qualified: !k.HostBuiltin()}
}

func descriptorOf(k abi.Kind) Descriptor {
	if k.IsVector() {
		return descriptorOf(k.Elem()).vectorOf()
	}
	return Descriptor{Kind: k, Layout: k.Layout(), Width: k.Width()}
}
