// Package bindgen turns export schemas into Go bindings.
package bindgen

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"strconv"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/woxQAQ/cryptobind/internal/naming"
	"github.com/woxQAQ/cryptobind/internal/schema"
	"github.com/woxQAQ/cryptobind/pkg/abi"
)

const (
	DefaultPackage = "barretenberg"
	DefaultClient  = "Client"
)

// Options controls the generated file.
type Options struct {
	// Package is the package clause of the generated file.
	Package string
	// Client is the name of the generated client type.
	Client string
	// Source names the schema in the generated header, if set.
	Source string
}

func (o Options) withDefaults() Options {
	if o.Package == "" {
		o.Package = DefaultPackage
	}
	if o.Client == "" {
		o.Client = DefaultClient
	}
	return o
}

type param struct {
	name string
	typ  HostType
	kind Descriptor
}

type result struct {
	local string
	typ   HostType
	desc  Descriptor
}

type binding struct {
	export  string
	method  string
	params  []param
	results []result
	outDocs []string
}

// Generate renders a Go file with one client method per spec, in order.
// Any unmapped type or unconvertible name fails the whole run and no source
// is returned.
func Generate(specs []schema.FunctionSpec, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	if !token.IsIdentifier(opts.Package) {
		return nil, &GenerateError{Err: fmt.Errorf("invalid package name '%s'", opts.Package)}
	}
	if !token.IsIdentifier(opts.Client) || !token.IsExported(opts.Client) {
		return nil, &GenerateError{Err: fmt.Errorf("client type '%s' must be an exported identifier", opts.Client)}
	}

	bindings := make([]binding, 0, len(specs))
	methods := make(map[string]string, len(specs))
	for _, spec := range specs {
		b, err := bind(spec)
		if err != nil {
			return nil, err
		}
		if prev, dup := methods[b.method]; dup {
			return nil, &GenerateError{
				Function: spec.FunctionName,
				Err:      fmt.Errorf("method %s already generated for '%s'", b.method, prev),
			}
		}
		methods[b.method] = spec.FunctionName
		bindings = append(bindings, b)
	}

	f := jen.NewFile(opts.Package)
	header := "Code generated by cryptobind. DO NOT EDIT."
	if opts.Source != "" {
		header = fmt.Sprintf("Code generated by cryptobind from %s. DO NOT EDIT.", opts.Source)
	}
	f.HeaderComment(header)
	f.ImportName(abiPath, "abi")
	f.ImportName(dispatchPath, "dispatch")

	renderClient(f, opts.Client, bindings)
	for _, b := range bindings {
		f.Line()
		renderMethod(f, opts.Client, b)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, &GenerateError{Err: fmt.Errorf("render: %w", err)}
	}
	return buf.Bytes(), nil
}

func bind(spec schema.FunctionSpec) (binding, error) {
	fail := func(arg string, err error) (binding, error) {
		return binding{}, &GenerateError{Function: spec.FunctionName, Arg: arg, Err: err}
	}
	if spec.FunctionName == "" {
		return fail("", errors.New("function_name is empty"))
	}

	method, err := naming.GoName(spec.FunctionName)
	if err != nil {
		return fail("", err)
	}
	b := binding{export: spec.FunctionName, method: method}

	taken := make(map[string]bool)
	for _, in := range spec.InArgs {
		name, err := naming.ParamName(in.Name)
		if err != nil {
			return fail(in.Name, err)
		}
		if taken[name] {
			return fail(in.Name, fmt.Errorf("parameter name %s is used twice", name))
		}
		taken[name] = true

		host, desc, err := mapType(in.Type, abi.In)
		if err != nil {
			return fail(in.Name, err)
		}
		b.params = append(b.params, param{name: name, typ: host, kind: desc})
	}

	for i, out := range spec.OutArgs {
		host, desc, err := MapOutputType(out.Type)
		if err != nil {
			return fail(out.Name, err)
		}
		b.results = append(b.results, result{
			local: unique("r"+strconv.Itoa(i), taken),
			typ:   host,
			desc:  desc,
		})
		b.outDocs = append(b.outDocs, out.Name)
	}
	return b, nil
}

// unique returns name, or name with trailing underscores, such that it is
// not in taken, and records it.
func unique(name string, taken map[string]bool) string {
	for taken[name] {
		name += "_"
	}
	taken[name] = true
	return name
}

func renderClient(f *jen.File, client string, bindings []binding) {
	f.Commentf("%s calls native exports through a dispatcher. It adds no locking;", client)
	f.Comment("calls that share one native module must be serialized by the caller.")
	f.Type().Id(client).Struct(
		jen.Id("d").Op("*").Qual(dispatchPath, "Dispatcher"),
	)
	f.Line()

	f.Commentf("New%s returns a %s that invokes exports through d.", client, client)
	f.Func().Id("New"+client).Params(
		jen.Id("d").Op("*").Qual(dispatchPath, "Dispatcher"),
	).Op("*").Id(client).Block(
		jen.Return(jen.Op("&").Id(client).Values(jen.Dict{jen.Id("d"): jen.Id("d")})),
	)
	f.Line()

	f.Comment("ExportNames lists the native exports the client calls, in schema order.")
	f.Var().Id("ExportNames").Op("=").Index().String().ValuesFunc(func(g *jen.Group) {
		for _, b := range bindings {
			g.Line().Lit(b.export)
		}
		if len(bindings) > 0 {
			g.Line()
		}
	})
}

func renderMethod(f *jen.File, client string, b binding) {
	f.Commentf("%s calls the native export %s.", b.method, b.export)
	if len(b.outDocs) > 1 {
		f.Commentf("It returns %s in that order.", strings.Join(b.outDocs, ", "))
	}

	params := []jen.Code{jen.Id("ctx").Qual("context", "Context")}
	for _, p := range b.params {
		params = append(params, jen.Id(p.name).Add(p.typ.Code()))
	}

	var returns []jen.Code
	for _, r := range b.results {
		returns = append(returns, r.typ.Code())
	}
	returns = append(returns, jen.Error())

	f.Func().Params(jen.Id("c").Op("*").Id(client)).Id(b.method).Params(params...).Params(returns...).
		BlockFunc(func(g *jen.Group) {
			renderBody(g, b)
		})
}

func renderBody(g *jen.Group, b binding) {
	args := jen.Nil()
	if len(b.params) > 0 {
		args = jen.Index().Qual(dispatchPath, "Arg").ValuesFunc(func(vg *jen.Group) {
			for _, p := range b.params {
				vg.Line().Values(
					jen.Id("Value").Op(":").Id(p.name),
					jen.Id("Kind").Op(":").Add(p.kind.Code()),
				)
			}
			vg.Line()
		})
	}
	outputs := jen.Nil()
	if len(b.results) > 0 {
		outputs = jen.Index().Qual(abiPath, "Kind").ValuesFunc(func(vg *jen.Group) {
			for _, r := range b.results {
				vg.Add(r.desc.Code())
			}
		})
	}
	invoke := jen.Id("c").Dot("d").Dot("Invoke").Call(jen.Id("ctx"), jen.Lit(b.export), args, outputs)

	if len(b.results) == 0 {
		g.List(jen.Id("_"), jen.Err()).Op(":=").Add(invoke)
		g.Return(jen.Err())
		return
	}

	zeros := func() []jen.Code {
		out := make([]jen.Code, 0, len(b.results)+1)
		for _, r := range b.results {
			out = append(out, r.typ.Zero())
		}
		return append(out, jen.Err())
	}
	decode := func(i int) *jen.Statement {
		r := b.results[i]
		return jen.Qual(dispatchPath, "Result").Types(r.typ.Code()).Call(jen.Id("vals"), jen.Lit(i))
	}

	g.List(jen.Id("vals"), jen.Err()).Op(":=").Add(invoke)
	g.If(jen.Err().Op("!=").Nil()).Block(jen.Return(zeros()...))

	if len(b.results) == 1 {
		g.Return(decode(0))
		return
	}

	locals := make([]jen.Code, 0, len(b.results)+1)
	for i, r := range b.results {
		g.List(jen.Id(r.local), jen.Err()).Op(":=").Add(decode(i))
		g.If(jen.Err().Op("!=").Nil()).Block(jen.Return(zeros()...))
		locals = append(locals, jen.Id(r.local))
	}
	g.Return(append(locals, jen.Nil())...)
}
