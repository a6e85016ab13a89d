package wasm

// A hand-assembled module that imports the env host functions and exports a
// bump allocator plus a handful of small functions the tests call through
// the pointer convention.

const (
	opUnreachable = 0x00
	opLoop        = 0x03
	opBr          = 0x0C
	opEnd         = 0x0B
	opCall        = 0x10
	opLocalGet    = 0x20
	opGlobalGet   = 0x23
	opGlobalSet   = 0x24
	opI32Store    = 0x36
	opI64Load     = 0x29
	opI64Store    = 0x37
	opI32Load8U   = 0x2D
	opI32Store8   = 0x3A
	opI32Const    = 0x41
	opI32Add      = 0x6A
	opI32And      = 0x71

	valI32 = 0x7F
)

// Type indices.
const (
	typeI32ToI32 = iota
	typeI32
	typeI32I32
	typeNone
	typeI32I32I32
	typeToI32
)

// Function indices: imports first, then local functions in code order.
const (
	fnLogstr = iota
	fnGetData
	fnSetData
	fnHardwareConcurrency
	fnMalloc
	fnFree
	fnCopy32
	fnCopyBool
	fnEcho
	fnTrap
	fnSave
	fnLoad
	fnLog
	fnThreads
	fnInitialize
	fnSpin
)

// initMarker is the address _initialize writes 1 to.
const initMarker = 16

func uleb(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
			continue
		}
		return append(out, b)
	}
}

func wasmName(s string) []byte {
	return append(uleb(uint32(len(s))), s...)
}

func wasmVec(items ...[]byte) []byte {
	out := uleb(uint32(len(items)))
	for _, it := range items {
		out = append(out, it...)
	}
	return out
}

func wasmSection(id byte, payload []byte) []byte {
	out := append([]byte{id}, uleb(uint32(len(payload)))...)
	return append(out, payload...)
}

func funcType(params, results int) []byte {
	out := []byte{0x60}
	out = append(out, uleb(uint32(params))...)
	for i := 0; i < params; i++ {
		out = append(out, valI32)
	}
	out = append(out, uleb(uint32(results))...)
	for i := 0; i < results; i++ {
		out = append(out, valI32)
	}
	return out
}

func importFunc(module, field string, typeIdx uint32) []byte {
	out := append(wasmName(module), wasmName(field)...)
	out = append(out, 0x00)
	return append(out, uleb(typeIdx)...)
}

func exportEntry(name string, kind byte, idx uint32) []byte {
	out := append(wasmName(name), kind)
	return append(out, uleb(idx)...)
}

func funcBody(code ...byte) []byte {
	content := append([]byte{0x00}, code...)
	return append(uleb(uint32(len(content))), content...)
}

func copy32Code() []byte {
	var code []byte
	for _, off := range []byte{0, 8, 16, 24} {
		code = append(code,
			opLocalGet, 1,
			opLocalGet, 0,
			opI64Load, 3, off,
			opI64Store, 3, off,
		)
	}
	return append(code, opEnd)
}

type localFunc struct {
	name    string
	typeIdx uint32
	body    []byte
}

func testModule() []byte {
	funcs := []localFunc{
		{"bbmalloc", typeI32ToI32, []byte{
			opGlobalGet, 0,
			opGlobalGet, 0,
			opLocalGet, 0,
			opI32Add,
			opI32Const, 7,
			opI32Add,
			opI32Const, 0x78, // -8
			opI32And,
			opGlobalSet, 0,
			opEnd,
		}},
		{"bbfree", typeI32, []byte{opEnd}},
		{"copy32", typeI32I32, copy32Code()},
		{"copy_bool", typeI32I32, []byte{
			opLocalGet, 1,
			opLocalGet, 0,
			opI32Load8U, 0, 0,
			opI32Store8, 0, 0,
			opEnd,
		}},
		{"echo_buffer", typeI32I32, []byte{
			opLocalGet, 1,
			opLocalGet, 0,
			opI32Store, 2, 0,
			opEnd,
		}},
		{"trap", typeNone, []byte{opUnreachable, opEnd}},
		{"save", typeI32I32, []byte{
			opLocalGet, 0,
			opLocalGet, 1,
			opI32Const, 32,
			opCall, fnSetData,
			opEnd,
		}},
		{"load", typeI32I32, []byte{
			opLocalGet, 0,
			opLocalGet, 1,
			opCall, fnGetData,
			opEnd,
		}},
		{"log", typeI32, []byte{
			opLocalGet, 0,
			opCall, fnLogstr,
			opEnd,
		}},
		{"threads", typeI32, []byte{
			opLocalGet, 0,
			opCall, fnHardwareConcurrency,
			opI32Store, 2, 0,
			opEnd,
		}},
		{"_initialize", typeNone, []byte{
			opI32Const, initMarker,
			opI32Const, 1,
			opI32Store8, 0, 0,
			opEnd,
		}},
		{"spin", typeNone, []byte{
			opLoop, 0x40,
			opBr, 0,
			opEnd,
			opEnd,
		}},
	}

	types := wasmVec(
		funcType(1, 1),
		funcType(1, 0),
		funcType(2, 0),
		funcType(0, 0),
		funcType(3, 0),
		funcType(0, 1),
	)
	imports := wasmVec(
		importFunc(EnvModule, "logstr", typeI32),
		importFunc(EnvModule, "get_data", typeI32I32),
		importFunc(EnvModule, "set_data", typeI32I32I32),
		importFunc(EnvModule, "env_hardware_concurrency", typeToI32),
	)

	var decls, exports, bodies [][]byte
	for i, f := range funcs {
		decls = append(decls, uleb(f.typeIdx))
		exports = append(exports, exportEntry(f.name, 0x00, uint32(fnMalloc+i)))
		bodies = append(bodies, funcBody(f.body...))
	}
	exports = append(exports, exportEntry("memory", 0x02, 0))

	// One page of memory, and a mutable i32 heap pointer starting at 1024.
	memory := wasmVec([]byte{0x00, 0x01})
	globals := wasmVec([]byte{valI32, 0x01, opI32Const, 0x80, 0x08, opEnd})

	mod := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	mod = append(mod, wasmSection(1, types)...)
	mod = append(mod, wasmSection(2, imports)...)
	mod = append(mod, wasmSection(3, wasmVec(decls...))...)
	mod = append(mod, wasmSection(5, memory)...)
	mod = append(mod, wasmSection(6, globals)...)
	mod = append(mod, wasmSection(7, wasmVec(exports...))...)
	mod = append(mod, wasmSection(10, wasmVec(bodies...))...)
	return mod
}

// memoryOnlyModule exports one page of memory and nothing else.
func memoryOnlyModule() []byte {
	mod := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	mod = append(mod, wasmSection(5, wasmVec([]byte{0x00, 0x01}))...)
	mod = append(mod, wasmSection(7, wasmVec(exportEntry("memory", 0x02, 0)))...)
	return mod
}
