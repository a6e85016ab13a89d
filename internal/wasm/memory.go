package wasm

import (
	"bytes"
	"context"
	"errors"
	"math"

	"github.com/tetratelabs/wazero/api"

	"github.com/woxQAQ/cryptobind/pkg/abi"
)

// Memory provides bounds-checked access to a guest's linear memory.
// Reads return copies, so results stay valid after the guest grows or
// rewrites its memory.
type Memory struct {
	mem api.Memory
}

// NewMemory creates a memory helper over the module's exported memory.
func NewMemory(module api.Module) *Memory {
	return &Memory{mem: module.Memory()}
}

// Size returns the current size of the memory in bytes.
func (m *Memory) Size() uint32 {
	return m.mem.Size()
}

// ReadString reads a null-terminated string of at most maxLen bytes.
func (m *Memory) ReadString(ptr uint32, maxLen uint32) (string, bool) {
	buf, ok := m.mem.Read(ptr, maxLen)
	if !ok {
		return "", false
	}
	if end := bytes.IndexByte(buf, 0); end >= 0 {
		buf = buf[:end]
	}
	return string(buf), true
}

// ReadCString reads a null-terminated string starting at ptr. The string
// ends at the terminator or at the end of memory.
func (m *Memory) ReadCString(ptr uint32) (string, bool) {
	size := m.mem.Size()
	if ptr >= size {
		return "", false
	}
	return m.ReadString(ptr, size-ptr)
}

// ReadBytes copies length bytes starting at ptr.
func (m *Memory) ReadBytes(ptr uint32, length uint32) ([]byte, bool) {
	buf, ok := m.mem.Read(ptr, length)
	if !ok {
		return nil, false
	}
	return bytes.Clone(buf), true
}

// ReadUint32 reads a little-endian uint32, the guest's native pointer format.
func (m *Memory) ReadUint32(ptr uint32) (uint32, bool) {
	return m.mem.ReadUint32Le(ptr)
}

// WriteBytes copies data into memory at ptr.
func (m *Memory) WriteBytes(ptr uint32, data []byte) bool {
	return m.mem.Write(ptr, data)
}

// Peeker returns an abi.Peeker whose offset 0 is base.
func (m *Memory) Peeker(base uint32) abi.Peeker {
	return func(off, n uint32) ([]byte, bool) {
		addr := uint64(base) + uint64(off)
		if addr > math.MaxUint32 {
			return nil, false
		}
		return m.mem.Read(uint32(addr), n)
	}
}

// heap tracks the guest allocations made for one export call so they can
// all be released afterwards.
type heap struct {
	mem    *Memory
	malloc api.Function
	free   api.Function
	ptrs   []uint32
}

func newHeap(mem *Memory, malloc, free api.Function) *heap {
	return &heap{mem: mem, malloc: malloc, free: free}
}

// alloc reserves size bytes in the guest and zeroes them. A zero size still
// reserves one byte so every argument has a distinct non-null address.
func (h *heap) alloc(ctx context.Context, size uint32) (uint32, error) {
	if size == 0 {
		size = 1
	}
	res, err := h.malloc.Call(ctx, api.EncodeU32(size))
	if err != nil {
		return 0, &MemoryAccessError{Operation: "alloc", Length: size, Err: err}
	}
	if len(res) == 0 {
		return 0, &MemoryAccessError{Operation: "alloc", Length: size, Err: errors.New("allocator returned no result")}
	}
	ptr := api.DecodeU32(res[0])
	if ptr == 0 {
		return 0, &MemoryAccessError{Operation: "alloc", Length: size, Err: errors.New("allocator returned null")}
	}
	h.ptrs = append(h.ptrs, ptr)

	if !h.mem.WriteBytes(ptr, make([]byte, size)) {
		return 0, &MemoryAccessError{Operation: "alloc", Address: ptr, Length: size, Err: errors.New("allocation out of bounds")}
	}
	return ptr, nil
}

// write allocates a buffer for data and copies data into it.
func (h *heap) write(ctx context.Context, data []byte) (uint32, error) {
	if uint64(len(data)) > math.MaxUint32 {
		return 0, &MemoryAccessError{Operation: "write", Length: math.MaxUint32, Err: errors.New("argument exceeds 32-bit address space")}
	}
	ptr, err := h.alloc(ctx, uint32(len(data)))
	if err != nil {
		return 0, err
	}
	if !h.mem.WriteBytes(ptr, data) {
		return 0, &MemoryAccessError{Operation: "write", Address: ptr, Length: uint32(len(data)), Err: errors.New("out of bounds")}
	}
	return ptr, nil
}

// adopt takes ownership of a buffer the guest allocated for an output.
func (h *heap) adopt(ptr uint32) {
	h.ptrs = append(h.ptrs, ptr)
}

// release frees every tracked pointer, newest first.
func (h *heap) release(ctx context.Context) error {
	var errs []error
	for i := len(h.ptrs) - 1; i >= 0; i-- {
		if _, err := h.free.Call(ctx, api.EncodeU32(h.ptrs[i])); err != nil {
			errs = append(errs, &MemoryAccessError{Operation: "free", Address: h.ptrs[i], Err: err})
		}
	}
	h.ptrs = h.ptrs[:0]
	return errors.Join(errs...)
}
