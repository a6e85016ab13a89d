package wasm

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/woxQAQ/cryptobind/internal/store"
)

// Host module names the guest imports from.
const (
	EnvModule  = "env"
	WasiModule = "wasi"
)

// HostFunctions implements the env and wasi imports of a native module.
type HostFunctions struct {
	logger  *zap.Logger
	store   store.Store
	threads uint32
}

// NewHostFunctions creates the host imports. data backs get_data and
// set_data; a nil store keeps data in memory. threads is what
// env_hardware_concurrency reports; zero means one.
func NewHostFunctions(logger *zap.Logger, data store.Store, threads uint32) *HostFunctions {
	if data == nil {
		data = store.NewMemoryStore()
	}
	if threads == 0 {
		threads = 1
	}
	return &HostFunctions{
		logger:  logger.With(zap.String("component", "wasm-host")),
		store:   data,
		threads: threads,
	}
}

// instantiate registers the env and wasi host modules on r.
func (h *HostFunctions) instantiate(ctx context.Context, r wazero.Runtime) error {
	env := r.NewHostModuleBuilder(EnvModule)

	env.NewFunctionBuilder().
		WithFunc(h.logstr).
		WithParameterNames("addr").
		Export("logstr")

	env.NewFunctionBuilder().
		WithFunc(h.hardwareConcurrency).
		Export("env_hardware_concurrency")

	env.NewFunctionBuilder().
		WithFunc(h.getData).
		WithParameterNames("key_addr", "out_buf_addr").
		Export("get_data")

	env.NewFunctionBuilder().
		WithFunc(h.setData).
		WithParameterNames("key_addr", "data_addr", "length").
		Export("set_data")

	if _, err := env.Instantiate(ctx); err != nil {
		return &HostFunctionError{FunctionName: EnvModule, Err: err}
	}

	wasi := r.NewHostModuleBuilder(WasiModule)
	wasi.NewFunctionBuilder().
		WithFunc(h.threadSpawn).
		WithParameterNames("start_arg").
		Export("thread-spawn")

	if _, err := wasi.Instantiate(ctx); err != nil {
		return &HostFunctionError{FunctionName: WasiModule, Err: err}
	}
	return nil
}

// logstr logs a null-terminated string written by the guest.
// Signature: logstr(addr)
func (h *HostFunctions) logstr(ctx context.Context, mod api.Module, addr uint32) {
	msg, ok := NewMemory(mod).ReadCString(addr)
	if !ok {
		h.logger.Error("Failed to read log string from Wasm memory",
			zap.Uint32("addr", addr),
		)
		return
	}
	h.logger.Debug(msg, zap.String("module", mod.Name()))
}

// hardwareConcurrency reports the number of worker threads available.
// Signature: env_hardware_concurrency() -> i32
func (h *HostFunctions) hardwareConcurrency(ctx context.Context) uint32 {
	return h.threads
}

// getData copies the value stored under the key at keyAddr to outBufAddr.
// A missing key leaves the buffer untouched.
// Signature: get_data(key_addr, out_buf_addr)
func (h *HostFunctions) getData(ctx context.Context, mod api.Module, keyAddr, outBufAddr uint32) {
	mem := NewMemory(mod)
	key, ok := mem.ReadCString(keyAddr)
	if !ok {
		h.logger.Error("Failed to read data key from Wasm memory", zap.Uint32("addr", keyAddr))
		return
	}

	data, found, err := h.store.Get(ctx, key)
	if err != nil {
		h.logger.Error("get_data failed", zap.String("key", key), zap.Error(err))
		return
	}
	if !found {
		h.logger.Debug("get_data miss", zap.String("key", key))
		return
	}
	if !mem.WriteBytes(outBufAddr, data) {
		h.logger.Error("get_data target out of bounds",
			zap.String("key", key),
			zap.Uint32("addr", outBufAddr),
			zap.Int("length", len(data)),
		)
	}
}

// setData stores a copy of length bytes at dataAddr under the key at keyAddr.
// Signature: set_data(key_addr, data_addr, length)
func (h *HostFunctions) setData(ctx context.Context, mod api.Module, keyAddr, dataAddr, length uint32) {
	mem := NewMemory(mod)
	key, ok := mem.ReadCString(keyAddr)
	if !ok {
		h.logger.Error("Failed to read data key from Wasm memory", zap.Uint32("addr", keyAddr))
		return
	}
	data, ok := mem.ReadBytes(dataAddr, length)
	if !ok {
		h.logger.Error("set_data source out of bounds",
			zap.String("key", key),
			zap.Uint32("addr", dataAddr),
			zap.Uint32("length", length),
		)
		return
	}
	if err := h.store.Set(ctx, key, data); err != nil {
		h.logger.Error("set_data failed", zap.String("key", key), zap.Error(err))
	}
}

// threadSpawn refuses to start threads; instances run single-threaded.
// Signature: thread-spawn(start_arg) -> i32
func (h *HostFunctions) threadSpawn(ctx context.Context, startArg uint32) int32 {
	h.logger.Warn("thread-spawn requested but threads are not supported", zap.Uint32("start_arg", startArg))
	return -1
}
