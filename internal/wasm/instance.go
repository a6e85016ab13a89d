package wasm

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/woxQAQ/cryptobind/pkg/abi"
	"github.com/woxQAQ/cryptobind/pkg/dispatch"
)

// InstanceManager creates and manages module instances.
type InstanceManager struct {
	runtime   *Runtime
	logger    *zap.Logger
	hostFuncs *HostFunctions
}

// NewInstanceManager creates a new instance manager.
func NewInstanceManager(runtime *Runtime, hostFuncs *HostFunctions, logger *zap.Logger) *InstanceManager {
	return &InstanceManager{
		runtime:   runtime,
		hostFuncs: hostFuncs,
		logger:    logger.With(zap.String("component", "wasm-instance")),
	}
}

// InstanceConfig holds configuration for creating instances.
type InstanceConfig struct {
	// Module name to instantiate.
	ModuleName string

	// Instance ID (if empty, a UUIDv7 is generated).
	InstanceID string
}

// Instance is an instantiated native module. It implements dispatch.Module:
// each export is called with the pointer convention described on Lookup.
//
// An Instance is not safe for concurrent calls; callers serialize access.
type Instance struct {
	module api.Module
	mem    *Memory
	malloc api.Function
	free   api.Function

	runtime *Runtime
	logger  *zap.Logger

	// Instance metadata.
	ID        string
	Name      string
	CreatedAt int64

	// Exported functions, resolved once.
	exports map[string]api.Function

	closeOnce sync.Once
	closeErr  error
}

// Instantiate creates a new instance from a compiled module.
// The env and wasi host modules are registered on first use. Start
// functions are skipped; the configured reactor initializer runs instead.
func (m *InstanceManager) Instantiate(ctx context.Context, config *InstanceConfig) (*Instance, error) {
	compiled, ok := m.runtime.GetCompiledModule(config.ModuleName)
	if !ok {
		return nil, &ModuleNotFoundError{ModuleName: config.ModuleName}
	}

	instanceID := config.InstanceID
	if instanceID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate instance id: %w", err)
		}
		instanceID = id.String()
	}

	if err := m.runtime.instantiateHostModules(ctx, m.hostFuncs); err != nil {
		return nil, err
	}
	if err := m.runtime.reserveInstance(); err != nil {
		return nil, err
	}

	m.logger.Info("Instantiating Wasm module",
		zap.String("module", config.ModuleName),
		zap.String("instance_id", instanceID),
	)

	inst, err := m.instantiate(ctx, compiled, instanceID)
	if err != nil {
		m.runtime.releaseInstance()
		return nil, err
	}

	m.runtime.storeInstance(inst)

	m.logger.Info("Module instantiated successfully",
		zap.String("instance_id", instanceID),
		zap.Int("exported_functions", len(inst.exports)),
	)

	return inst, nil
}

func (m *InstanceManager) instantiate(ctx context.Context, compiled *CompiledModule, instanceID string) (*Instance, error) {
	cfg := m.runtime.config
	fail := func(err error) (*Instance, error) {
		return nil, &InstantiationError{ModuleName: compiled.Name, InstanceID: instanceID, Err: err}
	}

	moduleConfig := wazero.NewModuleConfig().
		WithName(instanceID).
		WithStartFunctions().
		WithRandSource(rand.Reader).
		WithSysWalltime().
		WithSysNanotime()

	module, err := m.runtime.runtime.InstantiateModule(ctx, compiled.Module, moduleConfig)
	if err != nil {
		return fail(err)
	}

	closeWith := func(err error) (*Instance, error) {
		_ = module.Close(ctx)
		return fail(err)
	}

	if module.Memory() == nil {
		return closeWith(&MissingExportError{ModuleName: compiled.Name, Export: "memory"})
	}
	malloc := module.ExportedFunction(cfg.AllocExport)
	if malloc == nil {
		return closeWith(&MissingExportError{ModuleName: compiled.Name, Export: cfg.AllocExport})
	}
	free := module.ExportedFunction(cfg.FreeExport)
	if free == nil {
		return closeWith(&MissingExportError{ModuleName: compiled.Name, Export: cfg.FreeExport})
	}

	if cfg.InitExport != "" {
		if initFn := module.ExportedFunction(cfg.InitExport); initFn != nil {
			if _, err := initFn.Call(ctx); err != nil {
				return closeWith(fmt.Errorf("%s: %w", cfg.InitExport, err))
			}
		}
	}

	exports := make(map[string]api.Function)
	for name := range compiled.Module.ExportedFunctions() {
		if fn := module.ExportedFunction(name); fn != nil {
			exports[name] = fn
		}
	}

	return &Instance{
		module:    module,
		mem:       NewMemory(module),
		malloc:    malloc,
		free:      free,
		runtime:   m.runtime,
		logger:    m.logger.With(zap.String("instance_id", instanceID)),
		ID:        instanceID,
		Name:      compiled.Name,
		CreatedAt: time.Now().Unix(),
		exports:   exports,
	}, nil
}

// Memory returns the instance's memory helper.
func (i *Instance) Memory() *Memory {
	return i.mem
}

// Exports returns the names of the exported functions, sorted.
func (i *Instance) Exports() []string {
	names := make([]string, 0, len(i.exports))
	for name := range i.exports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup implements dispatch.Module.
//
// The returned export copies every input into a fresh guest allocation and
// passes its address. Each fixed-width output gets a zeroed slot of its width.
// Each variable-size output gets a 4-byte slot that the guest fills with the
// little-endian address of a heap buffer holding the encoded value; the host
// measures it with abi.Span, copies it out and frees it. Every allocation is
// released before Call returns.
func (i *Instance) Lookup(name string) (dispatch.Export, bool) {
	fn, ok := i.exports[name]
	if !ok {
		return nil, false
	}
	return &export{inst: i, name: name, fn: fn}, true
}

// Close closes the instance and releases resources.
func (i *Instance) Close(ctx context.Context) error {
	i.closeOnce.Do(func() {
		i.closeErr = i.module.Close(ctx)
		i.runtime.deleteInstance(i.ID)
	})
	return i.closeErr
}

type export struct {
	inst *Instance
	name string
	fn   api.Function
}

func (e *export) checkSignature(params int) error {
	types := e.fn.Definition().ParamTypes()
	if len(types) != params {
		return &SignatureError{FunctionName: e.name, Want: params, Got: len(types)}
	}
	for idx, t := range types {
		if t != api.ValueTypeI32 {
			return &SignatureError{
				FunctionName: e.name,
				Reason:       fmt.Sprintf("parameter %d is %s, want i32", idx, api.ValueTypeName(t)),
			}
		}
	}
	return nil
}

// Call implements dispatch.Export.
func (e *export) Call(ctx context.Context, env *dispatch.CallEnvelope) ([]byte, error) {
	if err := e.checkSignature(len(env.Inputs) + len(env.Outputs)); err != nil {
		return nil, err
	}

	timeout := e.inst.runtime.config.CallTimeout
	callCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	h := newHeap(e.inst.mem, e.inst.malloc, e.inst.free)
	defer func() {
		if relErr := h.release(context.WithoutCancel(ctx)); relErr != nil {
			e.inst.logger.Warn("Failed to release call buffers",
				zap.String("export", e.name),
				zap.Error(relErr),
			)
		}
	}()

	params := make([]uint64, 0, len(env.Inputs)+len(env.Outputs))
	for _, in := range env.Inputs {
		ptr, err := h.write(callCtx, in)
		if err != nil {
			return nil, err
		}
		params = append(params, api.EncodeU32(ptr))
	}

	slots := make([]uint32, len(env.Outputs))
	for idx, k := range env.Outputs {
		size := uint32(k.Width())
		if size == 0 {
			size = 4
		}
		ptr, err := h.alloc(callCtx, size)
		if err != nil {
			return nil, err
		}
		slots[idx] = ptr
		params = append(params, api.EncodeU32(ptr))
	}

	if _, err := e.fn.Call(callCtx, params...); err != nil {
		if timeout > 0 && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return nil, &TimeoutError{FunctionName: e.name, Duration: timeout}
		}
		return nil, err
	}

	var out []byte
	for idx, k := range env.Outputs {
		b, err := e.readOutput(h, slots[idx], idx, k)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

func (e *export) readOutput(h *heap, slot uint32, idx int, k abi.Kind) ([]byte, error) {
	mem := e.inst.mem
	if w := uint32(k.Width()); w > 0 {
		b, ok := mem.ReadBytes(slot, w)
		if !ok {
			return nil, &MemoryAccessError{Operation: "read", Address: slot, Length: w, Err: errors.New("out of bounds")}
		}
		return b, nil
	}

	ptr, ok := mem.ReadUint32(slot)
	if !ok {
		return nil, &MemoryAccessError{Operation: "read", Address: slot, Length: 4, Err: errors.New("out of bounds")}
	}
	if ptr == 0 {
		return nil, &NullOutputError{FunctionName: e.name, Index: idx}
	}
	h.adopt(ptr)

	// A guest-written length that runs past memory is malformed output, not a host fault.
	n, err := abi.Span(k, mem.Peeker(ptr))
	if err != nil {
		return nil, &dispatch.MalformedOutputError{Export: e.name, Index: idx, Kind: k, Err: err}
	}
	b, ok := mem.ReadBytes(ptr, n)
	if !ok {
		have := 0
		if size := mem.Size(); size > ptr {
			have = int(size - ptr)
		}
		return nil, &dispatch.MalformedOutputError{
			Export: e.name,
			Index:  idx,
			Kind:   k,
			Err:    &abi.OverrunError{Kind: k, Offset: 0, Length: n, Have: have},
		}
	}
	return b, nil
}
