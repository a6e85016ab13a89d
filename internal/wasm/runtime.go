package wasm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"
)

// maxMemoryPages is the 4 GiB ceiling of a 32-bit linear memory.
const maxMemoryPages = 65536

// Runtime manages the wazero runtime lifecycle.
// One Runtime serves every native module the process loads.
type Runtime struct {
	// wazero runtime (singleton)
	runtime wazero.Runtime

	// Persistent compilation cache, nil when CacheDir is empty.
	cache wazero.CompilationCache

	// Compiled module cache (key: module name/path -> value: compiled module)
	modules sync.Map // map[string]*CompiledModule

	// Live instances (key: instance ID -> value: *Instance)
	instances sync.Map
	live      atomic.Int32

	// Host modules are shared by every instance and instantiated once.
	hostMu    sync.Mutex
	hostFuncs *HostFunctions

	config *RuntimeConfig
	logger *zap.Logger

	closeOnce sync.Once
	closed    chan struct{}
}

// RuntimeConfig holds runtime configuration.
type RuntimeConfig struct {
	// Memory limit for Wasm modules in 64 KiB pages.
	// Default: 16384 pages = 1 GiB, enough for proving key material.
	MemoryPages uint32

	// Compilation cache directory (for persistent caching).
	// If empty, compiled code lives in memory only.
	CacheDir string

	// Maximum number of live instances. Zero means unlimited.
	MaxInstances int

	// Value reported to guests by env_hardware_concurrency.
	Threads uint32

	// Reactor initializer called once after instantiation when exported.
	InitExport string

	// Guest allocator exports used to pass arguments by pointer.
	AllocExport string
	FreeExport  string

	// Upper bound on a single export call. Zero disables the timeout.
	CallTimeout time.Duration
}

// CompiledModule wraps a wazero.CompiledModule with metadata.
type CompiledModule struct {
	// wazero compiled module
	Module wazero.CompiledModule

	// Module metadata
	Name      string
	Source    string // File path or identifier
	SizeBytes int64

	// Compilation timestamp
	CompiledAt int64
}

// NewRuntime creates and initializes a new wazero runtime.
// This should be called once during application startup.
func NewRuntime(ctx context.Context, logger *zap.Logger, config *RuntimeConfig) (*Runtime, error) {
	if config == nil {
		config = DefaultRuntimeConfig()
	}
	if config.MemoryPages == 0 || config.MemoryPages > maxMemoryPages {
		return nil, fmt.Errorf("memory pages must be in 1..%d, got %d", maxMemoryPages, config.MemoryPages)
	}

	rc := wazero.NewRuntimeConfig().
		WithMemoryLimitPages(config.MemoryPages).
		WithCloseOnContextDone(config.CallTimeout > 0)

	var cache wazero.CompilationCache
	if config.CacheDir != "" {
		c, err := wazero.NewCompilationCacheWithDir(config.CacheDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open compilation cache %s: %w", config.CacheDir, err)
		}
		cache = c
		rc = rc.WithCompilationCache(cache)
	}

	runtime := &Runtime{
		runtime: wazero.NewRuntimeWithConfig(ctx, rc),
		cache:   cache,
		config:  config,
		logger:  logger.With(zap.String("component", "wasm-runtime")),
		closed:  make(chan struct{}),
	}

	runtime.logger.Info("Wasm runtime initialized",
		zap.Uint32("memory_pages", config.MemoryPages),
		zap.String("cache_dir", config.CacheDir),
		zap.Int("max_instances", config.MaxInstances),
		zap.Uint32("threads", config.Threads),
	)

	return runtime, nil
}

// DefaultRuntimeConfig returns sensible defaults.
func DefaultRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		MemoryPages:  16384,
		CacheDir:     "",
		MaxInstances: 16,
		Threads:      1,
		InitExport:   "_initialize",
		AllocExport:  "bbmalloc",
		FreeExport:   "bbfree",
	}
}

// Config returns the configuration the runtime was created with.
func (r *Runtime) Config() *RuntimeConfig {
	return r.config
}

// instantiateHostModules registers the env and wasi host modules plus WASI
// preview1. The first caller binds h; later callers must pass the same h.
func (r *Runtime) instantiateHostModules(ctx context.Context, h *HostFunctions) error {
	r.hostMu.Lock()
	defer r.hostMu.Unlock()

	if r.hostFuncs != nil {
		if r.hostFuncs != h {
			return &HostFunctionError{FunctionName: "env", Err: errors.New("runtime is bound to other host functions")}
		}
		return nil
	}

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, r.runtime); err != nil {
		return &HostFunctionError{FunctionName: wasi_snapshot_preview1.ModuleName, Err: err}
	}
	if err := h.instantiate(ctx, r.runtime); err != nil {
		return err
	}

	r.hostFuncs = h
	r.logger.Info("Host modules instantiated")
	return nil
}

// Close gracefully shuts down the runtime.
// Safe to call multiple times (idempotent).
func (r *Runtime) Close(ctx context.Context) error {
	var err error
	r.closeOnce.Do(func() {
		r.logger.Info("Shutting down Wasm runtime")

		// Close all live instances first
		r.instances.Range(func(key, value any) bool {
			if inst, ok := value.(*Instance); ok {
				if closeErr := inst.Close(ctx); closeErr != nil {
					r.logger.Warn("Failed to close instance",
						zap.String("instance_id", key.(string)),
						zap.Error(closeErr),
					)
				}
			}
			return true
		})

		// Close the runtime (closes compiled modules)
		err = r.runtime.Close(ctx)
		if r.cache != nil {
			err = errors.Join(err, r.cache.Close(ctx))
		}

		close(r.closed)
		r.logger.Info("Wasm runtime shutdown complete")
	})

	return err
}

// GetCompiledModule retrieves a compiled module from cache.
func (r *Runtime) GetCompiledModule(name string) (*CompiledModule, bool) {
	if val, ok := r.modules.Load(name); ok {
		if mod, ok := val.(*CompiledModule); ok {
			return mod, true
		}
	}
	return nil, false
}

// StoreCompiledModule stores a compiled module in cache.
func (r *Runtime) StoreCompiledModule(module *CompiledModule) {
	r.modules.Store(module.Name, module)
}

// GetInstance retrieves a live instance.
func (r *Runtime) GetInstance(instanceID string) (*Instance, bool) {
	if val, ok := r.instances.Load(instanceID); ok {
		return val.(*Instance), true
	}
	return nil, false
}

// LiveInstances returns the number of instances not yet closed.
func (r *Runtime) LiveInstances() int {
	return int(r.live.Load())
}

// reserveInstance claims a slot under MaxInstances.
func (r *Runtime) reserveInstance() error {
	limit := r.config.MaxInstances
	for {
		n := r.live.Load()
		if limit > 0 && int(n) >= limit {
			return &InstanceLimitError{Limit: limit}
		}
		if r.live.CompareAndSwap(n, n+1) {
			return nil
		}
	}
}

func (r *Runtime) releaseInstance() {
	r.live.Add(-1)
}

func (r *Runtime) storeInstance(inst *Instance) {
	r.instances.Store(inst.ID, inst)
}

func (r *Runtime) deleteInstance(instanceID string) {
	if _, ok := r.instances.LoadAndDelete(instanceID); ok {
		r.releaseInstance()
	}
}

// IsClosed returns whether the runtime has been closed.
func (r *Runtime) IsClosed() bool {
	select {
	case <-r.closed:
		return true
	default:
		return false
	}
}
