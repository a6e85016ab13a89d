package bundle

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/woxQAQ/cryptobind/internal/config"
	"github.com/woxQAQ/cryptobind/internal/wasm"
	"github.com/woxQAQ/cryptobind/pkg/dispatch"
)

// Manager manages bundle lifecycle.
type Manager struct {
	cfg         *config.Config
	runtime     *wasm.Runtime
	loader      *Loader
	registry    *Registry
	instanceMgr *wasm.InstanceManager
	base        *zap.Logger
	logger      *zap.Logger

	mu     sync.RWMutex
	loaded bool
}

// Session is one live instance of a bundle with a dispatcher over it.
// Like the instance, a session must not be used from several goroutines at
// once.
type Session struct {
	Bundle     *Bundle
	Instance   *wasm.Instance
	Dispatcher *dispatch.Dispatcher
}

// Close releases the instance.
func (s *Session) Close(ctx context.Context) error {
	return s.Instance.Close(ctx)
}

// NewManager creates a new bundle manager.
func NewManager(
	cfg *config.Config,
	runtime *wasm.Runtime,
	hostFuncs *wasm.HostFunctions,
	logger *zap.Logger,
) *Manager {
	return &Manager{
		cfg:         cfg,
		runtime:     runtime,
		loader:      NewLoader(runtime, logger),
		registry:    NewRegistry(logger),
		instanceMgr: wasm.NewInstanceManager(runtime, hostFuncs, logger),
		base:        logger,
		logger:      logger.With(zap.String("component", "bundle-manager")),
	}
}

// LoadAll discovers and loads all bundles from the configured paths.
func (m *Manager) LoadAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loaded {
		return fmt.Errorf("bundles already loaded")
	}

	m.logger.Info("Loading bundles",
		zap.Strings("paths", m.cfg.BundlePaths),
	)

	bundles, err := m.loader.DiscoverBundles(ctx, m.cfg.BundlePaths)
	if err != nil {
		var none *NoBundlesFoundError
		if errors.As(err, &none) {
			m.logger.Warn("No bundles found in configured paths",
				zap.Strings("paths", m.cfg.BundlePaths),
			)
			m.loaded = true
			return nil
		}
		return err
	}

	for _, b := range bundles {
		if err := m.registry.Register(b); err != nil {
			m.logger.Error("Failed to register bundle",
				zap.String("name", b.Name()),
				zap.Error(err),
			)
			continue
		}
	}

	m.loaded = true

	m.logger.Info("Bundles loaded successfully",
		zap.Int("count", m.registry.Count()),
	)

	return nil
}

// LoadDir loads and registers the bundle in dir, outside the configured paths.
func (m *Manager) LoadDir(ctx context.Context, dir string) (*Bundle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, err := m.loader.LoadBundle(ctx, dir)
	if err != nil {
		return nil, err
	}
	if err := m.registry.Register(b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBundle retrieves a bundle by name.
func (m *Manager) GetBundle(name string) (*Bundle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.registry.Get(name)
	if !ok {
		return nil, &BundleNotFoundError{BundleName: name}
	}

	return b, nil
}

// FindBundleForExport finds a bundle whose module provides an export.
func (m *Manager) FindBundleForExport(export string) (*Bundle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bundles := m.registry.LookupByExport(export)
	if len(bundles) == 0 {
		return nil, fmt.Errorf("no bundle provides export '%s'", export)
	}

	return bundles[0], nil
}

// Open instantiates a bundle and returns a session with a dispatcher over
// the new instance.
func (m *Manager) Open(ctx context.Context, name string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.registry.Get(name)
	if !ok {
		return nil, &BundleNotFoundError{BundleName: name}
	}

	instance, err := m.instanceMgr.Instantiate(ctx, &wasm.InstanceConfig{
		ModuleName: b.Compiled.Name,
	})
	if err != nil {
		return nil, &BundleLoadError{BundleName: name, Err: err}
	}

	return &Session{
		Bundle:     b,
		Instance:   instance,
		Dispatcher: dispatch.New(instance, m.base.With(zap.String("bundle", name))),
	}, nil
}

// Shutdown closes every instance and the runtime.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.logger.Info("Shutting down bundle manager")

	if err := m.runtime.Close(ctx); err != nil {
		m.logger.Error("Failed to shutdown runtime", zap.Error(err))
		return err
	}

	m.logger.Info("Bundle manager shutdown complete")
	return nil
}

// Registry returns the bundle registry.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// IsLoaded returns whether LoadAll has run.
func (m *Manager) IsLoaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loaded
}
