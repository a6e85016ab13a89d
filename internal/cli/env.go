package cli

import (
	"context"
	"errors"

	"github.com/woxQAQ/cryptobind/internal/bundle"
	"github.com/woxQAQ/cryptobind/internal/store"
	"github.com/woxQAQ/cryptobind/internal/wasm"
)

// environment is the runtime, data store and bundle manager a command
// works against.
type environment struct {
	data    store.Store
	manager *bundle.Manager
}

func openEnvironment(ctx context.Context, opts *RootOptions) (*environment, error) {
	if err := opts.prepare(); err != nil {
		return nil, err
	}
	cfg := opts.Config

	runtime, err := wasm.NewRuntime(ctx, opts.Logger, cfg.Wasm.Runtime())
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "create runtime", err)
	}

	data, err := store.Open(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		_ = runtime.Close(ctx)
		return nil, WrapExitError(ExitCommandError, "open data store", err)
	}

	hostFuncs := wasm.NewHostFunctions(opts.Logger, data, cfg.Wasm.Threads)
	return &environment{
		data:    data,
		manager: bundle.NewManager(cfg, runtime, hostFuncs, opts.Logger),
	}, nil
}

func (e *environment) Close(ctx context.Context) error {
	return errors.Join(e.manager.Shutdown(ctx), e.data.Close())
}
