package bundle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/woxQAQ/cryptobind/internal/schema"
	"github.com/woxQAQ/cryptobind/internal/wasm"
)

// Loader handles loading bundles from disk.
type Loader struct {
	runtime      *wasm.Runtime
	moduleLoader *wasm.ModuleLoader
	logger       *zap.Logger
}

// NewLoader creates a new bundle loader.
func NewLoader(runtime *wasm.Runtime, logger *zap.Logger) *Loader {
	return &Loader{
		runtime:      runtime,
		moduleLoader: wasm.NewModuleLoader(runtime, logger),
		logger:       logger.With(zap.String("component", "bundle-loader")),
	}
}

// LoadBundle loads a single bundle from a directory: manifest, schema and
// compiled module. Schema functions the module does not export are recorded
// in Bundle.Missing and logged; they fail only when called.
func (l *Loader) LoadBundle(ctx context.Context, dir string) (*Bundle, error) {
	l.logger.Debug("Loading bundle", zap.String("dir", dir))

	manifest, err := ParseManifest(dir)
	if err != nil {
		return nil, err
	}

	l.logger.Info("Loading bundle",
		zap.String("name", manifest.Name),
		zap.String("version", manifest.Version),
	)

	specs, err := schema.Load(manifest.SchemaPath())
	if err != nil {
		return nil, &BundleLoadError{BundleName: manifest.Name, Err: err}
	}

	compiled, err := l.moduleLoader.LoadModuleFromFile(ctx, manifest.WasmPath())
	if err != nil {
		return nil, &BundleLoadError{BundleName: manifest.Name, Err: err}
	}

	b := &Bundle{
		Manifest: manifest,
		Compiled: compiled,
		Schema:   specs,
		LoadedAt: time.Now(),
	}
	b.Missing = compiled.MissingExports(b.Exports())

	if len(b.Missing) > 0 {
		l.logger.Warn("Schema declares functions the module does not export",
			zap.String("name", manifest.Name),
			zap.Strings("missing", b.Missing),
		)
	}

	l.logger.Info("Bundle loaded successfully",
		zap.String("name", manifest.Name),
		zap.Int("functions", len(specs)),
		zap.Int64("size_bytes", compiled.SizeBytes),
	)

	return b, nil
}

// DiscoverBundles scans directories for bundles. Subdirectories that fail to
// load are logged and skipped.
func (l *Loader) DiscoverBundles(ctx context.Context, paths []string) ([]*Bundle, error) {
	var bundles []*Bundle
	var errs []error

	for _, basePath := range paths {
		l.logger.Debug("Scanning bundle directory", zap.String("path", basePath))

		entries, err := os.ReadDir(basePath)
		if err != nil {
			if os.IsNotExist(err) {
				l.logger.Warn("Bundle path does not exist", zap.String("path", basePath))
				continue
			}
			return nil, fmt.Errorf("failed to read directory '%s': %w", basePath, err)
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}

			bundleDir := filepath.Join(basePath, entry.Name())

			b, err := l.LoadBundle(ctx, bundleDir)
			if err != nil {
				l.logger.Error("Failed to load bundle",
					zap.String("dir", bundleDir),
					zap.Error(err),
				)
				errs = append(errs, err)
				continue
			}

			bundles = append(bundles, b)
		}
	}

	if len(bundles) > 0 && len(errs) > 0 {
		l.logger.Warn("Some bundles failed to load",
			zap.Int("loaded", len(bundles)),
			zap.Int("failed", len(errs)),
		)
	}

	if len(bundles) == 0 {
		return nil, &NoBundlesFoundError{Paths: paths}
	}

	return bundles, nil
}
