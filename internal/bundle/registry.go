package bundle

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Registry indexes loaded bundles by name and by export.
type Registry struct {
	sync.RWMutex
	bundles  map[string]*Bundle   // name -> bundle
	byExport map[string][]*Bundle // export -> bundles providing it
	logger   *zap.Logger
}

// NewRegistry creates a new bundle registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		bundles:  make(map[string]*Bundle),
		byExport: make(map[string][]*Bundle),
		logger:   logger.With(zap.String("component", "bundle-registry")),
	}
}

// Register adds a bundle to the registry. Only exports the module actually
// provides are indexed.
func (r *Registry) Register(b *Bundle) error {
	r.Lock()
	defer r.Unlock()

	name := b.Name()
	if _, exists := r.bundles[name]; exists {
		return &BundleAlreadyRegisteredError{BundleName: name}
	}

	r.bundles[name] = b

	indexed := 0
	for _, export := range b.Exports() {
		if !b.Provides(export) {
			continue
		}
		r.byExport[export] = append(r.byExport[export], b)
		indexed++
	}

	r.logger.Info("Bundle registered",
		zap.String("name", name),
		zap.Int("exports", indexed),
	)

	return nil
}

// Get retrieves a bundle by name.
func (r *Registry) Get(name string) (*Bundle, bool) {
	r.RLock()
	defer r.RUnlock()

	b, ok := r.bundles[name]
	return b, ok
}

// LookupByExport finds the bundles that provide an export, in registration order.
func (r *Registry) LookupByExport(export string) []*Bundle {
	r.RLock()
	defer r.RUnlock()

	bundles, ok := r.byExport[export]
	if !ok || len(bundles) == 0 {
		return []*Bundle{}
	}
	result := make([]*Bundle, len(bundles))
	copy(result, bundles)
	return result
}

// List returns all registered bundles sorted by name.
func (r *Registry) List() []*Bundle {
	r.RLock()
	defer r.RUnlock()

	result := make([]*Bundle, 0, len(r.bundles))
	for _, b := range r.bundles {
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result
}

// Unregister removes a bundle from the registry.
func (r *Registry) Unregister(name string) {
	r.Lock()
	defer r.Unlock()

	b, ok := r.bundles[name]
	if !ok {
		return
	}

	for _, export := range b.Exports() {
		bundles := r.byExport[export]
		for i, other := range bundles {
			if other == b {
				bundles = append(bundles[:i], bundles[i+1:]...)
				break
			}
		}
		if len(bundles) == 0 {
			delete(r.byExport, export)
		} else {
			r.byExport[export] = bundles
		}
	}

	delete(r.bundles, name)

	r.logger.Info("Bundle unregistered", zap.String("name", name))
}

// Count returns the number of registered bundles.
func (r *Registry) Count() int {
	r.RLock()
	defer r.RUnlock()

	return len(r.bundles)
}
