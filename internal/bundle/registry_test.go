package bundle

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func loadEcho(t *testing.T, name string) *Bundle {
	t.Helper()
	logger := zap.NewNop()
	loader := NewLoader(newTestRuntime(t, logger), logger)
	dir := writeBundle(t, t.TempDir(), name, name, nil)

	b, err := loader.LoadBundle(context.Background(), dir)
	if err != nil {
		t.Fatalf("LoadBundle() failed: %v", err)
	}
	return b
}

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry(zap.NewNop())

	if err := registry.Register(loadEcho(t, "echo")); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	if registry.Count() != 1 {
		t.Errorf("expected count 1, got %d", registry.Count())
	}

	b, ok := registry.Get("echo")
	if !ok || b.Name() != "echo" {
		t.Error("Get() should return the registered bundle")
	}
	if _, ok := registry.Get("other"); ok {
		t.Error("Get() should miss unknown names")
	}
}

func TestRegistry_Duplicate(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	b := loadEcho(t, "echo")

	if err := registry.Register(b); err != nil {
		t.Fatal(err)
	}

	err := registry.Register(b)
	var dup *BundleAlreadyRegisteredError
	if !errors.As(err, &dup) {
		t.Fatalf("expected BundleAlreadyRegisteredError, got %v", err)
	}
	if dup.BundleName != "echo" {
		t.Errorf("unexpected bundle name %s", dup.BundleName)
	}
}

func TestRegistry_LookupByExport(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	first := loadEcho(t, "first")
	second := loadEcho(t, "second")
	registry.Register(first)
	registry.Register(second)

	got := registry.LookupByExport("copy32")
	if len(got) != 2 || got[0] != first || got[1] != second {
		t.Errorf("unexpected bundles for copy32: %v", got)
	}

	if got := registry.LookupByExport("echo_fields"); len(got) != 0 {
		t.Error("exports missing from the module should not be indexed")
	}
	if got := registry.LookupByExport("blake2s"); got == nil || len(got) != 0 {
		t.Error("unknown exports should return an empty slice")
	}
}

func TestRegistry_List(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	registry.Register(loadEcho(t, "zeta"))
	registry.Register(loadEcho(t, "alpha"))

	list := registry.List()
	if len(list) != 2 || list[0].Name() != "alpha" || list[1].Name() != "zeta" {
		t.Errorf("List() not sorted by name")
	}
}

func TestRegistry_Unregister(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	first := loadEcho(t, "first")
	second := loadEcho(t, "second")
	registry.Register(first)
	registry.Register(second)

	registry.Unregister("first")
	registry.Unregister("unknown")

	if registry.Count() != 1 {
		t.Errorf("expected count 1, got %d", registry.Count())
	}
	got := registry.LookupByExport("copy32")
	if len(got) != 1 || got[0] != second {
		t.Errorf("export index not updated: %v", got)
	}

	registry.Unregister("second")
	if got := registry.LookupByExport("copy32"); len(got) != 0 {
		t.Errorf("export index should be empty, got %v", got)
	}
}
