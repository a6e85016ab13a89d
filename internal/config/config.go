// Package config loads cryptobind settings from defaults, an optional file
// and CRYPTOBIND_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/woxQAQ/cryptobind/internal/store"
	"github.com/woxQAQ/cryptobind/internal/wasm"
)

// EnvPrefix prefixes every environment override, e.g. CRYPTOBIND_WASM_THREADS.
const EnvPrefix = "CRYPTOBIND"

type Config struct {
	LogLevel    string          `mapstructure:"log_level"`
	BundlePaths []string        `mapstructure:"bundle_paths"`
	Wasm        WasmConfig      `mapstructure:"wasm"`
	Generator   GeneratorConfig `mapstructure:"generator"`
	Store       StoreConfig     `mapstructure:"store"`
}

// WasmConfig holds Wasm runtime configuration.
type WasmConfig struct {
	// Memory limit per module (in pages, 64KB each).
	MemoryPages uint32 `mapstructure:"memory_pages"`
	// Compilation cache directory. Empty keeps compiled code in memory.
	CacheDir string `mapstructure:"cache_dir"`
	// Maximum live instances.
	MaxInstances int `mapstructure:"max_instances"`
	// Value reported by env_hardware_concurrency.
	Threads uint32 `mapstructure:"threads"`
	// Reactor initializer and allocator export names.
	InitExport  string `mapstructure:"init_export"`
	AllocExport string `mapstructure:"alloc_export"`
	FreeExport  string `mapstructure:"free_export"`
	// Per-call timeout; zero disables it.
	CallTimeout time.Duration `mapstructure:"call_timeout"`
}

// GeneratorConfig holds binding generator defaults.
type GeneratorConfig struct {
	Package string `mapstructure:"package"`
	Client  string `mapstructure:"client"`
}

// StoreConfig selects the data store behind get_data/set_data.
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

// Load reads the configuration. An empty path uses defaults and the
// environment only.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	defaults := wasm.DefaultRuntimeConfig()
	v.SetDefault("log_level", "info")
	v.SetDefault("bundle_paths", []string{"./bundles"})

	v.SetDefault("wasm.memory_pages", defaults.MemoryPages)
	v.SetDefault("wasm.cache_dir", "")
	v.SetDefault("wasm.max_instances", defaults.MaxInstances)
	v.SetDefault("wasm.threads", defaults.Threads)
	v.SetDefault("wasm.init_export", defaults.InitExport)
	v.SetDefault("wasm.alloc_export", defaults.AllocExport)
	v.SetDefault("wasm.free_export", defaults.FreeExport)
	v.SetDefault("wasm.call_timeout", time.Duration(0))

	v.SetDefault("generator.package", "barretenberg")
	v.SetDefault("generator.client", "Client")

	v.SetDefault("store.driver", store.DriverMemory)
	v.SetDefault("store.path", "./cryptobind.db")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	switch c.Store.Driver {
	case store.DriverMemory, store.DriverSQLite:
	default:
		return fmt.Errorf("store.driver: %w", &store.UnknownDriverError{Driver: c.Store.Driver})
	}
	if c.Wasm.AllocExport == "" || c.Wasm.FreeExport == "" {
		return fmt.Errorf("wasm.alloc_export and wasm.free_export are required")
	}
	if c.Wasm.CallTimeout < 0 {
		return fmt.Errorf("wasm.call_timeout must not be negative")
	}
	return nil
}

// Runtime converts the wasm section into a runtime configuration.
func (c WasmConfig) Runtime() *wasm.RuntimeConfig {
	return &wasm.RuntimeConfig{
		MemoryPages:  c.MemoryPages,
		CacheDir:     c.CacheDir,
		MaxInstances: c.MaxInstances,
		Threads:      c.Threads,
		InitExport:   c.InitExport,
		AllocExport:  c.AllocExport,
		FreeExport:   c.FreeExport,
		CallTimeout:  c.CallTimeout,
	}
}
