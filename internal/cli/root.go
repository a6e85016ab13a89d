// Package cli implements the bindgen command line.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/woxQAQ/cryptobind/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	LogLevel   string // overrides log_level from the config when set

	// Config and Logger are filled in on first use. Tests may preset them.
	Config *config.Config
	Logger *zap.Logger
}

// NewRootCommand creates the root command for the bindgen CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bindgen",
		Short: "Typed Go bindings for barretenberg exports",
		Long: `bindgen generates Go client code from an export schema and calls
native exports of barretenberg wasm bundles through the marshalling dispatcher.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.Logger != nil {
				_ = opts.Logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (yaml, json or toml)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")

	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewExportsCommand(opts))
	cmd.AddCommand(NewCallCommand(opts))
	cmd.AddCommand(NewListCommand(opts))

	return cmd
}

// prepare loads the configuration and builds the logger once.
func (o *RootOptions) prepare() error {
	if o.Config == nil {
		cfg, err := config.Load(o.ConfigPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "load config", err)
		}
		if o.LogLevel != "" {
			cfg.LogLevel = o.LogLevel
			if err := cfg.Validate(); err != nil {
				return WrapExitError(ExitCommandError, "invalid --log-level", err)
			}
		}
		o.Config = cfg
	}

	if o.Logger == nil {
		logger, err := newLogger(o.Config.LogLevel)
		if err != nil {
			return WrapExitError(ExitCommandError, "create logger", err)
		}
		o.Logger = logger
	}
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if lvl == zapcore.DebugLevel {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
