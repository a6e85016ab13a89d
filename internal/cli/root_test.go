package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"generate", "exports", "call", "list"})

	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("log-level"))
}

func TestRootHelp(t *testing.T) {
	out, err := execute(t, &RootOptions{}, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "bindgen")
	assert.Contains(t, out, "generate")
	assert.Contains(t, out, "--log-level")
}

func TestPrepareLoadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cryptobind.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\ngenerator:\n  package: bb\n"), 0o644))

	opts := &RootOptions{ConfigPath: path}
	require.NoError(t, opts.prepare())
	assert.Equal(t, "warn", opts.Config.LogLevel)
	assert.Equal(t, "bb", opts.Config.Generator.Package)
	require.NotNil(t, opts.Logger)

	logger := opts.Logger
	require.NoError(t, opts.prepare())
	assert.Same(t, logger, opts.Logger, "prepare runs once")
}

func TestPrepareLogLevelOverride(t *testing.T) {
	opts := &RootOptions{LogLevel: "debug"}
	require.NoError(t, opts.prepare())
	assert.Equal(t, "debug", opts.Config.LogLevel)

	opts = &RootOptions{LogLevel: "loud"}
	err := opts.prepare()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestPrepareMissingConfig(t *testing.T) {
	opts := &RootOptions{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")}
	err := opts.prepare()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		logger, err := newLogger(level)
		require.NoError(t, err, level)
		assert.NotNil(t, logger)
	}
	_, err := newLogger("verbose")
	assert.Error(t, err)
}

func TestExitCodes(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad")))

	cause := errors.New("cause")
	wrapped := fmt.Errorf("outer: %w", WrapExitError(ExitCommandError, "load", cause))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "load: cause", WrapExitError(ExitFailure, "load", cause).Error())
	assert.Equal(t, "bad", NewExitError(ExitFailure, "bad").Error())
}
