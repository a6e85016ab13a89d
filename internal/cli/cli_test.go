package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/woxQAQ/cryptobind/internal/config"
)

const echoBundle = "../bundle/testdata/echo"

func testOptions(t *testing.T) *RootOptions {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Wasm.MemoryPages = 16
	cfg.BundlePaths = []string{"../bundle/testdata"}
	return &RootOptions{Config: cfg, Logger: zaptest.NewLogger(t)}
}

func execute(t *testing.T, opts *RootOptions, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := newRootCommand(opts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func lineWith(output, needle string) string {
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, needle) {
			return line
		}
	}
	return ""
}
