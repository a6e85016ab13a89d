package bundle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const echoDir = "testdata/echo"

// writeBundle copies the echo bundle into root/dir under a new name. edit
// may replace any file's content; an empty replacement deletes the file.
func writeBundle(t *testing.T, root, dir, name string, edit map[string]string) string {
	t.Helper()
	dst := filepath.Join(root, dir)
	if err := os.MkdirAll(dst, 0o755); err != nil {
		t.Fatal(err)
	}

	for _, file := range []string{ManifestFile, "echo.wasm", "exports.json"} {
		data, err := os.ReadFile(filepath.Join(echoDir, file))
		if err != nil {
			t.Fatal(err)
		}
		if file == ManifestFile {
			data = []byte(strings.Replace(string(data), "name: echo", "name: "+name, 1))
		}
		if repl, ok := edit[file]; ok {
			if repl == "" {
				continue
			}
			data = []byte(repl)
		}
		if err := os.WriteFile(filepath.Join(dst, file), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dst
}
