// Package testutil provides helpers for building fixture source
// trees on disk, so tests can exercise the real filesystem paths
// without depending on downloaded release archives.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteTree creates a temporary directory populated with the given
// files (path → content) and returns its root. Parent directories are
// created as needed; cleanup is handled by t.TempDir.
func WriteTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for path, content := range files {
		target := filepath.Join(root, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			t.Fatalf("create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return root
}

// WriteExecutable adds an executable file to an existing tree root.
func WriteExecutable(t *testing.T, root, path, content string) {
	t.Helper()

	target := filepath.Join(root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatalf("create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(target, []byte(content), 0o755); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
