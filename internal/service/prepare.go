package service

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jeanas/lilywheel/internal/wheel"
)

// prepareTree turns a freshly extracted archive into the source tree
// the assembler expects.
//
// The archive must contain exactly one top-level directory (the
// versioned release root); it is renamed to the fixed binaries
// directory so the wrapper module can rely on the name.
func prepareTree(treeDir string) error {
	entries, err := os.ReadDir(treeDir)
	if err != nil {
		return fmt.Errorf("read extracted tree: %w", err)
	}

	var roots []string
	for _, e := range entries {
		if e.IsDir() {
			roots = append(roots, e.Name())
		}
	}
	if len(roots) != 1 {
		return fmt.Errorf("expected exactly one extracted root directory, found %d", len(roots))
	}

	src := filepath.Join(treeDir, roots[0])
	dst := filepath.Join(treeDir, wheel.BinariesDir)
	if src == dst {
		return nil
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("rename extracted root: %w", err)
	}
	return nil
}

// ensurePythonPlaceholder drops a zero-byte marker into the bundled
// Python's lib-dynload directory, which ships empty. Wheels are zip
// files and cannot represent empty directories, so without the marker
// the directory would vanish on install and break the interpreter.
//
// Exactly one lib/python* directory must exist; anything else means
// the release layout changed and the build must not continue.
func ensurePythonPlaceholder(treeDir string) error {
	pattern := filepath.Join(treeDir, wheel.BinariesDir, "lib", "python*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("glob python lib dir: %w", err)
	}
	if len(matches) != 1 {
		return fmt.Errorf("expected exactly one lib/python* directory, found %d", len(matches))
	}

	dynload := filepath.Join(matches[0], "lib-dynload")
	if err := os.MkdirAll(dynload, 0o755); err != nil {
		return fmt.Errorf("create lib-dynload: %w", err)
	}

	placeholder := filepath.Join(dynload, wheel.PlaceholderName)
	if err := os.WriteFile(placeholder, nil, 0o644); err != nil {
		return fmt.Errorf("write placeholder: %w", err)
	}
	return nil
}
