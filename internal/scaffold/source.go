package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// SourceDir is the scaffolded source directory.
	SourceDir = "src"
	// EntryFileName is the starter entry source file.
	EntryFileName = "index.ts"
)

const starterSource = "console.log(\"Hello from tsinit!\");\n"

// EnsureSourceLayout creates the source directory and starter entry
// file, each only when absent. An existing entry file is never
// touched. Returns whether the entry file was created.
func EnsureSourceLayout(dir string) (bool, error) {
	srcDir := filepath.Join(dir, SourceDir)
	if err := os.MkdirAll(srcDir, 0o750); err != nil {
		return false, fmt.Errorf("failed to create %s: %w", SourceDir, err)
	}

	entry := filepath.Join(srcDir, EntryFileName)
	if _, err := os.Stat(entry); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}

	if err := os.WriteFile(entry, []byte(starterSource), 0o644); err != nil {
		return false, fmt.Errorf("failed to write starter file: %w", err)
	}
	return true, nil
}
