package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GitignoreName is the ignore file name inside a project directory.
const GitignoreName = ".gitignore"

var defaultIgnoreEntries = []string{"node_modules/", "dist/"}

// buildIgnoreVariants are the spellings of a build-directory pattern
// accepted as already present. Matching any of them means the file is
// left untouched.
var buildIgnoreVariants = []string{"dist", "dist/", "/dist", "/dist/"}

// EnsureGitignore converges the ignore file: write defaults when the
// file is absent, append one canonical build-directory pattern when
// none of the accepted variants exists, and otherwise change nothing.
// Existing lines are never rewritten or duplicated. Returns whether
// the file was created or changed.
func EnsureGitignore(dir string) (bool, error) {
	path := filepath.Join(dir, GitignoreName)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		content := strings.Join(defaultIgnoreEntries, "\n") + "\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return false, fmt.Errorf("failed to write %s: %w", GitignoreName, err)
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", GitignoreName, err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		for _, variant := range buildIgnoreVariants {
			if trimmed == variant {
				return false, nil
			}
		}
	}

	// Preserve the file's trailing-newline convention when appending.
	content := string(data)
	if content == "" || strings.HasSuffix(content, "\n") {
		content += "dist/\n"
	} else {
		content += "\ndist/"
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", GitignoreName, err)
	}
	return true, nil
}
