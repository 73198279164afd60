package manifest

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Initializer creates a manifest in a directory that has none. The
// returned output is surfaced to the user but not parsed.
type Initializer interface {
	Init(ctx context.Context, dir string) (string, error)
}

// NPMInitializer shells out to "npm init --yes" and waits for it to
// finish before the manifest is read.
type NPMInitializer struct{}

// Init runs the package manager's init step in dir.
func (NPMInitializer) Init(ctx context.Context, dir string) (string, error) {
	cmd := exec.CommandContext(ctx, "npm", "init", "--yes")
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return out.String(), fmt.Errorf("npm init failed: %w", err)
	}
	return out.String(), nil
}
