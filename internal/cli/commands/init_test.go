package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInitCommand(t *testing.T) {
	tests := []struct {
		name      string
		manifest  string // pre-seeded package.json content
		wantFiles []string
	}{
		{
			name:     "init directory with existing manifest",
			manifest: `{"name":"demo"}`,
			wantFiles: []string{
				"package.json",
				"tsconfig.json",
				"eslint.config.mjs",
				".editorconfig",
				".gitignore",
				"src",
				filepath.Join("src", "index.ts"),
			},
		},
		{
			name:     "init manifest with declared module type",
			manifest: `{"type":"module"}`,
			wantFiles: []string{
				"tsconfig.json",
				filepath.Join("src", "index.ts"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "package.json"), []byte(tt.manifest), 0o600))

			cmd := NewInitCommand()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs([]string{tmpDir})

			require.NoError(t, cmd.Execute())

			for _, f := range tt.wantFiles {
				path := filepath.Join(tmpDir, f)
				_, err := os.Stat(path)
				assert.False(t, os.IsNotExist(err), "expected file/dir %q to exist", f)
			}
		})
	}
}

func TestInitCommandMetadata(t *testing.T) {
	cmd := NewInitCommand()

	assert.Equal(t, "init [directory]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
}

func TestInitCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "my-app")
	// Pre-seed the manifest so the package manager is not invoked.
	require.NoError(t, os.MkdirAll(target, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(target, "package.json"), []byte(`{}`), 0o600))

	cmd := NewInitCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{target})

	require.NoError(t, cmd.Execute())

	_, err := os.Stat(filepath.Join(target, "tsconfig.json"))
	assert.NoError(t, err)
}
