package scaffold

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsinit-dev/tsinit/internal/manifest"
	"github.com/tsinit-dev/tsinit/internal/scheme"
)

// fakeInitializer stands in for npm init in tests.
type fakeInitializer struct {
	content string
	err     error
	calls   int
}

func (f *fakeInitializer) Init(_ context.Context, dir string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	content := f.content
	if content == "" {
		content = `{"name":"fake","version":"1.0.0"}`
	}
	return "fake init output", os.WriteFile(filepath.Join(dir, manifest.FileName), []byte(content), 0o600)
}

func newTestScaffolder(dir string, init *fakeInitializer) *Scaffolder {
	return New(dir, WithInitializer(init))
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func loadManifestDoc(t *testing.T, dir string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, manifest.FileName))
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestRunEmptyDirectoryWithModulePreference(t *testing.T) {
	dir := t.TempDir()
	init := &fakeInitializer{}

	sch, err := newTestScaffolder(dir, init).Run(context.Background(), scheme.PrefModule)
	require.NoError(t, err)
	assert.Equal(t, scheme.Module, sch)
	assert.Equal(t, 1, init.calls)

	doc := loadManifestDoc(t, dir)
	assert.Equal(t, "module", doc["type"])

	scripts, ok := doc["scripts"].(map[string]any)
	require.True(t, ok)
	for _, name := range []string{"start", "build", "clean", "test", "lint"} {
		assert.Contains(t, scripts, name)
	}

	tsconfig := readFile(t, dir, TSConfigName)
	assert.Contains(t, tsconfig, `"module": "NodeNext"`)
	assert.Contains(t, tsconfig, `"moduleResolution": "NodeNext"`)
}

func TestRunInfersModuleFromMJSMain(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, manifest.FileName),
		[]byte(`{"main":"index.mjs"}`), 0o600))

	init := &fakeInitializer{}
	sch, err := newTestScaffolder(dir, init).Run(context.Background(), scheme.PrefAuto)
	require.NoError(t, err)
	assert.Equal(t, scheme.Module, sch)
	assert.Zero(t, init.calls, "existing manifest must not trigger the package manager")

	// Inferred-only scheme is never written back.
	doc := loadManifestDoc(t, dir)
	assert.NotContains(t, doc, "type")
}

func TestRunCommonJSOverrideRemovesType(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, manifest.FileName),
		[]byte(`{"type":"module","scripts":{"build":"custom"}}`), 0o600))

	sch, err := newTestScaffolder(dir, &fakeInitializer{}).Run(context.Background(), scheme.PrefCommonJS)
	require.NoError(t, err)
	assert.Equal(t, scheme.CommonJS, sch)

	doc := loadManifestDoc(t, dir)
	assert.NotContains(t, doc, "type")

	scripts := doc["scripts"].(map[string]any)
	assert.Equal(t, "custom", scripts["build"])
	for _, name := range []string{"start", "clean", "test", "lint"} {
		assert.Contains(t, scripts, name)
	}

	tsconfig := readFile(t, dir, TSConfigName)
	assert.Contains(t, tsconfig, `"module": "CommonJS"`)
	assert.Contains(t, tsconfig, `"moduleResolution": "Node"`)

	eslint := readFile(t, dir, ESLintConfigName)
	assert.Contains(t, eslint, "globals.commonjs")
}

func TestRunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	init := &fakeInitializer{}
	s := newTestScaffolder(dir, init)

	_, err := s.Run(context.Background(), scheme.PrefModule)
	require.NoError(t, err)

	// Customize the starter file; a re-run must leave it alone.
	entry := filepath.Join(dir, SourceDir, EntryFileName)
	require.NoError(t, os.WriteFile(entry, []byte("export {};\n"), 0o644))

	editorBefore := readFile(t, dir, EditorConfigName)
	manifestBefore := readFile(t, dir, manifest.FileName)

	_, err = s.Run(context.Background(), scheme.PrefModule)
	require.NoError(t, err)

	assert.Equal(t, editorBefore, readFile(t, dir, EditorConfigName), ".editorconfig must be byte-identical")
	assert.Equal(t, manifestBefore, readFile(t, dir, manifest.FileName))
	assert.Equal(t, "export {};\n", readFile(t, dir, filepath.Join(SourceDir, EntryFileName)))
	assert.Equal(t, 1, init.calls, "package manager must only run when the manifest is absent")

	ignore := readFile(t, dir, GitignoreName)
	assert.Equal(t, 1, strings.Count(ignore, "dist/"), "only one build ignore entry")
}

func TestRunSurfacesPackageManagerOutput(t *testing.T) {
	dir := t.TempDir()
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	s := New(dir, WithInitializer(&fakeInitializer{}), WithLogger(logger))
	_, err := s.Run(context.Background(), scheme.PrefAuto)
	require.NoError(t, err)

	// The package manager's output must be visible at the default
	// log level, not just under verbose.
	assert.Contains(t, logBuf.String(), "fake init output")
}

func TestRunInitializerFailureAborts(t *testing.T) {
	dir := t.TempDir()
	init := &fakeInitializer{err: errors.New("npm exploded")}

	_, err := newTestScaffolder(dir, init).Run(context.Background(), scheme.PrefAuto)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "npm exploded")

	// No artifacts may exist after an aborted init step.
	for _, name := range []string{TSConfigName, ESLintConfigName, EditorConfigName, GitignoreName} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.True(t, os.IsNotExist(err), "%s must not exist", name)
	}
}

func TestRunMalformedManifestAborts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, manifest.FileName), []byte("{oops"), 0o600))

	_, err := newTestScaffolder(dir, &fakeInitializer{}).Run(context.Background(), scheme.PrefAuto)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestEnsureGitignore(t *testing.T) {
	t.Run("creates defaults when absent", func(t *testing.T) {
		dir := t.TempDir()
		changed, err := EnsureGitignore(dir)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, "node_modules/\ndist/\n", readFile(t, dir, GitignoreName))
	})

	t.Run("accepts existing variants", func(t *testing.T) {
		for _, variant := range []string{"dist", "dist/", "/dist", "/dist/"} {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, GitignoreName),
				[]byte("node_modules/\n"+variant+"\n"), 0o644))
			changed, err := EnsureGitignore(dir)
			require.NoError(t, err)
			assert.False(t, changed, "variant %q should already satisfy the check", variant)
		}
	})

	t.Run("appends preserving trailing newline", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, GitignoreName), []byte("*.log\n"), 0o644))
		changed, err := EnsureGitignore(dir)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, "*.log\ndist/\n", readFile(t, dir, GitignoreName))
	})

	t.Run("appends without trailing newline when file has none", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, GitignoreName), []byte("*.log"), 0o644))
		changed, err := EnsureGitignore(dir)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, "*.log\ndist/", readFile(t, dir, GitignoreName))
	})

	t.Run("idempotent", func(t *testing.T) {
		dir := t.TempDir()
		for i := 0; i < 3; i++ {
			_, err := EnsureGitignore(dir)
			require.NoError(t, err)
		}
		assert.Equal(t, 1, strings.Count(readFile(t, dir, GitignoreName), "dist/"))
	})
}

func TestTSConfig(t *testing.T) {
	moduleCfg, err := TSConfig(scheme.Module)
	require.NoError(t, err)
	assert.Contains(t, string(moduleCfg), `"module": "NodeNext"`)
	assert.True(t, strings.HasSuffix(string(moduleCfg), "\n"))

	cjsCfg, err := TSConfig(scheme.CommonJS)
	require.NoError(t, err)
	assert.Contains(t, string(cjsCfg), `"module": "CommonJS"`)
	assert.Contains(t, string(cjsCfg), `"moduleResolution": "Node"`)

	// Scheme only switches the module settings.
	for _, cfg := range [][]byte{moduleCfg, cjsCfg} {
		assert.Contains(t, string(cfg), `"target": "ES2022"`)
		assert.Contains(t, string(cfg), `"outDir": "dist"`)
		assert.Contains(t, string(cfg), `"strict": true`)
	}
}

func TestESLintConfig(t *testing.T) {
	moduleCfg, err := ESLintConfig(scheme.Module)
	require.NoError(t, err)
	assert.NotContains(t, string(moduleCfg), "globals.commonjs")
	assert.Contains(t, string(moduleCfg), "globals.node")

	cjsCfg, err := ESLintConfig(scheme.CommonJS)
	require.NoError(t, err)
	assert.Contains(t, string(cjsCfg), "globals.commonjs")
}

func TestLoadPins(t *testing.T) {
	pins, err := LoadPins()
	require.NoError(t, err)
	require.NotEmpty(t, pins)

	names := make([]string, 0, len(pins))
	for _, p := range pins {
		assert.NotEmpty(t, p.Version, "pin %s must carry a version", p.Name)
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "typescript")
	assert.Contains(t, names, "eslint")
}

func TestInspect(t *testing.T) {
	t.Run("fresh directory reports everything missing", func(t *testing.T) {
		dir := t.TempDir()
		statuses, sch, err := Inspect(dir)
		require.NoError(t, err)
		assert.Equal(t, scheme.CommonJS, sch)
		for _, st := range statuses {
			assert.Equal(t, StateMissing, st.State, "%s should be missing", st.Name)
		}
	})

	t.Run("scaffolded directory reports everything ok", func(t *testing.T) {
		dir := t.TempDir()
		_, err := newTestScaffolder(dir, &fakeInitializer{}).Run(context.Background(), scheme.PrefModule)
		require.NoError(t, err)

		statuses, sch, err := Inspect(dir)
		require.NoError(t, err)
		assert.Equal(t, scheme.Module, sch)
		for _, st := range statuses {
			assert.Equal(t, StateOK, st.State, "%s should be ok: %s", st.Name, st.Detail)
		}
	})

	t.Run("stale gitignore", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, GitignoreName), []byte("*.log\n"), 0o644))

		statuses, _, err := Inspect(dir)
		require.NoError(t, err)
		for _, st := range statuses {
			if st.Name == GitignoreName {
				assert.Equal(t, StateStale, st.State)
			}
		}
	})
}
