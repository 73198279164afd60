// Package scaffold generates and converges the configuration
// artifacts of a TypeScript project directory: the package manifest,
// compiler and lint configuration, editor configuration, ignore file,
// and starter source layout.
package scaffold

import (
	"context"
	"embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsinit-dev/tsinit/internal/manifest"
	"github.com/tsinit-dev/tsinit/internal/scheme"
)

//go:embed templates
var templateFS embed.FS

// EditorConfigName is the editor configuration file name.
const EditorConfigName = ".editorconfig"

// editorConfigContent returns the fixed .editorconfig template.
func editorConfigContent() ([]byte, error) {
	return templateFS.ReadFile("templates/editorconfig")
}

// Scaffolder sequences the scaffolding steps for one directory. Steps
// run strictly in order; the first error aborts the rest. There is no
// rollback: every write is independently idempotent, so a re-run
// converges.
type Scaffolder struct {
	dir    string
	pins   []manifest.Pin
	runner manifest.Initializer
	report manifest.ReportFunc
	logger *slog.Logger
}

// Option configures a Scaffolder.
type Option func(*Scaffolder)

// WithInitializer replaces the package-manager init step.
func WithInitializer(init manifest.Initializer) Option {
	return func(s *Scaffolder) { s.runner = init }
}

// WithReporter sets the per-mutation status callback.
func WithReporter(report manifest.ReportFunc) Option {
	return func(s *Scaffolder) { s.report = report }
}

// WithLogger sets the logger for verbose diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scaffolder) { s.logger = logger }
}

// WithPins overrides the bundled dependency pin table.
func WithPins(pins []manifest.Pin) Option {
	return func(s *Scaffolder) { s.pins = pins }
}

// New creates a Scaffolder for dir.
func New(dir string, opts ...Option) *Scaffolder {
	s := &Scaffolder{
		dir:    dir,
		runner: manifest.NPMInitializer{},
		report: func(string, ...any) {},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the full scaffolding sequence and returns the resolved
// module scheme.
func (s *Scaffolder) Run(ctx context.Context, pref scheme.Preference) (scheme.Scheme, error) {
	wasJustCreated := false
	if !manifest.Exists(s.dir) {
		s.report("creating %s", manifest.FileName)
		out, err := s.runner.Init(ctx, s.dir)
		if err != nil {
			return "", err
		}
		if trimmed := strings.TrimSpace(out); trimmed != "" {
			s.logger.Info("package manager output", "output", trimmed)
		}
		wasJustCreated = true
	}

	m, err := manifest.Load(s.dir)
	if err != nil {
		return "", err
	}

	sch := scheme.Detect(pref, m, wasJustCreated)
	s.logger.Debug("resolved module scheme", "scheme", sch, "preference", pref, "created", wasJustCreated)

	m.MergeScripts(s.report)

	pins := s.pins
	if pins == nil {
		if pins, err = LoadPins(); err != nil {
			return "", err
		}
	}
	m.MergeDevDependencies(pins, s.report)
	m.SyncType(sch, pref, wasJustCreated, s.report)

	if err := m.Save(); err != nil {
		return "", err
	}
	s.report("wrote %s", manifest.FileName)

	if err := s.writeTSConfig(sch); err != nil {
		return "", err
	}
	if err := s.writeESLintConfig(sch); err != nil {
		return "", err
	}
	if err := s.writeEditorConfig(); err != nil {
		return "", err
	}

	changed, err := EnsureGitignore(s.dir)
	if err != nil {
		return "", err
	}
	if changed {
		s.report("updated %s", GitignoreName)
	}

	created, err := EnsureSourceLayout(s.dir)
	if err != nil {
		return "", err
	}
	if created {
		s.report("created %s/%s", SourceDir, EntryFileName)
	}

	return sch, nil
}

func (s *Scaffolder) writeTSConfig(sch scheme.Scheme) error {
	data, err := TSConfig(sch)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, TSConfigName), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", TSConfigName, err)
	}
	s.report("wrote %s", TSConfigName)
	return nil
}

func (s *Scaffolder) writeESLintConfig(sch scheme.Scheme) error {
	data, err := ESLintConfig(sch)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, ESLintConfigName), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", ESLintConfigName, err)
	}
	s.report("wrote %s", ESLintConfigName)
	return nil
}

func (s *Scaffolder) writeEditorConfig() error {
	data, err := editorConfigContent()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, EditorConfigName), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", EditorConfigName, err)
	}
	s.report("wrote %s", EditorConfigName)
	return nil
}
