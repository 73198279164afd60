package scaffold

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsinit-dev/tsinit/internal/manifest"
	"github.com/tsinit-dev/tsinit/internal/scheme"
)

// Artifact states reported by Inspect.
const (
	StateOK      = "ok"
	StateMissing = "missing"
	StateStale   = "stale"
)

// ArtifactStatus describes one scaffolded file during a doctor run.
type ArtifactStatus struct {
	Name   string `json:"name"`
	State  string `json:"state"`
	Detail string `json:"detail,omitempty"`
}

// Inspect reports the scaffolding state of dir without mutating it.
// The returned scheme is the one a plain re-run would resolve to.
func Inspect(dir string) ([]ArtifactStatus, scheme.Scheme, error) {
	var statuses []ArtifactStatus
	sch := scheme.CommonJS

	if !manifest.Exists(dir) {
		statuses = append(statuses, ArtifactStatus{
			Name:   manifest.FileName,
			State:  StateMissing,
			Detail: "run tsinit init to create it",
		})
	} else if m, err := manifest.Load(dir); err != nil {
		statuses = append(statuses, ArtifactStatus{
			Name:   manifest.FileName,
			State:  StateStale,
			Detail: err.Error(),
		})
	} else {
		sch = scheme.Detect(scheme.PrefAuto, m, false)
		statuses = append(statuses, ArtifactStatus{Name: manifest.FileName, State: StateOK})
	}

	statuses = append(statuses, inspectTSConfig(dir, sch))
	statuses = append(statuses, inspectFile(dir, ESLintConfigName))
	statuses = append(statuses, inspectEditorConfig(dir))
	statuses = append(statuses, inspectGitignore(dir))
	statuses = append(statuses, inspectFile(dir, filepath.Join(SourceDir, EntryFileName)))

	return statuses, sch, nil
}

func inspectFile(dir, name string) ArtifactStatus {
	if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
		return ArtifactStatus{Name: name, State: StateMissing}
	}
	return ArtifactStatus{Name: name, State: StateOK}
}

func inspectTSConfig(dir string, sch scheme.Scheme) ArtifactStatus {
	data, err := os.ReadFile(filepath.Join(dir, TSConfigName))
	if err != nil {
		return ArtifactStatus{Name: TSConfigName, State: StateMissing}
	}

	want, err := TSConfig(sch)
	if err == nil && !bytes.Equal(data, want) {
		return ArtifactStatus{
			Name:   TSConfigName,
			State:  StateStale,
			Detail: "differs from the generated configuration",
		}
	}
	return ArtifactStatus{Name: TSConfigName, State: StateOK}
}

func inspectEditorConfig(dir string) ArtifactStatus {
	data, err := os.ReadFile(filepath.Join(dir, EditorConfigName))
	if err != nil {
		return ArtifactStatus{Name: EditorConfigName, State: StateMissing}
	}
	want, err := editorConfigContent()
	if err == nil && !bytes.Equal(data, want) {
		return ArtifactStatus{
			Name:   EditorConfigName,
			State:  StateStale,
			Detail: "differs from the bundled template",
		}
	}
	return ArtifactStatus{Name: EditorConfigName, State: StateOK}
}

func inspectGitignore(dir string) ArtifactStatus {
	data, err := os.ReadFile(filepath.Join(dir, GitignoreName))
	if err != nil {
		return ArtifactStatus{Name: GitignoreName, State: StateMissing}
	}
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		for _, variant := range buildIgnoreVariants {
			if trimmed == variant {
				return ArtifactStatus{Name: GitignoreName, State: StateOK}
			}
		}
	}
	return ArtifactStatus{
		Name:   GitignoreName,
		State:  StateStale,
		Detail: "missing a build-directory ignore entry",
	}
}
