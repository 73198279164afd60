// Package manifest reads, merges, and writes package.json documents.
//
// The merge operations are additive-only: fields this tool does not
// understand are carried through untouched, and existing values are
// never overwritten.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// FileName is the manifest file name inside a project directory.
const FileName = "package.json"

// Manifest wraps a parsed package.json document.
type Manifest struct {
	doc  map[string]any
	path string
}

// Exists reports whether dir contains a manifest file.
func Exists(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, FileName))
	return err == nil && !info.IsDir()
}

// Load reads and parses the manifest in dir.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	doc := map[string]any{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &Manifest{doc: doc, path: path}, nil
}

// Save writes the document back as 2-space-indented UTF-8 JSON with a
// trailing newline. The whole file is replaced in one write.
func (m *Manifest) Save() error {
	data, err := json.MarshalIndent(m.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", FileName, err)
	}

	if err := os.WriteFile(m.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", FileName, err)
	}
	return nil
}

// Type returns the manifest "type" field, or "" when absent.
func (m *Manifest) Type() string { return m.stringField("type") }

// Main returns the manifest "main" entry point, or "".
func (m *Manifest) Main() string { return m.stringField("main") }

// Module returns the manifest "module" entry point, or "".
func (m *Manifest) Module() string { return m.stringField("module") }

// Exports returns the raw "exports" value: a string, a map, or nil.
func (m *Manifest) Exports() any { return m.doc["exports"] }

func (m *Manifest) stringField(key string) string {
	if s, ok := m.doc[key].(string); ok {
		return s
	}
	return ""
}

// field returns the named mapping field, creating it when absent.
func (m *Manifest) field(key string) map[string]any {
	if existing, ok := m.doc[key].(map[string]any); ok {
		return existing
	}
	created := map[string]any{}
	m.doc[key] = created
	return created
}

// present reports whether a mapping entry holds a truthy value.
// Absent, empty-string, nil, false, and zero entries all count as
// gaps to be filled.
func present(entries map[string]any, key string) bool {
	v, ok := entries[key]
	if !ok {
		return false
	}
	switch t := v.(type) {
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case nil:
		return false
	}
	return true
}
