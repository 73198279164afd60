package manifest

import (
	"github.com/tsinit-dev/tsinit/internal/scheme"
)

// ReportFunc receives one human-readable status line per mutation.
type ReportFunc func(format string, args ...any)

// Pin is a development dependency this tool knows how to pin. The
// desired version comes from the bundled pin table, never from the
// project being scaffolded.
type Pin struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// scriptDefault pairs a script name with its scaffolded command.
// Order matters only for stable status output.
type scriptDefault struct {
	name    string
	command string
}

var defaultScripts = []scriptDefault{
	{"start", "node dist/index.js"},
	{"build", "tsc"},
	{"clean", "rimraf dist"},
	{"test", "node --test"},
	{"lint", "eslint ."},
}

// MergeScripts fills missing script entries with defaults. Existing
// entries are never overwritten.
func (m *Manifest) MergeScripts(report ReportFunc) {
	scripts := m.field("scripts")
	for _, s := range defaultScripts {
		if present(scripts, s.name) {
			continue
		}
		scripts[s.name] = s.command
		report("added script %q: %s", s.name, s.command)
	}
}

// MergeDevDependencies fills missing development-dependency version
// pins. An existing pin always wins over the bundled one.
func (m *Manifest) MergeDevDependencies(pins []Pin, report ReportFunc) {
	deps := m.field("devDependencies")
	for _, pin := range pins {
		if present(deps, pin.Name) {
			continue
		}
		deps[pin.Name] = pin.Version
		report("added devDependency %s@%s", pin.Name, pin.Version)
	}
}

// SyncType aligns the manifest "type" field with the resolved scheme.
// It only acts when the user stated a preference or the manifest was
// just created; an inferred-only scheme on an existing project is
// never written back. Absence of "type" is the CommonJS default, so
// no explicit "commonjs" value is ever written.
func (m *Manifest) SyncType(sch scheme.Scheme, pref scheme.Preference, wasJustCreated bool, report ReportFunc) {
	if pref == scheme.PrefAuto && !wasJustCreated {
		return
	}

	if sch == scheme.Module {
		if m.Type() != "module" {
			m.doc["type"] = "module"
			report("set type: module")
		}
		return
	}

	if m.Type() == "module" {
		delete(m.doc, "type")
		report("removed type: module")
	}
}
