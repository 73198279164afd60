// Package scheme resolves whether a project targets ES module or
// CommonJS output. The resolved scheme drives every generated
// configuration artifact.
package scheme

import (
	"fmt"
	"strings"
)

// Preference is the user-supplied module preference. It is an input
// only and is never written to disk.
type Preference string

const (
	// PrefAuto infers the scheme from the manifest.
	PrefAuto Preference = "auto"
	// PrefModule forces ES module output.
	PrefModule Preference = "module"
	// PrefCommonJS forces CommonJS output.
	PrefCommonJS Preference = "commonjs"
)

// ParsePreference validates a module preference flag value.
func ParsePreference(s string) (Preference, error) {
	switch p := Preference(s); p {
	case PrefAuto, PrefModule, PrefCommonJS:
		return p, nil
	}
	return "", fmt.Errorf("invalid module preference %q (expected auto, module, or commonjs)", s)
}

// Scheme is the resolved module scheme.
type Scheme string

const (
	// Module means modern import/export syntax with NodeNext resolution.
	Module Scheme = "module"
	// CommonJS means require-style resolution.
	CommonJS Scheme = "commonjs"
)

// Doc is the view of a manifest the detector needs.
type Doc interface {
	// Type returns the manifest "type" field, or "" when absent.
	Type() string
	// Main returns the manifest "main" entry point, or "".
	Main() string
	// Module returns the manifest "module" entry point, or "".
	Module() string
	// Exports returns the raw "exports" value: a string, a map, or nil.
	Exports() any
}

// moduleExtensions only make sense for ES module entry points.
var moduleExtensions = []string{".mjs", ".mts"}

// Detect resolves the module scheme for a project. Resolution order:
// explicit preference, freshly-created default, declared manifest
// type, inferred entry-point signals, CommonJS fallback.
func Detect(pref Preference, doc Doc, wasJustCreated bool) Scheme {
	switch pref {
	case PrefModule:
		return Module
	case PrefCommonJS:
		return CommonJS
	}

	// New projects default to the modern scheme.
	if wasJustCreated {
		return Module
	}

	switch doc.Type() {
	case "module":
		return Module
	case "commonjs":
		return CommonJS
	}

	if hasModuleExtension(doc.Module()) || hasModuleExtension(doc.Main()) {
		return Module
	}
	if exportsSignalModule(doc.Exports()) {
		return Module
	}

	return CommonJS
}

func hasModuleExtension(path string) bool {
	for _, ext := range moduleExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// exportsSignalModule flattens an "exports" value and reports whether
// any entry points at ES module output: a module-only file extension,
// or an "import" condition key.
func exportsSignalModule(exports any) bool {
	switch v := exports.(type) {
	case string:
		return hasModuleExtension(v)
	case map[string]any:
		if _, ok := v["import"]; ok {
			return true
		}
		for _, target := range v {
			switch t := target.(type) {
			case string:
				if hasModuleExtension(t) {
					return true
				}
			case map[string]any:
				if _, ok := t["import"]; ok {
					return true
				}
				for _, nested := range t {
					if s, ok := nested.(string); ok && hasModuleExtension(s) {
						return true
					}
				}
			}
		}
	}
	return false
}
