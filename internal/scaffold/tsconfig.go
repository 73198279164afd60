package scaffold

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tsinit-dev/tsinit/internal/scheme"
)

// TSConfigName is the compiler configuration file name.
const TSConfigName = "tsconfig.json"

// tsConfig mirrors the emitted tsconfig.json layout. Field order here
// is the order written to disk.
type tsConfig struct {
	CompilerOptions tsCompilerOptions `json:"compilerOptions"`
	Include         []string          `json:"include"`
	Exclude         []string          `json:"exclude"`
}

type tsCompilerOptions struct {
	Target                           string   `json:"target"`
	Module                           string   `json:"module"`
	ModuleResolution                 string   `json:"moduleResolution"`
	Lib                              []string `json:"lib"`
	OutDir                           string   `json:"outDir"`
	RootDir                          string   `json:"rootDir"`
	Strict                           bool     `json:"strict"`
	ESModuleInterop                  bool     `json:"esModuleInterop"`
	SkipLibCheck                     bool     `json:"skipLibCheck"`
	ForceConsistentCasingInFileNames bool     `json:"forceConsistentCasingInFileNames"`
	Declaration                      bool     `json:"declaration"`
	SourceMap                        bool     `json:"sourceMap"`
	ResolveJSONModule                bool     `json:"resolveJsonModule"`
}

// TSConfig renders tsconfig.json content for the resolved scheme.
// Only the module and moduleResolution settings depend on the scheme;
// everything else is fixed.
func TSConfig(sch scheme.Scheme) ([]byte, error) {
	module, resolution := "NodeNext", "NodeNext"
	if sch == scheme.CommonJS {
		module, resolution = "CommonJS", "Node"
	}

	cfg := tsConfig{
		CompilerOptions: tsCompilerOptions{
			Target:                           "ES2022",
			Module:                           module,
			ModuleResolution:                 resolution,
			Lib:                              []string{"ES2022"},
			OutDir:                           "dist",
			RootDir:                          "src",
			Strict:                           true,
			ESModuleInterop:                  true,
			SkipLibCheck:                     true,
			ForceConsistentCasingInFileNames: true,
			Declaration:                      true,
			SourceMap:                        true,
			ResolveJSONModule:                true,
		},
		Include: []string{"src/**/*"},
		Exclude: []string{"node_modules", "dist"},
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", TSConfigName, err)
	}
	return append(data, '\n'), nil
}
