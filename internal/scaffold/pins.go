package scaffold

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tsinit-dev/tsinit/internal/manifest"
)

//go:embed pins.yaml
var pinsRaw []byte

// LoadPins parses the bundled dependency pin table. The table is
// passed explicitly into the merge step so detection and merging stay
// independently testable.
func LoadPins() ([]manifest.Pin, error) {
	var table struct {
		Pins []manifest.Pin `yaml:"pins"`
	}
	if err := yaml.Unmarshal(pinsRaw, &table); err != nil {
		return nil, fmt.Errorf("failed to parse bundled pin table: %w", err)
	}
	return table.Pins, nil
}
