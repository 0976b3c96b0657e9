package bucket

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Overlay is an operator-editable YAML file that can tweak a bucket's
// copy (description/examples) without a rebuild. It never changes
// validation or cardinality rules — those stay in the compiled catalog.
type Overlay struct {
	Buckets map[ID]OverlayEntry `yaml:"buckets"`
}

// OverlayEntry holds the copy fields an operator may override for a bucket.
type OverlayEntry struct {
	Description   string   `yaml:"description,omitempty"`
	ExampleInputs []string `yaml:"example_inputs,omitempty"`
}

// LoadOverlay reads an overlay YAML file from path and applies it to a copy
// of the default catalog, returning the merged result. The file is
// optional infrastructure: callers typically ignore a not-exist error and
// fall back to Default().
func LoadOverlay(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var overlay Overlay
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return nil, fmt.Errorf("bucket: parse overlay %s: %w", path, err)
	}
	return applyOverlay(Default(), overlay), nil
}

func applyOverlay(base *Catalog, overlay Overlay) *Catalog {
	merged := &Catalog{byID: make(map[ID]Definition, len(base.order))}
	merged.order = append(merged.order, base.order...)
	for id, def := range base.byID {
		if patch, ok := overlay.Buckets[id]; ok {
			if patch.Description != "" {
				def.Description = patch.Description
			}
			if len(patch.ExampleInputs) > 0 {
				def.ExampleInputs = patch.ExampleInputs
			}
		}
		merged.byID[id] = def
	}
	return merged
}
