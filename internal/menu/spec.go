package menu

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Spec is the declarative menu description accepted by Build.
type Spec struct {
	Menus []NodeSpec `yaml:"menus"`
}

// NodeSpec describes a single entry of a Spec. Items default to enabled.
type NodeSpec struct {
	Type        NodeType         `yaml:"type"`
	ID          string           `yaml:"id,omitempty"`
	Label       string           `yaml:"label,omitempty"`
	Accelerator string           `yaml:"accelerator,omitempty"`
	Disabled    bool             `yaml:"disabled,omitempty"`
	Action      PredefinedAction `yaml:"action,omitempty"`
	Items       []NodeSpec       `yaml:"items,omitempty"`
}

// ParseSpec decodes a YAML menu layout. Unknown fields are rejected so that a
// typo in a layout file fails at startup instead of silently dropping an item.
func ParseSpec(r io.Reader) (Spec, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var spec Spec
	if err := dec.Decode(&spec); err != nil {
		if err == io.EOF {
			return Spec{}, fmt.Errorf("%w: empty menu layout", ErrInvalidSpec)
		}
		return Spec{}, fmt.Errorf("%w: decode menu layout: %v", ErrInvalidSpec, err)
	}
	return spec, nil
}

// LoadSpecFile reads and decodes a YAML menu layout from disk.
func LoadSpecFile(path string) (Spec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("read menu layout: %w", err)
	}
	return ParseSpec(bytes.NewReader(raw))
}
