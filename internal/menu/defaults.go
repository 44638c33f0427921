package menu

import (
	"bytes"
	_ "embed"
	"fmt"
)

//go:embed default_menu.yaml
var defaultLayout []byte

// DefaultSpec returns the built-in menu layout.
func DefaultSpec() (Spec, error) {
	spec, err := ParseSpec(bytes.NewReader(defaultLayout))
	if err != nil {
		return Spec{}, fmt.Errorf("built-in layout: %w", err)
	}
	return spec, nil
}

// Default builds the built-in menu tree.
func Default() (*Tree, error) {
	spec, err := DefaultSpec()
	if err != nil {
		return nil, err
	}
	return Build(spec)
}

// Load builds the tree from the layout file at path, or the built-in layout
// when path is empty.
func Load(path string) (*Tree, error) {
	if path == "" {
		return Default()
	}
	spec, err := LoadSpecFile(path)
	if err != nil {
		return nil, err
	}
	return Build(spec)
}
