package menu

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateIdentifier is returned when two items share an identifier.
	ErrDuplicateIdentifier = errors.New("duplicate menu identifier")
	// ErrInvalidSpec is returned for structurally invalid menu layouts.
	ErrInvalidSpec = errors.New("invalid menu spec")
)

// Tree is a validated, immutable menu hierarchy.
type Tree struct {
	roots []Node
	ids   []string
	items map[string]Node
}

// Build validates spec and produces a Tree. On failure no tree is returned.
func Build(spec Spec) (*Tree, error) {
	if len(spec.Menus) == 0 {
		return nil, fmt.Errorf("%w: no menus declared", ErrInvalidSpec)
	}

	b := &builder{items: make(map[string]Node)}
	roots := make([]Node, 0, len(spec.Menus))
	for idx, entry := range spec.Menus {
		if entry.Type != NodeGroup {
			return nil, fmt.Errorf("%w: top-level entry %d must be a group, got %q", ErrInvalidSpec, idx, entry.Type)
		}
		node, err := b.build(entry, []string{})
		if err != nil {
			return nil, err
		}
		roots = append(roots, node)
	}

	return &Tree{roots: roots, ids: b.ids, items: b.items}, nil
}

type builder struct {
	ids   []string
	items map[string]Node
}

func (b *builder) build(entry NodeSpec, path []string) (Node, error) {
	where := strings.Join(path, " > ")
	if where == "" {
		where = "<root>"
	}

	switch entry.Type {
	case NodeSeparator:
		return Node{Type: NodeSeparator}, nil
	case NodeItem:
		id := strings.TrimSpace(entry.ID)
		if id == "" {
			return Node{}, fmt.Errorf("%w: item %q under %s has no identifier", ErrInvalidSpec, entry.Label, where)
		}
		if strings.TrimSpace(entry.Label) == "" {
			return Node{}, fmt.Errorf("%w: item %q under %s has no label", ErrInvalidSpec, id, where)
		}
		if _, exists := b.items[id]; exists {
			return Node{}, fmt.Errorf("%w: %q", ErrDuplicateIdentifier, id)
		}
		node := Node{
			Type:        NodeItem,
			ID:          id,
			Label:       entry.Label,
			Accelerator: strings.TrimSpace(entry.Accelerator),
			Enabled:     !entry.Disabled,
		}
		b.items[id] = node
		b.ids = append(b.ids, id)
		return node, nil
	case NodePredefined:
		if !entry.Action.Valid() {
			return Node{}, fmt.Errorf("%w: unknown predefined action %q under %s", ErrInvalidSpec, entry.Action, where)
		}
		label := entry.Label
		if strings.TrimSpace(label) == "" {
			label = entry.Action.DefaultLabel()
		}
		return Node{Type: NodePredefined, Action: entry.Action, Label: label, Enabled: !entry.Disabled}, nil
	case NodeGroup:
		if strings.TrimSpace(entry.Label) == "" {
			return Node{}, fmt.Errorf("%w: group under %s has an empty label", ErrInvalidSpec, where)
		}
		childPath := append(append([]string(nil), path...), entry.Label)
		children := make([]Node, 0, len(entry.Items))
		for _, child := range entry.Items {
			node, err := b.build(child, childPath)
			if err != nil {
				return Node{}, err
			}
			children = append(children, node)
		}
		return Node{Type: NodeGroup, Label: entry.Label, Enabled: !entry.Disabled, Children: children}, nil
	default:
		return Node{}, fmt.Errorf("%w: unsupported node type %q under %s", ErrInvalidSpec, entry.Type, where)
	}
}

// Roots returns a copy of the top-level groups in declaration order.
func (t *Tree) Roots() []Node {
	out := make([]Node, len(t.roots))
	for i, root := range t.roots {
		out[i] = root.clone()
	}
	return out
}

// CustomIDs returns the identifiers of every item in declaration order.
// Predefined entries have no identifier and are not included.
func (t *Tree) CustomIDs() []string {
	out := make([]string, len(t.ids))
	copy(out, t.ids)
	return out
}

// Item looks up an item by identifier.
func (t *Tree) Item(id string) (Node, bool) {
	node, ok := t.items[id]
	return node, ok
}

// Walk visits every node depth-first in declaration order. depth is zero for
// top-level groups. Returning an error stops the walk.
func (t *Tree) Walk(fn func(depth int, node Node) error) error {
	var visit func(depth int, nodes []Node) error
	visit = func(depth int, nodes []Node) error {
		for _, node := range nodes {
			if err := fn(depth, node.clone()); err != nil {
				return err
			}
			if node.Type == NodeGroup {
				if err := visit(depth+1, node.Children); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return visit(0, t.roots)
}
