package command

import (
	"errors"
	"fmt"
	"sort"

	"github.com/example/appmenu/internal/window"
)

// ErrTableMismatch is returned when the command entries and the menu's item
// identifiers do not match one to one.
var ErrTableMismatch = errors.New("command table does not match menu")

// Table resolves menu identifiers to commands. It is read-only once built.
type Table struct {
	entries map[string]Command
}

// NewTable builds a Table from entries, checking that every identifier in ids
// has an entry and every entry belongs to ids.
func NewTable(entries map[string]Command, ids []string) (*Table, error) {
	declared := make(map[string]struct{}, len(ids))
	var problems []error
	for _, id := range ids {
		declared[id] = struct{}{}
		if _, ok := entries[id]; !ok {
			problems = append(problems, fmt.Errorf("%w: menu item %q has no command", ErrTableMismatch, id))
		}
	}

	table := &Table{entries: make(map[string]Command, len(entries))}
	for _, id := range sortedKeys(entries) {
		cmd := entries[id]
		if _, ok := declared[id]; !ok {
			problems = append(problems, fmt.Errorf("%w: command %q has no menu item", ErrTableMismatch, id))
			continue
		}
		if err := cmd.validate(); err != nil {
			problems = append(problems, fmt.Errorf("%w: %q: %v", ErrTableMismatch, id, err))
			continue
		}
		table.entries[id] = cmd
	}

	if len(problems) > 0 {
		return nil, errors.Join(problems...)
	}
	return table, nil
}

// Resolve returns the command for id, or NoOp when id is unknown.
func (t *Table) Resolve(id string) Command {
	if t == nil {
		return NoOp()
	}
	cmd, ok := t.entries[id]
	if !ok {
		return NoOp()
	}
	return cmd
}

// IDs returns the table's identifiers in lexical order.
func (t *Table) IDs() []string {
	if t == nil {
		return nil
	}
	return sortedKeys(t.entries)
}

func sortedKeys(m map[string]Command) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AboutWindowName is the registry slot of the about window.
const AboutWindowName = "about"

// AboutWindow is the presentation of the about window.
func AboutWindow() window.Config {
	return window.Config{
		Width:       550,
		Height:      850,
		Resizable:   false,
		Minimizable: false,
		Maximizable: false,
		Centered:    true,
		Title:       "About AppMenu",
		Content:     "/about",
	}
}

// DefaultEntries is the application's identifier to command mapping for the
// built-in menu.
func DefaultEntries() map[string]Command {
	return map[string]Command{
		"about":         ShowSingletonWindow(AboutWindowName, AboutWindow()),
		"home":          Navigate("/"),
		"clipboard":     Navigate("/clipboard"),
		"dialog":        Navigate("/dialog"),
		"filesystem":    Navigate("/filesystem"),
		"notifications": Navigate("/notifications"),
		"os-info":       Navigate("/os-info"),
		"theme-light":   SetTheme(ThemeLight),
		"theme-dark":    SetTheme(ThemeDark),
		"theme-system":  SetTheme(ThemeSystem),
	}
}
