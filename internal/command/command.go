// Package command maps menu identifiers to the effect they trigger.
package command

import (
	"fmt"

	"github.com/example/appmenu/internal/window"
)

// Kind discriminates the Command variants.
type Kind string

const (
	KindNoOp       Kind = "noop"
	KindNavigate   Kind = "navigate"
	KindSetTheme   Kind = "set-theme"
	KindShowWindow Kind = "show-window"
)

// ThemeMode is the colour scheme requested from the front end.
type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

// Valid reports whether m is light, dark or system.
func (m ThemeMode) Valid() bool {
	switch m {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	default:
		return false
	}
}

// Command is an immutable effect description. The zero value is NoOp.
type Command struct {
	kind   Kind
	path   string
	theme  ThemeMode
	name   string
	config window.Config
}

// NoOp returns the command that does nothing.
func NoOp() Command { return Command{} }

// Navigate returns a command asking the front end to show path.
func Navigate(path string) Command {
	return Command{kind: KindNavigate, path: path}
}

// SetTheme returns a command asking the front end to switch theme.
func SetTheme(mode ThemeMode) Command {
	return Command{kind: KindSetTheme, theme: mode}
}

// ShowSingletonWindow returns a command opening (or focusing) the named window.
func ShowSingletonWindow(name string, cfg window.Config) Command {
	return Command{kind: KindShowWindow, name: name, config: cfg}
}

// Kind returns the variant of c.
func (c Command) Kind() Kind {
	if c.kind == "" {
		return KindNoOp
	}
	return c.kind
}

// Path is the navigation target of a Navigate command.
func (c Command) Path() string { return c.path }

// Theme is the mode of a SetTheme command.
func (c Command) Theme() ThemeMode { return c.theme }

// WindowName is the registry slot of a ShowSingletonWindow command.
func (c Command) WindowName() string { return c.name }

// WindowConfig is the presentation of a ShowSingletonWindow command.
func (c Command) WindowConfig() window.Config { return c.config }

func (c Command) String() string {
	switch c.Kind() {
	case KindNavigate:
		return fmt.Sprintf("Navigate(%s)", c.path)
	case KindSetTheme:
		return fmt.Sprintf("SetTheme(%s)", c.theme)
	case KindShowWindow:
		return fmt.Sprintf("ShowSingletonWindow(%s)", c.name)
	default:
		return "NoOp"
	}
}

func (c Command) validate() error {
	switch c.Kind() {
	case KindNavigate:
		if c.path == "" {
			return fmt.Errorf("navigate command has an empty path")
		}
	case KindSetTheme:
		if !c.theme.Valid() {
			return fmt.Errorf("unknown theme mode %q", c.theme)
		}
	case KindShowWindow:
		if c.name == "" {
			return fmt.Errorf("window command has an empty name")
		}
	}
	return nil
}
