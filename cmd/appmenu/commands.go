package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/appmenu/internal/command"
	"github.com/example/appmenu/internal/config"
	"github.com/example/appmenu/internal/menu"
)

func handleMenu(w io.Writer, cfg *config.Config, args []string) error {
	fs := newFlagSet("menu", w)
	file := fs.String("file", cfg.Menu.File, "menu layout file (built-in layout when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tree, err := menu.Load(*file)
	if err != nil {
		return err
	}
	return printTree(w, tree)
}

func printTree(w io.Writer, tree *menu.Tree) error {
	return tree.Walk(func(depth int, node menu.Node) error {
		indent := strings.Repeat("  ", depth)
		var line string
		switch node.Type {
		case menu.NodeSeparator:
			line = indent + "---"
		case menu.NodeGroup:
			line = indent + node.Label
		case menu.NodePredefined:
			line = fmt.Sprintf("%s%s <%s>", indent, node.Label, node.Action)
		default:
			line = fmt.Sprintf("%s%s [%s]", indent, node.Label, node.ID)
			if node.Accelerator != "" {
				line += " " + node.Accelerator
			}
		}
		if node.Type != menu.NodeSeparator && !node.Enabled {
			line += " (disabled)"
		}
		_, err := fmt.Fprintln(w, line)
		return err
	})
}

func handleCommands(w io.Writer, cfg *config.Config) error {
	_, table, err := loadDispatch(cfg.Menu.File)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%-16s %s\n", "ID", "Command")
	for _, id := range table.IDs() {
		fmt.Fprintf(w, "%-16s %s\n", id, table.Resolve(id))
	}
	return nil
}

func handleValidate(w io.Writer, cfg *config.Config, args []string) error {
	fs := newFlagSet("validate", w)
	file := fs.String("file", cfg.Menu.File, "menu layout file to validate")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*file) == "" {
		return errors.New("missing --file for validate")
	}

	tree, table, err := loadDispatch(*file)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %d menus, %d commands\n", *file, len(tree.Roots()), len(table.IDs()))
	return nil
}

func handleInit(w io.Writer, cfg *config.Config, args []string) error {
	fs := newFlagSet("init", w)
	force := fs.Bool("force", false, "overwrite an existing configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path, err := config.Path()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !*force {
		return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", path)
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote configuration to %s\n", path)
	return nil
}

// loadDispatch builds the menu tree and checks it against the command table.
func loadDispatch(file string) (*menu.Tree, *command.Table, error) {
	tree, err := menu.Load(file)
	if err != nil {
		return nil, nil, err
	}
	table, err := command.NewTable(command.DefaultEntries(), tree.CustomIDs())
	if err != nil {
		return nil, nil, err
	}
	return tree, table, nil
}
