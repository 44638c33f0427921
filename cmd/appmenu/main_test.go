package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/appmenu/internal/command"
	"github.com/example/appmenu/internal/config"
)

func TestParseGlobalFlagsIgnoresBuildXWithSeparateValue(t *testing.T) {
	args := []string{"menu", "-X", "internal/config.CompiledSecret=value", "--debug"}
	filtered, debug, configPath, err := parseGlobalFlags(args)
	if err != nil {
		t.Fatalf("parseGlobalFlags returned error: %v", err)
	}
	if !debug {
		t.Fatalf("expected debug flag to be enabled")
	}
	if configPath != "" {
		t.Fatalf("config path should not be set, got %q", configPath)
	}
	if len(filtered) != 1 || filtered[0] != "menu" {
		t.Fatalf("unexpected filtered args: %#v", filtered)
	}
}

func TestParseGlobalFlagsIgnoresBuildXInline(t *testing.T) {
	args := []string{"menu", "-Xinternal/config.CompiledSecret=value", "-X\"internal/config.CompiledSecret=value\""}
	filtered, debug, _, err := parseGlobalFlags(args)
	if err != nil {
		t.Fatalf("parseGlobalFlags returned error: %v", err)
	}
	if debug {
		t.Fatalf("debug flag should not be set")
	}
	if len(filtered) != 1 || filtered[0] != "menu" {
		t.Fatalf("unexpected filtered args: %#v", filtered)
	}
}

func TestParseGlobalFlagsConfigAndSubcommandFlags(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantArgs   []string
		wantDebug  bool
		wantConfig string
	}{
		{
			name:       "separate config value",
			args:       []string{"--config", "/tmp/appmenu.toml", "validate", "--file", "menu.yaml"},
			wantArgs:   []string{"validate", "--file", "menu.yaml"},
			wantConfig: "/tmp/appmenu.toml",
		},
		{
			name:       "inline config value",
			args:       []string{"commands", "--config=\"/tmp/a b.toml\"", "--debug=true"},
			wantArgs:   []string{"commands"},
			wantDebug:  true,
			wantConfig: "/tmp/a b.toml",
		},
		{
			name:     "debug disabled explicitly",
			args:     []string{"-debug=off", "menu"},
			wantArgs: []string{"menu"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered, debug, configPath, err := parseGlobalFlags(tt.args)
			if err != nil {
				t.Fatalf("parseGlobalFlags returned error: %v", err)
			}
			if strings.Join(filtered, " ") != strings.Join(tt.wantArgs, " ") {
				t.Fatalf("filtered = %#v, want %#v", filtered, tt.wantArgs)
			}
			if debug != tt.wantDebug {
				t.Fatalf("debug = %v, want %v", debug, tt.wantDebug)
			}
			if configPath != tt.wantConfig {
				t.Fatalf("config = %q, want %q", configPath, tt.wantConfig)
			}
		})
	}
}

func TestParseGlobalFlagsErrors(t *testing.T) {
	for _, args := range [][]string{{"--config"}, {"--debug=maybe"}} {
		if _, _, _, err := parseGlobalFlags(args); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestHandleMenuPrintsTree(t *testing.T) {
	var out bytes.Buffer
	if err := handleCLI(&out, &config.Config{}, []string{"menu"}); err != nil {
		t.Fatalf("menu returned error: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"AppMenu\n",
		"  About AppMenu [about]\n",
		"  Quit <quit>\n",
		"Navigate\n",
		"  Home [home] Cmd+1\n",
		"  Dark Theme [theme-dark] Cmd+D\n",
		"  ---\n",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("menu output missing %q:\n%s", want, text)
		}
	}
}

func TestHandleCommandsPrintsTable(t *testing.T) {
	var out bytes.Buffer
	if err := handleCLI(&out, &config.Config{}, []string{"commands"}); err != nil {
		t.Fatalf("commands returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 11 {
		t.Fatalf("expected header and 10 commands, got %d lines:\n%s", len(lines), out.String())
	}
	if !strings.Contains(out.String(), "ShowSingletonWindow(about)") || !strings.Contains(out.String(), "Navigate(/os-info)") {
		t.Fatalf("unexpected commands output:\n%s", out.String())
	}
}

func TestHandleValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	layout := `menus:
  - type: group
    label: Navigate
    items:
      - {type: item, id: home, label: Home}
      - {type: item, id: clipboard, label: Clipboard}
      - {type: item, id: dialog, label: Dialog}
      - {type: item, id: filesystem, label: File System}
      - {type: item, id: notifications, label: Notifications}
      - {type: item, id: os-info, label: OS Info}
  - type: group
    label: View
    items:
      - {type: item, id: theme-light, label: Light}
      - {type: item, id: theme-dark, label: Dark}
      - {type: item, id: theme-system, label: System}
      - {type: separator}
      - {type: item, id: about, label: About}
`
	if err := os.WriteFile(good, []byte(layout), 0o600); err != nil {
		t.Fatalf("write layout: %v", err)
	}

	var out bytes.Buffer
	if err := handleCLI(&out, &config.Config{}, []string{"validate", "--file", good}); err != nil {
		t.Fatalf("validate returned error: %v", err)
	}
	if !strings.Contains(out.String(), "2 menus, 10 commands") {
		t.Fatalf("unexpected validate output %q", out.String())
	}

	missing := filepath.Join(dir, "missing.yaml")
	short := strings.Replace(layout, "      - {type: item, id: dialog, label: Dialog}\n", "", 1)
	if err := os.WriteFile(missing, []byte(short), 0o600); err != nil {
		t.Fatalf("write layout: %v", err)
	}
	err := handleCLI(&out, &config.Config{}, []string{"validate", "--file", missing})
	if !errors.Is(err, command.ErrTableMismatch) {
		t.Fatalf("expected ErrTableMismatch, got %v", err)
	}

	if err := handleCLI(&out, &config.Config{}, []string{"validate"}); err == nil {
		t.Fatalf("expected error without --file")
	}
}

func TestHandleInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appmenu", "config.toml")
	t.Setenv("APPMENU_CONFIG", path)

	cfg := &config.Config{Bridge: config.BridgeConfig{Addr: config.DefaultBridgeAddr}}
	var out bytes.Buffer
	if err := handleCLI(&out, cfg, []string{"init"}); err != nil {
		t.Fatalf("init returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file: %v", err)
	}
	if err := handleCLI(&out, cfg, []string{"init"}); err == nil {
		t.Fatalf("expected init to refuse overwriting")
	}
	if err := handleCLI(&out, cfg, []string{"init", "--force"}); err != nil {
		t.Fatalf("init --force returned error: %v", err)
	}
}

func TestHandleCLIUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	if err := handleCLI(&out, &config.Config{}, []string{"frobnicate"}); err == nil {
		t.Fatalf("expected error for unknown command")
	}
	if err := handleCLI(&out, &config.Config{}, nil); err == nil {
		t.Fatalf("expected error for empty args")
	}
}
