package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/example/appmenu/internal/config"
	"github.com/example/appmenu/internal/logging"
)

func main() {
	log.SetFlags(0)

	args, debug, configPath, err := parseGlobalFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}
	if configPath != "" {
		if err := os.Setenv("APPMENU_CONFIG", configPath); err != nil {
			log.Fatalf("failed to apply --config: %v", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if debug || cfg.Debug {
		logging.EnableDebug()
		logging.Debugf("debug logging enabled")
	}

	if len(args) > 0 && normalizeCommand(args[0]) != "run" {
		if err := handleCLI(os.Stdout, cfg, args); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	if err := run(cfg); err != nil {
		log.Fatalf("appmenu exited with error: %v", err)
	}
}

// parseGlobalFlags strips --debug and --config from args wherever they
// appear. Stray -X linker arguments are dropped.
func parseGlobalFlags(args []string) ([]string, bool, string, error) {
	filtered := make([]string, 0, len(args))
	debug := false
	configPath := ""

	for i := 0; i < len(args); i++ {
		raw := args[i]
		if raw == "-X" || raw == "--X" {
			i++
			continue
		}
		if strings.HasPrefix(raw, "-X") && !strings.HasPrefix(raw, "--") {
			continue
		}

		name, value, hasValue := strings.Cut(strings.TrimLeft(raw, "-"), "=")
		if !strings.HasPrefix(raw, "-") {
			filtered = append(filtered, raw)
			continue
		}

		switch strings.ToLower(name) {
		case "debug":
			if !hasValue {
				debug = true
				continue
			}
			switch strings.ToLower(value) {
			case "1", "true", "yes", "on":
				debug = true
			case "0", "false", "no", "off":
				debug = false
			default:
				return nil, false, "", fmt.Errorf("invalid value for --debug: %s", value)
			}
		case "config":
			if !hasValue {
				if i+1 >= len(args) {
					return nil, false, "", errors.New("--config requires a path")
				}
				i++
				value = args[i]
			}
			configPath = strings.Trim(value, "\"")
		default:
			filtered = append(filtered, raw)
		}
	}
	return filtered, debug, configPath, nil
}

func handleCLI(w io.Writer, cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return errors.New("no command provided")
	}

	switch normalizeCommand(args[0]) {
	case "menu":
		return handleMenu(w, cfg, args[1:])
	case "commands":
		return handleCommands(w, cfg)
	case "validate":
		return handleValidate(w, cfg, args[1:])
	case "init":
		return handleInit(w, cfg, args[1:])
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func normalizeCommand(arg string) string {
	trimmed := strings.TrimLeft(arg, "-/")
	return strings.ToLower(trimmed)
}

func newFlagSet(name string, w io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	return fs
}
