package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	configDirName  = "appmenu"
	configFileName = "config.toml"
	envPrefix      = "APPMENU"
)

// DefaultBridgeAddr is the loopback address the front-end bridge listens on.
const DefaultBridgeAddr = "127.0.0.1:47864"

// Config holds application configuration.
type Config struct {
	Debug  bool         `mapstructure:"debug"`
	Bridge BridgeConfig `mapstructure:"bridge"`
	NATS   NATSConfig   `mapstructure:"nats"`
	Window WindowConfig `mapstructure:"window"`
	Menu   MenuConfig   `mapstructure:"menu"`
}

// BridgeConfig configures the HTTP/websocket bridge serving the web view.
type BridgeConfig struct {
	Addr        string `mapstructure:"addr"`
	Secret      string `mapstructure:"secret"`
	FrontendDir string `mapstructure:"frontend_dir"`
}

// NATSConfig enables forwarding of front-end events to NATS when URL is set.
type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Subject string `mapstructure:"subject"`
}

// WindowConfig selects the program used to open secondary windows.
type WindowConfig struct {
	Launcher string   `mapstructure:"launcher"`
	Args     []string `mapstructure:"args"`
	// BaseURL overrides the bridge URL relative window content resolves against.
	BaseURL  string   `mapstructure:"base_url"`
}

// MenuConfig optionally points at a YAML menu layout replacing the built-in
// one, and at an image used as the tray icon.
type MenuConfig struct {
	File string `mapstructure:"file"`
	Icon string `mapstructure:"icon"`
}

// Path returns the resolved configuration file path.
func Path() (string, error) {
	if custom := strings.TrimSpace(os.Getenv(envPrefix + "_CONFIG")); custom != "" {
		return custom, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("determine user config dir: %w", err)
	}
	return filepath.Join(base, configDirName, configFileName), nil
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("debug", false)
	v.SetDefault("bridge.addr", DefaultBridgeAddr)
	v.SetDefault("bridge.secret", "")
	v.SetDefault("bridge.frontend_dir", "")
	v.SetDefault("nats.url", "")
	v.SetDefault("nats.subject", "appmenu.events")
	v.SetDefault("window.launcher", "")
	v.SetDefault("window.args", []string{})
	v.SetDefault("window.base_url", "")
	v.SetDefault("menu.file", "")
	v.SetDefault("menu.icon", "")

	v.SetConfigType("toml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration file when present and applies APPMENU_*
// environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if strings.TrimSpace(cfg.Bridge.Addr) == "" {
		cfg.Bridge.Addr = DefaultBridgeAddr
	}
	return &cfg, nil
}

// Save persists the configuration, creating the config directory if needed.
func Save(cfg *Config) error {
	if cfg == nil {
		return errors.New("nil configuration")
	}

	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("ensure config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("debug", cfg.Debug)
	v.Set("bridge.addr", cfg.Bridge.Addr)
	v.Set("bridge.secret", cfg.Bridge.Secret)
	v.Set("bridge.frontend_dir", cfg.Bridge.FrontendDir)
	v.Set("nats.url", cfg.NATS.URL)
	v.Set("nats.subject", cfg.NATS.Subject)
	v.Set("window.launcher", cfg.Window.Launcher)
	v.Set("window.args", cfg.Window.Args)
	v.Set("window.base_url", cfg.Window.BaseURL)
	v.Set("menu.file", cfg.Menu.File)
	v.Set("menu.icon", cfg.Menu.Icon)

	// The temp file keeps the .toml extension so viper can infer the encoder.
	tempFile := filepath.Join(filepath.Dir(path), ".tmp-"+filepath.Base(path))
	if err := v.WriteConfigAs(tempFile); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Chmod(tempFile, 0o600); err != nil {
		return fmt.Errorf("restrict config permissions: %w", err)
	}
	return os.Rename(tempFile, path)
}
