// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/appshell/internal/theme"
)

// AppName is used for the XDG directory names.
const AppName = "appshell"

// Default configuration values.
const (
	DefaultInitialPath = "/"
	DefaultHost        = "localhost"
	DefaultPort        = 23234
	DefaultIdleTimeout = "10m"
	DefaultHostKeyFile = "ssh_host_ed25519"
	DefaultStorageFile = "storage.json"
	DefaultLogFile     = "appshell.log"
)

// Config represents the appshell configuration.
type Config struct {
	Theme   ThemeConfig   `toml:"theme"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
	Serve   ServeConfig   `toml:"serve"`
}

// ThemeConfig holds theme store settings.
type ThemeConfig struct {
	Default      string `toml:"default"`       // light, dark or system
	StorageKey   string `toml:"storage_key"`   // Key the preference is stored under
	Watch        bool   `toml:"watch"`         // Reload when another process changes storage
	DetectSystem bool   `toml:"detect_system"` // Ask the desktop portal when theme is system
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	Path string `toml:"path"` // Empty = $XDG_DATA_HOME/appshell/storage.json
}

// UIConfig holds shell settings.
type UIConfig struct {
	InitialPath string `toml:"initial_path"`
	ShowHelp    bool   `toml:"show_help"`
	AltScreen   bool   `toml:"alt_screen"`
}

// ServeConfig holds SSH server settings.
type ServeConfig struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	HostKeyPath string `toml:"host_key_path"` // Empty = data dir
	IdleTimeout string `toml:"idle_timeout"`  // Go duration, "0" disables
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Theme: ThemeConfig{
			Default:      string(theme.DefaultTheme),
			StorageKey:   theme.DefaultStorageKey,
			Watch:        true,
			DetectSystem: true,
		},
		Storage: StorageConfig{
			Path: "", // Data dir
		},
		UI: UIConfig{
			InitialPath: DefaultInitialPath,
			ShowHelp:    true,
			AltScreen:   true,
		},
		Serve: ServeConfig{
			Host:        DefaultHost,
			Port:        DefaultPort,
			HostKeyPath: "",
			IdleTimeout: DefaultIdleTimeout,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, AppName, "config.toml")
}

// DataPath returns the path to the data directory.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share.
func DataPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, AppName)
}

// StoragePath returns the storage file path, honouring Storage.Path.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return filepath.Join(DataPath(), DefaultStorageFile)
}

// LogPath returns the log file used by the interactive shell.
func LogPath() string {
	return filepath.Join(DataPath(), DefaultLogFile)
}

// HostKeyPath returns the SSH host key path, honouring Serve.HostKeyPath.
func (c *Config) HostKeyPath() string {
	if c.Serve.HostKeyPath != "" {
		return c.Serve.HostKeyPath
	}
	return filepath.Join(DataPath(), DefaultHostKeyFile)
}

// DefaultTheme returns the configured default theme. An unrecognized
// value is logged and replaced with dark.
func (c *Config) DefaultTheme(logger *slog.Logger) theme.Theme {
	t, err := theme.ParseTheme(c.Theme.Default)
	if err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("invalid default theme in config, using dark", "value", c.Theme.Default)
		return theme.DefaultTheme
	}
	return t
}

// IdleTimeout parses Serve.IdleTimeout. Zero disables the timeout.
func (c *Config) IdleTimeout() (time.Duration, error) {
	if c.Serve.IdleTimeout == "" || c.Serve.IdleTimeout == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Serve.IdleTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid serve.idle_timeout %q: %w", c.Serve.IdleTimeout, err)
	}
	return d, nil
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.Theme.StorageKey == "" {
		cfg.Theme.StorageKey = theme.DefaultStorageKey
	}
	if cfg.UI.InitialPath == "" {
		cfg.UI.InitialPath = DefaultInitialPath
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	path := DataPath()
	if path == "" {
		return errors.New("unable to determine data directory")
	}
	return os.MkdirAll(path, 0755)
}
