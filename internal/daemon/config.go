// Package daemon holds the TOML configuration for the gridbill server.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/gridbill/gridbill/internal/logging"
)

// Config is the full server configuration, loaded from config.toml.
type Config struct {
	API     APIConfig      `toml:"api"`
	Store   StoreConfig    `toml:"store"`
	Logging logging.Config `toml:"logging"`
}

// APIConfig governs the HTTP listener.
type APIConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	AccountsDelayMS int    `toml:"accounts_delay_ms"` // Simulated listing latency
	Metrics         bool   `toml:"metrics"`
	WebsiteDir      string `toml:"website_dir"` // Empty: auto-discover
}

// StoreConfig selects the account store backend.
type StoreConfig struct {
	Backend string `toml:"backend"` // memory|sqlite
	Path    string `toml:"path"`    // sqlite only
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host:            "127.0.0.1",
			Port:            8090,
			AccountsDelayMS: 1000,
			Metrics:         true,
		},
		Store: StoreConfig{
			Backend: "memory",
			Path:    filepath.Join(defaultHome(), "accounts.db"),
		},
		Logging: logging.Config{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error;
// the defaults are returned unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = filepath.Join(defaultHome(), "config.toml")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.API.Port <= 0 || c.API.Port > 65535 {
		return fmt.Errorf("api.port %d is out of range", c.API.Port)
	}
	if c.API.AccountsDelayMS < 0 {
		return fmt.Errorf("api.accounts_delay_ms must not be negative")
	}
	switch c.Store.Backend {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("store.backend %q is not memory or sqlite", c.Store.Backend)
	}
	if c.Store.Backend == "sqlite" && c.Store.Path == "" {
		return fmt.Errorf("store.path is required for the sqlite backend")
	}
	return nil
}

// Addr returns the host:port listen address.
func (c APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func defaultHome() string {
	if h := os.Getenv("GRIDBILL_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".gridbill")
}
