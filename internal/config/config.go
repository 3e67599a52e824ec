// ABOUTME: KetoMate configuration management with backend selection.
// ABOUTME: Also persists the theme preference and onboarding-complete flag.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/itstoasti/ketomate/internal/charmkv"
	"github.com/itstoasti/ketomate/internal/storage"
)

// Config stores ketomate tool configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or
	// "charm" for the Charm Cloud synced store.
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for SQLite data storage.
	// Supports ~ expansion for home directory. Defaults to
	// ~/.local/share/ketomate.
	DataDir string `json:"data_dir,omitempty"`

	// Theme is the display theme preference: "dark" (default) or "light".
	Theme string `json:"theme,omitempty"`

	// OnboardingComplete is set after the first profile setup.
	OnboardingComplete bool `json:"onboarding_complete,omitempty"`

	// AIProxyURL is the LLM proxy endpoint for food analysis. Unset
	// disables the 'food analyze' and 'food label' commands.
	AIProxyURL string `json:"ai_proxy_url,omitempty"`

	// AIProxyKey is the bearer token sent to the LLM proxy, if any.
	AIProxyKey string `json:"ai_proxy_key,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "sqlite"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetTheme returns the configured theme, defaulting to "dark".
func (c *Config) GetTheme() string {
	if c.Theme == "" {
		return "dark"
	}
	return c.Theme
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the
// configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	switch backend := c.GetBackend(); backend {
	case "sqlite":
		dbPath := filepath.Join(c.GetDataDir(), "ketomate.db")
		return storage.Open(dbPath)
	case "charm":
		return charmkv.InitClient()
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "ketomate", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
