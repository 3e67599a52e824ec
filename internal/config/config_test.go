// ABOUTME: Tests for config defaults, persistence, and path expansion.
// ABOUTME: Uses XDG_CONFIG_HOME override for isolation.
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	c := &Config{}
	if got := c.GetBackend(); got != "sqlite" {
		t.Errorf("default backend = %s, want sqlite", got)
	}
	if got := c.GetTheme(); got != "dark" {
		t.Errorf("default theme = %s, want dark", got)
	}
	if c.OnboardingComplete {
		t.Error("onboarding must default to incomplete")
	}
}

func TestConfigSaveLoad(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	c := &Config{Backend: "charm", Theme: "light", OnboardingComplete: true}
	if err := c.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Backend != "charm" || loaded.Theme != "light" || !loaded.OnboardingComplete {
		t.Errorf("loaded = %+v", loaded)
	}

	path := filepath.Join(tmp, "ketomate", "config.json")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config at %s: %v", path, err)
	}
}

func TestLoadMissingConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.GetBackend() != "sqlite" {
		t.Errorf("missing config should yield defaults, got %+v", c)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/data", filepath.Join(home, "data")},
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
	}

	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOpenStorageUnknownBackend(t *testing.T) {
	c := &Config{Backend: "postgres"}
	if _, err := c.OpenStorage(); err == nil {
		t.Error("expected error for unknown backend")
	}
}
