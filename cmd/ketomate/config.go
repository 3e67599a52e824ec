// ABOUTME: CLI commands for tool configuration.
// ABOUTME: Shows, sets, and locates the config file; selects the storage backend.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/itstoasti/ketomate/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tool configuration",
	Long: `Manage tool configuration.

SETTINGS:

  backend       Storage backend: sqlite (default) or charm
  data_dir      SQLite data directory (default ~/.local/share/ketomate)
  theme         Display theme: dark (default) or light
  ai_proxy_url  LLM proxy endpoint for 'food analyze' and 'food label'
  ai_proxy_key  Bearer token for the LLM proxy

The charm backend syncs data across devices via Charm Cloud, encrypted
with your SSH key. Data does not migrate automatically between
backends; use export/import to move it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		fmt.Printf("backend:       %s\n", c.GetBackend())
		fmt.Printf("data_dir:      %s\n", c.GetDataDir())
		fmt.Printf("theme:         %s\n", c.GetTheme())
		if c.AIProxyURL != "" {
			fmt.Printf("ai_proxy_url:  %s\n", c.AIProxyURL)
		}
		color.New(color.Faint).Printf("\nconfig file: %s\n", config.GetConfigPath())
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Examples:
  ketomate config set backend charm
  ketomate config set data_dir ~/keto-data
  ketomate config set theme light
  ketomate config set ai_proxy_url https://example.com/v1/chat/completions`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		key, value := args[0], args[1]
		switch key {
		case "backend":
			if value != "sqlite" && value != "charm" {
				return fmt.Errorf("unknown backend: %s (use sqlite or charm)", value)
			}
			c.Backend = value
		case "data_dir":
			c.DataDir = value
		case "theme":
			if value != "dark" && value != "light" {
				return fmt.Errorf("unknown theme: %s (use dark or light)", value)
			}
			c.Theme = value
		case "ai_proxy_url":
			c.AIProxyURL = value
		case "ai_proxy_key":
			c.AIProxyKey = value
		default:
			return fmt.Errorf("unknown setting: %s", key)
		}

		if err := c.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		color.Green("✓ Set %s", key)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(config.GetConfigPath())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}
