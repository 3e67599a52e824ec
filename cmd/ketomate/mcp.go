// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/itstoasti/ketomate/internal/ai"
	"github.com/itstoasti/ketomate/internal/mcp"
	"github.com/itstoasti/ketomate/internal/provider/openfoodfacts"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant
integration. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "ketomate": {
        "command": "ketomate",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  log_meal        Log a meal with its macros
  list_meals      List recent meals
  delete_meal     Delete a meal by ID
  daily_macros    Consumed and remaining macros for a day
  lookup_barcode  Look up a packaged food by barcode
  analyze_food    Estimate nutrition for a food description
  add_weight      Record a weight entry
  list_weights    List recent weight entries
  add_task        Create a task
  toggle_task     Toggle a task's completion
  end_day         Settle streak and bank XP
  get_stats       Streak, XP, level, badges

AVAILABLE RESOURCES:

  ketomate://today      Today's macro budget and meals
  ketomate://recent     Recent meals and weight entries
  ketomate://progress   Streak, XP, level, badges, open tasks`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var analyzer *ai.Client
		if cfg != nil && cfg.AIProxyURL != "" {
			analyzer = &ai.Client{BaseURL: cfg.AIProxyURL, APIKey: cfg.AIProxyKey}
		}

		server, err := mcp.NewServer(repo, &openfoodfacts.Client{}, analyzer)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
