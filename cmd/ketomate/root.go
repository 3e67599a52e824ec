// ABOUTME: Root Cobra command for ketomate CLI.
// ABOUTME: Opens the configured storage backend and runs day rollover on load.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/itstoasti/ketomate/internal/config"
	"github.com/itstoasti/ketomate/internal/gamify"
	"github.com/itstoasti/ketomate/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg  *config.Config
	repo storage.Repository
)

var rootCmd = &cobra.Command{
	Use:   "ketomate",
	Short: "Keto diet and habit tracker",
	Long: `KetoMate is a CLI tool for tracking a ketogenic diet and daily habits.

DIET TRACKING:

  Log meals against a daily macro budget (net carbs, protein, fat,
  calories). Foods are rated for keto suitability from their net carbs:
  Keto-Friendly (<=6g), Limit (<=10g), Strictly Limit (<=20g), Avoid.

  $ ketomate meal log "Bacon and Eggs" -t breakfast -c 2 -p 24 -f 30 --cal 380
  $ ketomate day                        # Today's totals and remaining budget
  $ ketomate food barcode 737628064502  # Look up a packaged food
  $ ketomate food analyze "two scrambled eggs with cheddar"
  $ ketomate weight add 82.5            # Track body weight

HABITS AND STREAKS:

  Tasks earn XP by effort (easy 5, medium 10, hard 15). Ending the day
  settles the streak: completing tasks keeps it alive, a freeze token
  covers a missed day, and every 7th streak day earns a new token.

  $ ketomate task add "meal prep" --effort medium
  $ ketomate task done a1b2c3d4
  $ ketomate pomodoro start a1b2c3d4    # 25-minute focus timer
  $ ketomate day end                    # Settle streak and bank XP
  $ ketomate stats                      # Streak, level, badges

SYNC:

  Data lives in SQLite by default. Switch to the Charm Cloud backend to
  sync across devices, E2E encrypted with your SSH key:

  $ ketomate config set backend charm

MCP INTEGRATION:

  Run 'ketomate mcp' to start the Model Context Protocol server for use
  with Claude Desktop or other MCP-compatible AI assistants.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip storage for commands that don't need it
		switch cmd.Name() {
		case "version", "help", "completion":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "config" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}

		return rolloverOnLoad()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// rolloverOnLoad settles expired pomodoros and, when the calendar day
// has changed since the last day-end, applies the day-end transition
// automatically so streak accounting never silently drifts.
func rolloverOnLoad() error {
	stats, err := repo.GetStats()
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}

	tasks, err := repo.ListTasks()
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	now := time.Now()
	dirty := false

	for _, t := range tasks {
		settled := gamify.SettlePomodoro(stats, t, now)
		if settled.Completed {
			dirty = true
			if err := repo.UpdateTask(t); err != nil {
				return fmt.Errorf("failed to save task: %w", err)
			}
		}
	}

	if gamify.NeedsDayEnd(stats, now) {
		result := gamify.EndDay(stats, tasks, now)
		if result.Applied {
			dirty = true
			if err := repo.SaveTasks(tasks); err != nil {
				return fmt.Errorf("failed to save tasks: %w", err)
			}
			color.New(color.Faint).Printf("(rolled over: %s, streak %d)\n", result.Message, result.Streak)
		}
	}

	if dirty {
		if err := repo.SaveStats(stats); err != nil {
			return fmt.Errorf("failed to save stats: %w", err)
		}
	}
	return nil
}
