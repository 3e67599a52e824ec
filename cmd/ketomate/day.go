// ABOUTME: CLI commands for the daily macro summary and the day-end transition.
// ABOUTME: 'day' shows totals and remaining budget; 'day end' settles the streak.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/itstoasti/ketomate/internal/gamify"
	"github.com/itstoasti/ketomate/internal/ledger"
	"github.com/itstoasti/ketomate/internal/models"
	"github.com/spf13/cobra"
)

var dayDate string

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Show the day's macro summary",
	Long: `Show consumed and remaining macros for a day against the daily budget.

Over-budget values are highlighted. The budget comes from your profile
('ketomate profile') and defaults to 20g net carbs, 120g protein,
150g fat, 1800 kcal.

Examples:
  ketomate day                    # Today
  ketomate day --date 2026-08-30  # A past day
  ketomate day end                # Settle streak and bank XP`,
	RunE: func(cmd *cobra.Command, args []string) error {
		day := time.Now()
		if dayDate != "" {
			t, err := time.Parse("2006-01-02", dayDate)
			if err != nil {
				return fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", dayDate)
			}
			day = t
		}

		profile, err := repo.GetProfile()
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}

		meals, err := repo.ListMealsByDate(day)
		if err != nil {
			return fmt.Errorf("failed to list meals: %w", err)
		}

		summary := ledger.ComputeDaily(meals, day, profile.MacroLimit())

		fmt.Printf("%s\n\n", color.New(color.Bold).Sprint(summary.Date))

		over := summary.OverBudget()
		printMacroRow("carbs", summary.Total.Carbs, summary.Limit.Carbs, summary.Remaining.Carbs, "g", over)
		printMacroRow("protein", summary.Total.Protein, summary.Limit.Protein, summary.Remaining.Protein, "g", over)
		printMacroRow("fat", summary.Total.Fat, summary.Limit.Fat, summary.Remaining.Fat, "g", over)
		printMacroRow("calories", summary.Total.Calories, summary.Limit.Calories, summary.Remaining.Calories, "kcal", over)

		if len(summary.Meals) > 0 {
			fmt.Println()
			faint := color.New(color.Faint)
			for _, m := range summary.Meals {
				fmt.Printf("%s %s %s %s\n",
					faint.Sprint(m.ID.String()[:8]),
					faint.Sprint(m.Time),
					padRight(string(m.Type), 9),
					m.Name)
			}
		}

		return nil
	},
}

var dayEndCmd = &cobra.Command{
	Use:   "end",
	Short: "End the day: settle streak, bank XP, reset tasks",
	Long: `Finalize the current day.

A day with at least 90% of tasks completed, or any task completed,
keeps the streak alive. Otherwise a freeze token is consumed if you
have one; with no tokens the streak resets. Every 7th streak day earns
a freeze token. Completed-task XP plus the day's pomodoro XP is banked,
and all tasks are reset for the new day.

Ending an already-ended day is a no-op; the rollover also fires
automatically the first time you run ketomate on a new calendar day.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := repo.GetStats()
		if err != nil {
			return fmt.Errorf("failed to load stats: %w", err)
		}

		tasks, err := repo.ListTasks()
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		result := gamify.EndDay(stats, tasks, time.Now())
		if !result.Applied {
			fmt.Println(result.Message)
			return nil
		}

		if err := repo.SaveTasks(tasks); err != nil {
			return fmt.Errorf("failed to save tasks: %w", err)
		}
		if err := repo.SaveStats(stats); err != nil {
			return fmt.Errorf("failed to save stats: %w", err)
		}

		switch {
		case result.UsedFreezeToken:
			color.Yellow("❄ %s (streak %d, %d tokens left)", result.Message, result.Streak, stats.FreezeTokens)
		case result.Streak == 0:
			color.Red("✗ %s", result.Message)
		default:
			color.Green("✓ %s: %d days", result.Message, result.Streak)
		}

		if result.EarnedFreezeToken {
			color.Cyan("  earned a freeze token (%d total)", stats.FreezeTokens)
		}
		if result.XPAwarded > 0 {
			fmt.Printf("  +%d XP (level %d)\n", result.XPAwarded, stats.Level)
		}
		for _, id := range result.BadgesEarned {
			printBadgeEarned(stats, id)
		}

		return nil
	},
}

func printMacroRow(name string, total, limit, remaining float64, unit string, over []string) {
	line := fmt.Sprintf("  %s %7.1f / %-7.1f %s  (%.1f left)",
		padRight(name, 9), total, limit, unit, remaining)
	for _, o := range over {
		if o == name {
			color.Red("%s  OVER", line)
			return
		}
	}
	fmt.Println(line)
}

func printBadgeEarned(stats *models.Stats, id string) {
	b := stats.Badge(id)
	if b == nil {
		return
	}
	color.Magenta("  %s badge earned: %s", b.Emoji, b.Description)
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func init() {
	dayCmd.Flags().StringVar(&dayDate, "date", "", "calendar day (YYYY-MM-DD, default today)")
	dayCmd.AddCommand(dayEndCmd)
	rootCmd.AddCommand(dayCmd)
}
