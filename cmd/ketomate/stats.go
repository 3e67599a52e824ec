// ABOUTME: CLI command showing gamification progress.
// ABOUTME: Streak, freeze tokens, XP with level progress, and badges.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/itstoasti/ketomate/internal/gamify"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show streak, XP, level, and badges",
	Long: `Show gamification progress: the current streak and freeze tokens, XP
with progress to the next level, lifetime counters, and badges.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := repo.GetStats()
		if err != nil {
			return fmt.Errorf("failed to load stats: %w", err)
		}

		flame := "🔥"
		if stats.Streak == 0 {
			flame = "–"
		}
		fmt.Printf("%s streak: %d days", flame, stats.Streak)
		if stats.FreezeTokens > 0 {
			fmt.Printf("  ❄ x%d", stats.FreezeTokens)
		}
		fmt.Println()

		if stats.Level < gamify.MaxLevel {
			next := gamify.XPForLevel(stats.Level + 1)
			fmt.Printf("⭐ level %d  (%d / %d XP)\n", stats.Level, stats.XP, next)
		} else {
			fmt.Printf("⭐ level %d (max)  %d XP\n", stats.Level, stats.XP)
		}

		faint := color.New(color.Faint)
		faint.Printf("   %d tasks completed (%d hard), %d pomodoros\n",
			stats.TasksCompleted, stats.HardTasksCompleted, stats.TotalPomodoros)

		fmt.Println()
		for _, b := range stats.Badges {
			if b.Earned {
				when := ""
				if b.EarnedAt != nil {
					when = faint.Sprintf("  (%s)", b.EarnedAt.Format("2006-01-02"))
				}
				fmt.Printf("%s %s%s\n", b.Emoji, b.Description, when)
			} else {
				faint.Printf("🔒 %s\n", b.Description)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
