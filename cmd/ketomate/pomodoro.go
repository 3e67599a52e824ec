// ABOUTME: CLI commands for pomodoro focus sessions on tasks.
// ABOUTME: Sessions are 25 minutes; XP is credited when the timer expires.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/itstoasti/ketomate/internal/gamify"
	"github.com/spf13/cobra"
)

var pomodoroWatch bool

var pomodoroCmd = &cobra.Command{
	Use:     "pomodoro",
	Aliases: []string{"pomo"},
	Short:   "Run focus sessions on tasks",
	Long: `Run 25-minute pomodoro focus sessions on tasks.

A session is credited when its timer expires: the task's pomodoro count
goes up and 5 XP is banked, capped at 20 pomodoro XP per day. Five
settled sessions in one day earn the Extreme Focus badge. Expired
timers are settled automatically the next time ketomate runs.`,
}

var pomodoroStartCmd = &cobra.Command{
	Use:   "start <task-id>",
	Short: "Start a pomodoro on a task",
	Long: `Start a 25-minute focus session on a task.

With --watch, the command stays in the foreground counting down and
credits the session when the timer expires.

Examples:
  ketomate pomodoro start a1b2c3d4
  ketomate pomodoro start a1b2c3d4 --watch`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := repo.GetTask(args[0])
		if err != nil {
			return fmt.Errorf("task not found: %s", args[0])
		}

		now := time.Now()
		if err := gamify.StartPomodoro(task, now); err != nil {
			return err
		}
		if err := repo.UpdateTask(task); err != nil {
			return fmt.Errorf("failed to save task: %w", err)
		}

		color.Green("✓ Pomodoro started on %q", task.Title)
		fmt.Printf("  ends at %s\n", color.New(color.Faint).Sprint(task.PomodoroEndTime.Format("15:04")))

		if !pomodoroWatch {
			return nil
		}

		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for now := range ticker.C {
			left := gamify.Remaining(task, now)
			fmt.Printf("\r  %s remaining ", formatDuration(left))
			if left == 0 {
				fmt.Println()
				break
			}
		}

		return settlePomodoro(task.ID.String())
	},
}

var pomodoroStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show active pomodoros",
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := repo.ListTasks()
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		now := time.Now()
		active := 0
		for _, t := range tasks {
			if !t.PomodoroActive {
				continue
			}
			active++
			fmt.Printf("%s %s  %s remaining\n",
				color.New(color.Faint).Sprint(t.ID.String()[:8]),
				t.Title,
				formatDuration(gamify.Remaining(t, now)))
		}

		if active == 0 {
			fmt.Println("No active pomodoros.")
		}
		return nil
	},
}

var pomodoroCancelCmd = &cobra.Command{
	Use:   "cancel <task-id>",
	Short: "Cancel an active pomodoro without credit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := repo.GetTask(args[0])
		if err != nil {
			return fmt.Errorf("task not found: %s", args[0])
		}
		if !task.PomodoroActive {
			return fmt.Errorf("no active pomodoro on %q", task.Title)
		}

		gamify.CancelPomodoro(task)
		if err := repo.UpdateTask(task); err != nil {
			return fmt.Errorf("failed to save task: %w", err)
		}

		color.Yellow("✗ Pomodoro cancelled on %q", task.Title)
		return nil
	},
}

// settlePomodoro re-reads the task and credits the finished session.
func settlePomodoro(id string) error {
	task, err := repo.GetTask(id)
	if err != nil {
		return fmt.Errorf("task not found: %s", id)
	}

	stats, err := repo.GetStats()
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}

	result := gamify.SettlePomodoro(stats, task, time.Now())
	if !result.Completed {
		return nil
	}

	if err := repo.UpdateTask(task); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	if err := repo.SaveStats(stats); err != nil {
		return fmt.Errorf("failed to save stats: %w", err)
	}

	color.Green("✓ Pomodoro complete on %q (+%d XP)", task.Title, result.XPAwarded)
	for _, badgeID := range result.BadgesEarned {
		printBadgeEarned(stats, badgeID)
	}
	return nil
}

func init() {
	pomodoroStartCmd.Flags().BoolVarP(&pomodoroWatch, "watch", "w", false, "stay attached and credit the session on expiry")

	pomodoroCmd.AddCommand(pomodoroStartCmd)
	pomodoroCmd.AddCommand(pomodoroStatusCmd)
	pomodoroCmd.AddCommand(pomodoroCancelCmd)
	rootCmd.AddCommand(pomodoroCmd)
}
