// ABOUTME: CLI commands for tasks: add, list, edit, toggle completion, delete.
// ABOUTME: Completion drives XP and the daily streak via the gamify package.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/itstoasti/ketomate/internal/gamify"
	"github.com/itstoasti/ketomate/internal/models"
	"github.com/spf13/cobra"
)

var (
	taskEffort string
	taskDate   string
	taskNotes  string
	taskAll    bool

	taskEditEffort string
	taskEditDate   string
	taskEditNotes  string
)

var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"t"},
	Short:   "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Long: `Add a task. The effort tier sets the XP earned on completion:
easy 5, medium 10, hard 15.

Adding a task before 8am earns the Early Bird badge; creating five
future-dated tasks earns Planner.

Examples:
  ketomate task add "meal prep"
  ketomate task add "24h fast" --effort hard
  ketomate task add "grocery run" --date 2026-09-05`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !models.IsValidEffort(taskEffort) {
			return fmt.Errorf("unknown effort: %s (use easy, medium, or hard)", taskEffort)
		}

		day := time.Now()
		if taskDate != "" {
			t, err := time.Parse("2006-01-02", taskDate)
			if err != nil {
				return fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", taskDate)
			}
			day = t
		}

		task := models.NewTask(args[0], models.Effort(taskEffort), day)
		if taskNotes != "" {
			task.WithNotes(taskNotes)
		}

		if err := repo.CreateTask(task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		stats, err := repo.GetStats()
		if err != nil {
			return fmt.Errorf("failed to load stats: %w", err)
		}
		earned := gamify.TaskCreated(stats, task, time.Now())
		if err := repo.SaveStats(stats); err != nil {
			return fmt.Errorf("failed to save stats: %w", err)
		}

		color.Green("✓ Added %s task: %s", task.Effort, task.Title)
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(task.ID.String()[:8]))
		for _, id := range earned {
			printBadgeEarned(stats, id)
		}

		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List open tasks for today and earlier. Completed tasks and
future-dated tasks are shown with --all.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := repo.ListTasks()
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		today := time.Now()
		faint := color.New(color.Faint)
		shown := 0
		for _, t := range tasks {
			if !taskAll {
				if t.Completed {
					continue
				}
				if day, ok := t.Day(); ok && day.After(today) {
					continue
				}
			}
			shown++

			check := " "
			if t.Completed {
				check = color.GreenString("✓")
			}
			pomo := ""
			if t.PomodoroCount > 0 {
				pomo = faint.Sprintf(" 🍅x%d", t.PomodoroCount)
			}
			if t.PomodoroActive {
				pomo += faint.Sprintf(" (focus: %s left)", formatDuration(gamify.Remaining(t, time.Now())))
			}
			fmt.Printf("[%s] %s %s %s %s%s\n",
				check,
				faint.Sprint(t.ID.String()[:8]),
				faint.Sprint(t.Date),
				padRight(string(t.Effort), 6),
				t.Title,
				pomo)
		}

		if shown == 0 {
			fmt.Println("No tasks found.")
		}
		return nil
	},
}

var taskDoneCmd = &cobra.Command{
	Use:     "done <id>",
	Aliases: []string{"toggle"},
	Short:   "Toggle a task's completion",
	Long: `Toggle a task's completion by ID or ID prefix. Completing a task earns
its effort XP; toggling it back refunds the XP and counters.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := repo.GetTask(args[0])
		if err != nil {
			return fmt.Errorf("task not found: %s", args[0])
		}

		stats, err := repo.GetStats()
		if err != nil {
			return fmt.Errorf("failed to load stats: %w", err)
		}

		result := gamify.ToggleTask(stats, task, time.Now())

		if err := repo.UpdateTask(task); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		if err := repo.SaveStats(stats); err != nil {
			return fmt.Errorf("failed to save stats: %w", err)
		}

		if result.Completed {
			color.Green("✓ Completed: %s (+%d XP)", task.Title, result.XPDelta)
		} else {
			color.Yellow("↺ Reopened: %s (%d XP)", task.Title, result.XPDelta)
		}
		for _, id := range result.BadgesEarned {
			printBadgeEarned(stats, id)
		}

		return nil
	},
}

var taskEditCmd = &cobra.Command{
	Use:   "edit <id> [title]",
	Short: "Edit a task",
	Long: `Edit a task's title, effort, notes, or scheduled day. Only the given
flags change. Changing effort does not retroactively adjust XP already
earned; the new tier applies on the next completion.

Examples:
  ketomate task edit a1b2c3d4 "meal prep for the week"
  ketomate task edit a1b2c3d4 --effort hard
  ketomate task edit a1b2c3d4 --date 2026-09-06`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := repo.GetTask(args[0])
		if err != nil {
			return fmt.Errorf("task not found: %s", args[0])
		}

		if len(args) == 2 {
			task.Title = args[1]
		}
		if cmd.Flags().Changed("effort") {
			if !models.IsValidEffort(taskEditEffort) {
				return fmt.Errorf("unknown effort: %s (use easy, medium, or hard)", taskEditEffort)
			}
			task.Effort = models.Effort(taskEditEffort)
		}
		if cmd.Flags().Changed("notes") {
			task.WithNotes(taskEditNotes)
		}
		if taskEditDate != "" {
			if _, err := time.Parse("2006-01-02", taskEditDate); err != nil {
				return fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", taskEditDate)
			}
			task.Date = taskEditDate
		}

		if err := repo.UpdateTask(task); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		color.Green("✓ Updated %s task: %s", task.Effort, task.Title)
		return nil
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := repo.GetTask(args[0])
		if err != nil {
			return fmt.Errorf("task not found: %s", args[0])
		}

		if err := repo.DeleteTask(args[0]); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}

		color.Yellow("✗ Deleted: %s", task.Title)
		return nil
	},
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

func init() {
	taskAddCmd.Flags().StringVarP(&taskEffort, "effort", "e", "medium", "effort tier (easy, medium, hard)")
	taskAddCmd.Flags().StringVar(&taskDate, "date", "", "scheduled day (YYYY-MM-DD, default today)")
	taskAddCmd.Flags().StringVar(&taskNotes, "notes", "", "notes for the task")

	taskListCmd.Flags().BoolVarP(&taskAll, "all", "a", false, "include completed and future-dated tasks")

	taskEditCmd.Flags().StringVarP(&taskEditEffort, "effort", "e", "", "new effort tier (easy, medium, hard)")
	taskEditCmd.Flags().StringVar(&taskEditDate, "date", "", "new scheduled day (YYYY-MM-DD)")
	taskEditCmd.Flags().StringVar(&taskEditNotes, "notes", "", "replacement notes")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskEditCmd)
	taskCmd.AddCommand(taskDeleteCmd)
	rootCmd.AddCommand(taskCmd)
}
