// ABOUTME: Tests for task toggling and the day-end transition.
// ABOUTME: Covers streak advance, freeze tokens, double-toggle symmetry, and the re-entry guard.
package gamify

import (
	"testing"
	"time"

	"github.com/itstoasti/ketomate/internal/models"
)

func taskOn(date time.Time, effort models.Effort, completed bool) *models.Task {
	t := models.NewTask("task", effort, date)
	t.Completed = completed
	return t
}

func TestToggleTaskComplete(t *testing.T) {
	stats := models.NewStats()
	task := taskOn(time.Now(), models.EffortHard, false)
	now := time.Now()

	result := ToggleTask(stats, task, now)

	if !result.Completed || !task.Completed {
		t.Fatal("expected task to be completed")
	}
	if result.XPDelta != 15 {
		t.Errorf("XPDelta = %d, want 15 for hard task", result.XPDelta)
	}
	if stats.XP != 15 || stats.TasksCompleted != 1 || stats.DailyTasksCompleted != 1 || stats.HardTasksCompleted != 1 {
		t.Errorf("stats after completion: %+v", stats)
	}
}

func TestToggleTwiceIsNoOp(t *testing.T) {
	stats := models.NewStats()
	stats.XP = 120
	stats.Level = LevelFromXP(stats.XP)
	stats.TasksCompleted = 4
	stats.HardTasksCompleted = 2
	before := *stats

	task := taskOn(time.Now(), models.EffortHard, false)
	now := time.Now()

	ToggleTask(stats, task, now)
	ToggleTask(stats, task, now)

	if stats.XP != before.XP {
		t.Errorf("XP = %d, want %d after double toggle", stats.XP, before.XP)
	}
	if stats.TasksCompleted != before.TasksCompleted {
		t.Errorf("TasksCompleted = %d, want %d", stats.TasksCompleted, before.TasksCompleted)
	}
	if stats.HardTasksCompleted != before.HardTasksCompleted {
		t.Errorf("HardTasksCompleted = %d, want %d", stats.HardTasksCompleted, before.HardTasksCompleted)
	}
	if task.Completed {
		t.Error("task should be back to incomplete")
	}
}

func TestToggleUncompleteFloorsAtZero(t *testing.T) {
	stats := models.NewStats()
	task := taskOn(time.Now(), models.EffortEasy, true)

	ToggleTask(stats, task, time.Now())

	if stats.TasksCompleted != 0 || stats.DailyTasksCompleted != 0 || stats.XP != 0 {
		t.Errorf("counters must floor at zero: %+v", stats)
	}
}

func TestToggleDailyFiveBadge(t *testing.T) {
	stats := models.NewStats()
	now := time.Now()

	for i := 0; i < 5; i++ {
		task := taskOn(now, models.EffortEasy, false)
		result := ToggleTask(stats, task, now)
		if i < 4 && len(result.BadgesEarned) != 0 {
			t.Errorf("badge earned too early at completion %d", i+1)
		}
		if i == 4 && (len(result.BadgesEarned) != 1 || result.BadgesEarned[0] != models.BadgeDailyFive) {
			t.Errorf("expected daily five badge on 5th completion, got %v", result.BadgesEarned)
		}
	}
}

func TestEndDayStreakAdvanceAndToken(t *testing.T) {
	stats := models.NewStats()
	stats.Streak = 6
	now := time.Date(2025, 3, 14, 22, 0, 0, 0, time.UTC)

	tasks := []*models.Task{
		taskOn(now, models.EffortEasy, true),
		taskOn(now, models.EffortEasy, true),
		taskOn(now, models.EffortEasy, true),
	}

	result := EndDay(stats, tasks, now)

	if !result.Applied {
		t.Fatal("expected transition to apply")
	}
	if stats.Streak != 7 {
		t.Errorf("streak = %d, want 7", stats.Streak)
	}
	if stats.FreezeTokens != 1 || !result.EarnedFreezeToken {
		t.Errorf("expected freeze token earned on 7th day, tokens = %d", stats.FreezeTokens)
	}
}

func TestEndDayFreezeTokenHoldsStreak(t *testing.T) {
	stats := models.NewStats()
	stats.Streak = 12
	stats.FreezeTokens = 1
	now := time.Date(2025, 3, 14, 22, 0, 0, 0, time.UTC)

	tasks := []*models.Task{
		taskOn(now, models.EffortEasy, false),
		taskOn(now, models.EffortEasy, false),
		taskOn(now, models.EffortEasy, false),
		taskOn(now, models.EffortEasy, false),
		taskOn(now, models.EffortEasy, false),
	}

	result := EndDay(stats, tasks, now)

	if stats.Streak != 12 {
		t.Errorf("streak = %d, want 12 (held by token)", stats.Streak)
	}
	if stats.FreezeTokens != 0 || !result.UsedFreezeToken {
		t.Errorf("expected token consumed, tokens = %d", stats.FreezeTokens)
	}
	if result.Message != "used a freeze token" {
		t.Errorf("message = %q", result.Message)
	}
}

func TestEndDayStreakReset(t *testing.T) {
	stats := models.NewStats()
	stats.Streak = 30
	now := time.Date(2025, 3, 14, 22, 0, 0, 0, time.UTC)

	result := EndDay(stats, []*models.Task{taskOn(now, models.EffortEasy, false)}, now)

	if stats.Streak != 0 {
		t.Errorf("streak = %d, want 0", stats.Streak)
	}
	if result.Message != "streak reset" {
		t.Errorf("message = %q", result.Message)
	}
}

func TestEndDayNoTasksStreakReset(t *testing.T) {
	stats := models.NewStats()
	stats.Streak = 3
	now := time.Date(2025, 3, 14, 22, 0, 0, 0, time.UTC)

	EndDay(stats, nil, now)

	if stats.Streak != 0 {
		t.Errorf("streak = %d, want 0 when no tasks and no tokens", stats.Streak)
	}
}

func TestEndDayBanksXPAndResetsCounters(t *testing.T) {
	stats := models.NewStats()
	stats.PomodoroXP = 15
	stats.DailyTasksCompleted = 3
	stats.DailyPomodorosCompleted = 3
	now := time.Date(2025, 3, 14, 22, 0, 0, 0, time.UTC)

	tasks := []*models.Task{
		taskOn(now, models.EffortHard, true),   // 15
		taskOn(now, models.EffortMedium, true), // 10
		taskOn(now, models.EffortEasy, false),
	}

	result := EndDay(stats, tasks, now)

	if result.XPAwarded != 40 {
		t.Errorf("XPAwarded = %d, want 40 (25 task + 15 pomodoro)", result.XPAwarded)
	}
	if stats.XP != 40 {
		t.Errorf("XP = %d, want 40", stats.XP)
	}
	if stats.PomodoroXP != 0 || stats.DailyTasksCompleted != 0 || stats.DailyPomodorosCompleted != 0 {
		t.Errorf("daily counters not reset: %+v", stats)
	}
	for _, task := range tasks {
		if task.Completed || task.PomodoroActive {
			t.Error("tasks must be reset at day end")
		}
		if task.Date != "2025-03-14" {
			t.Errorf("task date must be retained, got %s", task.Date)
		}
	}
}

func TestEndDayGuardAgainstDoubleFire(t *testing.T) {
	stats := models.NewStats()
	stats.Streak = 4
	now := time.Date(2025, 3, 14, 22, 0, 0, 0, time.UTC)
	tasks := []*models.Task{taskOn(now, models.EffortEasy, true)}

	first := EndDay(stats, tasks, now)
	if !first.Applied {
		t.Fatal("first transition should apply")
	}
	xpAfter := stats.XP
	streakAfter := stats.Streak

	// Second trigger the same day (e.g. automatic on-load plus manual).
	tasks[0].Completed = true
	second := EndDay(stats, tasks, now.Add(30*time.Minute))

	if second.Applied {
		t.Fatal("second transition the same day must be a no-op")
	}
	if stats.XP != xpAfter || stats.Streak != streakAfter {
		t.Errorf("double fire mutated state: xp %d->%d streak %d->%d",
			xpAfter, stats.XP, streakAfter, stats.Streak)
	}
}

func TestEndDayNextDayApplies(t *testing.T) {
	stats := models.NewStats()
	day1 := time.Date(2025, 3, 14, 22, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	EndDay(stats, []*models.Task{taskOn(day1, models.EffortEasy, true)}, day1)

	if !NeedsDayEnd(stats, day2) {
		t.Error("NeedsDayEnd should report true on the next day")
	}
	if NeedsDayEnd(stats, day1) {
		t.Error("NeedsDayEnd should report false on the same day")
	}

	result := EndDay(stats, []*models.Task{taskOn(day2, models.EffortEasy, true)}, day2)
	if !result.Applied || stats.Streak != 2 {
		t.Errorf("next-day transition should apply, streak = %d", stats.Streak)
	}
}

func TestEndDayWeekendWarrior(t *testing.T) {
	stats := models.NewStats()
	saturday := time.Date(2025, 3, 15, 21, 0, 0, 0, time.UTC)
	sunday := saturday.AddDate(0, 0, 1)

	EndDay(stats, []*models.Task{taskOn(saturday, models.EffortEasy, true)}, saturday)
	if !stats.SaturdayCompleted {
		t.Fatal("expected saturday flag set")
	}
	if b := stats.Badge(models.BadgeWeekendWarrior); b.Earned {
		t.Fatal("badge must not be earned after one weekend day")
	}

	result := EndDay(stats, []*models.Task{taskOn(sunday, models.EffortEasy, true)}, sunday)
	if !stats.SundayCompleted {
		t.Fatal("expected sunday flag set")
	}
	if len(result.BadgesEarned) != 1 || result.BadgesEarned[0] != models.BadgeWeekendWarrior {
		t.Errorf("expected weekend warrior badge, got %v", result.BadgesEarned)
	}
}

func TestTaskCreatedEarlyBird(t *testing.T) {
	stats := models.NewStats()
	early := time.Date(2025, 3, 14, 7, 30, 0, 0, time.Local)

	task := taskOn(early, models.EffortEasy, false)
	earned := TaskCreated(stats, task, early)

	if len(earned) != 1 || earned[0] != models.BadgeEarlyBird {
		t.Errorf("expected early bird badge, got %v", earned)
	}

	later := time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local)
	if got := TaskCreated(models.NewStats(), taskOn(later, models.EffortEasy, false), later); len(got) != 0 {
		t.Errorf("no badge expected after 8am, got %v", got)
	}
}

func TestTaskCreatedPlanner(t *testing.T) {
	stats := models.NewStats()
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	for i := 1; i <= 5; i++ {
		future := taskOn(now.AddDate(0, 0, i), models.EffortEasy, false)
		earned := TaskCreated(stats, future, now)
		if i < 5 && len(earned) != 0 {
			t.Errorf("planner badge earned too early at task %d", i)
		}
		if i == 5 && (len(earned) != 1 || earned[0] != models.BadgePlanner) {
			t.Errorf("expected planner badge on 5th future task, got %v", earned)
		}
	}

	// Same-day tasks do not count toward Planner.
	stats2 := models.NewStats()
	TaskCreated(stats2, taskOn(now, models.EffortEasy, false), now)
	if stats2.FutureTasksCreated != 0 {
		t.Errorf("same-day task counted as future, counter = %d", stats2.FutureTasksCreated)
	}
}
