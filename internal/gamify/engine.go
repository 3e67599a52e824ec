// ABOUTME: Gamification state transitions: task toggling and the day-end transition.
// ABOUTME: Maintains streak, freeze tokens, XP, level, counters, and badges.
package gamify

import (
	"time"

	"github.com/itstoasti/ketomate/internal/models"
)

// StreakThreshold is the completion ratio that qualifies a day for the
// streak on its own; any completion at all also qualifies.
const StreakThreshold = 0.9

// FreezeTokenInterval is the streak length at which a freeze token is
// earned (every Nth consecutive qualifying day).
const FreezeTokenInterval = 7

// ToggleResult describes the effect of a completion toggle.
type ToggleResult struct {
	Completed    bool
	XPDelta      int
	BadgesEarned []string
}

// ToggleTask flips a task's completion flag and applies the mirrored
// counter and XP updates. Toggling twice in succession is a no-op on
// XP and counters. The stats level is recomputed from the new XP.
func ToggleTask(stats *models.Stats, task *models.Task, now time.Time) ToggleResult {
	task.Completed = !task.Completed
	xp := task.Effort.XP()

	var result ToggleResult
	result.Completed = task.Completed

	if task.Completed {
		stats.TasksCompleted++
		stats.DailyTasksCompleted++
		if task.Effort == models.EffortHard {
			stats.HardTasksCompleted++
		}
		stats.XP += xp
		result.XPDelta = xp

		if stats.DailyTasksCompleted >= 5 && stats.AwardBadge(models.BadgeDailyFive, now) {
			result.BadgesEarned = append(result.BadgesEarned, models.BadgeDailyFive)
		}
	} else {
		stats.TasksCompleted = floorZero(stats.TasksCompleted - 1)
		stats.DailyTasksCompleted = floorZero(stats.DailyTasksCompleted - 1)
		if task.Effort == models.EffortHard {
			stats.HardTasksCompleted = floorZero(stats.HardTasksCompleted - 1)
		}
		stats.XP = floorZero(stats.XP - xp)
		result.XPDelta = -xp
	}

	stats.Level = LevelFromXP(stats.XP)
	stats.UpdatedAt = now
	return result
}

// TaskCreated records a newly created task against the badge counters:
// Early Bird for tasks added before 8am local time, and Planner once
// five future-dated tasks have been created.
func TaskCreated(stats *models.Stats, task *models.Task, now time.Time) []string {
	var earned []string

	if now.Hour() < 8 && stats.AwardBadge(models.BadgeEarlyBird, now) {
		earned = append(earned, models.BadgeEarlyBird)
	}

	if day, ok := task.Day(); ok && day.After(startOfDay(now)) {
		stats.FutureTasksCreated++
		if stats.FutureTasksCreated >= 5 && stats.AwardBadge(models.BadgePlanner, now) {
			earned = append(earned, models.BadgePlanner)
		}
	}

	stats.UpdatedAt = now
	return earned
}

// DayEndResult describes the outcome of a day-end transition.
type DayEndResult struct {
	Applied           bool
	Message           string
	Streak            int
	UsedFreezeToken   bool
	EarnedFreezeToken bool
	XPAwarded         int
	BadgesEarned      []string
}

// EndDay finalizes the current day: advances or resets the streak,
// banks the day's task and pomodoro XP, resets daily counters, and
// clears completion state on all tasks (dates are retained).
//
// The transition is guarded by LastEndDay: if the day has already been
// ended on the same calendar day, EndDay is a no-op. This keeps the
// automatic on-load trigger and a manual invocation in the same
// session from double-crediting XP and streak.
func EndDay(stats *models.Stats, tasks []*models.Task, now time.Time) *DayEndResult {
	if stats.LastEndDay != nil && sameDay(*stats.LastEndDay, now) {
		return &DayEndResult{Applied: false, Message: "day already ended", Streak: stats.Streak}
	}

	result := &DayEndResult{Applied: true}

	completed := 0
	taskXP := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
			taskXP += t.Effort.XP()
		}
	}

	ratio := 0.0
	if len(tasks) > 0 {
		ratio = float64(completed) / float64(len(tasks))
	}
	qualifies := ratio >= StreakThreshold || completed > 0

	if qualifies {
		stats.Streak++
		if stats.Streak%FreezeTokenInterval == 0 {
			stats.FreezeTokens++
			result.EarnedFreezeToken = true
		}
		result.Message = "streak continued"
	} else if stats.FreezeTokens > 0 {
		stats.FreezeTokens--
		result.UsedFreezeToken = true
		result.Message = "used a freeze token"
	} else {
		stats.Streak = 0
		result.Message = "streak reset"
	}

	// Bank the day's XP: completed-task XP plus the pomodoro XP
	// accumulated during the day (already capped).
	result.XPAwarded = taskXP + stats.PomodoroXP
	stats.XP += result.XPAwarded
	stats.Level = LevelFromXP(stats.XP)

	// Weekend coverage is tracked off qualifying completions.
	if completed > 0 {
		switch now.Weekday() {
		case time.Saturday:
			stats.SaturdayCompleted = true
		case time.Sunday:
			stats.SundayCompleted = true
		}
	}
	if stats.SaturdayCompleted && stats.SundayCompleted &&
		stats.AwardBadge(models.BadgeWeekendWarrior, now) {
		result.BadgesEarned = append(result.BadgesEarned, models.BadgeWeekendWarrior)
	}

	stats.DailyTasksCompleted = 0
	stats.DailyPomodorosCompleted = 0
	stats.PomodoroXP = 0

	for _, t := range tasks {
		t.ResetForNewDay()
	}

	endDay := now
	stats.LastEndDay = &endDay
	stats.UpdatedAt = now
	result.Streak = stats.Streak
	return result
}

// NeedsDayEnd reports whether an automatic day-end transition is due:
// the stored last-end day differs from the current calendar day.
func NeedsDayEnd(stats *models.Stats, now time.Time) bool {
	if stats.LastEndDay == nil {
		return false
	}
	return !sameDay(*stats.LastEndDay, now)
}

func floorZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
