// ABOUTME: Pomodoro timer transitions: start, settle on expiry, XP award.
// ABOUTME: Pomodoro XP is capped per day; the cap resets at day end.
package gamify

import (
	"fmt"
	"time"

	"github.com/itstoasti/ketomate/internal/models"
)

// PomodoroDuration is the length of one focus session.
const PomodoroDuration = 25 * time.Minute

// PomodoroXP is the XP awarded per completed pomodoro.
const PomodoroXP = 5

// DailyPomodoroXPCap is the maximum pomodoro XP bankable per day.
const DailyPomodoroXPCap = 20

// StartPomodoro begins a focus session on the task, stamping the end
// time at now plus the session duration.
func StartPomodoro(task *models.Task, now time.Time) error {
	if task.PomodoroActive {
		return fmt.Errorf("pomodoro already running on %q", task.Title)
	}
	end := now.Add(PomodoroDuration)
	task.PomodoroActive = true
	task.PomodoroEndTime = &end
	return nil
}

// CancelPomodoro clears an active session without crediting it.
func CancelPomodoro(task *models.Task) {
	task.PomodoroActive = false
	task.PomodoroEndTime = nil
}

// SettleResult describes a settled pomodoro session.
type SettleResult struct {
	Completed    bool
	XPAwarded    int
	BadgesEarned []string
}

// SettlePomodoro checks a task's timer against the clock and, if the
// session has expired, credits it: pomodoro count, daily and total
// counters, XP up to the daily cap, and the Extreme Focus badge at
// five settled sessions in a day. Called on load and by the watch
// loop; settling an inactive or unexpired timer is a no-op.
func SettlePomodoro(stats *models.Stats, task *models.Task, now time.Time) SettleResult {
	var result SettleResult
	if !task.PomodoroActive || task.PomodoroEndTime == nil || now.Before(*task.PomodoroEndTime) {
		return result
	}

	task.PomodoroActive = false
	task.PomodoroEndTime = nil
	task.PomodoroCount++

	stats.DailyPomodorosCompleted++
	stats.TotalPomodoros++

	award := PomodoroXP
	if stats.PomodoroXP+award > DailyPomodoroXPCap {
		award = DailyPomodoroXPCap - stats.PomodoroXP
	}
	if award < 0 {
		award = 0
	}
	stats.PomodoroXP += award

	if stats.DailyPomodorosCompleted >= 5 && stats.AwardBadge(models.BadgeExtremeFocus, now) {
		result.BadgesEarned = append(result.BadgesEarned, models.BadgeExtremeFocus)
	}

	stats.UpdatedAt = now
	result.Completed = true
	result.XPAwarded = award
	return result
}

// Remaining returns the time left on a task's active session, or zero
// if no session is running.
func Remaining(task *models.Task, now time.Time) time.Duration {
	if !task.PomodoroActive || task.PomodoroEndTime == nil {
		return 0
	}
	left := task.PomodoroEndTime.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}
