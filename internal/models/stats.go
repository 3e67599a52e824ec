// ABOUTME: Stats model holding per-user gamification state.
// ABOUTME: Streak, freeze tokens, XP, level, rolling counters, and badges.
package models

import "time"

// Badge IDs. Each badge has a static unlock predicate evaluated by the
// gamify package; awarding is idempotent.
const (
	BadgeEarlyBird      = "early_bird"
	BadgeDailyFive      = "daily_five"
	BadgeWeekendWarrior = "weekend_warrior"
	BadgeExtremeFocus   = "extreme_focus"
	BadgePlanner        = "planner"
)

// Badge is a gamification achievement.
type Badge struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Emoji       string     `json:"emoji"`
	Earned      bool       `json:"earned"`
	EarnedAt    *time.Time `json:"earned_at,omitempty"`
}

// DefaultBadges returns the full badge set, unearned.
func DefaultBadges() []Badge {
	return []Badge{
		{ID: BadgeEarlyBird, Description: "Add a task before 8am", Emoji: "🐦"},
		{ID: BadgeDailyFive, Description: "Complete 5 tasks in one day", Emoji: "🔥"},
		{ID: BadgeWeekendWarrior, Description: "Complete tasks on both weekend days", Emoji: "🏆"},
		{ID: BadgeExtremeFocus, Description: "Complete 5 pomodoros in one day", Emoji: "🍅"},
		{ID: BadgePlanner, Description: "Create 5 future-dated tasks", Emoji: "📅"},
	}
}

// Stats is the single per-user gamification state record.
type Stats struct {
	Streak                  int        `json:"streak"`
	FreezeTokens            int        `json:"freeze_tokens"`
	XP                      int        `json:"xp"`
	Level                   int        `json:"level"`
	PomodoroXP              int        `json:"pomodoro_xp"` // capped per day, reset at day end
	TasksCompleted          int        `json:"tasks_completed"`
	HardTasksCompleted      int        `json:"hard_tasks_completed"`
	DailyTasksCompleted     int        `json:"daily_tasks_completed"`
	DailyPomodorosCompleted int        `json:"daily_pomodoros_completed"`
	TotalPomodoros          int        `json:"total_pomodoros"`
	FutureTasksCreated      int        `json:"future_tasks_created"`
	SaturdayCompleted       bool       `json:"saturday_completed"`
	SundayCompleted         bool       `json:"sunday_completed"`
	LastEndDay              *time.Time `json:"last_end_day,omitempty"`
	Badges                  []Badge    `json:"badges"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

// NewStats returns a fresh Stats record at level 1 with the default
// badge set.
func NewStats() *Stats {
	return &Stats{
		Level:     1,
		Badges:    DefaultBadges(),
		UpdatedAt: time.Now(),
	}
}

// Badge returns a pointer to the badge with the given ID, or nil.
func (s *Stats) Badge(id string) *Badge {
	for i := range s.Badges {
		if s.Badges[i].ID == id {
			return &s.Badges[i]
		}
	}
	return nil
}

// AwardBadge marks a badge earned at the given time. Re-awarding an
// already-earned badge is a no-op; the result reports whether the
// badge was newly earned.
func (s *Stats) AwardBadge(id string, now time.Time) bool {
	b := s.Badge(id)
	if b == nil || b.Earned {
		return false
	}
	b.Earned = true
	b.EarnedAt = &now
	return true
}
