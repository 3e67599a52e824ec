// ABOUTME: Task model for the streak tracker with effort tiers and pomodoro state.
// ABOUTME: Effort tier determines the XP awarded on completion.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Effort is the task's effort tier.
type Effort string

const (
	EffortEasy   Effort = "easy"
	EffortMedium Effort = "medium"
	EffortHard   Effort = "hard"
)

// AllEfforts returns all valid effort tiers.
var AllEfforts = []Effort{EffortEasy, EffortMedium, EffortHard}

// IsValidEffort checks if a string is a valid effort tier.
func IsValidEffort(s string) bool {
	for _, e := range AllEfforts {
		if string(e) == s {
			return true
		}
	}
	return false
}

// XP returns the XP value of the effort tier.
func (e Effort) XP() int {
	switch e {
	case EffortMedium:
		return 10
	case EffortHard:
		return 15
	default:
		return 5
	}
}

// Task is a single tracked task. Completed and the pomodoro fields are
// implicitly reset at day end; Date is retained.
type Task struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Notes           string     `json:"notes,omitempty"`
	Completed       bool       `json:"completed"`
	Effort          Effort     `json:"effort"`
	PomodoroCount   int        `json:"pomodoro_count"`
	PomodoroActive  bool       `json:"pomodoro_active"`
	PomodoroEndTime *time.Time `json:"pomodoro_end_time,omitempty"`
	Date            string     `json:"date"` // calendar day, YYYY-MM-DD
	CreatedAt       time.Time  `json:"created_at"`
}

// NewTask creates a Task for the given day with generated UUID.
func NewTask(title string, effort Effort, date time.Time) *Task {
	return &Task{
		ID:        uuid.New(),
		Title:     title,
		Effort:    effort,
		Date:      date.Format("2006-01-02"),
		CreatedAt: time.Now(),
	}
}

// WithNotes sets notes on the task.
func (t *Task) WithNotes(notes string) *Task {
	t.Notes = notes
	return t
}

// Day parses the task's calendar day. The bool result is false for
// malformed dates.
func (t *Task) Day() (time.Time, bool) {
	d, err := time.Parse("2006-01-02", t.Date)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// ResetForNewDay clears completion and pomodoro state, keeping Date.
func (t *Task) ResetForNewDay() {
	t.Completed = false
	t.PomodoroActive = false
	t.PomodoroEndTime = nil
	t.PomodoroCount = 0
}
