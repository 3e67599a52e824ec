// ABOUTME: Task CRUD operations for SQLite storage.
// ABOUTME: Supports bulk save for the day-end reset of all tasks.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/itstoasti/ketomate/internal/models"
)

// CreateTask stores a new task.
func (d *DB) CreateTask(t *models.Task) error {
	_, err := d.db.Exec(`
		INSERT INTO tasks (id, title, notes, completed, effort, pomodoro_count,
			pomodoro_active, pomodoro_end_time, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		t.ID.String(),
		t.Title,
		t.Notes,
		boolToInt(t.Completed),
		string(t.Effort),
		t.PomodoroCount,
		boolToInt(t.PomodoroActive),
		timePtrString(t.PomodoroEndTime),
		t.Date,
		t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// GetTask retrieves a task by ID or ID prefix.
func (d *DB) GetTask(idOrPrefix string) (*models.Task, error) {
	id, err := d.resolveID("tasks", idOrPrefix)
	if err != nil {
		return nil, err
	}

	row := d.db.QueryRow(`
		SELECT id, title, notes, completed, effort, pomodoro_count,
			pomodoro_active, pomodoro_end_time, date, created_at
		FROM tasks WHERE id = ?
	`, id)
	return scanTask(row)
}

// ListTasks retrieves all tasks, oldest first.
func (d *DB) ListTasks() ([]*models.Task, error) {
	rows, err := d.db.Query(`
		SELECT id, title, notes, completed, effort, pomodoro_count,
			pomodoro_active, pomodoro_end_time, date, created_at
		FROM tasks
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// UpdateTask rewrites a task's mutable fields.
func (d *DB) UpdateTask(t *models.Task) error {
	result, err := d.db.Exec(`
		UPDATE tasks SET title = ?, notes = ?, completed = ?, effort = ?,
			pomodoro_count = ?, pomodoro_active = ?, pomodoro_end_time = ?, date = ?
		WHERE id = ?
	`,
		t.Title,
		t.Notes,
		boolToInt(t.Completed),
		string(t.Effort),
		t.PomodoroCount,
		boolToInt(t.PomodoroActive),
		timePtrString(t.PomodoroEndTime),
		t.Date,
		t.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", t.ID.String())
	}
	return nil
}

// SaveTasks rewrites a set of tasks in one transaction. Used by the
// day-end transition, which resets every task at once.
func (d *DB) SaveTasks(tasks []*models.Task) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, t := range tasks {
		_, err := tx.Exec(`
			UPDATE tasks SET title = ?, notes = ?, completed = ?, effort = ?,
				pomodoro_count = ?, pomodoro_active = ?, pomodoro_end_time = ?, date = ?
			WHERE id = ?
		`,
			t.Title,
			t.Notes,
			boolToInt(t.Completed),
			string(t.Effort),
			t.PomodoroCount,
			boolToInt(t.PomodoroActive),
			timePtrString(t.PomodoroEndTime),
			t.Date,
			t.ID.String(),
		)
		if err != nil {
			return fmt.Errorf("save task %s: %w", t.ID.String()[:8], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// DeleteTask removes a task by ID or prefix.
func (d *DB) DeleteTask(idOrPrefix string) error {
	id, err := d.resolveID("tasks", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", idOrPrefix)
	}
	return nil
}

func scanTask(row rowScanner) (*models.Task, error) {
	var t models.Task
	var idStr, effort, createdAt string
	var notes, endTime sql.NullString
	var completed, active int

	err := row.Scan(&idStr, &t.Title, &notes, &completed, &effort, &t.PomodoroCount,
		&active, &endTime, &t.Date, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("not found")
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}

	t.ID, _ = uuid.Parse(idStr)
	t.Effort = models.Effort(effort)
	t.Completed = completed != 0
	t.PomodoroActive = active != 0
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if notes.Valid {
		t.Notes = notes.String
	}
	if endTime.Valid && endTime.String != "" {
		if ts, err := time.Parse(time.RFC3339, endTime.String); err == nil {
			t.PomodoroEndTime = &ts
		}
	}
	return &t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func timePtrString(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}
