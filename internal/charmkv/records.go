// ABOUTME: Repository implementation over Charm KV for all tracker entities.
// ABOUTME: Uses type-prefixed keys and client-side filtering and sorting.
package charmkv

import (
	"fmt"
	"sort"
	"time"

	"github.com/itstoasti/ketomate/internal/models"
	"github.com/itstoasti/ketomate/internal/storage"
)

// CreateMeal stores a new meal in the KV store.
func (c *Client) CreateMeal(m *models.Meal) error {
	data, err := marshalJSON(m)
	if err != nil {
		return fmt.Errorf("marshal meal: %w", err)
	}
	return c.set(MealPrefix+m.ID.String(), data)
}

// GetMeal retrieves a meal by ID or ID prefix.
func (c *Client) GetMeal(idOrPrefix string) (*models.Meal, error) {
	data, err := c.getByIDPrefix(MealPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get meal: %w", err)
	}
	meal, err := unmarshalJSON[models.Meal](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal meal: %w", err)
	}
	return meal, nil
}

// ListMeals retrieves meals sorted by date descending.
func (c *Client) ListMeals(limit int) ([]*models.Meal, error) {
	allData, err := c.listByPrefix(MealPrefix)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}

	var meals []*models.Meal
	for _, data := range allData {
		m, err := unmarshalJSON[models.Meal](data)
		if err != nil {
			continue // Skip invalid entries
		}
		meals = append(meals, m)
	}

	sort.Slice(meals, func(i, j int) bool {
		if meals[i].Date != meals[j].Date {
			return meals[i].Date > meals[j].Date
		}
		return meals[i].Time > meals[j].Time
	})

	if limit > 0 && len(meals) > limit {
		meals = meals[:limit]
	}
	return meals, nil
}

// ListMealsByDate retrieves all meals logged on the given calendar day.
func (c *Client) ListMealsByDate(date time.Time) ([]*models.Meal, error) {
	all, err := c.ListMeals(0)
	if err != nil {
		return nil, err
	}

	day := date.Format("2006-01-02")
	var meals []*models.Meal
	for _, m := range all {
		if m.Date == day {
			meals = append(meals, m)
		}
	}
	sort.Slice(meals, func(i, j int) bool { return meals[i].Time < meals[j].Time })
	return meals, nil
}

// DeleteMeal removes a meal by ID or prefix.
func (c *Client) DeleteMeal(idOrPrefix string) error {
	if err := c.deleteByIDPrefix(MealPrefix, idOrPrefix); err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	return nil
}

// CreateWeightEntry stores a new weight entry.
func (c *Client) CreateWeightEntry(w *models.WeightEntry) error {
	data, err := marshalJSON(w)
	if err != nil {
		return fmt.Errorf("marshal weight entry: %w", err)
	}
	return c.set(WeightPrefix+w.ID.String(), data)
}

// GetWeightEntry retrieves a weight entry by ID or ID prefix.
func (c *Client) GetWeightEntry(idOrPrefix string) (*models.WeightEntry, error) {
	data, err := c.getByIDPrefix(WeightPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get weight entry: %w", err)
	}
	entry, err := unmarshalJSON[models.WeightEntry](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal weight entry: %w", err)
	}
	return entry, nil
}

// ListWeightEntries retrieves weight history, most recent first.
func (c *Client) ListWeightEntries(limit int) ([]*models.WeightEntry, error) {
	allData, err := c.listByPrefix(WeightPrefix)
	if err != nil {
		return nil, fmt.Errorf("list weight entries: %w", err)
	}

	var entries []*models.WeightEntry
	for _, data := range allData {
		w, err := unmarshalJSON[models.WeightEntry](data)
		if err != nil {
			continue
		}
		entries = append(entries, w)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RecordedAt.After(entries[j].RecordedAt)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// UpdateWeightEntry rewrites an existing entry.
func (c *Client) UpdateWeightEntry(w *models.WeightEntry) error {
	return c.CreateWeightEntry(w)
}

// DeleteWeightEntry removes a weight entry by ID or prefix.
func (c *Client) DeleteWeightEntry(idOrPrefix string) error {
	if err := c.deleteByIDPrefix(WeightPrefix, idOrPrefix); err != nil {
		return fmt.Errorf("delete weight entry: %w", err)
	}
	return nil
}

// GetProfile returns the stored profile, creating one with defaults on
// first load.
func (c *Client) GetProfile() (*models.UserProfile, error) {
	data, err := c.get(profileKey)
	if err != nil || len(data) == 0 {
		p := models.DefaultProfile()
		if err := c.SaveProfile(p); err != nil {
			return nil, err
		}
		return p, nil
	}
	profile, err := unmarshalJSON[models.UserProfile](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return profile, nil
}

// SaveProfile writes the profile record.
func (c *Client) SaveProfile(p *models.UserProfile) error {
	data, err := marshalJSON(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return c.set(profileKey, data)
}

// CreateTask stores a new task.
func (c *Client) CreateTask(t *models.Task) error {
	data, err := marshalJSON(t)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}
	return c.set(TaskPrefix+t.ID.String(), data)
}

// GetTask retrieves a task by ID or ID prefix.
func (c *Client) GetTask(idOrPrefix string) (*models.Task, error) {
	data, err := c.getByIDPrefix(TaskPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	task, err := unmarshalJSON[models.Task](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal task: %w", err)
	}
	return task, nil
}

// ListTasks retrieves all tasks, oldest first.
func (c *Client) ListTasks() ([]*models.Task, error) {
	allData, err := c.listByPrefix(TaskPrefix)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	var tasks []*models.Task
	for _, data := range allData {
		t, err := unmarshalJSON[models.Task](data)
		if err != nil {
			continue
		}
		tasks = append(tasks, t)
	}

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

// UpdateTask rewrites a task.
func (c *Client) UpdateTask(t *models.Task) error {
	return c.CreateTask(t)
}

// SaveTasks rewrites a set of tasks. Used by the day-end transition.
func (c *Client) SaveTasks(tasks []*models.Task) error {
	for _, t := range tasks {
		if err := c.CreateTask(t); err != nil {
			return err
		}
	}
	return nil
}

// DeleteTask removes a task by ID or prefix.
func (c *Client) DeleteTask(idOrPrefix string) error {
	if err := c.deleteByIDPrefix(TaskPrefix, idOrPrefix); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// CreateNote stores a new note.
func (c *Client) CreateNote(n *models.Note) error {
	data, err := marshalJSON(n)
	if err != nil {
		return fmt.Errorf("marshal note: %w", err)
	}
	return c.set(NotePrefix+n.ID.String(), data)
}

// GetNote retrieves a note by ID or ID prefix.
func (c *Client) GetNote(idOrPrefix string) (*models.Note, error) {
	data, err := c.getByIDPrefix(NotePrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	note, err := unmarshalJSON[models.Note](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal note: %w", err)
	}
	return note, nil
}

// ListNotes retrieves notes, most recently updated first.
func (c *Client) ListNotes(limit int) ([]*models.Note, error) {
	allData, err := c.listByPrefix(NotePrefix)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	var notes []*models.Note
	for _, data := range allData {
		n, err := unmarshalJSON[models.Note](data)
		if err != nil {
			continue
		}
		notes = append(notes, n)
	}

	sort.Slice(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})

	if limit > 0 && len(notes) > limit {
		notes = notes[:limit]
	}
	return notes, nil
}

// UpdateNote rewrites a note, stamping UpdatedAt.
func (c *Client) UpdateNote(n *models.Note) error {
	n.UpdatedAt = time.Now()
	return c.CreateNote(n)
}

// DeleteNote removes a note by ID or prefix.
func (c *Client) DeleteNote(idOrPrefix string) error {
	if err := c.deleteByIDPrefix(NotePrefix, idOrPrefix); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

// GetStats returns the stored gamification stats, creating a fresh
// record on first load.
func (c *Client) GetStats() (*models.Stats, error) {
	data, err := c.get(statsKey)
	if err != nil || len(data) == 0 {
		s := models.NewStats()
		if err := c.SaveStats(s); err != nil {
			return nil, err
		}
		return s, nil
	}
	stats, err := unmarshalJSON[models.Stats](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal stats: %w", err)
	}
	return stats, nil
}

// SaveStats writes the gamification stats record.
func (c *Client) SaveStats(s *models.Stats) error {
	data, err := marshalJSON(s)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	return c.set(statsKey, data)
}

// GetAllData retrieves all data for export.
func (c *Client) GetAllData() (*storage.ExportData, error) {
	meals, err := c.ListMeals(0)
	if err != nil {
		return nil, err
	}
	weights, err := c.ListWeightEntries(0)
	if err != nil {
		return nil, err
	}
	tasks, err := c.ListTasks()
	if err != nil {
		return nil, err
	}
	notes, err := c.ListNotes(0)
	if err != nil {
		return nil, err
	}
	profile, err := c.GetProfile()
	if err != nil {
		return nil, err
	}
	stats, err := c.GetStats()
	if err != nil {
		return nil, err
	}

	return &storage.ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "ketomate",
		Profile:    profile,
		Meals:      meals,
		Weights:    weights,
		Tasks:      tasks,
		Notes:      notes,
		Stats:      stats,
	}, nil
}

// ImportData imports data from an export file.
func (c *Client) ImportData(data *storage.ExportData) error {
	if data.Profile != nil {
		if err := c.SaveProfile(data.Profile); err != nil {
			return err
		}
	}
	if data.Stats != nil {
		if err := c.SaveStats(data.Stats); err != nil {
			return err
		}
	}
	for _, m := range data.Meals {
		if err := c.CreateMeal(m); err != nil {
			return err
		}
	}
	for _, w := range data.Weights {
		if err := c.CreateWeightEntry(w); err != nil {
			return err
		}
	}
	for _, t := range data.Tasks {
		if err := c.CreateTask(t); err != nil {
			return err
		}
	}
	for _, n := range data.Notes {
		if err := c.CreateNote(n); err != nil {
			return err
		}
	}
	return nil
}
