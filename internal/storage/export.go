// ABOUTME: Export and import functionality for tracker data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/itstoasti/ketomate/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for tracker data.
type ExportData struct {
	Version    string                `json:"version" yaml:"version"`
	ExportedAt time.Time             `json:"exported_at" yaml:"exported_at"`
	Tool       string                `json:"tool" yaml:"tool"`
	Profile    *models.UserProfile   `json:"profile,omitempty" yaml:"profile,omitempty"`
	Meals      []*models.Meal        `json:"meals" yaml:"meals"`
	Weights    []*models.WeightEntry `json:"weights" yaml:"weights"`
	Tasks      []*models.Task        `json:"tasks" yaml:"tasks"`
	Notes      []*models.Note        `json:"notes" yaml:"notes"`
	Stats      *models.Stats         `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	meals, err := d.ListMeals(0)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	weights, err := d.ListWeightEntries(0)
	if err != nil {
		return nil, fmt.Errorf("list weights: %w", err)
	}
	tasks, err := d.ListTasks()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	notes, err := d.ListNotes(0)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	profile, err := d.GetProfile()
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	stats, err := d.GetStats()
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}

	return &ExportData{
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
func (d *DB) ImportData(data *ExportData) error {
	if data.Profile != nil {
		if err := d.SaveProfile(data.Profile); err != nil {
			return fmt.Errorf("import profile: %w", err)
		}
	}
	if data.Stats != nil {
		if err := d.SaveStats(data.Stats); err != nil {
			return fmt.Errorf("import stats: %w", err)
		}
	}
	for _, m := range data.Meals {
		if err := d.CreateMeal(m); err != nil {
			return fmt.Errorf("import meal: %w", err)
		}
	}
	for _, w := range data.Weights {
		if err := d.CreateWeightEntry(w); err != nil {
			return fmt.Errorf("import weight entry: %w", err)
		}
	}
	for _, t := range data.Tasks {
		if err := d.CreateTask(t); err != nil {
			return fmt.Errorf("import task: %w", err)
		}
	}
	for _, n := range data.Notes {
		if err := d.CreateNote(n); err != nil {
			return fmt.Errorf("import note: %w", err)
		}
	}
	return nil
}

// ExportJSON exports all data as JSON.
func (d *DB) ExportJSON() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return RenderJSON(data)
}

// ExportYAML exports all data as YAML.
func (d *DB) ExportYAML() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return RenderYAML(data)
}

// ExportMarkdown exports all data as a readable Markdown document.
func (d *DB) ExportMarkdown() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return RenderMarkdown(data), nil
}

// RenderJSON renders an export as indented JSON. Package-level so any
// Repository backend's export can be rendered.
func RenderJSON(data *ExportData) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}

// RenderYAML renders an export as YAML.
func RenderYAML(data *ExportData) ([]byte, error) {
	return yaml.Marshal(data)
}

// RenderMarkdown renders an export as a readable Markdown document.
func RenderMarkdown(data *ExportData) []byte {
	var b strings.Builder
	b.WriteString("# KetoMate Export\n\n")
	fmt.Fprintf(&b, "Exported: %s\n\n", data.ExportedAt.Format("2006-01-02 15:04"))

	if data.Stats != nil {
		b.WriteString("## Stats\n\n")
		fmt.Fprintf(&b, "- Streak: %d days\n", data.Stats.Streak)
		fmt.Fprintf(&b, "- Level: %d (%d XP)\n", data.Stats.Level, data.Stats.XP)
		fmt.Fprintf(&b, "- Freeze tokens: %d\n\n", data.Stats.FreezeTokens)
	}

	if len(data.Meals) > 0 {
		b.WriteString("## Meals\n\n")
		b.WriteString("| Date | Time | Type | Name | Carbs | Protein | Fat | Calories |\n")
		b.WriteString("|------|------|------|------|-------|---------|-----|----------|\n")
		for _, m := range data.Meals {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %.1f | %.1f | %.1f | %.0f |\n",
				m.Date, m.Time, m.Type, m.Name,
				m.Macros.Carbs, m.Macros.Protein, m.Macros.Fat, m.Macros.Calories)
		}
		b.WriteString("\n")
	}

	if len(data.Weights) > 0 {
		b.WriteString("## Weight History\n\n")
		b.WriteString("| Date | Weight (kg) | Notes |\n")
		b.WriteString("|------|-------------|-------|\n")
		for _, w := range data.Weights {
			notes := ""
			if w.Notes != nil {
				notes = *w.Notes
			}
			fmt.Fprintf(&b, "| %s | %.1f | %s |\n",
				w.RecordedAt.Format("2006-01-02"), w.WeightKg, notes)
		}
		b.WriteString("\n")
	}

	if len(data.Tasks) > 0 {
		b.WriteString("## Tasks\n\n")
		for _, t := range data.Tasks {
			check := " "
			if t.Completed {
				check = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s (%s, %s)\n", check, t.Title, t.Effort, t.Date)
		}
		b.WriteString("\n")
	}

	if len(data.Notes) > 0 {
		b.WriteString("## Notes\n\n")
		for _, n := range data.Notes {
			fmt.Fprintf(&b, "### %s\n\n%s\n\n", n.Title, n.Content)
		}
	}

	return []byte(b.String())
}
