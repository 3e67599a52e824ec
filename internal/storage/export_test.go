// ABOUTME: Tests for export/import round trips.
// ABOUTME: Covers JSON, YAML, and Markdown outputs.
package storage

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/itstoasti/ketomate/internal/models"
	"gopkg.in/yaml.v3"
)

func seededDB(t *testing.T) *DB {
	t.Helper()
	db := testDB(t)

	meal := models.NewMeal("omelette", models.MealBreakfast,
		time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC),
		models.Macro{Carbs: 3, Protein: 20, Fat: 25, Calories: 320})
	if err := db.CreateMeal(meal); err != nil {
		t.Fatalf("seed meal: %v", err)
	}
	if err := db.CreateWeightEntry(models.NewWeightEntry(82.5)); err != nil {
		t.Fatalf("seed weight: %v", err)
	}
	if err := db.CreateTask(models.NewTask("meal prep", models.EffortMedium, time.Now())); err != nil {
		t.Fatalf("seed task: %v", err)
	}
	if err := db.CreateNote(models.NewNote("idea", "try 16:8 fasting")); err != nil {
		t.Fatalf("seed note: %v", err)
	}
	return db
}

func TestExportJSON(t *testing.T) {
	db := seededDB(t)

	out, err := db.ExportJSON()
	if err != nil {
		t.Fatalf("export json: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(out, &data); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if data.Tool != "ketomate" || data.Version != "1.0" {
		t.Errorf("header = %s/%s", data.Tool, data.Version)
	}
	if len(data.Meals) != 1 || len(data.Weights) != 1 || len(data.Tasks) != 1 || len(data.Notes) != 1 {
		t.Errorf("counts: meals=%d weights=%d tasks=%d notes=%d",
			len(data.Meals), len(data.Weights), len(data.Tasks), len(data.Notes))
	}
	if data.Stats == nil || data.Profile == nil {
		t.Error("expected profile and stats in export")
	}
}

func TestExportYAML(t *testing.T) {
	db := seededDB(t)

	out, err := db.ExportYAML()
	if err != nil {
		t.Fatalf("export yaml: %v", err)
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(out, &data); err != nil {
		t.Fatalf("unmarshal yaml: %v", err)
	}
	if data["tool"] != "ketomate" {
		t.Errorf("tool = %v", data["tool"])
	}
}

func TestExportMarkdown(t *testing.T) {
	db := seededDB(t)

	out, err := db.ExportMarkdown()
	if err != nil {
		t.Fatalf("export markdown: %v", err)
	}

	md := string(out)
	for _, want := range []string{"# KetoMate Export", "## Meals", "omelette", "## Weight History", "## Tasks", "meal prep"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestImportRoundTrip(t *testing.T) {
	src := seededDB(t)
	data, err := src.GetAllData()
	if err != nil {
		t.Fatalf("get all data: %v", err)
	}

	dst, err := Open(filepath.Join(t.TempDir(), "restore.db"))
	if err != nil {
		t.Fatalf("open destination: %v", err)
	}
	defer dst.Close()

	if err := dst.ImportData(data); err != nil {
		t.Fatalf("import: %v", err)
	}

	meals, _ := dst.ListMeals(0)
	if len(meals) != 1 || meals[0].Name != "omelette" {
		t.Errorf("imported meals = %+v", meals)
	}
	weights, _ := dst.ListWeightEntries(0)
	if len(weights) != 1 {
		t.Errorf("imported weights = %d", len(weights))
	}
}
