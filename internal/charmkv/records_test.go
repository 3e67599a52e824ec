// ABOUTME: Unit tests for Charm-based tracker storage.
// ABOUTME: Tests type-prefixed key construction and JSON codecs.
package charmkv

import (
	"testing"
	"time"

	"github.com/itstoasti/ketomate/internal/models"
)

func TestMealKeyFormat(t *testing.T) {
	m := models.NewMeal("lunch", models.MealLunch, time.Now(), models.Macro{})
	key := MealPrefix + m.ID.String()

	if key[:5] != "meal:" {
		t.Errorf("Expected key to start with 'meal:', got: %s", key[:5])
	}
}

func TestKeyPrefixes(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		expected string
	}{
		{"Meal", MealPrefix, "meal:"},
		{"Weight", WeightPrefix, "weight:"},
		{"Task", TaskPrefix, "task:"},
		{"Note", NotePrefix, "note:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prefix != tt.expected {
				t.Errorf("Expected %s = %q, got %q", tt.name, tt.expected, tt.prefix)
			}
		})
	}
}

func TestRecordJSONRoundTrip(t *testing.T) {
	task := models.NewTask("deep work", models.EffortHard, time.Now()).WithNotes("no phone")
	data, err := marshalJSON(task)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	back, err := unmarshalJSON[models.Task](data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.ID != task.ID || back.Title != task.Title || back.Effort != task.Effort {
		t.Errorf("round trip lost data: %+v", back)
	}
}
