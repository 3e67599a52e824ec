// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers.
package mcp

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/itstoasti/ketomate/internal/models"
	"github.com/itstoasti/ketomate/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// setupTestDB creates a test database in a temp directory.
func setupTestDB(t *testing.T) *storage.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "ketomate.db")
	db, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func TestNewServer(t *testing.T) {
	db := setupTestDB(t)

	server, err := NewServer(db, nil, nil)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}

	if server == nil {
		t.Fatal("Expected non-nil server")
	}
	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.repo == nil {
		t.Error("Expected non-nil repo")
	}
}

func TestHandleLogMeal(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     logMealInput
		wantErr   bool
		errSubstr string
	}{
		{
			name: "valid meal",
			input: logMealInput{
				Name:     "Bacon and Eggs",
				MealType: "breakfast",
				Carbs:    2,
				Protein:  24,
				Fat:      30,
				Calories: 380,
			},
			wantErr: false,
		},
		{
			name: "valid meal with date",
			input: logMealInput{
				Name:     "Cobb Salad",
				MealType: "lunch",
				Date:     "2026-08-30",
				Carbs:    6,
				Protein:  28,
				Fat:      35,
				Calories: 460,
			},
			wantErr: false,
		},
		{
			name: "invalid meal type",
			input: logMealInput{
				Name:     "Mystery",
				MealType: "brunch",
			},
			wantErr:   true,
			errSubstr: "unknown meal type",
		},
		{
			name: "invalid date",
			input: logMealInput{
				Name:     "Dinner",
				MealType: "dinner",
				Date:     "08/30/2026",
			},
			wantErr:   true,
			errSubstr: "invalid date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleLogMeal(ctx, &mcp.CallToolRequest{}, tt.input)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				} else if tt.errSubstr != "" && !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("Error %q should contain %q", err.Error(), tt.errSubstr)
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}

			if output.ID == "" {
				t.Error("Expected non-empty ID")
			}
			if output.Message == "" {
				t.Error("Expected non-empty Message")
			}
		})
	}
}

func TestHandleListMeals(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db, nil, nil)
	ctx := context.Background()

	day := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	db.CreateMeal(models.NewMeal("Omelette", models.MealBreakfast, day, models.Macro{Carbs: 3, Protein: 20, Fat: 22, Calories: 300}))
	db.CreateMeal(models.NewMeal("Steak", models.MealDinner, day.AddDate(0, 0, 1), models.Macro{Protein: 45, Fat: 30, Calories: 500}))

	tests := []struct {
		name  string
		input listMealsInput
	}{
		{name: "list all meals", input: listMealsInput{}},
		{name: "list with limit 1", input: listMealsInput{Limit: 1}},
		{name: "filter by date", input: listMealsInput{Date: "2026-08-30"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleListMeals(ctx, &mcp.CallToolRequest{}, tt.input)
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}
			if output == nil {
				t.Error("Expected non-nil output")
			}
		})
	}
}

func TestHandleDeleteMeal(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db, nil, nil)
	ctx := context.Background()

	m := models.NewMeal("Omelette", models.MealBreakfast, time.Now(), models.Macro{Carbs: 3, Calories: 300})
	db.CreateMeal(m)

	_, output, err := server.handleDeleteMeal(ctx, &mcp.CallToolRequest{}, deleteMealInput{
		ID: m.ID.String()[:8],
	})
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if output.Message == "" {
		t.Error("Expected non-empty message")
	}

	if _, err := db.GetMeal(m.ID.String()); err == nil {
		t.Error("Expected meal to be deleted")
	}
}

func TestHandleDeleteMealNotFound(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db, nil, nil)
	ctx := context.Background()

	_, _, err := server.handleDeleteMeal(ctx, &mcp.CallToolRequest{}, deleteMealInput{ID: "nonexistent"})
	if err == nil {
		t.Error("Expected error for nonexistent meal")
	}
}

func TestHandleDailyMacros(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db, nil, nil)
	ctx := context.Background()

	day := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
	db.CreateMeal(models.NewMeal("Omelette", models.MealBreakfast, day, models.Macro{Carbs: 3, Protein: 20, Fat: 22, Calories: 300}))
	db.CreateMeal(models.NewMeal("Burger Bowl", models.MealLunch, day, models.Macro{Carbs: 7, Protein: 30, Fat: 28, Calories: 420}))

	_, output, err := server.handleDailyMacros(ctx, &mcp.CallToolRequest{}, dailyMacrosInput{Date: "2026-08-30"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output == nil {
		t.Fatal("Expected non-nil output")
	}
}

func TestHandleLookupBarcodeUnavailable(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db, nil, nil)
	ctx := context.Background()

	_, _, err := server.handleLookupBarcode(ctx, &mcp.CallToolRequest{}, lookupBarcodeInput{Barcode: "737628064502"})
	if err == nil {
		t.Error("Expected error when lookup client is nil")
	}
}

func TestHandleAnalyzeFoodUnavailable(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db, nil, nil)
	ctx := context.Background()

	_, _, err := server.handleAnalyzeFood(ctx, &mcp.CallToolRequest{}, analyzeFoodInput{Description: "bacon"})
	if err == nil {
		t.Error("Expected error when analyzer is nil")
	}
}

func TestHandleAddWeight(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   addWeightInput
		wantErr bool
	}{
		{name: "valid weight", input: addWeightInput{WeightKg: 82.5}, wantErr: false},
		{name: "with notes and timestamp", input: addWeightInput{WeightKg: 81.9, RecordedAt: "2026-08-30T08:00:00Z", Notes: "morning"}, wantErr: false},
		{name: "zero weight", input: addWeightInput{WeightKg: 0}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleAddWeight(ctx, &mcp.CallToolRequest{}, tt.input)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}
			if output.Message == "" {
				t.Error("Expected non-empty message")
			}
		})
	}
}

func TestHandleListWeights(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db, nil, nil)
	ctx := context.Background()

	db.CreateWeightEntry(models.NewWeightEntry(82.5))

	_, output, err := server.handleListWeights(ctx, &mcp.CallToolRequest{}, listWeightsInput{})
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if output == nil {
		t.Error("Expected non-nil output")
	}
}

func TestHandleAddTask(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     addTaskInput
		wantErr   bool
		errSubstr string
	}{
		{name: "default effort", input: addTaskInput{Title: "meal prep"}, wantErr: false},
		{name: "hard task", input: addTaskInput{Title: "long fast", Effort: "hard"}, wantErr: false},
		{name: "future dated", input: addTaskInput{Title: "grocery run", Date: "2030-01-01"}, wantErr: false},
		{name: "bad effort", input: addTaskInput{Title: "x", Effort: "heroic"}, wantErr: true, errSubstr: "unknown effort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleAddTask(ctx, &mcp.CallToolRequest{}, tt.input)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				} else if tt.errSubstr != "" && !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("Error %q should contain %q", err.Error(), tt.errSubstr)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}
			if output.ID == "" {
				t.Error("Expected non-empty ID")
			}
		})
	}
}

func TestHandleToggleTask(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db, nil, nil)
	ctx := context.Background()

	task := models.NewTask("meal prep", models.EffortMedium, time.Now())
	db.CreateTask(task)

	_, output, err := server.handleToggleTask(ctx, &mcp.CallToolRequest{}, toggleTaskInput{
		ID: task.ID.String()[:8],
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(output.Message, "completed") {
		t.Errorf("Message = %q, want completion notice", output.Message)
	}

	stats, _ := db.GetStats()
	if stats.XP != models.EffortMedium.XP() {
		t.Errorf("XP = %d, want %d", stats.XP, models.EffortMedium.XP())
	}

	// Toggling again reopens and refunds the XP.
	_, output, err = server.handleToggleTask(ctx, &mcp.CallToolRequest{}, toggleTaskInput{
		ID: task.ID.String()[:8],
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(output.Message, "reopened") {
		t.Errorf("Message = %q, want reopen notice", output.Message)
	}
}

func TestHandleToggleTaskNotFound(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db, nil, nil)
	ctx := context.Background()

	_, _, err := server.handleToggleTask(ctx, &mcp.CallToolRequest{}, toggleTaskInput{ID: "nonexistent"})
	if err == nil {
		t.Error("Expected error for nonexistent task")
	}
}

func TestHandleEndDay(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db, nil, nil)
	ctx := context.Background()

	task := models.NewTask("meal prep", models.EffortEasy, time.Now())
	task.Completed = true
	db.CreateTask(task)

	_, output, err := server.handleEndDay(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output == nil {
		t.Fatal("Expected non-nil output")
	}

	stats, _ := db.GetStats()
	if stats.Streak != 1 {
		t.Errorf("Streak = %d, want 1", stats.Streak)
	}

	// Firing again on the same day is a guarded no-op.
	_, _, err = server.handleEndDay(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	stats, _ = db.GetStats()
	if stats.Streak != 1 {
		t.Errorf("Streak after repeat = %d, want 1", stats.Streak)
	}
}

func TestHandleGetStats(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db, nil, nil)
	ctx := context.Background()

	_, output, err := server.handleGetStats(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output == nil {
		t.Fatal("Expected non-nil output")
	}
}

func TestTodayResource(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db, nil, nil)
	ctx := context.Background()

	db.CreateMeal(models.NewMeal("Omelette", models.MealBreakfast, time.Now(), models.Macro{Carbs: 3, Protein: 20, Fat: 22, Calories: 300}))

	result, err := server.handleTodayResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("Contents count = %d, want 1", len(result.Contents))
	}
	if !strings.Contains(result.Contents[0].Text, "remaining") {
		t.Error("Expected remaining macros in resource text")
	}
}

func TestRecentResource(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db, nil, nil)
	ctx := context.Background()

	db.CreateMeal(models.NewMeal("Steak", models.MealDinner, time.Now(), models.Macro{Protein: 45, Fat: 30, Calories: 500}))
	db.CreateWeightEntry(models.NewWeightEntry(82.5))

	result, err := server.handleRecentResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("Contents count = %d, want 1", len(result.Contents))
	}
	if !strings.Contains(result.Contents[0].Text, "Steak") {
		t.Error("Expected meal in resource text")
	}
}

func TestProgressResource(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db, nil, nil)
	ctx := context.Background()

	result, err := server.handleProgressResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(result.Contents[0].Text, "freeze_tokens") {
		t.Error("Expected freeze token count in resource text")
	}
}
