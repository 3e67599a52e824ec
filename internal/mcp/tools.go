// ABOUTME: MCP tool implementations for the keto tracker.
// ABOUTME: Covers meal logging, macro budgets, food lookup, weights, tasks, and stats.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/itstoasti/ketomate/internal/gamify"
	"github.com/itstoasti/ketomate/internal/ledger"
	"github.com/itstoasti/ketomate/internal/models"
	"github.com/itstoasti/ketomate/internal/provider/openfoodfacts"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// log_meal
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_meal",
		Description: "Log a meal with its macros against the daily budget",
	}, s.handleLogMeal)

	// list_meals
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_meals",
		Description: "List recent meals, optionally for a single day",
	}, s.handleListMeals)

	// delete_meal
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_meal",
		Description: "Delete a meal by ID or ID prefix",
	}, s.handleDeleteMeal)

	// daily_macros
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "daily_macros",
		Description: "Get consumed and remaining macros for a day",
	}, s.handleDailyMacros)

	// lookup_barcode
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "lookup_barcode",
		Description: "Look up a packaged food by barcode (Open Food Facts)",
	}, s.handleLookupBarcode)

	// analyze_food
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "analyze_food",
		Description: "Estimate nutrition facts for a food description",
	}, s.handleAnalyzeFood)

	// add_weight
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_weight",
		Description: "Record a body weight entry in kilograms",
	}, s.handleAddWeight)

	// list_weights
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_weights",
		Description: "List recent weight entries",
	}, s.handleListWeights)

	// add_task
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_task",
		Description: "Create a task with an effort level (easy, medium, hard)",
	}, s.handleAddTask)

	// toggle_task
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "toggle_task",
		Description: "Toggle a task's completion by ID or ID prefix",
	}, s.handleToggleTask)

	// end_day
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "end_day",
		Description: "Finalize the current day: settle streak, bank XP, reset tasks",
	}, s.handleEndDay)

	// get_stats
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_stats",
		Description: "Get streak, freeze tokens, XP, level, and earned badges",
	}, s.handleGetStats)
}

// Tool input/output types

type logMealInput struct {
	Name     string  `json:"name" jsonschema:"Meal name"`
	MealType string  `json:"meal_type" jsonschema:"Meal type (breakfast, lunch, dinner, snack)"`
	Date     string  `json:"date,omitempty" jsonschema:"Calendar day (YYYY-MM-DD), defaults to today"`
	Carbs    float64 `json:"carbs" jsonschema:"Net carbs in grams"`
	Protein  float64 `json:"protein" jsonschema:"Protein in grams"`
	Fat      float64 `json:"fat" jsonschema:"Fat in grams"`
	Calories float64 `json:"calories" jsonschema:"Calories"`
}

type mealOutput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

type listMealsInput struct {
	Date  string `json:"date,omitempty" jsonschema:"Filter to a single day (YYYY-MM-DD)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type deleteMealInput struct {
	ID string `json:"id" jsonschema:"Meal ID or prefix"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type dailyMacrosInput struct {
	Date string `json:"date,omitempty" jsonschema:"Calendar day (YYYY-MM-DD), defaults to today"`
}

type lookupBarcodeInput struct {
	Barcode string `json:"barcode" jsonschema:"EAN/UPC barcode digits"`
}

type analyzeFoodInput struct {
	Description string `json:"description" jsonschema:"Free-text food description"`
}

type foodOutput struct {
	Name       string  `json:"name"`
	Brand      string  `json:"brand,omitempty"`
	Serving    string  `json:"serving_size,omitempty"`
	Calories   float64 `json:"calories"`
	Carbs      float64 `json:"carbs"`
	NetCarbs   float64 `json:"net_carbs"`
	Protein    float64 `json:"protein"`
	Fat        float64 `json:"fat"`
	KetoRating string  `json:"keto_rating"`
}

type addWeightInput struct {
	WeightKg   float64 `json:"weight_kg" jsonschema:"Body weight in kilograms"`
	RecordedAt string  `json:"recorded_at,omitempty" jsonschema:"Timestamp (ISO 8601), defaults to now"`
	Notes      string  `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type listWeightsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type addTaskInput struct {
	Title  string `json:"title" jsonschema:"Task title"`
	Effort string `json:"effort,omitempty" jsonschema:"Effort level (easy, medium, hard), defaults to medium"`
	Date   string `json:"date,omitempty" jsonschema:"Scheduled day (YYYY-MM-DD), defaults to today"`
}

type taskOutput struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

type toggleTaskInput struct {
	ID string `json:"id" jsonschema:"Task ID or prefix"`
}

type emptyInput struct{}

// Tool handlers

func (s *Server) handleLogMeal(ctx context.Context, req *mcp.CallToolRequest, input logMealInput) (*mcp.CallToolResult, mealOutput, error) {
	if !models.IsValidMealType(input.MealType) {
		return nil, mealOutput{}, fmt.Errorf("unknown meal type: %s", input.MealType)
	}

	day := time.Now()
	if input.Date != "" {
		t, err := time.Parse("2006-01-02", input.Date)
		if err != nil {
			return nil, mealOutput{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", input.Date)
		}
		day = t
	}

	m := models.NewMeal(input.Name, models.MealType(input.MealType), day, models.Macro{
		Carbs:    input.Carbs,
		Protein:  input.Protein,
		Fat:      input.Fat,
		Calories: input.Calories,
	})

	if err := s.repo.CreateMeal(m); err != nil {
		return nil, mealOutput{}, fmt.Errorf("failed to create meal: %w", err)
	}

	return nil, mealOutput{
		ID:      m.ID.String()[:8],
		Name:    m.Name,
		Date:    m.Date,
		Message: fmt.Sprintf("Logged %s %s (ID: %s)", m.Type, m.Name, m.ID.String()[:8]),
	}, nil
}

func (s *Server) handleListMeals(ctx context.Context, req *mcp.CallToolRequest, input listMealsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	var meals []*models.Meal
	var err error
	if input.Date != "" {
		day, perr := time.Parse("2006-01-02", input.Date)
		if perr != nil {
			return nil, nil, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", input.Date)
		}
		meals, err = s.repo.ListMealsByDate(day)
	} else {
		meals, err = s.repo.ListMeals(input.Limit)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list meals: %w", err)
	}

	if len(meals) == 0 {
		return nil, map[string]interface{}{"message": "No meals found."}, nil
	}

	return nil, meals, nil
}

func (s *Server) handleDeleteMeal(ctx context.Context, req *mcp.CallToolRequest, input deleteMealInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeleteMeal(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete meal: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted meal: %s", input.ID),
	}, nil
}

func (s *Server) handleDailyMacros(ctx context.Context, req *mcp.CallToolRequest, input dailyMacrosInput) (*mcp.CallToolResult, any, error) {
	day := time.Now()
	if input.Date != "" {
		t, err := time.Parse("2006-01-02", input.Date)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", input.Date)
		}
		day = t
	}

	profile, err := s.repo.GetProfile()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load profile: %w", err)
	}

	meals, err := s.repo.ListMealsByDate(day)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list meals: %w", err)
	}

	summary := ledger.ComputeDaily(meals, day, profile.MacroLimit())
	return nil, summary, nil
}

func (s *Server) handleLookupBarcode(ctx context.Context, req *mcp.CallToolRequest, input lookupBarcodeInput) (*mcp.CallToolResult, foodOutput, error) {
	if s.foods == nil {
		return nil, foodOutput{}, fmt.Errorf("barcode lookup is not available")
	}
	if !openfoodfacts.IsValidBarcode(input.Barcode) {
		return nil, foodOutput{}, fmt.Errorf("invalid barcode: %s", input.Barcode)
	}

	food, err := s.foods.LookupBarcode(ctx, input.Barcode)
	if err != nil {
		return nil, foodOutput{}, fmt.Errorf("barcode lookup failed: %w", err)
	}

	return nil, foodToOutput(food), nil
}

func (s *Server) handleAnalyzeFood(ctx context.Context, req *mcp.CallToolRequest, input analyzeFoodInput) (*mcp.CallToolResult, foodOutput, error) {
	if s.analyzer == nil {
		return nil, foodOutput{}, fmt.Errorf("food analysis is not available")
	}
	if input.Description == "" {
		return nil, foodOutput{}, fmt.Errorf("description is required")
	}

	food, err := s.analyzer.AnalyzeFoodText(ctx, input.Description)
	if err != nil {
		return nil, foodOutput{}, fmt.Errorf("food analysis failed: %w", err)
	}

	return nil, foodToOutput(food), nil
}

func (s *Server) handleAddWeight(ctx context.Context, req *mcp.CallToolRequest, input addWeightInput) (*mcp.CallToolResult, simpleOutput, error) {
	if input.WeightKg <= 0 {
		return nil, simpleOutput{}, fmt.Errorf("weight must be positive")
	}

	w := models.NewWeightEntry(input.WeightKg)

	if input.RecordedAt != "" {
		t, err := time.Parse(time.RFC3339, input.RecordedAt)
		if err != nil {
			t, err = time.Parse("2006-01-02 15:04", input.RecordedAt)
		}
		if err == nil {
			w.WithRecordedAt(t)
		}
	}
	if input.Notes != "" {
		w.WithNotes(input.Notes)
	}

	if err := s.repo.CreateWeightEntry(w); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to create weight entry: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Recorded %.1f kg (ID: %s)", w.WeightKg, w.ID.String()[:8]),
	}, nil
}

func (s *Server) handleListWeights(ctx context.Context, req *mcp.CallToolRequest, input listWeightsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	entries, err := s.repo.ListWeightEntries(input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list weight entries: %w", err)
	}

	if len(entries) == 0 {
		return nil, map[string]interface{}{"message": "No weight entries found."}, nil
	}

	return nil, entries, nil
}

func (s *Server) handleAddTask(ctx context.Context, req *mcp.CallToolRequest, input addTaskInput) (*mcp.CallToolResult, taskOutput, error) {
	effort := models.EffortMedium
	if input.Effort != "" {
		if !models.IsValidEffort(input.Effort) {
			return nil, taskOutput{}, fmt.Errorf("unknown effort level: %s", input.Effort)
		}
		effort = models.Effort(input.Effort)
	}

	day := time.Now()
	if input.Date != "" {
		t, err := time.Parse("2006-01-02", input.Date)
		if err != nil {
			return nil, taskOutput{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", input.Date)
		}
		day = t
	}

	task := models.NewTask(input.Title, effort, day)
	if err := s.repo.CreateTask(task); err != nil {
		return nil, taskOutput{}, fmt.Errorf("failed to create task: %w", err)
	}

	stats, err := s.repo.GetStats()
	if err != nil {
		return nil, taskOutput{}, fmt.Errorf("failed to load stats: %w", err)
	}
	earned := gamify.TaskCreated(stats, task, time.Now())
	if err := s.repo.SaveStats(stats); err != nil {
		return nil, taskOutput{}, fmt.Errorf("failed to save stats: %w", err)
	}

	msg := fmt.Sprintf("Added %s task %q (ID: %s)", effort, task.Title, task.ID.String()[:8])
	for _, id := range earned {
		msg += fmt.Sprintf("; badge earned: %s", id)
	}

	return nil, taskOutput{
		ID:      task.ID.String()[:8],
		Title:   task.Title,
		Message: msg,
	}, nil
}

func (s *Server) handleToggleTask(ctx context.Context, req *mcp.CallToolRequest, input toggleTaskInput) (*mcp.CallToolResult, simpleOutput, error) {
	task, err := s.repo.GetTask(input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("task not found: %s", input.ID)
	}

	stats, err := s.repo.GetStats()
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to load stats: %w", err)
	}

	result := gamify.ToggleTask(stats, task, time.Now())

	if err := s.repo.UpdateTask(task); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to update task: %w", err)
	}
	if err := s.repo.SaveStats(stats); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to save stats: %w", err)
	}

	state := "completed"
	if !result.Completed {
		state = "reopened"
	}
	msg := fmt.Sprintf("Task %q %s (%+d XP)", task.Title, state, result.XPDelta)
	for _, id := range result.BadgesEarned {
		msg += fmt.Sprintf("; badge earned: %s", id)
	}

	return nil, simpleOutput{Message: msg}, nil
}

func (s *Server) handleEndDay(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	stats, err := s.repo.GetStats()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load stats: %w", err)
	}

	tasks, err := s.repo.ListTasks()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	result := gamify.EndDay(stats, tasks, time.Now())
	if !result.Applied {
		return nil, map[string]interface{}{"message": result.Message}, nil
	}

	if err := s.repo.SaveTasks(tasks); err != nil {
		return nil, nil, fmt.Errorf("failed to save tasks: %w", err)
	}
	if err := s.repo.SaveStats(stats); err != nil {
		return nil, nil, fmt.Errorf("failed to save stats: %w", err)
	}

	return nil, result, nil
}

func (s *Server) handleGetStats(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	stats, err := s.repo.GetStats()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load stats: %w", err)
	}

	return nil, stats, nil
}

func foodToOutput(f *models.Food) foodOutput {
	return foodOutput{
		Name:       f.Name,
		Brand:      f.Brand,
		Serving:    f.ServingSize,
		Calories:   f.Macros.Calories,
		Carbs:      f.Macros.Carbs,
		NetCarbs:   f.NetCarbs(),
		Protein:    f.Macros.Protein,
		Fat:        f.Macros.Fat,
		KetoRating: string(f.KetoRating()),
	}
}
