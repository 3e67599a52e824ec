// ABOUTME: Tests for daily macro aggregation and remaining-budget math.
// ABOUTME: Covers day filtering, soft exclusion of bad dates, and the zero floor.
package ledger

import (
	"testing"
	"time"

	"github.com/itstoasti/ketomate/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mealOn(date string, macros models.Macro) *models.Meal {
	m := models.NewMeal("meal", models.MealLunch, time.Now(), macros)
	m.Date = date
	return m
}

func TestComputeDailyEmpty(t *testing.T) {
	s := ComputeDaily(nil, day(2025, 3, 14), models.DefaultMacroLimit)

	if !s.Total.IsZero() {
		t.Errorf("total over empty meal set = %+v, want zero", s.Total)
	}
	if s.Remaining != models.DefaultMacroLimit {
		t.Errorf("remaining = %+v, want full limit", s.Remaining)
	}
	if len(s.Meals) != 0 {
		t.Errorf("expected no meals, got %d", len(s.Meals))
	}
}

func TestComputeDailyFiltersAndSums(t *testing.T) {
	meals := []*models.Meal{
		mealOn("2025-03-14", models.Macro{Carbs: 5, Protein: 30, Fat: 20, Calories: 400}),
		mealOn("2025-03-14", models.Macro{Carbs: 3, Protein: 25, Fat: 35, Calories: 500}),
		mealOn("2025-03-15", models.Macro{Carbs: 50, Protein: 10, Fat: 10, Calories: 900}),
	}

	s := ComputeDaily(meals, day(2025, 3, 14), models.DefaultMacroLimit)

	want := models.Macro{Carbs: 8, Protein: 55, Fat: 55, Calories: 900}
	if s.Total != want {
		t.Errorf("total = %+v, want %+v", s.Total, want)
	}
	if len(s.Meals) != 2 {
		t.Fatalf("expected 2 meals on the day, got %d", len(s.Meals))
	}

	wantRemaining := models.Macro{Carbs: 12, Protein: 65, Fat: 95, Calories: 900}
	if s.Remaining != wantRemaining {
		t.Errorf("remaining = %+v, want %+v", s.Remaining, wantRemaining)
	}
}

func TestComputeDailyRemainingNeverNegative(t *testing.T) {
	meals := []*models.Meal{
		mealOn("2025-03-14", models.Macro{Carbs: 80, Protein: 200, Fat: 300, Calories: 4000}),
	}

	s := ComputeDaily(meals, day(2025, 3, 14), models.DefaultMacroLimit)

	if !s.Remaining.IsZero() {
		t.Errorf("remaining = %+v, want zero when over budget", s.Remaining)
	}

	over := s.OverBudget()
	if len(over) != 4 {
		t.Errorf("OverBudget = %v, want all four macros", over)
	}
}

func TestComputeDailyExcludesMalformedDates(t *testing.T) {
	meals := []*models.Meal{
		mealOn("2025-03-14", models.Macro{Carbs: 5, Calories: 100}),
		mealOn("garbage", models.Macro{Carbs: 99, Calories: 9999}),
	}

	s := ComputeDaily(meals, day(2025, 3, 14), models.DefaultMacroLimit)

	if s.Total.Carbs != 5 {
		t.Errorf("total carbs = %v, want 5 (malformed meal excluded)", s.Total.Carbs)
	}
	if len(s.Skipped) != 1 {
		t.Errorf("skipped = %d, want 1", len(s.Skipped))
	}
}

func TestComputeDailyIgnoresTimeOfDay(t *testing.T) {
	meals := []*models.Meal{
		mealOn("2025-03-14", models.Macro{Calories: 250}),
	}

	// Same calendar day, late evening
	target := time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC)
	s := ComputeDaily(meals, target, models.DefaultMacroLimit)

	if s.Total.Calories != 250 {
		t.Errorf("total = %v, want 250 regardless of time of day", s.Total.Calories)
	}
}

func TestComputeDailySortsByTime(t *testing.T) {
	dinner := models.NewMeal("dinner", models.MealDinner, time.Now(), models.Macro{})
	dinner.Date = "2025-03-14"
	dinner.Time = "19:00"
	breakfast := models.NewMeal("breakfast", models.MealBreakfast, time.Now(), models.Macro{})
	breakfast.Date = "2025-03-14"
	breakfast.Time = "07:30"

	s := ComputeDaily([]*models.Meal{dinner, breakfast}, day(2025, 3, 14), models.DefaultMacroLimit)

	if len(s.Meals) != 2 || s.Meals[0].Name != "breakfast" {
		t.Errorf("meals not sorted by time: %v", s.Meals)
	}
}

func TestComputeRange(t *testing.T) {
	meals := []*models.Meal{
		mealOn("2025-03-14", models.Macro{Calories: 100}),
		mealOn("2025-03-16", models.Macro{Calories: 300}),
	}

	summaries := ComputeRange(meals, day(2025, 3, 14), day(2025, 3, 16), models.DefaultMacroLimit)

	if len(summaries) != 3 {
		t.Fatalf("expected 3 daily summaries, got %d", len(summaries))
	}
	if summaries[0].Total.Calories != 100 || summaries[1].Total.Calories != 0 || summaries[2].Total.Calories != 300 {
		t.Errorf("range totals wrong: %v %v %v",
			summaries[0].Total.Calories, summaries[1].Total.Calories, summaries[2].Total.Calories)
	}
}
