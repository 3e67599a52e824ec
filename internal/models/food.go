// ABOUTME: Food and Meal models for diet logging.
// ABOUTME: Meals carry serving-adjusted macro totals; foods carry per-serving macros.
package models

import (
	"time"

	"github.com/google/uuid"
)

// FoodSource identifies how a food record was obtained.
type FoodSource string

const (
	SourceAI      FoodSource = "ai"
	SourceBarcode FoodSource = "barcode"
	SourceManual  FoodSource = "manual"
	SourceLabel   FoodSource = "label"
)

// Food represents a single food with per-serving nutrition data.
type Food struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Brand        string     `json:"brand,omitempty"`
	ServingSize  string     `json:"serving_size,omitempty"`
	Macros       Macro      `json:"macros"`
	Fiber        float64    `json:"fiber,omitempty"`
	SugarAlcohol float64    `json:"sugar_alcohol,omitempty"`
	Source       FoodSource `json:"source"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NewFood creates a Food with generated UUID and current timestamp.
func NewFood(name string, macros Macro, source FoodSource) *Food {
	return &Food{
		ID:        uuid.New(),
		Name:      name,
		Macros:    macros,
		Source:    source,
		CreatedAt: time.Now(),
	}
}

// WithBrand sets the brand.
func (f *Food) WithBrand(brand string) *Food {
	f.Brand = brand
	return f
}

// WithServingSize sets the free-text serving size.
func (f *Food) WithServingSize(size string) *Food {
	f.ServingSize = size
	return f
}

// WithFiber sets fiber and sugar-alcohol grams used for net carbs.
func (f *Food) WithFiber(fiber, sugarAlcohol float64) *Food {
	f.Fiber = fiber
	f.SugarAlcohol = sugarAlcohol
	return f
}

// NetCarbs returns the food's net carbohydrate grams.
func (f *Food) NetCarbs() float64 {
	return NetCarbs(f.Macros.Carbs, f.Fiber, f.SugarAlcohol)
}

// KetoRating returns the keto-suitability tier for this food.
func (f *Food) KetoRating() KetoRating {
	return RatingFromNetCarbs(f.NetCarbs())
}

// MealType is the meal slot a log entry belongs to.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// AllMealTypes returns all valid meal types.
var AllMealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// IsValidMealType checks if a string is a valid meal type.
func IsValidMealType(s string) bool {
	for _, mt := range AllMealTypes {
		if string(mt) == s {
			return true
		}
	}
	return false
}

// Meal represents a logged meal. The top-level Macros field is the
// serving-multiplier-adjusted total actually consumed. Meals are
// immutable once created except for deletion.
type Meal struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Date      string    `json:"date"` // calendar day, YYYY-MM-DD
	Time      string    `json:"time,omitempty"`
	Type      MealType  `json:"type"`
	Foods     []Food    `json:"foods,omitempty"`
	Macros    Macro     `json:"macros"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMeal creates a Meal for the given day with generated UUID.
func NewMeal(name string, mealType MealType, date time.Time, macros Macro) *Meal {
	now := time.Now()
	return &Meal{
		ID:        uuid.New(),
		Name:      name,
		Date:      date.Format("2006-01-02"),
		Time:      date.Format("15:04"),
		Type:      mealType,
		Macros:    macros,
		CreatedAt: now,
	}
}

// WithFoods attaches the constituent foods.
func (m *Meal) WithFoods(foods ...Food) *Meal {
	m.Foods = append(m.Foods, foods...)
	return m
}

// Day parses the meal's calendar day. The bool result is false for
// malformed dates; callers exclude those records rather than failing.
func (m *Meal) Day() (time.Time, bool) {
	t, err := time.Parse("2006-01-02", m.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
