// ABOUTME: Meal CRUD operations for SQLite storage.
// ABOUTME: Constituent foods are stored as a JSON column on the meal row.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/itstoasti/ketomate/internal/models"
)

// CreateMeal stores a new meal in the database.
func (d *DB) CreateMeal(m *models.Meal) error {
	var foodsJSON []byte
	if len(m.Foods) > 0 {
		var err error
		foodsJSON, err = json.Marshal(m.Foods)
		if err != nil {
			return fmt.Errorf("marshal meal foods: %w", err)
		}
	}

	query := `
		INSERT INTO meals (id, name, date, time, meal_type, foods, carbs, protein, fat, calories, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		m.ID.String(),
		m.Name,
		m.Date,
		m.Time,
		string(m.Type),
		nullableString(foodsJSON),
		m.Macros.Carbs,
		m.Macros.Protein,
		m.Macros.Fat,
		m.Macros.Calories,
		m.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create meal: %w", err)
	}
	return nil
}

// GetMeal retrieves a meal by ID or ID prefix.
func (d *DB) GetMeal(idOrPrefix string) (*models.Meal, error) {
	id, err := d.resolveID("meals", idOrPrefix)
	if err != nil {
		return nil, err
	}

	row := d.db.QueryRow(`
		SELECT id, name, date, time, meal_type, foods, carbs, protein, fat, calories, created_at
		FROM meals WHERE id = ?
	`, id)
	return scanMeal(row)
}

// ListMeals retrieves meals sorted by date descending.
func (d *DB) ListMeals(limit int) ([]*models.Meal, error) {
	query := `
		SELECT id, name, date, time, meal_type, foods, carbs, protein, fat, calories, created_at
		FROM meals
		ORDER BY date DESC, time DESC
	`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()

	return scanMeals(rows)
}

// ListMealsByDate retrieves all meals logged on the given calendar day.
func (d *DB) ListMealsByDate(date time.Time) ([]*models.Meal, error) {
	rows, err := d.db.Query(`
		SELECT id, name, date, time, meal_type, foods, carbs, protein, fat, calories, created_at
		FROM meals
		WHERE date = ?
		ORDER BY time ASC
	`, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("list meals by date: %w", err)
	}
	defer rows.Close()

	return scanMeals(rows)
}

// DeleteMeal removes a meal by ID or prefix.
func (d *DB) DeleteMeal(idOrPrefix string) error {
	id, err := d.resolveID("meals", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM meals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", idOrPrefix)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanMeal scans a single row into a Meal struct.
func scanMeal(row rowScanner) (*models.Meal, error) {
	var m models.Meal
	var idStr, mealType, createdAt string
	var mealTime, foods sql.NullString

	err := row.Scan(&idStr, &m.Name, &m.Date, &mealTime, &mealType, &foods,
		&m.Macros.Carbs, &m.Macros.Protein, &m.Macros.Fat, &m.Macros.Calories, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("not found")
		}
		return nil, fmt.Errorf("scan meal: %w", err)
	}

	m.ID, _ = uuid.Parse(idStr)
	m.Type = models.MealType(mealType)
	m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if mealTime.Valid {
		m.Time = mealTime.String
	}
	if foods.Valid && foods.String != "" {
		// Bad foods JSON degrades to a meal without constituents; the
		// macro totals on the row are still authoritative.
		_ = json.Unmarshal([]byte(foods.String), &m.Foods)
	}

	return &m, nil
}

// scanMeals scans multiple rows into a slice of Meals.
func scanMeals(rows *sql.Rows) ([]*models.Meal, error) {
	var meals []*models.Meal
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, err
		}
		meals = append(meals, m)
	}
	return meals, rows.Err()
}

// resolveID finds the full ID from a prefix in the given table.
func (d *DB) resolveID(table, idOrPrefix string) (string, error) {
	// If it looks like a full UUID, use it directly
	if len(idOrPrefix) == 36 {
		return idOrPrefix, nil
	}

	rows, err := d.db.Query(`SELECT id FROM `+table+` WHERE id LIKE ? || '%'`, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan ID: %w", err)
		}
		matches = append(matches, id)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("not found: %s", idOrPrefix)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
	}
	return matches[0], nil
}

func nullableString(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
