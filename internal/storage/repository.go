// ABOUTME: Repository interface for tracker data storage.
// ABOUTME: Defines the contract shared by the SQLite and Charm KV backends.
package storage

import (
	"time"

	"github.com/itstoasti/ketomate/internal/models"
)

// Repository defines the storage interface for tracker data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Meal operations
	CreateMeal(m *models.Meal) error
	GetMeal(idOrPrefix string) (*models.Meal, error)
	ListMeals(limit int) ([]*models.Meal, error)
	ListMealsByDate(date time.Time) ([]*models.Meal, error)
	DeleteMeal(idOrPrefix string) error

	// Weight history operations
	CreateWeightEntry(w *models.WeightEntry) error
	GetWeightEntry(idOrPrefix string) (*models.WeightEntry, error)
	ListWeightEntries(limit int) ([]*models.WeightEntry, error)
	UpdateWeightEntry(w *models.WeightEntry) error
	DeleteWeightEntry(idOrPrefix string) error

	// Profile (single record, created with defaults on first load)
	GetProfile() (*models.UserProfile, error)
	SaveProfile(p *models.UserProfile) error

	// Task operations
	CreateTask(t *models.Task) error
	GetTask(idOrPrefix string) (*models.Task, error)
	ListTasks() ([]*models.Task, error)
	UpdateTask(t *models.Task) error
	SaveTasks(tasks []*models.Task) error
	DeleteTask(idOrPrefix string) error

	// Note operations
	CreateNote(n *models.Note) error
	GetNote(idOrPrefix string) (*models.Note, error)
	ListNotes(limit int) ([]*models.Note, error)
	UpdateNote(n *models.Note) error
	DeleteNote(idOrPrefix string) error

	// Gamification stats (single record, created fresh on first load)
	GetStats() (*models.Stats, error)
	SaveStats(s *models.Stats) error

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}
