// ABOUTME: WeightEntry model for body-weight history.
// ABOUTME: Values are persisted in kilograms regardless of input unit.
package models

import (
	"time"

	"github.com/google/uuid"
)

// WeightEntry is a single weight measurement. The history is
// append-only but entries remain editable and deletable by ID.
type WeightEntry struct {
	ID         uuid.UUID `json:"id"`
	WeightKg   float64   `json:"weight_kg"`
	Notes      *string   `json:"notes,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewWeightEntry creates a WeightEntry with generated UUID and current
// timestamp. The weight must already be converted to kilograms.
func NewWeightEntry(weightKg float64) *WeightEntry {
	now := time.Now()
	return &WeightEntry{
		ID:         uuid.New(),
		WeightKg:   weightKg,
		RecordedAt: now,
		CreatedAt:  now,
	}
}

// WithRecordedAt sets a custom measurement timestamp.
func (w *WeightEntry) WithRecordedAt(t time.Time) *WeightEntry {
	w.RecordedAt = t
	return w
}

// WithNotes sets notes on the entry.
func (w *WeightEntry) WithNotes(notes string) *WeightEntry {
	w.Notes = &notes
	return w
}
