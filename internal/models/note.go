// ABOUTME: Note model, a plain CRUD entity with no derived state.
// ABOUTME: Tracks created and updated timestamps.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Note is a free-form note.
type Note struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewNote creates a Note with generated UUID and current timestamps.
func NewNote(title, content string) *Note {
	now := time.Now()
	return &Note{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
