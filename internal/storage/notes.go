// ABOUTME: Note CRUD operations for SQLite storage.
// ABOUTME: Plain entity, no derived state.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/itstoasti/ketomate/internal/models"
)

// CreateNote stores a new note.
func (d *DB) CreateNote(n *models.Note) error {
	_, err := d.db.Exec(`
		INSERT INTO notes (id, title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		n.ID.String(),
		n.Title,
		n.Content,
		n.CreatedAt.Format(time.RFC3339),
		n.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

// GetNote retrieves a note by ID or ID prefix.
func (d *DB) GetNote(idOrPrefix string) (*models.Note, error) {
	id, err := d.resolveID("notes", idOrPrefix)
	if err != nil {
		return nil, err
	}

	row := d.db.QueryRow(`
		SELECT id, title, content, created_at, updated_at
		FROM notes WHERE id = ?
	`, id)
	return scanNote(row)
}

// ListNotes retrieves notes, most recently updated first.
func (d *DB) ListNotes(limit int) ([]*models.Note, error) {
	query := `
		SELECT id, title, content, created_at, updated_at
		FROM notes
		ORDER BY updated_at DESC
	`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// UpdateNote rewrites a note's title and content, stamping UpdatedAt.
func (d *DB) UpdateNote(n *models.Note) error {
	n.UpdatedAt = time.Now()
	result, err := d.db.Exec(`
		UPDATE notes SET title = ?, content = ?, updated_at = ?
		WHERE id = ?
	`, n.Title, n.Content, n.UpdatedAt.Format(time.RFC3339), n.ID.String())
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", n.ID.String())
	}
	return nil
}

// DeleteNote removes a note by ID or prefix.
func (d *DB) DeleteNote(idOrPrefix string) error {
	id, err := d.resolveID("notes", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", idOrPrefix)
	}
	return nil
}

func scanNote(row rowScanner) (*models.Note, error) {
	var n models.Note
	var idStr, createdAt, updatedAt string
	var content sql.NullString

	err := row.Scan(&idStr, &n.Title, &content, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("not found")
		}
		return nil, fmt.Errorf("scan note: %w", err)
	}

	n.ID, _ = uuid.Parse(idStr)
	n.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	n.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	if content.Valid {
		n.Content = content.String
	}
	return &n, nil
}
