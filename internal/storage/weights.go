// ABOUTME: Weight history CRUD operations for SQLite storage.
// ABOUTME: Values are stored in kilograms; display conversion happens in the CLI.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/itstoasti/ketomate/internal/models"
)

// CreateWeightEntry stores a new weight entry.
func (d *DB) CreateWeightEntry(w *models.WeightEntry) error {
	_, err := d.db.Exec(`
		INSERT INTO weight_history (id, weight_kg, notes, recorded_at, created_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		w.ID.String(),
		w.WeightKg,
		w.Notes,
		w.RecordedAt.Format(time.RFC3339),
		w.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create weight entry: %w", err)
	}
	return nil
}

// GetWeightEntry retrieves a weight entry by ID or ID prefix.
func (d *DB) GetWeightEntry(idOrPrefix string) (*models.WeightEntry, error) {
	id, err := d.resolveID("weight_history", idOrPrefix)
	if err != nil {
		return nil, err
	}

	row := d.db.QueryRow(`
		SELECT id, weight_kg, notes, recorded_at, created_at
		FROM weight_history WHERE id = ?
	`, id)
	return scanWeightEntry(row)
}

// ListWeightEntries retrieves weight history, most recent first.
func (d *DB) ListWeightEntries(limit int) ([]*models.WeightEntry, error) {
	query := `
		SELECT id, weight_kg, notes, recorded_at, created_at
		FROM weight_history
		ORDER BY recorded_at DESC
	`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list weight entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.WeightEntry
	for rows.Next() {
		w, err := scanWeightEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, w)
	}
	return entries, rows.Err()
}

// UpdateWeightEntry rewrites an existing entry's value and notes.
func (d *DB) UpdateWeightEntry(w *models.WeightEntry) error {
	result, err := d.db.Exec(`
		UPDATE weight_history SET weight_kg = ?, notes = ?, recorded_at = ?
		WHERE id = ?
	`, w.WeightKg, w.Notes, w.RecordedAt.Format(time.RFC3339), w.ID.String())
	if err != nil {
		return fmt.Errorf("update weight entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update weight entry: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", w.ID.String())
	}
	return nil
}

// DeleteWeightEntry removes a weight entry by ID or prefix.
func (d *DB) DeleteWeightEntry(idOrPrefix string) error {
	id, err := d.resolveID("weight_history", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete weight entry: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM weight_history WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete weight entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete weight entry: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", idOrPrefix)
	}
	return nil
}

func scanWeightEntry(row rowScanner) (*models.WeightEntry, error) {
	var w models.WeightEntry
	var idStr, recordedAt, createdAt string
	var notes sql.NullString

	err := row.Scan(&idStr, &w.WeightKg, &notes, &recordedAt, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("not found")
		}
		return nil, fmt.Errorf("scan weight entry: %w", err)
	}

	w.ID, _ = uuid.Parse(idStr)
	w.RecordedAt, _ = time.Parse(time.RFC3339, recordedAt)
	w.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if notes.Valid {
		w.Notes = &notes.String
	}
	return &w, nil
}
