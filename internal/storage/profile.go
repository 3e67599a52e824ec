// ABOUTME: UserProfile and Stats persistence for SQLite storage.
// ABOUTME: Both are single-row records stored as JSON blobs.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/itstoasti/ketomate/internal/models"
)

// GetProfile returns the stored profile, creating one with defaults on
// first load.
func (d *DB) GetProfile() (*models.UserProfile, error) {
	var blob string
	err := d.db.QueryRow(`SELECT profile FROM user_profiles WHERE id = 1`).Scan(&blob)
	if err == sql.ErrNoRows {
		p := models.DefaultProfile()
		if err := d.SaveProfile(p); err != nil {
			return nil, err
		}
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	var p models.UserProfile
	if err := json.Unmarshal([]byte(blob), &p); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return &p, nil
}

// SaveProfile writes the profile record.
func (d *DB) SaveProfile(p *models.UserProfile) error {
	blob, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	_, err = d.db.Exec(`
		INSERT INTO user_profiles (id, profile) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET profile = excluded.profile
	`, string(blob))
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// GetStats returns the stored gamification stats, creating a fresh
// record on first load.
func (d *DB) GetStats() (*models.Stats, error) {
	var blob string
	err := d.db.QueryRow(`SELECT stats FROM stats WHERE id = 1`).Scan(&blob)
	if err == sql.ErrNoRows {
		s := models.NewStats()
		if err := d.SaveStats(s); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}

	var s models.Stats
	if err := json.Unmarshal([]byte(blob), &s); err != nil {
		return nil, fmt.Errorf("unmarshal stats: %w", err)
	}
	return &s, nil
}

// SaveStats writes the gamification stats record.
func (d *DB) SaveStats(s *models.Stats) error {
	blob, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	_, err = d.db.Exec(`
		INSERT INTO stats (id, stats) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET stats = excluded.stats
	`, string(blob))
	if err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}
