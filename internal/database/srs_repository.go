package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/pinyinquest/pkg/models"
)

// SRSRepository handles database operations for schedule entries
type SRSRepository struct{}

// NewSRSRepository creates a new repository instance
func NewSRSRepository() *SRSRepository {
	return &SRSRepository{}
}

// GetAll returns all schedule entries keyed by vocab item ID
func (r *SRSRepository) GetAll() (map[string]*models.SchedEntry, error) {
	rows, err := DB.Queryx("SELECT item_id, interval, ease, due FROM srs_entries")
	if err != nil {
		return nil, fmt.Errorf("failed to get srs entries: %w", err)
	}
	defer rows.Close()

	srs := make(map[string]*models.SchedEntry)
	for rows.Next() {
		var itemID string
		entry := &models.SchedEntry{}
		if err := rows.Scan(&itemID, &entry.Interval, &entry.Ease, &entry.Due); err != nil {
			return nil, fmt.Errorf("failed to scan srs entry: %w", err)
		}
		srs[itemID] = entry
	}
	return srs, rows.Err()
}

// ReplaceAll rewrites the schedule table inside the given transaction
func (r *SRSRepository) ReplaceAll(tx *sqlx.Tx, srs map[string]*models.SchedEntry) error {
	if _, err := tx.Exec("DELETE FROM srs_entries"); err != nil {
		return fmt.Errorf("failed to clear srs entries: %w", err)
	}
	for itemID, entry := range srs {
		_, err := tx.Exec(
			"INSERT INTO srs_entries (item_id, interval, ease, due) VALUES ($1, $2, $3, $4)",
			itemID, entry.Interval, entry.Ease, entry.Due,
		)
		if err != nil {
			return fmt.Errorf("failed to insert srs entry %s: %w", itemID, err)
		}
	}
	return nil
}
