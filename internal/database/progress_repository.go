package database

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/pinyinquest/pkg/models"
)

// ProgressRepository handles database operations for per-world progress
type ProgressRepository struct{}

// NewProgressRepository creates a new repository instance
func NewProgressRepository() *ProgressRepository {
	return &ProgressRepository{}
}

// GetAll returns progress for every world, keyed by world ID
func (r *ProgressRepository) GetAll() (map[string]*models.WorldProgress, error) {
	var rows []progressRow
	if err := DB.Select(&rows, "SELECT * FROM world_progress"); err != nil {
		return nil, fmt.Errorf("failed to get world progress: %w", err)
	}

	progression := make(map[string]*models.WorldProgress, len(rows))
	for _, row := range rows {
		p := models.NewWorldProgress()
		p.UnlockedRoom = row.UnlockedRoom
		unmarshalJSON(row.CompletedRooms, &p.CompletedRooms)
		if p.CompletedRooms == nil {
			p.CompletedRooms = make(map[int]bool)
		}
		if row.BestTimeTrialMs.Valid {
			best := row.BestTimeTrialMs.Int64
			p.BestTimeTrialMs = &best
		}
		progression[row.WorldID] = p
	}
	return progression, nil
}

// ReplaceAll rewrites the progress table inside the given transaction
func (r *ProgressRepository) ReplaceAll(tx *sqlx.Tx, progression map[string]*models.WorldProgress) error {
	if _, err := tx.Exec("DELETE FROM world_progress"); err != nil {
		return fmt.Errorf("failed to clear world progress: %w", err)
	}
	for worldID, p := range progression {
		best := sql.NullInt64{}
		if p.BestTimeTrialMs != nil {
			best = sql.NullInt64{Int64: *p.BestTimeTrialMs, Valid: true}
		}
		_, err := tx.Exec(`
			INSERT INTO world_progress (world_id, unlocked_room, completed_rooms, best_time_trial_ms)
			VALUES ($1, $2, $3, $4)`,
			worldID, p.UnlockedRoom, marshalJSON(p.CompletedRooms), best,
		)
		if err != nil {
			return fmt.Errorf("failed to insert progress for world %s: %w", worldID, err)
		}
	}
	return nil
}
