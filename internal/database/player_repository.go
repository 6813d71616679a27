package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/pinyinquest/pkg/models"
)

// ErrNoPlayerState means the single player row has never been written.
var ErrNoPlayerState = errors.New("no player state stored")

// PlayerRepository handles the single-row player state: settings, economy,
// streak and the active world pointer
type PlayerRepository struct{}

// NewPlayerRepository creates a new repository instance
func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{}
}

// Get loads the player row into the given state
func (r *PlayerRepository) Get(state *models.GameState) error {
	var row playerRow
	err := DB.Get(&row, "SELECT * FROM player_state WHERE id = 1")
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoPlayerState
	}
	if err != nil {
		return fmt.Errorf("failed to get player state: %w", err)
	}

	state.Economy = models.EconomyState{Coins: row.Coins, Keys: row.Keys, Battery: row.Battery}
	state.Streak = models.StreakState{
		Count:               row.StreakCount,
		LastComplete:        row.LastComplete.String,
		FreezeTokens:        row.FreezeTokens,
		UsedFreezeThisMonth: row.UsedFreezeThisMonth,
		Month:               row.StreakMonth.String,
	}
	state.Settings = models.Settings{ScareLevel: row.ScareLevel.String, ShowHanzi: row.ShowHanzi}
	if state.Settings.ScareLevel == "" {
		state.Settings.ScareLevel = models.ScareLow
	}
	state.ActiveWorldID = row.ActiveWorldID.String
	return nil
}

// Replace rewrites the player row inside the given transaction
func (r *PlayerRepository) Replace(tx *sqlx.Tx, state *models.GameState) error {
	if _, err := tx.Exec("DELETE FROM player_state"); err != nil {
		return fmt.Errorf("failed to clear player state: %w", err)
	}
	_, err := tx.Exec(`
		INSERT INTO player_state (
			id, coins, keys, battery,
			streak_count, last_complete, freeze_tokens, used_freeze_this_month, streak_month,
			active_world_id, scare_level, show_hanzi
		) VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		state.Economy.Coins,
		state.Economy.Keys,
		state.Economy.Battery,
		state.Streak.Count,
		state.Streak.LastComplete,
		state.Streak.FreezeTokens,
		state.Streak.UsedFreezeThisMonth,
		state.Streak.Month,
		state.ActiveWorldID,
		state.Settings.ScareLevel,
		state.Settings.ShowHanzi,
	)
	if err != nil {
		return fmt.Errorf("failed to insert player state: %w", err)
	}
	return nil
}
