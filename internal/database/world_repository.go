package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/pinyinquest/pkg/models"
)

// WorldRepository handles database operations for worlds and their vocabulary
type WorldRepository struct{}

// NewWorldRepository creates a new repository instance
func NewWorldRepository() *WorldRepository {
	return &WorldRepository{}
}

// GetAll returns all worlds with their vocabulary, in stored order
func (r *WorldRepository) GetAll() ([]models.World, error) {
	var rows []worldRow
	err := DB.Select(&rows, "SELECT * FROM worlds ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to get worlds: %w", err)
	}

	worlds := make([]models.World, 0, len(rows))
	for _, row := range rows {
		world := models.World{
			ID:        row.ID,
			Title:     row.Title,
			WeekLabel: row.WeekLabel,
		}
		unmarshalJSON(row.PhonicsFocus, &world.PhonicsFocus)
		unmarshalJSON(row.ABBPatterns, &world.Patterns.ABB)
		unmarshalJSON(row.GrammarPoints, &world.GrammarPoints)
		unmarshalJSON(row.Characters, &world.Characters)
		unmarshalJSON(row.TextLines, &world.TextLines)

		err := DB.Select(&world.Vocab,
			"SELECT id, hanzi, pinyin, meaning FROM vocab_items WHERE world_id = $1 ORDER BY position", row.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get vocab for world %s: %w", row.ID, err)
		}
		worlds = append(worlds, world)
	}
	return worlds, nil
}

// ReplaceAll rewrites the whole world list inside the given transaction
func (r *WorldRepository) ReplaceAll(tx *sqlx.Tx, worlds []models.World) error {
	if _, err := tx.Exec("DELETE FROM vocab_items"); err != nil {
		return fmt.Errorf("failed to clear vocab items: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM worlds"); err != nil {
		return fmt.Errorf("failed to clear worlds: %w", err)
	}

	for pos, world := range worlds {
		_, err := tx.Exec(`
			INSERT INTO worlds (id, title, week_label, phonics_focus, abb_patterns, grammar_points, characters, text_lines, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			world.ID,
			world.Title,
			world.WeekLabel,
			marshalJSON(world.PhonicsFocus),
			marshalJSON(world.Patterns.ABB),
			marshalJSON(world.GrammarPoints),
			marshalJSON(world.Characters),
			marshalJSON(world.TextLines),
			pos,
		)
		if err != nil {
			return fmt.Errorf("failed to insert world %s: %w", world.ID, err)
		}

		for i, item := range world.Vocab {
			_, err := tx.Exec(`
				INSERT INTO vocab_items (id, world_id, hanzi, pinyin, meaning, position)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				item.ID, world.ID, item.Hanzi, item.Pinyin, item.Meaning, i,
			)
			if err != nil {
				return fmt.Errorf("failed to insert vocab item %s: %w", item.ID, err)
			}
		}
	}
	return nil
}
