package database

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/example/pinyinquest/internal/game"
	"github.com/example/pinyinquest/pkg/models"
)

// Store assembles and persists the full game state. Load never fails: absent
// or unreadable state falls back to a fresh default so the game always
// starts. Save is a single transaction, so the persisted state is always one
// consistent snapshot.
type Store struct {
	worlds   *WorldRepository
	srs      *SRSRepository
	progress *ProgressRepository
	player   *PlayerRepository
}

// NewStore creates a store over the connected database.
func NewStore() *Store {
	return &Store{
		worlds:   NewWorldRepository(),
		srs:      NewSRSRepository(),
		progress: NewProgressRepository(),
		player:   NewPlayerRepository(),
	}
}

// Load reads the whole game state. On first run, or when the stored state
// cannot be read, it returns the default demo state (and tries to persist
// it so the next run finds it).
func (s *Store) Load() *models.GameState {
	state, err := s.load()
	if err != nil {
		if !errors.Is(err, ErrNoPlayerState) {
			log.Printf("Stored state unreadable, starting fresh: %v", err)
		}
		state = game.DefaultState(time.Now())
		if saveErr := s.Save(state); saveErr != nil {
			log.Printf("Failed to persist fresh state: %v", saveErr)
		}
	}
	return state
}

func (s *Store) load() (*models.GameState, error) {
	state := &models.GameState{
		Progression: make(map[string]*models.WorldProgress),
		SRS:         make(map[string]*models.SchedEntry),
	}

	if err := s.player.Get(state); err != nil {
		return nil, err
	}

	worlds, err := s.worlds.GetAll()
	if err != nil {
		return nil, err
	}
	if len(worlds) == 0 {
		return nil, errors.New("no worlds stored")
	}
	state.Worlds = worlds
	if state.WorldByID(state.ActiveWorldID) == nil {
		state.ActiveWorldID = worlds[0].ID
	}

	if state.Progression, err = s.progress.GetAll(); err != nil {
		return nil, err
	}
	if state.SRS, err = s.srs.GetAll(); err != nil {
		return nil, err
	}
	return state, nil
}

// Save writes the full state in one transaction.
func (s *Store) Save(state *models.GameState) error {
	tx, err := DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.worlds.ReplaceAll(tx, state.Worlds); err != nil {
		return err
	}
	if err := s.srs.ReplaceAll(tx, state.SRS); err != nil {
		return err
	}
	if err := s.progress.ReplaceAll(tx, state.Progression); err != nil {
		return err
	}
	if err := s.player.Replace(tx, state); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit state: %w", err)
	}
	return nil
}
