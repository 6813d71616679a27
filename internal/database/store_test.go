package database

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/pinyinquest/internal/game"
	"github.com/example/pinyinquest/pkg/models"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	DB = db
	require.NoError(t, initializeSchema())
	t.Cleanup(func() {
		DB.Close()
		DB = nil
	})
}

func TestStoreLoadFreshReturnsDemoState(t *testing.T) {
	setupTestDB(t)
	store := NewStore()

	state := store.Load()
	require.NotNil(t, state)
	require.Len(t, state.Worlds, 1)
	assert.Equal(t, state.Worlds[0].ID, state.ActiveWorldID)
	assert.Len(t, state.Worlds[0].Vocab, 5)
	assert.Equal(t, 100, state.Economy.Battery)

	// The fresh state was persisted, so a second load finds the same world.
	again := store.Load()
	assert.Equal(t, state.ActiveWorldID, again.ActiveWorldID)
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	setupTestDB(t)
	store := NewStore()

	state := game.DefaultState(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	worldID := state.Worlds[0].ID
	itemID := state.Worlds[0].Vocab[0].ID

	state.Economy = models.EconomyState{Coins: 42, Keys: 3, Battery: 70}
	state.Streak = models.StreakState{
		Count:               5,
		LastComplete:        "2024-01-05",
		FreezeTokens:        1,
		UsedFreezeThisMonth: 1,
		Month:               "2024-01",
	}
	state.Settings = models.Settings{ScareLevel: models.ScareMedium, ShowHanzi: true}

	prog := models.NewWorldProgress()
	prog.UnlockedRoom = 7
	prog.CompletedRooms = map[int]bool{1: true, 2: true, 5: true}
	best := int64(8421)
	prog.BestTimeTrialMs = &best
	state.Progression[worldID] = prog

	state.SRS[itemID] = &models.SchedEntry{Interval: 4, Ease: 2.45, Due: "2024-01-09"}

	require.NoError(t, store.Save(state))

	loaded := store.Load()
	assert.Equal(t, state.Economy, loaded.Economy)
	assert.Equal(t, state.Streak, loaded.Streak)
	assert.Equal(t, state.Settings, loaded.Settings)
	assert.Equal(t, worldID, loaded.ActiveWorldID)

	require.Contains(t, loaded.Progression, worldID)
	assert.Equal(t, 7, loaded.Progression[worldID].UnlockedRoom)
	assert.True(t, loaded.Progression[worldID].CompletedRooms[5])
	require.NotNil(t, loaded.Progression[worldID].BestTimeTrialMs)
	assert.EqualValues(t, 8421, *loaded.Progression[worldID].BestTimeTrialMs)

	require.Contains(t, loaded.SRS, itemID)
	assert.Equal(t, 4, loaded.SRS[itemID].Interval)
	assert.InDelta(t, 2.45, loaded.SRS[itemID].Ease, 1e-9)
	assert.Equal(t, "2024-01-09", loaded.SRS[itemID].Due)

	// World content survives, including the list-shaped columns.
	require.Len(t, loaded.Worlds, 1)
	assert.Equal(t, state.Worlds[0].Title, loaded.Worlds[0].Title)
	assert.Equal(t, state.Worlds[0].PhonicsFocus, loaded.Worlds[0].PhonicsFocus)
	assert.Equal(t, state.Worlds[0].Patterns.ABB, loaded.Worlds[0].Patterns.ABB)
	assert.Equal(t, state.Worlds[0].TextLines, loaded.Worlds[0].TextLines)
	assert.Equal(t, state.Worlds[0].Vocab, loaded.Worlds[0].Vocab)
}

func TestStoreSaveReplacesWorldsWholesale(t *testing.T) {
	setupTestDB(t)
	store := NewStore()

	state := game.DefaultState(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, store.Save(state))

	state.Worlds[0].Vocab = []models.VocabItem{{ID: "only", Pinyin: "yī", Meaning: "one"}}
	require.NoError(t, store.Save(state))

	loaded := store.Load()
	require.Len(t, loaded.Worlds, 1)
	assert.Len(t, loaded.Worlds[0].Vocab, 1)
	assert.Equal(t, "only", loaded.Worlds[0].Vocab[0].ID)
}
