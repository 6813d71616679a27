package database

import (
	"database/sql"
	"encoding/json"
	"log"
)

// worldRow mirrors the worlds table; list-shaped fields are JSON text.
type worldRow struct {
	ID            string `db:"id"`
	Title         string `db:"title"`
	WeekLabel     string `db:"week_label"`
	PhonicsFocus  string `db:"phonics_focus"`
	ABBPatterns   string `db:"abb_patterns"`
	GrammarPoints string `db:"grammar_points"`
	Characters    string `db:"characters"`
	TextLines     string `db:"text_lines"`
	Position      int    `db:"position"`
}

// progressRow mirrors the world_progress table.
type progressRow struct {
	WorldID         string        `db:"world_id"`
	UnlockedRoom    int           `db:"unlocked_room"`
	CompletedRooms  string        `db:"completed_rooms"`
	BestTimeTrialMs sql.NullInt64 `db:"best_time_trial_ms"`
}

// playerRow mirrors the single-row player_state table.
type playerRow struct {
	ID                  int            `db:"id"`
	Coins               int            `db:"coins"`
	Keys                int            `db:"keys"`
	Battery             int            `db:"battery"`
	StreakCount         int            `db:"streak_count"`
	LastComplete        sql.NullString `db:"last_complete"`
	FreezeTokens        int            `db:"freeze_tokens"`
	UsedFreezeThisMonth int            `db:"used_freeze_this_month"`
	StreakMonth         sql.NullString `db:"streak_month"`
	ActiveWorldID       sql.NullString `db:"active_world_id"`
	ScareLevel          sql.NullString `db:"scare_level"`
	ShowHanzi           bool           `db:"show_hanzi"`
}

// marshalJSON encodes a value for a TEXT column. Encoding plain slices and
// maps of strings cannot fail; a failure is logged and stored as empty.
func marshalJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Failed to encode column value: %v", err)
		return ""
	}
	return string(data)
}

// unmarshalJSON decodes a TEXT column into out, treating empty and corrupt
// text as an absent value.
func unmarshalJSON(data string, out interface{}) {
	if data == "" {
		return
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		log.Printf("Failed to decode column value: %v", err)
	}
}
