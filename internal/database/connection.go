package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the database. The backend is chosen by
// DB_TYPE: sqlite (default, file under DATA_DIR) or postgres (DATABASE_URL).
func Connect() error {
	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "sqlite"
	}

	var db *sqlx.DB
	var err error

	if dbType == "postgres" {
		db, err = sqlx.Connect("postgres", os.Getenv("DATABASE_URL"))
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
	} else {
		dataDir := os.Getenv("DATA_DIR")
		if dataDir == "" {
			dataDir = "data"
		}
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}

		dbPath := filepath.Join(dataDir, "pinyinquest.db")
		db, err = sqlx.Connect("sqlite3", dbPath)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %w", err)
		}

		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	DB = db

	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS worlds (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			week_label TEXT,
			phonics_focus TEXT,
			abb_patterns TEXT,
			grammar_points TEXT,
			characters TEXT,
			text_lines TEXT,
			position INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS vocab_items (
			id TEXT PRIMARY KEY,
			world_id TEXT NOT NULL,
			hanzi TEXT,
			pinyin TEXT,
			meaning TEXT,
			position INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY (world_id) REFERENCES worlds(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS srs_entries (
			item_id TEXT PRIMARY KEY,
			interval INTEGER NOT NULL,
			ease REAL NOT NULL,
			due TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS world_progress (
			world_id TEXT PRIMARY KEY,
			unlocked_room INTEGER NOT NULL,
			completed_rooms TEXT NOT NULL,
			best_time_trial_ms INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS player_state (
			id INTEGER PRIMARY KEY,
			coins INTEGER NOT NULL DEFAULT 0,
			keys INTEGER NOT NULL DEFAULT 0,
			battery INTEGER NOT NULL DEFAULT 100,
			streak_count INTEGER NOT NULL DEFAULT 0,
			last_complete TEXT,
			freeze_tokens INTEGER NOT NULL DEFAULT 2,
			used_freeze_this_month INTEGER NOT NULL DEFAULT 0,
			streak_month TEXT,
			active_world_id TEXT,
			scare_level TEXT,
			show_hanzi BOOLEAN NOT NULL DEFAULT false
		)`,
	}

	for _, stmt := range statements {
		if _, err := DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}
