package db

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order. PRAGMA user_version records how many
// have run, so append new entries and never edit old ones.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS comments (
		id         TEXT     PRIMARY KEY,
		text       TEXT     NOT NULL CHECK (length(text) > 0),
		author     TEXT     NOT NULL CHECK (length(author) > 0),
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_created_at ON comments (created_at)`,
}

// migrate applies the migrations newer than the stored schema version.
func migrate(database *sql.DB) error {
	var version int
	if err := database.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		if _, err := database.Exec(migrations[i]); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
		// PRAGMA does not take bound parameters.
		if _, err := database.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			return fmt.Errorf("recording schema version %d: %w", i+1, err)
		}
	}
	return nil
}
