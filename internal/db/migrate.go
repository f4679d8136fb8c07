package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent and portable
// between SQLite and Postgres.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// Each row holds one whole collection as a JSON array.
	`CREATE TABLE IF NOT EXISTS collections (
		name       TEXT PRIMARY KEY
		           CHECK(name IN ('ponds','logs','harvests')),
		body       TEXT NOT NULL DEFAULT '[]',
		revision   INTEGER NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL
	)`,
}
