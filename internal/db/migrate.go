package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		hourly_rate   REAL NOT NULL DEFAULT 0 CHECK(hourly_rate >= 0),
		fixed_bonus   REAL NOT NULL DEFAULT 0 CHECK(fixed_bonus >= 0),
		credit_points REAL NOT NULL DEFAULT 0 CHECK(credit_points >= 0),
		created_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS work_sessions (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		started_at TEXT NOT NULL,
		ended_at   TEXT,
		created_at TEXT NOT NULL,
		CHECK(ended_at IS NULL OR ended_at > started_at)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_work_sessions_user_started ON work_sessions(user_id, started_at)`,

	// At most one open session per user.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_work_sessions_open ON work_sessions(user_id) WHERE ended_at IS NULL`,

	// Report language preference
	`ALTER TABLE users ADD COLUMN language TEXT NOT NULL DEFAULT 'en'`,
}
