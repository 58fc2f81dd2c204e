package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// InitSchema creates all necessary tables and indexes.
// Note: WAL mode is configured in db.go's New function.
func InitSchema(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS schedules (
		user_id TEXT PRIMARY KEY,
		occurrences TEXT NOT NULL,
		settings TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_schedules_updated_at ON schedules(updated_at);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create schedules table: %w", err)
	}

	return nil
}
