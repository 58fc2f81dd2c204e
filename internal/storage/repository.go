package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domerrors "github.com/teheiw192/course-reminder-go/internal/errors"
	"github.com/teheiw192/course-reminder-go/internal/schedule"
)

// SaveUserSchedule inserts or replaces a user's whole schedule record.
// The occurrence list and settings become visible together: the upsert is a
// single statement on one row, which SQLite applies atomically.
func (db *DB) SaveUserSchedule(ctx context.Context, userID string, sched *schedule.UserSchedule) error {
	if userID == "" {
		return domerrors.NewValidationError("user_id", "must not be empty")
	}
	if sched == nil {
		return domerrors.NewValidationError("schedule", "must not be nil")
	}
	if err := sched.Settings.Validate(); err != nil {
		return domerrors.NewValidationError("settings", err.Error())
	}

	occurrences, err := json.Marshal(sched.Occurrences)
	if err != nil {
		return fmt.Errorf("marshal occurrences: %w", err)
	}
	settings, err := json.Marshal(sched.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	query := `
		INSERT INTO schedules (user_id, occurrences, settings, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			occurrences = excluded.occurrences,
			settings = excluded.settings,
			updated_at = excluded.updated_at
	`
	start := time.Now()
	_, err = db.conn.ExecContext(ctx, query, userID, string(occurrences), string(settings), time.Now().Unix())
	if err != nil {
		slog.ErrorContext(ctx, "failed to save schedule",
			"user_id", userID,
			"error", err)
		return fmt.Errorf("save schedule for %s: %w", userID, errors.Join(domerrors.ErrStoreUnavailable, err))
	}

	// Warn on slow queries (>100ms)
	if duration := time.Since(start); duration > 100*time.Millisecond {
		slog.WarnContext(ctx, "slow database operation",
			"operation", "SaveUserSchedule",
			"duration_ms", duration.Milliseconds(),
			"user_id", userID)
	}
	return nil
}

// GetUserSchedule retrieves a user's schedule. Returns (nil, nil) when the
// user has never stored one.
func (db *DB) GetUserSchedule(ctx context.Context, userID string) (*schedule.UserSchedule, error) {
	query := `SELECT occurrences, settings, updated_at FROM schedules WHERE user_id = ?`

	var (
		occurrences string
		settings    string
		updatedAt   int64
	)
	err := db.conn.QueryRowContext(ctx, query, userID).Scan(&occurrences, &settings, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to query schedule",
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("query schedule for %s: %w", userID, errors.Join(domerrors.ErrStoreUnavailable, err))
	}

	sched := &schedule.UserSchedule{UpdatedAt: updatedAt}
	if err := json.Unmarshal([]byte(occurrences), &sched.Occurrences); err != nil {
		return nil, fmt.Errorf("decode occurrences for %s: %w", userID, err)
	}
	if err := json.Unmarshal([]byte(settings), &sched.Settings); err != nil {
		return nil, fmt.Errorf("decode settings for %s: %w", userID, err)
	}
	return sched, nil
}

// ListUserIDs returns the identifiers of every user with a stored schedule.
// The scheduler iterates this snapshot on each tick.
func (db *DB) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT user_id FROM schedules ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list user ids: %w", errors.Join(domerrors.ErrStoreUnavailable, err))
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteUserSchedule removes a user's schedule record. Deleting an absent
// user is not an error.
func (db *DB) DeleteUserSchedule(ctx context.Context, userID string) error {
	_, err := db.conn.ExecContext(ctx, `DELETE FROM schedules WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("delete schedule for %s: %w", userID, errors.Join(domerrors.ErrStoreUnavailable, err))
	}
	return nil
}

// CountSchedules returns the number of stored user schedules.
func (db *DB) CountSchedules(ctx context.Context) (int, error) {
	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM schedules`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count schedules: %w", err)
	}
	return count, nil
}
