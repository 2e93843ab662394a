package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/claude/fastbite/internal/models"
)

// ErrFastActive is returned by StartFast when the user already has an active
// fast (enforced by a partial unique index on the fasts table).
var ErrFastActive = errors.New("a fast is already active")

// StartFast inserts a new active fast record.
func (db *DB) StartFast(ctx context.Context, f *models.FastRecord) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO fasts (id, user_id, type_id, goal_hours, started_at, ends_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, f.ID, f.UserID, f.TypeID, f.GoalHours, f.StartedAt, f.EndsAt, models.FastActive)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrFastActive
	}
	if err != nil {
		return fmt.Errorf("starting fast: %w", err)
	}
	return nil
}

// GetActiveFast returns the user's active fast, or (nil, nil) when idle.
func (db *DB) GetActiveFast(ctx context.Context, userID int) (*models.FastRecord, error) {
	var f models.FastRecord
	err := db.Pool.QueryRow(ctx, `
		SELECT id, user_id, type_id, goal_hours, started_at, ends_at, ended_at, status
		FROM fasts WHERE user_id = $1 AND status = $2
	`, userID, models.FastActive).Scan(&f.ID, &f.UserID, &f.TypeID, &f.GoalHours,
		&f.StartedAt, &f.EndsAt, &f.EndedAt, &f.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading active fast: %w", err)
	}
	return &f, nil
}

// StopFast marks the user's active fast as stopped at the given time.
// Returns the updated record, or (nil, nil) when no fast was active.
func (db *DB) StopFast(ctx context.Context, userID int, at time.Time) (*models.FastRecord, error) {
	var f models.FastRecord
	err := db.Pool.QueryRow(ctx, `
		UPDATE fasts SET status = $3, ended_at = $4
		WHERE user_id = $1 AND status = $2
		RETURNING id, user_id, type_id, goal_hours, started_at, ends_at, ended_at, status
	`, userID, models.FastActive, models.FastStopped, at).Scan(&f.ID, &f.UserID,
		&f.TypeID, &f.GoalHours, &f.StartedAt, &f.EndsAt, &f.EndedAt, &f.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stopping fast: %w", err)
	}
	return &f, nil
}

// CompleteExpiredFasts marks every active fast whose goal boundary has passed
// as completed, with ended_at set to the goal boundary itself. Returns the
// number of fasts completed.
func (db *DB) CompleteExpiredFasts(ctx context.Context, now time.Time) (int64, error) {
	tag, err := db.Pool.Exec(ctx, `
		UPDATE fasts SET status = $2, ended_at = ends_at
		WHERE status = $1 AND ends_at <= $3
	`, models.FastActive, models.FastCompleted, now)
	if err != nil {
		return 0, fmt.Errorf("completing expired fasts: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QueryFastHistory returns the user's most recent finished fasts.
func (db *DB) QueryFastHistory(ctx context.Context, userID, limit int) ([]models.FastRecord, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, user_id, type_id, goal_hours, started_at, ends_at, ended_at, status
		FROM fasts
		WHERE user_id = $1 AND status != $2
		ORDER BY started_at DESC
		LIMIT $3
	`, userID, models.FastActive, limit)
	if err != nil {
		return nil, fmt.Errorf("querying fast history: %w", err)
	}
	defer rows.Close()

	var fasts []models.FastRecord
	for rows.Next() {
		var f models.FastRecord
		if err := rows.Scan(&f.ID, &f.UserID, &f.TypeID, &f.GoalHours,
			&f.StartedAt, &f.EndsAt, &f.EndedAt, &f.Status); err != nil {
			return nil, fmt.Errorf("scanning fast: %w", err)
		}
		fasts = append(fasts, f)
	}
	return fasts, rows.Err()
}
