package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/claude/fastbite/internal/models"
)

// GetProfile returns the user's biometric profile, or (nil, nil) when none
// has been saved yet.
func (db *DB) GetProfile(ctx context.Context, userID int) (*models.ProfileRecord, error) {
	var p models.ProfileRecord
	err := db.Pool.QueryRow(ctx, `
		SELECT user_id, gender, age, height_cm, weight_kg, activity_level,
		       fitness_goal, cached_calories, updated_at
		FROM profiles WHERE user_id = $1
	`, userID).Scan(&p.UserID, &p.Gender, &p.Age, &p.HeightCM, &p.WeightKG,
		&p.ActivityLevel, &p.FitnessGoal, &p.CachedCalories, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return &p, nil
}

// UpsertProfile writes the profile row, replacing any previous one. The
// cached calorie target comes pre-computed from the caller.
func (db *DB) UpsertProfile(ctx context.Context, p *models.ProfileRecord) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO profiles (user_id, gender, age, height_cm, weight_kg,
		                      activity_level, fitness_goal, cached_calories, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			gender = $2, age = $3, height_cm = $4, weight_kg = $5,
			activity_level = $6, fitness_goal = $7, cached_calories = $8,
			updated_at = NOW()
	`, p.UserID, p.Gender, p.Age, p.HeightCM, p.WeightKG,
		p.ActivityLevel, p.FitnessGoal, p.CachedCalories)
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}
