package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/claude/fastbite/internal/models"
	"github.com/claude/fastbite/internal/nutrition"
)

// GetSettings returns the user's allocation preferences, falling back to the
// defaults when no row exists.
func (db *DB) GetSettings(ctx context.Context, userID int) (models.Settings, error) {
	s := models.DefaultSettings(userID)
	var customProtein, customCarbs, customFat *int
	err := db.Pool.QueryRow(ctx, `
		SELECT macro_mode, protein_pct, carbs_pct, fat_pct,
		       custom_protein_g, custom_carbs_g, custom_fat_g,
		       sugar_mode, sugar_pct, sugar_g, gl_target
		FROM settings WHERE user_id = $1
	`, userID).Scan(&s.MacroMode, &s.Split.Protein, &s.Split.Carbs, &s.Split.Fat,
		&customProtein, &customCarbs, &customFat,
		&s.Sugar.Mode, &s.Sugar.Percentage, &s.Sugar.Grams, &s.GLTarget)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.DefaultSettings(userID), nil
	}
	if err != nil {
		return s, fmt.Errorf("loading settings: %w", err)
	}
	if customProtein != nil && customCarbs != nil && customFat != nil {
		s.CustomTargets = &nutrition.GramTargets{
			Protein: *customProtein,
			Carbs:   *customCarbs,
			Fat:     *customFat,
		}
	}
	return s, nil
}

// UpsertSettings writes the user's allocation preferences. Callers validate
// the split before calling; the row stores whatever arrives here.
func (db *DB) UpsertSettings(ctx context.Context, s models.Settings) error {
	var customProtein, customCarbs, customFat *int
	if s.CustomTargets != nil {
		customProtein = &s.CustomTargets.Protein
		customCarbs = &s.CustomTargets.Carbs
		customFat = &s.CustomTargets.Fat
	}
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO settings (user_id, macro_mode, protein_pct, carbs_pct, fat_pct,
		                      custom_protein_g, custom_carbs_g, custom_fat_g,
		                      sugar_mode, sugar_pct, sugar_g, gl_target)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id) DO UPDATE SET
			macro_mode = $2, protein_pct = $3, carbs_pct = $4, fat_pct = $5,
			custom_protein_g = $6, custom_carbs_g = $7, custom_fat_g = $8,
			sugar_mode = $9, sugar_pct = $10, sugar_g = $11, gl_target = $12
	`, s.UserID, s.MacroMode, s.Split.Protein, s.Split.Carbs, s.Split.Fat,
		customProtein, customCarbs, customFat,
		s.Sugar.Mode, s.Sugar.Percentage, s.Sugar.Grams, s.GLTarget)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}
