package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/claude/fastbite/internal/models"
)

// InsertFoodItems batch-inserts food log rows. Returns the number actually
// inserted (duplicates skipped via ON CONFLICT DO NOTHING).
func (db *DB) InsertFoodItems(ctx context.Context, rows []models.FoodLogItem) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query := `INSERT INTO food_log (id, user_id, date, name, calories, protein_g, carbs_g, fat_g, sugar_g, glycemic_index)
VALUES `
	args := make([]any, 0, len(rows)*10)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 10
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10,
		))
		args = append(args, r.ID, r.UserID, r.Date, r.Name, r.Calories,
			r.ProteinG, r.CarbsG, r.FatG, r.SugarG, r.GlycemicIndex)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting food items: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QueryDay returns all items logged on a calendar day, oldest first.
func (db *DB) QueryDay(ctx context.Context, userID int, date models.DateOnly) ([]models.FoodLogItem, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, user_id, date, name, calories, protein_g, carbs_g, fat_g,
		       sugar_g, glycemic_index, created_at
		FROM food_log
		WHERE user_id = $1 AND date = $2
		ORDER BY created_at ASC
	`, userID, date)
	if err != nil {
		return nil, fmt.Errorf("querying food log: %w", err)
	}
	defer rows.Close()

	var items []models.FoodLogItem
	for rows.Next() {
		var it models.FoodLogItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.Date, &it.Name, &it.Calories,
			&it.ProteinG, &it.CarbsG, &it.FatG, &it.SugarG, &it.GlycemicIndex,
			&it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning food item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// DeleteFoodItem removes one logged item. Returns whether a row was deleted.
func (db *DB) DeleteFoodItem(ctx context.Context, userID int, id string) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM food_log WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return false, fmt.Errorf("deleting food item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
