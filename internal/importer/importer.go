package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/claude/fastbite/internal/models"
	"github.com/claude/fastbite/internal/storage"
	"github.com/google/uuid"
)

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	ItemsInserted   int64
	ItemsDuplicated int64
}

// Importer reads exported daily food-log JSON files and inserts their items
// into the DB. One file per day, named YYYY-MM-DD.json, containing an array
// of logged items.
type Importer struct {
	db     *storage.DB
	state  *StateDB
	log    *slog.Logger
	userID int
	dryRun bool
	stats  Stats
}

// New creates a new Importer. A nil state disables already-imported tracking.
func New(db *storage.DB, state *StateDB, log *slog.Logger, userID int, dryRun bool) *Importer {
	return &Importer{db: db, state: state, log: log, userID: userID, dryRun: dryRun}
}

// exportItem is one entry of an exported daily log file. The ID is optional;
// items without one get a fresh UUID, which means re-importing a changed file
// can duplicate them.
type exportItem struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Calories      int     `json:"calories"`
	ProteinG      float64 `json:"protein_g"`
	CarbsG        float64 `json:"carbs_g"`
	FatG          float64 `json:"fat_g"`
	SugarG        float64 `json:"sugar_g"`
	GlycemicIndex float64 `json:"glycemic_index"`
}

// Import processes all daily .json files under the export directory.
func (imp *Importer) Import(ctx context.Context, exportDir string) (*Stats, error) {
	files, err := filepath.Glob(filepath.Join(exportDir, "*.json"))
	if err != nil {
		return &imp.stats, fmt.Errorf("listing %s: %w", exportDir, err)
	}

	for _, f := range files {
		if err := imp.importFile(ctx, f); err != nil {
			return &imp.stats, err
		}
	}

	return &imp.stats, nil
}

// importFile imports one daily log file, skipping it when the state DB says
// the same path/size/hash was already imported.
func (imp *Importer) importFile(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		imp.log.Warn("stat failed", "file", path, "error", err)
		imp.stats.FilesErrored++
		return nil
	}

	var hash string
	if imp.state != nil {
		hash, err = HashFile(path)
		if err != nil {
			imp.log.Warn("hash failed", "file", path, "error", err)
			imp.stats.FilesErrored++
			return nil
		}
		done, err := imp.state.IsImported(filepath.Base(path), info.Size(), hash)
		if err != nil {
			return fmt.Errorf("checking import state for %s: %w", path, err)
		}
		if done {
			imp.stats.FilesSkipped++
			return nil
		}
	}

	date, err := DateFromFilename(filepath.Base(path))
	if err != nil {
		imp.log.Warn("unrecognized export filename", "file", path, "error", err)
		imp.stats.FilesErrored++
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		imp.log.Warn("read failed", "file", path, "error", err)
		imp.stats.FilesErrored++
		return nil
	}

	var items []exportItem
	if err := json.Unmarshal(data, &items); err != nil {
		imp.log.Warn("parse failed", "file", path, "error", err)
		imp.stats.FilesErrored++
		return nil
	}

	var rows []models.FoodLogItem
	for _, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			continue
		}
		id, err := uuid.Parse(it.ID)
		if err != nil {
			id = uuid.New()
		}
		rows = append(rows, models.FoodLogItem{
			ID:            id,
			UserID:        imp.userID,
			Date:          date,
			Name:          it.Name,
			Calories:      it.Calories,
			ProteinG:      it.ProteinG,
			CarbsG:        it.CarbsG,
			FatG:          it.FatG,
			SugarG:        it.SugarG,
			GlycemicIndex: it.GlycemicIndex,
		})
	}

	if len(rows) == 0 {
		imp.stats.FilesSkipped++
		return nil
	}

	imp.stats.FilesProcessed++
	if imp.dryRun {
		imp.stats.ItemsInserted += int64(len(rows))
		return nil
	}

	inserted, err := imp.batchInsertItems(ctx, rows)
	if err != nil {
		return fmt.Errorf("inserting items from %s: %w", filepath.Base(path), err)
	}
	imp.stats.ItemsInserted += inserted
	imp.stats.ItemsDuplicated += int64(len(rows)) - inserted

	if imp.state != nil {
		if err := imp.state.MarkImported(filepath.Base(path), info.Size(), hash); err != nil {
			return fmt.Errorf("recording import state for %s: %w", path, err)
		}
	}
	return nil
}

// batchInsertItems inserts food items in chunks to stay within PostgreSQL
// parameter limits. 10 params per row, max 65535 params. Use 5000 rows.
func (imp *Importer) batchInsertItems(ctx context.Context, rows []models.FoodLogItem) (int64, error) {
	const batchSize = 5000
	var totalInserted int64

	for i := 0; i < len(rows); i += batchSize {
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		inserted, err := imp.db.InsertFoodItems(ctx, rows[i:end])
		if err != nil {
			return totalInserted, err
		}
		totalInserted += inserted
	}
	return totalInserted, nil
}

// DateFromFilename extracts the log date from an export filename like
// "2026-03-01.json".
func DateFromFilename(filename string) (models.DateOnly, error) {
	base := strings.TrimSuffix(filename, ".json")
	date, err := models.ParseDate(base)
	if err != nil {
		return models.DateOnly{}, fmt.Errorf("filename %s: %w", filename, err)
	}
	return date, nil
}
