// Package models holds the persisted domain records shared between storage,
// the HTTP server, the importer, and the MCP surface.
package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/claude/fastbite/internal/nutrition"
)

// ProfileRecord is a user's stored biometric profile plus the cached calorie
// target. The cache is convenience only — targets are always recomputed from
// the profile fields.
type ProfileRecord struct {
	UserID int `json:"user_id"`
	nutrition.Profile
	CachedCalories int        `json:"cached_calories"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// Settings is a user's allocation preferences: the active macro mode with
// both representations, the sugar preference, and the daily glycemic-load
// target.
type Settings struct {
	UserID        int                       `json:"user_id"`
	MacroMode     string                    `json:"macro_mode"`
	Split         nutrition.MacroSplit      `json:"macro_split"`
	CustomTargets *nutrition.GramTargets    `json:"custom_targets,omitempty"`
	Sugar         nutrition.SugarPreference `json:"sugar"`
	GLTarget      float64                   `json:"gl_target"`
}

// DefaultSettings are the preferences a user has before ever saving any:
// a 25/45/30 percentage split, WHO-recommended sugar share, and a daily GL
// target of 100.
func DefaultSettings(userID int) Settings {
	return Settings{
		UserID:    userID,
		MacroMode: nutrition.MacroModePercentage,
		Split:     nutrition.MacroSplit{Protein: 25, Carbs: 45, Fat: 30},
		Sugar:     nutrition.SugarPreference{Mode: nutrition.SugarModePercentage, Percentage: 10},
		GLTarget:  100,
	}
}

// FoodLogItem is one logged food entry.
type FoodLogItem struct {
	ID            uuid.UUID  `json:"id"`
	UserID        int        `json:"user_id"`
	Date          DateOnly   `json:"date"`
	Name          string     `json:"name"`
	Calories      int        `json:"calories"`
	ProteinG      float64    `json:"protein_g"`
	CarbsG        float64    `json:"carbs_g"`
	FatG          float64    `json:"fat_g"`
	SugarG        float64    `json:"sugar_g"`
	GlycemicIndex float64    `json:"glycemic_index"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}

// Fast record statuses.
const (
	FastActive    = "active"
	FastCompleted = "completed" // goal duration was reached
	FastStopped   = "stopped"   // user stopped before the goal
)

// FastRecord is a persisted fast. EndsAt is the goal boundary computed at
// start; EndedAt is when the fast actually finished (nil while active).
type FastRecord struct {
	ID        uuid.UUID  `json:"id"`
	UserID    int        `json:"user_id"`
	TypeID    string     `json:"type_id"`
	GoalHours float64    `json:"goal_hours"`
	StartedAt time.Time  `json:"started_at"`
	EndsAt    time.Time  `json:"ends_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	Status    string     `json:"status"`
}
