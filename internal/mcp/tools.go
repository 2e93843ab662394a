package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/claude/fastbite/internal/fasting"
	"github.com/claude/fastbite/internal/models"
	"github.com/claude/fastbite/internal/nutrition"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// logDate resolves an optional YYYY-MM-DD parameter, defaulting to today.
func logDate(s string) (models.DateOnly, error) {
	if s == "" {
		now := time.Now()
		return models.Date(now.Year(), now.Month(), now.Day()), nil
	}
	return models.ParseDate(s)
}

// --- Tool definitions ---

var toolGetNutritionTargets = mcp.NewTool("get_nutrition_targets",
	mcp.WithDescription("Get the daily calorie target with BMI/BMR/TDEE breakdown, macro gram targets, sugar target with guidance band, and the glycemic-load target. Derived from the stored profile and settings."),
)

var toolGetDailyLog = mcp.NewTool("get_daily_log",
	mcp.WithDescription("Get logged food for a day with nutrient totals and the glycemic-load aggregate."),
	mcp.WithString("date", mcp.Description("Day to query (YYYY-MM-DD). Defaults to today.")),
)

var toolLogFood = mcp.NewTool("log_food",
	mcp.WithDescription("Log a food item for a day. Nutrients default to zero when omitted."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Food name")),
	mcp.WithString("date", mcp.Description("Day to log against (YYYY-MM-DD). Defaults to today.")),
	mcp.WithNumber("calories", mcp.Description("Calories (kcal)")),
	mcp.WithNumber("protein_g", mcp.Description("Protein in grams")),
	mcp.WithNumber("carbs_g", mcp.Description("Carbohydrates in grams")),
	mcp.WithNumber("fat_g", mcp.Description("Fat in grams")),
	mcp.WithNumber("sugar_g", mcp.Description("Sugar in grams")),
	mcp.WithNumber("glycemic_index", mcp.Description("Glycemic index (0-100)")),
)

var toolGetFastingStatus = mcp.NewTool("get_fasting_status",
	mcp.WithDescription("Get the current fasting timer state: the active fast (if any) with elapsed/remaining time and progress, or idle."),
)

var toolStartFast = mcp.NewTool("start_fast",
	mcp.WithDescription("Start a fast. Fails when one is already active."),
	mcp.WithString("type", mcp.Description("Fast preset ID (12-12, 16-8, 1-day, 3-day, 5-day). Defaults to 16-8."), mcp.Enum("12-12", "16-8", "1-day", "3-day", "5-day")),
)

var toolStopFast = mcp.NewTool("stop_fast",
	mcp.WithDescription("Stop the active fast. Fails when no fast is running."),
)

// --- Tool handlers ---

func (h *handlers) getNutritionTargets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	profile, err := h.db.GetProfile(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_nutrition_targets", "error", err)
		return mcp.NewToolResultError("loading profile failed: " + err.Error()), nil
	}
	settings, err := h.db.GetSettings(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_nutrition_targets", "error", err)
		return mcp.NewToolResultError("loading settings failed: " + err.Error()), nil
	}

	var p nutrition.Profile
	if profile != nil {
		p = profile.Profile
	}
	calc := nutrition.CalculateCalorieTarget(p)

	result, err := mcp.NewToolResultJSON(map[string]any{
		"calories":     calc.Calories,
		"bmi":          calc.BMI,
		"bmi_category": calc.BMICategory,
		"bmi_warning":  calc.BMIWarning,
		"bmr":          calc.BMR,
		"tdee":         calc.TDEE,
		"macros":       nutrition.MacroTargets(calc.Calories, settings.MacroMode, settings.Split, settings.CustomTargets),
		"sugar_g":      nutrition.SugarTarget(calc.Calories, settings.Sugar),
		"sugar_band":   nutrition.SugarBand(calc.Calories, settings.Sugar),
		"gl_target":    settings.GLTarget,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getDailyLog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	date, err := logDate(req.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	items, err := h.db.QueryDay(ctx, uid, date)
	if err != nil {
		h.log.Error("mcp get_daily_log", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	settings, err := h.db.GetSettings(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_daily_log", "error", err)
		return mcp.NewToolResultError("loading settings failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(daySummary(date, items, settings.GLTarget))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) logFood(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	name, err := req.RequireString("name")
	if err != nil || strings.TrimSpace(name) == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	date, err := logDate(req.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	item := models.FoodLogItem{
		ID:            uuid.New(),
		UserID:        uid,
		Date:          date,
		Name:          name,
		Calories:      req.GetInt("calories", 0),
		ProteinG:      req.GetFloat("protein_g", 0),
		CarbsG:        req.GetFloat("carbs_g", 0),
		FatG:          req.GetFloat("fat_g", 0),
		SugarG:        req.GetFloat("sugar_g", 0),
		GlycemicIndex: req.GetFloat("glycemic_index", 0),
	}

	if _, err := h.db.InsertFoodItems(ctx, []models.FoodLogItem{item}); err != nil {
		h.log.Error("mcp log_food", "error", err)
		return mcp.NewToolResultError("insert failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(item)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getFastingStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	now := time.Now()

	if _, err := h.db.CompleteExpiredFasts(ctx, now); err != nil {
		h.log.Warn("mcp get_fasting_status: expiry sweep failed", "error", err)
	}

	rec, err := h.db.GetActiveFast(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_fasting_status", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if rec == nil {
		result, err := mcp.NewToolResultJSON(map[string]any{"status": "idle"})
		if err != nil {
			return mcp.NewToolResultError("serialization failed"), nil
		}
		return result, nil
	}

	result, err := mcp.NewToolResultJSON(fastStatus(rec, now))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) startFast(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	ft := fasting.DefaultType()
	if id := req.GetString("type", ""); id != "" {
		var ok bool
		if ft, ok = fasting.TypeByID(id); !ok {
			return mcp.NewToolResultError("unknown fast type: " + id), nil
		}
	}

	now := time.Now()
	rec := &models.FastRecord{
		ID:        uuid.New(),
		UserID:    uid,
		TypeID:    ft.ID,
		GoalHours: ft.DurationHours,
		StartedAt: now,
		EndsAt:    now.Add(time.Duration(ft.DurationHours * float64(time.Hour))),
		Status:    models.FastActive,
	}
	if err := h.db.StartFast(ctx, rec); err != nil {
		return mcp.NewToolResultError("starting fast failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(rec)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) stopFast(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	rec, err := h.db.StopFast(ctx, uid, time.Now())
	if err != nil {
		h.log.Error("mcp stop_fast", "error", err)
		return mcp.NewToolResultError("stopping fast failed: " + err.Error()), nil
	}
	if rec == nil {
		return mcp.NewToolResultError("no active fast"), nil
	}

	result, err := mcp.NewToolResultJSON(rec)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// fastStatus derives displayed timer figures from an active fast record.
func fastStatus(rec *models.FastRecord, now time.Time) map[string]any {
	elapsed := now.Sub(rec.StartedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	remaining := rec.EndsAt.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	progress := fasting.ProgressPercent(elapsed)
	if progress > 100 {
		progress = 100
	}
	return map[string]any{
		"status":            rec.Status,
		"record":            rec,
		"elapsed_seconds":   int(elapsed / time.Second),
		"remaining_seconds": int(remaining / time.Second),
		"remaining":         fasting.FormatDuration(remaining),
		"progress_percent":  progress,
	}
}
