package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/claude/fastbite/internal/fasting"
	"github.com/claude/fastbite/internal/models"
	"github.com/claude/fastbite/internal/nutrition"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) dailySummary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)

	now := time.Now()
	today := models.Date(now.Year(), now.Month(), now.Day())

	items, err := h.db.QueryDay(ctx, uid, today)
	if err != nil {
		return nil, err
	}

	glTarget := models.DefaultSettings(uid).GLTarget
	settings, err := h.db.GetSettings(ctx, uid)
	if err != nil {
		h.log.Warn("daily_summary: settings query failed", "error", err)
	} else {
		glTarget = settings.GLTarget
	}

	data, err := json.Marshal(daySummary(today, items, glTarget))
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) fastCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(fasting.Catalog())
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// daySummary aggregates a day's logged items against the GL target.
func daySummary(date models.DateOnly, items []models.FoodLogItem, glTarget float64) map[string]any {
	var calories int
	var protein, carbs, fat, sugar float64
	carbSources := make([]nutrition.CarbSource, 0, len(items))
	for _, it := range items {
		calories += it.Calories
		protein += it.ProteinG
		carbs += it.CarbsG
		fat += it.FatG
		sugar += it.SugarG
		carbSources = append(carbSources, nutrition.CarbSource{GlycemicIndex: it.GlycemicIndex, CarbsG: it.CarbsG})
	}
	gl := nutrition.DailyGlycemicLoad(carbSources)

	return map[string]any{
		"date":          date,
		"items":         items,
		"calories":      calories,
		"protein_g":     protein,
		"carbs_g":       carbs,
		"fat_g":         fat,
		"sugar_g":       sugar,
		"glycemic_load": gl,
		"gl_target":     glTarget,
		"gl_band":       nutrition.GlycemicLoadBand(gl, glTarget),
	}
}
