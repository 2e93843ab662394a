package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/claude/fastbite/internal/models"
	"github.com/claude/fastbite/internal/nutrition"
)

// logItemRequest is one entry in the POST /api/v1/log/items body.
type logItemRequest struct {
	Date          string  `json:"date"`
	Name          string  `json:"name"`
	Calories      int     `json:"calories"`
	ProteinG      float64 `json:"protein_g"`
	CarbsG        float64 `json:"carbs_g"`
	FatG          float64 `json:"fat_g"`
	SugarG        float64 `json:"sugar_g"`
	GlycemicIndex float64 `json:"glycemic_index"`
}

func (s *Server) handleLogItems(w http.ResponseWriter, r *http.Request) {
	var reqs []logItemRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if len(reqs) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no items"})
		return
	}

	uid := userIDFromContext(r)
	rows := make([]models.FoodLogItem, 0, len(reqs))
	for _, req := range reqs {
		if req.Name == "" {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "item name required"})
			return
		}
		date, err := models.ParseDate(req.Date)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "invalid date: " + req.Date})
			return
		}
		rows = append(rows, models.FoodLogItem{
			ID:            uuid.New(),
			UserID:        uid,
			Date:          date,
			Name:          req.Name,
			Calories:      req.Calories,
			ProteinG:      req.ProteinG,
			CarbsG:        req.CarbsG,
			FatG:          req.FatG,
			SugarG:        req.SugarG,
			GlycemicIndex: req.GlycemicIndex,
		})
	}

	inserted, err := s.db.InsertFoodItems(r.Context(), rows)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"inserted": inserted})
}

func (s *Server) handleDeleteLogItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item ID"})
		return
	}
	deleted, err := s.db.DeleteFoodItem(r.Context(), userIDFromContext(r), id.String())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// DailySummary is the response for GET /api/v1/log/daily: the day's items,
// nutrient totals, and the glycemic-load aggregate with its guidance band.
type DailySummary struct {
	Date         models.DateOnly      `json:"date"`
	Items        []models.FoodLogItem `json:"items"`
	Calories     int                  `json:"calories"`
	ProteinG     float64              `json:"protein_g"`
	CarbsG       float64              `json:"carbs_g"`
	FatG         float64              `json:"fat_g"`
	SugarG       float64              `json:"sugar_g"`
	GlycemicLoad float64              `json:"glycemic_load"`
	GLTarget     float64              `json:"gl_target"`
	GLBand       string               `json:"gl_band"`
}

// buildDailySummary aggregates a day's logged items against the GL target.
func buildDailySummary(date models.DateOnly, items []models.FoodLogItem, glTarget float64) DailySummary {
	sum := DailySummary{Date: date, Items: items, GLTarget: glTarget}
	carbs := make([]nutrition.CarbSource, 0, len(items))
	for _, it := range items {
		sum.Calories += it.Calories
		sum.ProteinG += it.ProteinG
		sum.CarbsG += it.CarbsG
		sum.FatG += it.FatG
		sum.SugarG += it.SugarG
		carbs = append(carbs, nutrition.CarbSource{GlycemicIndex: it.GlycemicIndex, CarbsG: it.CarbsG})
	}
	sum.GlycemicLoad = nutrition.DailyGlycemicLoad(carbs)
	sum.GLBand = nutrition.GlycemicLoadBand(sum.GlycemicLoad, glTarget)
	return sum
}

func (s *Server) handleDailyLog(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(r, s.clock())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date parameter"})
		return
	}

	uid := userIDFromContext(r)
	items, err := s.db.QueryDay(r.Context(), uid, date)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	settings, err := s.db.GetSettings(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, buildDailySummary(date, items, settings.GLTarget))
}
