package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/claude/fastbite/internal/models"
	"github.com/claude/fastbite/internal/nutrition"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.db.GetProfile(r.Context(), userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if p == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no profile saved"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var p nutrition.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if msg := validateProfile(p); msg != "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": msg})
		return
	}

	uid := userIDFromContext(r)
	result := nutrition.CalculateCalorieTarget(p)
	rec := &models.ProfileRecord{UserID: uid, Profile: p, CachedCalories: result.Calories}
	if err := s.db.UpsertProfile(r.Context(), rec); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	// The sugar preference keeps a denormalized twin value that tracks the
	// calorie target; refresh it now that the target moved.
	settings, err := s.db.GetSettings(r.Context(), uid)
	if err != nil {
		s.log.Warn("sugar recompute skipped: settings load failed", "error", err)
	} else {
		settings.Sugar = settings.Sugar.Recompute(result.Calories)
		if err := s.db.UpsertSettings(r.Context(), settings); err != nil {
			s.log.Warn("sugar recompute not saved", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"profile": rec,
		"targets": result,
	})
}

// TargetsResponse bundles everything the dashboard needs to render daily
// targets.
type TargetsResponse struct {
	nutrition.CalorieResult
	Macros    nutrition.GramTargets `json:"macros"`
	SugarG    int                   `json:"sugar_g"`
	SugarBand string                `json:"sugar_band"`
	GLTarget  float64               `json:"gl_target"`
}

// buildTargets assembles the full target set from a profile and settings.
// A nil profile yields the calculator's defined empty result.
func buildTargets(p *models.ProfileRecord, settings models.Settings) TargetsResponse {
	var profile nutrition.Profile
	if p != nil {
		profile = p.Profile
	}
	result := nutrition.CalculateCalorieTarget(profile)
	return TargetsResponse{
		CalorieResult: result,
		Macros: nutrition.MacroTargets(result.Calories, settings.MacroMode,
			settings.Split, settings.CustomTargets),
		SugarG:    nutrition.SugarTarget(result.Calories, settings.Sugar),
		SugarBand: nutrition.SugarBand(result.Calories, settings.Sugar),
		GLTarget:  settings.GLTarget,
	}
}

func (s *Server) handleGetTargets(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)
	p, err := s.db.GetProfile(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	settings, err := s.db.GetSettings(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, buildTargets(p, settings))
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.db.GetSettings(r.Context(), userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// patchSettingsRequest is the request body for PATCH /api/v1/settings. All
// fields are pointers — only non-nil fields are applied. A split can be
// replaced wholesale via macro_split, or adjusted one slider at a time via
// split_edit, which rebalances the other two components server-side.
type patchSettingsRequest struct {
	MacroMode       *string                `json:"macro_mode"`
	Split           *nutrition.MacroSplit  `json:"macro_split"`
	SplitEdit       *splitEdit             `json:"split_edit"`
	CustomTargets   *nutrition.GramTargets `json:"custom_targets"`
	SugarMode       *string                `json:"sugar_mode"`
	SugarPercentage *float64               `json:"sugar_percentage"`
	SugarGrams      *int                   `json:"sugar_grams"`
	GLTarget        *float64               `json:"gl_target"`
}

// splitEdit moves one macro slider to a new percentage.
type splitEdit struct {
	Macro string  `json:"macro"`
	Value float64 `json:"value"`
}

// applySettingsPatch merges a patch into existing settings. It returns an
// error message for rejected values (empty string means accepted); a split
// that does not sum to 100 is declined without touching the stored one.
func applySettingsPatch(settings *models.Settings, req patchSettingsRequest) string {
	if req.MacroMode != nil {
		switch *req.MacroMode {
		case nutrition.MacroModePercentage, nutrition.MacroModeCustom:
			settings.MacroMode = *req.MacroMode
		default:
			return "unknown macro_mode"
		}
	}
	if req.Split != nil {
		if !nutrition.ValidateSplit(*req.Split) {
			return "macro split must sum to 100"
		}
		settings.Split = *req.Split
	}
	if req.SplitEdit != nil {
		switch req.SplitEdit.Macro {
		case nutrition.MacroProtein, nutrition.MacroCarbs, nutrition.MacroFat:
		default:
			return "unknown macro"
		}
		// RescaleSplit clamps the value and rebalances the other two, so the
		// result always validates.
		settings.Split = nutrition.RescaleSplit(settings.Split, req.SplitEdit.Macro, req.SplitEdit.Value)
	}
	if req.CustomTargets != nil {
		c := *req.CustomTargets
		if c.Protein < 0 || c.Carbs < 0 || c.Fat < 0 {
			return "custom targets must be non-negative"
		}
		settings.CustomTargets = &c
	}
	if req.SugarMode != nil {
		switch *req.SugarMode {
		case nutrition.SugarModePercentage, nutrition.SugarModeGrams:
			settings.Sugar.Mode = *req.SugarMode
		default:
			return "unknown sugar_mode"
		}
	}
	if req.SugarPercentage != nil {
		if *req.SugarPercentage < 0 || *req.SugarPercentage > 100 {
			return "sugar_percentage out of range"
		}
		settings.Sugar.Percentage = *req.SugarPercentage
	}
	if req.SugarGrams != nil {
		if *req.SugarGrams < 0 {
			return "sugar_grams must be non-negative"
		}
		settings.Sugar.Grams = *req.SugarGrams
	}
	if req.GLTarget != nil {
		if *req.GLTarget < 0 {
			return "gl_target must be non-negative"
		}
		settings.GLTarget = *req.GLTarget
	}
	return ""
}

func (s *Server) handlePatchSettings(w http.ResponseWriter, r *http.Request) {
	var req patchSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	uid := userIDFromContext(r)
	settings, err := s.db.GetSettings(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if msg := applySettingsPatch(&settings, req); msg != "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": msg})
		return
	}

	// Keep the denormalized sugar twin in sync with the cached calorie target.
	if p, err := s.db.GetProfile(r.Context(), uid); err == nil && p != nil {
		settings.Sugar = settings.Sugar.Recompute(p.CachedCalories)
	}

	if err := s.db.UpsertSettings(r.Context(), settings); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleFoodSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "q parameter required"})
		return
	}
	if s.food == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "food lookup not configured"})
		return
	}
	items, err := s.food.Search(r.Context(), q)
	if err != nil {
		s.log.Error("food search failed", "q", q, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// validateProfile checks enum fields on a complete profile; an intentionally
// empty profile is allowed (it produces the defined zero targets).
func validateProfile(p nutrition.Profile) string {
	if p.Gender != "" && p.Gender != nutrition.GenderMale && p.Gender != nutrition.GenderFemale {
		return "unknown gender"
	}
	if p.ActivityLevel != "" && !nutrition.ValidActivityLevel(p.ActivityLevel) {
		return "unknown activity_level"
	}
	switch p.FitnessGoal {
	case "", nutrition.GoalLose, nutrition.GoalMaintain, nutrition.GoalGain:
	default:
		return "unknown fitness_goal"
	}
	if p.Age < 0 || p.HeightCM < 0 || p.WeightKG < 0 {
		return "biometric fields must be non-negative"
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseDateParam reads the date query parameter, defaulting to today.
func parseDateParam(r *http.Request, now time.Time) (models.DateOnly, error) {
	if s := r.URL.Query().Get("date"); s != "" {
		return models.ParseDate(s)
	}
	y, m, d := now.UTC().Date()
	return models.Date(y, m, d), nil
}
