package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/claude/fastbite/internal/fasting"
	"github.com/claude/fastbite/internal/models"
	"github.com/claude/fastbite/internal/storage"
)

func (s *Server) handleFastTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, fasting.Catalog())
}

type startFastRequest struct {
	TypeID string `json:"type_id"`
}

func (s *Server) handleStartFast(w http.ResponseWriter, r *http.Request) {
	var req startFastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	ft, ok := fasting.TypeByID(req.TypeID)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown fast type: " + req.TypeID})
		return
	}

	now := s.clock()
	rec := &models.FastRecord{
		ID:        uuid.New(),
		UserID:    userIDFromContext(r),
		TypeID:    ft.ID,
		GoalHours: ft.DurationHours,
		StartedAt: now,
		EndsAt:    now.Add(time.Duration(ft.DurationHours * float64(time.Hour))),
		Status:    models.FastActive,
	}
	if err := s.db.StartFast(r.Context(), rec); err != nil {
		if errors.Is(err, storage.ErrFastActive) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "a fast is already active"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, s.fastView(rec, now))
}

func (s *Server) handleStopFast(w http.ResponseWriter, r *http.Request) {
	now := s.clock()
	rec, err := s.db.StopFast(r.Context(), userIDFromContext(r), now)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if rec == nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "no active fast"})
		return
	}
	writeJSON(w, http.StatusOK, s.fastView(rec, now))
}

func (s *Server) handleCurrentFast(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)
	rec, err := s.db.GetActiveFast(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if rec == nil {
		writeJSON(w, http.StatusOK, FastView{Status: "idle"})
		return
	}

	now := s.clock()
	if !now.Before(rec.EndsAt) {
		// Goal reached between janitor sweeps: complete it on read.
		if _, err := s.db.CompleteExpiredFasts(r.Context(), now); err != nil {
			s.log.Warn("fast completion sweep failed", "error", err)
		}
		rec.Status = models.FastCompleted
		ended := rec.EndsAt
		rec.EndedAt = &ended
	}
	writeJSON(w, http.StatusOK, s.fastView(rec, now))
}

func (s *Server) handleFastHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	fasts, err := s.db.QueryFastHistory(r.Context(), userIDFromContext(r), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, fasts)
}

// FastView is the timer display payload: the record plus derived
// elapsed/remaining figures, the progress heuristic clamped for display, and
// a formatted remaining string.
type FastView struct {
	Record           *models.FastRecord `json:"record,omitempty"`
	Status           string             `json:"status"`
	ElapsedSeconds   int                `json:"elapsed_seconds"`
	RemainingSeconds int                `json:"remaining_seconds"`
	Remaining        string             `json:"remaining"`
	ProgressPercent  float64            `json:"progress_percent"`
}

// fastView derives displayed timer state from a fast record at a given time.
func (s *Server) fastView(rec *models.FastRecord, now time.Time) FastView {
	v := FastView{Record: rec, Status: rec.Status}
	if rec.Status != models.FastActive {
		v.Remaining = fasting.FormatDuration(0)
		return v
	}

	elapsed := now.Sub(rec.StartedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	remaining := rec.EndsAt.Sub(now)
	if remaining < 0 {
		remaining = 0
	}

	v.ElapsedSeconds = int(elapsed / time.Second)
	v.RemainingSeconds = int(remaining / time.Second)
	v.Remaining = fasting.FormatDuration(remaining)

	pct := fasting.ProgressPercent(elapsed)
	if pct > 100 {
		pct = 100
	}
	v.ProgressPercent = pct
	return v
}
