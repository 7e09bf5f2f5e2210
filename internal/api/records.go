package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/lifeos/internal/store"
)

// RegisterRecordRoutes mounts the read-only record endpoints.
func (h *Handler) RegisterRecordRoutes(r chi.Router) {
	r.Get("/habits", h.GetHabits)
	r.Get("/journal", h.GetJournal)
	r.Get("/plan", h.GetPlan)
}

type habitsView struct {
	Habits  []*store.Habit      `json:"habits"`
	Entries []*store.HabitEntry `json:"entries"`
}

// GetHabits returns the habit catalog and the entries logged for a date
// (default today).
func (h *Handler) GetHabits(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(r, time.Now())
	if err != nil {
		Error(w, http.StatusUnprocessableEntity, "Validation error", err.Error())
		return
	}

	habits, err := h.store.ListHabits()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list habits")
		Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	entries, err := h.store.GetHabitEntriesForDate(date)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list habit entries")
		Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	Success(w, http.StatusOK, "Habits retrieved", habitsView{Habits: habits, Entries: entries})
}

// GetJournal returns the journal for a date (default today), or null data
// when none exists.
func (h *Handler) GetJournal(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(r, time.Now())
	if err != nil {
		Error(w, http.StatusUnprocessableEntity, "Validation error", err.Error())
		return
	}

	journal, err := h.store.GetJournalForDate(date)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get journal")
		Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	Success(w, http.StatusOK, "Journal retrieved", journal)
}

// GetPlan returns the plan for a date (default today), or null data when none
// exists.
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(r, time.Now())
	if err != nil {
		Error(w, http.StatusUnprocessableEntity, "Validation error", err.Error())
		return
	}

	plan, err := h.store.GetPlanForDate(date)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get plan")
		Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	Success(w, http.StatusOK, "Plan retrieved", plan)
}

func parseDateParam(r *http.Request, fallback time.Time) (time.Time, error) {
	v := r.URL.Query().Get("date")
	if v == "" {
		return fallback, nil
	}

	date, err := time.Parse(store.DateFormat, v)
	if err != nil {
		return time.Time{}, err
	}
	return date, nil
}
