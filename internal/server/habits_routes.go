package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/brk3/mindtrack/internal/logger"
	"github.com/brk3/mindtrack/internal/storage"
)

func (s *Server) writeHabitList(w http.ResponseWriter, code int) {
	habits, err := s.store.ListHabits()
	if err != nil {
		logger.Error("Failed to list habits", "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	activeHabits.Set(float64(len(habits)))
	if err := writeJSON(w, code, habits); err != nil {
		logger.Error("Failed to serialize habit list response", "error", err)
	}
}

func (s *Server) getHabits(w http.ResponseWriter, _ *http.Request) {
	s.writeHabitList(w, http.StatusOK)
}

func (s *Server) addHabit(w http.ResponseWriter, r *http.Request) {
	var req AddHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Invalid JSON in add habit request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "Habit name is required")
		return
	}
	if len(name) > maxHabitLength {
		writeError(w, http.StatusBadRequest, "Habit name is too long")
		return
	}

	h, err := s.store.AddHabit(storage.NewHabit(name, true))
	if errors.Is(err, storage.ErrHabitExists) {
		writeError(w, http.StatusConflict, "This habit already exists")
		return
	}
	if err != nil {
		logger.Error("Failed to add habit", "habit_name", name, "error", err)
		writeError(w, http.StatusInternalServerError, "database write failed")
		return
	}
	logger.Info("Habit added", "habit_id", h.ID, "habit_name", h.Name)

	s.writeHabitList(w, http.StatusCreated)
}

func (s *Server) deleteHabit(w http.ResponseWriter, r *http.Request) {
	var req DeleteHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Invalid JSON in delete habit request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "Habit ID is required")
		return
	}

	h, err := s.store.GetHabit(req.ID)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Habit not found")
		return
	}
	if err != nil {
		logger.Error("Failed to get habit", "habit_id", req.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	if !h.IsDeletable {
		logger.Warn("Refusing to delete default habit", "habit_id", h.ID, "habit_name", h.Name)
		writeError(w, http.StatusForbidden, "Cannot delete a default habit")
		return
	}

	if err := s.store.DeleteHabit(h.ID); err != nil && !errors.Is(err, storage.ErrNotFound) {
		logger.Error("Failed to delete habit", "habit_id", h.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	logger.Info("Habit deleted", "habit_id", h.ID, "habit_name", h.Name)

	s.writeHabitList(w, http.StatusOK)
}
