package server

import (
	"encoding/json"
	"net/http"

	"github.com/brk3/mindtrack/pkg/habit"
)

type LogRequest struct {
	Date   string   `json:"date"`
	Habit  string   `json:"habit"`
	Habits []string `json:"habits"`
}

type LogResponse struct {
	Message string           `json:"message"`
	Entries []habit.LogEntry `json:"entries"`
}

type MotivationResponse struct {
	Message string `json:"message"`
	Streak  int    `json:"streak"`
	Emoji   string `json:"emoji"`
}

type SuggestionRequest struct {
	History    []habit.LogEntry `json:"history"`
	WindowDays int              `json:"window_days"`
}

type SuggestionResponse struct {
	Suggestions []string `json:"suggestions"`
	Suggestion  string   `json:"suggestion"`
}

type AddHabitRequest struct {
	Name string `json:"name"`
}

type DeleteHabitRequest struct {
	ID string `json:"id"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	_ = writeJSON(w, code, ErrorResponse{Error: msg})
}
