package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/brk3/mindtrack/internal/logger"
	"github.com/brk3/mindtrack/internal/stats"
	"github.com/brk3/mindtrack/pkg/habit"
	"github.com/brk3/mindtrack/pkg/versioninfo"
)

const (
	maxHabitLength   = 64
	maxHabitsPerLog  = 50
	noSuggestionText = "Let's focus on consistency for now!"
)

func (s *Server) home(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "MindTrack backend is running")
}

func (s *Server) getVersionInfo(w http.ResponseWriter, _ *http.Request) {
	info := versioninfo.VersionInfo{
		Version:   versioninfo.Version,
		BuildDate: versioninfo.BuildDate,
	}
	if err := writeJSON(w, http.StatusOK, info); err != nil {
		logger.Error("Failed to serialize version info response", "error", err)
	}
}

func (s *Server) logHabits(w http.ResponseWriter, r *http.Request) {
	var req LogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Invalid JSON in log request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	entries, err := s.validateLogRequest(req)
	if err != nil {
		logger.Debug("Rejected log request", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	logger.Info("Storing log entries", "date", entries[0].Date, "count", len(entries))
	stored, err := s.store.AppendLogs(entries)
	if err != nil {
		logger.Error("Failed to store log entries", "date", entries[0].Date, "error", err)
		writeError(w, http.StatusInternalServerError, "database write failed")
		return
	}
	logEntriesTotal.Add(float64(len(stored)))

	resp := LogResponse{
		Message: fmt.Sprintf("Successfully logged %d habits!", len(stored)),
		Entries: stored,
	}
	if err := writeJSON(w, http.StatusCreated, resp); err != nil {
		logger.Error("Failed to serialize log response", "error", err)
	}
}

func (s *Server) validateLogRequest(req LogRequest) ([]habit.LogEntry, error) {
	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = s.today()
	}

	names := req.Habits
	if req.Habit != "" {
		names = append([]string{req.Habit}, names...)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("habit is required")
	}
	if len(names) > maxHabitsPerLog {
		return nil, fmt.Errorf("too many habits: at most %d per request", maxHabitsPerLog)
	}

	entries := make([]habit.LogEntry, 0, len(names))
	for _, name := range names {
		e, err := s.validateEntry(habit.LogEntry{Date: date, Habit: name})
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// validateEntry trims the habit name and checks it together with the date.
func (s *Server) validateEntry(e habit.LogEntry) (habit.LogEntry, error) {
	e.Date = strings.TrimSpace(e.Date)
	e.Habit = strings.TrimSpace(e.Habit)
	if err := validateDate(e.Date, s.today()); err != nil {
		return habit.LogEntry{}, err
	}
	if e.Habit == "" || len(e.Habit) > maxHabitLength {
		return habit.LogEntry{}, fmt.Errorf("bad habit name: must be 1-%d characters", maxHabitLength)
	}
	return e, nil
}

func validateDate(date, today string) error {
	t, err := time.Parse(habit.DateLayout, date)
	if err != nil {
		return fmt.Errorf("bad date: must be YYYY-MM-DD")
	}
	if t.Year() < 2000 || t.Year() > 2099 {
		return fmt.Errorf("bad date: year must be between 2000 and 2099")
	}
	if date > today {
		return fmt.Errorf("bad date: %s is after today (%s)", date, today)
	}
	return nil
}

func (s *Server) getLogs(w http.ResponseWriter, _ *http.Request) {
	logs, err := s.store.ListLogs()
	if err != nil {
		logger.Error("Failed to list logs", "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	stats.SortEntries(logs)
	logger.Debug("Listed logs", "count", len(logs))
	if err := writeJSON(w, http.StatusOK, logs); err != nil {
		logger.Error("Failed to serialize logs response", "error", err)
	}
}

func (s *Server) getTodayLogs(w http.ResponseWriter, _ *http.Request) {
	logs, err := s.store.ListLogs()
	if err != nil {
		logger.Error("Failed to list logs", "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}

	today := s.today()
	names := []string{}
	seen := map[string]bool{}
	for _, e := range logs {
		if e.Date == today && !seen[e.Habit] {
			seen[e.Habit] = true
			names = append(names, e.Habit)
		}
	}
	if err := writeJSON(w, http.StatusOK, names); err != nil {
		logger.Error("Failed to serialize today logs response", "error", err)
	}
}

func (s *Server) computeStats() (habit.Stats, error) {
	logs, err := s.store.ListLogs()
	if err != nil {
		return habit.Stats{}, err
	}
	st := stats.Compute(logs, stats.Today(s.now(), s.loc))
	currentStreak.Set(float64(st.Streak))
	return st, nil
}

func (s *Server) getStats(w http.ResponseWriter, _ *http.Request) {
	st, err := s.computeStats()
	if err != nil {
		logger.Error("Failed to compute stats", "error", err)
		writeError(w, http.StatusInternalServerError, "error computing stats")
		return
	}
	if err := writeJSON(w, http.StatusOK, st); err != nil {
		logger.Error("Failed to serialize stats response", "error", err)
	}
}

func (s *Server) getMotivation(w http.ResponseWriter, _ *http.Request) {
	st, err := s.computeStats()
	if err != nil {
		logger.Error("Failed to compute stats for motivation", "error", err)
		writeError(w, http.StatusInternalServerError, "error computing stats")
		return
	}
	resp := MotivationResponse{
		Message: stats.Motivation(st.Streak),
		Streak:  st.Streak,
		Emoji:   st.StreakEmoji,
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize motivation response", "error", err)
	}
}

func (s *Server) getSuggestion(w http.ResponseWriter, r *http.Request) {
	var req SuggestionRequest
	// an empty body means "use the stored log"
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("Invalid JSON in suggestion request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.WindowDays < 0 {
		writeError(w, http.StatusBadRequest, "window_days must not be negative")
		return
	}
	window := req.WindowDays
	if window == 0 {
		window = s.cfg.SuggestionWindowDays
	}

	history := make([]habit.LogEntry, 0, len(req.History))
	for i, e := range req.History {
		valid, err := s.validateEntry(e)
		if err != nil {
			logger.Debug("Rejected suggestion history", "index", i, "error", err)
			writeError(w, http.StatusBadRequest, fmt.Sprintf("history[%d]: %s", i, err))
			return
		}
		history = append(history, valid)
	}
	if len(history) == 0 {
		logs, err := s.store.ListLogs()
		if err != nil {
			logger.Error("Failed to list logs for suggestion", "error", err)
			writeError(w, http.StatusInternalServerError, "storage error")
			return
		}
		history = logs
	}

	suggestions := stats.Suggest(history, stats.Today(s.now(), s.loc), window, habit.DefaultHabits)
	resp := SuggestionResponse{
		Suggestions: suggestions,
		Suggestion:  noSuggestionText,
	}
	if len(suggestions) > 0 {
		resp.Suggestion = fmt.Sprintf("It's been a while since you did %q. How about today?", suggestions[0])
	}
	logger.Debug("Computed suggestions", "window_days", window, "count", len(suggestions))
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize suggestion response", "error", err)
	}
}
