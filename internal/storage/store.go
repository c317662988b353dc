package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/brk3/mindtrack/pkg/habit"
	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrHabitExists = errors.New("habit already exists")
)

type Store interface {
	// AppendLogs stores entries and returns them with ID and CreatedAt set.
	AppendLogs(entries []habit.LogEntry) ([]habit.LogEntry, error)
	// ListLogs returns every entry ordered by (date, id).
	ListLogs() ([]habit.LogEntry, error)

	// ListHabits returns the catalog ordered by creation time.
	ListHabits() ([]habit.Habit, error)
	AddHabit(h habit.Habit) (habit.Habit, error)
	GetHabit(id string) (habit.Habit, error)
	DeleteHabit(id string) error

	Close() error
}

// NewHabit fills in the generated fields of a catalog habit.
func NewHabit(name string, deletable bool) habit.Habit {
	return habit.Habit{
		ID:          uuid.NewString(),
		Name:        name,
		IsDeletable: deletable,
		CreatedAt:   time.Now().Unix(),
	}
}

// EnsureDefaultHabits seeds the catalog with the built-in habits when it is
// empty. It returns the number of habits added.
func EnsureDefaultHabits(s Store) (int, error) {
	existing, err := s.ListHabits()
	if err != nil {
		return 0, fmt.Errorf("listing habits: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for _, name := range habit.DefaultHabits {
		if _, err := s.AddHabit(NewHabit(name, false)); err != nil {
			return 0, fmt.Errorf("adding default habit %q: %w", name, err)
		}
	}
	return len(habit.DefaultHabits), nil
}
