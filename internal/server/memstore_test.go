package server

import (
	"errors"
	"sync"
	"time"

	"github.com/brk3/mindtrack/internal/storage"
	"github.com/brk3/mindtrack/pkg/habit"
)

type memStore struct {
	mu     sync.RWMutex
	logs   []habit.LogEntry
	habits []habit.Habit
	nextID int64
	err    error
}

func newMemStore() *memStore {
	return &memStore{}
}

func (m *memStore) AppendLogs(entries []habit.LogEntry) ([]habit.LogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}

	out := make([]habit.LogEntry, 0, len(entries))
	for _, e := range entries {
		m.nextID++
		e.ID = m.nextID
		e.CreatedAt = time.Now().Unix()
		m.logs = append(m.logs, e)
		out = append(out, e)
	}
	return out, nil
}

func (m *memStore) ListLogs() ([]habit.LogEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}

	return append([]habit.LogEntry{}, m.logs...), nil
}

func (m *memStore) ListHabits() ([]habit.Habit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}

	return append([]habit.Habit{}, m.habits...), nil
}

func (m *memStore) AddHabit(h habit.Habit) (habit.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return habit.Habit{}, m.err
	}

	for _, existing := range m.habits {
		if existing.Name == h.Name {
			return habit.Habit{}, storage.ErrHabitExists
		}
	}
	m.habits = append(m.habits, h)
	return h, nil
}

func (m *memStore) GetHabit(id string) (habit.Habit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return habit.Habit{}, m.err
	}

	for _, h := range m.habits {
		if h.ID == id {
			return h, nil
		}
	}
	return habit.Habit{}, storage.ErrNotFound
}

func (m *memStore) DeleteHabit(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}

	for i, h := range m.habits {
		if h.ID == id {
			m.habits = append(m.habits[:i], m.habits[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (m *memStore) Close() error {
	return nil
}

var errStorageDown = errors.New("storage unavailable")

var _ storage.Store = (*memStore)(nil)
