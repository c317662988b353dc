// Package sqlite stores log entries and the habit catalog in a single SQLite
// file.
package sqlite

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/brk3/mindtrack/internal/storage"
	"github.com/brk3/mindtrack/pkg/habit"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

const currentSchemaVersion = 1

type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A single writer avoids SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var name string
	err := s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&name)

	if errors.Is(err, sql.ErrNoRows) {
		if _, err := s.db.Exec(schemaSQL); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
		_, err = s.db.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion)
		return err
	}
	if err != nil {
		return fmt.Errorf("checking schema version: %w", err)
	}

	var version int
	if err := s.db.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, currentSchemaVersion)
	}
	return nil
}

func (s *Store) AppendLogs(entries []habit.LogEntry) ([]habit.LogEntry, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	out := make([]habit.LogEntry, 0, len(entries))
	for _, e := range entries {
		e.CreatedAt = now
		res, err := tx.Exec(
			"INSERT INTO logs (date, habit, created_at) VALUES (?, ?, ?)",
			e.Date, e.Habit, e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("inserting log entry: %w", err)
		}
		if e.ID, err = res.LastInsertId(); err != nil {
			return nil, fmt.Errorf("reading log entry id: %w", err)
		}
		out = append(out, e)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing log entries: %w", err)
	}
	return out, nil
}

func (s *Store) ListLogs() ([]habit.LogEntry, error) {
	rows, err := s.db.Query("SELECT id, date, habit, created_at FROM logs ORDER BY date, id")
	if err != nil {
		return nil, fmt.Errorf("querying logs: %w", err)
	}
	defer rows.Close()

	out := []habit.LogEntry{}
	for rows.Next() {
		var e habit.LogEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.Habit, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning log entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) ListHabits() ([]habit.Habit, error) {
	rows, err := s.db.Query("SELECT id, name, is_deletable, created_at FROM habits ORDER BY created_at, seq")
	if err != nil {
		return nil, fmt.Errorf("querying habits: %w", err)
	}
	defer rows.Close()

	out := []habit.Habit{}
	for rows.Next() {
		var h habit.Habit
		if err := rows.Scan(&h.ID, &h.Name, &h.IsDeletable, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning habit: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *Store) AddHabit(h habit.Habit) (habit.Habit, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return habit.Habit{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRow("SELECT COUNT(*) FROM habits WHERE name = ?", h.Name).Scan(&n); err != nil {
		return habit.Habit{}, fmt.Errorf("checking for duplicate habit: %w", err)
	}
	if n > 0 {
		return habit.Habit{}, storage.ErrHabitExists
	}

	if _, err := tx.Exec(
		"INSERT INTO habits (id, name, is_deletable, created_at) VALUES (?, ?, ?, ?)",
		h.ID, h.Name, h.IsDeletable, h.CreatedAt,
	); err != nil {
		return habit.Habit{}, fmt.Errorf("inserting habit: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return habit.Habit{}, fmt.Errorf("committing habit: %w", err)
	}
	return h, nil
}

func (s *Store) GetHabit(id string) (habit.Habit, error) {
	var h habit.Habit
	err := s.db.QueryRow(
		"SELECT id, name, is_deletable, created_at FROM habits WHERE id = ?", id,
	).Scan(&h.ID, &h.Name, &h.IsDeletable, &h.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return habit.Habit{}, storage.ErrNotFound
	}
	if err != nil {
		return habit.Habit{}, fmt.Errorf("getting habit %s: %w", id, err)
	}
	return h, nil
}

func (s *Store) DeleteHabit(id string) error {
	res, err := s.db.Exec("DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting habit %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting habit %s: %w", id, err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

var _ storage.Store = (*Store)(nil)
