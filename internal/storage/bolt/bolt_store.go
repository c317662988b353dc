package bolt

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/brk3/mindtrack/internal/storage"
	"github.com/brk3/mindtrack/pkg/habit"
	"go.etcd.io/bbolt"
)

const (
	logsBucket   = "logs"
	habitsBucket = "habits"
)

type Store struct {
	db *bbolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}

	if err := db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{logsBucket, habitsBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func (s *Store) AppendLogs(entries []habit.LogEntry) ([]habit.LogEntry, error) {
	out := make([]habit.LogEntry, 0, len(entries))
	now := time.Now().Unix()
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(logsBucket))
		for _, e := range entries {
			seq, err := bucket.NextSequence()
			if err != nil {
				return err
			}
			e.ID = int64(seq)
			e.CreatedAt = now
			val, err := json.Marshal(e)
			if err != nil {
				return err
			}
			if err := bucket.Put(itob(seq), val); err != nil {
				return err
			}
			out = append(out, e)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("appending log entries: %w", err)
	}
	return out, nil
}

func (s *Store) ListLogs() ([]habit.LogEntry, error) {
	out := []habit.LogEntry{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(logsBucket)).ForEach(func(_, v []byte) error {
			var e habit.LogEntry
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			out = append(out, e)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("listing log entries: %w", err)
	}
	// keys are in id order; stable sort keeps it within a date
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// Habits are keyed by insertion sequence so iteration follows creation order.
func (s *Store) ListHabits() ([]habit.Habit, error) {
	out := []habit.Habit{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(habitsBucket)).ForEach(func(_, v []byte) error {
			var h habit.Habit
			if err := json.Unmarshal(v, &h); err != nil {
				return err
			}
			out = append(out, h)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("listing habits: %w", err)
	}
	return out, nil
}

func (s *Store) AddHabit(h habit.Habit) (habit.Habit, error) {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(habitsBucket))
		c := bucket.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var existing habit.Habit
			if err := json.Unmarshal(v, &existing); err != nil {
				return err
			}
			if existing.Name == h.Name {
				return storage.ErrHabitExists
			}
		}

		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		val, err := json.Marshal(h)
		if err != nil {
			return err
		}
		return bucket.Put(itob(seq), val)
	})
	if err != nil {
		return habit.Habit{}, err
	}
	return h, nil
}

func (s *Store) findHabit(tx *bbolt.Tx, id string) ([]byte, habit.Habit, error) {
	c := tx.Bucket([]byte(habitsBucket)).Cursor()
	for k, v := c.First(); k != nil; k, v = c.Next() {
		var h habit.Habit
		if err := json.Unmarshal(v, &h); err != nil {
			return nil, habit.Habit{}, err
		}
		if h.ID == id {
			return k, h, nil
		}
	}
	return nil, habit.Habit{}, storage.ErrNotFound
}

func (s *Store) GetHabit(id string) (habit.Habit, error) {
	var out habit.Habit
	err := s.db.View(func(tx *bbolt.Tx) error {
		_, h, err := s.findHabit(tx, id)
		out = h
		return err
	})
	return out, err
}

func (s *Store) DeleteHabit(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		key, _, err := s.findHabit(tx, id)
		if err != nil {
			return err
		}
		return tx.Bucket([]byte(habitsBucket)).Delete(key)
	})
}

var _ storage.Store = (*Store)(nil)
