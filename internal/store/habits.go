package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// Habit is a named habit in the catalog. Habits are created lazily on first
// reference by name.
type Habit struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// HabitEntry is one habit's log for one date. The value is an open map so
// per-habit payloads can vary in shape.
type HabitEntry struct {
	ID        int64          `json:"id"`
	HabitID   int64          `json:"habit_id"`
	HabitName string         `json:"habit_name"`
	Date      string         `json:"date"`
	Value     map[string]any `json:"value"`
}

// GetOrCreateHabit resolves a habit by name, creating it if missing.
func (s *Store) GetOrCreateHabit(name string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("habit name cannot be empty")
	}

	if _, err := s.db.Exec(`
		INSERT INTO habits (name) VALUES (?)
		ON CONFLICT (name) DO NOTHING
	`, name); err != nil {
		return 0, fmt.Errorf("insert habit: %w", err)
	}

	var id int64
	if err := s.db.QueryRow(`SELECT id FROM habits WHERE name = ?`, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("resolve habit %q: %w", name, err)
	}
	return id, nil
}

// ListHabits returns the full habit catalog ordered by name.
func (s *Store) ListHabits() ([]*Habit, error) {
	rows, err := s.db.Query(`SELECT id, name FROM habits ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query habits: %w", err)
	}
	defer rows.Close()

	var habits []*Habit
	for rows.Next() {
		var h Habit
		if err := rows.Scan(&h.ID, &h.Name); err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}
		habits = append(habits, &h)
	}
	return habits, rows.Err()
}

// UpsertHabitEntry writes the entry for (habit, date), replacing any previous
// value wholesale. The write is a single atomic row upsert.
func (s *Store) UpsertHabitEntry(habitID int64, date time.Time, value map[string]any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal habit value: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO habit_entries (habit_id, date, value)
		VALUES (?, ?, ?)
		ON CONFLICT (habit_id, date) DO UPDATE SET value = excluded.value
	`, habitID, formatDate(date), string(raw))
	if err != nil {
		return fmt.Errorf("upsert habit entry: %w", err)
	}
	return nil
}

// GetHabitEntriesForDate returns all habit entries logged for a date, with
// habit names resolved, ordered by habit name.
func (s *Store) GetHabitEntriesForDate(date time.Time) ([]*HabitEntry, error) {
	rows, err := s.db.Query(`
		SELECT e.id, e.habit_id, h.name, e.date, e.value
		FROM habit_entries e
		JOIN habits h ON h.id = e.habit_id
		WHERE e.date = ?
		ORDER BY h.name ASC
	`, formatDate(date))
	if err != nil {
		return nil, fmt.Errorf("query habit entries: %w", err)
	}
	defer rows.Close()

	var entries []*HabitEntry
	for rows.Next() {
		var e HabitEntry
		var valueJSON string
		if err := rows.Scan(&e.ID, &e.HabitID, &e.HabitName, &e.Date, &valueJSON); err != nil {
			return nil, fmt.Errorf("scan habit entry: %w", err)
		}
		if err := json.Unmarshal([]byte(valueJSON), &e.Value); err != nil {
			return nil, fmt.Errorf("unmarshal habit value: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
