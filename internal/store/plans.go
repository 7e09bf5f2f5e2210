package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Plan is the ordered task list for one date.
type Plan struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	Tasks     []string  `json:"tasks"`
	CreatedAt time.Time `json:"created_at"`
}

// UpsertPlan writes the plan for a date, replacing the task list wholesale.
func (s *Store) UpsertPlan(date time.Time, tasks []string) (*Plan, error) {
	if tasks == nil {
		tasks = []string{}
	}
	raw, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("marshal plan tasks: %w", err)
	}

	now := time.Now().UTC()
	if _, err := s.db.Exec(`
		INSERT INTO plans (date, tasks, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (date) DO UPDATE SET tasks = excluded.tasks
	`, formatDate(date), string(raw), now); err != nil {
		return nil, fmt.Errorf("upsert plan: %w", err)
	}

	return s.GetPlanForDate(date)
}

// GetPlanForDate returns the plan for a date, or nil if none exists.
func (s *Store) GetPlanForDate(date time.Time) (*Plan, error) {
	var p Plan
	var tasksJSON string
	err := s.db.QueryRow(`
		SELECT id, date, tasks, created_at
		FROM plans
		WHERE date = ?
	`, formatDate(date)).Scan(&p.ID, &p.Date, &tasksJSON, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query plan: %w", err)
	}

	if err := json.Unmarshal([]byte(tasksJSON), &p.Tasks); err != nil {
		return nil, fmt.Errorf("unmarshal plan tasks: %w", err)
	}
	return &p, nil
}
