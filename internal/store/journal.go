package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Journal is one day's journal entry. Meta is an open map; the agent stores
// wins and improvements lists there.
type Journal struct {
	ID        int64          `json:"id"`
	Date      string         `json:"date"`
	Text      string         `json:"text"`
	Meta      map[string]any `json:"meta,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// UpsertJournal writes the journal for a date, replacing text and metadata
// wholesale.
func (s *Store) UpsertJournal(date time.Time, text string, meta map[string]any) error {
	var metaJSON sql.NullString
	if meta != nil {
		raw, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("marshal journal meta: %w", err)
		}
		metaJSON = sql.NullString{String: string(raw), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO daily_journal (date, text, meta, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (date) DO UPDATE SET text = excluded.text, meta = excluded.meta
	`, formatDate(date), text, metaJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert journal: %w", err)
	}
	return nil
}

// GetJournalForDate returns the journal for a date, or nil if none exists.
func (s *Store) GetJournalForDate(date time.Time) (*Journal, error) {
	var j Journal
	var text, metaJSON sql.NullString
	err := s.db.QueryRow(`
		SELECT id, date, text, meta, created_at
		FROM daily_journal
		WHERE date = ?
	`, formatDate(date)).Scan(&j.ID, &j.Date, &text, &metaJSON, &j.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}

	if text.Valid {
		j.Text = text.String
	}
	if metaJSON.Valid && metaJSON.String != "" {
		if err := json.Unmarshal([]byte(metaJSON.String), &j.Meta); err != nil {
			return nil, fmt.Errorf("unmarshal journal meta: %w", err)
		}
	}
	return &j, nil
}
