package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// MessageRole represents the role in a conversation.
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// Message represents a stored transcript message.
type Message struct {
	ID        int64          `json:"id"`
	Role      MessageRole    `json:"role"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// AddMessage appends a message to the transcript.
func (s *Store) AddMessage(role MessageRole, content string, metadata map[string]any) (*Message, error) {
	if role != MessageRoleUser && role != MessageRoleAssistant {
		return nil, fmt.Errorf("invalid message role: %s", role)
	}

	var metaJSON sql.NullString
	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return nil, fmt.Errorf("marshal metadata: %w", err)
		}
		metaJSON = sql.NullString{String: string(raw), Valid: true}
	}

	now := time.Now().UTC()
	res, err := s.db.Exec(`
		INSERT INTO messages (role, content, metadata, created_at)
		VALUES (?, ?, ?, ?)
	`, role, content, metaJSON, now)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("message id: %w", err)
	}

	return &Message{
		ID:        id,
		Role:      role,
		Content:   content,
		Metadata:  metadata,
		CreatedAt: now,
	}, nil
}

// GetRecentMessages retrieves the most recent N messages in chronological
// order (oldest first).
func (s *Store) GetRecentMessages(limit int) ([]*Message, error) {
	rows, err := s.db.Query(`
		SELECT id, role, content, metadata, created_at
		FROM messages
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent messages: %w", err)
	}
	defer rows.Close()

	messages, err := scanMessages(rows)
	if err != nil {
		return nil, err
	}

	// Reverse to get chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, rows.Err()
}

// ListMessages retrieves one transcript page (oldest first) and the total
// message count. Pages are 1-based.
func (s *Store) ListMessages(page, limit int) ([]*Message, int, error) {
	if page < 1 {
		page = 1
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM messages`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count messages: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT id, role, content, metadata, created_at
		FROM messages
		ORDER BY created_at ASC, id ASC
		LIMIT ? OFFSET ?
	`, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("query messages page: %w", err)
	}
	defer rows.Close()

	messages, err := scanMessages(rows)
	if err != nil {
		return nil, 0, err
	}

	return messages, total, rows.Err()
}

// CountMessages returns the number of transcript messages.
func (s *Store) CountMessages() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM messages`).Scan(&count)
	return count, err
}

func scanMessages(rows *sql.Rows) ([]*Message, error) {
	var messages []*Message
	for rows.Next() {
		var m Message
		var metaJSON sql.NullString
		if err := rows.Scan(&m.ID, &m.Role, &m.Content, &metaJSON, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		if metaJSON.Valid && metaJSON.String != "" {
			if err := json.Unmarshal([]byte(metaJSON.String), &m.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal message metadata: %w", err)
			}
		}
		messages = append(messages, &m)
	}
	return messages, nil
}
