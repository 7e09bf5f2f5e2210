package store

import (
	"fmt"
	"testing"
)

func TestAddMessage(t *testing.T) {
	s := setupStoreTest(t)

	msg, err := s.AddMessage(MessageRoleUser, "hello", nil)
	if err != nil {
		t.Fatalf("AddMessage() error: %v", err)
	}
	if msg.ID == 0 {
		t.Error("expected non-zero message ID")
	}
	if msg.Role != MessageRoleUser {
		t.Errorf("expected role=user, got %s", msg.Role)
	}

	count, err := s.CountMessages()
	if err != nil {
		t.Fatalf("CountMessages() error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 message, got %d", count)
	}
}

func TestAddMessageRejectsInvalidRole(t *testing.T) {
	s := setupStoreTest(t)

	if _, err := s.AddMessage(MessageRole("system"), "nope", nil); err == nil {
		t.Error("expected error for invalid role")
	}
}

func TestAddMessageMetadata(t *testing.T) {
	s := setupStoreTest(t)

	meta := map[string]any{"tools": []any{"save_habits"}}
	if _, err := s.AddMessage(MessageRoleAssistant, "done", meta); err != nil {
		t.Fatalf("AddMessage() error: %v", err)
	}

	messages, err := s.GetRecentMessages(10)
	if err != nil {
		t.Fatalf("GetRecentMessages() error: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
	tools, ok := messages[0].Metadata["tools"].([]any)
	if !ok || len(tools) != 1 || tools[0] != "save_habits" {
		t.Errorf("metadata round-trip failed: %#v", messages[0].Metadata)
	}
}

func TestGetRecentMessagesOrder(t *testing.T) {
	s := setupStoreTest(t)

	for i := 0; i < 5; i++ {
		if _, err := s.AddMessage(MessageRoleUser, fmt.Sprintf("msg %d", i), nil); err != nil {
			t.Fatalf("AddMessage() error: %v", err)
		}
	}

	messages, err := s.GetRecentMessages(3)
	if err != nil {
		t.Fatalf("GetRecentMessages() error: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}

	// Oldest first within the window: msg 2, msg 3, msg 4
	for i, want := range []string{"msg 2", "msg 3", "msg 4"} {
		if messages[i].Content != want {
			t.Errorf("messages[%d] = %q, want %q", i, messages[i].Content, want)
		}
	}
}

func TestListMessagesPagination(t *testing.T) {
	s := setupStoreTest(t)

	for i := 0; i < 25; i++ {
		if _, err := s.AddMessage(MessageRoleUser, fmt.Sprintf("msg %d", i), nil); err != nil {
			t.Fatalf("AddMessage() error: %v", err)
		}
	}

	messages, total, err := s.ListMessages(2, 10)
	if err != nil {
		t.Fatalf("ListMessages() error: %v", err)
	}
	if total != 25 {
		t.Errorf("expected total=25, got %d", total)
	}
	if len(messages) != 10 {
		t.Errorf("expected 10 messages, got %d", len(messages))
	}
	if messages[0].Content != "msg 10" {
		t.Errorf("expected first message of page 2 to be msg 10, got %q", messages[0].Content)
	}

	// Last page holds the remainder
	messages, _, err = s.ListMessages(3, 10)
	if err != nil {
		t.Fatalf("ListMessages() error: %v", err)
	}
	if len(messages) != 5 {
		t.Errorf("expected 5 messages on last page, got %d", len(messages))
	}
}
