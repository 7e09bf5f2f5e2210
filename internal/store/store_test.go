package store

import (
	"path/filepath"
	"testing"
)

func setupStoreTest(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenMemory(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer s.Close()

	// Verify tables exist by querying them
	for _, table := range []string{"messages", "habits", "habit_entries", "daily_journal", "plans"} {
		if _, err := s.db.Exec("SELECT 1 FROM " + table + " LIMIT 1"); err != nil {
			t.Errorf("%s table not created: %v", table, err)
		}
	}
}

func TestMigrateIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	s.Close()

	// Reopening must not fail or wipe data
	s, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer s.Close()

	if err := s.Ping(); err != nil {
		t.Errorf("Ping() error: %v", err)
	}
}
