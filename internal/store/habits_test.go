package store

import (
	"testing"
	"time"
)

var testDay = time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

func TestGetOrCreateHabit(t *testing.T) {
	s := setupStoreTest(t)

	id1, err := s.GetOrCreateHabit("exercise")
	if err != nil {
		t.Fatalf("GetOrCreateHabit() error: %v", err)
	}

	// Same name resolves to the same habit
	id2, err := s.GetOrCreateHabit("exercise")
	if err != nil {
		t.Fatalf("GetOrCreateHabit() error: %v", err)
	}
	if id1 != id2 {
		t.Errorf("expected same habit id, got %d and %d", id1, id2)
	}

	habits, err := s.ListHabits()
	if err != nil {
		t.Fatalf("ListHabits() error: %v", err)
	}
	if len(habits) != 1 {
		t.Errorf("expected 1 habit, got %d", len(habits))
	}
}

func TestGetOrCreateHabitEmptyName(t *testing.T) {
	s := setupStoreTest(t)

	if _, err := s.GetOrCreateHabit(""); err == nil {
		t.Error("expected error for empty habit name")
	}
}

func TestUpsertHabitEntryIdempotent(t *testing.T) {
	s := setupStoreTest(t)

	id, err := s.GetOrCreateHabit("exercise")
	if err != nil {
		t.Fatalf("GetOrCreateHabit() error: %v", err)
	}

	if err := s.UpsertHabitEntry(id, testDay, map[string]any{"completed": true}); err != nil {
		t.Fatalf("UpsertHabitEntry() error: %v", err)
	}
	if err := s.UpsertHabitEntry(id, testDay, map[string]any{"completed": false}); err != nil {
		t.Fatalf("UpsertHabitEntry() error: %v", err)
	}

	entries, err := s.GetHabitEntriesForDate(testDay)
	if err != nil {
		t.Fatalf("GetHabitEntriesForDate() error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly 1 entry for (habit, date), got %d", len(entries))
	}
	if entries[0].Value["completed"] != false {
		t.Errorf("expected second write to win, got %#v", entries[0].Value)
	}
	if entries[0].HabitName != "exercise" {
		t.Errorf("expected habit name resolved, got %q", entries[0].HabitName)
	}
}

func TestHabitEntriesScopedToDate(t *testing.T) {
	s := setupStoreTest(t)

	id, err := s.GetOrCreateHabit("reading")
	if err != nil {
		t.Fatalf("GetOrCreateHabit() error: %v", err)
	}

	if err := s.UpsertHabitEntry(id, testDay, map[string]any{"pages": float64(12)}); err != nil {
		t.Fatalf("UpsertHabitEntry() error: %v", err)
	}

	entries, err := s.GetHabitEntriesForDate(testDay.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("GetHabitEntriesForDate() error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries for other date, got %d", len(entries))
	}
}
