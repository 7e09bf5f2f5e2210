package agent

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/xonecas/lifeos/internal/constants"
	"github.com/xonecas/lifeos/internal/store"
)

// BuildContext assembles a textual snapshot of recent state: the last
// transcript messages, today's habit entries, today's journal and yesterday's
// plan, in that order under fixed section headers. Empty sections render
// "None". The snapshot always reflects current store state; nothing is cached.
func BuildContext(s *store.Store, today time.Time) (string, error) {
	messages, err := s.GetRecentMessages(constants.MaxContextMessages)
	if err != nil {
		return "", fmt.Errorf("recent messages: %w", err)
	}

	habits, err := s.GetHabitEntriesForDate(today)
	if err != nil {
		return "", fmt.Errorf("today's habits: %w", err)
	}

	journal, err := s.GetJournalForDate(today)
	if err != nil {
		return "", fmt.Errorf("today's journal: %w", err)
	}

	plan, err := s.GetPlanForDate(today.AddDate(0, 0, -1))
	if err != nil {
		return "", fmt.Errorf("yesterday's plan: %w", err)
	}

	var b strings.Builder
	b.WriteString("Context:\n")

	b.WriteString("--- Last Messages ---\n")
	if len(messages) == 0 {
		b.WriteString("None\n")
	} else {
		for _, m := range messages {
			fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
		}
	}

	b.WriteString("\n--- Today's Habits ---\n")
	if len(habits) == 0 {
		b.WriteString("None\n")
	} else {
		for _, e := range habits {
			fmt.Fprintf(&b, "%s: %s\n", e.HabitName, renderJSON(e.Value))
		}
	}

	b.WriteString("\n--- Today's Journal ---\n")
	if journal == nil {
		b.WriteString("None\n")
	} else {
		fmt.Fprintf(&b, "%s\n", journal.Text)
		if len(journal.Meta) > 0 {
			fmt.Fprintf(&b, "%s\n", renderJSON(journal.Meta))
		}
	}

	b.WriteString("\n--- Yesterday's Plan ---\n")
	if plan == nil {
		b.WriteString("None\n")
	} else {
		for i, task := range plan.Tasks {
			fmt.Fprintf(&b, "%d. %s\n", i+1, task)
		}
		if len(plan.Tasks) == 0 {
			b.WriteString("None\n")
		}
	}

	return b.String(), nil
}

// renderJSON renders an open map deterministically. Key order follows
// encoding/json's sorted-map behavior.
func renderJSON(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(raw)
}
