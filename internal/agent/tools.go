package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/lifeos/internal/provider"
	"github.com/xonecas/lifeos/internal/store"
)

// Tool names the model may request. Dispatch goes through this fixed set;
// anything else is rejected without aborting the round.
const (
	ToolSaveHabits       = "save_habits"
	ToolSaveJournal      = "save_journal"
	ToolSaveTomorrowPlan = "save_tomorrow_plan"
	ToolGetContext       = "get_context"
)

// toolHandler executes one tool call. Returned errors are converted to
// textual results by Execute and never reach the orchestrator.
type toolHandler func(ctx context.Context, args json.RawMessage) (string, error)

type registeredTool struct {
	def     provider.Tool
	handler toolHandler
}

// Registry holds the fixed set of tools bound to a store handle and clock.
type Registry struct {
	store *store.Store
	now   func() time.Time
	tools map[string]registeredTool
	order []string
}

// NewRegistry builds the tool registry. The clock defaults to time.Now and is
// injectable for tests.
func NewRegistry(s *store.Store, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	r := &Registry{
		store: s,
		now:   now,
		tools: make(map[string]registeredTool),
	}

	r.register(provider.Tool{
		Name: ToolSaveHabits,
		Description: "Store today's habit log. Values may be booleans or structured objects, e.g. " +
			`{"habits": {"exercise": true, "reading": {"pages": 12}, "sleep": {"duration": 7.2}}}`,
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"habits": {
					"type": "object",
					"description": "Map of habit name to boolean or structured value"
				}
			},
			"required": ["habits"]
		}`),
	}, r.saveHabits)

	r.register(provider.Tool{
		Name:        ToolSaveJournal,
		Description: "Save today's journal entry with optional wins and improvements lists.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"text": {"type": "string", "description": "Short reflection"},
				"wins": {"type": "array", "items": {"type": "string"}},
				"improvements": {"type": "array", "items": {"type": "string"}}
			},
			"required": ["text"]
		}`),
	}, r.saveJournal)

	r.register(provider.Tool{
		Name:        ToolSaveTomorrowPlan,
		Description: "Save the plan for tomorrow as an ordered list of tasks.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"tasks": {"type": "array", "items": {"type": "string"}}
			},
			"required": ["tasks"]
		}`),
	}, r.savePlan)

	r.register(provider.Tool{
		Name: ToolGetContext,
		Description: "Read recent state: last messages, today's habits, today's journal " +
			"and yesterday's plan.",
		Parameters: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, r.getContext)

	return r
}

func (r *Registry) register(def provider.Tool, h toolHandler) {
	r.tools[def.Name] = registeredTool{def: def, handler: h}
	r.order = append(r.order, def.Name)
}

// Definitions returns the tool schemas offered to the model, in registration
// order.
func (r *Registry) Definitions() []provider.Tool {
	defs := make([]provider.Tool, 0, len(r.tools))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].def)
	}
	return defs
}

// Has reports whether a tool name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.tools[name]
	return ok
}

// Execute runs the named tool and always returns a textual result: a
// confirmation on success, an error description otherwise. The model receives
// some result for every requested call.
func (r *Registry) Execute(ctx context.Context, name string, args json.RawMessage) string {
	t, ok := r.tools[name]
	if !ok {
		log.Warn().Str("tool", name).Msg("Skipping unknown tool")
		return fmt.Sprintf("Error: unknown tool %q", name)
	}

	result, err := t.handler(ctx, args)
	if err != nil {
		log.Warn().Err(err).Str("tool", name).Msg("Tool execution failed")
		return fmt.Sprintf("Error calling %s: %v", name, err)
	}
	return result
}

func (r *Registry) today() time.Time {
	return r.now()
}

// saveHabits upserts one entry per habit for today. Boolean values become
// {"completed": v}, objects are stored as-is, anything else becomes
// {"value": v}.
func (r *Registry) saveHabits(ctx context.Context, args json.RawMessage) (string, error) {
	var input struct {
		Habits map[string]any `json:"habits"`
	}
	if err := json.Unmarshal(args, &input); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if len(input.Habits) == 0 {
		return "", fmt.Errorf("no habits provided")
	}

	names := make([]string, 0, len(input.Habits))
	for name := range input.Habits {
		names = append(names, name)
	}
	sort.Strings(names)

	today := r.today()
	logged := make([]string, 0, len(names))
	for _, name := range names {
		habitID, err := r.store.GetOrCreateHabit(name)
		if err != nil {
			return "", fmt.Errorf("saving habits: %w", err)
		}

		if err := r.store.UpsertHabitEntry(habitID, today, normalizeHabitValue(input.Habits[name])); err != nil {
			return "", fmt.Errorf("saving habits: %w", err)
		}
		logged = append(logged, "Logged "+name)
	}

	return "Habits saved: " + strings.Join(logged, ", "), nil
}

func normalizeHabitValue(v any) map[string]any {
	switch value := v.(type) {
	case bool:
		return map[string]any{"completed": value}
	case map[string]any:
		return value
	default:
		return map[string]any{"value": value}
	}
}

func (r *Registry) saveJournal(ctx context.Context, args json.RawMessage) (string, error) {
	var input struct {
		Text         string   `json:"text"`
		Wins         []string `json:"wins"`
		Improvements []string `json:"improvements"`
	}
	if err := json.Unmarshal(args, &input); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	if input.Wins == nil {
		input.Wins = []string{}
	}
	if input.Improvements == nil {
		input.Improvements = []string{}
	}

	meta := map[string]any{
		"wins":         input.Wins,
		"improvements": input.Improvements,
	}
	if err := r.store.UpsertJournal(r.today(), input.Text, meta); err != nil {
		return "", fmt.Errorf("saving journal: %w", err)
	}

	return "Journal entry saved.", nil
}

func (r *Registry) savePlan(ctx context.Context, args json.RawMessage) (string, error) {
	var input struct {
		Tasks []string `json:"tasks"`
	}
	if err := json.Unmarshal(args, &input); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	tomorrow := r.today().AddDate(0, 0, 1)
	plan, err := r.store.UpsertPlan(tomorrow, input.Tasks)
	if err != nil {
		return "", fmt.Errorf("saving plan: %w", err)
	}

	return fmt.Sprintf("Plan for %s saved with %d tasks.", plan.Date, len(plan.Tasks)), nil
}

func (r *Registry) getContext(ctx context.Context, args json.RawMessage) (string, error) {
	snapshot, err := BuildContext(r.store, r.today())
	if err != nil {
		return "", fmt.Errorf("retrieving context: %w", err)
	}
	return snapshot, nil
}
