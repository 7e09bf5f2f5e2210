// Package agent drives the conversation turn: persist the user message, call
// the model, dispatch any requested tools, call the model once more, persist
// the reply.
package agent

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/lifeos/internal/constants"
	"github.com/xonecas/lifeos/internal/knowledge"
	"github.com/xonecas/lifeos/internal/provider"
	"github.com/xonecas/lifeos/internal/store"
)

// Orchestrator turns a free-text user message into store mutations and a
// natural-language reply. It holds no conversation state between turns; the
// transcript lives in the store.
type Orchestrator struct {
	store     *store.Store
	provider  provider.Provider
	knowledge *knowledge.Loader
	tools     *Registry
}

// New creates an orchestrator.
func New(s *store.Store, p provider.Provider, k *knowledge.Loader, tools *Registry) *Orchestrator {
	return &Orchestrator{
		store:     s,
		provider:  p,
		knowledge: k,
		tools:     tools,
	}
}

// Respond processes one user message and returns the assistant's reply.
//
// The turn runs as an explicit two-state sequence: one model round with tool
// schemas, then, if tools were requested, one dispatch pass followed by
// exactly one more model round. Tool chains never recurse.
//
// The user turn is persisted before any model call; a model failure leaves it
// in the transcript with no assistant turn.
func (o *Orchestrator) Respond(ctx context.Context, userMessage string) (string, error) {
	// Persist the user turn first so the transcript never misses a user
	// message that produced a reply.
	if _, err := o.store.AddMessage(store.MessageRoleUser, userMessage, nil); err != nil {
		return "", fmt.Errorf("%w: persist user message: %v", ErrStorage, err)
	}

	systemPrompt := o.knowledge.SystemPrompt() + o.knowledge.Context()

	messages := []provider.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userMessage},
	}

	tools := o.tools.Definitions()

	log.Debug().
		Int("tool_count", len(tools)).
		Int("system_prompt_bytes", len(systemPrompt)).
		Msg("Starting model round")

	response, err := o.provider.ChatWithTools(ctx, messages, tools)
	if err != nil {
		log.Error().Err(err).Str("provider", o.provider.Name()).Msg("Provider returned error")
		return "", fmt.Errorf("%w: %v", ErrUpstreamModel, err)
	}

	var toolNames []string
	if len(response.ToolCalls) > 0 {
		messages, toolNames = o.dispatchTools(ctx, messages, response)

		log.Debug().
			Strs("tools", toolNames).
			Msg("Tool round complete, requesting final reply")

		response, err = o.provider.ChatWithTools(ctx, messages, tools)
		if err != nil {
			log.Error().Err(err).Str("provider", o.provider.Name()).Msg("Provider returned error on final round")
			return "", fmt.Errorf("%w: %v", ErrUpstreamModel, err)
		}

		// Only one extra round is performed. Further tool requests are
		// dropped; the reply falls back to whatever text came with them.
		if len(response.ToolCalls) > 0 {
			log.Warn().
				Int("dropped_tool_calls", len(response.ToolCalls)).
				Msg("Model requested tools on final round, ignoring")
		}
	}

	reply := response.Content
	if reply == "" {
		reply = constants.FallbackLLMResponse
	}

	var metadata map[string]any
	if len(toolNames) > 0 {
		metadata = map[string]any{"tools": toolNames}
	}

	// A failed assistant-turn write is logged, not surfaced: the caller
	// already has a reply worth returning.
	if _, err := o.store.AddMessage(store.MessageRoleAssistant, reply, metadata); err != nil {
		log.Error().Err(err).Msg("Failed to persist assistant message")
	}

	return reply, nil
}

// dispatchTools executes each requested tool in request order and extends the
// conversation with the assistant's tool-call turn plus one tool-result turn
// per call. Tool failures become textual results; they never abort the round.
func (o *Orchestrator) dispatchTools(ctx context.Context, messages []provider.Message, response *provider.ChatResponse) ([]provider.Message, []string) {
	calls := make([]provider.ToolCall, len(response.ToolCalls))
	copy(calls, response.ToolCalls)

	// Some models omit call identifiers; results still need one to stay
	// addressable in the follow-up round.
	for i := range calls {
		if calls[i].ID == "" {
			calls[i].ID = "call_" + uuid.NewString()
		}
	}

	messages = append(messages, provider.Message{
		Role:      "assistant",
		Content:   response.Content,
		ToolCalls: calls,
	})

	names := make([]string, 0, len(calls))
	for _, tc := range calls {
		log.Info().
			Str("tool", tc.Name).
			Str("tool_call_id", tc.ID).
			Msg("Executing tool")

		result := o.tools.Execute(ctx, tc.Name, tc.Arguments)
		names = append(names, tc.Name)

		messages = append(messages, provider.Message{
			Role:       "tool",
			Content:    result,
			ToolCallID: tc.ID,
		})
	}

	return messages, names
}
