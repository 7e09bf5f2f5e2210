package constants

import "time"

// FallbackSystemPrompt is used when no SYSTEM_PROMPT.md knowledge document exists.
const FallbackSystemPrompt = "You are a helpful assistant."

// MaxContextMessages limits how many recent transcript messages the
// get_context tool includes.
const MaxContextMessages = 20

// LLMRequestTimeout caps a single conversation turn (both model rounds plus
// tool dispatch).
const LLMRequestTimeout = 2 * time.Minute

// DefaultPageLimit is the transcript page size when the caller omits limit.
const DefaultPageLimit = 20

// MaxPageLimit bounds the transcript page size.
const MaxPageLimit = 100

// FallbackLLMResponse is used when the model returns empty content.
const FallbackLLMResponse = "(no response)"

// SystemPromptFile holds the base operating rules for the assistant.
const SystemPromptFile = "SYSTEM_PROMPT.md"

// KnowledgeFiles are the named documents folded into the system prompt, in
// order. Missing files are skipped.
var KnowledgeFiles = []string{
	"GOAL.md",
	"DAILY_REVIEW_TEMPLATE.md",
	"CORE_PRINCIPLES_PROTOCOL.md",
	"IDENTITY.md",
}
