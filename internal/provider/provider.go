// Package provider defines the LLM provider interface and implementations.
package provider

import (
	"context"
	"encoding/json"
)

// Message represents a chat message.
type Message struct {
	Role       string
	Content    string
	ToolCallID string     // set on tool-result messages
	ToolCalls  []ToolCall // set on assistant messages that requested tools
}

// Tool describes a callable action offered to the model.
type Tool struct {
	Name        string
	Description string
	Parameters  json.RawMessage // JSON schema for the tool's input
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

// ChatResponse is the model's reply to a single round: either final text or
// a list of requested tool invocations (or both).
type ChatResponse struct {
	Content   string
	ToolCalls []ToolCall
}

// Provider defines the interface for LLM providers.
type Provider interface {
	// Name returns the provider's identifier.
	Name() string

	// Chat sends messages and returns the complete response.
	Chat(ctx context.Context, messages []Message) (string, error)

	// ChatWithTools sends messages with available tools and returns the
	// response with any requested tool calls.
	ChatWithTools(ctx context.Context, messages []Message, tools []Tool) (*ChatResponse, error)
}
