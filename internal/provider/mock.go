package provider

import (
	"context"
	"sync"
)

// MockProvider is a test provider that returns scripted responses. Each call
// to ChatWithTools consumes the next scripted response; Chat returns the
// first response's content.
type MockProvider struct {
	mu        sync.Mutex
	name      string
	responses []*ChatResponse
	calls     [][]Message
	chatErr   error
}

// NewMock creates a new mock provider that always replies with the given text.
func NewMock(name, response string) *MockProvider {
	return &MockProvider{
		name:      name,
		responses: []*ChatResponse{{Content: response}},
	}
}

// NewMockScripted creates a mock provider that plays back the given responses
// in order, repeating the last one once exhausted.
func NewMockScripted(name string, responses ...*ChatResponse) *MockProvider {
	return &MockProvider{
		name:      name,
		responses: responses,
	}
}

// WithChatError sets an error to return from Chat and ChatWithTools.
func (p *MockProvider) WithChatError(err error) *MockProvider {
	p.chatErr = err
	return p
}

// Name returns the provider identifier.
func (p *MockProvider) Name() string {
	return p.name
}

// Calls returns the message slices received so far, one per round.
func (p *MockProvider) Calls() [][]Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// Chat returns the first scripted response's content or the configured error.
func (p *MockProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	resp, err := p.ChatWithTools(ctx, messages, nil)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// ChatWithTools consumes and returns the next scripted response.
func (p *MockProvider) ChatWithTools(ctx context.Context, messages []Message, tools []Tool) (*ChatResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.chatErr != nil {
		return nil, p.chatErr
	}

	p.calls = append(p.calls, messages)

	if len(p.responses) == 0 {
		return &ChatResponse{}, nil
	}

	resp := p.responses[0]
	if len(p.responses) > 1 {
		p.responses = p.responses[1:]
	}
	return resp, nil
}
