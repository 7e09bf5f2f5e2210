package provider

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// GeminiProvider implements the Provider interface against Gemini's
// OpenAI-compatible chat completions endpoint.
type GeminiProvider struct {
	client      *openai.Client
	model       string
	temperature float64
	limiter     *rate.Limiter
}

// NewGemini creates a new Gemini provider.
func NewGemini(endpoint, model, apiKey string) *GeminiProvider {
	return NewGeminiWithTemp(endpoint, model, apiKey, 0.7, nil)
}

// NewGeminiWithTemp creates a Gemini provider with an explicit temperature
// and optional client-side rate limiter.
func NewGeminiWithTemp(endpoint, model, apiKey string, temperature float64, limiter *rate.Limiter) *GeminiProvider {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = endpoint

	return &GeminiProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
		limiter:     limiter,
	}
}

// Name returns the provider identifier.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Chat sends messages and returns the complete response.
func (p *GeminiProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    toOpenAIMessages(messages),
		Temperature: float32(p.temperature),
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no response choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// ChatWithTools sends messages with available tools and returns the response
// with any requested tool calls.
func (p *GeminiProvider) ChatWithTools(ctx context.Context, messages []Message, tools []Tool) (*ChatResponse, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	openaiTools, err := toOpenAITools(tools)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    toOpenAIMessages(messages),
		Tools:       openaiTools,
		Temperature: float32(p.temperature),
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("no response choices")
	}

	choice := resp.Choices[0]
	return &ChatResponse{
		Content:   choice.Message.Content,
		ToolCalls: fromOpenAIToolCalls(choice.Message.ToolCalls),
	}, nil
}
