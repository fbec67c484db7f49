// Package insights produces narrative ESG commentary, preferring a language
// model and degrading to curated static text when the model is unavailable
// or misbehaves.
package insights

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ErrNotConfigured is returned by a Generator that has no API credentials.
var ErrNotConfigured = errors.New("insights: model client not configured")

// Generator is the completion surface the resolver depends on. The
// production implementation wraps the OpenAI chat API; tests substitute a
// canned one.
type Generator interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest carries one chat exchange. JSONMode asks the model to
// emit a single JSON object.
type CompletionRequest struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
	JSONMode    bool
}

// OpenAIGenerator implements Generator on the OpenAI chat completions API.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator builds a Generator for the given key and model. An
// empty key yields a generator that always reports ErrNotConfigured, which
// keeps callers on the static-fallback path.
func NewOpenAIGenerator(apiKey, model string) *OpenAIGenerator {
	g := &OpenAIGenerator{model: model}
	if apiKey != "" {
		g.client = openai.NewClient(apiKey)
	}
	return g
}

// Configured reports whether the generator can reach the model at all.
func (g *OpenAIGenerator) Configured() bool {
	return g != nil && g.client != nil
}

func (g *OpenAIGenerator) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if !g.Configured() {
		return "", ErrNotConfigured
	}

	chatReq := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSONMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := g.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("insights: model returned no choices")
	}
	return stripCodeFence(resp.Choices[0].Message.Content), nil
}

// stripCodeFence removes a surrounding markdown code fence when the model
// wraps its answer in one despite instructions.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
