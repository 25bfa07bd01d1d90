// Package openai provides an OpenAI-backed generation service.
package openai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/doclens/doclens/internal/core/ports/driven"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "gpt-4o-mini"

// Ensure Generator implements the interface.
var _ driven.GenerationService = (*Generator)(nil)

// Generator produces text via the OpenAI chat completions API.
// Provider errors are passed through unchanged; retrying is the caller's
// decision, never the engine's.
type Generator struct {
	client *openai.Client
	model  string
}

// New creates an OpenAI generator.
func New(apiKey, model string) (*Generator, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	return &Generator{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

// Generate returns the model output for the given prompt.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

// Model returns the model identifier.
func (g *Generator) Model() string {
	return g.model
}

// Provider returns the provider identifier.
func (g *Generator) Provider() string {
	return "openai"
}
