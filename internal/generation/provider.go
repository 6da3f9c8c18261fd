// Package generation produces natural-language answers from assembled
// prompts using a configurable model backend.
package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"google.golang.org/genai"

	"github.com/mike-a-ellis/emergency-rag/internal/gemini"
)

// Provider is a text-generation backend.
type Provider interface {
	Name() string
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// NewProvider selects and constructs the configured generation backend.
func NewProvider(ctx context.Context, backend, model string) (Provider, error) {
	switch strings.ToLower(backend) {
	case "", "gemini":
		client, err := gemini.NewClient(ctx)
		if err != nil {
			return nil, err
		}
		return NewGeminiProvider(client, model), nil
	case "openai":
		return NewOpenAIProvider(model)
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s", backend)
	}
}

// isRetryable reports whether a generation call failed with a transient
// condition worth retrying.
func isRetryable(err error) bool {
	var openaiErr *openai.Error
	if errors.As(err, &openaiErr) {
		return openaiErr.StatusCode == 429 || openaiErr.StatusCode >= 500
	}
	var genaiErr genai.APIError
	if errors.As(err, &genaiErr) {
		return genaiErr.Code == 429 || genaiErr.Code >= 500
	}
	return false
}
