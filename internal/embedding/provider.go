// Package embedding maps text to fixed-length vectors using a configurable
// provider backend. Ingestion and retrieval must use the same backend and
// model so that stored vectors and query vectors share an embedding space.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"google.golang.org/genai"

	"github.com/mike-a-ellis/emergency-rag/internal/gemini"
)

// Task types hint the provider at how the embedding will be used. Gemini
// produces asymmetric embeddings for documents vs queries; OpenAI ignores
// the hint.
const (
	TaskDocument = "RETRIEVAL_DOCUMENT"
	TaskQuery    = "RETRIEVAL_QUERY"
)

// Provider is an embedding backend.
type Provider interface {
	Name() string
	EmbedTexts(ctx context.Context, texts []string, taskType string) ([][]float32, error)
}

// NewProvider selects and constructs the configured embedding backend.
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
		return nil, fmt.Errorf("unsupported embedding provider: %s", backend)
	}
}

// isRetryable reports whether an embedding call failed with a transient
// condition (rate limit or server-side error) worth retrying.
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
