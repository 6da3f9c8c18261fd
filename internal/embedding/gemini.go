package embedding

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/mike-a-ellis/emergency-rag/internal/gemini"
)

// GeminiProvider embeds text with a Gemini embedding model.
type GeminiProvider struct {
	client *gemini.Client
	model  string
}

// NewGeminiProvider creates a Gemini embedding provider for the given model.
func NewGeminiProvider(client *gemini.Client, model string) *GeminiProvider {
	return &GeminiProvider{client: client, model: model}
}

// Name returns the provider identifier.
func (p *GeminiProvider) Name() string { return "gemini" }

// EmbedTexts embeds the given texts in a single request.
func (p *GeminiProvider) EmbedTexts(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = &genai.Content{Parts: []*genai.Part{{Text: text}}}
	}

	var config *genai.EmbedContentConfig
	if taskType != "" {
		config = &genai.EmbedContentConfig{TaskType: taskType}
	}

	resp, err := p.client.API().Models.EmbedContent(ctx, p.model, contents, config)
	if err != nil {
		return nil, err
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings))
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, fmt.Errorf("no embedding values returned for text %d", i)
		}
		vectors[i] = emb.Values
	}
	return vectors, nil
}
