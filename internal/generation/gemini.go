package generation

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/mike-a-ellis/emergency-rag/internal/gemini"
)

// GeminiProvider generates text with a Gemini model.
type GeminiProvider struct {
	client *gemini.Client
	model  string
}

// NewGeminiProvider creates a Gemini generation provider for the given model.
func NewGeminiProvider(client *gemini.Client, model string) *GeminiProvider {
	return &GeminiProvider{client: client, model: model}
}

// Name returns the provider identifier.
func (p *GeminiProvider) Name() string { return "gemini" }

// GenerateText sends a single-shot prompt and returns the model's text reply.
func (p *GeminiProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.API().Models.GenerateContent(
		ctx,
		p.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		nil,
	)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("model returned an empty response")
	}
	return text, nil
}
