// Package gemini wraps the Google GenAI client shared by the embedding and
// generation providers.
package gemini

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// Client wraps the GenAI client for the Gemini API backend.
type Client struct {
	api *genai.Client
}

// NewClient creates a Gemini API client. It reads GEMINI_API_KEY from the
// environment and returns an error if not set.
func NewClient(ctx context.Context) (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	api, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{api: api}, nil
}

// API returns the underlying GenAI client.
func (c *Client) API() *genai.Client {
	return c.api
}
