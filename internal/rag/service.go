// Package rag answers natural-language questions by retrieving stored
// passages and conditioning a generative model on them.
package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mike-a-ellis/emergency-rag/internal/storage"
)

// User-facing fallback responses. External failures are logged with detail
// but only these fixed strings ever reach the caller.
const (
	NoResultsResponse       = "I couldn't find any relevant information to answer your question about emergency response."
	SearchErrorResponse     = "I encountered an error while searching for relevant information. Please try again later."
	GenerationErrorResponse = "Sorry, I encountered an error while processing your question."
)

const promptTemplate = `
You are an emergency response assistant. Use the following information to answer the user's question.
If you don't know the answer based on the provided information, say so.

CONTEXT:
%s

USER QUESTION:
%s

ANSWER:
`

// QueryEmbedder embeds a query into the same vector space as stored records.
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// SearchStore answers nearest-neighbor queries over stored records.
type SearchStore interface {
	Search(ctx context.Context, vector []float32, limit int, threshold float64) ([]*storage.ScoredRecord, error)
}

// Generator produces a text answer for an assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service is the stateless retrieval pipeline: embed the query, search the
// store, assemble a context-augmented prompt, generate an answer.
type Service struct {
	embedder    QueryEmbedder
	store       SearchStore
	generator   Generator
	topK        int
	threshold   float64
	callTimeout time.Duration
	logger      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithTopK sets the number of passages retrieved per query.
func WithTopK(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.topK = k
		}
	}
}

// WithScoreThreshold sets the minimum similarity for a passage to count as
// relevant.
func WithScoreThreshold(threshold float64) Option {
	return func(s *Service) { s.threshold = threshold }
}

// WithCallTimeout bounds each external call. Zero disables the bound.
func WithCallTimeout(timeout time.Duration) Option {
	return func(s *Service) { s.callTimeout = timeout }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a retrieval service. The embedder must use the same
// model the store's records were embedded with; nothing validates this at
// runtime.
func NewService(embedder QueryEmbedder, store SearchStore, generator Generator, opts ...Option) *Service {
	s := &Service{
		embedder:  embedder,
		store:     store,
		generator: generator,
		topK:      4,
		threshold: 0.5,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Answer responds to a query from stored passages. Store and generation
// failures come back as fixed user-safe strings with a nil error; an
// embedding failure is returned to the caller.
func (s *Service) Answer(ctx context.Context, query string) (string, error) {
	embedCtx, cancel := s.boundedContext(ctx)
	vector, err := s.embedder.EmbedQuery(embedCtx, query)
	cancel()
	if err != nil {
		return "", fmt.Errorf("embed query: %w", err)
	}

	searchCtx, cancel := s.boundedContext(ctx)
	records, err := s.store.Search(searchCtx, vector, s.topK, s.threshold)
	cancel()
	if err != nil {
		s.logger.Error("Similarity search failed", "query", query, "error", err)
		return SearchErrorResponse, nil
	}

	if len(records) == 0 {
		s.logger.Info("No passages above threshold", "query", query, "threshold", s.threshold)
		return NoResultsResponse, nil
	}

	contents := make([]string, len(records))
	for i, record := range records {
		contents[i] = record.Content
	}
	prompt := BuildPrompt(query, contents)

	genCtx, cancel := s.boundedContext(ctx)
	answer, err := s.generator.Generate(genCtx, prompt)
	cancel()
	if err != nil {
		s.logger.Error("Answer generation failed", "query", query, "error", err)
		return GenerationErrorResponse, nil
	}

	s.logger.Info("Answered query", "query", query, "passages", len(records))
	return answer, nil
}

// BuildPrompt assembles the generation prompt from the query and the
// retrieved passage contents, which must already be in descending-similarity
// order.
func BuildPrompt(query string, contents []string) string {
	context := strings.Join(contents, "\n\n")
	return fmt.Sprintf(promptTemplate, context, query)
}

func (s *Service) boundedContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.callTimeout)
}
