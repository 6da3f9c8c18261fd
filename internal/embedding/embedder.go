package embedding

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultBatchSize bounds the number of texts per provider request, trading
// request count against per-request payload size.
const DefaultBatchSize = 100

// Embedder generates embeddings through a Provider, batching requests and
// retrying transient failures with exponential backoff.
type Embedder struct {
	provider  Provider
	batchSize int
}

// NewEmbedder creates an Embedder with the given provider and optional batch
// size. If batchSize is 0, DefaultBatchSize is used.
func NewEmbedder(provider Provider, batchSize int) *Embedder {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Embedder{
		provider:  provider,
		batchSize: batchSize,
	}
}

// EmbedDocuments embeds passages for storage, preserving input order.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	var all [][]float32

	for i := 0; i < len(texts); i += e.batchSize {
		end := min(i+e.batchSize, len(texts))
		batch := texts[i:end]

		vectors, err := e.embedWithRetry(ctx, batch, TaskDocument)
		if err != nil {
			return nil, fmt.Errorf("batch %d-%d: %w", i, end, err)
		}
		all = append(all, vectors...)
	}

	return all, nil
}

// EmbedQuery embeds a search query. The query task type matters on providers
// with asymmetric embeddings; the model must match the one used at ingestion.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.embedWithRetry(ctx, []string{text}, TaskQuery)
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// embedWithRetry calls the provider with retry on transient errors only;
// anything else fails immediately.
func (e *Embedder) embedWithRetry(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	var vectors [][]float32

	operation := func() error {
		result, err := e.provider.EmbedTexts(ctx, texts, taskType)
		if err != nil {
			if isRetryable(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		vectors = result
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 30 * time.Second

	err := backoff.Retry(operation, backoff.WithContext(b, ctx))
	return vectors, err
}
