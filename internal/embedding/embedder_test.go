package embedding

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider records calls and returns one-element vectors derived from the
// input length so ordering is observable.
type stubProvider struct {
	calls     int
	batches   [][]string
	taskTypes []string
	failures  int
	err       error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) EmbedTexts(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	s.calls++
	s.batches = append(s.batches, texts)
	s.taskTypes = append(s.taskTypes, taskType)
	if s.failures > 0 {
		s.failures--
		return nil, s.err
	}
	vectors := make([][]float32, len(texts))
	for i, t := range texts {
		vectors[i] = []float32{float32(len(t))}
	}
	return vectors, nil
}

func TestEmbedDocuments_Batching(t *testing.T) {
	provider := &stubProvider{}
	embedder := NewEmbedder(provider, 2)

	texts := []string{"a", "bb", "ccc", "dddd", "eeeee"}
	vectors, err := embedder.EmbedDocuments(context.Background(), texts)
	require.NoError(t, err)

	assert.Equal(t, 3, provider.calls, "5 texts with batch size 2 should take 3 requests")
	require.Len(t, vectors, 5)
	for i, text := range texts {
		assert.Equal(t, float32(len(text)), vectors[i][0], "vector %d out of order", i)
	}
	for _, taskType := range provider.taskTypes {
		assert.Equal(t, TaskDocument, taskType)
	}
}

func TestEmbedQuery_UsesQueryTaskType(t *testing.T) {
	provider := &stubProvider{}
	embedder := NewEmbedder(provider, 0)

	vector, err := embedder.EmbedQuery(context.Background(), "how do I evacuate")
	require.NoError(t, err)
	assert.NotEmpty(t, vector)
	require.Len(t, provider.taskTypes, 1)
	assert.Equal(t, TaskQuery, provider.taskTypes[0])
}

func TestEmbedDocuments_PermanentErrorFailsFast(t *testing.T) {
	provider := &stubProvider{failures: 1, err: errors.New("invalid model")}
	embedder := NewEmbedder(provider, 0)

	_, err := embedder.EmbedDocuments(context.Background(), []string{"text"})
	require.Error(t, err)
	assert.Equal(t, 1, provider.calls, "non-retryable errors must not be retried")
}

func TestNewProvider_UnknownBackend(t *testing.T) {
	_, err := NewProvider(context.Background(), "mystery", "some-model")
	require.Error(t, err)
	assert.Equal(t, fmt.Sprintf("unsupported embedding provider: %s", "mystery"), err.Error())
}
