//go:build integration

package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDimension = 4

// setupTestStore creates a store against a throwaway collection.
// Skips the test if Qdrant is not running.
func setupTestStore(t *testing.T) *QdrantStore {
	t.Helper()
	collection := "test_" + uuid.New().String()[:8]
	store, err := NewQdrantStore("localhost", 6334, collection, testDimension)
	if err != nil {
		t.Skipf("Qdrant not available: %v", err)
	}

	require.NoError(t, store.EnsureCollection(context.Background()))
	return store
}

func TestUpsertAndSearchRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()
	ctx := context.Background()

	records := []*EmbeddingRecord{
		{
			ID:      uuid.New().String(),
			Content: "Evacuate via Exit B during a fire",
			Metadata: map[string]any{
				"source":         "fire_procedures.pdf",
				"category":       "emergency_response",
				"chunk_index":    int64(0),
				"ingestion_date": "2025-01-15T10:00:00Z",
			},
			Embedding: []float32{1, 0, 0, 0},
		},
		{
			ID:        uuid.New().String(),
			Content:   "Assemble in the parking lot",
			Metadata:  map[string]any{"source": "fire_procedures.pdf", "chunk_index": int64(1)},
			Embedding: []float32{0, 1, 0, 0},
		},
	}

	require.NoError(t, store.UpsertRecords(ctx, records))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	// Query aligned with the first record's vector.
	results, err := store.Search(ctx, []float32{1, 0, 0, 0}, 4, 0.9)
	require.NoError(t, err)
	require.Len(t, results, 1, "threshold 0.9 should exclude the orthogonal record")

	hit := results[0]
	assert.Equal(t, "Evacuate via Exit B during a fire", hit.Content)
	assert.InDelta(t, 1.0, hit.Score, 0.001)
	assert.Equal(t, "fire_procedures.pdf", hit.Metadata["source"])
	assert.Equal(t, "emergency_response", hit.Metadata["category"])
	assert.Equal(t, int64(0), hit.Metadata["chunk_index"])
	assert.NotContains(t, hit.Metadata, "content")
}

func TestSearch_OrderedByDescendingScore(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()
	ctx := context.Background()

	records := []*EmbeddingRecord{
		{ID: uuid.New().String(), Content: "far", Metadata: map[string]any{}, Embedding: []float32{0, 1, 0, 0}},
		{ID: uuid.New().String(), Content: "near", Metadata: map[string]any{}, Embedding: []float32{1, 0.1, 0, 0}},
		{ID: uuid.New().String(), Content: "exact", Metadata: map[string]any{}, Embedding: []float32{1, 0, 0, 0}},
	}
	require.NoError(t, store.UpsertRecords(ctx, records))

	results, err := store.Search(ctx, []float32{1, 0, 0, 0}, 10, 0.0)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(results), 2)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
	assert.Equal(t, "exact", results[0].Content)
}

func TestCount_TracksUpserts(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()
	ctx := context.Background()

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count, "fresh collection must be empty")

	records := make([]*EmbeddingRecord, 3)
	for i := range records {
		records[i] = &EmbeddingRecord{
			ID:        uuid.New().String(),
			Content:   fmt.Sprintf("passage %d", i),
			Metadata:  map[string]any{},
			Embedding: []float32{float32(i + 1), 1, 0, 0},
		}
	}
	require.NoError(t, store.UpsertRecords(ctx, records))

	count, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestUpsertRecords_DimensionMismatch(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	err := store.UpsertRecords(context.Background(), []*EmbeddingRecord{
		{ID: uuid.New().String(), Content: "bad", Embedding: []float32{1, 2}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestSearch_DimensionMismatch(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	_, err := store.Search(context.Background(), []float32{1}, 4, 0.5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
